package store

import (
	"errors"
	"fmt"
	"strings"

	"github.com/vk/idfgo/internal/object"
)

var (
	// ErrDuplicateUnique is returned when a second object of a unique type
	// is added.
	ErrDuplicateUnique = errors.New("unique object already exists")
	// ErrDuplicateIdentity is returned when an identity is already used by
	// another object of the same type.
	ErrDuplicateIdentity = errors.New("identity already exists")
	// ErrNotFound is returned by mutations addressing an object that is not
	// stored.
	ErrNotFound = errors.New("object not found")
	// ErrUnknownField is returned by Set for a field the type does not have.
	ErrUnknownField = object.ErrUnknownField
	// ErrFileNotFound is returned when an instance file does not exist.
	ErrFileNotFound = errors.New("instance file not found")
)

// IngestionError reports a failure while importing instance text. Line is
// zero when the failure is not tied to a record.
type IngestionError struct {
	Source string
	Line   int
	Type   string
	Err    error
}

// Error implements the error interface.
func (e *IngestionError) Error() string {
	var sb strings.Builder
	sb.WriteString(e.Source)
	if e.Line > 0 {
		sb.WriteString(fmt.Sprintf(":%d", e.Line))
	}
	if e.Type != "" {
		sb.WriteString(fmt.Sprintf(": failed to ingest '%s'", e.Type))
	} else {
		sb.WriteString(": failed to ingest")
	}
	if e.Err != nil {
		sb.WriteString(": ")
		sb.WriteString(e.Err.Error())
	}
	return sb.String()
}

// Unwrap returns the underlying cause.
func (e *IngestionError) Unwrap() error {
	return e.Err
}
