package idd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/hashicorp/hcl/v2"
)

var (
	// ErrUnknownType is returned when a type name has no definition.
	ErrUnknownType = errors.New("unknown object type")
	// ErrUnsupportedVersion is returned when no schema file exists for a version.
	ErrUnsupportedVersion = errors.New("unsupported version")
)

// SchemaError reports a problem with schema text or a schema lookup.
type SchemaError struct {
	Subject   *hcl.Range // source position, when known
	Object    string
	Directive string
	Msg       string
	Err       error
}

// Error implements the error interface.
func (e *SchemaError) Error() string {
	var sb strings.Builder
	if e.Subject != nil {
		sb.WriteString(fmt.Sprintf("%s:%d: ", e.Subject.Filename, e.Subject.Start.Line))
	}
	sb.WriteString(e.Msg)
	if e.Directive != "" {
		sb.WriteString(fmt.Sprintf(" '%s'", e.Directive))
	}
	if e.Object != "" {
		sb.WriteString(fmt.Sprintf(" when reading '%s'", e.Object))
	}
	if e.Err != nil {
		sb.WriteString(": ")
		sb.WriteString(e.Err.Error())
	}
	return sb.String()
}

// Unwrap returns the underlying cause.
func (e *SchemaError) Unwrap() error {
	return e.Err
}

func lineRange(source string, line int) *hcl.Range {
	return &hcl.Range{
		Filename: source,
		Start:    hcl.Pos{Line: line, Column: 1},
		End:      hcl.Pos{Line: line, Column: 1},
	}
}
