package config

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Defaults applied by Normalize.
const (
	DefaultLogLevel       = "info"
	DefaultLogFormat      = LogFormatText
	DefaultPublishEvent   = "model"
	DefaultPublishTimeout = 10 * time.Second
)

// Model is the unified, format-agnostic representation of the application
// configuration.
type Model struct {
	SchemaDir      string
	DefaultVersion string
	LogLevel       string
	LogFormat      string
	Seeds          []*Seed
	Publish        *Publish
}

// Seed is an object added to every model built by the application.
type Seed struct {
	Type   string
	Fields map[string]any
}

// Publish configures the socket.io endpoint validated models are sent to.
type Publish struct {
	URL       string
	Namespace string
	Event     string
	Timeout   time.Duration

	InsecureSkipVerify bool
}

// Merge overlays other onto m: non-empty scalars replace, seeds append.
func (m *Model) Merge(other *Model) {
	if other == nil {
		return
	}
	if other.SchemaDir != "" {
		m.SchemaDir = other.SchemaDir
	}
	if other.DefaultVersion != "" {
		m.DefaultVersion = other.DefaultVersion
	}
	if other.LogLevel != "" {
		m.LogLevel = other.LogLevel
	}
	if other.LogFormat != "" {
		m.LogFormat = other.LogFormat
	}
	m.Seeds = append(m.Seeds, other.Seeds...)
	if other.Publish != nil {
		m.Publish = other.Publish
	}
}

// Normalize fills unset values with their defaults.
func (m *Model) Normalize() {
	if m.LogLevel == "" {
		m.LogLevel = DefaultLogLevel
	}
	if m.LogFormat == "" {
		m.LogFormat = DefaultLogFormat
	}
	if p := m.Publish; p != nil {
		if p.Event == "" {
			p.Event = DefaultPublishEvent
		}
		if p.Namespace == "" {
			p.Namespace = "/"
		}
		if p.Timeout <= 0 {
			p.Timeout = DefaultPublishTimeout
		}
	}
}

// Validate checks for invalid configuration values.
func (m *Model) Validate() error {
	var errs []error
	if m.LogLevel != "" {
		if _, err := ParseLogLevel(m.LogLevel); err != nil {
			errs = append(errs, err)
		}
	}
	if m.LogFormat != "" {
		if err := CheckLogFormat(m.LogFormat); err != nil {
			errs = append(errs, err)
		}
	}
	for i, s := range m.Seeds {
		if s == nil || strings.TrimSpace(s.Type) == "" {
			errs = append(errs, fmt.Errorf("seed %d has no type", i))
		}
	}
	if p := m.Publish; p != nil {
		if strings.TrimSpace(p.URL) == "" {
			errs = append(errs, errors.New("publish url must not be empty"))
		}
		if p.Timeout < 0 {
			errs = append(errs, fmt.Errorf("publish timeout must be >= 0, got %s", p.Timeout))
		}
	}
	return errors.Join(errs...)
}
