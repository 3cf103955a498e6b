// Package yamlcfg implements config.Loader for YAML files.
package yamlcfg

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/vk/idfgo/internal/config"
	"github.com/vk/idfgo/internal/ctxlog"
)

// File is the YAML layout of a configuration file.
type File struct {
	SchemaDir      string       `yaml:"schema_dir,omitempty"`
	DefaultVersion string       `yaml:"default_version,omitempty"`
	LogLevel       string       `yaml:"log_level,omitempty"`
	LogFormat      string       `yaml:"log_format,omitempty"`
	Seeds          []SeedFile   `yaml:"seeds,omitempty"`
	Publish        *PublishFile `yaml:"publish,omitempty"`
}

// SeedFile is one entry of `seeds`.
type SeedFile struct {
	Type   string         `yaml:"type"`
	Fields map[string]any `yaml:"fields,omitempty"`
}

// PublishFile is the `publish` section. Timeout is a duration string such
// as "5s".
type PublishFile struct {
	URL       string        `yaml:"url"`
	Namespace string        `yaml:"namespace,omitempty"`
	Event     string        `yaml:"event,omitempty"`
	Timeout   time.Duration `yaml:"timeout,omitempty"`

	InsecureSkipVerify bool `yaml:"insecure_skip_verify,omitempty"`
}

// IsYAML reports whether path has a YAML extension.
func IsYAML(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return true
	}
	return false
}

// Loader reads YAML configuration files.
type Loader struct{}

// NewLoader creates a new YAML configuration loader.
func NewLoader() *Loader {
	return &Loader{}
}

// Load decodes each file in paths, in order, and merges them. Unknown keys
// are errors.
func (l *Loader) Load(ctx context.Context, paths ...string) (*config.Model, error) {
	logger := ctxlog.FromContext(ctx)

	model := &config.Model{}
	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config %s: %w", path, err)
		}
		part, err := Parse(data)
		if err != nil {
			return nil, fmt.Errorf("failed to decode YAML file %s: %w", path, err)
		}
		model.Merge(part)
		logger.Debug("Loaded YAML config.", "path", path, "seeds", len(part.Seeds))
	}
	return model, nil
}

// Parse decodes a single YAML document into the agnostic model.
func Parse(data []byte) (*config.Model, error) {
	var f File
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil && !errors.Is(err, io.EOF) {
		return nil, err
	}
	if err := f.Validate(); err != nil {
		return nil, err
	}
	return f.model(), nil
}

// Validate checks the file for values the model cannot represent.
func (f *File) Validate() error {
	for i, s := range f.Seeds {
		if strings.TrimSpace(s.Type) == "" {
			return fmt.Errorf("seeds[%d]: type must not be empty", i)
		}
	}
	if f.Publish != nil && strings.TrimSpace(f.Publish.URL) == "" {
		return errors.New("publish: url must not be empty")
	}
	return nil
}

func (f *File) model() *config.Model {
	m := &config.Model{
		SchemaDir:      f.SchemaDir,
		DefaultVersion: f.DefaultVersion,
		LogLevel:       f.LogLevel,
		LogFormat:      f.LogFormat,
	}
	for _, s := range f.Seeds {
		fields := s.Fields
		if fields == nil {
			fields = map[string]any{}
		}
		m.Seeds = append(m.Seeds, &config.Seed{Type: s.Type, Fields: fields})
	}
	if p := f.Publish; p != nil {
		m.Publish = &config.Publish{URL: p.URL, Namespace: p.Namespace, Event: p.Event, Timeout: p.Timeout, InsecureSkipVerify: p.InsecureSkipVerify}
	}
	return m
}
