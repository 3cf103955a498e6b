// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package model

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/vk/idfgo/internal/ctxlog"
	"github.com/vk/idfgo/internal/idd"
	"github.com/vk/idfgo/internal/idf"
	"github.com/vk/idfgo/internal/store"
)

// DefaultVersion is assumed for instance files without a Version record.
const DefaultVersion = "8.6.0"

// Model is the store of one session together with its schema version.
type Model struct {
	*store.Store
	version string
}

// Version returns the normalised schema version of the model.
func (m *Model) Version() string {
	return m.version
}

// New builds a seeded model for version. A two component version such as
// "8.6" is read as "8.6.0".
func New(ctx context.Context, version string, opts ...Option) (*Model, error) {
	o := newOptions(opts)
	m, err := build(version, o)
	if err != nil {
		return nil, err
	}
	if err := m.seed(ctx, o.seeds, false); err != nil {
		return nil, err
	}
	return m, nil
}

// NewFromFile builds a model from the instance file at path. The version is
// taken from the file's Version record, DefaultVersion when it has none.
// Seeds are added only for types the file leaves empty: a file with its own
// RunPeriod gets no "default_period", and one with a Building keeps it.
func NewFromFile(ctx context.Context, path string, opts ...Option) (*Model, error) {
	logger := ctxlog.FromContext(ctx)

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, &store.IngestionError{Source: path, Err: store.ErrFileNotFound}
		}
		return nil, &store.IngestionError{Source: path, Err: err}
	}
	records, err := idf.Parse(bytes.NewReader(data))
	if err != nil {
		return nil, &store.IngestionError{Source: path, Err: err}
	}

	version, ok := idf.Version(records)
	if !ok {
		logger.Warn("Instance file has no version identifier; assuming default.", "path", path, "version", DefaultVersion)
		version = DefaultVersion
	}

	o := newOptions(opts)
	m, err := build(version, o)
	if err != nil {
		return nil, err
	}
	n, err := m.Ingest(ctx, bytes.NewReader(data), path, store.IngestOptions{})
	if err != nil {
		return nil, err
	}
	if err := m.seed(ctx, o.seeds, true); err != nil {
		return nil, err
	}

	logger.Info("Model loaded from file.", "path", path, "version", m.version, "objects", n)
	return m, nil
}

func build(version string, o *options) (*Model, error) {
	version = idd.NormalizeVersion(version)
	reg, err := o.cache.Get(version)
	if err != nil {
		return nil, err
	}
	return &Model{Store: store.New(reg), version: version}, nil
}

// seed adds the Version object and seeds. With onlyMissing, seeds of types
// that already hold objects are skipped.
func (m *Model) seed(ctx context.Context, seeds []Seed, onlyMissing bool) error {
	logger := ctxlog.FromContext(ctx)

	if m.Get(idf.VersionType) == nil {
		if _, err := m.Add(idf.VersionType, map[string]any{"Version Identifier": m.version}); err != nil {
			return fmt.Errorf("failed to seed %s: %w", idf.VersionType, err)
		}
	}
	for _, s := range seeds {
		if onlyMissing && m.Get(s.Type) != nil {
			logger.Debug("Seed skipped; type already populated.", "type", s.Type)
			continue
		}
		if _, err := m.Add(s.Type, s.Fields); err != nil {
			return fmt.Errorf("failed to seed %s: %w", s.Type, err)
		}
	}
	logger.Debug("Model seeded.", "version", m.version, "seeds", len(seeds))
	return nil
}
