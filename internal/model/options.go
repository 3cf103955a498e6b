// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package model

import (
	"io/fs"
	"os"

	"github.com/vk/idfgo/internal/idd"
	"github.com/vk/idfgo/schemas"
)

// defaultCache serves the embedded schemas to every model that does not ask
// for another source.
var defaultCache = idd.NewCache(schemas.FS)

// Option configures New and NewFromFile.
type Option func(*options)

type options struct {
	cache *idd.Cache
	seeds []Seed
}

func newOptions(opts []Option) *options {
	o := &options{cache: defaultCache, seeds: DefaultSeeds()}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// WithSchemaFS reads `<version>.idd` files from the root of fsys.
func WithSchemaFS(fsys fs.FS) Option {
	return func(o *options) { o.cache = idd.NewCache(fsys) }
}

// WithSchemaDir reads `<version>.idd` files from a directory on disk.
func WithSchemaDir(dir string) Option {
	return WithSchemaFS(os.DirFS(dir))
}

// WithCache shares a registry cache between models.
func WithCache(c *idd.Cache) Option {
	return func(o *options) { o.cache = c }
}

// WithSeeds merges seeds into the defaults: a seed replaces the default of
// the same type, other seeds are added after the defaults.
func WithSeeds(seeds ...Seed) Option {
	return func(o *options) { o.seeds = mergeSeeds(o.seeds, seeds) }
}
