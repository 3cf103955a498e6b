// Package config defines the format-agnostic configuration model for the
// application, along with the Loader interface implemented by the
// format-specific loaders.
//
// The `config.Model` is the single source of truth for the `app` package.
// Concrete loaders for HCL and YAML live in separate packages.
package config
