package app

import (
	"errors"
	"strings"
)

// Config holds all the necessary configuration for an App instance to run.
// Empty values fall back to the configuration files, then to defaults.
type Config struct {
	IDFPath     string   // instance file, optional
	ConfigPaths []string // hcl or yaml files

	SchemaDir string
	Version   string

	Types         []string
	ForceRequired bool
	Geometry      bool

	Flatten      bool
	Construction string

	Describe string
	HelpType string
	Find     string

	PublishURL  string
	Interactive bool

	LogFormat string
	LogLevel  string
}

// Validate checks combinations of settings that cannot work together.
func (c *Config) Validate() error {
	var errs []error
	if c.Geometry && len(c.Types) > 0 {
		errs = append(errs, errors.New("--geometry and --types are mutually exclusive"))
	}
	if (c.Geometry || len(c.Types) > 0 || c.ForceRequired) && c.IDFPath == "" {
		errs = append(errs, errors.New("an instance file is required to filter records"))
	}
	if c.Construction != "" && !c.Flatten {
		errs = append(errs, errors.New("--construction requires --flatten"))
	}
	if c.Flatten && c.IDFPath == "" {
		errs = append(errs, errors.New("--flatten requires an instance file"))
	}
	for _, t := range c.Types {
		if strings.TrimSpace(t) == "" {
			errs = append(errs, errors.New("--types must not contain empty names"))
			break
		}
	}
	return errors.Join(errs...)
}
