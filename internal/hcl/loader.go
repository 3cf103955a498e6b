package hcl

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/vk/idfgo/internal/config"
	"github.com/vk/idfgo/internal/ctxlog"
	"github.com/vk/idfgo/internal/fsutil"
)

// Ext is the file extension the loader reads.
const Ext = ".hcl"

// Loader is the HCL-specific implementation of the config.Loader interface.
type Loader struct{}

// NewLoader creates a new HCL configuration loader.
func NewLoader() *Loader {
	return &Loader{}
}

// fileRoot is the top-level structure of a configuration file.
type fileRoot struct {
	SchemaDir      string        `hcl:"schema_dir,optional"`
	DefaultVersion string        `hcl:"default_version,optional"`
	LogLevel       string        `hcl:"log_level,optional"`
	LogFormat      string        `hcl:"log_format,optional"`
	Seeds          []*seedBlock  `hcl:"seed,block"`
	Publish        *publishBlock `hcl:"publish,block"`
}

type seedBlock struct {
	Type   string         `hcl:"type,label"`
	Fields hcl.Expression `hcl:"fields,optional"`
}

type publishBlock struct {
	URL       string `hcl:"url"`
	Namespace string `hcl:"namespace,optional"`
	Event     string `hcl:"event,optional"`
	Timeout   string `hcl:"timeout,optional"`

	InsecureSkipVerify bool `hcl:"insecure_skip_verify,optional"`
}

// Load parses every .hcl file found in paths, in order, and merges them.
func (l *Loader) Load(ctx context.Context, paths ...string) (*config.Model, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("HCL loader started.", "path_count", len(paths))

	files, err := findAllHCLFiles(paths)
	if err != nil {
		return nil, err
	}
	logger.Debug("Discovered HCL files.", "count", len(files))

	model := &config.Model{}
	parser := hclparse.NewParser()
	for _, file := range files {
		hclFile, diags := parser.ParseHCLFile(file)
		if diags.HasErrors() {
			return nil, fmt.Errorf("failed to parse HCL file %s: %w", file, diags)
		}

		var root fileRoot
		diags = gohcl.DecodeBody(hclFile.Body, nil, &root)
		if diags.HasErrors() {
			return nil, fmt.Errorf("failed to decode HCL file %s: %w", file, diags)
		}

		part, err := translate(ctx, &root)
		if err != nil {
			return nil, fmt.Errorf("in HCL file %s: %w", file, err)
		}
		model.Merge(part)
	}

	logger.Debug("HCL loading complete.", "files", len(files), "seeds", len(model.Seeds), "publish", model.Publish != nil)
	return model, nil
}

// translate converts a decoded file into the agnostic model.
func translate(ctx context.Context, root *fileRoot) (*config.Model, error) {
	m := &config.Model{
		SchemaDir:      root.SchemaDir,
		DefaultVersion: root.DefaultVersion,
		LogLevel:       root.LogLevel,
		LogFormat:      root.LogFormat,
	}

	for _, s := range root.Seeds {
		fields, err := decodeFields(ctx, s.Fields)
		if err != nil {
			return nil, fmt.Errorf("seed %q: %w", s.Type, err)
		}
		m.Seeds = append(m.Seeds, &config.Seed{Type: s.Type, Fields: fields})
	}

	if p := root.Publish; p != nil {
		pub := &config.Publish{URL: p.URL, Namespace: p.Namespace, Event: p.Event, InsecureSkipVerify: p.InsecureSkipVerify}
		if p.Timeout != "" {
			d, err := time.ParseDuration(p.Timeout)
			if err != nil {
				return nil, fmt.Errorf("publish timeout: %w", err)
			}
			pub.Timeout = d
		}
		m.Publish = pub
	}
	return m, nil
}

// findAllHCLFiles returns the .hcl files named by paths or found below the
// directories among them. A missing path or a file of another format is an
// error.
func findAllHCLFiles(paths []string) ([]string, error) {
	var allFiles []string
	seen := make(map[string]struct{})
	add := func(p string) {
		if _, wasSeen := seen[p]; !wasSeen {
			allFiles = append(allFiles, p)
			seen[p] = struct{}{}
		}
	}

	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			return nil, fmt.Errorf("error accessing path %s: %w", path, err)
		}

		if !info.IsDir() {
			if filepath.Ext(path) != Ext {
				return nil, fmt.Errorf("config file %s is not an %s file", path, Ext)
			}
			add(path)
			continue
		}
		found, err := fsutil.FindFilesByExtension(os.DirFS(path), ".", Ext)
		if err != nil {
			return nil, fmt.Errorf("error walking %s: %w", path, err)
		}
		for _, f := range found {
			add(filepath.Join(path, filepath.FromSlash(f)))
		}
	}
	return allFiles, nil
}
