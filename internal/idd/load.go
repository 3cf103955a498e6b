package idd

import (
	"errors"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"
	"sync"

	"github.com/vk/idfgo/internal/fsutil"
)

// SchemaExt is the file extension of schema files.
const SchemaExt = ".idd"

// NormalizeVersion trims v and expands a two component version ("8.6")
// to three components ("8.6.0").
func NormalizeVersion(v string) string {
	v = strings.TrimSpace(v)
	if len(strings.Split(v, ".")) == 2 {
		v += ".0"
	}
	return v
}

// Versions lists the schema versions available in fsys, sorted.
func Versions(fsys fs.FS) ([]string, error) {
	files, err := fsutil.FindFilesByExtension(fsys, ".", SchemaExt)
	if err != nil {
		return nil, err
	}
	versions := make([]string, 0, len(files))
	for _, f := range files {
		base := path.Base(f)
		versions = append(versions, base[:len(base)-len(SchemaExt)])
	}
	sort.Strings(versions)
	return versions, nil
}

// Load parses `<version>.idd` from the root of fsys.
func Load(fsys fs.FS, version string) (*Registry, error) {
	version = NormalizeVersion(version)
	name := version + SchemaExt

	f, err := fsys.Open(name)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			supported, _ := Versions(fsys)
			return nil, &SchemaError{
				Msg: fmt.Sprintf("no schema file %s (available: %s)", name, strings.Join(supported, ", ")),
				Err: ErrUnsupportedVersion,
			}
		}
		return nil, fmt.Errorf("failed to open schema %s: %w", name, err)
	}
	defer f.Close()

	return Parse(name, f)
}

// Cache memoizes registries per schema version. It is safe for concurrent
// use; the registries it returns are shared and must not be modified.
type Cache struct {
	fsys fs.FS

	mu      sync.Mutex
	entries map[string]*Registry
}

// NewCache returns a cache that loads schema files from fsys.
func NewCache(fsys fs.FS) *Cache {
	return &Cache{fsys: fsys, entries: make(map[string]*Registry)}
}

// Get returns the registry for version, parsing it on first use.
func (c *Cache) Get(version string) (*Registry, error) {
	version = NormalizeVersion(version)

	c.mu.Lock()
	defer c.mu.Unlock()
	if reg, ok := c.entries[version]; ok {
		return reg, nil
	}
	reg, err := Load(c.fsys, version)
	if err != nil {
		return nil, err
	}
	c.entries[version] = reg
	return reg, nil
}
