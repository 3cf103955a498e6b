package idd

import (
	"fmt"
	"sort"
	"strings"
)

// Registry maps lower-cased type names to object definitions. It is built
// once by Parse and never mutated afterwards.
type Registry struct {
	source string
	defs   map[string]*ObjectDefinition
	order  []string
}

func newRegistry(source string) *Registry {
	return &Registry{
		source: source,
		defs:   make(map[string]*ObjectDefinition),
	}
}

// Source returns the name of the schema text the registry was built from.
func (r *Registry) Source() string {
	return r.source
}

// Len returns the number of object types.
func (r *Registry) Len() int {
	return len(r.defs)
}

// Lookup returns the definition of typeName, compared case-insensitively.
func (r *Registry) Lookup(typeName string) (*ObjectDefinition, bool) {
	def, ok := r.defs[normalizeType(typeName)]
	return def, ok
}

// Definition is Lookup returning a SchemaError for unknown types.
func (r *Registry) Definition(typeName string) (*ObjectDefinition, error) {
	def, ok := r.Lookup(typeName)
	if !ok {
		return nil, &SchemaError{
			Object: strings.TrimSpace(typeName),
			Msg:    fmt.Sprintf("no definition in %s", r.source),
			Err:    ErrUnknownType,
		}
	}
	return def, nil
}

// Types returns all registry keys in declaration order.
func (r *Registry) Types() []string {
	out := make([]string, len(r.order))
	copy(out, r.order)
	return out
}

// RequiredTypes returns the keys of all types marked `\required-object`.
func (r *Registry) RequiredTypes() []string {
	var out []string
	for _, key := range r.order {
		if r.defs[key].Required {
			out = append(out, key)
		}
	}
	return out
}

// IsRequired reports whether typeName is marked `\required-object`.
func (r *Registry) IsRequired(typeName string) bool {
	def, ok := r.Lookup(typeName)
	return ok && def.Required
}

// Find returns the sorted keys of all types whose name contains query,
// ignoring case.
func (r *Registry) Find(query string) []string {
	q := strings.ToLower(strings.TrimSpace(query))
	var out []string
	for key := range r.defs {
		if strings.Contains(key, q) {
			out = append(out, key)
		}
	}
	sort.Strings(out)
	return out
}

func (r *Registry) add(def *ObjectDefinition) {
	key := def.Key()
	if _, exists := r.defs[key]; !exists {
		r.order = append(r.order, key)
	}
	r.defs[key] = def
}

func normalizeType(typeName string) string {
	return strings.ToLower(strings.TrimSpace(typeName))
}
