package store

import (
	"fmt"
	"strings"

	"github.com/vk/idfgo/internal/idd"
	"github.com/vk/idfgo/internal/object"
)

// Store maps object types to their stored entries.
type Store struct {
	reg     *idd.Registry
	entries map[string]*slot
	order   []string // type keys in the order they were first populated
}

// New returns an empty store validating against reg.
func New(reg *idd.Registry) *Store {
	return &Store{reg: reg, entries: make(map[string]*slot)}
}

// Registry returns the schema the store validates against.
func (s *Store) Registry() *idd.Registry {
	return s.reg
}

// Add validates fields as an object of typeName and stores it.
func (s *Store) Add(typeName string, fields map[string]any) (*object.Object, error) {
	def, err := s.reg.Definition(typeName)
	if err != nil {
		return nil, err
	}
	obj, err := object.New(def, fields)
	if err != nil {
		return nil, err
	}
	if err := s.insert(obj); err != nil {
		return nil, err
	}
	return obj, nil
}

func (s *Store) insert(obj *object.Object) error {
	def := obj.Definition()
	key := def.Key()

	sl, ok := s.entries[key]
	if !ok {
		s.entries[key] = &slot{unique: def.Unique, objects: []*object.Object{obj}}
		s.order = append(s.order, key)
		return nil
	}
	if sl.unique {
		return &object.ValidationError{Type: def.Name, Err: ErrDuplicateUnique}
	}
	if obj.HasID() && sl.find(obj.ID()) >= 0 {
		return duplicateIdentity(obj)
	}
	sl.objects = append(sl.objects, obj)
	return nil
}

func duplicateIdentity(obj *object.Object) error {
	field := ""
	if f := obj.Definition().Identity(); f != nil {
		field = f.Name
	}
	return &object.ValidationError{
		Type:  obj.Type(),
		Field: field,
		Err:   fmt.Errorf("%w: '%s'", ErrDuplicateIdentity, obj.ID()),
	}
}

// Get returns the entry of typeName, or nil when nothing of that type is
// stored.
func (s *Store) Get(typeName string) Entry {
	sl, ok := s.entries[typeKey(typeName)]
	if !ok {
		return nil
	}
	return sl.entry()
}

// GetByID returns the first stored object, in type order, whose identity
// equals id ignoring case.
func (s *Store) GetByID(id string) (*object.Object, bool) {
	for _, key := range s.order {
		for _, obj := range s.entries[key].objects {
			if obj.MatchesID(id) {
				return obj, true
			}
		}
	}
	return nil, false
}

// Exists reports whether an object of typeName with identity id is stored.
func (s *Store) Exists(typeName, id string) bool {
	sl, ok := s.entries[typeKey(typeName)]
	return ok && sl.find(id) >= 0
}

// Delete removes the object of typeName with identity id and reports
// whether anything was removed. The entry of a unique type is removed
// whatever id is.
func (s *Store) Delete(typeName, id string) bool {
	key := typeKey(typeName)
	sl, ok := s.entries[key]
	if !ok {
		return false
	}
	if !sl.unique {
		i := sl.find(id)
		if i < 0 {
			return false
		}
		sl.objects = append(sl.objects[:i:i], sl.objects[i+1:]...)
		if len(sl.objects) > 0 {
			return true
		}
	}
	s.drop(key)
	return true
}

func (s *Store) drop(key string) {
	delete(s.entries, key)
	for i, k := range s.order {
		if k == key {
			s.order = append(s.order[:i:i], s.order[i+1:]...)
			break
		}
	}
}

// Set assigns value to field of the addressed object. The whole object is
// validated again and replaces the stored one. A nil or blank value unsets
// the field.
func (s *Store) Set(typeName, id, field string, value any) (*object.Object, error) {
	mustSet := field
	if str, ok := value.(string); value == nil || (ok && strings.TrimSpace(str) == "") {
		mustSet = ""
	}
	return s.update(typeName, id, func(raw map[string]any) {
		deleteField(raw, field)
		raw[strings.TrimSpace(field)] = value
	}, mustSet)
}

// Unset clears field of the addressed object.
func (s *Store) Unset(typeName, id, field string) (*object.Object, error) {
	return s.update(typeName, id, func(raw map[string]any) {
		deleteField(raw, field)
	}, "")
}

// update rewrites the addressed object through edit. When mustSet is not
// empty the named field has to be set on the result.
func (s *Store) update(typeName, id string, edit func(map[string]any), mustSet string) (*object.Object, error) {
	def, err := s.reg.Definition(typeName)
	if err != nil {
		return nil, err
	}
	sl, ok := s.entries[def.Key()]
	i := -1
	if ok {
		i = sl.find(id)
	}
	if i < 0 {
		return nil, fmt.Errorf("%w: '%s' called '%s'", ErrNotFound, def.Name, id)
	}

	old := sl.objects[i]
	raw := old.Raw()
	edit(raw)
	obj, err := object.New(def, raw)
	if err != nil {
		return nil, err
	}
	if mustSet != "" {
		if _, ok := obj.Get(mustSet); !ok {
			return nil, &object.ValidationError{Type: def.Name, Field: mustSet, Err: ErrUnknownField}
		}
	}
	if !sl.unique && obj.HasID() && !obj.MatchesID(old.ID()) {
		if j := sl.find(obj.ID()); j >= 0 && j != i {
			return nil, duplicateIdentity(obj)
		}
	}
	sl.objects[i] = obj
	return obj, nil
}

func deleteField(raw map[string]any, field string) {
	field = strings.TrimSpace(field)
	for k := range raw {
		if strings.EqualFold(k, field) {
			delete(raw, k)
		}
	}
}

// Objects returns every stored object, grouped by type in the order the
// types were first populated.
func (s *Store) Objects() []*object.Object {
	var out []*object.Object
	for _, key := range s.order {
		out = append(out, s.entries[key].objects...)
	}
	return out
}

// Types returns the keys of all populated types in population order.
func (s *Store) Types() []string {
	out := make([]string, len(s.order))
	copy(out, s.order)
	return out
}

// Len returns the number of stored objects.
func (s *Store) Len() int {
	n := 0
	for _, sl := range s.entries {
		n += len(sl.objects)
	}
	return n
}

// snapshot captures the store so that restore can undo a failed bulk
// operation. Objects are immutable, so copying the slices is enough.
type snapshot struct {
	entries map[string]*slot
	order   []string
}

func (s *Store) snapshot() snapshot {
	snap := snapshot{
		entries: make(map[string]*slot, len(s.entries)),
		order:   append([]string(nil), s.order...),
	}
	for k, sl := range s.entries {
		snap.entries[k] = &slot{unique: sl.unique, objects: append([]*object.Object(nil), sl.objects...)}
	}
	return snap
}

func (s *Store) restore(snap snapshot) {
	s.entries = snap.entries
	s.order = snap.order
}

func typeKey(typeName string) string {
	return strings.ToLower(strings.TrimSpace(typeName))
}
