package object

import (
	"strings"

	"github.com/vk/idfgo/internal/idd"
	"github.com/zclconf/go-cty/cty"
)

// Field is one set field of an Object.
type Field struct {
	Name  string
	Value Value
}

// Object is a validated instance of an object type. Only set fields are
// stored, in declaration order followed by extensible groups.
type Object struct {
	def    *idd.ObjectDefinition
	id     string
	fields []Field
	index  map[string]int
}

func newObject(def *idd.ObjectDefinition) *Object {
	return &Object{def: def, index: make(map[string]int)}
}

// Definition returns the definition the object was validated against.
func (o *Object) Definition() *idd.ObjectDefinition { return o.def }

// Type returns the display name of the object's type.
func (o *Object) Type() string { return o.def.Name }

// ID returns the identity value, or "" for identity-less objects.
func (o *Object) ID() string { return o.id }

// HasID reports whether the object carries an identity.
func (o *Object) HasID() bool { return o.id != "" }

// MatchesID compares id with the object's identity, ignoring case.
func (o *Object) MatchesID(id string) bool {
	return o.id != "" && strings.EqualFold(o.id, strings.TrimSpace(id))
}

// Get returns the value of the named field, compared case-insensitively.
func (o *Object) Get(name string) (Value, bool) {
	i, ok := o.index[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return Value{}, false
	}
	return o.fields[i].Value, true
}

// Fields returns a copy of the set fields in order.
func (o *Object) Fields() []Field {
	out := make([]Field, len(o.fields))
	copy(out, o.fields)
	return out
}

// Len returns the number of set fields.
func (o *Object) Len() int { return len(o.fields) }

// Raw returns the set fields as a name to value map suitable for New.
func (o *Object) Raw() map[string]any {
	raw := make(map[string]any, len(o.fields))
	for _, f := range o.fields {
		raw[f.Name] = f.Value.Interface()
	}
	return raw
}

// CtyValue returns the set fields as a cty object keyed by field name.
func (o *Object) CtyValue() cty.Value {
	if len(o.fields) == 0 {
		return cty.EmptyObjectVal
	}
	attrs := make(map[string]cty.Value, len(o.fields))
	for _, f := range o.fields {
		attrs[f.Name] = f.Value.CtyValue()
	}
	return cty.ObjectVal(attrs)
}

func (o *Object) set(name string, v Value) {
	key := strings.ToLower(name)
	if i, ok := o.index[key]; ok {
		o.fields[i].Value = v
		return
	}
	o.index[key] = len(o.fields)
	o.fields = append(o.fields, Field{Name: name, Value: v})
}
