package idd

import (
	"strings"
)

// Kind is the value kind of a field, taken from its `A`/`N` marker.
type Kind int

const (
	// KindAlpha fields hold text.
	KindAlpha Kind = iota
	// KindNumeric fields hold numbers (or an autosize/autocalculate sentinel).
	KindNumeric
)

// String returns the kind's display name.
func (k Kind) String() string {
	if k == KindNumeric {
		return "numeric"
	}
	return "alpha"
}

// FieldDefinition describes one positional field of an object type.
type FieldDefinition struct {
	Name   string
	Marker string
	Kind   Kind
	Type   string // \type, e.g. "integer", "choice", "object-list"

	Default string
	Minimum *float64
	Maximum *float64
	Keys    []string

	Units             string
	IPUnits           string
	UnitsBasedOnField string
	ObjectList        string
	ExternalList      string
	Reference         string
	Note              string
	Required          bool
	RetainCase        bool
	Autosizable       bool
	Autocalculatable  bool
	BeginExtensible   bool
}

// Key returns the case-insensitive lookup key of the field.
func (f *FieldDefinition) Key() string {
	return strings.ToLower(f.Name)
}

// IsNumeric reports whether values of this field are coerced to numbers.
func (f *FieldDefinition) IsNumeric() bool {
	return f.Kind == KindNumeric
}

// IsInteger reports whether the field is declared with `\type integer`.
func (f *FieldDefinition) IsInteger() bool {
	return strings.EqualFold(f.Type, "integer")
}

// HasKeys reports whether the field restricts its values to a key set.
func (f *FieldDefinition) HasKeys() bool {
	return len(f.Keys) > 0
}

// MatchKey returns the declared spelling of value if it is one of the
// field's keys. Keys compare case-insensitively.
func (f *FieldDefinition) MatchKey(value string) (string, bool) {
	for _, k := range f.Keys {
		if strings.EqualFold(k, value) {
			return k, true
		}
	}
	return "", false
}

// AcceptsSentinel reports whether s is an autosize or autocalculate marker
// this field allows in place of a number.
func (f *FieldDefinition) AcceptsSentinel(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "autosize":
		return f.Autosizable
	case "autocalculate":
		return f.Autocalculatable
	}
	return false
}

func (f *FieldDefinition) addKey(k string) {
	if _, ok := f.MatchKey(k); ok {
		return
	}
	f.Keys = append(f.Keys, k)
}
