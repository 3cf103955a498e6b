package idd

import (
	"regexp"
	"strconv"
	"strings"
)

// NoIdentity is the IdentityIndex of object types without a naming field.
const NoIdentity = -1

// ObjectDefinition is the schema of one object type: its ordered fields plus
// object level constraints.
type ObjectDefinition struct {
	Name              string // display spelling, e.g. "BuildingSurface:Detailed"
	Group             string
	Memo              string
	Format            string
	Fields            []*FieldDefinition
	Unique            bool
	Required          bool
	MinFields         int
	Extensible        int
	FieldsAsIndicated bool

	// IdentityIndex is the position of the field whose value identifies an
	// instance, or NoIdentity.
	IdentityIndex int

	index map[string]int
}

func newObjectDefinition(name, group string) *ObjectDefinition {
	return &ObjectDefinition{
		Name:          name,
		Group:         group,
		IdentityIndex: NoIdentity,
		index:         make(map[string]int),
	}
}

// Key returns the registry key of the definition.
func (d *ObjectDefinition) Key() string {
	return strings.ToLower(d.Name)
}

// Field returns the declared field with the given name, compared
// case-insensitively.
func (d *ObjectDefinition) Field(name string) (*FieldDefinition, bool) {
	i, ok := d.index[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return nil, false
	}
	return d.Fields[i], true
}

// Identity returns the identity field, or nil for identity-less types.
func (d *ObjectDefinition) Identity() *FieldDefinition {
	if d.IdentityIndex == NoIdentity || d.IdentityIndex >= len(d.Fields) {
		return nil
	}
	return d.Fields[d.IdentityIndex]
}

// ExtensibleStart returns the index of the first field of the repeating
// block, or -1 when the type is not extensible.
func (d *ObjectDefinition) ExtensibleStart() int {
	if d.Extensible <= 0 {
		return -1
	}
	for i, f := range d.Fields {
		if f.BeginExtensible {
			return i
		}
	}
	if len(d.Fields) >= d.Extensible {
		return len(d.Fields) - d.Extensible
	}
	return -1
}

var digitRun = regexp.MustCompile(`\d+`)

// ExtensibleNames returns the field names of the n-th block past the declared
// fields (n starts at 1). Names are derived from the first repeating block by
// renumbering its first digit run; names without digits get " <block>"
// appended. It returns nil for non-extensible types.
func (d *ObjectDefinition) ExtensibleNames(n int) []string {
	start := d.ExtensibleStart()
	if start < 0 || start+d.Extensible > len(d.Fields) {
		return nil
	}
	declared := (len(d.Fields) - start) / d.Extensible
	block := strconv.Itoa(declared + n)

	names := make([]string, d.Extensible)
	for i, f := range d.Fields[start : start+d.Extensible] {
		if loc := digitRun.FindStringIndex(f.Name); loc != nil {
			names[i] = f.Name[:loc[0]] + block + f.Name[loc[1]:]
		} else {
			names[i] = f.Name + " " + block
		}
	}
	return names
}

// ExtensibleField returns the template field that the i-th field of a
// synthesized block is validated against.
func (d *ObjectDefinition) ExtensibleField(i int) *FieldDefinition {
	start := d.ExtensibleStart()
	if start < 0 || i < 0 || i >= d.Extensible {
		return nil
	}
	return d.Fields[start+i]
}

func (d *ObjectDefinition) addField(f *FieldDefinition) {
	d.index[f.Key()] = len(d.Fields)
	d.Fields = append(d.Fields, f)
}

// resolveIdentity declares the first field as the identity when it is a
// text field carrying a name.
func (d *ObjectDefinition) resolveIdentity() {
	if len(d.Fields) == 0 {
		return
	}
	first := d.Fields[0]
	if first.Kind == KindAlpha && strings.Contains(first.Key(), "name") {
		d.IdentityIndex = 0
	}
}
