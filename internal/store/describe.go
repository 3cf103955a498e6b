package store

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/vk/idfgo/internal/idd"
)

// Describe returns the type name and memo of typeName as comment lines.
func (s *Store) Describe(typeName string) (string, error) {
	def, err := s.reg.Definition(typeName)
	if err != nil {
		return "", err
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "!- %s\n", def.Key())
	fmt.Fprintf(&sb, "!- %s\n", def.Memo)
	return sb.String(), nil
}

// Help returns a listing of the fields of typeName with their constraints.
func (s *Store) Help(typeName string) (string, error) {
	def, err := s.reg.Definition(typeName)
	if err != nil {
		return "", err
	}

	var sb strings.Builder
	sb.WriteString(def.Name)
	if def.Group != "" {
		fmt.Fprintf(&sb, " (%s)", def.Group)
	}
	sb.WriteByte('\n')
	if def.Memo != "" {
		fmt.Fprintf(&sb, "  %s\n", def.Memo)
	}
	var flags []string
	if def.Unique {
		flags = append(flags, "unique")
	}
	if def.Required {
		flags = append(flags, "required")
	}
	if def.Extensible > 0 {
		flags = append(flags, "extensible:"+strconv.Itoa(def.Extensible))
	}
	if len(flags) > 0 {
		fmt.Fprintf(&sb, "  [%s]\n", strings.Join(flags, ", "))
	}

	for _, f := range def.Fields {
		fmt.Fprintf(&sb, "  %-4s %s%s\n", f.Marker, f.Name, fieldSummary(f))
	}
	return sb.String(), nil
}

func fieldSummary(f *idd.FieldDefinition) string {
	var parts []string
	if f.Required {
		parts = append(parts, "required")
	}
	if f.Units != "" {
		parts = append(parts, "units "+f.Units)
	}
	if f.Minimum != nil {
		parts = append(parts, "min "+strconv.FormatFloat(*f.Minimum, 'g', -1, 64))
	}
	if f.Maximum != nil {
		parts = append(parts, "max "+strconv.FormatFloat(*f.Maximum, 'g', -1, 64))
	}
	if len(f.Keys) > 0 {
		parts = append(parts, "one of "+strings.Join(f.Keys, "|"))
	}
	if f.Default != "" {
		parts = append(parts, "default "+f.Default)
	}
	if f.Autosizable {
		parts = append(parts, "autosizable")
	}
	if f.Autocalculatable {
		parts = append(parts, "autocalculatable")
	}
	if f.ObjectList != "" {
		parts = append(parts, "refers to "+f.ObjectList)
	}
	if len(parts) == 0 {
		return ""
	}
	return " (" + strings.Join(parts, "; ") + ")"
}

// Find returns the schema types whose name contains query, ignoring case.
func (s *Store) Find(query string) []string {
	return s.reg.Find(query)
}
