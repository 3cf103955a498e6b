package object

import (
	"fmt"
	"math"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/vk/idfgo/internal/idd"
)

// New validates raw against def and returns the resulting Object. Keys of
// raw are field names compared case-insensitively; nil and blank values
// leave the field unset. Names of extensible groups past the declared fields
// are the ones returned by def.ExtensibleNames; groups may be sparse. A key
// naming neither fails with ErrUnknownField.
func New(def *idd.ObjectDefinition, raw map[string]any) (*Object, error) {
	lookup := make(map[string]any, len(raw))
	for k, v := range raw {
		if isBlank(v) {
			continue
		}
		lookup[strings.ToLower(strings.TrimSpace(k))] = v
	}

	obj := newObject(def)
	unused := make(map[string]struct{}, len(lookup))
	for k := range lookup {
		unused[k] = struct{}{}
	}
	for _, f := range def.Fields {
		if err := obj.assign(f, f.Name, lookup); err != nil {
			return nil, err
		}
		delete(unused, f.Key())
	}

	// Groups may be sparse, so probe up to the highest number named by a
	// leftover key rather than stopping at the first absent group.
	for n, last := 1, highestNumber(unused); n <= last && len(unused) > 0; n++ {
		names := def.ExtensibleNames(n)
		if names == nil {
			break
		}
		if !anyPresent(names, lookup) {
			continue
		}
		for i, name := range names {
			if err := obj.assign(def.ExtensibleField(i), name, lookup); err != nil {
				return nil, err
			}
			delete(unused, strings.ToLower(name))
		}
	}

	if len(unused) > 0 {
		keys := make([]string, 0, len(unused))
		for k := range unused {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		return nil, &ValidationError{Type: def.Name, Field: keys[0], Err: ErrUnknownField}
	}

	if f := def.Identity(); f != nil {
		if v, ok := obj.Get(f.Name); ok {
			obj.id = v.String()
		}
	}
	return obj, nil
}

// FromValues validates a positional record: values[i] belongs to the i-th
// declared field. Values past the declared fields are split into extensible
// groups of def.Extensible values each; a remainder is an error.
func FromValues(def *idd.ObjectDefinition, values []string) (*Object, error) {
	// Trailing blanks carry nothing and do not count towards group alignment.
	end := len(values)
	for end > 0 && strings.TrimSpace(values[end-1]) == "" {
		end--
	}
	values = values[:end]

	raw := make(map[string]any, len(values))
	declared := len(def.Fields)
	for i := 0; i < len(values) && i < declared; i++ {
		raw[def.Fields[i].Name] = values[i]
	}

	excess := len(values) - declared
	if excess <= 0 {
		return New(def, raw)
	}
	if def.Extensible <= 0 || def.ExtensibleStart() < 0 {
		return nil, &ValidationError{
			Type: def.Name,
			Err:  fmt.Errorf("%w: got %d, declared %d", ErrTooManyFields, len(values), declared),
		}
	}
	if excess%def.Extensible != 0 {
		return nil, &ValidationError{
			Type: def.Name,
			Err:  fmt.Errorf("%w: %d extra values for groups of %d", ErrExtensibleMisaligned, excess, def.Extensible),
		}
	}

	for b := 0; b < excess/def.Extensible; b++ {
		for i, name := range def.ExtensibleNames(b + 1) {
			raw[name] = values[declared+b*def.Extensible+i]
		}
	}
	return New(def, raw)
}

// assign validates the value stored under name in lookup against f.
func (o *Object) assign(f *idd.FieldDefinition, name string, lookup map[string]any) error {
	raw, ok := lookup[strings.ToLower(name)]
	if !ok {
		if f.Required {
			return &ValidationError{Type: o.def.Name, Field: name, Err: ErrRequiredField}
		}
		return nil
	}
	v, err := coerce(f, raw)
	if err != nil {
		return &ValidationError{Type: o.def.Name, Field: name, Err: err}
	}
	o.set(name, v)
	return nil
}

func coerce(f *idd.FieldDefinition, raw any) (Value, error) {
	if v, ok := raw.(Value); ok {
		raw = v.Interface()
	}
	if f.IsNumeric() {
		return coerceNumber(f, raw)
	}

	text := toText(raw)
	if f.HasKeys() {
		key, ok := f.MatchKey(text)
		if !ok {
			return Value{}, fmt.Errorf("%w: %q (allowed: %s)", ErrInvalidKey, text, strings.Join(f.Keys, ", "))
		}
		if !f.RetainCase {
			text = key
		}
	}
	return Text(text), nil
}

func coerceNumber(f *idd.FieldDefinition, raw any) (Value, error) {
	var num float64
	switch v := raw.(type) {
	case string:
		s := strings.TrimSpace(v)
		if f.AcceptsSentinel(s) {
			return Sentinel(s), nil
		}
		n, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return Value{}, fmt.Errorf("%w: %q", ErrNotNumeric, s)
		}
		num = n
	case float64:
		num = v
	case float32:
		num = float64(v)
	case int:
		num = float64(v)
	case int32:
		num = float64(v)
	case int64:
		num = float64(v)
	case uint:
		num = float64(v)
	case uint32:
		num = float64(v)
	case uint64:
		num = float64(v)
	default:
		return Value{}, fmt.Errorf("%w: %v (%T)", ErrNotNumeric, raw, raw)
	}

	if math.IsNaN(num) || math.IsInf(num, 0) {
		return Value{}, fmt.Errorf("%w: %v", ErrNotNumeric, num)
	}
	if f.IsInteger() && num != math.Trunc(num) {
		return Value{}, fmt.Errorf("%w: %v", ErrNotInteger, num)
	}
	if f.Minimum != nil && num < *f.Minimum {
		return Value{}, fmt.Errorf("%w: %v is below minimum %v", ErrOutOfRange, num, *f.Minimum)
	}
	if f.Maximum != nil && num > *f.Maximum {
		return Value{}, fmt.Errorf("%w: %v is above maximum %v", ErrOutOfRange, num, *f.Maximum)
	}
	return Number(num), nil
}

func toText(raw any) string {
	switch v := raw.(type) {
	case string:
		return strings.TrimSpace(v)
	case float64:
		return formatNumber(v)
	case float32:
		return formatNumber(float64(v))
	case fmt.Stringer:
		return v.String()
	}
	return fmt.Sprint(raw)
}

func isBlank(v any) bool {
	switch t := v.(type) {
	case nil:
		return true
	case string:
		return strings.TrimSpace(t) == ""
	case Value:
		return !t.IsSet()
	}
	return false
}

func anyPresent(names []string, lookup map[string]any) bool {
	for _, name := range names {
		if _, ok := lookup[strings.ToLower(name)]; ok {
			return true
		}
	}
	return false
}

// maxGroupNumber caps the group numbers probed for a single object.
const maxGroupNumber = 1 << 16

var digitRun = regexp.MustCompile(`\d+`)

// highestNumber returns the largest digit run found in keys, capped at
// maxGroupNumber.
func highestNumber(keys map[string]struct{}) int {
	highest := 0
	for k := range keys {
		for _, run := range digitRun.FindAllString(k, -1) {
			n, err := strconv.Atoi(run)
			if err != nil || n > maxGroupNumber {
				n = maxGroupNumber
			}
			highest = max(highest, n)
		}
	}
	return highest
}
