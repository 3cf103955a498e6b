package object

import (
	"strconv"

	"github.com/zclconf/go-cty/cty"
)

// ValueKind tags the variant held by a Value.
type ValueKind uint8

const (
	// KindText is a string value of an alpha field.
	KindText ValueKind = iota + 1
	// KindNumber is a numeric value.
	KindNumber
	// KindSentinel is an autosize/autocalculate marker kept in place of a number.
	KindSentinel
)

// String returns the kind's display name.
func (k ValueKind) String() string {
	switch k {
	case KindText:
		return "text"
	case KindNumber:
		return "number"
	case KindSentinel:
		return "sentinel"
	}
	return "unset"
}

// Value is a field value: exactly one of text, number or sentinel. The zero
// Value is unset.
type Value struct {
	kind ValueKind
	text string
	num  float64
}

// Text returns a text value.
func Text(s string) Value { return Value{kind: KindText, text: s} }

// Number returns a numeric value.
func Number(n float64) Value { return Value{kind: KindNumber, num: n} }

// Sentinel returns an autosize/autocalculate marker value.
func Sentinel(s string) Value { return Value{kind: KindSentinel, text: s} }

// Kind returns the variant tag.
func (v Value) Kind() ValueKind { return v.kind }

// IsSet reports whether v holds any variant.
func (v Value) IsSet() bool { return v.kind != 0 }

// IsNumber reports whether v holds a number.
func (v Value) IsNumber() bool { return v.kind == KindNumber }

// IsSentinel reports whether v holds an autosize/autocalculate marker.
func (v Value) IsSentinel() bool { return v.kind == KindSentinel }

// Number returns the numeric value and whether v holds one.
func (v Value) Number() (float64, bool) {
	return v.num, v.kind == KindNumber
}

// String renders the value as it would appear in an instance file.
func (v Value) String() string {
	if v.kind == KindNumber {
		return formatNumber(v.num)
	}
	return v.text
}

// Interface returns the value as a float64 or a string, or nil when unset.
func (v Value) Interface() any {
	switch v.kind {
	case KindNumber:
		return v.num
	case KindText, KindSentinel:
		return v.text
	}
	return nil
}

// CtyValue converts v to a cty value. Sentinels become strings.
func (v Value) CtyValue() cty.Value {
	switch v.kind {
	case KindNumber:
		return cty.NumberFloatVal(v.num)
	case KindText, KindSentinel:
		return cty.StringVal(v.text)
	}
	return cty.NullVal(cty.DynamicPseudoType)
}

func formatNumber(n float64) string {
	return strconv.FormatFloat(n, 'f', -1, 64)
}
