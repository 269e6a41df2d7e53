package texttools

import (
	"fmt"
	"strconv"
	"strings"
)

// Kind identifies the element type carried by a Value.
type Kind int

// Value kinds, in inference priority order.
const (
	KindText Kind = iota
	KindInt
	KindFloat
)

// String returns the kind name as used in node configs ("string", "int", "float").
func (k Kind) String() string {
	switch k {
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	default:
		return "string"
	}
}

// ParseKind maps a config string to a Kind. Unrecognized names fall back to text.
func ParseKind(s string) Kind {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "int", "integer":
		return KindInt
	case "float", "number":
		return KindFloat
	default:
		return KindText
	}
}

// Value is a tagged variant over {text, integer, float}. It replaces the
// host's runtime "anything" typing with something downstream code can
// pattern-match exhaustively.
type Value struct {
	Kind  Kind
	Text  string
	Int   int64
	Float float64
}

// TextValue creates a text value.
func TextValue(s string) Value { return Value{Kind: KindText, Text: s} }

// IntValue creates an integer value.
func IntValue(i int64) Value { return Value{Kind: KindInt, Int: i} }

// FloatValue creates a floating-point value.
func FloatValue(f float64) Value { return Value{Kind: KindFloat, Float: f} }

// String stringifies the value the way the joiner needs: integers without a
// decimal point, floats in their shortest round-trippable form.
func (v Value) String() string {
	switch v.Kind {
	case KindInt:
		return strconv.FormatInt(v.Int, 10)
	case KindFloat:
		return strconv.FormatFloat(v.Float, 'g', -1, 64)
	default:
		return v.Text
	}
}

// Native returns the value as the plain Go type a node output carries.
func (v Value) Native() any {
	switch v.Kind {
	case KindInt:
		return v.Int
	case KindFloat:
		return v.Float
	default:
		return v.Text
	}
}

// Cast converts text to the requested kind, best-effort. An unparseable
// numeric cast keeps the item as text rather than defaulting it to zero, so
// bad data stays visible downstream.
func Cast(s string, k Kind) Value {
	switch k {
	case KindInt:
		if i, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64); err == nil {
			return IntValue(i)
		}
	case KindFloat:
		if f, err := strconv.ParseFloat(strings.TrimSpace(s), 64); err == nil {
			return FloatValue(f)
		}
	}
	return TextValue(s)
}

// List is an ordered sequence of values plus the element kind the sequence
// carries as a whole.
type List struct {
	Kind   Kind
	Values []Value
}

// Len returns the number of elements.
func (l List) Len() int { return len(l.Values) }

// At returns the element at index i, or the typed empty sentinel for the
// list's kind when i is out of range. The second result reports whether the
// index was in range.
func (l List) At(i int) (Value, bool) {
	if i < 0 || i >= len(l.Values) {
		return EmptyFor(l.Kind), false
	}
	return l.Values[i], true
}

// EmptyFor returns the documented empty sentinel for a kind: "" for text,
// 0 for integers, 0.0 for floats.
func EmptyFor(k Kind) Value {
	switch k {
	case KindInt:
		return IntValue(0)
	case KindFloat:
		return FloatValue(0)
	default:
		return TextValue("")
	}
}

// InferKind inspects a raw sequence and reports the narrowest kind that
// covers every element: all integers, else all numerics, else text.
func InferKind(items []any) Kind {
	if len(items) == 0 {
		return KindText
	}
	kind := KindInt
	for _, item := range items {
		switch item.(type) {
		case int, int32, int64:
			// still integral
		case float32, float64:
			if kind == KindInt {
				kind = KindFloat
			}
		default:
			return KindText
		}
	}
	return kind
}

// FromNative converts a raw host value into a tagged Value.
func FromNative(item any) Value {
	switch v := item.(type) {
	case string:
		return TextValue(v)
	case int:
		return IntValue(int64(v))
	case int32:
		return IntValue(int64(v))
	case int64:
		return IntValue(v)
	case float32:
		return FloatValue(float64(v))
	case float64:
		return FloatValue(v)
	case bool:
		return TextValue(strconv.FormatBool(v))
	case nil:
		return TextValue("")
	default:
		return TextValue(fmt.Sprint(v))
	}
}

// ListFromNative tags a raw sequence with its inferred element kind.
func ListFromNative(items []any) List {
	l := List{Kind: InferKind(items), Values: make([]Value, 0, len(items))}
	for _, item := range items {
		l.Values = append(l.Values, FromNative(item))
	}
	return l
}
