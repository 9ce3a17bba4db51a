// Package answers holds the configured facts the resolvers answer from: the
// AnswerBank and the stricter, fail-closed UserAssertions.
package answers

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// Kind is the dynamic type of a configured value
type Kind int

// Value kinds. The zero Value is unset.
const (
	KindUnset Kind = iota
	KindString
	KindBool
)

func (k Kind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindBool:
		return "bool"
	}
	return "unset"
}

// Value is a configured fact: a string, a boolean, or explicitly not configured
type Value struct {
	kind Kind
	str  string
	b    bool
}

// StringValue returns a string fact. The empty string is treated as not configured.
func StringValue(s string) Value {
	if s == "" {
		return Value{}
	}
	return Value{kind: KindString, str: s}
}

// BoolValue returns a boolean fact
func BoolValue(b bool) Value {
	return Value{kind: KindBool, b: b}
}

// Kind returns the value's dynamic type
func (v Value) Kind() Kind { return v.kind }

// IsSet reports whether the value is configured
func (v Value) IsSet() bool { return v.kind != KindUnset }

// AsString returns the string form; false unless the value is a string
func (v Value) AsString() (string, bool) {
	return v.str, v.kind == KindString
}

// AsBool returns the boolean form; false unless the value is a boolean
func (v Value) AsBool() (bool, bool) {
	return v.b, v.kind == KindBool
}

func (v Value) String() string {
	switch v.kind {
	case KindString:
		return v.str
	case KindBool:
		return strconv.FormatBool(v.b)
	}
	return "<unset>"
}

// valueOf converts a decoded document value. Numbers are kept as their decimal
// text so that "3.50" written in a file reaches a form field unchanged.
func valueOf(raw any) (Value, error) {
	switch v := raw.(type) {
	case nil:
		return Value{}, nil
	case string:
		return StringValue(v), nil
	case bool:
		return BoolValue(v), nil
	case json.Number:
		return StringValue(v.String()), nil
	case float64:
		return StringValue(strconv.FormatFloat(v, 'f', -1, 64)), nil
	case int:
		return StringValue(strconv.Itoa(v)), nil
	case int64:
		return StringValue(strconv.FormatInt(v, 10)), nil
	case uint64:
		return StringValue(strconv.FormatUint(v, 10)), nil
	}
	return Value{}, fmt.Errorf("unsupported value type %T", raw)
}
