package answers

import "sort"

// AnswerBank maps semantic keys to configured values. It is copied on
// construction and read-only afterwards.
type AnswerBank struct {
	values map[string]Value
}

// NewAnswerBank builds a bank from the given values
func NewAnswerBank(values map[string]Value) AnswerBank {
	return AnswerBank{values: copyValues(values)}
}

// Get returns the value for key, unset when absent
func (b AnswerBank) Get(key string) Value {
	return b.values[key]
}

// String returns a configured string fact
func (b AnswerBank) String(key string) (string, bool) {
	return b.values[key].AsString()
}

// Bool returns a configured boolean fact
func (b AnswerBank) Bool(key string) (bool, bool) {
	return b.values[key].AsBool()
}

// Keys returns the configured keys in sorted order
func (b AnswerBank) Keys() []string {
	return sortedKeys(b.values)
}

// Len returns the number of configured keys
func (b AnswerBank) Len() int {
	return len(b.values)
}

// UserAssertions is the fail-closed fact set. A key that is absent or null makes
// the field it would answer ineligible for automation; nothing is ever inferred
// from the AnswerBank in its place.
type UserAssertions struct {
	values map[string]Value
}

// NewUserAssertions builds an assertion set from the given values
func NewUserAssertions(values map[string]Value) UserAssertions {
	return UserAssertions{values: copyValues(values)}
}

// Lookup returns the asserted value and whether the key is asserted at all
func (a UserAssertions) Lookup(key string) (Value, bool) {
	v, ok := a.values[key]
	return v, ok && v.IsSet()
}

// Bool returns an asserted boolean
func (a UserAssertions) Bool(key string) (bool, bool) {
	return a.values[key].AsBool()
}

// String returns an asserted string
func (a UserAssertions) String(key string) (string, bool) {
	return a.values[key].AsString()
}

// Keys returns the asserted keys in sorted order
func (a UserAssertions) Keys() []string {
	return sortedKeys(a.values)
}

// Store bundles both fact sets loaded for one run
type Store struct {
	Bank       AnswerBank
	Assertions UserAssertions
}

func copyValues(values map[string]Value) map[string]Value {
	out := make(map[string]Value, len(values))
	for k, v := range values {
		if v.IsSet() {
			out[k] = v
		}
	}
	return out
}

func sortedKeys(values map[string]Value) []string {
	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
