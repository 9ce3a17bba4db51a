package resolve

import (
	"sort"
	"strings"

	"github.com/jonathan/easy-apply/internal/answers"
)

// Audit reports how an answer store lines up with the keys the resolvers read
type Audit struct {
	// UnknownBankKeys are configured bank keys no resolver reads
	UnknownBankKeys []string
	// UnknownAssertionKeys are configured assertion keys no resolver reads
	UnknownAssertionKeys []string
	// MissingBankKeys are resolver keys the bank does not configure
	MissingBankKeys []string
	// InvalidValues maps a vocabulary-backed key to its unrecognised value
	InvalidValues map[string]string
}

// OK reports whether every configured value can be used
func (a Audit) OK() bool {
	return len(a.InvalidValues) == 0
}

// AuditStore compares store against the resolver keys and vocabularies.
// Missing keys are expected; every one of them simply stays unresolved.
func AuditStore(store *answers.Store) Audit {
	audit := Audit{InvalidValues: map[string]string{}}
	if store == nil {
		store = &answers.Store{}
	}

	known := toSet(BankKeys())
	configured := toSet(store.Bank.Keys())
	for _, key := range store.Bank.Keys() {
		if !known[key] {
			audit.UnknownBankKeys = append(audit.UnknownBankKeys, key)
			continue
		}
		allowed, ok := AllowedValues(key)
		if !ok {
			continue
		}
		value, isString := store.Bank.String(key)
		if !isString || !toSet(allowed)[strings.ToLower(value)] {
			audit.InvalidValues[key] = store.Bank.Get(key).String()
		}
	}
	for _, key := range BankKeys() {
		if !configured[key] {
			audit.MissingBankKeys = append(audit.MissingBankKeys, key)
		}
	}

	knownAssertions := toSet(AssertionKeys())
	for _, key := range store.Assertions.Keys() {
		if !knownAssertions[key] {
			audit.UnknownAssertionKeys = append(audit.UnknownAssertionKeys, key)
		}
	}
	return audit
}

// InvalidKeys returns the keys of InvalidValues, sorted
func (a Audit) InvalidKeys() []string {
	keys := make([]string, 0, len(a.InvalidValues))
	for k := range a.InvalidValues {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func toSet(keys []string) map[string]bool {
	set := make(map[string]bool, len(keys))
	for _, k := range keys {
		set[k] = true
	}
	return set
}
