package textmatch

import "strings"

// HasTerm reports whether term appears in normalised text starting at a word
// boundary. The right side is open so "year" matches "years", while "male"
// does not match "female" and "18" does not match "2018".
func HasTerm(text, term string) bool {
	if term == "" {
		return false
	}
	return strings.Contains(" "+text, " "+term)
}

// HasWord reports whether phrase appears in normalised text as whole words
func HasWord(text, phrase string) bool {
	if phrase == "" {
		return false
	}
	return strings.Contains(" "+text+" ", " "+phrase+" ")
}

// AllTerms reports whether every term is present
func AllTerms(text string, terms ...string) bool {
	if len(terms) == 0 {
		return false
	}
	for _, term := range terms {
		if !HasTerm(text, term) {
			return false
		}
	}
	return true
}

// AnyTerm reports whether at least one term is present
func AnyTerm(text string, terms ...string) bool {
	for _, term := range terms {
		if HasTerm(text, term) {
			return true
		}
	}
	return false
}

// AnyWord reports whether at least one phrase is present as whole words
func AnyWord(text string, phrases ...string) bool {
	for _, phrase := range phrases {
		if HasWord(text, phrase) {
			return true
		}
	}
	return false
}

// shortPhrase is the length at or below which a phrase must match as a whole word
const shortPhrase = 3

// HasPhrase matches vocabulary phrases against option text. Short tokens such
// as "no", "ba" or "phd" must match as whole words; longer phrases match as terms.
func HasPhrase(text, phrase string) bool {
	if len(phrase) <= shortPhrase {
		return HasWord(text, phrase)
	}
	return HasTerm(text, phrase)
}

// AnyPhrase reports whether at least one vocabulary phrase is present
func AnyPhrase(text string, phrases ...string) bool {
	for _, phrase := range phrases {
		if HasPhrase(text, phrase) {
			return true
		}
	}
	return false
}

// Rule maps a keyword set to a semantic key. A rule matches when every term in
// All and every whole word in Words is present and no term in None is present.
// Reason, when set, is the reason code reported for the rule's key.
type Rule struct {
	All    []string
	Words  []string
	None   []string
	Key    string
	Reason string
}

// Matches evaluates the rule against normalised text
func (r Rule) Matches(text string) bool {
	if len(r.All) == 0 && len(r.Words) == 0 {
		return false
	}
	for _, term := range r.All {
		if !HasTerm(text, term) {
			return false
		}
	}
	for _, word := range r.Words {
		if !HasWord(text, word) {
			return false
		}
	}
	return !AnyTerm(text, r.None...)
}

// Table is an ordered rule list; the first matching rule wins
type Table []Rule

// Match returns the first rule that matches text
func (t Table) Match(text string) (Rule, bool) {
	for _, rule := range t {
		if rule.Matches(text) {
			return rule, true
		}
	}
	return Rule{}, false
}

// MatchedKeys returns the distinct keys of every rule that matches text, in
// table order. More than one key means the text is ambiguous for the table.
func (t Table) MatchedKeys(text string) []string {
	var keys []string
	seen := map[string]bool{}
	for _, rule := range t {
		if !seen[rule.Key] && rule.Matches(text) {
			seen[rule.Key] = true
			keys = append(keys, rule.Key)
		}
	}
	return keys
}

// Keys returns the distinct keys of the table in first-seen order
func (t Table) Keys() []string {
	seen := make(map[string]bool, len(t))
	keys := make([]string, 0, len(t))
	for _, rule := range t {
		if !seen[rule.Key] {
			seen[rule.Key] = true
			keys = append(keys, rule.Key)
		}
	}
	return keys
}
