// Package textmatch provides the text normalisation and declarative keyword rule
// tables shared by the classifiers and resolvers.
package textmatch

import (
	"strings"
	"unicode"
)

// optionFillers are dropped from option text before matching
var optionFillers = []string{"please select", "select one", "weeks", "months", "choose", "pick"}

// Normalize lowercases text, strips punctuation and collapses whitespace.
// Apostrophes and hyphens are removed rather than replaced, so "don't" becomes
// "dont" and "e-mail" becomes "email".
func Normalize(text string) string {
	if text == "" {
		return ""
	}
	var sb strings.Builder
	sb.Grow(len(text))
	for _, r := range strings.ToLower(text) {
		switch {
		case unicode.IsPunct(r) || unicode.IsSymbol(r):
			continue
		case unicode.IsSpace(r):
			sb.WriteRune(' ')
		default:
			sb.WriteRune(r)
		}
	}
	return strings.Join(strings.Fields(sb.String()), " ")
}

// NormalizeOption normalises dropdown option text and removes filler words
func NormalizeOption(text string) string {
	normalized := Normalize(text)
	if normalized == "" {
		return ""
	}
	for _, filler := range optionFillers {
		normalized = strings.ReplaceAll(normalized, filler, "")
	}
	return strings.Join(strings.Fields(normalized), " ")
}

// Combine joins several text sources into one normalised matching string
func Combine(parts ...string) string {
	return Normalize(strings.Join(parts, " "))
}
