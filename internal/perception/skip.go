package perception

import (
	"strings"
	"unicode"

	"github.com/jonathan/easy-apply/internal/textmatch"
)

// DefaultTextSkipPatterns are the text-field keywords the host platform is assumed to pre-fill
func DefaultTextSkipPatterns() []string {
	return []string{
		"phone", "mobile", "telephone", "cell", "phone number",
		"email", "e-mail", "email address",
		"address", "street", "city", "zip", "postal", "country",
		"linkedin", "website", "url", "portfolio",
		"first name", "last name", "full name",
		"prefix", "suffix",
	}
}

// DefaultSelectSkipPatterns are the dropdown keywords the host platform is assumed to pre-fill
func DefaultSelectSkipPatterns() []string {
	return []string{
		"phone", "mobile", "telephone", "country code", "area code",
		"email", "e-mail", "email address",
		"country", "state", "province", "region",
		"prefix", "suffix", "first name", "last name",
	}
}

// skipList matches normalised patterns as terms against a field's identifying text
type skipList []string

func newSkipList(patterns []string) skipList {
	list := make(skipList, 0, len(patterns))
	for _, p := range patterns {
		if n := textmatch.Normalize(p); n != "" {
			list = append(list, n)
		}
	}
	return list
}

// match returns the first pattern present in any of the given texts
func (l skipList) match(texts ...string) (string, bool) {
	combined := textmatch.Normalize(strings.Join(texts, " "))
	for _, pattern := range l {
		if textmatch.HasTerm(combined, pattern) {
			return pattern, true
		}
	}
	return "", false
}

// identifierWords splits an HTML id or name attribute into words so that
// "phoneNumber-nationalNumber" reads as "phone number national number".
func identifierWords(id string) string {
	var sb strings.Builder
	var prev rune
	for _, r := range id {
		switch {
		case unicode.IsUpper(r) && unicode.IsLower(prev):
			sb.WriteRune(' ')
			sb.WriteRune(unicode.ToLower(r))
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			sb.WriteRune(unicode.ToLower(r))
		default:
			sb.WriteRune(' ')
		}
		prev = r
	}
	return sb.String()
}
