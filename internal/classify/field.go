// Package classify maps field descriptors to semantic classifications using
// ordered, deterministic rules. The first matching rule wins.
package classify

import (
	"strings"

	"github.com/jonathan/easy-apply/internal/textmatch"
	"github.com/jonathan/easy-apply/internal/types"
)

var (
	fullNameTerms = []string{"legal name", "full name", "applicant name", "your name"}
	fullNameAnti  = []string{
		"signature", "sign", "certify", "initials", "company name", "school name",
		"reference", "emergency", "manager", "recruiter", "preferred name", "nickname",
	}

	// matched against lowercased raw text since normalisation strips the separators
	dateFormatMarkers = []string{
		"mm/dd/yyyy", "dd/mm/yyyy", "yyyy-mm-dd", "mm-dd-yyyy",
		"today's date", "todays date", "today’s date", "current date",
	}
	// dates the applicant chooses, not the date of filling the form
	currentDateAnti = []string{
		"birth", "dob", "graduat", "start", "availab", "expir", "end date",
		"begin", "commenc", "join", "when", "earliest", "expected", "move", "relocat",
	}

	emailAnti       = []string{"username", "user name", "account", "login"}
	phoneTerms      = []string{"phone", "mobile number", "cell number"}
	phoneAnti       = []string{"extension", "ext"}
	institutionTerm = []string{"college", "university", "institution"}
	institutionAnti = []string{"date", "year", "gpa", "major", "degree", "city", "location"}

	creativePhrases = []string{
		"tell us about yourself", "tell us more about", "what makes you unique",
		"makes you a great fit", "describe yourself", "why should we hire you",
		"cover letter", "anything else", "additional information",
	}

	numericTerms = []string{"year", "yrs", "experience", "month", "salary", "compensation", "notice", "gpa"}
	dateTerms    = []string{"date", "when", "start date", "availability", "available", "begin", "commence"}
)

// Field classifies a free-entry field
func Field(d types.FieldDescriptor) types.Classification {
	raw := strings.ToLower(strings.Join([]string{d.Label, d.Placeholder, d.AriaLabel}, " "))
	text := textmatch.Normalize(raw)
	singleLine := d.Kind != types.KindTextarea

	if c, ok := tier1(raw, text); ok {
		return c
	}
	if c, ok := tier2(d.Kind, text); ok {
		return c
	}
	if textmatch.AnyTerm(text, creativePhrases...) {
		return types.SkipCreative
	}
	if d.Kind == types.KindNumber || (singleLine && textmatch.AnyTerm(text, numericTerms...)) {
		return types.Numeric
	}
	if d.Kind == types.KindDate || (singleLine && textmatch.AnyTerm(text, dateTerms...)) {
		return types.Date
	}
	switch d.Kind {
	case types.KindTextarea, types.KindText, types.KindTel, types.KindURL, "":
		return types.Text
	}
	return types.Unknown
}

func tier1(raw, text string) (types.Classification, bool) {
	if textmatch.AnyTerm(text, fullNameTerms...) && !textmatch.AnyTerm(text, fullNameAnti...) {
		return types.Tier1(types.SubtypeFullName), true
	}
	if containsAny(raw, dateFormatMarkers) && !textmatch.AnyTerm(text, currentDateAnti...) {
		return types.Tier1(types.SubtypeCurrentDate), true
	}
	return types.Classification{}, false
}

func tier2(kind types.FieldKind, text string) (types.Classification, bool) {
	if (kind == types.KindEmail || textmatch.HasTerm(text, "email")) && !textmatch.AnyTerm(text, emailAnti...) {
		return types.Tier2(types.SubtypeEmail), true
	}
	if (kind == types.KindTel || textmatch.AnyTerm(text, phoneTerms...)) && !textmatch.AnyWord(text, phoneAnti...) {
		return types.Tier2(types.SubtypePhone), true
	}
	if textmatch.AnyTerm(text, institutionTerm...) && !textmatch.AnyTerm(text, institutionAnti...) {
		return types.Tier2(types.SubtypeInstitution), true
	}
	return types.Classification{}, false
}

// DateFormat returns the date layout a current-date field advertises, as a Go
// time layout. MM/DD/YYYY is assumed when the label names no format.
func DateFormat(d types.FieldDescriptor) string {
	raw := strings.ToLower(strings.Join([]string{d.Label, d.Placeholder, d.AriaLabel}, " "))
	switch {
	case strings.Contains(raw, "yyyy-mm-dd"):
		return "2006-01-02"
	case strings.Contains(raw, "dd/mm/yyyy"):
		return "02/01/2006"
	case strings.Contains(raw, "mm-dd-yyyy"):
		return "01-02-2006"
	}
	return "01/02/2006"
}

func containsAny(s string, subs []string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
