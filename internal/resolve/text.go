package resolve

import (
	"regexp"

	"github.com/jonathan/easy-apply/internal/classify"
	"github.com/jonathan/easy-apply/internal/textmatch"
	"github.com/jonathan/easy-apply/internal/types"
)

// Fixed bank keys for the tiered classifications and date fields
const (
	KeyFullName       = "applicant_full_name"
	KeyEmail          = "applicant_email"
	KeyPhone          = "applicant_phone_number"
	KeyInstitution    = "applicant_college_university"
	KeyStartDate      = "available_start_date"
	KeyGraduationDate = "graduation_date"
)

// KeyCurrentDate is reported as the matched key of current-date fields
const KeyCurrentDate = "current_date"

var tierKeys = map[string]string{
	types.SubtypeFullName:    KeyFullName,
	types.SubtypeEmail:       KeyEmail,
	types.SubtypePhone:       KeyPhone,
	types.SubtypeInstitution: KeyInstitution,
}

var numericValue = regexp.MustCompile(`^\d+(\.\d+)?$`)

// textRules map numeric and text field labels to bank keys
var textRules = textmatch.Table{
	{All: []string{"year", "experience"}, Key: "years_experience"},
	{All: []string{"yrs", "experience"}, Key: "years_experience"},
	{All: []string{"work experience"}, Key: "work_experience"},
	{All: []string{"total experience"}, Key: "total_experience"},
	{All: []string{"notice period", "week"}, Key: "notice_period_weeks"},
	{All: []string{"notice"}, Key: "notice_period"},
	{All: []string{"gpa"}, Key: "gpa"},
	{All: []string{"linkedin", "url"}, Key: "linkedin_url"},
	{All: []string{"linkedin", "profile"}, Key: "linkedin_url"},
	{All: []string{"portfolio", "url"}, Key: "portfolio_url"},
	{All: []string{"portfolio", "website"}, Key: "portfolio_url"},
	{All: []string{"github"}, Key: "github_url"},
	{All: []string{"website"}, Key: "website"},
	{All: []string{"skills"}, Key: "skills_summary"},
	{All: []string{"why", "interested"}, Key: "why_interested"},
	{All: []string{"why", "want", "work"}, Key: "why_interested"},
}

// dateRules map date field labels to bank keys. Dates are never computed.
var dateRules = textmatch.Table{
	{All: []string{"graduat"}, Key: KeyGraduationDate},
	{All: []string{"start"}, Key: KeyStartDate},
	{All: []string{"available"}, Key: KeyStartDate},
	{All: []string{"availability"}, Key: KeyStartDate},
	{All: []string{"begin"}, Key: KeyStartDate},
	{All: []string{"commence"}, Key: KeyStartDate},
}

// Text resolves a free-entry field given its classification
func (r *Resolver) Text(d types.FieldDescriptor, c types.Classification) types.Resolution {
	switch c.Category {
	case types.CategoryTier1Identity, types.CategoryTier2Contact:
		if c.Subtype == types.SubtypeCurrentDate {
			today := r.now().Format(classify.DateFormat(d))
			return types.ValueResolution(today, types.ConfidenceHigh, KeyCurrentDate)
		}
		key, ok := tierKeys[c.Subtype]
		if !ok {
			return types.Unresolved(ReasonUnknownField)
		}
		return r.bankText(key)
	case types.CategorySkipCreative:
		return types.Unresolved(ReasonSkipCreative)
	case types.CategoryNumeric:
		res := r.keyword(textRules, d)
		if res.Resolved() && !numericValue.MatchString(res.Value) {
			return unresolvedKey(ReasonNonNumeric, res.MatchedKey)
		}
		return res
	case types.CategoryDate:
		return r.keyword(dateRules, d)
	case types.CategoryText:
		return r.keyword(textRules, d)
	}
	return types.Unresolved(ReasonUnknownField)
}

func (r *Resolver) keyword(table textmatch.Table, d types.FieldDescriptor) types.Resolution {
	rule, ok := table.Match(textmatch.Combine(d.Label, d.Placeholder, d.AriaLabel))
	if !ok {
		return types.Unresolved(ReasonUnmatched)
	}
	return r.bankText(rule.Key)
}

func (r *Resolver) bankText(key string) types.Resolution {
	v := r.bank.Get(key)
	if !v.IsSet() {
		return unresolvedKey(notConfigured(key), key)
	}
	s, ok := v.AsString()
	if !ok {
		return unresolvedKey(wrongType(key), key)
	}
	return types.ValueResolution(s, types.ConfidenceHigh, key)
}

func unresolvedKey(reason, key string) types.Resolution {
	res := types.Unresolved(reason)
	res.MatchedKey = key
	return res
}
