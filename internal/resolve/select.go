package resolve

import (
	"regexp"
	"strings"

	"github.com/jonathan/easy-apply/internal/classify"
	"github.com/jonathan/easy-apply/internal/textmatch"
	"github.com/jonathan/easy-apply/internal/types"
)

// Dropdown keys. Only these question types are ever resolved.
const (
	KeyStartDateNotice     = "start_date_notice_period"
	KeyNoticePeriodWeeks   = "notice_period_weeks"
	KeyEnrollmentStatus    = "education_enrollment_status"
	KeySummerAvailability  = "summer_2026_internship_availability"
	KeyLanguageProficiency = "language_proficiency"
	KeyReferralSource      = "referral_source"
	KeyEducationLevel      = "education_level"
)

// Option count ceilings per dropdown type
const (
	selfIDCeiling      = 15
	referralCeiling    = 25
	educationCeiling   = 15
	proficiencyCeiling = 8
	binaryCeiling      = 3
)

// Select reason codes
const (
	ReasonUnsupportedDropdown = "unsupported_dropdown_type"
	ReasonTooManyOptions      = "too_many_options"
	ReasonCalendarDates       = "contains_calendar_dates"
	ReasonFreeTextOption      = "contains_freetext_option"
	ReasonNoTimeOffset        = "no_matching_time_offset"
	ReasonNotBinary           = "not_binary_dropdown"
	ReasonDateRanges          = "contains_date_ranges"
	ReasonNonBinaryOptions    = "contains_non_binary_options"
)

var selectRules = textmatch.Table{
	{All: []string{"available", "august", "2026"}, Words: []string{"may"}, Key: KeySummerAvailability},
	{All: []string{"availability", "august", "2026"}, Words: []string{"may"}, Key: KeySummerAvailability},
	// "May-August" normalises to a single word
	{All: []string{"mayaugust", "2026"}, Key: KeySummerAvailability},

	{All: []string{"when", "start"}, Key: KeyStartDateNotice},
	{All: []string{"start", "date"}, Key: KeyStartDateNotice},
	{All: []string{"notice", "period"}, Key: KeyStartDateNotice},
	{All: []string{"how", "soon"}, Key: KeyStartDateNotice},

	{All: []string{"currently", "pursuing", "degree"}, Key: KeyEnrollmentStatus},
	{All: []string{"currently", "enrolled"}, Key: KeyEnrollmentStatus},
	{All: []string{"current", "student"}, Key: KeyEnrollmentStatus},
	{All: []string{"currently", "attending"}, Key: KeyEnrollmentStatus},

	{All: []string{"language", "level"}, Key: KeyLanguageProficiency},
	{All: []string{"language", "proficiency"}, Key: KeyLanguageProficiency},
	{All: []string{"select", "level"}, Key: KeyLanguageProficiency},
	{All: []string{"english", "level"}, Key: KeyLanguageProficiency},
	{All: []string{"english", "proficiency"}, Key: KeyLanguageProficiency},

	{All: []string{"where", "learned", "opening"}, Key: KeyReferralSource},
	{All: []string{"how", "hear", "about"}, Key: KeyReferralSource},
	{All: []string{"how", "find", "job"}, Key: KeyReferralSource},
	{All: []string{"referral", "source"}, Key: KeyReferralSource},

	{All: []string{"highest", "level", "education"}, Key: KeyEducationLevel},
	{All: []string{"highest", "education"}, Key: KeyEducationLevel},
	{All: []string{"education", "level", "completed"}, Key: KeyEducationLevel},
	{All: []string{"degree", "level"}, Key: KeyEducationLevel},
}

var (
	yearToken     = regexp.MustCompile(`\b(19|20)\d{2}\b`)
	calendarTerms = []string{
		"january", "february", "march", "april", "may", "june", "july", "august",
		"september", "october", "november", "december",
		"jan", "feb", "mar", "apr", "jun", "jul", "aug", "sep", "sept", "oct", "nov", "dec",
	}
	freeTextTerms    = []string{"other", "custom", "specify", "enter date", "type in", "select date"}
	dateRangeTerms   = []string{"spring", "fall", "summer", "winter", "semester", "quarter", "academic year"}
	enrollmentGuards = []string{
		"other", "maybe", "sometimes", "part time", "parttime", "full time", "fulltime",
		"online", "in person", "inperson", "hybrid",
	}
	availabilityGuards = []string{"other", "maybe", "depends", "not sure", "conditional"}

	enrollmentYes   = []string{"yes", "currently enrolled", "enrolled", "pursuing", "i am"}
	enrollmentNo    = []string{"no", "not enrolled", "i am not", "not currently", "not pursuing"}
	availabilityYes = []string{"yes", "available", "i am available"}
	availabilityNo  = []string{"no", "not available", "unavailable"}
)

// Select resolves a dropdown. Option indexes refer to OptionTexts.
func (r *Resolver) Select(s types.SelectDescriptor) types.Resolution {
	options := s.OptionTexts

	if topic, ok := classify.SelfIDTopic(s.Label); ok {
		if len(options) > selfIDCeiling {
			return unresolvedKey(ReasonTooManyOptions, topic.Key)
		}
		return r.selfID(topic, options)
	}

	rule, ok := selectRules.Match(textmatch.Normalize(s.Label))
	if !ok {
		return types.Unresolved(ReasonUnsupportedDropdown)
	}

	switch rule.Key {
	case KeyStartDateNotice:
		return r.noticePeriod(options)
	case KeyEnrollmentStatus:
		return r.enrollment(options)
	case KeySummerAvailability:
		return r.summerAvailability(options)
	case KeyLanguageProficiency:
		return r.vocabularySelect(options, rule.Key, proficiencyCeiling, "too_many_options_for_proficiency", proficiencyVocabulary, "language_level_not_matched")
	case KeyReferralSource:
		return r.vocabularySelect(options, rule.Key, referralCeiling, "too_many_referral_options", referralVocabulary, "referral_source_not_matched")
	case KeyEducationLevel:
		return r.vocabularySelect(options, rule.Key, educationCeiling, "too_many_education_options", educationVocabulary, "education_level_not_matched")
	}
	return types.Unresolved(ReasonUnsupportedDropdown)
}

// noticePeriod resolves start-date dropdowns expressed as discrete offsets.
// Any calendar date or free-text option disqualifies the whole dropdown.
func (r *Resolver) noticePeriod(options []string) types.Resolution {
	key := KeyStartDateNotice
	weeks, ok := r.bank.String(KeyNoticePeriodWeeks)
	if !ok {
		return unresolvedKey("notice_period_not_configured", key)
	}
	if anyOption(options, func(text string) bool {
		return yearToken.MatchString(text) || textmatch.AnyWord(text, calendarTerms...)
	}) {
		return unresolvedKey(ReasonCalendarDates, key)
	}
	if anyOption(options, func(text string) bool { return textmatch.AnyTerm(text, freeTextTerms...) }) {
		return unresolvedKey(ReasonFreeTextOption, key)
	}

	weeks = strings.TrimSpace(weeks)
	if list, ok := timeOffsets[weeks]; ok {
		if i, ok := pickUnique(options, phrases{Match: list}); ok {
			return types.IndexResolution(i, types.ConfidenceHigh, key)
		}
	}
	if i, ok := pickUnique(options, phrases{Match: []string{weeks + " week"}}); ok {
		return types.IndexResolution(i, types.ConfidenceHigh, key)
	}
	return unresolvedKey(ReasonNoTimeOffset, key)
}

func (r *Resolver) enrollment(options []string) types.Resolution {
	key := KeyEnrollmentStatus
	v := r.bank.Get(key)
	if !v.IsSet() {
		return unresolvedKey("enrollment_status_not_configured", key)
	}
	enrolled, ok := v.AsBool()
	if !ok {
		return unresolvedKey(wrongType(key), key)
	}
	if len(options) > binaryCeiling {
		return unresolvedKey(ReasonNotBinary, key)
	}
	if anyOption(options, func(text string) bool {
		return yearToken.MatchString(text) || textmatch.AnyTerm(text, dateRangeTerms...)
	}) {
		return unresolvedKey(ReasonDateRanges, key)
	}
	if anyOption(options, func(text string) bool { return textmatch.AnyTerm(text, enrollmentGuards...) }) {
		return unresolvedKey(ReasonNonBinaryOptions, key)
	}
	if i, ok := pickYesNo(options, enrolled, enrollmentYes, enrollmentNo); ok {
		return types.IndexResolution(i, types.ConfidenceHigh, key)
	}
	return unresolvedKey(ReasonNoYesNoMatch, key)
}

// summerAvailability answers the May to August 2026 window from UserAssertions
func (r *Resolver) summerAvailability(options []string) types.Resolution {
	key := KeySummerAvailability
	v, ok := r.assertions.Lookup(key)
	if !ok {
		return unresolvedKey("summer_2026_availability_not_in_user_assertions", key)
	}
	available, ok := v.AsBool()
	if !ok {
		return unresolvedKey(wrongType(key), key)
	}
	if len(options) > binaryCeiling {
		return unresolvedKey(ReasonNotBinary, key)
	}
	if anyOption(options, func(text string) bool { return textmatch.AnyTerm(text, availabilityGuards...) }) {
		return unresolvedKey(ReasonNonBinaryOptions, key)
	}
	if i, ok := pickYesNo(options, available, availabilityYes, availabilityNo); ok {
		return types.IndexResolution(i, types.ConfidenceHigh, key)
	}
	return unresolvedKey(ReasonNoYesNoMatch, key)
}

func (r *Resolver) vocabularySelect(options []string, key string, ceiling int, ceilingReason string, vocab vocabulary, notMatched string) types.Resolution {
	if len(options) > ceiling {
		return unresolvedKey(ceilingReason, key)
	}
	value, ok := r.bank.String(key)
	if !ok {
		return unresolvedKey(notConfigured(key), key)
	}
	entry, ok := vocab[strings.ToLower(value)]
	if !ok {
		return unresolvedKey(notMatched, key)
	}
	if i, ok := pickUnique(options, entry); ok {
		return types.IndexResolution(i, types.ConfidenceHigh, key)
	}
	return unresolvedKey(notMatched, key)
}

// pickYesNo returns the single non-placeholder option expressing want. Negative
// phrasing is checked first so "not enrolled" never reads as yes.
func pickYesNo(options []string, want bool, yesTerms, noTerms []string) (int, bool) {
	found := -1
	for i, opt := range options {
		if classify.IsPlaceholderOption(opt) {
			continue
		}
		text := textmatch.NormalizeOption(opt)
		isNo := textmatch.AnyPhrase(text, noTerms...)
		isYes := !isNo && textmatch.AnyPhrase(text, yesTerms...)
		if (want && isYes) || (!want && isNo) {
			if found >= 0 {
				return -1, false
			}
			found = i
		}
	}
	return found, found >= 0
}

func anyOption(options []string, pred func(text string) bool) bool {
	for _, opt := range options {
		if pred(textmatch.Normalize(opt)) {
			return true
		}
	}
	return false
}
