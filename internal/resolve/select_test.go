package resolve

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jonathan/easy-apply/internal/answers"
	"github.com/jonathan/easy-apply/internal/classify"
	"github.com/jonathan/easy-apply/internal/types"
)

func dropdown(label string, options ...string) types.SelectDescriptor {
	return types.SelectDescriptor{Label: label, OptionTexts: options, OptionValues: options}
}

type selectCase struct {
	name       string
	bank       values
	assertions values
	field      types.SelectDescriptor
	index      int
	reason     string
}

func runSelectCases(t *testing.T, tests []selectCase) {
	t.Helper()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := newResolver(tt.bank, tt.assertions, Options{}).Select(tt.field)
			assert.Equal(t, tt.index, res.Index)
			assert.Equal(t, tt.reason, res.Reason)
			if tt.reason != "" {
				assert.Equal(t, types.ConfidenceLow, res.Confidence)
			}
		})
	}
}

func TestSelect_SelfIdentification(t *testing.T) {
	male := values{classify.KeyGender: answers.StringValue("male")}
	many := make([]string, 16)
	for i := range many {
		many[i] = fmt.Sprintf("Option %d", i)
	}

	runSelectCases(t, []selectCase{
		{"exact male", male, nil, dropdown("Gender", "Male", "Female", "Decline to answer"), 0, ""},
		{"decline fallback", male, nil, dropdown("Gender", "Select an option", "Female", "Decline to answer"), 2, ""},
		{"too many options", male, nil, dropdown("Gender", many...), types.NoOption, ReasonTooManyOptions},
	})

	res := newResolver(male, nil, Options{}).Select(dropdown("Gender", "Select an option", "Female", "Decline to answer"))
	assert.Equal(t, types.ConfidenceMedium, res.Confidence)
	assert.Equal(t, classify.KeyGender, res.MatchedKey)
}

func TestSelect_Unsupported(t *testing.T) {
	runSelectCases(t, []selectCase{
		{"office", nil, nil, dropdown("Which office do you prefer?", "Austin", "Remote"), types.NoOption, ReasonUnsupportedDropdown},
		{"empty label", nil, nil, dropdown("", "Yes", "No"), types.NoOption, ReasonUnsupportedDropdown},
	})
}

func TestSelect_NoticePeriod(t *testing.T) {
	offsets := []string{"Select an option", "Immediately", "2 weeks", "1 month", "2 months"}
	weeks := func(w string) values { return values{KeyNoticePeriodWeeks: answers.StringValue(w)} }

	runSelectCases(t, []selectCase{
		{"two weeks", weeks("2"), nil, dropdown("When can you start?", offsets...), 2, ""},
		{"eight weeks is two months", weeks("8"), nil, dropdown("Notice period", offsets...), 4, ""},
		{"four weeks is one month", weeks("4"), nil, dropdown("How soon can you join?", offsets...), 3, ""},
		{"zero is immediately", weeks("0"), nil, dropdown("Start date", offsets...), 1, ""},
		{"fallback to weeks", weeks("5"), nil, dropdown("Notice period", "1 week", "5 weeks", "10 weeks"), 1, ""},
		{"no offset", weeks("5"), nil, dropdown("Notice period", offsets...), types.NoOption, ReasonNoTimeOffset},
		{"not configured", nil, nil, dropdown("Notice period", offsets...), types.NoOption, "notice_period_not_configured"},
		{"calendar dates", weeks("2"), nil, dropdown("Notice period", "2 weeks", "January 2025"), types.NoOption, ReasonCalendarDates},
		{"free text", weeks("2"), nil, dropdown("Notice period", "2 weeks", "Other (please specify)"), types.NoOption, ReasonFreeTextOption},
	})
}

func TestSelect_CalendarDatesNeverResolve(t *testing.T) {
	for weeks := range timeOffsets {
		r := newResolver(values{KeyNoticePeriodWeeks: answers.StringValue(weeks)}, nil, Options{})
		options := []string{"Immediately", "1 week", "2 weeks", "1 month", "2 months", "3 months", "January 2025"}
		res := r.Select(dropdown("When can you start?", options...))
		assert.False(t, res.Resolved(), "weeks %s", weeks)
		assert.Equal(t, ReasonCalendarDates, res.Reason)
	}
}

func TestSelect_Enrollment(t *testing.T) {
	enrolled := func(b bool) values { return values{KeyEnrollmentStatus: answers.BoolValue(b)} }
	label := "Are you currently enrolled in a degree program?"

	runSelectCases(t, []selectCase{
		{"not enrolled", enrolled(false), nil, dropdown(label, "Select an option", "Yes", "No"), 2, ""},
		{"enrolled", enrolled(true), nil, dropdown(label, "Select an option", "Yes", "No"), 1, ""},
		{"negative phrasing first", enrolled(true), nil, dropdown(label, "Not enrolled", "Currently enrolled"), 1, ""},
		{"negative phrasing no", enrolled(false), nil, dropdown(label, "Not enrolled", "Currently enrolled"), 0, ""},
		{"not configured", nil, nil, dropdown(label, "Yes", "No"), types.NoOption, "enrollment_status_not_configured"},
		{"too many", enrolled(true), nil, dropdown(label, "Select", "Yes", "No", "Later"), types.NoOption, ReasonNotBinary},
		{"date ranges", enrolled(true), nil, dropdown(label, "Spring 2026", "Fall 2026"), types.NoOption, ReasonDateRanges},
		{"non binary", enrolled(true), nil, dropdown(label, "Yes", "No", "Part-time"), types.NoOption, ReasonNonBinaryOptions},
	})
}

func TestSelect_SummerAvailability(t *testing.T) {
	label := "Are you available to work May through August 2026?"
	available := func(b bool) values { return values{KeySummerAvailability: answers.BoolValue(b)} }

	runSelectCases(t, []selectCase{
		{"available", nil, available(true), dropdown(label, "Select an option", "Yes", "No"), 1, ""},
		{"not available", nil, available(false), dropdown(label, "Yes, I am available", "No, not available"), 1, ""},
		{"hyphenated range", nil, available(true), dropdown("Availability May-August 2026", "Yes", "No"), 0, ""},
		{"assertion missing", values{KeySummerAvailability: answers.BoolValue(true)}, nil, dropdown(label, "Yes", "No"), types.NoOption, "summer_2026_availability_not_in_user_assertions"},
		{"conditional options", nil, available(true), dropdown(label, "Yes", "No", "Depends"), types.NoOption, ReasonNonBinaryOptions},
	})
}

func TestSelect_Vocabularies(t *testing.T) {
	levels := []string{
		"Select an option", "Elementary proficiency", "Limited working proficiency",
		"Professional working proficiency", "Full professional proficiency", "Native or bilingual proficiency",
	}
	sources := []string{"Select an option", "LinkedIn", "Indeed", "ZipRecruiter", "Company website", "Employee referral", "Other"}
	degrees := []string{"High School", "Associate's Degree", "Bachelor's Degree", "Master's Degree", "Doctorate"}
	one := func(key, value string) values { return values{key: answers.StringValue(value)} }

	runSelectCases(t, []selectCase{
		{"fluent", one(KeyLanguageProficiency, "fluent"), nil, dropdown("What is your level of proficiency in English?", levels...), 4, ""},
		{"native", one(KeyLanguageProficiency, "Native"), nil, dropdown("English proficiency", levels...), 5, ""},
		{"beginner", one(KeyLanguageProficiency, "beginner"), nil, dropdown("English level", levels...), 1, ""},
		{"proficiency ceiling", one(KeyLanguageProficiency, "fluent"), nil, dropdown("English level", append(levels, "A", "B", "C")...), types.NoOption, "too_many_options_for_proficiency"},
		{"proficiency not configured", nil, nil, dropdown("English level", levels...), types.NoOption, "language_proficiency_not_configured"},

		{"linkedin", one(KeyReferralSource, "linkedin"), nil, dropdown("How did you hear about us?", sources...), 1, ""},
		{"recruiter is not ziprecruiter", one(KeyReferralSource, "recruiter"), nil, dropdown("How did you hear about us?", sources...), types.NoOption, "referral_source_not_matched"},
		{"company website", one(KeyReferralSource, "company_website"), nil, dropdown("Referral source", sources...), 4, ""},
		{"employee referral", one(KeyReferralSource, "referral"), nil, dropdown("Referral source", sources...), 5, ""},

		{"bachelor", one(KeyEducationLevel, "bachelor"), nil, dropdown("What is the highest level of education you have completed?", degrees...), 2, ""},
		{"associate", one(KeyEducationLevel, "associate"), nil, dropdown("Highest education", degrees...), 1, ""},
		{"unknown level", one(KeyEducationLevel, "kindergarten"), nil, dropdown("Highest education", degrees...), types.NoOption, "education_level_not_matched"},
	})
}
