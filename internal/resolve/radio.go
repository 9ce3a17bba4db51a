package resolve

import (
	"strings"

	"github.com/jonathan/easy-apply/internal/classify"
	"github.com/jonathan/easy-apply/internal/textmatch"
	"github.com/jonathan/easy-apply/internal/types"
)

// assertionRules map questions to UserAssertions keys. A matched rule never
// falls through to the answer bank.
var assertionRules = textmatch.Table{
	{
		All:    []string{"completed the following level of education", "bachelor"},
		Key:    "education_completed_bachelors",
		Reason: "education_bachelors_not_in_user_assertions",
	},
	{
		All:    []string{"comfortable commuting"},
		Key:    "assume_commute_ok",
		Reason: "commute_comfort_not_in_user_assertions",
	},
	{
		All:    []string{"comfortable working", "onsite"},
		Key:    "assume_onsite_ok",
		Reason: "onsite_comfort_not_in_user_assertions",
	},
	{
		All:    []string{"require sponsorship"},
		Words:  []string{"us"},
		Key:    "requires_sponsorship",
		Reason: "sponsorship_not_in_user_assertions",
	},
	{
		All:    []string{"require sponsorship", "united states"},
		Key:    "requires_sponsorship",
		Reason: "sponsorship_not_in_user_assertions",
	},
	{
		All:    []string{"citizenship"},
		None:   []string{"sponsor", "visa"},
		Key:    "citizenship_status",
		Reason: "citizenship_status_not_in_user_assertions",
	},
	{
		All:    []string{"work authorization status"},
		None:   []string{"sponsor", "visa"},
		Key:    "work_authorization_status",
		Reason: "work_authorization_status_not_in_user_assertions",
	},
	{
		All:    []string{"current", "work authorization"},
		None:   []string{"sponsor", "visa"},
		Key:    "work_authorization_status",
		Reason: "work_authorization_status_not_in_user_assertions",
	},
}

var (
	sponsorTerms  = []string{"sponsor", "visa"}
	// questions about past outcomes rather than consent
	adverseTerms  = []string{"fail", "positive", "refus", "convict", "ever"}
	// durations that reuse the age keywords
	durationTerms = []string{"experience", "month"}
)

// binaryRules map two-option questions to boolean bank keys. A question must
// match rules of exactly one key; see Radio.
var binaryRules = textmatch.Table{
	{All: []string{"authorized", "work"}, None: sponsorTerms, Key: "authorized_to_work"},
	{All: []string{"legally", "authorized"}, None: sponsorTerms, Key: "authorized_to_work"},
	{All: []string{"legal", "right", "work"}, None: sponsorTerms, Key: "authorized_to_work"},
	{All: []string{"work", "authorization"}, None: sponsorTerms, Key: "authorized_to_work"},

	{All: []string{"require", "sponsorship"}, Key: "requires_sponsorship"},
	{All: []string{"need", "sponsorship"}, Key: "requires_sponsorship"},
	{All: []string{"visa", "sponsorship"}, Key: "requires_sponsorship"},
	{All: []string{"sponsorship", "now", "future"}, Key: "requires_sponsorship"},

	{All: []string{"willing", "relocate"}, Key: "willing_to_relocate"},
	{All: []string{"open", "relocation"}, Key: "willing_to_relocate"},
	{All: []string{"willing", "move"}, Key: "willing_to_relocate"},

	{All: []string{"background", "check"}, None: adverseTerms, Key: "background_check_consent"},
	{All: []string{"background", "investigation"}, None: adverseTerms, Key: "background_check_consent"},
	{All: []string{"background", "screening"}, None: adverseTerms, Key: "background_check_consent"},

	{All: []string{"drug", "test"}, None: adverseTerms, Key: "drug_test_consent"},
	{All: []string{"drug", "screen"}, None: adverseTerms, Key: "drug_test_consent"},

	{All: []string{"over", "18"}, None: durationTerms, Key: "over_18"},
	{All: []string{"18", "years"}, None: durationTerms, Key: "over_18"},
	{All: []string{"legal", "age"}, Key: "over_18"},
	{All: []string{"legally", "eligible", "work"}, None: sponsorTerms, Key: "legally_eligible"},
}

// Radio resolves a radio group. Self-identification questions are handled
// first, then user assertions, then the boolean bank table for two-option groups.
func (r *Resolver) Radio(g types.RadioGroupDescriptor) types.Resolution {
	if topic, ok := classify.SelfIDTopic(g.QuestionText); ok {
		return r.selfID(topic, g.OptionLabels)
	}

	question := textmatch.Normalize(g.QuestionText)
	if rule, ok := assertionRules.Match(question); ok {
		return r.assertion(rule, g.OptionLabels)
	}

	if len(g.OptionLabels) == 2 {
		switch keys := binaryRules.MatchedKeys(question); len(keys) {
		case 0:
		case 1:
			key := keys[0]
			v := r.bank.Get(key)
			if !v.IsSet() {
				return unresolvedKey(notConfigured(key), key)
			}
			b, ok := v.AsBool()
			if !ok {
				return unresolvedKey(wrongType(key), key)
			}
			return binaryChoice(g.OptionLabels, b, key)
		default:
			// compound question; one boolean cannot answer it
			return types.Unresolved(ReasonAmbiguousQuestion)
		}
	}
	return types.Unresolved(ReasonUnmatched)
}

// selfID resolves a self-identification question. An option equal to the
// configured value wins; otherwise a decline option is chosen at medium
// confidence whatever the preference; only then is the value's vocabulary tried.
func (r *Resolver) selfID(topic classify.Topic, options []string) types.Resolution {
	value, configured := r.bank.String(topic.Key)
	if configured {
		if i, ok := exactOption(options, value); ok {
			return types.IndexResolution(i, types.ConfidenceHigh, topic.Key)
		}
	}

	for i, opt := range options {
		if classify.IsDeclineOption(opt) {
			return types.IndexResolution(i, types.ConfidenceMedium, topic.Key)
		}
	}

	if !configured {
		return unresolvedKey(notConfigured(topic.Key), topic.Key)
	}
	vocab, ok := selfIDVocabularies[topic.Key][strings.ToLower(value)]
	if !ok {
		return unresolvedKey(ReasonOptionNotMatched, topic.Key)
	}
	if i, ok := pickUnique(options, vocab); ok {
		return types.IndexResolution(i, types.ConfidenceHigh, topic.Key)
	}
	return unresolvedKey(ReasonOptionNotMatched, topic.Key)
}

func (r *Resolver) assertion(rule textmatch.Rule, options []string) types.Resolution {
	v, ok := r.assertions.Lookup(rule.Key)
	if !ok {
		return unresolvedKey(rule.Reason, rule.Key)
	}
	if b, ok := v.AsBool(); ok {
		return binaryChoice(options, b, rule.Key)
	}
	s, _ := v.AsString()
	return matchOptionText(options, s, rule.Key)
}

// matchOptionText picks the option equal to value, else the single option
// containing it. Several containing options are ambiguous.
func matchOptionText(options []string, value, key string) types.Resolution {
	if i, ok := exactOption(options, value); ok {
		return types.IndexResolution(i, types.ConfidenceHigh, key)
	}
	want := textmatch.Normalize(strings.ReplaceAll(value, "_", " "))
	found := -1
	for i, opt := range options {
		if want != "" && strings.Contains(textmatch.Normalize(opt), want) {
			if found >= 0 {
				return unresolvedKey(ReasonAmbiguousOption, key)
			}
			found = i
		}
	}
	if found < 0 {
		return unresolvedKey(ReasonOptionNotMatched, key)
	}
	return types.IndexResolution(found, types.ConfidenceHigh, key)
}

// binaryChoice maps a boolean onto yes/no options. Recognisable labels are
// matched by text; an unlabelled pair falls back to true → 0, false → 1.
func binaryChoice(options []string, answer bool, key string) types.Resolution {
	yes, no := yesNoIndexes(options)
	if yes >= 0 && no >= 0 {
		if answer {
			return types.IndexResolution(yes, types.ConfidenceHigh, key)
		}
		return types.IndexResolution(no, types.ConfidenceHigh, key)
	}
	if len(options) == 2 && yes < 0 && no < 0 {
		if answer {
			return types.IndexResolution(0, types.ConfidenceHigh, key)
		}
		return types.IndexResolution(1, types.ConfidenceHigh, key)
	}
	return unresolvedKey(ReasonNoYesNoMatch, key)
}

// yesNoIndexes returns the single yes and single no option, or -1 for each
// that is missing or ambiguous
func yesNoIndexes(options []string) (int, int) {
	yes, no := -1, -1
	yesCount, noCount := 0, 0
	for i, opt := range options {
		text := textmatch.NormalizeOption(opt)
		isYes := textmatch.HasWord(text, "yes")
		isNo := textmatch.HasWord(text, "no")
		switch {
		case isYes && !isNo:
			yes = i
			yesCount++
		case isNo && !isYes:
			no = i
			noCount++
		}
	}
	if yesCount != 1 {
		yes = -1
	}
	if noCount != 1 {
		no = -1
	}
	return yes, no
}
