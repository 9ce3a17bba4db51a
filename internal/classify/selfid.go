package classify

import (
	"github.com/jonathan/easy-apply/internal/textmatch"
	"github.com/jonathan/easy-apply/internal/types"
)

// Topic is a self-identification question topic and the bank key answering it
type Topic struct {
	Subtype string
	Key     string
}

// Self-identification bank keys
const (
	KeyGender     = "gender"
	KeyRace       = "race"
	KeyVeteran    = "veteran_status"
	KeyDisability = "disability_status"
)

var selfIDTopics = []struct {
	topic Topic
	rule  textmatch.Table
}{
	{Topic{types.SubtypeGender, KeyGender}, textmatch.Table{
		{All: []string{"gender"}},
		{All: []string{"sex"}, None: []string{"sexual"}},
	}},
	{Topic{types.SubtypeRace, KeyRace}, textmatch.Table{
		{All: []string{"race"}}, {All: []string{"ethnicity"}}, {All: []string{"ethnic"}},
	}},
	{Topic{types.SubtypeVeteran, KeyVeteran}, textmatch.Table{
		{All: []string{"veteran"}}, {All: []string{"military"}}, {All: []string{"armed forces"}},
	}},
	{Topic{types.SubtypeDisability, KeyDisability}, textmatch.Table{
		{All: []string{"disability"}}, {All: []string{"disabled"}}, {All: []string{"impairment"}},
	}},
}

// SelfIDTopic detects a self-identification question
func SelfIDTopic(question string) (Topic, bool) {
	text := textmatch.Normalize(question)
	for _, t := range selfIDTopics {
		if _, ok := t.rule.Match(text); ok {
			return t.topic, true
		}
	}
	return Topic{}, false
}

// IsSelfIDKey reports whether key answers a self-identification question.
// Medium-confidence resolutions are only acceptable for these keys.
func IsSelfIDKey(key string) bool {
	switch key {
	case KeyGender, KeyRace, KeyVeteran, KeyDisability:
		return true
	}
	return false
}

// DeclinePhrases identify a decline-to-answer option
var DeclinePhrases = []string{
	"decline", "prefer not", "rather not", "dont wish", "do not wish",
	"not wish", "not to answer", "not to disclose", "choose not", "not to self identify",
}

// IsDeclineOption reports whether option text is a decline-to-answer choice
func IsDeclineOption(option string) bool {
	return textmatch.AnyTerm(textmatch.Normalize(option), DeclinePhrases...)
}

// IsPlaceholderOption reports whether option text is a prompt rather than a
// choice. "Choose not to disclose" is a decline option, not a prompt.
func IsPlaceholderOption(option string) bool {
	text := textmatch.Normalize(option)
	if text == "" {
		return true
	}
	return textmatch.AnyTerm(text, "select", "choose", "pick") && !textmatch.AnyTerm(text, DeclinePhrases...)
}
