package resolve

import (
	"sort"

	"github.com/jonathan/easy-apply/internal/classify"
)

// BankKeys returns every AnswerBank key some resolver reads, sorted
func BankKeys() []string {
	keys := []string{
		KeyFullName, KeyEmail, KeyPhone, KeyInstitution,
		classify.KeyGender, classify.KeyRace, classify.KeyVeteran, classify.KeyDisability,
		KeyNoticePeriodWeeks, KeyEnrollmentStatus, KeyLanguageProficiency, KeyReferralSource, KeyEducationLevel,
	}
	keys = append(keys, textRules.Keys()...)
	keys = append(keys, dateRules.Keys()...)
	keys = append(keys, binaryRules.Keys()...)
	return dedupeSorted(keys)
}

// AssertionKeys returns every UserAssertions key some resolver reads, sorted
func AssertionKeys() []string {
	return dedupeSorted(append(assertionRules.Keys(), KeySummerAvailability))
}

// AllowedValues returns the configured values understood for a vocabulary-backed
// key, sorted. The second result is false for free-form keys.
func AllowedValues(key string) ([]string, bool) {
	vocab, ok := selfIDVocabularies[key]
	if !ok {
		switch key {
		case KeyLanguageProficiency:
			vocab = proficiencyVocabulary
		case KeyReferralSource:
			vocab = referralVocabulary
		case KeyEducationLevel:
			vocab = educationVocabulary
		default:
			return nil, false
		}
	}
	values := make([]string, 0, len(vocab))
	for value := range vocab {
		values = append(values, value)
	}
	sort.Strings(values)
	return values, true
}

func dedupeSorted(keys []string) []string {
	seen := make(map[string]bool, len(keys))
	out := make([]string, 0, len(keys))
	for _, k := range keys {
		if !seen[k] {
			seen[k] = true
			out = append(out, k)
		}
	}
	sort.Strings(out)
	return out
}
