package resolve

import (
	"strings"

	"github.com/jonathan/easy-apply/internal/classify"
	"github.com/jonathan/easy-apply/internal/textmatch"
)

// phrases lists the option texts that express one configured value. Options
// containing an Exclude phrase are never chosen for it.
type phrases struct {
	Match   []string
	Exclude []string
}

// vocabulary maps configured values to option phrases
type vocabulary map[string]phrases

var declineVocabulary = phrases{Match: classify.DeclinePhrases}

var selfIDVocabularies = map[string]vocabulary{
	classify.KeyGender: {
		"male":       {Match: []string{"male", "man"}},
		"female":     {Match: []string{"female", "woman"}},
		"non_binary": {Match: []string{"nonbinary", "non binary"}},
		"decline":    declineVocabulary,
	},
	classify.KeyRace: {
		"white":            {Match: []string{"white", "caucasian"}},
		"black":            {Match: []string{"black", "african american"}},
		"hispanic":         {Match: []string{"hispanic", "latino", "latina", "latinx"}},
		"asian":            {Match: []string{"asian"}},
		"native_american":  {Match: []string{"native american", "american indian", "alaska native", "indigenous"}},
		"pacific_islander": {Match: []string{"pacific islander", "native hawaiian"}},
		"two_or_more":      {Match: []string{"two or more", "multiracial", "multiple"}},
		"decline":          declineVocabulary,
	},
	classify.KeyVeteran: {
		"veteran":     {Match: []string{"protected veteran", "i identify", "i am", "yes"}, Exclude: []string{"not", "no"}},
		"not_veteran": {Match: []string{"not a protected", "not protected", "i am not", "not a veteran", "no"}},
		"decline":     declineVocabulary,
	},
	classify.KeyDisability: {
		"yes_disability": {Match: []string{"yes", "have a disability", "i have"}, Exclude: []string{"not", "no", "dont"}},
		"no_disability":  {Match: []string{"no", "do not have", "dont have", "not have"}},
		"decline":        declineVocabulary,
	},
}

var proficiencyVocabulary = vocabulary{
	"native":       {Match: []string{"native", "bilingual", "mother tongue", "first language"}},
	"fluent":       {Match: []string{"fluent", "full professional", "professional", "proficient"}, Exclude: []string{"limited", "highly proficient"}},
	"advanced":     {Match: []string{"advanced", "highly proficient", "very good"}},
	"intermediate": {Match: []string{"intermediate", "conversational", "working proficiency"}},
	"beginner":     {Match: []string{"beginner", "elementary", "limited", "basic"}},
}

var referralVocabulary = vocabulary{
	"linkedin":        {Match: []string{"linkedin", "linked in"}},
	"indeed":          {Match: []string{"indeed"}},
	"monster":         {Match: []string{"monster"}},
	"ziprecruiter":    {Match: []string{"ziprecruiter", "zip recruiter"}},
	"glassdoor":       {Match: []string{"glassdoor", "glass door"}},
	"company_website": {Match: []string{"company website", "company site", "career site", "careers page"}},
	"referral":        {Match: []string{"employee referral", "referral", "referred by"}},
	"recruiter":       {Match: []string{"recruiter", "headhunter", "recruiting agency"}},
	"job_board":       {Match: []string{"job board", "online job board"}},
	"other":           {Match: []string{"other"}},
}

var educationVocabulary = vocabulary{
	"high_school":  {Match: []string{"high school", "hs diploma", "secondary school"}},
	"ged":          {Match: []string{"ged", "general education"}},
	"some_college": {Match: []string{"some college", "college coursework", "some university"}},
	"associate":    {Match: []string{"associate", "aa", "as"}},
	"bachelor":     {Match: []string{"bachelor", "ba", "bs", "undergraduate"}},
	"bachelors":    {Match: []string{"bachelor", "ba", "bs", "undergraduate"}},
	"master":       {Match: []string{"master", "mba", "ma", "ms"}},
	"doctorate":    {Match: []string{"doctorate", "phd", "doctoral", "doctor"}},
	"vocational":   {Match: []string{"vocational", "trade school", "technical school"}},
}

// timeOffsets maps notice-period weeks to option phrases. Units are kept so
// "2 weeks" and "2 months" stay distinct.
var timeOffsets = map[string][]string{
	"0":  {"immediately", "right away", "asap", "now", "today"},
	"1":  {"1 week", "one week"},
	"2":  {"2 weeks", "two weeks", "2 week"},
	"3":  {"3 weeks", "three weeks"},
	"4":  {"1 month", "one month", "4 weeks"},
	"6":  {"6 weeks", "six weeks"},
	"8":  {"2 months", "two months", "8 weeks"},
	"12": {"3 months", "three months", "12 weeks"},
	"16": {"4 months", "four months", "16 weeks"},
	"24": {"6 months", "six months", "24 weeks"},
}

// pickUnique returns the option that the first discriminating phrase matches.
// Phrases are tried in order and a phrase counts only when exactly one option
// carries it. Placeholder and excluded options never match.
func pickUnique(options []string, p phrases) (int, bool) {
	normalized := make([]string, len(options))
	for i, opt := range options {
		if classify.IsPlaceholderOption(opt) {
			continue
		}
		text := textmatch.Normalize(opt)
		if anyNormalizedPhrase(text, p.Exclude) {
			continue
		}
		normalized[i] = text
	}

	for _, phrase := range p.Match {
		phrase = textmatch.Normalize(phrase)
		found := -1
		count := 0
		for i, text := range normalized {
			if text != "" && textmatch.HasPhrase(text, phrase) {
				found = i
				count++
			}
		}
		if count == 1 {
			return found, true
		}
	}
	return -1, false
}

func anyNormalizedPhrase(text string, list []string) bool {
	for _, phrase := range list {
		if textmatch.HasPhrase(text, textmatch.Normalize(phrase)) {
			return true
		}
	}
	return false
}

// exactOption returns the single option whose normalised text equals value.
// Underscores in configured values read as spaces.
func exactOption(options []string, value string) (int, bool) {
	want := textmatch.Normalize(strings.ReplaceAll(value, "_", " "))
	if want == "" {
		return -1, false
	}
	found := -1
	for i, opt := range options {
		if textmatch.Normalize(opt) == want {
			if found >= 0 {
				return -1, false
			}
			found = i
		}
	}
	return found, found >= 0
}
