package textmatch

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"", ""},
		{"Are you legally authorized to work?", "are you legally authorized to work"},
		{"  I don't wish\nto answer  ", "i dont wish to answer"},
		{"E-mail Address", "email address"},
		{"Do you require sponsorship (now or in the future)?", "do you require sponsorship now or in the future"},
		{"Salary: $100,000", "salary 100000"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, Normalize(tt.input))
		})
	}
}

func TestNormalizeOption(t *testing.T) {
	assert.Equal(t, "2", NormalizeOption("2 weeks"))
	assert.Equal(t, "3", NormalizeOption("3 Months"))
	assert.Equal(t, "", NormalizeOption("Please select"))
	assert.Equal(t, "an option", NormalizeOption("Select one: an option"))
	assert.Equal(t, "immediately", NormalizeOption("Immediately"))
}

func TestHasTerm(t *testing.T) {
	assert.True(t, HasTerm("years of experience", "year"))
	assert.True(t, HasTerm("years of experience", "experience"))
	assert.False(t, HasTerm("female", "male"))
	assert.False(t, HasTerm("graduated in 2018", "18"))
	assert.True(t, HasTerm("are you over 18 years old", "18"))
	assert.True(t, HasTerm("do you require visa sponsorship", "visa sponsorship"))
	assert.False(t, HasTerm("anything", ""))
}

func TestHasWord(t *testing.T) {
	assert.True(t, HasWord("male", "male"))
	assert.False(t, HasWord("males only", "male"))
	assert.True(t, HasWord("i prefer not to answer", "prefer not"))
	assert.False(t, HasWord("i am not a protected veteran", "protected veterans"))
}

func TestRuleTable_FirstMatchWins(t *testing.T) {
	table := Table{
		{All: []string{"notice period", "week"}, Key: "notice_period_weeks"},
		{All: []string{"notice"}, Key: "notice_period"},
		{All: []string{"citizenship"}, None: []string{"sponsor"}, Key: "citizenship_status"},
	}

	rule, ok := table.Match(Normalize("Notice period (weeks)"))
	assert.True(t, ok)
	assert.Equal(t, "notice_period_weeks", rule.Key)

	rule, ok = table.Match(Normalize("What is your notice?"))
	assert.True(t, ok)
	assert.Equal(t, "notice_period", rule.Key)

	_, ok = table.Match(Normalize("Citizenship or future sponsorship needs"))
	assert.False(t, ok, "anti-pattern must block the match")

	_, ok = table.Match(Normalize("Unrelated question"))
	assert.False(t, ok)

	assert.Equal(t, []string{"notice_period_weeks", "notice_period", "citizenship_status"}, table.Keys())
}

func TestRuleTable_MatchedKeys(t *testing.T) {
	table := Table{
		{All: []string{"notice period", "week"}, Key: "notice_period_weeks"},
		{All: []string{"notice"}, Key: "notice_period"},
		{All: []string{"notice", "period"}, Key: "notice_period"},
		{All: []string{"citizenship"}, None: []string{"sponsor"}, Key: "citizenship_status"},
	}

	assert.Equal(t, []string{"notice_period_weeks", "notice_period"}, table.MatchedKeys(Normalize("Notice period (weeks)")))
	assert.Equal(t, []string{"notice_period"}, table.MatchedKeys(Normalize("What is your notice period?")))
	assert.Empty(t, table.MatchedKeys(Normalize("Citizenship or future sponsorship needs")))
	assert.Empty(t, table.MatchedKeys(Normalize("Unrelated question")))
}

func TestRule_EmptyKeywordSetNeverMatches(t *testing.T) {
	assert.False(t, Rule{Key: "x"}.Matches("any text"))
}

func TestCombine(t *testing.T) {
	assert.Equal(t, "years of experience eg 3", Combine("Years of experience", "e.g. 3", ""))
}

func TestHasPhrase(t *testing.T) {
	assert.True(t, HasPhrase("no i do not have a disability", "no"))
	assert.False(t, HasPhrase("not applicable", "no"))
	assert.True(t, HasPhrase("bachelors degree", "bachelor"))
	assert.False(t, HasPhrase("basic", "ba"))
	assert.True(t, HasPhrase("ba in economics", "ba"))
	assert.True(t, AnyPhrase("phd", "doctorate", "phd"))
}

func TestRule_Words(t *testing.T) {
	rule := Rule{All: []string{"require sponsorship"}, Words: []string{"us"}, Key: "requires_sponsorship"}

	assert.True(t, rule.Matches(Normalize("Will you require sponsorship to work in the U.S.?")))
	assert.False(t, rule.Matches(Normalize("Will you require sponsorship for our user base?")))
}
