package classify

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jonathan/easy-apply/internal/types"
)

func TestField_Precedence(t *testing.T) {
	tests := []struct {
		name  string
		field types.FieldDescriptor
		want  types.Classification
	}{
		{
			name:  "legal name",
			field: types.FieldDescriptor{Kind: types.KindText, Label: "Legal name"},
			want:  types.Tier1(types.SubtypeFullName),
		},
		{
			name:  "signature anti-pattern",
			field: types.FieldDescriptor{Kind: types.KindText, Label: "Your name (electronic signature)"},
			want:  types.Text,
		},
		{
			name:  "current date with format",
			field: types.FieldDescriptor{Kind: types.KindText, Label: "Date", Placeholder: "MM/DD/YYYY"},
			want:  types.Tier1(types.SubtypeCurrentDate),
		},
		{
			name:  "birth date is not current date",
			field: types.FieldDescriptor{Kind: types.KindText, Label: "Date of birth (MM/DD/YYYY)"},
			want:  types.Date,
		},
		{
			name:  "start date is not current date",
			field: types.FieldDescriptor{Kind: types.KindText, Label: "Earliest start date (MM/DD/YYYY)"},
			want:  types.Date,
		},
		{
			name:  "email by kind",
			field: types.FieldDescriptor{Kind: types.KindEmail, Label: "Contact"},
			want:  types.Tier2(types.SubtypeEmail),
		},
		{
			name:  "email account anti-pattern",
			field: types.FieldDescriptor{Kind: types.KindEmail, Label: "Account email"},
			want:  types.Unknown,
		},
		{
			name:  "phone by keyword",
			field: types.FieldDescriptor{Kind: types.KindText, Label: "Best phone to reach you"},
			want:  types.Tier2(types.SubtypePhone),
		},
		{
			name:  "phone extension",
			field: types.FieldDescriptor{Kind: types.KindText, Label: "Phone ext"},
			want:  types.Text,
		},
		{
			name:  "institution",
			field: types.FieldDescriptor{Kind: types.KindText, Label: "Which university did you attend?"},
			want:  types.Tier2(types.SubtypeInstitution),
		},
		{
			name:  "institution graduation year is numeric",
			field: types.FieldDescriptor{Kind: types.KindText, Label: "University graduation year"},
			want:  types.Numeric,
		},
		{
			name:  "creative textarea",
			field: types.FieldDescriptor{Kind: types.KindTextarea, Label: "Tell us about yourself"},
			want:  types.SkipCreative,
		},
		{
			name:  "numeric by kind",
			field: types.FieldDescriptor{Kind: types.KindNumber, Label: "How many?"},
			want:  types.Numeric,
		},
		{
			name:  "numeric by keyword",
			field: types.FieldDescriptor{Kind: types.KindText, Label: "How many years of work experience do you have with Go?"},
			want:  types.Numeric,
		},
		{
			name:  "textarea never numeric",
			field: types.FieldDescriptor{Kind: types.KindTextarea, Label: "Describe your experience with Kubernetes"},
			want:  types.Text,
		},
		{
			name:  "date by keyword",
			field: types.FieldDescriptor{Kind: types.KindText, Label: "When can you begin?"},
			want:  types.Date,
		},
		{
			name:  "date by kind",
			field: types.FieldDescriptor{Kind: types.KindDate, Label: "Pick one"},
			want:  types.Date,
		},
		{
			name:  "generic text",
			field: types.FieldDescriptor{Kind: types.KindText, Label: "GitHub profile"},
			want:  types.Text,
		},
		{
			name:  "url kind is text",
			field: types.FieldDescriptor{Kind: types.KindURL, Label: "Personal site"},
			want:  types.Text,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Field(tt.field))
		})
	}
}

func TestField_CurrentDateNeedsNoChosenDate(t *testing.T) {
	tests := []struct {
		label string
		want  types.Classification
	}{
		{"Today's date", types.Tier1(types.SubtypeCurrentDate)},
		{"Date (MM/DD/YYYY)", types.Tier1(types.SubtypeCurrentDate)},
		{"Signature date (YYYY-MM-DD)", types.Tier1(types.SubtypeCurrentDate)},
		{"When can you begin? (MM/DD/YYYY)", types.Date},
		{"Date you can commence work (mm/dd/yyyy)", types.Date},
		{"Earliest date you can join (MM/DD/YYYY)", types.Date},
		{"Available from (MM/DD/YYYY)", types.Date},
		{"Expected start date (DD/MM/YYYY)", types.Date},
		{"Date you could relocate by (MM/DD/YYYY)", types.Date},
		{"Date of birth (MM-DD-YYYY)", types.Date},
		{"Graduation date (MM/DD/YYYY)", types.Date},
		{"Passport expiry date (YYYY-MM-DD)", types.Date},
	}
	for _, tt := range tests {
		t.Run(tt.label, func(t *testing.T) {
			assert.Equal(t, tt.want, Field(types.FieldDescriptor{Kind: types.KindText, Label: tt.label}))
		})
	}
}

func TestDateFormat(t *testing.T) {
	assert.Equal(t, "01/02/2006", DateFormat(types.FieldDescriptor{Label: "Today's date"}))
	assert.Equal(t, "2006-01-02", DateFormat(types.FieldDescriptor{Placeholder: "YYYY-MM-DD"}))
	assert.Equal(t, "02/01/2006", DateFormat(types.FieldDescriptor{Label: "Date (DD/MM/YYYY)"}))
}

func TestIsRadioEquivalent(t *testing.T) {
	tests := []struct {
		name   string
		labels []string
		want   bool
	}{
		{"yes no", []string{"Yes", "No"}, true},
		{"yes no decline", []string{"Yes", "No", "Decline"}, true},
		{"decline pair", []string{"Decline", "Decline to answer"}, true},
		{"enrollment status", []string{"Currently enrolled", "Completed", "Not applicable"}, true},
		{"marker prefixes", []string{"Yes, I am", "No, I am not", "Maybe later"}, true},
		{"single", []string{"Yes"}, false},
		{"five unrelated", []string{"Python", "Go", "Rust", "Java", "C++"}, false},
		{"five with yes no", []string{"Yes", "No", "Maybe", "Later", "Never"}, false},
		{"unrelated pair", []string{"Email updates", "SMS updates"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsRadioEquivalent(tt.labels))
		})
	}
}

func TestSelfIDTopic(t *testing.T) {
	tests := []struct {
		question string
		key      string
		ok       bool
	}{
		{"What is your gender?", KeyGender, true},
		{"Sex", KeyGender, true},
		{"What is your sexual orientation?", "", false},
		{"Race/Ethnicity", KeyRace, true},
		{"Are you a protected veteran?", KeyVeteran, true},
		{"Have you served in the armed forces?", KeyVeteran, true},
		{"Do you have a disability?", KeyDisability, true},
		{"Are you legally authorized to work?", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.question, func(t *testing.T) {
			topic, ok := SelfIDTopic(tt.question)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.key, topic.Key)
		})
	}
}

func TestOptionHelpers(t *testing.T) {
	assert.True(t, IsDeclineOption("I don't wish to answer"))
	assert.True(t, IsDeclineOption("Decline to self-identify"))
	assert.False(t, IsDeclineOption("No"))

	assert.True(t, IsPlaceholderOption("Select an option"))
	assert.True(t, IsPlaceholderOption("--"))
	assert.False(t, IsPlaceholderOption("Yes"))
	assert.False(t, IsPlaceholderOption("I choose not to disclose"))

	assert.True(t, IsSelfIDKey(KeyVeteran))
	assert.False(t, IsSelfIDKey("authorized_to_work"))
}
