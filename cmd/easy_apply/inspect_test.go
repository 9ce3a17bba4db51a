package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const formStep = `<html><body><div role="dialog">
  <label for="years">Years of experience</label>
  <input id="years" type="text">
  <button aria-label="Continue to next step">Next</button>
</div></body></html>`

func TestInspect_HTML(t *testing.T) {
	page := writeFile(t, "step.html", formStep)
	store := writeFile(t, "answers.yaml", "answer_bank:\n  years_experience: 5\n")

	out, err := execute(t, "inspect", "--html", page, "--answers", store)
	require.NoError(t, err)
	assert.Contains(t, out, "State: MODAL_FORM_STEP")
	assert.Contains(t, out, "Fields: 1")
	assert.Contains(t, out, "✓ [text] Years of experience")
}

func TestInspect_WithoutAnswersNothingResolves(t *testing.T) {
	page := writeFile(t, "step.html", formStep)

	out, err := execute(t, "inspect", "--html", page)
	require.NoError(t, err)
	assert.Contains(t, out, "✗ [text] Years of experience")
}

func TestInspect_SourceFlags(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{name: "neither", args: []string{"inspect"}},
		{name: "both", args: []string{"inspect", "--html", "a.html", "--url", "https://example.com"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := execute(t, tt.args...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), "exactly one of --html or --url")
		})
	}
}

func TestInspect_MissingFile(t *testing.T) {
	_, err := execute(t, "inspect", "--html", "/nonexistent/page.html")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "snapshot error")
}
