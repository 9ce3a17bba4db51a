package snapshot

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/easy-apply/internal/ui"
)

const jobPage = `<html><body>
<h1>Backend Engineer</h1>
<button class="jobs-apply-button" aria-label="Easy Apply to Backend Engineer">Easy Apply</button>
</body></html>`

const formStep = `<html><body>
<div role="dialog">
  <label for="years">Years of experience</label>
  <input id="years" name="years" type="text" aria-invalid="true" aria-describedby="years-msg">
  <span id="years-msg">Enter a whole number</span>
  <textarea id="notes" aria-label="Notes"></textarea>
  <fieldset>
    <legend>Do you require sponsorship?</legend>
    <input type="checkbox" id="sp-yes"><label for="sp-yes">Yes</label>
    <input type="checkbox" id="sp-no" checked><label for="sp-no">No</label>
  </fieldset>
  <input type="radio" id="r1" name="relocate" checked><label for="r1">Yes</label>
  <input type="radio" id="r2" name="relocate"><label for="r2">No</label>
  <label for="level">Language level</label>
  <select id="level"><option value="">Select</option><option value="b">Basic</option><option>Native</option></select>
  <button aria-label="Dismiss"></button>
  <button disabled>Review</button>
  <button>Next <span hidden>hidden text</span></button>
</div>
</body></html>`

const successStep = `<html><body><div role="dialog"><h2>Your application was sent to Acme!</h2><button>Done</button></div></body></html>`

const url = "https://www.linkedin.com/jobs/view/4012345678/"

func newSite(t *testing.T) *Page {
	t.Helper()
	p := NewSite(Site{url: {jobPage, formStep, successStep}})
	require.NoError(t, p.Navigate(context.Background(), url))
	return p
}

func elementByHTMLID(t *testing.T, p *Page, kind ui.ElementKind, htmlID string) ui.Element {
	t.Helper()
	elements, err := p.Elements(context.Background(), kind)
	require.NoError(t, err)
	for _, el := range elements {
		if el.HTMLID == htmlID {
			return el
		}
	}
	t.Fatalf("element %s not found", htmlID)
	return ui.Element{}
}

func TestPage_JobPage(t *testing.T) {
	ctx := context.Background()
	p := newSite(t)

	modal, err := p.ModalVisible(ctx)
	require.NoError(t, err)
	assert.False(t, modal)

	entry, err := p.EntryPointVisible(ctx)
	require.NoError(t, err)
	assert.True(t, entry)

	applied, err := p.AlreadyApplied(ctx)
	require.NoError(t, err)
	assert.False(t, applied)

	buttons, err := p.Buttons(ctx)
	require.NoError(t, err)
	assert.Empty(t, buttons, "buttons are only read inside the modal")
}

func TestPage_OpenFormAndButtons(t *testing.T) {
	ctx := context.Background()
	p := newSite(t)
	require.NoError(t, p.OpenForm(ctx))
	assert.Equal(t, 1, p.Stage())

	modal, err := p.ModalVisible(ctx)
	require.NoError(t, err)
	assert.True(t, modal)

	buttons, err := p.Buttons(ctx)
	require.NoError(t, err)

	want := []ui.Button{
		{AriaLabel: "Dismiss"},
		{Text: "Review", Disabled: true},
		{Text: "Next"},
	}
	if diff := cmp.Diff(want, buttons, cmpopts.IgnoreFields(ui.Button{}, "ID")); diff != "" {
		t.Errorf("Buttons() mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, "Dismiss", buttons[0].Label())
}

func TestPage_Elements(t *testing.T) {
	p := newSite(t)
	require.NoError(t, p.OpenForm(context.Background()))

	years := elementByHTMLID(t, p, ui.ElementText, "years")
	want := ui.Element{
		HTMLID:       "years",
		Tag:          "input",
		InputType:    "text",
		Name:         "years",
		LabelText:    "Years of experience",
		AncestorText: years.AncestorText,
		Visible:      true,
	}
	if diff := cmp.Diff(want, years, cmpopts.IgnoreFields(ui.Element{}, "ID")); diff != "" {
		t.Errorf("text element mismatch (-want +got):\n%s", diff)
	}

	notes := elementByHTMLID(t, p, ui.ElementText, "notes")
	assert.Equal(t, "textarea", notes.Tag)
	assert.Equal(t, "Notes", notes.AriaLabel)

	spNo := elementByHTMLID(t, p, ui.ElementCheckbox, "sp-no")
	spYes := elementByHTMLID(t, p, ui.ElementCheckbox, "sp-yes")
	assert.True(t, spNo.Checked)
	assert.False(t, spYes.Checked)
	assert.Equal(t, spYes.GroupKey, spNo.GroupKey)
	assert.Equal(t, "Do you require sponsorship?", spNo.GroupQuestion)

	r1 := elementByHTMLID(t, p, ui.ElementRadio, "r1")
	assert.Equal(t, "relocate", r1.GroupKey)
	assert.True(t, r1.Checked)

	level := elementByHTMLID(t, p, ui.ElementSelect, "level")
	assert.Equal(t, []ui.Option{{Text: "Select", Value: ""}, {Text: "Basic", Value: "b"}, {Text: "Native", Value: "Native"}}, level.Options)
	assert.Equal(t, "", level.Value)
}

func TestPage_DriverActions(t *testing.T) {
	ctx := context.Background()
	p := newSite(t)
	require.NoError(t, p.OpenForm(ctx))

	years := elementByHTMLID(t, p, ui.ElementText, "years")
	require.NoError(t, p.Fill(ctx, years.ID, "3"))
	assert.Equal(t, "3", elementByHTMLID(t, p, ui.ElementText, "years").Value)

	notes := elementByHTMLID(t, p, ui.ElementText, "notes")
	require.NoError(t, p.Fill(ctx, notes.ID, "hello"))
	assert.Equal(t, "hello", elementByHTMLID(t, p, ui.ElementText, "notes").Value)

	spNo := elementByHTMLID(t, p, ui.ElementCheckbox, "sp-no")
	spYes := elementByHTMLID(t, p, ui.ElementCheckbox, "sp-yes")
	require.NoError(t, p.SetChecked(ctx, spNo.ID, false))
	require.NoError(t, p.SetChecked(ctx, spYes.ID, true))
	assert.True(t, elementByHTMLID(t, p, ui.ElementCheckbox, "sp-yes").Checked)
	assert.False(t, elementByHTMLID(t, p, ui.ElementCheckbox, "sp-no").Checked)

	r2 := elementByHTMLID(t, p, ui.ElementRadio, "r2")
	require.NoError(t, p.SetChecked(ctx, r2.ID, true))
	assert.False(t, elementByHTMLID(t, p, ui.ElementRadio, "r1").Checked, "radios in a group are exclusive")

	level := elementByHTMLID(t, p, ui.ElementSelect, "level")
	require.NoError(t, p.SelectOption(ctx, level.ID, 2))
	assert.Equal(t, "Native", elementByHTMLID(t, p, ui.ElementSelect, "level").Value)
	assert.Error(t, p.SelectOption(ctx, level.ID, 9))

	kinds := make([]string, 0)
	for _, a := range p.Actions() {
		kinds = append(kinds, a.Kind)
	}
	assert.Equal(t, []string{"navigate", "open", "fill", "fill", "uncheck", "check", "check", "select"}, kinds)
}

func TestPage_ClickAdvancesStage(t *testing.T) {
	ctx := context.Background()
	p := newSite(t)
	require.NoError(t, p.OpenForm(ctx))

	buttons, err := p.Buttons(ctx)
	require.NoError(t, err)

	assert.Error(t, p.Click(ctx, buttons[1].ID), "disabled button cannot be clicked")
	require.NoError(t, p.Click(ctx, buttons[2].ID))
	assert.Equal(t, 2, p.Stage())

	success, err := p.SuccessVisible(ctx)
	require.NoError(t, err)
	assert.True(t, success)

	done, err := p.Buttons(ctx)
	require.NoError(t, err)
	require.NoError(t, p.Click(ctx, done[0].ID))
	assert.Equal(t, 2, p.Stage(), "last stage stays in place")
}

func TestPage_InlineError(t *testing.T) {
	ctx := context.Background()
	p := newSite(t)
	require.NoError(t, p.OpenForm(ctx))

	years := elementByHTMLID(t, p, ui.ElementText, "years")
	msg, found, err := p.InlineError(ctx, years.ID)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "Enter a whole number", msg)

	notes := elementByHTMLID(t, p, ui.ElementText, "notes")
	_, found, err = p.InlineError(ctx, notes.ID)
	require.NoError(t, err)
	assert.False(t, found)

	_, _, err = p.InlineError(ctx, "missing")
	assert.Error(t, err)
}

func TestPage_InlineErrorFallbacks(t *testing.T) {
	ctx := context.Background()
	p, err := FromHTML(`<div role="dialog">
	<input id="gpa" type="text" aria-invalid="true"><div id="gpa-error">GPA must be between 0 and 4</div>
	<input id="other" type="text" aria-invalid="true">
	</div>`)
	require.NoError(t, err)

	gpa := elementByHTMLID(t, p, ui.ElementText, "gpa")
	msg, found, err := p.InlineError(ctx, gpa.ID)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "GPA must be between 0 and 4", msg)

	other := elementByHTMLID(t, p, ui.ElementText, "other")
	msg, found, err = p.InlineError(ctx, other.ID)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, ui.DefaultInlineError, msg)
}

func TestPage_ValidationBanner(t *testing.T) {
	ctx := context.Background()

	p, err := FromHTML(`<div role="dialog"><div class="artdeco-inline-feedback--error">Please make a selection</div><button>Next</button></div>`)
	require.NoError(t, err)
	msg, found, err := p.ValidationBanner(ctx)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "Please make a selection", msg)

	p, err = FromHTML(`<div role="dialog"><div role="alert" style="display:none">stale</div><button>Next</button></div>`)
	require.NoError(t, err)
	_, found, err = p.ValidationBanner(ctx)
	require.NoError(t, err)
	assert.False(t, found, "hidden banners are ignored")
}

func TestPage_AlreadyApplied(t *testing.T) {
	p, err := FromHTML(`<html><body><div class="job-card"><span>Applied 3 days ago</span></div></body></html>`)
	require.NoError(t, err)

	applied, err := p.AlreadyApplied(context.Background())
	require.NoError(t, err)
	assert.True(t, applied)

	entry, err := p.EntryPointVisible(context.Background())
	require.NoError(t, err)
	assert.False(t, entry)
}

func TestPage_HiddenSuccessTextIgnored(t *testing.T) {
	p, err := FromHTML(`<html><body><div hidden>Application sent</div></body></html>`)
	require.NoError(t, err)

	success, err := p.SuccessVisible(context.Background())
	require.NoError(t, err)
	assert.False(t, success)
}

func TestPage_Navigate(t *testing.T) {
	p := NewSite(Site{})
	err := p.Navigate(context.Background(), "https://example.com/jobs/1")
	require.Error(t, err)

	var pageErr *PageError
	assert.ErrorAs(t, err, &pageErr)

	modal, err := p.ModalVisible(context.Background())
	require.NoError(t, err)
	assert.False(t, modal, "an empty page has no modal")
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "step.html")
	require.NoError(t, os.WriteFile(path, []byte(formStep), 0644))

	p, err := LoadFile(path)
	require.NoError(t, err)
	modal, err := p.ModalVisible(context.Background())
	require.NoError(t, err)
	assert.True(t, modal)

	_, err = LoadFile(filepath.Join(t.TempDir(), "missing.html"))
	assert.Error(t, err)
}
