// Package snapshot implements ui.Page over static HTML. A site maps job URLs to
// an ordered list of HTML stages; opening the form or clicking an enabled button
// advances to the next stage. It backs the inspect command and the engine tests.
package snapshot

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/jonathan/easy-apply/internal/types"
	"github.com/jonathan/easy-apply/internal/ui"
)

const idAttr = "data-snapshot-id"

// inlineURL is the address of a page built from a single HTML document
const inlineURL = "about:snapshot"

// Site maps a URL to the HTML stages shown at that URL
type Site map[string][]string

// Action is one recorded driver call
type Action struct {
	Kind   string
	Target string
	Value  string
}

// Page is a static, in-memory ui.Page
type Page struct {
	site    Site
	url     string
	stage   int
	doc     *goquery.Document
	actions []Action
}

var _ ui.Page = (*Page)(nil)

// NewSite creates a page over the given site. Nothing is loaded until Navigate.
func NewSite(site Site) *Page {
	return &Page{site: site}
}

// FromHTML creates a page showing a single HTML document
func FromHTML(html string) (*Page, error) {
	p := NewSite(Site{inlineURL: {html}})
	if err := p.Navigate(context.Background(), inlineURL); err != nil {
		return nil, err
	}
	return p, nil
}

// LoadFile creates a page from an HTML file on disk
func LoadFile(path string) (*Page, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &PageError{Message: fmt.Sprintf("failed to read %s", path), Cause: err}
	}
	return FromHTML(string(data))
}

// Actions returns the driver calls made so far
func (p *Page) Actions() []Action {
	out := make([]Action, len(p.actions))
	copy(out, p.actions)
	return out
}

// Stage returns the index of the stage currently shown
func (p *Page) Stage() int {
	return p.stage
}

// Find runs a CSS selector against the current stage. Intended for tests.
func (p *Page) Find(selector string) *goquery.Selection {
	if p.doc == nil {
		return &goquery.Selection{}
	}
	return p.doc.Find(selector)
}

func (p *Page) load() error {
	stages := p.site[p.url]
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(stages[p.stage]))
	if err != nil {
		return &PageError{Message: fmt.Sprintf("failed to parse stage %d of %s", p.stage, p.url), Cause: err}
	}
	doc.Find("*").Each(func(i int, s *goquery.Selection) {
		s.SetAttr(idAttr, fmt.Sprintf("s%d", i))
	})
	p.doc = doc
	return nil
}

func (p *Page) advance() error {
	if p.stage+1 >= len(p.site[p.url]) {
		return nil
	}
	p.stage++
	return p.load()
}

func (p *Page) record(kind, target, value string) {
	p.actions = append(p.actions, Action{Kind: kind, Target: target, Value: value})
}

func (p *Page) modal() *goquery.Selection {
	if p.doc == nil {
		return &goquery.Selection{}
	}
	return p.doc.Find(ui.ModalSelector).FilterFunction(func(_ int, s *goquery.Selection) bool {
		return visible(s)
	}).First()
}

func (p *Page) byID(id string) (*goquery.Selection, error) {
	if p.doc == nil {
		return nil, &PageError{Message: "no page loaded"}
	}
	s := p.doc.Find(fmt.Sprintf(`[%s="%s"]`, idAttr, id))
	if s.Length() == 0 {
		return nil, &PageError{Message: fmt.Sprintf("element %s not found", id)}
	}
	return s.First(), nil
}

// ModalVisible implements ui.Inspector
func (p *Page) ModalVisible(_ context.Context) (bool, error) {
	return p.modal().Length() > 0, nil
}

// SuccessVisible implements ui.Inspector
func (p *Page) SuccessVisible(_ context.Context) (bool, error) {
	if p.doc == nil {
		return false, nil
	}
	text := visibleText(p.doc.Find("body"))
	for _, phrase := range ui.SuccessPhrases {
		if strings.Contains(text, phrase) {
			return true, nil
		}
	}
	return false, nil
}

// EntryPointVisible implements ui.Inspector
func (p *Page) EntryPointVisible(_ context.Context) (bool, error) {
	return p.entryPoint().Length() > 0, nil
}

func (p *Page) entryPoint() *goquery.Selection {
	if p.doc == nil {
		return &goquery.Selection{}
	}
	return p.doc.Find(ui.EntryPointSelector).FilterFunction(func(_ int, s *goquery.Selection) bool {
		return visible(s) && !disabled(s)
	}).First()
}

// AlreadyApplied implements ui.Inspector
func (p *Page) AlreadyApplied(_ context.Context) (bool, error) {
	if p.doc == nil {
		return false, nil
	}
	found := false
	p.doc.Find("body *").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		if s.Children().Length() > 0 || s.Closest(ui.ModalSelector).Length() > 0 || !visible(s) {
			return true
		}
		found = ui.AppliedPattern.MatchString(clean(s.Text()))
		return !found
	})
	return found, nil
}

// Buttons implements ui.Inspector
func (p *Page) Buttons(_ context.Context) ([]ui.Button, error) {
	var buttons []ui.Button
	p.modal().Find("button").Each(func(_ int, s *goquery.Selection) {
		if !visible(s) {
			return
		}
		buttons = append(buttons, ui.Button{
			ID:        s.AttrOr(idAttr, ""),
			Text:      visibleText(s),
			AriaLabel: clean(s.AttrOr("aria-label", "")),
			Disabled:  disabled(s),
		})
	})
	return buttons, nil
}

// Elements implements ui.Inspector
func (p *Page) Elements(_ context.Context, kind ui.ElementKind) ([]ui.Element, error) {
	var selector string
	switch kind {
	case ui.ElementText:
		selector = "input, textarea"
	case ui.ElementRadio:
		selector = `input[type="radio"]`
	case ui.ElementCheckbox:
		selector = `input[type="checkbox"]`
	case ui.ElementSelect:
		selector = "select"
	default:
		return nil, &PageError{Message: fmt.Sprintf("unknown element kind %q", kind)}
	}

	var elements []ui.Element
	p.modal().Find(selector).Each(func(_ int, s *goquery.Selection) {
		tag := goquery.NodeName(s)
		inputType := strings.ToLower(s.AttrOr("type", ""))
		if kind == ui.ElementText {
			if _, ok := types.FieldKindFromInput(tag, inputType); !ok {
				return
			}
		}
		elements = append(elements, p.element(s, kind, tag, inputType))
	})
	return elements, nil
}

func (p *Page) element(s *goquery.Selection, kind ui.ElementKind, tag, inputType string) ui.Element {
	htmlID := s.AttrOr("id", "")
	el := ui.Element{
		ID:           s.AttrOr(idAttr, ""),
		HTMLID:       htmlID,
		Tag:          tag,
		InputType:    inputType,
		Name:         s.AttrOr("name", ""),
		Placeholder:  clean(s.AttrOr("placeholder", "")),
		AriaLabel:    clean(s.AttrOr("aria-label", "")),
		LabelText:    p.labelText(s, htmlID),
		AncestorText: ancestorText(s),
		Visible:      visible(s),
		Disabled:     disabled(s),
	}
	_, el.Checked = s.Attr("checked")

	switch kind {
	case ui.ElementText:
		if tag == "textarea" {
			el.Value = s.Text()
		} else {
			el.Value = s.AttrOr("value", "")
		}
	case ui.ElementRadio:
		el.GroupKey = el.Name
		if fieldset := s.Closest("fieldset"); fieldset.Length() > 0 {
			el.GroupQuestion = groupQuestion(fieldset)
		}
	case ui.ElementCheckbox:
		el.GroupKey = ui.DefaultCheckboxGroup
		if container := s.Closest(ui.CheckboxContainerSelector); container.Length() > 0 {
			el.GroupKey = container.AttrOr(idAttr, ui.DefaultCheckboxGroup)
			el.GroupQuestion = groupQuestion(container)
		}
	case ui.ElementSelect:
		options := s.Find("option")
		selected := options.Filter("[selected]").First()
		if selected.Length() == 0 {
			selected = options.First()
		}
		options.Each(func(_ int, o *goquery.Selection) {
			text := clean(o.Text())
			el.Options = append(el.Options, ui.Option{Text: text, Value: o.AttrOr("value", text)})
		})
		if selected.Length() > 0 {
			el.Value = selected.AttrOr("value", clean(selected.Text()))
		}
	}
	return el
}

func (p *Page) labelText(s *goquery.Selection, htmlID string) string {
	if htmlID != "" {
		if label := p.doc.Find(fmt.Sprintf(`label[for="%s"]`, htmlID)).First(); label.Length() > 0 {
			return visibleText(label)
		}
	}
	if label := s.Closest("label"); label.Length() > 0 {
		return visibleText(label)
	}
	return ""
}

// ValidationBanner implements ui.Inspector
func (p *Page) ValidationBanner(_ context.Context) (string, bool, error) {
	var message string
	p.modal().Find(ui.ValidationBannerSelector).EachWithBreak(func(_ int, s *goquery.Selection) bool {
		if visible(s) {
			message = visibleText(s)
		}
		return message == ""
	})
	return message, message != "", nil
}

// InlineError implements ui.Inspector
func (p *Page) InlineError(_ context.Context, elementID string) (string, bool, error) {
	el, err := p.byID(elementID)
	if err != nil {
		return "", false, err
	}
	if el.AttrOr("aria-invalid", "") != "true" {
		return "", false, nil
	}

	for _, describedBy := range strings.Fields(el.AttrOr("aria-describedby", "")) {
		if text := visibleText(p.doc.Find(fmt.Sprintf(`[id="%s"]`, describedBy)).First()); text != "" {
			return text, true, nil
		}
	}

	modal := p.modal()
	if htmlID := el.AttrOr("id", ""); htmlID != "" {
		if text := visibleText(modal.Find(fmt.Sprintf(`[id="%s-error"]`, htmlID)).First()); text != "" {
			return text, true, nil
		}
	}

	message := ui.DefaultInlineError
	modal.Find(ui.InlineErrorSelector).EachWithBreak(func(_ int, s *goquery.Selection) bool {
		if text := visibleText(s); visible(s) && text != "" {
			message = text
			return false
		}
		return true
	})
	return message, true, nil
}

// Navigate implements ui.Driver
func (p *Page) Navigate(_ context.Context, url string) error {
	stages, ok := p.site[url]
	if !ok || len(stages) == 0 {
		return &PageError{Message: fmt.Sprintf("no snapshot for %s", url)}
	}
	p.url = url
	p.stage = 0
	p.record("navigate", url, "")
	return p.load()
}

// OpenForm implements ui.Driver
func (p *Page) OpenForm(_ context.Context) error {
	entry := p.entryPoint()
	if entry.Length() == 0 {
		return &PageError{Message: "entry point not found"}
	}
	p.record("open", clean(entry.AttrOr("aria-label", visibleText(entry))), "")
	return p.advance()
}

// Fill implements ui.Driver
func (p *Page) Fill(_ context.Context, elementID, value string) error {
	el, err := p.writable(elementID)
	if err != nil {
		return err
	}
	if goquery.NodeName(el) == "textarea" {
		el.SetText(value)
	} else {
		el.SetAttr("value", value)
	}
	p.record("fill", describe(el), value)
	return nil
}

// SetChecked implements ui.Driver
func (p *Page) SetChecked(_ context.Context, elementID string, checked bool) error {
	el, err := p.writable(elementID)
	if err != nil {
		return err
	}
	if !checked {
		el.RemoveAttr("checked")
		p.record("uncheck", describe(el), "")
		return nil
	}
	if el.AttrOr("type", "") == "radio" {
		if name := el.AttrOr("name", ""); name != "" {
			p.doc.Find(fmt.Sprintf(`input[type="radio"][name="%s"]`, name)).RemoveAttr("checked")
		}
	}
	el.SetAttr("checked", "checked")
	p.record("check", describe(el), "")
	return nil
}

// SelectOption implements ui.Driver
func (p *Page) SelectOption(_ context.Context, elementID string, optionIndex int) error {
	el, err := p.writable(elementID)
	if err != nil {
		return err
	}
	options := el.Find("option")
	if optionIndex < 0 || optionIndex >= options.Length() {
		return &PageError{Message: fmt.Sprintf("option %d out of range for %s", optionIndex, describe(el))}
	}
	options.RemoveAttr("selected")
	option := options.Eq(optionIndex)
	option.SetAttr("selected", "selected")
	p.record("select", describe(el), clean(option.Text()))
	return nil
}

// Click implements ui.Driver
func (p *Page) Click(_ context.Context, buttonID string) error {
	el, err := p.writable(buttonID)
	if err != nil {
		return err
	}
	p.record("click", visibleText(el), "")
	return p.advance()
}

func (p *Page) writable(elementID string) (*goquery.Selection, error) {
	el, err := p.byID(elementID)
	if err != nil {
		return nil, err
	}
	if disabled(el) {
		return nil, &PageError{Message: fmt.Sprintf("element %s is disabled", describe(el))}
	}
	return el, nil
}

func describe(s *goquery.Selection) string {
	for _, attr := range []string{"id", "name"} {
		if v := s.AttrOr(attr, ""); v != "" {
			return v
		}
	}
	return s.AttrOr(idAttr, "")
}
