// Package perception turns raw modal elements into typed field descriptors. It
// only looks inside the active modal, drops disabled, hidden and pre-filled
// fields, and drops fields the host platform pre-fills (contact details).
package perception

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/jonathan/easy-apply/internal/classify"
	"github.com/jonathan/easy-apply/internal/types"
	"github.com/jonathan/easy-apply/internal/ui"
)

// Options configures the skip lists. Nil slices use the defaults.
type Options struct {
	TextSkipPatterns   []string
	SelectSkipPatterns []string
}

// TextField is a free-entry field and the handle to write it
type TextField struct {
	ElementID  string
	Descriptor types.FieldDescriptor
}

// RadioGroup is a radio group and the handles of its options, in option order
type RadioGroup struct {
	Descriptor types.RadioGroupDescriptor
	OptionIDs  []string
}

// SelectField is a dropdown. RawIndex maps a descriptor option index to the
// index of the underlying option element, since empty options are dropped.
type SelectField struct {
	ElementID  string
	Descriptor types.SelectDescriptor
	RawIndex   []int
}

// CheckboxGroup is a radio-equivalent group or a single standard checkbox.
// OptionIDs has one entry per option label, or exactly one for a standard box.
type CheckboxGroup struct {
	GroupID   string
	Group     types.CheckboxGroup
	OptionIDs []string
}

// Perceiver extracts descriptors through a ui.Inspector
type Perceiver struct {
	inspector  ui.Inspector
	textSkip   skipList
	selectSkip skipList
	logger     *zap.Logger
}

// New creates a Perceiver
func New(inspector ui.Inspector, opts Options, logger *zap.Logger) *Perceiver {
	if logger == nil {
		logger = zap.NewNop()
	}
	textPatterns := opts.TextSkipPatterns
	if textPatterns == nil {
		textPatterns = DefaultTextSkipPatterns()
	}
	selectPatterns := opts.SelectSkipPatterns
	if selectPatterns == nil {
		selectPatterns = DefaultSelectSkipPatterns()
	}
	return &Perceiver{
		inspector:  inspector,
		textSkip:   newSkipList(textPatterns),
		selectSkip: newSkipList(selectPatterns),
		logger:     logger,
	}
}

func usable(el ui.Element) bool {
	return el.Visible && !el.Disabled
}

// TextFields returns the unfilled free-entry fields of the current step
func (p *Perceiver) TextFields(ctx context.Context) ([]TextField, error) {
	elements, err := p.inspector.Elements(ctx, ui.ElementText)
	if err != nil {
		return nil, fmt.Errorf("failed to inspect text fields: %w", err)
	}

	var fields []TextField
	for _, el := range elements {
		kind, ok := types.FieldKindFromInput(el.Tag, el.InputType)
		if !ok || !usable(el) || strings.TrimSpace(el.Value) != "" {
			continue
		}
		if pattern, skip := p.textSkip.match(el.LabelText, el.Placeholder, el.AriaLabel,
			identifierWords(el.HTMLID), identifierWords(el.Name)); skip {
			p.logger.Debug("skipping auto-fillable field",
				zap.String("field", firstNonEmpty(el.LabelText, el.Placeholder, el.Name)),
				zap.String("pattern", pattern))
			continue
		}

		label := el.LabelText
		if label == "" && el.AriaLabel == "" {
			label = el.AncestorText
		}
		fields = append(fields, TextField{
			ElementID: el.ID,
			Descriptor: types.FieldDescriptor{
				Kind:         kind,
				Label:        label,
				Placeholder:  el.Placeholder,
				AriaLabel:    el.AriaLabel,
				Name:         el.Name,
				CurrentValue: el.Value,
			},
		})
	}
	return fields, nil
}

// TextFieldCount returns how many fields TextFields would return
func (p *Perceiver) TextFieldCount(ctx context.Context) (int, error) {
	fields, err := p.TextFields(ctx)
	return len(fields), err
}

// RadioGroups returns the unanswered radio groups of the current step
func (p *Perceiver) RadioGroups(ctx context.Context) ([]RadioGroup, error) {
	elements, err := p.inspector.Elements(ctx, ui.ElementRadio)
	if err != nil {
		return nil, fmt.Errorf("failed to inspect radio groups: %w", err)
	}

	var groups []RadioGroup
	for _, members := range groupBy(elements) {
		if members[0].GroupKey == "" {
			continue
		}
		var options []ui.Element
		answered := false
		for _, el := range members {
			answered = answered || el.Checked
			if usable(el) {
				options = append(options, el)
			}
		}
		if answered || len(options) == 0 {
			continue
		}

		first := options[0]
		group := RadioGroup{
			Descriptor: types.RadioGroupDescriptor{
				GroupID:      first.GroupKey,
				QuestionText: firstNonEmpty(first.GroupQuestion, first.AriaLabel, first.AncestorText),
				OptionCount:  len(options),
			},
		}
		for i, el := range options {
			group.Descriptor.OptionLabels = append(group.Descriptor.OptionLabels, optionLabel(el, i))
			group.OptionIDs = append(group.OptionIDs, el.ID)
		}
		groups = append(groups, group)
	}
	return groups, nil
}

// Selects returns the dropdowns of the current step that still show a placeholder
func (p *Perceiver) Selects(ctx context.Context) ([]SelectField, error) {
	elements, err := p.inspector.Elements(ctx, ui.ElementSelect)
	if err != nil {
		return nil, fmt.Errorf("failed to inspect selects: %w", err)
	}

	var fields []SelectField
	for _, el := range elements {
		if !usable(el) || selectAnswered(el) {
			continue
		}
		label := firstNonEmpty(el.LabelText, el.AriaLabel, el.AncestorText)
		if pattern, skip := p.selectSkip.match(label, identifierWords(el.Name), identifierWords(el.HTMLID)); skip {
			p.logger.Debug("skipping auto-fillable select",
				zap.String("field", firstNonEmpty(label, el.Name)),
				zap.String("pattern", pattern))
			continue
		}

		field := SelectField{
			ElementID: el.ID,
			Descriptor: types.SelectDescriptor{
				Label:        label,
				CurrentValue: el.Value,
			},
		}
		for i, opt := range el.Options {
			if opt.Text == "" {
				continue
			}
			field.Descriptor.OptionTexts = append(field.Descriptor.OptionTexts, opt.Text)
			field.Descriptor.OptionValues = append(field.Descriptor.OptionValues, opt.Value)
			field.RawIndex = append(field.RawIndex, i)
		}
		fields = append(fields, field)
	}
	return fields, nil
}

// selectAnswered reports whether the selected option is a real choice
func selectAnswered(el ui.Element) bool {
	for _, opt := range el.Options {
		if opt.Value == el.Value {
			return !classify.IsPlaceholderOption(opt.Text)
		}
	}
	return false
}

// Checkboxes groups the unanswered checkboxes of the current step by container
// and splits them into radio-equivalent groups and standard checkboxes
func (p *Perceiver) Checkboxes(ctx context.Context) ([]CheckboxGroup, error) {
	elements, err := p.inspector.Elements(ctx, ui.ElementCheckbox)
	if err != nil {
		return nil, fmt.Errorf("failed to inspect checkboxes: %w", err)
	}

	var groups []CheckboxGroup
	for _, members := range groupBy(elements) {
		var boxes []ui.Element
		for _, el := range members {
			if usable(el) {
				boxes = append(boxes, el)
			}
		}
		if len(boxes) == 0 {
			continue
		}

		labels := make([]string, len(boxes))
		anyChecked := false
		for i, el := range boxes {
			labels[i] = optionLabel(el, i)
			anyChecked = anyChecked || el.Checked
		}

		if len(boxes) >= 2 && classify.IsRadioEquivalent(labels) {
			if anyChecked {
				continue
			}
			group := CheckboxGroup{
				GroupID: boxes[0].GroupKey,
				Group:   types.NewRadioEquivalent(firstNonEmpty(boxes[0].GroupQuestion, boxes[0].AncestorText), labels),
			}
			for _, el := range boxes {
				group.OptionIDs = append(group.OptionIDs, el.ID)
			}
			groups = append(groups, group)
			continue
		}

		for _, el := range boxes {
			if el.Checked {
				continue
			}
			groups = append(groups, CheckboxGroup{
				GroupID:   el.ID,
				Group:     types.NewStandardCheckbox(firstNonEmpty(el.LabelText, el.AriaLabel, el.AncestorText)),
				OptionIDs: []string{el.ID},
			})
		}
	}
	return groups, nil
}

// groupBy groups elements by GroupKey in first-seen order
func groupBy(elements []ui.Element) [][]ui.Element {
	index := make(map[string]int)
	var groups [][]ui.Element
	for _, el := range elements {
		i, ok := index[el.GroupKey]
		if !ok {
			i = len(groups)
			index[el.GroupKey] = i
			groups = append(groups, nil)
		}
		groups[i] = append(groups[i], el)
	}
	return groups
}

func optionLabel(el ui.Element, i int) string {
	if label := firstNonEmpty(el.LabelText, el.AriaLabel); label != "" {
		return label
	}
	return fmt.Sprintf("Option %d", i+1)
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
