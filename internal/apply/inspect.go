package apply

import (
	"context"

	"go.uber.org/zap"

	"github.com/jonathan/easy-apply/internal/classify"
	"github.com/jonathan/easy-apply/internal/observability"
	"github.com/jonathan/easy-apply/internal/perception"
	"github.com/jonathan/easy-apply/internal/policy"
	"github.com/jonathan/easy-apply/internal/resolve"
	"github.com/jonathan/easy-apply/internal/state"
	"github.com/jonathan/easy-apply/internal/types"
	"github.com/jonathan/easy-apply/internal/ui"
)

// Inspection is a dry run over the current step: its state and how every
// perceived field would resolve
type Inspection struct {
	State types.ApplicationState
	Rows  []observability.FieldRow
}

// Inspect perceives and resolves the current step without writing anything
func Inspect(ctx context.Context, inspector ui.Inspector, resolver *resolve.Resolver,
	opts perception.Options, logger *zap.Logger) (Inspection, error) {
	p := perception.New(inspector, opts, logger)

	st, err := state.NewDetector(inspector, p).Detect(ctx)
	if err != nil {
		return Inspection{State: st}, err
	}
	out := Inspection{State: st}

	add := func(kind, question string, options []string, classification string, res types.Resolution) {
		out.Rows = append(out.Rows, observability.FieldRow{
			Kind:           kind,
			Question:       question,
			Options:        options,
			Classification: classification,
			Resolution:     res,
			Accepted:       policy.Accept(res),
		})
	}

	texts, err := p.TextFields(ctx)
	if err != nil {
		return out, err
	}
	for _, f := range texts {
		c := classify.Field(f.Descriptor)
		add(string(f.Descriptor.Kind), f.Descriptor.DisplayText(), nil, c.String(), resolver.Text(f.Descriptor, c))
	}

	radios, err := p.RadioGroups(ctx)
	if err != nil {
		return out, err
	}
	for _, g := range radios {
		d := g.Descriptor
		add(FieldRadio, d.QuestionText, d.OptionLabels, optionClassification(d.QuestionText), resolver.Radio(d))
	}

	boxes, err := p.Checkboxes(ctx)
	if err != nil {
		return out, err
	}
	for _, g := range boxes {
		question := g.Group.Label
		if g.Group.Kind == types.CheckboxRadioEquivalent {
			question = g.Group.QuestionText
		}
		add(FieldCheckbox, question, g.Group.OptionLabels, optionClassification(question), resolver.Checkbox(g.Group))
	}

	selects, err := p.Selects(ctx)
	if err != nil {
		return out, err
	}
	for _, s := range selects {
		d := s.Descriptor
		add(FieldSelect, d.Label, d.OptionTexts, optionClassification(d.Label), resolver.Select(d))
	}
	return out, nil
}
