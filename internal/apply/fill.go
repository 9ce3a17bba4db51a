package apply

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/jonathan/easy-apply/internal/classify"
	"github.com/jonathan/easy-apply/internal/perception"
	"github.com/jonathan/easy-apply/internal/policy"
	"github.com/jonathan/easy-apply/internal/types"
	"github.com/jonathan/easy-apply/internal/ui"
)

// Field types reported in violations and events for non-text fields
const (
	FieldRadio    = "radio"
	FieldCheckbox = "checkbox"
	FieldSelect   = "select"
)

// fillStep runs one fill pass over the current step. It reports whether the job ended.
func (r *jobRun) fillStep(ctx context.Context) bool {
	passes := []func(context.Context) (bool, error){
		r.fillText,
		r.fillRadios,
		r.fillCheckboxes,
		r.fillSelects,
	}
	for _, pass := range passes {
		stopped, err := pass(ctx)
		if err != nil {
			r.fail(types.ReasonUnexpectedState, err.Error())
			return true
		}
		if stopped {
			return true
		}
	}
	return false
}

func (r *jobRun) fillText(ctx context.Context) (bool, error) {
	fields, err := r.engine.perceiver.TextFields(ctx)
	if err != nil {
		return false, err
	}
	for _, f := range fields {
		d := f.Descriptor
		c := classify.Field(d)
		res := r.engine.resolver.Text(d, c)
		field := &types.FieldContext{
			Type:           string(d.Kind),
			Question:       d.DisplayText(),
			Classification: c.String(),
		}
		id := f.ElementID
		write := func(ctx context.Context) (string, error) {
			return res.Value, r.engine.page.Fill(ctx, id, res.Value)
		}
		if r.settle(ctx, field, res, id, write) {
			return true, nil
		}
	}
	return false, nil
}

func (r *jobRun) fillRadios(ctx context.Context) (bool, error) {
	groups, err := r.engine.perceiver.RadioGroups(ctx)
	if err != nil {
		return false, err
	}
	for _, g := range groups {
		d := g.Descriptor
		res := r.engine.resolver.Radio(d)
		field := &types.FieldContext{
			Type:           FieldRadio,
			Question:       d.QuestionText,
			Options:        d.OptionLabels,
			Classification: optionClassification(d.QuestionText),
		}
		ids := g.OptionIDs
		write := func(ctx context.Context) (string, error) {
			if res.Index < 0 || res.Index >= len(ids) {
				return "", fmt.Errorf("option %d out of range for %q", res.Index, d.QuestionText)
			}
			return d.OptionLabels[res.Index], r.engine.page.SetChecked(ctx, ids[res.Index], true)
		}
		if r.settle(ctx, field, res, firstID(ids), write) {
			return true, nil
		}
	}
	return false, nil
}

func (r *jobRun) fillCheckboxes(ctx context.Context) (bool, error) {
	groups, err := r.engine.perceiver.Checkboxes(ctx)
	if err != nil {
		return false, err
	}
	for _, g := range groups {
		res := r.engine.resolver.Checkbox(g.Group)
		var field *types.FieldContext
		var write func(context.Context) (string, error)

		if g.Group.Kind == types.CheckboxRadioEquivalent {
			field = &types.FieldContext{
				Type:           FieldCheckbox,
				Question:       g.Group.QuestionText,
				Options:        g.Group.OptionLabels,
				Classification: optionClassification(g.Group.QuestionText),
			}
			group := g
			write = func(ctx context.Context) (string, error) {
				if err := r.checkExactlyOne(ctx, group, res.Index); err != nil {
					return "", err
				}
				return group.Group.OptionLabels[res.Index], nil
			}
		} else {
			field = &types.FieldContext{Type: FieldCheckbox, Question: g.Group.Label}
			id := firstID(g.OptionIDs)
			write = func(ctx context.Context) (string, error) {
				if !res.Check {
					return "unchecked", nil
				}
				return "checked", r.engine.page.SetChecked(ctx, id, true)
			}
		}

		if r.settle(ctx, field, res, firstID(g.OptionIDs), write) {
			return true, nil
		}
	}
	return false, nil
}

// checkExactlyOne clears every box in a radio-equivalent group, checks the
// target, then verifies that exactly the target is checked
func (r *jobRun) checkExactlyOne(ctx context.Context, g perception.CheckboxGroup, index int) error {
	if index < 0 || index >= len(g.OptionIDs) {
		return fmt.Errorf("option %d out of range for %q", index, g.Group.QuestionText)
	}
	page := r.engine.page
	for i, id := range g.OptionIDs {
		if i == index {
			continue
		}
		if err := page.SetChecked(ctx, id, false); err != nil {
			return fmt.Errorf("failed to clear %q: %w", g.Group.OptionLabels[i], err)
		}
	}
	if err := page.SetChecked(ctx, g.OptionIDs[index], true); err != nil {
		return fmt.Errorf("failed to check %q: %w", g.Group.OptionLabels[index], err)
	}

	elements, err := page.Elements(ctx, ui.ElementCheckbox)
	if err != nil {
		return fmt.Errorf("failed to verify %q: %w", g.Group.QuestionText, err)
	}
	members := make(map[string]bool, len(g.OptionIDs))
	for _, id := range g.OptionIDs {
		members[id] = true
	}
	checked := 0
	targetChecked := false
	for _, el := range elements {
		if members[el.ID] && el.Checked {
			checked++
			targetChecked = targetChecked || el.ID == g.OptionIDs[index]
		}
	}
	if checked != 1 || !targetChecked {
		return fmt.Errorf("expected only %q checked in %q, found %d checked",
			g.Group.OptionLabels[index], g.Group.QuestionText, checked)
	}
	return nil
}

func (r *jobRun) fillSelects(ctx context.Context) (bool, error) {
	fields, err := r.engine.perceiver.Selects(ctx)
	if err != nil {
		return false, err
	}
	for _, s := range fields {
		d := s.Descriptor
		res := r.engine.resolver.Select(d)
		field := &types.FieldContext{
			Type:           FieldSelect,
			Question:       d.Label,
			Options:        d.OptionTexts,
			Classification: optionClassification(d.Label),
		}
		sel := s
		write := func(ctx context.Context) (string, error) {
			if res.Index < 0 || res.Index >= len(sel.RawIndex) {
				return "", fmt.Errorf("option %d out of range for %q", res.Index, d.Label)
			}
			return d.OptionTexts[res.Index], r.engine.page.SelectOption(ctx, sel.ElementID, sel.RawIndex[res.Index])
		}
		if r.settle(ctx, field, res, s.ElementID, write) {
			return true, nil
		}
	}
	return false, nil
}

// settle applies the confidence policy to one resolution, writes it when it is
// accepted and checks the host's verdict on the write. It reports whether the
// job ended. A write error fails the job.
func (r *jobRun) settle(ctx context.Context, field *types.FieldContext, res types.Resolution,
	elementID string, write func(context.Context) (string, error)) bool {
	field.MatchedKey = res.MatchedKey
	field.Confidence = res.Confidence

	if !policy.Accept(res) {
		r.result.FieldsUnresolved++
		r.result.ConfidenceFloorHit = true
		v := types.Violation{Reason: types.ReasonUnresolvedField, Field: field, Details: res.Reason}
		if res.Resolved() {
			v.Reason = types.ReasonLowConfidence
			v.Details = fmt.Sprintf("%s confidence for %s is below the floor", res.Confidence, res.MatchedKey)
		}
		event := fieldEvent(EventFieldUnresolved, field)
		event.Reason = v.Details
		r.emit(event)
		return r.violate(ctx, v)
	}

	value, err := write(ctx)
	if err != nil {
		r.fail(types.ReasonUnexpectedState, fmt.Sprintf("failed to answer %q: %v", field.Question, err))
		return true
	}

	if elementID != "" {
		message, invalid, err := r.engine.page.InlineError(ctx, elementID)
		if err != nil {
			r.logger.Warn("inline error check failed", zap.String("question", field.Question), zap.Error(err))
		}
		if invalid {
			r.result.FieldsUnresolved++
			return r.violate(ctx, types.Violation{Reason: types.ReasonValidationError, Field: field, Details: message})
		}
	}

	r.result.FieldsResolved++
	event := fieldEvent(EventFieldResolved, field)
	event.Value = value
	r.emit(event)
	r.logger.Debug("field resolved",
		zap.String("question", field.Question),
		zap.String("matched_key", res.MatchedKey),
		zap.String("confidence", string(res.Confidence)))
	return false
}

// optionClassification labels option fields for the event log; only
// self-identification questions carry a classification
func optionClassification(question string) string {
	if topic, ok := classify.SelfIDTopic(question); ok {
		return types.SelfIdentification(topic.Subtype).String()
	}
	return ""
}

func firstID(ids []string) string {
	if len(ids) == 0 {
		return ""
	}
	return ids[0]
}
