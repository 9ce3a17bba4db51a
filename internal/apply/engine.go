// Package apply drives one Easy Apply form at a time from the job page to a
// terminal outcome. Each job is a loop of detect, fill once per step, then act
// on the detected state until the job is submitted, cancelled, skipped or failed.
package apply

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/jonathan/easy-apply/internal/perception"
	"github.com/jonathan/easy-apply/internal/policy"
	"github.com/jonathan/easy-apply/internal/resolve"
	"github.com/jonathan/easy-apply/internal/state"
	"github.com/jonathan/easy-apply/internal/types"
	"github.com/jonathan/easy-apply/internal/ui"
)

// Defaults for Options
const (
	DefaultStallLimit     = 5
	DefaultModalWaitPolls = 5
)

// Job is one posting to apply to
type Job struct {
	ID  string
	URL string
}

// Options configures an Engine
type Options struct {
	Perception perception.Options
	// StallLimit is the number of consecutive transient polls after which a
	// frozen modal fails the job
	StallLimit int
	// ModalWaitPolls is how many times the modal is looked for after opening the form
	ModalWaitPolls int
	// PollInterval is the pause between polls of a transient state
	PollInterval time.Duration
	OnEvent      EventCallback
	Logger       *zap.Logger
	Now          func() time.Time
}

// Engine runs jobs against a single page
type Engine struct {
	page      ui.Page
	resolver  *resolve.Resolver
	handler   *policy.Handler
	perceiver *perception.Perceiver
	detector  *state.Detector
	opts      Options
	logger    *zap.Logger
}

// New creates an Engine
func New(page ui.Page, resolver *resolve.Resolver, handler *policy.Handler, opts Options) *Engine {
	if opts.StallLimit <= 0 {
		opts.StallLimit = DefaultStallLimit
	}
	if opts.ModalWaitPolls <= 0 {
		opts.ModalWaitPolls = DefaultModalWaitPolls
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	perceiver := perception.New(page, opts.Perception, logger)
	return &Engine{
		page:      page,
		resolver:  resolver,
		handler:   handler,
		perceiver: perceiver,
		detector:  state.NewDetector(page, perceiver),
		opts:      opts,
		logger:    logger,
	}
}

// Run applies to one job and always returns its result
func (e *Engine) Run(ctx context.Context, job Job) types.JobResult {
	start := e.opts.Now()
	r := &jobRun{
		engine: e,
		job:    job,
		result: types.JobResult{JobID: job.ID, URL: job.URL},
		logger: e.logger.With(zap.String("job_id", job.ID)),
	}
	r.emit(Event{Kind: EventJobStarted, Details: job.URL})
	r.logger.Info("job started", zap.String("url", job.URL))

	r.execute(ctx)

	r.result.StateAtExit = r.state
	r.result.Elapsed = e.opts.Now().Sub(start)
	r.logger.Info("job finished",
		zap.String("outcome", string(r.result.Outcome)),
		zap.String("skip_reason", string(r.result.SkipReason)),
		zap.String("state", string(r.state)),
		zap.Int("fields_resolved", r.result.FieldsResolved),
		zap.Int("fields_unresolved", r.result.FieldsUnresolved))
	result := r.result
	r.emit(Event{Kind: EventJobFinished, Reason: string(result.SkipReason), Details: result.Details, Result: &result})
	return result
}

// jobRun is the mutable state of one job. It never outlives Run.
type jobRun struct {
	engine    *Engine
	job       Job
	result    types.JobResult
	logger    *zap.Logger
	state     types.ApplicationState
	processed bool
	stalls    int
	done      bool
}

func (r *jobRun) emit(event Event) {
	event.JobID = r.job.ID
	if event.State == "" {
		event.State = r.state
	}
	if r.engine.opts.OnEvent != nil {
		r.engine.opts.OnEvent(event)
	}
}

func (r *jobRun) finish(outcome types.Outcome, reason types.ViolationReason, details string) {
	r.result.Outcome = outcome
	r.result.SkipReason = reason
	r.result.Details = details
	r.done = true
}

// record appends a violation to the result and the event stream
func (r *jobRun) record(v types.Violation) types.Violation {
	v.State = string(r.state)
	r.result.Violations = append(r.result.Violations, v)
	event := Event{Kind: EventViolation}
	if v.Field != nil {
		event = fieldEvent(EventViolation, v.Field)
	}
	event.Reason = string(v.Reason)
	event.Details = v.Details
	r.emit(event)
	return v
}

// stop ends the job on a violation that no human decision can recover
func (r *jobRun) stop(outcome types.Outcome, reason types.ViolationReason, details string) {
	r.record(types.Violation{Reason: reason, Details: details})
	r.logger.Warn("job stopped", zap.String("reason", string(reason)), zap.String("details", details))
	r.finish(outcome, reason, details)
}

func (r *jobRun) fail(reason types.ViolationReason, details string) {
	r.stop(types.OutcomeFailed, reason, details)
}

// violate hands a violation to the policy handler. It reports whether the job
// has ended.
func (r *jobRun) violate(ctx context.Context, v types.Violation) bool {
	v = r.record(v)
	decision, err := r.engine.handler.Handle(ctx, r.job.ID, v)
	if err != nil {
		r.logger.Warn("violation handler failed", zap.Error(err))
		decision = policy.Skip
	}
	if decision == policy.Continue {
		return false
	}
	r.finish(types.OutcomeSkipped, v.Reason, v.Details)
	return true
}

func (r *jobRun) execute(ctx context.Context) {
	page := r.engine.page
	if err := page.Navigate(ctx, r.job.URL); err != nil {
		r.state = types.StateError
		r.fail(types.ReasonUnexpectedState, fmt.Sprintf("navigation failed: %v", err))
		return
	}
	r.state = types.StateJobPage

	applied, err := page.AlreadyApplied(ctx)
	if err != nil {
		r.logger.Warn("already-applied check failed", zap.Error(err))
	}
	if applied {
		r.stop(types.OutcomeSkipped, types.ReasonAlreadyApplied, "job page shows a previous application")
		return
	}

	if !r.open(ctx) {
		return
	}
	r.loop(ctx)
}

// open opens the form and checks that it carries something to work with
func (r *jobRun) open(ctx context.Context) bool {
	page := r.engine.page
	if err := page.OpenForm(ctx); err != nil {
		r.stop(types.OutcomeSkipped, types.ReasonModalNotDetected, fmt.Sprintf("could not open the form: %v", err))
		return false
	}

	visible := false
	for i := 0; i < r.engine.opts.ModalWaitPolls && !visible; i++ {
		if i > 0 && !r.pause(ctx) {
			return false
		}
		var err error
		visible, err = page.ModalVisible(ctx)
		if err != nil {
			r.logger.Warn("modal check failed", zap.Error(err))
		}
	}
	if !visible {
		r.stop(types.OutcomeSkipped, types.ReasonModalNotDetected, "application modal did not appear")
		return false
	}
	r.state = types.StateModalOpen

	empty, err := r.emptyModal(ctx)
	if err != nil {
		r.fail(types.ReasonUnexpectedState, err.Error())
		return false
	}
	if empty {
		r.stop(types.OutcomeSkipped, types.ReasonNoFormElements, "modal has no buttons or fields")
		return false
	}
	return true
}

func (r *jobRun) emptyModal(ctx context.Context) (bool, error) {
	page := r.engine.page
	buttons, err := page.Buttons(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to read modal buttons: %w", err)
	}
	if len(buttons) > 0 {
		return false, nil
	}
	for _, kind := range []ui.ElementKind{ui.ElementText, ui.ElementRadio, ui.ElementCheckbox, ui.ElementSelect} {
		elements, err := page.Elements(ctx, kind)
		if err != nil {
			return false, fmt.Errorf("failed to read modal %s elements: %w", kind, err)
		}
		if len(elements) > 0 {
			return false, nil
		}
	}
	return true, nil
}

// pause waits PollInterval. It reports false, and fails the job, when ctx ends first.
func (r *jobRun) pause(ctx context.Context) bool {
	if err := ctx.Err(); err != nil {
		r.fail(types.ReasonUnexpectedState, fmt.Sprintf("interrupted: %v", err))
		return false
	}
	interval := r.engine.opts.PollInterval
	if interval <= 0 {
		return true
	}
	timer := time.NewTimer(interval)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		r.fail(types.ReasonUnexpectedState, fmt.Sprintf("interrupted: %v", ctx.Err()))
		return false
	case <-timer.C:
		return true
	}
}

// loop runs until the job reaches a terminal outcome. It has no step limit;
// only a stalled UI or a cancelled context ends it early.
func (r *jobRun) loop(ctx context.Context) {
	for !r.done {
		if err := ctx.Err(); err != nil {
			r.fail(types.ReasonUnexpectedState, fmt.Sprintf("interrupted: %v", err))
			return
		}

		st, err := r.engine.detector.Detect(ctx)
		r.state = st
		r.emit(Event{Kind: EventStateDetected})
		if err != nil {
			r.fail(types.ReasonUnexpectedState, fmt.Sprintf("state detection failed: %v", err))
			return
		}

		switch st {
		case types.StateSubmitted:
			r.finish(types.OutcomeSubmitted, "", "application confirmed submitted")
			return
		case types.StateError:
			r.fail(types.ReasonUnexpectedState, "no known state detected")
			return
		case types.StateJobPage:
			r.fail(types.ReasonUnexpectedState, "application modal closed unexpectedly")
			return
		}

		if !r.processed {
			r.processed = true
			if r.fillStep(ctx) {
				return
			}
			r.stalls = 0
			continue
		}

		switch st {
		case types.StateModalFormStep, types.StateModalReviewStep, types.StateModalSingleStep:
			r.stalls = 0
			r.act(ctx, st)
		default:
			r.stalls++
			if r.stalls >= r.engine.opts.StallLimit {
				r.fail(types.ReasonUnexpectedState,
					fmt.Sprintf("modal stayed in %s for %d polls", st, r.stalls))
				return
			}
			r.pause(ctx)
		}
	}
}

func (r *jobRun) act(ctx context.Context, st types.ApplicationState) {
	buttons, err := r.engine.page.Buttons(ctx)
	if err != nil {
		r.fail(types.ReasonUnexpectedState, fmt.Sprintf("failed to read modal buttons: %v", err))
		return
	}
	controls := state.FindControls(buttons)

	switch st {
	case types.StateModalFormStep:
		r.advance(ctx, controls.Next, "Next")
	case types.StateModalReviewStep:
		if controls.Review != nil {
			r.advance(ctx, controls.Review, "Review")
			return
		}
		r.submit(ctx, controls.Submit)
	case types.StateModalSingleStep:
		r.submit(ctx, controls.Submit)
	}
}

// gate runs the pre-click checks on a control. It reports whether the click may
// go ahead; when it may not and the job is still running, the loop re-detects.
func (r *jobRun) gate(ctx context.Context, b *ui.Button, name string) bool {
	if b == nil {
		r.fail(types.ReasonUnexpectedState, fmt.Sprintf("%s button not found", name))
		return false
	}

	message, banner, err := r.engine.page.ValidationBanner(ctx)
	if err != nil {
		r.logger.Warn("validation banner check failed", zap.Error(err))
	}
	if banner {
		if r.violate(ctx, types.Violation{Reason: types.ReasonValidationError, Details: message}) {
			return false
		}
	}

	if b.Disabled {
		r.violate(ctx, types.Violation{
			Reason:  types.ReasonDisabledButton,
			Details: fmt.Sprintf("%s button is disabled", name),
		})
		return false
	}
	return true
}

func (r *jobRun) click(ctx context.Context, b *ui.Button, name string) bool {
	if err := r.engine.page.Click(ctx, b.ID); err != nil {
		r.fail(types.ReasonUnexpectedState, fmt.Sprintf("%s button not accessible: %v", name, err))
		return false
	}
	r.emit(Event{Kind: EventButtonClicked, Value: name})
	r.processed = false
	return true
}

// advance moves to the next step of the form
func (r *jobRun) advance(ctx context.Context, b *ui.Button, name string) {
	if r.gate(ctx, b, name) {
		r.click(ctx, b, name)
	}
}

// submit runs the confirmation gate and presses Submit
func (r *jobRun) submit(ctx context.Context, b *ui.Button) {
	if !r.gate(ctx, b, "Submit") {
		return
	}

	decision, err := r.engine.handler.ConfirmSubmit(ctx, r.job.ID, r.result.FieldsResolved)
	if err != nil {
		r.logger.Warn("submit confirmation failed", zap.Error(err))
		r.finish(types.OutcomeCancelled, "", fmt.Sprintf("submit confirmation failed: %v", err))
		return
	}
	switch decision {
	case policy.SubmitWithheld:
		r.finish(types.OutcomeTestPassed, "", "all fields resolved, submit withheld in test mode")
		return
	case policy.SubmitDeclined:
		r.finish(types.OutcomeCancelled, "", "submission declined")
		return
	}

	if !r.click(ctx, b, "Submit") {
		return
	}
	st, err := r.engine.detector.Detect(ctx)
	if err != nil {
		r.logger.Warn("post-submit detection failed", zap.Error(err))
	}
	if st != "" {
		r.state = st
	}
	if st == types.StateSubmitted {
		r.finish(types.OutcomeSubmitted, "", "application submitted")
		return
	}
	r.finish(types.OutcomeSubmitted, "", "submit pressed, success not confirmed")
}
