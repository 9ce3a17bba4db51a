// Package policy is the single authority on whether a resolution may be written
// and on what happens when it may not.
package policy

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/jonathan/easy-apply/internal/classify"
	"github.com/jonathan/easy-apply/internal/observability"
	"github.com/jonathan/easy-apply/internal/types"
)

// Accept reports whether a resolution clears the confidence floor. High is
// always accepted; medium only for self-identification keys, where the answer is
// a decline option.
func Accept(r types.Resolution) bool {
	switch r.Confidence {
	case types.ConfidenceHigh:
		return true
	case types.ConfidenceMedium:
		return classify.IsSelfIDKey(r.MatchedKey)
	}
	return false
}

// Mode selects how violations are handled
type Mode string

// Handling modes
const (
	// Interactive pauses on each violation and asks a human
	Interactive Mode = "interactive"
	// Production logs the violation and skips the job immediately
	Production Mode = "production"
)

// ParseMode parses a mode name
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case Interactive, Production:
		return Mode(s), nil
	}
	return "", fmt.Errorf("unknown mode %q (expected %q or %q)", s, Interactive, Production)
}

// Decision is the handler's ruling on a violation
type Decision int

// Violation decisions
const (
	// Skip abandons the job
	Skip Decision = iota
	// Continue resumes the job; the human has fixed the field by hand
	Continue
)

func (d Decision) String() string {
	if d == Continue {
		return "continue"
	}
	return "skip"
}

// SubmitDecision is the outcome of the submit confirmation gate
type SubmitDecision int

// Submit gate outcomes
const (
	SubmitApproved SubmitDecision = iota
	SubmitDeclined
	// SubmitWithheld means test mode stopped the run before submitting
	SubmitWithheld
)

// Confirmer is the suspension point for human decisions
type Confirmer interface {
	ConfirmSkip(ctx context.Context, jobID string, v types.Violation) (Decision, error)
	ConfirmSubmit(ctx context.Context, jobID string, resolved int) (bool, error)
}

// AutoConfirmer answers every question without waiting. Violations are skipped
// and submissions approved.
type AutoConfirmer struct{}

// ConfirmSkip implements Confirmer
func (AutoConfirmer) ConfirmSkip(context.Context, string, types.Violation) (Decision, error) {
	return Skip, nil
}

// ConfirmSubmit implements Confirmer
func (AutoConfirmer) ConfirmSubmit(context.Context, string, int) (bool, error) {
	return true, nil
}

// Options configures a Handler
type Options struct {
	Mode Mode
	// TestMode runs resolution but never submits
	TestMode  bool
	Confirmer Confirmer
	Printer   *observability.Printer
	Logger    *zap.Logger
}

// Handler rules on violations and gates submission
type Handler struct {
	mode      Mode
	testMode  bool
	confirmer Confirmer
	printer   *observability.Printer
	logger    *zap.Logger
}

// NewHandler creates a handler. Production mode is the default and always uses
// the AutoConfirmer for skips.
func NewHandler(opts Options) *Handler {
	h := &Handler{
		mode:      opts.Mode,
		testMode:  opts.TestMode,
		confirmer: opts.Confirmer,
		printer:   opts.Printer,
		logger:    opts.Logger,
	}
	if h.mode != Interactive {
		h.mode = Production
	}
	if h.confirmer == nil {
		h.confirmer = AutoConfirmer{}
	}
	if h.logger == nil {
		h.logger = zap.NewNop()
	}
	return h
}

// Mode returns the handling mode
func (h *Handler) Mode() Mode {
	return h.mode
}

// TestMode reports whether submission is withheld
func (h *Handler) TestMode() bool {
	return h.testMode
}

// Handle rules on a violation. Production mode never suspends.
func (h *Handler) Handle(ctx context.Context, jobID string, v types.Violation) (Decision, error) {
	fields := []zap.Field{
		zap.String("job_id", jobID),
		zap.String("reason", string(v.Reason)),
		zap.String("details", v.Details),
		zap.String("mode", string(h.mode)),
	}
	if v.Field != nil {
		fields = append(fields, zap.String("question", v.Field.Question), zap.String("field_type", v.Field.Type))
	}

	if h.mode == Production {
		h.logger.Info("violation", append(fields, zap.Stringer("decision", Skip))...)
		return Skip, nil
	}

	if h.printer != nil {
		h.printer.PrintViolation(jobID, v)
	}
	decision, err := h.confirmer.ConfirmSkip(ctx, jobID, v)
	if err != nil {
		return Skip, fmt.Errorf("failed to confirm violation: %w", err)
	}
	h.logger.Info("violation", append(fields, zap.Stringer("decision", decision))...)
	return decision, nil
}

// ConfirmSubmit runs the submit confirmation gate. Test mode withholds without asking.
func (h *Handler) ConfirmSubmit(ctx context.Context, jobID string, resolved int) (SubmitDecision, error) {
	if h.testMode {
		h.logger.Info("submit withheld", zap.String("job_id", jobID))
		return SubmitWithheld, nil
	}
	if h.printer != nil && h.mode == Interactive {
		h.printer.PrintSubmitPrompt(jobID, resolved)
	}
	ok, err := h.confirmer.ConfirmSubmit(ctx, jobID, resolved)
	if err != nil {
		return SubmitDeclined, fmt.Errorf("failed to confirm submit: %w", err)
	}
	if !ok {
		return SubmitDeclined, nil
	}
	return SubmitApproved, nil
}
