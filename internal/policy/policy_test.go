package policy

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/jonathan/easy-apply/internal/classify"
	"github.com/jonathan/easy-apply/internal/observability"
	"github.com/jonathan/easy-apply/internal/types"
)

// recordingConfirmer records calls and answers with fixed decisions
type recordingConfirmer struct {
	skipCalls   int
	submitCalls int
	decision    Decision
	approve     bool
	err         error
}

func (c *recordingConfirmer) ConfirmSkip(context.Context, string, types.Violation) (Decision, error) {
	c.skipCalls++
	return c.decision, c.err
}

func (c *recordingConfirmer) ConfirmSubmit(context.Context, string, int) (bool, error) {
	c.submitCalls++
	return c.approve, c.err
}

func TestAccept(t *testing.T) {
	tests := []struct {
		name string
		res  types.Resolution
		want bool
	}{
		{"high", types.IndexResolution(0, types.ConfidenceHigh, "authorized_to_work"), true},
		{"high text", types.ValueResolution("3", types.ConfidenceHigh, "years_experience"), true},
		{"medium self-id", types.IndexResolution(2, types.ConfidenceMedium, classify.KeyGender), true},
		{"medium disability", types.IndexResolution(2, types.ConfidenceMedium, classify.KeyDisability), true},
		{"medium other key", types.IndexResolution(1, types.ConfidenceMedium, "referral_source"), false},
		{"low", types.Unresolved("unmatched"), false},
		{"empty confidence", types.Resolution{Index: 0}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Accept(tt.res))
		})
	}
}

func TestParseMode(t *testing.T) {
	mode, err := ParseMode("interactive")
	require.NoError(t, err)
	assert.Equal(t, Interactive, mode)

	_, err = ParseMode("yolo")
	assert.Error(t, err)
}

func violation() types.Violation {
	return types.Violation{
		Reason:  types.ReasonUnresolvedField,
		Field:   &types.FieldContext{Type: "text", Question: "Years of experience"},
		Details: "years_experience_not_configured",
	}
}

func TestHandler_ProductionNeverCallsConfirmer(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	confirmer := &recordingConfirmer{decision: Continue}
	h := NewHandler(Options{Mode: Production, Confirmer: confirmer, Logger: zap.New(core)})

	decision, err := h.Handle(context.Background(), "job-1", violation())
	require.NoError(t, err)
	assert.Equal(t, Skip, decision)
	assert.Zero(t, confirmer.skipCalls)

	require.Equal(t, 1, logs.Len())
	entry := logs.All()[0]
	assert.Equal(t, "violation", entry.Message)
	assert.Equal(t, "unresolved_field", entry.ContextMap()["reason"])
	assert.Equal(t, "Years of experience", entry.ContextMap()["question"])
	assert.Equal(t, "skip", entry.ContextMap()["decision"])
}

func TestHandler_InteractiveAsksAndPrints(t *testing.T) {
	var out bytes.Buffer
	confirmer := &recordingConfirmer{decision: Continue}
	h := NewHandler(Options{Mode: Interactive, Confirmer: confirmer, Printer: observability.NewPrinter(&out)})

	decision, err := h.Handle(context.Background(), "job-1", violation())
	require.NoError(t, err)
	assert.Equal(t, Continue, decision)
	assert.Equal(t, 1, confirmer.skipCalls)
	assert.Contains(t, out.String(), "FIELD REQUIRES ATTENTION")
}

func TestHandler_InteractiveConfirmerError(t *testing.T) {
	confirmer := &recordingConfirmer{err: errors.New("terminal closed")}
	h := NewHandler(Options{Mode: Interactive, Confirmer: confirmer})

	decision, err := h.Handle(context.Background(), "job-1", violation())
	require.Error(t, err)
	assert.Equal(t, Skip, decision)
}

func TestHandler_Defaults(t *testing.T) {
	h := NewHandler(Options{})
	assert.Equal(t, Production, h.Mode())
	assert.False(t, h.TestMode())

	decision, err := h.ConfirmSubmit(context.Background(), "job-1", 3)
	require.NoError(t, err)
	assert.Equal(t, SubmitApproved, decision)
}

func TestHandler_ConfirmSubmit(t *testing.T) {
	t.Run("test mode withholds without asking", func(t *testing.T) {
		confirmer := &recordingConfirmer{approve: true}
		h := NewHandler(Options{Mode: Interactive, TestMode: true, Confirmer: confirmer})

		decision, err := h.ConfirmSubmit(context.Background(), "job-1", 3)
		require.NoError(t, err)
		assert.Equal(t, SubmitWithheld, decision)
		assert.Zero(t, confirmer.submitCalls)
	})

	t.Run("declined", func(t *testing.T) {
		var out bytes.Buffer
		confirmer := &recordingConfirmer{approve: false}
		h := NewHandler(Options{Mode: Interactive, Confirmer: confirmer, Printer: observability.NewPrinter(&out)})

		decision, err := h.ConfirmSubmit(context.Background(), "job-1", 3)
		require.NoError(t, err)
		assert.Equal(t, SubmitDeclined, decision)
		assert.Contains(t, out.String(), "READY TO SUBMIT")
	})

	t.Run("error declines", func(t *testing.T) {
		h := NewHandler(Options{Confirmer: &recordingConfirmer{err: errors.New("boom")}})

		decision, err := h.ConfirmSubmit(context.Background(), "job-1", 3)
		require.Error(t, err)
		assert.Equal(t, SubmitDeclined, decision)
	})
}

func TestPrompter_ConfirmSkip(t *testing.T) {
	tests := []struct {
		input string
		want  Decision
	}{
		{"s\n", Skip},
		{"\n", Skip},
		{"continue\n", Continue},
		{"what\nC\n", Continue},
		{"", Skip},
		{"what", Skip},
	}
	for _, tt := range tests {
		t.Run(strings.TrimSpace(tt.input), func(t *testing.T) {
			var out bytes.Buffer
			p := NewPrompter(strings.NewReader(tt.input), &out)

			decision, err := p.ConfirmSkip(context.Background(), "job-1", violation())
			require.NoError(t, err)
			assert.Equal(t, tt.want, decision)
			assert.Contains(t, out.String(), "Skip this job?")
		})
	}
}

func TestPrompter_ConfirmSubmit(t *testing.T) {
	var out bytes.Buffer
	p := NewPrompter(strings.NewReader("yes\nn\n"), &out)

	ok, err := p.ConfirmSubmit(context.Background(), "job-1", 2)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = p.ConfirmSubmit(context.Background(), "job-1", 2)
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = p.ConfirmSubmit(context.Background(), "job-1", 2)
	require.NoError(t, err)
	assert.False(t, ok, "end of input declines")
	assert.Contains(t, out.String(), "Submit application job-1?")
}

func TestPrompter_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	p := NewPrompter(strings.NewReader("c\n"), &bytes.Buffer{})
	decision, err := p.ConfirmSkip(ctx, "job-1", violation())
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, Skip, decision)
}
