package policy

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/jonathan/easy-apply/internal/types"
)

// Prompter is a terminal Confirmer. End of input declines every question.
type Prompter struct {
	in  *bufio.Reader
	out io.Writer
}

// NewPrompter creates a prompter reading answers from in and writing prompts to out
func NewPrompter(in io.Reader, out io.Writer) *Prompter {
	return &Prompter{in: bufio.NewReader(in), out: out}
}

// ConfirmSkip implements Confirmer. Answering continue means the field was
// fixed by hand and the job should resume.
func (p *Prompter) ConfirmSkip(ctx context.Context, _ string, _ types.Violation) (Decision, error) {
	for {
		answer, err := p.ask(ctx, "Skip this job? [S]kip / [c]ontinue after fixing manually: ")
		if err != nil {
			return Skip, err
		}
		switch answer {
		case "", "s", "skip":
			return Skip, nil
		case "c", "continue", "f", "fixed":
			return Continue, nil
		}
	}
}

// ConfirmSubmit implements Confirmer
func (p *Prompter) ConfirmSubmit(ctx context.Context, jobID string, _ int) (bool, error) {
	answer, err := p.ask(ctx, fmt.Sprintf("Submit application %s? [y/N]: ", jobID))
	if err != nil {
		return false, err
	}
	return answer == "y" || answer == "yes", nil
}

// ask prints prompt and returns the lowercased answer. End of input reads as
// an empty answer.
func (p *Prompter) ask(ctx context.Context, prompt string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if _, err := fmt.Fprint(p.out, prompt); err != nil {
		return "", fmt.Errorf("failed to write prompt: %w", err)
	}
	line, err := p.in.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("failed to read answer: %w", err)
	}
	if errors.Is(err, io.EOF) && line == "" {
		return "", nil
	}
	return strings.ToLower(strings.TrimSpace(line)), nil
}
