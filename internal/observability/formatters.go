// Package observability provides formatted output utilities for operator-facing CLI output.
package observability

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/jonathan/easy-apply/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for interactive and verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	lines := strings.Split(content, "\n")
	for _, line := range lines {
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, truncate(line, boxWidth-4))
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// truncate shortens s to at most n runes
func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}

// PrintViolation outputs the context of a single violation so an operator can
// decide whether to skip the job or fix the field by hand.
func (p *Printer) PrintViolation(jobID string, v types.Violation) {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Job:      %s\n", jobID))
	sb.WriteString(fmt.Sprintf("Reason:   %s\n", v.Reason))
	if v.State != "" {
		sb.WriteString(fmt.Sprintf("State:    %s\n", v.State))
	}
	if f := v.Field; f != nil {
		sb.WriteString(fmt.Sprintf("Field:    %s\n", f.Type))
		sb.WriteString(fmt.Sprintf("Question: %s\n", f.Question))
		if f.Classification != "" {
			sb.WriteString(fmt.Sprintf("Class:    %s\n", f.Classification))
		}
		if f.MatchedKey != "" {
			sb.WriteString(fmt.Sprintf("Key:      %s\n", f.MatchedKey))
		}
		if f.Confidence != "" {
			sb.WriteString(fmt.Sprintf("Conf:     %s\n", f.Confidence))
		}
		if len(f.Options) > 0 {
			sb.WriteString("Options:\n")
			count := min(len(f.Options), maxItemsToShow)
			for i := 0; i < count; i++ {
				sb.WriteString(fmt.Sprintf("  %d. %s\n", i, f.Options[i]))
			}
			if len(f.Options) > maxItemsToShow {
				sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(f.Options)-maxItemsToShow))
			}
		}
	}
	sb.WriteString(fmt.Sprintf("Details:  %s", v.Details))

	p.printBox("⚠ FIELD REQUIRES ATTENTION", sb.String())
}

// PrintViolations outputs every violation recorded for a job.
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) PrintViolations(violations []types.Violation) {
	if len(violations) == 0 {
		fmt.Fprintf(p.out, "┌%s┐\n", strings.Repeat("─", boxWidth-2))
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, "✅ NO VIOLATIONS")
		fmt.Fprintf(p.out, "└%s┘\n", strings.Repeat("─", boxWidth-2))
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Found %d violations:\n\n", len(violations)))

	for i, v := range violations {
		sb.WriteString(fmt.Sprintf("⚠ %s\n", v.Reason))
		if v.Field != nil && v.Field.Question != "" {
			sb.WriteString(fmt.Sprintf("  %s\n", v.Field.Question))
		}
		sb.WriteString(fmt.Sprintf("  %s\n", v.Details))
		if i < len(violations)-1 {
			sb.WriteString("\n")
		}
	}

	p.printBox("VIOLATIONS", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintJobResult outputs the terminal result of one job
func (p *Printer) PrintJobResult(r types.JobResult) {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Job:        %s\n", r.JobID))
	sb.WriteString(fmt.Sprintf("Result:     %s\n", r.Outcome))
	if r.SkipReason != "" {
		sb.WriteString(fmt.Sprintf("Reason:     %s\n", r.SkipReason))
	}
	sb.WriteString(fmt.Sprintf("State:      %s\n", r.StateAtExit))
	sb.WriteString(fmt.Sprintf("Elapsed:    %.1fs\n", r.ElapsedSeconds()))
	sb.WriteString(fmt.Sprintf("Resolved:   %d\n", r.FieldsResolved))
	sb.WriteString(fmt.Sprintf("Unresolved: %d", r.FieldsUnresolved))
	if r.Details != "" {
		sb.WriteString(fmt.Sprintf("\nDetails:    %s", r.Details))
	}

	p.printBox("JOB RESULT", sb.String())
}

// PrintBatchSummary outputs outcome counts for a batch run
func (p *Printer) PrintBatchSummary(results []types.JobResult) {
	if len(results) == 0 {
		return
	}

	counts := make(map[types.Outcome]int)
	floorHits := 0
	for _, r := range results {
		counts[r.Outcome]++
		if r.ConfidenceFloorHit {
			floorHits++
		}
	}
	outcomes := make([]string, 0, len(counts))
	for o := range counts {
		outcomes = append(outcomes, string(o))
	}
	sort.Strings(outcomes)

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Jobs processed: %d\n\n", len(results)))
	for _, o := range outcomes {
		sb.WriteString(fmt.Sprintf("  • %-12s %d\n", o, counts[types.Outcome(o)]))
	}
	sb.WriteString(fmt.Sprintf("\nConfidence floor hit: %d", floorHits))

	p.printBox("BATCH SUMMARY", sb.String())
}

// FieldRow is one perceived field in an inspection report
type FieldRow struct {
	Kind           string
	Question       string
	Options        []string
	Classification string
	Resolution     types.Resolution
	Accepted       bool
}

// PrintInspection outputs the perceived fields of one form step and how each
// would be resolved. Nothing is written to the form.
func (p *Printer) PrintInspection(state types.ApplicationState, rows []FieldRow) {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("State: %s\n", state))
	sb.WriteString(fmt.Sprintf("Fields: %d\n", len(rows)))

	for _, row := range rows {
		sb.WriteString("\n")
		mark := "✗"
		if row.Accepted {
			mark = "✓"
		}
		sb.WriteString(fmt.Sprintf("%s [%s] %s\n", mark, row.Kind, row.Question))
		if row.Classification != "" {
			sb.WriteString(fmt.Sprintf("    class: %s\n", row.Classification))
		}
		res := row.Resolution
		switch {
		case !res.Resolved():
			sb.WriteString(fmt.Sprintf("    unresolved: %s\n", res.Reason))
		case res.Index >= 0 && res.Index < len(row.Options):
			sb.WriteString(fmt.Sprintf("    → %q (%s, %s)\n", row.Options[res.Index], res.Confidence, res.MatchedKey))
		case row.Kind == "checkbox":
			sb.WriteString(fmt.Sprintf("    → check=%t (%s)\n", res.Check, res.MatchedKey))
		default:
			sb.WriteString(fmt.Sprintf("    → %q (%s, %s)\n", res.Value, res.Confidence, res.MatchedKey))
		}
	}

	p.printBox("FORM INSPECTION", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintSubmitPrompt outputs the confirmation context shown before submitting
func (p *Printer) PrintSubmitPrompt(jobID string, resolved int) {
	p.printBox("READY TO SUBMIT", fmt.Sprintf("Job:      %s\nResolved: %d fields", jobID, resolved))
}
