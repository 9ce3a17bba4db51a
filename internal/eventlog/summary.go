package eventlog

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/jonathan/easy-apply/internal/types"
)

// SummaryHeader is the column order of the batch summary
var SummaryHeader = []string{
	"job_id",
	"result",
	"skip_reason",
	"state_at_exit",
	"elapsed_seconds",
	"fields_resolved_count",
	"fields_unresolved_count",
	"confidence_floor_hit",
}

func summaryRow(r types.JobResult) []string {
	return []string{
		r.JobID,
		string(r.Outcome),
		string(r.SkipReason),
		string(r.StateAtExit),
		strconv.FormatFloat(r.ElapsedSeconds(), 'f', 2, 64),
		strconv.Itoa(r.FieldsResolved),
		strconv.Itoa(r.FieldsUnresolved),
		strconv.FormatBool(r.ConfidenceFloorHit),
	}
}

// WriteSummary writes rows for results, preceded by the header when header is set
func WriteSummary(w io.Writer, results []types.JobResult, header bool) error {
	cw := csv.NewWriter(w)
	if header {
		if err := cw.Write(SummaryHeader); err != nil {
			return &WriteError{Message: "failed to write summary header", Cause: err}
		}
	}
	for _, r := range results {
		if err := cw.Write(summaryRow(r)); err != nil {
			return &WriteError{Message: fmt.Sprintf("failed to write summary row for %s", r.JobID), Cause: err}
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return &WriteError{Message: "failed to flush summary", Cause: err}
	}
	return nil
}

// AppendSummary appends rows to the CSV file at path, writing the header only
// when the file is new or empty
func AppendSummary(path string, results []types.JobResult) error {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return &WriteError{Message: fmt.Sprintf("failed to open summary %s", path), Cause: err}
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return &WriteError{Message: fmt.Sprintf("failed to stat summary %s", path), Cause: err}
	}
	return WriteSummary(f, results, info.Size() == 0)
}
