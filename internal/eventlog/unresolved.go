package eventlog

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/jonathan/easy-apply/internal/apply"
)

// UnresolvedField is one debug record of a field that could not be answered
type UnresolvedField struct {
	Timestamp      time.Time `json:"timestamp"`
	JobID          string    `json:"job_id"`
	JobURL         string    `json:"job_url"`
	StateAtExit    string    `json:"state_at_exit"`
	SkipReason     string    `json:"skip_reason"`
	FieldType      string    `json:"field_type"`
	QuestionText   string    `json:"question_text"`
	Options        []string  `json:"options"`
	Classification string    `json:"classification"`
	Confidence     string    `json:"confidence"`
	MatchedKey     string    `json:"matched_key,omitempty"`
	Reason         string    `json:"reason"`
}

// Collector buffers unresolved fields per job and appends them to a JSONL file
// when the job ends. It never changes what the engine does.
type Collector struct {
	path   string
	now    func() time.Time
	logger *zap.Logger
	jobURL string
	buffer []UnresolvedField
}

// NewCollector creates a collector appending to path
func NewCollector(path string, logger *zap.Logger) *Collector {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Collector{path: path, now: time.Now, logger: logger}
}

// Observe consumes engine events. It matches apply.EventCallback.
func (c *Collector) Observe(e apply.Event) {
	switch e.Kind {
	case apply.EventJobStarted:
		c.jobURL = e.Details
	case apply.EventFieldUnresolved:
		c.buffer = append(c.buffer, UnresolvedField{
			Timestamp:      c.now(),
			JobID:          e.JobID,
			JobURL:         c.jobURL,
			StateAtExit:    string(e.State),
			FieldType:      e.FieldType,
			QuestionText:   e.Question,
			Options:        e.Options,
			Classification: e.Classification,
			Confidence:     string(e.Confidence),
			MatchedKey:     e.MatchedKey,
			Reason:         e.Reason,
		})
	case apply.EventJobFinished:
		if e.Result != nil {
			for i := range c.buffer {
				c.buffer[i].StateAtExit = string(e.Result.StateAtExit)
				c.buffer[i].SkipReason = string(e.Result.SkipReason)
			}
		}
		if err := c.Flush(); err != nil {
			c.logger.Warn("failed to flush unresolved fields", zap.Error(err))
		}
	}
}

// Pending returns the number of buffered records
func (c *Collector) Pending() int {
	return len(c.buffer)
}

// Flush appends the buffered records to the file and clears the buffer
func (c *Collector) Flush() error {
	if len(c.buffer) == 0 {
		return nil
	}
	f, err := os.OpenFile(c.path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return &WriteError{Message: fmt.Sprintf("failed to open %s", c.path), Cause: err}
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	for _, record := range c.buffer {
		if err := enc.Encode(record); err != nil {
			return &WriteError{Message: "failed to encode unresolved field", Cause: err}
		}
	}
	if err := w.Flush(); err != nil {
		return &WriteError{Message: fmt.Sprintf("failed to write %s", c.path), Cause: err}
	}
	c.buffer = c.buffer[:0]
	return nil
}
