package db

import (
	"time"

	"github.com/google/uuid"

	"github.com/jonathan/easy-apply/internal/types"
)

// RunStatus constants
const (
	RunStatusRunning     = "running"
	RunStatusCompleted   = "completed"
	RunStatusInterrupted = "interrupted"
)

// Run is one invocation of the apply command over one or more jobs
type Run struct {
	ID          uuid.UUID  `json:"id"`
	Mode        string     `json:"mode"`
	TestMode    bool       `json:"test_mode"`
	Status      string     `json:"status"`
	StartedAt   time.Time  `json:"started_at"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
}

// JobResultRecord is a stored job result
type JobResultRecord struct {
	ID                    uuid.UUID         `json:"id"`
	RunID                 uuid.UUID         `json:"run_id"`
	JobID                 string            `json:"job_id"`
	JobURL                string            `json:"job_url"`
	Result                string            `json:"result"`
	SkipReason            *string           `json:"skip_reason,omitempty"`
	Details               *string           `json:"details,omitempty"`
	StateAtExit           string            `json:"state_at_exit"`
	ElapsedMs             int64             `json:"elapsed_ms"`
	FieldsResolvedCount   int               `json:"fields_resolved_count"`
	FieldsUnresolvedCount int               `json:"fields_unresolved_count"`
	ConfidenceFloorHit    bool              `json:"confidence_floor_hit"`
	Violations            []ViolationRecord `json:"violations,omitempty"`
	CreatedAt             time.Time         `json:"created_at"`
}

// ViolationRecord is a stored violation, in the order it was raised
type ViolationRecord struct {
	ID       uuid.UUID           `json:"id"`
	Position int                 `json:"position"`
	Reason   string              `json:"reason"`
	Details  string              `json:"details"`
	State    *string             `json:"state,omitempty"`
	Field    *types.FieldContext `json:"field,omitempty"`
}
