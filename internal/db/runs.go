package db

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jonathan/easy-apply/internal/types"
)

// -----------------------------------------------------------------------------
// Run Methods
// -----------------------------------------------------------------------------

// CreateRun creates a new run record and returns its ID
func (db *DB) CreateRun(ctx context.Context, mode string, testMode bool) (uuid.UUID, error) {
	var id uuid.UUID
	err := db.pool.QueryRow(ctx,
		`INSERT INTO apply_runs (mode, test_mode, status)
		 VALUES ($1, $2, $3)
		 RETURNING id`,
		mode, testMode, RunStatusRunning,
	).Scan(&id)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to create run: %w", err)
	}
	return id, nil
}

// CompleteRun marks a run as finished with the given status
func (db *DB) CompleteRun(ctx context.Context, runID uuid.UUID, status string) error {
	_, err := db.pool.Exec(ctx,
		`UPDATE apply_runs SET status = $1, completed_at = NOW() WHERE id = $2`,
		status, runID,
	)
	if err != nil {
		return fmt.Errorf("failed to complete run: %w", err)
	}
	return nil
}

// GetRun retrieves a run by ID. Returns nil if it does not exist.
func (db *DB) GetRun(ctx context.Context, runID uuid.UUID) (*Run, error) {
	var run Run
	err := db.pool.QueryRow(ctx,
		`SELECT id, mode, test_mode, status, started_at, completed_at
		 FROM apply_runs WHERE id = $1`,
		runID,
	).Scan(&run.ID, &run.Mode, &run.TestMode, &run.Status, &run.StartedAt, &run.CompletedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get run: %w", err)
	}
	return &run, nil
}

// -----------------------------------------------------------------------------
// Job Result Methods
// -----------------------------------------------------------------------------

func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// violationRow holds the column values of one job_violations row
type violationRow struct {
	position int
	reason   string
	details  string
	state    *string
	field    []byte
}

func violationRows(violations []types.Violation) ([]violationRow, error) {
	rows := make([]violationRow, 0, len(violations))
	for i, v := range violations {
		row := violationRow{
			position: i,
			reason:   string(v.Reason),
			details:  v.Details,
			state:    nullable(v.State),
		}
		if v.Field != nil {
			data, err := json.Marshal(v.Field)
			if err != nil {
				return nil, fmt.Errorf("failed to marshal field of violation %d: %w", i, err)
			}
			row.field = data
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// SaveJobResult stores a job result and its violations in one transaction
func (db *DB) SaveJobResult(ctx context.Context, runID uuid.UUID, result types.JobResult) (uuid.UUID, error) {
	rows, err := violationRows(result.Violations)
	if err != nil {
		return uuid.Nil, err
	}

	var id uuid.UUID
	err = pgx.BeginFunc(ctx, db.pool, func(tx pgx.Tx) error {
		err := tx.QueryRow(ctx,
			`INSERT INTO job_results (run_id, job_id, job_url, result, skip_reason, details,
			                          state_at_exit, elapsed_ms, fields_resolved_count,
			                          fields_unresolved_count, confidence_floor_hit)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
			 RETURNING id`,
			runID, result.JobID, result.URL, string(result.Outcome),
			nullable(string(result.SkipReason)), nullable(result.Details),
			string(result.StateAtExit), result.Elapsed.Milliseconds(),
			result.FieldsResolved, result.FieldsUnresolved, result.ConfidenceFloorHit,
		).Scan(&id)
		if err != nil {
			return fmt.Errorf("failed to insert job result: %w", err)
		}

		batch := &pgx.Batch{}
		for _, row := range rows {
			batch.Queue(
				`INSERT INTO job_violations (job_result_id, position, reason, details, state, field)
				 VALUES ($1, $2, $3, $4, $5, $6)`,
				id, row.position, row.reason, row.details, row.state, row.field,
			)
		}
		if err := tx.SendBatch(ctx, batch).Close(); err != nil {
			return fmt.Errorf("failed to insert violations: %w", err)
		}
		return nil
	})
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to save job result %s: %w", result.JobID, err)
	}
	return id, nil
}

// ListJobResults retrieves the results of a run in insertion order, with their violations
func (db *DB) ListJobResults(ctx context.Context, runID uuid.UUID) ([]JobResultRecord, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT id, run_id, job_id, job_url, result, skip_reason, details, state_at_exit,
		        elapsed_ms, fields_resolved_count, fields_unresolved_count,
		        confidence_floor_hit, created_at
		 FROM job_results
		 WHERE run_id = $1
		 ORDER BY created_at, id`,
		runID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list job results: %w", err)
	}
	defer rows.Close()

	var records []JobResultRecord
	for rows.Next() {
		var r JobResultRecord
		if err := rows.Scan(&r.ID, &r.RunID, &r.JobID, &r.JobURL, &r.Result, &r.SkipReason,
			&r.Details, &r.StateAtExit, &r.ElapsedMs, &r.FieldsResolvedCount,
			&r.FieldsUnresolvedCount, &r.ConfidenceFloorHit, &r.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan job result: %w", err)
		}
		records = append(records, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list job results: %w", err)
	}

	for i := range records {
		violations, err := db.listViolations(ctx, records[i].ID)
		if err != nil {
			return nil, err
		}
		records[i].Violations = violations
	}
	return records, nil
}

func (db *DB) listViolations(ctx context.Context, jobResultID uuid.UUID) ([]ViolationRecord, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT id, position, reason, details, state, field
		 FROM job_violations
		 WHERE job_result_id = $1
		 ORDER BY position`,
		jobResultID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list violations: %w", err)
	}
	defer rows.Close()

	var violations []ViolationRecord
	for rows.Next() {
		var v ViolationRecord
		var fieldJSON []byte
		if err := rows.Scan(&v.ID, &v.Position, &v.Reason, &v.Details, &v.State, &fieldJSON); err != nil {
			return nil, fmt.Errorf("failed to scan violation: %w", err)
		}
		if fieldJSON != nil {
			v.Field = &types.FieldContext{}
			_ = json.Unmarshal(fieldJSON, v.Field)
		}
		violations = append(violations, v)
	}
	return violations, rows.Err()
}

// CountResultsByOutcome returns how many results of a run ended with each outcome
func (db *DB) CountResultsByOutcome(ctx context.Context, runID uuid.UUID) (map[string]int, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT result, COUNT(*) FROM job_results WHERE run_id = $1 GROUP BY result`,
		runID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to count job results: %w", err)
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var outcome string
		var n int
		if err := rows.Scan(&outcome, &n); err != nil {
			return nil, fmt.Errorf("failed to scan count: %w", err)
		}
		counts[outcome] = n
	}
	return counts, rows.Err()
}
