package db

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/jonathan/easy-apply/internal/apply"
	"github.com/jonathan/easy-apply/internal/types"
)

// ResultSaver stores finished job results
type ResultSaver interface {
	SaveJobResult(ctx context.Context, runID uuid.UUID, result types.JobResult) (uuid.UUID, error)
}

// Recorder returns an event callback that stores every finished job under runID.
// Storage failures are logged and never affect the run.
func Recorder(ctx context.Context, saver ResultSaver, runID uuid.UUID, logger *zap.Logger) apply.EventCallback {
	if logger == nil {
		logger = zap.NewNop()
	}
	return func(e apply.Event) {
		if e.Kind != apply.EventJobFinished || e.Result == nil {
			return
		}
		id, err := saver.SaveJobResult(ctx, runID, *e.Result)
		if err != nil {
			logger.Warn("failed to store job result", zap.String("job_id", e.JobID), zap.Error(err))
			return
		}
		logger.Debug("stored job result", zap.String("job_id", e.JobID), zap.String("id", id.String()))
	}
}
