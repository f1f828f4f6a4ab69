package runcontext

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type KeyContext string

var (
	keyRunID       KeyContext = "run_id"
	keyCandidateID KeyContext = "candidate_id"
	keyRunStart    KeyContext = "run_start_time"
)

// RunMetadata holds metadata for one pipeline run
type RunMetadata struct {
	RunID       uuid.UUID
	CandidateID string
	StartTime   time.Time
}

// RunBegin initializes a run context with metadata and timeout.
// Audio runs process several chunks against remote APIs, so the
// timeout is per-run rather than per-request.
func RunBegin(parentCtx context.Context, runID uuid.UUID, candidateID string, timeout time.Duration) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithTimeout(parentCtx, timeout)

	ctx = context.WithValue(ctx, keyRunID, runID)
	ctx = context.WithValue(ctx, keyCandidateID, candidateID)
	ctx = context.WithValue(ctx, keyRunStart, time.Now())

	return ctx, cancel
}

// GetRunID extracts the run ID from context
func GetRunID(ctx context.Context) (uuid.UUID, bool) {
	runID, ok := ctx.Value(keyRunID).(uuid.UUID)
	return runID, ok
}

// GetCandidateID extracts the candidate ID from context
func GetCandidateID(ctx context.Context) (string, bool) {
	candidateID, ok := ctx.Value(keyCandidateID).(string)
	return candidateID, ok
}

// GetRunStartTime extracts the run start time from context
func GetRunStartTime(ctx context.Context) (time.Time, bool) {
	startTime, ok := ctx.Value(keyRunStart).(time.Time)
	return startTime, ok
}

// GetRunMetadata extracts all run metadata from context
func GetRunMetadata(ctx context.Context) *RunMetadata {
	runID, _ := GetRunID(ctx)
	candidateID, _ := GetCandidateID(ctx)
	startTime, _ := GetRunStartTime(ctx)

	return &RunMetadata{
		RunID:       runID,
		CandidateID: candidateID,
		StartTime:   startTime,
	}
}
