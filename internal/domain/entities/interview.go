package entities

import (
	"time"

	"github.com/google/uuid"
)

// PersistenceOutcome is the tri-state result of the analysis persistence step
type PersistenceOutcome string

const (
	OutcomeCreated PersistenceOutcome = "created"
	OutcomeUpdated PersistenceOutcome = "updated"
	OutcomeFailed  PersistenceOutcome = "failed"
)

// RunStage identifies where an interview processing run currently is
type RunStage string

const (
	RunStageLoadingEngine RunStage = "loading_engine"
	RunStageSplitting     RunStage = "splitting"
	RunStageTranscribing  RunStage = "transcribing"
	RunStageAnalyzing     RunStage = "analyzing"
	RunStagePersisting    RunStage = "persisting"
	RunStageCompleted     RunStage = "completed"
	RunStageFailed        RunStage = "failed"
	RunStageCancelled     RunStage = "cancelled"
)

// IsTerminal reports whether the stage ends a run
func (s RunStage) IsTerminal() bool {
	switch s {
	case RunStageCompleted, RunStageFailed, RunStageCancelled:
		return true
	default:
		return false
	}
}

// InterviewRun is the observable state of one pipeline run for a candidate.
// Snapshots of it are what the status endpoint returns.
type InterviewRun struct {
	ID          uuid.UUID          `json:"id"`
	CandidateID string             `json:"candidateId"`
	Stage       RunStage           `json:"stage"`
	Message     string             `json:"message"`
	Error       string             `json:"error,omitempty"`
	Warning     string             `json:"warning,omitempty"`
	Outcome     PersistenceOutcome `json:"outcome,omitempty"`
	Analysis    *AnalysisResult    `json:"analysis,omitempty"`
	Transcript  string             `json:"transcript,omitempty"`
	StartedAt   time.Time          `json:"startedAt"`
	FinishedAt  *time.Time         `json:"finishedAt,omitempty"`
}

// NewInterviewRun creates a run in the engine-loading stage
func NewInterviewRun(candidateID string) *InterviewRun {
	return &InterviewRun{
		ID:          uuid.New(),
		CandidateID: candidateID,
		Stage:       RunStageLoadingEngine,
		Message:     "Loading audio engine...",
		StartedAt:   time.Now(),
	}
}
