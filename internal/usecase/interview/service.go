package interview

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	apperrors "github.com/haulhire/crm/errors"
	"github.com/haulhire/crm/internal/domain/entities"
	"github.com/haulhire/crm/internal/domain/repositories"
	"github.com/haulhire/crm/internal/infrastructure/cache"
	"github.com/haulhire/crm/pkg/runcontext"
)

// transcriptTTL bounds how long a cached transcript can back a reanalysis
const transcriptTTL = 24 * time.Hour

// audioSplitter is the slice of the media engine the service needs
type audioSplitter interface {
	Split(ctx context.Context, asset entities.AudioAsset, onProgress func(message string)) ([]entities.AudioSegment, error)
}

// transcriber is the slice of the speech-to-text client the service needs
type transcriber interface {
	Transcribe(ctx context.Context, filename string, audio []byte) (string, error)
}

// Service orchestrates the interview processing pipeline
type Service interface {
	// StartProcessing kicks off an asynchronous run for the candidate and
	// returns its initial state. At most one run per candidate is live at
	// a time.
	StartProcessing(ctx context.Context, candidateID string, asset entities.AudioAsset) (*entities.InterviewRun, error)

	// Reanalyze reruns analysis and persistence from the cached transcript
	// without demanding a fresh upload.
	Reanalyze(ctx context.Context, candidateID string) (*entities.InterviewRun, error)

	// RunStatus reports the latest run for the candidate
	RunStatus(candidateID string) (*entities.InterviewRun, error)

	// CancelRun aborts the candidate's live run
	CancelRun(candidateID string) error

	// Transcript returns the cached transcript for the candidate
	Transcript(candidateID string) (string, error)
}

type activeRun struct {
	run    *entities.InterviewRun
	cancel context.CancelFunc
}

type interviewService struct {
	candidateRepo repositories.CandidateRepository
	splitter      audioSplitter
	stt           transcriber
	analyzer      *Analyzer
	persister     *Persister
	transcripts   *cache.MemoryStore
	runTimeout    time.Duration
	logger        *zap.Logger

	mu   sync.Mutex
	runs map[string]*activeRun
}

// NewService constructs the interview processing service
func NewService(
	candidateRepo repositories.CandidateRepository,
	splitter audioSplitter,
	stt transcriber,
	analyzer *Analyzer,
	persister *Persister,
	transcripts *cache.MemoryStore,
	runTimeout time.Duration,
	logger *zap.Logger,
) Service {
	if runTimeout <= 0 {
		runTimeout = 30 * time.Minute
	}
	return &interviewService{
		candidateRepo: candidateRepo,
		splitter:      splitter,
		stt:           stt,
		analyzer:      analyzer,
		persister:     persister,
		transcripts:   transcripts,
		runTimeout:    runTimeout,
		logger:        logger,
		runs:          make(map[string]*activeRun),
	}
}

func transcriptKey(candidateID string) string {
	return cache.Key("transcript", candidateID)
}

func (s *interviewService) StartProcessing(ctx context.Context, candidateID string, asset entities.AudioAsset) (*entities.InterviewRun, error) {
	if len(asset.Data) == 0 {
		return nil, apperrors.ErrInvalidArgument("audio payload is empty")
	}

	if _, err := s.candidateRepo.Find(ctx, candidateID); err != nil {
		return nil, s.translateRepoError(candidateID, err)
	}

	run, runCtx, err := s.register(candidateID)
	if err != nil {
		return nil, err
	}

	s.logger.Info("🎤 Interview processing started",
		zap.String("candidate_id", candidateID),
		zap.String("run_id", run.ID.String()),
		zap.String("file", asset.Name),
		zap.Int64("bytes", asset.Size))

	go s.process(runCtx, run, asset)

	return s.snapshot(candidateID)
}

func (s *interviewService) Reanalyze(ctx context.Context, candidateID string) (*entities.InterviewRun, error) {
	if _, err := s.candidateRepo.Find(ctx, candidateID); err != nil {
		return nil, s.translateRepoError(candidateID, err)
	}

	transcript, ok := s.transcripts.Get(transcriptKey(candidateID))
	if !ok {
		return nil, apperrors.ErrNoCachedTranscript(candidateID)
	}

	run, runCtx, err := s.register(candidateID)
	if err != nil {
		return nil, err
	}
	s.update(candidateID, func(r *entities.InterviewRun) {
		r.Stage = entities.RunStageAnalyzing
		r.Message = "Analyzing interview with AI..."
	})

	s.logger.Info("🔁 Reanalysis started",
		zap.String("candidate_id", candidateID),
		zap.String("run_id", run.ID.String()))

	go func() {
		defer s.finishContext(candidateID)
		s.analyzeAndPersist(runCtx, candidateID, transcript)
	}()

	return s.snapshot(candidateID)
}

func (s *interviewService) RunStatus(candidateID string) (*entities.InterviewRun, error) {
	return s.snapshot(candidateID)
}

func (s *interviewService) CancelRun(candidateID string) error {
	s.mu.Lock()
	active, ok := s.runs[candidateID]
	if !ok || active.run.Stage.IsTerminal() {
		s.mu.Unlock()
		return apperrors.ErrNoRunningPipeline(candidateID)
	}
	cancel := active.cancel
	s.mu.Unlock()

	s.logger.Info("🛑 Run cancellation requested", zap.String("candidate_id", candidateID))
	cancel()
	return nil
}

func (s *interviewService) Transcript(candidateID string) (string, error) {
	transcript, ok := s.transcripts.Get(transcriptKey(candidateID))
	if !ok {
		return "", apperrors.ErrNoCachedTranscript(candidateID)
	}
	return transcript, nil
}

// register reserves the candidate's run slot. A live run wins over a new
// request; terminal runs are replaced.
func (s *interviewService) register(candidateID string) (*entities.InterviewRun, context.Context, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if existing, ok := s.runs[candidateID]; ok && !existing.run.Stage.IsTerminal() {
		return nil, nil, apperrors.ErrRunInFlight(candidateID)
	}

	run := entities.NewInterviewRun(candidateID)
	ctx, cancel := runcontext.RunBegin(context.Background(), run.ID, candidateID, s.runTimeout)
	s.runs[candidateID] = &activeRun{run: run, cancel: cancel}
	return run, ctx, nil
}

// process drives one full pipeline run. It owns the run's lifecycle from
// engine load to the terminal stage.
func (s *interviewService) process(ctx context.Context, run *entities.InterviewRun, asset entities.AudioAsset) {
	candidateID := run.CandidateID
	defer s.finishContext(candidateID)

	s.update(candidateID, func(r *entities.InterviewRun) {
		r.Stage = entities.RunStageSplitting
		r.Message = "Splitting audio into chunks..."
	})

	segments, err := s.splitter.Split(ctx, asset, func(message string) {
		s.update(candidateID, func(r *entities.InterviewRun) {
			r.Message = message
		})
	})
	if err != nil {
		s.fail(candidateID, ctx, err)
		return
	}

	s.update(candidateID, func(r *entities.InterviewRun) {
		r.Stage = entities.RunStageTranscribing
	})

	parts := make([]string, 0, len(segments))
	for i := range segments {
		seg := &segments[i]
		s.update(candidateID, func(r *entities.InterviewRun) {
			r.Message = fmt.Sprintf("Transcribing part %d of %d...", seg.Index, len(segments))
		})

		text, err := s.stt.Transcribe(ctx, seg.Name, seg.Data)
		seg.Release()
		if err != nil {
			s.fail(candidateID, ctx, apperrors.ErrTranscriptionFailed(err))
			return
		}
		// An empty chunk transcript would leave a silent gap in the
		// joined narrative.
		if strings.TrimSpace(text) == "" {
			s.fail(candidateID, ctx, apperrors.ErrTranscriptionFailed(
				fmt.Errorf("empty transcript for %s", seg.Name)))
			return
		}
		parts = append(parts, text)
	}

	transcript := strings.Join(parts, " ")
	s.transcripts.Set(transcriptKey(candidateID), transcript, transcriptTTL)

	s.logger.Info("📝 Transcript assembled",
		zap.String("candidate_id", candidateID),
		zap.Int("chunks", len(segments)),
		zap.Int("chars", len(transcript)))

	s.update(candidateID, func(r *entities.InterviewRun) {
		r.Stage = entities.RunStageAnalyzing
		r.Message = "Analyzing interview with AI..."
		r.Transcript = transcript
	})

	s.analyzeAndPersist(ctx, candidateID, transcript)
}

// analyzeAndPersist runs the analysis and persistence tail shared by fresh
// runs and reanalysis. Persistence failures are soft: the run still
// completes and carries the analysis, with a warning attached.
func (s *interviewService) analyzeAndPersist(ctx context.Context, candidateID string, transcript string) {
	analysis, err := s.analyzer.Analyze(ctx, transcript)
	if err != nil {
		s.fail(candidateID, ctx, err)
		return
	}

	s.update(candidateID, func(r *entities.InterviewRun) {
		r.Stage = entities.RunStagePersisting
		r.Message = "✓ Analysis complete! Saving to database..."
		r.Analysis = analysis
	})

	outcome, _, err := s.persister.Persist(ctx, candidateID, analysis)
	now := time.Now()
	s.update(candidateID, func(r *entities.InterviewRun) {
		r.Outcome = outcome
		r.Stage = entities.RunStageCompleted
		r.FinishedAt = &now
		if err != nil {
			r.Warning = "Analysis completed but could not be saved. Results are shown below."
			r.Message = "✓ Analysis complete (not saved)"
		} else {
			r.Message = "✓ Analysis complete!"
		}
	})

	s.logger.Info("✅ Interview run completed",
		zap.String("candidate_id", candidateID),
		zap.String("outcome", string(outcome)))
}

// fail marks the run terminal. A cancelled context trumps the stage error.
func (s *interviewService) fail(candidateID string, ctx context.Context, err error) {
	now := time.Now()
	if ctx.Err() == context.Canceled {
		s.update(candidateID, func(r *entities.InterviewRun) {
			r.Stage = entities.RunStageCancelled
			r.Message = "Processing cancelled"
			r.FinishedAt = &now
		})
		s.logger.Info("🛑 Interview run cancelled", zap.String("candidate_id", candidateID))
		return
	}

	s.update(candidateID, func(r *entities.InterviewRun) {
		r.Stage = entities.RunStageFailed
		r.Message = "Processing failed"
		r.Error = err.Error()
		r.FinishedAt = &now
	})
	s.logger.Error("❌ Interview run failed",
		zap.String("candidate_id", candidateID), zap.Error(err))
}

func (s *interviewService) update(candidateID string, fn func(r *entities.InterviewRun)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if active, ok := s.runs[candidateID]; ok {
		fn(active.run)
	}
}

func (s *interviewService) snapshot(candidateID string) (*entities.InterviewRun, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	active, ok := s.runs[candidateID]
	if !ok {
		return nil, apperrors.ErrNoRunningPipeline(candidateID)
	}
	copied := *active.run
	return &copied, nil
}

// finishContext releases the run's context resources once it is terminal
func (s *interviewService) finishContext(candidateID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if active, ok := s.runs[candidateID]; ok {
		active.cancel()
	}
}

func (s *interviewService) translateRepoError(candidateID string, err error) error {
	if errors.Is(err, entities.ErrRecordNotFound) {
		return apperrors.ErrCandidateNotFound(candidateID)
	}
	return apperrors.ErrRecordStoreFailed("find candidate", err)
}
