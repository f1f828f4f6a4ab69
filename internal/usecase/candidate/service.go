package candidate

import (
	"context"
	"errors"

	"go.uber.org/zap"

	apperrors "github.com/haulhire/crm/errors"
	"github.com/haulhire/crm/internal/domain/entities"
	"github.com/haulhire/crm/internal/domain/repositories"
)

// BoardColumn is one kanban stage with its candidates
type BoardColumn struct {
	Stage      string                `json:"stage"`
	Candidates []*entities.Candidate `json:"candidates"`
}

// Service exposes candidate record operations
type Service interface {
	Get(ctx context.Context, id string) (*entities.Candidate, error)
	List(ctx context.Context) ([]*entities.Candidate, error)

	// Create adds a new candidate record. When resume bytes are supplied
	// the extracted text seeds the summary field unless one was given.
	Create(ctx context.Context, fields map[string]interface{}, resume []byte) (*entities.Candidate, error)
	Update(ctx context.Context, id string, fields map[string]interface{}) (*entities.Candidate, error)

	// CreateSummary persists a new interview summary and rejects the write
	// when one already exists.
	CreateSummary(ctx context.Context, id string, summary string) (*entities.Candidate, error)
	UpdateSummary(ctx context.Context, id string, summary string) (*entities.Candidate, error)

	Board(ctx context.Context) ([]BoardColumn, error)
	MoveStage(ctx context.Context, id string, stage string) (*entities.Candidate, error)
}

type candidateService struct {
	repo      repositories.CandidateRepository
	extractor ResumeExtractor
	logger    *zap.Logger
}

// NewService constructs the candidate service
func NewService(repo repositories.CandidateRepository, extractor ResumeExtractor, logger *zap.Logger) Service {
	if extractor == nil {
		extractor = PlainTextExtractor{}
	}
	return &candidateService{repo: repo, extractor: extractor, logger: logger}
}

func (s *candidateService) Get(ctx context.Context, id string) (*entities.Candidate, error) {
	c, err := s.repo.Find(ctx, id)
	if err != nil {
		return nil, s.translate(id, "find candidate", err)
	}
	return c, nil
}

func (s *candidateService) List(ctx context.Context) ([]*entities.Candidate, error) {
	candidates, err := s.repo.List(ctx)
	if err != nil {
		return nil, apperrors.ErrRecordStoreFailed("list candidates", err)
	}
	return candidates, nil
}

func (s *candidateService) Create(ctx context.Context, fields map[string]interface{}, resume []byte) (*entities.Candidate, error) {
	if fields == nil {
		fields = map[string]interface{}{}
	}
	name, _ := fields[entities.FieldFullName].(string)
	if name == "" {
		return nil, apperrors.ErrInvalidArgument("full name is required")
	}
	if stage, ok := fields[entities.FieldStage].(string); ok && !entities.IsValidStage(stage) {
		return nil, apperrors.ErrInvalidStage(stage)
	}

	if len(resume) > 0 {
		text, err := s.extractor.Extract(resume)
		if err != nil {
			return nil, err
		}
		if _, ok := fields[entities.FieldSummary]; !ok {
			fields[entities.FieldSummary] = text
		}
	}

	c, err := s.repo.Create(ctx, fields)
	if err != nil {
		return nil, apperrors.ErrRecordStoreFailed("create candidate", err)
	}

	s.logger.Info("🆕 Candidate created", zap.String("candidate_id", c.ID), zap.Bool("resume", len(resume) > 0))
	return c, nil
}

func (s *candidateService) Update(ctx context.Context, id string, fields map[string]interface{}) (*entities.Candidate, error) {
	if len(fields) == 0 {
		return nil, apperrors.ErrInvalidArgument("no fields to update")
	}

	c, err := s.repo.Update(ctx, id, fields)
	if err != nil {
		return nil, s.translate(id, "update candidate", err)
	}

	s.logger.Info("✏️ Candidate updated", zap.String("candidate_id", id), zap.Int("fields", len(fields)))
	return c, nil
}

func (s *candidateService) CreateSummary(ctx context.Context, id string, summary string) (*entities.Candidate, error) {
	if summary == "" {
		return nil, apperrors.ErrInvalidArgument("summary is empty")
	}

	c, err := s.repo.CreateInterviewSummary(ctx, id, summary)
	if err != nil {
		if errors.Is(err, entities.ErrSummaryConflict) {
			return nil, apperrors.ErrSummaryExists(id)
		}
		return nil, s.translate(id, "create interview summary", err)
	}
	return c, nil
}

func (s *candidateService) UpdateSummary(ctx context.Context, id string, summary string) (*entities.Candidate, error) {
	if summary == "" {
		return nil, apperrors.ErrInvalidArgument("summary is empty")
	}

	c, err := s.repo.UpdateInterviewSummary(ctx, id, summary)
	if err != nil {
		return nil, s.translate(id, "update interview summary", err)
	}
	return c, nil
}

// Board groups all candidates into the fixed stage columns. Candidates
// with an unknown or empty stage land in the first column.
func (s *candidateService) Board(ctx context.Context) ([]BoardColumn, error) {
	candidates, err := s.repo.List(ctx)
	if err != nil {
		return nil, apperrors.ErrRecordStoreFailed("list candidates", err)
	}

	byStage := make(map[string][]*entities.Candidate, len(entities.KanbanStages))
	for _, c := range candidates {
		stage := c.Stage
		if !entities.IsValidStage(stage) {
			stage = entities.StageInitialScreening
		}
		byStage[stage] = append(byStage[stage], c)
	}

	columns := make([]BoardColumn, 0, len(entities.KanbanStages))
	for _, stage := range entities.KanbanStages {
		col := BoardColumn{Stage: stage, Candidates: byStage[stage]}
		if col.Candidates == nil {
			col.Candidates = []*entities.Candidate{}
		}
		columns = append(columns, col)
	}
	return columns, nil
}

func (s *candidateService) MoveStage(ctx context.Context, id string, stage string) (*entities.Candidate, error) {
	if !entities.IsValidStage(stage) {
		return nil, apperrors.ErrInvalidStage(stage)
	}

	c, err := s.repo.UpdateStage(ctx, id, stage)
	if err != nil {
		return nil, s.translate(id, "move candidate stage", err)
	}

	s.logger.Info("📋 Candidate moved", zap.String("candidate_id", id), zap.String("stage", stage))
	return c, nil
}

func (s *candidateService) translate(id, operation string, err error) error {
	if errors.Is(err, entities.ErrRecordNotFound) {
		return apperrors.ErrCandidateNotFound(id)
	}
	return apperrors.ErrRecordStoreFailed(operation, err)
}
