package interview

import (
	"context"
	"encoding/json"
	"errors"

	"go.uber.org/zap"

	apperrors "github.com/haulhire/crm/errors"
	"github.com/haulhire/crm/internal/domain/entities"
	"github.com/haulhire/crm/internal/domain/repositories"
)

// Persister writes the finished analysis into the candidate record.
// There is no upsert in the record store contract: it creates first and
// falls back to an update when the create reports a conflict.
type Persister struct {
	repo   repositories.CandidateRepository
	logger *zap.Logger
}

// NewPersister creates a persister over the candidate repository
func NewPersister(repo repositories.CandidateRepository, logger *zap.Logger) *Persister {
	return &Persister{repo: repo, logger: logger}
}

// Persist stores the analysis as the candidate's interview summary and
// reports whether it was created fresh or replaced an earlier one.
func (p *Persister) Persist(ctx context.Context, candidateID string, analysis *entities.AnalysisResult) (entities.PersistenceOutcome, *entities.Candidate, error) {
	payload, err := json.Marshal(analysis)
	if err != nil {
		return entities.OutcomeFailed, nil, apperrors.ErrPersistenceFailed(err)
	}
	summary := string(payload)

	candidate, err := p.repo.CreateInterviewSummary(ctx, candidateID, summary)
	if err == nil {
		p.logger.Info("💾 Interview summary created", zap.String("candidate_id", candidateID))
		return entities.OutcomeCreated, candidate, nil
	}

	if !errors.Is(err, entities.ErrSummaryConflict) {
		p.logger.Error("❌ Interview summary create failed",
			zap.String("candidate_id", candidateID), zap.Error(err))
		return entities.OutcomeFailed, nil, apperrors.ErrPersistenceFailed(err)
	}

	candidate, err = p.repo.UpdateInterviewSummary(ctx, candidateID, summary)
	if err != nil {
		p.logger.Error("❌ Interview summary update failed",
			zap.String("candidate_id", candidateID), zap.Error(err))
		return entities.OutcomeFailed, nil, apperrors.ErrPersistenceFailed(err)
	}

	p.logger.Info("💾 Interview summary updated", zap.String("candidate_id", candidateID))
	return entities.OutcomeUpdated, candidate, nil
}
