package repositories

import (
	"context"

	"github.com/haulhire/crm/internal/domain/entities"
)

// CandidateRepository abstracts the candidate record store.
type CandidateRepository interface {
	Find(ctx context.Context, id string) (*entities.Candidate, error)
	List(ctx context.Context) ([]*entities.Candidate, error)
	Create(ctx context.Context, fields map[string]interface{}) (*entities.Candidate, error)
	Update(ctx context.Context, id string, fields map[string]interface{}) (*entities.Candidate, error)

	// CreateInterviewSummary writes a summary only when the candidate has
	// none yet. Returns entities.ErrSummaryConflict otherwise.
	CreateInterviewSummary(ctx context.Context, id string, summary string) (*entities.Candidate, error)
	UpdateInterviewSummary(ctx context.Context, id string, summary string) (*entities.Candidate, error)

	UpdateStage(ctx context.Context, id string, stage string) (*entities.Candidate, error)
	FindByShareTokenHash(ctx context.Context, hash string) (*entities.Candidate, error)
}
