package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/haulhire/crm/internal/domain/entities"
	"github.com/haulhire/crm/internal/domain/repositories"
	"github.com/haulhire/crm/internal/infrastructure/external/airtable"
)

// recordStore is the subset of the Airtable client the repository needs.
// Narrowing it here keeps tests on a small fake.
type recordStore interface {
	GetRecord(ctx context.Context, id string) (*airtable.Record, error)
	ListRecords(ctx context.Context) ([]airtable.Record, error)
	FindByFormula(ctx context.Context, formula string) (*airtable.Record, error)
	CreateRecord(ctx context.Context, fields map[string]interface{}) (*airtable.Record, error)
	UpdateRecord(ctx context.Context, id string, fields map[string]interface{}) (*airtable.Record, error)
}

type candidateRepository struct {
	store recordStore
}

// NewCandidateRepository creates a repository backed by the Airtable client
func NewCandidateRepository(store *airtable.Client) repositories.CandidateRepository {
	return &candidateRepository{store: store}
}

func (r *candidateRepository) Find(ctx context.Context, id string) (*entities.Candidate, error) {
	rec, err := r.store.GetRecord(ctx, id)
	if err != nil {
		if airtable.IsNotFound(err) {
			return nil, entities.ErrRecordNotFound
		}
		return nil, err
	}
	return toCandidate(rec), nil
}

func (r *candidateRepository) List(ctx context.Context) ([]*entities.Candidate, error) {
	records, err := r.store.ListRecords(ctx)
	if err != nil {
		return nil, err
	}

	candidates := make([]*entities.Candidate, 0, len(records))
	for i := range records {
		candidates = append(candidates, toCandidate(&records[i]))
	}
	return candidates, nil
}

func (r *candidateRepository) Create(ctx context.Context, fields map[string]interface{}) (*entities.Candidate, error) {
	rec, err := r.store.CreateRecord(ctx, fields)
	if err != nil {
		return nil, err
	}
	return toCandidate(rec), nil
}

func (r *candidateRepository) Update(ctx context.Context, id string, fields map[string]interface{}) (*entities.Candidate, error) {
	rec, err := r.store.UpdateRecord(ctx, id, fields)
	if err != nil {
		if airtable.IsNotFound(err) {
			return nil, entities.ErrRecordNotFound
		}
		return nil, err
	}
	return toCandidate(rec), nil
}

// CreateInterviewSummary writes the summary only for candidates without
// one. The read-then-write stays on the server side so callers get a
// stable conflict signal instead of silently overwriting.
func (r *candidateRepository) CreateInterviewSummary(ctx context.Context, id string, summary string) (*entities.Candidate, error) {
	existing, err := r.Find(ctx, id)
	if err != nil {
		return nil, err
	}
	if existing.HasInterviewSummary() {
		return nil, entities.ErrSummaryConflict
	}
	return r.Update(ctx, id, map[string]interface{}{entities.FieldInterviewSummary: summary})
}

func (r *candidateRepository) UpdateInterviewSummary(ctx context.Context, id string, summary string) (*entities.Candidate, error) {
	return r.Update(ctx, id, map[string]interface{}{entities.FieldInterviewSummary: summary})
}

func (r *candidateRepository) UpdateStage(ctx context.Context, id string, stage string) (*entities.Candidate, error) {
	return r.Update(ctx, id, map[string]interface{}{entities.FieldStage: stage})
}

func (r *candidateRepository) FindByShareTokenHash(ctx context.Context, hash string) (*entities.Candidate, error) {
	formula := fmt.Sprintf(`{%s}=%q`, entities.FieldShareTokenHash, hash)

	rec, err := r.store.FindByFormula(ctx, formula)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, entities.ErrShareTokenNotFound
	}
	return toCandidate(rec), nil
}

// toCandidate maps the opaque Airtable field map into the typed entity
func toCandidate(rec *airtable.Record) *entities.Candidate {
	f := rec.Fields
	return &entities.Candidate{
		ID:                   rec.ID,
		FullName:             stringField(f, entities.FieldFullName),
		Email:                stringField(f, entities.FieldEmail),
		Phone:                stringField(f, entities.FieldPhone),
		Location:             stringField(f, entities.FieldLocation),
		LinkedIn:             stringField(f, entities.FieldLinkedIn),
		Summary:              stringField(f, entities.FieldSummary),
		Experience:           stringField(f, entities.FieldExperience),
		Education:            stringField(f, entities.FieldEducation),
		Skills:               stringField(f, entities.FieldSkills),
		Certifications:       stringField(f, entities.FieldCertifications),
		Status:               stringField(f, entities.FieldStatus),
		Stage:                stringField(f, entities.FieldStage),
		ManagerRating:        floatField(f, entities.FieldManagerRating),
		ManagerComments:      stringField(f, entities.FieldManagerComments),
		WillingToRelocate:    stringField(f, entities.FieldWillingToRelocate),
		Industry:             stringField(f, entities.FieldIndustry),
		SalesRoleType:        stringField(f, entities.FieldSalesRoleType),
		AnnualRevenue:        floatField(f, entities.FieldAnnualRevenue),
		BookOfBusiness:       boolField(f, entities.FieldBookOfBusiness),
		TradeLanes:           stringSliceField(f, entities.FieldTradeLanes),
		ImportExportFocus:    stringField(f, entities.FieldImportExportFocus),
		ModeOfTransportation: stringSliceField(f, entities.FieldModeOfTransportation),
		InterviewSummary:     stringField(f, entities.FieldInterviewSummary),
		ShareTokenHash:       stringField(f, entities.FieldShareTokenHash),
		ShareTokenExpires:    timeField(f, entities.FieldShareTokenExpires),
		ShareVisibleTabs:     splitCommaField(f, entities.FieldShareVisibleTabs),
		CreatedDate:          stringField(f, entities.FieldCreatedDate),
	}
}

func stringField(fields map[string]interface{}, key string) string {
	if v, ok := fields[key].(string); ok {
		return v
	}
	return ""
}

func floatField(fields map[string]interface{}, key string) float64 {
	if v, ok := fields[key].(float64); ok {
		return v
	}
	return 0
}

func boolField(fields map[string]interface{}, key string) bool {
	if v, ok := fields[key].(bool); ok {
		return v
	}
	return false
}

// stringSliceField handles Airtable multi-select values, which decode as
// []interface{}
func stringSliceField(fields map[string]interface{}, key string) []string {
	raw, ok := fields[key].([]interface{})
	if !ok {
		return nil
	}
	out := make([]string, 0, len(raw))
	for _, item := range raw {
		if s, ok := item.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

func splitCommaField(fields map[string]interface{}, key string) []string {
	raw := stringField(fields, key)
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func timeField(fields map[string]interface{}, key string) time.Time {
	raw := stringField(fields, key)
	if raw == "" {
		return time.Time{}
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}
	}
	return t
}
