package candidate

import (
	"context"
	"fmt"
	"testing"

	"go.uber.org/zap"

	apperrors "github.com/haulhire/crm/errors"
	"github.com/haulhire/crm/internal/domain/entities"
)

type fakeRepo struct {
	candidates       map[string]*entities.Candidate
	lastCreateFields map[string]interface{}
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{candidates: map[string]*entities.Candidate{
		"rec1": {ID: "rec1", FullName: "Jane Doe", Stage: entities.StageInitialScreening},
		"rec2": {ID: "rec2", FullName: "John Roe", Stage: entities.StageInterviewed},
		"rec3": {ID: "rec3", FullName: "No Stage"},
	}}
}

func (f *fakeRepo) Find(ctx context.Context, id string) (*entities.Candidate, error) {
	c, ok := f.candidates[id]
	if !ok {
		return nil, entities.ErrRecordNotFound
	}
	return c, nil
}

func (f *fakeRepo) List(ctx context.Context) ([]*entities.Candidate, error) {
	out := make([]*entities.Candidate, 0, len(f.candidates))
	for _, id := range []string{"rec1", "rec2", "rec3"} {
		out = append(out, f.candidates[id])
	}
	return out, nil
}

func (f *fakeRepo) Create(ctx context.Context, fields map[string]interface{}) (*entities.Candidate, error) {
	f.lastCreateFields = fields
	c := &entities.Candidate{ID: fmt.Sprintf("rec%d", len(f.candidates)+1)}
	if v, ok := fields[entities.FieldFullName].(string); ok {
		c.FullName = v
	}
	if v, ok := fields[entities.FieldSummary].(string); ok {
		c.Summary = v
	}
	f.candidates[c.ID] = c
	return c, nil
}

func (f *fakeRepo) Update(ctx context.Context, id string, fields map[string]interface{}) (*entities.Candidate, error) {
	c, ok := f.candidates[id]
	if !ok {
		return nil, entities.ErrRecordNotFound
	}
	if v, ok := fields[entities.FieldFullName].(string); ok {
		c.FullName = v
	}
	return c, nil
}

func (f *fakeRepo) CreateInterviewSummary(ctx context.Context, id, summary string) (*entities.Candidate, error) {
	c, ok := f.candidates[id]
	if !ok {
		return nil, entities.ErrRecordNotFound
	}
	if c.InterviewSummary != "" {
		return nil, entities.ErrSummaryConflict
	}
	c.InterviewSummary = summary
	return c, nil
}

func (f *fakeRepo) UpdateInterviewSummary(ctx context.Context, id, summary string) (*entities.Candidate, error) {
	c, ok := f.candidates[id]
	if !ok {
		return nil, entities.ErrRecordNotFound
	}
	c.InterviewSummary = summary
	return c, nil
}

func (f *fakeRepo) UpdateStage(ctx context.Context, id, stage string) (*entities.Candidate, error) {
	c, ok := f.candidates[id]
	if !ok {
		return nil, entities.ErrRecordNotFound
	}
	c.Stage = stage
	return c, nil
}

func (f *fakeRepo) FindByShareTokenHash(ctx context.Context, hash string) (*entities.Candidate, error) {
	return nil, entities.ErrShareTokenNotFound
}

func newTestService() (Service, *fakeRepo) {
	repo := newFakeRepo()
	return NewService(repo, PlainTextExtractor{}, zap.NewNop()), repo
}

func TestGetUnknownCandidate(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.Get(context.Background(), "recMissing")
	if !apperrors.IsCode(err, apperrors.ErrorCode_CANDIDATE_NOT_FOUND) {
		t.Errorf("expected CANDIDATE_NOT_FOUND, got %v", err)
	}
}

func TestCreateSummaryThenConflict(t *testing.T) {
	svc, _ := newTestService()

	c, err := svc.CreateSummary(context.Background(), "rec1", `{"overallSummary":"x"}`)
	if err != nil {
		t.Fatalf("CreateSummary error: %v", err)
	}
	if !c.HasInterviewSummary() {
		t.Error("expected summary on candidate")
	}

	_, err = svc.CreateSummary(context.Background(), "rec1", `{"overallSummary":"y"}`)
	if !apperrors.IsCode(err, apperrors.ErrorCode_SUMMARY_EXISTS) {
		t.Errorf("expected SUMMARY_EXISTS, got %v", err)
	}

	// PUT-style update replaces it.
	c, err = svc.UpdateSummary(context.Background(), "rec1", `{"overallSummary":"y"}`)
	if err != nil {
		t.Fatalf("UpdateSummary error: %v", err)
	}
	if c.InterviewSummary != `{"overallSummary":"y"}` {
		t.Errorf("unexpected summary %q", c.InterviewSummary)
	}
}

func TestCreateSummaryEmpty(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.CreateSummary(context.Background(), "rec1", "")
	if !apperrors.IsCode(err, apperrors.ErrorCode_INVALID_ARGUMENT) {
		t.Errorf("expected INVALID_ARGUMENT, got %v", err)
	}
}

func TestBoardGroupsByStage(t *testing.T) {
	svc, _ := newTestService()

	columns, err := svc.Board(context.Background())
	if err != nil {
		t.Fatalf("Board error: %v", err)
	}
	if len(columns) != len(entities.KanbanStages) {
		t.Fatalf("expected %d columns, got %d", len(entities.KanbanStages), len(columns))
	}
	for i, col := range columns {
		if col.Stage != entities.KanbanStages[i] {
			t.Errorf("column %d is %q, want %q", i, col.Stage, entities.KanbanStages[i])
		}
		if col.Candidates == nil {
			t.Errorf("column %q must have a non-nil slice", col.Stage)
		}
	}
	// rec3 has no stage and falls back to the first column.
	if len(columns[0].Candidates) != 2 {
		t.Errorf("expected 2 candidates in first column, got %d", len(columns[0].Candidates))
	}
	if len(columns[1].Candidates) != 1 {
		t.Errorf("expected 1 candidate in second column, got %d", len(columns[1].Candidates))
	}
}

func TestMoveStage(t *testing.T) {
	svc, repo := newTestService()

	c, err := svc.MoveStage(context.Background(), "rec1", entities.StageProfileShared)
	if err != nil {
		t.Fatalf("MoveStage error: %v", err)
	}
	if c.Stage != entities.StageProfileShared {
		t.Errorf("unexpected stage %q", c.Stage)
	}
	if repo.candidates["rec1"].Stage != entities.StageProfileShared {
		t.Error("stage not persisted")
	}
}

func TestMoveStageRejectsUnknownStage(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.MoveStage(context.Background(), "rec1", "Hired And Gone")
	if !apperrors.IsCode(err, apperrors.ErrorCode_INVALID_STAGE) {
		t.Errorf("expected INVALID_STAGE, got %v", err)
	}
}

func TestUpdateRequiresFields(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.Update(context.Background(), "rec1", nil)
	if !apperrors.IsCode(err, apperrors.ErrorCode_INVALID_ARGUMENT) {
		t.Errorf("expected INVALID_ARGUMENT, got %v", err)
	}
}

func TestCreateWithResumeSeedsSummary(t *testing.T) {
	svc, repo := newTestService()

	resume := []byte("\xEF\xBB\xBF  Ten years moving reefer freight across the Pacific.  \n")
	c, err := svc.Create(context.Background(), map[string]interface{}{
		entities.FieldFullName: "Ann Chu",
	}, resume)
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if c.Summary != "Ten years moving reefer freight across the Pacific." {
		t.Errorf("unexpected summary %q", c.Summary)
	}
	if repo.lastCreateFields[entities.FieldFullName] != "Ann Chu" {
		t.Error("full name not passed to store")
	}
}

func TestCreateKeepsExplicitSummary(t *testing.T) {
	svc, repo := newTestService()

	_, err := svc.Create(context.Background(), map[string]interface{}{
		entities.FieldFullName: "Ann Chu",
		entities.FieldSummary:  "Hand-written summary",
	}, []byte("resume text"))
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if repo.lastCreateFields[entities.FieldSummary] != "Hand-written summary" {
		t.Error("explicit summary must win over resume text")
	}
}

func TestCreateRejectsBadInput(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.Create(context.Background(), nil, nil)
	if !apperrors.IsCode(err, apperrors.ErrorCode_INVALID_ARGUMENT) {
		t.Errorf("expected INVALID_ARGUMENT for missing name, got %v", err)
	}

	_, err = svc.Create(context.Background(), map[string]interface{}{
		entities.FieldFullName: "Ann Chu",
		entities.FieldStage:    "Somewhere",
	}, nil)
	if !apperrors.IsCode(err, apperrors.ErrorCode_INVALID_STAGE) {
		t.Errorf("expected INVALID_STAGE, got %v", err)
	}

	_, err = svc.Create(context.Background(), map[string]interface{}{
		entities.FieldFullName: "Ann Chu",
	}, []byte{0xFF, 0xFE, 0x00})
	if !apperrors.IsCode(err, apperrors.ErrorCode_INVALID_ARGUMENT) {
		t.Errorf("expected INVALID_ARGUMENT for binary resume, got %v", err)
	}
}
