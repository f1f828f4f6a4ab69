package repository

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/haulhire/crm/internal/domain/entities"
	"github.com/haulhire/crm/internal/infrastructure/external/airtable"
)

type fakeStore struct {
	records map[string]*airtable.Record
	updates []map[string]interface{}

	findFormula string
	findResult  *airtable.Record
}

func (f *fakeStore) GetRecord(ctx context.Context, id string) (*airtable.Record, error) {
	rec, ok := f.records[id]
	if !ok {
		return nil, &airtable.StatusError{StatusCode: http.StatusNotFound, Message: "Record not found"}
	}
	return rec, nil
}

func (f *fakeStore) ListRecords(ctx context.Context) ([]airtable.Record, error) {
	var out []airtable.Record
	for _, rec := range f.records {
		out = append(out, *rec)
	}
	return out, nil
}

func (f *fakeStore) FindByFormula(ctx context.Context, formula string) (*airtable.Record, error) {
	f.findFormula = formula
	return f.findResult, nil
}

func (f *fakeStore) CreateRecord(ctx context.Context, fields map[string]interface{}) (*airtable.Record, error) {
	rec := &airtable.Record{ID: "recCreated", Fields: fields}
	f.records[rec.ID] = rec
	return rec, nil
}

func (f *fakeStore) UpdateRecord(ctx context.Context, id string, fields map[string]interface{}) (*airtable.Record, error) {
	rec, ok := f.records[id]
	if !ok {
		return nil, &airtable.StatusError{StatusCode: http.StatusNotFound, Message: "Record not found"}
	}
	for k, v := range fields {
		rec.Fields[k] = v
	}
	f.updates = append(f.updates, fields)
	return rec, nil
}

func newFakeStore() *fakeStore {
	return &fakeStore{records: map[string]*airtable.Record{
		"rec1": {ID: "rec1", Fields: map[string]interface{}{
			entities.FieldFullName:             "Jane Doe",
			entities.FieldEmail:                "jane@example.com",
			entities.FieldStage:                entities.StageInitialScreening,
			entities.FieldManagerRating:        4.5,
			entities.FieldBookOfBusiness:       true,
			entities.FieldTradeLanes:           []interface{}{"Transatlantic", "Transpacific"},
			entities.FieldShareVisibleTabs:     "overview, summary",
			entities.FieldShareTokenExpires:    "2026-09-07T12:00:00Z",
			entities.FieldModeOfTransportation: []interface{}{"Ocean"},
		}},
	}}
}

func TestFindMapsFields(t *testing.T) {
	repo := &candidateRepository{store: newFakeStore()}

	c, err := repo.Find(context.Background(), "rec1")
	if err != nil {
		t.Fatalf("Find error: %v", err)
	}

	if c.FullName != "Jane Doe" || c.Email != "jane@example.com" {
		t.Errorf("unexpected candidate %+v", c)
	}
	if c.ManagerRating != 4.5 {
		t.Errorf("expected rating 4.5, got %v", c.ManagerRating)
	}
	if !c.BookOfBusiness {
		t.Error("expected book of business true")
	}
	if len(c.TradeLanes) != 2 || c.TradeLanes[0] != "Transatlantic" {
		t.Errorf("unexpected trade lanes %v", c.TradeLanes)
	}
	if len(c.ShareVisibleTabs) != 2 || c.ShareVisibleTabs[1] != "summary" {
		t.Errorf("unexpected visible tabs %v", c.ShareVisibleTabs)
	}
	if c.ShareTokenExpires.IsZero() {
		t.Error("expected parsed share token expiry")
	}
}

func TestFindNotFound(t *testing.T) {
	repo := &candidateRepository{store: newFakeStore()}

	_, err := repo.Find(context.Background(), "recMissing")
	if !errors.Is(err, entities.ErrRecordNotFound) {
		t.Errorf("expected ErrRecordNotFound, got %v", err)
	}
}

func TestCreateInterviewSummaryFirstTime(t *testing.T) {
	store := newFakeStore()
	repo := &candidateRepository{store: store}

	c, err := repo.CreateInterviewSummary(context.Background(), "rec1", "a thorough summary")
	if err != nil {
		t.Fatalf("CreateInterviewSummary error: %v", err)
	}
	if c.InterviewSummary != "a thorough summary" {
		t.Errorf("unexpected summary %q", c.InterviewSummary)
	}
	if len(store.updates) != 1 {
		t.Errorf("expected 1 update, got %d", len(store.updates))
	}
}

func TestCreateInterviewSummaryConflict(t *testing.T) {
	store := newFakeStore()
	store.records["rec1"].Fields[entities.FieldInterviewSummary] = "already here"
	repo := &candidateRepository{store: store}

	_, err := repo.CreateInterviewSummary(context.Background(), "rec1", "new summary")
	if !errors.Is(err, entities.ErrSummaryConflict) {
		t.Fatalf("expected ErrSummaryConflict, got %v", err)
	}
	if len(store.updates) != 0 {
		t.Errorf("conflict must not write, saw %d updates", len(store.updates))
	}
}

func TestUpdateInterviewSummaryOverwrites(t *testing.T) {
	store := newFakeStore()
	store.records["rec1"].Fields[entities.FieldInterviewSummary] = "old"
	repo := &candidateRepository{store: store}

	c, err := repo.UpdateInterviewSummary(context.Background(), "rec1", "replacement")
	if err != nil {
		t.Fatalf("UpdateInterviewSummary error: %v", err)
	}
	if c.InterviewSummary != "replacement" {
		t.Errorf("unexpected summary %q", c.InterviewSummary)
	}
}

func TestUpdateStage(t *testing.T) {
	store := newFakeStore()
	repo := &candidateRepository{store: store}

	c, err := repo.UpdateStage(context.Background(), "rec1", entities.StageInterviewed)
	if err != nil {
		t.Fatalf("UpdateStage error: %v", err)
	}
	if c.Stage != entities.StageInterviewed {
		t.Errorf("unexpected stage %q", c.Stage)
	}
}

func TestFindByShareTokenHash(t *testing.T) {
	store := newFakeStore()
	store.findResult = store.records["rec1"]
	repo := &candidateRepository{store: store}

	c, err := repo.FindByShareTokenHash(context.Background(), "deadbeef")
	if err != nil {
		t.Fatalf("FindByShareTokenHash error: %v", err)
	}
	if c.ID != "rec1" {
		t.Errorf("unexpected candidate %+v", c)
	}
	if store.findFormula != `{Share Token Hash}="deadbeef"` {
		t.Errorf("unexpected formula %q", store.findFormula)
	}
}

func TestFindByShareTokenHashMiss(t *testing.T) {
	repo := &candidateRepository{store: newFakeStore()}

	_, err := repo.FindByShareTokenHash(context.Background(), "nope")
	if !errors.Is(err, entities.ErrShareTokenNotFound) {
		t.Errorf("expected ErrShareTokenNotFound, got %v", err)
	}
}
