package sharelink

import (
	"context"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"

	apperrors "github.com/haulhire/crm/errors"
	"github.com/haulhire/crm/internal/domain/entities"
)

type fakeRepo struct {
	candidates map[string]*entities.Candidate
	lastFields map[string]interface{}
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{candidates: map[string]*entities.Candidate{
		"rec1": {
			ID:               "rec1",
			FullName:         "Jane Doe",
			Email:            "jane@example.com",
			Phone:            "555-0100",
			LinkedIn:         "linkedin.com/in/jane",
			Experience:       "10 years in freight sales",
			InterviewSummary: `{"overallSummary":"Strong"}`,
			ManagerRating:    4.5,
			ManagerComments:  "internal note",
		},
	}}
}

func (f *fakeRepo) Find(ctx context.Context, id string) (*entities.Candidate, error) {
	c, ok := f.candidates[id]
	if !ok {
		return nil, entities.ErrRecordNotFound
	}
	return c, nil
}

func (f *fakeRepo) List(ctx context.Context) ([]*entities.Candidate, error) { return nil, nil }

func (f *fakeRepo) Create(ctx context.Context, fields map[string]interface{}) (*entities.Candidate, error) {
	return nil, nil
}

func (f *fakeRepo) Update(ctx context.Context, id string, fields map[string]interface{}) (*entities.Candidate, error) {
	c, ok := f.candidates[id]
	if !ok {
		return nil, entities.ErrRecordNotFound
	}
	f.lastFields = fields
	if v, ok := fields[entities.FieldShareTokenHash].(string); ok {
		c.ShareTokenHash = v
	}
	if v, ok := fields[entities.FieldShareTokenExpires].(string); ok {
		c.ShareTokenExpires, _ = time.Parse(time.RFC3339, v)
	}
	if v, ok := fields[entities.FieldShareVisibleTabs].(string); ok {
		c.ShareVisibleTabs = strings.Split(v, ",")
	}
	return c, nil
}

func (f *fakeRepo) CreateInterviewSummary(ctx context.Context, id, summary string) (*entities.Candidate, error) {
	return nil, nil
}

func (f *fakeRepo) UpdateInterviewSummary(ctx context.Context, id, summary string) (*entities.Candidate, error) {
	return nil, nil
}

func (f *fakeRepo) UpdateStage(ctx context.Context, id, stage string) (*entities.Candidate, error) {
	return nil, nil
}

func (f *fakeRepo) FindByShareTokenHash(ctx context.Context, hash string) (*entities.Candidate, error) {
	for _, c := range f.candidates {
		if c.ShareTokenHash == hash && c.ShareTokenHash != "" {
			return c, nil
		}
	}
	return nil, entities.ErrShareTokenNotFound
}

func TestGenerateAndResolve(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo, zap.NewNop())

	link, err := svc.Generate(context.Background(), "rec1", 7, []string{"overview", "summary"})
	if err != nil {
		t.Fatalf("Generate error: %v", err)
	}
	if link.Token == "" {
		t.Fatal("expected a raw token")
	}
	if strings.ContainsAny(link.Token, "+/=") {
		t.Errorf("token must be URL safe, got %q", link.Token)
	}
	// Only the hash lands in the record.
	if stored := repo.candidates["rec1"].ShareTokenHash; stored == link.Token || stored == "" {
		t.Errorf("record must store a hash, got %q", stored)
	}

	profile, err := svc.Resolve(context.Background(), link.Token)
	if err != nil {
		t.Fatalf("Resolve error: %v", err)
	}
	if profile.Candidate.FullName != "Jane Doe" {
		t.Errorf("unexpected candidate %+v", profile.Candidate)
	}
	if len(profile.VisibleTabs) != 2 {
		t.Errorf("unexpected tabs %v", profile.VisibleTabs)
	}
}

func TestResolveSanitizesProfile(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo, zap.NewNop())

	link, err := svc.Generate(context.Background(), "rec1", 7, []string{"overview", "summary"})
	if err != nil {
		t.Fatalf("Generate error: %v", err)
	}

	profile, err := svc.Resolve(context.Background(), link.Token)
	if err != nil {
		t.Fatalf("Resolve error: %v", err)
	}

	c := profile.Candidate
	if c.Email != "" || c.Phone != "" || c.LinkedIn != "" {
		t.Error("contact details must never leak through a share link")
	}
	if c.ManagerRating != 0 || c.ManagerComments != "" {
		t.Error("manager-only fields must never leak")
	}
	if c.InterviewSummary == "" {
		t.Error("summary tab is visible, summary must remain")
	}
	// Experience tab was not selected.
	if c.Experience != "" {
		t.Error("hidden tab content must be stripped")
	}
}

func TestResolveUnknownToken(t *testing.T) {
	svc := NewService(newFakeRepo(), zap.NewNop())

	_, err := svc.Resolve(context.Background(), "bogus-token")
	if !apperrors.IsCode(err, apperrors.ErrorCode_SHARE_LINK_INVALID) {
		t.Errorf("expected SHARE_LINK_INVALID, got %v", err)
	}
}

func TestResolveExpiredToken(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo, zap.NewNop())

	link, err := svc.Generate(context.Background(), "rec1", 7, nil)
	if err != nil {
		t.Fatalf("Generate error: %v", err)
	}
	repo.candidates["rec1"].ShareTokenExpires = time.Now().Add(-time.Hour)

	_, err = svc.Resolve(context.Background(), link.Token)
	if !apperrors.IsCode(err, apperrors.ErrorCode_SHARE_LINK_INVALID) {
		t.Errorf("expected SHARE_LINK_INVALID for expired link, got %v", err)
	}
}

func TestGenerateRejectsAllInvalidTabs(t *testing.T) {
	svc := NewService(newFakeRepo(), zap.NewNop())

	_, err := svc.Generate(context.Background(), "rec1", 7, []string{"secrets", "admin"})
	if !apperrors.IsCode(err, apperrors.ErrorCode_INVALID_ARGUMENT) {
		t.Errorf("expected INVALID_ARGUMENT, got %v", err)
	}
}

func TestGenerateDefaults(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo, zap.NewNop())

	link, err := svc.Generate(context.Background(), "rec1", 0, nil)
	if err != nil {
		t.Fatalf("Generate error: %v", err)
	}
	if len(link.VisibleTabs) != len(AllowedTabs) {
		t.Errorf("expected all tabs by default, got %v", link.VisibleTabs)
	}

	wantMin := time.Now().AddDate(0, 0, 6)
	if link.ExpiresAt.Before(wantMin) {
		t.Errorf("expected ~7 day expiry, got %s", link.ExpiresAt)
	}
}

func TestGenerateUnknownCandidate(t *testing.T) {
	svc := NewService(newFakeRepo(), zap.NewNop())

	_, err := svc.Generate(context.Background(), "recMissing", 7, nil)
	if !apperrors.IsCode(err, apperrors.ErrorCode_CANDIDATE_NOT_FOUND) {
		t.Errorf("expected CANDIDATE_NOT_FOUND, got %v", err)
	}
}
