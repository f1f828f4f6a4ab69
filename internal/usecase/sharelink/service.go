package sharelink

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"

	apperrors "github.com/haulhire/crm/errors"
	"github.com/haulhire/crm/internal/domain/entities"
	"github.com/haulhire/crm/internal/domain/repositories"
)

// AllowedTabs are the profile sections a share link can expose
var AllowedTabs = []string{"overview", "experience", "summary", "video", "availability"}

const defaultExpiryDays = 7

// GeneratedLink is the result of minting a new share link. The raw token
// appears here once and is never stored; only its hash reaches the record.
type GeneratedLink struct {
	Token       string    `json:"token"`
	ExpiresAt   time.Time `json:"expiresAt"`
	VisibleTabs []string  `json:"visibleTabs"`
}

// SharedProfile is the public view a valid share link resolves to.
// Contact fields are stripped; the viewer gets only what the visible
// tabs cover.
type SharedProfile struct {
	Candidate   *entities.Candidate `json:"candidate"`
	VisibleTabs []string            `json:"visibleTabs"`
}

// Service mints and resolves public profile share links
type Service interface {
	Generate(ctx context.Context, candidateID string, expiresInDays int, visibleTabs []string) (*GeneratedLink, error)
	Resolve(ctx context.Context, token string) (*SharedProfile, error)
}

type shareLinkService struct {
	repo   repositories.CandidateRepository
	logger *zap.Logger
}

// NewService constructs the share link service
func NewService(repo repositories.CandidateRepository, logger *zap.Logger) Service {
	return &shareLinkService{repo: repo, logger: logger}
}

func (s *shareLinkService) Generate(ctx context.Context, candidateID string, expiresInDays int, visibleTabs []string) (*GeneratedLink, error) {
	if expiresInDays <= 0 {
		expiresInDays = defaultExpiryDays
	}
	if len(visibleTabs) == 0 {
		visibleTabs = AllowedTabs
	}

	validTabs := filterTabs(visibleTabs)
	if len(validTabs) == 0 {
		return nil, apperrors.ErrInvalidArgument("At least one valid tab must be selected")
	}

	raw := make([]byte, 32)
	if _, err := rand.Read(raw); err != nil {
		return nil, apperrors.ErrInternal(err)
	}
	token := base64.RawURLEncoding.EncodeToString(raw)

	expiresAt := time.Now().AddDate(0, 0, expiresInDays)

	_, err := s.repo.Update(ctx, candidateID, map[string]interface{}{
		entities.FieldShareTokenHash:    hashToken(token),
		entities.FieldShareTokenExpires: expiresAt.UTC().Format(time.RFC3339),
		entities.FieldShareVisibleTabs:  strings.Join(validTabs, ","),
	})
	if err != nil {
		if errors.Is(err, entities.ErrRecordNotFound) {
			return nil, apperrors.ErrCandidateNotFound(candidateID)
		}
		return nil, apperrors.ErrRecordStoreFailed("store share token", err)
	}

	s.logger.Info("🔗 Share link generated",
		zap.String("candidate_id", candidateID),
		zap.Time("expires_at", expiresAt),
		zap.Strings("visible_tabs", validTabs))

	return &GeneratedLink{
		Token:       token,
		ExpiresAt:   expiresAt,
		VisibleTabs: validTabs,
	}, nil
}

func (s *shareLinkService) Resolve(ctx context.Context, token string) (*SharedProfile, error) {
	if token == "" {
		return nil, apperrors.ErrShareLinkInvalid()
	}

	candidate, err := s.repo.FindByShareTokenHash(ctx, hashToken(token))
	if err != nil {
		if errors.Is(err, entities.ErrShareTokenNotFound) {
			return nil, apperrors.ErrShareLinkInvalid()
		}
		return nil, apperrors.ErrRecordStoreFailed("resolve share token", err)
	}

	if candidate.ShareTokenExpires.IsZero() || candidate.ShareTokenExpires.Before(time.Now()) {
		return nil, apperrors.ErrShareLinkInvalid().WithDetail("reason", "expired")
	}

	tabs := candidate.ShareVisibleTabs
	if len(tabs) == 0 {
		tabs = AllowedTabs
	}

	return &SharedProfile{
		Candidate:   sanitize(candidate, tabs),
		VisibleTabs: tabs,
	}, nil
}

// sanitize strips contact details and anything outside the visible tabs
func sanitize(c *entities.Candidate, tabs []string) *entities.Candidate {
	out := *c

	// Never expose contact details or manager-only notes on a public link.
	out.Email = ""
	out.Phone = ""
	out.LinkedIn = ""
	out.ManagerRating = 0
	out.ManagerComments = ""
	out.ShareTokenHash = ""
	out.ShareTokenExpires = time.Time{}
	out.ShareVisibleTabs = nil

	if !hasTab(tabs, "experience") {
		out.Experience = ""
		out.Education = ""
		out.Skills = ""
		out.Certifications = ""
	}
	if !hasTab(tabs, "summary") {
		out.InterviewSummary = ""
	}
	if !hasTab(tabs, "availability") {
		out.WillingToRelocate = ""
	}

	return &out
}

func hashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}

func filterTabs(tabs []string) []string {
	out := make([]string, 0, len(tabs))
	for _, tab := range tabs {
		tab = strings.TrimSpace(strings.ToLower(tab))
		if hasTab(AllowedTabs, tab) && !hasTab(out, tab) {
			out = append(out, tab)
		}
	}
	return out
}

func hasTab(tabs []string, tab string) bool {
	for _, t := range tabs {
		if t == tab {
			return true
		}
	}
	return false
}
