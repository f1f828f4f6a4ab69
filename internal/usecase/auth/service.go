package auth

import (
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	apperrors "github.com/haulhire/crm/errors"
	"github.com/haulhire/crm/pkg/config"
	"github.com/haulhire/crm/pkg/jwt"
)

// TokenPair carries one issued access/refresh token set
type TokenPair struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

// Service handles admin authentication. There is a single operator
// account, configured by username and bcrypt password hash; no user
// records exist anywhere.
type Service interface {
	Login(username, password string) (*TokenPair, error)
	Refresh(refreshToken string) (*TokenPair, error)
	Verify(accessToken string) (*jwt.Claims, error)
}

type authService struct {
	cfg    *config.AuthConfig
	tokens *jwt.Manager
	logger *zap.Logger
}

// NewService constructs the auth service
func NewService(cfg *config.AuthConfig, tokens *jwt.Manager, logger *zap.Logger) Service {
	return &authService{cfg: cfg, tokens: tokens, logger: logger}
}

func (s *authService) Login(username, password string) (*TokenPair, error) {
	if username != s.cfg.AdminUsername {
		// Compare against a throwaway hash so a wrong username costs the
		// same time as a wrong password.
		_ = bcrypt.CompareHashAndPassword([]byte(s.cfg.AdminPasswordHash), []byte(password))
		return nil, apperrors.ErrInvalidCredentials()
	}

	if err := bcrypt.CompareHashAndPassword([]byte(s.cfg.AdminPasswordHash), []byte(password)); err != nil {
		s.logger.Warn("🔒 Failed login attempt", zap.String("username", username))
		return nil, apperrors.ErrInvalidCredentials()
	}

	pair, err := s.issue(username)
	if err != nil {
		return nil, err
	}

	s.logger.Info("🔑 Admin logged in", zap.String("username", username))
	return pair, nil
}

func (s *authService) Refresh(refreshToken string) (*TokenPair, error) {
	username, err := s.tokens.ValidateRefreshToken(refreshToken)
	if err != nil {
		return nil, apperrors.ErrInvalidToken()
	}
	if username != s.cfg.AdminUsername {
		return nil, apperrors.ErrInvalidToken()
	}

	return s.issue(username)
}

func (s *authService) Verify(accessToken string) (*jwt.Claims, error) {
	claims, err := s.tokens.ValidateAccessToken(accessToken)
	if err != nil {
		return nil, apperrors.ErrInvalidToken()
	}
	return claims, nil
}

func (s *authService) issue(username string) (*TokenPair, error) {
	access, err := s.tokens.GenerateAccessToken(username, "admin")
	if err != nil {
		return nil, apperrors.ErrInternal(err)
	}
	refresh, err := s.tokens.GenerateRefreshToken(username)
	if err != nil {
		return nil, apperrors.ErrInternal(err)
	}
	return &TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}
