package handler

import (
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	apperrors "github.com/haulhire/crm/errors"
	authdto "github.com/haulhire/crm/internal/adapter/dto/auth"
	"github.com/haulhire/crm/internal/usecase/auth"
	"github.com/haulhire/crm/pkg/jwt"
)

// Auth handles admin authentication endpoints
type Auth struct {
	service auth.Service
	tokens  *jwt.Manager
	logger  *zap.Logger
}

// NewAuth creates the auth handler
func NewAuth(service auth.Service, tokens *jwt.Manager, logger *zap.Logger) *Auth {
	return &Auth{service: service, tokens: tokens, logger: logger}
}

// Login authenticates the admin and sets session cookies
func (h *Auth) Login(c echo.Context) error {
	var req authdto.LoginRequest
	if err := c.Bind(&req); err != nil {
		return HandleError(h.logger, c, apperrors.ErrInvalidPayload())
	}
	if err := c.Validate(&req); err != nil {
		return HandleError(h.logger, c, apperrors.ErrInvalidPayload())
	}

	pair, err := h.service.Login(req.Username, req.Password)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	h.setSessionCookies(c, pair)
	return HandleSuccess(h.logger, c, pair)
}

// Refresh issues a fresh token pair from a valid refresh token
func (h *Auth) Refresh(c echo.Context) error {
	token := ""
	if cookie, err := c.Cookie("refresh_token"); err == nil {
		token = cookie.Value
	}
	if token == "" {
		var req authdto.RefreshRequest
		if err := c.Bind(&req); err == nil {
			token = req.RefreshToken
		}
	}
	if token == "" {
		return HandleError(h.logger, c, apperrors.ErrInvalidToken())
	}

	pair, err := h.service.Refresh(token)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	h.setSessionCookies(c, pair)
	return HandleSuccess(h.logger, c, pair)
}

// Logout clears the session cookies
func (h *Auth) Logout(c echo.Context) error {
	DeleteCookie(c.Response(), "access_token")
	DeleteCookie(c.Response(), "refresh_token")
	return HandleSuccess(h.logger, c, nil)
}

// Me returns the authenticated admin's claims
func (h *Auth) Me(c echo.Context) error {
	token := ExtractToken(c.Request())
	if token == "" {
		return HandleError(h.logger, c, apperrors.ErrUnauthenticated())
	}

	claims, err := h.service.Verify(token)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	return HandleSuccess(h.logger, c, map[string]interface{}{
		"username": claims.Username,
		"role":     claims.Role,
	})
}

func (h *Auth) setSessionCookies(c echo.Context, pair *auth.TokenPair) {
	SetCookie(c.Response(), "access_token", pair.AccessToken, int(h.tokens.GetAccessExpiry().Seconds()))
	SetCookie(c.Response(), "refresh_token", pair.RefreshToken, int(h.tokens.GetRefreshExpiry().Seconds()))
}
