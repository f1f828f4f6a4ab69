package middleware

import (
	"strings"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	apperrors "github.com/haulhire/crm/errors"
	"github.com/haulhire/crm/internal/adapter/handler"
	"github.com/haulhire/crm/pkg/jwt"
)

// ContextKeyClaims is where the middleware stores validated claims
const ContextKeyClaims = "auth_claims"

// RequireAuth validates the access token from the Authorization header
// or the session cookie and stores the claims on the context.
func RequireAuth(tokens *jwt.Manager, logger *zap.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token := handler.ExtractToken(c.Request())
			if token == "" {
				return handler.HandleError(logger, c, apperrors.ErrUnauthenticated())
			}

			claims, err := tokens.ValidateAccessToken(token)
			if err != nil {
				if strings.Contains(err.Error(), "expired") {
					return handler.HandleError(logger, c, apperrors.ErrTokenExpired())
				}
				return handler.HandleError(logger, c, apperrors.ErrInvalidToken())
			}

			c.Set(ContextKeyClaims, claims)
			return next(c)
		}
	}
}

// ClaimsFromContext returns the claims stored by RequireAuth
func ClaimsFromContext(c echo.Context) (*jwt.Claims, bool) {
	claims, ok := c.Get(ContextKeyClaims).(*jwt.Claims)
	return claims, ok
}
