package handler

import (
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	apperrors "github.com/haulhire/crm/errors"
	sharelinkdto "github.com/haulhire/crm/internal/adapter/dto/sharelink"
	"github.com/haulhire/crm/internal/usecase/sharelink"
)

// ShareLink handles public profile link endpoints
type ShareLink struct {
	service sharelink.Service
	logger  *zap.Logger
}

// NewShareLink creates the share link handler
func NewShareLink(service sharelink.Service, logger *zap.Logger) *ShareLink {
	return &ShareLink{service: service, logger: logger}
}

// Generate mints a new share link for the candidate
func (h *ShareLink) Generate(c echo.Context) error {
	var req sharelinkdto.GenerateRequest
	if err := c.Bind(&req); err != nil {
		return HandleError(h.logger, c, apperrors.ErrInvalidPayload())
	}
	if err := c.Validate(&req); err != nil {
		return HandleError(h.logger, c, apperrors.ErrInvalidPayload())
	}

	link, err := h.service.Generate(c.Request().Context(), c.Param("id"), req.ExpiresInDays, req.VisibleTabs)
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	return HandleSuccess(h.logger, c, link)
}

// Resolve is the public endpoint a share link token lands on
func (h *ShareLink) Resolve(c echo.Context) error {
	profile, err := h.service.Resolve(c.Request().Context(), c.Param("token"))
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	return HandleSuccess(h.logger, c, profile)
}
