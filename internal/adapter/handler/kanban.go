package handler

import (
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	apperrors "github.com/haulhire/crm/errors"
	candidatedto "github.com/haulhire/crm/internal/adapter/dto/candidate"
	"github.com/haulhire/crm/internal/usecase/candidate"
)

// Kanban handles the pipeline board endpoints
type Kanban struct {
	service candidate.Service
	logger  *zap.Logger
}

// NewKanban creates the kanban handler
func NewKanban(service candidate.Service, logger *zap.Logger) *Kanban {
	return &Kanban{service: service, logger: logger}
}

// Board returns all candidates grouped into stage columns
func (h *Kanban) Board(c echo.Context) error {
	columns, err := h.service.Board(c.Request().Context())
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	return HandleSuccess(h.logger, c, columns)
}

// Move shifts a candidate into another stage column
func (h *Kanban) Move(c echo.Context) error {
	var req candidatedto.MoveStageRequest
	if err := c.Bind(&req); err != nil {
		return HandleError(h.logger, c, apperrors.ErrInvalidPayload())
	}
	if err := c.Validate(&req); err != nil {
		return HandleError(h.logger, c, apperrors.ErrInvalidPayload())
	}

	result, err := h.service.MoveStage(c.Request().Context(), c.Param("id"), req.Stage)
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	return HandleSuccess(h.logger, c, result)
}
