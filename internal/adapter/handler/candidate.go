package handler

import (
	"io"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	apperrors "github.com/haulhire/crm/errors"
	candidatedto "github.com/haulhire/crm/internal/adapter/dto/candidate"
	"github.com/haulhire/crm/internal/domain/entities"
	"github.com/haulhire/crm/internal/usecase/candidate"
)

// resume uploads are plain text; anything bigger is not a resume
const maxResumeBytes = 5 << 20

// Candidate handles candidate record endpoints
type Candidate struct {
	service candidate.Service
	logger  *zap.Logger
}

// NewCandidate creates the candidate handler
func NewCandidate(service candidate.Service, logger *zap.Logger) *Candidate {
	return &Candidate{service: service, logger: logger}
}

// Create adds a candidate record from a multipart form, with an optional
// plain-text resume file seeding the summary
func (h *Candidate) Create(c echo.Context) error {
	fields := map[string]interface{}{}
	for form, column := range map[string]string{
		"fullName": entities.FieldFullName,
		"email":    entities.FieldEmail,
		"phone":    entities.FieldPhone,
		"location": entities.FieldLocation,
		"linkedin": entities.FieldLinkedIn,
		"summary":  entities.FieldSummary,
		"stage":    entities.FieldStage,
	} {
		if v := strings.TrimSpace(c.FormValue(form)); v != "" {
			fields[column] = v
		}
	}

	var resume []byte
	if fileHeader, err := c.FormFile("resume"); err == nil {
		if fileHeader.Size > maxResumeBytes {
			return HandleError(h.logger, c, apperrors.ErrInvalidArgument("resume exceeds 5MB"))
		}
		file, err := fileHeader.Open()
		if err != nil {
			return HandleError(h.logger, c, apperrors.ErrInternal(err))
		}
		defer file.Close()

		resume, err = io.ReadAll(io.LimitReader(file, maxResumeBytes+1))
		if err != nil {
			return HandleError(h.logger, c, apperrors.ErrInternal(err))
		}
	}

	result, err := h.service.Create(c.Request().Context(), fields, resume)
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	return c.JSON(http.StatusCreated, result)
}

// List returns all candidates
func (h *Candidate) List(c echo.Context) error {
	candidates, err := h.service.List(c.Request().Context())
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	return HandleSuccess(h.logger, c, candidates)
}

// Get returns one candidate by record ID
func (h *Candidate) Get(c echo.Context) error {
	result, err := h.service.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	return HandleSuccess(h.logger, c, result)
}

// Update applies a partial field update to the candidate record
func (h *Candidate) Update(c echo.Context) error {
	var req candidatedto.UpdateRequest
	if err := c.Bind(&req); err != nil {
		return HandleError(h.logger, c, apperrors.ErrInvalidPayload())
	}
	if err := c.Validate(&req); err != nil {
		return HandleError(h.logger, c, apperrors.ErrInvalidPayload())
	}

	result, err := h.service.Update(c.Request().Context(), c.Param("id"), req.Fields)
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	return HandleSuccess(h.logger, c, result)
}

// CreateSummary stores a first-time interview summary. An existing
// summary is never overwritten here; the caller is told to switch to
// the update method instead.
func (h *Candidate) CreateSummary(c echo.Context) error {
	var req candidatedto.SummaryRequest
	if err := c.Bind(&req); err != nil {
		return HandleError(h.logger, c, apperrors.ErrInvalidPayload())
	}
	if err := c.Validate(&req); err != nil {
		return HandleError(h.logger, c, apperrors.ErrInvalidPayload())
	}

	result, err := h.service.CreateSummary(c.Request().Context(), c.Param("id"), req.InterviewSummary)
	if err != nil {
		if apperrors.IsCode(err, apperrors.ErrorCode_SUMMARY_EXISTS) {
			return c.JSON(http.StatusConflict, map[string]interface{}{
				"error":              "Interview summary already exists. Use PUT method to update.",
				"hasExistingSummary": true,
			})
		}
		return HandleError(h.logger, c, err)
	}
	return HandleSuccess(h.logger, c, result)
}

// UpdateSummary replaces the interview summary unconditionally
func (h *Candidate) UpdateSummary(c echo.Context) error {
	var req candidatedto.SummaryRequest
	if err := c.Bind(&req); err != nil {
		return HandleError(h.logger, c, apperrors.ErrInvalidPayload())
	}
	if err := c.Validate(&req); err != nil {
		return HandleError(h.logger, c, apperrors.ErrInvalidPayload())
	}

	result, err := h.service.UpdateSummary(c.Request().Context(), c.Param("id"), req.InterviewSummary)
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	return HandleSuccess(h.logger, c, result)
}
