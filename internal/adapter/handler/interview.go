package handler

import (
	"io"
	"net/http"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	apperrors "github.com/haulhire/crm/errors"
	"github.com/haulhire/crm/internal/domain/entities"
	"github.com/haulhire/crm/internal/usecase/interview"
)

// maxUploadBytes caps interview recordings at 100MB
const maxUploadBytes = 100 << 20

// Interview handles the audio processing pipeline endpoints
type Interview struct {
	service interview.Service
	logger  *zap.Logger
}

// NewInterview creates the interview handler
func NewInterview(service interview.Service, logger *zap.Logger) *Interview {
	return &Interview{service: service, logger: logger}
}

// Process accepts an interview recording and starts an asynchronous run
func (h *Interview) Process(c echo.Context) error {
	fileHeader, err := c.FormFile("audio")
	if err != nil {
		return HandleError(h.logger, c, apperrors.ErrInvalidArgument("audio file is required"))
	}
	if fileHeader.Size > maxUploadBytes {
		return HandleError(h.logger, c, apperrors.ErrInvalidArgument("audio file exceeds 100MB"))
	}

	file, err := fileHeader.Open()
	if err != nil {
		return HandleError(h.logger, c, apperrors.ErrInternal(err))
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, maxUploadBytes+1))
	if err != nil {
		return HandleError(h.logger, c, apperrors.ErrInternal(err))
	}

	detected := mimetype.Detect(data)
	if !isPlayableMedia(detected.String()) {
		return HandleError(h.logger, c, apperrors.ErrInvalidArgument("file is not an audio recording").
			WithDetail("detected_type", detected.String()))
	}

	asset := entities.AudioAsset{
		Name:     fileHeader.Filename,
		MIMEType: detected.String(),
		Size:     int64(len(data)),
		Data:     data,
	}

	run, err := h.service.StartProcessing(c.Request().Context(), c.Param("id"), asset)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	return c.JSON(http.StatusAccepted, run)
}

// Status reports the latest pipeline run for the candidate
func (h *Interview) Status(c echo.Context) error {
	run, err := h.service.RunStatus(c.Param("id"))
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	return HandleSuccess(h.logger, c, run)
}

// Cancel aborts the candidate's live run
func (h *Interview) Cancel(c echo.Context) error {
	if err := h.service.CancelRun(c.Param("id")); err != nil {
		return HandleError(h.logger, c, err)
	}
	return HandleSuccess(h.logger, c, nil)
}

// Reanalyze reruns analysis from the cached transcript
func (h *Interview) Reanalyze(c echo.Context) error {
	run, err := h.service.Reanalyze(c.Request().Context(), c.Param("id"))
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	return c.JSON(http.StatusAccepted, run)
}

// Transcript returns the cached transcript text
func (h *Interview) Transcript(c echo.Context) error {
	transcript, err := h.service.Transcript(c.Param("id"))
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	return HandleSuccess(h.logger, c, map[string]string{"transcript": transcript})
}

// isPlayableMedia accepts audio files plus the common browser recording
// containers that sniff as video.
func isPlayableMedia(mime string) bool {
	if strings.HasPrefix(mime, "audio/") {
		return true
	}
	switch mime {
	case "video/webm", "video/mp4", "application/ogg":
		return true
	}
	return false
}
