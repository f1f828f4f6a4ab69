package errors

import (
	"fmt"
	"net/http"
	"time"
)

// AppError is the custom error type for the application
type AppError struct {
	Raw       error
	HTTPCode  int
	Code      ErrorCode
	Message   string
	Details   map[string]string
	Timestamp time.Time
}

// Error implements error interface
func (e AppError) Error() string {
	if e.Raw != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code.String(), e.Message, e.Raw)
	}
	return fmt.Sprintf("[%s] %s", e.Code.String(), e.Message)
}

// Unwrap exposes the wrapped error for errors.Is / errors.As
func (e AppError) Unwrap() error {
	return e.Raw
}

// WithDetail adds a detail to the error
func (e AppError) WithDetail(key, value string) AppError {
	if e.Details == nil {
		e.Details = make(map[string]string)
	}
	e.Details[key] = value
	return e
}

// General Errors
func ErrInternal(err error) AppError {
	return AppError{
		Raw:      err,
		HTTPCode: http.StatusInternalServerError,
		Code:     ErrorCode_INTERNAL,
		Message:  "Internal server error",
	}
}

func ErrInvalidArgument(message string) AppError {
	return AppError{
		HTTPCode: http.StatusBadRequest,
		Code:     ErrorCode_INVALID_ARGUMENT,
		Message:  message,
	}
}

func ErrNotFound(resource string) AppError {
	return AppError{
		HTTPCode: http.StatusNotFound,
		Code:     ErrorCode_NOT_FOUND,
		Message:  fmt.Sprintf("%s not found", resource),
	}
}

func ErrUnauthenticated() AppError {
	return AppError{
		HTTPCode: http.StatusUnauthorized,
		Code:     ErrorCode_UNAUTHENTICATED,
		Message:  "Authentication required",
	}
}

func ErrForbidden(message string) AppError {
	return AppError{
		HTTPCode: http.StatusForbidden,
		Code:     ErrorCode_FORBIDDEN,
		Message:  message,
	}
}

func ErrInvalidPayload() AppError {
	return AppError{
		HTTPCode: http.StatusBadRequest,
		Code:     ErrorCode_INVALID_PAYLOAD,
		Message:  "Invalid payload",
	}
}

// Authentication Errors
func ErrInvalidToken() AppError {
	return AppError{
		HTTPCode: http.StatusUnauthorized,
		Code:     ErrorCode_AUTH_INVALID_TOKEN,
		Message:  "Invalid authentication token",
	}
}

func ErrTokenExpired() AppError {
	return AppError{
		HTTPCode: http.StatusUnauthorized,
		Code:     ErrorCode_AUTH_TOKEN_EXPIRED,
		Message:  "Authentication token has expired",
	}
}

func ErrInvalidCredentials() AppError {
	return AppError{
		HTTPCode: http.StatusUnauthorized,
		Code:     ErrorCode_AUTH_INVALID_CREDENTIALS,
		Message:  "Invalid username or password",
	}
}

// Candidate / record store errors
func ErrCandidateNotFound(candidateID string) AppError {
	return AppError{
		HTTPCode: http.StatusNotFound,
		Code:     ErrorCode_CANDIDATE_NOT_FOUND,
		Message:  "Candidate not found",
	}.WithDetail("candidate_id", candidateID)
}

func ErrSummaryExists(candidateID string) AppError {
	return AppError{
		HTTPCode: http.StatusConflict,
		Code:     ErrorCode_SUMMARY_EXISTS,
		Message:  "Interview summary already exists. Use PUT method to update.",
	}.WithDetail("candidate_id", candidateID)
}

func ErrRecordStoreFailed(operation string, err error) AppError {
	return AppError{
		Raw:      err,
		HTTPCode: http.StatusBadGateway,
		Code:     ErrorCode_RECORD_STORE_FAILED,
		Message:  fmt.Sprintf("Record store operation failed: %s", operation),
	}
}

func ErrInvalidStage(stage string) AppError {
	return AppError{
		HTTPCode: http.StatusBadRequest,
		Code:     ErrorCode_INVALID_STAGE,
		Message:  "Invalid kanban stage",
	}.WithDetail("stage", stage)
}

// Interview pipeline errors
func ErrEngineLoadFailed(err error) AppError {
	return AppError{
		Raw:      err,
		HTTPCode: http.StatusInternalServerError,
		Code:     ErrorCode_ENGINE_LOAD_FAILED,
		Message:  "Failed to load audio transcoding engine",
	}
}

func ErrDurationDetectionFailed() AppError {
	return AppError{
		HTTPCode: http.StatusUnprocessableEntity,
		Code:     ErrorCode_DURATION_DETECTION_FAILED,
		Message:  "Could not detect audio duration. The file may be corrupted or in an unsupported format.",
	}
}

func ErrSegmentIntegrity(index int) AppError {
	return AppError{
		HTTPCode: http.StatusInternalServerError,
		Code:     ErrorCode_SEGMENT_INTEGRITY,
		Message:  fmt.Sprintf("Chunk %d is empty. This may be due to an audio engine processing error.", index),
	}.WithDetail("chunk_index", fmt.Sprintf("%d", index))
}

func ErrTranscriptionFailed(err error) AppError {
	return AppError{
		Raw:      err,
		HTTPCode: http.StatusBadGateway,
		Code:     ErrorCode_TRANSCRIPTION_FAILED,
		Message:  "Audio transcription failed",
	}
}

func ErrAnalysisEnvelope(err error) AppError {
	return AppError{
		Raw:      err,
		HTTPCode: http.StatusBadGateway,
		Code:     ErrorCode_ANALYSIS_ENVELOPE,
		Message:  "Completion service request failed",
	}
}

func ErrAnalysisContent(err error) AppError {
	return AppError{
		Raw:      err,
		HTTPCode: http.StatusBadGateway,
		Code:     ErrorCode_ANALYSIS_CONTENT,
		Message:  "Invalid JSON in analysis response",
	}
}

func ErrPersistenceFailed(err error) AppError {
	return AppError{
		Raw:      err,
		HTTPCode: http.StatusBadGateway,
		Code:     ErrorCode_PERSISTENCE_FAILED,
		Message:  "Analysis complete but failed to save to the record store",
	}
}

func ErrRunInFlight(candidateID string) AppError {
	return AppError{
		HTTPCode: http.StatusConflict,
		Code:     ErrorCode_RUN_IN_FLIGHT,
		Message:  "Interview processing already in progress for this candidate",
	}.WithDetail("candidate_id", candidateID)
}

func ErrNoRunningPipeline(candidateID string) AppError {
	return AppError{
		HTTPCode: http.StatusNotFound,
		Code:     ErrorCode_NO_RUNNING_PIPELINE,
		Message:  "No interview processing run for this candidate",
	}.WithDetail("candidate_id", candidateID)
}

func ErrNoCachedTranscript(candidateID string) AppError {
	return AppError{
		HTTPCode: http.StatusNotFound,
		Code:     ErrorCode_NO_CACHED_TRANSCRIPT,
		Message:  "No cached transcript for this candidate; re-upload the interview audio",
	}.WithDetail("candidate_id", candidateID)
}

// Share link errors
func ErrShareLinkInvalid() AppError {
	return AppError{
		HTTPCode: http.StatusNotFound,
		Code:     ErrorCode_SHARE_LINK_INVALID,
		Message:  "Share link is invalid or has expired",
	}
}

func ErrProcessingFailed(err error) AppError {
	return AppError{
		Raw:      err,
		HTTPCode: http.StatusInternalServerError,
		Code:     ErrorCode_PROCESSING_FAILED,
		Message:  "Processing failed",
	}
}
