package errors

import stderrors "errors"

// ErrorCode identifies an application error condition independent of transport
type ErrorCode string

// String returns the code as a string
func (c ErrorCode) String() string {
	return string(c)
}

const (
	ErrorCode_INTERNAL                 ErrorCode = "INTERNAL"
	ErrorCode_INVALID_ARGUMENT         ErrorCode = "INVALID_ARGUMENT"
	ErrorCode_NOT_FOUND                ErrorCode = "NOT_FOUND"
	ErrorCode_UNAUTHENTICATED          ErrorCode = "UNAUTHENTICATED"
	ErrorCode_FORBIDDEN                ErrorCode = "FORBIDDEN"
	ErrorCode_INVALID_PAYLOAD          ErrorCode = "INVALID_PAYLOAD"
	ErrorCode_AUTH_INVALID_TOKEN       ErrorCode = "AUTH_INVALID_TOKEN"
	ErrorCode_AUTH_TOKEN_EXPIRED       ErrorCode = "AUTH_TOKEN_EXPIRED"
	ErrorCode_AUTH_INVALID_CREDENTIALS ErrorCode = "AUTH_INVALID_CREDENTIALS"

	ErrorCode_CANDIDATE_NOT_FOUND ErrorCode = "CANDIDATE_NOT_FOUND"
	ErrorCode_SUMMARY_EXISTS      ErrorCode = "SUMMARY_EXISTS"
	ErrorCode_RECORD_STORE_FAILED ErrorCode = "RECORD_STORE_FAILED"
	ErrorCode_INVALID_STAGE       ErrorCode = "INVALID_STAGE"

	ErrorCode_ENGINE_LOAD_FAILED        ErrorCode = "ENGINE_LOAD_FAILED"
	ErrorCode_DURATION_DETECTION_FAILED ErrorCode = "DURATION_DETECTION_FAILED"
	ErrorCode_SEGMENT_INTEGRITY         ErrorCode = "SEGMENT_INTEGRITY"
	ErrorCode_TRANSCRIPTION_FAILED      ErrorCode = "TRANSCRIPTION_FAILED"
	ErrorCode_ANALYSIS_ENVELOPE         ErrorCode = "ANALYSIS_ENVELOPE"
	ErrorCode_ANALYSIS_CONTENT          ErrorCode = "ANALYSIS_CONTENT"
	ErrorCode_PERSISTENCE_FAILED        ErrorCode = "PERSISTENCE_FAILED"
	ErrorCode_RUN_IN_FLIGHT             ErrorCode = "RUN_IN_FLIGHT"
	ErrorCode_NO_RUNNING_PIPELINE       ErrorCode = "NO_RUNNING_PIPELINE"
	ErrorCode_NO_CACHED_TRANSCRIPT      ErrorCode = "NO_CACHED_TRANSCRIPT"
	ErrorCode_SHARE_LINK_INVALID        ErrorCode = "SHARE_LINK_INVALID"
	ErrorCode_PROCESSING_FAILED         ErrorCode = "PROCESSING_FAILED"
)

// CodeOf extracts the ErrorCode from an error chain; ErrorCode_INTERNAL when absent
func CodeOf(err error) ErrorCode {
	var appErr AppError
	if stderrors.As(err, &appErr) {
		return appErr.Code
	}
	return ErrorCode_INTERNAL
}

// IsCode reports whether err carries the given application error code
func IsCode(err error, code ErrorCode) bool {
	return CodeOf(err) == code
}
