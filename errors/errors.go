package errors

import (
	"fmt"
	"net/http"
	"strconv"
	"time"
)

// AppError is the error type returned across the HTTP boundary
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

// Unwrap exposes the underlying cause to errors.Is / errors.As
func (e AppError) Unwrap() error {
	return e.Raw
}

// WithDetail adds a detail to the error
func (e AppError) WithDetail(key, value string) AppError {
	details := make(map[string]string, len(e.Details)+1)
	for k, v := range e.Details {
		details[k] = v
	}
	details[key] = value
	e.Details = details
	return e
}

// General Errors
func ErrInternal(err error) AppError {
	return AppError{
		Raw:       err,
		HTTPCode:  http.StatusInternalServerError,
		Code:      ErrorCode_INTERNAL,
		Message:   "Internal server error",
		Timestamp: time.Now(),
	}
}

func ErrInvalidArgument(message string) AppError {
	return AppError{
		HTTPCode:  http.StatusBadRequest,
		Code:      ErrorCode_INVALID_ARGUMENT,
		Message:   message,
		Timestamp: time.Now(),
	}
}

// ErrUnavailable is returned when an optional integration is not configured
func ErrUnavailable(feature string) AppError {
	return AppError{
		HTTPCode:  http.StatusServiceUnavailable,
		Code:      ErrorCode_UNAVAILABLE,
		Message:   fmt.Sprintf("%s is not configured", feature),
		Timestamp: time.Now(),
	}
}

func ErrInvalidPayload() AppError {
	return AppError{
		HTTPCode:  http.StatusBadRequest,
		Code:      ErrorCode_INVALID_PAYLOAD,
		Message:   "Invalid payload",
		Timestamp: time.Now(),
	}
}

// Classification Errors
func ErrTranscriptEmpty() AppError {
	return AppError{
		HTTPCode:  http.StatusBadRequest,
		Code:      ErrorCode_TRANSCRIPT_EMPTY,
		Message:   "Transcript is empty",
		Timestamp: time.Now(),
	}
}

func ErrTranscriptTooLong(maxChars int) AppError {
	return AppError{
		HTTPCode:  http.StatusBadRequest,
		Code:      ErrorCode_TRANSCRIPT_TOO_LONG,
		Message:   "Transcript exceeds the maximum length",
		Timestamp: time.Now(),
	}.WithDetail("max_chars", strconv.Itoa(maxChars))
}

func ErrClassificationNotFound(id string) AppError {
	return AppError{
		HTTPCode:  http.StatusNotFound,
		Code:      ErrorCode_CLASSIFICATION_NOT_FOUND,
		Message:   "Classification not found",
		Timestamp: time.Now(),
	}.WithDetail("classification_id", id)
}

// ErrClassificationUnresolved is returned when a template is requested before the
// meeting type was accepted or corrected.
func ErrClassificationUnresolved(id string) AppError {
	return AppError{
		HTTPCode:  http.StatusConflict,
		Code:      ErrorCode_CLASSIFICATION_UNRESOLVED,
		Message:   "Meeting type must be confirmed before extraction",
		Timestamp: time.Now(),
	}.WithDetail("classification_id", id)
}

func ErrAlreadyResolved(id string) AppError {
	return AppError{
		HTTPCode:  http.StatusConflict,
		Code:      ErrorCode_ALREADY_RESOLVED,
		Message:   "Meeting type is already resolved",
		Timestamp: time.Now(),
	}.WithDetail("classification_id", id)
}

func ErrInvalidMeetingType(value string) AppError {
	return AppError{
		HTTPCode:  http.StatusBadRequest,
		Code:      ErrorCode_INVALID_MEETING_TYPE,
		Message:   "Unknown meeting type",
		Timestamp: time.Now(),
	}.WithDetail("meeting_type", value)
}

func ErrTemplateNotFound(meetingType string) AppError {
	return AppError{
		HTTPCode:  http.StatusInternalServerError,
		Code:      ErrorCode_TEMPLATE_NOT_FOUND,
		Message:   "No template registered for meeting type",
		Timestamp: time.Now(),
	}.WithDetail("meeting_type", meetingType)
}

// Extraction Errors
func ErrExtractionFailed(err error, retryable bool) AppError {
	return AppError{
		Raw:       err,
		HTTPCode:  http.StatusBadGateway,
		Code:      ErrorCode_EXTRACTION_FAILED,
		Message:   "Content extraction failed",
		Timestamp: time.Now(),
	}.WithDetail("retryable", strconv.FormatBool(retryable))
}

func ErrExtractionTimeout(err error) AppError {
	return AppError{
		Raw:       err,
		HTTPCode:  http.StatusBadGateway,
		Code:      ErrorCode_EXTRACTION_TIMEOUT,
		Message:   "Content extraction timed out",
		Timestamp: time.Now(),
	}.WithDetail("retryable", "true")
}

// Integration Errors
func ErrCacheFailed(operation string, err error) AppError {
	return AppError{
		Raw:       err,
		HTTPCode:  http.StatusInternalServerError,
		Code:      ErrorCode_INTEGRATION_CACHE_FAILED,
		Message:   fmt.Sprintf("Cache operation failed: %s", operation),
		Timestamp: time.Now(),
	}
}

func ErrTranscriptFetchFailed(transcriptID string, err error) AppError {
	return AppError{
		Raw:       err,
		HTTPCode:  http.StatusBadGateway,
		Code:      ErrorCode_INTEGRATION_TRANSCRIPT_FAILED,
		Message:   "Failed to fetch transcript",
		Timestamp: time.Now(),
	}.WithDetail("transcript_id", transcriptID)
}

func ErrTranscriptNotReady(transcriptID string, err error) AppError {
	return AppError{
		Raw:       err,
		HTTPCode:  http.StatusConflict,
		Code:      ErrorCode_TRANSCRIPT_NOT_READY,
		Message:   "Transcript is not completed yet",
		Timestamp: time.Now(),
	}.WithDetail("transcript_id", transcriptID)
}
