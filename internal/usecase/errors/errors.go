package errors

import (
	"errors"
	"fmt"
)

// Transcript errors
var (
	ErrEmptyTranscript   = errors.New("transcript is empty")
	ErrTranscriptTooLong = errors.New("transcript exceeds maximum length")
	ErrTranscriptSource  = errors.New("transcript source not configured")
	ErrTranscriptFetch   = errors.New("transcript fetch failed")
)

// Classification errors
var (
	ErrClassificationNotFound = errors.New("classification not found")
	ErrInvalidMeetingType     = errors.New("invalid meeting type")
	ErrAlreadyResolved        = errors.New("classification already resolved")
	ErrNotResolved            = errors.New("classification awaiting confirmation")
	ErrTemplateNotFound       = errors.New("template not found for meeting type")
)

// Extraction errors
var (
	ErrExtractionTimeout = errors.New("content extraction timed out")
	ErrMalformedExtract  = errors.New("content extractor returned malformed output")
	ErrExtractorMissing  = errors.New("no content extractor configured")
)

// ExtractionError is returned when the external content extractor fails. The
// classification it belongs to stays resolved and can be extracted again.
type ExtractionError struct {
	ClassificationID string
	Attempts         int
	Retryable        bool
	Err              error
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("extraction for %s failed after %d attempt(s) (retryable=%t): %v",
		e.ClassificationID, e.Attempts, e.Retryable, e.Err)
}

func (e *ExtractionError) Unwrap() error {
	return e.Err
}
