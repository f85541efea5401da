package handler

import (
	stdErrors "errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/johnquangdev/meeting-summarizer/errors"
	"github.com/johnquangdev/meeting-summarizer/internal/domain/entities"
	ucErrors "github.com/johnquangdev/meeting-summarizer/internal/usecase/errors"
	"github.com/johnquangdev/meeting-summarizer/internal/usecase/meeting"
	"github.com/johnquangdev/meeting-summarizer/pkg/ai"
)

// Response shapes
type success struct {
	Code    interface{} `json:"code,omitempty"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

type errs struct {
	Code    interface{}       `json:"code,omitempty"`
	Message string            `json:"message,omitempty"`
	Info    string            `json:"info,omitempty"`
	Details map[string]string `json:"details,omitempty"`
}

// getRequestID tries to read X-Request-ID from the request
func getRequestID(c echo.Context) string {
	if c == nil || c.Request() == nil {
		return ""
	}
	return c.Request().Header.Get(echo.HeaderXRequestID)
}

// HandleSuccess writes a standardized success response using provided logger
func HandleSuccess(logger *zap.Logger, c echo.Context, data interface{}) error {
	return handleSuccessStatus(logger, c, http.StatusOK, data)
}

// HandleCreated writes a standardized 201 response
func HandleCreated(logger *zap.Logger, c echo.Context, data interface{}) error {
	return handleSuccessStatus(logger, c, http.StatusCreated, data)
}

func handleSuccessStatus(logger *zap.Logger, c echo.Context, status int, data interface{}) error {
	resp := success{
		Code:    int(errors.ErrorCode_HTTP_OK),
		Message: "success",
		Data:    data,
	}

	if logger != nil {
		logger.Info("http.response.success",
			zap.String("request_id", getRequestID(c)),
			zap.String("path", c.Path()),
			zap.Int("status", status),
		)
	}

	return c.JSON(status, resp)
}

// HandleError centralizes error handling and logging using provided logger.
// Usecase errors are translated to AppError first.
func HandleError(logger *zap.Logger, c echo.Context, err error) error {
	reqID := getRequestID(c)

	var appErr errors.AppError
	if !stdErrors.As(err, &appErr) {
		appErr = toAppError(c, err)
	}

	if logger != nil {
		fields := []zap.Field{
			zap.String("request_id", reqID),
			zap.String("path", c.Path()),
			zap.Stringer("app_code", appErr.Code),
			zap.Error(err),
		}
		if appErr.HTTPCode >= http.StatusInternalServerError {
			logger.Error("http.response.error", fields...)
		} else {
			logger.Warn("http.response.error", fields...)
		}
	}

	info := ""
	if appErr.Raw != nil {
		info = appErr.Raw.Error()
	}

	body := errs{
		Code:    appErr.Code,
		Message: appErr.Message,
		Info:    info,
		Details: appErr.Details,
	}

	return c.JSON(appErr.HTTPCode, body)
}

// toAppError maps usecase sentinels to HTTP-facing errors
func toAppError(c echo.Context, err error) errors.AppError {
	id := c.Param("id")

	var extErr *ucErrors.ExtractionError
	switch {
	case stdErrors.As(err, &extErr):
		if stdErrors.Is(err, ucErrors.ErrExtractionTimeout) {
			return errors.ErrExtractionTimeout(extErr.Err).WithDetail("attempts", itoa(extErr.Attempts))
		}
		return errors.ErrExtractionFailed(extErr.Err, extErr.Retryable).WithDetail("attempts", itoa(extErr.Attempts))
	case stdErrors.Is(err, ucErrors.ErrEmptyTranscript):
		return errors.ErrTranscriptEmpty()
	case stdErrors.Is(err, ucErrors.ErrTranscriptTooLong):
		return errors.ErrTranscriptTooLong(meeting.MaxTranscriptChars)
	case stdErrors.Is(err, ucErrors.ErrClassificationNotFound):
		return errors.ErrClassificationNotFound(id)
	case stdErrors.Is(err, ucErrors.ErrNotResolved):
		return errors.ErrClassificationUnresolved(id)
	case stdErrors.Is(err, ucErrors.ErrAlreadyResolved):
		return errors.ErrAlreadyResolved(id)
	case stdErrors.Is(err, ucErrors.ErrInvalidMeetingType), stdErrors.Is(err, entities.ErrUnknownMeetingType):
		return errors.ErrInvalidMeetingType(err.Error())
	case stdErrors.Is(err, ucErrors.ErrTemplateNotFound):
		return errors.ErrTemplateNotFound(err.Error())
	case stdErrors.Is(err, ucErrors.ErrExtractorMissing):
		return errors.ErrUnavailable("Content extraction")
	case stdErrors.Is(err, ucErrors.ErrTranscriptSource):
		return errors.ErrUnavailable("AssemblyAI")
	case stdErrors.Is(err, ai.ErrTranscriptNotReady):
		return errors.ErrTranscriptNotReady(c.Param("transcript_id"), err)
	case stdErrors.Is(err, ucErrors.ErrTranscriptFetch):
		return errors.ErrTranscriptFetchFailed(c.Param("transcript_id"), err)
	}
	return errors.ErrInternal(err)
}
