package errors

import "fmt"

// ErrorCode is the stable numeric code returned to API clients.
type ErrorCode int32

const (
	ErrorCode_UNSPECIFIED ErrorCode = 0
	ErrorCode_HTTP_OK     ErrorCode = 200

	// General
	ErrorCode_INTERNAL          ErrorCode = 1000
	ErrorCode_INVALID_ARGUMENT  ErrorCode = 1001
	ErrorCode_NOT_FOUND         ErrorCode = 1002
	ErrorCode_CONFLICT          ErrorCode = 1003
	ErrorCode_UNAUTHENTICATED   ErrorCode = 1004
	ErrorCode_PERMISSION_DENIED ErrorCode = 1005
	ErrorCode_INVALID_PAYLOAD   ErrorCode = 1006
	ErrorCode_UNAVAILABLE       ErrorCode = 1007

	// Auth
	ErrorCode_AUTH_INVALID_TOKEN ErrorCode = 2001
	ErrorCode_AUTH_TOKEN_EXPIRED ErrorCode = 2002

	// Classification
	ErrorCode_TRANSCRIPT_EMPTY          ErrorCode = 3001
	ErrorCode_TRANSCRIPT_TOO_LONG       ErrorCode = 3002
	ErrorCode_CLASSIFICATION_NOT_FOUND  ErrorCode = 3003
	ErrorCode_CLASSIFICATION_UNRESOLVED ErrorCode = 3004
	ErrorCode_ALREADY_RESOLVED          ErrorCode = 3005
	ErrorCode_INVALID_MEETING_TYPE      ErrorCode = 3006
	ErrorCode_TEMPLATE_NOT_FOUND        ErrorCode = 3007

	// Extraction
	ErrorCode_EXTRACTION_FAILED  ErrorCode = 4001
	ErrorCode_EXTRACTION_TIMEOUT ErrorCode = 4002

	// Integrations
	ErrorCode_INTEGRATION_STORAGE_FAILED      ErrorCode = 5001
	ErrorCode_INTEGRATION_CACHE_FAILED        ErrorCode = 5002
	ErrorCode_INTEGRATION_EXTERNAL_API_FAILED ErrorCode = 5003
	ErrorCode_INTEGRATION_LIVEKIT_FAILED      ErrorCode = 5004
	ErrorCode_INTEGRATION_TRANSCRIPT_FAILED   ErrorCode = 5005
	ErrorCode_TRANSCRIPT_NOT_READY            ErrorCode = 5006

	// Database
	ErrorCode_DB_CONNECTION_FAILED ErrorCode = 6001
	ErrorCode_DB_QUERY_FAILED      ErrorCode = 6002
)

var errorCodeNames = map[ErrorCode]string{
	ErrorCode_UNSPECIFIED:                     "UNSPECIFIED",
	ErrorCode_HTTP_OK:                         "HTTP_OK",
	ErrorCode_INTERNAL:                        "INTERNAL",
	ErrorCode_INVALID_ARGUMENT:                "INVALID_ARGUMENT",
	ErrorCode_NOT_FOUND:                       "NOT_FOUND",
	ErrorCode_CONFLICT:                        "CONFLICT",
	ErrorCode_UNAUTHENTICATED:                 "UNAUTHENTICATED",
	ErrorCode_PERMISSION_DENIED:               "PERMISSION_DENIED",
	ErrorCode_INVALID_PAYLOAD:                 "INVALID_PAYLOAD",
	ErrorCode_UNAVAILABLE:                     "UNAVAILABLE",
	ErrorCode_AUTH_INVALID_TOKEN:              "AUTH_INVALID_TOKEN",
	ErrorCode_AUTH_TOKEN_EXPIRED:              "AUTH_TOKEN_EXPIRED",
	ErrorCode_TRANSCRIPT_EMPTY:                "TRANSCRIPT_EMPTY",
	ErrorCode_TRANSCRIPT_TOO_LONG:             "TRANSCRIPT_TOO_LONG",
	ErrorCode_CLASSIFICATION_NOT_FOUND:        "CLASSIFICATION_NOT_FOUND",
	ErrorCode_CLASSIFICATION_UNRESOLVED:       "CLASSIFICATION_UNRESOLVED",
	ErrorCode_ALREADY_RESOLVED:                "ALREADY_RESOLVED",
	ErrorCode_INVALID_MEETING_TYPE:            "INVALID_MEETING_TYPE",
	ErrorCode_TEMPLATE_NOT_FOUND:              "TEMPLATE_NOT_FOUND",
	ErrorCode_EXTRACTION_FAILED:               "EXTRACTION_FAILED",
	ErrorCode_EXTRACTION_TIMEOUT:              "EXTRACTION_TIMEOUT",
	ErrorCode_INTEGRATION_STORAGE_FAILED:      "INTEGRATION_STORAGE_FAILED",
	ErrorCode_INTEGRATION_CACHE_FAILED:        "INTEGRATION_CACHE_FAILED",
	ErrorCode_INTEGRATION_EXTERNAL_API_FAILED: "INTEGRATION_EXTERNAL_API_FAILED",
	ErrorCode_INTEGRATION_LIVEKIT_FAILED:      "INTEGRATION_LIVEKIT_FAILED",
	ErrorCode_INTEGRATION_TRANSCRIPT_FAILED:   "INTEGRATION_TRANSCRIPT_FAILED",
	ErrorCode_TRANSCRIPT_NOT_READY:            "TRANSCRIPT_NOT_READY",
	ErrorCode_DB_CONNECTION_FAILED:            "DB_CONNECTION_FAILED",
	ErrorCode_DB_QUERY_FAILED:                 "DB_QUERY_FAILED",
}

// String returns the symbolic name of the code.
func (c ErrorCode) String() string {
	if name, ok := errorCodeNames[c]; ok {
		return name
	}
	return fmt.Sprintf("ErrorCode(%d)", int32(c))
}
