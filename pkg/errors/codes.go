package errors

import "net/http"

// ErrorCode is a string identifier for a specific error condition.
type ErrorCode string

func (c ErrorCode) String() string {
	return string(c)
}

// Common error codes.
const (
	CodeOK           ErrorCode = "OK"
	CodeUnknown      ErrorCode = "COMMON_000"
	CodeInternal     ErrorCode = "COMMON_001"
	CodeInvalidParam ErrorCode = "COMMON_002"
	CodeUnauthorized ErrorCode = "COMMON_003"
	CodeNotFound     ErrorCode = "COMMON_004"
	CodeTimeout      ErrorCode = "COMMON_005"
)

// Document error codes.
const (
	// CodeDocumentUnavailable marks a document model that could not be
	// constructed. It is the only fatal code in the resolution pipeline:
	// the engine refuses to partially resolve against a malformed document.
	CodeDocumentUnavailable ErrorCode = "DOC_001"
	CodeDocumentEmpty       ErrorCode = "DOC_002"
)

// Resolution error codes.
const (
	CodeAttributeNotFound ErrorCode = "RES_001"
	CodeNoAttributes      ErrorCode = "RES_002"
)

// LLM fallback error codes. All of these are caught at the fallback
// resolver boundary and degrade to inline error values; they never abort
// resolution of sibling attributes.
const (
	CodeFallbackError   ErrorCode = "LLM_001"
	CodeLLMUnauthorized ErrorCode = "LLM_002"
	CodeLLMTimeout      ErrorCode = "LLM_003"
	CodeLLMBadResponse  ErrorCode = "LLM_004"
)

// HTTPStatus maps an ErrorCode to the HTTP status code the API layer should
// respond with. Unknown codes map to 500.
func (c ErrorCode) HTTPStatus() int {
	switch c {
	case CodeOK:
		return http.StatusOK
	case CodeInvalidParam, CodeDocumentUnavailable, CodeDocumentEmpty, CodeNoAttributes:
		return http.StatusBadRequest
	case CodeUnauthorized, CodeLLMUnauthorized:
		return http.StatusUnauthorized
	case CodeNotFound, CodeAttributeNotFound:
		return http.StatusNotFound
	case CodeTimeout, CodeLLMTimeout:
		return http.StatusGatewayTimeout
	case CodeFallbackError, CodeLLMBadResponse:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
