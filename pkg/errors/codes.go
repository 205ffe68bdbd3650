package errors

import (
	"net/http"
	"strings"
)

// ErrorCode is a string representation of a specific error condition.
type ErrorCode string

func (c ErrorCode) String() string {
	return string(c)
}

// Common Error Codes
const (
	ErrCodeInternal           ErrorCode = "COMMON_001"
	ErrCodeBadRequest         ErrorCode = "COMMON_002"
	ErrCodeUnauthorized       ErrorCode = "COMMON_003"
	ErrCodeForbidden          ErrorCode = "COMMON_004"
	ErrCodeNotFound           ErrorCode = "COMMON_005"
	ErrCodeConflict           ErrorCode = "COMMON_006"
	ErrCodeTooManyRequests    ErrorCode = "COMMON_007"
	ErrCodeServiceUnavailable ErrorCode = "COMMON_008"
	ErrCodeTimeout            ErrorCode = "COMMON_009"
	ErrCodeValidation         ErrorCode = "COMMON_010"
	ErrCodeSerialization      ErrorCode = "COMMON_011"
	ErrCodeCacheError         ErrorCode = "COMMON_012"
	ErrCodeExternalService    ErrorCode = "COMMON_013"
	ErrCodeNotImplemented     ErrorCode = "COMMON_014"
)

// Aliases used at call sites across layers.
const (
	CodeInternal       = ErrCodeInternal
	CodeInvalidParam   = ErrCodeBadRequest
	CodeUnauthorized   = ErrCodeUnauthorized
	CodeForbidden      = ErrCodeForbidden
	CodeNotFound       = ErrCodeNotFound
	CodeConflict       = ErrCodeConflict
	CodeRateLimit      = ErrCodeTooManyRequests
	CodeNotImplemented = ErrCodeNotImplemented
	CodeOK             = ErrorCode("OK")
	CodeUnknown        = ErrorCode("UNKNOWN")
)

// Legal Query Module Error Codes
const (
	ErrCodeQueryRefused       ErrorCode = "LAW_001"
	ErrCodeNoStatutorySource  ErrorCode = "LAW_002"
	ErrCodeQueryEmpty         ErrorCode = "LAW_003"
	ErrCodeDomainUnsupported  ErrorCode = "LAW_004"
	ErrCodeCorpusLoadFailed   ErrorCode = "LAW_005"
	ErrCodeCorpusInconsistent ErrorCode = "LAW_006"
)

// Embedding / Vector Index Error Codes
const (
	ErrCodeEmbeddingFailed    ErrorCode = "EMB_001"
	ErrCodeEmbeddingDimension ErrorCode = "EMB_002"
	ErrCodeVectorIndexFailed  ErrorCode = "VEC_001"
	ErrCodeVectorIndexEmpty   ErrorCode = "VEC_002"
)

// Text Generation Error Codes
const (
	ErrCodeGenerationFailed  ErrorCode = "GEN_001"
	ErrCodeGenerationTimeout ErrorCode = "GEN_002"
	ErrCodeRewriteFailed     ErrorCode = "GEN_003"
)

// Citation Validation Error Codes
const (
	ErrCodeCitationInvalid    ErrorCode = "CIT_001"
	ErrCodeCitationOutOfScope ErrorCode = "CIT_002"
)

// Clause Vetting Module Error Codes
const (
	ErrCodeClauseIntentUnclear ErrorCode = "CLA_001"
	ErrCodeClauseRejected      ErrorCode = "CLA_002"
	ErrCodeContractEmpty       ErrorCode = "CLA_003"
)

// Session Memory Error Codes
const (
	ErrCodeSessionStoreFailed ErrorCode = "SES_001"
	ErrCodeSessionNotFound    ErrorCode = "SES_002"
)

// ErrorCodeHTTPStatus maps ErrorCodes to HTTP status codes.
var ErrorCodeHTTPStatus = map[ErrorCode]int{
	ErrCodeInternal:           http.StatusInternalServerError,
	ErrCodeBadRequest:         http.StatusBadRequest,
	ErrCodeUnauthorized:       http.StatusUnauthorized,
	ErrCodeForbidden:          http.StatusForbidden,
	ErrCodeNotFound:           http.StatusNotFound,
	ErrCodeConflict:           http.StatusConflict,
	ErrCodeTooManyRequests:    http.StatusTooManyRequests,
	ErrCodeServiceUnavailable: http.StatusServiceUnavailable,
	ErrCodeTimeout:            http.StatusGatewayTimeout,
	ErrCodeValidation:         http.StatusUnprocessableEntity,
	ErrCodeSerialization:      http.StatusInternalServerError,
	ErrCodeCacheError:         http.StatusInternalServerError,
	ErrCodeExternalService:    http.StatusInternalServerError,
	ErrCodeNotImplemented:     http.StatusNotImplemented,

	ErrCodeQueryRefused:       http.StatusOK,
	ErrCodeNoStatutorySource:  http.StatusOK,
	ErrCodeQueryEmpty:         http.StatusBadRequest,
	ErrCodeDomainUnsupported:  http.StatusBadRequest,
	ErrCodeCorpusLoadFailed:   http.StatusInternalServerError,
	ErrCodeCorpusInconsistent: http.StatusInternalServerError,

	ErrCodeEmbeddingFailed:    http.StatusBadGateway,
	ErrCodeEmbeddingDimension: http.StatusInternalServerError,
	ErrCodeVectorIndexFailed:  http.StatusInternalServerError,
	ErrCodeVectorIndexEmpty:   http.StatusServiceUnavailable,

	ErrCodeGenerationFailed:  http.StatusBadGateway,
	ErrCodeGenerationTimeout: http.StatusGatewayTimeout,
	ErrCodeRewriteFailed:     http.StatusBadGateway,

	ErrCodeCitationInvalid:    http.StatusUnprocessableEntity,
	ErrCodeCitationOutOfScope: http.StatusUnprocessableEntity,

	ErrCodeClauseIntentUnclear: http.StatusBadRequest,
	ErrCodeClauseRejected:      http.StatusOK,
	ErrCodeContractEmpty:       http.StatusBadRequest,

	ErrCodeSessionStoreFailed: http.StatusInternalServerError,
	ErrCodeSessionNotFound:    http.StatusNotFound,
}

// ErrorCodeMessage maps ErrorCodes to default messages.
var ErrorCodeMessage = map[ErrorCode]string{
	ErrCodeInternal:           "internal server error",
	ErrCodeBadRequest:         "bad request",
	ErrCodeUnauthorized:       "unauthorized",
	ErrCodeForbidden:          "forbidden",
	ErrCodeNotFound:           "resource not found",
	ErrCodeConflict:           "resource conflict",
	ErrCodeTooManyRequests:    "too many requests",
	ErrCodeServiceUnavailable: "service unavailable",
	ErrCodeTimeout:            "request timeout",
	ErrCodeValidation:         "validation failed",
	ErrCodeSerialization:      "serialization failed",
	ErrCodeCacheError:         "cache error",
	ErrCodeExternalService:    "external service error",
	ErrCodeNotImplemented:     "not implemented",

	ErrCodeQueryRefused:       "query refused by retrieval policy",
	ErrCodeNoStatutorySource:  "no statutory source found for query",
	ErrCodeQueryEmpty:         "query must not be empty",
	ErrCodeDomainUnsupported:  "legal domain not supported",
	ErrCodeCorpusLoadFailed:   "failed to load statutory corpus",
	ErrCodeCorpusInconsistent: "corpus artifacts are inconsistent",

	ErrCodeEmbeddingFailed:    "embedding request failed",
	ErrCodeEmbeddingDimension: "embedding dimension mismatch",
	ErrCodeVectorIndexFailed:  "vector index search failed",
	ErrCodeVectorIndexEmpty:   "vector index is empty",

	ErrCodeGenerationFailed:  "text generation failed",
	ErrCodeGenerationTimeout: "text generation timed out",
	ErrCodeRewriteFailed:     "query rewrite failed",

	ErrCodeCitationInvalid:    "citation failed validation",
	ErrCodeCitationOutOfScope: "citation outside allowed statutes",

	ErrCodeClauseIntentUnclear: "clause intent could not be determined",
	ErrCodeClauseRejected:      "clause rejected by validator",
	ErrCodeContractEmpty:       "contract has no clauses",

	ErrCodeSessionStoreFailed: "session store operation failed",
	ErrCodeSessionNotFound:    "session not found",
}

// HTTPStatusForCode returns the HTTP status code for an ErrorCode.
func HTTPStatusForCode(code ErrorCode) int {
	if status, ok := ErrorCodeHTTPStatus[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// DefaultMessageForCode returns the default message for an ErrorCode.
func DefaultMessageForCode(code ErrorCode) string {
	if msg, ok := ErrorCodeMessage[code]; ok {
		return msg
	}
	return "unknown error"
}

// IsClientError returns true if the ErrorCode corresponds to a 4xx HTTP status.
func IsClientError(code ErrorCode) bool {
	status := HTTPStatusForCode(code)
	return status >= 400 && status < 500
}

// IsServerError returns true if the ErrorCode corresponds to a 5xx HTTP status.
func IsServerError(code ErrorCode) bool {
	status := HTTPStatusForCode(code)
	return status >= 500 && status < 600
}

// ModuleForCode returns the module prefix of an ErrorCode.
func ModuleForCode(code ErrorCode) string {
	parts := strings.Split(string(code), "_")
	if len(parts) > 0 && parts[0] != "" {
		return parts[0]
	}
	return "UNKNOWN"
}
