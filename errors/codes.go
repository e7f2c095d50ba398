package errors

// ErrorCode represents a machine-readable error code.
type ErrorCode string

// Transcription provider errors (retryable)
const (
	// ErrCodeProviderUnavailable indicates the speech backend is unreachable.
	ErrCodeProviderUnavailable ErrorCode = "PROVIDER_UNAVAILABLE"
	// ErrCodeProviderTimeout indicates the speech backend took too long.
	ErrCodeProviderTimeout ErrorCode = "PROVIDER_TIMEOUT"
	// ErrCodeProviderResponse indicates the speech backend returned a bad payload.
	ErrCodeProviderResponse ErrorCode = "PROVIDER_BAD_RESPONSE"
)

// Agent errors
const (
	// ErrCodeAgentUnavailable indicates a specialist processor failed to load.
	ErrCodeAgentUnavailable ErrorCode = "AGENT_UNAVAILABLE"
	// ErrCodeAgentRuntime indicates a specialist processor failed during execution.
	ErrCodeAgentRuntime ErrorCode = "AGENT_RUNTIME_ERROR"
	// ErrCodeAgentTimeout indicates a specialist processor exceeded its deadline.
	ErrCodeAgentTimeout ErrorCode = "AGENT_TIMEOUT"
)

// Resource errors
const (
	// ErrCodeSessionNotFound indicates a session id is unknown or expired.
	ErrCodeSessionNotFound ErrorCode = "SESSION_NOT_FOUND"
	// ErrCodeNotFound indicates the requested resource was not found.
	ErrCodeNotFound ErrorCode = "NOT_FOUND"
	// ErrCodeAlreadyExists indicates the resource already exists.
	ErrCodeAlreadyExists ErrorCode = "ALREADY_EXISTS"
)

// Validation errors
const (
	// ErrCodeInvalidInput indicates the input is invalid.
	ErrCodeInvalidInput ErrorCode = "INVALID_INPUT"
	// ErrCodeMissingField indicates a required field is missing.
	ErrCodeMissingField ErrorCode = "MISSING_FIELD"
)

// Authentication errors
const (
	// ErrCodeUnauthorized indicates the request is unauthorized.
	ErrCodeUnauthorized ErrorCode = "UNAUTHORIZED"
	// ErrCodeInvalidToken indicates the authentication token is invalid.
	ErrCodeInvalidToken ErrorCode = "INVALID_TOKEN"
)

// Internal errors
const (
	// ErrCodeInternal indicates an internal server error.
	ErrCodeInternal ErrorCode = "INTERNAL_ERROR"
	// ErrCodeStoreError indicates a session-store error.
	ErrCodeStoreError ErrorCode = "STORE_ERROR"
)

var retryableCodes = map[ErrorCode]bool{
	ErrCodeProviderUnavailable: true,
	ErrCodeProviderTimeout:     true,
	ErrCodeAgentTimeout:        true,
	ErrCodeStoreError:          true,
}

// IsRetryableCode returns true if the error code indicates a retryable error.
func IsRetryableCode(code ErrorCode) bool {
	return retryableCodes[code]
}
