package wortlex

import (
	"fmt"
	"time"
)

// ErrorCode is a stable identifier for a failure class, suitable for API payloads.
type ErrorCode string

const (
	CodeKeyInvalid         ErrorCode = "ERR_KEY_INVALID"
	CodeKeyBlocked         ErrorCode = "ERR_KEY_BLOCKED"
	CodeDailyLimitExceeded ErrorCode = "ERR_DAILY_REQ_LIMIT_EXCEEDED"
	CodeTextTooLong        ErrorCode = "ERR_TEXT_TOO_LONG"
	CodeLangNotSupported   ErrorCode = "ERR_LANG_NOT_SUPPORTED"
	CodeUnknown            ErrorCode = "ERR_UNKNOWN"
	CodeTimeout            ErrorCode = "ERR_TIMEOUT"
	CodeValidation         ErrorCode = "ERR_VALIDATION"
	CodeConfiguration      ErrorCode = "ERR_CONFIGURATION"
)

// ValidationError indicates a query rejected before any I/O.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("invalid query: %s", e.Message)
}

// TimeoutError indicates the remote call exceeded its time budget.
type TimeoutError struct {
	Timeout time.Duration
	Cause   error
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("request exceeded time budget of %s", e.Timeout)
}

func (e *TimeoutError) Unwrap() error {
	return e.Cause
}

// ProviderError is a classified failure reported by the dictionary provider.
type ProviderError struct {
	Code    ErrorCode
	Status  int
	Message string
	Cause   error
}

func (e *ProviderError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("provider error %s (%d): %s: %v", e.Code, e.Status, e.Message, e.Cause)
	}
	return fmt.Sprintf("provider error %s (%d): %s", e.Code, e.Status, e.Message)
}

func (e *ProviderError) Unwrap() error {
	return e.Cause
}

// NetworkError indicates a transport failure with no HTTP status.
type NetworkError struct {
	Message string
	Cause   error
}

func (e *NetworkError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("network error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("network error: %s", e.Message)
}

func (e *NetworkError) Unwrap() error {
	return e.Cause
}

// ConfigurationError indicates missing or invalid setup. It is fatal at construction.
type ConfigurationError struct {
	Field   string
	Message string
	Cause   error
}

func (e *ConfigurationError) Error() string {
	msg := e.Message
	if e.Field != "" {
		msg = e.Field + ": " + msg
	}
	if e.Cause != nil {
		return fmt.Sprintf("configuration error: %s: %v", msg, e.Cause)
	}
	return fmt.Sprintf("configuration error: %s", msg)
}

func (e *ConfigurationError) Unwrap() error {
	return e.Cause
}

// CacheError indicates a cache operation failure.
type CacheError struct {
	Message string
	Cause   error
}

func (e *CacheError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("cache error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("cache error: %s", e.Message)
}

func (e *CacheError) Unwrap() error {
	return e.Cause
}
