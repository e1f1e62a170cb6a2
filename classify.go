package wortlex

import (
	"context"
	"errors"
	"net/http"
)

// statusCodes maps provider HTTP statuses to error codes. Anything else is CodeUnknown.
var statusCodes = map[int]ErrorCode{
	http.StatusUnauthorized:          CodeKeyInvalid,
	http.StatusPaymentRequired:       CodeKeyBlocked,
	http.StatusForbidden:             CodeDailyLimitExceeded,
	http.StatusRequestEntityTooLarge: CodeTextTooLong,
	http.StatusNotImplemented:        CodeLangNotSupported,
}

var codeMessages = map[ErrorCode]string{
	CodeKeyInvalid:         "invalid API key",
	CodeKeyBlocked:         "API key is blocked",
	CodeDailyLimitExceeded: "daily request limit exceeded",
	CodeTextTooLong:        "text is too long",
	CodeLangNotSupported:   "language pair is not supported",
}

// ClassifyStatus maps an HTTP status returned by the provider to a ProviderError.
// Known statuses keep their status; everything else becomes CodeUnknown with
// status 500 and message passed through.
func ClassifyStatus(status int, message string) *ProviderError {
	code, ok := statusCodes[status]
	if !ok {
		if message == "" {
			message = http.StatusText(status)
		}
		return &ProviderError{
			Code:    CodeUnknown,
			Status:  http.StatusInternalServerError,
			Message: message,
		}
	}
	if message == "" {
		message = codeMessages[code]
	}
	return &ProviderError{
		Code:    code,
		Status:  status,
		Message: message,
	}
}

// ErrorPayload is the structured {code, message} form of a failure.
type ErrorPayload struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
	Status  int       `json:"status"`
}

// ToPayload renders err into an ErrorPayload.
func ToPayload(err error) ErrorPayload {
	var (
		validationErr *ValidationError
		timeoutErr    *TimeoutError
		providerErr   *ProviderError
		configErr     *ConfigurationError
	)

	switch {
	case errors.As(err, &validationErr):
		return ErrorPayload{Code: CodeValidation, Message: validationErr.Error(), Status: http.StatusBadRequest}
	case errors.As(err, &timeoutErr):
		return ErrorPayload{Code: CodeTimeout, Message: timeoutErr.Error(), Status: http.StatusGatewayTimeout}
	case errors.As(err, &providerErr):
		return ErrorPayload{Code: providerErr.Code, Message: providerErr.Message, Status: providerErr.Status}
	case errors.As(err, &configErr):
		return ErrorPayload{Code: CodeConfiguration, Message: configErr.Error(), Status: http.StatusInternalServerError}
	case errors.Is(err, context.Canceled):
		return ErrorPayload{Code: CodeUnknown, Message: "request cancelled", Status: http.StatusInternalServerError}
	default:
		return ErrorPayload{Code: CodeUnknown, Message: err.Error(), Status: http.StatusInternalServerError}
	}
}

// IsTimeout reports whether err is a TimeoutError.
func IsTimeout(err error) bool {
	var timeoutErr *TimeoutError
	return errors.As(err, &timeoutErr)
}
