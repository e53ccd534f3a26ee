package errors

import "fmt"

// Application error types organized by category for better error handling

type ErrorType int

// Domain/Business Logic Errors - errors related to input validation
const (
	ErrorTypeUnknown ErrorType = iota
	ErrorTypeValidation

	// Provider Errors - errors raised while talking to the weather provider
	ErrorTypeProviderRejected
	ErrorTypeTimeout
	ErrorTypeNetwork
	ErrorTypeMalformedResponse
	ErrorTypeExternalAPI

	// System/Configuration Errors - errors related to system setup and configuration
	ErrorTypeConfiguration
)

// String returns the string representation of error type
func (e ErrorType) String() string {
	switch e {
	case ErrorTypeValidation:
		return "VALIDATION_ERROR"
	case ErrorTypeProviderRejected:
		return "PROVIDER_REJECTED_ERROR"
	case ErrorTypeTimeout:
		return "TIMEOUT_ERROR"
	case ErrorTypeNetwork:
		return "NETWORK_ERROR"
	case ErrorTypeMalformedResponse:
		return "MALFORMED_RESPONSE_ERROR"
	case ErrorTypeExternalAPI:
		return "EXTERNAL_API_ERROR"
	case ErrorTypeConfiguration:
		return "CONFIGURATION_ERROR"
	default:
		return "UNKNOWN_ERROR"
	}
}

// Legacy constants for backward compatibility
const (
	ValidationError        = ErrorTypeValidation
	ProviderRejectedError  = ErrorTypeProviderRejected
	TimeoutError           = ErrorTypeTimeout
	NetworkError           = ErrorTypeNetwork
	MalformedResponseError = ErrorTypeMalformedResponse
	ExternalAPIError       = ErrorTypeExternalAPI
	ConfigurationError     = ErrorTypeConfiguration
)

type AppError struct {
	Type    ErrorType
	Message string
	Cause   error
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Type.String(), e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Type.String(), e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

func New(errorType ErrorType, message string) *AppError {
	return &AppError{
		Type:    errorType,
		Message: message,
	}
}

func Wrap(errorType ErrorType, message string, cause error) *AppError {
	return &AppError{
		Type:    errorType,
		Message: message,
		Cause:   cause,
	}
}

// Domain/Business Logic Error Constructors
func NewValidationError(message string) *AppError {
	return New(ValidationError, message)
}

// Provider Error Constructors

// NewProviderRejectedError is returned when the provider refused the request,
// e.g. unknown city or invalid API key. The message carries the provider's reason.
func NewProviderRejectedError(message string) *AppError {
	return New(ProviderRejectedError, message)
}

func NewTimeoutError(message string, cause error) *AppError {
	return Wrap(TimeoutError, message, cause)
}

func NewNetworkError(message string, cause error) *AppError {
	return Wrap(NetworkError, message, cause)
}

func NewMalformedResponseError(message string) *AppError {
	return New(MalformedResponseError, message)
}

func NewExternalAPIError(message string, cause error) *AppError {
	return Wrap(ExternalAPIError, message, cause)
}

// System/Configuration Error Constructors
func NewConfigurationError(message string, cause error) *AppError {
	return Wrap(ConfigurationError, message, cause)
}

// Helper functions for error type checking
func IsValidationError(err error) bool {
	if appErr, ok := err.(*AppError); ok {
		return appErr.Type == ValidationError
	}
	return false
}

func IsProviderRejectedError(err error) bool {
	if appErr, ok := err.(*AppError); ok {
		return appErr.Type == ProviderRejectedError
	}
	return false
}

func IsTimeoutError(err error) bool {
	if appErr, ok := err.(*AppError); ok {
		return appErr.Type == TimeoutError
	}
	return false
}

func IsNetworkError(err error) bool {
	if appErr, ok := err.(*AppError); ok {
		return appErr.Type == NetworkError
	}
	return false
}

func IsMalformedResponseError(err error) bool {
	if appErr, ok := err.(*AppError); ok {
		return appErr.Type == MalformedResponseError
	}
	return false
}

func IsExternalAPIError(err error) bool {
	if appErr, ok := err.(*AppError); ok {
		return appErr.Type == ExternalAPIError
	}
	return false
}

func IsConfigurationError(err error) bool {
	if appErr, ok := err.(*AppError); ok {
		return appErr.Type == ConfigurationError
	}
	return false
}
