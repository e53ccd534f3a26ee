package errors

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAppError_Error(t *testing.T) {
	tests := []struct {
		name     string
		setup    func() *AppError
		expected string
	}{
		{
			name: "ErrorWithoutCause",
			setup: func() *AppError {
				return New(ValidationError, "city cannot be empty")
			},
			expected: "VALIDATION_ERROR: city cannot be empty",
		},
		{
			name: "ErrorWithCause",
			setup: func() *AppError {
				cause := fmt.Errorf("connection refused")
				return Wrap(NetworkError, "weather request failed", cause)
			},
			expected: "NETWORK_ERROR: weather request failed (caused by: connection refused)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.setup()
			assert.Equal(t, tt.expected, err.Error())
		})
	}
}

func TestAppError_Unwrap(t *testing.T) {
	cause := fmt.Errorf("original error")
	err := Wrap(ExternalAPIError, "API call failed", cause)
	assert.Equal(t, cause, err.Unwrap())

	noCause := New(ProviderRejectedError, "city not found")
	assert.Nil(t, noCause.Unwrap())
}

func TestNew(t *testing.T) {
	err := New(MalformedResponseError, "missing main section")

	assert.Equal(t, MalformedResponseError, err.Type)
	assert.Equal(t, "missing main section", err.Message)
	assert.Nil(t, err.Cause)
}

func TestWrap(t *testing.T) {
	cause := fmt.Errorf("original error")
	err := Wrap(ConfigurationError, "config validation failed", cause)

	assert.Equal(t, ConfigurationError, err.Type)
	assert.Equal(t, "config validation failed", err.Message)
	assert.Equal(t, cause, err.Cause)
}

func TestSpecificErrorConstructors(t *testing.T) {
	cause := fmt.Errorf("boom")

	tests := []struct {
		name         string
		constructor  func() *AppError
		expectedType ErrorType
		hasCause     bool
	}{
		{
			name:         "NewValidationError",
			constructor:  func() *AppError { return NewValidationError("bad input") },
			expectedType: ErrorTypeValidation,
		},
		{
			name:         "NewProviderRejectedError",
			constructor:  func() *AppError { return NewProviderRejectedError("city not found") },
			expectedType: ErrorTypeProviderRejected,
		},
		{
			name:         "NewTimeoutError",
			constructor:  func() *AppError { return NewTimeoutError("request timed out", cause) },
			expectedType: ErrorTypeTimeout,
			hasCause:     true,
		},
		{
			name:         "NewNetworkError",
			constructor:  func() *AppError { return NewNetworkError("transport failure", cause) },
			expectedType: ErrorTypeNetwork,
			hasCause:     true,
		},
		{
			name:         "NewMalformedResponseError",
			constructor:  func() *AppError { return NewMalformedResponseError("missing weather field") },
			expectedType: ErrorTypeMalformedResponse,
		},
		{
			name:         "NewExternalAPIError",
			constructor:  func() *AppError { return NewExternalAPIError("provider unavailable", cause) },
			expectedType: ErrorTypeExternalAPI,
		},
		{
			name:         "NewConfigurationError",
			constructor:  func() *AppError { return NewConfigurationError("missing API key", nil) },
			expectedType: ErrorTypeConfiguration,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.constructor()
			assert.Equal(t, tt.expectedType, err.Type)
			if tt.hasCause {
				assert.Equal(t, cause, err.Cause)
			}
		})
	}
}

func TestErrorTypeCheckers(t *testing.T) {
	assert.True(t, IsValidationError(NewValidationError("x")))
	assert.True(t, IsProviderRejectedError(NewProviderRejectedError("x")))
	assert.True(t, IsTimeoutError(NewTimeoutError("x", nil)))
	assert.True(t, IsNetworkError(NewNetworkError("x", nil)))
	assert.True(t, IsMalformedResponseError(NewMalformedResponseError("x")))
	assert.True(t, IsExternalAPIError(NewExternalAPIError("x", nil)))
	assert.True(t, IsConfigurationError(NewConfigurationError("x", nil)))

	assert.False(t, IsTimeoutError(NewNetworkError("x", nil)))
	assert.False(t, IsValidationError(fmt.Errorf("plain error")))
}

func TestErrorType_String_Unknown(t *testing.T) {
	assert.Equal(t, "UNKNOWN_ERROR", ErrorTypeUnknown.String())
}
