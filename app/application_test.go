package app

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewApplication(t *testing.T) {
	t.Run("initializes with valid configuration", func(t *testing.T) {
		t.Setenv("OWM_API_KEY", "test-api-key")

		application, err := NewApplication()

		require.NoError(t, err)
		require.NotNil(t, application)
		assert.NotNil(t, application.Config())
		assert.Equal(t, "test-api-key", application.Config().Weather.APIKey)
		assert.Equal(t, 8080, application.Config().Server.Port)
	})

	t.Run("fails without an API key", func(t *testing.T) {
		t.Setenv("OWM_API_KEY", "")

		application, err := NewApplication()

		require.Error(t, err)
		assert.Nil(t, application)
	})
}

func TestApplicationShutdown(t *testing.T) {
	t.Setenv("OWM_API_KEY", "test-api-key")

	application, err := NewApplication()
	require.NoError(t, err)

	assert.NoError(t, application.Shutdown())
}
