package app

import (
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/fx"
)

func TestCreateApp(t *testing.T) {
	// Set required environment variables for test
	t.Setenv("TELEGRAM_BOT_TOKEN", "test-token-123")
	t.Setenv("ACR_HOST", "identify-eu-west-1.acrcloud.com")
	t.Setenv("ACR_ACCESS_KEY", "key")
	t.Setenv("ACR_ACCESS_SECRET", "secret")

	// Validate fx dependency graph
	require.NoError(t, fx.ValidateApp(CreateApp()))
}
