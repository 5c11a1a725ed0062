package app

import (
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/fx"
)

func TestCreateApp(t *testing.T) {
	t.Setenv("TELEGRAM_BOT_TOKEN", "123:test-token")
	t.Setenv("ADMIN_IDS", "1000")

	// Validate fx dependency graph
	require.NoError(t, fx.ValidateApp(CreateApp()))
}
