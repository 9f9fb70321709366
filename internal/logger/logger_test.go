package logger

import (
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"

	"github.com/aliskhannn/etymo-roots/internal/config"
)

func TestNew(t *testing.T) {
	prod, err := New(&config.Config{Env: "production"})
	require.NoError(t, err)
	require.False(t, prod.Core().Enabled(zapcore.DebugLevel))

	dev, err := New(&config.Config{Env: "local"})
	require.NoError(t, err)
	require.True(t, dev.Core().Enabled(zapcore.DebugLevel))
}
