package logger

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestFromContext(t *testing.T) {
	t.Run("returns attached logger", func(t *testing.T) {
		log := zap.NewNop().Sugar()
		ctx := WithLogger(context.Background(), log)
		require.Same(t, log, FromContext(ctx))
	})

	t.Run("falls back to global", func(t *testing.T) {
		require.NotNil(t, FromContext(context.Background()))
	})
}

func TestNew(t *testing.T) {
	t.Run("level override", func(t *testing.T) {
		t.Setenv(levelKey, "warn")
		log := New()
		require.False(t, log.Desugar().Core().Enabled(zap.InfoLevel))
		require.True(t, log.Desugar().Core().Enabled(zap.WarnLevel))
	})

	t.Run("dev defaults to debug", func(t *testing.T) {
		t.Setenv(envKey, "dev")
		t.Setenv(levelKey, "")
		require.True(t, New().Desugar().Core().Enabled(zap.DebugLevel))
	})
}
