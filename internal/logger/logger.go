package logger

import (
	"context"
	"fmt"
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const (
	envKey   = "APP_ENV"
	levelKey = "LOG_LEVEL"
)

// New builds the development config when APP_ENV=dev and production JSON
// otherwise. LOG_LEVEL overrides the level of either.
func New() *zap.SugaredLogger {
	cfg := zap.NewProductionConfig()
	if strings.ToLower(os.Getenv(envKey)) == "dev" {
		cfg = zap.NewDevelopmentConfig()
	} else {
		cfg.InitialFields = map[string]interface{}{envKey: os.Getenv(envKey)}
	}

	if raw := os.Getenv(levelKey); raw != "" {
		var level zapcore.Level
		if err := level.UnmarshalText([]byte(raw)); err != nil {
			panic(fmt.Errorf("failed to parse %s: %w", levelKey, err))
		}
		cfg.Level = zap.NewAtomicLevelAt(level)
	}

	logger, err := cfg.Build(zap.AddStacktrace(zap.ErrorLevel))
	if err != nil {
		panic(fmt.Errorf("failed to initialize logger: %w", err))
	}

	return logger.Sugar()
}

type contextKey struct{}

func WithLogger(ctx context.Context, log *zap.SugaredLogger) context.Context {
	return context.WithValue(ctx, contextKey{}, log)
}

// FromContext falls back to the global logger when ctx carries none
func FromContext(ctx context.Context) *zap.SugaredLogger {
	if ctx != nil {
		if log, ok := ctx.Value(contextKey{}).(*zap.SugaredLogger); ok {
			return log
		}
	}
	return zap.S()
}

func init() {
	logger := New()
	zap.ReplaceGlobals(logger.Desugar())
}
