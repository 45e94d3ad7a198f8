// Package logging builds the zap logger the runtime and cmd/ tools share.
// Every component takes a *zap.SugaredLogger and treats nil as "build a
// no-op one."
package logging

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/llxrt/llxrt/config"
)

// New builds a *zap.SugaredLogger at the level named by cfg.LogLevel,
// falling back to a no-op logger if the level name doesn't parse or is
// empty.
func New(cfg config.Config) *zap.SugaredLogger {
	if cfg.LogLevel == "" {
		return zap.NewNop().Sugar()
	}

	var level zapcore.Level
	if err := level.UnmarshalText([]byte(cfg.LogLevel)); err != nil {
		return zap.NewNop().Sugar()
	}

	zapCfg := zap.NewProductionConfig()
	zapCfg.Level = zap.NewAtomicLevelAt(level)
	zapCfg.Encoding = "console"
	zapCfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	logger, err := zapCfg.Build()
	if err != nil {
		return zap.NewNop().Sugar()
	}
	return logger.Sugar()
}
