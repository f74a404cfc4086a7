package internal

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestParseLogLevel(t *testing.T) {
	tests := map[string]LogLevel{
		"ERROR":   LogLevelError,
		"warn":    LogLevelWarn,
		" Info ":  LogLevelInfo,
		"DEBUG":   LogLevelDebug,
		"trace":   LogLevelTrace,
		"":        LogLevelInfo,
		"verbose": LogLevelInfo,
	}

	for input, want := range tests {
		assert.Equal(t, want, ParseLogLevel(input), "input %q", input)
	}
}

func TestLoggerFiltersByLevel(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	logger := NewLoggerFromZap(zap.New(core), LogLevelWarn)

	logger.Error("bad %d", 1)
	logger.Warn("careful %s", "now")
	logger.Info("hidden")
	logger.Debug("hidden")
	logger.Trace("hidden")

	entries := logs.All()
	if assert.Len(t, entries, 2) {
		assert.Equal(t, "bad 1", entries[0].Message)
		assert.Equal(t, zapcore.WarnLevel, entries[1].Level)
		assert.Equal(t, "careful now", entries[1].Message)
	}
}

func TestLoggerTraceAndContext(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	logger := NewLoggerFromZap(zap.New(core), LogLevelTrace).With("component", "test")

	logger.Trace("step %d", 3)

	entries := logs.All()
	if assert.Len(t, entries, 1) {
		assert.Equal(t, "step 3", entries[0].Message)
		fields := entries[0].ContextMap()
		assert.Equal(t, true, fields["trace"])
		assert.Equal(t, "test", fields["component"])
	}
	assert.Equal(t, LogLevelTrace, logger.GetLevel())
}
