package internal

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestParseLogLevel(t *testing.T) {
	assert.Equal(t, LogLevelError, ParseLogLevel("ERROR"))
	assert.Equal(t, LogLevelWarn, ParseLogLevel("warn"))
	assert.Equal(t, LogLevelDebug, ParseLogLevel(" DEBUG "))
	assert.Equal(t, LogLevelTrace, ParseLogLevel("TRACE"))
	assert.Equal(t, LogLevelInfo, ParseLogLevel(""))
	assert.Equal(t, LogLevelInfo, ParseLogLevel("verbose"))
	assert.Equal(t, "TRACE", LogLevelTrace.String())
}

func TestLogger_RespectsLevel(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	logger := NewZapLogger(LogLevelInfo, zap.New(core))

	logger.Debug("dropped %d", 1)
	logger.Info("kept %d", 2)
	logger.Warn("kept %d", 3)
	logger.Trace("dropped")

	entries := logs.All()
	if assert.Len(t, entries, 2) {
		assert.Equal(t, "kept 2", entries[0].Message)
		assert.Equal(t, zapcore.InfoLevel, entries[0].Level)
		assert.Equal(t, zapcore.WarnLevel, entries[1].Level)
	}
}

func TestLogger_TraceAndWith(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	logger := NewZapLogger(LogLevelTrace, zap.New(core)).With("batch", "b-1")

	logger.Trace("row %d", 7)

	entries := logs.All()
	if assert.Len(t, entries, 1) {
		assert.Equal(t, "row 7", entries[0].Message)
		fields := entries[0].ContextMap()
		assert.Equal(t, "b-1", fields["batch"])
		assert.Equal(t, true, fields["trace"])
	}
}

func TestNopLogger(t *testing.T) {
	logger := NewNopLogger()
	logger.Error("nothing happens")
	assert.Equal(t, LogLevelError, logger.GetLevel())
}
