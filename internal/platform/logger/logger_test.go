package logger

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, zapcore.DebugLevel, ParseLevel("debug"))
	assert.Equal(t, zapcore.WarnLevel, ParseLevel(" WARNING "))
	assert.Equal(t, zapcore.ErrorLevel, ParseLevel("error"))
	assert.Equal(t, zapcore.InfoLevel, ParseLevel(""))
	assert.Equal(t, zapcore.InfoLevel, ParseLevel("verbose"))
}

func TestParseFormat(t *testing.T) {
	assert.Equal(t, FormatJSON, ParseFormat("JSON"))
	assert.Equal(t, FormatConsole, ParseFormat("text"))
}

func TestZapLogger_WithMergesFields(t *testing.T) {
	core, recorded := observer.New(zapcore.DebugLevel)
	l := NewZap(zap.New(core))

	child := l.With(map[string]any{"metric": "overview"})
	child.Warn("slow metric", map[string]any{"elapsed_ms": 120, "": "ignored"})

	entries := recorded.All()
	require.Len(t, entries, 1)
	assert.Equal(t, "slow metric", entries[0].Message)
	assert.Equal(t, zapcore.WarnLevel, entries[0].Level)

	ctx := entries[0].ContextMap()
	assert.Equal(t, "overview", ctx["metric"])
	assert.EqualValues(t, 120, ctx["elapsed_ms"])
	assert.NotContains(t, ctx, "")
}

func TestZapLogger_ErrorFieldsUseErrorEncoding(t *testing.T) {
	core, recorded := observer.New(zapcore.InfoLevel)
	l := NewZap(zap.New(core))

	l.Error("metric failed", map[string]any{"error": errors.New("db down")})
	l.Debug("filtered out", nil)

	entries := recorded.All()
	require.Len(t, entries, 1)
	assert.Equal(t, "db down", entries[0].ContextMap()["error"])
}

func TestNewNop_DoesNotPanic(t *testing.T) {
	l := NewNop()
	l.With(map[string]any{"a": 1}).Info("ok", nil)
}
