package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestHelpersForwardOptionsAsFields(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	previous := Logger
	Logger = zap.New(core)
	t.Cleanup(func() { Logger = previous })

	Info("session created", LoggerOptions{Key: "sessionID", Data: "01HZX"})
	Debug("frame scored", LoggerOptions{Key: "finalScore", Data: 0.8})
	Warning("inference unavailable")
	Error("snapshot failed", LoggerOptions{Key: "error", Data: "redis down"})

	entries := logs.AllUntimed()
	if assert.Len(t, entries, 4) {
		assert.Equal(t, zapcore.InfoLevel, entries[0].Level)
		assert.Equal(t, "01HZX", entries[0].ContextMap()["sessionID"])
		assert.Equal(t, zapcore.DebugLevel, entries[1].Level)
		assert.Equal(t, 0.8, entries[1].ContextMap()["finalScore"])
		assert.Equal(t, zapcore.WarnLevel, entries[2].Level)
		assert.Equal(t, zapcore.ErrorLevel, entries[3].Level)
	}
}
