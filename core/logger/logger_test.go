package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		enabled zapcore.Level
		wantErr bool
	}{
		{"ConsoleInfo", Config{Level: "info", Format: "console"}, zapcore.InfoLevel, false},
		{"JSONWarn", Config{Level: "warn", Format: "json"}, zapcore.WarnLevel, false},
		{"Debug", Config{Level: "debug", Format: "console"}, zapcore.DebugLevel, false},
		{"InvalidLevel", Config{Level: "loud"}, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l, err := New(&tt.cfg)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.True(t, l.Core().Enabled(tt.enabled))
			assert.False(t, l.Core().Enabled(tt.enabled-1))
		})
	}
}

func TestWithRunID(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	l := zap.New(core)

	WithRunID(l, "run-1").Info("tagged")
	WithRunID(l, "").Info("untagged")

	entries := logs.All()
	require.Len(t, entries, 2)
	assert.Equal(t, "run-1", entries[0].ContextMap()["run_id"])
	assert.NotContains(t, entries[1].ContextMap(), "run_id")
}
