package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestNew_IsNop(t *testing.T) {
	l := New()
	require.NotNil(t, l.Log)
	assert.False(t, l.Log.Core().Enabled(zapcore.ErrorLevel))
}

func TestInit_Levels(t *testing.T) {
	tests := []struct {
		level   string
		enabled zapcore.Level
		skipped zapcore.Level
	}{
		{"Info", zapcore.InfoLevel, zapcore.DebugLevel},
		{"warn", zapcore.WarnLevel, zapcore.InfoLevel},
		{"ERROR", zapcore.ErrorLevel, zapcore.WarnLevel},
	}
	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			l := New()
			require.NoError(t, l.Init(tt.level))
			assert.True(t, l.Log.Core().Enabled(tt.enabled))
			assert.False(t, l.Log.Core().Enabled(tt.skipped))
		})
	}
}

func TestInit_BadLevel(t *testing.T) {
	l := New()
	err := l.Init("loud")
	assert.ErrorContains(t, err, "parse log level")
	assert.False(t, l.Log.Core().Enabled(zapcore.ErrorLevel))
}
