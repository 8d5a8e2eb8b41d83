package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap/zapcore"
)

func TestNew_ReleaseModeUsesProductionConfig(t *testing.T) {
	l := New(ReleaseMode)
	assert.False(t, l.Logger.Core().Enabled(zapcore.DebugLevel))
	assert.True(t, l.Logger.Core().Enabled(zapcore.InfoLevel))
}

func TestNew_ProductionModeUsesProductionConfig(t *testing.T) {
	l := New(ProductionMode)
	assert.False(t, l.Logger.Core().Enabled(zapcore.DebugLevel))
}

func TestNew_DefaultIsDevelopment(t *testing.T) {
	for _, mode := range []string{"debug", "test", ""} {
		l := New(mode)
		assert.True(t, l.Logger.Core().Enabled(zapcore.DebugLevel), "mode %q", mode)
	}
}
