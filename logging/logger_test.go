package logging

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestNew_Levels(t *testing.T) {
	tests := []struct {
		name       string
		production bool
		level      string
		want       zap.AtomicLevel
	}{
		{"production default", true, "", zap.NewAtomicLevelAt(zap.InfoLevel)},
		{"development default", false, "", zap.NewAtomicLevelAt(zap.DebugLevel)},
		{"explicit warn", true, "warn", zap.NewAtomicLevelAt(zap.WarnLevel)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger, err := New(tt.production, tt.level)
			require.NoError(t, err)
			defer logger.Sync()

			core := logger.Core()
			assert.True(t, core.Enabled(tt.want.Level()))
			if tt.want.Level() > zap.DebugLevel {
				assert.False(t, core.Enabled(tt.want.Level()-1))
			}
		})
	}
}

func TestNew_InvalidLevel(t *testing.T) {
	_, err := New(true, "loud")
	assert.Error(t, err)
}
