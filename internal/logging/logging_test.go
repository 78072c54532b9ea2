package logging

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"

	"github.com/taxit-dev/taxit/internal/config"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name      string
		cfg       config.LoggingConfig
		debug     bool
		info      bool
		wantError string
	}{
		{name: "production default", cfg: config.LoggingConfig{}, info: true},
		{name: "development default", cfg: config.LoggingConfig{Environment: "development"}, debug: true, info: true},
		{name: "explicit level", cfg: config.LoggingConfig{Environment: "production", Level: "warn"}},
		{name: "explicit debug", cfg: config.LoggingConfig{Level: "DEBUG"}, debug: true, info: true},
		{name: "bad environment", cfg: config.LoggingConfig{Environment: "staging"}, wantError: "invalid logging environment"},
		{name: "bad level", cfg: config.LoggingConfig{Level: "loud"}, wantError: "invalid log level"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger, err := New(tt.cfg)
			if tt.wantError != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantError)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.debug, logger.Core().Enabled(zapcore.DebugLevel))
			assert.Equal(t, tt.info, logger.Core().Enabled(zapcore.InfoLevel))
			assert.True(t, logger.Core().Enabled(zapcore.ErrorLevel))
		})
	}
}
