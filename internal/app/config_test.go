package app

import (
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	t.Setenv("LIGHTMIX_ADDR", "")
	t.Setenv("LIGHTMIX_LOG_LEVEL", "")
	cfg := DefaultConfig()
	assert.Equal(t, Config{Addr: ":8080", LogLevel: "info", LogFormat: "text"}, cfg)

	t.Setenv("LIGHTMIX_ADDR", "127.0.0.1:9000")
	t.Setenv("LIGHTMIX_LOG_LEVEL", "debug")
	cfg = DefaultConfig()
	assert.Equal(t, "127.0.0.1:9000", cfg.Addr)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestNewLogger(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		level   logrus.Level
		json    bool
		wantErr bool
	}{
		{name: "defaults", cfg: Config{LogLevel: "info"}, level: logrus.InfoLevel},
		{name: "json debug", cfg: Config{LogLevel: "debug", LogFormat: "json"}, level: logrus.DebugLevel, json: true},
		{name: "bad level", cfg: Config{LogLevel: "loud"}, wantErr: true},
		{name: "bad format", cfg: Config{LogLevel: "info", LogFormat: "xml"}, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			log, err := NewLogger(tt.cfg)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.level, log.GetLevel())
			_, isJSON := log.Formatter.(*logrus.JSONFormatter)
			assert.Equal(t, tt.json, isJSON)
		})
	}
}
