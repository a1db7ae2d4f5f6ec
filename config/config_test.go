package config

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(viper.New())
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.AppPort)
	assert.Equal(t, 800*time.Millisecond, cfg.MockLatency)
	assert.Equal(t, TransportInProcess, cfg.Transport)
	assert.Equal(t, StorageFile, cfg.StorageBackend)
	assert.Equal(t, 5, cfg.HistoryWindow)
	assert.Equal(t, DefaultGeminiModels, cfg.Models())
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("MOCK_LATENCY", "25ms")
	t.Setenv("TRANSPORT", "http")
	t.Setenv("STORAGE_BACKEND", "memory")
	t.Setenv("GEMINI_MODELS", " gemini-2.0-flash , ,gemini-pro")

	cfg, err := Load(viper.New())
	require.NoError(t, err)

	assert.Equal(t, 25*time.Millisecond, cfg.MockLatency)
	assert.Equal(t, TransportHTTP, cfg.Transport)
	assert.Equal(t, StorageMemory, cfg.StorageBackend)
	assert.Equal(t, []string{"gemini-2.0-flash", "gemini-pro"}, cfg.Models())
}

func TestValidate(t *testing.T) {
	base := Config{Transport: TransportInProcess, StorageBackend: StorageFile}
	require.NoError(t, base.Validate())

	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"unknown transport", func(c *Config) { c.Transport = "carrier-pigeon" }},
		{"unknown storage", func(c *Config) { c.StorageBackend = "floppy" }},
		{"negative latency", func(c *Config) { c.MockLatency = -time.Second }},
		{"negative history", func(c *Config) { c.HistoryWindow = -1 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := base
			tt.mutate(&cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}
