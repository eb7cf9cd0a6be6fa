package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{"FMP_API_KEY", "FMP_BASE_URL", "YAHOO_BASE_URL", "HTTPS_PROXY",
		"TELEGRAM_BOT_TOKEN", "TELEGRAM_CHAT_ID", "LOG_LEVEL", "CONFIG_PATH"} {
		t.Setenv(k, "")
	}
}

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	assert.Equal(t, 365, cfg.Analysis.LookbackDays)
	assert.Equal(t, 3, cfg.Analysis.PeerCount)
	assert.Equal(t, 3, cfg.Analysis.TopHolders)
	assert.Equal(t, 4, cfg.Analysis.EarningsQuarters)
	assert.Equal(t, 20, cfg.Analysis.RatingWindow)
	assert.True(t, cfg.Backfill())
	assert.True(t, cfg.Color())
	assert.Equal(t, "info", cfg.Log.Level)
	assert.False(t, cfg.TelegramEnabled())

	d, err := cfg.Timeout()
	require.NoError(t, err)
	assert.Equal(t, 30*time.Second, d)
}

func TestLoad_FileAndEnvOverrides(t *testing.T) {
	clearEnv(t)
	path := writeConfig(t, `
fundamentals:
  api_key: from-file
  holders_path: institutional-holder
http:
  timeout: 10s
analysis:
  peer_count: 2
  manual_backfill: false
peers:
  AAPL: [MSFT, GOOGL]
log:
  color: false
`)
	t.Setenv("FMP_API_KEY", "from-env")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := Load(path)
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	assert.Equal(t, "from-env", cfg.Fundamentals.APIKey)
	assert.Equal(t, "institutional-holder", cfg.Fundamentals.HoldersPath)
	assert.Equal(t, 2, cfg.Analysis.PeerCount)
	assert.False(t, cfg.Backfill())
	assert.False(t, cfg.Color())
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, []string{"MSFT", "GOOGL"}, cfg.PeersFor("aapl"))
	assert.Nil(t, cfg.PeersFor("TSLA"))
}

func TestLoad_InvalidYAML(t *testing.T) {
	clearEnv(t)
	_, err := Load(writeConfig(t, "market: [unclosed"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(c *Config)
	}{
		{"bad timeout", func(c *Config) { c.HTTP.Timeout = "soon" }},
		{"negative lookback", func(c *Config) { c.Analysis.LookbackDays = -1 }},
		{"telegram token only", func(c *Config) { c.Telegram.BotToken = "tok" }},
		{"unknown level", func(c *Config) { c.Log.Level = "loud" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{}
			cfg.applyDefaults()
			tt.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestResolvePath(t *testing.T) {
	clearEnv(t)
	assert.Equal(t, DefaultPath, ResolvePath(""))
	t.Setenv("CONFIG_PATH", "/etc/lens.yaml")
	assert.Equal(t, "/etc/lens.yaml", ResolvePath(""))
	assert.Equal(t, "x.yaml", ResolvePath("x.yaml"))
}
