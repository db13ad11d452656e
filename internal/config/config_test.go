package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"CryptoSentry/internal/strategy"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)

	assert.Equal(t, 30, cfg.Monitor.IntervalSeconds)
	assert.Equal(t, "data/cryptosentry.db", cfg.Database.SQLitePath)
	assert.Equal(t, strategy.DefaultWeights(), cfg.Strategy.Weights)
	assert.Equal(t, 10*time.Second, cfg.ProviderTimeout())
	assert.Equal(t, 200*time.Millisecond, cfg.ProviderMinInterval())
}

func TestLoad_YAMLValues(t *testing.T) {
	path := writeConfig(t, `
telegram:
  bot_token: "token123"
  chat_id: "42"
monitor:
  interval_seconds: 15
database:
  sqlite_path: "/tmp/test.db"
strategy:
  weights:
    rsi: 0.9
    macd: 0.6
    ma_trend: 0.5
    bollinger: 0.4
    stochastic: 0.3
`)
	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "token123", cfg.Telegram.BotToken)
	assert.Equal(t, 15*time.Second, cfg.MonitorInterval())
	assert.Equal(t, "/tmp/test.db", cfg.Database.SQLitePath)
	assert.Equal(t, 0.9, cfg.Strategy.Weights.RSI)
	assert.Equal(t, 0.3, cfg.Strategy.Weights.Stochastic)
	assert.NoError(t, cfg.Validate())
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := writeConfig(t, `
telegram:
  bot_token: "from-file"
  chat_id: "1"
`)
	t.Setenv("TELEGRAM_BOT_TOKEN", "from-env")
	t.Setenv("MONITOR_INTERVAL_SECONDS", "10")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "from-env", cfg.Telegram.BotToken)
	assert.Equal(t, 10, cfg.Monitor.IntervalSeconds)
}

func TestLoad_MalformedYAML(t *testing.T) {
	path := writeConfig(t, "telegram: [not a mapping")
	_, err := Load(path)
	assert.Error(t, err)
}

func TestValidate_RequiredFields(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)

	assert.Error(t, cfg.Validate(), "missing telegram credentials")

	cfg.Telegram.BotToken = "t"
	cfg.Telegram.ChatID = "c"
	assert.NoError(t, cfg.Validate())

	cfg.Strategy.Weights.RSI = 2
	assert.Error(t, cfg.Validate(), "out-of-range weight")
}
