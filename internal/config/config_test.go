package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aliskhannn/etymo-roots/internal/domain/entities"
)

func writeConfig(t *testing.T, body string) {
	t.Helper()

	dir := t.TempDir()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })

	if body == "" {
		return
	}
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "config"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config", "config.yaml"), []byte(body), 0o644))
}

func TestLoad_Defaults(t *testing.T) {
	writeConfig(t, "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "local", cfg.Env)
	assert.Equal(t, entities.LangJA, cfg.Lang())
	assert.Equal(t, "roots", cfg.DefaultDataset)
	assert.Equal(t, "/data/roots.json", cfg.Datasets["roots"])
	assert.Equal(t, time.Second, cfg.Quiz.AdvanceDelay)
	assert.Equal(t, 30*time.Minute, cfg.Quiz.SessionIdle)
	assert.Equal(t, 10*time.Second, cfg.Fetch.Timeout)
	assert.Equal(t, "full", cfg.Table.DefaultLayout)
	assert.False(t, cfg.Telegram.Enabled)
}

func TestLoad_FileAndLayouts(t *testing.T) {
	writeConfig(t, `
env: production
default_lang: en
default_dataset: latin
datasets:
  latin: https://example.com/latin.json
quiz:
  advance_delay: 2s
table:
  default_layout: short
  layouts:
    short:
      en:
        - field: root
          header: Root
          align: center
        - field: examples
          header: Examples
          separator: " / "
`)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "production", cfg.Env)
	assert.Equal(t, entities.LangEN, cfg.Lang())
	assert.Equal(t, 2*time.Second, cfg.Quiz.AdvanceDelay)
	require.Contains(t, cfg.Table.Layouts, "short")

	cols := cfg.Table.Layouts["short"].Columns(entities.LangJA)
	require.Len(t, cols, 2)
	assert.Equal(t, entities.FieldRoot, cols[0].Field)
	assert.Equal(t, entities.AlignCenter, cols[0].Align)
	assert.Equal(t, " / ", cols[1].Separator)
}

func TestLoad_EnvOverride(t *testing.T) {
	writeConfig(t, "")
	t.Setenv("HTTP_ADDR", ":9090")
	t.Setenv("APP_ENV", "dev")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, ":9090", cfg.HTTP.Addr)
	assert.Equal(t, "dev", cfg.Env)
}

func TestLoad_TelegramRequiresToken(t *testing.T) {
	writeConfig(t, "telegram:\n  enabled: true\n")
	t.Setenv("TELEGRAM_API_TOKEN", "")

	_, err := Load()
	require.ErrorIs(t, err, ErrMissingEnvironmentVariables)

	t.Setenv("TELEGRAM_API_TOKEN", "123:abc")
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "123:abc", cfg.Telegram.APIToken)
}

func TestValidate(t *testing.T) {
	base := func() *Config {
		return &Config{
			DefaultLang:    "ja",
			DefaultDataset: "roots",
			Datasets:       map[string]string{"roots": "/data/roots.json"},
		}
	}

	t.Run("ok", func(t *testing.T) {
		require.NoError(t, base().Validate())
	})

	t.Run("bad lang", func(t *testing.T) {
		cfg := base()
		cfg.DefaultLang = "fr"
		require.ErrorIs(t, cfg.Validate(), entities.ErrUnknownLang)
	})

	t.Run("unknown default dataset", func(t *testing.T) {
		cfg := base()
		cfg.DefaultDataset = "greek"
		require.ErrorIs(t, cfg.Validate(), ErrUnknownDataset)
	})

	t.Run("unknown field", func(t *testing.T) {
		cfg := base()
		cfg.Table.Layouts = map[string]entities.TableLayout{
			"bad": {entities.LangEN: {{Field: "etymology"}}},
		}
		require.ErrorIs(t, cfg.Validate(), ErrInvalidLayout)
	})

	t.Run("missing english columns", func(t *testing.T) {
		cfg := base()
		cfg.Table.Layouts = map[string]entities.TableLayout{
			"bad": {entities.LangJA: {{Field: entities.FieldRoot}}},
		}
		require.ErrorIs(t, cfg.Validate(), ErrInvalidLayout)
	})
}
