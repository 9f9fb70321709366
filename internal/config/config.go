package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/aliskhannn/etymo-roots/internal/domain/entities"
)

var (
	ErrMissingEnvironmentVariables = errors.New("missing required environment variables")
	ErrInvalidLayout               = errors.New("invalid table layout")
	ErrUnknownDataset              = errors.New("unknown default dataset")
)

// Config holds application configuration loaded from files and environment variables.
type Config struct {
	Env            string            `mapstructure:"env"`             // current application environment (local, dev, production etc)
	DefaultLang    string            `mapstructure:"default_lang"`    // language used when the request does not pick one
	DefaultDataset string            `mapstructure:"default_dataset"` // dataset used by the bot and the index page
	Datasets       map[string]string `mapstructure:"datasets"`        // dataset name -> URL or same-origin path
	HTTP           HTTP              `mapstructure:"http"`            // web server section
	Quiz           Quiz              `mapstructure:"quiz"`            // quiz behaviour section
	Fetch          Fetch             `mapstructure:"fetch"`           // dataset fetching section
	Table          Table             `mapstructure:"table"`           // table layouts section
	Telegram       Telegram          `mapstructure:"telegram"`        // optional bot front end
}

// HTTP contains web server parameters.
type HTTP struct {
	Addr           string   `mapstructure:"addr"`            // listen address
	StaticDir      string   `mapstructure:"static_dir"`      // directory backing same-origin dataset paths
	AllowedOrigins []string `mapstructure:"allowed_origins"` // CORS origins allowed to fetch /data
	SecureCookies  bool     `mapstructure:"secure_cookies"`  // mark the session cookie Secure
}

// Quiz contains quiz parameters.
type Quiz struct {
	AdvanceDelay time.Duration `mapstructure:"advance_delay"` // pause after a correct answer
	SessionIdle  time.Duration `mapstructure:"session_idle"`  // idle time before a session is evicted
}

// Fetch contains dataset fetching parameters.
type Fetch struct {
	Timeout         time.Duration `mapstructure:"timeout"`          // HTTP timeout for remote datasets
	RefreshSchedule string        `mapstructure:"refresh_schedule"` // cron spec for dataset refresh, empty disables
	SweepSchedule   string        `mapstructure:"sweep_schedule"`   // cron spec for session eviction, empty disables
}

// Table contains table layout parameters.
type Table struct {
	DefaultLayout string                          `mapstructure:"default_layout"`
	Layouts       map[string]entities.TableLayout `mapstructure:"layouts"` // extra layouts, keyed by name then language
}

// Telegram contains bot parameters.
type Telegram struct {
	Enabled  bool   `mapstructure:"enabled"`
	Debug    bool   `mapstructure:"debug"`
	APIToken string `mapstructure:"-"` // loaded from TELEGRAM_API_TOKEN
}

// Lang returns the parsed default language.
func (c *Config) Lang() entities.Lang {
	lang, err := entities.ParseLang(c.DefaultLang)
	if err != nil {
		return entities.LangJA
	}
	return lang
}

// Load reads configuration from .env, config files and environment variables.
func Load() (*Config, error) {
	// Pick up a local .env file when present.
	_ = godotenv.Load()

	// Initialize Viper instance and base config options.
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./config")

	setDefaults(v)

	// Configure environment variable handling and key mapping.
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_")) // map nested keys to ENV style names
	v.AutomaticEnv()

	// Bind explicit environment variables to configuration keys.
	_ = v.BindEnv("telegram_api_token", "TELEGRAM_API_TOKEN")
	_ = v.BindEnv("env", "APP_ENV")
	_ = v.BindEnv("http.addr", "HTTP_ADDR")

	// Try to read configuration file if present.
	if err := v.ReadInConfig(); err != nil {
		var fileLookupErr viper.ConfigFileNotFoundError
		if !errors.As(err, &fileLookupErr) {
			return nil, fmt.Errorf("error loading config file: %w", err)
		}
	}

	// Unmarshal configuration into strongly typed struct.
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshalling config: %w", err)
	}

	// Load sensitive values from environment variables.
	cfg.Telegram.APIToken = v.GetString("telegram_api_token")

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("env", "local")
	v.SetDefault("default_lang", "ja")
	v.SetDefault("default_dataset", "roots")
	v.SetDefault("datasets", map[string]string{"roots": "/data/roots.json"})
	v.SetDefault("http.addr", ":8080")
	v.SetDefault("http.static_dir", "assets")
	v.SetDefault("http.allowed_origins", []string{"*"})
	v.SetDefault("http.secure_cookies", false)
	v.SetDefault("quiz.advance_delay", "1s")
	v.SetDefault("quiz.session_idle", "30m")
	v.SetDefault("fetch.timeout", "10s")
	v.SetDefault("fetch.refresh_schedule", "@every 1h")
	v.SetDefault("fetch.sweep_schedule", "@every 5m")
	v.SetDefault("table.default_layout", "full")
	v.SetDefault("telegram.enabled", false)
	v.SetDefault("telegram.debug", false)
}

// Validate checks cross-field constraints.
func (c *Config) Validate() error {
	if _, err := entities.ParseLang(c.DefaultLang); err != nil {
		return fmt.Errorf("default_lang: %w", err)
	}

	if _, ok := c.Datasets[c.DefaultDataset]; !ok {
		return fmt.Errorf("%w: %s", ErrUnknownDataset, c.DefaultDataset)
	}

	for name, layout := range c.Table.Layouts {
		if err := validateLayout(layout); err != nil {
			return fmt.Errorf("table layout %q: %w", name, err)
		}
	}

	if c.Telegram.Enabled && c.Telegram.APIToken == "" {
		return ErrMissingEnvironmentVariables
	}

	return nil
}

func validateLayout(layout entities.TableLayout) error {
	if len(layout[entities.LangEN]) == 0 {
		return fmt.Errorf("%w: missing %q columns", ErrInvalidLayout, entities.LangEN)
	}

	for lang, cols := range layout {
		if _, err := entities.ParseLang(string(lang)); err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidLayout, err)
		}
		for _, col := range cols {
			if !entities.IsKnownField(col.Field) {
				return fmt.Errorf("%w: unknown field %q", ErrInvalidLayout, col.Field)
			}
		}
	}

	return nil
}
