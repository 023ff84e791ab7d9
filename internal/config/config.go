package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// ErrMissingJWTSecret is returned when no JWT secret is configured outside
// local development.
var ErrMissingJWTSecret = errors.New("PLANWISE_JWT_SECRET is required when env is not local")

// Config holds application configuration loaded from the config file and
// environment variables.
type Config struct {
	Env  string `mapstructure:"env"` // local, dev, prod
	HTTP HTTP   `mapstructure:"http"`
	DB   DB     `mapstructure:"database"`
	Auth Auth   `mapstructure:"auth"`
	LLM  LLM    `mapstructure:"llm"`
}

// HTTP configures the API server.
type HTTP struct {
	Addr           string   `mapstructure:"addr"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// DB configures persistence. Driver is "sqlite" (default) or "postgres".
type DB struct {
	Driver string `mapstructure:"driver"`
	Path   string `mapstructure:"path"` // sqlite file path; empty means the default data dir
	DSN    string `mapstructure:"-"`    // postgres DSN, loaded from DATABASE_URL
}

// Auth configures password hashing and token issuing.
type Auth struct {
	JWTSecret string        `mapstructure:"-"` // loaded from PLANWISE_JWT_SECRET
	AccessTTL time.Duration `mapstructure:"access_ttl"`
}

// LLM configures the optional study-coach provider. Provider is one of
// "anthropic", "openai", "gemini", "mock", or "" (feature disabled).
type LLM struct {
	Provider     string `mapstructure:"provider"`
	Model        string `mapstructure:"model"`
	BaseURL      string `mapstructure:"base_url"` // openai-compatible hosts only
	AnthropicKey string `mapstructure:"-"`
	OpenAIKey    string `mapstructure:"-"`
	GeminiKey    string `mapstructure:"-"`
}

// Load reads configuration from ./config/config.yaml (if present) and the
// environment.
func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./config")
	v.AddConfigPath(".")

	v.SetDefault("env", "local")
	v.SetDefault("http.addr", ":8080")
	v.SetDefault("http.allowed_origins", []string{"http://localhost:5173"})
	v.SetDefault("database.driver", "sqlite")
	v.SetDefault("auth.access_ttl", "24h")

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	_ = v.BindEnv("env", "PLANWISE_ENV")
	_ = v.BindEnv("jwt_secret", "PLANWISE_JWT_SECRET")
	_ = v.BindEnv("database_url", "DATABASE_URL")
	_ = v.BindEnv("anthropic_api_key", "ANTHROPIC_API_KEY")
	_ = v.BindEnv("openai_api_key", "OPENAI_API_KEY")
	_ = v.BindEnv("gemini_api_key", "GEMINI_API_KEY")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	cfg.DB.DSN = v.GetString("database_url")
	cfg.Auth.JWTSecret = v.GetString("jwt_secret")
	cfg.LLM.AnthropicKey = v.GetString("anthropic_api_key")
	cfg.LLM.OpenAIKey = v.GetString("openai_api_key")
	cfg.LLM.GeminiKey = v.GetString("gemini_api_key")

	if cfg.Auth.JWTSecret == "" {
		if cfg.Env != "local" {
			return nil, ErrMissingJWTSecret
		}
		// Local development fallback; never valid outside env=local.
		cfg.Auth.JWTSecret = "planwise-local-dev-secret"
	}

	return &cfg, nil
}

// SQLitePath resolves the sqlite database file path in priority order:
// configured path, $XDG_DATA_HOME/planwise/planwise.db,
// ~/.local/share/planwise/planwise.db.
func (db DB) SQLitePath() (string, error) {
	if db.Path != "" {
		return db.Path, ensureDir(db.Path)
	}

	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		dataHome = filepath.Join(home, ".local", "share")
	}

	p := filepath.Join(dataHome, "planwise", "planwise.db")
	return p, ensureDir(p)
}

func ensureDir(path string) error {
	return os.MkdirAll(filepath.Dir(path), 0o755)
}
