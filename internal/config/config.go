// Package config loads server configuration from an optional config file
// and the environment.
package config

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Supported database drivers.
const (
	DriverSQLite = "sqlite"
	DriverMongo  = "mongo"
)

// Config holds all configuration for the application.
type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Database  DatabaseConfig  `mapstructure:"database"`
	Auth      AuthConfig      `mapstructure:"auth"`
	Assistant AssistantConfig `mapstructure:"assistant"`
	Log       LogConfig       `mapstructure:"log"`
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Port        int      `mapstructure:"port"`
	CORSOrigins []string `mapstructure:"cors_origins"`
}

// DatabaseConfig selects and locates the store.
type DatabaseConfig struct {
	Driver   string `mapstructure:"driver"` // sqlite or mongo
	Path     string `mapstructure:"path"`   // sqlite file, or ":memory:"
	MongoURL string `mapstructure:"mongo_url"`
	Name     string `mapstructure:"name"` // mongo database name
}

// AuthConfig holds token signing configuration.
type AuthConfig struct {
	SecretKey string        `mapstructure:"secret_key"`
	TokenTTL  time.Duration `mapstructure:"token_ttl"`

	// SecretGenerated is set when no secret was configured and a random one
	// was made for this process. Tokens then die with the process.
	SecretGenerated bool `mapstructure:"-"`
}

// AssistantConfig configures the OpenAI-compatible completion endpoint.
type AssistantConfig struct {
	APIKey  string        `mapstructure:"api_key"`
	BaseURL string        `mapstructure:"base_url"`
	Model   string        `mapstructure:"model"`
	Timeout time.Duration `mapstructure:"timeout"`
}

// LogConfig controls the process logger.
type LogConfig struct {
	Level  string `mapstructure:"level"`  // debug, info, warn, error
	Format string `mapstructure:"format"` // text or json
}

// SlogLevel parses Level.
func (c LogConfig) SlogLevel() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.Level)); err != nil {
		return 0, fmt.Errorf("config: invalid log level %q", c.Level)
	}
	return level, nil
}

// envBindings maps each key to its environment variable. The names are
// unprefixed so deployments of the previous service keep working.
var envBindings = map[string]string{
	"server.port":         "PORT",
	"server.cors_origins": "CORS_ORIGINS",
	"database.driver":     "DB_DRIVER",
	"database.path":       "DB_PATH",
	"database.mongo_url":  "MONGO_URL",
	"database.name":       "DB_NAME",
	"auth.secret_key":     "SECRET_KEY",
	"auth.token_ttl":      "TOKEN_TTL",
	"assistant.api_key":   "OPENAI_API_KEY",
	"assistant.base_url":  "OPENAI_BASE_URL",
	"assistant.model":     "OPENAI_MODEL",
	"assistant.timeout":   "OPENAI_TIMEOUT",
	"log.level":           "LOG_LEVEL",
	"log.format":          "LOG_FORMAT",
}

// Load reads config.yaml from . or ./config if present, then applies
// environment overrides and defaults.
func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	return load(v)
}

func load(v *viper.Viper) (*Config, error) {
	setDefaults(v)
	for key, env := range envBindings {
		if err := v.BindEnv(key, env); err != nil {
			return nil, fmt.Errorf("config: binding %s: %w", env, err)
		}
	}

	// Read config file (optional)
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("config: reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("config: unmarshal: %w", err)
	}

	cfg.Server.CORSOrigins = splitOrigins(cfg.Server.CORSOrigins)
	cfg.Database.Driver = strings.ToLower(strings.TrimSpace(cfg.Database.Driver))
	cfg.Log.Format = strings.ToLower(strings.TrimSpace(cfg.Log.Format))

	if cfg.Auth.SecretKey == "" {
		secret, err := randomSecret()
		if err != nil {
			return nil, err
		}
		cfg.Auth.SecretKey = secret
		cfg.Auth.SecretGenerated = true
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// setDefaults configures default values for all settings.
func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8001)
	v.SetDefault("server.cors_origins", []string{"*"})

	v.SetDefault("database.driver", DriverSQLite)
	v.SetDefault("database.path", "data/bible.db")
	v.SetDefault("database.mongo_url", "")
	v.SetDefault("database.name", "bible_study")

	v.SetDefault("auth.secret_key", "")
	v.SetDefault("auth.token_ttl", "30m")

	v.SetDefault("assistant.api_key", "")
	v.SetDefault("assistant.base_url", "https://api.openai.com/v1")
	v.SetDefault("assistant.model", "gpt-3.5-turbo")
	v.SetDefault("assistant.timeout", "60s")

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
}

func (c *Config) validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("config: server.port %d out of range", c.Server.Port)
	}
	switch c.Database.Driver {
	case DriverSQLite:
		if c.Database.Path == "" {
			return errors.New("config: database.path is required for sqlite")
		}
	case DriverMongo:
		if c.Database.MongoURL == "" {
			return errors.New("config: database.mongo_url is required for mongo")
		}
	default:
		return fmt.Errorf("config: unknown database.driver %q", c.Database.Driver)
	}
	if len(c.Auth.SecretKey) < 16 {
		return errors.New("config: auth.secret_key must be at least 16 characters")
	}
	if _, err := c.Log.SlogLevel(); err != nil {
		return err
	}
	if c.Log.Format != "text" && c.Log.Format != "json" {
		return fmt.Errorf("config: log.format must be text or json, got %q", c.Log.Format)
	}
	return nil
}

// splitOrigins accepts both a YAML list and a single comma-separated string.
func splitOrigins(in []string) []string {
	var out []string
	for _, item := range in {
		for _, origin := range strings.Split(item, ",") {
			if origin = strings.TrimSpace(origin); origin != "" {
				out = append(out, origin)
			}
		}
	}
	if len(out) == 0 {
		return []string{"*"}
	}
	return out
}

func randomSecret() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("config: generating secret: %w", err)
	}
	return hex.EncodeToString(b), nil
}
