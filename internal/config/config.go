// Package config loads the process configuration from FITNESS_* environment variables
package config

import (
	"io"
	"log/slog"
	"net/url"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"

	"github.com/KirkDiggler/rpg-fitness/internal/errors"
	"github.com/KirkDiggler/rpg-fitness/internal/questgen"
)

// Storage backends
const (
	StorageSQLite = "sqlite"
	StorageRedis  = "redis"
	StorageMemory = "memory"
)

// Log formats
const (
	LogFormatText = "text"
	LogFormatJSON = "json"
)

// Config is the process configuration
type Config struct {
	GRPCPort    int    `env:"FITNESS_GRPC_PORT" envDefault:"50051"`
	MetricsAddr string `env:"FITNESS_METRICS_ADDR" envDefault:":9090"`

	Storage    string `env:"FITNESS_STORAGE" envDefault:"sqlite"`
	SQLitePath string `env:"FITNESS_SQLITE_PATH" envDefault:"rpg-fitness.db"`
	// RedisAddr is a single address or a comma separated cluster list
	RedisAddr     string `env:"FITNESS_REDIS_ADDR"`
	RedisPassword string `env:"FITNESS_REDIS_PASSWORD"`
	RedisTLS      bool   `env:"FITNESS_REDIS_TLS"`

	// GatewayURL empty means no AI gateway: local fallbacks everywhere
	GatewayURL     string        `env:"FITNESS_GATEWAY_URL"`
	GatewayAPIKey  string        `env:"FITNESS_GATEWAY_API_KEY"`
	GatewayTimeout time.Duration `env:"FITNESS_GATEWAY_TIMEOUT" envDefault:"30s"`

	QuestReset    string `env:"FITNESS_QUEST_RESET" envDefault:"0 4 * * *"`
	MaxToolRounds int    `env:"FITNESS_MAX_TOOL_ROUNDS" envDefault:"4"`
	Timezone      string `env:"FITNESS_TIMEZONE" envDefault:"Local"`

	LogLevel  string `env:"FITNESS_LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"FITNESS_LOG_FORMAT" envDefault:"text"`
}

// Load parses the process environment
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeInvalidArgument, "failed to parse environment")
	}
	return cfg, nil
}

// LoadFrom parses the given variables instead of the process environment
func LoadFrom(environ map[string]string) (*Config, error) {
	cfg := &Config{}
	if err := env.ParseWithOptions(cfg, env.Options{Environment: environ}); err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeInvalidArgument, "failed to parse environment")
	}
	return cfg, nil
}

// Validate checks every field
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()

	errors.ValidateRange("FITNESS_GRPC_PORT", c.GRPCPort, 1, 65535, vb)
	errors.ValidateEnum("FITNESS_STORAGE", c.Storage, []string{StorageSQLite, StorageRedis, StorageMemory}, vb)
	if c.Storage == StorageSQLite {
		errors.ValidateRequired("FITNESS_SQLITE_PATH", c.SQLitePath, vb)
	}
	if c.Storage == StorageRedis {
		errors.ValidateRequired("FITNESS_REDIS_ADDR", c.RedisAddr, vb)
	}

	if c.GatewayURL != "" {
		u, err := url.Parse(c.GatewayURL)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			vb.InvalidField("FITNESS_GATEWAY_URL", "must be an http(s) URL")
		}
	}
	errors.ValidatePositiveDuration("FITNESS_GATEWAY_TIMEOUT", c.GatewayTimeout, vb)

	if _, err := questgen.ParseSchedule(c.QuestReset); err != nil {
		vb.InvalidField("FITNESS_QUEST_RESET", err.Error())
	}
	errors.ValidateRange("FITNESS_MAX_TOOL_ROUNDS", c.MaxToolRounds, 1, 16, vb)
	if _, err := time.LoadLocation(c.Timezone); err != nil {
		vb.InvalidField("FITNESS_TIMEZONE", err.Error())
	}

	if _, err := c.SlogLevel(); err != nil {
		vb.InvalidField("FITNESS_LOG_LEVEL", "must be debug, info, warn or error")
	}
	errors.ValidateEnum("FITNESS_LOG_FORMAT", c.LogFormat, []string{LogFormatText, LogFormatJSON}, vb)

	return vb.Build()
}

// GatewayEnabled reports whether an AI gateway is configured
func (c *Config) GatewayEnabled() bool {
	return strings.TrimSpace(c.GatewayURL) != ""
}

// Location returns the configured time zone
func (c *Config) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeInvalidArgument, "invalid time zone")
	}
	return loc, nil
}

// SlogLevel parses LogLevel
func (c *Config) SlogLevel() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return slog.LevelInfo, err
	}
	return level, nil
}

// NewLogger builds the process logger writing to w
func (c *Config) NewLogger(w io.Writer) *slog.Logger {
	level, err := c.SlogLevel()
	if err != nil {
		level = slog.LevelInfo
	}
	opts := &slog.HandlerOptions{Level: level}
	if c.LogFormat == LogFormatJSON {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}
