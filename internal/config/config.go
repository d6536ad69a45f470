// Package config loads arena settings from the environment, with an optional
// .env file filling in anything the environment leaves unset.
package config

import (
	"os"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	"github.com/KirkDiggler/rpg-arena/internal/errors"
	"github.com/KirkDiggler/rpg-arena/internal/logger"
)

// ServiceName tags log records
const ServiceName = "rpg-arena"

// MaxRoundsLimit is the largest accepted round cap
const MaxRoundsLimit = 10000

// Config holds the application configuration
type Config struct {
	LogLevel  string `env:"ARENA_LOG_LEVEL" envDefault:"warn"`
	LogFormat string `env:"ARENA_LOG_FORMAT" envDefault:"text"`

	PlayerName   string `env:"ARENA_PLAYER_NAME" envDefault:"Hero"`
	MaxRounds    int    `env:"ARENA_MAX_ROUNDS" envDefault:"100"`
	HistoryLimit int    `env:"ARENA_HISTORY_LIMIT" envDefault:"10"`

	// RedisAddr enables the Redis battle history when set
	RedisAddr string `env:"ARENA_REDIS_ADDR"`

	// MetricsAddr serves /metrics when set
	MetricsAddr string `env:"ARENA_METRICS_ADDR"`
}

// DefaultEnvFile is read when Load is given no files and skipped when absent
const DefaultEnvFile = ".env"

// Load reads .env files and then the environment; real environment variables
// win over file values. With no files it reads DefaultEnvFile if it exists.
// Files named explicitly must exist, and a malformed file is an error.
func Load(files ...string) (*Config, error) {
	if err := loadEnvFiles(files); err != nil {
		return nil, err
	}

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeInvalidArgument, "failed to parse environment")
	}

	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	return cfg, nil
}

// Validate checks every setting
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()

	errors.ValidateEnum("LogLevel", strings.ToLower(c.LogLevel), []string{
		logger.LevelDebug, logger.LevelInfo, logger.LevelWarn, logger.LevelWarning, logger.LevelError,
	}, vb)
	errors.ValidateEnum("LogFormat", strings.ToLower(c.LogFormat), []string{
		logger.FormatText, logger.FormatJSON,
	}, vb)
	errors.ValidateRequired("PlayerName", c.PlayerName, vb)
	errors.ValidateRange("MaxRounds", c.MaxRounds, 1, MaxRoundsLimit, vb)
	errors.ValidateMin("HistoryLimit", c.HistoryLimit, 1, vb)

	return vb.Build()
}

// Logger returns the logger settings
func (c *Config) Logger() logger.Config {
	return logger.Config{
		Level:   c.LogLevel,
		Format:  c.LogFormat,
		Service: ServiceName,
	}
}

func loadEnvFiles(files []string) error {
	if len(files) == 0 {
		err := godotenv.Load(DefaultEnvFile)
		if err == nil || os.IsNotExist(err) {
			return nil
		}
		return errors.WrapWithCode(err, errors.CodeInvalidArgument, "failed to read "+DefaultEnvFile)
	}

	if err := godotenv.Load(files...); err != nil {
		return errors.WrapWithCode(err, errors.CodeInvalidArgument, "failed to read env file").
			WithMeta("files", strings.Join(files, ","))
	}
	return nil
}
