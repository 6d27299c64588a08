package config

import (
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"strconv"
	"sync"
	"time"

	"github.com/joho/godotenv"
)

var (
	once     sync.Once
	instance *Config
)

const envPath = "./configs/.env"

type Config struct {
}

// New loads ./configs/.env once. Variables already present in the environment
// take precedence over the file, and a missing file is not an error.
func New() *Config {
	once.Do(func() {
		err := godotenv.Load(envPath)
		if err != nil {
			if !errors.Is(err, fs.ErrNotExist) {
				slog.Warn("loading envs error", slog.String("path", envPath), slog.String("error", err.Error()))
			}
		}
		instance = &Config{}
	})
	return instance
}

func (c *Config) GetString(key string) string {
	return os.Getenv(key)
}

func (c *Config) GetStringOr(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

// GetDuration parses values like "24h" or "90m". Unset or malformed values
// yield fallback.
func (c *Config) GetDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		slog.Warn("invalid duration in config, using default", slog.String("key", key), slog.String("value", v))
		return fallback
	}
	return d
}

func (c *Config) GetBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		slog.Warn("invalid bool in config, using default", slog.String("key", key), slog.String("value", v))
		return fallback
	}
	return b
}
