package config

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

const envPrefix = "SEATBOOK_"

type Config struct {
	LogFile     string
	LogLevel    slog.Level
	NoAltScreen bool
}

// Load reads an optional .env file and then the SEATBOOK_* environment.
// Values already present in the environment win over the file.
func Load(envFile string) (Config, error) {
	if envFile == "" {
		envFile = ".env"
	}
	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("load %s: %w", envFile, err)
	}

	cfg := Config{
		LogFile:  strings.TrimSpace(os.Getenv(envPrefix + "LOG_FILE")),
		LogLevel: slog.LevelInfo,
	}
	if raw := strings.TrimSpace(os.Getenv(envPrefix + "LOG_LEVEL")); raw != "" {
		level, err := ParseLevel(raw)
		if err != nil {
			return Config{}, err
		}
		cfg.LogLevel = level
	}
	if raw := strings.TrimSpace(os.Getenv(envPrefix + "NO_ALT_SCREEN")); raw != "" {
		value, err := strconv.ParseBool(raw)
		if err != nil {
			return Config{}, fmt.Errorf("invalid %sNO_ALT_SCREEN %q: %w", envPrefix, raw, err)
		}
		cfg.NoAltScreen = value
	}
	return cfg, nil
}

func ParseLevel(raw string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(raw))); err != nil {
		return slog.LevelInfo, fmt.Errorf("invalid log level %q: %w", raw, err)
	}
	return level, nil
}

// NewLogger opens the configured log file and returns a JSON logger
// writing to it. Without a log file the logger discards everything. The
// returned close function is never nil.
func (c Config) NewLogger() (*slog.Logger, func() error, error) {
	if c.LogFile == "" {
		return slog.New(slog.NewJSONHandler(io.Discard, nil)), func() error { return nil }, nil
	}
	f, err := os.OpenFile(c.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}
	logger := slog.New(slog.NewJSONHandler(f, &slog.HandlerOptions{Level: c.LogLevel}))
	return logger, f.Close, nil
}
