package app

import (
	"cmp"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
)

// Config holds application configuration
type Config struct {
	Addr      string
	LogLevel  string
	LogFormat string
}

// DefaultConfig returns the configuration used when no flags are given.
// LIGHTMIX_ADDR and LIGHTMIX_LOG_LEVEL override the built in defaults.
func DefaultConfig() Config {
	return Config{
		Addr:      cmp.Or(os.Getenv("LIGHTMIX_ADDR"), ":8080"),
		LogLevel:  cmp.Or(os.Getenv("LIGHTMIX_LOG_LEVEL"), "info"),
		LogFormat: "text",
	}
}

// NewLogger builds the logger described by cfg.
func NewLogger(cfg Config) (*logrus.Logger, error) {
	log := logrus.New()
	level, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("log level: %w", err)
	}
	log.SetLevel(level)
	switch cfg.LogFormat {
	case "", "text":
		log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	case "json":
		log.SetFormatter(&logrus.JSONFormatter{})
	default:
		return nil, fmt.Errorf("unknown log format %q", cfg.LogFormat)
	}
	return log, nil
}
