package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// Environment variables that override config file values.
const (
	EnvBaseURL    = "QUIZDESK_BASE_URL"
	EnvCollection = "QUIZDESK_COLLECTION"
	EnvTimeout    = "QUIZDESK_TIMEOUT"
	EnvListenAddr = "QUIZDESK_LISTEN_ADDR"
	EnvLogLevel   = "QUIZDESK_LOG_LEVEL"
)

// LookupFunc matches os.LookupEnv.
type LookupFunc func(key string) (string, bool)

// LoadDotEnv loads .env files into the process environment when present.
// Variables already set in the environment win. Missing files are ignored.
func LoadDotEnv(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	for _, path := range paths {
		if _, err := os.Stat(path); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return err
		}
		if err := godotenv.Load(path); err != nil {
			return fmt.Errorf("load %s: %w", path, err)
		}
	}
	return nil
}

// ApplyEnv overrides config values from environment variables.
func ApplyEnv(cfg *Config, lookup LookupFunc) {
	if lookup == nil {
		return
	}
	set := func(key string, target *string) {
		if value, ok := lookup(key); ok && strings.TrimSpace(value) != "" {
			*target = strings.TrimSpace(value)
		}
	}
	set(EnvBaseURL, &cfg.Backend.BaseURL)
	set(EnvCollection, &cfg.Backend.Collection)
	set(EnvTimeout, &cfg.Backend.Timeout)
	set(EnvListenAddr, &cfg.Server.ListenAddr)
	set(EnvLogLevel, &cfg.Log.Level)
}
