package config

import "strings"

// Normalize trims values and fills defaults for omitted settings.
func Normalize(cfg *Config) {
	if cfg.Version == 0 {
		cfg.Version = 1
	}
	cfg.Backend.BaseURL = strings.TrimRight(strings.TrimSpace(cfg.Backend.BaseURL), "/")
	if cfg.Backend.BaseURL == "" {
		cfg.Backend.BaseURL = DefaultBaseURL
	}
	cfg.Backend.Collection = strings.Trim(strings.TrimSpace(cfg.Backend.Collection), "/")
	if cfg.Backend.Collection == "" {
		cfg.Backend.Collection = DefaultCollection
	}
	cfg.Backend.Timeout = strings.TrimSpace(cfg.Backend.Timeout)
	if cfg.Backend.Timeout == "" {
		cfg.Backend.Timeout = DefaultTimeout
	}
	cfg.Server.ListenAddr = strings.TrimSpace(cfg.Server.ListenAddr)
	if cfg.Server.ListenAddr == "" {
		cfg.Server.ListenAddr = DefaultListenAddr
	}
	cfg.Server.Storage = strings.ToLower(strings.TrimSpace(cfg.Server.Storage))
	if cfg.Server.Storage == "" {
		cfg.Server.Storage = StorageMemory
	}
	cfg.Log.Level = strings.ToLower(strings.TrimSpace(cfg.Log.Level))
	if cfg.Log.Level == "" {
		cfg.Log.Level = DefaultLogLevel
	}
	cfg.Log.Format = strings.ToLower(strings.TrimSpace(cfg.Log.Format))
	if cfg.Log.Format == "" {
		cfg.Log.Format = DefaultLogFormat
	}
}
