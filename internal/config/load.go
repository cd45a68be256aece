package config

import (
	"fmt"
	"os"
	"path/filepath"
)

// Load reads, parses, normalizes, and validates a config file. Relative
// server and log paths resolve against the directory that holds .quizdesk.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return Config{}, err
	}
	ApplyEnv(&cfg, os.LookupEnv)
	Normalize(&cfg)
	resolvePaths(&cfg, RootFromConfigPath(path))
	if err := Validate(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Default returns a validated config built from defaults and the environment.
func Default() (Config, error) {
	cfg := Config{Version: 1}
	ApplyEnv(&cfg, os.LookupEnv)
	Normalize(&cfg)
	if err := Validate(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func resolvePaths(cfg *Config, root string) {
	cfg.Server.Path = resolvePath(root, cfg.Server.Path)
	cfg.Server.Seed = resolvePath(root, cfg.Server.Seed)
	cfg.Log.Path = resolvePath(root, cfg.Log.Path)
}

func resolvePath(root, path string) string {
	if path == "" || filepath.IsAbs(path) || root == "" {
		return path
	}
	return filepath.Join(root, path)
}
