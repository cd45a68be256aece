package config

import (
	"fmt"
	"os"
	"path/filepath"
)

// Scaffold writes a default config file, refusing to overwrite an existing
// one unless force is set.
func Scaffold(configPath, baseURL string, force bool) error {
	if configPath == "" {
		return fmt.Errorf("config path is required")
	}
	if info, err := os.Stat(configPath); err == nil {
		if info.IsDir() {
			return fmt.Errorf("config path %q is a directory", configPath)
		}
		if !force {
			return fmt.Errorf("config file already exists at %q", configPath)
		}
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("stat config file: %w", err)
	}
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	contents, err := renderScaffoldConfig(baseURL)
	if err != nil {
		return fmt.Errorf("render config: %w", err)
	}
	if _, err := Parse([]byte(contents)); err != nil {
		return fmt.Errorf("render config: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(configPath), 0o755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	if err := os.WriteFile(configPath, []byte(contents), 0o644); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}
	return nil
}
