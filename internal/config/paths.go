package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Config path constants used by the CLI and loaders.
const (
	ConfigDirName  = ".quizdesk"
	ConfigFileName = "config.yml"
)

// ErrConfigNotFound reports that no config file exists up the directory tree.
var ErrConfigNotFound = fmt.Errorf("%s not found", filepath.Join(ConfigDirName, ConfigFileName))

// ConfigDir returns the .quizdesk directory under root.
func ConfigDir(root string) string {
	return filepath.Join(root, ConfigDirName)
}

// ConfigPath returns the full config file path under root.
func ConfigPath(root string) string {
	return filepath.Join(ConfigDir(root), ConfigFileName)
}

// RootFromConfigPath returns the directory that relative storage, seed and
// log paths resolve against: the parent of .quizdesk, or the config file's
// own directory when it lives elsewhere.
func RootFromConfigPath(configPath string) string {
	dir := filepath.Dir(configPath)
	if filepath.Base(dir) != ConfigDirName {
		return dir
	}
	return filepath.Dir(dir)
}

// FindConfigPath walks from startDir (the working directory when empty)
// towards the filesystem root and returns the first .quizdesk/config.yml.
// A .quizdesk directory without a config file stops the walk with an error.
func FindConfigPath(startDir string) (string, error) {
	start := strings.TrimSpace(startDir)
	if start == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("get working directory: %w", err)
		}
		start = wd
	}
	start, err := filepath.Abs(start)
	if err != nil {
		return "", fmt.Errorf("resolve start directory: %w", err)
	}

	for dir := start; ; dir = filepath.Dir(dir) {
		path, found, err := configIn(dir)
		if err != nil || found {
			return path, err
		}
		if filepath.Dir(dir) == dir {
			return "", fmt.Errorf("%w in %s or parent directories", ErrConfigNotFound, start)
		}
	}
}

// configIn reports whether dir holds a usable .quizdesk/config.yml.
func configIn(dir string) (string, bool, error) {
	path := ConfigPath(dir)
	info, err := os.Stat(path)
	switch {
	case err == nil && info.IsDir():
		return "", false, fmt.Errorf("config path %q is a directory", path)
	case err == nil:
		return path, true, nil
	case !os.IsNotExist(err):
		return "", false, fmt.Errorf("stat config path %q: %w", path, err)
	}
	if info, err := os.Stat(ConfigDir(dir)); err == nil && info.IsDir() {
		return "", false, fmt.Errorf("found %q but %s is missing", ConfigDir(dir), ConfigFileName)
	}
	return "", false, nil
}
