package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"
)

// Issue captures a validation problem with a config field.
type Issue struct {
	Field   string
	Message string
}

// ValidationError aggregates config validation issues.
type ValidationError struct {
	Issues []Issue
}

// Error renders validation errors as a multi-line string.
func (err *ValidationError) Error() string {
	if err == nil || len(err.Issues) == 0 {
		return "config validation failed"
	}
	lines := make([]string, 0, len(err.Issues))
	for _, issue := range err.Issues {
		lines = append(lines, fmt.Sprintf("%s: %s", issue.Field, issue.Message))
	}
	return strings.Join(lines, "\n")
}

// issueCollector accumulates validation issues.
type issueCollector struct {
	issues []Issue
}

func (c *issueCollector) add(field, message string) {
	c.issues = append(c.issues, Issue{Field: field, Message: message})
}

func (c *issueCollector) result() error {
	if len(c.issues) == 0 {
		return nil
	}
	return &ValidationError{Issues: c.issues}
}

// Validate checks a normalized config for correctness.
func Validate(cfg *Config) error {
	collector := &issueCollector{}
	if cfg.Version != 1 {
		collector.add("version", fmt.Sprintf("unsupported version %d", cfg.Version))
	}
	validateBackend(cfg.Backend, collector)
	validateServer(cfg.Server, collector)
	validateLog(cfg.Log, collector)
	return collector.result()
}

func validateBackend(backend BackendConfig, collector *issueCollector) {
	if backend.BaseURL == "" {
		collector.add("backend.base_url", "is required")
	} else if parsed, err := url.Parse(backend.BaseURL); err != nil {
		collector.add("backend.base_url", fmt.Sprintf("invalid URL: %v", err))
	} else if parsed.Scheme != "http" && parsed.Scheme != "https" {
		collector.add("backend.base_url", fmt.Sprintf("unsupported scheme %q", parsed.Scheme))
	} else if parsed.Host == "" {
		collector.add("backend.base_url", "host is required")
	}
	if strings.Contains(backend.Collection, "/") {
		collector.add("backend.collection", "must be a single path segment")
	}
	if _, err := Timeout(backend); err != nil {
		collector.add("backend.timeout", err.Error())
	}
}

func validateServer(server ServerConfig, collector *issueCollector) {
	switch server.Storage {
	case StorageMemory:
	case StorageFile, StorageDuckDB:
		if strings.TrimSpace(server.Path) == "" {
			collector.add("server.path", fmt.Sprintf("is required for %s storage", server.Storage))
		}
	default:
		collector.add("server.storage", fmt.Sprintf("unsupported storage %q", server.Storage))
	}
}

func validateLog(log LogConfig, collector *issueCollector) {
	switch log.Level {
	case "debug", "info", "warn", "error":
	default:
		collector.add("log.level", fmt.Sprintf("unsupported level %q", log.Level))
	}
	switch log.Format {
	case "text", "json":
	default:
		collector.add("log.format", fmt.Sprintf("unsupported format %q", log.Format))
	}
}

// Timeout parses the backend request timeout.
func Timeout(backend BackendConfig) (time.Duration, error) {
	raw := strings.TrimSpace(backend.Timeout)
	if raw == "" {
		raw = DefaultTimeout
	}
	timeout, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid duration %q", raw)
	}
	if timeout <= 0 {
		return 0, fmt.Errorf("must be > 0")
	}
	return timeout, nil
}
