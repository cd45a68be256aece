package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func noEnv(string) (string, bool) { return "", false }

func writeConfig(t *testing.T, contents string) string {
	t.Helper()
	root := t.TempDir()
	path := ConfigPath(root)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestParseRejectsUnknownFields(t *testing.T) {
	_, err := Parse([]byte("version: 1\nbackend:\n  url: http://x\n"))
	if err == nil {
		t.Fatalf("expected unknown field error")
	}
}

func TestParseRejectsMultipleDocuments(t *testing.T) {
	_, err := Parse([]byte("version: 1\n---\nversion: 1\nbackend:\n  collection: questions\n"))
	if err == nil || !strings.Contains(err.Error(), "multiple YAML documents") {
		t.Fatalf("expected multiple document error, got %v", err)
	}
}

func TestParseRejectsEmptyDocument(t *testing.T) {
	if _, err := Parse(nil); err == nil {
		t.Fatalf("expected empty document error")
	}
}

func TestNormalizeFillsDefaults(t *testing.T) {
	cfg := Config{Backend: BackendConfig{BaseURL: " http://api.local:9000/ ", Collection: "/items/"}}
	Normalize(&cfg)

	if cfg.Version != 1 {
		t.Fatalf("expected version 1, got %d", cfg.Version)
	}
	if cfg.Backend.BaseURL != "http://api.local:9000" {
		t.Fatalf("unexpected base url %q", cfg.Backend.BaseURL)
	}
	if cfg.Backend.Collection != "items" {
		t.Fatalf("unexpected collection %q", cfg.Backend.Collection)
	}
	if cfg.Backend.Timeout != DefaultTimeout || cfg.Server.ListenAddr != DefaultListenAddr {
		t.Fatalf("expected defaults, got %+v", cfg)
	}
	if cfg.Server.Storage != StorageMemory || cfg.Log.Level != "info" || cfg.Log.Format != "text" {
		t.Fatalf("expected storage and log defaults, got %+v", cfg)
	}
}

func TestValidateCollectsIssues(t *testing.T) {
	cfg := Config{
		Version: 2,
		Backend: BackendConfig{BaseURL: "ftp://host", Timeout: "soon"},
		Server:  ServerConfig{Storage: "duckdb"},
		Log:     LogConfig{Level: "loud", Format: "xml"},
	}
	Normalize(&cfg)

	err := Validate(&cfg)
	var validationErr *ValidationError
	if !errors.As(err, &validationErr) {
		t.Fatalf("expected validation error, got %v", err)
	}
	fields := map[string]bool{}
	for _, issue := range validationErr.Issues {
		fields[issue.Field] = true
	}
	for _, field := range []string{"version", "backend.base_url", "backend.timeout", "server.path", "log.level", "log.format"} {
		if !fields[field] {
			t.Fatalf("expected issue for %s, got %v", field, validationErr.Issues)
		}
	}
}

func TestTimeoutRejectsNonPositive(t *testing.T) {
	if _, err := Timeout(BackendConfig{Timeout: "0s"}); err == nil {
		t.Fatalf("expected error for zero timeout")
	}
	got, err := Timeout(BackendConfig{Timeout: "250ms"})
	if err != nil || got.Milliseconds() != 250 {
		t.Fatalf("unexpected timeout %v, %v", got, err)
	}
}

func TestApplyEnvOverridesValues(t *testing.T) {
	env := map[string]string{
		EnvBaseURL:    "http://env:1",
		EnvCollection: "items",
		EnvTimeout:    "3s",
		EnvListenAddr: ":4000",
		EnvLogLevel:   "debug",
	}
	cfg := Config{Backend: BackendConfig{BaseURL: "http://file:2"}}
	ApplyEnv(&cfg, func(key string) (string, bool) {
		value, ok := env[key]
		return value, ok
	})

	if cfg.Backend.BaseURL != "http://env:1" || cfg.Backend.Collection != "items" || cfg.Backend.Timeout != "3s" {
		t.Fatalf("backend not overridden: %+v", cfg.Backend)
	}
	if cfg.Server.ListenAddr != ":4000" || cfg.Log.Level != "debug" {
		t.Fatalf("server or log not overridden: %+v", cfg)
	}
}

func TestApplyEnvIgnoresBlankValues(t *testing.T) {
	cfg := Config{Backend: BackendConfig{BaseURL: "http://file:2"}}
	ApplyEnv(&cfg, func(key string) (string, bool) { return "  ", true })
	if cfg.Backend.BaseURL != "http://file:2" {
		t.Fatalf("expected blank env to be ignored, got %q", cfg.Backend.BaseURL)
	}
	ApplyEnv(&cfg, noEnv)
	ApplyEnv(&cfg, nil)
}

func TestLoadResolvesRelativePaths(t *testing.T) {
	path := writeConfig(t, "version: 1\nserver:\n  storage: file\n  path: data/questions.json\n")
	t.Setenv(EnvBaseURL, "")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	want := filepath.Join(RootFromConfigPath(path), "data", "questions.json")
	if cfg.Server.Path != want {
		t.Fatalf("expected %q, got %q", want, cfg.Server.Path)
	}
	if cfg.Backend.BaseURL != DefaultBaseURL {
		t.Fatalf("expected default base url, got %q", cfg.Backend.BaseURL)
	}
}

func TestFindConfigPathSearchesParents(t *testing.T) {
	path := writeConfig(t, "version: 1\n")
	root := RootFromConfigPath(path)
	nested := filepath.Join(root, "a", "b")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	found, err := FindConfigPath(nested)
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if found != path {
		t.Fatalf("expected %q, got %q", path, found)
	}
}

func TestFindConfigPathReportsMissingFile(t *testing.T) {
	root := t.TempDir()
	if err := os.MkdirAll(ConfigDir(root), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	_, err := FindConfigPath(root)
	if err == nil || !strings.Contains(err.Error(), ConfigFileName) {
		t.Fatalf("expected missing file error, got %v", err)
	}
}

func TestScaffoldWritesLoadableConfig(t *testing.T) {
	root := t.TempDir()
	path := ConfigPath(root)

	if err := Scaffold(path, "http://localhost:9999", false); err != nil {
		t.Fatalf("scaffold: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	cfg, err := Parse(data)
	if err != nil {
		t.Fatalf("parse scaffold: %v", err)
	}
	if cfg.Backend.BaseURL != "http://localhost:9999" {
		t.Fatalf("unexpected base url %q", cfg.Backend.BaseURL)
	}

	if err := Scaffold(path, "", false); err == nil {
		t.Fatalf("expected refusal to overwrite")
	}
	if err := Scaffold(path, "", true); err != nil {
		t.Fatalf("forced scaffold: %v", err)
	}
}

func TestLoadDotEnvSkipsMissingFiles(t *testing.T) {
	if err := LoadDotEnv(filepath.Join(t.TempDir(), "missing.env")); err != nil {
		t.Fatalf("expected missing file to be skipped, got %v", err)
	}
}

func TestLoadDotEnvSetsUnsetVariables(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	if err := os.WriteFile(path, []byte(EnvCollection+"=from-dotenv\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	t.Setenv(EnvCollection, "")
	os.Unsetenv(EnvCollection)

	if err := LoadDotEnv(path); err != nil {
		t.Fatalf("load dotenv: %v", err)
	}
	if got := os.Getenv(EnvCollection); got != "from-dotenv" {
		t.Fatalf("expected dotenv value, got %q", got)
	}
}

func TestRenderScaffoldConfigLayout(t *testing.T) {
	contents, err := renderScaffoldConfig("http://api.local/v1?a=1&b=2")
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	for _, want := range []string{
		"version: 1\n",
		"\nbackend:\n  base_url: \"http://api.local/v1?a=1&b=2\"\n",
		"  collection: \"questions\"\n",
		"\nserver:\n",
		"  storage: memory\n",
		"  # path: \".quizdesk/questions.json\"\n",
		"  # seed: \"db.json\"\n",
		"\nlog:\n  level: info\n  format: text\n",
	} {
		if !strings.Contains(contents, want) {
			t.Fatalf("expected %q in scaffold:\n%s", want, contents)
		}
	}
	cfg, err := Parse([]byte(contents))
	if err != nil {
		t.Fatalf("parse scaffold: %v", err)
	}
	if cfg.Backend.BaseURL != "http://api.local/v1?a=1&b=2" {
		t.Fatalf("base url was escaped: %q", cfg.Backend.BaseURL)
	}
	if cfg.Server.Path != "" {
		t.Fatalf("commented path should stay unset, got %q", cfg.Server.Path)
	}
}
