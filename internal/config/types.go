package config

// Config is the .quizdesk/config.yml schema.
type Config struct {
	Version int           `yaml:"version"`
	Backend BackendConfig `yaml:"backend"`
	UI      UIConfig      `yaml:"ui"`
	Server  ServerConfig  `yaml:"server"`
	Log     LogConfig     `yaml:"log"`
}

// BackendConfig locates the REST backing store.
type BackendConfig struct {
	BaseURL    string `yaml:"base_url"`
	Collection string `yaml:"collection"`
	Timeout    string `yaml:"timeout"`
}

// UIConfig tunes the interactive console.
type UIConfig struct {
	NoColor bool `yaml:"no_color"`
}

// ServerConfig configures the local backing store started by `quizdesk serve`.
type ServerConfig struct {
	ListenAddr string `yaml:"listen_addr"`
	Storage    string `yaml:"storage"`
	Path       string `yaml:"path"`
	Seed       string `yaml:"seed"`
}

// LogConfig configures structured logging.
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	Path   string `yaml:"path"`
}

// Storage kinds for the local backing store.
const (
	StorageMemory = "memory"
	StorageFile   = "file"
	StorageDuckDB = "duckdb"
)

// Defaults applied by Normalize.
const (
	DefaultBaseURL    = "http://localhost:3001"
	DefaultCollection = "questions"
	DefaultTimeout    = "10s"
	DefaultListenAddr = "127.0.0.1:3001"
	DefaultLogLevel   = "info"
	DefaultLogFormat  = "text"
)
