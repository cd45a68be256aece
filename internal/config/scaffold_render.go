package config

import (
	"context"
	"strconv"
	"strings"
)

// scaffoldSection is one top-level block of the scaffolded config.yml.
type scaffoldSection struct {
	Name    string
	Entries []scaffoldEntry
}

// scaffoldEntry is a key with an already YAML-encoded value. Commented
// entries document optional settings without enabling them.
type scaffoldEntry struct {
	Key       string
	Value     string
	Commented bool
}

func scaffoldSections(baseURL string) []scaffoldSection {
	return []scaffoldSection{
		{Name: "backend", Entries: []scaffoldEntry{
			{Key: "base_url", Value: strconv.Quote(baseURL)},
			{Key: "collection", Value: strconv.Quote(DefaultCollection)},
			{Key: "timeout", Value: strconv.Quote(DefaultTimeout)},
		}},
		{Name: "ui", Entries: []scaffoldEntry{
			{Key: "no_color", Value: "false"},
		}},
		{Name: "server", Entries: []scaffoldEntry{
			{Key: "listen_addr", Value: strconv.Quote(DefaultListenAddr)},
			{Key: "storage", Value: StorageMemory},
			{Key: "path", Value: strconv.Quote(ConfigDirName + "/questions.json"), Commented: true},
			{Key: "seed", Value: strconv.Quote("db.json"), Commented: true},
		}},
		{Name: "log", Entries: []scaffoldEntry{
			{Key: "level", Value: DefaultLogLevel},
			{Key: "format", Value: DefaultLogFormat},
		}},
	}
}

// renderScaffoldConfig builds the scaffold YAML via the compiled template.
func renderScaffoldConfig(baseURL string) (string, error) {
	var builder strings.Builder
	if err := ScaffoldConfig(1, scaffoldSections(baseURL)).Render(context.Background(), &builder); err != nil {
		return "", err
	}
	return builder.String(), nil
}
