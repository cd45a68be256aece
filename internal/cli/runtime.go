package cli

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"quizdesk/internal/backend/httpclient"
	"quizdesk/internal/config"
	"quizdesk/internal/logging"
	"quizdesk/internal/question"
	"quizdesk/internal/store"
)

// clientFlags are the backend flags shared by list, edit, and set.
type clientFlags struct {
	configPath *string
	baseURL    *string
}

func addClientFlags(flags *flag.FlagSet) clientFlags {
	return clientFlags{
		configPath: flags.String("config", "", "Path to config file (default: search for .quizdesk/config.yml)"),
		baseURL:    flags.String("base-url", "", "Backend base URL (overrides config and environment)"),
	}
}

// load resolves config with flag overrides applied.
func (f clientFlags) load() (config.Config, error) {
	cfg, err := loadConfig(*f.configPath)
	if err != nil {
		return config.Config{}, err
	}
	if value := strings.TrimRight(strings.TrimSpace(*f.baseURL), "/"); value != "" {
		cfg.Backend.BaseURL = value
		if err := config.Validate(&cfg); err != nil {
			return config.Config{}, err
		}
	}
	return cfg, nil
}

// newLogger builds the command logger writing to stderr or log.path.
func newLogger(cfg config.Config, stderr io.Writer) (*slog.Logger, func() error, error) {
	return logging.New(logging.Options{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Path:   cfg.Log.Path,
		Writer: stderr,
	})
}

// newClient builds the REST client for cfg.
func newClient(cfg config.Config, logger *slog.Logger) (*httpclient.Client, error) {
	timeout, err := config.Timeout(cfg.Backend)
	if err != nil {
		return nil, err
	}
	return httpclient.New(cfg.Backend.BaseURL, httpclient.Options{
		Collection: cfg.Backend.Collection,
		Timeout:    timeout,
		Logger:     logger,
	}), nil
}

// loadStore runs the one-shot load of the record store.
func loadStore(ctx context.Context, client *httpclient.Client) (*store.Store, error) {
	st := store.New()
	if err := st.Load(ctx, client); err != nil {
		return st, err
	}
	return st, nil
}

// printQuestions writes a plain table with one row per question.
func printQuestions(w io.Writer, questions []question.Question) {
	rows := make([][]string, 0, len(questions))
	for _, q := range questions {
		rows = append(rows, []string{
			q.ID,
			truncateText(q.Text, 60),
			fmt.Sprint(q.Complexity),
			fmt.Sprint(q.CorrectAnswer),
			fmt.Sprint(q.Chapter),
			fmt.Sprint(q.Page),
			truncateText(q.ReferenceText(), 24),
		})
	}
	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderRow(false).
		Headers("ID", "Question Text", "Complexity", "Correct Answer", "Chapter", "Page", "Reference").
		Rows(rows...)
	fmt.Fprintln(w, t.String())
	fmt.Fprintf(w, "%d questions\n", len(questions))
}

func truncateText(text string, limit int) string {
	normalized := strings.Join(strings.Fields(text), " ")
	runes := []rune(normalized)
	if len(runes) <= limit {
		return normalized
	}
	return string(runes[:limit-3]) + "..."
}
