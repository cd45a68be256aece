package cli

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"quizdesk/internal/api"
	"quizdesk/internal/backend/memory"
	"quizdesk/internal/config"
	"quizdesk/internal/duckdb"
	"quizdesk/internal/question"
)

// serveAPI is a test seam for running the question store server.
var serveAPI = api.Serve

// runServe builds the handler for the serve command.
func runServe(cmd *Command) func(args []string, stdout, stderr io.Writer) int {
	return func(args []string, stdout, stderr io.Writer) int {
		if wantsHelp(args) {
			printCommandUsage(cmd, stdout)
			return ExitOK
		}

		flags := flag.NewFlagSet(cmd.Name, flag.ContinueOnError)
		configPath := flags.String("config", "", "Path to config file (default: search for .quizdesk/config.yml)")
		addr := flags.String("addr", "", "Address to listen on (default: server.listen_addr)")
		storage := flags.String("storage", "", "Storage: memory|file|duckdb (default: server.storage)")
		path := flags.String("path", "", "Storage file for file or duckdb storage")
		seed := flags.String("seed", "", "Questions file (db.json layout) used when storage is empty")
		if code, ok := parseFlags(cmd, flags, args, stdout, stderr, false); !ok {
			return code
		}

		cfg, err := loadConfig(*configPath)
		if err != nil {
			fmt.Fprintf(stderr, "Failed to load config:\n%v\n", err)
			return ExitError
		}
		if value := strings.TrimSpace(*addr); value != "" {
			cfg.Server.ListenAddr = value
		}
		if value := strings.ToLower(strings.TrimSpace(*storage)); value != "" {
			cfg.Server.Storage = value
		}
		if value := strings.TrimSpace(*path); value != "" {
			cfg.Server.Path = value
		}
		if value := strings.TrimSpace(*seed); value != "" {
			cfg.Server.Seed = value
		}
		if err := config.Validate(&cfg); err != nil {
			fmt.Fprintf(stderr, "invalid arguments:\n%v\n", err)
			return ExitUsage
		}

		logger, closeLog, err := newLogger(cfg, stderr)
		if err != nil {
			fmt.Fprintf(stderr, "Failed to configure logging: %v\n", err)
			return ExitError
		}
		defer closeLog()

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		store, closeStore, err := openServerStore(ctx, cfg.Server)
		if err != nil {
			fmt.Fprintf(stderr, "Failed to open storage: %v\n", err)
			return ExitError
		}
		defer closeStore()

		serverCfg := api.Config{
			Addr:       cfg.Server.ListenAddr,
			Store:      store,
			Logger:     logger,
			Collection: cfg.Backend.Collection,
			Ready: func(bound string) {
				fmt.Fprintf(stdout, "Serving questions at http://%s/%s\n", bound, cfg.Backend.Collection)
			},
		}
		logger.Info("starting server", "addr", serverCfg.Addr, "storage", cfg.Server.Storage)
		if err := serveAPI(ctx, serverCfg); err != nil {
			fmt.Fprintf(stderr, "Server error: %v\n", err)
			return ExitError
		}
		return ExitOK
	}
}

// openServerStore builds the configured storage, seeding it when empty.
func openServerStore(ctx context.Context, server config.ServerConfig) (api.Store, func() error, error) {
	noop := func() error { return nil }
	var seed []question.Question
	if server.Seed != "" {
		loaded, err := question.LoadFile(server.Seed)
		if err != nil {
			return nil, nil, fmt.Errorf("load seed: %w", err)
		}
		seed = loaded
	}

	switch server.Storage {
	case config.StorageFile:
		store, err := memory.Open(server.Path, seed)
		if err != nil {
			return nil, nil, err
		}
		return store, noop, nil
	case config.StorageDuckDB:
		store, err := duckdb.Open(ctx, server.Path)
		if err != nil {
			return nil, nil, err
		}
		if _, err := store.Seed(ctx, seed); err != nil {
			_ = store.Close()
			return nil, nil, err
		}
		return store, store.Close, nil
	default:
		store, err := memory.New(seed)
		if err != nil {
			return nil, nil, err
		}
		return store, noop, nil
	}
}
