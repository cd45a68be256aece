package cli

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"quizdesk/internal/logging"
	"quizdesk/internal/ui/console"
)

// runConsole is a test seam for the interactive console.
var runConsole = console.Run

// runEdit builds the handler for the edit command.
func runEdit(cmd *Command) func(args []string, stdout, stderr io.Writer) int {
	return func(args []string, stdout, stderr io.Writer) int {
		if wantsHelp(args) {
			printCommandUsage(cmd, stdout)
			return ExitOK
		}

		flags := flag.NewFlagSet(cmd.Name, flag.ContinueOnError)
		client := addClientFlags(flags)
		uiMode := flags.String("ui", "auto", "UI mode: auto|live|plain")
		noColor := flags.Bool("no-color", false, "Disable colors in the console")
		logPath := flags.String("log", "", "Write logs to this file while the console runs")
		if code, ok := parseFlags(cmd, flags, args, stdout, stderr, false); !ok {
			return code
		}

		decision, err := resolveUIMode(*uiMode, stdout)
		if err != nil {
			fmt.Fprintf(stderr, "invalid arguments: %v\n", err)
			printCommandUsage(cmd, stderr)
			return ExitUsage
		}
		cfg, err := client.load()
		if err != nil {
			fmt.Fprintf(stderr, "Failed to load config:\n%v\n", err)
			return ExitError
		}
		if path := strings.TrimSpace(*logPath); path != "" {
			cfg.Log.Path = path
		}

		if !decision.useLive {
			if decision.warning != "" {
				fmt.Fprintln(stderr, decision.warning)
			}
			return runList(cmd)(listArgs(*client.configPath, *client.baseURL), stdout, stderr)
		}

		// The console owns the terminal: log records go to a file when one
		// is configured and warn+ records go to the status line.
		statusHandler := console.NewLogHandler(slog.LevelWarn)
		handler := slog.Handler(statusHandler)
		closeLog := func() error { return nil }
		if cfg.Log.Path != "" {
			fileHandler, closeFile, err := logging.NewHandler(logging.Options{
				Level:  cfg.Log.Level,
				Format: cfg.Log.Format,
				Path:   cfg.Log.Path,
			})
			if err != nil {
				fmt.Fprintf(stderr, "Failed to configure logging: %v\n", err)
				return ExitError
			}
			handler = logging.Fanout{fileHandler, statusHandler}
			closeLog = closeFile
		}
		defer closeLog()
		logger := slog.New(handler)

		backend, err := newClient(cfg, logger)
		if err != nil {
			fmt.Fprintf(stderr, "Failed to configure backend: %v\n", err)
			return ExitError
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		st, loadErr := loadStore(ctx, backend)
		if loadErr != nil {
			logger.Error("load questions", "error", loadErr)
		}
		opts := console.Options{
			NoColor: *noColor || cfg.UI.NoColor,
			LoadErr: loadErr,
			Logger:  logger,
		}
		if err := runConsole(ctx, st, backend, statusHandler, opts); err != nil {
			fmt.Fprintf(stderr, "Console failed: %v\n", err)
			return ExitError
		}
		return ExitOK
	}
}

// listArgs rebuilds list flags for the plain fallback.
func listArgs(configPath, baseURL string) []string {
	var args []string
	if configPath != "" {
		args = append(args, "--config", configPath)
	}
	if baseURL != "" {
		args = append(args, "--base-url", baseURL)
	}
	return args
}
