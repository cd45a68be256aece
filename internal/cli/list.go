package cli

import (
	"context"
	"flag"
	"fmt"
	"io"
)

// runList builds the handler for the list command.
func runList(cmd *Command) func(args []string, stdout, stderr io.Writer) int {
	return func(args []string, stdout, stderr io.Writer) int {
		if wantsHelp(args) {
			printCommandUsage(cmd, stdout)
			return ExitOK
		}

		flags := flag.NewFlagSet(cmd.Name, flag.ContinueOnError)
		client := addClientFlags(flags)
		if code, ok := parseFlags(cmd, flags, args, stdout, stderr, false); !ok {
			return code
		}

		cfg, err := client.load()
		if err != nil {
			fmt.Fprintf(stderr, "Failed to load config:\n%v\n", err)
			return ExitError
		}
		logger, closeLog, err := newLogger(cfg, stderr)
		if err != nil {
			fmt.Fprintf(stderr, "Failed to configure logging: %v\n", err)
			return ExitError
		}
		defer closeLog()
		backend, err := newClient(cfg, logger)
		if err != nil {
			fmt.Fprintf(stderr, "Failed to configure backend: %v\n", err)
			return ExitError
		}

		st, err := loadStore(context.Background(), backend)
		if err != nil {
			fmt.Fprintf(stderr, "Failed to load questions: %v\n", err)
			return ExitError
		}
		printQuestions(stdout, st.Rows())
		return ExitOK
	}
}
