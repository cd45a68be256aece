package cli

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"strconv"
	"strings"

	"quizdesk/internal/question"
	"quizdesk/internal/session"
)

// assignment is one field=value or choices[N]=value argument.
type assignment struct {
	field  question.Field
	choice int
	value  string
}

// parseAssignment parses field=value and choices[N]=value (N is 1-based,
// matching the editor's Choice labels).
func parseAssignment(arg string) (assignment, error) {
	name, value, ok := strings.Cut(arg, "=")
	if !ok {
		return assignment{}, fmt.Errorf("expected field=value, got %q", arg)
	}
	name = strings.TrimSpace(name)
	if rest, found := strings.CutPrefix(strings.ToLower(name), "choices["); found {
		raw, closed := strings.CutSuffix(rest, "]")
		if !closed {
			return assignment{}, fmt.Errorf("malformed choice %q", name)
		}
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			return assignment{}, fmt.Errorf("choice index must be a positive integer, got %q", raw)
		}
		return assignment{choice: n - 1, value: value}, nil
	}
	field, err := question.ParseField(name)
	if err != nil {
		return assignment{}, err
	}
	return assignment{field: field, choice: -1, value: value}, nil
}

// runSet builds the handler for the set command.
func runSet(cmd *Command) func(args []string, stdout, stderr io.Writer) int {
	return func(args []string, stdout, stderr io.Writer) int {
		if wantsHelp(args) {
			printCommandUsage(cmd, stdout)
			return ExitOK
		}

		flags := flag.NewFlagSet(cmd.Name, flag.ContinueOnError)
		client := addClientFlags(flags)
		if code, ok := parseFlags(cmd, flags, args, stdout, stderr, true); !ok {
			return code
		}
		if flags.NArg() < 2 {
			fmt.Fprintln(stderr, "set needs an id and at least one field=value")
			printCommandUsage(cmd, stderr)
			return ExitUsage
		}
		id := flags.Arg(0)
		assignments := make([]assignment, 0, flags.NArg()-1)
		for _, arg := range flags.Args()[1:] {
			parsed, err := parseAssignment(arg)
			if err != nil {
				fmt.Fprintf(stderr, "invalid arguments: %v\n", err)
				return ExitUsage
			}
			assignments = append(assignments, parsed)
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

		ctx := context.Background()
		st, err := loadStore(ctx, backend)
		if err != nil {
			fmt.Fprintf(stderr, "Failed to load questions: %v\n", err)
			return ExitError
		}
		original, ok := st.Get(id)
		if !ok {
			fmt.Fprintf(stderr, "Failed to edit: question %q not found\n", id)
			return ExitError
		}

		editor, err := session.Editor{}.Open(original)
		if err != nil {
			fmt.Fprintf(stderr, "Failed to edit: %v\n", err)
			return ExitError
		}
		for _, a := range assignments {
			if a.choice >= 0 {
				editor, err = editor.SetChoice(a.choice, a.value)
			} else {
				editor, err = editor.SetField(a.field, a.value)
			}
			if err != nil {
				fmt.Fprintf(stderr, "Failed to edit: %v\n", err)
				return ExitError
			}
		}

		editor, payload, err := editor.BeginSave()
		if err != nil {
			fmt.Fprintf(stderr, "Failed to save: %v\n", err)
			return ExitError
		}
		if issue := question.CheckAnswerRange(payload); issue != nil {
			fmt.Fprintf(stderr, "Warning: %s %s\n", issue.Field, issue.Message)
		}
		if err := backend.Put(ctx, payload); err != nil {
			editor = editor.SaveFailed(err)
			fmt.Fprintf(stderr, "Failed to save: %v\n", editor.Err())
			return ExitError
		}
		st.Apply(payload)

		saved, _ := st.Get(id)
		data, err := json.MarshalIndent(saved, "", "  ")
		if err != nil {
			fmt.Fprintf(stderr, "Failed to print question: %v\n", err)
			return ExitError
		}
		fmt.Fprintln(stdout, string(data))
		return ExitOK
	}
}
