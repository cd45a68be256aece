package console

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"quizdesk/internal/backend"
	"quizdesk/internal/store"
)

// Run starts the console program and blocks until the user quits or ctx is
// cancelled. When handler is non-nil it is attached to the program so
// background log records reach the status line.
func Run(ctx context.Context, st *store.Store, putter backend.Putter, handler *LogHandler, opts Options) error {
	model := NewModel(ctx, st, putter, opts)
	program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	if handler != nil {
		handler.SetProgram(program)
		defer handler.SetProgram(nil)
	}
	if _, err := program.Run(); err != nil {
		if ctx.Err() != nil {
			return nil
		}
		return fmt.Errorf("run console: %w", err)
	}
	return nil
}
