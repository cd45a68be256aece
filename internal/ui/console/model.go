package console

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"

	"quizdesk/internal/backend"
	"quizdesk/internal/question"
	"quizdesk/internal/session"
	"quizdesk/internal/store"
)

const defaultSaveTimeout = 10 * time.Second

// Options configures the console model.
type Options struct {
	NoColor bool
	// LoadErr is the result of the initial store load, shown as a banner.
	LoadErr     error
	SaveTimeout time.Duration
	Logger      *slog.Logger
}

// Model is the Bubble Tea model for the question console.
type Model struct {
	ctx         context.Context
	store       *store.Store
	putter      backend.Putter
	logger      *slog.Logger
	table       table.Model
	editor      session.Editor
	form        form
	keys        KeyMap
	help        help.Model
	status      string
	statusLevel slog.Level
	loadErr     error
	saveTimeout time.Duration
	width       int
	height      int
	noColor     bool
}

// saveResultMsg reports the outcome of a Put started by the editor.
type saveResultMsg struct {
	payload question.Question
	err     error
}

// NewModel builds a console over a loaded store. Saves go through putter.
func NewModel(ctx context.Context, st *store.Store, putter backend.Putter, opts Options) Model {
	if ctx == nil {
		ctx = context.Background()
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	saveTimeout := opts.SaveTimeout
	if saveTimeout <= 0 {
		saveTimeout = defaultSaveTimeout
	}
	t := table.New(
		table.WithColumns(defaultColumns()),
		table.WithRows(rowsForQuestions(st.Rows())),
		table.WithFocused(true),
		table.WithHeight(10),
	)
	t.SetStyles(tableStyles(opts.NoColor))
	m := Model{
		ctx:         ctx,
		store:       st,
		putter:      putter,
		logger:      logger,
		table:       t,
		keys:        DefaultKeyMap,
		help:        help.New(),
		loadErr:     opts.LoadErr,
		saveTimeout: saveTimeout,
		noColor:     opts.NoColor,
	}
	if opts.LoadErr == nil {
		m.setStatus(slog.LevelInfo, fmt.Sprintf("Loaded %d questions", st.Len()))
	}
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Editor exposes the editor state.
func (m Model) Editor() session.Editor {
	return m.editor
}

// Status returns the status line text.
func (m Model) Status() string {
	return m.status
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch typed := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = typed.Width, typed.Height
		m.table.SetWidth(typed.Width)
		m.table.SetHeight(max(typed.Height-6, 3))
		m.table.SetColumns(columnsForWidth(typed.Width))
		m.help.Width = typed.Width
		return m, nil
	case saveResultMsg:
		return m.finishSave(typed), nil
	case logRecordMsg:
		m.setStatus(typed.Level, typed.Summary)
		return m, nil
	case tea.KeyMsg:
		if m.editor.Visible() {
			return m.updateEditor(typed)
		}
		return m.updateList(typed)
	}
	return m, nil
}

func (m Model) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Edit):
		return m.openSelected()
	}
	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m Model) openSelected() (tea.Model, tea.Cmd) {
	q, ok := m.store.At(m.table.Cursor())
	if !ok {
		return m, nil
	}
	editor, err := m.editor.Open(q)
	if err != nil {
		m.setStatus(slog.LevelWarn, err.Error())
		return m, nil
	}
	m.editor = editor
	m.form = newForm(editor.Session(), m.inputWidth())
	m.setStatus(slog.LevelInfo, "Editing question "+q.ID)
	return m, nil
}

func (m Model) updateEditor(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		return m, tea.Quit
	}
	if m.editor.State() == session.StateSaving {
		if key.Matches(msg, m.keys.Cancel) {
			m.setStatus(slog.LevelWarn, "Save in progress")
		}
		return m, nil
	}
	switch {
	case key.Matches(msg, m.keys.Cancel):
		m.editor = m.editor.Cancel()
		m.form = form{}
		m.setStatus(slog.LevelInfo, "Edit cancelled")
		return m, nil
	case key.Matches(msg, m.keys.Save):
		return m.beginSave()
	case key.Matches(msg, m.keys.Next):
		var cmd tea.Cmd
		m.form, cmd = m.form.move(1)
		return m, cmd
	case key.Matches(msg, m.keys.Prev):
		var cmd tea.Cmd
		m.form, cmd = m.form.move(-1)
		return m, cmd
	}
	var cmd tea.Cmd
	m.form, m.editor, cmd = m.form.update(msg, m.editor)
	return m, cmd
}

func (m Model) beginSave() (tea.Model, tea.Cmd) {
	if invalid := m.form.invalidLabels(); len(invalid) > 0 {
		m.setStatus(slog.LevelWarn, "Not a number: "+strings.Join(invalid, ", "))
		return m, nil
	}
	editor, payload, err := m.editor.BeginSave()
	if err != nil {
		m.setStatus(slog.LevelWarn, err.Error())
		return m, nil
	}
	m.editor = editor
	m.setStatus(slog.LevelInfo, "Saving question "+payload.ID+"...")
	return m, m.saveCmd(payload)
}

// saveCmd writes payload in the background and reports a saveResultMsg.
// The outcome is logged here rather than in Update: the logger may route
// records back into the program, and Send blocks while Update runs.
func (m Model) saveCmd(payload question.Question) tea.Cmd {
	ctx, putter, timeout, logger := m.ctx, m.putter, m.saveTimeout, m.logger
	return func() tea.Msg {
		err := errors.New("no backend configured")
		if putter != nil {
			putCtx, cancel := context.WithTimeout(ctx, timeout)
			err = putter.Put(putCtx, payload)
			cancel()
		}
		if err != nil {
			logger.Warn("save failed", "id", payload.ID, "error", err)
		} else {
			logger.Info("question saved", "id", payload.ID)
		}
		return saveResultMsg{payload: payload, err: err}
	}
}

func (m Model) finishSave(result saveResultMsg) Model {
	if m.editor.State() != session.StateSaving {
		return m
	}
	if result.err != nil {
		m.editor = m.editor.SaveFailed(result.err)
		m.setStatus(slog.LevelError, fmt.Sprintf("Save failed for question %s: %v", result.payload.ID, result.err))
		return m
	}
	m.store.Apply(result.payload)
	m.editor = m.editor.SaveSucceeded()
	m.form = form{}
	m.table.SetRows(rowsForQuestions(m.store.Rows()))
	m.setStatus(slog.LevelInfo, "Saved question "+result.payload.ID)
	return m
}

func (m *Model) setStatus(level slog.Level, text string) {
	m.status = text
	m.statusLevel = level
}

func (m Model) inputWidth() int {
	if m.width <= 0 {
		return 60
	}
	return max(m.width-30, 20)
}
