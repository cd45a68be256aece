package session

import (
	"errors"
	"fmt"

	"quizdesk/internal/question"
)

// State is the editor lifecycle state.
type State int

const (
	// StateClosed means no session exists.
	StateClosed State = iota
	// StateOpen means a session is being edited.
	StateOpen
	// StateSaving means a write request is in flight.
	StateSaving
	// StateSaveFailed means the last write failed; the session is kept for retry.
	StateSaveFailed
)

func (s State) String() string {
	switch s {
	case StateClosed:
		return "closed"
	case StateOpen:
		return "open"
	case StateSaving:
		return "saving"
	case StateSaveFailed:
		return "save failed"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// ErrEditorBusy reports an open request while a session already exists.
var ErrEditorBusy = errors.New("an edit session is already open")

// ErrNoSession reports an edit or save with no open session.
var ErrNoSession = errors.New("no edit session is open")

// ErrSaveInFlight reports an edit or save while a write is pending.
var ErrSaveInFlight = errors.New("a save is already in flight")

// Editor drives one edit session through open, save and cancel. It is a value;
// every transition returns the next Editor.
type Editor struct {
	state    State
	original question.Question
	session  Session
	err      error
}

// State returns the current lifecycle state.
func (e Editor) State() State {
	return e.state
}

// Visible reports whether the editor dialog is shown.
func (e Editor) Visible() bool {
	return e.state != StateClosed
}

// Session returns the working session. It is the zero Session when closed.
func (e Editor) Session() Session {
	return e.session
}

// Original returns the record the session was opened from.
func (e Editor) Original() question.Question {
	return e.original.Clone()
}

// Err returns the last save error while in SaveFailed.
func (e Editor) Err() error {
	return e.err
}

// Open starts a session on q.
func (e Editor) Open(q question.Question) (Editor, error) {
	if e.state != StateClosed {
		return e, ErrEditorBusy
	}
	return Editor{state: StateOpen, original: q.Clone(), session: Open(q)}, nil
}

// SetField applies a scalar field edit to the session.
func (e Editor) SetField(field question.Field, input string) (Editor, error) {
	if err := e.editable(); err != nil {
		return e, err
	}
	next, err := e.session.SetField(field, input)
	if err != nil {
		return e, err
	}
	return e.withSession(next), nil
}

// SetChoice applies a choice edit to the session.
func (e Editor) SetChoice(index int, value string) (Editor, error) {
	if err := e.editable(); err != nil {
		return e, err
	}
	next, err := e.session.SetChoice(index, value)
	if err != nil {
		return e, err
	}
	return e.withSession(next), nil
}

// Cancel discards the session. It is ignored while a save is in flight.
func (e Editor) Cancel() Editor {
	if e.state == StateSaving {
		return e
	}
	return Editor{}
}

// BeginSave moves to Saving and returns the payload to write.
func (e Editor) BeginSave() (Editor, question.Question, error) {
	switch e.state {
	case StateOpen, StateSaveFailed:
	case StateSaving:
		return e, question.Question{}, ErrSaveInFlight
	default:
		return e, question.Question{}, ErrNoSession
	}
	next := e
	next.state = StateSaving
	next.err = nil
	return next, e.session.Record(), nil
}

// SaveSucceeded closes the editor after a confirmed write.
func (e Editor) SaveSucceeded() Editor {
	if e.state != StateSaving {
		return e
	}
	return Editor{}
}

// SaveFailed keeps the session open and records err for display.
func (e Editor) SaveFailed(err error) Editor {
	if e.state != StateSaving {
		return e
	}
	next := e
	next.state = StateSaveFailed
	next.err = err
	return next
}

func (e Editor) editable() error {
	switch e.state {
	case StateOpen, StateSaveFailed:
		return nil
	case StateSaving:
		return ErrSaveInFlight
	default:
		return ErrNoSession
	}
}

func (e Editor) withSession(s Session) Editor {
	next := e
	next.session = s
	if next.state == StateSaveFailed {
		next.state = StateOpen
		next.err = nil
	}
	return next
}
