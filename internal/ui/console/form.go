package console

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"quizdesk/internal/question"
	"quizdesk/internal/session"
)

// formField is one editable input in the editor modal. choice is -1 for
// scalar fields.
type formField struct {
	label   string
	field   question.Field
	choice  int
	input   textinput.Model
	invalid bool
}

// form holds the editor inputs in display order.
type form struct {
	fields []formField
	focus  int
}

// newForm builds inputs for s: Question Text, Explanation, Reference, each
// choice, then the numeric fields.
func newForm(s session.Session, width int) form {
	var fields []formField
	add := func(label string, field question.Field, choice int, value string) {
		input := textinput.New()
		input.Prompt = ""
		input.Width = width
		input.SetValue(value)
		input.CursorEnd()
		fields = append(fields, formField{label: label, field: field, choice: choice, input: input})
	}
	for _, field := range question.EditorFields {
		if field == question.FieldChapter {
			for i, choice := range s.Choices() {
				add(fmt.Sprintf("Choice %d", i+1), "", i, choice)
			}
		}
		add(field.Label(), field, -1, s.Value(field))
	}
	f := form{fields: fields}
	if len(f.fields) > 0 {
		f.fields[0].input.Focus()
	}
	return f
}

// move shifts focus by delta, wrapping at both ends.
func (f form) move(delta int) (form, tea.Cmd) {
	if len(f.fields) == 0 {
		return f, nil
	}
	f.fields[f.focus].input.Blur()
	f.focus = (f.focus + delta + len(f.fields)) % len(f.fields)
	return f, f.fields[f.focus].input.Focus()
}

// invalidLabels lists fields whose buffer was rejected.
func (f form) invalidLabels() []string {
	var labels []string
	for _, field := range f.fields {
		if field.invalid {
			labels = append(labels, field.label)
		}
	}
	return labels
}

// update feeds msg to the focused input and routes a changed value through
// the editor. Rejected numeric input stays in the buffer and marks the field.
func (f form) update(msg tea.Msg, editor session.Editor) (form, session.Editor, tea.Cmd) {
	if len(f.fields) == 0 {
		return f, editor, nil
	}
	current := &f.fields[f.focus]
	before := current.input.Value()
	var cmd tea.Cmd
	current.input, cmd = current.input.Update(msg)
	value := current.input.Value()
	if value == before {
		return f, editor, cmd
	}

	var err error
	if current.choice >= 0 {
		editor, err = editor.SetChoice(current.choice, value)
	} else {
		editor, err = editor.SetField(current.field, value)
	}
	current.invalid = errors.Is(err, session.ErrNotANumber)
	return f, editor, cmd
}
