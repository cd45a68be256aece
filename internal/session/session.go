package session

import (
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"quizdesk/internal/question"
)

// ErrNotANumber reports numeric field input that does not parse as an integer.
var ErrNotANumber = errors.New("not a number")

// ErrChoiceIndex reports a choice index outside the choices list.
var ErrChoiceIndex = errors.New("choice index out of range")

// InputError describes rejected field input.
type InputError struct {
	Field string
	Input string
	Err   error
}

func (e *InputError) Error() string {
	return fmt.Sprintf("%s: %q is %v", e.Field, e.Input, e.Err)
}

func (e *InputError) Unwrap() error {
	return e.Err
}

// Session is an immutable working copy of one record. Every edit returns a
// new Session; the receiver and the record it was opened from never change.
type Session struct {
	record question.Question
}

// Open copies q into a new session.
func Open(q question.Question) Session {
	return Session{record: q.Clone()}
}

// ID returns the id of the record being edited.
func (s Session) ID() string {
	return s.record.ID
}

// Record returns a copy of the working record.
func (s Session) Record() question.Question {
	return s.record.Clone()
}

// Value renders a scalar field as text.
func (s Session) Value(field question.Field) string {
	return s.record.Value(field)
}

// Choices returns a copy of the working choices.
func (s Session) Choices() []string {
	return slices.Clone(s.record.Choices)
}

// Choice returns the choice at index.
func (s Session) Choice(index int) (string, bool) {
	if index < 0 || index >= len(s.record.Choices) {
		return "", false
	}
	return s.record.Choices[index], true
}

// Changed reports whether the working copy differs from original.
func (s Session) Changed(original question.Question) bool {
	return !s.record.Equal(original)
}

// SetField returns a session with one scalar field replaced. Numeric fields
// reject input that is not a base-10 integer and return s unchanged.
func (s Session) SetField(field question.Field, input string) (Session, error) {
	next := s.record.Clone()
	switch field {
	case question.FieldText:
		next.Text = input
	case question.FieldExplanation:
		next.Explanation = input
	case question.FieldReference:
		if input == "" {
			next.Reference = nil
		} else {
			next.Reference = question.StringPtr(input)
		}
	case question.FieldChapter, question.FieldPage, question.FieldComplexity, question.FieldCorrectAnswer:
		value, err := parseInt(field, input)
		if err != nil {
			return s, err
		}
		setInt(&next, field, value)
	default:
		return s, fmt.Errorf("unknown field %q", field)
	}
	return Session{record: next}, nil
}

// SetChoice returns a session whose choices slice is a fresh copy with
// element index replaced.
func (s Session) SetChoice(index int, value string) (Session, error) {
	if index < 0 || index >= len(s.record.Choices) {
		return s, &InputError{Field: fmt.Sprintf("choices[%d]", index), Input: value, Err: ErrChoiceIndex}
	}
	next := s.record.Clone()
	next.Choices[index] = value
	return Session{record: next}, nil
}

func parseInt(field question.Field, input string) (int, error) {
	value, err := strconv.Atoi(strings.TrimSpace(input))
	if err != nil {
		return 0, &InputError{Field: string(field), Input: input, Err: ErrNotANumber}
	}
	return value, nil
}

func setInt(q *question.Question, field question.Field, value int) {
	switch field {
	case question.FieldChapter:
		q.Chapter = value
	case question.FieldPage:
		q.Page = value
	case question.FieldComplexity:
		q.Complexity = value
	case question.FieldCorrectAnswer:
		q.CorrectAnswer = value
	}
}
