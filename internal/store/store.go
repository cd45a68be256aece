package store

import (
	"context"
	"errors"
	"fmt"

	"quizdesk/internal/backend"
	"quizdesk/internal/question"
)

// ErrDuplicateID reports a loaded collection that repeats an id.
var ErrDuplicateID = errors.New("duplicate question id")

// Store is the client-side ordered list of question records shown by the console.
// It is owned by a single event loop and is not safe for concurrent use.
type Store struct {
	rows  []question.Question
	index map[string]int
}

// New returns an empty store.
func New() *Store {
	return &Store{index: map[string]int{}}
}

// Load replaces the whole list with the backing store's collection. On any
// error the list keeps its prior contents.
func (s *Store) Load(ctx context.Context, lister backend.Lister) error {
	questions, err := lister.List(ctx)
	if err != nil {
		return fmt.Errorf("load questions: %w", err)
	}
	index := make(map[string]int, len(questions))
	for i, q := range questions {
		if _, exists := index[q.ID]; exists {
			return fmt.Errorf("load questions: %w %q", ErrDuplicateID, q.ID)
		}
		index[q.ID] = i
	}
	s.rows = question.CloneAll(questions)
	s.index = index
	return nil
}

// Apply replaces the entry whose id matches q. Unknown ids leave the list
// unchanged and report false.
func (s *Store) Apply(q question.Question) bool {
	i, ok := s.index[q.ID]
	if !ok {
		return false
	}
	s.rows[i] = q.Clone()
	return true
}

// Rows returns copies of every record in load order.
func (s *Store) Rows() []question.Question {
	return question.CloneAll(s.rows)
}

// Get returns a copy of the record with the given id.
func (s *Store) Get(id string) (question.Question, bool) {
	i, ok := s.index[id]
	if !ok {
		return question.Question{}, false
	}
	return s.rows[i].Clone(), true
}

// At returns a copy of the record at a row position.
func (s *Store) At(position int) (question.Question, bool) {
	if position < 0 || position >= len(s.rows) {
		return question.Question{}, false
	}
	return s.rows[position].Clone(), true
}

// Index returns the row position of an id, or -1.
func (s *Store) Index(id string) int {
	i, ok := s.index[id]
	if !ok {
		return -1
	}
	return i
}

// Len reports the number of records.
func (s *Store) Len() int {
	return len(s.rows)
}
