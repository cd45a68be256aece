package memory

import (
	"context"
	"fmt"
	"sync"

	"quizdesk/internal/backend"
	"quizdesk/internal/question"
)

// Backend keeps the question collection in memory, optionally mirrored to a file.
type Backend struct {
	mu      sync.RWMutex
	order   []string
	records map[string]question.Question
	path    string
}

// New creates a Backend seeded with the given questions.
func New(questions []question.Question) (*Backend, error) {
	b := &Backend{records: map[string]question.Question{}}
	if err := b.replace(questions); err != nil {
		return nil, err
	}
	return b, nil
}

// Open creates a Backend persisted to path. A missing file starts empty, or
// from seed when provided.
func Open(path string, seed []question.Question) (*Backend, error) {
	if path == "" {
		return nil, fmt.Errorf("memory backend: path is required")
	}
	b := &Backend{records: map[string]question.Question{}, path: path}
	loaded, err := b.load()
	if err != nil {
		return nil, err
	}
	if !loaded && len(seed) > 0 {
		b.mu.Lock()
		defer b.mu.Unlock()
		if err := b.replace(seed); err != nil {
			return nil, err
		}
		if err := b.save(); err != nil {
			return nil, err
		}
	}
	return b, nil
}

// List returns every question in insertion order.
func (b *Backend) List(ctx context.Context) ([]question.Question, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	b.mu.RLock()
	defer b.mu.RUnlock()
	out := make([]question.Question, 0, len(b.order))
	for _, id := range b.order {
		out = append(out, b.records[id].Clone())
	}
	return out, nil
}

// Get returns one question by id.
func (b *Backend) Get(ctx context.Context, id string) (question.Question, error) {
	if err := ctx.Err(); err != nil {
		return question.Question{}, err
	}
	b.mu.RLock()
	defer b.mu.RUnlock()
	q, ok := b.records[id]
	if !ok {
		return question.Question{}, fmt.Errorf("get %q: %w", id, backend.ErrNotFound)
	}
	return q.Clone(), nil
}

// Put replaces an existing question. Unknown ids are not inserted.
func (b *Backend) Put(ctx context.Context, q question.Question) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	prev, ok := b.records[q.ID]
	if !ok {
		return fmt.Errorf("put %q: %w", q.ID, backend.ErrNotFound)
	}
	b.records[q.ID] = q.Clone()
	if err := b.save(); err != nil {
		b.records[q.ID] = prev
		return fmt.Errorf("persist questions: %w", err)
	}
	return nil
}

// Len reports the number of stored questions.
func (b *Backend) Len() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.order)
}

// replace swaps the whole collection. Callers hold the lock or own b exclusively.
func (b *Backend) replace(questions []question.Question) error {
	if err := question.ValidateCollection(questions); err != nil {
		return err
	}
	b.order = make([]string, 0, len(questions))
	b.records = make(map[string]question.Question, len(questions))
	for _, q := range questions {
		b.order = append(b.order, q.ID)
		b.records[q.ID] = q.Clone()
	}
	return nil
}
