package backend

import (
	"context"
	"errors"

	"quizdesk/internal/question"
)

// ErrNotFound reports that no record exists for an id.
var ErrNotFound = errors.New("question not found")

// Lister reads the full question collection.
type Lister interface {
	List(ctx context.Context) ([]question.Question, error)
}

// Putter replaces a single stored question by id.
type Putter interface {
	Put(ctx context.Context, q question.Question) error
}

// Getter reads a single question by id.
type Getter interface {
	Get(ctx context.Context, id string) (question.Question, error)
}

// Backend provides the read-all / write-one-by-id backing store operations.
type Backend interface {
	Lister
	Putter
}
