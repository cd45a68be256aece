package memory

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"quizdesk/internal/backend"
	"quizdesk/internal/question"
)

func seed() []question.Question {
	return []question.Question{
		{ID: "1", Text: "Q1", Choices: []string{"A", "B"}, Chapter: 1, Page: 1, Complexity: 1, Explanation: "e1"},
		{ID: "2", Text: "Q2", Choices: []string{"C", "D"}, Chapter: 2, Page: 9, Complexity: 3, Explanation: "e2"},
	}
}

// TestPutReplacesExisting verifies Put replaces by id and keeps order.
func TestPutReplacesExisting(t *testing.T) {
	b, err := New(seed())
	if err != nil {
		t.Fatalf("new backend: %v", err)
	}
	ctx := context.Background()
	updated := seed()[0]
	updated.Text = "Q1-edited"
	if err := b.Put(ctx, updated); err != nil {
		t.Fatalf("put: %v", err)
	}
	list, err := b.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 2 || list[0].ID != "1" || list[0].Text != "Q1-edited" {
		t.Fatalf("unexpected list: %+v", list)
	}
}

// TestPutUnknownIDIsNotInserted verifies there is no insert-on-miss.
func TestPutUnknownIDIsNotInserted(t *testing.T) {
	b, err := New(seed())
	if err != nil {
		t.Fatalf("new backend: %v", err)
	}
	err = b.Put(context.Background(), question.Question{ID: "99", Choices: []string{"x"}})
	if !errors.Is(err, backend.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
	if b.Len() != 2 {
		t.Fatalf("expected 2 records, got %d", b.Len())
	}
}

// TestListReturnsCopies verifies callers cannot mutate stored records.
func TestListReturnsCopies(t *testing.T) {
	b, err := New(seed())
	if err != nil {
		t.Fatalf("new backend: %v", err)
	}
	ctx := context.Background()
	list, _ := b.List(ctx)
	list[0].Choices[0] = "mutated"
	got, err := b.Get(ctx, "1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Choices[0] != "A" {
		t.Fatalf("expected stored choices untouched, got %v", got.Choices)
	}
}

// TestOpenPersistsAcrossRestarts verifies file-backed state survives reopen.
func TestOpenPersistsAcrossRestarts(t *testing.T) {
	path := filepath.Join(t.TempDir(), "db.json")
	b, err := Open(path, seed())
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	updated := seed()[1]
	updated.Page = 10
	if err := b.Put(context.Background(), updated); err != nil {
		t.Fatalf("put: %v", err)
	}

	reopened, err := Open(path, nil)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	got, err := reopened.Get(context.Background(), "2")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Page != 10 {
		t.Fatalf("expected persisted page 10, got %d", got.Page)
	}
}

// TestNewRejectsDuplicateIDs verifies seeds are validated.
func TestNewRejectsDuplicateIDs(t *testing.T) {
	questions := append(seed(), seed()[0])
	if _, err := New(questions); err == nil {
		t.Fatalf("expected duplicate id error")
	}
}
