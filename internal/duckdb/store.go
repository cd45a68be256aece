package duckdb

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"quizdesk/internal/backend"
	"quizdesk/internal/question"

	_ "github.com/duckdb/duckdb-go/v2"
)

const selectColumns = `id, text, choices, correct_answer, complexity, chapter, page, explanation, reference`

// Store is a question backend persisted in a DuckDB database file.
type Store struct {
	db *sql.DB
}

// Open connects to the DuckDB database at path (":memory:" or "" for an
// in-memory database) and applies the schema.
func Open(ctx context.Context, path string) (*Store, error) {
	if path == ":memory:" {
		path = ""
	}
	db, err := sql.Open("duckdb", path)
	if err != nil {
		return nil, fmt.Errorf("open duckdb: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping duckdb: %w", err)
	}
	if err := EnsureSchema(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}
	return &Store{db: db}, nil
}

// DB exposes the underlying connection pool.
func (s *Store) DB() *sql.DB {
	return s.db
}

// Close releases the database.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Seed inserts questions when the table is empty. It reports whether rows
// were written.
func (s *Store) Seed(ctx context.Context, questions []question.Question) (bool, error) {
	if err := question.ValidateCollection(questions); err != nil {
		return false, err
	}
	var count int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM questions`).Scan(&count); err != nil {
		return false, fmt.Errorf("count questions: %w", err)
	}
	if count > 0 || len(questions) == 0 {
		return false, nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return false, fmt.Errorf("begin seed: %w", err)
	}
	defer func() { _ = tx.Rollback() }()
	for i, q := range questions {
		choices, err := encodeChoices(q.Choices)
		if err != nil {
			return false, err
		}
		if _, err := tx.ExecContext(
			ctx,
			`INSERT INTO questions (id, position, text, choices, correct_answer, complexity, chapter, page, explanation, reference)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			q.ID, i, q.Text, choices, q.CorrectAnswer, q.Complexity, q.Chapter, q.Page, q.Explanation, nullString(q.Reference),
		); err != nil {
			return false, fmt.Errorf("insert question %q: %w", q.ID, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return false, fmt.Errorf("commit seed: %w", err)
	}
	return true, nil
}

// List returns every question ordered by insertion position.
func (s *Store) List(ctx context.Context) ([]question.Question, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT `+selectColumns+` FROM questions ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("list questions: %w", err)
	}
	defer rows.Close()

	out := []question.Question{}
	for rows.Next() {
		q, err := scanQuestion(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, q)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list questions: %w", err)
	}
	return out, nil
}

// Get returns one question by id.
func (s *Store) Get(ctx context.Context, id string) (question.Question, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+selectColumns+` FROM questions WHERE id = ?`, id)
	q, err := scanQuestion(row)
	if errors.Is(err, sql.ErrNoRows) {
		return question.Question{}, fmt.Errorf("get %q: %w", id, backend.ErrNotFound)
	}
	return q, err
}

// Put replaces the stored question with the same id. Unknown ids are not inserted.
func (s *Store) Put(ctx context.Context, q question.Question) error {
	choices, err := encodeChoices(q.Choices)
	if err != nil {
		return err
	}
	result, err := s.db.ExecContext(
		ctx,
		`UPDATE questions
		 SET text = ?, choices = ?, correct_answer = ?, complexity = ?, chapter = ?, page = ?, explanation = ?, reference = ?
		 WHERE id = ?`,
		q.Text, choices, q.CorrectAnswer, q.Complexity, q.Chapter, q.Page, q.Explanation, nullString(q.Reference), q.ID,
	)
	if err != nil {
		return fmt.Errorf("update question %q: %w", q.ID, err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("update question %q: %w", q.ID, err)
	}
	if affected == 0 {
		return fmt.Errorf("put %q: %w", q.ID, backend.ErrNotFound)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanQuestion(row rowScanner) (question.Question, error) {
	var (
		q         question.Question
		choices   string
		reference sql.NullString
	)
	if err := row.Scan(&q.ID, &q.Text, &choices, &q.CorrectAnswer, &q.Complexity, &q.Chapter, &q.Page, &q.Explanation, &reference); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return question.Question{}, err
		}
		return question.Question{}, fmt.Errorf("scan question: %w", err)
	}
	if err := json.Unmarshal([]byte(choices), &q.Choices); err != nil {
		return question.Question{}, fmt.Errorf("decode choices for %q: %w", q.ID, err)
	}
	if reference.Valid {
		q.Reference = question.StringPtr(reference.String)
	}
	return q, nil
}

func encodeChoices(choices []string) (string, error) {
	if choices == nil {
		choices = []string{}
	}
	data, err := json.Marshal(choices)
	if err != nil {
		return "", fmt.Errorf("encode choices: %w", err)
	}
	return string(data), nil
}

func nullString(value *string) sql.NullString {
	if value == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *value, Valid: true}
}
