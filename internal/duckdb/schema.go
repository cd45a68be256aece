package duckdb

import (
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"fmt"
	"strings"
)

//go:embed schema.sql
var schemaDDL string

// questionColumns lists the columns Put and List rely on.
var questionColumns = []string{
	"id", "position", "text", "choices", "correct_answer",
	"complexity", "chapter", "page", "explanation", "reference",
}

// EnsureSchema creates the questions table when absent and rejects a
// pre-existing table that lacks any of the expected columns.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	if db == nil {
		return errors.New("duckdb: db is nil")
	}
	if _, err := db.ExecContext(ctx, schemaDDL); err != nil {
		return err
	}

	rows, err := db.QueryContext(ctx,
		"SELECT column_name FROM information_schema.columns WHERE table_name = 'questions'")
	if err != nil {
		return fmt.Errorf("inspect questions table: %w", err)
	}
	defer rows.Close()
	present := make(map[string]bool, len(questionColumns))
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return fmt.Errorf("inspect questions table: %w", err)
		}
		present[strings.ToLower(name)] = true
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("inspect questions table: %w", err)
	}

	var missing []string
	for _, column := range questionColumns {
		if !present[column] {
			missing = append(missing, column)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("duckdb: questions table is missing columns: %s", strings.Join(missing, ", "))
	}
	return nil
}
