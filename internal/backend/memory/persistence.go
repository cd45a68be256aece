package memory

import (
	"errors"
	"io/fs"

	"quizdesk/internal/question"
)

// load reads the backing file if it exists. It reports whether a file was found.
func (b *Backend) load() (bool, error) {
	questions, err := question.LoadFile(b.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return false, nil
		}
		return false, err
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	return true, b.replace(questions)
}

// save writes the collection to the backing file. Callers hold the lock.
func (b *Backend) save() error {
	if b.path == "" {
		return nil
	}
	snapshot := make([]question.Question, 0, len(b.order))
	for _, id := range b.order {
		snapshot = append(snapshot, b.records[id])
	}
	return question.WriteFile(b.path, snapshot)
}
