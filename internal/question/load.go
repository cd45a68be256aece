package question

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// LoadFile reads, parses, and validates a questions file in the db.json shape.
func LoadFile(path string) ([]Question, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read questions file: %w", err)
	}
	collection, err := parseCollection(data, path)
	if err != nil {
		return nil, err
	}
	if err := ValidateCollection(collection.Questions); err != nil {
		return nil, err
	}
	return collection.Questions, nil
}

func parseCollection(data []byte, path string) (Collection, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yml", ".yaml":
		return parseYAMLCollection(data)
	default:
		return parseJSONCollection(data)
	}
}

func parseJSONCollection(data []byte) (Collection, error) {
	var collection Collection
	decoder := json.NewDecoder(bytes.NewReader(data))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&collection); err != nil {
		return Collection{}, fmt.Errorf("parse json: %w", err)
	}
	var extra json.RawMessage
	if err := decoder.Decode(&extra); err != io.EOF {
		if err == nil {
			return Collection{}, fmt.Errorf("parse json: multiple documents are not supported")
		}
		return Collection{}, fmt.Errorf("parse json: %w", err)
	}
	return collection, nil
}

func parseYAMLCollection(data []byte) (Collection, error) {
	var collection Collection
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&collection); err != nil {
		return Collection{}, fmt.Errorf("parse yaml: %w", err)
	}
	var extra yaml.Node
	if err := decoder.Decode(&extra); err != io.EOF {
		if err == nil {
			return Collection{}, fmt.Errorf("parse yaml: multiple documents are not supported")
		}
		return Collection{}, fmt.Errorf("parse yaml: %w", err)
	}
	return collection, nil
}

// WriteFile persists questions in the db.json shape using an atomic rename.
func WriteFile(path string, questions []Question) error {
	if path == "" {
		return fmt.Errorf("questions path is required")
	}
	if questions == nil {
		questions = []Question{}
	}
	payload, err := json.MarshalIndent(Collection{Questions: questions}, "", "  ")
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	tmpPath := path + ".tmp"
	file, err := os.OpenFile(tmpPath, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return err
	}
	_, writeErr := file.Write(payload)
	syncErr := file.Sync()
	closeErr := file.Close()
	for _, err := range []error{writeErr, syncErr, closeErr} {
		if err != nil {
			_ = os.Remove(tmpPath)
			return err
		}
	}
	if err := os.Rename(tmpPath, path); err != nil {
		_ = os.Remove(tmpPath)
		return err
	}
	return nil
}
