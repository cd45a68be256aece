package question

import (
	"fmt"
	"strconv"
	"strings"
)

// Field names an editable scalar field of a Question.
type Field string

// Editable fields, named as on the wire.
const (
	FieldText          Field = "text"
	FieldExplanation   Field = "explanation"
	FieldReference     Field = "reference"
	FieldChapter       Field = "chapter"
	FieldPage          Field = "page"
	FieldComplexity    Field = "complexity"
	FieldCorrectAnswer Field = "correctAnswer"
)

// EditorFields lists the scalar fields in the order the editor shows them.
// Choices are edited per index and sit between Reference and Chapter.
var EditorFields = []Field{
	FieldText,
	FieldExplanation,
	FieldReference,
	FieldChapter,
	FieldPage,
	FieldComplexity,
	FieldCorrectAnswer,
}

// ParseField resolves a field name, accepting the wire name case-insensitively.
func ParseField(name string) (Field, error) {
	trimmed := strings.TrimSpace(name)
	for _, field := range EditorFields {
		if strings.EqualFold(trimmed, string(field)) {
			return field, nil
		}
	}
	return "", fmt.Errorf("unknown field %q", name)
}

// Numeric reports whether the field holds an integer.
func (f Field) Numeric() bool {
	switch f {
	case FieldChapter, FieldPage, FieldComplexity, FieldCorrectAnswer:
		return true
	default:
		return false
	}
}

// Label returns the editor label for the field.
func (f Field) Label() string {
	switch f {
	case FieldText:
		return "Question Text"
	case FieldExplanation:
		return "Explanation"
	case FieldReference:
		return "Reference"
	case FieldChapter:
		return "Chapter"
	case FieldPage:
		return "Page"
	case FieldComplexity:
		return "Complexity"
	case FieldCorrectAnswer:
		return "Correct Answer"
	default:
		return string(f)
	}
}

// Value renders a field as editable text.
func (q Question) Value(field Field) string {
	switch field {
	case FieldText:
		return q.Text
	case FieldExplanation:
		return q.Explanation
	case FieldReference:
		return q.ReferenceText()
	case FieldChapter:
		return strconv.Itoa(q.Chapter)
	case FieldPage:
		return strconv.Itoa(q.Page)
	case FieldComplexity:
		return strconv.Itoa(q.Complexity)
	case FieldCorrectAnswer:
		return strconv.Itoa(q.CorrectAnswer)
	default:
		return ""
	}
}
