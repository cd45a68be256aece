package question

import "slices"

// Question is a single quiz-question record as stored by the backing store.
type Question struct {
	ID            string   `json:"id" yaml:"id" validate:"required"`
	Text          string   `json:"text" yaml:"text"`
	Choices       []string `json:"choices" yaml:"choices" validate:"required,min=1"`
	CorrectAnswer int      `json:"correctAnswer" yaml:"correctAnswer"`
	Complexity    int      `json:"complexity" yaml:"complexity"`
	Chapter       int      `json:"chapter" yaml:"chapter"`
	Page          int      `json:"page" yaml:"page"`
	Explanation   string   `json:"explanation" yaml:"explanation"`
	Reference     *string  `json:"reference,omitempty" yaml:"reference,omitempty"`
}

// Collection is the json-server db.json shape holding the question list.
type Collection struct {
	Questions []Question `json:"questions" yaml:"questions"`
}

// Clone returns a deep copy that shares no slices or pointers with q.
func (q Question) Clone() Question {
	out := q
	if q.Choices != nil {
		out.Choices = slices.Clone(q.Choices)
	}
	if q.Reference != nil {
		ref := *q.Reference
		out.Reference = &ref
	}
	return out
}

// Equal reports whether two records are deeply equal.
func (q Question) Equal(other Question) bool {
	if q.ID != other.ID ||
		q.Text != other.Text ||
		q.CorrectAnswer != other.CorrectAnswer ||
		q.Complexity != other.Complexity ||
		q.Chapter != other.Chapter ||
		q.Page != other.Page ||
		q.Explanation != other.Explanation {
		return false
	}
	if !slices.Equal(q.Choices, other.Choices) {
		return false
	}
	if (q.Reference == nil) != (other.Reference == nil) {
		return false
	}
	return q.Reference == nil || *q.Reference == *other.Reference
}

// ReferenceText returns the reference or an empty string when unset.
func (q Question) ReferenceText() string {
	if q.Reference == nil {
		return ""
	}
	return *q.Reference
}

// StringPtr returns a pointer to a copy of value.
func StringPtr(value string) *string {
	return &value
}

// CloneAll deep-copies a slice of records.
func CloneAll(questions []Question) []Question {
	if questions == nil {
		return nil
	}
	out := make([]Question, len(questions))
	for i, q := range questions {
		out[i] = q.Clone()
	}
	return out
}
