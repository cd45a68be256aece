package testutil

import "quizdesk/internal/question"

// Questions returns a fresh two-record fixture matching the db.json layout.
func Questions() []question.Question {
	return []question.Question{
		{
			ID:            "1",
			Text:          "What is the capital of France?",
			Choices:       []string{"Berlin", "Paris", "Rome"},
			CorrectAnswer: 1,
			Complexity:    1,
			Chapter:       1,
			Page:          12,
			Explanation:   "Paris has been the capital since 987.",
			Reference:     question.StringPtr("Atlas p.12"),
		},
		{
			ID:            "2",
			Text:          "2 + 2 = ?",
			Choices:       []string{"3", "4"},
			CorrectAnswer: 1,
			Complexity:    2,
			Chapter:       3,
			Page:          40,
			Explanation:   "Basic arithmetic.",
		},
	}
}
