package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"quizdesk/internal/question"
)

type errorResponse struct {
	Error   string          `json:"error"`
	Message string          `json:"message,omitempty"`
	Issues  []issueResponse `json:"issues,omitempty"`
}

type issueResponse struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func writeError(w http.ResponseWriter, status int, code string) {
	writeErrorResponse(w, status, errorResponse{Error: code})
}

func writeErrorResponse(w http.ResponseWriter, status int, payload errorResponse) {
	writeJSON(w, status, payload)
}

func writeValidationError(w http.ResponseWriter, err error) {
	payload := errorResponse{Error: "invalid_request", Message: err.Error()}
	var validationErr *question.ValidationError
	if errors.As(err, &validationErr) {
		for _, issue := range validationErr.Issues {
			payload.Issues = append(payload.Issues, issueResponse{Field: issue.Field, Message: issue.Message})
		}
	}
	writeErrorResponse(w, http.StatusBadRequest, payload)
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	data, err := json.Marshal(payload)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(data)
}
