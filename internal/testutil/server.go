package testutil

import (
	"net/http/httptest"
	"testing"

	"quizdesk/internal/api"
	"quizdesk/internal/backend/memory"
	"quizdesk/internal/question"
)

// ServerConfig wires dependencies for StartServer.
type ServerConfig struct {
	Store     api.Store
	Questions []question.Question
}

// ServerInstance represents a running HTTP test server.
type ServerInstance struct {
	BaseURL string
	Store   api.Store
	Close   func()
}

// StartServer launches an in-process question store server. Without an
// explicit Store it serves an in-memory backend seeded with Questions.
func StartServer(t testing.TB, cfg ServerConfig) *ServerInstance {
	t.Helper()
	store := cfg.Store
	if store == nil {
		mem, err := memory.New(cfg.Questions)
		if err != nil {
			t.Fatalf("seed memory backend: %v", err)
		}
		store = mem
	}
	server := httptest.NewServer(api.NewHandler(api.Config{Store: store}))
	t.Cleanup(server.Close)
	return &ServerInstance{
		BaseURL: server.URL,
		Store:   store,
		Close:   server.Close,
	}
}
