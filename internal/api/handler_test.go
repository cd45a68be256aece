package api_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"
	"testing"

	"quizdesk/internal/question"
	"quizdesk/internal/testutil"
)

func do(t *testing.T, method, url, body string) (int, []byte) {
	t.Helper()
	ctx := testutil.Context(t, 0)
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("do request: %v", err)
	}
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	return resp.StatusCode, data
}

func errorCode(t *testing.T, data []byte) string {
	t.Helper()
	var payload struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(data, &payload); err != nil {
		t.Fatalf("decode error body %q: %v", data, err)
	}
	return payload.Error
}

func TestListReturnsAllQuestions(t *testing.T) {
	srv := testutil.StartServer(t, testutil.ServerConfig{Questions: testutil.Questions()})

	status, body := do(t, http.MethodGet, srv.BaseURL+"/questions", "")
	if status != http.StatusOK {
		t.Fatalf("expected 200, got %d", status)
	}
	var got []question.Question
	if err := json.Unmarshal(body, &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	want := testutil.Questions()
	if len(got) != len(want) {
		t.Fatalf("expected %d questions, got %d", len(want), len(got))
	}
	for i := range want {
		if !got[i].Equal(want[i]) {
			t.Fatalf("question %d mismatch: %+v", i, got[i])
		}
	}
}

func TestListEmptyCollectionIsArray(t *testing.T) {
	srv := testutil.StartServer(t, testutil.ServerConfig{})
	status, body := do(t, http.MethodGet, srv.BaseURL+"/questions", "")
	if status != http.StatusOK || strings.TrimSpace(string(body)) != "[]" {
		t.Fatalf("expected empty array, got %d %q", status, body)
	}
}

func TestGetUnknownIDIsNotFound(t *testing.T) {
	srv := testutil.StartServer(t, testutil.ServerConfig{Questions: testutil.Questions()})
	status, body := do(t, http.MethodGet, srv.BaseURL+"/questions/99", "")
	if status != http.StatusNotFound || errorCode(t, body) != "not_found" {
		t.Fatalf("expected 404 not_found, got %d %s", status, body)
	}
}

func TestPutReplacesRecord(t *testing.T) {
	srv := testutil.StartServer(t, testutil.ServerConfig{Questions: testutil.Questions()})
	updated := testutil.Questions()[0]
	updated.Text = "Capital of France?"
	updated.Reference = nil
	payload, _ := json.Marshal(updated)

	status, body := do(t, http.MethodPut, srv.BaseURL+"/questions/1", string(payload))
	if status != http.StatusOK {
		t.Fatalf("expected 200, got %d %s", status, body)
	}
	stored, err := srv.Store.Get(context.Background(), "1")
	if err != nil {
		t.Fatalf("get stored: %v", err)
	}
	if !stored.Equal(updated) {
		t.Fatalf("expected stored %+v, got %+v", updated, stored)
	}
}

func TestPutRejectsBadRequests(t *testing.T) {
	srv := testutil.StartServer(t, testutil.ServerConfig{Questions: testutil.Questions()})
	valid, _ := json.Marshal(testutil.Questions()[0])

	cases := []struct {
		name   string
		path   string
		body   string
		status int
		code   string
	}{
		{name: "malformed", path: "/questions/1", body: "{", status: http.StatusBadRequest, code: "invalid_request"},
		{name: "unknown field", path: "/questions/1", body: `{"id":"1","extra":true}`, status: http.StatusBadRequest, code: "invalid_request"},
		{name: "id mismatch", path: "/questions/2", body: string(valid), status: http.StatusBadRequest, code: "invalid_request"},
		{name: "no choices", path: "/questions/1", body: `{"id":"1","text":"x","choices":[]}`, status: http.StatusBadRequest, code: "invalid_request"},
		{name: "unknown id", path: "/questions/9", body: `{"id":"9","text":"x","choices":["a"]}`, status: http.StatusNotFound, code: "not_found"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			status, body := do(t, http.MethodPut, srv.BaseURL+tc.path, tc.body)
			if status != tc.status {
				t.Fatalf("expected %d, got %d %s", tc.status, status, body)
			}
			if got := errorCode(t, body); got != tc.code {
				t.Fatalf("expected code %q, got %q", tc.code, got)
			}
		})
	}

	list, err := srv.Store.List(context.Background())
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("expected no inserts, got %d records", len(list))
	}
}

func TestPutValidationReportsIssues(t *testing.T) {
	srv := testutil.StartServer(t, testutil.ServerConfig{Questions: testutil.Questions()})
	_, body := do(t, http.MethodPut, srv.BaseURL+"/questions/1", `{"id":"1","choices":[]}`)
	var payload struct {
		Issues []struct {
			Field string `json:"field"`
		} `json:"issues"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(payload.Issues) == 0 || payload.Issues[0].Field != "choices" {
		t.Fatalf("expected choices issue, got %s", body)
	}
}

func TestUnsupportedMethods(t *testing.T) {
	srv := testutil.StartServer(t, testutil.ServerConfig{Questions: testutil.Questions()})
	for _, tc := range []struct{ method, path string }{
		{http.MethodDelete, "/questions/1"},
		{http.MethodPost, "/questions"},
		{http.MethodPut, "/questions"},
	} {
		status, _ := do(t, tc.method, srv.BaseURL+tc.path, "")
		if status != http.StatusMethodNotAllowed {
			t.Fatalf("%s %s: expected 405, got %d", tc.method, tc.path, status)
		}
	}
}

func TestHealthz(t *testing.T) {
	srv := testutil.StartServer(t, testutil.ServerConfig{})
	status, body := do(t, http.MethodGet, srv.BaseURL+"/healthz", "")
	if status != http.StatusOK || string(body) != "ok" {
		t.Fatalf("expected ok, got %d %q", status, body)
	}
}

type failingStore struct{}

func (failingStore) List(context.Context) ([]question.Question, error) {
	return nil, errors.New("disk on fire")
}

func (failingStore) Get(context.Context, string) (question.Question, error) {
	return question.Question{}, errors.New("disk on fire")
}

func (failingStore) Put(context.Context, question.Question) error {
	return errors.New("disk on fire")
}

func TestStoreFailureIsServerError(t *testing.T) {
	srv := testutil.StartServer(t, testutil.ServerConfig{Store: failingStore{}})
	status, body := do(t, http.MethodGet, srv.BaseURL+"/questions", "")
	if status != http.StatusInternalServerError || errorCode(t, body) != "backend_error" {
		t.Fatalf("expected backend_error, got %d %s", status, body)
	}
}
