package httpclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"quizdesk/internal/backend"
	"quizdesk/internal/question"
)

// DefaultCollection is the json-server collection holding the questions.
const DefaultCollection = "questions"

// RequestIDHeader carries the per-request id.
const RequestIDHeader = "X-Request-ID"

// Client implements backend.Backend against a REST backing store.
type Client struct {
	baseURL    string
	collection string
	client     *http.Client
	logger     *slog.Logger
}

// Options configures a Client.
type Options struct {
	Collection string
	Timeout    time.Duration
	Logger     *slog.Logger
	HTTPClient *http.Client
}

// New constructs a client for the given base URL.
func New(baseURL string, opts Options) *Client {
	collection := strings.Trim(opts.Collection, "/")
	if collection == "" {
		collection = DefaultCollection
	}
	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: opts.Timeout}
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		collection: collection,
		client:     httpClient,
		logger:     logger,
	}
}

// List fetches the whole collection.
func (c *Client) List(ctx context.Context) ([]question.Question, error) {
	body, status, err := c.do(ctx, http.MethodGet, c.collectionURL(), nil)
	if err != nil {
		return nil, fmt.Errorf("list questions: %w", err)
	}
	if status != http.StatusOK {
		return nil, fmt.Errorf("list questions: %w", decodeHTTPError(status, body))
	}
	var questions []question.Question
	if err := json.Unmarshal(body, &questions); err != nil {
		return nil, fmt.Errorf("list questions: decode response: %w", err)
	}
	if questions == nil {
		questions = []question.Question{}
	}
	return questions, nil
}

// Get fetches a single question by id.
func (c *Client) Get(ctx context.Context, id string) (question.Question, error) {
	body, status, err := c.do(ctx, http.MethodGet, c.itemURL(id), nil)
	if err != nil {
		return question.Question{}, fmt.Errorf("get question %q: %w", id, err)
	}
	if status != http.StatusOK {
		return question.Question{}, fmt.Errorf("get question %q: %w", id, decodeHTTPError(status, body))
	}
	var q question.Question
	if err := json.Unmarshal(body, &q); err != nil {
		return question.Question{}, fmt.Errorf("get question %q: decode response: %w", id, err)
	}
	return q, nil
}

// Put replaces the stored question with the full record.
func (c *Client) Put(ctx context.Context, q question.Question) error {
	payload, err := json.Marshal(q)
	if err != nil {
		return fmt.Errorf("put question %q: %w", q.ID, err)
	}
	body, status, err := c.do(ctx, http.MethodPut, c.itemURL(q.ID), payload)
	if err != nil {
		return fmt.Errorf("put question %q: %w", q.ID, err)
	}
	if status < 200 || status >= 300 {
		return fmt.Errorf("put question %q: %w", q.ID, decodeHTTPError(status, body))
	}
	return nil
}

func (c *Client) collectionURL() string {
	return c.baseURL + "/" + c.collection
}

func (c *Client) itemURL(id string) string {
	return c.collectionURL() + "/" + url.PathEscape(id)
}

func (c *Client) do(ctx context.Context, method, target string, payload []byte) ([]byte, int, error) {
	var reader io.Reader
	if payload != nil {
		reader = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return nil, 0, err
	}
	requestID := uuid.NewString()
	req.Header.Set(RequestIDHeader, requestID)
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	started := time.Now()
	resp, err := c.client.Do(req)
	if err != nil {
		c.logger.Warn("backing store request failed",
			"method", method, "url", target, "request_id", requestID, "error", err)
		return nil, 0, err
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	c.logger.Debug("backing store request",
		"method", method,
		"url", target,
		"request_id", requestID,
		"status", resp.StatusCode,
		"duration", time.Since(started))
	if err != nil {
		return nil, resp.StatusCode, err
	}
	return body, resp.StatusCode, nil
}

type errorResponse struct {
	Error string `json:"error"`
}

func decodeHTTPError(status int, body []byte) error {
	var base error = &StatusError{Status: status}
	var resp errorResponse
	if err := json.Unmarshal(body, &resp); err == nil && resp.Error != "" {
		base = &StatusError{Status: status, Code: resp.Error}
	}
	if status == http.StatusNotFound {
		return fmt.Errorf("%w: %w", backend.ErrNotFound, base)
	}
	return base
}

// StatusError reports a non-success HTTP response.
type StatusError struct {
	Status int
	Code   string
}

func (e *StatusError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("http %d: %s", e.Status, e.Code)
	}
	return fmt.Sprintf("http %d", e.Status)
}
