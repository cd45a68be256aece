package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"quizdesk/internal/backend"
	"quizdesk/internal/question"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// maxBodyBytes bounds PUT request bodies.
const maxBodyBytes = 1 << 20

// Store is the backing store served over HTTP.
type Store interface {
	backend.Lister
	backend.Getter
	backend.Putter
}

// Config wires dependencies for the HTTP handler and server.
type Config struct {
	Addr       string
	Store      Store
	Logger     *slog.Logger
	Collection string
	// Ready, when set, receives the bound address once the listener is open.
	Ready func(addr string)
}

// NewHandler builds the question collection router.
func NewHandler(cfg Config) http.Handler {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	collection := strings.Trim(cfg.Collection, "/")
	if collection == "" {
		collection = "questions"
	}
	h := &handler{store: cfg.Store, logger: logger}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger(logger))
	r.Use(middleware.Recoverer)
	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusNotFound, "not_found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, "method_not_allowed")
	})

	r.Get("/healthz", h.handleHealth)
	r.Route("/"+collection, func(items chi.Router) {
		items.Get("/", h.handleList)
		items.Get("/{id}", h.handleGet)
		items.Put("/{id}", h.handlePut)
	})
	return r
}

type handler struct {
	store  Store
	logger *slog.Logger
}

func (h *handler) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = io.WriteString(w, "ok")
}

func (h *handler) handleList(w http.ResponseWriter, r *http.Request) {
	if h.store == nil {
		writeError(w, http.StatusInternalServerError, "backend_error")
		return
	}
	questions, err := h.store.List(r.Context())
	if err != nil {
		h.logger.Error("list questions", "error", err, "request_id", middleware.GetReqID(r.Context()))
		writeError(w, http.StatusInternalServerError, "backend_error")
		return
	}
	writeJSON(w, http.StatusOK, questions)
}

func (h *handler) handleGet(w http.ResponseWriter, r *http.Request) {
	if h.store == nil {
		writeError(w, http.StatusInternalServerError, "backend_error")
		return
	}
	id := chi.URLParam(r, "id")
	q, err := h.store.Get(r.Context(), id)
	if err != nil {
		h.writeStoreError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, q)
}

func (h *handler) handlePut(w http.ResponseWriter, r *http.Request) {
	if h.store == nil {
		writeError(w, http.StatusInternalServerError, "backend_error")
		return
	}
	id := chi.URLParam(r, "id")
	q, err := decodeQuestion(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		writeErrorResponse(w, http.StatusBadRequest, errorResponse{Error: "invalid_request", Message: err.Error()})
		return
	}
	if q.ID == "" {
		q.ID = id
	}
	if q.ID != id {
		writeErrorResponse(w, http.StatusBadRequest, errorResponse{
			Error:   "invalid_request",
			Message: fmt.Sprintf("body id %q does not match path id %q", q.ID, id),
		})
		return
	}
	if err := question.Validate(q); err != nil {
		writeValidationError(w, err)
		return
	}
	if err := h.store.Put(r.Context(), q); err != nil {
		h.writeStoreError(w, r, err)
		return
	}
	h.logger.Info("question saved", "id", q.ID, "request_id", middleware.GetReqID(r.Context()))
	writeJSON(w, http.StatusOK, q)
}

func (h *handler) writeStoreError(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, backend.ErrNotFound) {
		writeError(w, http.StatusNotFound, "not_found")
		return
	}
	h.logger.Error("store operation failed", "error", err, "request_id", middleware.GetReqID(r.Context()))
	writeError(w, http.StatusInternalServerError, "backend_error")
}

func decodeQuestion(body io.Reader) (question.Question, error) {
	var q question.Question
	decoder := json.NewDecoder(body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&q); err != nil {
		return question.Question{}, fmt.Errorf("decode body: %w", err)
	}
	if err := decoder.Decode(&struct{}{}); err != io.EOF {
		return question.Question{}, errors.New("decode body: trailing data after record")
	}
	return q, nil
}
