// Package server exposes the task API over HTTP.
package server

import (
	"log/slog"
	"net/http"

	"task-api/internal/api"
	"task-api/internal/validation"
)

// DefaultMaxBodyBytes caps request bodies read by the JSON handlers.
const DefaultMaxBodyBytes = 2 << 20

// Options controls how the server reports failures.
type Options struct {
	// ExposeStorageErrors writes the raw storage error text into 500
	// responses. When false a generic message is sent instead.
	ExposeStorageErrors bool
	MaxBodyBytes        int64
}

// Server routes HTTP requests to the task API.
type Server struct {
	api       api.API
	logger    *slog.Logger
	opts      Options
	validator *validation.TaskValidator
	handler   http.Handler
}

// New creates a Server with every route and middleware installed.
func New(taskAPI api.API, logger *slog.Logger, opts Options) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	if opts.MaxBodyBytes <= 0 {
		opts.MaxBodyBytes = DefaultMaxBodyBytes
	}

	s := &Server{
		api:       taskAPI,
		logger:    logger,
		opts:      opts,
		validator: validation.NewTaskValidator(),
	}

	mux := http.NewServeMux()
	s.registerRoutes(mux)
	s.handler = s.requestID(s.accessLog(s.recoverPanics(mux)))

	return s
}

func (s *Server) registerRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /{$}", s.handleRoot)
	mux.HandleFunc("GET /tasks", s.handleListTasks)
	mux.HandleFunc("POST /tasks", s.handleCreateTask)
	mux.HandleFunc("PATCH /tasks/{task_id}", s.handleUpdateTask)
	mux.HandleFunc("DELETE /tasks/{task_id}", s.handleDeleteTask)
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.handler.ServeHTTP(w, r)
}
