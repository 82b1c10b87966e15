package server

import (
	"encoding/json"
	"net/http"

	"task-api/internal/errors"
	"task-api/internal/repository/sqldb"
)

const redactedMessage = "An unexpected error occurred. Please try again."

// envelope is the body of every JSON response.
type envelope struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Message string      `json:"message,omitempty"`
}

func (s *Server) writeJSON(w http.ResponseWriter, r *http.Request, status int, body envelope) {
	data, err := json.Marshal(body)
	if err != nil {
		s.logger.ErrorContext(r.Context(), "failed to encode response",
			"request_id", RequestIDFromContext(r.Context()),
			"error", err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(data)
}

func (s *Server) writeSuccess(w http.ResponseWriter, r *http.Request, status int, data interface{}) {
	s.writeJSON(w, r, status, envelope{Success: true, Data: data})
}

// writeStorageError reports a failed repository call as 500 with the
// failure envelope.
func (s *Server) writeStorageError(w http.ResponseWriter, r *http.Request, op string, err error) {
	message := errors.CauseMessage(err)
	if !s.opts.ExposeStorageErrors {
		message = redactedMessage
		if errors.IsAppError(err) {
			message = errors.GetUserMessage(err)
		}
	}

	if errors.ShouldLogError(err) {
		args := []any{
			"request_id", RequestIDFromContext(r.Context()),
			"op", op,
			"code", errors.GetErrorCode(err),
			"class", string(sqldb.ClassifyError(err)),
			"error", err,
		}
		if appErr, ok := errors.AsAppError(err); ok {
			args = append(args, appErr.LogArgs()...)
		}
		s.logger.ErrorContext(r.Context(), "storage failure", args...)
	}

	s.writeJSON(w, r, http.StatusInternalServerError, envelope{Success: false, Message: message})
}

// writeRequestError rejects a request before it reaches the API. The body is
// plain text, matching how path and body extraction failures are reported.
func (s *Server) writeRequestError(w http.ResponseWriter, r *http.Request, status int, message string) {
	s.logger.DebugContext(r.Context(), "request rejected",
		"request_id", RequestIDFromContext(r.Context()),
		"status", status,
		"reason", message)

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(message))
}
