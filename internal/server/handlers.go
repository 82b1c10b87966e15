package server

import (
	stderrors "errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"task-api/internal/domain"
	"task-api/internal/errors"
	"task-api/internal/validation"
)

func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = io.WriteString(w, "Hello World")
}

func (s *Server) handleListTasks(w http.ResponseWriter, r *http.Request) {
	tasks, err := s.api.ListTasks(r.Context())
	if err != nil {
		s.writeStorageError(w, r, "list tasks", err)
		return
	}
	if tasks == nil {
		tasks = []domain.Task{}
	}
	s.writeSuccess(w, r, http.StatusOK, tasks)
}

func (s *Server) handleCreateTask(w http.ResponseWriter, r *http.Request) {
	input, ok := s.readTaskInput(w, r)
	if !ok {
		return
	}

	created, err := s.api.CreateTask(r.Context(), input)
	if err != nil {
		s.writeAPIError(w, r, "create task", err)
		return
	}
	s.writeSuccess(w, r, http.StatusCreated, created)
}

func (s *Server) handleUpdateTask(w http.ResponseWriter, r *http.Request) {
	id, ok := s.parseTaskID(w, r)
	if !ok {
		return
	}
	input, ok := s.readTaskInput(w, r)
	if !ok {
		return
	}

	if err := s.api.UpdateTask(r.Context(), id, input); err != nil {
		s.writeAPIError(w, r, "update task", err)
		return
	}
	s.writeSuccess(w, r, http.StatusOK, nil)
}

func (s *Server) handleDeleteTask(w http.ResponseWriter, r *http.Request) {
	id, ok := s.parseTaskID(w, r)
	if !ok {
		return
	}

	if err := s.api.DeleteTask(r.Context(), id); err != nil {
		s.writeAPIError(w, r, "delete task", err)
		return
	}
	s.writeSuccess(w, r, http.StatusOK, nil)
}

// parseTaskID reads {task_id} as a signed base-10 32-bit integer, the range
// of the task_id column on every backend.
func (s *Server) parseTaskID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	raw := r.PathValue("task_id")
	id, err := strconv.ParseInt(raw, 10, 32)
	if err != nil {
		invalid := errors.NewInvalidInputError("task_id", raw, fmt.Sprintf("cannot parse `%s` to a 32-bit integer", raw))
		s.writeRequestError(w, r, http.StatusBadRequest, errors.GetUserMessage(invalid))
		return 0, false
	}
	return id, true
}

// readTaskInput checks the content type, then decodes the body. Failures are
// written to w and reported as false.
func (s *Server) readTaskInput(w http.ResponseWriter, r *http.Request) (validation.TaskInput, bool) {
	if !s.validator.IsJSONContentType(r.Header.Get("Content-Type")) {
		s.writeRequestError(w, r, http.StatusUnsupportedMediaType,
			"Expected request with `Content-Type: application/json`")
		return validation.TaskInput{}, false
	}

	data, err := io.ReadAll(http.MaxBytesReader(w, r.Body, s.opts.MaxBodyBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if stderrors.As(err, &tooLarge) {
			s.writeRequestError(w, r, http.StatusRequestEntityTooLarge,
				"Failed to buffer the request body: length limit exceeded")
			return validation.TaskInput{}, false
		}
		s.writeRequestError(w, r, http.StatusBadRequest, "Failed to buffer the request body: "+err.Error())
		return validation.TaskInput{}, false
	}

	input, err := s.validator.DecodeTaskInput(data)
	if err != nil {
		s.writeAPIError(w, r, "decode task", err)
		return validation.TaskInput{}, false
	}
	return input, true
}

// writeAPIError maps request-shape errors to 400/422 and everything else to
// the storage failure envelope.
func (s *Server) writeAPIError(w http.ResponseWriter, r *http.Request, op string, err error) {
	if validation.IsMalformedBodyError(err) {
		s.writeRequestError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	var invalid *validation.ValidationError
	if stderrors.As(err, &invalid) {
		s.writeRequestError(w, r, http.StatusUnprocessableEntity, invalid.GetUserFriendlyMessage())
		return
	}

	s.writeStorageError(w, r, op, err)
}
