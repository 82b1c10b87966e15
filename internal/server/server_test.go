package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"task-api/internal/api"
	"task-api/internal/logging"
	"task-api/internal/repository/sqldb"
)

func setupTestServer(t *testing.T, opts Options) http.Handler {
	t.Helper()
	h, _ := setupTestServerWithRepo(t, opts)
	return h
}

func setupTestServerWithRepo(t *testing.T, opts Options) (http.Handler, *sqldb.SQLRepository) {
	t.Helper()
	repo, err := sqldb.NewWithOptions(context.Background(), "sqlite://:memory:", sqldb.Options{})
	require.NoError(t, err)
	t.Cleanup(func() { repo.Close() })

	logger := logging.Discard()
	return New(api.New(repo, logger), logger, opts), repo
}

func doRequest(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

type createResponse struct {
	Success bool `json:"success"`
	Data    struct {
		TaskID int64 `json:"task_id"`
	} `json:"data"`
}

func createTask(t *testing.T, h http.Handler, body string) int64 {
	t.Helper()
	rec := doRequest(t, h, http.MethodPost, "/tasks", body)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var resp createResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.True(t, resp.Success)
	return resp.Data.TaskID
}

func TestRoot(t *testing.T) {
	h := setupTestServer(t, Options{ExposeStorageErrors: true})

	rec := doRequest(t, h, http.MethodGet, "/", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Hello World", rec.Body.String())
	assert.True(t, strings.HasPrefix(rec.Header().Get("Content-Type"), "text/plain"))
}

func TestListTasks_Empty(t *testing.T) {
	h := setupTestServer(t, Options{ExposeStorageErrors: true})

	rec := doRequest(t, h, http.MethodGet, "/tasks", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"success":true,"data":[]}`, rec.Body.String())
}

func TestCreateTask_AppearsInList(t *testing.T) {
	h := setupTestServer(t, Options{ExposeStorageErrors: true})

	rec := doRequest(t, h, http.MethodPost, "/tasks", `{"name":"a","priority":1}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.JSONEq(t, `{"success":true,"data":{"task_id":1}}`, rec.Body.String())

	rec = doRequest(t, h, http.MethodGet, "/tasks", "")
	assert.JSONEq(t, `{"success":true,"data":[{"task_id":1,"name":"a","priority":1}]}`, rec.Body.String())
}

func TestListTasks_OrderedByID(t *testing.T) {
	h, repo := setupTestServerWithRepo(t, Options{ExposeStorageErrors: true})

	ctx := context.Background()
	for _, stmt := range []string{
		`INSERT INTO tasks (task_id, name, priority) VALUES (9, 'apple', NULL)`,
		`INSERT INTO tasks (task_id, name, priority) VALUES (2, 'zebra', -3)`,
		`INSERT INTO tasks (task_id, name, priority) VALUES (5, 'mango', 1)`,
		// Lets an unsorted scan come back in name order.
		`CREATE INDEX tasks_by_name ON tasks (name, priority)`,
	} {
		_, err := repo.DB().ExecContext(ctx, stmt)
		require.NoError(t, err)
	}

	rec := doRequest(t, h, http.MethodGet, "/tasks", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"success":true,"data":[`+
		`{"task_id":2,"name":"zebra","priority":-3},`+
		`{"task_id":5,"name":"mango","priority":1},`+
		`{"task_id":9,"name":"apple","priority":null}]}`, rec.Body.String())
}

func TestCreateTask_EmptyNameAccepted(t *testing.T) {
	h := setupTestServer(t, Options{ExposeStorageErrors: true})
	id := createTask(t, h, `{"name":""}`)

	rec := doRequest(t, h, http.MethodGet, "/tasks", "")
	assert.JSONEq(t, fmt.Sprintf(`{"success":true,"data":[{"task_id":%d,"name":"","priority":null}]}`, id), rec.Body.String())
}

func TestBuyMilkScenario(t *testing.T) {
	h := setupTestServer(t, Options{ExposeStorageErrors: true})

	id := createTask(t, h, `{"name":"buy milk","priority":2}`)
	assert.Positive(t, id)

	rec := doRequest(t, h, http.MethodGet, "/tasks", "")
	assert.JSONEq(t, fmt.Sprintf(`{"success":true,"data":[{"task_id":%d,"name":"buy milk","priority":2}]}`, id), rec.Body.String())

	rec = doRequest(t, h, http.MethodPatch, fmt.Sprintf("/tasks/%d", id), `{"name":"buy oat milk"}`)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"success":true}`, rec.Body.String())

	rec = doRequest(t, h, http.MethodGet, "/tasks", "")
	assert.JSONEq(t, fmt.Sprintf(`{"success":true,"data":[{"task_id":%d,"name":"buy oat milk","priority":null}]}`, id), rec.Body.String())

	rec = doRequest(t, h, http.MethodDelete, fmt.Sprintf("/tasks/%d", id), "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"success":true}`, rec.Body.String())

	rec = doRequest(t, h, http.MethodGet, "/tasks", "")
	assert.JSONEq(t, `{"success":true,"data":[]}`, rec.Body.String())
}

func TestUpdateTask_MissingIDSucceedsWithoutChanges(t *testing.T) {
	h := setupTestServer(t, Options{ExposeStorageErrors: true})
	id := createTask(t, h, `{"name":"keep","priority":4}`)

	rec := doRequest(t, h, http.MethodPatch, "/tasks/999999", `{"name":"other","priority":1}`)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"success":true}`, rec.Body.String())

	rec = doRequest(t, h, http.MethodGet, "/tasks", "")
	assert.JSONEq(t, fmt.Sprintf(`{"success":true,"data":[{"task_id":%d,"name":"keep","priority":4}]}`, id), rec.Body.String())
}

func TestDeleteTask_Idempotent(t *testing.T) {
	h := setupTestServer(t, Options{ExposeStorageErrors: true})
	id := createTask(t, h, `{"name":"gone"}`)

	for i := 0; i < 2; i++ {
		rec := doRequest(t, h, http.MethodDelete, fmt.Sprintf("/tasks/%d", id), "")
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"success":true}`, rec.Body.String())
	}

	rec := doRequest(t, h, http.MethodDelete, "/tasks/-42", "")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestUpdateTask_OmittedFieldsAreNulled(t *testing.T) {
	t.Run("omitted priority becomes null", func(t *testing.T) {
		h := setupTestServer(t, Options{ExposeStorageErrors: true})
		id := createTask(t, h, `{"name":"a","priority":5}`)

		rec := doRequest(t, h, http.MethodPatch, fmt.Sprintf("/tasks/%d", id), `{"name":"x"}`)
		require.Equal(t, http.StatusOK, rec.Code)

		rec = doRequest(t, h, http.MethodGet, "/tasks", "")
		assert.JSONEq(t, fmt.Sprintf(`{"success":true,"data":[{"task_id":%d,"name":"x","priority":null}]}`, id), rec.Body.String())
	})

	t.Run("omitted name is a storage failure", func(t *testing.T) {
		h := setupTestServer(t, Options{ExposeStorageErrors: true})
		id := createTask(t, h, `{"name":"a","priority":5}`)

		rec := doRequest(t, h, http.MethodPatch, fmt.Sprintf("/tasks/%d", id), `{"priority":1}`)
		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

		var resp envelope
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.False(t, resp.Success)
		assert.Contains(t, resp.Message, "NOT NULL")

		rec = doRequest(t, h, http.MethodGet, "/tasks", "")
		assert.JSONEq(t, fmt.Sprintf(`{"success":true,"data":[{"task_id":%d,"name":"a","priority":5}]}`, id), rec.Body.String())
	})

	t.Run("redacted storage message", func(t *testing.T) {
		h := setupTestServer(t, Options{ExposeStorageErrors: false})
		id := createTask(t, h, `{"name":"a"}`)

		rec := doRequest(t, h, http.MethodPatch, fmt.Sprintf("/tasks/%d", id), `{}`)
		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.JSONEq(t, `{"success":false,"message":"A database error occurred. Please try again."}`, rec.Body.String())
	})
}

func TestRequestParsingFailures(t *testing.T) {
	h := setupTestServer(t, Options{ExposeStorageErrors: true})

	tests := []struct {
		name        string
		method      string
		path        string
		body        string
		contentType string
		status      int
		contains    string
	}{
		{"malformed json", http.MethodPost, "/tasks", `{"name":`, "application/json", http.StatusBadRequest, "Failed to parse the request body as JSON"},
		{"empty body", http.MethodPost, "/tasks", ``, "application/json", http.StatusBadRequest, "Failed to parse the request body as JSON"},
		{"trailing data", http.MethodPost, "/tasks", `{"name":"a"}]`, "application/json", http.StatusBadRequest, "Failed to parse the request body as JSON"},
		{"missing name", http.MethodPost, "/tasks", `{"priority":1}`, "application/json", http.StatusUnprocessableEntity, "missing field `name`"},
		{"null name", http.MethodPost, "/tasks", `{"name":null}`, "application/json", http.StatusUnprocessableEntity, "missing field `name`"},
		{"wrong name type", http.MethodPost, "/tasks", `{"name":7}`, "application/json", http.StatusUnprocessableEntity, "name"},
		{"priority out of range", http.MethodPost, "/tasks", `{"name":"a","priority":2147483648}`, "application/json", http.StatusUnprocessableEntity, "priority"},
		{"update wrong type", http.MethodPatch, "/tasks/1", `{"priority":"high"}`, "application/json", http.StatusUnprocessableEntity, "priority"},
		{"missing content type", http.MethodPost, "/tasks", `{"name":"a"}`, "", http.StatusUnsupportedMediaType, "Content-Type: application/json"},
		{"form content type", http.MethodPatch, "/tasks/1", `name=a`, "application/x-www-form-urlencoded", http.StatusUnsupportedMediaType, "Content-Type: application/json"},
		{"non-integer update id", http.MethodPatch, "/tasks/abc", `{"name":"a"}`, "application/json", http.StatusBadRequest, "task_id"},
		{"non-integer delete id", http.MethodDelete, "/tasks/1.5", ``, "", http.StatusBadRequest, "task_id"},
		{"overflowing id", http.MethodDelete, "/tasks/9223372036854775808", ``, "", http.StatusBadRequest, "task_id"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.path, strings.NewReader(tt.body))
			if tt.contentType != "" {
				req.Header.Set("Content-Type", tt.contentType)
			}
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)

			assert.Equal(t, tt.status, rec.Code)
			assert.True(t, strings.HasPrefix(rec.Header().Get("Content-Type"), "text/plain"))
			assert.Contains(t, rec.Body.String(), tt.contains)
		})
	}

	rec := doRequest(t, h, http.MethodGet, "/tasks", "")
	assert.JSONEq(t, `{"success":true,"data":[]}`, rec.Body.String(), "rejected requests must not write")
}

func TestTaskID_Int32Range(t *testing.T) {
	tests := []struct {
		name       string
		method     string
		path       string
		body       string
		status     int
		reachesAPI bool
	}{
		{"update at max int32", http.MethodPatch, "/tasks/2147483647", `{"name":"a"}`, http.StatusOK, true},
		{"delete at min int32", http.MethodDelete, "/tasks/-2147483648", "", http.StatusOK, true},
		{"update above int32", http.MethodPatch, "/tasks/2147483648", `{"name":"a"}`, http.StatusBadRequest, false},
		{"delete above int32", http.MethodDelete, "/tasks/99999999999", "", http.StatusBadRequest, false},
		{"delete below int32", http.MethodDelete, "/tasks/-2147483649", "", http.StatusBadRequest, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock := &mockAPI{}
			h := New(mock, logging.Discard(), Options{})

			rec := doRequest(t, h, tt.method, tt.path, tt.body)
			assert.Equal(t, tt.status, rec.Code)
			if tt.reachesAPI {
				assert.Equal(t, 1, mock.calls)
				assert.JSONEq(t, `{"success":true}`, rec.Body.String())
				return
			}
			assert.Equal(t, 0, mock.calls)
			assert.Contains(t, rec.Body.String(), "32-bit integer")
		})
	}
}

func TestRequestBodyTooLarge(t *testing.T) {
	h := setupTestServer(t, Options{ExposeStorageErrors: true, MaxBodyBytes: 16})

	rec := doRequest(t, h, http.MethodPost, "/tasks", `{"name":"this body is longer than sixteen bytes"}`)
	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
}

func TestRouting(t *testing.T) {
	h := setupTestServer(t, Options{ExposeStorageErrors: true})

	tests := []struct {
		name   string
		method string
		path   string
		status int
	}{
		{"unknown path", http.MethodGet, "/nope", http.StatusNotFound},
		{"get single task is not routed", http.MethodGet, "/tasks/1", http.StatusMethodNotAllowed},
		{"put task", http.MethodPut, "/tasks/1", http.StatusMethodNotAllowed},
		{"delete collection", http.MethodDelete, "/tasks", http.StatusMethodNotAllowed},
		{"post root", http.MethodPost, "/", http.StatusMethodNotAllowed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doRequest(t, h, tt.method, tt.path, "")
			assert.Equal(t, tt.status, rec.Code)
			if tt.status == http.StatusMethodNotAllowed {
				assert.NotEmpty(t, rec.Header().Get("Allow"))
			}
		})
	}
}
