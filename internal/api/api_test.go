package api_test

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taskglow/taskglow/internal/api"
	"github.com/taskglow/taskglow/internal/api/response"
	"github.com/taskglow/taskglow/internal/factory"
)

// testServer creates a test server with all dependencies
type testServer struct {
	handler http.Handler
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))

	// API tests are integration tests - use production factory with real random/clock
	app, err := factory.New(factory.Config{})
	require.NoError(t, err)

	router := api.NewRouter(api.RouterConfig{
		Logger:             logger,
		CredentialsService: app.CredentialsService,
		SessionService:     app.SessionService,
		TaskService:        app.TaskService,
	})

	return &testServer{handler: router}
}

func (ts *testServer) request(method, path string, body any) *httptest.ResponseRecorder {
	var reqBody *bytes.Buffer
	if body != nil {
		b, _ := json.Marshal(body)
		reqBody = bytes.NewBuffer(b)
	} else {
		reqBody = bytes.NewBuffer(nil)
	}

	req := httptest.NewRequest(method, path, reqBody)
	req.Header.Set("Content-Type", "application/json")

	rr := httptest.NewRecorder()
	ts.handler.ServeHTTP(rr, req)
	return rr
}

func TestHealthCheck(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodGet, "/api/v1/health", nil)
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "ok")
}

func TestRegisterAndLogin(t *testing.T) {
	ts := newTestServer(t)

	// Register
	registerBody := map[string]string{
		"name":     "Alice",
		"email":    "alice@example.com",
		"password": "secret123",
	}
	rr := ts.request(http.MethodPost, "/api/v1/auth/register", registerBody)
	assert.Equal(t, http.StatusCreated, rr.Code)

	var registerResp response.Account
	err := json.Unmarshal(rr.Body.Bytes(), &registerResp)
	require.NoError(t, err)
	assert.Equal(t, "Alice", registerResp.Name)
	assert.NotEmpty(t, registerResp.ID)

	// The password secret never appears in responses
	assert.NotContains(t, rr.Body.String(), "secret123")

	// Login
	loginBody := map[string]string{
		"email":    "alice@example.com",
		"password": "secret123",
	}
	rr = ts.request(http.MethodPost, "/api/v1/auth/login", loginBody)
	assert.Equal(t, http.StatusOK, rr.Code)

	var loginResp response.Account
	err = json.Unmarshal(rr.Body.Bytes(), &loginResp)
	require.NoError(t, err)
	assert.Equal(t, registerResp.ID, loginResp.ID)
}

func TestDuplicateEmailConflict(t *testing.T) {
	ts := newTestServer(t)

	registerAndLogin(t, ts, "Alice", "alice@example.com", "secret123")

	// Same email, different case
	body := map[string]string{
		"name":     "Imposter",
		"email":    "ALICE@example.com",
		"password": "other",
	}
	rr := ts.request(http.MethodPost, "/api/v1/auth/register", body)
	assert.Equal(t, http.StatusConflict, rr.Code)
	assert.Contains(t, rr.Body.String(), "EMAIL_EXISTS")
}

func TestLoginWrongPassword(t *testing.T) {
	ts := newTestServer(t)

	registerAndLogin(t, ts, "Alice", "alice@example.com", "secret123")

	body := map[string]string{
		"email":    "alice@example.com",
		"password": "wrong",
	}
	rr := ts.request(http.MethodPost, "/api/v1/auth/login", body)
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
	assert.Contains(t, rr.Body.String(), "INVALID_CREDENTIALS")
}

func TestUnauthorizedWithoutSession(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodGet, "/api/v1/auth/me", nil)
	assert.Equal(t, http.StatusUnauthorized, rr.Code)

	rr = ts.request(http.MethodGet, "/api/v1/tasks", nil)
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestGetMe(t *testing.T) {
	ts := newTestServer(t)

	registerAndLogin(t, ts, "Bob", "bob@example.com", "secret123")

	rr := ts.request(http.MethodGet, "/api/v1/auth/me", nil)
	assert.Equal(t, http.StatusOK, rr.Code)

	var meResp response.Account
	err := json.Unmarshal(rr.Body.Bytes(), &meResp)
	require.NoError(t, err)
	assert.Equal(t, "Bob", meResp.Name)
}

func TestLogoutEndsSession(t *testing.T) {
	ts := newTestServer(t)

	registerAndLogin(t, ts, "Bob", "bob@example.com", "secret123")

	rr := ts.request(http.MethodPost, "/api/v1/auth/logout", nil)
	assert.Equal(t, http.StatusNoContent, rr.Code)

	rr = ts.request(http.MethodGet, "/api/v1/auth/me", nil)
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestTaskLifecycle(t *testing.T) {
	ts := newTestServer(t)

	registerAndLogin(t, ts, "Alice", "alice@example.com", "secret123")

	// Add a task
	rr := ts.request(http.MethodPost, "/api/v1/tasks", map[string]string{"text": "Buy milk"})
	assert.Equal(t, http.StatusCreated, rr.Code)

	var task response.Task
	err := json.Unmarshal(rr.Body.Bytes(), &task)
	require.NoError(t, err)
	assert.Equal(t, "Buy milk", task.Text)
	assert.False(t, task.Completed)

	// Toggle it
	rr = ts.request(http.MethodPost, "/api/v1/tasks/"+task.ID+"/toggle", nil)
	assert.Equal(t, http.StatusNoContent, rr.Code)

	rr = ts.request(http.MethodGet, "/api/v1/tasks", nil)
	assert.Equal(t, http.StatusOK, rr.Code)

	var list []response.Task
	err = json.Unmarshal(rr.Body.Bytes(), &list)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.True(t, list[0].Completed)
	assert.NotZero(t, list[0].CompletedAt)

	// Edit it
	rr = ts.request(http.MethodPatch, "/api/v1/tasks/"+task.ID, map[string]string{"text": "Buy oat milk"})
	assert.Equal(t, http.StatusNoContent, rr.Code)

	// Delete it
	rr = ts.request(http.MethodDelete, "/api/v1/tasks/"+task.ID, nil)
	assert.Equal(t, http.StatusNoContent, rr.Code)

	rr = ts.request(http.MethodGet, "/api/v1/tasks", nil)
	err = json.Unmarshal(rr.Body.Bytes(), &list)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestAddEmptyTaskRejected(t *testing.T) {
	ts := newTestServer(t)

	registerAndLogin(t, ts, "Alice", "alice@example.com", "secret123")

	rr := ts.request(http.MethodPost, "/api/v1/tasks", map[string]string{"text": "   "})
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Contains(t, rr.Body.String(), "EMPTY_TASK_TEXT")
}

func TestTaskSearch(t *testing.T) {
	ts := newTestServer(t)

	registerAndLogin(t, ts, "Alice", "alice@example.com", "secret123")

	for _, text := range []string{"Buy milk", "Walk dog", "Buy bread"} {
		rr := ts.request(http.MethodPost, "/api/v1/tasks", map[string]string{"text": text})
		require.Equal(t, http.StatusCreated, rr.Code)
	}

	rr := ts.request(http.MethodGet, "/api/v1/tasks?search=buy", nil)
	assert.Equal(t, http.StatusOK, rr.Code)

	var list []response.Task
	err := json.Unmarshal(rr.Body.Bytes(), &list)
	require.NoError(t, err)
	assert.Len(t, list, 2)
}

func TestStatsAndTrendEndpoints(t *testing.T) {
	ts := newTestServer(t)

	registerAndLogin(t, ts, "Alice", "alice@example.com", "secret123")

	rr := ts.request(http.MethodPost, "/api/v1/tasks", map[string]string{"text": "one"})
	require.Equal(t, http.StatusCreated, rr.Code)
	var task response.Task
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &task))

	rr = ts.request(http.MethodPost, "/api/v1/tasks", map[string]string{"text": "two"})
	require.Equal(t, http.StatusCreated, rr.Code)

	rr = ts.request(http.MethodPost, "/api/v1/tasks/"+task.ID+"/toggle", nil)
	require.Equal(t, http.StatusNoContent, rr.Code)

	rr = ts.request(http.MethodGet, "/api/v1/tasks/stats", nil)
	assert.Equal(t, http.StatusOK, rr.Code)

	var stats response.TaskStats
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &stats))
	assert.Equal(t, 2, stats.Total)
	assert.Equal(t, 1, stats.Completed)
	assert.Equal(t, 1, stats.Pending)
	assert.Equal(t, 50, stats.CompletionRate)

	rr = ts.request(http.MethodGet, "/api/v1/tasks/trend", nil)
	assert.Equal(t, http.StatusOK, rr.Code)

	var trend []response.TrendDay
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &trend))
	require.Len(t, trend, 7)

	// The server runs on the real clock, so a task created just before local
	// midnight can land in yesterday's bucket. Sum over the window instead of
	// pinning the activity to the last entry.
	var created, completed int
	for _, day := range trend {
		created += day.Created
		completed += day.Completed
	}
	assert.Equal(t, 2, created)
	assert.Equal(t, 1, completed)
}

func TestToggleAll(t *testing.T) {
	ts := newTestServer(t)

	registerAndLogin(t, ts, "Alice", "alice@example.com", "secret123")

	for _, text := range []string{"one", "two", "three"} {
		rr := ts.request(http.MethodPost, "/api/v1/tasks", map[string]string{"text": text})
		require.Equal(t, http.StatusCreated, rr.Code)
	}

	rr := ts.request(http.MethodPost, "/api/v1/tasks/toggle-all", nil)
	assert.Equal(t, http.StatusNoContent, rr.Code)

	var list []response.Task
	rr = ts.request(http.MethodGet, "/api/v1/tasks", nil)
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &list))
	require.Len(t, list, 3)
	for _, task := range list {
		assert.True(t, task.Completed)
	}
}

func TestForgotAndResetPassword(t *testing.T) {
	ts := newTestServer(t)

	registerAndLogin(t, ts, "Alice", "alice@example.com", "secret123")
	rr := ts.request(http.MethodPost, "/api/v1/auth/logout", nil)
	require.Equal(t, http.StatusNoContent, rr.Code)

	// Unknown email is a 404
	rr = ts.request(http.MethodPost, "/api/v1/auth/forgot", map[string]string{"email": "nobody@example.com"})
	assert.Equal(t, http.StatusNotFound, rr.Code)

	// Known email passes the recovery check
	rr = ts.request(http.MethodPost, "/api/v1/auth/forgot", map[string]string{"email": "alice@example.com"})
	assert.Equal(t, http.StatusNoContent, rr.Code)

	// Reset and login with the new password
	rr = ts.request(http.MethodPost, "/api/v1/auth/reset", map[string]string{
		"email":    "alice@example.com",
		"password": "newpass",
	})
	assert.Equal(t, http.StatusNoContent, rr.Code)

	rr = ts.request(http.MethodPost, "/api/v1/auth/login", map[string]string{
		"email":    "alice@example.com",
		"password": "newpass",
	})
	assert.Equal(t, http.StatusOK, rr.Code)
}

func TestUpdateProfile(t *testing.T) {
	ts := newTestServer(t)

	registerAndLogin(t, ts, "Alice", "alice@example.com", "secret123")

	rr := ts.request(http.MethodPatch, "/api/v1/profile", map[string]string{"name": "Alice B"})
	assert.Equal(t, http.StatusOK, rr.Code)

	var updated response.Account
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &updated))
	assert.Equal(t, "Alice B", updated.Name)

	// The session picks up the new name
	rr = ts.request(http.MethodGet, "/api/v1/auth/me", nil)
	assert.Equal(t, http.StatusOK, rr.Code)

	var me response.Account
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &me))
	assert.Equal(t, "Alice B", me.Name)
}

// Helper functions

func registerAndLogin(t *testing.T, ts *testServer, name, email, password string) {
	t.Helper()

	body := map[string]string{"name": name, "email": email, "password": password}
	rr := ts.request(http.MethodPost, "/api/v1/auth/register", body)
	require.Equal(t, http.StatusCreated, rr.Code)

	loginBody := map[string]string{"email": email, "password": password}
	rr = ts.request(http.MethodPost, "/api/v1/auth/login", loginBody)
	require.Equal(t, http.StatusOK, rr.Code)
}
