package handler

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/taskglow/taskglow/internal/api/middleware"
	"github.com/taskglow/taskglow/internal/api/request"
	"github.com/taskglow/taskglow/internal/api/response"
	"github.com/taskglow/taskglow/internal/model"
	"github.com/taskglow/taskglow/internal/services/tasks"
)

// TaskHandler handles task endpoints. Every operation is scoped to the
// authenticated account resolved by the auth middleware.
type TaskHandler struct {
	tasks *tasks.Service
}

// NewTaskHandler creates a new task handler
func NewTaskHandler(taskService *tasks.Service) *TaskHandler {
	return &TaskHandler{tasks: taskService}
}

// List handles GET /api/v1/tasks
func (h *TaskHandler) List(w http.ResponseWriter, r *http.Request) {
	account := middleware.MustGetAccount(r.Context())

	list, err := h.tasks.List(r.Context(), account.ID, tasks.ListOptions{
		Search: r.URL.Query().Get("search"),
	})
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.TasksFromModel(list))
}

// Add handles POST /api/v1/tasks
func (h *TaskHandler) Add(w http.ResponseWriter, r *http.Request) {
	account := middleware.MustGetAccount(r.Context())

	var req request.AddTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	task, err := h.tasks.Add(r.Context(), account.ID, req.Text)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusCreated, response.TaskFromModel(*task))
}

// Edit handles PATCH /api/v1/tasks/{id}
func (h *TaskHandler) Edit(w http.ResponseWriter, r *http.Request) {
	account := middleware.MustGetAccount(r.Context())
	id := model.TaskID(mux.Vars(r)["id"])

	var req request.EditTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	if err := h.tasks.Edit(r.Context(), account.ID, id, req.Text); err != nil {
		WriteError(w, err)
		return
	}

	response.NoContent(w)
}

// Toggle handles POST /api/v1/tasks/{id}/toggle
func (h *TaskHandler) Toggle(w http.ResponseWriter, r *http.Request) {
	account := middleware.MustGetAccount(r.Context())
	id := model.TaskID(mux.Vars(r)["id"])

	if err := h.tasks.Toggle(r.Context(), account.ID, id); err != nil {
		WriteError(w, err)
		return
	}

	response.NoContent(w)
}

// Delete handles DELETE /api/v1/tasks/{id}
func (h *TaskHandler) Delete(w http.ResponseWriter, r *http.Request) {
	account := middleware.MustGetAccount(r.Context())
	id := model.TaskID(mux.Vars(r)["id"])

	if err := h.tasks.Delete(r.Context(), account.ID, id); err != nil {
		WriteError(w, err)
		return
	}

	response.NoContent(w)
}

// ToggleAll handles POST /api/v1/tasks/toggle-all
func (h *TaskHandler) ToggleAll(w http.ResponseWriter, r *http.Request) {
	account := middleware.MustGetAccount(r.Context())

	if err := h.tasks.ToggleAll(r.Context(), account.ID); err != nil {
		WriteError(w, err)
		return
	}

	response.NoContent(w)
}

// Stats handles GET /api/v1/tasks/stats
func (h *TaskHandler) Stats(w http.ResponseWriter, r *http.Request) {
	account := middleware.MustGetAccount(r.Context())

	stats, err := h.tasks.Stats(r.Context(), account.ID)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.TaskStatsFromModel(stats))
}

// Trend handles GET /api/v1/tasks/trend
func (h *TaskHandler) Trend(w http.ResponseWriter, r *http.Request) {
	account := middleware.MustGetAccount(r.Context())

	trend, err := h.tasks.WeeklyTrend(r.Context(), account.ID)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.TrendFromModel(trend))
}
