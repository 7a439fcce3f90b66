package handlers

import (
	"net/http"
	"strconv"

	"github.com/arahmani/freelance-ops/internal/auth"
	"github.com/arahmani/freelance-ops/internal/httpx"
	"github.com/arahmani/freelance-ops/internal/services"
)

type TaskHandler struct {
	Svc *services.TaskService
}

func NewTaskHandler(svc *services.TaskService) *TaskHandler { return &TaskHandler{Svc: svc} }

// List: GET /api/tasks returns every task, filterable by status/priority.
func (h *TaskHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserIDFromContext(r.Context())
	tasks, err := h.Svc.ListAll(userID, services.TaskFilter{
		Status:   r.URL.Query().Get("status"),
		Priority: r.URL.Query().Get("priority"),
	})
	if err != nil {
		httpx.Error(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, "Tasks retrieved successfully", tasks)
}

// ListByProject: GET /api/tasks/by-project?projectId=&page=&limit=&status=
func (h *TaskHandler) ListByProject(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserIDFromContext(r.Context())
	var projectID *uint
	if v := r.URL.Query().Get("projectId"); v != "" {
		id, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			httpx.Fail(w, http.StatusBadRequest, "Invalid projectId")
			return
		}
		pid := uint(id)
		projectID = &pid
	}
	page, limit := pageQuery(r)
	result, err := h.Svc.ListByProject(userID, projectID, page, limit, r.URL.Query().Get("status"))
	if err != nil {
		httpx.Error(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, "Tasks retrieved successfully", result)
}

func (h *TaskHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserIDFromContext(r.Context())
	id, err := pathID(r)
	if err != nil {
		httpx.Error(w, err)
		return
	}
	task, err := h.Svc.Get(id, userID)
	if err != nil {
		httpx.Error(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, "Task retrieved successfully", task)
}

func (h *TaskHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserIDFromContext(r.Context())
	var in services.CreateTaskInput
	if err := decodeJSON(r, &in); err != nil {
		httpx.Error(w, err)
		return
	}
	if in.Title == "" {
		httpx.Fail(w, http.StatusBadRequest, "Task title is required")
		return
	}
	task, err := h.Svc.Create(userID, in)
	if err != nil {
		httpx.Error(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, "Task created successfully", task)
}

func (h *TaskHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserIDFromContext(r.Context())
	id, err := pathID(r)
	if err != nil {
		httpx.Error(w, err)
		return
	}
	var in services.UpdateTaskInput
	if err := decodeJSON(r, &in); err != nil {
		httpx.Error(w, err)
		return
	}
	task, err := h.Svc.Update(id, userID, in)
	if err != nil {
		httpx.Error(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, "Task updated successfully", task)
}

// UpdateStatus: PATCH /api/tasks/{id}/status
func (h *TaskHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserIDFromContext(r.Context())
	id, err := pathID(r)
	if err != nil {
		httpx.Error(w, err)
		return
	}
	var req struct {
		Status string `json:"status"`
	}
	if err := decodeJSON(r, &req); err != nil {
		httpx.Error(w, err)
		return
	}
	task, err := h.Svc.UpdateStatus(id, userID, req.Status)
	if err != nil {
		httpx.Error(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, "Task status updated successfully", task)
}

func (h *TaskHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserIDFromContext(r.Context())
	id, err := pathID(r)
	if err != nil {
		httpx.Error(w, err)
		return
	}
	if err := h.Svc.Delete(id, userID); err != nil {
		httpx.Error(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, "Task deleted successfully", nil)
}
