package goal

import (
	"context"
	"net/http"

	"github.com/frahmantamala/kpi-portal/internal"
	"github.com/frahmantamala/kpi-portal/internal/transport"
)

type ServiceAPI interface {
	CreateGoal(ctx context.Context, principal *internal.User, dto CreateGoalDTO) (*Goal, error)
	ListGoals(ctx context.Context, principal *internal.User) ([]*Goal, error)
	CreateTask(ctx context.Context, principal *internal.User, dto CreateTaskDTO) (*Task, error)
	ListTasks(ctx context.Context, principal *internal.User) ([]*Task, error)
	UpdateTaskStatus(ctx context.Context, principal *internal.User, dto UpdateTaskStatusDTO) (*Task, error)
}

type Handler struct {
	*transport.BaseHandler
	Service ServiceAPI
}

func NewHandler(baseHandler *transport.BaseHandler, service ServiceAPI) *Handler {
	return &Handler{
		BaseHandler: baseHandler,
		Service:     service,
	}
}

// CreateGoal handles POST /api/admin/goals/create
func (h *Handler) CreateGoal(w http.ResponseWriter, r *http.Request) {
	principal, ok := h.CurrentUser(w, r)
	if !ok {
		return
	}
	var dto CreateGoalDTO
	if err := h.DecodeJSON(r, &dto); err != nil {
		h.HandleServiceError(w, err)
		return
	}
	g, err := h.Service.CreateGoal(r.Context(), principal, dto)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteSuccess(w, http.StatusCreated, map[string]interface{}{"goal": g})
}

func (h *Handler) ListGoals(w http.ResponseWriter, r *http.Request) {
	principal, ok := h.CurrentUser(w, r)
	if !ok {
		return
	}
	goals, err := h.Service.ListGoals(r.Context(), principal)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteSuccess(w, http.StatusOK, map[string]interface{}{"goals": goals})
}

// CreateTask handles POST /api/admin/tasks/create
func (h *Handler) CreateTask(w http.ResponseWriter, r *http.Request) {
	principal, ok := h.CurrentUser(w, r)
	if !ok {
		return
	}
	var dto CreateTaskDTO
	if err := h.DecodeJSON(r, &dto); err != nil {
		h.HandleServiceError(w, err)
		return
	}
	t, err := h.Service.CreateTask(r.Context(), principal, dto)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteSuccess(w, http.StatusCreated, map[string]interface{}{"task": t})
}

func (h *Handler) ListTasks(w http.ResponseWriter, r *http.Request) {
	principal, ok := h.CurrentUser(w, r)
	if !ok {
		return
	}
	tasks, err := h.Service.ListTasks(r.Context(), principal)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteSuccess(w, http.StatusOK, map[string]interface{}{"tasks": tasks})
}

func (h *Handler) UpdateTaskStatus(w http.ResponseWriter, r *http.Request) {
	principal, ok := h.CurrentUser(w, r)
	if !ok {
		return
	}
	var dto UpdateTaskStatusDTO
	if err := h.DecodeJSON(r, &dto); err != nil {
		h.HandleServiceError(w, err)
		return
	}
	t, err := h.Service.UpdateTaskStatus(r.Context(), principal, dto)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteSuccess(w, http.StatusOK, map[string]interface{}{"task": t})
}
