package feedback

import (
	"context"
	"net/http"

	"github.com/frahmantamala/kpi-portal/internal"
	"github.com/frahmantamala/kpi-portal/internal/transport"
	"github.com/frahmantamala/kpi-portal/internal/workgroup"
)

type ServiceAPI interface {
	Submit(ctx context.Context, principal *internal.User, dto SubmitFeedbackDTO) (*Feedback, error)
	List(ctx context.Context, principal *internal.User) ([]*Feedback, error)
	EligibleWorkgroups(ctx context.Context, principal *internal.User) ([]*workgroup.Workgroup, error)
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

// Submit handles POST /api/feedback/submit
func (h *Handler) Submit(w http.ResponseWriter, r *http.Request) {
	principal, ok := h.CurrentUser(w, r)
	if !ok {
		return
	}
	var dto SubmitFeedbackDTO
	if err := h.DecodeJSON(r, &dto); err != nil {
		h.HandleServiceError(w, err)
		return
	}
	f, err := h.Service.Submit(r.Context(), principal, dto)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteSuccess(w, http.StatusCreated, map[string]interface{}{"feedback": f})
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	principal, ok := h.CurrentUser(w, r)
	if !ok {
		return
	}
	list, err := h.Service.List(r.Context(), principal)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteSuccess(w, http.StatusOK, map[string]interface{}{"feedbacks": list})
}

func (h *Handler) EligibleWorkgroups(w http.ResponseWriter, r *http.Request) {
	principal, ok := h.CurrentUser(w, r)
	if !ok {
		return
	}
	groups, err := h.Service.EligibleWorkgroups(r.Context(), principal)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteSuccess(w, http.StatusOK, map[string]interface{}{"workgroups": groups})
}
