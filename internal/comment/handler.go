package comment

import (
	"context"
	"net/http"
	"strings"

	"github.com/frahmantamala/kpi-portal/internal"
	"github.com/frahmantamala/kpi-portal/internal/transport"
)

type ServiceAPI interface {
	Create(ctx context.Context, principal *internal.User, dto CreateCommentDTO) (*Comment, error)
	List(ctx context.Context, principal *internal.User, dto ListCommentsDTO) ([]*Comment, error)
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

// Create handles POST /api/comments/create
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	principal, ok := h.CurrentUser(w, r)
	if !ok {
		return
	}
	var dto CreateCommentDTO
	if err := h.DecodeJSON(r, &dto); err != nil {
		h.HandleServiceError(w, err)
		return
	}
	c, err := h.Service.Create(r.Context(), principal, dto)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteSuccess(w, http.StatusCreated, map[string]interface{}{"comment": c})
}

// List handles GET /api/comments?evaluationType=&evaluationId=
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	principal, ok := h.CurrentUser(w, r)
	if !ok {
		return
	}
	id, err := h.QueryInt64(r, "evaluationId")
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	dto := ListCommentsDTO{
		EvaluationType: strings.ToUpper(r.URL.Query().Get("evaluationType")),
		EvaluationID:   id,
	}
	list, err := h.Service.List(r.Context(), principal, dto)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteSuccess(w, http.StatusOK, map[string]interface{}{"comments": list})
}
