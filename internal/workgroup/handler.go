package workgroup

import (
	"context"
	"net/http"

	"github.com/frahmantamala/kpi-portal/internal/transport"
)

type ServiceAPI interface {
	ListWorkgroups(ctx context.Context) ([]*Workgroup, error)
	CreateWorkgroup(ctx context.Context, dto CreateWorkgroupDTO) (*Workgroup, error)
	UpdateWorkgroup(ctx context.Context, dto UpdateWorkgroupDTO) (*Workgroup, error)
	DeleteWorkgroup(ctx context.Context, id int64) error
	AddMember(ctx context.Context, dto AddMemberDTO) (*Member, error)
	UpdateMemberRole(ctx context.Context, dto UpdateMemberDTO) (*Member, error)
	RemoveMember(ctx context.Context, id int64) error
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

func (h *Handler) ListWorkgroups(w http.ResponseWriter, r *http.Request) {
	workgroups, err := h.Service.ListWorkgroups(r.Context())
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteSuccess(w, http.StatusOK, map[string]interface{}{"workgroups": workgroups})
}

func (h *Handler) CreateWorkgroup(w http.ResponseWriter, r *http.Request) {
	var dto CreateWorkgroupDTO
	if err := h.DecodeJSON(r, &dto); err != nil {
		h.HandleServiceError(w, err)
		return
	}
	wg, err := h.Service.CreateWorkgroup(r.Context(), dto)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteSuccess(w, http.StatusCreated, map[string]interface{}{"workgroup": wg})
}

func (h *Handler) UpdateWorkgroup(w http.ResponseWriter, r *http.Request) {
	var dto UpdateWorkgroupDTO
	if err := h.DecodeJSON(r, &dto); err != nil {
		h.HandleServiceError(w, err)
		return
	}
	wg, err := h.Service.UpdateWorkgroup(r.Context(), dto)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteSuccess(w, http.StatusOK, map[string]interface{}{"workgroup": wg})
}

func (h *Handler) DeleteWorkgroup(w http.ResponseWriter, r *http.Request) {
	id, err := h.QueryInt64(r, "id")
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	if err := h.Service.DeleteWorkgroup(r.Context(), id); err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteSuccess(w, http.StatusOK, nil)
}

func (h *Handler) AddMember(w http.ResponseWriter, r *http.Request) {
	var dto AddMemberDTO
	if err := h.DecodeJSON(r, &dto); err != nil {
		h.HandleServiceError(w, err)
		return
	}
	m, err := h.Service.AddMember(r.Context(), dto)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteSuccess(w, http.StatusCreated, map[string]interface{}{"member": m})
}

func (h *Handler) UpdateMember(w http.ResponseWriter, r *http.Request) {
	var dto UpdateMemberDTO
	if err := h.DecodeJSON(r, &dto); err != nil {
		h.HandleServiceError(w, err)
		return
	}
	m, err := h.Service.UpdateMemberRole(r.Context(), dto)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteSuccess(w, http.StatusOK, map[string]interface{}{"member": m})
}

func (h *Handler) RemoveMember(w http.ResponseWriter, r *http.Request) {
	id, err := h.QueryInt64(r, "id")
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	if err := h.Service.RemoveMember(r.Context(), id); err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteSuccess(w, http.StatusOK, nil)
}
