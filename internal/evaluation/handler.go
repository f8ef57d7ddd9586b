package evaluation

import (
	"context"
	"net/http"

	"github.com/frahmantamala/kpi-portal/internal"
	"github.com/frahmantamala/kpi-portal/internal/transport"
)

type ServiceAPI interface {
	SubmitStrategistEvaluation(ctx context.Context, principal *internal.User, dto SubmitStrategistEvaluationDTO) (*StrategistEvaluation, error)
	SubmitWriterEvaluation(ctx context.Context, principal *internal.User, dto SubmitWriterEvaluationDTO) (*WriterEvaluation, error)
	ListStrategistEvaluations(ctx context.Context, principal *internal.User, filter ListFilter) ([]*StrategistEvaluation, error)
	ListOwnStrategistEvaluations(ctx context.Context, principal *internal.User, filter ListFilter) ([]*StrategistEvaluation, error)
	ListWriterEvaluations(ctx context.Context, principal *internal.User, filter ListFilter) ([]*WriterEvaluation, error)
	ListOwnWriterEvaluations(ctx context.Context, principal *internal.User, filter ListFilter) ([]*WriterEvaluation, error)
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

// SubmitStrategistEvaluation handles POST /api/evaluations/strategist
func (h *Handler) SubmitStrategistEvaluation(w http.ResponseWriter, r *http.Request) {
	principal, ok := h.CurrentUser(w, r)
	if !ok {
		return
	}
	var dto SubmitStrategistEvaluationDTO
	if err := h.DecodeJSON(r, &dto); err != nil {
		h.HandleServiceError(w, err)
		return
	}
	e, err := h.Service.SubmitStrategistEvaluation(r.Context(), principal, dto)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteSuccess(w, http.StatusCreated, map[string]interface{}{"evaluation": e})
}

// SubmitWriterEvaluation handles POST /api/evaluations/writer
func (h *Handler) SubmitWriterEvaluation(w http.ResponseWriter, r *http.Request) {
	principal, ok := h.CurrentUser(w, r)
	if !ok {
		return
	}
	var dto SubmitWriterEvaluationDTO
	if err := h.DecodeJSON(r, &dto); err != nil {
		h.HandleServiceError(w, err)
		return
	}
	e, err := h.Service.SubmitWriterEvaluation(r.Context(), principal, dto)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteSuccess(w, http.StatusCreated, map[string]interface{}{"evaluation": e})
}

func (h *Handler) ListStrategistEvaluations(w http.ResponseWriter, r *http.Request) {
	h.listStrategist(w, r, h.Service.ListStrategistEvaluations)
}

func (h *Handler) ListOwnStrategistEvaluations(w http.ResponseWriter, r *http.Request) {
	h.listStrategist(w, r, h.Service.ListOwnStrategistEvaluations)
}

func (h *Handler) ListWriterEvaluations(w http.ResponseWriter, r *http.Request) {
	h.listWriter(w, r, h.Service.ListWriterEvaluations)
}

func (h *Handler) ListOwnWriterEvaluations(w http.ResponseWriter, r *http.Request) {
	h.listWriter(w, r, h.Service.ListOwnWriterEvaluations)
}

type strategistLister func(context.Context, *internal.User, ListFilter) ([]*StrategistEvaluation, error)

type writerLister func(context.Context, *internal.User, ListFilter) ([]*WriterEvaluation, error)

func (h *Handler) listStrategist(w http.ResponseWriter, r *http.Request, list strategistLister) {
	principal, filter, ok := h.listRequest(w, r)
	if !ok {
		return
	}
	out, err := list(r.Context(), principal, filter)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteSuccess(w, http.StatusOK, map[string]interface{}{"evaluations": out})
}

func (h *Handler) listWriter(w http.ResponseWriter, r *http.Request, list writerLister) {
	principal, filter, ok := h.listRequest(w, r)
	if !ok {
		return
	}
	out, err := list(r.Context(), principal, filter)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteSuccess(w, http.StatusOK, map[string]interface{}{"evaluations": out})
}

// listRequest reads the principal and the optional ?year=&month= filter.
func (h *Handler) listRequest(w http.ResponseWriter, r *http.Request) (*internal.User, ListFilter, bool) {
	principal, ok := h.CurrentUser(w, r)
	if !ok {
		return nil, ListFilter{}, false
	}
	year, err := h.OptionalQueryInt(r, "year")
	if err != nil {
		h.HandleServiceError(w, err)
		return nil, ListFilter{}, false
	}
	month, err := h.OptionalQueryInt(r, "month")
	if err != nil {
		h.HandleServiceError(w, err)
		return nil, ListFilter{}, false
	}
	return principal, ListFilter{Year: year, Month: month}, true
}
