package auth

import (
	"net/http"

	"github.com/frahmantamala/kpi-portal/internal"
	"github.com/frahmantamala/kpi-portal/internal/transport"
)

// RBACAuthorization guards whole route groups with flag-only actions.
type RBACAuthorization struct {
	*transport.BaseHandler
	gate *Gate
}

func NewRBACAuthorization(gate *Gate, base *transport.BaseHandler) *RBACAuthorization {
	return &RBACAuthorization{
		BaseHandler: base,
		gate:        gate,
	}
}

func (ra *RBACAuthorization) RequireAction(action Action) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, _ := internal.UserFromContext(r.Context())
			if err := ra.gate.Authorize(r.Context(), user, action, Target{}); err != nil {
				ra.HandleServiceError(w, err)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func (ra *RBACAuthorization) RequireAdmin() func(http.Handler) http.Handler {
	return ra.RequireAction(ActionManageUsers)
}
