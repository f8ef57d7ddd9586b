package auth

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"time"

	"github.com/onsi/ginkgo/v2"
	"github.com/onsi/gomega"

	"github.com/frahmantamala/kpi-portal/internal"
	"github.com/frahmantamala/kpi-portal/internal/transport"
)

var _ = ginkgo.Describe("Handler", func() {
	var (
		handler  *Handler
		tokenGen *JWTTokenGenerator
		rbac     *RBACAuthorization
	)

	ginkgo.BeforeEach(func() {
		tokenGen = NewJWTTokenGenerator("test-access-secret-test-access-secret", "test-refresh-secret-test-refresh-sec", time.Minute, time.Hour)
		base := transport.NewBaseHandler(discardLogger)
		handler = NewHandler(base, NewService(newMockUserRepository(), tokenGen, discardLogger))
		rbac = NewRBACAuthorization(NewGate(&fakeMembers{roles: map[string]bool{}}, discardLogger), base)
	})

	ginkgo.It("logs in and answers with the success envelope", func() {
		req := httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader(`{"email":"admin@example.com","password":"correct_password"}`))
		w := httptest.NewRecorder()

		handler.Login(w, req)

		gomega.Expect(w.Code).To(gomega.Equal(http.StatusOK))
		var body map[string]interface{}
		gomega.Expect(json.NewDecoder(w.Body).Decode(&body)).To(gomega.Succeed())
		gomega.Expect(body["success"]).To(gomega.BeTrue())
		gomega.Expect(body["accessToken"]).ToNot(gomega.BeEmpty())
	})

	ginkgo.It("answers bad credentials with 401 and a code", func() {
		req := httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader(`{"email":"admin@example.com","password":"bad"}`))
		w := httptest.NewRecorder()

		handler.Login(w, req)

		gomega.Expect(w.Code).To(gomega.Equal(http.StatusUnauthorized))
		var body internal.Response
		gomega.Expect(json.NewDecoder(w.Body).Decode(&body)).To(gomega.Succeed())
		gomega.Expect(body.Code).To(gomega.Equal(internal.ErrCodeInvalidCredentials))
		gomega.Expect(body.Error).ToNot(gomega.BeEmpty())
	})

	ginkgo.It("rejects malformed bodies", func() {
		req := httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader(`{`))
		w := httptest.NewRecorder()
		handler.Login(w, req)
		gomega.Expect(w.Code).To(gomega.Equal(http.StatusBadRequest))
	})

	ginkgo.Describe("AuthMiddleware", func() {
		var reached *internal.User

		protected := func() http.Handler {
			return handler.AuthMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				reached, _ = internal.UserFromContext(r.Context())
				w.WriteHeader(http.StatusNoContent)
			}))
		}

		ginkgo.BeforeEach(func() { reached = nil })

		ginkgo.It("requires a bearer token", func() {
			w := httptest.NewRecorder()
			protected().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/users/me", nil))
			gomega.Expect(w.Code).To(gomega.Equal(http.StatusUnauthorized))
			gomega.Expect(reached).To(gomega.BeNil())
		})

		ginkgo.It("puts the reloaded principal in the context", func() {
			token, _ := tokenGen.GenerateAccessToken(2, "admin@example.com")
			req := httptest.NewRequest(http.MethodGet, "/api/users/me", nil)
			req.Header.Set("Authorization", "Bearer "+token)
			w := httptest.NewRecorder()

			protected().ServeHTTP(w, req)

			gomega.Expect(w.Code).To(gomega.Equal(http.StatusNoContent))
			gomega.Expect(reached.ID).To(gomega.Equal(int64(2)))
			gomega.Expect(reached.IsAdmin).To(gomega.BeTrue())
		})

		ginkgo.It("refuses tokens of deactivated users", func() {
			token, _ := tokenGen.GenerateAccessToken(3, "gone@example.com")
			req := httptest.NewRequest(http.MethodGet, "/api/users/me", nil)
			req.Header.Set("Authorization", "Bearer "+token)
			w := httptest.NewRecorder()

			protected().ServeHTTP(w, req)

			gomega.Expect(w.Code).To(gomega.Equal(http.StatusForbidden))
		})
	})

	ginkgo.Describe("RequireAction", func() {
		serve := func(user *internal.User) int {
			h := rbac.RequireAction(ActionViewDashboard)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusOK)
			}))
			req := httptest.NewRequest(http.MethodGet, "/api/admin/dashboard", nil)
			if user != nil {
				req = req.WithContext(internal.ContextWithUser(context.Background(), user))
			}
			w := httptest.NewRecorder()
			h.ServeHTTP(w, req)
			return w.Code
		}

		ginkgo.It("maps decisions onto status codes", func() {
			gomega.Expect(serve(nil)).To(gomega.Equal(http.StatusUnauthorized))
			gomega.Expect(serve(&internal.User{ID: 9})).To(gomega.Equal(http.StatusForbidden))
			gomega.Expect(serve(&internal.User{ID: 1, IsAdmin: true})).To(gomega.Equal(http.StatusOK))
		})
	})
})
