package middleware

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/middleware"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func TestMiddleware(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Middleware Suite")
}

var _ = Describe("sensitive filtering", func() {
	It("masks nested secrets in JSON bodies", func() {
		out := filterSensitiveBody([]byte(`{"email":"a@b.c","currentPassword":"x","nested":{"refreshToken":"y"},"list":[{"newPassword":"z"}]}`))
		Expect(out).To(ContainSubstring(`"email":"a@b.c"`))
		Expect(out).NotTo(ContainSubstring(`"x"`))
		Expect(out).NotTo(ContainSubstring(`"y"`))
		Expect(out).NotTo(ContainSubstring(`"z"`))
	})

	It("masks the authorization header and token query parameters", func() {
		h := http.Header{"Authorization": {"Bearer abc"}, "Accept": {"application/json"}}
		Expect(filterSensitiveHeaders(h)).To(Equal(map[string]string{
			"Authorization": filtered,
			"Accept":        "application/json",
		}))
		Expect(filterQuery("year=1403&token=abc")).To(Equal("year=1403&token=" + filtered))
	})

	It("leaves the request body readable for the handler", func() {
		var seen string
		h := Logging(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			b, _ := io.ReadAll(r.Body)
			seen = string(b)
		}))
		req := httptest.NewRequest(http.MethodPost, "/x", strings.NewReader(`{"password":"secret"}`))
		req.Header.Set("Content-Type", "application/json")
		h.ServeHTTP(httptest.NewRecorder(), req)
		Expect(seen).To(Equal(`{"password":"secret"}`))
	})
})

var _ = Describe("Recovery", func() {
	It("answers a generic 500", func() {
		h := Recovery(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
			panic("database exploded")
		}))
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

		Expect(rec.Code).To(Equal(http.StatusInternalServerError))
		Expect(rec.Body.String()).NotTo(ContainSubstring("exploded"))
		var resp map[string]string
		Expect(json.Unmarshal(rec.Body.Bytes(), &resp)).To(Succeed())
		Expect(resp["code"]).To(Equal("INTERNAL_ERROR"))
	})
})

var _ = Describe("RequestID", func() {
	It("keeps an incoming id and exposes it to chi", func() {
		var got string
		h := RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			got = middleware.GetReqID(r.Context())
		}))
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set(RequestIDHeader, "abc-123")
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)

		Expect(got).To(Equal("abc-123"))
		Expect(rec.Header().Get(RequestIDHeader)).To(Equal("abc-123"))
	})

	It("mints one when missing", func() {
		rec := httptest.NewRecorder()
		RequestID(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {})).
			ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
		Expect(rec.Header().Get(RequestIDHeader)).To(HaveLen(36))
	})
})

var _ = Describe("CORS", func() {
	It("answers preflight for allowed origins", func() {
		h := CORS("https://portal.example.com")(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusTeapot)
		}))
		req := httptest.NewRequest(http.MethodOptions, "/api/goals", nil)
		req.Header.Set("Origin", "https://portal.example.com")
		req.Header.Set("Access-Control-Request-Method", "GET")
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)

		Expect(rec.Code).To(Equal(http.StatusNoContent))
		Expect(rec.Header().Get("Access-Control-Allow-Origin")).To(Equal("https://portal.example.com"))
	})

	It("does not advertise unknown origins", func() {
		h := CORS("https://portal.example.com")(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
		req := httptest.NewRequest(http.MethodGet, "/api/goals", bytes.NewReader(nil))
		req.Header.Set("Origin", "https://evil.example.com")
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		Expect(rec.Header().Get("Access-Control-Allow-Origin")).To(BeEmpty())
	})
})
