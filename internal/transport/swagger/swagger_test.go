package swagger_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/frahmantamala/kpi-portal/internal/transport/swagger"
)

func TestSwagger(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Swagger Suite")
}

var _ = Describe("Docs", func() {
	It("loads and validates the embedded document", func() {
		docs, err := swagger.Load(context.Background(), "")
		Expect(err).NotTo(HaveOccurred())
		Expect(docs.Document().Info.Title).To(Equal("KPI Portal API"))
		Expect(docs.Documents(http.MethodPost, "/api/evaluations/writer")).To(BeTrue())
		Expect(docs.Documents(http.MethodPatch, "/api/evaluations/writer")).To(BeFalse())
	})

	It("falls back to the embedded copy when the file is missing", func() {
		_, err := swagger.Load(context.Background(), "does/not/exist.yml")
		Expect(err).NotTo(HaveOccurred())
	})

	It("serves the document as JSON", func() {
		docs, err := swagger.Load(context.Background(), "")
		Expect(err).NotTo(HaveOccurred())

		rec := httptest.NewRecorder()
		docs.ServeJSON(rec, httptest.NewRequest(http.MethodGet, "/openapi.json", nil))

		Expect(rec.Header().Get("Content-Type")).To(Equal("application/json"))
		var body map[string]interface{}
		Expect(json.Unmarshal(rec.Body.Bytes(), &body)).To(Succeed())
		Expect(body["openapi"]).To(Equal("3.0.3"))
	})
})
