// Package swagger loads the OpenAPI document, validates it and serves it
// together with Swagger UI.
package swagger

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"

	"github.com/getkin/kin-openapi/openapi3"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/frahmantamala/kpi-portal/api"
)

type Docs struct {
	doc      *openapi3.T
	yamlBody []byte
	jsonBody []byte
}

// Load reads the document at path, or the embedded copy when path is empty
// or missing, and rejects it unless it validates.
func Load(ctx context.Context, path string) (*Docs, error) {
	data := api.OpenAPI
	if path != "" {
		if b, err := os.ReadFile(path); err == nil {
			data = b
		}
	}

	loader := openapi3.NewLoader()
	loader.Context = ctx
	doc, err := loader.LoadFromData(data)
	if err != nil {
		return nil, fmt.Errorf("load openapi: %w", err)
	}
	if err := doc.Validate(ctx); err != nil {
		return nil, fmt.Errorf("validate openapi: %w", err)
	}

	jsonBody, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("marshal openapi: %w", err)
	}
	return &Docs{doc: doc, yamlBody: data, jsonBody: jsonBody}, nil
}

func (d *Docs) Document() *openapi3.T {
	return d.doc
}

// Documents reports whether the document declares method on path.
func (d *Docs) Documents(method, path string) bool {
	item := d.doc.Paths.Find(path)
	return item != nil && item.GetOperation(method) != nil
}

func (d *Docs) ServeYAML(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/yaml")
	_, _ = w.Write(d.yamlBody)
}

func (d *Docs) ServeJSON(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write(d.jsonBody)
}

// UI serves Swagger UI pointed at the JSON document.
func UI() http.Handler {
	return httpSwagger.Handler(
		httpSwagger.URL("/openapi.json"),
	)
}
