package http

import (
	"encoding/json"
	"fmt"
	"html/template"
	"net/http"

	"github.com/go-chi/chi/v5"
	"gopkg.in/yaml.v3"

	"github.com/vadim/social-pulse/internal/httpx/response"
)

const swaggerUIVersion = "5"

// docsTemplate renders Swagger UI against the JSON form of the document,
// with a link to the YAML source for download
const docsTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="UTF-8">
  <title>{{.Title}} docs</title>
  <link rel="stylesheet" href="https://unpkg.com/swagger-ui-dist@{{.Version}}/swagger-ui.css">
</head>
<body>
  <p style="font-family:sans-serif;margin:12px 20px">
    {{.Title}} &middot; <a href="{{.YAMLURL}}">openapi.yaml</a> &middot; <a href="{{.JSONURL}}">openapi.json</a>
  </p>
  <div id="docs"></div>
  <script src="https://unpkg.com/swagger-ui-dist@{{.Version}}/swagger-ui-bundle.js"></script>
  <script>
    SwaggerUIBundle({
      url: "{{.JSONURL}}",
      dom_id: "#docs",
      deepLinking: true,
      docExpansion: "list",
      tryItOutEnabled: true
    });
  </script>
</body>
</html>`

const docsPath = "/docs"

// SwaggerHandler serves the API documentation under /docs.
// The YAML document is converted to JSON once, when the handler is built.
type SwaggerHandler struct {
	title   string
	yamlDoc []byte
	jsonDoc []byte
	jsonErr error
	page    *template.Template
}

// NewSwaggerHandler creates a documentation handler for an OpenAPI YAML document
func NewSwaggerHandler(title string, spec []byte) *SwaggerHandler {
	h := &SwaggerHandler{
		title:   title,
		yamlDoc: spec,
		page:    template.Must(template.New("docs").Parse(docsTemplate)),
	}
	h.jsonDoc, h.jsonErr = yamlToJSON(spec)
	return h
}

// RegisterRoutes registers the documentation routes
func (h *SwaggerHandler) RegisterRoutes(r chi.Router) {
	r.Get(docsPath, h.UI())
	r.Get(docsPath+"/", http.RedirectHandler(docsPath, http.StatusMovedPermanently).ServeHTTP)
	r.Get(docsPath+"/openapi.yaml", h.Spec())
	r.Get(docsPath+"/openapi.json", h.SpecJSON())
}

// UI serves the Swagger UI page
func (h *SwaggerHandler) UI() http.HandlerFunc {
	data := struct {
		Title   string
		Version string
		YAMLURL string
		JSONURL string
	}{
		Title:   h.title,
		Version: swaggerUIVersion,
		YAMLURL: docsPath + "/openapi.yaml",
		JSONURL: docsPath + "/openapi.json",
	}

	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		if err := h.page.Execute(w, data); err != nil {
			response.InternalError(w, "failed to render docs")
		}
	}
}

// Spec serves the OpenAPI document as written
func (h *SwaggerHandler) Spec() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/yaml")
		w.Header().Set("Cache-Control", "public, max-age=3600")
		w.Write(h.yamlDoc)
	}
}

// SpecJSON serves the OpenAPI document converted to JSON
func (h *SwaggerHandler) SpecJSON() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if h.jsonErr != nil {
			response.InternalError(w, "invalid OpenAPI document")
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("Cache-Control", "public, max-age=3600")
		w.Write(h.jsonDoc)
	}
}

func yamlToJSON(doc []byte) ([]byte, error) {
	var v any
	if err := yaml.Unmarshal(doc, &v); err != nil {
		return nil, fmt.Errorf("parsing openapi yaml: %w", err)
	}
	out, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("encoding openapi json: %w", err)
	}
	return out, nil
}
