package handler

import (
	"embed"
	"fmt"
	"net/http"

	"github.com/deppfellow/zombies/internal/server"
	"github.com/labstack/echo/v4"
)

//go:embed docs/openapi.html docs/openapi.json
var docsFS embed.FS

// OpenAPIHandler serves the API documentation UI and the document it
// loads.
type OpenAPIHandler struct {
	Handler
}

func NewOpenAPIHandler(s *server.Server) *OpenAPIHandler {
	return &OpenAPIHandler{
		Handler: NewHandler(s),
	}
}

func (h *OpenAPIHandler) serve(c echo.Context, file, contentType string) error {
	data, err := docsFS.ReadFile(file)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", file, err)
	}

	c.Response().Header().Set("Cache-Control", "no-cache")
	return c.Blob(http.StatusOK, contentType, data)
}

// ServeOpenAPIUI serves the docs page.
func (h *OpenAPIHandler) ServeOpenAPIUI(c echo.Context) error {
	return h.serve(c, "docs/openapi.html", echo.MIMETextHTMLCharsetUTF8)
}

// ServeOpenAPISpec serves the OpenAPI document.
func (h *OpenAPIHandler) ServeOpenAPISpec(c echo.Context) error {
	return h.serve(c, "docs/openapi.json", echo.MIMEApplicationJSON)
}
