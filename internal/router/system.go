package router

import (
	"github.com/deppfellow/zombies/internal/handler"
	"github.com/deppfellow/zombies/internal/server"
	"github.com/labstack/echo/v4"
)

// registerSystemRoutes registers endpoints outside the garden itself:
// health, metrics and API docs.
func registerSystemRoutes(r *echo.Echo, s *server.Server, h *handler.Handlers) {
	r.GET("/status", h.Health.CheckHealth)

	r.GET("/metrics", echo.WrapHandler(s.Metrics.Handler()))

	r.GET("/docs", h.OpenAPI.ServeOpenAPIUI)
	r.GET("/docs/openapi.json", h.OpenAPI.ServeOpenAPISpec)
}
