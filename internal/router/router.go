// Package router builds the Echo instance: renderer, error handler,
// middleware chain and every route.
package router

import (
	"fmt"

	"github.com/deppfellow/zombies/internal/handler"
	"github.com/deppfellow/zombies/internal/middleware"
	"github.com/deppfellow/zombies/internal/server"
	"github.com/deppfellow/zombies/internal/view"
	"github.com/labstack/echo/v4"
)

// NewRouter wires middleware and routes.
//
// Middleware order matters: the request id comes first so every later
// layer can log it; the New Relic transaction must exist before the
// context logger reads its trace ids.
func NewRouter(s *server.Server, h *handler.Handlers) (*echo.Echo, error) {
	middlewares := middleware.NewMiddlewares(s)

	renderer, err := view.New()
	if err != nil {
		return nil, fmt.Errorf("failed to load views: %w", err)
	}

	router := echo.New()
	router.HideBanner = true
	router.HidePort = true
	router.Renderer = renderer
	router.HTTPErrorHandler = middlewares.Global.GlobalErrorHandler

	// Pre runs before routing.
	router.Pre(
		middlewares.Global.RemoveTrailingSlash(),
		middlewares.Global.MethodOverride(),
	)

	router.Use(
		middleware.RequestID(),
		middlewares.Tracing.NewRelicMiddleware(),
		middlewares.Tracing.EnhanceTracing(),
		middlewares.ContextEnhancer.EnhanceContext(),
		middlewares.Global.RequestLogger(),
		middlewares.Global.Recover(),
		middlewares.Global.Secure(),
		middlewares.Global.CORS(),
	)

	registerSystemRoutes(router, s, h)
	registerGardenRoutes(router, middlewares, h)

	return router, nil
}
