package router

import (
	"github.com/deppfellow/zombies/internal/handler"
	"github.com/deppfellow/zombies/internal/middleware"
	"github.com/labstack/echo/v4"
)

// registerGardenRoutes registers the people and zombie pages.
//
// Trailing slashes are stripped in Pre, so /people/ and /people are the
// same route. Mutations are rate limited per client IP.
func registerGardenRoutes(r *echo.Echo, m *middleware.Middlewares, h *handler.Handlers) {
	session := m.Session.Session()
	limit := m.RateLimit.Limit()

	r.GET("/", h.People.Home)

	people := r.Group("/people", session)
	people.GET("", h.People.List())
	people.GET("/new", h.People.NewForm())
	people.POST("", h.People.Create(), limit)
	people.PUT("/eaten", h.People.MarkEaten(), limit)
	people.DELETE("/:id", h.People.Delete(), limit)

	r.GET("/zombies", h.Zombies.List(), session)
}
