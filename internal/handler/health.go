package handler

import (
	"context"
	"fmt"
	"net/http"
	"slices"
	"time"

	"github.com/deppfellow/zombies/internal/middleware"
	"github.com/deppfellow/zombies/internal/server"
	"github.com/labstack/echo/v4"
)

// HealthHandler reports whether the service and its dependencies are up,
// for load balancers and uptime monitors.
type HealthHandler struct {
	Handler
}

func NewHealthHandler(s *server.Server) *HealthHandler {
	return &HealthHandler{
		Handler: NewHandler(s),
	}
}

// checkResult is one dependency entry in the response.
type checkResult struct {
	Status       string `json:"status"`
	ResponseTime string `json:"response_time"`
	Error        string `json:"error,omitempty"`
}

// healthResponse is the /status body.
type healthResponse struct {
	Status      string                 `json:"status"`
	Timestamp   time.Time              `json:"timestamp"`
	Environment string                 `json:"environment"`
	Database    string                 `json:"database"`
	Checks      map[string]checkResult `json:"checks"`
}

// enabled reports whether check is configured to run.
func (h *HealthHandler) enabled(check string) bool {
	cfg := h.server.Config.Observability.HealthChecks
	return cfg.Enabled && (len(cfg.Checks) == 0 || slices.Contains(cfg.Checks, check))
}

// ping runs fn under the configured timeout and records the result.
// Failures are logged and sent to New Relic as HealthCheckError events.
func (h *HealthHandler) ping(c echo.Context, name string, fn func(context.Context) error) checkResult {
	logger := middleware.GetLogger(c)

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.server.Config.Observability.HealthChecks.Timeout)
	defer cancel()

	start := time.Now()
	err := fn(ctx)
	elapsed := time.Since(start)

	if err != nil {
		logger.Error().Err(err).Str("check", name).Dur("response_time", elapsed).Msg("health check failed")

		if h.server.LoggerService != nil && h.server.LoggerService.GetApplication() != nil {
			h.server.LoggerService.GetApplication().RecordCustomEvent("HealthCheckError", map[string]interface{}{
				"check_type":       name,
				"operation":        "health_check",
				"error_type":       name + "_unhealthy",
				"response_time_ms": elapsed.Milliseconds(),
				"error_message":    err.Error(),
			})
		}

		return checkResult{Status: "unhealthy", ResponseTime: elapsed.String(), Error: err.Error()}
	}

	logger.Debug().Str("check", name).Dur("response_time", elapsed).Msg("health check passed")
	return checkResult{Status: "healthy", ResponseTime: elapsed.String()}
}

// CheckHealth answers 200 when the database answers and 503 otherwise.
// Redis is reported but optional: flashes fall back to memory without it.
func (h *HealthHandler) CheckHealth(c echo.Context) error {
	response := healthResponse{
		Status:      "healthy",
		Timestamp:   time.Now().UTC(),
		Environment: h.server.Config.Primary.Env,
		Database:    h.server.DB.Driver,
		Checks:      make(map[string]checkResult),
	}

	if h.enabled("database") {
		result := h.ping(c, "database", h.server.DB.Ping)
		response.Checks["database"] = result
		if result.Status != "healthy" {
			response.Status = "unhealthy"
		}
	}

	if h.server.Redis != nil && h.enabled("redis") {
		response.Checks["redis"] = h.ping(c, "redis", func(ctx context.Context) error {
			return h.server.Redis.Ping(ctx).Err()
		})
	}

	status := http.StatusOK
	if response.Status != "healthy" {
		status = http.StatusServiceUnavailable
	}

	if err := c.JSON(status, response); err != nil {
		return fmt.Errorf("failed to write JSON response: %w", err)
	}
	return nil
}
