package handler

import (
	"time"

	"github.com/deppfellow/zombies/internal/errs"
	"github.com/deppfellow/zombies/internal/middleware"
	"github.com/deppfellow/zombies/internal/respond"
	"github.com/deppfellow/zombies/internal/server"
	"github.com/deppfellow/zombies/internal/validation"
	"github.com/labstack/echo/v4"
	"github.com/newrelic/go-agent/v3/integrations/nrpkgerrors"
	"github.com/newrelic/go-agent/v3/newrelic"
)

// Handler holds the shared dependencies concrete handlers embed.
type Handler struct {
	server *server.Server
}

func NewHandler(s *server.Server) Handler {
	return Handler{server: s}
}

// Input is what a typed handler receives.
//
// Err is the binding or validation failure, nil when Req is valid. Routes
// answer invalid input themselves (flash or bare status), so the pipeline
// never turns it into an error response.
type Input[Req validation.Validatable] struct {
	Format string
	Req    Req
	Err    error
}

// HandlerFunc is a typed endpoint returning one of the respond kinds.
type HandlerFunc[Req validation.Validatable] func(c echo.Context, in Input[Req]) (respond.Response, error)

// Route describes a negotiated endpoint.
type Route[Req validation.Validatable] struct {
	// Name labels logs and traces.
	Name string

	// Offers lists the media types the route can produce, preferred first.
	Offers []string

	// NewRequest returns a fresh pointer to bind into.
	NewRequest func() Req
}

// Handle wraps fn with negotiation, binding, logging and tracing.
//
// A request whose Accept header rules out every offer gets 406 before
// anything is bound or stored. Errors returned by fn go to the global
// error handler.
func Handle[Req validation.Validatable](h Handler, route Route[Req], fn HandlerFunc[Req]) echo.HandlerFunc {
	return func(c echo.Context) error {
		start := time.Now()

		txn := newrelic.FromContext(c.Request().Context())
		if txn != nil {
			txn.AddAttribute("handler.name", route.Name)
		}

		logger := middleware.GetLogger(c).With().
			Str("operation", route.Name).
			Str("route", c.Path()).
			Logger()

		format, ok := respond.Format(c, route.Offers...)
		if !ok {
			logger.Warn().
				Str("accept", c.Request().Header.Get(echo.HeaderAccept)).
				Msg("no acceptable representation")
			if txn != nil {
				txn.AddAttribute("negotiation.status", "not_acceptable")
			}
			return errs.NewNotAcceptableError(route.Offers)
		}

		in := Input[Req]{Format: format, Req: route.NewRequest()}

		validationStart := time.Now()
		in.Err = validation.BindAndValidate(c, in.Req)
		validationDuration := time.Since(validationStart)

		if in.Err != nil {
			logger.Info().
				Err(in.Err).
				Dur("validation_duration", validationDuration).
				Msg("request validation failed")
		}
		if txn != nil {
			txn.AddAttribute("response.format", format)
			txn.AddAttribute("validation.duration_ms", validationDuration.Milliseconds())
			if in.Err != nil {
				txn.AddAttribute("validation.status", "failed")
			} else {
				txn.AddAttribute("validation.status", "success")
			}
		}

		handlerStart := time.Now()
		resp, err := fn(c, in)
		handlerDuration := time.Since(handlerStart)

		if err != nil {
			logger.Error().
				Err(err).
				Dur("handler_duration", handlerDuration).
				Dur("total_duration", time.Since(start)).
				Msg("handler execution failed")

			if txn != nil {
				txn.NoticeError(nrpkgerrors.Wrap(err))
				txn.AddAttribute("handler.status", "error")
				txn.AddAttribute("handler.duration_ms", handlerDuration.Milliseconds())
			}
			return err
		}

		if txn != nil {
			txn.AddAttribute("handler.status", "success")
			txn.AddAttribute("handler.duration_ms", handlerDuration.Milliseconds())
			txn.AddAttribute("response.kind", respond.Kind(resp))
		}

		logger.Debug().
			Str("format", format).
			Str("response", respond.Kind(resp)).
			Dur("handler_duration", handlerDuration).
			Dur("total_duration", time.Since(start)).
			Msg("request handled")

		return respond.Write(c, resp)
	}
}
