// Package respond picks a representation for a request and writes it.
//
// Negotiate is a pure function of the Accept header and the media types a
// route offers. Handlers return one of the Response kinds (View, JSON,
// Redirect, Status) and Write turns it into an HTTP response.
package respond

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/munnerz/goautoneg"
)

// Media types offered by the routes.
const (
	HTML = "text/html"
	JSON = "application/json"
)

// Negotiate returns the offer that best matches accept, or false when
// accept rules out all of them. An absent header accepts the first offer.
func Negotiate(accept string, offers ...string) (string, bool) {
	if len(offers) == 0 {
		return "", false
	}
	if strings.TrimSpace(accept) == "" {
		return offers[0], true
	}

	chosen := goautoneg.Negotiate(accept, offers)
	return chosen, chosen != ""
}

// Format negotiates against the request's Accept header.
func Format(c echo.Context, offers ...string) (string, bool) {
	return Negotiate(c.Request().Header.Get(echo.HeaderAccept), offers...)
}

// Response is a closed set of response kinds.
type Response interface {
	write(c echo.Context) error
}

// View renders a named template.
type View struct {
	Status int
	Name   string
	Data   map[string]any
}

// JSONBody writes Body as JSON.
type JSONBody struct {
	Status int
	Body   any
}

// Redirect sends the client to Location with 303 See Other, so the
// follow-up request is a GET whatever the original method was.
type Redirect struct {
	Location string
}

// Status writes a bare status code with no body.
type Status struct {
	Code int
}

func (v View) write(c echo.Context) error {
	status := v.Status
	if status == 0 {
		status = http.StatusOK
	}
	return c.Render(status, v.Name, v.Data)
}

func (j JSONBody) write(c echo.Context) error {
	status := j.Status
	if status == 0 {
		status = http.StatusOK
	}
	return c.JSON(status, j.Body)
}

func (r Redirect) write(c echo.Context) error {
	return c.Redirect(http.StatusSeeOther, r.Location)
}

func (s Status) write(c echo.Context) error {
	return c.NoContent(s.Code)
}

// Write sends r.
func Write(c echo.Context, r Response) error {
	return r.write(c)
}

// Kind names the response kind for logs and traces.
func Kind(r Response) string {
	switch r.(type) {
	case View:
		return "view"
	case JSONBody:
		return "json"
	case Redirect:
		return "redirect"
	case Status:
		return "status"
	default:
		return "unknown"
	}
}
