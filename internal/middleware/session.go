package middleware

import (
	"net/http"

	"github.com/deppfellow/zombies/internal/flash"
	"github.com/deppfellow/zombies/internal/server"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// FlashKey stores the request's *flash.Flash in the echo context.
const FlashKey = "flash"

// SessionMiddleware gives every client an anonymous session id in a
// cookie. The id only scopes flash messages.
type SessionMiddleware struct {
	server *server.Server
}

func NewSessionMiddleware(s *server.Server) *SessionMiddleware {
	return &SessionMiddleware{server: s}
}

// Session reads or issues the session cookie and binds the flash store to
// it. A cookie that is not a UUID is replaced.
func (sm *SessionMiddleware) Session() echo.MiddlewareFunc {
	cfg := sm.server.Config.Session

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			sessionID := ""
			if cookie, err := c.Cookie(cfg.CookieName); err == nil {
				if _, err := uuid.Parse(cookie.Value); err == nil {
					sessionID = cookie.Value
				}
			}

			if sessionID == "" {
				sessionID = uuid.NewString()
				c.SetCookie(&http.Cookie{
					Name:     cfg.CookieName,
					Value:    sessionID,
					Path:     "/",
					HttpOnly: true,
					Secure:   cfg.Secure,
					SameSite: http.SameSiteLaxMode,
				})
			}

			f := flash.New(sm.server.Flash, sessionID, GetLogger(c))
			c.Set(FlashKey, f)
			c.SetRequest(c.Request().WithContext(flash.NewContext(c.Request().Context(), f)))

			return next(c)
		}
	}
}

// GetFlash returns the request's flash. Outside Session it returns one
// that drops everything.
func GetFlash(c echo.Context) *flash.Flash {
	if f, ok := c.Get(FlashKey).(*flash.Flash); ok {
		return f
	}
	return flash.FromContext(c.Request().Context())
}
