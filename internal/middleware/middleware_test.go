package middleware

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/deppfellow/zombies/internal/config"
	"github.com/deppfellow/zombies/internal/errs"
	"github.com/deppfellow/zombies/internal/flash"
	"github.com/deppfellow/zombies/internal/server"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testServer() *server.Server {
	logger := zerolog.Nop()
	return &server.Server{
		Config: &config.Config{
			Session:       config.SessionConfig{CookieName: "sid", TTL: time.Minute},
			Observability: config.DefaultObservabilityConfig(),
		},
		Logger: &logger,
		Flash:  flash.NewMemoryStore(time.Minute),
	}
}

func sessionCookie(rec *httptest.ResponseRecorder) *http.Cookie {
	for _, c := range rec.Result().Cookies() {
		if c.Name == "sid" {
			return c
		}
	}
	return nil
}

func TestSession(t *testing.T) {
	e := echo.New()
	mw := NewSessionMiddleware(testServer()).Session()

	var seen string
	h := mw(func(c echo.Context) error {
		seen = GetFlash(c).SessionID()
		return c.NoContent(http.StatusOK)
	})

	t.Run("issues a cookie", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/people", nil)
		rec := httptest.NewRecorder()
		require.NoError(t, h(e.NewContext(req, rec)))

		cookie := sessionCookie(rec)
		require.NotNil(t, cookie)
		assert.True(t, cookie.HttpOnly)
		assert.Equal(t, "/", cookie.Path)
		assert.Equal(t, cookie.Value, seen)
		_, err := uuid.Parse(cookie.Value)
		assert.NoError(t, err)
	})

	t.Run("reuses a valid cookie", func(t *testing.T) {
		id := uuid.NewString()
		req := httptest.NewRequest(http.MethodGet, "/people", nil)
		req.AddCookie(&http.Cookie{Name: "sid", Value: id})
		rec := httptest.NewRecorder()
		require.NoError(t, h(e.NewContext(req, rec)))

		assert.Nil(t, sessionCookie(rec))
		assert.Equal(t, id, seen)
	})

	t.Run("replaces a forged cookie", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/people", nil)
		req.AddCookie(&http.Cookie{Name: "sid", Value: "../../etc"})
		rec := httptest.NewRecorder()
		require.NoError(t, h(e.NewContext(req, rec)))

		cookie := sessionCookie(rec)
		require.NotNil(t, cookie)
		assert.NotEqual(t, "../../etc", cookie.Value)
		assert.Equal(t, cookie.Value, seen)
	})
}

func TestRequestID(t *testing.T) {
	e := echo.New()
	var got string
	h := RequestID()(func(c echo.Context) error {
		got = GetRequestID(c)
		return nil
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, "abc-123")
	rec := httptest.NewRecorder()
	require.NoError(t, h(e.NewContext(req, rec)))
	assert.Equal(t, "abc-123", got)
	assert.Equal(t, "abc-123", rec.Header().Get(RequestIDHeader))

	rec = httptest.NewRecorder()
	require.NoError(t, h(e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)))
	assert.NotEmpty(t, got)
	assert.Equal(t, got, rec.Header().Get(RequestIDHeader))
}

func TestToHTTPError(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		status  int
		message string
	}{
		{"http error passes through", errs.NewTooManyRequestsError(), http.StatusTooManyRequests, "Too many requests, the zombies need a rest"},
		{"unknown route", echo.ErrNotFound, http.StatusNotFound, "Route not found"},
		{"echo method not allowed", echo.ErrMethodNotAllowed, http.StatusMethodNotAllowed, "Method Not Allowed"},
		{"application error", errs.Database("Could not retrieve people", errors.New("dial tcp")), http.StatusInternalServerError, "Could not retrieve people"},
		{"anything else", errors.New("boom"), http.StatusInternalServerError, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			httpErr := toHTTPError(tt.err)
			assert.Equal(t, tt.status, httpErr.Status)
			assert.Equal(t, tt.status, errorStatus(tt.err, http.StatusOK))
			if tt.message != "" {
				assert.Equal(t, tt.message, httpErr.Message)
			}
			assert.NotContains(t, httpErr.Message, "dial tcp")
		})
	}

	assert.Equal(t, http.StatusOK, errorStatus(nil, http.StatusOK))
}

func TestGlobalErrorHandler(t *testing.T) {
	e := echo.New()
	global := NewGlobalMiddlewares(testServer())

	t.Run("json body", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/people", nil)
		req.Header.Set(echo.HeaderAccept, "application/json")
		rec := httptest.NewRecorder()

		global.GlobalErrorHandler(errs.Database("Could not retrieve people", errors.New("secret")), e.NewContext(req, rec))

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		var body errs.HTTPError
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, "Could not retrieve people", body.Message)
		assert.NotContains(t, rec.Body.String(), "secret")
	})

	t.Run("html falls back to json without a renderer", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/people", nil)
		req.Header.Set(echo.HeaderAccept, "text/html")
		rec := httptest.NewRecorder()

		global.GlobalErrorHandler(echo.ErrNotFound, e.NewContext(req, rec))

		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Contains(t, rec.Body.String(), "Route not found")
	})

	t.Run("head has no body", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodHead, "/people", nil)
		rec := httptest.NewRecorder()

		global.GlobalErrorHandler(echo.ErrNotFound, e.NewContext(req, rec))

		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Empty(t, rec.Body.String())
	})
}

func TestMethodOverrideReadsTheFormField(t *testing.T) {
	e := echo.New()
	e.Pre(NewGlobalMiddlewares(testServer()).MethodOverride())
	e.DELETE("/people/:id", func(c echo.Context) error {
		return c.String(http.StatusOK, c.Param("id"))
	})

	req := httptest.NewRequest(http.MethodPost, "/people/7", strings.NewReader(MethodOverrideField+"=DELETE"))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "7", rec.Body.String())
}
