package middleware

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/dafibh/fortuna/fortuna-web/internal/apiclient"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequestLogger_LogsStatusAndRequestID(t *testing.T) {
	var buf bytes.Buffer
	orig := log.Logger
	log.Logger = zerolog.New(&buf)
	defer func() { log.Logger = orig }()

	e := echo.New()
	e.Use(echomiddleware.RequestIDWithConfig(echomiddleware.RequestIDConfig{
		Generator: func() string { return "req-42" },
	}))
	e.Use(RequestLogger())
	e.GET("/entries", func(c echo.Context) error {
		return c.String(http.StatusBadGateway, "down")
	})

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/entries", nil))

	out := buf.String()
	assert.Contains(t, out, `"level":"error"`)
	assert.NotContains(t, out, `"level":"info"`)
	assert.Contains(t, out, `"status":502`)
	assert.Contains(t, out, `"request_id":"req-42"`)
	assert.Contains(t, out, `"path":"/entries"`)
}

func TestPropagateRequestID_ForwardsToAPI(t *testing.T) {
	var forwarded string
	api := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		forwarded = r.Header.Get(apiclient.RequestIDHeader)
		w.WriteHeader(http.StatusNoContent)
	}))
	defer api.Close()

	client, err := apiclient.New(api.URL, time.Second)
	require.NoError(t, err)

	e := echo.New()
	e.Use(echomiddleware.RequestIDWithConfig(echomiddleware.RequestIDConfig{
		Generator: func() string { return "req-7" },
	}))
	e.Use(PropagateRequestID())
	e.GET("/", func(c echo.Context) error {
		if err := client.Do(c.Request().Context(), http.MethodGet, "ping", nil, nil); err != nil {
			return err
		}
		return c.NoContent(http.StatusOK)
	})

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "req-7", forwarded)
}
