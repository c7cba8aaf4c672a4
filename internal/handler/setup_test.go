package handler

import (
	"io/fs"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/dafibh/fortuna/fortuna-web/internal/service"
	"github.com/dafibh/fortuna/fortuna-web/internal/testutil"
	"github.com/dafibh/fortuna/fortuna-web/web"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
)

type testApp struct {
	api  *testutil.FakeAPI
	echo *echo.Echo
}

func newTestEcho(t *testing.T) *echo.Echo {
	t.Helper()
	e := echo.New()
	renderer, err := NewRenderer(web.TemplatesFS)
	require.NoError(t, err)
	e.Renderer = renderer
	e.Validator = NewFormValidator()
	e.HTTPErrorHandler = HTTPErrorHandler
	return e
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()
	api := testutil.NewFakeAPI(t)
	client := api.Client(t)
	categories := service.NewCategoryService(client, "")
	entries := service.NewEntryService(client, "", categories)

	flash := NewFlash("", false)
	static, err := fs.Sub(web.StaticFS, "static")
	require.NoError(t, err)

	e := newTestEcho(t)
	RegisterRoutes(e, static,
		NewCategoryHandler(categories, flash),
		NewEntryHandler(entries, categories, flash),
	)
	return &testApp{api: api, echo: e}
}

func (a *testApp) get(path string, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	rec := httptest.NewRecorder()
	a.echo.ServeHTTP(rec, req)
	return rec
}

func (a *testApp) post(path string, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	rec := httptest.NewRecorder()
	a.echo.ServeHTTP(rec, req)
	return rec
}

// follow replays the redirect of rec with the cookies it set
func (a *testApp) follow(t *testing.T, rec *httptest.ResponseRecorder) *httptest.ResponseRecorder {
	t.Helper()
	require.Equal(t, http.StatusSeeOther, rec.Code)
	return a.get(rec.Header().Get(echo.HeaderLocation), rec.Result().Cookies()...)
}
