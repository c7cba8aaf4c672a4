package handler

import (
	"errors"
	"net/http"

	"github.com/dafibh/fortuna/fortuna-web/internal/resource"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
)

// ProblemDetails is the data of an error page, shaped after RFC 7807
type ProblemDetails struct {
	Type     string
	Title    string
	Status   int
	Detail   string
	Instance string
	Toast    *resource.Toast
}

// Error types
const (
	ErrorTypeNotFound   = "https://fortuna.app/errors/not-found"
	ErrorTypeBadGateway = "https://fortuna.app/errors/bad-gateway"
	ErrorTypeInternal   = "https://fortuna.app/errors/internal"
	ErrorTypeHTTP       = "https://fortuna.app/errors/http"
)

const errorTemplate = "error"

func renderProblem(c echo.Context, p ProblemDetails) error {
	p.Instance = c.Request().URL.Path
	return c.Render(p.Status, errorTemplate, p)
}

// NewNotFoundError renders the not found page
func NewNotFoundError(c echo.Context, detail string) error {
	return renderProblem(c, ProblemDetails{
		Type:   ErrorTypeNotFound,
		Title:  "Not Found",
		Status: http.StatusNotFound,
		Detail: detail,
	})
}

// NewBadGatewayError renders the page shown when the REST API fails
func NewBadGatewayError(c echo.Context, detail string) error {
	return renderProblem(c, ProblemDetails{
		Type:   ErrorTypeBadGateway,
		Title:  "Bad Gateway",
		Status: http.StatusBadGateway,
		Detail: detail,
	})
}

// NewInternalError renders the internal error page
func NewInternalError(c echo.Context, detail string) error {
	return renderProblem(c, ProblemDetails{
		Type:   ErrorTypeInternal,
		Title:  "Internal Server Error",
		Status: http.StatusInternalServerError,
		Detail: detail,
	})
}

// HTTPErrorHandler renders errors that reach echo as HTML pages. Errors
// that are not echo.HTTPError get the internal error page.
func HTTPErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	var he *echo.HTTPError
	if !errors.As(err, &he) {
		log.Error().Err(err).Str("path", c.Request().URL.Path).Msg("Unhandled error")
		he = echo.NewHTTPError(http.StatusInternalServerError)
	}

	status := he.Code
	title := http.StatusText(status)
	detail := ""
	if msg, ok := he.Message.(string); ok && msg != title {
		detail = msg
	}

	switch {
	case c.Request().Method == http.MethodHead:
		err = c.NoContent(status)
	case c.Echo().Renderer == nil:
		err = c.String(status, title)
	case status == http.StatusInternalServerError:
		err = NewInternalError(c, detail)
	default:
		err = renderProblem(c, ProblemDetails{
			Type:   ErrorTypeHTTP,
			Title:  title,
			Status: status,
			Detail: detail,
		})
	}
	if err != nil {
		log.Error().Err(err).Msg("Failed to render error page")
	}
}
