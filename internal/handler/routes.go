package handler

import (
	"io/fs"
	"net/http"

	"github.com/labstack/echo/v4"
)

// RegisterRoutes sets up all page routes
func RegisterRoutes(e *echo.Echo, static fs.FS, categoryHandler *CategoryHandler, entryHandler *EntryHandler) {
	e.GET("/", func(c echo.Context) error {
		return c.Redirect(http.StatusFound, entryHandler.BasePath())
	})

	// Embedded stylesheet
	e.StaticFS("/static", static)

	// Category pages
	categoryHandler.Register(e.Group(categoryHandler.BasePath()))

	// Entry pages
	entryHandler.Register(e.Group(entryHandler.BasePath()))
}
