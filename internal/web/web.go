// Package web serves the embedded browser search page.
package web

import (
	"embed"
	"net/http"

	"github.com/labstack/echo/v4"
)

//go:embed static/index.html
var staticFS embed.FS

// Register mounts the search page at the site root.
func Register(e *echo.Echo) {
	e.GET("/", func(c echo.Context) error {
		page, err := staticFS.ReadFile("static/index.html")
		if err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, "page unavailable")
		}
		return c.HTMLBlob(http.StatusOK, page)
	})
}
