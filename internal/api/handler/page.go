package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// Page returns a placeholder handler for a navigable shell view. The views
// themselves belong to the front-end; what matters here is that each one is
// a distinct navigation target the guard can admit or cancel.
func Page(name string) echo.HandlerFunc {
	return func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"page": name})
	}
}
