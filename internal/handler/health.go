package handler // handler defines http handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// Health backs GET /test, the liveness probe used by deploy checks.
func Health(c echo.Context) error {
	return c.String(http.StatusOK, "ok")
}
