package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/startupscout/showcase/internal/api/middleware"
)

// ctxUserID extracts the identity injected by the Auth middleware. An empty
// value means the route was mounted without it.
func ctxUserID(c echo.Context) (string, error) {
	userID, _ := c.Get(middleware.KeyUserID).(string)
	if userID == "" {
		return "", echo.NewHTTPError(http.StatusUnauthorized, "Unauthorized")
	}
	return userID, nil
}
