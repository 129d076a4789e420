package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	apimw "github.com/fixware/console/internal/api/middleware"
	"github.com/fixware/console/internal/core/ports"
)

// ctxSession extracts the session injected by the session middleware and
// fast-fails when the middleware did not run.
func ctxSession(c echo.Context) (*ports.Session, error) {
	sess, ok := apimw.SessionFrom(c)
	if !ok {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "não autenticado")
	}
	return sess, nil
}
