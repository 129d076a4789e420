package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/fixware/console/internal/core/policy"
)

// RequireKinds enforces role-based access control over the account kind
// derived from the session user's role list.
func RequireKinds(kinds ...policy.AccountKind) echo.MiddlewareFunc {
	allowed := make(map[policy.AccountKind]struct{}, len(kinds))
	for _, k := range kinds {
		allowed[k] = struct{}{}
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			sess, ok := SessionFrom(c)
			if !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, "não autenticado")
			}
			if _, ok := allowed[policy.KindOf(sess.User)]; !ok {
				return c.JSON(http.StatusForbidden, map[string]string{"error": "acesso negado"})
			}
			return next(c)
		}
	}
}
