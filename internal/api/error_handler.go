package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/fixware/console/internal/api/metrics"
	"github.com/fixware/console/internal/api/middleware"
	"github.com/fixware/console/internal/core/domain"
	"github.com/fixware/console/internal/core/ports"
	"github.com/fixware/console/internal/infrastructure/backend"
)

// errorResponse is the canonical error envelope for all API errors.
type errorResponse struct {
	Error string `json:"error"`
}

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Tears the session down when the backend reported an expired token.
//   - Maps known domain errors to their HTTP status codes.
//   - Passes backend error statuses through with their body text.
//   - Logs unexpected errors without leaking details to the client.
func NewHTTPErrorHandler(log zerolog.Logger, sessions ports.SessionStore) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		// An upstream 401 anywhere destroys the session. The client loses
		// all state and lands back on the login screen; that teardown is
		// the system's only recovery behavior.
		if errors.Is(err, domain.ErrSessionExpired) {
			if sess, ok := middleware.SessionFrom(c); ok {
				if delErr := sessions.Delete(c.Request().Context(), sess.ID); delErr != nil {
					log.Warn().Err(delErr).Str("session_id", sess.ID).Msg("session teardown failed")
				}
			}
			c.SetCookie(middleware.ExpiredSessionCookie())
			metrics.SessionsExpiredTotal.Inc()
			_ = c.JSON(http.StatusUnauthorized, errorResponse{Error: "sessão expirada, faça login novamente"})
			return
		}

		code, msg := resolveError(err, log, c)
		_ = c.JSON(code, errorResponse{Error: msg})
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, string) {
	// Echo's own errors (bind failures, 404 from router, etc.)
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, fmt.Sprintf("%v", he.Message)
	}

	// Known domain errors → deterministic HTTP codes.
	switch {
	case errors.Is(err, domain.ErrInvalidCredentials):
		return http.StatusUnauthorized, "Email ou senha inválidos. Verifique suas credenciais e tente novamente."
	case errors.Is(err, ports.ErrSessionNotFound), errors.Is(err, domain.ErrNotAuthenticated):
		return http.StatusUnauthorized, "não autenticado"
	case errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden, "acesso negado"
	case errors.Is(err, domain.ErrOrderNotFound):
		return http.StatusNotFound, "ordem não encontrada"
	case errors.Is(err, domain.ErrProductNotFound):
		return http.StatusNotFound, "produto não encontrado"
	case errors.Is(err, domain.ErrUserNotFound):
		return http.StatusNotFound, "usuário não encontrado"
	}

	// Backend errors pass through with their status; the body text is what
	// the backend told us, which is what the console shows.
	var apiErr *backend.APIError
	if errors.As(err, &apiErr) {
		log.Warn().Int("status", apiErr.Status).Str("path", c.Path()).Msg("backend error")
		msg := apiErr.Body
		if msg == "" {
			msg = apiErr.StatusText
		}
		return apiErr.Status, msg
	}

	// Unexpected error: log the real cause, return a generic message.
	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")

	return http.StatusInternalServerError, "erro interno"
}
