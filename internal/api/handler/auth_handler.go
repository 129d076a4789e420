package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	apimw "github.com/fixware/console/internal/api/middleware"
	"github.com/fixware/console/internal/core/domain"
	"github.com/fixware/console/internal/core/ports"
)

// AuthHandler owns the login/logout endpoints and the password-recovery flow.
// On login it signs the new session ID into the session cookie; on logout it
// destroys the session and clears the cookie.
type AuthHandler struct {
	auth          ports.AuthService
	sessionSecret string
	sessionTTL    time.Duration
	log           zerolog.Logger
}

func NewAuthHandler(auth ports.AuthService, sessionSecret string, sessionTTL time.Duration, log zerolog.Logger) *AuthHandler {
	return &AuthHandler{
		auth:          auth,
		sessionSecret: sessionSecret,
		sessionTTL:    sessionTTL,
		log:           log,
	}
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type loginResponse struct {
	User domain.User `json:"user"`
}

type recoverRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type resetPasswordRequest struct {
	Token    string `json:"token" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// Login handles POST /auth/login.
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	sess, err := h.auth.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return err
	}

	token, err := apimw.SignSessionID(h.sessionSecret, sess.ID, h.sessionTTL)
	if err != nil {
		h.log.Error().Err(err).Msg("signing session cookie")
		return echo.NewHTTPError(http.StatusInternalServerError, "erro interno")
	}
	c.SetCookie(apimw.NewSessionCookie(token, h.sessionTTL))

	return c.JSON(http.StatusOK, loginResponse{User: sess.User})
}

// Logout handles POST /auth/logout.
func (h *AuthHandler) Logout(c echo.Context) error {
	if sess, ok := apimw.SessionFrom(c); ok {
		if err := h.auth.Logout(c.Request().Context(), sess.ID); err != nil {
			h.log.Warn().Err(err).Str("session_id", sess.ID).Msg("logout cleanup failed")
		}
	}
	c.SetCookie(apimw.ExpiredSessionCookie())
	return c.NoContent(http.StatusNoContent)
}

// Me handles GET /me, returning the cached profile of the session user.
func (h *AuthHandler) Me(c echo.Context) error {
	sess, err := ctxSession(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, sess.User)
}

// Recover handles POST /auth/recover, dispatching the recovery email.
func (h *AuthHandler) Recover(c echo.Context) error {
	var req recoverRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := h.auth.RecoverPassword(c.Request().Context(), req.Email); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "email de recuperação enviado"})
}

// RecoverToken handles GET /auth/recover-password/:token. It echoes the token
// back so the reset form can carry it into the new-password submission.
func (h *AuthHandler) RecoverToken(c echo.Context) error {
	token := c.Param("token")
	if token == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "token is required")
	}
	return c.JSON(http.StatusOK, map[string]string{"token": token})
}

// ResetPassword handles PUT /auth/new-password.
func (h *AuthHandler) ResetPassword(c echo.Context) error {
	var req resetPasswordRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := validatePasswordStrength(req.Password); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := h.auth.ResetPassword(c.Request().Context(), req.Token, req.Password); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "senha alterada com sucesso"})
}
