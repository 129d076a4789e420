package middleware

import (
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"github.com/fixware/console/internal/core/ports"
)

// CookieName is the session cookie set on login and cleared on teardown.
const CookieName = "console_session"

// sessionKey is the echo context key the middleware stores the loaded
// session under.
const sessionKey = "session"

// SignSessionID wraps a session ID in a signed HS256 token suitable for the
// session cookie.
func SignSessionID(secret, sessionID string, ttl time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"sid": sessionID,
		"iat": time.Now().Unix(),
		"exp": time.Now().Add(ttl).Unix(),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
}

// parseSessionID verifies the cookie token and extracts the session ID.
func parseSessionID(secret, token string) (string, error) {
	claims := jwt.MapClaims{}
	tkn, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return []byte(secret), nil
	})
	if err != nil || !tkn.Valid {
		return "", jwt.ErrTokenSignatureInvalid
	}
	sid, _ := claims["sid"].(string)
	if sid == "" {
		return "", jwt.ErrTokenInvalidClaims
	}
	return sid, nil
}

// NewSessionCookie builds the session cookie carrying the signed token.
func NewSessionCookie(token string, ttl time.Duration) *http.Cookie {
	return &http.Cookie{
		Name:     CookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(ttl.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
}

// ExpiredSessionCookie builds the cookie that clears the session on the
// client.
func ExpiredSessionCookie() *http.Cookie {
	return &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
}

// Session validates the session cookie, loads the session from the store
// and injects it into the request context. Requests without a resolvable
// session are rejected with 401.
func Session(secret string, sessions ports.SessionStore) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			cookie, err := c.Cookie(CookieName)
			if err != nil || cookie.Value == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "não autenticado")
			}

			sid, err := parseSessionID(secret, cookie.Value)
			if err != nil {
				c.SetCookie(ExpiredSessionCookie())
				return echo.NewHTTPError(http.StatusUnauthorized, "sessão inválida")
			}

			sess, err := sessions.Get(c.Request().Context(), sid)
			if err != nil {
				c.SetCookie(ExpiredSessionCookie())
				return echo.NewHTTPError(http.StatusUnauthorized, "sessão expirada")
			}

			c.Set(sessionKey, sess)
			return next(c)
		}
	}
}

// SessionFrom extracts the session injected by the Session middleware.
// The boolean is false on routes the middleware did not run on.
func SessionFrom(c echo.Context) (*ports.Session, bool) {
	sess, ok := c.Get(sessionKey).(*ports.Session)
	return sess, ok
}
