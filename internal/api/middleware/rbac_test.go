package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/fixware/console/internal/core/domain"
	"github.com/fixware/console/internal/core/policy"
	"github.com/fixware/console/internal/core/ports"
)

func runRBAC(t *testing.T, sess *ports.Session, kinds ...policy.AccountKind) (*httptest.ResponseRecorder, error) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/users", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if sess != nil {
		c.Set(sessionKey, sess)
	}

	handler := RequireKinds(kinds...)(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})
	return rec, handler(c)
}

func sessionWithRoles(authorities ...string) *ports.Session {
	roles := make([]domain.Role, 0, len(authorities))
	for i, a := range authorities {
		roles = append(roles, domain.Role{ID: int64(i + 1), Authority: a})
	}
	return &ports.Session{ID: "sess-1", User: domain.User{ID: 7, Roles: roles}}
}

func TestRequireKinds_AdminAllowed(t *testing.T) {
	rec, err := runRBAC(t, sessionWithRoles(domain.RoleAdmin), policy.KindAdmin)
	if err != nil {
		t.Fatalf("middleware error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestRequireKinds_AdminWinsOverClientRole(t *testing.T) {
	// A user holding both roles classifies as admin and must pass an
	// admin-only gate.
	rec, err := runRBAC(t, sessionWithRoles(domain.RoleClient, domain.RoleAdmin), policy.KindAdmin)
	if err != nil {
		t.Fatalf("middleware error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestRequireKinds_StandardDenied(t *testing.T) {
	rec, err := runRBAC(t, sessionWithRoles(domain.RoleUser), policy.KindAdmin)
	if err != nil {
		t.Fatalf("middleware error: %v", err)
	}
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", rec.Code)
	}
}

func TestRequireKinds_ClientAllowedOnManageRoutes(t *testing.T) {
	rec, err := runRBAC(t, sessionWithRoles(domain.RoleClient), policy.KindAdmin, policy.KindClient)
	if err != nil {
		t.Fatalf("middleware error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestRequireKinds_NoSessionRejected(t *testing.T) {
	_, err := runRBAC(t, nil, policy.KindAdmin)

	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 HTTPError, got %v", err)
	}
}
