package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/appzeto/food-admin/internal/core/domain"
)

func runRBAC(role any, roles ...string) (reached bool, err error) {
	e := echo.New()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/api/admin/cities", nil), httptest.NewRecorder())
	if role != nil {
		c.Set(ContextRole, role)
	}
	err = RBAC(roles...)(func(echo.Context) error {
		reached = true
		return nil
	})(c)
	return reached, err
}

func TestRBAC_AdminRoles(t *testing.T) {
	for _, role := range []string{domain.RoleAdmin, domain.RoleSuperAdmin} {
		reached, err := runRBAC(role, domain.RoleAdmin, domain.RoleSuperAdmin)
		if err != nil || !reached {
			t.Fatalf("role %q: reached=%v err=%v", role, reached, err)
		}
	}
}

func TestRBAC_Rejects(t *testing.T) {
	cases := []struct {
		name string
		role any
	}{
		{"other role", "delivery_boy"},
		{"no role", nil},
		{"empty role", ""},
		{"non-string role", 42},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			reached, err := runRBAC(tc.role, domain.RoleAdmin, domain.RoleSuperAdmin)
			if reached {
				t.Fatalf("next handler should not run")
			}
			if !errors.Is(err, domain.ErrForbidden) {
				t.Fatalf("expected ErrForbidden, got %v", err)
			}
		})
	}
}
