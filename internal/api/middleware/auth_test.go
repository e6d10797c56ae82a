package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

func signToken(t *testing.T, method jwt.SigningMethod, key any, claims jwt.MapClaims) string {
	t.Helper()
	signed, err := jwt.NewWithClaims(method, claims).SignedString(key)
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return signed
}

func runAuth(t *testing.T, header string) (*httptest.ResponseRecorder, echo.Context, bool) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	called := false
	handler := Auth("secret")(func(c echo.Context) error {
		called = true
		return c.NoContent(http.StatusOK)
	})
	if err := handler(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}
	return rec, c, called
}

func TestAuthMiddleware_ValidToken(t *testing.T) {
	token := signToken(t, jwt.SigningMethodHS256, []byte("secret"), jwt.MapClaims{
		"admin_id": "64b7f0c2a1",
		"role":     "admin",
	})

	rec, c, called := runAuth(t, "Bearer "+token)
	if !called {
		t.Fatalf("next not called")
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if c.Get(ContextAdminID) != "64b7f0c2a1" {
		t.Fatalf("admin_id not set")
	}
	if c.Get(ContextRole) != "admin" {
		t.Fatalf("role not set")
	}
}

func TestAuthMiddleware_SubjectFallback(t *testing.T) {
	token := signToken(t, jwt.SigningMethodHS256, []byte("secret"), jwt.MapClaims{
		"sub":  "admin-7",
		"role": "super_admin",
	})

	_, c, called := runAuth(t, "bearer "+token)
	if !called {
		t.Fatalf("next not called")
	}
	if c.Get(ContextAdminID) != "admin-7" {
		t.Fatalf("expected admin id from sub, got %v", c.Get(ContextAdminID))
	}
}

func TestAuthMiddleware_Rejects(t *testing.T) {
	wrongKey := signToken(t, jwt.SigningMethodHS256, []byte("other"), jwt.MapClaims{"role": "admin"})
	wrongAlg := signToken(t, jwt.SigningMethodHS384, []byte("secret"), jwt.MapClaims{"role": "admin"})
	expired := signToken(t, jwt.SigningMethodHS256, []byte("secret"), jwt.MapClaims{
		"admin_id": "a1",
		"role":     "admin",
		"exp":      time.Now().Add(-time.Hour).Unix(),
	})

	tests := []struct {
		name   string
		header string
	}{
		{"missing header", ""},
		{"invalid header format", "Token abc"},
		{"malformed token", "Bearer not-a-token"},
		{"wrong key", "Bearer " + wrongKey},
		{"wrong algorithm", "Bearer " + wrongAlg},
		{"expired", "Bearer " + expired},
		{"empty bearer", "Bearer "},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rec, _, called := runAuth(t, tc.header)
			if called {
				t.Fatalf("should not reach next")
			}
			if rec.Code != http.StatusUnauthorized {
				t.Fatalf("expected 401, got %d", rec.Code)
			}
		})
	}
}
