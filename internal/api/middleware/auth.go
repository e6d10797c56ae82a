package middleware

import (
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

// Context keys set by Auth.
const (
	ContextAdminID = "admin_id"
	ContextRole    = "role"
)

// adminClaims is the token shape issued by the platform's auth service.
// Older tokens only carry the admin id in "sub".
type adminClaims struct {
	AdminID string `json:"admin_id"`
	Role    string `json:"role"`
	jwt.RegisteredClaims
}

func (c adminClaims) id() string {
	if c.AdminID != "" {
		return c.AdminID
	}
	return c.Subject
}

// Auth validates an HS256 bearer token and stores its admin id and role in
// the request context.
func Auth(jwtSecret string) echo.MiddlewareFunc {
	parser := jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	key := func(*jwt.Token) (any, error) { return []byte(jwtSecret), nil }

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get(echo.HeaderAuthorization)
			if header == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing authorization header")
			}
			scheme, raw, ok := strings.Cut(header, " ")
			if !ok || !strings.EqualFold(scheme, "bearer") || raw == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid authorization header")
			}

			var claims adminClaims
			if _, err := parser.ParseWithClaims(raw, &claims, key); err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
			}

			c.Set(ContextAdminID, claims.id())
			c.Set(ContextRole, claims.Role)
			return next(c)
		}
	}
}
