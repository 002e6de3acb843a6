package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/medscript/clinical-records/internal/core/domain"
)

// claims is the identity slice of the request context the handlers care about.
type claims struct {
	UserID string
	Email  string
	Name   string
	Role   domain.Role
}

// ctxClaims extracts the auth claims injected by the Auth middleware and
// performs a fast-fail check before any service call: role must be a known
// role (presence proves the middleware ran, validity keeps the policy table
// the only place roles are interpreted).
func ctxClaims(c echo.Context) (claims, error) {
	role, _ := c.Get("role").(string)
	if role == "" {
		return claims{}, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}

	out := claims{Role: domain.Role(role)}
	out.UserID, _ = c.Get("user_id").(string)
	out.Email, _ = c.Get("email").(string)
	out.Name, _ = c.Get("name").(string)
	return out, nil
}
