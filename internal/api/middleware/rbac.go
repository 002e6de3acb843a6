package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/medscript/clinical-records/internal/core/access"
	"github.com/medscript/clinical-records/internal/core/domain"
)

// capabilities resolves the caller's capability set from the role claim.
// An unknown role is fatal to the navigation decision: the request is
// rejected instead of falling through to any default.
func capabilities(c echo.Context) (access.Capabilities, error) {
	role, _ := c.Get("role").(string)
	caps, err := access.CapabilitiesFor(domain.Role(role))
	if err != nil {
		return access.Capabilities{}, echo.NewHTTPError(http.StatusForbidden, "unknown role")
	}
	return caps, nil
}

// RequireRoute gates a handler on the role having at least one of the given
// routes in its navigable set.
func RequireRoute(routes ...access.RouteID) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			caps, err := capabilities(c)
			if err != nil {
				return err
			}
			if !caps.AllowsRoute(routes...) {
				return echo.NewHTTPError(http.StatusForbidden, "forbidden")
			}
			return next(c)
		}
	}
}

// RequireMutation gates a handler on the role holding the mutation right.
func RequireMutation(m access.MutationID) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			caps, err := capabilities(c)
			if err != nil {
				return err
			}
			if !caps.AllowsMutation(m) {
				return echo.NewHTTPError(http.StatusForbidden, "forbidden")
			}
			return next(c)
		}
	}
}
