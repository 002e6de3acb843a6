// Package access maps roles to capability sets. The mapping is a single
// total table over the four enumerated roles; anything outside the table is
// rejected with ErrUnknownRole and must never fall back to a permissive
// default.
package access

import (
	"fmt"

	"github.com/medscript/clinical-records/internal/core/domain"
)

// RouteID names a navigable section of the application.
type RouteID string

const (
	RouteDashboard     RouteID = "/"
	RouteUsers         RouteID = "/users"
	RouteSettings      RouteID = "/settings"
	RoutePrescriptions RouteID = "/prescriptions"
	RouteHistory       RouteID = "/history"
	RouteVault         RouteID = "/vault"
	RouteReminders     RouteID = "/reminders"
	RouteVerify        RouteID = "/verify"
	RouteStock         RouteID = "/stock"
)

// MutationID names a record-store mutation a role may perform.
type MutationID string

const (
	MutationAddUser            MutationID = "user.add"
	MutationDeleteUser         MutationID = "user.delete"
	MutationIssuePrescription  MutationID = "prescription.issue"
	MutationVerifyPrescription MutationID = "prescription.verify"
)

// DashboardView identifies the role-specific variant rendered at RouteDashboard.
type DashboardView string

const (
	ViewAdmin      DashboardView = "admin"
	ViewDoctor     DashboardView = "doctor"
	ViewPatient    DashboardView = "patient"
	ViewPharmacist DashboardView = "pharmacist"
)

// Capabilities is the full capability set of one role.
type Capabilities struct {
	Routes    []RouteID
	Mutations []MutationID
	// Dashboard is the view the default route resolves to for this role.
	Dashboard DashboardView
}

// AllowsRoute reports whether any of the given routes is navigable.
func (c Capabilities) AllowsRoute(routes ...RouteID) bool {
	for _, want := range routes {
		for _, have := range c.Routes {
			if have == want {
				return true
			}
		}
	}
	return false
}

// AllowsMutation reports whether the mutation is permitted.
func (c Capabilities) AllowsMutation(m MutationID) bool {
	for _, have := range c.Mutations {
		if have == m {
			return true
		}
	}
	return false
}

// CapabilitiesFor resolves the capability set for a role. It is total over
// the four enumerated roles and fails with ErrUnknownRole for anything else.
func CapabilitiesFor(role domain.Role) (Capabilities, error) {
	switch role {
	case domain.RoleAdmin:
		return Capabilities{
			Routes:    []RouteID{RouteDashboard, RouteUsers, RouteSettings},
			Mutations: []MutationID{MutationAddUser, MutationDeleteUser},
			Dashboard: ViewAdmin,
		}, nil
	case domain.RoleDoctor:
		return Capabilities{
			Routes:    []RouteID{RouteDashboard, RoutePrescriptions, RouteHistory},
			Mutations: []MutationID{MutationIssuePrescription},
			Dashboard: ViewDoctor,
		}, nil
	case domain.RolePatient:
		return Capabilities{
			Routes:    []RouteID{RouteDashboard, RouteVault, RouteReminders},
			Dashboard: ViewPatient,
		}, nil
	case domain.RolePharmacist:
		return Capabilities{
			Routes:    []RouteID{RouteDashboard, RouteVerify, RouteStock},
			Mutations: []MutationID{MutationVerifyPrescription},
			Dashboard: ViewPharmacist,
		}, nil
	default:
		return Capabilities{}, fmt.Errorf("%w: %q", domain.ErrUnknownRole, role)
	}
}
