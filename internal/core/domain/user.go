package domain

import (
	"errors"
	"time"
)

// Role determines a user's capability set. It is immutable after creation:
// no role-migration operation exists.
type Role string

const (
	RoleDoctor     Role = "doctor"
	RolePatient    Role = "patient"
	RolePharmacist Role = "pharmacist"
	RoleAdmin      Role = "admin"
)

// Roles enumerates every role the system knows about.
var Roles = []Role{RoleDoctor, RolePatient, RolePharmacist, RoleAdmin}

// Valid reports whether r is one of the enumerated roles.
func (r Role) Valid() bool {
	switch r {
	case RoleDoctor, RolePatient, RolePharmacist, RoleAdmin:
		return true
	}
	return false
}

var ErrDuplicateIdentifier = errors.New("identifier already present")
var ErrUserNotFound = errors.New("user not found")
var ErrUserExists = errors.New("user already exists")
var ErrInvalidCredentials = errors.New("invalid credentials")
var ErrUnknownRole = errors.New("unknown role")
var ErrForbidden = errors.New("access forbidden")

// User models a member of the clinical network.
//
// Email is unique within the store (compared case-insensitively). Specialty
// is meaningful only for doctors. PasswordHash is never rendered in API
// responses; the persistence layer carries it separately so logins survive
// restarts.
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	Name         string    `json:"name"`
	Role         Role      `json:"role"`
	Specialty    string    `json:"specialty,omitempty"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}
