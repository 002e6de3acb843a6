package ports

import (
	"context"

	"github.com/medscript/clinical-records/internal/core/domain"
)

// RecordStore is the authoritative owner of the user and prescription
// collections. Reads return snapshots (copies, insertion order preserved);
// mutations persist synchronously before returning, so a read issued
// immediately after a mutation always observes it.
type RecordStore interface {
	// ListUsers returns a snapshot of all users in insertion order.
	ListUsers() []domain.User
	// AddUser appends and persists a user. Fails with
	// domain.ErrDuplicateIdentifier when the id is already present.
	AddUser(ctx context.Context, user domain.User) error
	// DeleteUser removes and persists. Absent ids are a no-op, not an error.
	DeleteUser(ctx context.Context, id string) error
	// FindUserByEmail looks up a user by case-insensitive email match.
	FindUserByEmail(email string) (*domain.User, error)

	// ListPrescriptions returns a snapshot of all prescriptions in insertion order.
	ListPrescriptions() []domain.Prescription
	// AddPrescription appends and persists. Fails with
	// domain.ErrDuplicateIdentifier when the id is already present.
	AddPrescription(ctx context.Context, p domain.Prescription) error
	// SetPrescriptionStatus persists a new status for the given prescription.
	// The transition is validated against the currently stored status inside
	// the store's critical section; invalid ones fail with
	// domain.ErrInvalidTransition.
	SetPrescriptionStatus(ctx context.Context, id string, status domain.PrescriptionStatus) error
}
