package ports

import (
	"context"
	"time"

	"github.com/medscript/clinical-records/internal/core/domain"
)

// AddUserInput carries the user-management form data for creating a user.
// The service assigns the id.
type AddUserInput struct {
	Name      string
	Email     string
	Role      domain.Role
	Specialty string
}

// IssuePrescriptionInput carries the data a doctor submits when issuing a
// prescription. DoctorName comes from the active identity, not the form.
type IssuePrescriptionInput struct {
	PatientEmail string
	Medication   string
	DoctorName   string
}

// ListPrescriptionsInput scopes a prescription listing by the caller's role:
// patients only see prescriptions referencing their own email.
type ListPrescriptionsInput struct {
	Role  domain.Role
	Email string
}

// Overview is the derived-statistics snapshot recomputed from the full store
// on every read. It is a pure function of the snapshot: same snapshot, same
// figures.
type Overview struct {
	Doctors            int
	Patients           int
	Pharmacists        int
	TotalPrescriptions int
	TodayPrescriptions int
	StatusCounts       map[domain.PrescriptionStatus]int
}

// RecordService defines the use-case operations over the record store.
type RecordService interface {
	ListUsers(search string) []domain.User
	AddUser(ctx context.Context, input AddUserInput) (*domain.User, error)
	DeleteUser(ctx context.Context, id string) error

	ListPrescriptions(input ListPrescriptionsInput) []domain.Prescription
	IssuePrescription(ctx context.Context, input IssuePrescriptionInput) (*domain.Prescription, error)
	SetPrescriptionStatus(ctx context.Context, id string, next domain.PrescriptionStatus) error

	// Overview recomputes the aggregate figures from the current snapshot.
	// "Today" is calendar-date equality of now in the store's reference zone.
	Overview(now time.Time) Overview
}
