package domain

import (
	"errors"
	"time"
)

// PrescriptionStatus represents the verification state of a prescription.
type PrescriptionStatus string

const (
	StatusPending  PrescriptionStatus = "pending"
	StatusInReview PrescriptionStatus = "in_review"
	StatusVerified PrescriptionStatus = "verified"
	StatusCanceled PrescriptionStatus = "canceled"
)

// validTransitions defines the allowed verification state machine.
// Verified and canceled are terminal.
var validTransitions = map[PrescriptionStatus][]PrescriptionStatus{
	StatusPending:  {StatusInReview, StatusVerified, StatusCanceled},
	StatusInReview: {StatusVerified, StatusCanceled},
}

var ErrInvalidTransition = errors.New("invalid status transition")
var ErrPrescriptionNotFound = errors.New("prescription not found")

// CanTransitionTo reports whether a transition from the current status to next is valid.
func (s PrescriptionStatus) CanTransitionTo(next PrescriptionStatus) bool {
	for _, allowed := range validTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Prescription references its patient and doctor by denormalized string
// fields rather than foreign keys; deleting a user does not cascade here.
type Prescription struct {
	ID           string             `json:"id"`
	PatientEmail string             `json:"patient_email"`
	DoctorName   string             `json:"doctor_name"`
	Medication   string             `json:"medication"`
	Date         time.Time          `json:"date"`
	Status       PrescriptionStatus `json:"status"`
}
