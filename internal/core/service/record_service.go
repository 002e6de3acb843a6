package service

import (
	"context"
	"crypto/rand"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/medscript/clinical-records/internal/core/domain"
	"github.com/medscript/clinical-records/internal/core/ports"
)

// RecordService implements the use-case operations over the record store.
type RecordService struct {
	store  ports.RecordStore
	loc    *time.Location
	logger zerolog.Logger
}

// NewRecordService builds a RecordService. loc is the store's reference time
// zone used for calendar-date comparisons; nil means UTC.
func NewRecordService(store ports.RecordStore, loc *time.Location, logger zerolog.Logger) *RecordService {
	if loc == nil {
		loc = time.UTC
	}
	return &RecordService{store: store, loc: loc, logger: logger}
}

// ListUsers returns the user ledger, optionally filtered by a
// case-insensitive substring match on name or email.
func (s *RecordService) ListUsers(search string) []domain.User {
	users := s.store.ListUsers()
	if search == "" {
		return users
	}
	needle := strings.ToLower(search)
	filtered := make([]domain.User, 0, len(users))
	for _, u := range users {
		if strings.Contains(strings.ToLower(u.Email), needle) ||
			strings.Contains(strings.ToLower(u.Name), needle) {
			filtered = append(filtered, u)
		}
	}
	return filtered
}

func (s *RecordService) AddUser(ctx context.Context, input ports.AddUserInput) (*domain.User, error) {
	if !input.Role.Valid() {
		return nil, fmt.Errorf("%w: %q", domain.ErrUnknownRole, input.Role)
	}
	if _, err := s.store.FindUserByEmail(input.Email); err == nil {
		return nil, domain.ErrUserExists
	}

	specialty := ""
	if input.Role == domain.RoleDoctor {
		specialty = input.Specialty
	}
	user := domain.User{
		ID:        newRecordID("USR"),
		Email:     input.Email,
		Name:      input.Name,
		Role:      input.Role,
		Specialty: specialty,
		CreatedAt: time.Now().UTC(),
	}

	if err := s.store.AddUser(ctx, user); err != nil {
		return nil, err
	}

	s.logger.Info().Str("user_id", user.ID).Str("role", string(user.Role)).Msg("user added")
	return &user, nil
}

func (s *RecordService) DeleteUser(ctx context.Context, id string) error {
	if err := s.store.DeleteUser(ctx, id); err != nil {
		return err
	}
	s.logger.Info().Str("user_id", id).Msg("user deleted")
	return nil
}

// ListPrescriptions returns prescriptions scoped to the caller: patients
// only see entries referencing their own email, everyone else sees all.
func (s *RecordService) ListPrescriptions(input ports.ListPrescriptionsInput) []domain.Prescription {
	all := s.store.ListPrescriptions()
	if input.Role != domain.RolePatient {
		return all
	}
	own := make([]domain.Prescription, 0, len(all))
	for _, p := range all {
		if strings.EqualFold(p.PatientEmail, input.Email) {
			own = append(own, p)
		}
	}
	return own
}

// IssuePrescription creates a new pending prescription on behalf of the
// active doctor.
func (s *RecordService) IssuePrescription(ctx context.Context, input ports.IssuePrescriptionInput) (*domain.Prescription, error) {
	p := domain.Prescription{
		ID:           newRecordID("RX"),
		PatientEmail: input.PatientEmail,
		DoctorName:   input.DoctorName,
		Medication:   input.Medication,
		Date:         time.Now().UTC(),
		Status:       domain.StatusPending,
	}

	if err := s.store.AddPrescription(ctx, p); err != nil {
		return nil, err
	}

	s.logger.Info().Str("prescription_id", p.ID).Str("patient_email", p.PatientEmail).Msg("prescription issued")
	return &p, nil
}

// SetPrescriptionStatus advances the verification state machine. The store
// validates the transition under its own lock; checking here against a
// snapshot would let concurrent requests race past a terminal status.
func (s *RecordService) SetPrescriptionStatus(ctx context.Context, id string, next domain.PrescriptionStatus) error {
	if err := s.store.SetPrescriptionStatus(ctx, id, next); err != nil {
		return err
	}
	s.logger.Info().Str("prescription_id", id).Str("status", string(next)).Msg("prescription status updated")
	return nil
}

// Overview recomputes the aggregate figures from the current snapshots.
func (s *RecordService) Overview(now time.Time) ports.Overview {
	return ComputeOverview(s.store.ListUsers(), s.store.ListPrescriptions(), now, s.loc)
}

// newRecordID returns a unique identifier in the format PREFIX-XXXXXXXX.
func newRecordID(prefix string) string {
	b := make([]byte, 4)
	if _, err := rand.Read(b); err != nil {
		// fallback: use current nanoseconds
		return fmt.Sprintf("%s-%08X", prefix, time.Now().UnixNano()&0xFFFFFFFF)
	}
	return fmt.Sprintf("%s-%08X", prefix, b)
}
