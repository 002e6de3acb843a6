// Package records implements the authoritative record store over a durable
// named-entry medium. All state lives in memory behind one mutex; every
// mutation writes the full serialized collection back to the medium before
// returning, so reads issued by any component immediately after a mutation
// observe it (single-writer, read-your-writes).
package records

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/medscript/clinical-records/internal/api/metrics"
	"github.com/medscript/clinical-records/internal/core/domain"
	"github.com/medscript/clinical-records/internal/infrastructure/kv"
)

const (
	usersEntry         = "medscript_users"
	prescriptionsEntry = "medscript_prescriptions"
)

// Store owns the user and prescription collections.
type Store struct {
	mu            sync.Mutex
	medium        kv.Medium
	users         []domain.User
	prescriptions []domain.Prescription
	log           zerolog.Logger
}

// NewStore returns an empty store persisting into medium. Call Load before
// serving requests to restore any previously persisted collections.
func NewStore(medium kv.Medium, log zerolog.Logger) *Store {
	return &Store{medium: medium, log: log}
}

// storedUser is the persisted representation of a user. Unlike the API view
// it carries the password hash, so logins survive restarts.
type storedUser struct {
	ID           string      `json:"id"`
	Email        string      `json:"email"`
	Name         string      `json:"name"`
	Role         domain.Role `json:"role"`
	Specialty    string      `json:"specialty,omitempty"`
	PasswordHash string      `json:"password_hash,omitempty"`
	CreatedAt    time.Time   `json:"created_at"`
}

type storedPrescription struct {
	ID           string                    `json:"id"`
	PatientEmail string                    `json:"patient_email"`
	DoctorName   string                    `json:"doctor_name"`
	Medication   string                    `json:"medication"`
	Date         time.Time                 `json:"date"`
	Status       domain.PrescriptionStatus `json:"status"`
}

// Load restores both collections from the medium. An absent entry means an
// empty collection; a malformed entry is recovered as empty (fail closed,
// logged, counted) without touching the other collection. Partial payloads
// are never merged. Only infrastructure failures propagate.
func (s *Store) Load(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var stored []storedUser
	if err := s.loadEntry(ctx, usersEntry, &stored); err != nil {
		return err
	}
	s.users = s.users[:0]
	for _, u := range stored {
		s.users = append(s.users, domain.User(u))
	}

	var storedRx []storedPrescription
	if err := s.loadEntry(ctx, prescriptionsEntry, &storedRx); err != nil {
		return err
	}
	s.prescriptions = s.prescriptions[:0]
	for _, p := range storedRx {
		s.prescriptions = append(s.prescriptions, domain.Prescription(p))
	}

	s.log.Info().
		Int("users", len(s.users)).
		Int("prescriptions", len(s.prescriptions)).
		Msg("record store restored")
	return nil
}

func (s *Store) loadEntry(ctx context.Context, name string, out any) error {
	payload, err := s.medium.Get(ctx, name)
	if errors.Is(err, kv.ErrNotFound) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("restore %s: %w", name, err)
	}
	if err := json.Unmarshal(payload, out); err != nil {
		s.log.Warn().Err(err).Str("entry", name).Msg("corrupt persisted entry, starting empty")
		metrics.CorruptEntriesRecoveredTotal.WithLabelValues(name).Inc()
	}
	return nil
}

// ListUsers returns a snapshot of all users in insertion order.
func (s *Store) ListUsers() []domain.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.User, len(s.users))
	copy(out, s.users)
	return out
}

// AddUser appends a user and persists the collection before returning.
func (s *Store) AddUser(ctx context.Context, user domain.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.users {
		if existing.ID == user.ID {
			return fmt.Errorf("user %s: %w", user.ID, domain.ErrDuplicateIdentifier)
		}
	}

	s.users = append(s.users, user)
	if err := s.persistUsers(ctx); err != nil {
		s.users = s.users[:len(s.users)-1]
		return err
	}
	metrics.RecordMutationsTotal.WithLabelValues("user", "add").Inc()
	return nil
}

// DeleteUser removes a user and persists. Absent ids are a no-op.
// Prescriptions referencing the user by email are left untouched.
func (s *Store) DeleteUser(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := -1
	for i, u := range s.users {
		if u.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil
	}

	removed := s.users[idx]
	s.users = append(s.users[:idx], s.users[idx+1:]...)
	if err := s.persistUsers(ctx); err != nil {
		s.users = append(s.users[:idx], append([]domain.User{removed}, s.users[idx:]...)...)
		return err
	}
	metrics.RecordMutationsTotal.WithLabelValues("user", "delete").Inc()
	return nil
}

// FindUserByEmail looks up a user by case-insensitive email.
func (s *Store) FindUserByEmail(email string) (*domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if strings.EqualFold(u.Email, email) {
			clone := u
			return &clone, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

// ListPrescriptions returns a snapshot of all prescriptions in insertion order.
func (s *Store) ListPrescriptions() []domain.Prescription {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.Prescription, len(s.prescriptions))
	copy(out, s.prescriptions)
	return out
}

// AddPrescription appends a prescription and persists before returning.
func (s *Store) AddPrescription(ctx context.Context, p domain.Prescription) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.prescriptions {
		if existing.ID == p.ID {
			return fmt.Errorf("prescription %s: %w", p.ID, domain.ErrDuplicateIdentifier)
		}
	}

	s.prescriptions = append(s.prescriptions, p)
	if err := s.persistPrescriptions(ctx); err != nil {
		s.prescriptions = s.prescriptions[:len(s.prescriptions)-1]
		return err
	}
	metrics.RecordMutationsTotal.WithLabelValues("prescription", "add").Inc()
	return nil
}

// SetPrescriptionStatus replaces the status of the given prescription and
// persists. The transition is validated under the lock, against the status
// actually stored at that moment: two callers racing from the same observed
// status cannot both win, so terminal states stay terminal.
func (s *Store) SetPrescriptionStatus(ctx context.Context, id string, status domain.PrescriptionStatus) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, p := range s.prescriptions {
		if p.ID != id {
			continue
		}
		if !p.Status.CanTransitionTo(status) {
			return fmt.Errorf("%w (from %s to %s)", domain.ErrInvalidTransition, p.Status, status)
		}
		previous := p.Status
		s.prescriptions[i].Status = status
		if err := s.persistPrescriptions(ctx); err != nil {
			s.prescriptions[i].Status = previous
			return err
		}
		metrics.RecordMutationsTotal.WithLabelValues("prescription", "status").Inc()
		return nil
	}
	return fmt.Errorf("prescription %s: %w", id, domain.ErrPrescriptionNotFound)
}

// persistUsers writes the full users collection. Caller holds the mutex.
func (s *Store) persistUsers(ctx context.Context) error {
	stored := make([]storedUser, len(s.users))
	for i, u := range s.users {
		stored[i] = storedUser(u)
	}
	payload, err := json.Marshal(stored)
	if err != nil {
		return fmt.Errorf("encode %s: %w", usersEntry, err)
	}
	return s.medium.Put(ctx, usersEntry, payload)
}

// persistPrescriptions writes the full prescriptions collection. Caller holds the mutex.
func (s *Store) persistPrescriptions(ctx context.Context) error {
	stored := make([]storedPrescription, len(s.prescriptions))
	for i, p := range s.prescriptions {
		stored[i] = storedPrescription(p)
	}
	payload, err := json.Marshal(stored)
	if err != nil {
		return fmt.Errorf("encode %s: %w", prescriptionsEntry, err)
	}
	return s.medium.Put(ctx, prescriptionsEntry, payload)
}
