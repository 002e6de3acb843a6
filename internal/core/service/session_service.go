package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/rs/zerolog"

	"github.com/medscript/clinical-records/internal/api/metrics"
	"github.com/medscript/clinical-records/internal/core/domain"
	"github.com/medscript/clinical-records/internal/infrastructure/kv"
)

// sessionEntry is the durable entry holding the serialized active identity.
// Absence means unauthenticated.
const sessionEntry = "medscript_user"

// SessionManager holds the single active identity and its persisted copy.
type SessionManager struct {
	mu     sync.Mutex
	medium kv.Medium
	active *domain.Identity
	log    zerolog.Logger
}

func NewSessionManager(medium kv.Medium, log zerolog.Logger) *SessionManager {
	return &SessionManager{medium: medium, log: log}
}

// Restore loads the persisted identity, if any, and makes it active. A
// malformed payload is treated as absence: the user silently lands back on
// the unauthenticated state instead of seeing an error.
func (m *SessionManager) Restore(ctx context.Context) *domain.Identity {
	m.mu.Lock()
	defer m.mu.Unlock()

	payload, err := m.medium.Get(ctx, sessionEntry)
	if errors.Is(err, kv.ErrNotFound) {
		metrics.SessionRestoresTotal.WithLabelValues("none").Inc()
		m.active = nil
		return nil
	}
	if err != nil {
		m.log.Warn().Err(err).Msg("session restore failed, treating as unauthenticated")
		m.active = nil
		return nil
	}

	var identity domain.Identity
	if err := json.Unmarshal(payload, &identity); err != nil {
		m.log.Warn().Err(err).Msg("corrupt persisted session, treating as unauthenticated")
		metrics.SessionRestoresTotal.WithLabelValues("corrupt").Inc()
		metrics.CorruptEntriesRecoveredTotal.WithLabelValues(sessionEntry).Inc()
		m.active = nil
		return nil
	}

	metrics.SessionRestoresTotal.WithLabelValues("ok").Inc()
	m.active = &identity
	clone := identity
	return &clone
}

// Login sets the active identity and persists it. The identity arrives
// fully validated from the credential collaborator and is trusted verbatim.
func (m *SessionManager) Login(ctx context.Context, identity domain.Identity) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	payload, err := json.Marshal(identity)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}
	if err := m.medium.Put(ctx, sessionEntry, payload); err != nil {
		return fmt.Errorf("persist session: %w", err)
	}

	m.active = &identity
	m.log.Info().
		Str("user_id", identity.User.ID).
		Str("role", string(identity.User.Role)).
		Msg("session started")
	return nil
}

// Logout clears the active identity and removes the persisted copy, leaving
// the process in its initial unauthenticated state.
func (m *SessionManager) Logout(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.medium.Delete(ctx, sessionEntry); err != nil {
		return fmt.Errorf("remove persisted session: %w", err)
	}
	if m.active != nil {
		m.log.Info().Str("user_id", m.active.User.ID).Msg("session ended")
	}
	m.active = nil
	return nil
}

// Active returns a copy of the current identity, or nil when unauthenticated.
func (m *SessionManager) Active() *domain.Identity {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.active == nil {
		return nil
	}
	clone := *m.active
	return &clone
}
