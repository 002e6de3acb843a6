package service

import (
	"context"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/medscript/clinical-records/internal/api/metrics"
	"github.com/medscript/clinical-records/internal/core/domain"
	"github.com/medscript/clinical-records/internal/core/ports"
)

// AuthService implements registration and credential login. It sits in front
// of the session manager: the core session layer trusts whatever identity
// this service hands it.
type AuthService struct {
	store     ports.RecordStore
	sessions  ports.SessionManager
	jwtSecret string
	tokenTTL  time.Duration
}

func NewAuthService(store ports.RecordStore, sessions ports.SessionManager, jwtSecret string, tokenTTL time.Duration) *AuthService {
	if tokenTTL <= 0 {
		tokenTTL = 24 * time.Hour
	}
	return &AuthService{store: store, sessions: sessions, jwtSecret: jwtSecret, tokenTTL: tokenTTL}
}

func (s *AuthService) Register(ctx context.Context, input ports.RegisterInput) (*domain.User, error) {
	if input.Name == "" || input.Email == "" || input.Password == "" {
		return nil, domain.ErrInvalidCredentials
	}
	if !input.Role.Valid() {
		return nil, fmt.Errorf("%w: %q", domain.ErrUnknownRole, input.Role)
	}
	if _, err := s.store.FindUserByEmail(input.Email); err == nil {
		return nil, domain.ErrUserExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	specialty := ""
	if input.Role == domain.RoleDoctor {
		specialty = input.Specialty
	}
	user := domain.User{
		ID:           newRecordID("USR"),
		Email:        input.Email,
		Name:         input.Name,
		Role:         input.Role,
		Specialty:    specialty,
		PasswordHash: string(hash),
		CreatedAt:    time.Now().UTC(),
	}

	if err := s.store.AddUser(ctx, user); err != nil {
		return nil, err
	}
	return &user, nil
}

// Login verifies credentials against the user ledger, establishes the
// session, and returns a signed token alongside the new identity.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, *domain.Identity, error) {
	if email == "" || password == "" {
		return "", nil, domain.ErrInvalidCredentials
	}

	user, err := s.store.FindUserByEmail(email)
	if err != nil {
		metrics.LoginsTotal.WithLabelValues("not_found").Inc()
		return "", nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		metrics.LoginsTotal.WithLabelValues("invalid_credentials").Inc()
		return "", nil, domain.ErrInvalidCredentials
	}

	identity := domain.Identity{User: *user, IssuedAt: time.Now().UTC()}
	if err := s.sessions.Login(ctx, identity); err != nil {
		return "", nil, err
	}

	token, err := s.generateToken(user)
	if err != nil {
		return "", nil, err
	}

	metrics.LoginsTotal.WithLabelValues("ok").Inc()
	return token, &identity, nil
}

func (s *AuthService) Logout(ctx context.Context) error {
	return s.sessions.Logout(ctx)
}

func (s *AuthService) generateToken(user *domain.User) (string, error) {
	claims := jwt.MapClaims{
		"sub":   user.ID,
		"email": user.Email,
		"role":  string(user.Role),
		"name":  user.Name,
		"exp":   time.Now().Add(s.tokenTTL).Unix(),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(s.jwtSecret))
}
