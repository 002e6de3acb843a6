package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/medscript/clinical-records/internal/core/domain"
	"github.com/medscript/clinical-records/internal/core/ports"
	"github.com/medscript/clinical-records/internal/infrastructure/kv"
)

func newTestAuthService(store ports.RecordStore) (*AuthService, *SessionManager) {
	sessions := NewSessionManager(kv.NewMemoryMedium(), zerolog.Nop())
	return NewAuthService(store, sessions, "secret", time.Hour), sessions
}

func TestAuthService_Register_HashesPassword(t *testing.T) {
	store := newStubRecordStore()
	svc, _ := newTestAuthService(store)

	user, err := svc.Register(context.Background(), ports.RegisterInput{
		Name: "Alice", Email: "alice@x.com", Password: "pass1234",
		Role: domain.RoleDoctor, Specialty: "Cardio",
	})
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	if user.PasswordHash == "pass1234" || user.PasswordHash == "" {
		t.Fatalf("expected password to be hashed")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("pass1234")); err != nil {
		t.Fatalf("stored hash does not match password: %v", err)
	}
	if user.Role != domain.RoleDoctor || user.Specialty != "Cardio" {
		t.Fatalf("unexpected user: %+v", user)
	}
}

func TestAuthService_Register_Validation(t *testing.T) {
	svc, _ := newTestAuthService(newStubRecordStore())
	ctx := context.Background()

	if _, err := svc.Register(ctx, ports.RegisterInput{Email: "a@x.com", Password: "p"}); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	_, err := svc.Register(ctx, ports.RegisterInput{
		Name: "Bob", Email: "bob@x.com", Password: "pass1234", Role: "wizard",
	})
	if !errors.Is(err, domain.ErrUnknownRole) {
		t.Fatalf("expected ErrUnknownRole for bad role, got %v", err)
	}
}

func TestAuthService_Register_DuplicateEmail(t *testing.T) {
	store := newStubRecordStore()
	svc, _ := newTestAuthService(store)
	ctx := context.Background()

	if _, err := svc.Register(ctx, ports.RegisterInput{
		Name: "Bob", Email: "bob@x.com", Password: "pass1234", Role: domain.RolePatient,
	}); err != nil {
		t.Fatalf("register failed: %v", err)
	}
	_, err := svc.Register(ctx, ports.RegisterInput{
		Name: "Bobby", Email: "BOB@x.com", Password: "pass5678", Role: domain.RolePatient,
	})
	if !errors.Is(err, domain.ErrUserExists) {
		t.Fatalf("expected ErrUserExists, got %v", err)
	}
}

func TestAuthService_Login_EstablishesSession(t *testing.T) {
	store := newStubRecordStore()
	svc, sessions := newTestAuthService(store)
	ctx := context.Background()

	if _, err := svc.Register(ctx, ports.RegisterInput{
		Name: "Carol", Email: "carol@x.com", Password: "s3cret99", Role: domain.RoleAdmin,
	}); err != nil {
		t.Fatalf("register failed: %v", err)
	}

	token, identity, err := svc.Login(ctx, "carol@x.com", "s3cret99")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if token == "" {
		t.Fatalf("expected token, got empty")
	}
	if identity == nil || identity.User.Email != "carol@x.com" {
		t.Fatalf("unexpected identity: %+v", identity)
	}

	active := sessions.Active()
	if active == nil || active.User.Role != domain.RoleAdmin {
		t.Fatalf("login must establish the session, got %+v", active)
	}

	claims := jwt.MapClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(token *jwt.Token) (interface{}, error) {
		return []byte("secret"), nil
	})
	if err != nil || !parsed.Valid {
		t.Fatalf("token invalid: %v", err)
	}
	if claims["role"] != string(domain.RoleAdmin) {
		t.Fatalf("expected admin role claim, got %v", claims["role"])
	}
	if claims["email"] != "carol@x.com" {
		t.Fatalf("expected email claim, got %v", claims["email"])
	}
}

func TestAuthService_Login_InvalidPassword(t *testing.T) {
	store := newStubRecordStore()
	svc, sessions := newTestAuthService(store)
	ctx := context.Background()

	if _, err := svc.Register(ctx, ports.RegisterInput{
		Name: "Dave", Email: "dave@x.com", Password: "goodpass", Role: domain.RolePatient,
	}); err != nil {
		t.Fatalf("register failed: %v", err)
	}
	if _, _, err := svc.Login(ctx, "dave@x.com", "badpass"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	if sessions.Active() != nil {
		t.Fatalf("failed login must not establish a session")
	}
}

func TestAuthService_Login_UserNotFound(t *testing.T) {
	svc, _ := newTestAuthService(newStubRecordStore())
	if _, _, err := svc.Login(context.Background(), "ghost@x.com", "pass"); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestAuthService_LogoutEndsSession(t *testing.T) {
	store := newStubRecordStore()
	svc, sessions := newTestAuthService(store)
	ctx := context.Background()

	if _, err := svc.Register(ctx, ports.RegisterInput{
		Name: "Eve", Email: "eve@x.com", Password: "pass1234", Role: domain.RolePharmacist,
	}); err != nil {
		t.Fatalf("register failed: %v", err)
	}
	if _, _, err := svc.Login(ctx, "eve@x.com", "pass1234"); err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if err := svc.Logout(ctx); err != nil {
		t.Fatalf("logout failed: %v", err)
	}
	if sessions.Active() != nil {
		t.Fatalf("logout must clear the session")
	}
	if restored := sessions.Restore(ctx); restored != nil {
		t.Fatalf("no residual identity expected after logout, got %+v", restored)
	}
}
