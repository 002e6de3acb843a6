package ports

import (
	"context"

	"github.com/medscript/clinical-records/internal/core/domain"
)

// AuthService is the credential collaborator in front of the session
// manager: it validates registration input and login credentials, then hands
// a fully-validated identity to SessionManager.Login.
type AuthService interface {
	Register(ctx context.Context, input RegisterInput) (*domain.User, error)
	Login(ctx context.Context, email, password string) (string, *domain.Identity, error)
	Logout(ctx context.Context) error
}

// RegisterInput carries validated registration form data.
type RegisterInput struct {
	Name      string
	Email     string
	Password  string
	Role      domain.Role
	Specialty string
}
