package ports

import (
	"context"

	"github.com/realtorhub/homes-api/internal/core/domain"
)

// SignupInput carries the fields accepted at signup.
type SignupInput struct {
	Email    string
	Password string
	Name     string
	Phone    string
}

type AuthService interface {
	Signup(ctx context.Context, input SignupInput) (string, error)
	Signin(ctx context.Context, email, password string) (string, error)
	// RoleOf resolves the current role of a user; used by the role guard.
	RoleOf(ctx context.Context, userID int64) (domain.Role, error)
}
