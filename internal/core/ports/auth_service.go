package ports

import (
	"context"

	"github.com/saasdash/dashboard-api/internal/core/domain"
)

// RegisterInput carries the fields accepted on registration.
type RegisterInput struct {
	Fullname string
	Email    string
	Password string
	RemoteIP string
}

// LoginInput carries login credentials.
type LoginInput struct {
	Email    string
	Password string
	RemoteIP string
}

// AuthResult pairs an account with a freshly issued session token.
type AuthResult struct {
	User  *domain.User
	Token string
}

// AuthService implements the register/login/refresh/reset flows.
type AuthService interface {
	Register(ctx context.Context, in RegisterInput) (*AuthResult, error)
	Login(ctx context.Context, in LoginInput) (*AuthResult, error)
	Logout(ctx context.Context, userEmail, remoteIP string)
	Refresh(ctx context.Context, token string) (string, error)
	ForgotPassword(ctx context.Context, email, remoteIP string) (string, error)
	ResetPassword(ctx context.Context, token, newPassword string) error
}
