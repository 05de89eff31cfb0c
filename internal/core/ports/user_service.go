package ports

import (
	"context"

	"github.com/saasdash/dashboard-api/internal/core/domain"
)

// UpdateProfileInput lists the self-service mutable profile fields. Nil
// pointers mean "leave unchanged".
type UpdateProfileInput struct {
	Fullname *string
	Email    *string
	Company  *string
	Phone    *string
	Avatar   *string
}

// UpdateUserInput is the admin-side variant; it can additionally move the
// role and active flag.
type UpdateUserInput struct {
	UpdateProfileInput
	Role     *string
	IsActive *bool
}

// UserPage is one page of an admin listing.
type UserPage struct {
	Users      []*domain.User
	Total      int64
	Page       int
	Limit      int
	TotalPages int
}

// UserService implements profile/settings CRUD and admin user management.
type UserService interface {
	GetProfile(ctx context.Context, userID string) (*domain.User, error)
	UpdateProfile(ctx context.Context, userID string, in UpdateProfileInput) (*domain.User, error)
	// DeactivateProfile soft-disables the account; the record survives but
	// every subsequent authenticated request is rejected.
	DeactivateProfile(ctx context.Context, userID string) error
	GetSettings(ctx context.Context, userID string) (domain.UserSettings, error)
	UpdateSettings(ctx context.Context, userID string, settings domain.UserSettings) (domain.UserSettings, error)

	ListUsers(ctx context.Context, page, limit int) (*UserPage, error)
	GetUser(ctx context.Context, id string) (*domain.User, error)
	UpdateUser(ctx context.Context, id string, in UpdateUserInput) (*domain.User, error)
	DeleteUser(ctx context.Context, id string) error
}
