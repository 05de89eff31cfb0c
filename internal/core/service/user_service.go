package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/saasdash/dashboard-api/internal/core/domain"
	"github.com/saasdash/dashboard-api/internal/core/ports"
)

const (
	defaultPageLimit = 20
	maxPageLimit     = 100
)

// UserService implements profile/settings CRUD and admin user management.
type UserService struct {
	users ports.UserRepository
	log   zerolog.Logger
}

func NewUserService(users ports.UserRepository, log zerolog.Logger) *UserService {
	return &UserService{users: users, log: log}
}

func (s *UserService) GetProfile(ctx context.Context, userID string) (*domain.User, error) {
	return s.users.FindByID(ctx, userID)
}

func (s *UserService) UpdateProfile(ctx context.Context, userID string, in ports.UpdateProfileInput) (*domain.User, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	applyProfileInput(user, in)
	user.UpdatedAt = time.Now().UTC()

	if err := s.users.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("update profile: %w", err)
	}
	s.log.Info().Str("user_id", userID).Msg("profile updated")
	return user, nil
}

// DeactivateProfile soft-disables the caller's own account.
func (s *UserService) DeactivateProfile(ctx context.Context, userID string) error {
	if err := s.users.SetActive(ctx, userID, false); err != nil {
		return fmt.Errorf("deactivate profile: %w", err)
	}
	s.log.Info().Str("user_id", userID).Msg("account deactivated")
	return nil
}

func (s *UserService) GetSettings(ctx context.Context, userID string) (domain.UserSettings, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return domain.UserSettings{}, err
	}
	return user.Settings, nil
}

func (s *UserService) UpdateSettings(ctx context.Context, userID string, settings domain.UserSettings) (domain.UserSettings, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return domain.UserSettings{}, err
	}

	user.Settings = settings
	user.UpdatedAt = time.Now().UTC()
	if err := s.users.Update(ctx, user); err != nil {
		return domain.UserSettings{}, fmt.Errorf("update settings: %w", err)
	}
	return user.Settings, nil
}

func (s *UserService) ListUsers(ctx context.Context, page, limit int) (*ports.UserPage, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = defaultPageLimit
	}
	if limit > maxPageLimit {
		limit = maxPageLimit
	}

	users, total, err := s.users.List(ctx, page, limit)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}

	totalPages := int((total + int64(limit) - 1) / int64(limit))
	return &ports.UserPage{
		Users:      users,
		Total:      total,
		Page:       page,
		Limit:      limit,
		TotalPages: totalPages,
	}, nil
}

func (s *UserService) GetUser(ctx context.Context, id string) (*domain.User, error) {
	return s.users.FindByID(ctx, id)
}

func (s *UserService) UpdateUser(ctx context.Context, id string, in ports.UpdateUserInput) (*domain.User, error) {
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	applyProfileInput(user, in.UpdateProfileInput)
	if in.Role != nil {
		if !domain.ValidRole(*in.Role) {
			return nil, domain.NewValidationError(domain.FieldError{
				Field:   "role",
				Message: "Role must be one of: user, admin",
				Value:   *in.Role,
			})
		}
		user.Role = *in.Role
	}
	if in.IsActive != nil {
		user.IsActive = *in.IsActive
	}
	user.UpdatedAt = time.Now().UTC()

	if err := s.users.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("update user: %w", err)
	}
	s.log.Info().Str("user_id", id).Msg("user updated by admin")
	return user, nil
}

// DeleteUser removes the record entirely. The self-service path goes through
// DeactivateProfile instead.
func (s *UserService) DeleteUser(ctx context.Context, id string) error {
	if err := s.users.Delete(ctx, id); err != nil {
		return err
	}
	s.log.Info().Str("user_id", id).Msg("user deleted")
	return nil
}

func applyProfileInput(user *domain.User, in ports.UpdateProfileInput) {
	if in.Fullname != nil {
		user.Fullname = *in.Fullname
	}
	if in.Email != nil {
		user.Email = *in.Email
	}
	if in.Company != nil {
		user.Company = *in.Company
	}
	if in.Phone != nil {
		user.Phone = *in.Phone
	}
	if in.Avatar != nil {
		user.Avatar = *in.Avatar
	}
}
