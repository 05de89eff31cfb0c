package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/saasdash/dashboard-api/internal/core/domain"
	"github.com/saasdash/dashboard-api/internal/core/ports"
	"github.com/saasdash/dashboard-api/internal/pkg/password"
)

// AuthService implements registration, login, token refresh, and the
// password-reset flows.
type AuthService struct {
	users  ports.UserRepository
	tokens *TokenService
	audit  ports.AuditRecorder
	log    zerolog.Logger
}

func NewAuthService(users ports.UserRepository, tokens *TokenService, audit ports.AuditRecorder, log zerolog.Logger) *AuthService {
	return &AuthService{users: users, tokens: tokens, audit: audit, log: log}
}

// Register creates an account, hashes the password, and issues a session token.
func (s *AuthService) Register(ctx context.Context, in ports.RegisterInput) (*ports.AuthResult, error) {
	if existing, err := s.users.FindByEmail(ctx, in.Email); err == nil && existing != nil {
		return nil, domain.ErrUserExists
	} else if err != nil && !errors.Is(err, domain.ErrUserNotFound) {
		return nil, fmt.Errorf("register: lookup email: %w", err)
	}

	hash, err := password.Hash(in.Password)
	if err != nil {
		return nil, fmt.Errorf("register: hash password: %w", err)
	}

	now := time.Now().UTC()
	user := &domain.User{
		Fullname:     in.Fullname,
		Email:        in.Email,
		PasswordHash: hash,
		Role:         domain.RoleUser,
		IsActive:     true,
		Settings:     domain.DefaultUserSettings(),
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	created, err := s.users.Create(ctx, user)
	if err != nil {
		return nil, fmt.Errorf("register: create user: %w", err)
	}
	created.PasswordHash = ""

	token, err := s.tokens.Issue(created.ID)
	if err != nil {
		return nil, fmt.Errorf("register: issue token: %w", err)
	}

	s.audit.Record(domain.AuthEvent{
		UserID:     created.ID,
		Email:      created.Email,
		Action:     domain.AuditRegister,
		RemoteIP:   in.RemoteIP,
		OccurredAt: now,
	})
	s.log.Info().Str("user_id", created.ID).Str("email", created.Email).Msg("user registered")

	return &ports.AuthResult{User: created, Token: token}, nil
}

// Login verifies credentials and issues a session token. Unknown email and
// wrong password are indistinguishable to the caller.
func (s *AuthService) Login(ctx context.Context, in ports.LoginInput) (*ports.AuthResult, error) {
	user, err := s.users.FindByEmailWithPassword(ctx, in.Email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			s.recordFailedLogin(in.Email, in.RemoteIP)
			return nil, domain.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("login: lookup email: %w", err)
	}

	if !password.Verify(in.Password, user.PasswordHash) {
		s.recordFailedLogin(in.Email, in.RemoteIP)
		return nil, domain.ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		return nil, fmt.Errorf("login: issue token: %w", err)
	}
	user.PasswordHash = ""

	s.audit.Record(domain.AuthEvent{
		UserID:     user.ID,
		Email:      user.Email,
		Action:     domain.AuditLogin,
		RemoteIP:   in.RemoteIP,
		OccurredAt: time.Now().UTC(),
	})
	s.log.Info().Str("user_id", user.ID).Msg("user logged in")

	return &ports.AuthResult{User: user, Token: token}, nil
}

// Logout records the event only. Tokens stay valid until expiry; there is no
// server-side revocation list.
func (s *AuthService) Logout(ctx context.Context, userEmail, remoteIP string) {
	s.audit.Record(domain.AuthEvent{
		Email:      userEmail,
		Action:     domain.AuditLogout,
		RemoteIP:   remoteIP,
		OccurredAt: time.Now().UTC(),
	})
}

// Refresh verifies a still-valid token and mints a fresh one for its subject.
func (s *AuthService) Refresh(ctx context.Context, token string) (string, error) {
	subject, err := s.tokens.Verify(token)
	if err != nil {
		return "", err
	}

	fresh, err := s.tokens.Issue(subject)
	if err != nil {
		return "", fmt.Errorf("refresh: issue token: %w", err)
	}

	s.audit.Record(domain.AuthEvent{
		UserID:     subject,
		Action:     domain.AuditTokenRefresh,
		OccurredAt: time.Now().UTC(),
	})
	return fresh, nil
}

// ForgotPassword issues a one-hour reset token for the account. Delivery of
// the token is an out-of-band concern.
func (s *AuthService) ForgotPassword(ctx context.Context, email, remoteIP string) (string, error) {
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return "", domain.ErrUserNotFound
		}
		return "", fmt.Errorf("forgot password: lookup email: %w", err)
	}

	token, err := s.tokens.IssueReset(user.ID)
	if err != nil {
		return "", fmt.Errorf("forgot password: issue token: %w", err)
	}

	s.audit.Record(domain.AuthEvent{
		UserID:     user.ID,
		Email:      user.Email,
		Action:     domain.AuditPasswordForgot,
		RemoteIP:   remoteIP,
		OccurredAt: time.Now().UTC(),
	})
	return token, nil
}

// ResetPassword verifies a reset token and overwrites the stored hash.
func (s *AuthService) ResetPassword(ctx context.Context, token, newPassword string) error {
	subject, err := s.tokens.Verify(token)
	if err != nil {
		return err
	}

	hash, err := password.Hash(newPassword)
	if err != nil {
		return fmt.Errorf("reset password: hash password: %w", err)
	}

	if err := s.users.UpdatePassword(ctx, subject, hash); err != nil {
		return fmt.Errorf("reset password: update hash: %w", err)
	}

	s.audit.Record(domain.AuthEvent{
		UserID:     subject,
		Action:     domain.AuditPasswordReset,
		OccurredAt: time.Now().UTC(),
	})
	s.log.Info().Str("user_id", subject).Msg("password reset")
	return nil
}

func (s *AuthService) recordFailedLogin(email, remoteIP string) {
	s.audit.Record(domain.AuthEvent{
		Email:      email,
		Action:     domain.AuditLoginFailed,
		RemoteIP:   remoteIP,
		OccurredAt: time.Now().UTC(),
	})
}
