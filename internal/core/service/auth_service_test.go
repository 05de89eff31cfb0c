package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/saasdash/dashboard-api/internal/core/domain"
	"github.com/saasdash/dashboard-api/internal/core/ports"
	"github.com/saasdash/dashboard-api/internal/pkg/password"
)

func newAuthFixture(t *testing.T) (*AuthService, *stubUserRepo, *stubAudit) {
	t.Helper()
	repo := newStubUserRepo()
	audit := &stubAudit{}
	tokens := NewTokenService("test-secret", time.Hour)
	return NewAuthService(repo, tokens, audit, zerolog.Nop()), repo, audit
}

func TestAuthServiceRegister(t *testing.T) {
	svc, _, audit := newAuthFixture(t)

	result, err := svc.Register(context.Background(), ports.RegisterInput{
		Fullname: "Jane Doe",
		Email:    "jane@example.com",
		Password: "Password1",
	})
	if err != nil {
		t.Fatalf("Register() error: %v", err)
	}

	if result.Token == "" {
		t.Error("expected a session token")
	}
	if result.User.ID == "" {
		t.Error("expected an assigned user id")
	}
	if result.User.PasswordHash != "" {
		t.Error("password hash leaked in result")
	}
	if result.User.Role != domain.RoleUser {
		t.Errorf("role = %q, want %q", result.User.Role, domain.RoleUser)
	}
	if !result.User.IsActive {
		t.Error("new account should be active")
	}
	if result.User.Settings != domain.DefaultUserSettings() {
		t.Errorf("settings = %+v, want defaults", result.User.Settings)
	}

	got := audit.actions()
	if len(got) != 1 || got[0] != domain.AuditRegister {
		t.Errorf("audit actions = %v, want [register]", got)
	}
}

func TestAuthServiceRegisterDuplicateEmail(t *testing.T) {
	svc, repo, _ := newAuthFixture(t)
	repo.add(&domain.User{Email: "jane@example.com", IsActive: true})

	_, err := svc.Register(context.Background(), ports.RegisterInput{
		Fullname: "Jane Doe",
		Email:    "jane@example.com",
		Password: "Password1",
	})
	if !errors.Is(err, domain.ErrUserExists) {
		t.Errorf("Register() error = %v, want ErrUserExists", err)
	}
}

func TestAuthServiceLogin(t *testing.T) {
	svc, repo, audit := newAuthFixture(t)

	hash, err := password.Hash("Password1")
	if err != nil {
		t.Fatalf("hashing: %v", err)
	}
	repo.add(&domain.User{Email: "jane@example.com", PasswordHash: hash, IsActive: true})

	result, err := svc.Login(context.Background(), ports.LoginInput{
		Email:    "jane@example.com",
		Password: "Password1",
	})
	if err != nil {
		t.Fatalf("Login() error: %v", err)
	}
	if result.Token == "" {
		t.Error("expected a session token")
	}
	if result.User.PasswordHash != "" {
		t.Error("password hash leaked in result")
	}

	got := audit.actions()
	if len(got) != 1 || got[0] != domain.AuditLogin {
		t.Errorf("audit actions = %v, want [login]", got)
	}
}

func TestAuthServiceLoginBadCredentials(t *testing.T) {
	svc, repo, audit := newAuthFixture(t)

	hash, err := password.Hash("Password1")
	if err != nil {
		t.Fatalf("hashing: %v", err)
	}
	repo.add(&domain.User{Email: "jane@example.com", PasswordHash: hash, IsActive: true})

	tests := []struct {
		name     string
		email    string
		password string
	}{
		{"wrong password", "jane@example.com", "WrongPass1"},
		{"unknown email", "nobody@example.com", "Password1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Login(context.Background(), ports.LoginInput{Email: tt.email, Password: tt.password})
			if !errors.Is(err, domain.ErrInvalidCredentials) {
				t.Errorf("Login() error = %v, want ErrInvalidCredentials", err)
			}
		})
	}

	for _, action := range audit.actions() {
		if action != domain.AuditLoginFailed {
			t.Errorf("audit action = %q, want login_failed", action)
		}
	}
}

func TestAuthServiceRefresh(t *testing.T) {
	svc, repo, _ := newAuthFixture(t)

	hash, _ := password.Hash("Password1")
	repo.add(&domain.User{Email: "jane@example.com", PasswordHash: hash, IsActive: true})

	result, err := svc.Login(context.Background(), ports.LoginInput{Email: "jane@example.com", Password: "Password1"})
	if err != nil {
		t.Fatalf("Login() error: %v", err)
	}

	fresh, err := svc.Refresh(context.Background(), result.Token)
	if err != nil {
		t.Fatalf("Refresh() error: %v", err)
	}
	if fresh == "" {
		t.Error("expected a fresh token")
	}
}

func TestAuthServiceRefreshInvalidToken(t *testing.T) {
	svc, _, _ := newAuthFixture(t)

	if _, err := svc.Refresh(context.Background(), "bogus"); !errors.Is(err, domain.ErrInvalidToken) {
		t.Errorf("Refresh() error = %v, want ErrInvalidToken", err)
	}
}

func TestAuthServiceForgotAndResetPassword(t *testing.T) {
	svc, repo, audit := newAuthFixture(t)

	hash, _ := password.Hash("OldPass1")
	repo.add(&domain.User{Email: "jane@example.com", PasswordHash: hash, IsActive: true})

	reset, err := svc.ForgotPassword(context.Background(), "jane@example.com", "")
	if err != nil {
		t.Fatalf("ForgotPassword() error: %v", err)
	}
	if reset == "" {
		t.Fatal("expected a reset token")
	}

	if err := svc.ResetPassword(context.Background(), reset, "NewPass1"); err != nil {
		t.Fatalf("ResetPassword() error: %v", err)
	}

	// Old password no longer works, the new one does.
	if _, err := svc.Login(context.Background(), ports.LoginInput{Email: "jane@example.com", Password: "OldPass1"}); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Errorf("login with old password error = %v, want ErrInvalidCredentials", err)
	}
	if _, err := svc.Login(context.Background(), ports.LoginInput{Email: "jane@example.com", Password: "NewPass1"}); err != nil {
		t.Errorf("login with new password error = %v", err)
	}

	actions := audit.actions()
	want := map[string]bool{domain.AuditPasswordForgot: false, domain.AuditPasswordReset: false}
	for _, a := range actions {
		if _, ok := want[a]; ok {
			want[a] = true
		}
	}
	for action, seen := range want {
		if !seen {
			t.Errorf("audit action %q not recorded", action)
		}
	}
}

func TestAuthServiceForgotPasswordUnknownEmail(t *testing.T) {
	svc, _, _ := newAuthFixture(t)

	if _, err := svc.ForgotPassword(context.Background(), "nobody@example.com", ""); !errors.Is(err, domain.ErrUserNotFound) {
		t.Errorf("ForgotPassword() error = %v, want ErrUserNotFound", err)
	}
}

func TestAuthServiceResetPasswordBadToken(t *testing.T) {
	svc, _, _ := newAuthFixture(t)

	if err := svc.ResetPassword(context.Background(), "bogus", "NewPass1"); !errors.Is(err, domain.ErrInvalidToken) {
		t.Errorf("ResetPassword() error = %v, want ErrInvalidToken", err)
	}
}

func TestAuthServiceLogoutRecordsEvent(t *testing.T) {
	svc, _, audit := newAuthFixture(t)

	svc.Logout(context.Background(), "jane@example.com", "10.0.0.1")

	got := audit.actions()
	if len(got) != 1 || got[0] != domain.AuditLogout {
		t.Errorf("audit actions = %v, want [logout]", got)
	}
}
