package handler_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/saasdash/dashboard-api/internal/api"
	"github.com/saasdash/dashboard-api/internal/api/handler"
	"github.com/saasdash/dashboard-api/internal/core/domain"
	"github.com/saasdash/dashboard-api/internal/core/service"
)

// memoryUserRepo backs the handler tests with an in-memory user store.
type memoryUserRepo struct {
	mu     sync.Mutex
	nextID int
	users  map[string]*domain.User
}

func newMemoryUserRepo() *memoryUserRepo {
	return &memoryUserRepo{users: map[string]*domain.User{}}
}

func (r *memoryUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == user.Email {
			return nil, domain.ErrUserExists
		}
	}
	r.nextID++
	cp := *user
	cp.ID = fmt.Sprintf("user-%d", r.nextID)
	r.users[cp.ID] = &cp
	out := cp
	return &out, nil
}

func (r *memoryUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	cp := *u
	cp.PasswordHash = ""
	return &cp, nil
}

func (r *memoryUserRepo) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	u, err := r.FindByEmailWithPassword(ctx, email)
	if err != nil {
		return nil, err
	}
	u.PasswordHash = ""
	return u, nil
}

func (r *memoryUserRepo) FindByEmailWithPassword(_ context.Context, email string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *memoryUserRepo) List(context.Context, int, int) ([]*domain.User, int64, error) {
	return nil, 0, nil
}

func (r *memoryUserRepo) Update(_ context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[user.ID]; !ok {
		return domain.ErrUserNotFound
	}
	cp := *user
	r.users[user.ID] = &cp
	return nil
}

func (r *memoryUserRepo) UpdatePassword(_ context.Context, id, hash string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return domain.ErrUserNotFound
	}
	u.PasswordHash = hash
	return nil
}

func (r *memoryUserRepo) SetActive(_ context.Context, id string, active bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return domain.ErrUserNotFound
	}
	u.IsActive = active
	return nil
}

func (r *memoryUserRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.users, id)
	return nil
}

type noopAudit struct{}

func (noopAudit) Record(domain.AuthEvent) {}

// responseBody mirrors the wire envelope for assertions.
type responseBody struct {
	Success bool                   `json:"success"`
	Message string                 `json:"message"`
	Data    map[string]interface{} `json:"data"`
	Errors  []struct {
		Field   string `json:"field"`
		Message string `json:"message"`
	} `json:"errors"`
}

func newAuthTestServer(t *testing.T) (*echo.Echo, *memoryUserRepo) {
	t.Helper()
	repo := newMemoryUserRepo()
	tokens := service.NewTokenService("test-secret", time.Hour)
	authService := service.NewAuthService(repo, tokens, noopAudit{}, zerolog.Nop())

	e := echo.New()
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = api.NewHTTPErrorHandler(zerolog.Nop())

	h := handler.NewAuthHandler(authService)
	e.POST("/api/v1/auth/register", h.Register)
	e.POST("/api/v1/auth/login", h.Login)
	e.POST("/api/v1/auth/logout", h.Logout)
	e.POST("/api/v1/auth/refresh-token", h.RefreshToken)
	e.POST("/api/v1/auth/forgot-password", h.ForgotPassword)
	e.POST("/api/v1/auth/reset-password", h.ResetPassword)
	return e, repo
}

func doJSON(t *testing.T, e *echo.Echo, method, path, body string) (*httptest.ResponseRecorder, responseBody) {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	var parsed responseBody
	if err := json.Unmarshal(rec.Body.Bytes(), &parsed); err != nil {
		t.Fatalf("unmarshal response %q: %v", rec.Body.String(), err)
	}
	return rec, parsed
}

func TestRegisterEndpoint(t *testing.T) {
	e, _ := newAuthTestServer(t)

	rec, body := doJSON(t, e, http.MethodPost, "/api/v1/auth/register",
		`{"fullname":"Jane Doe","email":"jane@example.com","password":"Password1"}`)

	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	if !body.Success {
		t.Error("success = false")
	}
	if body.Message != "User registered successfully" {
		t.Errorf("message = %q", body.Message)
	}
	if body.Data["token"] == "" || body.Data["token"] == nil {
		t.Error("expected a session token in data")
	}
	user, _ := body.Data["user"].(map[string]interface{})
	if user["email"] != "jane@example.com" {
		t.Errorf("data.user.email = %v", user["email"])
	}
	if _, leaked := user["password"]; leaked {
		t.Error("password present in response")
	}
}

func TestRegisterEndpointDuplicateEmail(t *testing.T) {
	e, _ := newAuthTestServer(t)

	payload := `{"fullname":"Jane Doe","email":"jane@example.com","password":"Password1"}`
	doJSON(t, e, http.MethodPost, "/api/v1/auth/register", payload)
	rec, body := doJSON(t, e, http.MethodPost, "/api/v1/auth/register", payload)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
	if body.Success {
		t.Error("success = true on duplicate")
	}
	if body.Message != "User already exists with this email" {
		t.Errorf("message = %q", body.Message)
	}
}

func TestRegisterEndpointValidation(t *testing.T) {
	e, _ := newAuthTestServer(t)

	rec, body := doJSON(t, e, http.MethodPost, "/api/v1/auth/register",
		`{"fullname":"J","email":"nope","password":"weak"}`)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
	if body.Message != "Validation failed" {
		t.Errorf("message = %q", body.Message)
	}
	// Three failing fields, and the short weak password breaks two rules.
	if len(body.Errors) != 4 {
		t.Errorf("got %d field errors, want 4: %+v", len(body.Errors), body.Errors)
	}
}

func TestLoginEndpoint(t *testing.T) {
	e, _ := newAuthTestServer(t)
	doJSON(t, e, http.MethodPost, "/api/v1/auth/register",
		`{"fullname":"Jane Doe","email":"jane@example.com","password":"Password1"}`)

	rec, body := doJSON(t, e, http.MethodPost, "/api/v1/auth/login",
		`{"email":"jane@example.com","password":"Password1"}`)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	if body.Message != "Login successful" {
		t.Errorf("message = %q", body.Message)
	}
	if body.Data["token"] == "" || body.Data["token"] == nil {
		t.Error("expected a session token in data")
	}
}

func TestLoginEndpointBadCredentials(t *testing.T) {
	e, _ := newAuthTestServer(t)
	doJSON(t, e, http.MethodPost, "/api/v1/auth/register",
		`{"fullname":"Jane Doe","email":"jane@example.com","password":"Password1"}`)

	// Wrong password and unknown email must be indistinguishable.
	for _, payload := range []string{
		`{"email":"jane@example.com","password":"WrongPass1"}`,
		`{"email":"nobody@example.com","password":"Password1"}`,
	} {
		rec, body := doJSON(t, e, http.MethodPost, "/api/v1/auth/login", payload)
		if rec.Code != http.StatusUnauthorized {
			t.Errorf("status = %d, want 401", rec.Code)
		}
		if body.Message != "Invalid credentials" {
			t.Errorf("message = %q, want %q", body.Message, "Invalid credentials")
		}
	}
}

func TestRefreshTokenEndpoint(t *testing.T) {
	e, _ := newAuthTestServer(t)
	_, registered := doJSON(t, e, http.MethodPost, "/api/v1/auth/register",
		`{"fullname":"Jane Doe","email":"jane@example.com","password":"Password1"}`)
	token, _ := registered.Data["token"].(string)

	rec, body := doJSON(t, e, http.MethodPost, "/api/v1/auth/refresh-token",
		fmt.Sprintf(`{"token":%q}`, token))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	if body.Message != "Token refreshed successfully" {
		t.Errorf("message = %q", body.Message)
	}
}

func TestRefreshTokenEndpointRejections(t *testing.T) {
	e, _ := newAuthTestServer(t)

	rec, body := doJSON(t, e, http.MethodPost, "/api/v1/auth/refresh-token", `{"token":""}`)
	if rec.Code != http.StatusBadRequest || body.Message != "Token is required" {
		t.Errorf("empty token: status = %d, message = %q", rec.Code, body.Message)
	}

	rec, body = doJSON(t, e, http.MethodPost, "/api/v1/auth/refresh-token", `{"token":"bogus"}`)
	if rec.Code != http.StatusUnauthorized || body.Message != "Invalid token" {
		t.Errorf("bad token: status = %d, message = %q", rec.Code, body.Message)
	}
}

func TestPasswordResetFlow(t *testing.T) {
	e, _ := newAuthTestServer(t)
	doJSON(t, e, http.MethodPost, "/api/v1/auth/register",
		`{"fullname":"Jane Doe","email":"jane@example.com","password":"OldPass1"}`)

	rec, body := doJSON(t, e, http.MethodPost, "/api/v1/auth/forgot-password",
		`{"email":"jane@example.com"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("forgot: status = %d, body = %s", rec.Code, rec.Body.String())
	}
	if body.Message != "Password reset email sent" {
		t.Errorf("forgot: message = %q", body.Message)
	}
	reset, _ := body.Data["resetToken"].(string)
	if reset == "" {
		t.Fatal("expected a reset token")
	}

	rec, body = doJSON(t, e, http.MethodPost, "/api/v1/auth/reset-password",
		fmt.Sprintf(`{"token":%q,"newPassword":"NewPass1"}`, reset))
	if rec.Code != http.StatusOK {
		t.Fatalf("reset: status = %d, body = %s", rec.Code, rec.Body.String())
	}
	if body.Message != "Password reset successfully" {
		t.Errorf("reset: message = %q", body.Message)
	}

	rec, _ = doJSON(t, e, http.MethodPost, "/api/v1/auth/login",
		`{"email":"jane@example.com","password":"NewPass1"}`)
	if rec.Code != http.StatusOK {
		t.Errorf("login with new password: status = %d", rec.Code)
	}
}

func TestForgotPasswordUnknownEmail(t *testing.T) {
	e, _ := newAuthTestServer(t)

	rec, body := doJSON(t, e, http.MethodPost, "/api/v1/auth/forgot-password",
		`{"email":"nobody@example.com"}`)
	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
	if body.Message != "User not found" {
		t.Errorf("message = %q", body.Message)
	}
}

func TestResetPasswordBadToken(t *testing.T) {
	e, _ := newAuthTestServer(t)

	rec, body := doJSON(t, e, http.MethodPost, "/api/v1/auth/reset-password",
		`{"token":"bogus","newPassword":"NewPass1"}`)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
	if body.Message != "Invalid or expired token" {
		t.Errorf("message = %q", body.Message)
	}
}

func TestLogoutEndpoint(t *testing.T) {
	e, _ := newAuthTestServer(t)

	rec, body := doJSON(t, e, http.MethodPost, "/api/v1/auth/logout", "")
	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", rec.Code)
	}
	if body.Message != "Logged out successfully" {
		t.Errorf("message = %q", body.Message)
	}
}
