package handler

import "github.com/saasdash/dashboard-api/internal/core/domain"

// --- Request types ---

type registerRequest struct {
	Fullname string `json:"fullname" validate:"required,min=2,max=50"`
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=6,password_complexity"`
}

type loginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type refreshTokenRequest struct {
	Token string `json:"token" validate:"required"`
}

type forgotPasswordRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type resetPasswordRequest struct {
	Token       string `json:"token"       validate:"required"`
	NewPassword string `json:"newPassword" validate:"required,min=6,password_complexity"`
}

// --- Response payloads (the data field of the envelope) ---

type authData struct {
	User  *domain.User `json:"user"`
	Token string       `json:"token"`
}

type tokenData struct {
	Token string `json:"token"`
}

type resetTokenData struct {
	ResetToken string `json:"resetToken"`
}
