package handler

import "github.com/saasdash/dashboard-api/internal/core/domain"

type updateProfileRequest struct {
	Fullname *string `json:"fullname" validate:"omitempty,min=2,max=50"`
	Email    *string `json:"email"    validate:"omitempty,email"`
	Company  *string `json:"company"  validate:"omitempty,min=2,max=100"`
	Phone    *string `json:"phone"    validate:"omitempty,phone"`
	Avatar   *string `json:"avatar"   validate:"omitempty,url"`
}

type updateUserSettingsRequest struct {
	Theme         *string `json:"theme"         validate:"omitempty,oneof=light dark"`
	Language      *string `json:"language"      validate:"omitempty,min=2,max=8"`
	Notifications *bool   `json:"notifications"`
}

// adminUpdateUserRequest extends the profile fields with the admin-only ones.
type adminUpdateUserRequest struct {
	updateProfileRequest
	Role     *string `json:"role"      validate:"omitempty,oneof=user admin"`
	IsActive *bool   `json:"is_active"`
}

type userData struct {
	User *domain.User `json:"user"`
}

type settingsData struct {
	Settings domain.UserSettings `json:"settings"`
}

type paginationData struct {
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	TotalPages int   `json:"total_pages"`
}

type userListData struct {
	Users      []*domain.User `json:"users"`
	Pagination paginationData `json:"pagination"`
}
