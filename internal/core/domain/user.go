package domain

import "time"

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// ValidRole reports whether role is one of the enumerated account roles.
func ValidRole(role string) bool {
	return role == RoleUser || role == RoleAdmin
}

// UserSettings holds per-user preferences.
type UserSettings struct {
	Theme         string `json:"theme" bson:"theme"`
	Language      string `json:"language" bson:"language"`
	Notifications bool   `json:"notifications" bson:"notifications"`
}

// DefaultUserSettings returns the settings applied to a freshly registered account.
func DefaultUserSettings() UserSettings {
	return UserSettings{Theme: "light", Language: "en", Notifications: true}
}

// User models an account in the system. PasswordHash is never serialised to
// JSON and is only populated on the login credential lookup path.
type User struct {
	ID           string       `json:"id" bson:"_id,omitempty"`
	Fullname     string       `json:"fullname" bson:"fullname"`
	Email        string       `json:"email" bson:"email"`
	PasswordHash string       `json:"-" bson:"password,omitempty"`
	Role         string       `json:"role" bson:"role"`
	Company      string       `json:"company,omitempty" bson:"company,omitempty"`
	Phone        string       `json:"phone,omitempty" bson:"phone,omitempty"`
	Avatar       string       `json:"avatar,omitempty" bson:"avatar,omitempty"`
	IsActive     bool         `json:"is_active" bson:"is_active"`
	TenantID     string       `json:"tenant_id,omitempty" bson:"tenant_id,omitempty"`
	Settings     UserSettings `json:"settings" bson:"settings"`
	CreatedAt    time.Time    `json:"created_at" bson:"created_at"`
	UpdatedAt    time.Time    `json:"updated_at" bson:"updated_at"`
}
