package domain

import "time"

// Auth audit actions.
const (
	AuditRegister       = "register"
	AuditLogin          = "login"
	AuditLoginFailed    = "login_failed"
	AuditLogout         = "logout"
	AuditTokenRefresh   = "token_refresh"
	AuditPasswordForgot = "password_forgot"
	AuditPasswordReset  = "password_reset"
)

// AuthEvent is one entry in the authentication audit trail.
type AuthEvent struct {
	UserID     string    `bson:"user_id,omitempty"`
	Email      string    `bson:"email"`
	Action     string    `bson:"action"`
	RemoteIP   string    `bson:"remote_ip,omitempty"`
	OccurredAt time.Time `bson:"occurred_at"`
}
