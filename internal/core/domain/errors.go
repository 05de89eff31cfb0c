package domain

import "errors"

var (
	ErrUserExists          = errors.New("user already exists")
	ErrUserNotFound        = errors.New("user not found")
	ErrUserDeactivated     = errors.New("user account is deactivated")
	ErrInvalidCredentials  = errors.New("invalid credentials")
	ErrInvalidToken        = errors.New("invalid or expired token")
	ErrTenantNotFound      = errors.New("tenant not found")
	ErrTenantExists        = errors.New("tenant already exists")
	ErrNoTenant            = errors.New("user has no tenant")
	ErrForbidden           = errors.New("access forbidden")
	ErrSubscriptionNeeded  = errors.New("active subscription required")
	ErrInvalidSubscription = errors.New("invalid subscription change")
)

// FieldError describes one failed validation rule.
type FieldError struct {
	Field   string      `json:"field"`
	Message string      `json:"message"`
	Value   interface{} `json:"value"`
}

// ValidationError aggregates every failing field of a request payload.
// Rules are independent predicates; evaluation never stops at the first
// failure so the caller sees the complete list.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	return "validation failed"
}

// NewValidationError builds a ValidationError from field failures.
func NewValidationError(fields ...FieldError) *ValidationError {
	return &ValidationError{Fields: fields}
}
