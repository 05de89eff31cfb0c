package ports

import (
	"context"

	"github.com/saasdash/dashboard-api/internal/core/domain"
)

// AuditRepository persists authentication audit events.
type AuditRepository interface {
	Insert(ctx context.Context, event *domain.AuthEvent) error
}

// AuditRecorder is the write side handed to services. Recording must never
// block request handling; implementations buffer and persist asynchronously.
type AuditRecorder interface {
	Record(event domain.AuthEvent)
}
