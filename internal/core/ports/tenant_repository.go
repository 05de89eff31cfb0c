package ports

import (
	"context"

	"github.com/saasdash/dashboard-api/internal/core/domain"
)

// TenantRepository defines persistence for tenants.
type TenantRepository interface {
	Create(ctx context.Context, tenant *domain.Tenant) (*domain.Tenant, error)
	FindByID(ctx context.Context, id string) (*domain.Tenant, error)
	Update(ctx context.Context, tenant *domain.Tenant) error
}
