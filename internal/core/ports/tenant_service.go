package ports

import (
	"context"

	"github.com/saasdash/dashboard-api/internal/core/domain"
)

// CreateTenantInput carries the fields accepted when provisioning a tenant.
type CreateTenantInput struct {
	Name        string
	Domain      string
	Subdomain   string
	CompanyName string
	OwnerID     string
}

// UpdateTenantSettingsInput carries a partial settings update. Nil fields are
// left unchanged.
type UpdateTenantSettingsInput struct {
	PrimaryColor   *string
	SecondaryColor *string
	Logo           *string
	Favicon        *string
	Features       map[string]bool
	UserLimit      *int
	StorageLimit   *int
	APICallLimit   *int
}

// UpdateSubscriptionInput moves the tenant's billing sub-record.
type UpdateSubscriptionInput struct {
	Plan         *string
	Status       *string
	BillingCycle *string
}

// TenantDetail decorates a tenant with its derived predicates for responses.
type TenantDetail struct {
	Tenant        *domain.Tenant
	URL           string
	InTrial       bool
	DaysRemaining int
}

// TenantService implements tenant provisioning and settings/subscription CRUD.
type TenantService interface {
	Create(ctx context.Context, in CreateTenantInput) (*domain.Tenant, error)
	GetByID(ctx context.Context, id string) (*TenantDetail, error)
	UpdateSettings(ctx context.Context, id string, in UpdateTenantSettingsInput) (*domain.Tenant, error)
	UpdateSubscription(ctx context.Context, id string, in UpdateSubscriptionInput) (*domain.Tenant, error)
}
