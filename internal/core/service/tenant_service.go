package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/saasdash/dashboard-api/internal/core/domain"
	"github.com/saasdash/dashboard-api/internal/core/ports"
)

// TenantService implements tenant provisioning and settings/subscription
// updates. baseDomain is the apex under which subdomain URLs are built.
type TenantService struct {
	tenants    ports.TenantRepository
	users      ports.UserRepository
	baseDomain string
	log        zerolog.Logger
}

func NewTenantService(tenants ports.TenantRepository, users ports.UserRepository, baseDomain string, log zerolog.Logger) *TenantService {
	return &TenantService{tenants: tenants, users: users, baseDomain: baseDomain, log: log}
}

// Create provisions a tenant owned by the given user and links the owner's
// account to it. New tenants start on a 14-day trial of the free plan.
func (s *TenantService) Create(ctx context.Context, in ports.CreateTenantInput) (*domain.Tenant, error) {
	owner, err := s.users.FindByID(ctx, in.OwnerID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	tenant := &domain.Tenant{
		Name:      in.Name,
		Domain:    in.Domain,
		Subdomain: in.Subdomain,
		Company:   domain.Company{Name: in.CompanyName},
		Settings:  domain.DefaultTenantSettings(),
		Subscription: domain.Subscription{
			Plan:         domain.PlanFree,
			Status:       domain.SubscriptionTrial,
			StartDate:    now,
			BillingCycle: domain.BillingMonthly,
		},
		IsActive:  true,
		OwnerID:   owner.ID,
		AdminIDs:  []string{owner.ID},
		Metadata:  map[string]interface{}{},
		CreatedAt: now,
		UpdatedAt: now,
	}
	domain.ApplyTrialDefault(tenant, now)

	created, err := s.tenants.Create(ctx, tenant)
	if err != nil {
		return nil, err
	}

	owner.TenantID = created.ID
	owner.UpdatedAt = now
	if err := s.users.Update(ctx, owner); err != nil {
		return nil, fmt.Errorf("create tenant: link owner: %w", err)
	}

	s.log.Info().Str("tenant_id", created.ID).Str("owner_id", owner.ID).Msg("tenant created")
	return created, nil
}

func (s *TenantService) GetByID(ctx context.Context, id string) (*ports.TenantDetail, error) {
	tenant, err := s.tenants.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	return &ports.TenantDetail{
		Tenant:        tenant,
		URL:           domain.TenantURL(tenant, s.baseDomain),
		InTrial:       domain.IsInTrial(tenant, now),
		DaysRemaining: domain.SubscriptionDaysRemaining(tenant, now),
	}, nil
}

func (s *TenantService) UpdateSettings(ctx context.Context, id string, in ports.UpdateTenantSettingsInput) (*domain.Tenant, error) {
	tenant, err := s.tenants.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if in.PrimaryColor != nil {
		tenant.Settings.Theme.PrimaryColor = *in.PrimaryColor
	}
	if in.SecondaryColor != nil {
		tenant.Settings.Theme.SecondaryColor = *in.SecondaryColor
	}
	if in.Logo != nil {
		tenant.Settings.Theme.Logo = *in.Logo
	}
	if in.Favicon != nil {
		tenant.Settings.Theme.Favicon = *in.Favicon
	}
	for name, enabled := range in.Features {
		if tenant.Settings.Features == nil {
			tenant.Settings.Features = map[string]bool{}
		}
		tenant.Settings.Features[name] = enabled
	}
	if in.UserLimit != nil {
		tenant.Settings.Limits.Users = *in.UserLimit
	}
	if in.StorageLimit != nil {
		tenant.Settings.Limits.Storage = *in.StorageLimit
	}
	if in.APICallLimit != nil {
		tenant.Settings.Limits.APICalls = *in.APICallLimit
	}

	tenant.UpdatedAt = time.Now().UTC()
	domain.ApplyTrialDefault(tenant, tenant.UpdatedAt)
	if err := s.tenants.Update(ctx, tenant); err != nil {
		return nil, fmt.Errorf("update tenant settings: %w", err)
	}
	return tenant, nil
}

func (s *TenantService) UpdateSubscription(ctx context.Context, id string, in ports.UpdateSubscriptionInput) (*domain.Tenant, error) {
	tenant, err := s.tenants.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if in.Plan != nil {
		if !domain.ValidPlan(*in.Plan) {
			return nil, domain.ErrInvalidSubscription
		}
		tenant.Subscription.Plan = *in.Plan
	}
	if in.Status != nil {
		if !domain.ValidSubscriptionStatus(*in.Status) {
			return nil, domain.ErrInvalidSubscription
		}
		tenant.Subscription.Status = *in.Status
	}
	if in.BillingCycle != nil {
		if *in.BillingCycle != domain.BillingMonthly && *in.BillingCycle != domain.BillingYearly {
			return nil, domain.ErrInvalidSubscription
		}
		tenant.Subscription.BillingCycle = *in.BillingCycle
	}

	tenant.UpdatedAt = time.Now().UTC()
	domain.ApplyTrialDefault(tenant, tenant.UpdatedAt)
	if err := s.tenants.Update(ctx, tenant); err != nil {
		return nil, fmt.Errorf("update subscription: %w", err)
	}

	s.log.Info().
		Str("tenant_id", id).
		Str("plan", tenant.Subscription.Plan).
		Str("status", tenant.Subscription.Status).
		Msg("subscription updated")
	return tenant, nil
}
