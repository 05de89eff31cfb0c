package handler

import (
	"time"

	"github.com/saasdash/dashboard-api/internal/core/domain"
)

type tenantCompanyRequest struct {
	Name string `json:"name" validate:"required,min=2,max=100"`
}

type createTenantRequest struct {
	Name      string               `json:"name"      validate:"required,min=2,max=100"`
	Domain    string               `json:"domain"    validate:"omitempty,fqdn"`
	Subdomain string               `json:"subdomain" validate:"omitempty,subdomain"`
	Company   tenantCompanyRequest `json:"company"   validate:"required"`
}

type themeRequest struct {
	PrimaryColor   *string `json:"primary_color"   validate:"omitempty,hexcolor"`
	SecondaryColor *string `json:"secondary_color" validate:"omitempty,hexcolor"`
	Logo           *string `json:"logo"            validate:"omitempty,url"`
	Favicon        *string `json:"favicon"         validate:"omitempty,url"`
}

type limitsRequest struct {
	Users    *int `json:"users"     validate:"omitempty,gte=1,lte=1000"`
	Storage  *int `json:"storage"   validate:"omitempty,gte=100,lte=100000"`
	APICalls *int `json:"api_calls" validate:"omitempty,gte=1"`
}

type updateTenantSettingsRequest struct {
	Theme    *themeRequest   `json:"theme"`
	Features map[string]bool `json:"features"`
	Limits   *limitsRequest  `json:"limits"`
}

type updateSubscriptionRequest struct {
	Plan         *string `json:"plan"          validate:"omitempty,oneof=free basic pro enterprise"`
	Status       *string `json:"status"        validate:"omitempty,oneof=active inactive cancelled past_due trial"`
	BillingCycle *string `json:"billing_cycle" validate:"omitempty,oneof=monthly yearly"`
}

// tenantResponse decorates the stored tenant with its derived predicates.
type tenantResponse struct {
	Tenant        *domain.Tenant `json:"tenant"`
	URL           string         `json:"url,omitempty"`
	InTrial       bool           `json:"in_trial"`
	DaysRemaining int            `json:"days_remaining"`
}

type subscriptionData struct {
	Subscription domain.Subscription `json:"subscription"`
	UpdatedAt    time.Time           `json:"updated_at"`
}
