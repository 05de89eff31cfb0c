package domain

import "time"

// Subscription plan tiers.
const (
	PlanFree       = "free"
	PlanBasic      = "basic"
	PlanPro        = "pro"
	PlanEnterprise = "enterprise"
)

// Subscription statuses.
const (
	SubscriptionActive    = "active"
	SubscriptionInactive  = "inactive"
	SubscriptionCancelled = "cancelled"
	SubscriptionPastDue   = "past_due"
	SubscriptionTrial     = "trial"
)

// Billing cycles.
const (
	BillingMonthly = "monthly"
	BillingYearly  = "yearly"
)

// TrialPeriod is how long a fresh tenant keeps trial access.
const TrialPeriod = 14 * 24 * time.Hour

// ValidPlan reports whether plan is an enumerated subscription plan.
func ValidPlan(plan string) bool {
	switch plan {
	case PlanFree, PlanBasic, PlanPro, PlanEnterprise:
		return true
	}
	return false
}

// ValidSubscriptionStatus reports whether status is an enumerated subscription status.
func ValidSubscriptionStatus(status string) bool {
	switch status {
	case SubscriptionActive, SubscriptionInactive, SubscriptionCancelled, SubscriptionPastDue, SubscriptionTrial:
		return true
	}
	return false
}

// CompanyAddress is the physical address of the tenant's company.
type CompanyAddress struct {
	Street  string `json:"street,omitempty" bson:"street,omitempty"`
	City    string `json:"city,omitempty" bson:"city,omitempty"`
	State   string `json:"state,omitempty" bson:"state,omitempty"`
	ZipCode string `json:"zip_code,omitempty" bson:"zip_code,omitempty"`
	Country string `json:"country,omitempty" bson:"country,omitempty"`
}

// Company carries the tenant's business details.
type Company struct {
	Name    string         `json:"name" bson:"name"`
	Address CompanyAddress `json:"address,omitempty" bson:"address,omitempty"`
	Phone   string         `json:"phone,omitempty" bson:"phone,omitempty"`
	Website string         `json:"website,omitempty" bson:"website,omitempty"`
	Logo    string         `json:"logo,omitempty" bson:"logo,omitempty"`
}

// Theme holds branding colours and assets.
type Theme struct {
	PrimaryColor   string `json:"primary_color" bson:"primary_color"`
	SecondaryColor string `json:"secondary_color" bson:"secondary_color"`
	Logo           string `json:"logo,omitempty" bson:"logo,omitempty"`
	Favicon        string `json:"favicon,omitempty" bson:"favicon,omitempty"`
}

// Limits bounds tenant resource usage.
type Limits struct {
	Users    int `json:"users" bson:"users"`
	Storage  int `json:"storage" bson:"storage"` // MB
	APICalls int `json:"api_calls" bson:"api_calls"`
}

// TenantSettings groups theme, feature flags, and usage limits.
type TenantSettings struct {
	Theme    Theme           `json:"theme" bson:"theme"`
	Features map[string]bool `json:"features" bson:"features"`
	Limits   Limits          `json:"limits" bson:"limits"`
}

// DefaultTenantSettings returns the settings applied to a freshly provisioned tenant.
func DefaultTenantSettings() TenantSettings {
	return TenantSettings{
		Theme: Theme{
			PrimaryColor:   "#3B82F6",
			SecondaryColor: "#1F2937",
		},
		Features: map[string]bool{},
		Limits: Limits{
			Users:    10,
			Storage:  1024,
			APICalls: 1000,
		},
	}
}

// Subscription is the tenant's billing sub-record.
type Subscription struct {
	Plan                 string    `json:"plan" bson:"plan"`
	Status               string    `json:"status" bson:"status"`
	StartDate            time.Time `json:"start_date" bson:"start_date"`
	EndDate              time.Time `json:"end_date,omitempty" bson:"end_date,omitempty"`
	TrialEndDate         time.Time `json:"trial_end_date,omitempty" bson:"trial_end_date,omitempty"`
	StripeCustomerID     string    `json:"stripe_customer_id,omitempty" bson:"stripe_customer_id,omitempty"`
	StripeSubscriptionID string    `json:"stripe_subscription_id,omitempty" bson:"stripe_subscription_id,omitempty"`
	BillingCycle         string    `json:"billing_cycle" bson:"billing_cycle"`
}

// Tenant is an organisation that owns users and carries its own subscription.
type Tenant struct {
	ID           string                 `json:"id" bson:"_id,omitempty"`
	Name         string                 `json:"name" bson:"name"`
	Domain       string                 `json:"domain,omitempty" bson:"domain,omitempty"`
	Subdomain    string                 `json:"subdomain,omitempty" bson:"subdomain,omitempty"`
	Company      Company                `json:"company" bson:"company"`
	Settings     TenantSettings         `json:"settings" bson:"settings"`
	Subscription Subscription           `json:"subscription" bson:"subscription"`
	IsActive     bool                   `json:"is_active" bson:"is_active"`
	OwnerID      string                 `json:"owner_id" bson:"owner_id"`
	AdminIDs     []string               `json:"admin_ids,omitempty" bson:"admin_ids,omitempty"`
	Metadata     map[string]interface{} `json:"metadata,omitempty" bson:"metadata,omitempty"`
	CreatedAt    time.Time              `json:"created_at" bson:"created_at"`
	UpdatedAt    time.Time              `json:"updated_at" bson:"updated_at"`
}

// IsInTrial reports whether the tenant is on a trial that has not yet expired.
func IsInTrial(t *Tenant, now time.Time) bool {
	return t.Subscription.Status == SubscriptionTrial && t.Subscription.TrialEndDate.After(now)
}

// HasActiveSubscription reports whether the tenant may use paid features.
// Active and trial both qualify; trial expiry is handled by the billing job
// flipping the status, not here.
func HasActiveSubscription(t *Tenant) bool {
	return t.Subscription.Status == SubscriptionActive || t.Subscription.Status == SubscriptionTrial
}

// SubscriptionDaysRemaining returns the whole days left on the trial or paid
// period, -1 when there is no bounded period to count down.
func SubscriptionDaysRemaining(t *Tenant, now time.Time) int {
	var until time.Time
	switch {
	case t.Subscription.Status == SubscriptionTrial:
		until = t.Subscription.TrialEndDate
	case !t.Subscription.EndDate.IsZero():
		until = t.Subscription.EndDate
	default:
		return -1
	}

	remaining := until.Sub(now)
	if remaining <= 0 {
		return 0
	}
	// Ceiling division: a partial day still counts as a remaining day.
	return int((remaining + 24*time.Hour - time.Nanosecond) / (24 * time.Hour))
}

// IsTenantAdmin reports whether userID may administer the tenant. The owner
// and every entry in the admin list qualify.
func IsTenantAdmin(t *Tenant, userID string) bool {
	if userID == "" {
		return false
	}
	if t.OwnerID == userID {
		return true
	}
	for _, id := range t.AdminIDs {
		if id == userID {
			return true
		}
	}
	return false
}

// TenantURL returns the public URL for the tenant, or "" when neither a
// domain nor a subdomain is set.
func TenantURL(t *Tenant, baseDomain string) string {
	if t.Domain != "" {
		return "https://" + t.Domain
	}
	if t.Subdomain != "" {
		return "https://" + t.Subdomain + "." + baseDomain
	}
	return ""
}

// ApplyTrialDefault sets the trial end date 14 days out when it is missing at
// save time.
func ApplyTrialDefault(t *Tenant, now time.Time) {
	if t.Subscription.TrialEndDate.IsZero() {
		t.Subscription.TrialEndDate = now.Add(TrialPeriod)
	}
}
