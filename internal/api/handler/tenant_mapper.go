package handler

import "github.com/saasdash/dashboard-api/internal/core/ports"

func toCreateTenantInput(req createTenantRequest, ownerID string) ports.CreateTenantInput {
	return ports.CreateTenantInput{
		Name:        req.Name,
		Domain:      req.Domain,
		Subdomain:   req.Subdomain,
		CompanyName: req.Company.Name,
		OwnerID:     ownerID,
	}
}

func toTenantSettingsInput(req updateTenantSettingsRequest) ports.UpdateTenantSettingsInput {
	in := ports.UpdateTenantSettingsInput{Features: req.Features}
	if req.Theme != nil {
		in.PrimaryColor = req.Theme.PrimaryColor
		in.SecondaryColor = req.Theme.SecondaryColor
		in.Logo = req.Theme.Logo
		in.Favicon = req.Theme.Favicon
	}
	if req.Limits != nil {
		in.UserLimit = req.Limits.Users
		in.StorageLimit = req.Limits.Storage
		in.APICallLimit = req.Limits.APICalls
	}
	return in
}

func toTenantResponse(detail *ports.TenantDetail) tenantResponse {
	return tenantResponse{
		Tenant:        detail.Tenant,
		URL:           detail.URL,
		InTrial:       detail.InTrial,
		DaysRemaining: detail.DaysRemaining,
	}
}
