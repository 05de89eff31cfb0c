package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/saasdash/dashboard-api/internal/core/domain"
	"github.com/saasdash/dashboard-api/internal/core/ports"
)

// TenantHandler exposes tenant provisioning and settings/subscription updates.
type TenantHandler struct {
	service ports.TenantService
}

func NewTenantHandler(service ports.TenantService) *TenantHandler {
	return &TenantHandler{service: service}
}

// Create provisions a tenant owned by the caller.
//
// @Summary      Create a tenant
// @Tags         tenants
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createTenantRequest  true  "Tenant details"
// @Success      201   {object}  envelope
// @Failure      400   {object}  envelope
// @Router       /api/v1/tenants [post]
func (h *TenantHandler) Create(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}
	if user.TenantID != "" {
		return fail(c, http.StatusBadRequest, "User already belongs to a tenant")
	}

	var req createTenantRequest
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	tenant, err := h.service.Create(c.Request().Context(), toCreateTenantInput(req, user.ID))
	if err != nil {
		if errors.Is(err, domain.ErrTenantExists) {
			return fail(c, http.StatusBadRequest, "A tenant with this domain or subdomain already exists")
		}
		return err
	}
	return respond(c, http.StatusCreated, "Tenant created successfully", tenantResponse{Tenant: tenant})
}

// GetCurrent returns the caller's tenant with derived subscription state.
//
// @Summary      Get the caller's tenant
// @Tags         tenants
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  envelope
// @Failure      404  {object}  envelope
// @Router       /api/v1/tenants/current [get]
func (h *TenantHandler) GetCurrent(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}
	if user.TenantID == "" {
		return fail(c, http.StatusNotFound, "Tenant not found")
	}

	detail, err := h.service.GetByID(c.Request().Context(), user.TenantID)
	if err != nil {
		if errors.Is(err, domain.ErrTenantNotFound) {
			return fail(c, http.StatusNotFound, "Tenant not found")
		}
		return err
	}
	return respond(c, http.StatusOK, "", toTenantResponse(detail))
}

// UpdateSettings applies a partial settings update to the caller's tenant.
//
// @Summary      Update tenant settings
// @Tags         tenants
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      updateTenantSettingsRequest  true  "Settings fields"
// @Success      200   {object}  envelope
// @Failure      403   {object}  envelope
// @Router       /api/v1/tenants/current/settings [put]
func (h *TenantHandler) UpdateSettings(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}
	if user.TenantID == "" {
		return fail(c, http.StatusNotFound, "Tenant not found")
	}

	var req updateTenantSettingsRequest
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	tenant, err := h.service.UpdateSettings(c.Request().Context(), user.TenantID, toTenantSettingsInput(req))
	if err != nil {
		if errors.Is(err, domain.ErrTenantNotFound) {
			return fail(c, http.StatusNotFound, "Tenant not found")
		}
		return err
	}
	return respond(c, http.StatusOK, "Tenant settings updated successfully", tenantResponse{Tenant: tenant})
}

// UpdateSubscription moves the tenant's billing sub-record (admin only).
//
// @Summary      Update tenant subscription
// @Tags         tenants
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      updateSubscriptionRequest  true  "Subscription fields"
// @Success      200   {object}  envelope
// @Failure      400   {object}  envelope
// @Router       /api/v1/tenants/current/subscription [put]
func (h *TenantHandler) UpdateSubscription(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}
	if user.TenantID == "" {
		return fail(c, http.StatusNotFound, "Tenant not found")
	}

	var req updateSubscriptionRequest
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	tenant, err := h.service.UpdateSubscription(c.Request().Context(), user.TenantID, ports.UpdateSubscriptionInput{
		Plan:         req.Plan,
		Status:       req.Status,
		BillingCycle: req.BillingCycle,
	})
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrTenantNotFound):
			return fail(c, http.StatusNotFound, "Tenant not found")
		case errors.Is(err, domain.ErrInvalidSubscription):
			return fail(c, http.StatusBadRequest, "Invalid subscription change")
		}
		return err
	}
	return respond(c, http.StatusOK, "Subscription updated successfully", subscriptionData{
		Subscription: tenant.Subscription,
		UpdatedAt:    tenant.UpdatedAt,
	})
}
