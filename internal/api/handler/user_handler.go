package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/saasdash/dashboard-api/internal/core/domain"
	"github.com/saasdash/dashboard-api/internal/core/ports"
)

// UserHandler exposes profile/settings CRUD and the admin user endpoints.
type UserHandler struct {
	service ports.UserService
}

func NewUserHandler(service ports.UserService) *UserHandler {
	return &UserHandler{service: service}
}

// GetProfile returns the caller's own record.
//
// @Summary      Get own profile
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  envelope
// @Router       /api/v1/users/profile [get]
func (h *UserHandler) GetProfile(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}
	// Re-fetch rather than echoing the context user so the response reflects
	// the stored record, not the snapshot the auth middleware loaded.
	profile, err := h.service.GetProfile(c.Request().Context(), user.ID)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "", userData{User: profile})
}

// UpdateProfile updates the caller's own record.
//
// @Summary      Update own profile
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      updateProfileRequest  true  "Profile fields"
// @Success      200   {object}  envelope
// @Failure      400   {object}  envelope
// @Router       /api/v1/users/profile [put]
func (h *UserHandler) UpdateProfile(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	var req updateProfileRequest
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	updated, err := h.service.UpdateProfile(c.Request().Context(), user.ID, toProfileInput(req))
	if err != nil {
		if errors.Is(err, domain.ErrUserExists) {
			return fail(c, http.StatusBadRequest, "User already exists with this email")
		}
		return err
	}
	return respond(c, http.StatusOK, "Profile updated successfully", userData{User: updated})
}

// DeleteProfile soft-disables the caller's own account. The record survives;
// every later authenticated request is rejected until an admin reactivates it.
//
// @Summary      Deactivate own account
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  envelope
// @Router       /api/v1/users/profile [delete]
func (h *UserHandler) DeleteProfile(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}
	if err := h.service.DeactivateProfile(c.Request().Context(), user.ID); err != nil {
		return err
	}
	return respond(c, http.StatusOK, "Account deactivated successfully", nil)
}

// GetSettings returns the caller's preference sub-record.
//
// @Summary      Get own settings
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  envelope
// @Router       /api/v1/users/settings [get]
func (h *UserHandler) GetSettings(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}
	settings, err := h.service.GetSettings(c.Request().Context(), user.ID)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "", settingsData{Settings: settings})
}

// UpdateSettings overwrites the caller's preference sub-record.
//
// @Summary      Update own settings
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      updateUserSettingsRequest  true  "Settings fields"
// @Success      200   {object}  envelope
// @Router       /api/v1/users/settings [put]
func (h *UserHandler) UpdateSettings(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	var req updateUserSettingsRequest
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	settings := user.Settings
	if req.Theme != nil {
		settings.Theme = *req.Theme
	}
	if req.Language != nil {
		settings.Language = *req.Language
	}
	if req.Notifications != nil {
		settings.Notifications = *req.Notifications
	}

	updated, err := h.service.UpdateSettings(c.Request().Context(), user.ID, settings)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "Settings updated successfully", settingsData{Settings: updated})
}

// ListUsers returns a page of all accounts (admin only).
//
// @Summary      List all users
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        page   query     int  false  "Page number"
// @Param        limit  query     int  false  "Page size"
// @Success      200    {object}  envelope
// @Failure      403    {object}  envelope
// @Router       /api/v1/users/all [get]
func (h *UserHandler) ListUsers(c echo.Context) error {
	page, _ := strconv.Atoi(c.QueryParam("page"))
	limit, _ := strconv.Atoi(c.QueryParam("limit"))

	result, err := h.service.ListUsers(c.Request().Context(), page, limit)
	if err != nil {
		return err
	}

	return respond(c, http.StatusOK, "", userListData{
		Users: result.Users,
		Pagination: paginationData{
			Total:      result.Total,
			Page:       result.Page,
			Limit:      result.Limit,
			TotalPages: result.TotalPages,
		},
	})
}

// GetUser returns one account by identifier (admin only).
//
// @Summary      Get a user by id
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "User id"
// @Success      200  {object}  envelope
// @Failure      404  {object}  envelope
// @Router       /api/v1/users/{id} [get]
func (h *UserHandler) GetUser(c echo.Context) error {
	user, err := h.service.GetUser(c.Request().Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return fail(c, http.StatusNotFound, "User not found")
		}
		return err
	}
	return respond(c, http.StatusOK, "", userData{User: user})
}

// UpdateUser mutates one account by identifier (admin only).
//
// @Summary      Update a user by id
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string                  true  "User id"
// @Param        body  body      adminUpdateUserRequest  true  "User fields"
// @Success      200   {object}  envelope
// @Failure      404   {object}  envelope
// @Router       /api/v1/users/{id} [put]
func (h *UserHandler) UpdateUser(c echo.Context) error {
	var req adminUpdateUserRequest
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	updated, err := h.service.UpdateUser(c.Request().Context(), c.Param("id"), ports.UpdateUserInput{
		UpdateProfileInput: toProfileInput(req.updateProfileRequest),
		Role:               req.Role,
		IsActive:           req.IsActive,
	})
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return fail(c, http.StatusNotFound, "User not found")
		}
		return err
	}
	return respond(c, http.StatusOK, "User updated successfully", userData{User: updated})
}

// DeleteUser removes an account entirely (admin only).
//
// @Summary      Delete a user by id
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "User id"
// @Success      200  {object}  envelope
// @Failure      404  {object}  envelope
// @Router       /api/v1/users/{id} [delete]
func (h *UserHandler) DeleteUser(c echo.Context) error {
	if err := h.service.DeleteUser(c.Request().Context(), c.Param("id")); err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return fail(c, http.StatusNotFound, "User not found")
		}
		return err
	}
	return respond(c, http.StatusOK, "User deleted successfully", nil)
}

func toProfileInput(req updateProfileRequest) ports.UpdateProfileInput {
	return ports.UpdateProfileInput{
		Fullname: req.Fullname,
		Email:    req.Email,
		Company:  req.Company,
		Phone:    req.Phone,
		Avatar:   req.Avatar,
	}
}
