package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"taskhub/internal/auth"
	"taskhub/internal/model"
	"taskhub/internal/service"
)

// UserHandler bundles user CRUD endpoints.
type UserHandler struct {
	users service.UserService
	gate  *auth.Gate
}

// NewUserHandler creates a new user handler.
func NewUserHandler(users service.UserService, gate *auth.Gate) *UserHandler {
	return &UserHandler{users: users, gate: gate}
}

// Create godoc
// @Summary Create a user (admin only)
// @Tags users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body model.UserCreate true "User payload"
// @Success 201 {object} model.User
// @Failure 403 {object} errors.ErrorResponse
// @Failure 422 {object} errors.ErrorResponse
// @Router /users [post]
func (h *UserHandler) Create(c echo.Context) error {
	identity, err := Identity(c)
	if err != nil {
		return err
	}
	if err := h.gate.RequireRole(identity, model.RoleAdmin); err != nil {
		return err
	}

	var input model.UserCreate
	if err := c.Bind(&input); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&input); err != nil {
		return err
	}

	user, err := h.users.Create(c.Request().Context(), input)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, user)
}

// Get godoc
// @Summary Get user by id
// @Tags users
// @Produce json
// @Security BearerAuth
// @Param id path string true "User UUID"
// @Success 200 {object} model.User
// @Failure 404 {object} errors.ErrorResponse
// @Router /users/{id} [get]
func (h *UserHandler) Get(c echo.Context) error {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return err
	}
	user, err := h.users.GetByID(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, user)
}

// List godoc
// @Summary List users
// @Tags users
// @Produce json
// @Security BearerAuth
// @Param limit query int false "Page size (1-100)"
// @Param offset query int false "Row offset"
// @Param sort_order query string false "asc or desc"
// @Success 200 {object} pagination.Page[model.User]
// @Failure 422 {object} errors.ErrorResponse
// @Router /users [get]
func (h *UserHandler) List(c echo.Context) error {
	params, err := parsePagination(c)
	if err != nil {
		return err
	}
	page, err := h.users.List(c.Request().Context(), params)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, page)
}

// Update godoc
// @Summary Update a user (admin or self)
// @Tags users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "User UUID"
// @Param request body model.UserUpdate true "Fields to change"
// @Success 200 {object} model.User
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /users/{id} [patch]
func (h *UserHandler) Update(c echo.Context) error {
	identity, err := Identity(c)
	if err != nil {
		return err
	}
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return err
	}
	if err := h.gate.CanModifyUser(identity, id.String()); err != nil {
		return err
	}

	var input model.UserUpdate
	if err := c.Bind(&input); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&input); err != nil {
		return err
	}
	// changing roles stays an admin power even on your own account
	if input.Role != nil {
		if err := h.gate.RequireRole(identity, model.RoleAdmin); err != nil {
			return err
		}
	}

	user, err := h.users.Update(c.Request().Context(), id, input)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, user)
}

// Delete godoc
// @Summary Delete a user (admin only)
// @Tags users
// @Produce json
// @Security BearerAuth
// @Param id path string true "User UUID"
// @Success 204
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /users/{id} [delete]
func (h *UserHandler) Delete(c echo.Context) error {
	identity, err := Identity(c)
	if err != nil {
		return err
	}
	if err := h.gate.RequireRole(identity, model.RoleAdmin); err != nil {
		return err
	}
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return err
	}
	if err := h.users.Delete(c.Request().Context(), id); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
