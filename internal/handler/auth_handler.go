package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"taskhub/internal/auth"
	"taskhub/internal/model"
	"taskhub/internal/service"
)

// AuthHandler handles authentication endpoints.
type AuthHandler struct {
	users service.UserService
	gate  *auth.Gate
	jwt   *auth.JWTService
}

// NewAuthHandler creates a new auth handler.
func NewAuthHandler(users service.UserService, gate *auth.Gate, jwt *auth.JWTService) *AuthHandler {
	return &AuthHandler{users: users, gate: gate, jwt: jwt}
}

// LoginRequest represents a user login request.
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// TokenResponse represents an issued access token.
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// Register godoc
// @Summary Register a new user
// @Tags auth
// @Accept json
// @Produce json
// @Param request body model.UserCreate true "Registration data"
// @Success 201 {object} model.User
// @Failure 422 {object} errors.ErrorResponse
// @Router /auth/register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var input model.UserCreate
	if err := c.Bind(&input); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	// self-registration never grants admin; only POST /users can
	input.Role = model.RoleUser
	if err := c.Validate(&input); err != nil {
		return err
	}

	user, err := h.users.Create(c.Request().Context(), input)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, user)
}

// Login godoc
// @Summary Login and receive an access token
// @Tags auth
// @Accept json
// @Produce json
// @Param request body LoginRequest true "Login credentials"
// @Success 200 {object} TokenResponse
// @Failure 401 {object} errors.ErrorResponse
// @Router /auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	user, err := h.gate.Login(c.Request().Context(), req.Username, req.Password)
	if err != nil {
		return err
	}

	token, tokenType, err := h.jwt.IssueToken(user)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, TokenResponse{AccessToken: token, TokenType: tokenType})
}

// Logout godoc
// @Summary Revoke the presented access token
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]string
// @Failure 401 {object} errors.ErrorResponse
// @Router /auth/logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	claims, err := TokenClaims(c)
	if err != nil {
		return err
	}
	if err := h.gate.Logout(c.Request().Context(), claims); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "logged out"})
}

// Me godoc
// @Summary Return the authenticated user
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} model.User
// @Failure 401 {object} errors.ErrorResponse
// @Router /me [get]
func (h *AuthHandler) Me(c echo.Context) error {
	identity, err := Identity(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, identity)
}
