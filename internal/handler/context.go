package handler

import (
	"strconv"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"taskhub/internal/auth"
	"taskhub/internal/errors"
	"taskhub/internal/model"
	"taskhub/internal/pagination"
)

const (
	// ClaimsKey is where the jwt middleware stores decoded token claims.
	ClaimsKey = "user"
	// IdentityKey is where the identity middleware stores the resolved user.
	IdentityKey = "identity"
)

// Identity returns the live user record resolved by the gate middleware.
func Identity(c echo.Context) (*model.User, error) {
	user, ok := c.Get(IdentityKey).(*model.User)
	if !ok {
		return nil, errors.NewAuthentication("")
	}
	return user, nil
}

// TokenClaims returns the decoded token claims for the current request.
func TokenClaims(c echo.Context) (*auth.Claims, error) {
	claims, ok := c.Get(ClaimsKey).(*auth.Claims)
	if !ok {
		return nil, errors.NewAuthentication("")
	}
	return claims, nil
}

func parseUUIDParam(c echo.Context, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		return uuid.Nil, errors.NewValidation("invalid identifier", name)
	}
	return id, nil
}

// parsePagination reads limit/offset/sort_order query parameters, applying
// the engine's defaults for the ones not supplied.
func parsePagination(c echo.Context) (pagination.Params, error) {
	defaults := pagination.DefaultParams()

	limit := defaults.Limit
	if raw := c.QueryParam("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			return pagination.Params{}, errors.NewValidation("limit must be an integer", "limit")
		}
		limit = parsed
	}

	offset := defaults.Offset
	if raw := c.QueryParam("offset"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			return pagination.Params{}, errors.NewValidation("offset must be an integer", "offset")
		}
		offset = parsed
	}

	return pagination.NewParams(limit, offset, pagination.SortOrder(c.QueryParam("sort_order")))
}
