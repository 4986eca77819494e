package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewNotFound(t *testing.T) {
	tests := []struct {
		name        string
		entityType  string
		identifier  string
		wantMessage string
	}{
		{
			name:        "without identifier",
			entityType:  "User",
			wantMessage: "User not found",
		},
		{
			name:        "with identifier",
			entityType:  "Task",
			identifier:  "8a6e0804-2bd0-4672-b79d-d97027f9071a",
			wantMessage: "Task not found: 8a6e0804-2bd0-4672-b79d-d97027f9071a",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := NewNotFound(tt.entityType, tt.identifier)

			assert.Equal(t, tt.wantMessage, err.Error())
			assert.Equal(t, tt.entityType, err.EntityType())
			assert.Equal(t, tt.identifier, err.Identifier())
			assert.Equal(t, tt.entityType, err.Context["entity_type"])
		})
	}
}

func TestNewValidation_FieldMirroredIntoContext(t *testing.T) {
	err := NewValidation("priority must be between 1 and 5", "priority")

	assert.Equal(t, "priority", err.Field())
	assert.Equal(t, "priority", err.Context["field"])

	noField := NewValidation("bad input", "")
	assert.Empty(t, noField.Field())
	_, ok := noField.Context["field"]
	assert.False(t, ok)
}

func TestNewAuthentication_DefaultMessage(t *testing.T) {
	assert.Equal(t, "authentication required", NewAuthentication("").Error())
	assert.Equal(t, "token expired", NewAuthentication("token expired").Error())
}

func TestNewAuthorization_CarriesRequiredRole(t *testing.T) {
	err := NewAuthorization("admin")

	assert.Equal(t, "admin", err.RequiredRole())
	assert.Contains(t, err.Error(), "admin")
}

func TestAllKindsCatchableAsBase(t *testing.T) {
	kinds := []error{
		NewNotFound("User", ""),
		NewValidation("bad", "field"),
		NewAuthentication(""),
		NewAuthorization("admin"),
	}

	for _, err := range kinds {
		// wrap the way services do, then catch as the base kind
		wrapped := fmt.Errorf("handling request: %w", err)

		var de *Error
		assert.True(t, stderrors.As(wrapped, &de), "expected %v to be catchable as *Error", err)
	}
}

func TestKindPredicates(t *testing.T) {
	assert.True(t, IsNotFound(NewNotFound("Task", "x")))
	assert.True(t, IsValidation(NewValidation("bad", "")))
	assert.True(t, IsAuthentication(NewAuthentication("")))
	assert.True(t, IsAuthorization(NewAuthorization("admin")))

	assert.False(t, IsNotFound(NewValidation("bad", "")))
	assert.False(t, IsAuthorization(stderrors.New("plain")))
}

func TestMapToHTTP(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{"not found", NewNotFound("User", ""), http.StatusNotFound, "NOT_FOUND"},
		{"validation", NewValidation("bad", ""), http.StatusUnprocessableEntity, "VALIDATION_ERROR"},
		{"authentication", NewAuthentication(""), http.StatusUnauthorized, "AUTHENTICATION_ERROR"},
		{"authorization", NewAuthorization("admin"), http.StatusForbidden, "AUTHORIZATION_ERROR"},
		{"unknown", stderrors.New("boom"), http.StatusInternalServerError, "INTERNAL_ERROR"},
		{"wrapped not found", fmt.Errorf("get task: %w", NewNotFound("Task", "")), http.StatusNotFound, "NOT_FOUND"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			httpErr := MapToHTTP(tt.err)

			assert.Equal(t, tt.wantStatus, httpErr.StatusCode)
			assert.Equal(t, tt.wantCode, httpErr.Code)
		})
	}
}
