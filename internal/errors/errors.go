package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind discriminates domain error categories.
type Kind int

const (
	// KindNotFound signals a missing entity.
	KindNotFound Kind = iota + 1
	// KindValidation signals invalid input or a broken domain invariant.
	KindValidation
	// KindAuthentication signals missing or invalid credentials.
	KindAuthentication
	// KindAuthorization signals an insufficient role.
	KindAuthorization
)

// Error is the base domain error. Every kind shares this type, so a caller
// filtering with errors.As on *Error catches all of them and can branch on Kind.
type Error struct {
	Kind    Kind
	Message string
	Context map[string]any
}

func (e *Error) Error() string {
	return e.Message
}

// NewNotFound builds a NotFound error. The identifier is optional; when given
// it is included verbatim in the message.
func NewNotFound(entityType, identifier string) *Error {
	msg := fmt.Sprintf("%s not found", entityType)
	ctx := map[string]any{"entity_type": entityType}
	if identifier != "" {
		msg = fmt.Sprintf("%s not found: %s", entityType, identifier)
		ctx["identifier"] = identifier
	}
	return &Error{Kind: KindNotFound, Message: msg, Context: ctx}
}

// NewValidation builds a Validation error. The field is optional; when given
// it is mirrored into the context under "field".
func NewValidation(message, field string) *Error {
	ctx := map[string]any{}
	if field != "" {
		ctx["field"] = field
	}
	return &Error{Kind: KindValidation, Message: message, Context: ctx}
}

// NewAuthentication builds an Authentication error with a default message
// when none is given.
func NewAuthentication(message string) *Error {
	if message == "" {
		message = "authentication required"
	}
	return &Error{Kind: KindAuthentication, Message: message, Context: map[string]any{}}
}

// NewAuthorization builds an Authorization error carrying the role the
// operation requires.
func NewAuthorization(requiredRole string) *Error {
	return &Error{
		Kind:    KindAuthorization,
		Message: fmt.Sprintf("operation requires role %q", requiredRole),
		Context: map[string]any{"required_role": requiredRole},
	}
}

// EntityType returns the entity_type context entry, if any.
func (e *Error) EntityType() string { return e.contextString("entity_type") }

// Identifier returns the identifier context entry, if any.
func (e *Error) Identifier() string { return e.contextString("identifier") }

// Field returns the field context entry, if any.
func (e *Error) Field() string { return e.contextString("field") }

// RequiredRole returns the required_role context entry, if any.
func (e *Error) RequiredRole() string { return e.contextString("required_role") }

func (e *Error) contextString(key string) string {
	if v, ok := e.Context[key].(string); ok {
		return v
	}
	return ""
}

func is(err error, kind Kind) bool {
	var de *Error
	return errors.As(err, &de) && de.Kind == kind
}

// IsNotFound reports whether err is a NotFound domain error.
func IsNotFound(err error) bool { return is(err, KindNotFound) }

// IsValidation reports whether err is a Validation domain error.
func IsValidation(err error) bool { return is(err, KindValidation) }

// IsAuthentication reports whether err is an Authentication domain error.
func IsAuthentication(err error) bool { return is(err, KindAuthentication) }

// IsAuthorization reports whether err is an Authorization domain error.
func IsAuthorization(err error) bool { return is(err, KindAuthorization) }

// ErrorResponse represents a standardized error response.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// HTTPError represents an HTTP error with status code.
type HTTPError struct {
	StatusCode int
	Message    string
	Code       string
}

func (e *HTTPError) Error() string {
	return e.Message
}

// NewHTTPError creates a new HTTP error.
func NewHTTPError(statusCode int, message, code string) *HTTPError {
	return &HTTPError{
		StatusCode: statusCode,
		Message:    message,
		Code:       code,
	}
}

// ToErrorResponse converts an HTTPError to ErrorResponse.
func (e *HTTPError) ToErrorResponse() ErrorResponse {
	return ErrorResponse{
		Error: e.Message,
		Code:  e.Code,
	}
}

// MapToHTTP maps domain errors to HTTP errors for the transport layer.
func MapToHTTP(err error) *HTTPError {
	var de *Error
	if !errors.As(err, &de) {
		return NewHTTPError(http.StatusInternalServerError, "internal server error", "INTERNAL_ERROR")
	}
	switch de.Kind {
	case KindNotFound:
		return NewHTTPError(http.StatusNotFound, de.Message, "NOT_FOUND")
	case KindValidation:
		return NewHTTPError(http.StatusUnprocessableEntity, de.Message, "VALIDATION_ERROR")
	case KindAuthentication:
		return NewHTTPError(http.StatusUnauthorized, de.Message, "AUTHENTICATION_ERROR")
	case KindAuthorization:
		return NewHTTPError(http.StatusForbidden, de.Message, "AUTHORIZATION_ERROR")
	default:
		return NewHTTPError(http.StatusInternalServerError, "internal server error", "INTERNAL_ERROR")
	}
}
