package accountsdk

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/harborlane/tenantd/pkg/httpx"
)

// ============================================================================
// Error Codes
// ============================================================================

const (
	ErrorCodeInvalidRequest         = "invalid_request"
	ErrorCodeInvalidCredentials     = "invalid_credentials"
	ErrorCodeInvalidToken           = "invalid_token"
	ErrorCodeInvalidTokenFormat     = "invalid_token_format"
	ErrorCodeUserNotFoundOrInactive = "user_not_found_or_inactive"
	ErrorCodeForbidden              = "forbidden"
	ErrorCodeNotFound               = "not_found"
	ErrorCodeConflict               = "conflict"
	ErrorCodeServerError            = "server_error"
)

// ============================================================================
// APIError
// ============================================================================

// APIError is the wire error shape for every non-2xx response. It implements
// the error interface and is shared by the server (to write responses) and
// the SDK client (to represent them).
type APIError struct {
	// StatusCode is the HTTP status code for this error
	StatusCode int `json:"-"`

	// Code is the machine-readable error code (e.g. "invalid_credentials")
	Code string `json:"error"`

	// Description is a human-readable description of the error
	Description string `json:"error_description"`
}

// Error implements the error interface.
func (e *APIError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Description)
}

// WriteError writes this APIError to an HTTP response writer.
func (e *APIError) WriteError(w http.ResponseWriter) {
	httpx.NoCache(w)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(e.StatusCode)
	_ = json.NewEncoder(w).Encode(map[string]string{
		"error":             e.Code,
		"error_description": e.Description,
	})
}

// WithDescription returns a copy of the error carrying a specific description.
func (e *APIError) WithDescription(desc string) *APIError {
	clone := *e
	clone.Description = desc
	return &clone
}

// ============================================================================
// Predefined errors
// ============================================================================

var (
	// ErrInvalidRequest is returned when the request body or parameters are
	// malformed or missing.
	ErrInvalidRequest = &APIError{
		StatusCode:  http.StatusBadRequest,
		Code:        ErrorCodeInvalidRequest,
		Description: "the request is malformed or missing required parameters",
	}

	// ErrInvalidContentType is returned when the request body is not JSON.
	ErrInvalidContentType = &APIError{
		StatusCode:  http.StatusBadRequest,
		Code:        ErrorCodeInvalidRequest,
		Description: "content type must be application/json",
	}

	// ErrInvalidCredentials is returned for every login failure. The server
	// deliberately does not distinguish unknown tenants, unknown emails,
	// disabled accounts and wrong passwords.
	ErrInvalidCredentials = &APIError{
		StatusCode:  http.StatusUnauthorized,
		Code:        ErrorCodeInvalidCredentials,
		Description: "invalid credentials",
	}

	// ErrInvalidToken is returned when a token fails signature or expiry
	// checks.
	ErrInvalidToken = &APIError{
		StatusCode:  http.StatusUnauthorized,
		Code:        ErrorCodeInvalidToken,
		Description: "the token is invalid or expired",
	}

	// ErrInvalidTokenFormat is returned when a token verifies but its
	// subject is not a well-formed identity.
	ErrInvalidTokenFormat = &APIError{
		StatusCode:  http.StatusUnauthorized,
		Code:        ErrorCodeInvalidTokenFormat,
		Description: "the token subject is malformed",
	}

	// ErrUserNotFoundOrInactive is returned on refresh when the token's
	// account no longer exists or has been disabled.
	ErrUserNotFoundOrInactive = &APIError{
		StatusCode:  http.StatusUnauthorized,
		Code:        ErrorCodeUserNotFoundOrInactive,
		Description: "user not found or inactive",
	}

	// ErrForbidden is returned when the caller's role or tenant does not
	// permit the operation.
	ErrForbidden = &APIError{
		StatusCode:  http.StatusForbidden,
		Code:        ErrorCodeForbidden,
		Description: "insufficient permissions",
	}

	// ErrNotFound is returned when the requested resource does not exist.
	ErrNotFound = &APIError{
		StatusCode:  http.StatusNotFound,
		Code:        ErrorCodeNotFound,
		Description: "resource not found",
	}

	// ErrConflict is returned when a create collides with an existing
	// resource, e.g. a duplicate email within a tenant.
	ErrConflict = &APIError{
		StatusCode:  http.StatusConflict,
		Code:        ErrorCodeConflict,
		Description: "resource already exists",
	}

	// ErrServerError is the catch-all for unexpected failures.
	ErrServerError = &APIError{
		StatusCode:  http.StatusInternalServerError,
		Code:        ErrorCodeServerError,
		Description: "internal server error",
	}
)
