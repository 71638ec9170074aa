package nestsdk

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/nestnote/nestnote/pkg/httpx"
)

// Error codes shared between the service handlers and SDK consumers.
const (
	ErrorCodeInvalidRequest        = "invalid_request"
	ErrorCodeInvalidCode           = "invalid_code"
	ErrorCodeNotFound              = "not_found"
	ErrorCodeForbidden             = "forbidden"
	ErrorCodeUnauthorized          = "unauthorized"
	ErrorCodeInviteExpired         = "invite_expired"
	ErrorCodeInviteAlreadyAccepted = "invite_already_accepted"
	ErrorCodeInviteRevoked         = "invite_revoked"
	ErrorCodeInviteFinalized       = "invite_finalized"
	ErrorCodeSelectionConflict     = "selection_conflict"
	ErrorCodeServerError           = "server_error"
)

// APIError is the error shape of every non-2xx JSON response. It implements
// the error interface so it can be used both by the server (to write HTTP
// responses) and by the SDK client (to represent errors).
type APIError struct {
	// StatusCode is the HTTP status code for this error
	StatusCode int `json:"-"`

	// Code is the machine-readable error code
	Code string `json:"code"`

	// Message is a human-readable description of the error
	Message string `json:"message"`
}

// Error implements the error interface.
func (e *APIError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// WriteError writes this APIError to an HTTP response writer.
func (e *APIError) WriteError(w http.ResponseWriter) {
	httpx.NoCache(w)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(e.StatusCode)
	_ = json.NewEncoder(w).Encode(ErrorResponse{
		Code:    e.Code,
		Message: e.Message,
	})
}

var (
	// ErrInvalidRequest is returned when the request body or parameters are
	// malformed.
	ErrInvalidRequest = &APIError{
		StatusCode: http.StatusBadRequest,
		Code:       ErrorCodeInvalidRequest,
		Message:    "the request is malformed or missing required parameters",
	}

	// ErrInvalidCode is returned when a join code is not a recognizable
	// 6-digit invite code.
	ErrInvalidCode = &APIError{
		StatusCode: http.StatusBadRequest,
		Code:       ErrorCodeInvalidCode,
		Message:    "the invite code is not valid",
	}

	// ErrNotFound is returned when the addressed resource does not exist.
	ErrNotFound = &APIError{
		StatusCode: http.StatusNotFound,
		Code:       ErrorCodeNotFound,
		Message:    "the requested resource was not found",
	}

	// ErrForbidden is returned when the resource belongs to another account.
	ErrForbidden = &APIError{
		StatusCode: http.StatusForbidden,
		Code:       ErrorCodeForbidden,
		Message:    "the requested resource belongs to another account",
	}

	// ErrInviteExpired is returned when the invite's expiry has passed.
	ErrInviteExpired = &APIError{
		StatusCode: http.StatusConflict,
		Code:       ErrorCodeInviteExpired,
		Message:    "the invite has expired",
	}

	// ErrInviteAlreadyAccepted is returned when another sitter accepted first.
	ErrInviteAlreadyAccepted = &APIError{
		StatusCode: http.StatusConflict,
		Code:       ErrorCodeInviteAlreadyAccepted,
		Message:    "the invite has already been accepted",
	}

	// ErrInviteRevoked is returned for declined or cancelled invites.
	ErrInviteRevoked = &APIError{
		StatusCode: http.StatusConflict,
		Code:       ErrorCodeInviteRevoked,
		Message:    "the invite is no longer active",
	}

	// ErrInviteFinalized is returned when mutating an invite in a terminal
	// state.
	ErrInviteFinalized = &APIError{
		StatusCode: http.StatusConflict,
		Code:       ErrorCodeInviteFinalized,
		Message:    "the invite has already been finalized",
	}

	// ErrSelectionConflict is returned for selection calls made out of order.
	ErrSelectionConflict = &APIError{
		StatusCode: http.StatusConflict,
		Code:       ErrorCodeSelectionConflict,
		Message:    "the selection state does not allow this operation",
	}

	// ErrServerError is the catch-all for unexpected failures.
	ErrServerError = &APIError{
		StatusCode: http.StatusInternalServerError,
		Code:       ErrorCodeServerError,
		Message:    "an unexpected error occurred",
	}
)
