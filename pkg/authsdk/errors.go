package authsdk

import (
	"fmt"
	"net/http"

	"github.com/loftwire/depot/pkg/httpx"
)

// Stable error codes carried in the "error" field of error responses.
const (
	ErrorCodeInvalidRequest     = "invalid_request"
	ErrorCodeInvalidCredentials = "invalid_credentials"
	ErrorCodeInvalidToken       = "invalid_token"
	ErrorCodeInvalidBackupCode  = "invalid_backup_code"
	ErrorCodeUnauthorized       = "unauthorized"
	ErrorCodeEmailTaken         = "email_taken"
	ErrorCodeNotFound           = "not_found"
	ErrorCodeMFAAlreadyEnabled  = "mfa_already_enabled"
	ErrorCodeMFANotEnrolled     = "mfa_not_enrolled"
	ErrorCodeMFANotEnabled      = "mfa_not_enabled"
	ErrorCodeRateLimited        = "rate_limit_exceeded"
	ErrorCodeServerError        = "server_error"
)

// APIError is the error shape of every non-2xx response from the service.
// The server writes it; the SDK client parses it back, so a caller can
// errors.As their way to the code.
type APIError struct {
	// StatusCode is the HTTP status of the response. Not serialized.
	StatusCode int `json:"-"`

	// Code is the stable machine-readable error code.
	Code string `json:"error"`

	// Message is a human-readable description. Messages are deliberately
	// generic on authentication failures.
	Message string `json:"message"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// WriteError writes this error to an HTTP response.
func (e *APIError) WriteError(w http.ResponseWriter) {
	httpx.WriteError(w, e.StatusCode, e.Code, e.Message)
}

// Predefined errors used by the HTTP handlers.
var (
	ErrInvalidRequest = &APIError{
		StatusCode: http.StatusBadRequest,
		Code:       ErrorCodeInvalidRequest,
		Message:    "The request is malformed or missing required fields",
	}

	// ErrInvalidCredentials covers unknown email and wrong password alike.
	ErrInvalidCredentials = &APIError{
		StatusCode: http.StatusUnauthorized,
		Code:       ErrorCodeInvalidCredentials,
		Message:    "Invalid email or password",
	}

	// ErrInvalidToken covers wrong TOTP codes, codes for unenrolled
	// accounts, and bad session tokens alike.
	ErrInvalidToken = &APIError{
		StatusCode: http.StatusUnauthorized,
		Code:       ErrorCodeInvalidToken,
		Message:    "Invalid token",
	}

	ErrInvalidBackupCode = &APIError{
		StatusCode: http.StatusUnauthorized,
		Code:       ErrorCodeInvalidBackupCode,
		Message:    "Invalid backup code",
	}

	ErrUnauthorized = &APIError{
		StatusCode: http.StatusUnauthorized,
		Code:       ErrorCodeUnauthorized,
		Message:    "Unauthorized",
	}

	ErrEmailTaken = &APIError{
		StatusCode: http.StatusConflict,
		Code:       ErrorCodeEmailTaken,
		Message:    "An account with this email already exists",
	}

	ErrNotFound = &APIError{
		StatusCode: http.StatusNotFound,
		Code:       ErrorCodeNotFound,
		Message:    "Not found",
	}

	ErrMFAAlreadyEnabled = &APIError{
		StatusCode: http.StatusBadRequest,
		Code:       ErrorCodeMFAAlreadyEnabled,
		Message:    "MFA is already enabled for this account",
	}

	ErrMFANotEnrolled = &APIError{
		StatusCode: http.StatusBadRequest,
		Code:       ErrorCodeMFANotEnrolled,
		Message:    "MFA setup has not been started",
	}

	ErrMFANotEnabled = &APIError{
		StatusCode: http.StatusBadRequest,
		Code:       ErrorCodeMFANotEnabled,
		Message:    "MFA is not enabled for this account",
	}

	ErrServerError = &APIError{
		StatusCode: http.StatusInternalServerError,
		Code:       ErrorCodeServerError,
		Message:    "Internal server error",
	}
)
