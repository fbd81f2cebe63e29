package authsdk

import "time"

// ErrorResponse is the wire shape of an error body. Used by swagger docs
// and for unmarshaling; client code receives *APIError instead.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// User is an account as exposed over the API. Password hashes and MFA
// secrets never appear here.
type User struct {
	ID         string    `json:"id"`
	Email      string    `json:"email"`
	FirstName  string    `json:"firstName"`
	LastName   string    `json:"lastName"`
	MFAEnabled bool      `json:"mfaEnabled"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// RegisterRequest is the body of POST /v1/auth/register.
type RegisterRequest struct {
	Email     string `json:"email"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Password  string `json:"password"`
}

// LoginRequest is the body of POST /v1/auth/login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// MFAVerifyRequest is the body of POST /v1/auth/mfa/verify. Token holds
// either a TOTP code or a backup code; IsBackupCode says which, and the
// server verifies strictly against the named kind.
type MFAVerifyRequest struct {
	Email        string `json:"email"`
	Token        string `json:"token"`
	IsBackupCode bool   `json:"isBackupCode"`
}

// AuthResponse is the result of login or MFA verification. Exactly one of
// Token or RequiresMFA is meaningful: when RequiresMFA is set the password
// was accepted but no session exists yet.
type AuthResponse struct {
	Token       string `json:"token,omitempty"`
	User        *User  `json:"user,omitempty"`
	RequiresMFA bool   `json:"requiresMfa,omitempty"`
	Email       string `json:"email,omitempty"`
}

// MFASetupResponse carries a freshly generated pending TOTP secret. QRCode
// is a PNG data URI and may be empty if rendering failed; Secret and URL
// are always enough to enroll manually.
type MFASetupResponse struct {
	Secret string `json:"secret"`
	URL    string `json:"url"`
	QRCode string `json:"qrCode,omitempty"`
}

// MFAEnableResponse reports activation. Backup-code values are not
// included; fetch them with the backup-codes endpoint.
type MFAEnableResponse struct {
	Success          bool `json:"success"`
	BackupCodesCount int  `json:"backupCodesCount"`
}

// SuccessResponse is the generic acknowledgement body.
type SuccessResponse struct {
	Success bool `json:"success"`
}

// MFAStatusResponse is the body of GET /v1/mfa/status.
type MFAStatusResponse struct {
	MFAEnabled     bool `json:"mfaEnabled"`
	HasBackupCodes bool `json:"hasBackupCodes"`
}

// BackupCodesResponse carries plaintext backup codes. They are shown
// exactly once; the server stores only hashes.
type BackupCodesResponse struct {
	BackupCodes []string `json:"backupCodes"`
}

// UpdateProfileRequest is the body of PUT /v1/userinfo.
type UpdateProfileRequest struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

// ChangePasswordRequest is the body of PUT /v1/userinfo/password.
type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}

// HealthResponse is the body of the health endpoints.
type HealthResponse struct {
	Status  string        `json:"status"`
	Version string        `json:"version,omitempty"`
	Uptime  string        `json:"uptime,omitempty"`
	Checks  *HealthChecks `json:"checks,omitempty"`
}

// HealthChecks reports per-dependency readiness.
type HealthChecks struct {
	Database string `json:"database"`
}
