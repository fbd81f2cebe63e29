package authsdk

import (
	"context"
	"net/http"
)

// Session is an authenticated view of the API, bound to one session token.
// Tokens are stateless bearer credentials; there is no refresh, a session
// simply stops working at expiry.
type Session struct {
	client *Client
	token  string
}

// Token returns the raw session token, e.g. for persisting.
func (s *Session) Token() string {
	return s.token
}

// UserInfo fetches the authenticated account's profile.
func (s *Session) UserInfo(ctx context.Context) (*User, error) {
	var user User
	if err := s.client.do(ctx, http.MethodGet, "/v1/userinfo", nil, s.token, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// UpdateProfile changes the account's display names.
func (s *Session) UpdateProfile(ctx context.Context, firstName, lastName string) (*User, error) {
	req := UpdateProfileRequest{FirstName: firstName, LastName: lastName}
	var user User
	if err := s.client.do(ctx, http.MethodPut, "/v1/userinfo", req, s.token, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// ChangePassword swaps the account password after verifying the current one.
func (s *Session) ChangePassword(ctx context.Context, current, next string) error {
	req := ChangePasswordRequest{CurrentPassword: current, NewPassword: next}
	return s.client.do(ctx, http.MethodPut, "/v1/userinfo/password", req, s.token, nil)
}

// MFASetup starts TOTP enrollment and returns the pending secret.
func (s *Session) MFASetup(ctx context.Context) (*MFASetupResponse, error) {
	var resp MFASetupResponse
	if err := s.client.do(ctx, http.MethodPost, "/v1/mfa/setup", nil, s.token, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// MFAEnable activates MFA with a TOTP code generated from the pending
// secret. Only the backup-code count comes back; fetch the codes with
// RegenerateBackupCodes.
func (s *Session) MFAEnable(ctx context.Context, code string) (*MFAEnableResponse, error) {
	req := map[string]string{"token": code}
	var resp MFAEnableResponse
	if err := s.client.do(ctx, http.MethodPost, "/v1/mfa/enable", req, s.token, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// MFADisable turns MFA off and destroys the secret and backup codes.
func (s *Session) MFADisable(ctx context.Context) error {
	return s.client.do(ctx, http.MethodPost, "/v1/mfa/disable", nil, s.token, nil)
}

// MFAStatus reports whether MFA is enabled and backup codes remain.
func (s *Session) MFAStatus(ctx context.Context) (*MFAStatusResponse, error) {
	var resp MFAStatusResponse
	if err := s.client.do(ctx, http.MethodGet, "/v1/mfa/status", nil, s.token, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// RegenerateBackupCodes replaces the backup-code set and returns the new
// plaintext codes. Previous codes stop working immediately.
func (s *Session) RegenerateBackupCodes(ctx context.Context) (*BackupCodesResponse, error) {
	var resp BackupCodesResponse
	if err := s.client.do(ctx, http.MethodPost, "/v1/mfa/backup-codes", nil, s.token, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}
