package auth_test

import (
	"errors"
	"testing"

	"github.com/loftwire/depot/pkg/authsdk"
	"github.com/stretchr/testify/require"
)

// TestMFAEnrollmentAndAuthentication walks the full enrollment flow and
// then logs in with both factors.
func TestMFAEnrollmentAndAuthentication(t *testing.T) {
	baseURL, cleanup := setupAuthContainer(t)
	defer cleanup()

	client := authsdk.NewClient(baseURL)
	session := registerAndLogin(t, client, "mfa@example.com")

	secret, backupCodes := enrollMFA(t, session)
	t.Logf("MFA enrolled, received %d backup codes", len(backupCodes))

	status, err := session.MFAStatus(t.Context())
	require.NoError(t, err)
	require.True(t, status.MFAEnabled)
	require.True(t, status.HasBackupCodes)

	// Password alone now yields a challenge, never a token.
	resp, mfaSession, err := client.Login(t.Context(), "mfa@example.com", testPassword)
	require.NoError(t, err)
	require.True(t, resp.RequiresMFA)
	require.Equal(t, "mfa@example.com", resp.Email)
	require.Empty(t, resp.Token)
	require.Nil(t, mfaSession)

	// Complete with a TOTP code.
	resp, totpSession, err := client.VerifyMFA(t.Context(), authsdk.MFAVerifyRequest{
		Email: "mfa@example.com",
		Token: currentTOTPCode(t, secret),
	})
	require.NoError(t, err)
	require.NotEmpty(t, resp.Token)

	info, err := totpSession.UserInfo(t.Context())
	require.NoError(t, err)
	require.True(t, info.MFAEnabled)

	// Complete with a backup code instead.
	resp, backupSession, err := client.VerifyMFA(t.Context(), authsdk.MFAVerifyRequest{
		Email:        "mfa@example.com",
		Token:        backupCodes[0],
		IsBackupCode: true,
	})
	require.NoError(t, err)
	require.NotEmpty(t, resp.Token)

	_, err = backupSession.UserInfo(t.Context())
	require.NoError(t, err)

	// The consumed backup code is burned.
	_, _, err = client.VerifyMFA(t.Context(), authsdk.MFAVerifyRequest{
		Email:        "mfa@example.com",
		Token:        backupCodes[0],
		IsBackupCode: true,
	})
	var apiErr *authsdk.APIError
	require.True(t, errors.As(err, &apiErr))
	require.Equal(t, authsdk.ErrorCodeInvalidBackupCode, apiErr.Code)

	t.Logf("Backup code reuse correctly rejected")
}

// TestMFAVerifyRejectsWrongCodes covers the failure modes of the verify
// endpoint.
func TestMFAVerifyRejectsWrongCodes(t *testing.T) {
	baseURL, cleanup := setupAuthContainer(t)
	defer cleanup()

	client := authsdk.NewClient(baseURL)
	session := registerAndLogin(t, client, "mfa2@example.com")
	enrollMFA(t, session)

	var apiErr *authsdk.APIError

	// Wrong TOTP code.
	_, _, err := client.VerifyMFA(t.Context(), authsdk.MFAVerifyRequest{
		Email: "mfa2@example.com",
		Token: "000000",
	})
	require.True(t, errors.As(err, &apiErr))
	require.Equal(t, authsdk.ErrorCodeInvalidToken, apiErr.Code)

	// An account without MFA gets the same answer as a wrong code.
	registerAndLogin(t, client, "nomfa@example.com")
	_, _, err = client.VerifyMFA(t.Context(), authsdk.MFAVerifyRequest{
		Email: "nomfa@example.com",
		Token: "123456",
	})
	require.True(t, errors.As(err, &apiErr))
	require.Equal(t, authsdk.ErrorCodeInvalidToken, apiErr.Code)

	// So does an account that doesn't exist.
	_, _, err = client.VerifyMFA(t.Context(), authsdk.MFAVerifyRequest{
		Email: "ghost@example.com",
		Token: "123456",
	})
	require.True(t, errors.As(err, &apiErr))
	require.Equal(t, authsdk.ErrorCodeInvalidToken, apiErr.Code)
}

// TestMFADisable verifies disable clears everything and re-enrollment works.
func TestMFADisable(t *testing.T) {
	baseURL, cleanup := setupAuthContainer(t)
	defer cleanup()

	client := authsdk.NewClient(baseURL)
	session := registerAndLogin(t, client, "mfa3@example.com")
	_, backupCodes := enrollMFA(t, session)

	require.NoError(t, session.MFADisable(t.Context()))

	status, err := session.MFAStatus(t.Context())
	require.NoError(t, err)
	require.False(t, status.MFAEnabled)
	require.False(t, status.HasBackupCodes)

	// Single-factor login again.
	resp, _, err := client.Login(t.Context(), "mfa3@example.com", testPassword)
	require.NoError(t, err)
	require.False(t, resp.RequiresMFA)
	require.NotEmpty(t, resp.Token)

	// Old backup codes are gone with the enrollment.
	var apiErr *authsdk.APIError
	_, _, err = client.VerifyMFA(t.Context(), authsdk.MFAVerifyRequest{
		Email:        "mfa3@example.com",
		Token:        backupCodes[1],
		IsBackupCode: true,
	})
	require.True(t, errors.As(err, &apiErr))
	require.Equal(t, authsdk.ErrorCodeInvalidBackupCode, apiErr.Code)

	// Fresh enrollment issues a new secret.
	secret, _ := enrollMFA(t, session)
	require.NotEmpty(t, secret)
}

// TestMFARegenerateBackupCodes verifies full-set replacement.
func TestMFARegenerateBackupCodes(t *testing.T) {
	baseURL, cleanup := setupAuthContainer(t)
	defer cleanup()

	client := authsdk.NewClient(baseURL)
	session := registerAndLogin(t, client, "mfa4@example.com")
	_, first := enrollMFA(t, session)

	second, err := session.RegenerateBackupCodes(t.Context())
	require.NoError(t, err)
	require.Len(t, second.BackupCodes, 10)
	require.NotEqual(t, first, second.BackupCodes)

	// A code from the replaced set no longer works.
	var apiErr *authsdk.APIError
	_, _, err = client.VerifyMFA(t.Context(), authsdk.MFAVerifyRequest{
		Email:        "mfa4@example.com",
		Token:        first[0],
		IsBackupCode: true,
	})
	require.True(t, errors.As(err, &apiErr))
	require.Equal(t, authsdk.ErrorCodeInvalidBackupCode, apiErr.Code)

	// One from the fresh set does.
	_, _, err = client.VerifyMFA(t.Context(), authsdk.MFAVerifyRequest{
		Email:        "mfa4@example.com",
		Token:        second.BackupCodes[0],
		IsBackupCode: true,
	})
	require.NoError(t, err)
}

// TestMFASetupConflicts exercises the enrollment edge cases.
func TestMFASetupConflicts(t *testing.T) {
	baseURL, cleanup := setupAuthContainer(t)
	defer cleanup()

	client := authsdk.NewClient(baseURL)
	session := registerAndLogin(t, client, "mfa5@example.com")

	var apiErr *authsdk.APIError

	// Enable before setup.
	_, err := session.MFAEnable(t.Context(), "123456")
	require.True(t, errors.As(err, &apiErr))
	require.Equal(t, authsdk.ErrorCodeMFANotEnrolled, apiErr.Code)

	// Backup codes before enable.
	_, err = session.RegenerateBackupCodes(t.Context())
	require.True(t, errors.As(err, &apiErr))
	require.Equal(t, authsdk.ErrorCodeMFANotEnabled, apiErr.Code)

	// Repeated setup replaces the pending secret; only the latest enables.
	firstSetup, err := session.MFASetup(t.Context())
	require.NoError(t, err)
	secondSetup, err := session.MFASetup(t.Context())
	require.NoError(t, err)
	require.NotEqual(t, firstSetup.Secret, secondSetup.Secret)

	_, err = session.MFAEnable(t.Context(), currentTOTPCode(t, firstSetup.Secret))
	require.True(t, errors.As(err, &apiErr))
	require.Equal(t, authsdk.ErrorCodeInvalidToken, apiErr.Code)

	_, err = session.MFAEnable(t.Context(), currentTOTPCode(t, secondSetup.Secret))
	require.NoError(t, err)

	// Setup after enable is refused.
	_, err = session.MFASetup(t.Context())
	require.True(t, errors.As(err, &apiErr))
	require.Equal(t, authsdk.ErrorCodeMFAAlreadyEnabled, apiErr.Code)
}
