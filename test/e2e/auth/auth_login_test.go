package auth_test

import (
	"errors"
	"testing"

	"github.com/loftwire/depot/pkg/authsdk"
	"github.com/stretchr/testify/require"
)

// TestRegisterAndLogin covers the single-factor happy path end to end.
func TestRegisterAndLogin(t *testing.T) {
	baseURL, cleanup := setupAuthContainer(t)
	defer cleanup()

	client := authsdk.NewClient(baseURL)

	user, err := client.Register(t.Context(), authsdk.RegisterRequest{
		Email:     "alice@example.com",
		FirstName: "Alice",
		LastName:  "Smith",
		Password:  testPassword,
	})
	require.NoError(t, err)
	require.NotEmpty(t, user.ID)
	require.Equal(t, "alice@example.com", user.Email)
	require.False(t, user.MFAEnabled)

	resp, session, err := client.Login(t.Context(), "alice@example.com", testPassword)
	require.NoError(t, err)
	require.False(t, resp.RequiresMFA)
	require.NotEmpty(t, resp.Token)
	require.NotNil(t, resp.User)

	// The token works against the authenticated surface.
	info, err := session.UserInfo(t.Context())
	require.NoError(t, err)
	require.Equal(t, user.ID, info.ID)

	t.Logf("Registered and logged in as %s", info.Email)
}

// TestLoginFailures verifies the uniform invalid-credentials behaviour.
func TestLoginFailures(t *testing.T) {
	baseURL, cleanup := setupAuthContainer(t)
	defer cleanup()

	client := authsdk.NewClient(baseURL)
	registerAndLogin(t, client, "bob@example.com")

	var apiErr *authsdk.APIError

	// Wrong password.
	_, _, err := client.Login(t.Context(), "bob@example.com", "WrongPassword1!")
	require.Error(t, err)
	require.True(t, errors.As(err, &apiErr))
	require.Equal(t, authsdk.ErrorCodeInvalidCredentials, apiErr.Code)
	wrongPasswordMsg := apiErr.Message

	// Unknown email: identical code and message, no enumeration signal.
	_, _, err = client.Login(t.Context(), "nobody@example.com", "WrongPassword1!")
	require.Error(t, err)
	require.True(t, errors.As(err, &apiErr))
	require.Equal(t, authsdk.ErrorCodeInvalidCredentials, apiErr.Code)
	require.Equal(t, wrongPasswordMsg, apiErr.Message)
}

// TestDuplicateRegistration verifies the email uniqueness conflict.
func TestDuplicateRegistration(t *testing.T) {
	baseURL, cleanup := setupAuthContainer(t)
	defer cleanup()

	client := authsdk.NewClient(baseURL)
	registerAndLogin(t, client, "carol@example.com")

	_, err := client.Register(t.Context(), authsdk.RegisterRequest{
		Email:    "carol@example.com",
		Password: "AnotherPass1!",
	})
	var apiErr *authsdk.APIError
	require.True(t, errors.As(err, &apiErr))
	require.Equal(t, authsdk.ErrorCodeEmailTaken, apiErr.Code)
}

// TestUnauthorizedAccess verifies the authenticated surface rejects missing
// and garbage tokens uniformly.
func TestUnauthorizedAccess(t *testing.T) {
	baseURL, cleanup := setupAuthContainer(t)
	defer cleanup()

	client := authsdk.NewClient(baseURL)

	var apiErr *authsdk.APIError

	_, err := client.NewSessionFromToken("").UserInfo(t.Context())
	require.True(t, errors.As(err, &apiErr))
	require.Equal(t, 401, apiErr.StatusCode)

	_, err = client.NewSessionFromToken("not-a-jwt").UserInfo(t.Context())
	require.True(t, errors.As(err, &apiErr))
	require.Equal(t, 401, apiErr.StatusCode)
}
