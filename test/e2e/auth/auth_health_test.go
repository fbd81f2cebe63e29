package auth_test

import (
	"testing"

	"github.com/loftwire/depot/pkg/authsdk"
	"github.com/stretchr/testify/require"
)

// TestLivezEndpoint verifies the liveness probe.
func TestLivezEndpoint(t *testing.T) {
	baseURL, cleanup := setupAuthContainer(t)
	defer cleanup()

	client := authsdk.NewClient(baseURL)
	require.NoError(t, client.Livez(t.Context()))

	t.Logf("Livez endpoint is healthy")
}

// TestReadyzEndpoint verifies readiness, which includes store connectivity.
func TestReadyzEndpoint(t *testing.T) {
	baseURL, cleanup := setupAuthContainer(t)
	defer cleanup()

	client := authsdk.NewClient(baseURL)
	require.NoError(t, client.Readyz(t.Context()))

	t.Logf("Readyz endpoint is healthy")
}
