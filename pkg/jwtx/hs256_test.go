package jwtx

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

const (
	testSecret = "test-signing-secret-0123456789"
	testIssuer = "depot-auth"
)

func TestNewHS256_MissingSecret(t *testing.T) {
	_, err := NewHS256("", testIssuer)
	require.ErrorIs(t, err, ErrMissingSecret)
}

func TestHS256_RoundTrip(t *testing.T) {
	s, err := NewHS256(testSecret, testIssuer)
	require.NoError(t, err)

	now := time.Now()
	claims := NewSessionClaims("acct-123", "a@x.com", testIssuer, DefaultSessionTTL, now)

	token, err := s.Sign(claims)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	got, err := s.Verify(token)
	require.NoError(t, err)
	require.Equal(t, "acct-123", got.Subject)
	require.Equal(t, "a@x.com", got.Email)
	require.Equal(t, testIssuer, got.Issuer)
	require.WithinDuration(t, now.Add(DefaultSessionTTL), got.ExpiresAt.Time, time.Second)
}

func TestHS256_Verify_Failures(t *testing.T) {
	s, err := NewHS256(testSecret, testIssuer)
	require.NoError(t, err)

	valid, err := s.Sign(NewSessionClaims("acct-123", "a@x.com", testIssuer, time.Hour, time.Now()))
	require.NoError(t, err)

	expired, err := s.Sign(NewSessionClaims("acct-123", "a@x.com", testIssuer, -time.Minute, time.Now()))
	require.NoError(t, err)

	other, err := NewHS256("a-completely-different-secret", testIssuer)
	require.NoError(t, err)
	wrongKey, err := other.Sign(NewSessionClaims("acct-123", "a@x.com", testIssuer, time.Hour, time.Now()))
	require.NoError(t, err)

	wrongIssuer, err := s.Sign(NewSessionClaims("acct-123", "a@x.com", "someone-else", time.Hour, time.Now()))
	require.NoError(t, err)

	// Flip a character in the signature segment.
	parts := strings.Split(valid, ".")
	require.Len(t, parts, 3)
	sig := []byte(parts[2])
	if sig[0] == 'A' {
		sig[0] = 'B'
	} else {
		sig[0] = 'A'
	}
	tampered := parts[0] + "." + parts[1] + "." + string(sig)

	tests := []struct {
		name  string
		token string
	}{
		{"garbage", "not-a-token"},
		{"empty", ""},
		{"expired", expired},
		{"wrong key", wrongKey},
		{"wrong issuer", wrongIssuer},
		{"tampered signature", tampered},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := s.Verify(tt.token)
			// Every failure mode collapses into the same sentinel.
			require.ErrorIs(t, err, ErrInvalidToken)
		})
	}
}

func TestNewJTI_Unique(t *testing.T) {
	require.NotEqual(t, NewJTI(), NewJTI())
}
