package totpx

import (
	"bytes"
	"encoding/base64"
	"image/png"
	"strings"
	"testing"
	"time"

	"github.com/pquerna/otp/totp"
	"github.com/stretchr/testify/require"
)

func TestEngineEnroll(t *testing.T) {
	e := &Engine{Issuer: "depot-auth"}

	enrollment, err := e.Enroll("a@x.com")
	require.NoError(t, err)
	require.NotEmpty(t, enrollment.Secret)
	require.True(t, strings.HasPrefix(enrollment.URL, "otpauth://totp/"))
	require.Contains(t, enrollment.URL, "issuer=depot-auth")
	require.Contains(t, enrollment.URL, "a%40x.com")

	// Each enrollment gets a fresh secret.
	again, err := e.Enroll("a@x.com")
	require.NoError(t, err)
	require.NotEqual(t, enrollment.Secret, again.Secret)
}

func TestEngineVerify_CurrentWindow(t *testing.T) {
	e := &Engine{Issuer: "depot-auth"}
	enrollment, err := e.Enroll("a@x.com")
	require.NoError(t, err)

	code, err := e.CurrentCode(enrollment.Secret)
	require.NoError(t, err)
	require.Len(t, code, 6)
	require.True(t, e.Verify(code, enrollment.Secret))
}

func TestEngineVerify_WindowTolerance(t *testing.T) {
	e := &Engine{Issuer: "depot-auth"}
	enrollment, err := e.Enroll("a@x.com")
	require.NoError(t, err)

	// Pin the clock so window arithmetic is deterministic.
	now := time.Date(2026, 3, 14, 9, 26, 53, 0, time.UTC)

	codeAt := func(at time.Time) string {
		code, err := totp.GenerateCode(enrollment.Secret, at)
		require.NoError(t, err)
		return code
	}

	require.True(t, e.verifyAt(codeAt(now), enrollment.Secret, now))
	require.True(t, e.verifyAt(codeAt(now.Add(-30*time.Second)), enrollment.Secret, now), "previous window accepted")
	require.True(t, e.verifyAt(codeAt(now.Add(30*time.Second)), enrollment.Secret, now), "next window accepted")
	require.False(t, e.verifyAt(codeAt(now.Add(-90*time.Second)), enrollment.Secret, now), "two windows back rejected")

	// A code stays valid for the rest of its window: replay within the
	// window is expected TOTP behaviour, not a bug.
	code := codeAt(now)
	require.True(t, e.verifyAt(code, enrollment.Secret, now))
	require.True(t, e.verifyAt(code, enrollment.Secret, now.Add(time.Second)))
}

func TestEngineVerify_MalformedInput(t *testing.T) {
	e := &Engine{Issuer: "depot-auth"}
	enrollment, err := e.Enroll("a@x.com")
	require.NoError(t, err)

	tests := []struct {
		name string
		code string
	}{
		{"empty", ""},
		{"letters", "abcdef"},
		{"too short", "123"},
		{"too long", "12345678"},
		{"whitespace", "      "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.False(t, e.Verify(tt.code, enrollment.Secret))
		})
	}

	// Missing secret can never verify either.
	require.False(t, e.Verify("123456", ""))
}

func TestQRCodeDataURI(t *testing.T) {
	e := &Engine{Issuer: "depot-auth"}
	enrollment, err := e.Enroll("a@x.com")
	require.NoError(t, err)

	uri, err := QRCodeDataURI(enrollment.URL)
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(uri, "data:image/png;base64,"))

	raw, err := base64.StdEncoding.DecodeString(strings.TrimPrefix(uri, "data:image/png;base64,"))
	require.NoError(t, err)

	img, err := png.Decode(bytes.NewReader(raw))
	require.NoError(t, err)
	require.Equal(t, 256, img.Bounds().Dx())
}

func TestQRCodeDataURI_Empty(t *testing.T) {
	_, err := QRCodeDataURI("")
	require.ErrorIs(t, err, ErrQREncode)
}
