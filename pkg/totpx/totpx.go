// Package totpx wraps time-based one-time password generation and
// verification for the MFA flow, plus rendering of the provisioning URI as a
// scannable QR image.
package totpx

import (
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/pquerna/otp"
	"github.com/pquerna/otp/totp"
	qrcode "github.com/skip2/go-qrcode"
)

const (
	// secretSize is the shared-secret length in bytes. 20 bytes gives the
	// 160 bits RFC 4226 recommends and every authenticator app accepts.
	secretSize = 20

	// qrSize is the pixel size of the rendered QR image.
	qrSize = 256
)

// ErrQREncode reports a failure to render the provisioning URI as an image.
// Enrollment still succeeds without the image; the secret can be entered
// manually.
var ErrQREncode = errors.New("totpx: failed to encode QR code")

// Enrollment carries a freshly generated shared secret and its otpauth
// provisioning URI.
type Enrollment struct {
	Secret string // base32, for manual entry
	URL    string // otpauth://totp/... for authenticator apps
}

// Engine derives and verifies TOTP codes. Codes are 6 digits over 30-second
// windows with SHA1, the de-facto authenticator-app profile.
type Engine struct {
	Issuer string // issuer label shown in authenticator apps
}

// Enroll generates a new shared secret for the given account label and
// returns it with its provisioning URI.
func (e *Engine) Enroll(account string) (Enrollment, error) {
	key, err := totp.Generate(totp.GenerateOpts{
		Issuer:      e.Issuer,
		AccountName: account,
		Period:      30,
		SecretSize:  secretSize,
		Digits:      otp.DigitsSix,
		Algorithm:   otp.AlgorithmSHA1,
	})
	if err != nil {
		return Enrollment{}, fmt.Errorf("totpx: failed to generate TOTP key: %w", err)
	}
	return Enrollment{Secret: key.Secret(), URL: key.URL()}, nil
}

// Verify reports whether code is valid for secret in the current window,
// tolerating one window of clock drift either side. Malformed input
// (non-numeric, wrong length) simply fails verification.
func (e *Engine) Verify(code, secret string) bool {
	return e.verifyAt(code, secret, time.Now().UTC())
}

func (e *Engine) verifyAt(code, secret string, at time.Time) bool {
	ok, _ := totp.ValidateCustom(code, secret, at, totp.ValidateOpts{
		Period:    30,
		Skew:      1,
		Digits:    otp.DigitsSix,
		Algorithm: otp.AlgorithmSHA1,
	})
	return ok
}

// CurrentCode derives the code for the current time window. This exists for
// test and administrative tooling only and must never back an
// unauthenticated endpoint.
func (e *Engine) CurrentCode(secret string) (string, error) {
	code, err := totp.GenerateCode(secret, time.Now().UTC())
	if err != nil {
		return "", fmt.Errorf("totpx: failed to generate code: %w", err)
	}
	return code, nil
}

// QRCodeDataURI renders the provisioning URI as a PNG data URI suitable for
// an <img> tag during setup.
func QRCodeDataURI(url string) (string, error) {
	if strings.TrimSpace(url) == "" {
		return "", ErrQREncode
	}
	png, err := qrcode.Encode(url, qrcode.Medium, qrSize)
	if err != nil {
		return "", errors.Join(ErrQREncode, err)
	}
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(png), nil
}
