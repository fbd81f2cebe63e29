package domain

import "time"

type mfaMode int

const (
	mfaOff mfaMode = iota
	mfaPending
	mfaOn
)

// MFAState is a closed variant: Off, Pending (secret stored but not yet
// confirmed), or On. The fields are unexported so "enabled without a secret"
// cannot be constructed; use the constructors below.
type MFAState struct {
	mode   mfaMode
	secret string
}

// MFAOff is the state of a freshly registered account.
func MFAOff() MFAState { return MFAState{} }

// MFAPending records a generated secret awaiting the user's first valid
// code. An empty secret collapses to Off.
func MFAPending(secret string) MFAState {
	if secret == "" {
		return MFAOff()
	}
	return MFAState{mode: mfaPending, secret: secret}
}

// MFAOn records a confirmed secret. An empty secret collapses to Off rather
// than producing an enabled state with nothing to verify against.
func MFAOn(secret string) MFAState {
	if secret == "" {
		return MFAOff()
	}
	return MFAState{mode: mfaOn, secret: secret}
}

// Enabled reports whether MFA gates this account's logins.
func (s MFAState) Enabled() bool { return s.mode == mfaOn }

// Pending reports whether a secret is stored but not yet confirmed.
func (s MFAState) Pending() bool { return s.mode == mfaPending }

// Secret returns the shared secret and whether one is present.
func (s MFAState) Secret() (string, bool) {
	return s.secret, s.mode != mfaOff
}

// MFASetup is returned once from the setup operation. Secret and QRCode are
// shown to the user and never retrievable again through any read path.
type MFASetup struct {
	Secret string // base32, for manual entry
	URL    string // otpauth provisioning URI
	QRCode string // PNG data URI; empty if rendering failed (non-fatal)
}

// MFAStatus is the client-visible summary of an account's MFA state.
type MFAStatus struct {
	Enabled        bool
	HasBackupCodes bool
}

// BackupCode is one stored recovery-code hash. Hashes are salted, so
// consumption works by verifying each row and deleting the matched ID.
type BackupCode struct {
	ID        string
	AccountID string
	CodeHash  string // argon2id PHC string
	CreatedAt time.Time
}
