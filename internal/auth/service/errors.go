package service

import "errors"

var (
	// ErrInvalidCredentials is returned for both an unknown email and a wrong
	// password. The two cases must stay indistinguishable to callers so the
	// login endpoint cannot be used to enumerate registered emails.
	ErrInvalidCredentials = errors.New("invalid email or password")

	// ErrEmailTaken is returned on registration with an already-used email.
	ErrEmailTaken = errors.New("email is already registered")

	// ErrAccountNotFound is returned when an operation names an account that
	// does not exist.
	ErrAccountNotFound = errors.New("account not found")

	// ErrInvalidTOTPCode covers every TOTP verification failure, including an
	// account with no enrolled secret. A caller holding a valid code for the
	// wrong account learns nothing from the error shape.
	ErrInvalidTOTPCode = errors.New("invalid verification code")

	// ErrInvalidBackupCode is returned when a presented backup code matches
	// none of the account's stored codes.
	ErrInvalidBackupCode = errors.New("invalid backup code")

	// ErrMFAAlreadyEnabled rejects a setup or enable attempt on an account
	// whose MFA is already active. Disable first, then re-enroll.
	ErrMFAAlreadyEnabled = errors.New("mfa is already enabled")

	// ErrMFANotEnrolled rejects an enable attempt with no pending enrollment.
	ErrMFANotEnrolled = errors.New("mfa setup has not been started")

	// ErrMFANotEnabled rejects backup-code generation while MFA is off.
	ErrMFANotEnabled = errors.New("mfa is not enabled")
)
