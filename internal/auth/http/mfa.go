package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/loftwire/depot/internal/auth/service"
	"github.com/loftwire/depot/pkg/authsdk"
	"github.com/loftwire/depot/pkg/httpx"
	"github.com/loftwire/depot/pkg/slogx"
)

// MFAHandler serves the authenticated MFA management surface.
type MFAHandler struct {
	MFAService *service.MFAService
}

// HandleSetup handles POST /v1/mfa/setup
//
//	@Summary		Start TOTP enrollment
//	@Description	Generates a pending TOTP secret and returns it with an otpauth URL and a
//	@Description	QR code data URI. Calling setup again replaces the pending secret.
//	@Tags			MFA
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{object}	authsdk.MFASetupResponse	"Pending secret"
//	@Failure		400	{object}	authsdk.ErrorResponse		"MFA already enabled"
//	@Failure		401	{object}	authsdk.ErrorResponse		"Invalid or missing session token"
//	@Failure		500	{object}	authsdk.ErrorResponse		"Internal server error"
//	@Router			/v1/mfa/setup [post].
func (h *MFAHandler) HandleSetup(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	accountID := httpx.AccountIDFromContext(ctx)
	if accountID == "" {
		authsdk.ErrUnauthorized.WriteError(w)
		return
	}

	setup, err := h.MFAService.Setup(ctx, accountID)
	if err != nil {
		if errors.Is(err, service.ErrMFAAlreadyEnabled) {
			authsdk.ErrMFAAlreadyEnabled.WriteError(w)
			return
		}
		log.Error("mfa setup failed", "account_id", accountID, "error", err)
		authsdk.ErrServerError.WriteError(w)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, authsdk.MFASetupResponse{
		Secret: setup.Secret,
		URL:    setup.URL,
		QRCode: setup.QRCode,
	})
}

// HandleEnable handles POST /v1/mfa/enable
//
//	@Summary		Enable MFA
//	@Description	Verifies a TOTP code against the pending secret and activates MFA. A fresh
//	@Description	backup-code set is stored; only its count is returned. Retrieve the codes
//	@Description	with POST /v1/mfa/backup-codes.
//	@Tags			MFA
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		object{token=string}		true	"Current TOTP code"
//	@Success		200		{object}	authsdk.MFAEnableResponse	"MFA activated"
//	@Failure		400		{object}	authsdk.ErrorResponse		"No pending setup or already enabled"
//	@Failure		401		{object}	authsdk.ErrorResponse		"Invalid TOTP code or session token"
//	@Failure		500		{object}	authsdk.ErrorResponse		"Internal server error"
//	@Router			/v1/mfa/enable [post].
func (h *MFAHandler) HandleEnable(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	accountID := httpx.AccountIDFromContext(ctx)
	if accountID == "" {
		authsdk.ErrUnauthorized.WriteError(w)
		return
	}

	var req struct {
		Token string `json:"token"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Token == "" {
		authsdk.ErrInvalidRequest.WriteError(w)
		return
	}

	count, err := h.MFAService.Enable(ctx, accountID, req.Token)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrMFAAlreadyEnabled):
			authsdk.ErrMFAAlreadyEnabled.WriteError(w)
		case errors.Is(err, service.ErrMFANotEnrolled):
			authsdk.ErrMFANotEnrolled.WriteError(w)
		case errors.Is(err, service.ErrInvalidTOTPCode):
			authsdk.ErrInvalidToken.WriteError(w)
		default:
			log.Error("mfa enable failed", "account_id", accountID, "error", err)
			authsdk.ErrServerError.WriteError(w)
		}
		return
	}

	httpx.WriteJSON(w, http.StatusOK, authsdk.MFAEnableResponse{
		Success:          true,
		BackupCodesCount: count,
	})
}

// HandleDisable handles POST /v1/mfa/disable
//
//	@Summary		Disable MFA
//	@Description	Turns MFA off and destroys the secret and all backup codes. Idempotent.
//	@Tags			MFA
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{object}	authsdk.SuccessResponse	"MFA disabled"
//	@Failure		401	{object}	authsdk.ErrorResponse	"Invalid or missing session token"
//	@Failure		500	{object}	authsdk.ErrorResponse	"Internal server error"
//	@Router			/v1/mfa/disable [post].
func (h *MFAHandler) HandleDisable(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	accountID := httpx.AccountIDFromContext(ctx)
	if accountID == "" {
		authsdk.ErrUnauthorized.WriteError(w)
		return
	}

	if err := h.MFAService.Disable(ctx, accountID); err != nil {
		log.Error("mfa disable failed", "account_id", accountID, "error", err)
		authsdk.ErrServerError.WriteError(w)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, authsdk.SuccessResponse{Success: true})
}

// HandleStatus handles GET /v1/mfa/status
//
//	@Summary		MFA status
//	@Description	Reports whether MFA is enabled and whether unused backup codes remain.
//	@Tags			MFA
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{object}	authsdk.MFAStatusResponse	"Current status"
//	@Failure		401	{object}	authsdk.ErrorResponse		"Invalid or missing session token"
//	@Failure		500	{object}	authsdk.ErrorResponse		"Internal server error"
//	@Router			/v1/mfa/status [get].
func (h *MFAHandler) HandleStatus(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	accountID := httpx.AccountIDFromContext(ctx)
	if accountID == "" {
		authsdk.ErrUnauthorized.WriteError(w)
		return
	}

	status, err := h.MFAService.Status(ctx, accountID)
	if err != nil {
		log.Error("mfa status failed", "account_id", accountID, "error", err)
		authsdk.ErrServerError.WriteError(w)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, authsdk.MFAStatusResponse{
		MFAEnabled:     status.Enabled,
		HasBackupCodes: status.HasBackupCodes,
	})
}

// HandleBackupCodes handles POST /v1/mfa/backup-codes
//
//	@Summary		Regenerate backup codes
//	@Description	Replaces the entire backup-code set and returns the new plaintext codes.
//	@Description	This is the only time the values are visible; the server keeps hashes.
//	@Tags			MFA
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{object}	authsdk.BackupCodesResponse	"Fresh codes (shown once)"
//	@Failure		400	{object}	authsdk.ErrorResponse		"MFA is not enabled"
//	@Failure		401	{object}	authsdk.ErrorResponse		"Invalid or missing session token"
//	@Failure		500	{object}	authsdk.ErrorResponse		"Internal server error"
//	@Router			/v1/mfa/backup-codes [post].
func (h *MFAHandler) HandleBackupCodes(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	accountID := httpx.AccountIDFromContext(ctx)
	if accountID == "" {
		authsdk.ErrUnauthorized.WriteError(w)
		return
	}

	codes, err := h.MFAService.RegenerateBackupCodes(ctx, accountID)
	if err != nil {
		if errors.Is(err, service.ErrMFANotEnabled) {
			authsdk.ErrMFANotEnabled.WriteError(w)
			return
		}
		log.Error("backup code regeneration failed", "account_id", accountID, "error", err)
		authsdk.ErrServerError.WriteError(w)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, authsdk.BackupCodesResponse{BackupCodes: codes})
}
