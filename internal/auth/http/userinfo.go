package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/loftwire/depot/internal/auth/domain"
	"github.com/loftwire/depot/internal/auth/service"
	"github.com/loftwire/depot/pkg/authsdk"
	"github.com/loftwire/depot/pkg/httpx"
	"github.com/loftwire/depot/pkg/slogx"
)

// UserInfoHandler serves the authenticated profile surface.
type UserInfoHandler struct {
	AccountService *service.AccountService
}

// toUser maps a domain account to its API shape, dropping the password
// hash and MFA secret.
func toUser(a *domain.Account) authsdk.User {
	return authsdk.User{
		ID:         a.ID,
		Email:      a.Email,
		FirstName:  a.FirstName,
		LastName:   a.LastName,
		MFAEnabled: a.MFA.Enabled(),
		CreatedAt:  a.CreatedAt,
		UpdatedAt:  a.UpdatedAt,
	}
}

// HandleGet handles GET /v1/userinfo
//
//	@Summary		Get the authenticated account
//	@Description	Returns the account profile. Secret material is never included.
//	@Tags			Userinfo
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{object}	authsdk.User			"Account profile"
//	@Failure		401	{object}	authsdk.ErrorResponse	"Invalid or missing session token"
//	@Failure		500	{object}	authsdk.ErrorResponse	"Internal server error"
//	@Router			/v1/userinfo [get].
func (h *UserInfoHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	accountID := httpx.AccountIDFromContext(ctx)
	if accountID == "" {
		authsdk.ErrUnauthorized.WriteError(w)
		return
	}

	acct, err := h.AccountService.GetAccountByID(ctx, accountID)
	if err != nil {
		if errors.Is(err, service.ErrAccountNotFound) {
			// Token subject no longer exists, e.g. account deleted after issue.
			authsdk.ErrUnauthorized.WriteError(w)
			return
		}
		log.Error("userinfo lookup failed", "account_id", accountID, "error", err)
		authsdk.ErrServerError.WriteError(w)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, toUser(&acct))
}

// HandleUpdate handles PUT /v1/userinfo
//
//	@Summary		Update profile
//	@Description	Changes the account's first and last name.
//	@Tags			Userinfo
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		authsdk.UpdateProfileRequest	true	"New names"
//	@Success		200		{object}	authsdk.User					"Updated profile"
//	@Failure		400		{object}	authsdk.ErrorResponse			"Malformed request"
//	@Failure		401		{object}	authsdk.ErrorResponse			"Invalid or missing session token"
//	@Failure		500		{object}	authsdk.ErrorResponse			"Internal server error"
//	@Router			/v1/userinfo [put].
func (h *UserInfoHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	accountID := httpx.AccountIDFromContext(ctx)
	if accountID == "" {
		authsdk.ErrUnauthorized.WriteError(w)
		return
	}

	var req authsdk.UpdateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		authsdk.ErrInvalidRequest.WriteError(w)
		return
	}

	acct, err := h.AccountService.UpdateProfile(ctx, accountID, req.FirstName, req.LastName)
	if err != nil {
		if errors.Is(err, service.ErrAccountNotFound) {
			authsdk.ErrUnauthorized.WriteError(w)
			return
		}
		log.Error("profile update failed", "account_id", accountID, "error", err)
		authsdk.ErrServerError.WriteError(w)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, toUser(&acct))
}

// HandleChangePassword handles PUT /v1/userinfo/password
//
//	@Summary		Change password
//	@Description	Verifies the current password and replaces it. Existing session tokens
//	@Description	stay valid until expiry; tokens are stateless.
//	@Tags			Userinfo
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		authsdk.ChangePasswordRequest	true	"Current and new password"
//	@Success		200		{object}	authsdk.SuccessResponse			"Password changed"
//	@Failure		400		{object}	authsdk.ErrorResponse			"Malformed request"
//	@Failure		401		{object}	authsdk.ErrorResponse			"Wrong current password or bad token"
//	@Failure		500		{object}	authsdk.ErrorResponse			"Internal server error"
//	@Router			/v1/userinfo/password [put].
func (h *UserInfoHandler) HandleChangePassword(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	accountID := httpx.AccountIDFromContext(ctx)
	if accountID == "" {
		authsdk.ErrUnauthorized.WriteError(w)
		return
	}

	var req authsdk.ChangePasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.CurrentPassword == "" || req.NewPassword == "" {
		authsdk.ErrInvalidRequest.WriteError(w)
		return
	}

	err := h.AccountService.ChangePassword(ctx, accountID, req.CurrentPassword, req.NewPassword)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidCredentials):
			authsdk.ErrInvalidCredentials.WriteError(w)
		case errors.Is(err, service.ErrAccountNotFound):
			authsdk.ErrUnauthorized.WriteError(w)
		default:
			log.Error("password change failed", "account_id", accountID, "error", err)
			authsdk.ErrServerError.WriteError(w)
		}
		return
	}

	httpx.WriteJSON(w, http.StatusOK, authsdk.SuccessResponse{Success: true})
}
