package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/loftwire/depot/internal/auth/service"
	"github.com/loftwire/depot/pkg/authsdk"
	"github.com/loftwire/depot/pkg/httpx"
	"github.com/loftwire/depot/pkg/slogx"
)

// AuthHandler serves the unauthenticated login surface: registration, the
// password step, and MFA completion.
type AuthHandler struct {
	AuthService *service.AuthService
}

// HandleRegister handles POST /v1/auth/register
//
//	@Summary		Register a new account
//	@Description	Creates an account with a hashed password. MFA starts disabled.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		authsdk.RegisterRequest	true	"Account details"
//	@Success		201		{object}	authsdk.User			"The created account"
//	@Failure		400		{object}	authsdk.ErrorResponse	"Malformed request"
//	@Failure		409		{object}	authsdk.ErrorResponse	"Email already registered"
//	@Failure		500		{object}	authsdk.ErrorResponse	"Internal server error"
//	@Router			/v1/auth/register [post].
func (h *AuthHandler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req authsdk.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		authsdk.ErrInvalidRequest.WriteError(w)
		return
	}
	req.Email = strings.TrimSpace(req.Email)
	if req.Email == "" || req.Password == "" {
		authsdk.ErrInvalidRequest.WriteError(w)
		return
	}

	acct, err := h.AuthService.Register(ctx, req.Email, req.FirstName, req.LastName, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrEmailTaken) {
			authsdk.ErrEmailTaken.WriteError(w)
			return
		}
		log.Error("registration failed", "error", err)
		authsdk.ErrServerError.WriteError(w)
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, toUser(&acct))
}

// HandleLogin handles POST /v1/auth/login
//
//	@Summary		Log in with email and password
//	@Description	Verifies credentials. Accounts with MFA enabled receive {requiresMfa, email}
//	@Description	instead of a token and must complete /v1/auth/mfa/verify.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		authsdk.LoginRequest	true	"Credentials"
//	@Success		200		{object}	authsdk.AuthResponse	"Session token, or an MFA challenge"
//	@Failure		400		{object}	authsdk.ErrorResponse	"Malformed request"
//	@Failure		401		{object}	authsdk.ErrorResponse	"Invalid email or password"
//	@Failure		500		{object}	authsdk.ErrorResponse	"Internal server error"
//	@Router			/v1/auth/login [post].
func (h *AuthHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req authsdk.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		authsdk.ErrInvalidRequest.WriteError(w)
		return
	}
	if req.Email == "" || req.Password == "" {
		authsdk.ErrInvalidRequest.WriteError(w)
		return
	}

	result, err := h.AuthService.Login(ctx, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			authsdk.ErrInvalidCredentials.WriteError(w)
			return
		}
		log.Error("login failed", "error", err)
		authsdk.ErrServerError.WriteError(w)
		return
	}

	if result.RequiresMFA {
		httpx.WriteJSON(w, http.StatusOK, authsdk.AuthResponse{
			RequiresMFA: true,
			Email:       result.Email,
		})
		return
	}

	user := toUser(result.Account)
	httpx.WriteJSON(w, http.StatusOK, authsdk.AuthResponse{Token: result.Token, User: &user})
}

// HandleMFAVerify handles POST /v1/auth/mfa/verify
//
//	@Summary		Complete an MFA login
//	@Description	Finishes a login that returned requiresMfa. Token carries either a current
//	@Description	TOTP code or, with isBackupCode set, a single-use backup code.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		authsdk.MFAVerifyRequest	true	"Second factor"
//	@Success		200		{object}	authsdk.AuthResponse		"Session token"
//	@Failure		400		{object}	authsdk.ErrorResponse		"Malformed request"
//	@Failure		401		{object}	authsdk.ErrorResponse		"Invalid token or backup code"
//	@Failure		500		{object}	authsdk.ErrorResponse		"Internal server error"
//	@Router			/v1/auth/mfa/verify [post].
func (h *AuthHandler) HandleMFAVerify(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req authsdk.MFAVerifyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		authsdk.ErrInvalidRequest.WriteError(w)
		return
	}
	if req.Email == "" || req.Token == "" {
		authsdk.ErrInvalidRequest.WriteError(w)
		return
	}

	result, err := h.AuthService.VerifyMFA(ctx, req.Email, req.Token, req.IsBackupCode)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrAccountNotFound) && req.IsBackupCode,
			errors.Is(err, service.ErrInvalidBackupCode):
			authsdk.ErrInvalidBackupCode.WriteError(w)
		case errors.Is(err, service.ErrAccountNotFound),
			errors.Is(err, service.ErrInvalidTOTPCode):
			// Unknown accounts answer like a wrong code.
			authsdk.ErrInvalidToken.WriteError(w)
		default:
			log.Error("mfa verification failed", "error", err)
			authsdk.ErrServerError.WriteError(w)
		}
		return
	}

	user := toUser(result.Account)
	httpx.WriteJSON(w, http.StatusOK, authsdk.AuthResponse{Token: result.Token, User: &user})
}
