package httpx

import (
	"context"
	"net/http"
	"strings"

	"github.com/loftwire/depot/pkg/jwtx"
	"github.com/loftwire/depot/pkg/slogx"
)

// AuthnMiddleware verifies the bearer session token and injects the account
// identity into the request context. Absence, malformation, bad signature,
// and expiry all produce the same unauthorized response.
func AuthnMiddleware(v jwtx.Verifier) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			log := slogx.FromContext(ctx)

			authz := r.Header.Get("Authorization")
			if authz == "" || !strings.HasPrefix(authz, "Bearer ") {
				writeBearerError(w)
				return
			}
			raw := strings.TrimSpace(strings.TrimPrefix(authz, "Bearer"))

			claims, err := v.Verify(raw)
			if err != nil {
				log.Warn("session token verification failed", "err", err)
				writeBearerError(w)
				return
			}

			ctx = context.WithValue(ctx, CtxKeyAccountID, claims.Subject)
			ctx = context.WithValue(ctx, CtxKeyEmail, claims.Email)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// AccountIDFromContext returns the authenticated account id, or "" when the
// request did not pass AuthnMiddleware.
func AccountIDFromContext(ctx context.Context) string {
	if id, ok := ctx.Value(CtxKeyAccountID).(string); ok {
		return id
	}
	return ""
}

// RFC 6750-style uniform response; deliberately identical for every failure
// mode so callers cannot distinguish expired from tampered.
func writeBearerError(w http.ResponseWriter) {
	w.Header().Set("WWW-Authenticate", `Bearer error="invalid_token"`)
	WriteError(w, http.StatusUnauthorized, "unauthorized", "Unauthorized")
}
