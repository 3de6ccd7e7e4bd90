package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/cloudrumbles/avvai/internal/api/shared"
	"github.com/cloudrumbles/avvai/internal/service/auth"
)

// AdminAuthMiddleware guards the administrative routes with bearer-token
// verification.
type AdminAuthMiddleware struct {
	verifier auth.AdminVerifier
}

// NewAdminAuthMiddleware creates an AdminAuthMiddleware with the given verifier.
func NewAdminAuthMiddleware(verifier auth.AdminVerifier) *AdminAuthMiddleware {
	if verifier == nil {
		panic("verifier cannot be nil") // ALLOW-PANIC
	}
	return &AdminAuthMiddleware{verifier: verifier}
}

// Authenticate validates bearer tokens from the Authorization header and adds
// the admin email to the request context for authorized requests.
func (m *AdminAuthMiddleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		identity, err := m.verifier.VerifyToken(r.Context(), extractBearer(r))
		if err != nil {
			switch {
			case errors.Is(err, auth.ErrMissingToken):
				shared.RespondWithError(w, r, http.StatusUnauthorized, "Authorization header required")
			case errors.Is(err, auth.ErrExpiredToken):
				shared.RespondWithError(w, r, http.StatusUnauthorized, "Token expired")
			case errors.Is(err, auth.ErrEmailNotAllowed):
				shared.RespondWithError(w, r, http.StatusForbidden, "Not authorised for admin access")
			case errors.Is(err, auth.ErrInvalidToken), errors.Is(err, auth.ErrTokenNotYetValid):
				shared.RespondWithError(w, r, http.StatusUnauthorized, "Invalid token")
			default:
				slog.Error("failed to verify admin token", "error", err)
				shared.RespondWithError(w, r, http.StatusInternalServerError, "Authentication error")
			}
			return
		}

		ctx := context.WithValue(r.Context(), shared.AdminEmailContextKey, identity.Email)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetAdminEmail extracts the verified admin email from the request context.
// Returns the email and a boolean indicating if it was found.
func GetAdminEmail(r *http.Request) (string, bool) {
	email, ok := r.Context().Value(shared.AdminEmailContextKey).(string)
	return email, ok
}

// extractBearer pulls the token out of a "Bearer <token>" Authorization
// header, returning "" when the header is absent or malformed.
func extractBearer(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if header == "" {
		return ""
	}
	parts := strings.Fields(header)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return parts[1]
}
