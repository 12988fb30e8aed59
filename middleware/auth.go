package middleware

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"Murmur/services"
)

type contextKey string

const identityKey contextKey = "identity"

// IdentityFrom returns the verified identity attached by RequireAuth, or nil
// when the request never passed through it.
func IdentityFrom(ctx context.Context) *services.Identity {
	identity, _ := ctx.Value(identityKey).(*services.Identity)
	return identity
}

func rejectJSON(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}

// RequireAuth verifies the bearer token and attaches the caller's identity to
// the request context. Failures are terminal for the request; the client must
// re-authenticate.
func RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			slog.Debug("Rejected request without credential", "path", r.URL.Path)
			rejectJSON(w, http.StatusUnauthorized, "authentication required")
			return
		}

		token, ok := strings.CutPrefix(authHeader, "Bearer ")
		if !ok || token == "" {
			slog.Debug("Rejected malformed authorization header", "path", r.URL.Path)
			rejectJSON(w, http.StatusUnauthorized, "authentication required")
			return
		}

		identity, err := services.VerifyToken(token)
		if err != nil {
			rejectJSON(w, http.StatusUnauthorized, "invalid or expired token")
			return
		}

		ctx := context.WithValue(r.Context(), identityKey, identity)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireAdmin gates moderation endpoints. Always composed after RequireAuth,
// never standalone.
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		identity := IdentityFrom(r.Context())
		if identity == nil {
			rejectJSON(w, http.StatusUnauthorized, "authentication required")
			return
		}
		if !identity.IsAdmin {
			slog.Warn("Rejected non-admin request", "user_id", identity.UserID, "path", r.URL.Path)
			rejectJSON(w, http.StatusForbidden, "admin privilege required")
			return
		}
		next.ServeHTTP(w, r)
	})
}
