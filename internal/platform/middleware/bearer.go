package middleware

import (
	"crypto/subtle"
	"log/slog"
	"net/http"
	"strings"

	"tidv/pkg/requestcontext"
)

// RequireBearer rejects requests whose Authorization header does not carry
// the expected bearer token. The token value itself is never logged.
func RequireBearer(expectedToken string, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, _ := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
			if expectedToken == "" || subtle.ConstantTimeCompare([]byte(token), []byte(expectedToken)) != 1 {
				ctx := r.Context()
				logger.WarnContext(ctx, "unauthorized access - invalid bearer",
					"request_id", requestcontext.RequestID(ctx),
					"path", r.URL.Path,
					"token_present", token != "",
				)
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusUnauthorized)
				_, _ = w.Write([]byte(`{"error":"invalid bearer"}`))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
