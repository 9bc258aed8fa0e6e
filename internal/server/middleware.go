package server

import (
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/dtrajkov/attendance-tracker/internal/common"
)

// RequestID tags every request with an opaque ID for log correlation.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := uuid.NewString()
		w.Header().Set("X-Request-Id", id)
		next.ServeHTTP(w, r.WithContext(common.WithRequestID(r.Context(), id)))
	})
}

// Auth gates a route group behind an opaque bearer token. This stands in for
// the full user/auth layer, which lives outside this service.
func Auth(token string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if token == "" {
				next.ServeHTTP(w, r)
				return
			}
			got := r.Header.Get("Authorization")
			got = strings.TrimPrefix(got, "Bearer ")
			if got != token {
				w.Header().Set("WWW-Authenticate", "Bearer")
				http.Error(w, "could not validate credentials", http.StatusUnauthorized)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
