package http

import (
	"context"
	"net/http"
	"strings"
	"time"

	"car-rental-backend/internal/domain"
	"car-rental-backend/internal/logger"
	"car-rental-backend/internal/security"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

type contextKey string

const claimsKey contextKey = "claims"

// RequestID tags every request with an id and logs its outcome timing.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get("X-Request-ID")
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set("X-Request-ID", id)

		start := time.Now()
		next.ServeHTTP(w, r)
		logger.Debug("Handled request", "request_id", id, "method", r.Method, "path", r.URL.Path, "duration", time.Since(start))
	})
}

// Authenticate validates the bearer token and stores the claims in the
// request context.
func Authenticate(tokens security.TokenManager) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			tokenString, ok := strings.CutPrefix(header, "Bearer ")
			if !ok || tokenString == "" {
				respondError(w, security.ErrInvalidToken)
				return
			}
			claims, err := tokens.Validate(tokenString)
			if err != nil {
				respondError(w, err)
				return
			}
			ctx := context.WithValue(r.Context(), claimsKey, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func claimsFrom(r *http.Request) *security.UserClaims {
	claims, _ := r.Context().Value(claimsKey).(*security.UserClaims)
	return claims
}

// requireRole writes a 403 and returns false when the caller does not hold
// the role.
func requireRole(w http.ResponseWriter, r *http.Request, role domain.Role) bool {
	claims := claimsFrom(r)
	if claims == nil || claims.Role != string(role) {
		respondJSON(w, http.StatusForbidden, errorResponse{Error: "insufficient permissions"})
		return false
	}
	return true
}
