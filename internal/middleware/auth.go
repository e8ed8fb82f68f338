package middleware

import (
	"context"
	"crypto/subtle"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
)

type contextKey string

const (
	ClientKey contextKey = "client"
	APIKeyKey contextKey = "api_key"
)

// AllSubjects is the client name whose key may access every subject.
const AllSubjects = "*"

// isPublic lists the probe endpoints that bypass auth and rate limiting.
func isPublic(path string) bool {
	switch path {
	case "/health", "/ready", "/live":
		return true
	}
	return false
}

// APIKeyAuth validates API key from Authorization header. validKeys maps a
// client name (a subject ID, or AllSubjects) to its key.
func APIKeyAuth(validKeys map[string]string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if isPublic(r.URL.Path) {
				next.ServeHTTP(w, r)
				return
			}

			auth := r.Header.Get("Authorization")
			if auth == "" {
				http.Error(w, "missing Authorization header", http.StatusUnauthorized)
				return
			}

			// Support both "Bearer <key>" and "<key>" formats
			apiKey := strings.TrimPrefix(auth, "Bearer ")
			apiKey = strings.TrimSpace(apiKey)

			if apiKey == "" {
				http.Error(w, "invalid Authorization header format", http.StatusUnauthorized)
				return
			}

			// constant-time comparison
			var client string
			for name, key := range validKeys {
				if subtle.ConstantTimeCompare([]byte(apiKey), []byte(key)) == 1 {
					client = name
					break
				}
			}

			if client == "" {
				http.Error(w, "invalid API key", http.StatusUnauthorized)
				return
			}

			ctx := context.WithValue(r.Context(), ClientKey, client)
			ctx = context.WithValue(ctx, APIKeyKey, apiKey)

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetClientFromContext extracts the authenticated client name
func GetClientFromContext(ctx context.Context) string {
	if client, ok := ctx.Value(ClientKey).(string); ok {
		return client
	}
	return ""
}

// RequireSubjectAccess rejects requests whose {subject} URL parameter does
// not belong to the authenticated client. It must run inside a chi route
// that declares {subject}. Without auth there is no client and it passes.
func RequireSubjectAccess(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		client := GetClientFromContext(r.Context())
		if client == "" || client == AllSubjects {
			next.ServeHTTP(w, r)
			return
		}

		if chi.URLParam(r, "subject") != client {
			http.Error(w, "forbidden for this subject", http.StatusForbidden)
			return
		}

		next.ServeHTTP(w, r)
	})
}
