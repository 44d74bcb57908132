package handler

import (
	"net/http"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

const tokenHeader = "X-API-Token"

// requireToken is middleware that checks the request's API token against
// the configured bcrypt hash. It is a no-op when no hash is configured.
func (h *Handler) requireToken(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if h.config.TokenHash == "" {
			next.ServeHTTP(w, r)
			return
		}
		token := requestToken(r)
		if token == "" {
			writeError(w, http.StatusUnauthorized, "missing API token")
			return
		}
		if err := bcrypt.CompareHashAndPassword([]byte(h.config.TokenHash), []byte(token)); err != nil {
			writeError(w, http.StatusForbidden, "invalid API token")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func requestToken(r *http.Request) string {
	if t := r.Header.Get(tokenHeader); t != "" {
		return t
	}
	auth := r.Header.Get("Authorization")
	if token, ok := strings.CutPrefix(auth, "Bearer "); ok {
		return strings.TrimSpace(token)
	}
	return ""
}
