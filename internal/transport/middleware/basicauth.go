package middleware

import (
	"crypto/subtle"
	"log/slog"
	"net/http"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// BasicAuth guards the admin surface with a fixed credential pair. Any
// failure is a 401 challenge, never a redirect. The configured password
// may be a bcrypt hash; a plain value is compared in constant time.
func BasicAuth(username, password string, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, pass, ok := r.BasicAuth()
			if !ok || !credentialsMatch(user, pass, username, password) {
				logger.Warn("admin authentication failed", "remote_addr", r.RemoteAddr)
				w.Header().Set("WWW-Authenticate", `Basic realm="Login Required"`)
				http.Error(w, "authentication required", http.StatusUnauthorized)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func credentialsMatch(gotUser, gotPass, wantUser, wantPass string) bool {
	userOK := subtle.ConstantTimeCompare([]byte(gotUser), []byte(wantUser)) == 1

	var passOK bool
	if strings.HasPrefix(wantPass, "$2") {
		passOK = bcrypt.CompareHashAndPassword([]byte(wantPass), []byte(gotPass)) == nil
	} else {
		passOK = subtle.ConstantTimeCompare([]byte(gotPass), []byte(wantPass)) == 1
	}

	return userOK && passOK
}
