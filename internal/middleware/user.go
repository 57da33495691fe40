package middleware

import (
	"log/slog"
	"net/http"
	"regexp"

	"github.com/yunohabits/yuno/internal/ctxkeys"
)

// UserHeader carries the opaque key a client picked for itself. There is no
// authentication: whoever knows the key acts as that user.
const UserHeader = "X-Yuno-User"

// user keys become part of storage keys, so ':' and '/' are not allowed
var userIDPattern = regexp.MustCompile(`^[A-Za-z0-9_-]{1,64}$`)

// IdentifyUser adds the user id from UserHeader to the context when it is well formed
func IdentifyUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID := r.Header.Get(UserHeader)
		if userID == "" {
			next.ServeHTTP(w, r)
			return
		}

		if !userIDPattern.MatchString(userID) {
			slog.Warn("rejecting malformed user header", "path", r.URL.Path)
			writeError(w, http.StatusBadRequest, "invalid "+UserHeader+" header")
			return
		}

		next.ServeHTTP(w, r.WithContext(ctxkeys.WithUserID(r.Context(), userID)))
	})
}

// RequireUser rejects requests that did not identify a user
func RequireUser(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if ctxkeys.UserID(r.Context()) == "" {
			writeError(w, http.StatusUnauthorized, "missing "+UserHeader+" header")
			return
		}
		next(w, r)
	}
}
