package middleware

import (
	"net/http"

	"github.com/Syeddabbas07/chest-ray/internal/domain/access"
	"github.com/Syeddabbas07/chest-ray/pkg/response"
)

// RequireOperation gates a route on the access policy of op. Anonymous
// requests are sent to the login page; a signed-in account whose role may not
// perform op gets a bare 403 and the handler does not run.
func RequireOperation(op access.Operation) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			session, ok := GetSession(r.Context())
			if !ok {
				http.Redirect(w, r, "/login", http.StatusFound)
				return
			}

			if !access.Allowed(session.Role, op) {
				response.Forbidden(w, "")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
