package middleware

import (
	"net/http"

	"gitea.com/go-chi/session"

	"github.com/blogem/timesheet/services"
	"github.com/blogem/timesheet/userctx"
)

// RequireAuth ensures the requester has an authenticated session.
// If not, redirects to /login and stores the intended destination.
func RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sess := session.GetSession(r)
		userID, ok := sess.Get("user_id").(int)

		if !ok || userID == 0 {
			// Store the intended destination for redirect after login
			sess.Set("redirect_after_login", r.URL.Path)
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		}

		// Add user ID to request context for use in handlers
		ctx := userctx.SetUserID(r.Context(), userID)
		if username, ok := sess.Get("username").(string); ok {
			ctx = userctx.SetUsername(ctx, username)
		}
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireAdmin ensures the session user is an administrator. Must run
// inside RequireAuth.
func RequireAdmin(auth services.AuthService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, err := auth.GetUser(r.Context(), userctx.GetUserID(r.Context()))
			if err != nil || !user.IsAdmin {
				http.Error(w, "Unauthorized", http.StatusForbidden)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
