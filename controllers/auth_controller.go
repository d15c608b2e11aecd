package controllers

import (
	"crypto/rand"
	"encoding/base64"
	"net/http"

	"gitea.com/go-chi/session"

	"github.com/blogem/timesheet/authenticator"
	"github.com/blogem/timesheet/models"
	"github.com/blogem/timesheet/services"
)

// AuthController handles login, logout and single sign-on
type AuthController struct {
	services *services.Services
}

// NewAuthController creates a new auth controller
func NewAuthController(services *services.Services) *AuthController {
	return &AuthController{
		services: services,
	}
}

// ShowLogin handles GET /login
func (c *AuthController) ShowLogin(w http.ResponseWriter, r *http.Request) {
	if user := currentUser(r, c.services.Auth); user != nil {
		http.Redirect(w, r, homePath(user), http.StatusSeeOther)
		return
	}

	templateData := struct {
		Title string
		User  *models.User
		Flash *models.FlashMessage
	}{
		Title: "Login",
		Flash: flashFromQuery(r),
	}

	renderTemplate(w, "login", "templates/login.html", templateData)
}

// Login handles POST /login
func (c *AuthController) Login(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Failed to parse form: "+err.Error(), http.StatusBadRequest)
		return
	}

	username := r.FormValue("username")
	password := r.FormValue("password")

	user, err := c.services.Auth.Authenticate(r.Context(), username, password)
	if err != nil {
		// One generic message regardless of which part was wrong
		templateData := struct {
			Title string
			User  *models.User
			Flash *models.FlashMessage
		}{
			Title: "Login",
			Flash: &models.FlashMessage{Type: "error", Message: "Invalid username or password"},
		}
		renderTemplateWithStatus(w, http.StatusUnauthorized, "login_error", "templates/login.html", templateData)
		return
	}

	c.establishSession(r, user)
	c.redirectAfterLogin(w, r, user)
}

// Logout handles GET /logout
func (c *AuthController) Logout(w http.ResponseWriter, r *http.Request) {
	sess := session.GetSession(r)
	sess.Delete("user_id")
	sess.Delete("username")

	http.Redirect(w, r, "/login", http.StatusSeeOther)
}

// SSOLogin handles GET /sso/login by redirecting to the identity provider
func (c *AuthController) SSOLogin(auth authenticator.Provider) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		// Generate random state
		state, err := generateRandomState()
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}

		// Save the state in the session to validate in callback
		sess := session.GetSession(r)
		sess.Set("state", state)

		http.Redirect(w, r, auth.GetAuthURL(state), http.StatusTemporaryRedirect)
	}
}

// SSOCallback handles GET /sso/callback from the identity provider
func (c *AuthController) SSOCallback(auth authenticator.Provider) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess := session.GetSession(r)

		// Verify state
		storedState, ok := sess.Get("state").(string)
		if !ok {
			http.Error(w, "State not found in session", http.StatusBadRequest)
			return
		}

		if r.URL.Query().Get("state") != storedState {
			http.Error(w, "Invalid state parameter", http.StatusBadRequest)
			return
		}

		// Exchange the code for a token
		token, err := auth.ExchangeCode(r.Context(), r.URL.Query().Get("code"))
		if err != nil {
			http.Error(w, "Failed to exchange authorization code for a token: "+err.Error(), http.StatusUnauthorized)
			return
		}

		// Verify the ID token and extract claims
		claims, err := auth.GetClaims(r.Context(), token)
		if err != nil {
			http.Error(w, "Failed to verify ID Token: "+err.Error(), http.StatusInternalServerError)
			return
		}

		sess.Delete("state")

		email := claims.Email()
		if email == "" {
			http.Error(w, "Identity provider returned no email claim", http.StatusUnauthorized)
			return
		}

		// SSO only signs in existing accounts; unknown emails are sent
		// to the access request page
		user, err := c.services.Auth.GetUserByEmail(r.Context(), email)
		if err != nil {
			redirectWithFlash(w, r, "/request-access", "info",
				"No account exists for "+email+" yet. Request access below.")
			return
		}

		c.establishSession(r, user)
		c.redirectAfterLogin(w, r, user)
	}
}

// establishSession stores the authenticated principal in the session
func (c *AuthController) establishSession(r *http.Request, user *models.User) {
	sess := session.GetSession(r)
	sess.Set("user_id", user.ID)
	sess.Set("username", user.Username)
}

// redirectAfterLogin sends the user to their stored destination, or to
// their role's landing page
func (c *AuthController) redirectAfterLogin(w http.ResponseWriter, r *http.Request, user *models.User) {
	sess := session.GetSession(r)
	if dest, ok := sess.Get("redirect_after_login").(string); ok && dest != "" {
		sess.Delete("redirect_after_login")
		http.Redirect(w, r, dest, http.StatusSeeOther)
		return
	}

	http.Redirect(w, r, homePath(user), http.StatusSeeOther)
}

// homePath returns the landing page for a principal: administrators go to
// the employee list, employees to their dashboard
func homePath(user *models.User) string {
	if user != nil && user.IsAdmin {
		return "/admin/employees"
	}
	return "/dashboard"
}

// generateRandomState generates a random state value for CSRF protection
func generateRandomState() (string, error) {
	b := make([]byte, 32)
	_, err := rand.Read(b)
	if err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(b), nil
}
