package controllers

import (
	"html/template"
	"net/http"
	"net/url"

	"gitea.com/go-chi/session"

	"github.com/blogem/timesheet/models"
	"github.com/blogem/timesheet/services"
	"github.com/blogem/timesheet/userctx"
)

// renderTemplate creates a template set and renders it with the provided data
func renderTemplate(w http.ResponseWriter, templateName string, pageTemplate string, data interface{}) error {
	return renderTemplateWithStatus(w, http.StatusOK, templateName, pageTemplate, data)
}

// renderTemplateWithStatus creates a template set and renders it with the provided data and status code
func renderTemplateWithStatus(w http.ResponseWriter, statusCode int, templateName string, pageTemplate string, data interface{}) error {
	// Create a new template set with only the templates we need
	tmpl := template.New(templateName)
	tmpl.Funcs(template.FuncMap{
		"add":      func(a, b int) int { return a + b },
		"sub":      func(a, b int) int { return a - b },
		"fmtDate":  models.FormatDate,
		"fmtHours": formatHours,
	})

	// Parse layout and page template
	_, err := tmpl.ParseFiles("templates/layout.html", pageTemplate)
	if err != nil {
		http.Error(w, "Failed to parse template: "+err.Error(), http.StatusInternalServerError)
		return err
	}

	// Set status code if not OK
	if statusCode != http.StatusOK {
		w.WriteHeader(statusCode)
	}

	if err := tmpl.ExecuteTemplate(w, "layout.html", data); err != nil {
		http.Error(w, "Failed to render template: "+err.Error(), http.StatusInternalServerError)
		return err
	}

	return nil
}

// flashFromQuery reads a flash message passed on redirect as a query
// parameter (?success=, ?error=, ?warning=, ?info=)
func flashFromQuery(r *http.Request) *models.FlashMessage {
	for _, kind := range []string{"error", "warning", "success", "info"} {
		if msg := r.URL.Query().Get(kind); msg != "" {
			return &models.FlashMessage{Type: kind, Message: msg}
		}
	}
	return nil
}

// redirectWithFlash redirects carrying a flash message as a query parameter
func redirectWithFlash(w http.ResponseWriter, r *http.Request, path, kind, message string) {
	http.Redirect(w, r, path+"?"+kind+"="+url.QueryEscape(message), http.StatusSeeOther)
}

// currentUser resolves the acting principal, preferring the ID stashed by
// the auth middleware and falling back to the session for public routes.
// Returns nil for anonymous requesters.
func currentUser(r *http.Request, auth services.AuthService) *models.User {
	id := userctx.GetUserID(r.Context())
	if id == 0 {
		if sid, ok := session.GetSession(r).Get("user_id").(int); ok {
			id = sid
		}
	}
	if id == 0 {
		return nil
	}

	user, err := auth.GetUser(r.Context(), id)
	if err != nil {
		return nil
	}
	return user
}

// Controllers holds all controller instances
type Controllers struct {
	Auth          *AuthController
	Dashboard     *DashboardController
	Admin         *AdminController
	Export        *ExportController
	AccessRequest *AccessRequestController
}

// NewControllers creates and initializes all controller instances
func NewControllers(services *services.Services) *Controllers {
	return &Controllers{
		Auth:          NewAuthController(services),
		Dashboard:     NewDashboardController(services),
		Admin:         NewAdminController(services),
		Export:        NewExportController(services),
		AccessRequest: NewAccessRequestController(services),
	}
}
