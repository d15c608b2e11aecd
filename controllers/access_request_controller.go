package controllers

import (
	"errors"
	"net/http"

	"github.com/blogem/timesheet/models"
	"github.com/blogem/timesheet/services"
)

// AccessRequestController handles the public access request page
type AccessRequestController struct {
	services *services.Services
}

// NewAccessRequestController creates a new access request controller
func NewAccessRequestController(services *services.Services) *AccessRequestController {
	return &AccessRequestController{
		services: services,
	}
}

// Show handles GET /request-access
func (c *AccessRequestController) Show(w http.ResponseWriter, r *http.Request) {
	// Access requests are for anonymous visitors only
	if user := currentUser(r, c.services.Auth); user != nil {
		http.Redirect(w, r, homePath(user), http.StatusSeeOther)
		return
	}

	c.render(w, http.StatusOK, &models.AccessRequestForm{}, flashFromQuery(r))
}

// Submit handles POST /request-access
func (c *AccessRequestController) Submit(w http.ResponseWriter, r *http.Request) {
	if user := currentUser(r, c.services.Auth); user != nil {
		http.Redirect(w, r, homePath(user), http.StatusSeeOther)
		return
	}

	if err := r.ParseForm(); err != nil {
		http.Error(w, "Failed to parse form: "+err.Error(), http.StatusBadRequest)
		return
	}

	form := &models.AccessRequestForm{
		Name:    r.FormValue("name"),
		Email:   r.FormValue("email"),
		Message: r.FormValue("message"),
	}

	_, err := c.services.AccessRequest.Submit(r.Context(), form)
	if err != nil {
		if errors.Is(err, services.ErrDuplicateRequest) {
			c.render(w, http.StatusOK, form, &models.FlashMessage{
				Type:    "warning",
				Message: "You've already submitted a request. Please wait for admin approval.",
			})
			return
		}

		c.render(w, http.StatusBadRequest, form, &models.FlashMessage{
			Type:    "error",
			Message: err.Error(),
		})
		return
	}

	redirectWithFlash(w, r, "/login", "success", "Your request has been submitted! The admin will contact you soon.")
}

// render renders the access request page
func (c *AccessRequestController) render(w http.ResponseWriter, statusCode int, form *models.AccessRequestForm, flash *models.FlashMessage) {
	templateData := struct {
		Title string
		User  *models.User
		Flash *models.FlashMessage
		Form  *models.AccessRequestForm
	}{
		Title: "Request Access",
		Flash: flash,
		Form:  form,
	}

	renderTemplateWithStatus(w, statusCode, "register", "templates/register.html", templateData)
}
