package controllers

import (
	"errors"
	"net/http"

	"github.com/blogem/timesheet/models"
	"github.com/blogem/timesheet/services"
)

// DashboardController handles the employee timesheet dashboard
type DashboardController struct {
	services *services.Services
}

// NewDashboardController creates a new dashboard controller
func NewDashboardController(services *services.Services) *DashboardController {
	return &DashboardController{
		services: services,
	}
}

// Home handles GET / by sending the requester where they belong
func (c *DashboardController) Home(w http.ResponseWriter, r *http.Request) {
	user := currentUser(r, c.services.Auth)
	if user == nil {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	http.Redirect(w, r, homePath(user), http.StatusSeeOther)
}

// Index handles GET /dashboard
func (c *DashboardController) Index(w http.ResponseWriter, r *http.Request) {
	user := currentUser(r, c.services.Auth)
	if user == nil {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	startStr := r.URL.Query().Get("start_date")
	endStr := r.URL.Query().Get("end_date")

	view, err := c.services.Timesheet.GetTimesheet(r.Context(), user, user.ID, startStr, endStr, false)
	if err != nil {
		// A bad filter falls back to the default view with a warning
		redirectRangeError(w, r, "/dashboard", err)
		return
	}

	flash := flashFromQuery(r)
	if flash == nil && view.Filtered && len(view.Records) == 0 {
		flash = &models.FlashMessage{Type: "info", Message: "No entries found for the selected date range."}
	}

	templateData := struct {
		Title     string
		User      *models.User
		AdminView bool
		Flash     *models.FlashMessage
		View      *services.TimesheetView
	}{
		Title:     "My Timesheet",
		User:      user,
		AdminView: false,
		Flash:     flash,
		View:      view,
	}

	renderTemplate(w, "dashboard", "templates/dashboard.html", templateData)
}

// NewEntry handles GET /dashboard/add
func (c *DashboardController) NewEntry(w http.ResponseWriter, r *http.Request) {
	user := currentUser(r, c.services.Auth)
	if user == nil {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	c.renderEntryForm(w, http.StatusOK, user, &models.TimeEntryForm{}, nil)
}

// CreateEntry handles POST /dashboard/add
func (c *DashboardController) CreateEntry(w http.ResponseWriter, r *http.Request) {
	user := currentUser(r, c.services.Auth)
	if user == nil {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	if err := r.ParseForm(); err != nil {
		http.Error(w, "Failed to parse form: "+err.Error(), http.StatusBadRequest)
		return
	}

	form := &models.TimeEntryForm{
		Date:            r.FormValue("date"),
		StartTime:       r.FormValue("start_time"),
		FinishTime:      r.FormValue("finish_time"),
		ProductiveHours: r.FormValue("productive_hours"),
		TargetHours:     r.FormValue("target_hours"),
		Comment:         r.FormValue("comment"),
	}

	_, err := c.services.Timesheet.AddEntry(r.Context(), user, form)
	if err != nil {
		message := err.Error()
		if errors.Is(err, services.ErrInvalidTimeOrder) {
			message = "Start time must be earlier than finish time."
		}
		c.renderEntryForm(w, http.StatusBadRequest, user, form,
			&models.FlashMessage{Type: "error", Message: message})
		return
	}

	redirectWithFlash(w, r, "/dashboard", "success", "Entry added successfully!")
}

// renderEntryForm renders the add-entry page with form data and an optional flash
func (c *DashboardController) renderEntryForm(w http.ResponseWriter, statusCode int, user *models.User, form *models.TimeEntryForm, flash *models.FlashMessage) {
	templateData := struct {
		Title string
		User  *models.User
		Flash *models.FlashMessage
		Form  *models.TimeEntryForm
	}{
		Title: "Add Work Entry",
		User:  user,
		Flash: flash,
		Form:  form,
	}

	renderTemplateWithStatus(w, statusCode, "entry_form", "templates/entry_form.html", templateData)
}

// redirectRangeError maps a range resolution failure to a redirect back to
// the safe default view with a human-readable message
func redirectRangeError(w http.ResponseWriter, r *http.Request, path string, err error) {
	switch {
	case errors.Is(err, services.ErrInvalidFormat):
		redirectWithFlash(w, r, path, "error", "Invalid date format.")
	case errors.Is(err, services.ErrInvertedRange):
		redirectWithFlash(w, r, path, "warning", "Start date cannot be after end date.")
	case errors.Is(err, services.ErrFutureRange):
		redirectWithFlash(w, r, path, "warning", "Selected range is in the future, no data available yet.")
	default:
		http.Error(w, "Failed to load timesheet: "+err.Error(), http.StatusInternalServerError)
	}
}
