package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/blogem/timesheet/models"
	"github.com/blogem/timesheet/services"
)

// AdminController handles administrator-only pages
type AdminController struct {
	services *services.Services
}

// NewAdminController creates a new admin controller
func NewAdminController(services *services.Services) *AdminController {
	return &AdminController{
		services: services,
	}
}

// Employees handles GET /admin/employees
func (c *AdminController) Employees(w http.ResponseWriter, r *http.Request) {
	admin := currentUser(r, c.services.Auth)

	employees, err := c.services.Auth.GetEmployees(r.Context(), admin)
	if err != nil {
		http.Error(w, "Failed to load employees: "+err.Error(), http.StatusInternalServerError)
		return
	}

	// Pending requests are shown read-only; approval is out-of-band
	requests, err := c.services.AccessRequest.GetAll(r.Context())
	if err != nil {
		http.Error(w, "Failed to load access requests: "+err.Error(), http.StatusInternalServerError)
		return
	}

	templateData := struct {
		Title          string
		User           *models.User
		AdminView      bool
		Flash          *models.FlashMessage
		Employees      []models.User
		AccessRequests []models.AccessRequest
	}{
		Title:          "Employees",
		User:           admin,
		AdminView:      true,
		Flash:          flashFromQuery(r),
		Employees:      employees,
		AccessRequests: requests,
	}

	renderTemplate(w, "employees", "templates/employees.html", templateData)
}

// Timesheet handles GET /admin/employees/{id}
func (c *AdminController) Timesheet(w http.ResponseWriter, r *http.Request) {
	admin := currentUser(r, c.services.Auth)

	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "Invalid employee ID", http.StatusBadRequest)
		return
	}

	startStr := r.URL.Query().Get("start_date")
	endStr := r.URL.Query().Get("end_date")

	// Admin inspection shows newest entries first
	view, err := c.services.Timesheet.GetTimesheet(r.Context(), admin, id, startStr, endStr, true)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			http.Error(w, "Employee not found", http.StatusNotFound)
			return
		}
		if errors.Is(err, services.ErrUnauthorized) {
			http.Error(w, "Unauthorized", http.StatusForbidden)
			return
		}
		redirectRangeError(w, r, fmt.Sprintf("/admin/employees/%d", id), err)
		return
	}

	flash := flashFromQuery(r)
	if flash == nil && view.Filtered && len(view.Records) == 0 {
		flash = &models.FlashMessage{Type: "info", Message: "No entries found for this range."}
	}

	templateData := struct {
		Title     string
		User      *models.User
		AdminView bool
		Flash     *models.FlashMessage
		View      *services.TimesheetView
	}{
		Title:     view.Owner.Username + "'s Timesheet",
		User:      admin,
		AdminView: false, // Keeps the timesheet layout consistent with the dashboard
		Flash:     flash,
		View:      view,
	}

	renderTemplate(w, "dashboard", "templates/dashboard.html", templateData)
}

// DeleteForm handles GET /admin/delete
func (c *AdminController) DeleteForm(w http.ResponseWriter, r *http.Request) {
	admin := currentUser(r, c.services.Auth)

	employees, err := c.services.Auth.GetEmployees(r.Context(), admin)
	if err != nil {
		http.Error(w, "Failed to load employees: "+err.Error(), http.StatusInternalServerError)
		return
	}

	templateData := struct {
		Title     string
		User      *models.User
		Flash     *models.FlashMessage
		Employees []models.User
	}{
		Title:     "Delete Timesheet",
		User:      admin,
		Flash:     flashFromQuery(r),
		Employees: employees,
	}

	renderTemplate(w, "delete_timesheet", "templates/delete_timesheet.html", templateData)
}

// Delete handles POST /admin/delete. All-or-nothing per employee; the
// administrator confirms with their own password first.
func (c *AdminController) Delete(w http.ResponseWriter, r *http.Request) {
	admin := currentUser(r, c.services.Auth)

	if err := r.ParseForm(); err != nil {
		http.Error(w, "Failed to parse form: "+err.Error(), http.StatusBadRequest)
		return
	}

	targetID, err := strconv.Atoi(r.FormValue("user_id"))
	if err != nil {
		redirectWithFlash(w, r, "/admin/delete", "error", "Select an employee.")
		return
	}

	target, err := c.services.Auth.GetUser(r.Context(), targetID)
	if err != nil {
		http.Error(w, "Employee not found", http.StatusNotFound)
		return
	}

	count, err := c.services.Timesheet.DeleteTimesheet(r.Context(), admin, targetID, r.FormValue("password"))
	if err != nil {
		switch {
		case errors.Is(err, services.ErrPasswordMismatch):
			redirectWithFlash(w, r, "/admin/delete", "error", "Incorrect admin password.")
		case errors.Is(err, services.ErrUnauthorized):
			http.Error(w, "Unauthorized", http.StatusForbidden)
		case errors.Is(err, services.ErrNotFound):
			http.Error(w, "Employee not found", http.StatusNotFound)
		default:
			http.Error(w, "Failed to delete timesheet: "+err.Error(), http.StatusInternalServerError)
		}
		return
	}

	if count > 0 {
		redirectWithFlash(w, r, "/admin/employees", "success",
			fmt.Sprintf("Deleted %d timesheet entries for %s.", count, target.Username))
	} else {
		redirectWithFlash(w, r, "/admin/employees", "info",
			fmt.Sprintf("No timesheet entries found for %s.", target.Username))
	}
}
