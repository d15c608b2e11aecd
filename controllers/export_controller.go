package controllers

import (
	"encoding/csv"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/blogem/timesheet/services"
)

// ExportController handles CSV timesheet export
type ExportController struct {
	services *services.Services
}

// NewExportController creates a new export controller
func NewExportController(services *services.Services) *ExportController {
	return &ExportController{
		services: services,
	}
}

// ExportOwn handles GET /export
func (c *ExportController) ExportOwn(w http.ResponseWriter, r *http.Request) {
	user := currentUser(r, c.services.Auth)
	if user == nil {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	c.export(w, r, user.ID)
}

// Export handles GET /export/{id}. Administrators may export anyone's
// timesheet; an employee only their own.
func (c *ExportController) Export(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "Invalid employee ID", http.StatusBadRequest)
		return
	}

	c.export(w, r, id)
}

// export writes an employee's full timesheet as a CSV attachment
func (c *ExportController) export(w http.ResponseWriter, r *http.Request, ownerID int) {
	principal := currentUser(r, c.services.Auth)

	data, err := c.services.Timesheet.Export(r.Context(), principal, ownerID)
	if err != nil {
		if errors.Is(err, services.ErrUnauthorized) {
			http.Error(w, "Unauthorized", http.StatusForbidden)
			return
		}
		if errors.Is(err, services.ErrNotFound) {
			http.Error(w, "Employee not found", http.StatusNotFound)
			return
		}
		http.Error(w, "Failed to export timesheet: "+err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="`+data.Username+`_timesheet.csv"`)

	writer := csv.NewWriter(w)
	writer.Write([]string{"Date", "Day", "Start Time", "Finish Time", "Productive Hours", "Target Hours", "Comment"})

	for _, record := range data.Records {
		writer.Write([]string{
			record.GetFormattedDate(),
			record.DayOfWeek,
			record.StartTime,
			record.FinishTime,
			formatHours(record.ProductiveHours),
			formatHours(record.TargetHours),
			record.Comment, // Empty string when absent
		})
	}

	writer.Flush()
}

// formatHours renders an hours value without trailing zeros (7.5 -> "7.5", 8 -> "8")
func formatHours(h float64) string {
	return strconv.FormatFloat(h, 'f', -1, 64)
}
