package models

import (
	"time"
)

// TimeEntry represents one employee's logged work hours for one calendar date
type TimeEntry struct {
	ID              int       `json:"id" db:"id"`
	UserID          int       `json:"user_id" db:"user_id"`
	Date            time.Time `json:"date" db:"date"`
	DayOfWeek       string    `json:"day_of_week" db:"day_of_week"`
	StartTime       string    `json:"start_time" db:"start_time"`     // "09:00" format
	FinishTime      string    `json:"finish_time" db:"finish_time"`   // "17:30" format
	ProductiveHours float64   `json:"productive_hours" db:"productive_hours"`
	TargetHours     float64   `json:"target_hours" db:"target_hours"`
	Comment         string    `json:"comment,omitempty" db:"comment"`
}

// TotalHours returns the hours this entry contributes to summary statistics
func (e *TimeEntry) TotalHours() float64 {
	return e.ProductiveHours
}

// GetFormattedDate returns the entry date as YYYY-MM-DD
func (e *TimeEntry) GetFormattedDate() string {
	return FormatDate(e.Date)
}

// TimeEntryForm represents form data for logging a new time entry
type TimeEntryForm struct {
	Date            string `json:"date"`
	StartTime       string `json:"start_time"`
	FinishTime      string `json:"finish_time"`
	ProductiveHours string `json:"productive_hours"`
	TargetHours     string `json:"target_hours"`
	Comment         string `json:"comment"`
}

// Validate validates the time entry form data at field level.
// The start/finish ordering check is a separate business rule, see
// IsStartBeforeFinish.
func (f *TimeEntryForm) Validate() []string {
	var errors []string

	if f.Date == "" {
		errors = append(errors, "Date is required")
	} else if _, err := ParseDate(f.Date); err != nil {
		errors = append(errors, "Date must be in YYYY-MM-DD format")
	}

	if !isValidTimeFormat(f.StartTime) {
		errors = append(errors, "Start time must be in HH:MM format (e.g., 09:00)")
	}

	if !isValidTimeFormat(f.FinishTime) {
		errors = append(errors, "Finish time must be in HH:MM format (e.g., 17:00)")
	}

	if f.ProductiveHours == "" {
		errors = append(errors, "Productive hours is required")
	}

	if f.TargetHours == "" {
		errors = append(errors, "Target hours is required")
	}

	if len(f.Comment) > 500 {
		errors = append(errors, "Comment must be less than 500 characters")
	}

	return errors
}

// IsStartBeforeFinish reports whether the form's start time strictly
// precedes its finish time. Assumes both times already passed Validate.
func (f *TimeEntryForm) IsStartBeforeFinish() bool {
	return timeToMinutes(f.StartTime) < timeToMinutes(f.FinishTime)
}

// DayName returns the full English weekday name for a date
func DayName(date time.Time) string {
	return date.Weekday().String()
}

// isValidTimeFormat validates HH:MM format
func isValidTimeFormat(timeStr string) bool {
	if len(timeStr) != 5 {
		return false
	}

	if timeStr[2] != ':' {
		return false
	}

	// Parse hours
	hours := timeStr[0:2]
	if !isNumeric(hours) {
		return false
	}
	h := parseNumber(hours)
	if h < 0 || h > 23 {
		return false
	}

	// Parse minutes
	minutes := timeStr[3:5]
	if !isNumeric(minutes) {
		return false
	}
	m := parseNumber(minutes)
	if m < 0 || m > 59 {
		return false
	}

	return true
}

// timeToMinutes converts HH:MM to total minutes
func timeToMinutes(timeStr string) int {
	hours := parseNumber(timeStr[0:2])
	minutes := parseNumber(timeStr[3:5])
	return hours*60 + minutes
}

// isNumeric checks if a string contains only digits
func isNumeric(s string) bool {
	for _, char := range s {
		if char < '0' || char > '9' {
			return false
		}
	}
	return true
}

// parseNumber converts a numeric string to int (assumes valid input)
func parseNumber(s string) int {
	result := 0
	for _, char := range s {
		result = result*10 + int(char-'0')
	}
	return result
}
