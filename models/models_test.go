package models

import (
	"testing"
	"time"
)

// Test TimeEntryForm validation
func TestTimeEntryFormValidation(t *testing.T) {
	// Test valid form
	validForm := TimeEntryForm{
		Date:            "2024-06-12",
		StartTime:       "09:00",
		FinishTime:      "17:30",
		ProductiveHours: "7.5",
		TargetHours:     "8",
	}
	errors := validForm.Validate()
	if len(errors) != 0 {
		t.Errorf("Expected no errors for valid form, got: %v", errors)
	}

	// Test invalid form
	invalidForm := TimeEntryForm{
		Date:            "12/06/2024", // Wrong format
		StartTime:       "25:00",      // Invalid time
		FinishTime:      "17:00",
		ProductiveHours: "",
		TargetHours:     "8",
	}
	errors = invalidForm.Validate()
	if len(errors) != 3 {
		t.Errorf("Expected 3 errors for invalid form, got: %v", errors)
	}
}

// Test start/finish ordering
func TestIsStartBeforeFinish(t *testing.T) {
	cases := []struct {
		start, finish string
		want          bool
	}{
		{"09:00", "17:00", true},
		{"17:00", "09:00", false},
		{"09:00", "09:00", false}, // Equal times are rejected
		{"09:00", "09:01", true},
	}

	for _, c := range cases {
		form := TimeEntryForm{StartTime: c.start, FinishTime: c.finish}
		if got := form.IsStartBeforeFinish(); got != c.want {
			t.Errorf("IsStartBeforeFinish(%s, %s) = %v, want %v", c.start, c.finish, got, c.want)
		}
	}
}

// Test time validation functions
func TestTimeValidation(t *testing.T) {
	// Test valid times
	validTimes := []string{"00:00", "09:00", "17:30", "23:59"}
	for _, timeStr := range validTimes {
		if !isValidTimeFormat(timeStr) {
			t.Errorf("Expected %s to be valid time format", timeStr)
		}
	}

	// Test invalid times
	invalidTimes := []string{"", "9:00", "25:00", "12:60", "ab:cd", "12:3"}
	for _, timeStr := range invalidTimes {
		if isValidTimeFormat(timeStr) {
			t.Errorf("Expected %s to be invalid time format", timeStr)
		}
	}
}

// Test weekday name derivation
func TestDayName(t *testing.T) {
	wednesday := time.Date(2024, 6, 12, 0, 0, 0, 0, time.UTC)
	if DayName(wednesday) != "Wednesday" {
		t.Errorf("Expected Wednesday, got %s", DayName(wednesday))
	}

	sunday := time.Date(2024, 6, 16, 0, 0, 0, 0, time.UTC)
	if DayName(sunday) != "Sunday" {
		t.Errorf("Expected Sunday, got %s", DayName(sunday))
	}
}

// Test week range calculation
func TestGetWeekContaining(t *testing.T) {
	// Wednesday 2024-06-12 falls in the week 2024-06-10 .. 2024-06-16
	wednesday := time.Date(2024, 6, 12, 15, 30, 0, 0, time.UTC)
	week := GetWeekContaining(wednesday)

	if FormatDate(week.Start) != "2024-06-10" {
		t.Errorf("Expected week start 2024-06-10, got %s", FormatDate(week.Start))
	}
	if FormatDate(week.End) != "2024-06-16" {
		t.Errorf("Expected week end 2024-06-16, got %s", FormatDate(week.End))
	}

	// Sunday belongs to the week that started the previous Monday
	sunday := time.Date(2024, 6, 16, 0, 0, 0, 0, time.UTC)
	week = GetWeekContaining(sunday)
	if FormatDate(week.Start) != "2024-06-10" {
		t.Errorf("Expected week start 2024-06-10 for Sunday, got %s", FormatDate(week.Start))
	}

	// Monday starts its own week
	monday := time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC)
	week = GetWeekContaining(monday)
	if FormatDate(week.Start) != "2024-06-10" {
		t.Errorf("Expected week start 2024-06-10 for Monday, got %s", FormatDate(week.Start))
	}
}

// Test AccessRequestForm validation
func TestAccessRequestFormValidation(t *testing.T) {
	validForm := AccessRequestForm{
		Name:  "John Doe",
		Email: "john@example.com",
	}
	errors := validForm.Validate()
	if len(errors) != 0 {
		t.Errorf("Expected no errors for valid form, got: %v", errors)
	}

	invalidForm := AccessRequestForm{
		Name:  "", // Empty name
		Email: "invalid-email",
	}
	errors = invalidForm.Validate()
	if len(errors) != 2 {
		t.Errorf("Expected 2 errors for invalid form, got: %v", errors)
	}
}

// Test the authorization table
func TestAllowed(t *testing.T) {
	admin := &User{ID: 1, Username: "admin", IsAdmin: true}
	employee := &User{ID: 2, Username: "alice"}

	cases := []struct {
		name     string
		user     *User
		op       Operation
		targetID int
		want     bool
	}{
		{"employee views own dashboard", employee, OpViewDashboard, 0, true},
		{"admin views dashboard", admin, OpViewDashboard, 0, true},
		{"anonymous views dashboard", nil, OpViewDashboard, 0, false},
		{"employee adds entry", employee, OpAddEntry, 0, true},
		{"employee lists employees", employee, OpListEmployees, 0, false},
		{"admin lists employees", admin, OpListEmployees, 0, true},
		{"employee views another timesheet", employee, OpViewTimesheet, 3, false},
		{"admin views timesheet", admin, OpViewTimesheet, 2, true},
		{"employee exports own timesheet", employee, OpExportTimesheet, 2, true},
		{"employee exports another timesheet", employee, OpExportTimesheet, 3, false},
		{"admin exports any timesheet", admin, OpExportTimesheet, 2, true},
		{"employee deletes timesheet", employee, OpDeleteTimesheet, 2, false},
		{"admin deletes timesheet", admin, OpDeleteTimesheet, 2, true},
		{"anonymous submits access request", nil, OpSubmitAccessRequest, 0, true},
		{"employee submits access request", employee, OpSubmitAccessRequest, 0, false},
	}

	for _, c := range cases {
		if got := Allowed(c.user, c.op, c.targetID); got != c.want {
			t.Errorf("%s: Allowed = %v, want %v", c.name, got, c.want)
		}
	}
}

// Test role derivation
func TestUserRole(t *testing.T) {
	var anon *User
	if anon.Role() != RoleAnonymous {
		t.Error("Expected nil user to be anonymous")
	}

	employee := &User{ID: 1}
	if employee.Role() != RoleEmployee {
		t.Error("Expected non-admin user to be employee")
	}

	admin := &User{ID: 1, IsAdmin: true}
	if admin.Role() != RoleAdministrator {
		t.Error("Expected admin user to be administrator")
	}
}
