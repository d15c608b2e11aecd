package models

import (
	"time"
)

// AccessRequest represents an unregistered visitor's request for an account.
// Approval happens out-of-band; there is no status transition stored here.
type AccessRequest struct {
	ID        int       `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	Email     string    `json:"email" db:"email"`
	Message   string    `json:"message" db:"message"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// AccessRequestForm represents form data for submitting an access request
type AccessRequestForm struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Message string `json:"message"`
}

// Validate validates the access request form data
func (f *AccessRequestForm) Validate() []string {
	var errors []string

	if f.Name == "" {
		errors = append(errors, "Name is required")
	}

	if len(f.Name) > 100 {
		errors = append(errors, "Name must be less than 100 characters")
	}

	if f.Email == "" {
		errors = append(errors, "Email is required")
	}

	if f.Email != "" && len(f.Email) > 255 {
		errors = append(errors, "Email must be less than 255 characters")
	}

	// Basic email validation (simple regex would be overkill for this simple app)
	if f.Email != "" && !isValidEmail(f.Email) {
		errors = append(errors, "Email format is invalid")
	}

	if len(f.Message) > 1000 {
		errors = append(errors, "Message must be less than 1000 characters")
	}

	return errors
}

// isValidEmail performs basic email validation
func isValidEmail(email string) bool {
	// Simple validation: must contain @ and at least one dot after @
	atIndex := -1
	for i, char := range email {
		if char == '@' {
			if atIndex != -1 {
				return false // Multiple @ symbols
			}
			atIndex = i
		}
	}

	if atIndex == -1 || atIndex == 0 || atIndex == len(email)-1 {
		return false // No @, or @ at start/end
	}

	// Check for dot after @
	for i := atIndex + 1; i < len(email); i++ {
		if email[i] == '.' && i < len(email)-1 {
			return true
		}
	}

	return false
}
