package models

import (
	"time"
)

// User represents an account in the timesheet system, employee or administrator
type User struct {
	ID           int       `json:"id" db:"id"`
	Username     string    `json:"username" db:"username"`
	Email        string    `json:"email" db:"email"`
	PasswordHash string    `json:"-" db:"password_hash"`
	IsAdmin      bool      `json:"is_admin" db:"is_admin"`
	DateAdded    time.Time `json:"date_added" db:"date_added"`
}

// Role returns the role derived from the admin flag
func (u *User) Role() Role {
	if u == nil {
		return RoleAnonymous
	}
	if u.IsAdmin {
		return RoleAdministrator
	}
	return RoleEmployee
}
