package services

import (
	"github.com/blogem/timesheet/repositories"
)

// Services holds all service instances
type Services struct {
	Auth          AuthService
	Timesheet     TimesheetService
	AccessRequest AccessRequestService
}

// NewServices creates and initializes all service instances
func NewServices(repos *repositories.Repositories) *Services {
	return &Services{
		Auth:          NewAuthService(repos.Users),
		Timesheet:     NewTimesheetService(repos.Entries, repos.Users),
		AccessRequest: NewAccessRequestService(repos.AccessRequest),
	}
}
