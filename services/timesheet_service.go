package services

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/blogem/timesheet/models"
	"github.com/blogem/timesheet/repositories"
)

// TimesheetService interface defines timesheet business logic. Every
// operation takes the acting principal explicitly; nothing here reads
// ambient session state.
type TimesheetService interface {
	GetTimesheet(ctx context.Context, principal *models.User, ownerID int, startStr, endStr string, newestFirst bool) (*TimesheetView, error)
	AddEntry(ctx context.Context, principal *models.User, form *models.TimeEntryForm) (*models.TimeEntry, error)
	Export(ctx context.Context, principal *models.User, ownerID int) (*ExportData, error)
	DeleteTimesheet(ctx context.Context, principal *models.User, targetID int, password string) (int, error)
}

// TimesheetView represents one employee's records over a resolved window,
// with summary statistics
type TimesheetView struct {
	Owner        *models.User       `json:"owner"`
	Records      []models.TimeEntry `json:"records"`
	TotalHours   float64            `json:"total_hours"`
	AverageHours float64            `json:"average_hours"`
	WeekStart    time.Time          `json:"week_start"`
	WeekEnd      time.Time          `json:"week_end"`
	Filtered     bool               `json:"filtered"`
}

// ExportData represents one employee's full timesheet prepared for export
type ExportData struct {
	Username string             `json:"username"`
	Records  []models.TimeEntry `json:"records"`
}

// timesheetService implements TimesheetService interface
type timesheetService struct {
	entryRepo repositories.EntryRepository
	userRepo  repositories.UserRepository
	auth      AuthService
}

// NewTimesheetService creates a new timesheet service
func NewTimesheetService(entryRepo repositories.EntryRepository, userRepo repositories.UserRepository) TimesheetService {
	return &timesheetService{
		entryRepo: entryRepo,
		userRepo:  userRepo,
		auth:      NewAuthService(userRepo),
	}
}

// GetTimesheet resolves the requested date window and returns the owner's
// records in it plus summary statistics. Viewing someone else's timesheet
// is an admin-only operation; viewing your own is the dashboard.
func (s *timesheetService) GetTimesheet(ctx context.Context, principal *models.User, ownerID int, startStr, endStr string, newestFirst bool) (*TimesheetView, error) {
	op := models.OpViewTimesheet
	if principal != nil && principal.ID == ownerID {
		op = models.OpViewDashboard
	}
	if !models.Allowed(principal, op, ownerID) {
		return nil, ErrUnauthorized
	}

	owner, err := s.userRepo.GetByID(ctx, ownerID)
	if err != nil {
		return nil, ErrNotFound
	}

	window, err := ResolveRange(startStr, endStr, timeNow())
	if err != nil {
		return nil, err
	}

	records, err := s.entryRepo.GetByOwnerAndRange(ctx, owner.ID, window.Start, window.End, newestFirst)
	if err != nil {
		return nil, fmt.Errorf("failed to get time entries: %w", err)
	}

	total, average := Summarize(records)

	return &TimesheetView{
		Owner:        owner,
		Records:      records,
		TotalHours:   total,
		AverageHours: average,
		WeekStart:    window.Start,
		WeekEnd:      window.End,
		Filtered:     window.Filtered,
	}, nil
}

// AddEntry validates and persists a new time entry owned by the principal
func (s *timesheetService) AddEntry(ctx context.Context, principal *models.User, form *models.TimeEntryForm) (*models.TimeEntry, error) {
	if !models.Allowed(principal, models.OpAddEntry, 0) {
		return nil, ErrUnauthorized
	}

	// Field-level validation first, then the time ordering rule
	if errors := form.Validate(); len(errors) > 0 {
		return nil, fmt.Errorf("validation failed: %s", strings.Join(errors, ", "))
	}

	if !form.IsStartBeforeFinish() {
		return nil, ErrInvalidTimeOrder
	}

	date, err := models.ParseDate(form.Date)
	if err != nil {
		return nil, fmt.Errorf("invalid date format: %w", err)
	}

	productive, err := strconv.ParseFloat(strings.TrimSpace(form.ProductiveHours), 64)
	if err != nil || productive < 0 {
		return nil, fmt.Errorf("validation failed: Productive hours must be a non-negative number")
	}

	target, err := strconv.ParseFloat(strings.TrimSpace(form.TargetHours), 64)
	if err != nil || target < 0 {
		return nil, fmt.Errorf("validation failed: Target hours must be a non-negative number")
	}

	entry := &models.TimeEntry{
		UserID:          principal.ID,
		Date:            date,
		DayOfWeek:       models.DayName(date),
		StartTime:       strings.TrimSpace(form.StartTime),
		FinishTime:      strings.TrimSpace(form.FinishTime),
		ProductiveHours: productive,
		TargetHours:     target,
		Comment:         strings.TrimSpace(form.Comment),
	}

	if err := s.entryRepo.Create(ctx, entry); err != nil {
		return nil, fmt.Errorf("failed to create time entry: %w", err)
	}

	return entry, nil
}

// Export returns an employee's complete timesheet for CSV export.
// Administrators may export anyone's; an employee only their own.
func (s *timesheetService) Export(ctx context.Context, principal *models.User, ownerID int) (*ExportData, error) {
	if !models.Allowed(principal, models.OpExportTimesheet, ownerID) {
		return nil, ErrUnauthorized
	}

	owner, err := s.userRepo.GetByID(ctx, ownerID)
	if err != nil {
		return nil, ErrNotFound
	}

	records, err := s.entryRepo.GetByOwner(ctx, owner.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to get time entries: %w", err)
	}

	return &ExportData{
		Username: owner.Username,
		Records:  records,
	}, nil
}

// DeleteTimesheet removes every entry owned by the target employee and
// returns the number removed (possibly zero). The administrator must
// re-enter their own password; a wrong password aborts with no deletion.
func (s *timesheetService) DeleteTimesheet(ctx context.Context, principal *models.User, targetID int, password string) (int, error) {
	if !models.Allowed(principal, models.OpDeleteTimesheet, 0) {
		return 0, ErrUnauthorized
	}

	if err := s.auth.VerifyPassword(principal, password); err != nil {
		return 0, err
	}

	if _, err := s.userRepo.GetByID(ctx, targetID); err != nil {
		return 0, ErrNotFound
	}

	count, err := s.entryRepo.DeleteByOwner(ctx, targetID)
	if err != nil {
		return 0, fmt.Errorf("failed to delete timesheet: %w", err)
	}

	return count, nil
}
