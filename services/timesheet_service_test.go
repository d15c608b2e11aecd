package services

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"

	"github.com/blogem/timesheet/database"
	"github.com/blogem/timesheet/models"
	"github.com/blogem/timesheet/repositories"
)

// TimesheetServiceTestSuite exercises the timesheet and auth services
// against a real SQLite database with the actual migrations applied.
type TimesheetServiceTestSuite struct {
	suite.Suite
	ctx      context.Context
	repos    *repositories.Repositories
	auth     AuthService
	service  TimesheetService
	admin    *models.User
	employee *models.User
}

// SetupTest creates a fresh database and seeds one administrator and one
// employee before each test
func (suite *TimesheetServiceTestSuite) SetupTest() {
	dbPath := filepath.Join(suite.T().TempDir(), "test.db")
	if err := database.InitializeDatabase(dbPath); err != nil {
		suite.T().Fatalf("Failed to initialize test database: %v", err)
	}
	suite.T().Cleanup(func() {
		database.CloseDB()
	})

	suite.ctx = context.Background()
	suite.repos = repositories.NewRepositories(database.GetDB())
	suite.auth = NewAuthService(suite.repos.Users)
	suite.service = NewTimesheetService(suite.repos.Entries, suite.repos.Users)

	var err error
	suite.admin, err = suite.auth.CreateUser(suite.ctx, "admin", "admin@example.com", "admin-secret", true)
	if err != nil {
		suite.T().Fatalf("Failed to create admin: %v", err)
	}

	suite.employee, err = suite.auth.CreateUser(suite.ctx, "jdoe", "jdoe@example.com", "employee-secret", false)
	if err != nil {
		suite.T().Fatalf("Failed to create employee: %v", err)
	}
}

// addEntry inserts an entry for the given owner on the given date
func (suite *TimesheetServiceTestSuite) addEntry(ownerID int, date string, productive float64) {
	day, err := models.ParseDate(date)
	if err != nil {
		suite.T().Fatalf("Bad test date %s: %v", date, err)
	}

	entry := &models.TimeEntry{
		UserID:          ownerID,
		Date:            day,
		DayOfWeek:       models.DayName(day),
		StartTime:       "09:00",
		FinishTime:      "17:00",
		ProductiveHours: productive,
		TargetHours:     8,
	}
	if err := suite.repos.Entries.Create(suite.ctx, entry); err != nil {
		suite.T().Fatalf("Failed to seed entry: %v", err)
	}
}

// withFixedClock pins the service clock for the duration of one test
func (suite *TimesheetServiceTestSuite) withFixedClock(today time.Time) {
	original := timeNow
	timeNow = func() time.Time { return today }
	suite.T().Cleanup(func() {
		timeNow = original
	})
}

func (suite *TimesheetServiceTestSuite) TestAddEntry_Success() {
	form := &models.TimeEntryForm{
		Date:            "2024-06-12",
		StartTime:       "09:00",
		FinishTime:      "17:30",
		ProductiveHours: "7.5",
		TargetHours:     "8",
		Comment:         "code review day",
	}

	entry, err := suite.service.AddEntry(suite.ctx, suite.employee, form)

	assert.NoError(suite.T(), err)
	assert.NotNil(suite.T(), entry)
	assert.NotZero(suite.T(), entry.ID)
	assert.Equal(suite.T(), suite.employee.ID, entry.UserID)
	assert.Equal(suite.T(), "Wednesday", entry.DayOfWeek)
	assert.Equal(suite.T(), 7.5, entry.ProductiveHours)

	count, err := suite.repos.Entries.CountByOwner(suite.ctx, suite.employee.ID)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), 1, count)
}

func (suite *TimesheetServiceTestSuite) TestAddEntry_InvalidTimeOrder() {
	form := &models.TimeEntryForm{
		Date:            "2024-06-12",
		StartTime:       "09:00",
		FinishTime:      "09:00",
		ProductiveHours: "0",
		TargetHours:     "8",
	}

	entry, err := suite.service.AddEntry(suite.ctx, suite.employee, form)

	assert.ErrorIs(suite.T(), err, ErrInvalidTimeOrder)
	assert.Nil(suite.T(), entry)

	count, _ := suite.repos.Entries.CountByOwner(suite.ctx, suite.employee.ID)
	assert.Equal(suite.T(), 0, count)
}

func (suite *TimesheetServiceTestSuite) TestAddEntry_AnonymousRejected() {
	form := &models.TimeEntryForm{
		Date:            "2024-06-12",
		StartTime:       "09:00",
		FinishTime:      "17:00",
		ProductiveHours: "8",
		TargetHours:     "8",
	}

	_, err := suite.service.AddEntry(suite.ctx, nil, form)

	assert.ErrorIs(suite.T(), err, ErrUnauthorized)
}

func (suite *TimesheetServiceTestSuite) TestGetTimesheet_DefaultWeek() {
	suite.withFixedClock(time.Date(2024, 6, 12, 10, 0, 0, 0, time.UTC)) // Wednesday

	suite.addEntry(suite.employee.ID, "2024-06-10", 8) // Monday, in week
	suite.addEntry(suite.employee.ID, "2024-06-11", 6) // Tuesday, in week
	suite.addEntry(suite.employee.ID, "2024-06-03", 7) // previous week

	view, err := suite.service.GetTimesheet(suite.ctx, suite.employee, suite.employee.ID, "", "", false)

	assert.NoError(suite.T(), err)
	assert.False(suite.T(), view.Filtered)
	assert.Equal(suite.T(), "2024-06-10", models.FormatDate(view.WeekStart))
	assert.Equal(suite.T(), "2024-06-16", models.FormatDate(view.WeekEnd))
	assert.Len(suite.T(), view.Records, 2)
	assert.Equal(suite.T(), 14.0, view.TotalHours)
	assert.Equal(suite.T(), 7.0, view.AverageHours)

	// Oldest first for the dashboard
	assert.Equal(suite.T(), "2024-06-10", models.FormatDate(view.Records[0].Date))
	assert.Equal(suite.T(), "2024-06-11", models.FormatDate(view.Records[1].Date))
}

func (suite *TimesheetServiceTestSuite) TestGetTimesheet_FilteredRange() {
	suite.addEntry(suite.employee.ID, "2024-05-01", 8)
	suite.addEntry(suite.employee.ID, "2024-05-02", 7)
	suite.addEntry(suite.employee.ID, "2024-05-20", 6) // outside filter

	view, err := suite.service.GetTimesheet(suite.ctx, suite.employee, suite.employee.ID, "2024-05-01", "2024-05-10", false)

	assert.NoError(suite.T(), err)
	assert.True(suite.T(), view.Filtered)
	assert.Len(suite.T(), view.Records, 2)
	assert.Equal(suite.T(), 15.0, view.TotalHours)
	assert.Equal(suite.T(), 7.5, view.AverageHours)
}

func (suite *TimesheetServiceTestSuite) TestGetTimesheet_RangeErrors() {
	_, err := suite.service.GetTimesheet(suite.ctx, suite.employee, suite.employee.ID, "2024-06-20", "2024-06-10", false)
	assert.ErrorIs(suite.T(), err, ErrInvertedRange)

	_, err = suite.service.GetTimesheet(suite.ctx, suite.employee, suite.employee.ID, "bad-date", "2024-06-10", false)
	assert.ErrorIs(suite.T(), err, ErrInvalidFormat)

	_, err = suite.service.GetTimesheet(suite.ctx, suite.employee, suite.employee.ID, "2100-01-01", "2100-01-02", false)
	assert.ErrorIs(suite.T(), err, ErrFutureRange)
}

func (suite *TimesheetServiceTestSuite) TestGetTimesheet_EmployeeCannotViewOthers() {
	_, err := suite.service.GetTimesheet(suite.ctx, suite.employee, suite.admin.ID, "", "", false)

	assert.ErrorIs(suite.T(), err, ErrUnauthorized)
}

func (suite *TimesheetServiceTestSuite) TestGetTimesheet_AdminViewsEmployeeNewestFirst() {
	suite.addEntry(suite.employee.ID, "2024-05-01", 8)
	suite.addEntry(suite.employee.ID, "2024-05-03", 7)

	view, err := suite.service.GetTimesheet(suite.ctx, suite.admin, suite.employee.ID, "2024-05-01", "2024-05-05", true)

	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), suite.employee.ID, view.Owner.ID)
	assert.Len(suite.T(), view.Records, 2)
	assert.Equal(suite.T(), "2024-05-03", models.FormatDate(view.Records[0].Date))
	assert.Equal(suite.T(), "2024-05-01", models.FormatDate(view.Records[1].Date))
}

func (suite *TimesheetServiceTestSuite) TestGetTimesheet_UnknownOwner() {
	_, err := suite.service.GetTimesheet(suite.ctx, suite.admin, 9999, "", "", false)

	assert.ErrorIs(suite.T(), err, ErrNotFound)
}

func (suite *TimesheetServiceTestSuite) TestExport_OwnTimesheet() {
	suite.addEntry(suite.employee.ID, "2024-05-01", 8)
	suite.addEntry(suite.employee.ID, "2024-05-02", 7)

	data, err := suite.service.Export(suite.ctx, suite.employee, suite.employee.ID)

	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), "jdoe", data.Username)
	assert.Len(suite.T(), data.Records, 2)
}

func (suite *TimesheetServiceTestSuite) TestExport_EmployeeCannotExportOthers() {
	_, err := suite.service.Export(suite.ctx, suite.employee, suite.admin.ID)

	assert.ErrorIs(suite.T(), err, ErrUnauthorized)
}

func (suite *TimesheetServiceTestSuite) TestExport_AdminExportsAnyEmployee() {
	suite.addEntry(suite.employee.ID, "2024-05-01", 8)

	data, err := suite.service.Export(suite.ctx, suite.admin, suite.employee.ID)

	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), "jdoe", data.Username)
	assert.Len(suite.T(), data.Records, 1)
}

func (suite *TimesheetServiceTestSuite) TestDeleteTimesheet_Success() {
	for _, date := range []string{"2024-05-01", "2024-05-02", "2024-05-03", "2024-05-06", "2024-05-07"} {
		suite.addEntry(suite.employee.ID, date, 8)
	}

	count, err := suite.service.DeleteTimesheet(suite.ctx, suite.admin, suite.employee.ID, "admin-secret")

	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), 5, count)

	remaining, _ := suite.repos.Entries.CountByOwner(suite.ctx, suite.employee.ID)
	assert.Equal(suite.T(), 0, remaining)
}

func (suite *TimesheetServiceTestSuite) TestDeleteTimesheet_EmptyTimesheetReportsZero() {
	count, err := suite.service.DeleteTimesheet(suite.ctx, suite.admin, suite.employee.ID, "admin-secret")

	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), 0, count)
}

func (suite *TimesheetServiceTestSuite) TestDeleteTimesheet_WrongPassword() {
	suite.addEntry(suite.employee.ID, "2024-05-01", 8)

	count, err := suite.service.DeleteTimesheet(suite.ctx, suite.admin, suite.employee.ID, "wrong-password")

	assert.ErrorIs(suite.T(), err, ErrPasswordMismatch)
	assert.Equal(suite.T(), 0, count)

	// Nothing was deleted
	remaining, _ := suite.repos.Entries.CountByOwner(suite.ctx, suite.employee.ID)
	assert.Equal(suite.T(), 1, remaining)
}

func (suite *TimesheetServiceTestSuite) TestDeleteTimesheet_EmployeeForbidden() {
	suite.addEntry(suite.employee.ID, "2024-05-01", 8)

	_, err := suite.service.DeleteTimesheet(suite.ctx, suite.employee, suite.employee.ID, "employee-secret")

	assert.ErrorIs(suite.T(), err, ErrUnauthorized)

	remaining, _ := suite.repos.Entries.CountByOwner(suite.ctx, suite.employee.ID)
	assert.Equal(suite.T(), 1, remaining)
}

func (suite *TimesheetServiceTestSuite) TestDeleteTimesheet_UnknownTarget() {
	_, err := suite.service.DeleteTimesheet(suite.ctx, suite.admin, 9999, "admin-secret")

	assert.ErrorIs(suite.T(), err, ErrNotFound)
}

func (suite *TimesheetServiceTestSuite) TestAuthenticate() {
	user, err := suite.auth.Authenticate(suite.ctx, "jdoe", "employee-secret")
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), suite.employee.ID, user.ID)

	// Wrong password and unknown username fail identically
	_, err = suite.auth.Authenticate(suite.ctx, "jdoe", "wrong-password")
	assert.ErrorIs(suite.T(), err, ErrCredentialMismatch)

	_, err = suite.auth.Authenticate(suite.ctx, "nobody", "employee-secret")
	assert.ErrorIs(suite.T(), err, ErrCredentialMismatch)
}

func (suite *TimesheetServiceTestSuite) TestGetEmployees() {
	employees, err := suite.auth.GetEmployees(suite.ctx, suite.admin)

	assert.NoError(suite.T(), err)
	assert.Len(suite.T(), employees, 1)
	assert.Equal(suite.T(), "jdoe", employees[0].Username)

	_, err = suite.auth.GetEmployees(suite.ctx, suite.employee)
	assert.ErrorIs(suite.T(), err, ErrUnauthorized)
}

func (suite *TimesheetServiceTestSuite) TestEnsureAdmin_SkipsWhenAdminExists() {
	err := suite.auth.EnsureAdmin(suite.ctx, "seeded", "seeded@example.com", "seeded-secret")
	assert.NoError(suite.T(), err)

	// The seed account must not have been created
	_, err = suite.auth.Authenticate(suite.ctx, "seeded", "seeded-secret")
	assert.ErrorIs(suite.T(), err, ErrCredentialMismatch)
}

// TestRunTimesheetServiceTestSuite runs the test suite
func TestRunTimesheetServiceTestSuite(t *testing.T) {
	suite.Run(t, new(TimesheetServiceTestSuite))
}
