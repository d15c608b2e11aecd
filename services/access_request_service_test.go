package services

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/blogem/timesheet/database"
	"github.com/blogem/timesheet/models"
	"github.com/blogem/timesheet/repositories"
)

func setupAccessRequestService(t *testing.T) AccessRequestService {
	dbPath := filepath.Join(t.TempDir(), "test.db")
	if err := database.InitializeDatabase(dbPath); err != nil {
		t.Fatalf("Failed to initialize test database: %v", err)
	}
	t.Cleanup(func() {
		database.CloseDB()
	})

	repos := repositories.NewRepositories(database.GetDB())
	return NewAccessRequestService(repos.AccessRequest)
}

func TestSubmitAccessRequest(t *testing.T) {
	service := setupAccessRequestService(t)
	ctx := context.Background()

	form := &models.AccessRequestForm{
		Name:    "Jane Doe",
		Email:   " Jane.Doe@Example.Com ",
		Message: "Joining the ops team next week",
	}

	request, err := service.Submit(ctx, form)
	if err != nil {
		t.Fatalf("Failed to submit access request: %v", err)
	}

	if request.ID == 0 {
		t.Error("Expected request ID to be set after submission")
	}

	// Email is stored normalized
	assert.Equal(t, "jane.doe@example.com", request.Email)

	requests, err := service.GetAll(ctx)
	assert.NoError(t, err)
	assert.Len(t, requests, 1)
}

func TestSubmitAccessRequest_DuplicateEmail(t *testing.T) {
	service := setupAccessRequestService(t)
	ctx := context.Background()

	first := &models.AccessRequestForm{Name: "Jane Doe", Email: "jane@example.com"}
	if _, err := service.Submit(ctx, first); err != nil {
		t.Fatalf("Failed to submit first request: %v", err)
	}

	// Same email again, different casing
	second := &models.AccessRequestForm{Name: "J. Doe", Email: "JANE@example.com", Message: "following up"}
	_, err := service.Submit(ctx, second)

	assert.ErrorIs(t, err, ErrDuplicateRequest)

	requests, _ := service.GetAll(ctx)
	assert.Len(t, requests, 1)
}

func TestSubmitAccessRequest_Invalid(t *testing.T) {
	service := setupAccessRequestService(t)
	ctx := context.Background()

	_, err := service.Submit(ctx, &models.AccessRequestForm{Name: "", Email: "jane@example.com"})
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "Name is required")

	_, err = service.Submit(ctx, &models.AccessRequestForm{Name: "Jane", Email: "not-an-email"})
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "Email format is invalid")

	requests, _ := service.GetAll(ctx)
	assert.Len(t, requests, 0)
}
