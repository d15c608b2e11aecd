package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/blogem/timesheet/models"
	"github.com/blogem/timesheet/repositories"
)

// AccessRequestService interface defines access request business logic
type AccessRequestService interface {
	Submit(ctx context.Context, form *models.AccessRequestForm) (*models.AccessRequest, error)
	GetAll(ctx context.Context) ([]models.AccessRequest, error)
}

// accessRequestService implements AccessRequestService interface
type accessRequestService struct {
	requestRepo repositories.AccessRequestRepository
}

// NewAccessRequestService creates a new access request service
func NewAccessRequestService(requestRepo repositories.AccessRequestRepository) AccessRequestService {
	return &accessRequestService{
		requestRepo: requestRepo,
	}
}

// Submit records an anonymous visitor's request for an account. At most
// one request per email; repeats are rejected without creating a row.
func (s *accessRequestService) Submit(ctx context.Context, form *models.AccessRequestForm) (*models.AccessRequest, error) {
	if errors := form.Validate(); len(errors) > 0 {
		return nil, fmt.Errorf("validation failed: %s", strings.Join(errors, ", "))
	}

	email := strings.ToLower(strings.TrimSpace(form.Email))

	exists, err := s.requestRepo.ExistsByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing requests: %w", err)
	}

	if exists {
		return nil, ErrDuplicateRequest
	}

	request := &models.AccessRequest{
		Name:    strings.TrimSpace(form.Name),
		Email:   email,
		Message: strings.TrimSpace(form.Message),
	}

	if err := s.requestRepo.Create(ctx, request); err != nil {
		return nil, fmt.Errorf("failed to create access request: %w", err)
	}

	return request, nil
}

// GetAll retrieves all pending access requests
func (s *accessRequestService) GetAll(ctx context.Context) ([]models.AccessRequest, error) {
	return s.requestRepo.GetAll(ctx)
}
