package repositories

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/blogem/timesheet/models"
)

// AccessRequestRepository interface defines access request database operations
type AccessRequestRepository interface {
	Create(ctx context.Context, request *models.AccessRequest) error
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	GetAll(ctx context.Context) ([]models.AccessRequest, error)
}

// accessRequestRepository implements AccessRequestRepository interface
type accessRequestRepository struct {
	db *sql.DB
}

// NewAccessRequestRepository creates a new access request repository
func NewAccessRequestRepository(db *sql.DB) AccessRequestRepository {
	return &accessRequestRepository{db: db}
}

// Create creates a new access request
func (r *accessRequestRepository) Create(ctx context.Context, request *models.AccessRequest) error {
	query := `
		INSERT INTO access_requests (name, email, message, created_at)
		VALUES (?, ?, ?, ?)
	`

	if request.CreatedAt.IsZero() {
		request.CreatedAt = time.Now()
	}

	result, err := r.db.ExecContext(ctx, query,
		request.Name,
		request.Email,
		request.Message,
		request.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create access request: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get inserted ID: %w", err)
	}

	request.ID = int(id)
	return nil
}

// ExistsByEmail reports whether an access request with the given email exists
func (r *accessRequestRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	query := `SELECT COUNT(*) FROM access_requests WHERE email = ?`

	var count int
	err := r.db.QueryRowContext(ctx, query, email).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("failed to check access request email: %w", err)
	}

	return count > 0, nil
}

// GetAll retrieves all access requests, newest first
func (r *accessRequestRepository) GetAll(ctx context.Context) ([]models.AccessRequest, error) {
	query := `
		SELECT id, name, email, message, created_at
		FROM access_requests
		ORDER BY created_at DESC
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query access requests: %w", err)
	}
	defer rows.Close()

	var requests []models.AccessRequest
	for rows.Next() {
		var request models.AccessRequest
		err := rows.Scan(
			&request.ID,
			&request.Name,
			&request.Email,
			&request.Message,
			&request.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan access request: %w", err)
		}
		requests = append(requests, request)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating access requests: %w", err)
	}

	return requests, nil
}
