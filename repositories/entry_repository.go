package repositories

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/blogem/timesheet/models"
)

// EntryRepository interface defines time entry database operations
type EntryRepository interface {
	GetByOwnerAndRange(ctx context.Context, ownerID int, from, to time.Time, newestFirst bool) ([]models.TimeEntry, error)
	GetByOwner(ctx context.Context, ownerID int) ([]models.TimeEntry, error)
	Create(ctx context.Context, entry *models.TimeEntry) error
	DeleteByOwner(ctx context.Context, ownerID int) (int, error)
	CountByOwner(ctx context.Context, ownerID int) (int, error)
}

// entryRepository implements EntryRepository interface
type entryRepository struct {
	db *sql.DB
}

// NewEntryRepository creates a new time entry repository
func NewEntryRepository(db *sql.DB) EntryRepository {
	return &entryRepository{db: db}
}

// GetByOwnerAndRange retrieves one owner's entries whose date falls in [from, to],
// ordered by date ascending or descending
func (r *entryRepository) GetByOwnerAndRange(ctx context.Context, ownerID int, from, to time.Time, newestFirst bool) ([]models.TimeEntry, error) {
	order := "ASC"
	if newestFirst {
		order = "DESC"
	}

	query := `
		SELECT id, user_id, date, day_of_week, start_time, finish_time,
		       productive_hours, target_hours, comment
		FROM time_entries
		WHERE user_id = ? AND date BETWEEN ? AND ?
		ORDER BY date ` + order + `, id ` + order

	rows, err := r.db.QueryContext(ctx, query, ownerID, models.FormatDate(from), models.FormatDate(to))
	if err != nil {
		return nil, fmt.Errorf("failed to query time entries: %w", err)
	}
	defer rows.Close()

	return scanEntries(rows)
}

// GetByOwner retrieves all of one owner's entries, oldest first
func (r *entryRepository) GetByOwner(ctx context.Context, ownerID int) ([]models.TimeEntry, error) {
	query := `
		SELECT id, user_id, date, day_of_week, start_time, finish_time,
		       productive_hours, target_hours, comment
		FROM time_entries
		WHERE user_id = ?
		ORDER BY date ASC, id ASC
	`

	rows, err := r.db.QueryContext(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to query time entries: %w", err)
	}
	defer rows.Close()

	return scanEntries(rows)
}

// scanEntries scans time entry rows
func scanEntries(rows *sql.Rows) ([]models.TimeEntry, error) {
	var entries []models.TimeEntry
	for rows.Next() {
		var entry models.TimeEntry
		var dateStr string
		var comment sql.NullString

		err := rows.Scan(
			&entry.ID,
			&entry.UserID,
			&dateStr,
			&entry.DayOfWeek,
			&entry.StartTime,
			&entry.FinishTime,
			&entry.ProductiveHours,
			&entry.TargetHours,
			&comment,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan time entry: %w", err)
		}

		date, err := models.ParseDate(dateStr)
		if err != nil {
			return nil, fmt.Errorf("invalid date %q in time entry %d: %w", dateStr, entry.ID, err)
		}
		entry.Date = date

		if comment.Valid {
			entry.Comment = comment.String
		}

		entries = append(entries, entry)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating time entries: %w", err)
	}

	return entries, nil
}

// Create creates a new time entry
func (r *entryRepository) Create(ctx context.Context, entry *models.TimeEntry) error {
	query := `
		INSERT INTO time_entries (user_id, date, day_of_week, start_time, finish_time,
		                          productive_hours, target_hours, comment)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`

	var comment interface{}
	if entry.Comment != "" {
		comment = entry.Comment
	}

	result, err := r.db.ExecContext(ctx, query,
		entry.UserID,
		models.FormatDate(entry.Date),
		entry.DayOfWeek,
		entry.StartTime,
		entry.FinishTime,
		entry.ProductiveHours,
		entry.TargetHours,
		comment,
	)
	if err != nil {
		return fmt.Errorf("failed to create time entry: %w", err)
	}

	// Get the inserted ID
	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get inserted ID: %w", err)
	}

	entry.ID = int(id)
	return nil
}

// DeleteByOwner deletes all of one owner's entries and returns the number removed.
// Zero rows is not an error; the caller reports the count either way.
func (r *entryRepository) DeleteByOwner(ctx context.Context, ownerID int) (int, error) {
	query := `DELETE FROM time_entries WHERE user_id = ?`

	result, err := r.db.ExecContext(ctx, query, ownerID)
	if err != nil {
		return 0, fmt.Errorf("failed to delete time entries: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get rows affected: %w", err)
	}

	return int(rowsAffected), nil
}

// CountByOwner returns the number of entries owned by a user
func (r *entryRepository) CountByOwner(ctx context.Context, ownerID int) (int, error) {
	query := `SELECT COUNT(*) FROM time_entries WHERE user_id = ?`

	var count int
	err := r.db.QueryRowContext(ctx, query, ownerID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count time entries: %w", err)
	}

	return count, nil
}
