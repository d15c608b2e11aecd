package repositories

import (
	"database/sql"
)

// Repositories struct holds all repository interfaces
type Repositories struct {
	Users         UserRepository
	Entries       EntryRepository
	AccessRequest AccessRequestRepository
	Audit         AuditRepository
}

// NewRepositories creates and initializes all repositories
func NewRepositories(db *sql.DB) *Repositories {
	return &Repositories{
		Users:         NewUserRepository(db),
		Entries:       NewEntryRepository(db),
		AccessRequest: NewAccessRequestRepository(db),
		Audit:         NewAuditRepository(db),
	}
}
