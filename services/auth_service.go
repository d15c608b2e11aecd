package services

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/blogem/timesheet/models"
	"github.com/blogem/timesheet/repositories"
)

// AuthService interface defines credential and account business logic
type AuthService interface {
	Authenticate(ctx context.Context, username, password string) (*models.User, error)
	GetUser(ctx context.Context, id int) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	GetEmployees(ctx context.Context, principal *models.User) ([]models.User, error)
	VerifyPassword(user *models.User, password string) error
	CreateUser(ctx context.Context, username, email, password string, isAdmin bool) (*models.User, error)
	EnsureAdmin(ctx context.Context, username, email, password string) error
}

// authService implements AuthService interface
type authService struct {
	userRepo repositories.UserRepository
}

// NewAuthService creates a new auth service
func NewAuthService(userRepo repositories.UserRepository) AuthService {
	return &authService{
		userRepo: userRepo,
	}
}

// Authenticate checks a username/password pair. Failures never reveal
// whether the username or the password was the wrong part.
func (s *authService) Authenticate(ctx context.Context, username, password string) (*models.User, error) {
	user, err := s.userRepo.GetByUsername(ctx, strings.TrimSpace(username))
	if err != nil {
		return nil, ErrCredentialMismatch
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, ErrCredentialMismatch
	}

	return user, nil
}

// GetUser retrieves a user by ID
func (s *authService) GetUser(ctx context.Context, id int) (*models.User, error) {
	if id <= 0 {
		return nil, ErrNotFound
	}

	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, ErrNotFound
	}

	return user, nil
}

// GetUserByEmail retrieves a user by email
func (s *authService) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	user, err := s.userRepo.GetByEmail(ctx, strings.TrimSpace(email))
	if err != nil {
		return nil, ErrNotFound
	}

	return user, nil
}

// GetEmployees lists all non-administrator accounts; admin only
func (s *authService) GetEmployees(ctx context.Context, principal *models.User) ([]models.User, error) {
	if !models.Allowed(principal, models.OpListEmployees, 0) {
		return nil, ErrUnauthorized
	}

	return s.userRepo.GetEmployees(ctx)
}

// VerifyPassword checks a password against a user's current hash.
// Used to re-authorize destructive operations at request time.
func (s *authService) VerifyPassword(user *models.User, password string) error {
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return ErrPasswordMismatch
	}
	return nil
}

// CreateUser creates a new account with a hashed password
func (s *authService) CreateUser(ctx context.Context, username, email, password string, isAdmin bool) (*models.User, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, fmt.Errorf("username is required")
	}
	if password == "" {
		return nil, fmt.Errorf("password is required")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Username:     username,
		Email:        strings.TrimSpace(email),
		PasswordHash: string(hash),
		IsAdmin:      isAdmin,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return user, nil
}

// EnsureAdmin seeds an administrator account on first startup when none
// exists. Account provisioning is otherwise out-of-band.
func (s *authService) EnsureAdmin(ctx context.Context, username, email, password string) error {
	if username == "" || password == "" {
		return nil
	}

	count, err := s.userRepo.CountAdmins(ctx)
	if err != nil {
		return fmt.Errorf("failed to count administrators: %w", err)
	}

	if count > 0 {
		return nil
	}

	if _, err := s.CreateUser(ctx, username, email, password, true); err != nil {
		return fmt.Errorf("failed to seed administrator: %w", err)
	}

	return nil
}
