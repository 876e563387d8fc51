// Package services provides the business logic layer for the laboratory
// management application. This file implements authentication services
// including credential validation and password hashing using bcrypt.
package services

import (
	"context"
	"errors"

	"github.com/vrash12/laboratory-management/internal/models"
	"github.com/vrash12/laboratory-management/internal/repository"
	"github.com/vrash12/laboratory-management/internal/security"
	"golang.org/x/crypto/bcrypt"
)

// ErrInvalidCredentials is returned for both unknown emails and wrong
// passwords so login failures never reveal which accounts exist.
var ErrInvalidCredentials = errors.New("invalid email or password")

// AuthService handles authentication and password management operations.
// Provides a layer of abstraction between HTTP handlers and the repository.
//
// Security Notes:
//   - bcrypt with the configured cost factor for password hashing
//   - Constant-time password comparison prevents timing attacks
//   - Never stores or logs plaintext passwords
type AuthService struct {
	userRepo *repository.UserRepository
	cfg      *security.SecurityConfig
}

// NewAuthService creates and returns a new AuthService instance.
func NewAuthService(cfg *security.SecurityConfig) *AuthService {
	return &AuthService{
		userRepo: repository.NewUserRepository(),
		cfg:      cfg,
	}
}

// Authenticate verifies credentials and returns the user record on success.
//
// Performs two-step validation: email lookup followed by bcrypt comparison
// of the supplied password against the stored hash. Both failure modes
// collapse into ErrInvalidCredentials.
func (s *AuthService) Authenticate(ctx context.Context, email, password string) (*models.User, error) {
	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return user, nil
}

// HashPassword generates a bcrypt hash of the provided plaintext password.
// Used when creating student accounts.
func (s *AuthService) HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cfg.BcryptCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// RegisterStudent hashes the password and creates a User-role account.
// Uniqueness of email and username is left to the database constraints;
// the handler translates those violations into form errors.
func (s *AuthService) RegisterStudent(ctx context.Context, user *models.User, password string) error {
	hash, err := s.HashPassword(password)
	if err != nil {
		return err
	}

	user.PasswordHash = hash
	user.Role = models.RoleUser

	return s.userRepo.Create(ctx, user)
}
