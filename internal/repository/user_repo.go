// Package repository implements the database access layer for the laboratory
// management application. Every repository issues parameterized SQL against
// the shared database.DB pool and maps rows into models types.
package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/vrash12/laboratory-management/internal/database"
	"github.com/vrash12/laboratory-management/internal/models"
)

// UserRepository handles user account database operations.
type UserRepository struct{}

// NewUserRepository creates a new instance of UserRepository.
func NewUserRepository() *UserRepository {
	return &UserRepository{}
}

// FindByEmail retrieves a user by email address.
// Used during login to validate credentials.
//
// Database: Parameterized lookup on the unique email column.
func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	query := `
		SELECT id, student_number, username, password_hash, full_name, email, role, created_at
		FROM users
		WHERE email = $1
	`

	var user models.User
	err := database.DB.QueryRow(ctx, query, email).Scan(
		&user.ID, &user.StudentNumber, &user.Username, &user.PasswordHash,
		&user.FullName, &user.Email, &user.Role, &user.CreatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, fmt.Errorf("user not found")
	}
	if err != nil {
		return nil, err
	}

	return &user, nil
}

// FindByID retrieves a user by primary key.
// Used for session resolution and authorization checks.
func (r *UserRepository) FindByID(ctx context.Context, id int) (*models.User, error) {
	query := `
		SELECT id, student_number, username, password_hash, full_name, email, role, created_at
		FROM users
		WHERE id = $1
	`

	var user models.User
	err := database.DB.QueryRow(ctx, query, id).Scan(
		&user.ID, &user.StudentNumber, &user.Username, &user.PasswordHash,
		&user.FullName, &user.Email, &user.Role, &user.CreatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, fmt.Errorf("user not found")
	}
	if err != nil {
		return nil, err
	}

	return &user, nil
}

// ListStudents retrieves all accounts with the User role, ordered by name.
// Used by the enrollment form to show assignable students.
//
// Database: Excludes password_hash from the projection.
func (r *UserRepository) ListStudents(ctx context.Context) ([]models.User, error) {
	query := `
		SELECT id, student_number, username, full_name, email, role, created_at
		FROM users
		WHERE role = 'User'
		ORDER BY full_name
	`

	rows, err := database.DB.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []models.User
	for rows.Next() {
		var user models.User
		if err := rows.Scan(
			&user.ID, &user.StudentNumber, &user.Username,
			&user.FullName, &user.Email, &user.Role, &user.CreatedAt,
		); err != nil {
			return nil, err
		}
		users = append(users, user)
	}

	return users, rows.Err()
}

// Create inserts a new user. The password must already be bcrypt hashed.
//
// Side Effects: Populates user.ID and user.CreatedAt from the database.
func (r *UserRepository) Create(ctx context.Context, user *models.User) error {
	query := `
		INSERT INTO users (student_number, username, password_hash, full_name, email, role)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at
	`

	return database.DB.QueryRow(ctx, query,
		user.StudentNumber, user.Username, user.PasswordHash,
		user.FullName, user.Email, user.Role,
	).Scan(&user.ID, &user.CreatedAt)
}

// UpdateProfile updates the mutable profile fields of an account.
func (r *UserRepository) UpdateProfile(ctx context.Context, userID int, fullName, email string) error {
	query := `UPDATE users SET full_name = $1, email = $2 WHERE id = $3`

	tag, err := database.DB.Exec(ctx, query, fullName, email, userID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("user not found")
	}

	return nil
}

// Delete removes a user by ID. Enrollments, assignments, issue reports, and
// borrow requests referencing the user cascade per the schema.
func (r *UserRepository) Delete(ctx context.Context, userID int) error {
	query := `DELETE FROM users WHERE id = $1`
	_, err := database.DB.Exec(ctx, query, userID)
	return err
}
