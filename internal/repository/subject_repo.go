package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/vrash12/laboratory-management/internal/database"
	"github.com/vrash12/laboratory-management/internal/models"
)

// SubjectRepository handles class subject and enrollment database operations.
type SubjectRepository struct{}

// NewSubjectRepository creates a new instance of SubjectRepository.
func NewSubjectRepository() *SubjectRepository {
	return &SubjectRepository{}
}

// Create inserts a new subject.
//
// Side Effects: Populates subject.ID from the database.
func (r *SubjectRepository) Create(ctx context.Context, subject *models.Subject) error {
	query := `
		INSERT INTO subjects (subject_code, subject_name, room_id, start_time, end_time)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`
	return database.DB.QueryRow(ctx, query,
		subject.SubjectCode, subject.SubjectName, subject.RoomID,
		subject.StartTime, subject.EndTime,
	).Scan(&subject.ID)
}

// FindByID retrieves a subject by primary key.
func (r *SubjectRepository) FindByID(ctx context.Context, id int) (*models.Subject, error) {
	query := `
		SELECT id, subject_code, subject_name, room_id, start_time, end_time
		FROM subjects
		WHERE id = $1
	`

	var s models.Subject
	err := database.DB.QueryRow(ctx, query, id).Scan(
		&s.ID, &s.SubjectCode, &s.SubjectName, &s.RoomID, &s.StartTime, &s.EndTime,
	)

	if err == pgx.ErrNoRows {
		return nil, fmt.Errorf("subject not found")
	}
	if err != nil {
		return nil, err
	}

	return &s, nil
}

// ExistsByCode reports whether a subject with the given code exists.
// Codes are unique; the check runs before creation for a friendly error.
func (r *SubjectRepository) ExistsByCode(ctx context.Context, code string) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM subjects WHERE subject_code = $1)`

	var exists bool
	if err := database.DB.QueryRow(ctx, query, code).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

// ListAll retrieves all subjects ordered by code.
func (r *SubjectRepository) ListAll(ctx context.Context) ([]models.Subject, error) {
	query := `
		SELECT id, subject_code, subject_name, room_id, start_time, end_time
		FROM subjects
		ORDER BY subject_code
	`

	rows, err := database.DB.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanSubjects(rows)
}

// ListByStudent retrieves the subjects a student is enrolled in,
// ordered by start time. Feeds the user dashboard and calendar.
func (r *SubjectRepository) ListByStudent(ctx context.Context, studentID int) ([]models.Subject, error) {
	query := `
		SELECT s.id, s.subject_code, s.subject_name, s.room_id, s.start_time, s.end_time
		FROM subjects s
		JOIN student_subjects ss ON ss.subject_id = s.id
		WHERE ss.student_id = $1
		ORDER BY s.start_time
	`

	rows, err := database.DB.Query(ctx, query, studentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanSubjects(rows)
}

func scanSubjects(rows pgx.Rows) ([]models.Subject, error) {
	var subjects []models.Subject
	for rows.Next() {
		var s models.Subject
		if err := rows.Scan(
			&s.ID, &s.SubjectCode, &s.SubjectName, &s.RoomID, &s.StartTime, &s.EndTime,
		); err != nil {
			return nil, err
		}
		subjects = append(subjects, s)
	}
	return subjects, rows.Err()
}

// IsEnrolled reports whether a student is enrolled in a subject.
func (r *SubjectRepository) IsEnrolled(ctx context.Context, studentID, subjectID int) (bool, error) {
	query := `
		SELECT EXISTS(
			SELECT 1 FROM student_subjects
			WHERE student_id = $1 AND subject_id = $2
		)
	`

	var enrolled bool
	if err := database.DB.QueryRow(ctx, query, studentID, subjectID).Scan(&enrolled); err != nil {
		return false, err
	}
	return enrolled, nil
}

// ListEnrolledStudents retrieves the students enrolled in a subject,
// ordered by name. Used by the PC assignment form.
func (r *SubjectRepository) ListEnrolledStudents(ctx context.Context, subjectID int) ([]models.User, error) {
	query := `
		SELECT u.id, u.student_number, u.username, u.full_name, u.email, u.role, u.created_at
		FROM users u
		JOIN student_subjects ss ON ss.student_id = u.id
		WHERE ss.subject_id = $1
		ORDER BY u.full_name
	`

	rows, err := database.DB.Query(ctx, query, subjectID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var students []models.User
	for rows.Next() {
		var u models.User
		if err := rows.Scan(
			&u.ID, &u.StudentNumber, &u.Username, &u.FullName, &u.Email, &u.Role, &u.CreatedAt,
		); err != nil {
			return nil, err
		}
		students = append(students, u)
	}

	return students, rows.Err()
}

// ReplaceEnrollment replaces a subject's enrollment set inside one
// transaction: all prior rows are deleted, then the new selection inserted.
// Matches the admin form's replace-on-save semantics.
func (r *SubjectRepository) ReplaceEnrollment(ctx context.Context, subjectID int, studentIDs []int) error {
	tx, err := database.DB.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx,
		`DELETE FROM student_subjects WHERE subject_id = $1`, subjectID,
	); err != nil {
		return err
	}

	for _, studentID := range studentIDs {
		if _, err := tx.Exec(ctx,
			`INSERT INTO student_subjects (student_id, subject_id) VALUES ($1, $2)`,
			studentID, subjectID,
		); err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}

// Delete removes a subject. Enrollment and assignment rows referencing it
// cascade per the schema.
func (r *SubjectRepository) Delete(ctx context.Context, subjectID int) error {
	query := `DELETE FROM subjects WHERE id = $1`
	_, err := database.DB.Exec(ctx, query, subjectID)
	return err
}
