package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/vrash12/laboratory-management/internal/database"
	"github.com/vrash12/laboratory-management/internal/models"
)

// AssignmentRepository handles student PC assignment database operations.
// The write-time invariant — no equipment double-booked across overlapping
// subject windows — is enforced by the assignment service, which validates
// with FindConflicts before calling ReplaceForSubject.
type AssignmentRepository struct{}

// NewAssignmentRepository creates a new instance of AssignmentRepository.
func NewAssignmentRepository() *AssignmentRepository {
	return &AssignmentRepository{}
}

// Conflict describes one equipment item already booked during a window.
type Conflict struct {
	EquipmentID   int
	EquipmentName string
	SubjectCode   string // Subject holding the conflicting booking
}

// FindConflicts returns the equipment among equipmentIDs that already has an
// assignment under another subject whose window overlaps [start, end).
//
// Database: Standard open-overlap predicate
// (other.start < this.end AND other.end > this.start); assignments belonging
// to excludeSubjectID are ignored so a subject can freely rebook its own
// equipment.
func (r *AssignmentRepository) FindConflicts(
	ctx context.Context,
	equipmentIDs []int,
	excludeSubjectID int,
	start, end time.Time,
) ([]Conflict, error) {
	if len(equipmentIDs) == 0 {
		return nil, nil
	}

	query := `
		SELECT DISTINCT pa.equipment_id, e.equipment_name, s.subject_code
		FROM pc_assignments pa
		JOIN subjects s ON pa.subject_id = s.id
		JOIN equipment e ON pa.equipment_id = e.id
		WHERE pa.equipment_id = ANY($1)
		  AND pa.subject_id <> $2
		  AND s.start_time < $3
		  AND s.end_time > $4
		ORDER BY e.equipment_name
	`

	rows, err := database.DB.Query(ctx, query, equipmentIDs, excludeSubjectID, end, start)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var conflicts []Conflict
	for rows.Next() {
		var c Conflict
		if err := rows.Scan(&c.EquipmentID, &c.EquipmentName, &c.SubjectCode); err != nil {
			return nil, err
		}
		conflicts = append(conflicts, c)
	}

	return conflicts, rows.Err()
}

// ReplaceForSubject replaces a subject's assignment set inside one
// transaction: all prior rows for the subject are deleted, then the supplied
// pairs inserted. Callers must have validated the batch for conflicts first;
// running delete and insert under one commit means a failure leaves the
// previous assignment set intact.
func (r *AssignmentRepository) ReplaceForSubject(
	ctx context.Context,
	subjectID int,
	assignments []models.PCAssignment,
) error {
	tx, err := database.DB.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx,
		`DELETE FROM pc_assignments WHERE subject_id = $1`, subjectID,
	); err != nil {
		return err
	}

	for _, a := range assignments {
		if _, err := tx.Exec(ctx,
			`INSERT INTO pc_assignments (subject_id, student_id, equipment_id) VALUES ($1, $2, $3)`,
			subjectID, a.StudentID, a.EquipmentID,
		); err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}

// MapBySubject returns the subject's current student-to-equipment mapping.
// Used to pre-fill the assignment form.
func (r *AssignmentRepository) MapBySubject(ctx context.Context, subjectID int) (map[int]int, error) {
	query := `
		SELECT student_id, equipment_id
		FROM pc_assignments
		WHERE subject_id = $1
	`

	rows, err := database.DB.Query(ctx, query, subjectID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	mapping := make(map[int]int)
	for rows.Next() {
		var studentID, equipmentID int
		if err := rows.Scan(&studentID, &equipmentID); err != nil {
			return nil, err
		}
		mapping[studentID] = equipmentID
	}

	return mapping, rows.Err()
}

// FindForStudentSubject retrieves a student's assignment for one subject.
// Returns pgx.ErrNoRows via a nil result when the student has none.
func (r *AssignmentRepository) FindForStudentSubject(
	ctx context.Context,
	studentID, subjectID int,
) (*models.PCAssignment, error) {
	query := `
		SELECT id, subject_id, student_id, equipment_id
		FROM pc_assignments
		WHERE student_id = $1 AND subject_id = $2
	`

	var a models.PCAssignment
	err := database.DB.QueryRow(ctx, query, studentID, subjectID).Scan(
		&a.ID, &a.SubjectID, &a.StudentID, &a.EquipmentID,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &a, nil
}

// MapByStudent returns subject id to assignment for everything assigned to a
// student. Feeds the user dashboard.
func (r *AssignmentRepository) MapByStudent(ctx context.Context, studentID int) (map[int]models.PCAssignment, error) {
	query := `
		SELECT id, subject_id, student_id, equipment_id
		FROM pc_assignments
		WHERE student_id = $1
	`

	rows, err := database.DB.Query(ctx, query, studentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	mapping := make(map[int]models.PCAssignment)
	for rows.Next() {
		var a models.PCAssignment
		if err := rows.Scan(&a.ID, &a.SubjectID, &a.StudentID, &a.EquipmentID); err != nil {
			return nil, err
		}
		mapping[a.SubjectID] = a
	}

	return mapping, rows.Err()
}

// ListViews retrieves all assignments joined with their student, subject,
// and equipment for the admin dashboard table.
func (r *AssignmentRepository) ListViews(ctx context.Context) ([]models.AssignmentView, error) {
	query := `
		SELECT
			pa.id AS assignment_id,
			pa.subject_id,
			s.subject_code,
			pa.student_id,
			u.full_name AS student_name,
			pa.equipment_id,
			e.equipment_name,
			s.start_time,
			s.end_time
		FROM pc_assignments pa
		JOIN subjects s ON pa.subject_id = s.id
		JOIN users u ON pa.student_id = u.id
		JOIN equipment e ON pa.equipment_id = e.id
		ORDER BY s.subject_code, u.full_name
	`

	rows, err := database.DB.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var views []models.AssignmentView
	for rows.Next() {
		var v models.AssignmentView
		if err := rows.Scan(
			&v.AssignmentID, &v.SubjectID, &v.SubjectCode,
			&v.StudentID, &v.StudentName,
			&v.EquipmentID, &v.EquipmentName,
			&v.StartTime, &v.EndTime,
		); err != nil {
			return nil, err
		}
		views = append(views, v)
	}

	return views, rows.Err()
}
