// This file implements PC assignment for subjects, including batch conflict
// validation against overlapping subject schedules and open maintenance.
package services

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/vrash12/laboratory-management/internal/models"
	"github.com/vrash12/laboratory-management/internal/repository"
)

// ErrNotAuthorized is returned when the acting user's role does not permit
// the operation.
var ErrNotAuthorized = errors.New("not authorized")

// ConflictError reports equipment that cannot be booked for a subject's
// window, either because another overlapping subject holds it or because it
// is under maintenance. The whole batch is rejected; nothing is written.
type ConflictError struct {
	Conflicts []repository.Conflict // Held by an overlapping subject
	Unusable  []string              // Equipment names under maintenance
}

func (e *ConflictError) Error() string {
	var parts []string
	for _, c := range e.Conflicts {
		parts = append(parts, fmt.Sprintf("%s is already assigned to %s during this time", c.EquipmentName, c.SubjectCode))
	}
	for _, name := range e.Unusable {
		parts = append(parts, fmt.Sprintf("%s is under maintenance during this time", name))
	}
	return strings.Join(parts, "; ")
}

// AssignmentService assigns students to PCs for a subject.
//
// Assignment is replace-on-save: each request carries the subject's complete
// student-to-PC mapping and supersedes whatever was stored before. Writes
// are two-phase: the batch is validated read-only first, then applied in a
// single transaction, so a rejected batch leaves the previous assignment set
// untouched.
type AssignmentService struct {
	subjectRepo     *repository.SubjectRepository
	equipmentRepo   *repository.EquipmentRepository
	assignmentRepo  *repository.AssignmentRepository
	maintenanceRepo *repository.MaintenanceRepository
}

// NewAssignmentService creates and returns a new AssignmentService instance.
func NewAssignmentService() *AssignmentService {
	return &AssignmentService{
		subjectRepo:     repository.NewSubjectRepository(),
		equipmentRepo:   repository.NewEquipmentRepository(),
		assignmentRepo:  repository.NewAssignmentRepository(),
		maintenanceRepo: repository.NewMaintenanceRepository(),
	}
}

// Assign validates and stores a subject's complete assignment batch.
//
// Validation order:
//  1. actor must be an admin
//  2. every student must be enrolled in the subject
//  3. every PC must belong to the subject's room
//  4. no PC may be claimed twice within the batch
//  5. no PC may be held by another subject whose window overlaps
//  6. no PC may have open maintenance scheduled inside the window
//
// Any failure rejects the batch whole; the stored assignment set is only
// replaced after all checks pass.
func (s *AssignmentService) Assign(
	ctx context.Context,
	actor models.Actor,
	subjectID int,
	assignments map[int]int,
) error {
	if !actor.Role.IsAdmin() {
		return ErrNotAuthorized
	}

	subject, err := s.subjectRepo.FindByID(ctx, subjectID)
	if err != nil {
		return err
	}

	// Deterministic processing order for stable error messages.
	studentIDs := make([]int, 0, len(assignments))
	for studentID := range assignments {
		studentIDs = append(studentIDs, studentID)
	}
	sort.Ints(studentIDs)

	seen := make(map[int]int, len(assignments)) // equipment id -> student id
	equipmentIDs := make([]int, 0, len(assignments))
	for _, studentID := range studentIDs {
		equipmentID := assignments[studentID]

		enrolled, err := s.subjectRepo.IsEnrolled(ctx, studentID, subjectID)
		if err != nil {
			return err
		}
		if !enrolled {
			return fmt.Errorf("student %d is not enrolled in %s", studentID, subject.SubjectCode)
		}

		equipment, err := s.equipmentRepo.FindByID(ctx, equipmentID)
		if err != nil {
			return err
		}
		if equipment.RoomID == nil || *equipment.RoomID != subject.RoomID {
			return fmt.Errorf("%s is not in the subject's room", equipment.EquipmentName)
		}

		if _, dup := seen[equipmentID]; dup {
			return fmt.Errorf("%s is assigned to more than one student", equipment.EquipmentName)
		}
		seen[equipmentID] = studentID
		equipmentIDs = append(equipmentIDs, equipmentID)
	}

	start, end := subject.Window()

	conflicts, err := s.assignmentRepo.FindConflicts(ctx, equipmentIDs, subjectID, start, end)
	if err != nil {
		return err
	}

	unavailable, err := s.maintenanceRepo.EquipmentUnavailable(ctx, equipmentIDs, start, end)
	if err != nil {
		return err
	}

	if len(conflicts) > 0 || len(unavailable) > 0 {
		cerr := &ConflictError{Conflicts: conflicts}
		for _, id := range equipmentIDs {
			if unavailable[id] {
				equipment, err := s.equipmentRepo.FindByID(ctx, id)
				if err != nil {
					return err
				}
				cerr.Unusable = append(cerr.Unusable, equipment.EquipmentName)
			}
		}
		return cerr
	}

	batch := make([]models.PCAssignment, 0, len(assignments))
	for _, studentID := range studentIDs {
		batch = append(batch, models.PCAssignment{
			SubjectID:   subjectID,
			StudentID:   studentID,
			EquipmentID: assignments[studentID],
		})
	}

	return s.assignmentRepo.ReplaceForSubject(ctx, subjectID, batch)
}

// CurrentMapping returns the subject's stored student-to-equipment map for
// pre-filling the assignment form.
func (s *AssignmentService) CurrentMapping(ctx context.Context, subjectID int) (map[int]int, error) {
	return s.assignmentRepo.MapBySubject(ctx, subjectID)
}
