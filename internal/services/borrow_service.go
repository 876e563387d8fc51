// This file implements the laptop borrow request lifecycle:
// Pending -> Approved or Denied, Approved -> Returned.
package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/vrash12/laboratory-management/internal/models"
	"github.com/vrash12/laboratory-management/internal/repository"
)

// Borrow request rejection reasons surfaced to the requesting user.
var (
	ErrNotALaptop        = errors.New("only laptops can be borrowed")
	ErrLaptopUnavailable = errors.New("laptop is not available")
	ErrDuplicateRequest  = errors.New("you already have an open request for this laptop")
	ErrNotEligible       = errors.New("your assigned PC is not under maintenance for this subject")
)

// BorrowService manages the laptop borrow request lifecycle.
//
// A student may request a laptop only as a stand-in for their own assigned
// PC while it is out for maintenance during the subject's scheduled window.
// Approving a request marks the laptop unavailable; recording its return
// makes it available again, both in the same transaction as the status
// change.
type BorrowService struct {
	borrowRepo      *repository.BorrowRepository
	equipmentRepo   *repository.EquipmentRepository
	subjectRepo     *repository.SubjectRepository
	assignmentRepo  *repository.AssignmentRepository
	maintenanceRepo *repository.MaintenanceRepository
}

// NewBorrowService creates and returns a new BorrowService instance.
func NewBorrowService() *BorrowService {
	return &BorrowService{
		borrowRepo:      repository.NewBorrowRepository(),
		equipmentRepo:   repository.NewEquipmentRepository(),
		subjectRepo:     repository.NewSubjectRepository(),
		assignmentRepo:  repository.NewAssignmentRepository(),
		maintenanceRepo: repository.NewMaintenanceRepository(),
	}
}

// Request files a pending borrow request for a laptop on behalf of the
// acting user.
//
// Eligibility chain:
//  1. actor is enrolled in the subject
//  2. actor holds a PC assignment for it
//  3. that PC has open maintenance scheduled inside the subject's window
//  4. the target is a laptop and currently available
//  5. actor has no open request for the same laptop
//
// The laptop is not reserved at request time; availability is only claimed
// on approval.
func (s *BorrowService) Request(
	ctx context.Context,
	actor models.Actor,
	subjectID, laptopID int,
) (*models.BorrowRequest, error) {
	subject, err := s.subjectRepo.FindByID(ctx, subjectID)
	if err != nil {
		return nil, err
	}

	enrolled, err := s.subjectRepo.IsEnrolled(ctx, actor.ID, subjectID)
	if err != nil {
		return nil, err
	}
	if !enrolled {
		return nil, ErrNotEligible
	}

	assignment, err := s.assignmentRepo.FindForStudentSubject(ctx, actor.ID, subjectID)
	if err != nil {
		return nil, err
	}
	if assignment == nil {
		return nil, ErrNotEligible
	}

	start, end := subject.Window()
	covered, err := s.maintenanceRepo.HasOpenInWindow(ctx, assignment.EquipmentID, start, end)
	if err != nil {
		return nil, err
	}
	if !covered {
		return nil, ErrNotEligible
	}

	laptop, err := s.equipmentRepo.FindByID(ctx, laptopID)
	if err != nil {
		return nil, err
	}
	if laptop.EquipmentType != models.EquipmentLaptop {
		return nil, ErrNotALaptop
	}
	if !laptop.IsAvailable {
		return nil, ErrLaptopUnavailable
	}

	open, err := s.borrowRepo.HasOpenRequest(ctx, actor.ID, laptopID)
	if err != nil {
		return nil, err
	}
	if open {
		return nil, ErrDuplicateRequest
	}

	req := &models.BorrowRequest{
		UserID:      actor.ID,
		EquipmentID: laptopID,
		Status:      models.BorrowPending,
	}

	if err := s.borrowRepo.Create(ctx, req); err != nil {
		return nil, err
	}
	return req, nil
}

// Eligible reports whether the acting user may file a borrow request for the
// subject at all. Drives the visibility of the borrow form.
func (s *BorrowService) Eligible(ctx context.Context, actor models.Actor, subjectID int) (bool, error) {
	subject, err := s.subjectRepo.FindByID(ctx, subjectID)
	if err != nil {
		return false, err
	}

	enrolled, err := s.subjectRepo.IsEnrolled(ctx, actor.ID, subjectID)
	if err != nil || !enrolled {
		return false, err
	}

	assignment, err := s.assignmentRepo.FindForStudentSubject(ctx, actor.ID, subjectID)
	if err != nil || assignment == nil {
		return false, err
	}

	start, end := subject.Window()
	return s.maintenanceRepo.HasOpenInWindow(ctx, assignment.EquipmentID, start, end)
}

// SetStatus moves a request to a new status on behalf of the acting admin.
//
// Legal transitions: Pending to Approved or Denied, Approved to Returned.
// Approval flips the laptop unavailable and return flips it back, in the
// same transaction as the status write.
func (s *BorrowService) SetStatus(
	ctx context.Context,
	actor models.Actor,
	requestID int,
	status models.BorrowRequestStatus,
) error {
	if !actor.Role.IsAdmin() {
		return ErrNotAuthorized
	}

	req, err := s.borrowRepo.FindByID(ctx, requestID)
	if err != nil {
		return err
	}

	if !req.Status.CanTransitionTo(status) {
		return fmt.Errorf("cannot move request from %s to %s", req.Status, status)
	}

	return s.borrowRepo.SetStatus(ctx, requestID, status, actor.ID, req.EquipmentID)
}

// ListAll returns every request for the admin processing page.
func (s *BorrowService) ListAll(ctx context.Context) ([]models.BorrowRequestView, error) {
	return s.borrowRepo.ListViews(ctx)
}

// ListForUser returns the acting user's own requests.
func (s *BorrowService) ListForUser(ctx context.Context, actor models.Actor) ([]models.BorrowRequestView, error) {
	return s.borrowRepo.ListByUser(ctx, actor.ID)
}
