// This file implements subject administration and enrollment.
package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/vrash12/laboratory-management/internal/models"
	"github.com/vrash12/laboratory-management/internal/repository"
)

// SubjectService manages subjects and their student rosters.
type SubjectService struct {
	subjectRepo *repository.SubjectRepository
	roomRepo    *repository.RoomRepository
	userRepo    *repository.UserRepository
}

// NewSubjectService creates and returns a new SubjectService instance.
func NewSubjectService() *SubjectService {
	return &SubjectService{
		subjectRepo: repository.NewSubjectRepository(),
		roomRepo:    repository.NewRoomRepository(),
		userRepo:    repository.NewUserRepository(),
	}
}

// Create registers a subject. The code is uppercased and must be unique;
// the scheduled window must be well formed and the room must exist.
func (s *SubjectService) Create(
	ctx context.Context,
	actor models.Actor,
	code, name string,
	roomID int,
	start, end time.Time,
) (*models.Subject, error) {
	if !actor.Role.IsAdmin() {
		return nil, ErrNotAuthorized
	}

	code = strings.ToUpper(strings.TrimSpace(code))
	if !start.Before(end) {
		return nil, fmt.Errorf("start time must be before end time")
	}

	exists, err := s.subjectRepo.ExistsByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, fmt.Errorf("subject code %s already exists", code)
	}

	if _, err := s.roomRepo.FindByID(ctx, roomID); err != nil {
		return nil, err
	}

	subject := &models.Subject{
		SubjectCode: code,
		SubjectName: name,
		RoomID:      roomID,
		StartTime:   start,
		EndTime:     end,
	}

	if err := s.subjectRepo.Create(ctx, subject); err != nil {
		return nil, err
	}
	return subject, nil
}

// ReplaceEnrollment swaps a subject's roster for the supplied student set.
// Replace-on-save: students omitted from the set are dropped. PC assignments
// they held for this subject are left in place and surface again if the
// student is re-enrolled.
func (s *SubjectService) ReplaceEnrollment(ctx context.Context, actor models.Actor, subjectID int, studentIDs []int) error {
	if !actor.Role.IsAdmin() {
		return ErrNotAuthorized
	}

	if _, err := s.subjectRepo.FindByID(ctx, subjectID); err != nil {
		return err
	}

	return s.subjectRepo.ReplaceEnrollment(ctx, subjectID, studentIDs)
}

// CalendarEvents renders a student's subjects as calendar feed entries.
func (s *SubjectService) CalendarEvents(ctx context.Context, actor models.Actor) ([]models.SubjectEventView, error) {
	subjects, err := s.subjectRepo.ListByStudent(ctx, actor.ID)
	if err != nil {
		return nil, err
	}

	events := make([]models.SubjectEventView, 0, len(subjects))
	for _, subject := range subjects {
		events = append(events, models.SubjectEventView{
			Title: fmt.Sprintf("%s - %s", subject.SubjectCode, subject.SubjectName),
			Start: subject.StartTime.Format(time.RFC3339),
			End:   subject.EndTime.Format(time.RFC3339),
		})
	}

	return events, nil
}

// Delete removes a subject, its roster, and its PC assignments.
func (s *SubjectService) Delete(ctx context.Context, actor models.Actor, subjectID int) error {
	if !actor.Role.IsAdmin() {
		return ErrNotAuthorized
	}
	return s.subjectRepo.Delete(ctx, subjectID)
}
