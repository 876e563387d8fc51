// This file implements user issue reporting and admin triage.
package services

import (
	"context"
	"errors"

	"github.com/vrash12/laboratory-management/internal/models"
	"github.com/vrash12/laboratory-management/internal/repository"
)

// CommonSoftware is the pick list offered on the issue report form. The
// form also accepts a free-text entry for anything not listed.
var CommonSoftware = []string{
	"Microsoft Office",
	"Visual Studio Code",
	"Google Chrome",
	"Mozilla Firefox",
	"Adobe Photoshop",
	"AutoCAD",
	"MATLAB",
	"Python",
	"Java JDK",
	"XAMPP",
}

// ErrNotYourReport is returned when a user views a report they did not file.
var ErrNotYourReport = errors.New("you can only view your own reports")

// IssueService manages equipment issue reports.
type IssueService struct {
	issueRepo     *repository.IssueRepository
	equipmentRepo *repository.EquipmentRepository
}

// NewIssueService creates and returns a new IssueService instance.
func NewIssueService() *IssueService {
	return &IssueService{
		issueRepo:     repository.NewIssueRepository(),
		equipmentRepo: repository.NewEquipmentRepository(),
	}
}

// Report files a new issue for an equipment item on behalf of the acting
// user. The software name is kept only for Software and Both issue types.
func (s *IssueService) Report(
	ctx context.Context,
	actor models.Actor,
	equipmentID int,
	issueType models.IssueType,
	description string,
	software string,
) (*models.IssueReport, error) {
	if _, err := s.equipmentRepo.FindByID(ctx, equipmentID); err != nil {
		return nil, err
	}

	report := &models.IssueReport{
		EquipmentID: equipmentID,
		UserID:      actor.ID,
		Description: description,
		IssueType:   issueType,
		Status:      models.IssuePending,
	}
	if issueType != models.IssueHardware && software != "" {
		report.Software = &software
	}

	if err := s.issueRepo.Create(ctx, report); err != nil {
		return nil, err
	}
	return report, nil
}

// View retrieves one report. Users may only see their own; admins see any.
func (s *IssueService) View(ctx context.Context, actor models.Actor, reportID int) (*models.IssueReportView, error) {
	report, err := s.issueRepo.FindByID(ctx, reportID)
	if err != nil {
		return nil, err
	}

	if !actor.Role.IsAdmin() && report.UserID != actor.ID {
		return nil, ErrNotYourReport
	}

	return report, nil
}

// ListForUser returns the acting user's own reports, newest first.
func (s *IssueService) ListForUser(ctx context.Context, actor models.Actor) ([]models.IssueReportView, error) {
	return s.issueRepo.ListByUser(ctx, actor.ID)
}

// ListAll returns every report for the admin triage page.
func (s *IssueService) ListAll(ctx context.Context, actor models.Actor) ([]models.IssueReportView, error) {
	if !actor.Role.IsAdmin() {
		return nil, ErrNotAuthorized
	}
	return s.issueRepo.ListAll(ctx)
}

// SetStatus moves a report to a new status on behalf of the acting admin.
func (s *IssueService) SetStatus(ctx context.Context, actor models.Actor, reportID int, status models.IssueStatus) error {
	if !actor.Role.IsAdmin() {
		return ErrNotAuthorized
	}
	return s.issueRepo.UpdateStatus(ctx, reportID, status)
}
