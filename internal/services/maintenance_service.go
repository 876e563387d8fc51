// This file implements maintenance tracking: each equipment item carries at
// most one open maintenance record, updated in place until completed.
package services

import (
	"context"
	"time"

	"github.com/vrash12/laboratory-management/internal/models"
	"github.com/vrash12/laboratory-management/internal/repository"
)

// MaintenanceService manages equipment maintenance records.
type MaintenanceService struct {
	maintenanceRepo *repository.MaintenanceRepository
	equipmentRepo   *repository.EquipmentRepository
}

// NewMaintenanceService creates and returns a new MaintenanceService instance.
func NewMaintenanceService() *MaintenanceService {
	return &MaintenanceService{
		maintenanceRepo: repository.NewMaintenanceRepository(),
		equipmentRepo:   repository.NewEquipmentRepository(),
	}
}

// Current returns the equipment's open maintenance record, or nil when the
// equipment is in service.
func (s *MaintenanceService) Current(ctx context.Context, equipmentID int) (*models.Maintenance, error) {
	return s.maintenanceRepo.FindCurrentByEquipment(ctx, equipmentID)
}

// OverlapsWindow reports whether any of the equipment's open maintenance
// records falls inside [start, end], both ends inclusive. Feeds assignment
// validation and borrow eligibility. Quantified over every open record:
// with several open at once, any one inside the window counts.
func (s *MaintenanceService) OverlapsWindow(ctx context.Context, equipmentID int, start, end time.Time) (bool, error) {
	return s.maintenanceRepo.HasOpenInWindow(ctx, equipmentID, start, end)
}

// Upsert records maintenance for an equipment item. If the equipment already
// has an open record it is updated in place; otherwise a new record is
// created, attributed to the acting admin. Completing a record sets its
// completion date so a later upsert starts a fresh record.
func (s *MaintenanceService) Upsert(
	ctx context.Context,
	actor models.Actor,
	equipmentID int,
	description string,
	status models.MaintenanceStatus,
	scheduledDate time.Time,
) (*models.Maintenance, error) {
	if !actor.Role.IsAdmin() {
		return nil, ErrNotAuthorized
	}

	if _, err := s.equipmentRepo.FindByID(ctx, equipmentID); err != nil {
		return nil, err
	}

	current, err := s.maintenanceRepo.FindCurrentByEquipment(ctx, equipmentID)
	if err != nil {
		return nil, err
	}

	if current != nil {
		current.Description = description
		current.Status = status
		current.ScheduledDate = scheduledDate
		if status == models.MaintenanceCompleted {
			now := time.Now()
			current.CompletedDate = &now
		}
		if err := s.maintenanceRepo.Update(ctx, current); err != nil {
			return nil, err
		}
		return current, nil
	}

	record := &models.Maintenance{
		EquipmentID:   equipmentID,
		ReportedBy:    actor.ID,
		Description:   description,
		Status:        status,
		ScheduledDate: scheduledDate,
	}
	if status == models.MaintenanceCompleted {
		now := time.Now()
		record.CompletedDate = &now
	}

	if err := s.maintenanceRepo.Create(ctx, record); err != nil {
		return nil, err
	}
	return record, nil
}

// Update rewrites an existing record by ID. Admin edit page.
func (s *MaintenanceService) Update(ctx context.Context, actor models.Actor, record *models.Maintenance) error {
	if !actor.Role.IsAdmin() {
		return ErrNotAuthorized
	}

	if record.Status == models.MaintenanceCompleted && record.CompletedDate == nil {
		now := time.Now()
		record.CompletedDate = &now
	}

	return s.maintenanceRepo.Update(ctx, record)
}

// Delete removes a record by ID.
func (s *MaintenanceService) Delete(ctx context.Context, actor models.Actor, id int) error {
	if !actor.Role.IsAdmin() {
		return ErrNotAuthorized
	}
	return s.maintenanceRepo.Delete(ctx, id)
}

// List returns every record joined with its equipment name, newest first.
func (s *MaintenanceService) List(ctx context.Context) ([]models.MaintenanceView, error) {
	return s.maintenanceRepo.ListViews(ctx)
}
