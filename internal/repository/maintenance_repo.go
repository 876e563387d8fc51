package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/vrash12/laboratory-management/internal/database"
	"github.com/vrash12/laboratory-management/internal/models"
)

// MaintenanceRepository handles equipment maintenance database operations.
type MaintenanceRepository struct{}

// NewMaintenanceRepository creates a new instance of MaintenanceRepository.
func NewMaintenanceRepository() *MaintenanceRepository {
	return &MaintenanceRepository{}
}

const maintenanceColumns = `
	id, equipment_id, reported_by, description, status,
	scheduled_date, completed_date, created_at, updated_at`

// Create inserts a new maintenance record and populates its ID and CreatedAt.
func (r *MaintenanceRepository) Create(ctx context.Context, m *models.Maintenance) error {
	query := `
		INSERT INTO maintenance (equipment_id, reported_by, description, status, scheduled_date, completed_date)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at
	`

	err := database.DB.QueryRow(ctx, query,
		m.EquipmentID, m.ReportedBy, m.Description, m.Status, m.ScheduledDate, m.CompletedDate,
	).Scan(&m.ID, &m.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create maintenance record: %w", err)
	}

	return nil
}

// FindByID retrieves a single maintenance record.
func (r *MaintenanceRepository) FindByID(ctx context.Context, id int) (*models.Maintenance, error) {
	query := `SELECT ` + maintenanceColumns + ` FROM maintenance WHERE id = $1`

	var m models.Maintenance
	err := database.DB.QueryRow(ctx, query, id).Scan(
		&m.ID, &m.EquipmentID, &m.ReportedBy, &m.Description, &m.Status,
		&m.ScheduledDate, &m.CompletedDate, &m.CreatedAt, &m.UpdatedAt,
	)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, errors.New("maintenance record not found")
	}
	if err != nil {
		return nil, err
	}

	return &m, nil
}

// FindCurrentByEquipment returns the equipment's open maintenance record, or
// nil when none is Scheduled or In Progress. When several are open the oldest
// wins, so repeated upserts keep touching the same row.
func (r *MaintenanceRepository) FindCurrentByEquipment(ctx context.Context, equipmentID int) (*models.Maintenance, error) {
	query := `SELECT ` + maintenanceColumns + `
		FROM maintenance
		WHERE equipment_id = $1 AND status IN ('Scheduled', 'In Progress')
		ORDER BY id
		LIMIT 1`

	var m models.Maintenance
	err := database.DB.QueryRow(ctx, query, equipmentID).Scan(
		&m.ID, &m.EquipmentID, &m.ReportedBy, &m.Description, &m.Status,
		&m.ScheduledDate, &m.CompletedDate, &m.CreatedAt, &m.UpdatedAt,
	)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &m, nil
}

// HasOpenInWindow reports whether any open maintenance record for the
// equipment is scheduled inside [start, end], both ends inclusive. The scan
// covers every open record, not just the oldest, so a second open record
// created while another is in flight still counts.
func (r *MaintenanceRepository) HasOpenInWindow(
	ctx context.Context,
	equipmentID int,
	start, end time.Time,
) (bool, error) {
	query := `
		SELECT EXISTS(
			SELECT 1 FROM maintenance
			WHERE equipment_id = $1
			  AND status IN ('Scheduled', 'In Progress')
			  AND scheduled_date >= $2
			  AND scheduled_date <= $3
		)
	`

	var exists bool
	if err := database.DB.QueryRow(ctx, query, equipmentID, start, end).Scan(&exists); err != nil {
		return false, err
	}

	return exists, nil
}

// EquipmentUnavailable reports which of equipmentIDs have an open maintenance
// record whose scheduled date falls inside [start, end], both ends inclusive.
// Used during assignment validation to reject equipment that is out of
// service for the subject's window.
func (r *MaintenanceRepository) EquipmentUnavailable(
	ctx context.Context,
	equipmentIDs []int,
	start, end time.Time,
) (map[int]bool, error) {
	if len(equipmentIDs) == 0 {
		return map[int]bool{}, nil
	}

	query := `
		SELECT DISTINCT equipment_id
		FROM maintenance
		WHERE equipment_id = ANY($1)
		  AND status IN ('Scheduled', 'In Progress')
		  AND scheduled_date >= $2
		  AND scheduled_date <= $3
	`

	rows, err := database.DB.Query(ctx, query, equipmentIDs, start, end)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	unavailable := make(map[int]bool)
	for rows.Next() {
		var id int
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		unavailable[id] = true
	}

	return unavailable, rows.Err()
}

// Update rewrites a record's mutable fields and bumps updated_at.
func (r *MaintenanceRepository) Update(ctx context.Context, m *models.Maintenance) error {
	query := `
		UPDATE maintenance
		SET description = $1, status = $2, scheduled_date = $3, completed_date = $4, updated_at = NOW()
		WHERE id = $5
	`

	result, err := database.DB.Exec(ctx, query,
		m.Description, m.Status, m.ScheduledDate, m.CompletedDate, m.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update maintenance record: %w", err)
	}

	if result.RowsAffected() == 0 {
		return errors.New("maintenance record not found")
	}

	return nil
}

// ListViews retrieves every maintenance record joined with its equipment
// name, newest scheduled first.
func (r *MaintenanceRepository) ListViews(ctx context.Context) ([]models.MaintenanceView, error) {
	query := `
		SELECT m.id, m.equipment_id, m.reported_by, m.description, m.status,
		       m.scheduled_date, m.completed_date, m.created_at, m.updated_at,
		       e.equipment_name
		FROM maintenance m
		JOIN equipment e ON m.equipment_id = e.id
		ORDER BY m.scheduled_date DESC
	`

	rows, err := database.DB.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var views []models.MaintenanceView
	for rows.Next() {
		var v models.MaintenanceView
		if err := rows.Scan(
			&v.ID, &v.EquipmentID, &v.ReportedBy, &v.Description, &v.Status,
			&v.ScheduledDate, &v.CompletedDate, &v.CreatedAt, &v.UpdatedAt,
			&v.EquipmentName,
		); err != nil {
			return nil, err
		}
		views = append(views, v)
	}

	return views, rows.Err()
}

// Delete removes a maintenance record by ID.
func (r *MaintenanceRepository) Delete(ctx context.Context, id int) error {
	result, err := database.DB.Exec(ctx, `DELETE FROM maintenance WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete maintenance record: %w", err)
	}

	if result.RowsAffected() == 0 {
		return errors.New("maintenance record not found")
	}

	return nil
}
