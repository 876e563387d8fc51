package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/vrash12/laboratory-management/internal/database"
	"github.com/vrash12/laboratory-management/internal/models"
)

// EquipmentRepository handles PC and laptop database operations.
type EquipmentRepository struct{}

// NewEquipmentRepository creates a new instance of EquipmentRepository.
func NewEquipmentRepository() *EquipmentRepository {
	return &EquipmentRepository{}
}

// Create inserts a new equipment item.
//
// Side Effects: Populates equipment.ID from the database.
func (r *EquipmentRepository) Create(ctx context.Context, equipment *models.Equipment) error {
	query := `
		INSERT INTO equipment (room_id, equipment_name, status, is_available, equipment_type)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`
	return database.DB.QueryRow(ctx, query,
		equipment.RoomID, equipment.EquipmentName, equipment.Status,
		equipment.IsAvailable, equipment.EquipmentType,
	).Scan(&equipment.ID)
}

// FindByID retrieves an equipment item by primary key.
func (r *EquipmentRepository) FindByID(ctx context.Context, id int) (*models.Equipment, error) {
	query := `
		SELECT id, room_id, equipment_name, status, is_available, equipment_type
		FROM equipment
		WHERE id = $1
	`

	var e models.Equipment
	err := database.DB.QueryRow(ctx, query, id).Scan(
		&e.ID, &e.RoomID, &e.EquipmentName, &e.Status, &e.IsAvailable, &e.EquipmentType,
	)

	if err == pgx.ErrNoRows {
		return nil, fmt.Errorf("equipment not found")
	}
	if err != nil {
		return nil, err
	}

	return &e, nil
}

// ExistsByName reports whether equipment with the given display name exists.
// Used by bulk laptop creation to skip duplicates.
func (r *EquipmentRepository) ExistsByName(ctx context.Context, name string) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM equipment WHERE equipment_name = $1)`

	var exists bool
	if err := database.DB.QueryRow(ctx, query, name).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

// ListByRoom retrieves all equipment housed in a room, ordered by name.
func (r *EquipmentRepository) ListByRoom(ctx context.Context, roomID int) ([]models.Equipment, error) {
	query := `
		SELECT id, room_id, equipment_name, status, is_available, equipment_type
		FROM equipment
		WHERE room_id = $1
		ORDER BY equipment_name
	`
	return r.list(ctx, query, roomID)
}

// ListAll retrieves every equipment item, ordered by name.
func (r *EquipmentRepository) ListAll(ctx context.Context) ([]models.Equipment, error) {
	query := `
		SELECT id, room_id, equipment_name, status, is_available, equipment_type
		FROM equipment
		ORDER BY equipment_name
	`
	return r.list(ctx, query)
}

// ListAvailable retrieves equipment currently flagged available.
// Used by the issue-report form.
func (r *EquipmentRepository) ListAvailable(ctx context.Context) ([]models.Equipment, error) {
	query := `
		SELECT id, room_id, equipment_name, status, is_available, equipment_type
		FROM equipment
		WHERE is_available = TRUE
		ORDER BY equipment_name
	`
	return r.list(ctx, query)
}

// ListAvailableLaptops retrieves laptops that can currently be borrowed.
func (r *EquipmentRepository) ListAvailableLaptops(ctx context.Context) ([]models.Equipment, error) {
	query := `
		SELECT id, room_id, equipment_name, status, is_available, equipment_type
		FROM equipment
		WHERE equipment_type = 'Laptop' AND is_available = TRUE
		ORDER BY equipment_name
	`
	return r.list(ctx, query)
}

func (r *EquipmentRepository) list(ctx context.Context, query string, args ...interface{}) ([]models.Equipment, error) {
	rows, err := database.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []models.Equipment
	for rows.Next() {
		var e models.Equipment
		if err := rows.Scan(
			&e.ID, &e.RoomID, &e.EquipmentName, &e.Status, &e.IsAvailable, &e.EquipmentType,
		); err != nil {
			return nil, err
		}
		items = append(items, e)
	}

	return items, rows.Err()
}

// Update persists edits to name, status, and availability.
func (r *EquipmentRepository) Update(ctx context.Context, equipment *models.Equipment) error {
	query := `
		UPDATE equipment
		SET equipment_name = $1, status = $2, is_available = $3
		WHERE id = $4
	`

	tag, err := database.DB.Exec(ctx, query,
		equipment.EquipmentName, equipment.Status, equipment.IsAvailable, equipment.ID,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("equipment not found")
	}

	return nil
}

// Delete removes an equipment item.
func (r *EquipmentRepository) Delete(ctx context.Context, equipmentID int) error {
	query := `DELETE FROM equipment WHERE id = $1`
	_, err := database.DB.Exec(ctx, query, equipmentID)
	return err
}
