package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/vrash12/laboratory-management/internal/database"
	"github.com/vrash12/laboratory-management/internal/models"
)

// RoomRepository handles laboratory room database operations.
type RoomRepository struct{}

// NewRoomRepository creates a new instance of RoomRepository.
func NewRoomRepository() *RoomRepository {
	return &RoomRepository{}
}

// Create inserts a new room.
//
// Side Effects: Populates room.ID and room.CreatedAt from the database.
func (r *RoomRepository) Create(ctx context.Context, room *models.Room) error {
	query := `
		INSERT INTO rooms (room_name)
		VALUES ($1)
		RETURNING id, created_at
	`
	return database.DB.QueryRow(ctx, query, room.RoomName).
		Scan(&room.ID, &room.CreatedAt)
}

// FindByID retrieves a room by primary key.
func (r *RoomRepository) FindByID(ctx context.Context, id int) (*models.Room, error) {
	query := `SELECT id, room_name, created_at FROM rooms WHERE id = $1`

	var room models.Room
	err := database.DB.QueryRow(ctx, query, id).
		Scan(&room.ID, &room.RoomName, &room.CreatedAt)

	if err == pgx.ErrNoRows {
		return nil, fmt.Errorf("room not found")
	}
	if err != nil {
		return nil, err
	}

	return &room, nil
}

// ExistsByName reports whether a room with the given name already exists.
// Room names are kept unique at the application level.
func (r *RoomRepository) ExistsByName(ctx context.Context, name string) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM rooms WHERE room_name = $1)`

	var exists bool
	if err := database.DB.QueryRow(ctx, query, name).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

// ListAll retrieves all rooms ordered by name.
func (r *RoomRepository) ListAll(ctx context.Context) ([]models.Room, error) {
	query := `SELECT id, room_name, created_at FROM rooms ORDER BY room_name`

	rows, err := database.DB.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var rooms []models.Room
	for rows.Next() {
		var room models.Room
		if err := rows.Scan(&room.ID, &room.RoomName, &room.CreatedAt); err != nil {
			return nil, err
		}
		rooms = append(rooms, room)
	}

	return rooms, rows.Err()
}

// UpdateName renames a room.
func (r *RoomRepository) UpdateName(ctx context.Context, roomID int, name string) error {
	query := `UPDATE rooms SET room_name = $1 WHERE id = $2`

	tag, err := database.DB.Exec(ctx, query, name, roomID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("room not found")
	}

	return nil
}

// Delete removes a room. Its equipment is removed by ON DELETE CASCADE —
// the one owning relationship in the schema.
func (r *RoomRepository) Delete(ctx context.Context, roomID int) error {
	query := `DELETE FROM rooms WHERE id = $1`
	_, err := database.DB.Exec(ctx, query, roomID)
	return err
}
