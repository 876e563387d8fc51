package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/vrash12/laboratory-management/internal/database"
	"github.com/vrash12/laboratory-management/internal/models"
)

// BorrowRepository handles laptop borrow request database operations.
type BorrowRepository struct{}

// NewBorrowRepository creates a new instance of BorrowRepository.
func NewBorrowRepository() *BorrowRepository {
	return &BorrowRepository{}
}

// Create inserts a new pending request and populates its ID and RequestDate.
func (r *BorrowRepository) Create(ctx context.Context, req *models.BorrowRequest) error {
	query := `
		INSERT INTO borrow_requests (user_id, equipment_id, status)
		VALUES ($1, $2, $3)
		RETURNING id, request_date
	`

	err := database.DB.QueryRow(ctx, query,
		req.UserID, req.EquipmentID, req.Status,
	).Scan(&req.ID, &req.RequestDate)
	if err != nil {
		return fmt.Errorf("failed to create borrow request: %w", err)
	}

	return nil
}

// FindByID retrieves a single borrow request.
func (r *BorrowRepository) FindByID(ctx context.Context, id int) (*models.BorrowRequest, error) {
	query := `
		SELECT id, user_id, equipment_id, request_date, status, admin_id
		FROM borrow_requests
		WHERE id = $1
	`

	var req models.BorrowRequest
	err := database.DB.QueryRow(ctx, query, id).Scan(
		&req.ID, &req.UserID, &req.EquipmentID, &req.RequestDate, &req.Status, &req.AdminID,
	)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, errors.New("borrow request not found")
	}
	if err != nil {
		return nil, err
	}

	return &req, nil
}

// HasOpenRequest reports whether the user already holds a Pending or Approved
// request for the laptop. Guards against duplicate requests.
func (r *BorrowRepository) HasOpenRequest(ctx context.Context, userID, equipmentID int) (bool, error) {
	query := `
		SELECT EXISTS(
			SELECT 1 FROM borrow_requests
			WHERE user_id = $1 AND equipment_id = $2 AND status IN ('Pending', 'Approved')
		)
	`

	var open bool
	if err := database.DB.QueryRow(ctx, query, userID, equipmentID).Scan(&open); err != nil {
		return false, err
	}

	return open, nil
}

// ListViews retrieves every request joined with requester and laptop names,
// newest first. Admin processing page.
func (r *BorrowRepository) ListViews(ctx context.Context) ([]models.BorrowRequestView, error) {
	return r.list(ctx, ``)
}

// ListByUser retrieves a user's own requests, newest first.
func (r *BorrowRepository) ListByUser(ctx context.Context, userID int) ([]models.BorrowRequestView, error) {
	return r.list(ctx, `WHERE br.user_id = $1`, userID)
}

func (r *BorrowRepository) list(ctx context.Context, where string, args ...interface{}) ([]models.BorrowRequestView, error) {
	query := `
		SELECT br.id, br.user_id, br.equipment_id, br.request_date, br.status, br.admin_id,
		       u.full_name, e.equipment_name
		FROM borrow_requests br
		JOIN users u ON br.user_id = u.id
		JOIN equipment e ON br.equipment_id = e.id
		` + where + `
		ORDER BY br.request_date DESC
	`

	rows, err := database.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var views []models.BorrowRequestView
	for rows.Next() {
		var v models.BorrowRequestView
		if err := rows.Scan(
			&v.ID, &v.UserID, &v.EquipmentID, &v.RequestDate, &v.Status, &v.AdminID,
			&v.UserName, &v.EquipmentName,
		); err != nil {
			return nil, err
		}
		views = append(views, v)
	}

	return views, rows.Err()
}

// SetStatus records the new status and processing admin, flipping the
// laptop's availability in the same transaction: Approved takes it off the
// shelf, Returned puts it back. Transition legality is the borrow service's
// responsibility.
func (r *BorrowRepository) SetStatus(
	ctx context.Context,
	requestID int,
	status models.BorrowRequestStatus,
	adminID int,
	equipmentID int,
) error {
	tx, err := database.DB.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	result, err := tx.Exec(ctx,
		`UPDATE borrow_requests SET status = $1, admin_id = $2 WHERE id = $3`,
		status, adminID, requestID,
	)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return errors.New("borrow request not found")
	}

	switch status {
	case models.BorrowApproved:
		_, err = tx.Exec(ctx,
			`UPDATE equipment SET is_available = FALSE WHERE id = $1`, equipmentID)
	case models.BorrowReturned:
		_, err = tx.Exec(ctx,
			`UPDATE equipment SET is_available = TRUE WHERE id = $1`, equipmentID)
	}
	if err != nil {
		return err
	}

	return tx.Commit(ctx)
}
