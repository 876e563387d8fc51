package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/vrash12/laboratory-management/internal/database"
	"github.com/vrash12/laboratory-management/internal/models"
)

// IssueRepository handles issue report database operations.
type IssueRepository struct{}

// NewIssueRepository creates a new instance of IssueRepository.
func NewIssueRepository() *IssueRepository {
	return &IssueRepository{}
}

// Create inserts a new issue report with Pending status and populates its
// ID and CreatedAt.
func (r *IssueRepository) Create(ctx context.Context, report *models.IssueReport) error {
	query := `
		INSERT INTO issue_reports (equipment_id, user_id, description, issue_type, software, status)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at
	`

	err := database.DB.QueryRow(ctx, query,
		report.EquipmentID, report.UserID, report.Description,
		report.IssueType, report.Software, report.Status,
	).Scan(&report.ID, &report.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create issue report: %w", err)
	}

	return nil
}

// FindByID retrieves one issue report joined with its reporter and equipment
// names. The ownership check (reporter or admin) belongs to the handler.
func (r *IssueRepository) FindByID(ctx context.Context, id int) (*models.IssueReportView, error) {
	query := `
		SELECT ir.id, ir.equipment_id, ir.user_id, ir.description, ir.issue_type,
		       ir.software, ir.status, ir.created_at, ir.updated_at,
		       u.full_name, e.equipment_name
		FROM issue_reports ir
		JOIN users u ON ir.user_id = u.id
		JOIN equipment e ON ir.equipment_id = e.id
		WHERE ir.id = $1
	`

	var v models.IssueReportView
	err := database.DB.QueryRow(ctx, query, id).Scan(
		&v.ID, &v.EquipmentID, &v.UserID, &v.Description, &v.IssueType,
		&v.Software, &v.Status, &v.CreatedAt, &v.UpdatedAt,
		&v.UserName, &v.EquipmentName,
	)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, errors.New("issue report not found")
	}
	if err != nil {
		return nil, err
	}

	return &v, nil
}

// ListByUser retrieves a user's own reports, newest first.
func (r *IssueRepository) ListByUser(ctx context.Context, userID int) ([]models.IssueReportView, error) {
	return r.list(ctx, `WHERE ir.user_id = $1`, userID)
}

// ListAll retrieves every report, newest first. Admin view.
func (r *IssueRepository) ListAll(ctx context.Context) ([]models.IssueReportView, error) {
	return r.list(ctx, ``)
}

// ListPending retrieves reports still awaiting admin action.
func (r *IssueRepository) ListPending(ctx context.Context) ([]models.IssueReportView, error) {
	return r.list(ctx, `WHERE ir.status = 'Pending'`)
}

func (r *IssueRepository) list(ctx context.Context, where string, args ...interface{}) ([]models.IssueReportView, error) {
	query := `
		SELECT ir.id, ir.equipment_id, ir.user_id, ir.description, ir.issue_type,
		       ir.software, ir.status, ir.created_at, ir.updated_at,
		       u.full_name, e.equipment_name
		FROM issue_reports ir
		JOIN users u ON ir.user_id = u.id
		JOIN equipment e ON ir.equipment_id = e.id
		` + where + `
		ORDER BY ir.created_at DESC
	`

	rows, err := database.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var views []models.IssueReportView
	for rows.Next() {
		var v models.IssueReportView
		if err := rows.Scan(
			&v.ID, &v.EquipmentID, &v.UserID, &v.Description, &v.IssueType,
			&v.Software, &v.Status, &v.CreatedAt, &v.UpdatedAt,
			&v.UserName, &v.EquipmentName,
		); err != nil {
			return nil, err
		}
		views = append(views, v)
	}

	return views, rows.Err()
}

// UpdateStatus moves a report to a new status and bumps updated_at.
func (r *IssueRepository) UpdateStatus(ctx context.Context, id int, status models.IssueStatus) error {
	query := `UPDATE issue_reports SET status = $1, updated_at = NOW() WHERE id = $2`

	result, err := database.DB.Exec(ctx, query, status, id)
	if err != nil {
		return fmt.Errorf("failed to update issue status: %w", err)
	}

	if result.RowsAffected() == 0 {
		return errors.New("issue report not found")
	}

	return nil
}
