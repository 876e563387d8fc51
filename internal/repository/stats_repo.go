// This file provides statistical aggregation queries for dashboard displays.
package repository

import (
	"context"

	"github.com/vrash12/laboratory-management/internal/database"
)

// StatsRepository handles statistical queries for dashboard displays.
// These queries aggregate data across rooms, equipment, subjects, and
// open work items to provide insights for administrators.
type StatsRepository struct{}

// NewStatsRepository creates a new instance of StatsRepository.
func NewStatsRepository() *StatsRepository {
	return &StatsRepository{}
}

// DashboardStats represents aggregated statistics for admin dashboard display.
type DashboardStats struct {
	TotalRooms          int // Number of laboratory rooms
	TotalEquipment      int // All PCs and laptops
	AvailableEquipment  int // Equipment with is_available = TRUE
	TotalSubjects       int // Subjects across all rooms
	PendingIssues       int // Issue reports awaiting action
	OpenMaintenance     int // Maintenance records Scheduled or In Progress
	PendingBorrows      int // Borrow requests awaiting processing
	TotalStudents       int // Accounts with the User role
}

// UserStats represents statistics for a student's dashboard.
type UserStats struct {
	EnrolledSubjects int // Subjects the student is enrolled in
	AssignedPCs      int // PC assignments held by the student
	OpenIssues       int // The student's unresolved issue reports
	ActiveBorrows    int // The student's Pending or Approved borrow requests
}

// GetAdminDashboardStats retrieves aggregated statistics for the admin
// dashboard.
//
// Database: Scalar subqueries against each table, returned in a single round
// trip.
func (r *StatsRepository) GetAdminDashboardStats(ctx context.Context) (*DashboardStats, error) {
	query := `
		SELECT
			(SELECT COUNT(*) FROM rooms) as total_rooms,
			(SELECT COUNT(*) FROM equipment) as total_equipment,
			(SELECT COUNT(*) FROM equipment WHERE is_available = TRUE) as available_equipment,
			(SELECT COUNT(*) FROM subjects) as total_subjects,
			(SELECT COUNT(*) FROM issue_reports WHERE status = 'Pending') as pending_issues,
			(SELECT COUNT(*) FROM maintenance WHERE status IN ('Scheduled', 'In Progress')) as open_maintenance,
			(SELECT COUNT(*) FROM borrow_requests WHERE status = 'Pending') as pending_borrows,
			(SELECT COUNT(*) FROM users WHERE role = 'User') as total_students
	`

	stats := &DashboardStats{}
	row := database.DB.QueryRow(ctx, query)

	err := row.Scan(
		&stats.TotalRooms,
		&stats.TotalEquipment,
		&stats.AvailableEquipment,
		&stats.TotalSubjects,
		&stats.PendingIssues,
		&stats.OpenMaintenance,
		&stats.PendingBorrows,
		&stats.TotalStudents,
	)

	if err != nil {
		return nil, err
	}

	return stats, nil
}

// GetUserStats retrieves statistics for a specific student's dashboard.
func (r *StatsRepository) GetUserStats(ctx context.Context, userID int) (*UserStats, error) {
	query := `
		SELECT
			(SELECT COUNT(*) FROM student_subjects WHERE student_id = $1) as enrolled_subjects,
			(SELECT COUNT(*) FROM pc_assignments WHERE student_id = $1) as assigned_pcs,
			(SELECT COUNT(*) FROM issue_reports WHERE user_id = $1 AND status <> 'Resolved') as open_issues,
			(SELECT COUNT(*) FROM borrow_requests WHERE user_id = $1 AND status IN ('Pending', 'Approved')) as active_borrows
	`

	stats := &UserStats{}
	row := database.DB.QueryRow(ctx, query, userID)

	err := row.Scan(
		&stats.EnrolledSubjects,
		&stats.AssignedPCs,
		&stats.OpenIssues,
		&stats.ActiveBorrows,
	)

	if err != nil {
		return nil, err
	}

	return stats, nil
}
