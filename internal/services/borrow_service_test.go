package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vrash12/laboratory-management/internal/models"
	"github.com/vrash12/laboratory-management/internal/services"
)

// expectAssignment scripts the student's assignment lookup for a subject.
func expectAssignment(mock pgxmock.PgxPoolIface, studentID, subjectID int, equipmentID *int) {
	rows := pgxmock.NewRows([]string{"id", "subject_id", "student_id", "equipment_id"})
	if equipmentID != nil {
		rows.AddRow(1, subjectID, studentID, *equipmentID)
	}
	mock.ExpectQuery("FROM pc_assignments").
		WithArgs(studentID, subjectID).
		WillReturnRows(rows)
}

// expectMaintenanceWindow scripts the store-side scan over the equipment's
// open maintenance records for the subject window.
func expectMaintenanceWindow(mock pgxmock.PgxPoolIface, equipmentID int, start, end time.Time, covered bool) {
	mock.ExpectQuery("SELECT EXISTS\\(\\s+SELECT 1 FROM maintenance").
		WithArgs(equipmentID, start, end).
		WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(covered))
}

// TestBorrowService_Request_EligibleStudent verifies the full eligibility
// chain: enrolled, assigned, PC under maintenance inside the subject window,
// laptop available. A Pending request is created.
func TestBorrowService_Request_EligibleStudent(t *testing.T) {
	start := time.Date(2026, 9, 1, 9, 0, 0, 0, time.UTC)
	end := time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)
	pcID := 3
	requestDate := time.Date(2026, 8, 30, 14, 0, 0, 0, time.UTC)

	// Arrange
	mock, restore := newMockDB(t)
	defer restore()

	expectSubject(mock, 9, "CS102", 2, start, end)
	expectEnrolled(mock, 7, 9, true)
	expectAssignment(mock, 7, 9, &pcID)
	expectMaintenanceWindow(mock, pcID, start, end, true)
	expectEquipment(mock, 12, nil, "Laptop-1", models.EquipmentLaptop, true)

	mock.ExpectQuery("SELECT EXISTS").
		WithArgs(7, 12).
		WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(false))

	mock.ExpectQuery("INSERT INTO borrow_requests").
		WithArgs(7, 12, models.BorrowPending).
		WillReturnRows(pgxmock.NewRows([]string{"id", "request_date"}).AddRow(5, requestDate))

	svc := services.NewBorrowService()

	// Act
	req, err := svc.Request(context.Background(), studentActor, 9, 12)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, models.BorrowPending, req.Status)
	assert.Equal(t, 5, req.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// TestBorrowService_Request_NoMaintenanceOverlap verifies the eligibility
// error when no open maintenance record for the assigned PC falls inside the
// subject window.
func TestBorrowService_Request_NoMaintenanceOverlap(t *testing.T) {
	start := time.Date(2026, 9, 1, 9, 0, 0, 0, time.UTC)
	end := time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)
	pcID := 3

	// Arrange
	mock, restore := newMockDB(t)
	defer restore()

	expectSubject(mock, 9, "CS102", 2, start, end)
	expectEnrolled(mock, 7, 9, true)
	expectAssignment(mock, 7, 9, &pcID)
	expectMaintenanceWindow(mock, pcID, start, end, false)

	svc := services.NewBorrowService()

	// Act
	req, err := svc.Request(context.Background(), studentActor, 9, 12)

	// Assert
	assert.ErrorIs(t, err, services.ErrNotEligible)
	assert.Nil(t, req)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// TestBorrowService_Request_WindowCheckSpansAllOpenRecords verifies the
// maintenance test is pushed to the store as a single existence query over
// [start, end]. The service never fetches one record and inspects it, so an
// in-window record qualifies the student even when an older open record
// sits outside the window.
func TestBorrowService_Request_WindowCheckSpansAllOpenRecords(t *testing.T) {
	start := time.Date(2026, 9, 1, 9, 0, 0, 0, time.UTC)
	end := time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)
	pcID := 3
	requestDate := time.Date(2026, 8, 30, 14, 0, 0, 0, time.UTC)

	// Arrange
	mock, restore := newMockDB(t)
	defer restore()

	expectSubject(mock, 9, "CS102", 2, start, end)
	expectEnrolled(mock, 7, 9, true)
	expectAssignment(mock, 7, 9, &pcID)

	// The store scans every open record; the window bounds travel as query
	// arguments. Any single-record lookup here would break the expectation.
	expectMaintenanceWindow(mock, pcID, start, end, true)
	expectEquipment(mock, 12, nil, "Laptop-1", models.EquipmentLaptop, true)

	mock.ExpectQuery("SELECT EXISTS").
		WithArgs(7, 12).
		WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(false))

	mock.ExpectQuery("INSERT INTO borrow_requests").
		WithArgs(7, 12, models.BorrowPending).
		WillReturnRows(pgxmock.NewRows([]string{"id", "request_date"}).AddRow(6, requestDate))

	svc := services.NewBorrowService()

	// Act
	req, err := svc.Request(context.Background(), studentActor, 9, 12)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, models.BorrowPending, req.Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// TestBorrowService_Request_NoAssignment verifies students without a PC
// assignment for the subject cannot borrow.
func TestBorrowService_Request_NoAssignment(t *testing.T) {
	start := time.Date(2026, 9, 1, 9, 0, 0, 0, time.UTC)
	end := time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)

	// Arrange
	mock, restore := newMockDB(t)
	defer restore()

	expectSubject(mock, 9, "CS102", 2, start, end)
	expectEnrolled(mock, 7, 9, true)
	expectAssignment(mock, 7, 9, nil)

	svc := services.NewBorrowService()

	// Act
	req, err := svc.Request(context.Background(), studentActor, 9, 12)

	// Assert
	assert.ErrorIs(t, err, services.ErrNotEligible)
	assert.Nil(t, req)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// TestBorrowService_Request_LaptopChecks verifies the target must be an
// available laptop.
func TestBorrowService_Request_LaptopChecks(t *testing.T) {
	start := time.Date(2026, 9, 1, 9, 0, 0, 0, time.UTC)
	end := time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)
	pcID := 3
	roomID := 2

	tests := []struct {
		name          string
		equipmentType models.EquipmentType
		available     bool
		expectedError error
	}{
		{name: "PC cannot be borrowed", equipmentType: models.EquipmentPC, available: true, expectedError: services.ErrNotALaptop},
		{name: "unavailable laptop refused", equipmentType: models.EquipmentLaptop, available: false, expectedError: services.ErrLaptopUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Arrange
			mock, restore := newMockDB(t)
			defer restore()

			expectSubject(mock, 9, "CS102", roomID, start, end)
			expectEnrolled(mock, 7, 9, true)
			expectAssignment(mock, 7, 9, &pcID)
			expectMaintenanceWindow(mock, pcID, start, end, true)
			expectEquipment(mock, 12, &roomID, "Target", tt.equipmentType, tt.available)

			svc := services.NewBorrowService()

			// Act
			req, err := svc.Request(context.Background(), studentActor, 9, 12)

			// Assert
			assert.ErrorIs(t, err, tt.expectedError)
			assert.Nil(t, req)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

// TestBorrowService_SetStatus_LegalTransition verifies an approval records
// the admin and flips availability inside the transaction.
func TestBorrowService_SetStatus_LegalTransition(t *testing.T) {
	requestDate := time.Date(2026, 8, 30, 14, 0, 0, 0, time.UTC)

	// Arrange
	mock, restore := newMockDB(t)
	defer restore()

	rows := pgxmock.NewRows([]string{"id", "user_id", "equipment_id", "request_date", "status", "admin_id"}).
		AddRow(5, 7, 12, requestDate, models.BorrowPending, nil)
	mock.ExpectQuery("FROM borrow_requests").WithArgs(5).WillReturnRows(rows)

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE borrow_requests SET status").
		WithArgs(models.BorrowApproved, 1, 5).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	mock.ExpectExec("UPDATE equipment SET is_available").
		WithArgs(12).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	mock.ExpectCommit()

	svc := services.NewBorrowService()

	// Act
	err := svc.SetStatus(context.Background(), adminActor, 5, models.BorrowApproved)

	// Assert
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// TestBorrowService_SetStatus_IllegalTransition verifies illegal moves fail
// before any write.
func TestBorrowService_SetStatus_IllegalTransition(t *testing.T) {
	requestDate := time.Date(2026, 8, 30, 14, 0, 0, 0, time.UTC)

	tests := []struct {
		name   string
		from   models.BorrowRequestStatus
		to     models.BorrowRequestStatus
	}{
		{name: "denied request cannot be returned", from: models.BorrowDenied, to: models.BorrowReturned},
		{name: "approved request cannot be denied", from: models.BorrowApproved, to: models.BorrowDenied},
		{name: "returned is terminal", from: models.BorrowReturned, to: models.BorrowPending},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Arrange
			mock, restore := newMockDB(t)
			defer restore()

			adminID := 2
			rows := pgxmock.NewRows([]string{"id", "user_id", "equipment_id", "request_date", "status", "admin_id"}).
				AddRow(5, 7, 12, requestDate, tt.from, &adminID)
			mock.ExpectQuery("FROM borrow_requests").WithArgs(5).WillReturnRows(rows)

			svc := services.NewBorrowService()

			// Act
			err := svc.SetStatus(context.Background(), adminActor, 5, tt.to)

			// Assert - no transaction was ever opened
			require.Error(t, err)
			assert.Contains(t, err.Error(), "cannot move request")
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

// TestBorrowService_SetStatus_RejectsNonAdmin verifies the actor gate.
func TestBorrowService_SetStatus_RejectsNonAdmin(t *testing.T) {
	mock, restore := newMockDB(t)
	defer restore()

	svc := services.NewBorrowService()

	err := svc.SetStatus(context.Background(), studentActor, 5, models.BorrowApproved)

	assert.ErrorIs(t, err, services.ErrNotAuthorized)
	assert.NoError(t, mock.ExpectationsWereMet())
}
