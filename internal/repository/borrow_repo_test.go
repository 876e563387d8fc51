package repository_test

import (
	"context"
	"testing"
	"time"

	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vrash12/laboratory-management/internal/models"
	"github.com/vrash12/laboratory-management/internal/repository"
)

// TestBorrowRepository_Create verifies inserting a pending borrow request.
func TestBorrowRepository_Create(t *testing.T) {
	requestDate := time.Date(2026, 8, 25, 9, 30, 0, 0, time.UTC)

	// Arrange
	mock, restore := newMockDB(t)
	defer restore()

	req := &models.BorrowRequest{
		UserID:      7,
		EquipmentID: 12,
		Status:      models.BorrowPending,
	}

	rows := pgxmock.NewRows([]string{"id", "request_date"}).AddRow(5, requestDate)
	mock.ExpectQuery("INSERT INTO borrow_requests").
		WithArgs(7, 12, models.BorrowPending).
		WillReturnRows(rows)

	repo := repository.NewBorrowRepository()

	// Act
	err := repo.Create(context.Background(), req)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, 5, req.ID)
	assert.Equal(t, requestDate, req.RequestDate)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// TestBorrowRepository_SetStatus verifies the status write and the
// availability flip share one transaction.
func TestBorrowRepository_SetStatus(t *testing.T) {
	tests := []struct {
		name          string
		status        models.BorrowRequestStatus
		availability  *bool // Expected is_available write, nil when none
		requestRows   int64
		expectedError bool
	}{
		{
			name:         "approval takes laptop off the shelf",
			status:       models.BorrowApproved,
			availability: boolPtr(false),
			requestRows:  1,
		},
		{
			name:         "return puts laptop back",
			status:       models.BorrowReturned,
			availability: boolPtr(true),
			requestRows:  1,
		},
		{
			name:         "denial leaves availability alone",
			status:       models.BorrowDenied,
			availability: nil,
			requestRows:  1,
		},
		{
			name:          "missing request reports not found",
			status:        models.BorrowApproved,
			availability:  nil,
			requestRows:   0,
			expectedError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Arrange
			mock, restore := newMockDB(t)
			defer restore()

			mock.ExpectBegin()
			mock.ExpectExec("UPDATE borrow_requests SET status").
				WithArgs(tt.status, 2, 5).
				WillReturnResult(pgxmock.NewResult("UPDATE", tt.requestRows))

			if tt.expectedError {
				mock.ExpectRollback()
			} else {
				if tt.availability != nil {
					mock.ExpectExec("UPDATE equipment SET is_available").
						WithArgs(12).
						WillReturnResult(pgxmock.NewResult("UPDATE", 1))
				}
				mock.ExpectCommit()
			}

			repo := repository.NewBorrowRepository()

			// Act
			err := repo.SetStatus(context.Background(), 5, tt.status, 2, 12)

			// Assert
			if tt.expectedError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

// TestBorrowRepository_HasOpenRequest verifies the duplicate-request guard.
func TestBorrowRepository_HasOpenRequest(t *testing.T) {
	tests := []struct {
		name     string
		exists   bool
		expected bool
	}{
		{name: "open request found", exists: true, expected: true},
		{name: "no open request", exists: false, expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Arrange
			mock, restore := newMockDB(t)
			defer restore()

			rows := pgxmock.NewRows([]string{"exists"}).AddRow(tt.exists)
			mock.ExpectQuery("SELECT EXISTS").
				WithArgs(7, 12).
				WillReturnRows(rows)

			repo := repository.NewBorrowRepository()

			// Act
			open, err := repo.HasOpenRequest(context.Background(), 7, 12)

			// Assert
			require.NoError(t, err)
			assert.Equal(t, tt.expected, open)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func boolPtr(b bool) *bool { return &b }
