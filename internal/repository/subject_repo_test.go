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

// TestSubjectRepository_Create verifies subject insertion with RETURNING.
func TestSubjectRepository_Create(t *testing.T) {
	start := time.Date(2026, 9, 1, 8, 0, 0, 0, time.UTC)
	end := time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)

	// Arrange
	mock, restore := newMockDB(t)
	defer restore()

	subject := &models.Subject{
		SubjectCode: "CS101",
		SubjectName: "Intro to Computing",
		RoomID:      2,
		StartTime:   start,
		EndTime:     end,
	}

	rows := pgxmock.NewRows([]string{"id"}).AddRow(9)
	mock.ExpectQuery("INSERT INTO subjects").
		WithArgs("CS101", "Intro to Computing", 2, start, end).
		WillReturnRows(rows)

	repo := repository.NewSubjectRepository()

	// Act
	err := repo.Create(context.Background(), subject)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, 9, subject.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// TestSubjectRepository_ReplaceEnrollment verifies the roster swap runs as
// one transaction.
func TestSubjectRepository_ReplaceEnrollment(t *testing.T) {
	t.Run("replaces roster atomically", func(t *testing.T) {
		// Arrange
		mock, restore := newMockDB(t)
		defer restore()

		mock.ExpectBegin()
		mock.ExpectExec("DELETE FROM student_subjects").
			WithArgs(9).
			WillReturnResult(pgxmock.NewResult("DELETE", 2))
		mock.ExpectExec("INSERT INTO student_subjects").
			WithArgs(1, 9).
			WillReturnResult(pgxmock.NewResult("INSERT", 1))
		mock.ExpectExec("INSERT INTO student_subjects").
			WithArgs(2, 9).
			WillReturnResult(pgxmock.NewResult("INSERT", 1))
		mock.ExpectCommit()

		repo := repository.NewSubjectRepository()

		// Act
		err := repo.ReplaceEnrollment(context.Background(), 9, []int{1, 2})

		// Assert
		require.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("empty roster clears enrollment", func(t *testing.T) {
		// Arrange
		mock, restore := newMockDB(t)
		defer restore()

		mock.ExpectBegin()
		mock.ExpectExec("DELETE FROM student_subjects").
			WithArgs(9).
			WillReturnResult(pgxmock.NewResult("DELETE", 2))
		mock.ExpectCommit()

		repo := repository.NewSubjectRepository()

		// Act
		err := repo.ReplaceEnrollment(context.Background(), 9, nil)

		// Assert
		require.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

// TestSubjectRepository_ExistsByCode verifies the uniqueness lookup.
func TestSubjectRepository_ExistsByCode(t *testing.T) {
	// Arrange
	mock, restore := newMockDB(t)
	defer restore()

	rows := pgxmock.NewRows([]string{"exists"}).AddRow(true)
	mock.ExpectQuery("SELECT EXISTS").
		WithArgs("CS101").
		WillReturnRows(rows)

	repo := repository.NewSubjectRepository()

	// Act
	exists, err := repo.ExistsByCode(context.Background(), "CS101")

	// Assert
	require.NoError(t, err)
	assert.True(t, exists)
	assert.NoError(t, mock.ExpectationsWereMet())
}
