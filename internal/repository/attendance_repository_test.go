package repository

import (
	"context"
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aoihana/koubanhyou-server/internal/roster"
)

func TestAttendanceGetCell(t *testing.T) {
	t.Run("returns the stored cell", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()
		repo := NewAttendanceRepo(db)

		// GetCell reads schedule_attendance alone, with no members join,
		// so a member hidden from the board still reads back their marks.
		mock.ExpectQuery("SELECT attendance_status, custom_text FROM schedule_attendance").
			WithArgs(4, 2).
			WillReturnRows(sqlmock.NewRows([]string{"attendance_status", "custom_text"}).
				AddRow(roster.StatusAbsent, nil))

		cell, err := repo.GetCell(context.Background(), 4, 2)
		require.NoError(t, err)
		require.NotNil(t, cell)
		assert.Equal(t, roster.StatusAbsent, cell.Status)
		assert.Nil(t, cell.Text)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("custom cell carries its text", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()
		repo := NewAttendanceRepo(db)

		mock.ExpectQuery("SELECT attendance_status, custom_text FROM schedule_attendance").
			WithArgs(4, 2).
			WillReturnRows(sqlmock.NewRows([]string{"attendance_status", "custom_text"}).
				AddRow(roster.StatusCustom, "late 30m"))

		cell, err := repo.GetCell(context.Background(), 4, 2)
		require.NoError(t, err)
		require.NotNil(t, cell)
		assert.Equal(t, roster.StatusCustom, cell.Status)
		require.NotNil(t, cell.Text)
		assert.Equal(t, "late 30m", *cell.Text)
	})

	t.Run("missing cell is nil without error", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()
		repo := NewAttendanceRepo(db)

		mock.ExpectQuery("SELECT attendance_status, custom_text FROM schedule_attendance").
			WithArgs(4, 2).
			WillReturnError(sql.ErrNoRows)

		cell, err := repo.GetCell(context.Background(), 4, 2)
		require.NoError(t, err)
		assert.Nil(t, cell)
	})
}
