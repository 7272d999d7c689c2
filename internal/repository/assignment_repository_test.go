package repository

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToggle(t *testing.T) {
	now := time.Now()

	t.Run("first toggle creates the cell assigned", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()
		repo := NewAssignmentRepo(db)

		mock.ExpectBegin()
		mock.ExpectQuery("SELECT is_assigned FROM koubanhyou").
			WithArgs(1, 7).
			WillReturnError(sql.ErrNoRows)
		mock.ExpectExec("INSERT INTO koubanhyou").
			WithArgs(1, 7).
			WillReturnResult(sqlmock.NewResult(1, 1))
		mock.ExpectQuery("SELECT member_id, song_id, is_assigned").
			WithArgs(1, 7).
			WillReturnRows(sqlmock.NewRows(
				[]string{"member_id", "song_id", "is_assigned", "created_at", "updated_at"}).
				AddRow(1, 7, true, now, now))
		mock.ExpectCommit()

		a, err := repo.Toggle(context.Background(), 1, 7)
		require.NoError(t, err)
		assert.True(t, a.IsAssigned)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("toggling twice restores the original value", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()
		repo := NewAssignmentRepo(db)

		cellCols := []string{"member_id", "song_id", "is_assigned", "created_at", "updated_at"}

		// First click on an existing assigned cell flips it off.
		mock.ExpectBegin()
		mock.ExpectQuery("SELECT is_assigned FROM koubanhyou").
			WithArgs(1, 7).
			WillReturnRows(sqlmock.NewRows([]string{"is_assigned"}).AddRow(true))
		mock.ExpectExec("UPDATE koubanhyou SET is_assigned = NOT is_assigned").
			WithArgs(1, 7).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectQuery("SELECT member_id, song_id, is_assigned").
			WithArgs(1, 7).
			WillReturnRows(sqlmock.NewRows(cellCols).AddRow(1, 7, false, now, now))
		mock.ExpectCommit()

		// Second click flips it back on. No insert on either click: the
		// row already exists, so both are in-place updates.
		mock.ExpectBegin()
		mock.ExpectQuery("SELECT is_assigned FROM koubanhyou").
			WithArgs(1, 7).
			WillReturnRows(sqlmock.NewRows([]string{"is_assigned"}).AddRow(false))
		mock.ExpectExec("UPDATE koubanhyou SET is_assigned = NOT is_assigned").
			WithArgs(1, 7).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectQuery("SELECT member_id, song_id, is_assigned").
			WithArgs(1, 7).
			WillReturnRows(sqlmock.NewRows(cellCols).AddRow(1, 7, true, now, now))
		mock.ExpectCommit()

		first, err := repo.Toggle(context.Background(), 1, 7)
		require.NoError(t, err)
		assert.False(t, first.IsAssigned)

		second, err := repo.Toggle(context.Background(), 1, 7)
		require.NoError(t, err)
		assert.True(t, second.IsAssigned, "two toggles should return the cell to its original value")
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
