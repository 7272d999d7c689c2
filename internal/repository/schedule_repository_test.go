package repository

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aoihana/koubanhyou-server/internal/model"
)

func upsertFixture() model.ScheduleEntry {
	return model.ScheduleEntry{
		ScheduleDate:     "2024-03-05",
		Venue:            "Studio A",
		StartTime:        "18:00",
		EndTime:          "20:00",
		RehearsalType:    "music",
		RehearsalContent: "act one run",
	}
}

func TestUpsertByNaturalKeyTx(t *testing.T) {
	t.Run("new natural key inserts", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()
		repo := NewScheduleRepo(db)

		mock.ExpectBegin()
		mock.ExpectQuery("SELECT id FROM schedules WHERE schedule_date").
			WithArgs("2024-03-05", "Studio A", "18:00").
			WillReturnError(sql.ErrNoRows)
		mock.ExpectExec("INSERT INTO schedules").
			WillReturnResult(sqlmock.NewResult(5, 1))
		mock.ExpectCommit()

		tx, err := db.Begin()
		require.NoError(t, err)
		e := upsertFixture()
		inserted, err := repo.UpsertByNaturalKeyTx(context.Background(), tx, &e)
		require.NoError(t, err)
		assert.True(t, inserted)
		require.NoError(t, tx.Commit())
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("matching natural key updates in place", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()
		repo := NewScheduleRepo(db)

		mock.ExpectBegin()
		mock.ExpectQuery("SELECT id FROM schedules WHERE schedule_date").
			WithArgs("2024-03-05", "Studio A", "18:00").
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(5))
		mock.ExpectExec("UPDATE schedules").
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		tx, err := db.Begin()
		require.NoError(t, err)
		e := upsertFixture()
		inserted, err := repo.UpsertByNaturalKeyTx(context.Background(), tx, &e)
		require.NoError(t, err)
		assert.False(t, inserted, "a re-imported row must count as updated, not inserted")
		require.NoError(t, tx.Commit())
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("database failure surfaces to the caller", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()
		repo := NewScheduleRepo(db)

		mock.ExpectBegin()
		mock.ExpectQuery("SELECT id FROM schedules WHERE schedule_date").
			WillReturnError(errors.New("connection lost"))
		mock.ExpectRollback()

		tx, err := db.Begin()
		require.NoError(t, err)
		e := upsertFixture()
		_, err = repo.UpsertByNaturalKeyTx(context.Background(), tx, &e)
		require.Error(t, err)
		require.NoError(t, tx.Rollback())
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
