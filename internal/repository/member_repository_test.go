package repository

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-sql-driver/mysql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aoihana/koubanhyou-server/internal/model"
)

func TestMemberInsertIgnoreTx(t *testing.T) {
	m := model.Member{Number: 12, Role: "lead", Name: "Aoi", ShowInKoubanhyou: true, ShowInSchedule: true}

	t.Run("new number inserts", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()
		repo := NewMemberRepo(db)

		mock.ExpectBegin()
		mock.ExpectExec("INSERT INTO members").
			WithArgs(12, "lead", "Aoi", true, true).
			WillReturnResult(sqlmock.NewResult(3, 1))

		tx, err := db.Begin()
		require.NoError(t, err)
		mm := m
		inserted, err := repo.InsertIgnoreTx(context.Background(), tx, &mm)
		require.NoError(t, err)
		assert.True(t, inserted)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("taken number is skipped", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()
		repo := NewMemberRepo(db)

		mock.ExpectBegin()
		// The no-op duplicate-key update touches zero rows.
		mock.ExpectExec("INSERT INTO members").
			WillReturnResult(sqlmock.NewResult(0, 0))

		tx, err := db.Begin()
		require.NoError(t, err)
		mm := m
		inserted, err := repo.InsertIgnoreTx(context.Background(), tx, &mm)
		require.NoError(t, err)
		assert.False(t, inserted)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("non-duplicate errors are not swallowed", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()
		repo := NewMemberRepo(db)

		mock.ExpectBegin()
		mock.ExpectExec("INSERT INTO members").
			WillReturnError(&mysql.MySQLError{Number: 1406, Message: "Data too long for column 'name'"})

		tx, err := db.Begin()
		require.NoError(t, err)
		mm := m
		_, err = repo.InsertIgnoreTx(context.Background(), tx, &mm)
		require.Error(t, err, "a truncated value must fail the import, not insert clipped")
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
