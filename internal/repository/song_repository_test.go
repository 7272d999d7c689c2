package repository

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aoihana/koubanhyou-server/internal/model"
)

func TestSongInsertIgnoreTx(t *testing.T) {
	s := model.Song{Ba: "act1", SongNumber: "3", SongName: "Overture", IsActive: true}

	t.Run("new pair inserts", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()
		repo := NewSongRepo(db)

		mock.ExpectBegin()
		mock.ExpectExec("INSERT INTO songs").
			WillReturnResult(sqlmock.NewResult(9, 1))

		tx, err := db.Begin()
		require.NoError(t, err)
		ss := s
		inserted, err := repo.InsertIgnoreTx(context.Background(), tx, &ss)
		require.NoError(t, err)
		assert.True(t, inserted)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("existing ba and number pair is skipped", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()
		repo := NewSongRepo(db)

		mock.ExpectBegin()
		mock.ExpectExec("INSERT INTO songs").
			WillReturnResult(sqlmock.NewResult(0, 0))

		tx, err := db.Begin()
		require.NoError(t, err)
		ss := s
		inserted, err := repo.InsertIgnoreTx(context.Background(), tx, &ss)
		require.NoError(t, err)
		assert.False(t, inserted)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
