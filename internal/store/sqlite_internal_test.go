package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2024, 5, 1, 20, 0, 0, 0, time.UTC)

func newMockStore(t *testing.T) (*SQLiteStore, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return &SQLiteStore{db: sqlx.NewDb(db, "sqlite")}, mock
}

func TestPutWrapsDriverError(t *testing.T) {
	s, mock := newMockStore(t)
	boom := errors.New("disk I/O error")

	mock.ExpectExec("INSERT INTO kv").WillReturnError(boom)

	err := s.Put(context.Background(), KeyNotes, []string{"x"})
	assert.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "writing notes:list")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStartFastRollsBackOnFailure(t *testing.T) {
	s, mock := newMockStore(t)
	boom := errors.New("database is locked")

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT value FROM kv").
		WithArgs(KeyFastActive).
		WillReturnRows(sqlmock.NewRows([]string{"value"}))
	mock.ExpectExec("INSERT INTO kv").WillReturnError(boom)
	mock.ExpectRollback()

	_, err := s.StartFast(context.Background(), 16, testNow)
	assert.ErrorIs(t, err, boom)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetReportsDecodeError(t *testing.T) {
	s, mock := newMockStore(t)

	mock.ExpectQuery("SELECT value FROM kv").
		WithArgs("broken").
		WillReturnRows(sqlmock.NewRows([]string{"value"}).AddRow("{not json"))

	var v map[string]string
	_, err := s.Get(context.Background(), "broken", &v)
	assert.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEscapeLike(t *testing.T) {
	assert.Equal(t, `water\_x\%`, escapeLike("water_x%"))
}
