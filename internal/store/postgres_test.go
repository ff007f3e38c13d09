// internal/store/postgres_test.go
package store

import (
	"context"
	"database/sql"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestPostgresStore(t *testing.T) (*PostgresStore, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	s := NewPostgresFromDB(db)
	t.Cleanup(func() {
		assert.NoError(t, mock.ExpectationsWereMet())
		s.Close()
	})
	return s, mock
}

func TestPostgresStore_EnsureSchema(t *testing.T) {
	s, mock := newTestPostgresStore(t)

	mock.ExpectExec("CREATE TABLE IF NOT EXISTS snapshots").
		WillReturnResult(sqlmock.NewResult(0, 0))

	assert.NoError(t, s.EnsureSchema(context.Background()))
}

func TestPostgresStore_Load(t *testing.T) {
	s, mock := newTestPostgresStore(t)

	blob := []byte(`{"applications":[]}`)
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT blob FROM snapshots WHERE key = $1`)).
		WithArgs(KeyApplications).
		WillReturnRows(sqlmock.NewRows([]string{"blob"}).AddRow(blob))

	got, err := s.Load(context.Background(), KeyApplications)
	require.NoError(t, err)
	assert.Equal(t, blob, got)
}

func TestPostgresStore_LoadMissingKey(t *testing.T) {
	s, mock := newTestPostgresStore(t)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT blob FROM snapshots WHERE key = $1`)).
		WithArgs(KeyUserProfile).
		WillReturnError(sql.ErrNoRows)

	_, err := s.Load(context.Background(), KeyUserProfile)
	assert.Equal(t, ErrNotFound, err)
}

func TestPostgresStore_SaveUpserts(t *testing.T) {
	s, mock := newTestPostgresStore(t)

	blob := []byte(`{"applications":[]}`)
	mock.ExpectExec("INSERT INTO snapshots").
		WithArgs(KeyApplications, blob).
		WillReturnResult(sqlmock.NewResult(0, 1))

	assert.NoError(t, s.Save(context.Background(), KeyApplications, blob))
}

func TestPostgresStore_SavePropagatesError(t *testing.T) {
	s, mock := newTestPostgresStore(t)

	mock.ExpectExec("INSERT INTO snapshots").
		WillReturnError(sql.ErrConnDone)

	err := s.Save(context.Background(), KeyApplications, []byte("{}"))
	require.Error(t, err)
	assert.ErrorIs(t, err, sql.ErrConnDone)
}

func TestPostgresStore_Delete(t *testing.T) {
	s, mock := newTestPostgresStore(t)

	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM snapshots WHERE key = $1`)).
		WithArgs(KeyUserProfile).
		WillReturnResult(sqlmock.NewResult(0, 1))

	assert.NoError(t, s.Delete(context.Background(), KeyUserProfile))
}
