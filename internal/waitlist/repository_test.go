package waitlist

import (
	"context"
	"testing"
	"time"

	"nexusems/pkg/apperrors"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		SkipDefaultTransaction: true,
		TranslateError:         true,
	})
	require.NoError(t, err)
	return db, mock
}

func TestFindByEventEmail(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewRepository(db)

	mock.ExpectQuery(`SELECT \* FROM "waitlist_entries" WHERE event_id = \$1 AND email = \$2`).
		WillReturnRows(sqlmock.NewRows([]string{"waitlist_id", "event_id", "email", "status"}).
			AddRow("W-0123457", "E-001", "a@b.com", "waiting"))
	mock.ExpectQuery(`SELECT \* FROM "waitlist_entries" WHERE event_id = \$1 AND email = \$2`).
		WillReturnRows(sqlmock.NewRows([]string{"waitlist_id"}))

	entry, err := repo.FindByEventEmail(context.Background(), "E-001", "a@b.com")
	require.NoError(t, err)
	assert.Equal(t, "W-0123457", entry.WaitlistID)

	_, err = repo.FindByEventEmail(context.Background(), "E-001", "new@b.com")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMarkNotifiedOnlyFromWaiting(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewRepository(db)

	mock.ExpectExec(`UPDATE "waitlist_entries" SET .* WHERE waitlist_id = \$\d+ AND status = \$\d+`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`UPDATE "waitlist_entries" SET .* WHERE waitlist_id = \$\d+ AND status = \$\d+`).
		WillReturnResult(sqlmock.NewResult(0, 0))

	require.NoError(t, repo.MarkNotified(context.Background(), "W-1", time.Now()))
	assert.ErrorIs(t, repo.MarkNotified(context.Background(), "W-1", time.Now()), apperrors.ErrConflict)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteUnknownEntry(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewRepository(db)

	mock.ExpectExec(`DELETE FROM "waitlist_entries" WHERE waitlist_id = \$1`).
		WithArgs("W-404").
		WillReturnResult(sqlmock.NewResult(0, 0))

	assert.ErrorIs(t, repo.Delete(context.Background(), "W-404"), apperrors.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}
