package store

import (
	"errors"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/MKhiriev/go-field-survey/internal/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestDeletionRepo(t *testing.T) (*pendingDeletionRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock := newTestDB(t)
	repo := NewPendingDeletionRepository(newDBFromSQL(db), logger.Nop()).(*pendingDeletionRepository)
	repo.now = func() time.Time { return time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC) }
	return repo, mock
}

func TestPendingDeletionRepository_EnqueueDeletion(t *testing.T) {
	repo, mock := newTestDeletionRepo(t)

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO pending_deletions")).
		WithArgs("a1b2c3d4e5f6a1b2c3d4e5f6", "2024-05-01T12:00:00.000000000Z").
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.EnqueueDeletion(testContext(), "a1b2c3d4e5f6a1b2c3d4e5f6"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPendingDeletionRepository_EnqueueDeletion_EmptyKey(t *testing.T) {
	repo, _ := newTestDeletionRepo(t)
	assert.ErrorIs(t, repo.EnqueueDeletion(testContext(), ""), ErrEmptyKey)
}

func TestPendingDeletionRepository_PendingDeletions(t *testing.T) {
	repo, mock := newTestDeletionRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta("FROM pending_deletions")).
		WillReturnRows(sqlmock.NewRows([]string{"remote_id"}).AddRow("r1").AddRow("r2"))

	ids, err := repo.PendingDeletions(testContext())
	require.NoError(t, err)
	assert.Equal(t, []string{"r1", "r2"}, ids)
}

func TestPendingDeletionRepository_PendingDeletions_Error(t *testing.T) {
	repo, mock := newTestDeletionRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta("FROM pending_deletions")).
		WillReturnError(errors.New("boom"))

	_, err := repo.PendingDeletions(testContext())
	assert.ErrorIs(t, err, ErrExecutingQuery)
}

func TestPendingDeletionRepository_RemoveDeletion(t *testing.T) {
	repo, mock := newTestDeletionRepo(t)

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM pending_deletions")).
		WithArgs("r1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.RemoveDeletion(testContext(), "r1"))
	assert.NoError(t, mock.ExpectationsWereMet())
}
