package applicationinfra

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/Abraxas-365/hirematch/pkg/errx"
	"github.com/Abraxas-365/hirematch/recruitment/application"
	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMock(t *testing.T) (*PostgresApplicationRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewPostgresApplicationRepository(sqlx.NewDb(db, "postgres")), mock
}

func TestUpdateStatusSingleStatement(t *testing.T) {
	repo, mock := newMock(t)
	at := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)

	mock.ExpectExec(regexp.QuoteMeta("UPDATE applications SET status = $2, updated_at = $3 WHERE id = $1")).
		WithArgs("a1", "OFFER", at).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.UpdateStatus(context.Background(), "a1", application.StatusOffer, at)
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateStatusMissingRow(t *testing.T) {
	repo, mock := newMock(t)

	mock.ExpectExec(regexp.QuoteMeta("UPDATE applications")).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.UpdateStatus(context.Background(), "gone", application.StatusOffer, time.Now())
	assert.True(t, errx.IsCode(err, application.CodeApplicationNotFound))
}

func TestCreateDuplicateMapsToConflict(t *testing.T) {
	repo, mock := newMock(t)

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO applications")).
		WillReturnError(&pq.Error{Code: "23505"})

	err := repo.Create(context.Background(), &application.Application{
		ID:          "a1",
		JobID:       "j1",
		ApplicantID: "u1",
		Status:      application.StatusNew,
	})
	assert.True(t, errx.IsCode(err, application.CodeApplicationAlreadyExists))
}

func TestListByJobIDMapsRows(t *testing.T) {
	repo, mock := newMock(t)
	now := time.Now()

	rows := sqlmock.NewRows([]string{
		"id", "job_id", "applicant_id", "note", "resume_key", "status", "applied_at", "updated_at",
	}).
		AddRow("a1", "j1", "u1", "", nil, "NEW", now, now).
		AddRow("a2", "j1", "u2", "hi", "resumes/a2/cv.pdf", "OFFER", now, now)

	mock.ExpectQuery(regexp.QuoteMeta("WHERE job_id = $1 ORDER BY applied_at ASC")).
		WithArgs("j1").
		WillReturnRows(rows)

	apps, err := repo.ListByJobID(context.Background(), "j1")
	require.NoError(t, err)
	require.Len(t, apps, 2)

	assert.False(t, apps[0].HasResume())
	assert.True(t, apps[1].HasResume())
	assert.Equal(t, application.StatusOffer, apps[1].Status)
}
