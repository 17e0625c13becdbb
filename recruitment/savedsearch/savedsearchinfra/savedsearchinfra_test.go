package savedsearchinfra

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/Abraxas-365/hirematch/pkg/errx"
	"github.com/Abraxas-365/hirematch/recruitment/savedsearch"
	"github.com/DATA-DOG/go-sqlmock"
	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/jmoiron/sqlx"
	"github.com/sony/gobreaker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMock(t *testing.T) (*PostgresSavedSearchRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewPostgresSavedSearchRepository(sqlx.NewDb(db, "postgres")), mock
}

func TestCommitNotifiedSingleStatement(t *testing.T) {
	repo, mock := newMock(t)
	at := time.Date(2026, 6, 2, 10, 0, 0, 0, time.UTC)

	mock.ExpectExec(regexp.QuoteMeta("UPDATE saved_searches SET last_notified = $2, updated_at = $2 WHERE id = $1")).
		WithArgs("s1", at).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.CommitNotified(context.Background(), "s1", at))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCommitNotifiedMissingSearch(t *testing.T) {
	repo, mock := newMock(t)
	mock.ExpectExec(regexp.QuoteMeta("UPDATE saved_searches")).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.CommitNotified(context.Background(), "gone", time.Now())
	assert.True(t, errx.IsCode(err, savedsearch.CodeSavedSearchNotFound))
}

func TestGetByIDMapsLastNotified(t *testing.T) {
	repo, mock := newMock(t)
	now := time.Now().UTC()

	rows := sqlmock.NewRows([]string{
		"id", "recruiter_id", "recruiter_username", "name", "skills",
		"location", "experience_years", "education_level", "current_company",
		"is_active", "last_notified", "created_at", "updated_at",
	}).AddRow(
		"s1", "r1", "rita", "Backend", "go, java",
		"", "3", "", "",
		true, nil, now, now,
	)
	mock.ExpectQuery(regexp.QuoteMeta("WHERE s.id = $1")).WithArgs("s1").WillReturnRows(rows)

	s, err := repo.GetByID(context.Background(), "s1")
	require.NoError(t, err)
	assert.Nil(t, s.LastNotified)
	assert.Equal(t, "rita", s.DisplayRecruiter())
	assert.Equal(t, []savedsearch.Field{savedsearch.FieldSkills, savedsearch.FieldExperienceYears}, s.Criteria().Fields())
}

func TestGetByIDNotFound(t *testing.T) {
	repo, mock := newMock(t)
	mock.ExpectQuery(regexp.QuoteMeta("WHERE s.id = $1")).WillReturnError(sql.ErrNoRows)

	_, err := repo.GetByID(context.Background(), "missing")
	assert.True(t, errx.IsCode(err, savedsearch.CodeSavedSearchNotFound))
}

func TestRedisNotifierEnqueues(t *testing.T) {
	srv := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: srv.Addr()})
	t.Cleanup(func() { client.Close() })

	n := NewRedisNotifier(client, "hirematch:notifications")
	err := n.Notify(context.Background(), savedsearch.Notification{SearchID: "s1", SearchName: "Backend", Count: 2})
	require.NoError(t, err)

	items, err := srv.List("hirematch:notifications")
	require.NoError(t, err)
	require.Len(t, items, 1)

	var got savedsearch.Notification
	require.NoError(t, json.Unmarshal([]byte(items[0]), &got))
	assert.Equal(t, "Backend", got.SearchName)
	assert.Equal(t, 2, got.Count)
}

type flakyNotifier struct {
	calls int
	err   error
}

func (f *flakyNotifier) Notify(context.Context, savedsearch.Notification) error {
	f.calls++
	return f.err
}

func TestBreakerOpensAfterConsecutiveFailures(t *testing.T) {
	inner := &flakyNotifier{err: errors.New("connection refused")}
	b := NewBreakerNotifier(inner, BreakerSettings{MaxFailures: 2, OpenTimeout: time.Minute})

	for i := 0; i < 2; i++ {
		assert.Error(t, b.Notify(context.Background(), savedsearch.Notification{}))
	}
	assert.Equal(t, gobreaker.StateOpen, b.State())

	err := b.Notify(context.Background(), savedsearch.Notification{})
	assert.ErrorIs(t, err, gobreaker.ErrOpenState)
	assert.Equal(t, 2, inner.calls)
}

func TestBreakerPassesThroughSuccess(t *testing.T) {
	inner := &flakyNotifier{}
	b := NewBreakerNotifier(inner, BreakerSettings{})

	require.NoError(t, b.Notify(context.Background(), savedsearch.Notification{}))
	assert.Equal(t, gobreaker.StateClosed, b.State())
	assert.Equal(t, 1, inner.calls)
}
