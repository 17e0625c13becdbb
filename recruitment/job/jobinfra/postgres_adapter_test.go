package jobinfra

import (
	"context"
	"database/sql"
	"regexp"
	"testing"
	"time"

	"github.com/Abraxas-365/hirematch/pkg/errx"
	"github.com/Abraxas-365/hirematch/recruitment/job"
	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildFilterEmpty(t *testing.T) {
	w := buildFilter(job.SearchFilter{})
	assert.Equal(t, " WHERE j.is_active = TRUE", w.sql())
	assert.Empty(t, w.args)
}

func TestBuildFilterAll(t *testing.T) {
	w := buildFilter(job.SearchFilter{
		Query:           "go",
		Location:        "SF",
		JobType:         job.JobTypeRemote,
		ExperienceLevel: job.ExperienceMid,
		Salary:          job.SalaryBand50To80,
	})

	assert.Equal(t,
		" WHERE j.is_active = TRUE"+
			" AND (j.title ILIKE $1 OR c.name ILIKE $1 OR j.description ILIKE $1)"+
			" AND j.location ILIKE $2"+
			" AND j.job_type = $3"+
			" AND j.experience_level = $4"+
			" AND j.salary_min >= $5"+
			" AND j.salary_max <= $6",
		w.sql())
	assert.Equal(t, []any{"%go%", "%SF%", "remote", "mid", 50000, 80000}, w.args)
}

func TestBuildFilterOpenEndedBand(t *testing.T) {
	w := buildFilter(job.SearchFilter{Salary: job.SalaryBand120Plus})
	assert.Equal(t, []any{120000}, w.args)
}

func TestLikePatternEscapes(t *testing.T) {
	assert.Equal(t, `%50\%\_off%`, likePattern(" 50%_off "))
}

func newMock(t *testing.T) (*PostgresJobRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewPostgresJobRepository(sqlx.NewDb(db, "postgres")), mock
}

func TestGetByIDNotFound(t *testing.T) {
	repo, mock := newMock(t)
	mock.ExpectQuery(regexp.QuoteMeta("WHERE j.id = $1")).
		WithArgs("missing").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.GetByID(context.Background(), "missing")
	assert.True(t, errx.IsCode(err, job.CodeJobNotFound))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetByIDMapsNullables(t *testing.T) {
	repo, mock := newMock(t)
	now := time.Now()

	rows := sqlmock.NewRows([]string{
		"id", "title", "description", "requirements", "location",
		"latitude", "longitude", "job_type", "experience_level",
		"salary_min", "salary_max", "is_active", "company_id",
		"company_name", "posted_by", "created_at", "updated_at",
	}).AddRow(
		"j1", "Engineer", "Go", "", "SF",
		37.78, nil, "full-time", "mid",
		80000, nil, true, "c1",
		"Acme", "u1", now, now,
	)
	mock.ExpectQuery(regexp.QuoteMeta("WHERE j.id = $1")).WithArgs("j1").WillReturnRows(rows)

	j, err := repo.GetByID(context.Background(), "j1")
	require.NoError(t, err)

	require.NotNil(t, j.Latitude)
	assert.Equal(t, 37.78, *j.Latitude)
	assert.Nil(t, j.Longitude)
	assert.False(t, j.HasCoordinates())
	assert.Equal(t, "$80k+", j.SalaryRange())
	assert.Equal(t, "Acme", string(j.CompanyName))
}

func TestListActiveMentioningSkipsBlankTerms(t *testing.T) {
	repo, mock := newMock(t)

	out, err := repo.ListActiveMentioning(context.Background(), []string{" ", ""}, nil, 10)
	require.NoError(t, err)
	assert.Empty(t, out)
	assert.NoError(t, mock.ExpectationsWereMet())
}
