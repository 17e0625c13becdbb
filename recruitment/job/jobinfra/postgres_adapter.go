package jobinfra

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Abraxas-365/hirematch/pkg/kernel"
	"github.com/Abraxas-365/hirematch/recruitment/job"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

// PostgresJobRepository implements job.Repository using PostgreSQL
type PostgresJobRepository struct {
	db *sqlx.DB
}

// NewPostgresJobRepository creates a new PostgreSQL job repository
func NewPostgresJobRepository(db *sqlx.DB) *PostgresJobRepository {
	return &PostgresJobRepository{
		db: db,
	}
}

// ============================================================================
// Database Model
// ============================================================================

type jobModel struct {
	ID              string          `db:"id"`
	Title           string          `db:"title"`
	Description     string          `db:"description"`
	Requirements    string          `db:"requirements"`
	Location        string          `db:"location"`
	Latitude        sql.NullFloat64 `db:"latitude"`
	Longitude       sql.NullFloat64 `db:"longitude"`
	JobType         string          `db:"job_type"`
	ExperienceLevel string          `db:"experience_level"`
	SalaryMin       sql.NullInt64   `db:"salary_min"`
	SalaryMax       sql.NullInt64   `db:"salary_max"`
	IsActive        bool            `db:"is_active"`
	CompanyID       string          `db:"company_id"`
	CompanyName     string          `db:"company_name"`
	PostedBy        string          `db:"posted_by"`
	CreatedAt       time.Time       `db:"created_at"`
	UpdatedAt       time.Time       `db:"updated_at"`
}

// toEntity converts database model to domain entity
func (m *jobModel) toEntity() job.Job {
	j := job.Job{
		ID:              kernel.JobID(m.ID),
		Title:           kernel.JobTitle(m.Title),
		Description:     kernel.JobDescription(m.Description),
		Requirements:    kernel.JobRequirements(m.Requirements),
		Location:        m.Location,
		JobType:         job.JobType(m.JobType),
		ExperienceLevel: job.ExperienceLevel(m.ExperienceLevel),
		IsActive:        m.IsActive,
		CompanyID:       kernel.CompanyID(m.CompanyID),
		CompanyName:     kernel.CompanyName(m.CompanyName),
		PostedBy:        kernel.UserID(m.PostedBy),
		CreatedAt:       m.CreatedAt,
		UpdatedAt:       m.UpdatedAt,
	}
	if m.Latitude.Valid {
		j.Latitude = &m.Latitude.Float64
	}
	if m.Longitude.Valid {
		j.Longitude = &m.Longitude.Float64
	}
	if m.SalaryMin.Valid {
		v := int(m.SalaryMin.Int64)
		j.SalaryMin = &v
	}
	if m.SalaryMax.Valid {
		v := int(m.SalaryMax.Int64)
		j.SalaryMax = &v
	}
	return j
}

func toEntities(models []jobModel) []job.Job {
	out := make([]job.Job, 0, len(models))
	for i := range models {
		out = append(out, models[i].toEntity())
	}
	return out
}

const selectColumns = `
	j.id, j.title, j.description, j.requirements, j.location,
	j.latitude, j.longitude, j.job_type, j.experience_level,
	j.salary_min, j.salary_max, j.is_active, j.company_id,
	c.name AS company_name, j.posted_by, j.created_at, j.updated_at
`

const fromJobs = `
	FROM jobs j
	JOIN companies c ON c.id = j.company_id
`

// ============================================================================
// Query Building
// ============================================================================

// whereBuilder accumulates positional conditions
type whereBuilder struct {
	conditions []string
	args       []any
}

func (w *whereBuilder) add(format string, arg any) {
	w.args = append(w.args, arg)
	w.conditions = append(w.conditions, fmt.Sprintf(format, len(w.args)))
}

func (w *whereBuilder) addRaw(cond string) {
	w.conditions = append(w.conditions, cond)
}

func (w *whereBuilder) sql() string {
	if len(w.conditions) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(w.conditions, " AND ")
}

func likePattern(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return "%" + r.Replace(strings.TrimSpace(s)) + "%"
}

// buildFilter translates a SearchFilter to SQL, mirroring job.SearchFilter.Matches
func buildFilter(f job.SearchFilter) *whereBuilder {
	w := &whereBuilder{}
	w.addRaw("j.is_active = TRUE")

	if q := strings.TrimSpace(f.Query); q != "" {
		w.args = append(w.args, likePattern(q))
		n := len(w.args)
		w.addRaw(fmt.Sprintf("(j.title ILIKE $%d OR c.name ILIKE $%d OR j.description ILIKE $%d)", n, n, n))
	}
	if loc := strings.TrimSpace(f.Location); loc != "" {
		w.add("j.location ILIKE $%d", likePattern(loc))
	}
	if f.JobType != "" {
		w.add("j.job_type = $%d", string(f.JobType))
	}
	if f.ExperienceLevel != "" {
		w.add("j.experience_level = $%d", string(f.ExperienceLevel))
	}
	if lo, hi, ok := f.Salary.Bounds(); ok {
		w.add("j.salary_min >= $%d", lo)
		if hi > 0 {
			w.add("j.salary_max <= $%d", hi)
		}
	}
	return w
}

// ============================================================================
// Repository Implementation
// ============================================================================

// GetByID retrieves a job by ID
func (r *PostgresJobRepository) GetByID(ctx context.Context, id kernel.JobID) (*job.Job, error) {
	query := `SELECT ` + selectColumns + fromJobs + ` WHERE j.id = $1`

	var model jobModel
	err := r.db.GetContext(ctx, &model, query, string(id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, job.ErrJobNotFound()
		}
		return nil, fmt.Errorf("failed to get job by id: %w", err)
	}

	j := model.toEntity()
	return &j, nil
}

// Search retrieves active jobs matching the filters, newest first
func (r *PostgresJobRepository) Search(ctx context.Context, filter job.SearchFilter, pagination kernel.PaginationOptions) (*kernel.Paginated[job.Job], error) {
	w := buildFilter(filter)

	// Count total
	var total int
	countQuery := `SELECT COUNT(*)` + fromJobs + w.sql()
	if err := r.db.GetContext(ctx, &total, countQuery, w.args...); err != nil {
		return nil, fmt.Errorf("failed to count jobs: %w", err)
	}

	// Get paginated results
	args := append(w.args, pagination.PageSize, pagination.Offset())
	query := fmt.Sprintf(`SELECT %s %s %s ORDER BY j.created_at DESC, j.id ASC LIMIT $%d OFFSET $%d`,
		selectColumns, fromJobs, w.sql(), len(w.args)+1, len(w.args)+2)

	var models []jobModel
	if err := r.db.SelectContext(ctx, &models, query, args...); err != nil {
		return nil, fmt.Errorf("failed to search jobs: %w", err)
	}

	return kernel.NewPaginated(toEntities(models), pagination, total), nil
}

// ListActiveWithCoordinates retrieves active jobs that carry both coordinates
func (r *PostgresJobRepository) ListActiveWithCoordinates(ctx context.Context, filter job.SearchFilter) ([]job.Job, error) {
	w := buildFilter(filter)
	w.addRaw("j.latitude IS NOT NULL")
	w.addRaw("j.longitude IS NOT NULL")

	query := `SELECT ` + selectColumns + fromJobs + w.sql() + ` ORDER BY j.created_at DESC, j.id ASC`

	var models []jobModel
	if err := r.db.SelectContext(ctx, &models, query, w.args...); err != nil {
		return nil, fmt.Errorf("failed to list located jobs: %w", err)
	}
	return toEntities(models), nil
}

// ListActiveMentioning retrieves active jobs whose description or requirements
// contain any of the terms, excluding the given ids, newest first
func (r *PostgresJobRepository) ListActiveMentioning(ctx context.Context, terms []string, exclude []kernel.JobID, limit int) ([]job.Job, error) {
	patterns := make([]string, 0, len(terms))
	for _, t := range terms {
		if strings.TrimSpace(t) != "" {
			patterns = append(patterns, likePattern(t))
		}
	}
	if len(patterns) == 0 {
		return []job.Job{}, nil
	}

	excluded := make([]string, 0, len(exclude))
	for _, id := range exclude {
		excluded = append(excluded, id.String())
	}

	query := `SELECT ` + selectColumns + fromJobs + `
		WHERE j.is_active = TRUE
		  AND (j.description ILIKE ANY($1) OR j.requirements ILIKE ANY($1))
		  AND NOT (j.id = ANY($2))
		ORDER BY j.created_at DESC, j.id ASC
		LIMIT $3`

	var models []jobModel
	if err := r.db.SelectContext(ctx, &models, query, pq.Array(patterns), pq.Array(excluded), limit); err != nil {
		return nil, fmt.Errorf("failed to list recommended jobs: %w", err)
	}
	return toEntities(models), nil
}
