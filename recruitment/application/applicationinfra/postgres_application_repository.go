package applicationinfra

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Abraxas-365/hirematch/pkg/kernel"
	"github.com/Abraxas-365/hirematch/recruitment/application"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

// PostgresApplicationRepository implements application.Repository using PostgreSQL
type PostgresApplicationRepository struct {
	db *sqlx.DB
}

// NewPostgresApplicationRepository creates a new PostgreSQL application repository
func NewPostgresApplicationRepository(db *sqlx.DB) *PostgresApplicationRepository {
	return &PostgresApplicationRepository{db: db}
}

// ============================================================================
// Database Model
// ============================================================================

type applicationModel struct {
	ID          string         `db:"id"`
	JobID       string         `db:"job_id"`
	ApplicantID string         `db:"applicant_id"`
	Note        string         `db:"note"`
	ResumeKey   sql.NullString `db:"resume_key"`
	Status      string         `db:"status"`
	AppliedAt   time.Time      `db:"applied_at"`
	UpdatedAt   time.Time      `db:"updated_at"`
}

func (m *applicationModel) toEntity() application.Application {
	return application.Application{
		ID:          kernel.ApplicationID(m.ID),
		JobID:       kernel.JobID(m.JobID),
		ApplicantID: kernel.UserID(m.ApplicantID),
		Note:        m.Note,
		ResumeKey:   kernel.ObjectKey(m.ResumeKey.String),
		Status:      application.ApplicationStatus(m.Status),
		AppliedAt:   m.AppliedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

func fromEntity(a *application.Application) *applicationModel {
	return &applicationModel{
		ID:          a.ID.String(),
		JobID:       a.JobID.String(),
		ApplicantID: a.ApplicantID.String(),
		Note:        a.Note,
		ResumeKey:   sql.NullString{String: a.ResumeKey.String(), Valid: !a.ResumeKey.IsEmpty()},
		Status:      string(a.Status),
		AppliedAt:   a.AppliedAt,
		UpdatedAt:   a.UpdatedAt,
	}
}

func toEntities(models []applicationModel) []application.Application {
	out := make([]application.Application, 0, len(models))
	for i := range models {
		out = append(out, models[i].toEntity())
	}
	return out
}

const selectColumns = `id, job_id, applicant_id, note, resume_key, status, applied_at, updated_at`

// ============================================================================
// Repository Implementation
// ============================================================================

// Create stores a new application
func (r *PostgresApplicationRepository) Create(ctx context.Context, a *application.Application) error {
	query := `
		INSERT INTO applications (
			id, job_id, applicant_id, note, resume_key, status, applied_at, updated_at
		) VALUES (
			:id, :job_id, :applicant_id, :note, :resume_key, :status, :applied_at, :updated_at
		)
	`

	_, err := r.db.NamedExecContext(ctx, query, fromEntity(a))
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" { // unique_violation
			return application.ErrApplicationAlreadyExists().
				WithDetail("job_id", a.JobID.String())
		}
		return fmt.Errorf("failed to create application: %w", err)
	}

	return nil
}

// GetByID retrieves an application by ID
func (r *PostgresApplicationRepository) GetByID(ctx context.Context, id kernel.ApplicationID) (*application.Application, error) {
	query := `SELECT ` + selectColumns + ` FROM applications WHERE id = $1`

	var model applicationModel
	if err := r.db.GetContext(ctx, &model, query, id.String()); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, application.ErrApplicationNotFound()
		}
		return nil, fmt.Errorf("failed to get application: %w", err)
	}

	a := model.toEntity()
	return &a, nil
}

// ListByJobID retrieves every application for a job, oldest first
func (r *PostgresApplicationRepository) ListByJobID(ctx context.Context, jobID kernel.JobID) ([]application.Application, error) {
	query := `SELECT ` + selectColumns + ` FROM applications WHERE job_id = $1 ORDER BY applied_at ASC, id ASC`

	var models []applicationModel
	if err := r.db.SelectContext(ctx, &models, query, jobID.String()); err != nil {
		return nil, fmt.Errorf("failed to list applications by job: %w", err)
	}
	return toEntities(models), nil
}

// ListByApplicant retrieves the applications of a user, newest first
func (r *PostgresApplicationRepository) ListByApplicant(ctx context.Context, applicantID kernel.UserID) ([]application.Application, error) {
	query := `SELECT ` + selectColumns + ` FROM applications WHERE applicant_id = $1 ORDER BY applied_at DESC, id ASC`

	var models []applicationModel
	if err := r.db.SelectContext(ctx, &models, query, applicantID.String()); err != nil {
		return nil, fmt.Errorf("failed to list applications by applicant: %w", err)
	}
	return toEntities(models), nil
}

// ListJobIDsByApplicant retrieves the ids of jobs a user applied to
func (r *PostgresApplicationRepository) ListJobIDsByApplicant(ctx context.Context, applicantID kernel.UserID) ([]kernel.JobID, error) {
	var raw []string
	query := `SELECT job_id FROM applications WHERE applicant_id = $1`
	if err := r.db.SelectContext(ctx, &raw, query, applicantID.String()); err != nil {
		return nil, fmt.Errorf("failed to list applied job ids: %w", err)
	}

	ids := make([]kernel.JobID, 0, len(raw))
	for _, id := range raw {
		ids = append(ids, kernel.JobID(id))
	}
	return ids, nil
}

// ExistsByJobAndApplicant checks if the user already applied to the job
func (r *PostgresApplicationRepository) ExistsByJobAndApplicant(ctx context.Context, jobID kernel.JobID, applicantID kernel.UserID) (bool, error) {
	var exists bool
	query := `SELECT EXISTS(SELECT 1 FROM applications WHERE job_id = $1 AND applicant_id = $2)`
	if err := r.db.GetContext(ctx, &exists, query, jobID.String(), applicantID.String()); err != nil {
		return false, fmt.Errorf("failed to check application existence: %w", err)
	}
	return exists, nil
}

// UpdateStatus sets status and updated_at together in one statement
func (r *PostgresApplicationRepository) UpdateStatus(ctx context.Context, id kernel.ApplicationID, status application.ApplicationStatus, updatedAt time.Time) error {
	query := `UPDATE applications SET status = $2, updated_at = $3 WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, id.String(), string(status), updatedAt)
	if err != nil {
		return fmt.Errorf("failed to update application status: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rows == 0 {
		return application.ErrApplicationNotFound()
	}

	return nil
}
