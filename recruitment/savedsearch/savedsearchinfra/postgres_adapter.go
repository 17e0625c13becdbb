package savedsearchinfra

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Abraxas-365/hirematch/pkg/kernel"
	"github.com/Abraxas-365/hirematch/recruitment/savedsearch"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

// PostgresSavedSearchRepository implements savedsearch.Repository using PostgreSQL
type PostgresSavedSearchRepository struct {
	db *sqlx.DB
}

// NewPostgresSavedSearchRepository creates a new PostgreSQL saved search repository
func NewPostgresSavedSearchRepository(db *sqlx.DB) *PostgresSavedSearchRepository {
	return &PostgresSavedSearchRepository{db: db}
}

// ============================================================================
// Database Model
// ============================================================================

type savedSearchModel struct {
	ID                string         `db:"id"`
	RecruiterID       string         `db:"recruiter_id"`
	RecruiterUsername sql.NullString `db:"recruiter_username"`
	Name              string         `db:"name"`
	Skills            string         `db:"skills"`
	Location          string         `db:"location"`
	ExperienceYears   string         `db:"experience_years"`
	EducationLevel    string         `db:"education_level"`
	CurrentCompany    string         `db:"current_company"`
	IsActive          bool           `db:"is_active"`
	LastNotified      sql.NullTime   `db:"last_notified"`
	CreatedAt         time.Time      `db:"created_at"`
	UpdatedAt         time.Time      `db:"updated_at"`
}

func (m *savedSearchModel) toEntity() savedsearch.SavedSearch {
	s := savedsearch.SavedSearch{
		ID:                kernel.SavedSearchID(m.ID),
		RecruiterID:       kernel.UserID(m.RecruiterID),
		RecruiterUsername: m.RecruiterUsername.String,
		Name:              m.Name,
		Skills:            m.Skills,
		Location:          m.Location,
		ExperienceYears:   m.ExperienceYears,
		EducationLevel:    m.EducationLevel,
		CurrentCompany:    m.CurrentCompany,
		IsActive:          m.IsActive,
		CreatedAt:         m.CreatedAt,
		UpdatedAt:         m.UpdatedAt,
	}
	if m.LastNotified.Valid {
		t := m.LastNotified.Time
		s.LastNotified = &t
	}
	return s
}

func fromEntity(s *savedsearch.SavedSearch) *savedSearchModel {
	m := &savedSearchModel{
		ID:              s.ID.String(),
		RecruiterID:     s.RecruiterID.String(),
		Name:            s.Name,
		Skills:          s.Skills,
		Location:        s.Location,
		ExperienceYears: s.ExperienceYears,
		EducationLevel:  s.EducationLevel,
		CurrentCompany:  s.CurrentCompany,
		IsActive:        s.IsActive,
		CreatedAt:       s.CreatedAt,
		UpdatedAt:       s.UpdatedAt,
	}
	if s.LastNotified != nil {
		m.LastNotified = sql.NullTime{Time: *s.LastNotified, Valid: true}
	}
	return m
}

func toEntities(models []savedSearchModel) []savedsearch.SavedSearch {
	out := make([]savedsearch.SavedSearch, 0, len(models))
	for i := range models {
		out = append(out, models[i].toEntity())
	}
	return out
}

const selectColumns = `
	s.id, s.recruiter_id, u.username AS recruiter_username, s.name, s.skills,
	s.location, s.experience_years, s.education_level, s.current_company,
	s.is_active, s.last_notified, s.created_at, s.updated_at
`

const fromSearches = `
	FROM saved_searches s
	LEFT JOIN users u ON u.id = s.recruiter_id
`

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "23505"
}

// ============================================================================
// Repository Implementation
// ============================================================================

// Create stores a new saved search
func (r *PostgresSavedSearchRepository) Create(ctx context.Context, s *savedsearch.SavedSearch) error {
	query := `
		INSERT INTO saved_searches (
			id, recruiter_id, name, skills, location, experience_years,
			education_level, current_company, is_active, last_notified,
			created_at, updated_at
		) VALUES (
			:id, :recruiter_id, :name, :skills, :location, :experience_years,
			:education_level, :current_company, :is_active, :last_notified,
			:created_at, :updated_at
		)
	`

	if _, err := r.db.NamedExecContext(ctx, query, fromEntity(s)); err != nil {
		if isUniqueViolation(err) {
			return savedsearch.ErrNameTaken().WithDetail("name", s.Name)
		}
		return fmt.Errorf("failed to create saved search: %w", err)
	}
	return nil
}

// GetByID retrieves a saved search by ID
func (r *PostgresSavedSearchRepository) GetByID(ctx context.Context, id kernel.SavedSearchID) (*savedsearch.SavedSearch, error) {
	query := `SELECT ` + selectColumns + fromSearches + ` WHERE s.id = $1`

	var model savedSearchModel
	if err := r.db.GetContext(ctx, &model, query, id.String()); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, savedsearch.ErrSavedSearchNotFound()
		}
		return nil, fmt.Errorf("failed to get saved search: %w", err)
	}

	s := model.toEntity()
	return &s, nil
}

// ListByRecruiter retrieves the searches of a recruiter, newest first
func (r *PostgresSavedSearchRepository) ListByRecruiter(ctx context.Context, recruiterID kernel.UserID) ([]savedsearch.SavedSearch, error) {
	query := `SELECT ` + selectColumns + fromSearches + `
		WHERE s.recruiter_id = $1
		ORDER BY s.created_at DESC, s.id ASC`

	var models []savedSearchModel
	if err := r.db.SelectContext(ctx, &models, query, recruiterID.String()); err != nil {
		return nil, fmt.Errorf("failed to list saved searches: %w", err)
	}
	return toEntities(models), nil
}

// ListActive retrieves every active search
func (r *PostgresSavedSearchRepository) ListActive(ctx context.Context) ([]savedsearch.SavedSearch, error) {
	query := `SELECT ` + selectColumns + fromSearches + `
		WHERE s.is_active = TRUE
		ORDER BY s.created_at ASC, s.id ASC`

	var models []savedSearchModel
	if err := r.db.SelectContext(ctx, &models, query); err != nil {
		return nil, fmt.Errorf("failed to list active saved searches: %w", err)
	}
	return toEntities(models), nil
}

// Update stores the editable fields and the active flag
func (r *PostgresSavedSearchRepository) Update(ctx context.Context, s *savedsearch.SavedSearch) error {
	query := `
		UPDATE saved_searches SET
			name = :name,
			skills = :skills,
			location = :location,
			experience_years = :experience_years,
			education_level = :education_level,
			current_company = :current_company,
			is_active = :is_active,
			updated_at = :updated_at
		WHERE id = :id
	`

	result, err := r.db.NamedExecContext(ctx, query, fromEntity(s))
	if err != nil {
		if isUniqueViolation(err) {
			return savedsearch.ErrNameTaken().WithDetail("name", s.Name)
		}
		return fmt.Errorf("failed to update saved search: %w", err)
	}
	return requireRow(result)
}

// Delete removes a search
func (r *PostgresSavedSearchRepository) Delete(ctx context.Context, id kernel.SavedSearchID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM saved_searches WHERE id = $1`, id.String())
	if err != nil {
		return fmt.Errorf("failed to delete saved search: %w", err)
	}
	return requireRow(result)
}

// ExistsByRecruiterAndName checks name uniqueness, ignoring excludeID
func (r *PostgresSavedSearchRepository) ExistsByRecruiterAndName(ctx context.Context, recruiterID kernel.UserID, name string, excludeID kernel.SavedSearchID) (bool, error) {
	var exists bool
	query := `SELECT EXISTS(SELECT 1 FROM saved_searches WHERE recruiter_id = $1 AND name = $2 AND id <> $3)`
	if err := r.db.GetContext(ctx, &exists, query, recruiterID.String(), name, excludeID.String()); err != nil {
		return false, fmt.Errorf("failed to check saved search name: %w", err)
	}
	return exists, nil
}

// CommitNotified sets last_notified and updated_at in one statement
func (r *PostgresSavedSearchRepository) CommitNotified(ctx context.Context, id kernel.SavedSearchID, at time.Time) error {
	query := `UPDATE saved_searches SET last_notified = $2, updated_at = $2 WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, id.String(), at)
	if err != nil {
		return fmt.Errorf("failed to commit notification: %w", err)
	}
	return requireRow(result)
}

func requireRow(result sql.Result) error {
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return savedsearch.ErrSavedSearchNotFound()
	}
	return nil
}
