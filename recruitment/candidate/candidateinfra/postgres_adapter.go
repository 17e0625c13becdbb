package candidateinfra

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Abraxas-365/hirematch/pkg/kernel"
	"github.com/Abraxas-365/hirematch/recruitment/candidate"
	"github.com/jmoiron/sqlx"
)

// PostgresCandidateRepository implements candidate.Repository using PostgreSQL
type PostgresCandidateRepository struct {
	db *sqlx.DB
}

func NewPostgresCandidateRepository(db *sqlx.DB) *PostgresCandidateRepository {
	return &PostgresCandidateRepository{db: db}
}

// ============================================================================
// Database Models
// ============================================================================

type profileModel struct {
	ID       string    `db:"id"`
	UserID   string    `db:"user_id"`
	Name     string    `db:"name"`
	Bio      string    `db:"bio"`
	Location string    `db:"location"`
	Role     string    `db:"role"`
	JoinedAt time.Time `db:"joined_at"`
}

type skillModel struct {
	ProfileID string `db:"profile_id"`
	Name      string `db:"name"`
}

type educationModel struct {
	ProfileID    string        `db:"profile_id"`
	School       string        `db:"school"`
	Degree       string        `db:"degree"`
	FieldOfStudy string        `db:"field_of_study"`
	StartYear    int           `db:"start_year"`
	EndYear      sql.NullInt32 `db:"end_year"`
}

type experienceModel struct {
	ProfileID   string        `db:"profile_id"`
	Company     string        `db:"company"`
	Title       string        `db:"title"`
	IsCurrent   bool          `db:"is_current"`
	Description string        `db:"description"`
	StartYear   int           `db:"start_year"`
	EndYear     sql.NullInt32 `db:"end_year"`
}

func (m *profileModel) toEntity() candidate.Candidate {
	role, _ := kernel.ParseRole(m.Role)
	return candidate.Candidate{
		ID:       kernel.CandidateID(m.ID),
		UserID:   kernel.UserID(m.UserID),
		Name:     m.Name,
		Bio:      m.Bio,
		Location: m.Location,
		Role:     role,
		JoinedAt: m.JoinedAt,
	}
}

func nullYear(v sql.NullInt32) *int {
	if !v.Valid {
		return nil
	}
	y := int(v.Int32)
	return &y
}

const profileColumns = `
	p.id, p.user_id, p.name, p.bio, p.location, p.role, u.date_joined AS joined_at
`

// ============================================================================
// Repository Implementation
// ============================================================================

// GetByID retrieves a candidate by profile ID
func (r *PostgresCandidateRepository) GetByID(ctx context.Context, id kernel.CandidateID) (*candidate.Candidate, error) {
	query := `SELECT ` + profileColumns + `
		FROM profiles p
		JOIN users u ON u.id = p.user_id
		WHERE p.id = $1`

	return r.getOne(ctx, query, id.String())
}

// GetByUserID retrieves the candidate owned by a user
func (r *PostgresCandidateRepository) GetByUserID(ctx context.Context, userID kernel.UserID) (*candidate.Candidate, error) {
	query := `SELECT ` + profileColumns + `
		FROM profiles p
		JOIN users u ON u.id = p.user_id
		WHERE p.user_id = $1`

	return r.getOne(ctx, query, userID.String())
}

func (r *PostgresCandidateRepository) getOne(ctx context.Context, query string, arg string) (*candidate.Candidate, error) {
	var model profileModel
	if err := r.db.GetContext(ctx, &model, query, arg); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, candidate.ErrCandidateNotFound()
		}
		return nil, fmt.Errorf("failed to get candidate: %w", err)
	}

	cs := []candidate.Candidate{model.toEntity()}
	if err := r.stitch(ctx, cs); err != nil {
		return nil, err
	}
	return &cs[0], nil
}

// ListJobSeekers retrieves every job seeker profile with skills, education and experience
func (r *PostgresCandidateRepository) ListJobSeekers(ctx context.Context) ([]candidate.Candidate, error) {
	query := `SELECT ` + profileColumns + `
		FROM profiles p
		JOIN users u ON u.id = p.user_id
		WHERE p.role = $1
		ORDER BY u.date_joined DESC, p.id ASC`

	var models []profileModel
	if err := r.db.SelectContext(ctx, &models, query, kernel.RoleJobSeeker.String()); err != nil {
		return nil, fmt.Errorf("failed to list job seekers: %w", err)
	}

	cs := make([]candidate.Candidate, 0, len(models))
	for i := range models {
		cs = append(cs, models[i].toEntity())
	}

	if err := r.stitch(ctx, cs); err != nil {
		return nil, err
	}
	return cs, nil
}

// stitch loads the child collections of every profile in three queries
func (r *PostgresCandidateRepository) stitch(ctx context.Context, cs []candidate.Candidate) error {
	if len(cs) == 0 {
		return nil
	}

	ids := make([]string, 0, len(cs))
	index := make(map[string]int, len(cs))
	for i, c := range cs {
		ids = append(ids, c.ID.String())
		index[c.ID.String()] = i
	}

	var skills []skillModel
	if err := r.selectIn(ctx, &skills, `
		SELECT profile_id, name FROM skills
		WHERE profile_id IN (?)
		ORDER BY profile_id, position, id`, ids); err != nil {
		return fmt.Errorf("failed to load skills: %w", err)
	}
	for _, s := range skills {
		i := index[s.ProfileID]
		cs[i].Skills = append(cs[i].Skills, candidate.Skill{Name: kernel.SkillName(s.Name)})
	}

	var educations []educationModel
	if err := r.selectIn(ctx, &educations, `
		SELECT profile_id, school, degree, field_of_study, start_year, end_year FROM educations
		WHERE profile_id IN (?)
		ORDER BY profile_id, start_year DESC`, ids); err != nil {
		return fmt.Errorf("failed to load educations: %w", err)
	}
	for _, e := range educations {
		i := index[e.ProfileID]
		cs[i].Educations = append(cs[i].Educations, candidate.Education{
			School:       e.School,
			Degree:       e.Degree,
			FieldOfStudy: e.FieldOfStudy,
			StartYear:    e.StartYear,
			EndYear:      nullYear(e.EndYear),
		})
	}

	var experiences []experienceModel
	if err := r.selectIn(ctx, &experiences, `
		SELECT profile_id, company, title, is_current, description, start_year, end_year FROM experiences
		WHERE profile_id IN (?)
		ORDER BY profile_id, start_year DESC`, ids); err != nil {
		return fmt.Errorf("failed to load experiences: %w", err)
	}
	for _, e := range experiences {
		i := index[e.ProfileID]
		cs[i].Experiences = append(cs[i].Experiences, candidate.Experience{
			Company:     e.Company,
			Title:       e.Title,
			IsCurrent:   e.IsCurrent,
			Description: e.Description,
			StartYear:   e.StartYear,
			EndYear:     nullYear(e.EndYear),
		})
	}

	return nil
}

func (r *PostgresCandidateRepository) selectIn(ctx context.Context, dest any, query string, ids []string) error {
	q, args, err := sqlx.In(query, ids)
	if err != nil {
		return err
	}
	return r.db.SelectContext(ctx, dest, r.db.Rebind(q), args...)
}
