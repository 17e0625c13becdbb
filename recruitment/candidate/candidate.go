package candidate

import (
	"strings"
	"time"

	"github.com/Abraxas-365/hirematch/pkg/kernel"
)

// Candidate is the read-only projection of a user profile used for matching.
// It is assembled from the profile row plus its skills, education and experience.
type Candidate struct {
	ID          kernel.CandidateID `db:"id" json:"id"`
	UserID      kernel.UserID      `db:"user_id" json:"user_id"`
	Name        string             `db:"name" json:"name"`
	Bio         string             `db:"bio" json:"bio"`
	Location    string             `db:"location" json:"location"`
	Role        kernel.Role        `db:"role" json:"role"`
	Skills      []Skill            `db:"-" json:"skills"`
	Educations  []Education        `db:"-" json:"educations"`
	Experiences []Experience       `db:"-" json:"experiences"`
	JoinedAt    time.Time          `db:"joined_at" json:"joined_at"`
}

type Skill struct {
	Name kernel.SkillName `db:"name" json:"name"`
}

type Education struct {
	School       string `db:"school" json:"school"`
	Degree       string `db:"degree" json:"degree"`
	FieldOfStudy string `db:"field_of_study" json:"field_of_study"`
	StartYear    int    `db:"start_year" json:"start_year"`
	EndYear      *int   `db:"end_year" json:"end_year,omitempty"`
}

type Experience struct {
	Company     string `db:"company" json:"company"`
	Title       string `db:"title" json:"title"`
	IsCurrent   bool   `db:"is_current" json:"is_current"`
	Description string `db:"description" json:"description"`
	StartYear   int    `db:"start_year" json:"start_year"`
	EndYear     *int   `db:"end_year" json:"end_year,omitempty"`
}

// ============================================================================
// Domain Methods
// ============================================================================

// IsJobSeeker checks if the profile belongs to a job seeker
func (c *Candidate) IsJobSeeker() bool {
	return c.Role == kernel.RoleJobSeeker
}

// SkillNames returns the trimmed, non-blank skill names in profile order
func (c *Candidate) SkillNames() []string {
	names := make([]string, 0, len(c.Skills))
	for _, s := range c.Skills {
		if n := strings.TrimSpace(string(s.Name)); n != "" {
			names = append(names, n)
		}
	}
	return names
}

// HasExperience checks if at least one experience record exists
func (c *Candidate) HasExperience() bool {
	return len(c.Experiences) > 0
}

// CurrentExperiences returns the experience records marked current
func (c *Candidate) CurrentExperiences() []Experience {
	var out []Experience
	for _, e := range c.Experiences {
		if e.IsCurrent {
			out = append(out, e)
		}
	}
	return out
}

// JoinedBefore orders candidates newest first with the id as tie-break
func JoinedBefore(a, b Candidate) int {
	if !a.JoinedAt.Equal(b.JoinedAt) {
		if a.JoinedAt.After(b.JoinedAt) {
			return -1
		}
		return 1
	}
	return strings.Compare(a.ID.String(), b.ID.String())
}
