package savedsearch

import (
	"strings"
	"time"

	"github.com/Abraxas-365/hirematch/pkg/kernel"
)

// SavedSearch is a recruiter's stored candidate criteria. Empty fields
// impose no constraint.
type SavedSearch struct {
	ID                kernel.SavedSearchID `db:"id" json:"id"`
	RecruiterID       kernel.UserID        `db:"recruiter_id" json:"recruiter_id"`
	RecruiterUsername string               `db:"recruiter_username" json:"recruiter_username"`
	Name              string               `db:"name" json:"name"`
	Skills            string               `db:"skills" json:"skills"`
	Location          string               `db:"location" json:"location"`
	ExperienceYears   string               `db:"experience_years" json:"experience_years"`
	EducationLevel    string               `db:"education_level" json:"education_level"`
	CurrentCompany    string               `db:"current_company" json:"current_company"`
	IsActive          bool                 `db:"is_active" json:"is_active"`
	LastNotified      *time.Time           `db:"last_notified" json:"last_notified,omitempty"`
	CreatedAt         time.Time            `db:"created_at" json:"created_at"`
	UpdatedAt         time.Time            `db:"updated_at" json:"updated_at"`
}

// ============================================================================
// Domain Methods
// ============================================================================

// IsOwnedBy checks if the search belongs to the user
func (s *SavedSearch) IsOwnedBy(userID kernel.UserID) bool {
	return !s.RecruiterID.IsEmpty() && s.RecruiterID == userID
}

// Criteria builds the per-field criteria of the search
func (s *SavedSearch) Criteria() Criteria {
	return BuildCriteria(s.Skills, s.Location, s.ExperienceYears, s.EducationLevel, s.CurrentCompany)
}

// Toggle flips the active flag
func (s *SavedSearch) Toggle(now time.Time) {
	s.IsActive = !s.IsActive
	s.UpdatedAt = now
}

// MarkNotified records a delivered notification in memory. Storage goes
// through Repository.CommitNotified.
func (s *SavedSearch) MarkNotified(now time.Time) {
	t := now
	s.LastNotified = &t
	s.UpdatedAt = now
}

// NeverNotified checks if no notification was ever committed
func (s *SavedSearch) NeverNotified() bool {
	return s.LastNotified == nil
}

// DisplayRecruiter names the owner for reports
func (s *SavedSearch) DisplayRecruiter() string {
	if name := strings.TrimSpace(s.RecruiterUsername); name != "" {
		return name
	}
	return s.RecruiterID.String()
}
