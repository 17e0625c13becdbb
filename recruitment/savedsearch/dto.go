package savedsearch

import (
	"time"

	"github.com/Abraxas-365/hirematch/pkg/kernel"
	"github.com/Abraxas-365/hirematch/recruitment/candidate"
)

// CreateSavedSearchRequest - DTO for saving candidate criteria
type CreateSavedSearchRequest struct {
	Name            string `json:"name" validate:"required,max=100"`
	Skills          string `json:"skills" validate:"max=500"`
	Location        string `json:"location" validate:"max=200"`
	ExperienceYears string `json:"experience_years" validate:"max=50"`
	EducationLevel  string `json:"education_level" validate:"max=100"`
	CurrentCompany  string `json:"current_company" validate:"max=200"`
}

// UpdateSavedSearchRequest - DTO for editing a search; nil fields are kept
type UpdateSavedSearchRequest struct {
	Name            *string `json:"name,omitempty" validate:"omitempty,min=1,max=100"`
	Skills          *string `json:"skills,omitempty" validate:"omitempty,max=500"`
	Location        *string `json:"location,omitempty" validate:"omitempty,max=200"`
	ExperienceYears *string `json:"experience_years,omitempty" validate:"omitempty,max=50"`
	EducationLevel  *string `json:"education_level,omitempty" validate:"omitempty,max=100"`
	CurrentCompany  *string `json:"current_company,omitempty" validate:"omitempty,max=200"`
	IsActive        *bool   `json:"is_active,omitempty"`
}

// Apply copies the populated fields onto the search
func (r UpdateSavedSearchRequest) Apply(s *SavedSearch) {
	if r.Name != nil {
		s.Name = *r.Name
	}
	if r.Skills != nil {
		s.Skills = *r.Skills
	}
	if r.Location != nil {
		s.Location = *r.Location
	}
	if r.ExperienceYears != nil {
		s.ExperienceYears = *r.ExperienceYears
	}
	if r.EducationLevel != nil {
		s.EducationLevel = *r.EducationLevel
	}
	if r.CurrentCompany != nil {
		s.CurrentCompany = *r.CurrentCompany
	}
	if r.IsActive != nil {
		s.IsActive = *r.IsActive
	}
}

// SavedSearchResponse - DTO for returning a saved search
type SavedSearchResponse struct {
	ID              kernel.SavedSearchID `json:"id"`
	Name            string               `json:"name"`
	Skills          string               `json:"skills"`
	Location        string               `json:"location"`
	ExperienceYears string               `json:"experience_years"`
	EducationLevel  string               `json:"education_level"`
	CurrentCompany  string               `json:"current_company"`
	Criteria        []Field              `json:"criteria"`
	IsActive        bool                 `json:"is_active"`
	LastNotified    *time.Time           `json:"last_notified,omitempty"`
	CreatedAt       time.Time            `json:"created_at"`
	UpdatedAt       time.Time            `json:"updated_at"`
}

// ToResponse converts the entity to its DTO
func (s *SavedSearch) ToResponse() SavedSearchResponse {
	return SavedSearchResponse{
		ID:              s.ID,
		Name:            s.Name,
		Skills:          s.Skills,
		Location:        s.Location,
		ExperienceYears: s.ExperienceYears,
		EducationLevel:  s.EducationLevel,
		CurrentCompany:  s.CurrentCompany,
		Criteria:        s.Criteria().Fields(),
		IsActive:        s.IsActive,
		LastNotified:    s.LastNotified,
		CreatedAt:       s.CreatedAt,
		UpdatedAt:       s.UpdatedAt,
	}
}

// MatchesResponse - DTO for the candidates of a search
type MatchesResponse struct {
	SearchID     kernel.SavedSearchID         `json:"search_id"`
	Candidates   []candidate.CandidateSummary `json:"candidates"`
	Count        int                          `json:"count"`
	LastNotified *time.Time                   `json:"last_notified,omitempty"`
}

// CheckResult is the outcome of one search in a batch check
type CheckResult struct {
	SearchID   kernel.SavedSearchID `json:"search_id"`
	SearchName string               `json:"search_name"`
	Recruiter  string               `json:"recruiter"`
	NewMatches int                  `json:"new_matches"`
	Delivered  bool                 `json:"delivered"`
	Error      string               `json:"error,omitempty"`
}

// CheckReport summarizes a batch check
type CheckReport struct {
	DryRun   bool          `json:"dry_run"`
	Checked  int           `json:"checked"`
	Results  []CheckResult `json:"results"`
	Total    int           `json:"total"`
	Failures int           `json:"failures"`
}
