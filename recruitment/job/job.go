package job

import (
	"fmt"
	"strings"
	"time"

	"github.com/Abraxas-365/hirematch/internal/geo"
	"github.com/Abraxas-365/hirematch/pkg/kernel"
)

// JobType is the employment type of a posting
type JobType string

const (
	JobTypeFullTime   JobType = "full-time"
	JobTypePartTime   JobType = "part-time"
	JobTypeContract   JobType = "contract"
	JobTypeRemote     JobType = "remote"
	JobTypeInternship JobType = "internship"
)

// ExperienceLevel is the seniority a posting targets
type ExperienceLevel string

const (
	ExperienceEntry     ExperienceLevel = "entry"
	ExperienceMid       ExperienceLevel = "mid"
	ExperienceSenior    ExperienceLevel = "senior"
	ExperienceExecutive ExperienceLevel = "executive"
)

// ParseJobType validates a job type filter value
func ParseJobType(s string) (JobType, bool) {
	switch t := JobType(strings.ToLower(strings.TrimSpace(s))); t {
	case JobTypeFullTime, JobTypePartTime, JobTypeContract, JobTypeRemote, JobTypeInternship:
		return t, true
	}
	return "", false
}

// ParseExperienceLevel validates an experience level filter value
func ParseExperienceLevel(s string) (ExperienceLevel, bool) {
	switch l := ExperienceLevel(strings.ToLower(strings.TrimSpace(s))); l {
	case ExperienceEntry, ExperienceMid, ExperienceSenior, ExperienceExecutive:
		return l, true
	}
	return "", false
}

type Job struct {
	ID              kernel.JobID           `db:"id" json:"id"`
	Title           kernel.JobTitle        `db:"title" json:"title"`
	Description     kernel.JobDescription  `db:"description" json:"description"`
	Requirements    kernel.JobRequirements `db:"requirements" json:"requirements"`
	Location        string                 `db:"location" json:"location"`
	Latitude        *float64               `db:"latitude" json:"latitude,omitempty"`
	Longitude       *float64               `db:"longitude" json:"longitude,omitempty"`
	JobType         JobType                `db:"job_type" json:"job_type"`
	ExperienceLevel ExperienceLevel        `db:"experience_level" json:"experience_level"`
	SalaryMin       *int                   `db:"salary_min" json:"salary_min,omitempty"`
	SalaryMax       *int                   `db:"salary_max" json:"salary_max,omitempty"`
	IsActive        bool                   `db:"is_active" json:"is_active"`
	CompanyID       kernel.CompanyID       `db:"company_id" json:"company_id"`
	CompanyName     kernel.CompanyName     `db:"company_name" json:"company_name"`
	PostedBy        kernel.UserID          `db:"posted_by" json:"posted_by"`
	CreatedAt       time.Time              `db:"created_at" json:"created_at"`
	UpdatedAt       time.Time              `db:"updated_at" json:"updated_at"`
}

// ============================================================================
// Domain Methods
// ============================================================================

// HasCoordinates checks if both latitude and longitude are present
func (j *Job) HasCoordinates() bool {
	return j.Latitude != nil && j.Longitude != nil
}

// Point returns the posting coordinates when present and valid
func (j *Job) Point() (geo.Point, bool) {
	if !j.HasCoordinates() {
		return geo.Point{}, false
	}
	p := geo.Point{Lat: *j.Latitude, Lon: *j.Longitude}
	return p, p.Valid()
}

// IsOwnedBy checks if userID posted the job
func (j *Job) IsOwnedBy(userID kernel.UserID) bool {
	return !j.PostedBy.IsEmpty() && j.PostedBy == userID
}

// MentionsAny checks if the description or requirements contain one of the
// given terms, case-insensitively. Blank terms never match.
func (j *Job) MentionsAny(terms []string) bool {
	desc := strings.ToLower(string(j.Description))
	reqs := strings.ToLower(string(j.Requirements))
	for _, t := range terms {
		t = strings.ToLower(strings.TrimSpace(t))
		if t == "" {
			continue
		}
		if strings.Contains(desc, t) || strings.Contains(reqs, t) {
			return true
		}
	}
	return false
}

// SalaryRange renders the salary band for display
func (j *Job) SalaryRange() string {
	hasMin := j.SalaryMin != nil && *j.SalaryMin != 0
	hasMax := j.SalaryMax != nil && *j.SalaryMax != 0
	switch {
	case hasMin && hasMax:
		return fmt.Sprintf("$%dk - $%dk", *j.SalaryMin/1000, *j.SalaryMax/1000)
	case hasMin:
		return fmt.Sprintf("$%dk+", *j.SalaryMin/1000)
	}
	return "Salary not specified"
}

// DetailURL is the link used by map markers
func (j *Job) DetailURL() string {
	return "/jobs/" + j.ID.String()
}

// NewestFirst orders postings by creation time descending with the id as tie-break
func NewestFirst(a, b Job) int {
	if !a.CreatedAt.Equal(b.CreatedAt) {
		if a.CreatedAt.After(b.CreatedAt) {
			return -1
		}
		return 1
	}
	return strings.Compare(a.ID.String(), b.ID.String())
}
