package job

import (
	"time"

	"github.com/Abraxas-365/hirematch/pkg/kernel"
)

// SearchJobsRequest - query parameters of the job search
type SearchJobsRequest struct {
	Query           string                   `query:"search"`
	Location        string                   `query:"location"`
	JobType         string                   `query:"job_type"`
	ExperienceLevel string                   `query:"experience_level"`
	SalaryRange     string                   `query:"salary_range"`
	Latitude        string                   `query:"lat"`
	Longitude       string                   `query:"lng"`
	Radius          string                   `query:"radius"`
	Pagination      kernel.PaginationOptions `query:"-"`
}

// Filter converts the request into a SearchFilter. Unknown enum values are ignored.
func (r SearchJobsRequest) Filter() SearchFilter {
	f := SearchFilter{
		Query:    r.Query,
		Location: r.Location,
		Salary:   ParseSalaryBand(r.SalaryRange),
	}
	if t, ok := ParseJobType(r.JobType); ok {
		f.JobType = t
	}
	if l, ok := ParseExperienceLevel(r.ExperienceLevel); ok {
		f.ExperienceLevel = l
	}
	return f
}

// Proximity parses the radius filter of the request
func (r SearchJobsRequest) Proximity() ProximityQuery {
	return ParseProximityQuery(r.Latitude, r.Longitude, r.Radius)
}

// Response type alias for paginated jobs
type PaginatedJobsResponse = kernel.Paginated[JobResponse]

// JobResponse - DTO for returning job data
type JobResponse struct {
	ID              kernel.JobID           `json:"id"`
	Title           kernel.JobTitle        `json:"title"`
	Company         kernel.CompanyName     `json:"company"`
	Description     kernel.JobDescription  `json:"description"`
	Requirements    kernel.JobRequirements `json:"requirements"`
	Location        string                 `json:"location"`
	Latitude        *float64               `json:"latitude,omitempty"`
	Longitude       *float64               `json:"longitude,omitempty"`
	JobType         JobType                `json:"job_type"`
	ExperienceLevel ExperienceLevel        `json:"experience_level"`
	SalaryRange     string                 `json:"salary_range"`
	DistanceMiles   *float64               `json:"distance_miles,omitempty"`
	PostedBy        kernel.UserID          `json:"posted_by"`
	CreatedAt       time.Time              `json:"created_at"`
}

// ToResponse converts the entity to its DTO
func (j *Job) ToResponse() JobResponse {
	return JobResponse{
		ID:              j.ID,
		Title:           j.Title,
		Company:         j.CompanyName,
		Description:     j.Description,
		Requirements:    j.Requirements,
		Location:        j.Location,
		Latitude:        j.Latitude,
		Longitude:       j.Longitude,
		JobType:         j.JobType,
		ExperienceLevel: j.ExperienceLevel,
		SalaryRange:     j.SalaryRange(),
		PostedBy:        j.PostedBy,
		CreatedAt:       j.CreatedAt,
	}
}

// MapResponse - DTO for the job map
type MapResponse struct {
	Markers  []MapMarker `json:"markers"`
	Filtered bool        `json:"filtered"`
	Count    int         `json:"count"`
}

// RecommendationsResponse - DTO for personal recommendations
type RecommendationsResponse struct {
	Jobs  []JobResponse `json:"jobs"`
	Count int           `json:"count"`
}
