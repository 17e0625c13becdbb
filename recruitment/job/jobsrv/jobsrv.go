package jobsrv

import (
	"context"
	"strconv"

	"github.com/Abraxas-365/hirematch/internal/metrics"
	"github.com/Abraxas-365/hirematch/pkg/errx"
	"github.com/Abraxas-365/hirematch/pkg/kernel"
	"github.com/Abraxas-365/hirematch/pkg/logx"
	"github.com/Abraxas-365/hirematch/recruitment/candidate"
	"github.com/Abraxas-365/hirematch/recruitment/job"
)

// AppliedJobsReader lists the jobs a user already applied to
type AppliedJobsReader interface {
	ListJobIDsByApplicant(ctx context.Context, applicantID kernel.UserID) ([]kernel.JobID, error)
}

// JobService provides read operations over job postings
type JobService struct {
	jobRepo       job.Repository
	candidateRepo candidate.Repository
	applied       AppliedJobsReader
	metrics       *metrics.Collector
}

// NewJobService creates a new instance of the job service
func NewJobService(
	jobRepo job.Repository,
	candidateRepo candidate.Repository,
	applied AppliedJobsReader,
	collector *metrics.Collector,
) *JobService {
	return &JobService{
		jobRepo:       jobRepo,
		candidateRepo: candidateRepo,
		applied:       applied,
		metrics:       collector,
	}
}

// GetJobByID retrieves an active job by ID
func (s *JobService) GetJobByID(ctx context.Context, jobID kernel.JobID) (*job.JobResponse, error) {
	jobEntity, err := s.jobRepo.GetByID(ctx, jobID)
	if err != nil {
		if errx.IsType(err, errx.TypeNotFound) {
			return nil, job.ErrJobNotFound().WithDetail("job_id", jobID.String())
		}
		return nil, errx.Wrap(err, "failed to get job", errx.TypeInternal)
	}
	if !jobEntity.IsActive {
		return nil, job.ErrJobNotFound().WithDetail("job_id", jobID.String())
	}

	resp := jobEntity.ToResponse()
	return &resp, nil
}

// SearchJobs runs the job list filters. When a valid radius is given the
// located postings are filtered by distance and paginated in memory.
func (s *JobService) SearchJobs(ctx context.Context, req job.SearchJobsRequest) (*job.PaginatedJobsResponse, error) {
	filter := req.Filter()
	proximity := req.Proximity()
	s.observeProximity(proximity)

	if !proximity.Enabled {
		page, err := s.jobRepo.Search(ctx, filter, req.Pagination)
		if err != nil {
			return nil, errx.Wrap(err, "failed to search jobs", errx.TypeInternal)
		}

		responses := make([]job.JobResponse, 0, len(page.Items))
		for i := range page.Items {
			responses = append(responses, page.Items[i].ToResponse())
		}
		return &job.PaginatedJobsResponse{Items: responses, Page: page.Page, Empty: page.Empty}, nil
	}

	located, err := s.jobRepo.ListActiveWithCoordinates(ctx, filter)
	if err != nil {
		return nil, errx.Wrap(err, "failed to list located jobs", errx.TypeInternal)
	}

	nearby := job.FilterByProximity(located, proximity)
	responses := make([]job.JobResponse, 0, len(nearby))
	for _, n := range nearby {
		resp := n.Job.ToResponse()
		resp.DistanceMiles = n.DistanceMiles
		responses = append(responses, resp)
	}

	return kernel.Paginate(responses, req.Pagination), nil
}

// JobMap returns map markers for every active located posting, restricted to
// the radius when the query carries a valid one
func (s *JobService) JobMap(ctx context.Context, proximity job.ProximityQuery) (*job.MapResponse, error) {
	s.observeProximity(proximity)

	located, err := s.jobRepo.ListActiveWithCoordinates(ctx, job.SearchFilter{})
	if err != nil {
		return nil, errx.Wrap(err, "failed to list located jobs", errx.TypeInternal)
	}

	markers := job.Markers(job.FilterByProximity(located, proximity))
	return &job.MapResponse{
		Markers:  markers,
		Filtered: proximity.Enabled,
		Count:    len(markers),
	}, nil
}

// RecommendJobs returns up to ten postings matching the skills of the
// requesting job seeker
func (s *JobService) RecommendJobs(ctx context.Context, userID kernel.UserID) (*job.RecommendationsResponse, error) {
	profile, err := s.candidateRepo.GetByUserID(ctx, userID)
	if err != nil {
		if errx.IsType(err, errx.TypeNotFound) {
			return nil, candidate.ErrCandidateNotFound().WithDetail("user_id", userID.String())
		}
		return nil, errx.Wrap(err, "failed to load profile", errx.TypeInternal)
	}
	if !profile.IsJobSeeker() {
		return nil, candidate.ErrNotJobSeeker().WithDetail("role", profile.Role)
	}

	skills := profile.SkillNames()
	if len(skills) == 0 {
		s.observeRecommendations(0)
		return &job.RecommendationsResponse{Jobs: []job.JobResponse{}}, nil
	}

	applied, err := s.applied.ListJobIDsByApplicant(ctx, userID)
	if err != nil {
		return nil, errx.Wrap(err, "failed to load applications", errx.TypeInternal)
	}

	candidates, err := s.jobRepo.ListActiveMentioning(ctx, skills, applied, job.MaxRecommendations)
	if err != nil {
		return nil, errx.Wrap(err, "failed to load recommended jobs", errx.TypeInternal)
	}

	recommended := job.Recommend(candidates, skills, applied)
	responses := make([]job.JobResponse, 0, len(recommended))
	for i := range recommended {
		responses = append(responses, recommended[i].ToResponse())
	}

	logx.Debugf("recommended %d jobs for user %s", len(responses), userID)
	s.observeRecommendations(len(responses))

	return &job.RecommendationsResponse{Jobs: responses, Count: len(responses)}, nil
}

func (s *JobService) observeProximity(q job.ProximityQuery) {
	if s.metrics == nil {
		return
	}
	s.metrics.ProximityQueries.WithLabelValues(strconv.FormatBool(q.Enabled)).Inc()
}

func (s *JobService) observeRecommendations(n int) {
	if s.metrics == nil {
		return
	}
	s.metrics.Recommendations.Observe(float64(n))
}
