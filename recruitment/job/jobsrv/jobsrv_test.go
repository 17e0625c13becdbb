package jobsrv

import (
	"context"
	"errors"
	"slices"
	"testing"
	"time"

	"github.com/Abraxas-365/hirematch/internal/metrics"
	"github.com/Abraxas-365/hirematch/pkg/errx"
	"github.com/Abraxas-365/hirematch/pkg/kernel"
	"github.com/Abraxas-365/hirematch/recruitment/candidate"
	"github.com/Abraxas-365/hirematch/recruitment/job"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memJobs struct {
	jobs []job.Job
}

func (m *memJobs) GetByID(_ context.Context, id kernel.JobID) (*job.Job, error) {
	for i := range m.jobs {
		if m.jobs[i].ID == id {
			j := m.jobs[i]
			return &j, nil
		}
	}
	return nil, job.ErrJobNotFound()
}

func (m *memJobs) matching(f job.SearchFilter) []job.Job {
	var out []job.Job
	for i := range m.jobs {
		if f.Matches(&m.jobs[i]) {
			out = append(out, m.jobs[i])
		}
	}
	slices.SortFunc(out, job.NewestFirst)
	return out
}

func (m *memJobs) Search(_ context.Context, f job.SearchFilter, p kernel.PaginationOptions) (*kernel.Paginated[job.Job], error) {
	return kernel.Paginate(m.matching(f), p), nil
}

func (m *memJobs) ListActiveWithCoordinates(_ context.Context, f job.SearchFilter) ([]job.Job, error) {
	var out []job.Job
	for _, j := range m.matching(f) {
		if j.HasCoordinates() {
			out = append(out, j)
		}
	}
	return out, nil
}

func (m *memJobs) ListActiveMentioning(_ context.Context, terms []string, exclude []kernel.JobID, limit int) ([]job.Job, error) {
	var out []job.Job
	for _, j := range m.matching(job.SearchFilter{}) {
		if j.MentionsAny(terms) && !slices.Contains(exclude, j.ID) {
			out = append(out, j)
		}
	}
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

type memCandidates struct {
	byUser map[kernel.UserID]candidate.Candidate
}

func (m *memCandidates) GetByID(context.Context, kernel.CandidateID) (*candidate.Candidate, error) {
	return nil, candidate.ErrCandidateNotFound()
}

func (m *memCandidates) GetByUserID(_ context.Context, id kernel.UserID) (*candidate.Candidate, error) {
	c, ok := m.byUser[id]
	if !ok {
		return nil, candidate.ErrCandidateNotFound()
	}
	return &c, nil
}

func (m *memCandidates) ListJobSeekers(context.Context) ([]candidate.Candidate, error) {
	return nil, nil
}

type appliedFunc func(kernel.UserID) ([]kernel.JobID, error)

func (f appliedFunc) ListJobIDsByApplicant(_ context.Context, id kernel.UserID) ([]kernel.JobID, error) {
	return f(id)
}

func ptr[T any](v T) *T { return &v }

var t0 = time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

func fixtures() *memJobs {
	return &memJobs{jobs: []job.Job{
		{ID: "sf", Title: "Go Engineer", Description: "Go and Postgres", IsActive: true,
			Latitude: ptr(37.78), Longitude: ptr(-122.41), CreatedAt: t0.Add(3 * time.Hour), CompanyName: "Acme"},
		{ID: "la", Title: "Java Engineer", Description: "Java", IsActive: true,
			Latitude: ptr(34.05), Longitude: ptr(-118.24), CreatedAt: t0.Add(2 * time.Hour)},
		{ID: "remote", Title: "Go Remote", Requirements: "go", IsActive: true, CreatedAt: t0.Add(time.Hour)},
		{ID: "closed", Title: "Go Closed", Description: "go", IsActive: false,
			Latitude: ptr(37.78), Longitude: ptr(-122.41), CreatedAt: t0.Add(4 * time.Hour)},
	}}
}

func newService(applied appliedFunc) (*JobService, *metrics.Collector) {
	collector := metrics.New()
	candidates := &memCandidates{byUser: map[kernel.UserID]candidate.Candidate{
		"seeker": {ID: "p1", UserID: "seeker", Role: kernel.RoleJobSeeker,
			Skills: []candidate.Skill{{Name: "Go"}, {Name: " "}}},
		"blank": {ID: "p2", UserID: "blank", Role: kernel.RoleJobSeeker},
		"recruiter": {ID: "p3", UserID: "recruiter", Role: kernel.RoleRecruiter,
			Skills: []candidate.Skill{{Name: "Go"}}},
	}}
	if applied == nil {
		applied = func(kernel.UserID) ([]kernel.JobID, error) { return nil, nil }
	}
	return NewJobService(fixtures(), candidates, applied, collector), collector
}

func ids(resps []job.JobResponse) []kernel.JobID {
	out := make([]kernel.JobID, 0, len(resps))
	for _, r := range resps {
		out = append(out, r.ID)
	}
	return out
}

func TestSearchJobsWithoutRadius(t *testing.T) {
	svc, _ := newService(nil)

	page, err := svc.SearchJobs(context.Background(), job.SearchJobsRequest{
		Query:      "go",
		Pagination: kernel.PaginationOptions{Page: 1, PageSize: 10},
	})
	require.NoError(t, err)
	assert.Equal(t, []kernel.JobID{"sf", "remote"}, ids(page.Items))
	assert.Nil(t, page.Items[0].DistanceMiles)
}

func TestSearchJobsWithRadius(t *testing.T) {
	svc, collector := newService(nil)

	page, err := svc.SearchJobs(context.Background(), job.SearchJobsRequest{
		Latitude:   "37.77",
		Longitude:  "-122.42",
		Radius:     "5",
		Pagination: kernel.PaginationOptions{Page: 1, PageSize: 10},
	})
	require.NoError(t, err)
	assert.Equal(t, []kernel.JobID{"sf"}, ids(page.Items))
	require.NotNil(t, page.Items[0].DistanceMiles)
	assert.Equal(t, 1.0, testutil.ToFloat64(collector.ProximityQueries.WithLabelValues("true")))
}

func TestJobMap(t *testing.T) {
	svc, _ := newService(nil)
	ctx := context.Background()

	all, err := svc.JobMap(ctx, job.ParseProximityQuery("", "", ""))
	require.NoError(t, err)
	assert.False(t, all.Filtered)
	assert.Equal(t, 2, all.Count)

	near, err := svc.JobMap(ctx, job.ParseProximityQuery("37.77", "-122.42", "0.5"))
	require.NoError(t, err)
	assert.True(t, near.Filtered)
	assert.Empty(t, near.Markers)
}

func TestRecommendJobsExcludesApplied(t *testing.T) {
	svc, _ := newService(func(id kernel.UserID) ([]kernel.JobID, error) {
		return []kernel.JobID{"sf"}, nil
	})

	resp, err := svc.RecommendJobs(context.Background(), "seeker")
	require.NoError(t, err)
	assert.Equal(t, []kernel.JobID{"remote"}, ids(resp.Jobs))
}

func TestRecommendJobsNoSkills(t *testing.T) {
	svc, collector := newService(func(kernel.UserID) ([]kernel.JobID, error) {
		t.Fatal("applications must not be loaded for a profile without skills")
		return nil, nil
	})

	resp, err := svc.RecommendJobs(context.Background(), "blank")
	require.NoError(t, err)
	assert.Empty(t, resp.Jobs)
	assert.Equal(t, uint64(1), histogramCount(t, collector))
}

func TestRecommendJobsErrors(t *testing.T) {
	svc, _ := newService(func(kernel.UserID) ([]kernel.JobID, error) {
		return nil, errors.New("db down")
	})
	ctx := context.Background()

	_, err := svc.RecommendJobs(ctx, "ghost")
	assert.True(t, errx.IsCode(err, candidate.CodeCandidateNotFound))

	_, err = svc.RecommendJobs(ctx, "recruiter")
	assert.True(t, errx.IsCode(err, candidate.CodeNotJobSeeker))

	_, err = svc.RecommendJobs(ctx, "seeker")
	assert.True(t, errx.IsType(err, errx.TypeInternal))
}

func TestGetJobByIDHidesInactive(t *testing.T) {
	svc, _ := newService(nil)

	_, err := svc.GetJobByID(context.Background(), "closed")
	assert.True(t, errx.IsCode(err, job.CodeJobNotFound))

	resp, err := svc.GetJobByID(context.Background(), "sf")
	require.NoError(t, err)
	assert.Equal(t, kernel.CompanyName("Acme"), resp.Company)
}

func histogramCount(t *testing.T, c *metrics.Collector) uint64 {
	t.Helper()
	families, err := c.Registry().Gather()
	require.NoError(t, err)
	for _, f := range families {
		if f.GetName() == "hirematch_recommendations_returned" {
			return f.GetMetric()[0].GetHistogram().GetSampleCount()
		}
	}
	return 0
}
