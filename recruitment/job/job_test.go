package job

import (
	"fmt"
	"testing"
	"time"

	"github.com/Abraxas-365/hirematch/pkg/kernel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr[T any](v T) *T { return &v }

var base = time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

func located(id string, lat, lon float64) Job {
	return Job{
		ID:        kernel.JobID(id),
		Title:     kernel.JobTitle("Engineer " + id),
		Latitude:  ptr(lat),
		Longitude: ptr(lon),
		IsActive:  true,
		CreatedAt: base,
	}
}

func TestSalaryRange(t *testing.T) {
	tests := []struct {
		name     string
		min, max *int
		want     string
	}{
		{"both", ptr(80000), ptr(120000), "$80k - $120k"},
		{"min only", ptr(80000), nil, "$80k+"},
		{"max only", nil, ptr(90000), "Salary not specified"},
		{"none", nil, nil, "Salary not specified"},
		{"zero min", ptr(0), ptr(50000), "Salary not specified"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			j := Job{SalaryMin: tt.min, SalaryMax: tt.max}
			assert.Equal(t, tt.want, j.SalaryRange())
		})
	}
}

func TestParseProximityQuery(t *testing.T) {
	tests := []struct {
		name          string
		lat, lon, rad string
		enabled       bool
	}{
		{"valid", "37.77", "-122.42", "5", true},
		{"zero radius", "37.77", "-122.42", "0", true},
		{"missing radius", "37.77", "-122.42", "", false},
		{"missing lat", "", "-122.42", "5", false},
		{"non numeric", "abc", "-122.42", "5", false},
		{"nan radius", "37.77", "-122.42", "NaN", false},
		{"inf lat", "Inf", "-122.42", "5", false},
		{"lat out of range", "91", "0", "5", false},
		{"lon out of range", "0", "-181", "5", false},
		{"negative radius", "37.77", "-122.42", "-1", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := ParseProximityQuery(tt.lat, tt.lon, tt.rad)
			assert.Equal(t, tt.enabled, q.Enabled)
		})
	}
}

func TestFilterByProximityRadius(t *testing.T) {
	jobs := []Job{located("near", 37.78, -122.41)}

	within := FilterByProximity(jobs, ParseProximityQuery("37.77", "-122.42", "5"))
	require.Len(t, within, 1)
	require.NotNil(t, within[0].DistanceMiles)
	assert.InDelta(t, 0.88, *within[0].DistanceMiles, 0.05)

	outside := FilterByProximity(jobs, ParseProximityQuery("37.77", "-122.42", "0.5"))
	assert.Empty(t, outside)
}

func TestFilterByProximityBoundaryIsInclusive(t *testing.T) {
	j := located("same", 37.77, -122.42)
	out := FilterByProximity([]Job{j}, ParseProximityQuery("37.77", "-122.42", "0"))
	assert.Len(t, out, 1)
}

func TestFilterByProximityExcludesUnlocatedAndInactive(t *testing.T) {
	noLon := located("no-lon", 37.77, 0)
	noLon.Longitude = nil
	inactive := located("inactive", 37.77, -122.42)
	inactive.IsActive = false
	ok := located("ok", 37.77, -122.42)

	jobs := []Job{noLon, inactive, ok}

	for _, q := range []ProximityQuery{
		ParseProximityQuery("37.77", "-122.42", "100"),
		ParseProximityQuery("", "", ""),
	} {
		out := FilterByProximity(jobs, q)
		require.Len(t, out, 1)
		assert.Equal(t, kernel.JobID("ok"), out[0].Job.ID)
	}
}

func TestFilterByProximityDisabledKeepsAllLocated(t *testing.T) {
	jobs := []Job{located("a", 10, 10), located("b", -40, 170)}
	out := FilterByProximity(jobs, ParseProximityQuery("37.77", "-122.42", "bad"))
	assert.Len(t, out, 2)
	assert.Nil(t, out[0].DistanceMiles)
}

func TestProximityMonotonicInRadius(t *testing.T) {
	var jobs []Job
	for i := 0; i < 20; i++ {
		jobs = append(jobs, located(fmt.Sprint(i), 37.0+float64(i)*0.1, -122.0))
	}

	prev := -1
	for _, r := range []string{"1", "5", "20", "50", "200"} {
		n := len(FilterByProximity(jobs, ParseProximityQuery("37.0", "-122.0", r)))
		assert.GreaterOrEqual(t, n, prev)
		prev = n
	}
}

func TestMarkers(t *testing.T) {
	j := located("j1", 37.78, -122.41)
	j.CompanyName = "Acme"
	markers := Markers(FilterByProximity([]Job{j}, ProximityQuery{}))

	require.Len(t, markers, 1)
	assert.Equal(t, "/jobs/j1", markers[0].URL)
	assert.Equal(t, "Acme", markers[0].Company)
	assert.Nil(t, markers[0].DistanceMiles)
}

func posting(id string, created time.Time, desc string) Job {
	return Job{ID: kernel.JobID(id), Description: kernel.JobDescription(desc), IsActive: true, CreatedAt: created}
}

func TestRecommend(t *testing.T) {
	jobs := []Job{
		posting("old-go", base, "We write Go services"),
		posting("new-go", base.Add(time.Hour), "golang and postgres"),
		posting("java", base.Add(2*time.Hour), "Java shop"),
		posting("applied", base.Add(3*time.Hour), "Go everywhere"),
		{ID: "req", Requirements: "Experience with GO", IsActive: true, CreatedAt: base.Add(30 * time.Minute)},
		{ID: "inactive", Description: "Go", IsActive: false, CreatedAt: base.Add(4 * time.Hour)},
	}

	out := Recommend(jobs, []string{"go", "  "}, []kernel.JobID{"applied"})

	var ids []kernel.JobID
	for _, j := range out {
		ids = append(ids, j.ID)
	}
	assert.Equal(t, []kernel.JobID{"new-go", "req", "old-go"}, ids)
}

func TestRecommendNoSkills(t *testing.T) {
	jobs := []Job{posting("a", base, "anything")}
	assert.Empty(t, Recommend(jobs, nil, nil))
	assert.Empty(t, Recommend(jobs, []string{}, nil))
}

func TestRecommendCapsAtTen(t *testing.T) {
	var jobs []Job
	for i := 0; i < 15; i++ {
		jobs = append(jobs, posting(fmt.Sprintf("j%02d", i), base.Add(time.Duration(i)*time.Minute), "python"))
	}

	out := Recommend(jobs, []string{"Python"}, nil)
	require.Len(t, out, MaxRecommendations)
	assert.Equal(t, kernel.JobID("j14"), out[0].ID)
}

func TestSearchFilterMatches(t *testing.T) {
	j := Job{
		Title:           "Backend Engineer",
		CompanyName:     "Globex",
		Description:     "Build APIs",
		Location:        "San Francisco, CA",
		JobType:         JobTypeFullTime,
		ExperienceLevel: ExperienceSenior,
		SalaryMin:       ptr(90000),
		SalaryMax:       ptr(110000),
		IsActive:        true,
	}

	tests := []struct {
		name   string
		filter SearchFilter
		want   bool
	}{
		{"empty", SearchFilter{}, true},
		{"query on company", SearchFilter{Query: "glob"}, true},
		{"query miss", SearchFilter{Query: "frontend"}, false},
		{"location", SearchFilter{Location: "francisco"}, true},
		{"job type miss", SearchFilter{JobType: JobTypeContract}, false},
		{"level", SearchFilter{ExperienceLevel: ExperienceSenior}, true},
		{"band hit", SearchFilter{Salary: SalaryBand80To120}, true},
		{"band miss", SearchFilter{Salary: SalaryBand30To50}, false},
		{"band open ended", SearchFilter{Salary: SalaryBand120Plus}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.filter.Matches(&j))
		})
	}
}

func TestSearchRequestIgnoresUnknownEnums(t *testing.T) {
	f := SearchJobsRequest{JobType: "freelance", ExperienceLevel: "Senior", SalaryRange: "10-20"}.Filter()
	assert.Empty(t, f.JobType)
	assert.Equal(t, ExperienceSenior, f.ExperienceLevel)
	assert.Equal(t, SalaryBandNone, f.Salary)
}
