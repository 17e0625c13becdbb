package application

import (
	"testing"
	"time"

	"github.com/Abraxas-365/hirematch/pkg/errx"
	"github.com/Abraxas-365/hirematch/pkg/kernel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseStatus(t *testing.T) {
	s, err := ParseStatus("INTERVIEW")
	require.NoError(t, err)
	assert.Equal(t, StatusInterview, s)

	for _, raw := range []string{"PROMOTED", "interview", " INTERVIEW ", "Screening", ""} {
		_, err = ParseStatus(raw)
		assert.True(t, errx.IsCode(err, CodeInvalidStatus), raw)
	}
}

func TestPermissiveAllowsEveryPair(t *testing.T) {
	p := PermissivePolicy{}
	for _, from := range Stages {
		for _, to := range Stages {
			assert.True(t, p.Allows(from, to), "%s -> %s", from, to)
		}
	}
	assert.False(t, p.Allows(StatusNew, "LEGACY"))
}

func TestForwardOnlyPolicy(t *testing.T) {
	p := ForwardOnlyPolicy{}

	tests := []struct {
		from, to ApplicationStatus
		want     bool
	}{
		{StatusNew, StatusScreening, true},
		{StatusNew, StatusOffer, true},
		{StatusInterview, StatusScreening, false},
		{StatusOffer, StatusRejected, true},
		{StatusNew, StatusRejected, true},
		{StatusHired, StatusRejected, false},
		{StatusRejected, StatusNew, false},
		{StatusHired, StatusHired, true},
		{StatusScreening, StatusScreening, true},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, p.Allows(tt.from, tt.to), "%s -> %s", tt.from, tt.to)
	}
}

func TestPolicyFor(t *testing.T) {
	assert.Equal(t, "permissive", PolicyFor(false).Name())
	assert.Equal(t, "forward-only", PolicyFor(true).Name())
}

func TestTransitionTo(t *testing.T) {
	applied := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	now := applied.Add(48 * time.Hour)

	a := Application{Status: StatusOffer, AppliedAt: applied, UpdatedAt: applied}
	require.NoError(t, a.TransitionTo(StatusScreening, PermissivePolicy{}, now))
	assert.Equal(t, StatusScreening, a.Status)
	assert.Equal(t, now, a.UpdatedAt)
}

func TestTransitionToRejectedLeavesRecordUntouched(t *testing.T) {
	applied := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	a := Application{Status: StatusInterview, UpdatedAt: applied}
	before := a

	err := a.TransitionTo("PROMOTED", PermissivePolicy{}, time.Now())
	assert.True(t, errx.IsCode(err, CodeInvalidStatus))
	assert.Equal(t, before, a)

	err = a.TransitionTo(StatusNew, ForwardOnlyPolicy{}, time.Now())
	assert.True(t, errx.IsCode(err, CodeInvalidStatusTransition))
	assert.Equal(t, before, a)
}

func TestCanManagePipeline(t *testing.T) {
	assert.True(t, CanManagePipeline("owner", "owner", kernel.RoleRecruiter))
	assert.True(t, CanManagePipeline("owner", "admin", kernel.RoleAdministrator))
	assert.False(t, CanManagePipeline("owner", "other", kernel.RoleRecruiter))
	assert.False(t, CanManagePipeline("", "", kernel.RoleRecruiter))
}

func TestGroupByStatus(t *testing.T) {
	apps := []Application{
		{ID: "1", Status: StatusInterview},
		{ID: "2", Status: "LEGACY_X"},
		{ID: "3", Status: StatusNew},
		{ID: "4", Status: StatusInterview},
	}

	board := GroupByStatus(apps)

	require.Len(t, board, len(Stages))
	for i, s := range Stages {
		assert.Equal(t, s, board[i].Status)
	}

	newCol := board.Column(StatusNew)
	assert.Equal(t, []kernel.ApplicationID{"2", "3"}, appIDs(newCol.Applications))
	assert.Equal(t, []kernel.ApplicationID{"1", "4"}, appIDs(board.Column(StatusInterview).Applications))
	assert.Equal(t, 0, board.Column(StatusHired).Count)
	assert.NotNil(t, board.Column(StatusHired).Applications)
	assert.Equal(t, len(apps), board.Total())
}

func TestGroupByStatusEmpty(t *testing.T) {
	board := GroupByStatus(nil)
	assert.Len(t, board, len(Stages))
	assert.Zero(t, board.Total())
}

func TestToResponseNormalizesStatus(t *testing.T) {
	a := Application{Status: "LEGACY_X", ResumeKey: "resumes/1/cv.pdf"}
	resp := a.ToResponse()
	assert.Equal(t, StatusNew, resp.Status)
	assert.True(t, resp.HasResume)
}

func appIDs(apps []Application) []kernel.ApplicationID {
	var out []kernel.ApplicationID
	for _, a := range apps {
		out = append(out, a.ID)
	}
	return out
}
