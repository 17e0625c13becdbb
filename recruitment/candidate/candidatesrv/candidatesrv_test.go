package candidatesrv

import (
	"context"
	"errors"
	"testing"

	"github.com/Abraxas-365/hirematch/pkg/errx"
	"github.com/Abraxas-365/hirematch/pkg/kernel"
	"github.com/Abraxas-365/hirematch/recruitment/candidate"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubRepo struct {
	byID map[kernel.CandidateID]candidate.Candidate
	err  error
}

func (s *stubRepo) GetByID(_ context.Context, id kernel.CandidateID) (*candidate.Candidate, error) {
	if s.err != nil {
		return nil, s.err
	}
	c, ok := s.byID[id]
	if !ok {
		return nil, candidate.ErrCandidateNotFound()
	}
	return &c, nil
}

func (s *stubRepo) GetByUserID(_ context.Context, userID kernel.UserID) (*candidate.Candidate, error) {
	for _, c := range s.byID {
		if c.UserID == userID {
			return &c, nil
		}
	}
	return nil, candidate.ErrCandidateNotFound()
}

func (s *stubRepo) ListJobSeekers(context.Context) ([]candidate.Candidate, error) {
	return nil, nil
}

func newService() *CandidateService {
	return NewCandidateService(&stubRepo{byID: map[kernel.CandidateID]candidate.Candidate{
		"p1": {ID: "p1", UserID: "u1", Role: kernel.RoleJobSeeker, Skills: []candidate.Skill{{Name: " Go "}, {Name: ""}}},
		"p2": {ID: "p2", UserID: "u2", Role: kernel.RoleRecruiter},
	}})
}

func TestGetCandidateByID(t *testing.T) {
	resp, err := newService().GetCandidateByID(context.Background(), "p1")
	require.NoError(t, err)
	assert.Equal(t, []string{"Go"}, resp.Skills)
}

func TestGetCandidateByIDHidesRecruiters(t *testing.T) {
	_, err := newService().GetCandidateByID(context.Background(), "p2")
	assert.True(t, errx.IsCode(err, candidate.CodeCandidateNotFound))
}

func TestGetMyProfile(t *testing.T) {
	resp, err := newService().GetMyProfile(context.Background(), "u2")
	require.NoError(t, err)
	assert.Equal(t, kernel.CandidateID("p2"), resp.ID)

	_, err = newService().GetMyProfile(context.Background(), "nobody")
	assert.True(t, errx.IsCode(err, candidate.CodeCandidateNotFound))
}

func TestRepositoryFailureIsInternal(t *testing.T) {
	svc := NewCandidateService(&stubRepo{err: errors.New("timeout")})

	_, err := svc.GetCandidateByID(context.Background(), "p1")
	assert.True(t, errx.IsType(err, errx.TypeInternal))
}
