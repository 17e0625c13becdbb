package candidatesrv

import (
	"context"

	"github.com/Abraxas-365/hirematch/pkg/errx"
	"github.com/Abraxas-365/hirematch/pkg/kernel"
	"github.com/Abraxas-365/hirematch/recruitment/candidate"
)

// CandidateService provides read access to candidate profiles
type CandidateService struct {
	candidateRepo candidate.Repository
}

// NewCandidateService creates a new instance of the candidate service
func NewCandidateService(candidateRepo candidate.Repository) *CandidateService {
	return &CandidateService{
		candidateRepo: candidateRepo,
	}
}

// GetCandidateByID retrieves a job seeker profile for a recruiter
func (s *CandidateService) GetCandidateByID(ctx context.Context, candidateID kernel.CandidateID) (*candidate.CandidateResponse, error) {
	c, err := s.candidateRepo.GetByID(ctx, candidateID)
	if err != nil {
		return nil, notFoundOr(err, "candidate_id", candidateID.String())
	}
	if !c.IsJobSeeker() {
		return nil, candidate.ErrCandidateNotFound().WithDetail("candidate_id", candidateID.String())
	}

	resp := c.ToResponse()
	return &resp, nil
}

// GetMyProfile retrieves the profile of the requesting user
func (s *CandidateService) GetMyProfile(ctx context.Context, userID kernel.UserID) (*candidate.CandidateResponse, error) {
	c, err := s.candidateRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, notFoundOr(err, "user_id", userID.String())
	}

	resp := c.ToResponse()
	return &resp, nil
}

func notFoundOr(err error, key, value string) error {
	if errx.IsType(err, errx.TypeNotFound) {
		return candidate.ErrCandidateNotFound().WithDetail(key, value)
	}
	return errx.Wrap(err, "failed to get candidate", errx.TypeInternal)
}
