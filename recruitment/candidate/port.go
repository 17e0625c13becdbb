package candidate

import (
	"context"

	"github.com/Abraxas-365/hirematch/pkg/kernel"
)

// Repository loads fully stitched candidate projections
type Repository interface {
	// GetByID retrieves a candidate by profile ID
	GetByID(ctx context.Context, id kernel.CandidateID) (*Candidate, error)

	// GetByUserID retrieves the candidate owned by a user
	GetByUserID(ctx context.Context, userID kernel.UserID) (*Candidate, error)

	// ListJobSeekers retrieves every job seeker profile with skills, education and experience
	ListJobSeekers(ctx context.Context) ([]Candidate, error)
}
