package candidate

import (
	"time"

	"github.com/Abraxas-365/hirematch/pkg/kernel"
)

// CandidateResponse - DTO for returning a candidate profile
type CandidateResponse struct {
	ID          kernel.CandidateID `json:"id"`
	UserID      kernel.UserID      `json:"user_id"`
	Name        string             `json:"name"`
	Bio         string             `json:"bio"`
	Location    string             `json:"location"`
	Skills      []string           `json:"skills"`
	Educations  []Education        `json:"educations"`
	Experiences []Experience       `json:"experiences"`
	JoinedAt    time.Time          `json:"joined_at"`
}

// CandidateSummary - compact DTO used in match lists
type CandidateSummary struct {
	ID       kernel.CandidateID `json:"id"`
	UserID   kernel.UserID      `json:"user_id"`
	Name     string             `json:"name"`
	Location string             `json:"location"`
	Skills   []string           `json:"skills"`
	JoinedAt time.Time          `json:"joined_at"`
}

// ToResponse converts the entity to its full DTO
func (c *Candidate) ToResponse() CandidateResponse {
	return CandidateResponse{
		ID:          c.ID,
		UserID:      c.UserID,
		Name:        c.Name,
		Bio:         c.Bio,
		Location:    c.Location,
		Skills:      c.SkillNames(),
		Educations:  c.Educations,
		Experiences: c.Experiences,
		JoinedAt:    c.JoinedAt,
	}
}

// ToSummary converts the entity to its compact DTO
func (c *Candidate) ToSummary() CandidateSummary {
	return CandidateSummary{
		ID:       c.ID,
		UserID:   c.UserID,
		Name:     c.Name,
		Location: c.Location,
		Skills:   c.SkillNames(),
		JoinedAt: c.JoinedAt,
	}
}

// Summaries converts a match list to compact DTOs
func Summaries(cs []Candidate) []CandidateSummary {
	out := make([]CandidateSummary, 0, len(cs))
	for i := range cs {
		out = append(out, cs[i].ToSummary())
	}
	return out
}
