package job

import (
	"slices"

	"github.com/Abraxas-365/hirematch/pkg/kernel"
)

// MaxRecommendations caps the recommendation list
const MaxRecommendations = 10

// Recommend returns up to MaxRecommendations active postings that mention at
// least one skill, excluding postings the candidate applied to, newest first.
func Recommend(jobs []Job, skills []string, applied []kernel.JobID) []Job {
	if len(skills) == 0 {
		return []Job{}
	}

	excluded := make(map[kernel.JobID]struct{}, len(applied))
	for _, id := range applied {
		excluded[id] = struct{}{}
	}

	seen := make(map[kernel.JobID]struct{}, len(jobs))
	out := make([]Job, 0, MaxRecommendations)
	for _, j := range jobs {
		if !j.IsActive {
			continue
		}
		if _, ok := excluded[j.ID]; ok {
			continue
		}
		if _, ok := seen[j.ID]; ok {
			continue
		}
		if !j.MentionsAny(skills) {
			continue
		}
		seen[j.ID] = struct{}{}
		out = append(out, j)
	}

	slices.SortFunc(out, NewestFirst)
	if len(out) > MaxRecommendations {
		out = out[:MaxRecommendations]
	}
	return out
}
