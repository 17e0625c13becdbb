package savedsearch

import (
	"slices"
	"time"

	"github.com/Abraxas-365/hirematch/pkg/kernel"
	"github.com/Abraxas-365/hirematch/recruitment/candidate"
)

// MatchCandidates returns the job seekers of population satisfying every
// criterion of the search, de-duplicated by id, newest member first
func MatchCandidates(search *SavedSearch, population []candidate.Candidate) []candidate.Candidate {
	criteria := search.Criteria()

	seen := make(map[kernel.CandidateID]struct{}, len(population))
	matches := make([]candidate.Candidate, 0)
	for i := range population {
		c := &population[i]
		if !c.IsJobSeeker() {
			continue
		}
		if _, dup := seen[c.ID]; dup {
			continue
		}
		if !criteria.Matches(c) {
			continue
		}
		seen[c.ID] = struct{}{}
		matches = append(matches, *c)
	}

	slices.SortStableFunc(matches, candidate.JoinedBefore)
	return matches
}

// NewMatchesSince narrows matches to candidates who joined after the last
// notification and not after now. All matches up to now count when the
// search was never notified. The search is not modified.
func NewMatchesSince(search *SavedSearch, matches []candidate.Candidate, now time.Time) []candidate.Candidate {
	out := make([]candidate.Candidate, 0, len(matches))
	for _, c := range matches {
		if c.JoinedAt.After(now) {
			continue
		}
		if !search.NeverNotified() && !c.JoinedAt.After(*search.LastNotified) {
			continue
		}
		out = append(out, c)
	}
	return out
}
