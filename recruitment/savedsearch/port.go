package savedsearch

import (
	"context"
	"time"

	"github.com/Abraxas-365/hirematch/pkg/kernel"
	"github.com/Abraxas-365/hirematch/recruitment/candidate"
)

type Repository interface {
	// Create stores a new search; a duplicate (recruiter, name) fails with ErrNameTaken
	Create(ctx context.Context, search *SavedSearch) error

	// GetByID retrieves a saved search by ID
	GetByID(ctx context.Context, id kernel.SavedSearchID) (*SavedSearch, error)

	// ListByRecruiter retrieves the searches of a recruiter, newest first
	ListByRecruiter(ctx context.Context, recruiterID kernel.UserID) ([]SavedSearch, error)

	// ListActive retrieves every active search
	ListActive(ctx context.Context) ([]SavedSearch, error)

	// Update stores the editable fields and the active flag
	Update(ctx context.Context, search *SavedSearch) error

	// Delete removes a search
	Delete(ctx context.Context, id kernel.SavedSearchID) error

	// ExistsByRecruiterAndName checks name uniqueness, ignoring excludeID
	ExistsByRecruiterAndName(ctx context.Context, recruiterID kernel.UserID, name string, excludeID kernel.SavedSearchID) (bool, error)

	// CommitNotified sets last_notified and updated_at in one statement
	CommitNotified(ctx context.Context, id kernel.SavedSearchID, at time.Time) error
}

// Notification tells a recruiter about new matches of a search
type Notification struct {
	SearchID    kernel.SavedSearchID         `json:"search_id"`
	SearchName  string                       `json:"search_name"`
	RecruiterID kernel.UserID                `json:"recruiter_id"`
	Count       int                          `json:"count"`
	Matches     []candidate.CandidateSummary `json:"matches"`
	GeneratedAt time.Time                    `json:"generated_at"`
}

// NewNotification builds the notification for a delta
func NewNotification(search *SavedSearch, matches []candidate.Candidate, now time.Time) Notification {
	return Notification{
		SearchID:    search.ID,
		SearchName:  search.Name,
		RecruiterID: search.RecruiterID,
		Count:       len(matches),
		Matches:     candidate.Summaries(matches),
		GeneratedAt: now,
	}
}

// Notifier delivers notifications to recruiters
type Notifier interface {
	Notify(ctx context.Context, n Notification) error
}
