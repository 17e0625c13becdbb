package savedsearchsrv

import (
	"context"
	"strings"
	"time"

	"github.com/Abraxas-365/hirematch/internal/metrics"
	"github.com/Abraxas-365/hirematch/pkg/errx"
	"github.com/Abraxas-365/hirematch/pkg/kernel"
	"github.com/Abraxas-365/hirematch/pkg/logx"
	"github.com/Abraxas-365/hirematch/pkg/validatex"
	"github.com/Abraxas-365/hirematch/recruitment/candidate"
	"github.com/Abraxas-365/hirematch/recruitment/savedsearch"
	"github.com/google/uuid"
)

// SavedSearchService provides saved search management and matching
type SavedSearchService struct {
	searchRepo    savedsearch.Repository
	candidateRepo candidate.Repository
	notifier      savedsearch.Notifier
	metrics       *metrics.Collector
	now           func() time.Time
}

// NewSavedSearchService creates a new instance of the saved search service
func NewSavedSearchService(
	searchRepo savedsearch.Repository,
	candidateRepo candidate.Repository,
	notifier savedsearch.Notifier,
	collector *metrics.Collector,
) *SavedSearchService {
	return &SavedSearchService{
		searchRepo:    searchRepo,
		candidateRepo: candidateRepo,
		notifier:      notifier,
		metrics:       collector,
		now:           time.Now,
	}
}

// WithClock replaces the time source
func (s *SavedSearchService) WithClock(now func() time.Time) *SavedSearchService {
	s.now = now
	return s
}

// ============================================================================
// Management
// ============================================================================

// CreateSavedSearch stores new criteria for a recruiter
func (s *SavedSearchService) CreateSavedSearch(ctx context.Context, recruiterID kernel.UserID, role kernel.Role, req savedsearch.CreateSavedSearchRequest) (*savedsearch.SavedSearchResponse, error) {
	if !canManage(role) {
		return nil, savedsearch.ErrOnlyRecruiters().WithDetail("role", role)
	}
	if err := validatex.Struct(req); err != nil {
		return nil, err
	}

	name := strings.TrimSpace(req.Name)
	if err := s.ensureNameFree(ctx, recruiterID, name, ""); err != nil {
		return nil, err
	}

	now := s.now()
	search := &savedsearch.SavedSearch{
		ID:              kernel.NewSavedSearchID(uuid.NewString()),
		RecruiterID:     recruiterID,
		Name:            name,
		Skills:          strings.TrimSpace(req.Skills),
		Location:        strings.TrimSpace(req.Location),
		ExperienceYears: strings.TrimSpace(req.ExperienceYears),
		EducationLevel:  strings.TrimSpace(req.EducationLevel),
		CurrentCompany:  strings.TrimSpace(req.CurrentCompany),
		IsActive:        true,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	if err := s.searchRepo.Create(ctx, search); err != nil {
		if errx.IsCode(err, savedsearch.CodeNameTaken) {
			return nil, err
		}
		return nil, errx.Wrap(err, "failed to create saved search", errx.TypeInternal)
	}

	logx.Infow("saved search created", "search_id", search.ID, "criteria", search.Criteria().Fields())

	resp := search.ToResponse()
	return &resp, nil
}

// ListSavedSearches lists the searches owned by the recruiter
func (s *SavedSearchService) ListSavedSearches(ctx context.Context, recruiterID kernel.UserID, role kernel.Role) ([]savedsearch.SavedSearchResponse, error) {
	if !canManage(role) {
		return nil, savedsearch.ErrOnlyRecruiters().WithDetail("role", role)
	}

	searches, err := s.searchRepo.ListByRecruiter(ctx, recruiterID)
	if err != nil {
		return nil, errx.Wrap(err, "failed to list saved searches", errx.TypeInternal)
	}

	responses := make([]savedsearch.SavedSearchResponse, 0, len(searches))
	for i := range searches {
		responses = append(responses, searches[i].ToResponse())
	}
	return responses, nil
}

// GetSavedSearch retrieves a search visible to the requester
func (s *SavedSearchService) GetSavedSearch(ctx context.Context, requesterID kernel.UserID, role kernel.Role, id kernel.SavedSearchID) (*savedsearch.SavedSearchResponse, error) {
	search, err := s.owned(ctx, requesterID, role, id)
	if err != nil {
		return nil, err
	}
	resp := search.ToResponse()
	return &resp, nil
}

// UpdateSavedSearch edits the criteria of a search
func (s *SavedSearchService) UpdateSavedSearch(ctx context.Context, requesterID kernel.UserID, role kernel.Role, id kernel.SavedSearchID, req savedsearch.UpdateSavedSearchRequest) (*savedsearch.SavedSearchResponse, error) {
	if err := validatex.Struct(req); err != nil {
		return nil, err
	}

	search, err := s.owned(ctx, requesterID, role, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		trimmed := strings.TrimSpace(*req.Name)
		if trimmed == "" {
			return nil, savedsearch.ErrInvalidRequest().WithDetail("name", "must not be blank")
		}
		req.Name = &trimmed
		if trimmed != search.Name {
			if err := s.ensureNameFree(ctx, search.RecruiterID, trimmed, search.ID); err != nil {
				return nil, err
			}
		}
	}

	req.Apply(search)
	search.UpdatedAt = s.now()

	if err := s.searchRepo.Update(ctx, search); err != nil {
		if errx.IsCode(err, savedsearch.CodeNameTaken) || errx.IsType(err, errx.TypeNotFound) {
			return nil, err
		}
		return nil, errx.Wrap(err, "failed to update saved search", errx.TypeInternal)
	}

	resp := search.ToResponse()
	return &resp, nil
}

// ToggleSavedSearch flips the active flag
func (s *SavedSearchService) ToggleSavedSearch(ctx context.Context, requesterID kernel.UserID, role kernel.Role, id kernel.SavedSearchID) (*savedsearch.SavedSearchResponse, error) {
	search, err := s.owned(ctx, requesterID, role, id)
	if err != nil {
		return nil, err
	}

	search.Toggle(s.now())
	if err := s.searchRepo.Update(ctx, search); err != nil {
		return nil, errx.Wrap(err, "failed to toggle saved search", errx.TypeInternal)
	}

	resp := search.ToResponse()
	return &resp, nil
}

// DeleteSavedSearch removes a search
func (s *SavedSearchService) DeleteSavedSearch(ctx context.Context, requesterID kernel.UserID, role kernel.Role, id kernel.SavedSearchID) error {
	if _, err := s.owned(ctx, requesterID, role, id); err != nil {
		return err
	}
	if err := s.searchRepo.Delete(ctx, id); err != nil {
		if errx.IsType(err, errx.TypeNotFound) {
			return err
		}
		return errx.Wrap(err, "failed to delete saved search", errx.TypeInternal)
	}
	return nil
}

// ============================================================================
// Matching
// ============================================================================

// RunSavedSearch returns every candidate matching the search
func (s *SavedSearchService) RunSavedSearch(ctx context.Context, requesterID kernel.UserID, role kernel.Role, id kernel.SavedSearchID) (*savedsearch.MatchesResponse, error) {
	search, err := s.owned(ctx, requesterID, role, id)
	if err != nil {
		return nil, err
	}

	matches, err := s.match(ctx, search, "run")
	if err != nil {
		return nil, err
	}
	return matchesResponse(search, matches), nil
}

// NewMatches returns the candidates not yet notified. Nothing is committed.
func (s *SavedSearchService) NewMatches(ctx context.Context, requesterID kernel.UserID, role kernel.Role, id kernel.SavedSearchID) (*savedsearch.MatchesResponse, error) {
	search, err := s.owned(ctx, requesterID, role, id)
	if err != nil {
		return nil, err
	}

	matches, err := s.match(ctx, search, "delta")
	if err != nil {
		return nil, err
	}
	return matchesResponse(search, savedsearch.NewMatchesSince(search, matches, s.now())), nil
}

// CommitNotified marks the search notified as of now
func (s *SavedSearchService) CommitNotified(ctx context.Context, requesterID kernel.UserID, role kernel.Role, id kernel.SavedSearchID) (*savedsearch.SavedSearchResponse, error) {
	search, err := s.owned(ctx, requesterID, role, id)
	if err != nil {
		return nil, err
	}

	now := s.now()
	if err := s.commit(ctx, search, now); err != nil {
		return nil, err
	}

	resp := search.ToResponse()
	return &resp, nil
}

// CheckSavedSearches evaluates every active search. Searches with new
// matches are delivered and then committed; a dry run only reports. A
// failed delivery leaves that search uncommitted and the batch continues.
func (s *SavedSearchService) CheckSavedSearches(ctx context.Context, dryRun bool) (*savedsearch.CheckReport, error) {
	searches, err := s.searchRepo.ListActive(ctx)
	if err != nil {
		return nil, errx.Wrap(err, "failed to list active saved searches", errx.TypeInternal)
	}

	population, err := s.candidateRepo.ListJobSeekers(ctx)
	if err != nil {
		return nil, errx.Wrap(err, "failed to load candidates", errx.TypeInternal)
	}

	report := &savedsearch.CheckReport{DryRun: dryRun, Results: []savedsearch.CheckResult{}}
	for i := range searches {
		if err := ctx.Err(); err != nil {
			return report, err
		}

		search := &searches[i]
		report.Checked++

		now := s.now()
		matches := savedsearch.MatchCandidates(search, population)
		s.observeMatches("batch", len(matches))

		delta := savedsearch.NewMatchesSince(search, matches, now)
		if len(delta) == 0 {
			continue
		}

		result := savedsearch.CheckResult{
			SearchID:   search.ID,
			SearchName: search.Name,
			Recruiter:  search.DisplayRecruiter(),
			NewMatches: len(delta),
		}

		if dryRun {
			s.observeSkipped()
			report.Total += len(delta)
			report.Results = append(report.Results, result)
			continue
		}

		if err := s.deliver(ctx, savedsearch.NewNotification(search, delta, now)); err != nil {
			logx.Warnw("saved search delivery failed", "search_id", search.ID, "error", err)
			result.Error = err.Error()
			report.Failures++
			report.Results = append(report.Results, result)
			continue
		}

		if err := s.commit(ctx, search, now); err != nil {
			logx.Errorw("saved search commit failed", "search_id", search.ID, "error", err)
			result.Error = err.Error()
			report.Failures++
			report.Results = append(report.Results, result)
			continue
		}

		result.Delivered = true
		report.Total += len(delta)
		if s.metrics != nil {
			s.metrics.NotificationsSent.Inc()
		}
		report.Results = append(report.Results, result)

		logx.Infow("saved search notified",
			"search_id", search.ID,
			"recruiter", result.Recruiter,
			"new_matches", result.NewMatches,
		)
	}

	return report, nil
}

// ============================================================================
// Helpers
// ============================================================================

func canManage(role kernel.Role) bool {
	return role.IsRecruiter() || role.IsAdministrator()
}

func (s *SavedSearchService) owned(ctx context.Context, requesterID kernel.UserID, role kernel.Role, id kernel.SavedSearchID) (*savedsearch.SavedSearch, error) {
	if !canManage(role) {
		return nil, savedsearch.ErrOnlyRecruiters().WithDetail("role", role)
	}

	search, err := s.searchRepo.GetByID(ctx, id)
	if err != nil {
		if errx.IsType(err, errx.TypeNotFound) {
			return nil, savedsearch.ErrSavedSearchNotFound().WithDetail("search_id", id.String())
		}
		return nil, errx.Wrap(err, "failed to get saved search", errx.TypeInternal)
	}

	if !search.IsOwnedBy(requesterID) && !role.IsAdministrator() {
		return nil, savedsearch.ErrInsufficientPermissions().WithDetail("search_id", id.String())
	}
	return search, nil
}

func (s *SavedSearchService) ensureNameFree(ctx context.Context, recruiterID kernel.UserID, name string, exclude kernel.SavedSearchID) error {
	exists, err := s.searchRepo.ExistsByRecruiterAndName(ctx, recruiterID, name, exclude)
	if err != nil {
		return errx.Wrap(err, "failed to check saved search name", errx.TypeInternal)
	}
	if exists {
		return savedsearch.ErrNameTaken().WithDetail("name", name)
	}
	return nil
}

func (s *SavedSearchService) match(ctx context.Context, search *savedsearch.SavedSearch, mode string) ([]candidate.Candidate, error) {
	population, err := s.candidateRepo.ListJobSeekers(ctx)
	if err != nil {
		return nil, errx.Wrap(err, "failed to load candidates", errx.TypeInternal)
	}

	matches := savedsearch.MatchCandidates(search, population)
	s.observeMatches(mode, len(matches))
	return matches, nil
}

func (s *SavedSearchService) commit(ctx context.Context, search *savedsearch.SavedSearch, now time.Time) error {
	if err := s.searchRepo.CommitNotified(ctx, search.ID, now); err != nil {
		if errx.IsType(err, errx.TypeNotFound) {
			return err
		}
		return errx.Wrap(err, "failed to commit notification", errx.TypeInternal)
	}
	search.MarkNotified(now)
	return nil
}

func (s *SavedSearchService) deliver(ctx context.Context, n savedsearch.Notification) error {
	if s.notifier == nil {
		return nil
	}
	if err := s.notifier.Notify(ctx, n); err != nil {
		if s.metrics != nil {
			s.metrics.NotificationsFailed.Inc()
		}
		return errx.Wrap(err, "failed to deliver notification", errx.TypeExternal)
	}
	return nil
}

func matchesResponse(search *savedsearch.SavedSearch, matches []candidate.Candidate) *savedsearch.MatchesResponse {
	return &savedsearch.MatchesResponse{
		SearchID:     search.ID,
		Candidates:   candidate.Summaries(matches),
		Count:        len(matches),
		LastNotified: search.LastNotified,
	}
}

func (s *SavedSearchService) observeMatches(mode string, n int) {
	if s.metrics == nil {
		return
	}
	s.metrics.CandidateMatches.WithLabelValues(mode).Observe(float64(n))
}

func (s *SavedSearchService) observeSkipped() {
	if s.metrics == nil {
		return
	}
	s.metrics.NotificationsSkipped.Inc()
}
