package applicationsrv

import (
	"context"
	"path"
	"strings"
	"time"

	"github.com/Abraxas-365/hirematch/internal/metrics"
	"github.com/Abraxas-365/hirematch/pkg/errx"
	"github.com/Abraxas-365/hirematch/pkg/fsx"
	"github.com/Abraxas-365/hirematch/pkg/kernel"
	"github.com/Abraxas-365/hirematch/pkg/logx"
	"github.com/Abraxas-365/hirematch/pkg/validatex"
	"github.com/Abraxas-365/hirematch/recruitment/application"
	"github.com/Abraxas-365/hirematch/recruitment/job"
	"github.com/google/uuid"
)

// DefaultMaxResumeBytes caps uploads when no limit is configured
const DefaultMaxResumeBytes = 10 * 1024 * 1024

var resumeExtensions = map[string]bool{
	".pdf":  true,
	".doc":  true,
	".docx": true,
	".txt":  true,
}

// ApplicationService provides business operations for applications
type ApplicationService struct {
	applicationRepo application.Repository
	jobRepo         job.Repository
	fileSystem      fsx.FileSystem
	publisher       application.EventPublisher
	policy          application.TransitionPolicy
	metrics         *metrics.Collector
	maxResumeBytes  int64
	now             func() time.Time
}

// NewApplicationService creates a new instance of the application service
func NewApplicationService(
	applicationRepo application.Repository,
	jobRepo job.Repository,
	fileSystem fsx.FileSystem,
	publisher application.EventPublisher,
	policy application.TransitionPolicy,
	collector *metrics.Collector,
	maxResumeBytes int64,
) *ApplicationService {
	if policy == nil {
		policy = application.PermissivePolicy{}
	}
	if maxResumeBytes <= 0 {
		maxResumeBytes = DefaultMaxResumeBytes
	}
	return &ApplicationService{
		applicationRepo: applicationRepo,
		jobRepo:         jobRepo,
		fileSystem:      fileSystem,
		publisher:       publisher,
		policy:          policy,
		metrics:         collector,
		maxResumeBytes:  maxResumeBytes,
		now:             time.Now,
	}
}

// WithClock replaces the time source
func (s *ApplicationService) WithClock(now func() time.Time) *ApplicationService {
	s.now = now
	return s
}

// Policy returns the transition policy in force
func (s *ApplicationService) Policy() application.TransitionPolicy {
	return s.policy
}

// ============================================================================
// Applying
// ============================================================================

// Apply submits an application for a job on behalf of a job seeker
func (s *ApplicationService) Apply(
	ctx context.Context,
	requesterID kernel.UserID,
	role kernel.Role,
	req application.ApplyRequest,
	resume *application.ResumeUpload,
) (*application.ApplicationResponse, error) {
	if err := validatex.Struct(req); err != nil {
		return nil, err
	}

	if !role.IsJobSeeker() {
		return nil, application.ErrOnlyJobSeekersApply().WithDetail("role", role)
	}

	jobEntity, err := s.jobRepo.GetByID(ctx, req.JobID)
	if err != nil {
		if errx.IsType(err, errx.TypeNotFound) {
			return nil, job.ErrJobNotFound().WithDetail("job_id", req.JobID.String())
		}
		return nil, errx.Wrap(err, "failed to get job", errx.TypeInternal)
	}
	if !jobEntity.IsActive {
		return nil, application.ErrJobNotActive().WithDetail("job_id", req.JobID.String())
	}

	exists, err := s.applicationRepo.ExistsByJobAndApplicant(ctx, req.JobID, requesterID)
	if err != nil {
		return nil, errx.Wrap(err, "failed to check duplicate application", errx.TypeInternal)
	}
	if exists {
		return nil, application.ErrApplicationAlreadyExists().
			WithDetail("job_id", req.JobID.String())
	}

	now := s.now()
	newApplication := &application.Application{
		ID:          kernel.NewApplicationID(uuid.NewString()),
		JobID:       req.JobID,
		ApplicantID: requesterID,
		Note:        strings.TrimSpace(req.Note),
		Status:      application.StatusNew,
		AppliedAt:   now,
		UpdatedAt:   now,
	}

	if resume != nil && len(resume.Data) > 0 {
		key, err := s.storeResume(ctx, newApplication.ID, resume)
		if err != nil {
			return nil, err
		}
		newApplication.ResumeKey = key
	}

	if err := s.applicationRepo.Create(ctx, newApplication); err != nil {
		s.discardResume(ctx, newApplication.ResumeKey)
		if errx.IsCode(err, application.CodeApplicationAlreadyExists) {
			return nil, err
		}
		return nil, errx.Wrap(err, "failed to create application", errx.TypeInternal)
	}

	logx.Infow("application submitted",
		"application_id", newApplication.ID,
		"job_id", newApplication.JobID,
		"has_resume", newApplication.HasResume(),
	)

	resp := newApplication.ToResponse()
	return &resp, nil
}

func (s *ApplicationService) storeResume(ctx context.Context, id kernel.ApplicationID, resume *application.ResumeUpload) (kernel.ObjectKey, error) {
	if int64(len(resume.Data)) > s.maxResumeBytes {
		return "", application.ErrFileSizeTooLarge().
			WithDetail("file_size", len(resume.Data)).
			WithDetail("max_size", s.maxResumeBytes)
	}

	name := fsx.CleanName(resume.FileName)
	if name == "" || !resumeExtensions[strings.ToLower(path.Ext(name))] {
		return "", application.ErrInvalidFileType().WithDetail("file_name", resume.FileName)
	}

	key := s.fileSystem.Join("resumes", id.String(), name)
	if err := s.fileSystem.WriteFile(ctx, key, resume.Data); err != nil {
		return "", errx.Wrap(err, "failed to store resume", errx.TypeExternal)
	}
	return kernel.ObjectKey(key), nil
}

// discardResume removes an uploaded resume whose application was never stored
func (s *ApplicationService) discardResume(ctx context.Context, key kernel.ObjectKey) {
	if key.IsEmpty() {
		return
	}
	if err := s.fileSystem.Remove(ctx, key.String()); err != nil {
		logx.Warnf("failed to remove orphaned resume %s: %v", key, err)
	}
}

// MyApplications lists the applications of the requester, newest first
func (s *ApplicationService) MyApplications(ctx context.Context, requesterID kernel.UserID) ([]application.ApplicationResponse, error) {
	apps, err := s.applicationRepo.ListByApplicant(ctx, requesterID)
	if err != nil {
		return nil, errx.Wrap(err, "failed to list applications", errx.TypeInternal)
	}

	responses := make([]application.ApplicationResponse, 0, len(apps))
	for i := range apps {
		responses = append(responses, apps[i].ToResponse())
	}
	return responses, nil
}

// ============================================================================
// Pipeline
// ============================================================================

// Board groups the applications of a job by pipeline stage
func (s *ApplicationService) Board(ctx context.Context, requesterID kernel.UserID, role kernel.Role, jobID kernel.JobID) (*application.BoardResponse, error) {
	jobEntity, err := s.getJob(ctx, jobID)
	if err != nil {
		return nil, err
	}

	if !application.CanManagePipeline(jobEntity.PostedBy, requesterID, role) {
		return nil, application.ErrInsufficientPermissions().WithDetail("job_id", jobID.String())
	}

	apps, err := s.applicationRepo.ListByJobID(ctx, jobID)
	if err != nil {
		return nil, errx.Wrap(err, "failed to list applications", errx.TypeInternal)
	}

	resp := application.NewBoardResponse(jobID, application.GroupByStatus(apps))
	return &resp, nil
}

// TransitionApplication moves an application to rawTarget. Only the owner of
// the posting or an administrator may do so; the stored record is untouched
// unless every check passes.
func (s *ApplicationService) TransitionApplication(
	ctx context.Context,
	requesterID kernel.UserID,
	role kernel.Role,
	id kernel.ApplicationID,
	rawTarget string,
) (*application.ApplicationResponse, error) {
	app, err := s.applicationRepo.GetByID(ctx, id)
	if err != nil {
		if errx.IsType(err, errx.TypeNotFound) {
			return nil, application.ErrApplicationNotFound().WithDetail("application_id", id.String())
		}
		return nil, errx.Wrap(err, "failed to get application", errx.TypeInternal)
	}

	jobEntity, err := s.getJob(ctx, app.JobID)
	if err != nil {
		return nil, err
	}

	if !application.CanManagePipeline(jobEntity.PostedBy, requesterID, role) {
		s.observeTransition(rawTarget, "forbidden")
		return nil, application.ErrInsufficientPermissions().
			WithDetail("application_id", id.String())
	}

	target, err := application.ParseStatus(rawTarget)
	if err != nil {
		s.observeTransition("unknown", "invalid")
		return nil, err
	}

	from := app.Status.Normalize()
	if err := app.TransitionTo(target, s.policy, s.now()); err != nil {
		s.observeTransition(string(target), "rejected")
		return nil, err
	}

	if err := s.applicationRepo.UpdateStatus(ctx, app.ID, app.Status, app.UpdatedAt); err != nil {
		if errx.IsType(err, errx.TypeNotFound) {
			return nil, err
		}
		return nil, errx.Wrap(err, "failed to update application status", errx.TypeInternal)
	}

	s.observeTransition(string(target), "applied")
	s.publish(ctx, application.StatusChangedEvent{
		ApplicationID: app.ID,
		JobID:         app.JobID,
		ApplicantID:   app.ApplicantID,
		From:          from,
		To:            app.Status,
		ChangedBy:     requesterID,
		ChangedAt:     app.UpdatedAt,
	})

	resp := app.ToResponse()
	return &resp, nil
}

func (s *ApplicationService) getJob(ctx context.Context, jobID kernel.JobID) (*job.Job, error) {
	jobEntity, err := s.jobRepo.GetByID(ctx, jobID)
	if err != nil {
		if errx.IsType(err, errx.TypeNotFound) {
			return nil, job.ErrJobNotFound().WithDetail("job_id", jobID.String())
		}
		return nil, errx.Wrap(err, "failed to get job", errx.TypeInternal)
	}
	return jobEntity, nil
}

// publish is best effort; the transition is already committed
func (s *ApplicationService) publish(ctx context.Context, event application.StatusChangedEvent) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.PublishStatusChanged(ctx, event); err != nil {
		logx.Warnf("failed to publish status change for application %s: %v", event.ApplicationID, err)
	}
}

func (s *ApplicationService) observeTransition(to, result string) {
	if s.metrics == nil {
		return
	}
	s.metrics.Transitions.WithLabelValues(to, result).Inc()
}
