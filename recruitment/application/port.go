package application

import (
	"context"
	"time"

	"github.com/Abraxas-365/hirematch/pkg/kernel"
)

type Repository interface {
	// Create stores a new application; a second application for the same
	// job and applicant fails with ErrApplicationAlreadyExists
	Create(ctx context.Context, application *Application) error

	// GetByID retrieves an application by ID
	GetByID(ctx context.Context, id kernel.ApplicationID) (*Application, error)

	// ListByJobID retrieves every application for a job, oldest first
	ListByJobID(ctx context.Context, jobID kernel.JobID) ([]Application, error)

	// ListByApplicant retrieves the applications of a user, newest first
	ListByApplicant(ctx context.Context, applicantID kernel.UserID) ([]Application, error)

	// ListJobIDsByApplicant retrieves the ids of jobs a user applied to
	ListJobIDsByApplicant(ctx context.Context, applicantID kernel.UserID) ([]kernel.JobID, error)

	// ExistsByJobAndApplicant checks if the user already applied to the job
	ExistsByJobAndApplicant(ctx context.Context, jobID kernel.JobID, applicantID kernel.UserID) (bool, error)

	// UpdateStatus sets status and updated_at together in one statement
	UpdateStatus(ctx context.Context, id kernel.ApplicationID, status ApplicationStatus, updatedAt time.Time) error
}

// StatusChangedEvent is published after a transition is committed
type StatusChangedEvent struct {
	ApplicationID kernel.ApplicationID `json:"application_id"`
	JobID         kernel.JobID         `json:"job_id"`
	ApplicantID   kernel.UserID        `json:"applicant_id"`
	From          ApplicationStatus    `json:"from"`
	To            ApplicationStatus    `json:"to"`
	ChangedBy     kernel.UserID        `json:"changed_by"`
	ChangedAt     time.Time            `json:"changed_at"`
}

// EventPublisher broadcasts pipeline events
type EventPublisher interface {
	PublishStatusChanged(ctx context.Context, event StatusChangedEvent) error
}
