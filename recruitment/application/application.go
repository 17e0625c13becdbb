package application

import (
	"slices"
	"time"

	"github.com/Abraxas-365/hirematch/pkg/kernel"
)

// ApplicationStatus is a stage of the hiring pipeline
type ApplicationStatus string

const (
	StatusNew       ApplicationStatus = "NEW"
	StatusScreening ApplicationStatus = "SCREENING"
	StatusInterview ApplicationStatus = "INTERVIEW"
	StatusOffer     ApplicationStatus = "OFFER"
	StatusHired     ApplicationStatus = "HIRED"
	StatusRejected  ApplicationStatus = "REJECTED"
)

// Stages lists every status in pipeline order
var Stages = []ApplicationStatus{
	StatusNew,
	StatusScreening,
	StatusInterview,
	StatusOffer,
	StatusHired,
	StatusRejected,
}

// ParseStatus accepts exactly one of the declared status values
func ParseStatus(raw string) (ApplicationStatus, error) {
	s := ApplicationStatus(raw)
	if !s.IsValid() {
		return "", ErrInvalidStatus().WithDetail("status", raw)
	}
	return s, nil
}

// IsValid checks if the status is one of the declared stages
func (s ApplicationStatus) IsValid() bool {
	return slices.Contains(Stages, s)
}

// Order returns the position of the status in the pipeline, -1 when unknown
func (s ApplicationStatus) Order() int {
	return slices.Index(Stages, s)
}

// IsTerminal checks if the status ends the pipeline
func (s ApplicationStatus) IsTerminal() bool {
	return s == StatusHired || s == StatusRejected
}

// Normalize maps unknown stored values to NEW
func (s ApplicationStatus) Normalize() ApplicationStatus {
	if s.IsValid() {
		return s
	}
	return StatusNew
}

type Application struct {
	ID          kernel.ApplicationID `db:"id" json:"id"`
	JobID       kernel.JobID         `db:"job_id" json:"job_id"`
	ApplicantID kernel.UserID        `db:"applicant_id" json:"applicant_id"`
	Note        string               `db:"note" json:"note"`
	ResumeKey   kernel.ObjectKey     `db:"resume_key" json:"resume_key,omitempty"`
	Status      ApplicationStatus    `db:"status" json:"status"`
	AppliedAt   time.Time            `db:"applied_at" json:"applied_at"`
	UpdatedAt   time.Time            `db:"updated_at" json:"updated_at"`
}

// ============================================================================
// Domain Methods
// ============================================================================

// HasResume checks if a resume was uploaded with the application
func (a *Application) HasResume() bool {
	return !a.ResumeKey.IsEmpty()
}

// TransitionTo validates a move to target under policy and applies it.
// On error the application is left untouched.
func (a *Application) TransitionTo(target ApplicationStatus, policy TransitionPolicy, now time.Time) error {
	if !target.IsValid() {
		return ErrInvalidStatus().WithDetail("status", target)
	}

	current := a.Status.Normalize()
	if !policy.Allows(current, target) {
		return ErrInvalidStatusTransition().
			WithDetail("current_status", current).
			WithDetail("new_status", target).
			WithDetail("policy", policy.Name())
	}

	a.Status = target
	a.UpdatedAt = now
	return nil
}

// CanManagePipeline checks if a requester may move applications of a job
// posted by postedBy: the posting owner or an administrator.
func CanManagePipeline(postedBy, requesterID kernel.UserID, role kernel.Role) bool {
	if role == kernel.RoleAdministrator {
		return true
	}
	return !postedBy.IsEmpty() && postedBy == requesterID
}
