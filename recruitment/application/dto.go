package application

import (
	"time"

	"github.com/Abraxas-365/hirematch/pkg/kernel"
)

// ApplyRequest - DTO for applying to a job
type ApplyRequest struct {
	JobID kernel.JobID `json:"job_id" form:"job_id" validate:"required"`
	Note  string       `json:"note" form:"note" validate:"max=5000"`
}

// ResumeUpload is an optional resume attached to an application
type ResumeUpload struct {
	FileName string
	Data     []byte
}

// UpdateStatusRequest - DTO for moving an application through the pipeline
type UpdateStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

// ApplicationResponse - DTO for returning application data
type ApplicationResponse struct {
	ID          kernel.ApplicationID `json:"id"`
	JobID       kernel.JobID         `json:"job_id"`
	ApplicantID kernel.UserID        `json:"applicant_id"`
	Note        string               `json:"note"`
	HasResume   bool                 `json:"has_resume"`
	Status      ApplicationStatus    `json:"status"`
	AppliedAt   time.Time            `json:"applied_at"`
	UpdatedAt   time.Time            `json:"updated_at"`
}

// ToResponse converts the entity to its DTO. Unknown statuses are reported as NEW.
func (a *Application) ToResponse() ApplicationResponse {
	return ApplicationResponse{
		ID:          a.ID,
		JobID:       a.JobID,
		ApplicantID: a.ApplicantID,
		Note:        a.Note,
		HasResume:   a.HasResume(),
		Status:      a.Status.Normalize(),
		AppliedAt:   a.AppliedAt,
		UpdatedAt:   a.UpdatedAt,
	}
}

// BoardColumnResponse - one stage of the pipeline board
type BoardColumnResponse struct {
	Status       ApplicationStatus     `json:"status"`
	Count        int                   `json:"count"`
	Applications []ApplicationResponse `json:"applications"`
}

// BoardResponse - DTO for the pipeline board of a job
type BoardResponse struct {
	JobID   kernel.JobID          `json:"job_id"`
	Total   int                   `json:"total"`
	Columns []BoardColumnResponse `json:"columns"`
}

// NewBoardResponse renders a board
func NewBoardResponse(jobID kernel.JobID, board Board) BoardResponse {
	cols := make([]BoardColumnResponse, 0, len(board))
	for _, c := range board {
		apps := make([]ApplicationResponse, 0, len(c.Applications))
		for i := range c.Applications {
			apps = append(apps, c.Applications[i].ToResponse())
		}
		cols = append(cols, BoardColumnResponse{Status: c.Status, Count: c.Count, Applications: apps})
	}
	return BoardResponse{JobID: jobID, Total: board.Total(), Columns: cols}
}
