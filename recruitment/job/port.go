package job

import (
	"context"

	"github.com/Abraxas-365/hirematch/pkg/kernel"
)

type Repository interface {
	// GetByID retrieves a job by ID
	GetByID(ctx context.Context, id kernel.JobID) (*Job, error)

	// Search retrieves active jobs matching the filters, newest first
	Search(ctx context.Context, filter SearchFilter, pagination kernel.PaginationOptions) (*kernel.Paginated[Job], error)

	// ListActiveWithCoordinates retrieves active jobs that carry both coordinates
	ListActiveWithCoordinates(ctx context.Context, filter SearchFilter) ([]Job, error)

	// ListActiveMentioning retrieves active jobs whose description or requirements
	// contain any of the terms, excluding the given ids, newest first
	ListActiveMentioning(ctx context.Context, terms []string, exclude []kernel.JobID, limit int) ([]Job, error)
}
