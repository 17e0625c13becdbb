package jobapi

import (
	"github.com/Abraxas-365/hirematch/pkg/iam/auth"
	"github.com/Abraxas-365/hirematch/pkg/kernel"
	"github.com/Abraxas-365/hirematch/recruitment/job"
	"github.com/Abraxas-365/hirematch/recruitment/job/jobsrv"
	"github.com/gofiber/fiber/v2"
)

// Job lists are paginated 10 per page unless the client asks otherwise
const defaultPageSize = 10

// Handlers provides HTTP handlers for job operations
type Handlers struct {
	service *jobsrv.JobService
}

// NewHandlers creates a new job handlers instance
func NewHandlers(service *jobsrv.JobService) *Handlers {
	return &Handlers{
		service: service,
	}
}

// SearchJobs searches active jobs by the list filters and optional radius
// GET /api/jobs/search
func (h *Handlers) SearchJobs(c *fiber.Ctx) error {
	var req job.SearchJobsRequest
	if err := c.QueryParser(&req); err != nil {
		return job.ErrInvalidRequest().WithDetail("parse_error", err.Error())
	}
	req.Pagination = parsePaginationOptions(c)

	jobs, err := h.service.SearchJobs(c.Context(), req)
	if err != nil {
		return err
	}

	return c.JSON(jobs)
}

// GetJobByID retrieves an active job by ID
// GET /api/jobs/:id
func (h *Handlers) GetJobByID(c *fiber.Ctx) error {
	jobID := kernel.JobID(c.Params("id"))
	if jobID.IsEmpty() {
		return job.ErrJobNotFound().WithDetail("id", "missing or empty")
	}

	jobResp, err := h.service.GetJobByID(c.Context(), jobID)
	if err != nil {
		return err
	}

	return c.JSON(jobResp)
}

// JobMap returns map markers, optionally restricted to a radius
// GET /api/jobs/map?lat=&lng=&radius=
func (h *Handlers) JobMap(c *fiber.Ctx) error {
	proximity := job.ParseProximityQuery(c.Query("lat"), c.Query("lng"), c.Query("radius"))

	resp, err := h.service.JobMap(c.Context(), proximity)
	if err != nil {
		return err
	}

	return c.JSON(resp)
}

// Recommendations returns personal recommendations for the job seeker
// GET /api/jobs/recommendations
func (h *Handlers) Recommendations(c *fiber.Ctx) error {
	authContext, ok := auth.GetAuthContext(c)
	if !ok {
		return job.ErrInsufficientPermissions()
	}

	resp, err := h.service.RecommendJobs(c.Context(), *authContext.UserID)
	if err != nil {
		return err
	}

	return c.JSON(resp)
}

func parsePaginationOptions(c *fiber.Ctx) kernel.PaginationOptions {
	return kernel.PaginationOptions{
		Page:     c.QueryInt("page", 1),
		PageSize: c.QueryInt("page_size", defaultPageSize),
	}.Normalize(defaultPageSize, 100)
}

// RegisterRoutes registers all job routes
func RegisterRoutes(app *fiber.App, handlers *Handlers, authMiddleware *auth.UnifiedAuthMiddleware) {
	api := app.Group("/api/jobs")

	api.Get("/search",
		authMiddleware.Authenticate(),
		authMiddleware.RequireScope(auth.ScopeJobsRead),
		handlers.SearchJobs,
	)

	api.Get("/map",
		authMiddleware.Authenticate(),
		authMiddleware.RequireScope(auth.ScopeJobsRead),
		handlers.JobMap,
	)

	api.Get("/recommendations",
		authMiddleware.Authenticate(),
		authMiddleware.RequireScope(auth.ScopeJobsRecommend),
		handlers.Recommendations,
	)

	api.Get("/:id",
		authMiddleware.Authenticate(),
		authMiddleware.RequireScope(auth.ScopeJobsRead),
		handlers.GetJobByID,
	)
}
