package applicationapi

import (
	"errors"
	"io"

	"github.com/Abraxas-365/hirematch/pkg/iam/auth"
	"github.com/Abraxas-365/hirematch/pkg/kernel"
	"github.com/Abraxas-365/hirematch/recruitment/application"
	"github.com/Abraxas-365/hirematch/recruitment/application/applicationsrv"
	"github.com/gofiber/fiber/v2"
	"github.com/valyala/fasthttp"
)

// Handlers provides HTTP handlers for application operations
type Handlers struct {
	service *applicationsrv.ApplicationService
}

// NewHandlers creates a new application handlers instance
func NewHandlers(service *applicationsrv.ApplicationService) *Handlers {
	return &Handlers{
		service: service,
	}
}

// Apply submits an application. Accepts JSON or a multipart form with an
// optional "resume" file.
// POST /api/applications
func (h *Handlers) Apply(c *fiber.Ctx) error {
	authContext, ok := auth.GetAuthContext(c)
	if !ok {
		return application.ErrInsufficientPermissions()
	}

	var req application.ApplyRequest
	if err := c.BodyParser(&req); err != nil {
		return application.ErrInvalidRequest().WithDetail("parse_error", err.Error())
	}

	resume, err := readResume(c)
	if err != nil {
		return err
	}

	resp, err := h.service.Apply(c.Context(), *authContext.UserID, authContext.Role, req, resume)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(resp)
}

func readResume(c *fiber.Ctx) (*application.ResumeUpload, error) {
	file, err := c.FormFile("resume")
	if err != nil {
		if errors.Is(err, fasthttp.ErrMissingFile) || errors.Is(err, fasthttp.ErrNoMultipartForm) {
			return nil, nil
		}
		return nil, application.ErrInvalidRequest().WithDetail("file_error", err.Error())
	}

	f, err := file.Open()
	if err != nil {
		return nil, application.ErrInvalidRequest().WithDetail("file_open_error", err.Error())
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, application.ErrInvalidRequest().WithDetail("file_read_error", err.Error())
	}

	return &application.ResumeUpload{
		FileName: file.Filename,
		Data:     data,
	}, nil
}

// MyApplications lists the requester's applications
// GET /api/applications/mine
func (h *Handlers) MyApplications(c *fiber.Ctx) error {
	authContext, ok := auth.GetAuthContext(c)
	if !ok {
		return application.ErrInsufficientPermissions()
	}

	apps, err := h.service.MyApplications(c.Context(), *authContext.UserID)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"applications": apps,
		"count":        len(apps),
	})
}

// Board returns the pipeline board of a job
// GET /api/applications/by-job/:jobId/board
func (h *Handlers) Board(c *fiber.Ctx) error {
	authContext, ok := auth.GetAuthContext(c)
	if !ok {
		return application.ErrInsufficientPermissions()
	}

	jobID := kernel.JobID(c.Params("jobId"))
	if jobID.IsEmpty() {
		return application.ErrInvalidRequest().WithDetail("job_id", "missing or empty")
	}

	board, err := h.service.Board(c.Context(), *authContext.UserID, authContext.Role, jobID)
	if err != nil {
		return err
	}

	return c.JSON(board)
}

// UpdateStatus moves an application to another stage
// POST /api/applications/:id/status
func (h *Handlers) UpdateStatus(c *fiber.Ctx) error {
	authContext, ok := auth.GetAuthContext(c)
	if !ok {
		return application.ErrInsufficientPermissions()
	}

	applicationID := kernel.ApplicationID(c.Params("id"))
	if applicationID == "" {
		return application.ErrApplicationNotFound().WithDetail("id", "missing or empty")
	}

	var req application.UpdateStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return application.ErrInvalidRequest().WithDetail("parse_error", err.Error())
	}

	resp, err := h.service.TransitionApplication(c.Context(), *authContext.UserID, authContext.Role, applicationID, req.Status)
	if err != nil {
		return err
	}

	return c.JSON(resp)
}

// RegisterRoutes registers all application routes
func RegisterRoutes(app *fiber.App, handlers *Handlers, authMiddleware *auth.UnifiedAuthMiddleware) {
	api := app.Group("/api/applications")

	api.Post("/",
		authMiddleware.Authenticate(),
		authMiddleware.RequireScope(auth.ScopeApplicationsApply),
		handlers.Apply,
	)

	api.Get("/mine",
		authMiddleware.Authenticate(),
		authMiddleware.RequireScope(auth.ScopeApplicationsRead),
		handlers.MyApplications,
	)

	api.Get("/by-job/:jobId/board",
		authMiddleware.Authenticate(),
		authMiddleware.RequireScope(auth.ScopeApplicationsManage),
		handlers.Board,
	)

	api.Post("/:id/status",
		authMiddleware.Authenticate(),
		authMiddleware.RequireScope(auth.ScopeApplicationsManage),
		handlers.UpdateStatus,
	)
}
