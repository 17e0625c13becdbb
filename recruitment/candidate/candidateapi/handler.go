package candidateapi

import (
	"github.com/Abraxas-365/hirematch/pkg/iam/auth"
	"github.com/Abraxas-365/hirematch/pkg/kernel"
	"github.com/Abraxas-365/hirematch/recruitment/candidate"
	"github.com/Abraxas-365/hirematch/recruitment/candidate/candidatesrv"
	"github.com/gofiber/fiber/v2"
)

// Handlers provides HTTP handlers for candidate profiles
type Handlers struct {
	service *candidatesrv.CandidateService
}

// NewHandlers creates a new candidate handlers instance
func NewHandlers(service *candidatesrv.CandidateService) *Handlers {
	return &Handlers{
		service: service,
	}
}

// GetMyProfile returns the requester's own profile
// GET /api/candidates/me
func (h *Handlers) GetMyProfile(c *fiber.Ctx) error {
	authContext, ok := auth.GetAuthContext(c)
	if !ok || authContext.UserID == nil {
		return candidate.ErrInsufficientPermissions()
	}

	profile, err := h.service.GetMyProfile(c.Context(), *authContext.UserID)
	if err != nil {
		return err
	}

	return c.JSON(profile)
}

// GetCandidateByID retrieves a job seeker profile
// GET /api/candidates/:id
func (h *Handlers) GetCandidateByID(c *fiber.Ctx) error {
	candidateID := kernel.CandidateID(c.Params("id"))
	if candidateID.IsEmpty() {
		return candidate.ErrCandidateNotFound().WithDetail("id", "missing or empty")
	}

	profile, err := h.service.GetCandidateByID(c.Context(), candidateID)
	if err != nil {
		return err
	}

	return c.JSON(profile)
}

// RegisterRoutes registers all candidate routes
func RegisterRoutes(app *fiber.App, handlers *Handlers, authMiddleware *auth.UnifiedAuthMiddleware) {
	api := app.Group("/api/candidates")

	api.Get("/me",
		authMiddleware.Authenticate(),
		handlers.GetMyProfile,
	)

	api.Get("/:id",
		authMiddleware.Authenticate(),
		authMiddleware.RequireScope(auth.ScopeCandidatesRead),
		handlers.GetCandidateByID,
	)
}
