package savedsearchapi

import (
	"github.com/Abraxas-365/hirematch/pkg/iam/auth"
	"github.com/Abraxas-365/hirematch/pkg/kernel"
	"github.com/Abraxas-365/hirematch/recruitment/savedsearch"
	"github.com/Abraxas-365/hirematch/recruitment/savedsearch/savedsearchsrv"
	"github.com/gofiber/fiber/v2"
)

// Handlers provides HTTP handlers for saved search operations
type Handlers struct {
	service *savedsearchsrv.SavedSearchService
}

// NewHandlers creates a new saved search handlers instance
func NewHandlers(service *savedsearchsrv.SavedSearchService) *Handlers {
	return &Handlers{
		service: service,
	}
}

func requester(c *fiber.Ctx) (*auth.AuthContext, error) {
	authContext, ok := auth.GetAuthContext(c)
	if !ok || authContext.UserID == nil {
		return nil, savedsearch.ErrInsufficientPermissions()
	}
	return authContext, nil
}

func searchID(c *fiber.Ctx) (kernel.SavedSearchID, error) {
	id := kernel.SavedSearchID(c.Params("id"))
	if id.IsEmpty() {
		return "", savedsearch.ErrSavedSearchNotFound().WithDetail("id", "missing or empty")
	}
	return id, nil
}

// CreateSavedSearch saves new criteria
// POST /api/saved-searches
func (h *Handlers) CreateSavedSearch(c *fiber.Ctx) error {
	authContext, err := requester(c)
	if err != nil {
		return err
	}

	var req savedsearch.CreateSavedSearchRequest
	if err := c.BodyParser(&req); err != nil {
		return savedsearch.ErrInvalidRequest().WithDetail("parse_error", err.Error())
	}

	resp, err := h.service.CreateSavedSearch(c.Context(), *authContext.UserID, authContext.Role, req)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(resp)
}

// ListSavedSearches lists the requester's searches
// GET /api/saved-searches
func (h *Handlers) ListSavedSearches(c *fiber.Ctx) error {
	authContext, err := requester(c)
	if err != nil {
		return err
	}

	searches, err := h.service.ListSavedSearches(c.Context(), *authContext.UserID, authContext.Role)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"saved_searches": searches,
		"count":          len(searches),
	})
}

// GetSavedSearch retrieves one search
// GET /api/saved-searches/:id
func (h *Handlers) GetSavedSearch(c *fiber.Ctx) error {
	authContext, err := requester(c)
	if err != nil {
		return err
	}
	id, err := searchID(c)
	if err != nil {
		return err
	}

	resp, err := h.service.GetSavedSearch(c.Context(), *authContext.UserID, authContext.Role, id)
	if err != nil {
		return err
	}

	return c.JSON(resp)
}

// UpdateSavedSearch edits a search
// PUT /api/saved-searches/:id
func (h *Handlers) UpdateSavedSearch(c *fiber.Ctx) error {
	authContext, err := requester(c)
	if err != nil {
		return err
	}
	id, err := searchID(c)
	if err != nil {
		return err
	}

	var req savedsearch.UpdateSavedSearchRequest
	if err := c.BodyParser(&req); err != nil {
		return savedsearch.ErrInvalidRequest().WithDetail("parse_error", err.Error())
	}

	resp, err := h.service.UpdateSavedSearch(c.Context(), *authContext.UserID, authContext.Role, id, req)
	if err != nil {
		return err
	}

	return c.JSON(resp)
}

// ToggleSavedSearch flips the active flag
// POST /api/saved-searches/:id/toggle
func (h *Handlers) ToggleSavedSearch(c *fiber.Ctx) error {
	authContext, err := requester(c)
	if err != nil {
		return err
	}
	id, err := searchID(c)
	if err != nil {
		return err
	}

	resp, err := h.service.ToggleSavedSearch(c.Context(), *authContext.UserID, authContext.Role, id)
	if err != nil {
		return err
	}

	return c.JSON(resp)
}

// DeleteSavedSearch removes a search
// DELETE /api/saved-searches/:id
func (h *Handlers) DeleteSavedSearch(c *fiber.Ctx) error {
	authContext, err := requester(c)
	if err != nil {
		return err
	}
	id, err := searchID(c)
	if err != nil {
		return err
	}

	if err := h.service.DeleteSavedSearch(c.Context(), *authContext.UserID, authContext.Role, id); err != nil {
		return err
	}

	return c.SendStatus(fiber.StatusNoContent)
}

// Matches runs the search
// GET /api/saved-searches/:id/matches
func (h *Handlers) Matches(c *fiber.Ctx) error {
	authContext, err := requester(c)
	if err != nil {
		return err
	}
	id, err := searchID(c)
	if err != nil {
		return err
	}

	resp, err := h.service.RunSavedSearch(c.Context(), *authContext.UserID, authContext.Role, id)
	if err != nil {
		return err
	}

	return c.JSON(resp)
}

// NewMatches lists matches since the last notification without committing
// GET /api/saved-searches/:id/new-matches
func (h *Handlers) NewMatches(c *fiber.Ctx) error {
	authContext, err := requester(c)
	if err != nil {
		return err
	}
	id, err := searchID(c)
	if err != nil {
		return err
	}

	resp, err := h.service.NewMatches(c.Context(), *authContext.UserID, authContext.Role, id)
	if err != nil {
		return err
	}

	return c.JSON(resp)
}

// MarkNotified commits the notification timestamp
// POST /api/saved-searches/:id/notified
func (h *Handlers) MarkNotified(c *fiber.Ctx) error {
	authContext, err := requester(c)
	if err != nil {
		return err
	}
	id, err := searchID(c)
	if err != nil {
		return err
	}

	resp, err := h.service.CommitNotified(c.Context(), *authContext.UserID, authContext.Role, id)
	if err != nil {
		return err
	}

	return c.JSON(resp)
}

// RegisterRoutes registers all saved search routes
func RegisterRoutes(app *fiber.App, handlers *Handlers, authMiddleware *auth.UnifiedAuthMiddleware) {
	api := app.Group("/api/saved-searches",
		authMiddleware.Authenticate(),
		authMiddleware.RequireRole(kernel.RoleRecruiter, kernel.RoleAdministrator),
	)

	read := authMiddleware.RequireScope(auth.ScopeSavedSearchesRead)
	write := authMiddleware.RequireScope(auth.ScopeSavedSearchesWrite)

	api.Post("/", write, handlers.CreateSavedSearch)
	api.Get("/", read, handlers.ListSavedSearches)
	api.Get("/:id", read, handlers.GetSavedSearch)
	api.Put("/:id", write, handlers.UpdateSavedSearch)
	api.Post("/:id/toggle", write, handlers.ToggleSavedSearch)
	api.Delete("/:id", write, handlers.DeleteSavedSearch)

	api.Get("/:id/matches",
		read,
		authMiddleware.RequireScope(auth.ScopeCandidatesRead),
		handlers.Matches,
	)
	api.Get("/:id/new-matches",
		read,
		authMiddleware.RequireScope(auth.ScopeCandidatesRead),
		handlers.NewMatches,
	)
	api.Post("/:id/notified", write, handlers.MarkNotified)
}
