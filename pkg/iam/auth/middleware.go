package auth

import (
	"slices"
	"strings"

	"github.com/Abraxas-365/hirematch/pkg/kernel"
	"github.com/gofiber/fiber/v2"
)

const authContextKey = "auth_context"

// AuthContext is the authenticated identity attached to a request
type AuthContext struct {
	UserID *kernel.UserID
	Role   kernel.Role
	Scopes []string
}

// HasAnyScope reports whether the requester holds one of scopes
func (a *AuthContext) HasAnyScope(scopes ...string) bool {
	for _, s := range scopes {
		if HasScope(a.Scopes, s) {
			return true
		}
	}
	return false
}

// UnifiedAuthMiddleware authenticates bearer tokens and enforces scopes
type UnifiedAuthMiddleware struct {
	tokens TokenService
}

// NewUnifiedAuthMiddleware creates the middleware
func NewUnifiedAuthMiddleware(tokens TokenService) *UnifiedAuthMiddleware {
	return &UnifiedAuthMiddleware{tokens: tokens}
}

// Authenticate validates the bearer token and stores the AuthContext
func (m *UnifiedAuthMiddleware) Authenticate() fiber.Handler {
	return func(c *fiber.Ctx) error {
		header := c.Get(fiber.HeaderAuthorization)
		if header == "" {
			return ErrMissingToken()
		}

		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			return ErrInvalidToken().WithDetail("reason", "invalid authorization format")
		}

		claims, err := m.tokens.ValidateAccessToken(token)
		if err != nil {
			return err
		}

		userID := claims.UserID
		scopes := claims.Scopes
		if len(scopes) == 0 {
			scopes = ScopesForRole(claims.Role)
		}

		c.Locals(authContextKey, &AuthContext{
			UserID: &userID,
			Role:   claims.Role,
			Scopes: scopes,
		})
		return c.Next()
	}
}

// RequireScope rejects requests lacking scope
func (m *UnifiedAuthMiddleware) RequireScope(scope string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ac, ok := GetAuthContext(c)
		if !ok {
			return ErrMissingToken()
		}
		if !ac.HasAnyScope(scope) {
			return ErrInsufficientScope().WithDetail("required_scope", scope)
		}
		return c.Next()
	}
}

// RequireRole rejects requests whose role is not listed
func (m *UnifiedAuthMiddleware) RequireRole(roles ...kernel.Role) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ac, ok := GetAuthContext(c)
		if !ok {
			return ErrMissingToken()
		}
		if !slices.Contains(roles, ac.Role) {
			return ErrInsufficientScope().WithDetail("role", ac.Role)
		}
		return c.Next()
	}
}

// GetAuthContext extracts the AuthContext stored by Authenticate
func GetAuthContext(c *fiber.Ctx) (*AuthContext, bool) {
	ac, ok := c.Locals(authContextKey).(*AuthContext)
	if !ok || ac == nil || ac.UserID == nil {
		return nil, false
	}
	return ac, true
}
