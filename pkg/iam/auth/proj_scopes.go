package auth

import (
	"slices"
	"strings"

	"github.com/Abraxas-365/hirematch/pkg/kernel"
)

// ============================================================================
// DOMAIN-SPECIFIC SCOPES - Matching & Pipeline
// ============================================================================

const (
	ScopeAll = "*"

	// Job scopes
	ScopeJobsAll       = "jobs:*"
	ScopeJobsRead      = "jobs:read"
	ScopeJobsRecommend = "jobs:recommend" // Personal recommendations

	// Application scopes
	ScopeApplicationsAll    = "applications:*"
	ScopeApplicationsApply  = "applications:apply"  // Submit own applications
	ScopeApplicationsRead   = "applications:read"   // Read own applications
	ScopeApplicationsManage = "applications:manage" // Move applications through the pipeline

	// Saved search scopes
	ScopeSavedSearchesAll   = "saved_searches:*"
	ScopeSavedSearchesRead  = "saved_searches:read"
	ScopeSavedSearchesWrite = "saved_searches:write"

	// Candidate scopes
	ScopeCandidatesRead = "candidates:read"
)

// RoleScopes maps each account role to the scopes it carries
var RoleScopes = map[kernel.Role][]string{
	kernel.RoleJobSeeker: {
		ScopeJobsRead,
		ScopeJobsRecommend,
		ScopeApplicationsApply,
		ScopeApplicationsRead,
	},
	kernel.RoleRecruiter: {
		ScopeJobsRead,
		ScopeApplicationsManage,
		ScopeSavedSearchesAll,
		ScopeCandidatesRead,
	},
	kernel.RoleAdministrator: {
		ScopeAll,
	},
}

// DomainScopeDescriptions provides descriptions for domain scopes
var DomainScopeDescriptions = map[string]string{
	ScopeAll:                "Full access",
	ScopeJobsAll:            "Full access to jobs",
	ScopeJobsRead:           "Search jobs and view the map",
	ScopeJobsRecommend:      "Receive job recommendations",
	ScopeApplicationsAll:    "Full access to applications",
	ScopeApplicationsApply:  "Apply to jobs",
	ScopeApplicationsRead:   "View own applications",
	ScopeApplicationsManage: "Move applications through the hiring pipeline",
	ScopeSavedSearchesAll:   "Full access to saved candidate searches",
	ScopeSavedSearchesRead:  "Run saved candidate searches",
	ScopeSavedSearchesWrite: "Create and edit saved candidate searches",
	ScopeCandidatesRead:     "View candidate profiles",
}

// ScopesForRole returns the scopes granted to role
func ScopesForRole(role kernel.Role) []string {
	return slices.Clone(RoleScopes[role])
}

// HasScope reports whether granted satisfies required, honoring "*" and "resource:*"
func HasScope(granted []string, required string) bool {
	for _, g := range granted {
		if g == ScopeAll || g == required {
			return true
		}
		if prefix, ok := strings.CutSuffix(g, ":*"); ok && strings.HasPrefix(required, prefix+":") {
			return true
		}
	}
	return false
}
