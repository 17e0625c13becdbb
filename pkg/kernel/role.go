package kernel

import "strings"

// Role is the account role of a profile
type Role string

const (
	RoleJobSeeker     Role = "JOB_SEEKER"
	RoleRecruiter     Role = "RECRUITER"
	RoleAdministrator Role = "ADMINISTRATOR"
)

// ParseRole normalizes a stored or claimed role value
func ParseRole(s string) (Role, bool) {
	switch Role(strings.ToUpper(strings.TrimSpace(s))) {
	case RoleJobSeeker:
		return RoleJobSeeker, true
	case RoleRecruiter:
		return RoleRecruiter, true
	case RoleAdministrator:
		return RoleAdministrator, true
	}
	return "", false
}

func (r Role) String() string { return string(r) }

func (r Role) IsJobSeeker() bool     { return r == RoleJobSeeker }
func (r Role) IsRecruiter() bool     { return r == RoleRecruiter }
func (r Role) IsAdministrator() bool { return r == RoleAdministrator }
