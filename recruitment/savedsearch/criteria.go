package savedsearch

import (
	"strconv"
	"strings"

	"github.com/Abraxas-365/hirematch/recruitment/candidate"
)

// Field names a criterion of a saved search
type Field string

const (
	FieldSkills          Field = "skills"
	FieldLocation        Field = "location"
	FieldExperienceYears Field = "experience_years"
	FieldEducationLevel  Field = "education_level"
	FieldCurrentCompany  Field = "current_company"
)

// Criterion is one populated field of a saved search. The set of
// implementations is closed to this package.
type Criterion interface {
	Field() Field
	Matches(c *candidate.Candidate) bool
	sealed()
}

// Criteria are ANDed together
type Criteria []Criterion

// Matches checks the candidate against every criterion
func (cs Criteria) Matches(c *candidate.Candidate) bool {
	for _, cr := range cs {
		if !cr.Matches(c) {
			return false
		}
	}
	return true
}

// Fields lists the populated fields in evaluation order
func (cs Criteria) Fields() []Field {
	out := make([]Field, 0, len(cs))
	for _, cr := range cs {
		out = append(out, cr.Field())
	}
	return out
}

// BuildCriteria turns raw field values into criteria, skipping blank fields
// and an unparseable experience value
func BuildCriteria(skills, location, experienceYears, educationLevel, currentCompany string) Criteria {
	var cs Criteria

	if tokens := ParseSkills(skills); len(tokens) > 0 {
		cs = append(cs, SkillsCriterion{Tokens: tokens})
	}
	if loc := normalize(location); loc != "" {
		cs = append(cs, LocationCriterion{Needle: loc})
	}
	if years, err := strconv.Atoi(strings.TrimSpace(experienceYears)); err == nil {
		cs = append(cs, ExperienceCriterion{Years: years})
	}
	if level := normalize(educationLevel); level != "" {
		cs = append(cs, EducationCriterion{Level: level})
	}
	if company := normalize(currentCompany); company != "" {
		cs = append(cs, CurrentCompanyCriterion{Company: company})
	}
	return cs
}

// ParseSkills splits a comma separated list into lowercase, trimmed,
// non-empty tokens
func ParseSkills(raw string) []string {
	var tokens []string
	for _, part := range strings.Split(raw, ",") {
		if t := normalize(part); t != "" {
			tokens = append(tokens, t)
		}
	}
	return tokens
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func containsFold(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), needle)
}

// ============================================================================
// Criterion Variants
// ============================================================================

// SkillsCriterion matches when some candidate skill contains any token
type SkillsCriterion struct {
	Tokens []string
}

func (SkillsCriterion) Field() Field { return FieldSkills }
func (SkillsCriterion) sealed()      {}

func (cr SkillsCriterion) Matches(c *candidate.Candidate) bool {
	for _, s := range c.Skills {
		for _, t := range cr.Tokens {
			if containsFold(string(s.Name), t) {
				return true
			}
		}
	}
	return false
}

// LocationCriterion matches the biography or any experience company
type LocationCriterion struct {
	Needle string
}

func (LocationCriterion) Field() Field { return FieldLocation }
func (LocationCriterion) sealed()      {}

func (cr LocationCriterion) Matches(c *candidate.Candidate) bool {
	if containsFold(c.Bio, cr.Needle) {
		return true
	}
	for _, e := range c.Experiences {
		if containsFold(e.Company, cr.Needle) {
			return true
		}
	}
	return false
}

// ExperienceCriterion requires at least one experience record. Years is
// kept for display only and does not narrow the match.
type ExperienceCriterion struct {
	Years int
}

func (ExperienceCriterion) Field() Field { return FieldExperienceYears }
func (ExperienceCriterion) sealed()      {}

func (ExperienceCriterion) Matches(c *candidate.Candidate) bool {
	return c.HasExperience()
}

// EducationCriterion matches any education degree
type EducationCriterion struct {
	Level string
}

func (EducationCriterion) Field() Field { return FieldEducationLevel }
func (EducationCriterion) sealed()      {}

func (cr EducationCriterion) Matches(c *candidate.Candidate) bool {
	for _, e := range c.Educations {
		if containsFold(e.Degree, cr.Level) {
			return true
		}
	}
	return false
}

// CurrentCompanyCriterion matches a current experience at the company
type CurrentCompanyCriterion struct {
	Company string
}

func (CurrentCompanyCriterion) Field() Field { return FieldCurrentCompany }
func (CurrentCompanyCriterion) sealed()      {}

func (cr CurrentCompanyCriterion) Matches(c *candidate.Candidate) bool {
	for _, e := range c.CurrentExperiences() {
		if containsFold(e.Company, cr.Company) {
			return true
		}
	}
	return false
}
