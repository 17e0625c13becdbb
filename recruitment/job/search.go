package job

import (
	"strings"
)

// SalaryBand is one of the fixed salary filters, in thousands
type SalaryBand string

const (
	SalaryBand30To50  SalaryBand = "30-50"
	SalaryBand50To80  SalaryBand = "50-80"
	SalaryBand80To120 SalaryBand = "80-120"
	SalaryBand120Plus SalaryBand = "120+"
	SalaryBandNone    SalaryBand = ""
)

// Bounds returns the inclusive salary bounds of the band. A zero max means open ended.
func (b SalaryBand) Bounds() (minSalary, maxSalary int, ok bool) {
	switch b {
	case SalaryBand30To50:
		return 30000, 50000, true
	case SalaryBand50To80:
		return 50000, 80000, true
	case SalaryBand80To120:
		return 80000, 120000, true
	case SalaryBand120Plus:
		return 120000, 0, true
	}
	return 0, 0, false
}

// ParseSalaryBand returns SalaryBandNone for unknown values
func ParseSalaryBand(s string) SalaryBand {
	b := SalaryBand(strings.TrimSpace(s))
	if _, _, ok := b.Bounds(); ok {
		return b
	}
	return SalaryBandNone
}

// SearchFilter holds the job list filters. Zero values impose no constraint.
type SearchFilter struct {
	Query           string
	Location        string
	JobType         JobType
	ExperienceLevel ExperienceLevel
	Salary          SalaryBand
}

// Matches evaluates the filter against one posting. Inactive postings never match.
func (f SearchFilter) Matches(j *Job) bool {
	if !j.IsActive {
		return false
	}

	if q := strings.ToLower(strings.TrimSpace(f.Query)); q != "" {
		if !containsFold(string(j.Title), q) &&
			!containsFold(string(j.CompanyName), q) &&
			!containsFold(string(j.Description), q) {
			return false
		}
	}

	if loc := strings.ToLower(strings.TrimSpace(f.Location)); loc != "" && !containsFold(j.Location, loc) {
		return false
	}

	if f.JobType != "" && j.JobType != f.JobType {
		return false
	}

	if f.ExperienceLevel != "" && j.ExperienceLevel != f.ExperienceLevel {
		return false
	}

	if lo, hi, ok := f.Salary.Bounds(); ok {
		if j.SalaryMin == nil || *j.SalaryMin < lo {
			return false
		}
		if hi > 0 && (j.SalaryMax == nil || *j.SalaryMax > hi) {
			return false
		}
	}

	return true
}

// containsFold reports whether needle (already lower-cased) occurs in s ignoring case
func containsFold(s, needle string) bool {
	return strings.Contains(strings.ToLower(s), needle)
}
