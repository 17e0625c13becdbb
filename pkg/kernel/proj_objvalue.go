package kernel

type JobTitle string

type JobDescription string

type JobRequirements string

type CompanyName string

type SkillName string

// ObjectKey is the storage key of an uploaded file
type ObjectKey string

func (k ObjectKey) String() string { return string(k) }
func (k ObjectKey) IsEmpty() bool  { return string(k) == "" }
