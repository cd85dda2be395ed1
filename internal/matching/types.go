// Package matching implements the compatibility scoring engine that ranks
// open opportunities for a student profile.
package matching

// StudentProfile is the read-only snapshot of a student used for scoring.
// ExperienceCount and ProjectCount are derived by the data-access layer from
// the student's related records.
type StudentProfile struct {
	ID              string   `json:"id,omitempty"`
	Semester        int      `json:"semester"`
	GPA             float64  `json:"gpa"`
	TechnicalSkills []string `json:"technicalSkills"`
	ExperienceCount int      `json:"experienceCount"`
	ProjectCount    int      `json:"projectCount"`
	Available       bool     `json:"available"`
}

// OpportunityRequirement is the eligibility side of an opportunity listing.
// MinGPA is nil when the listing does not require a minimum GPA.
// MinExperienceYears defaults to zero when the listing omits it.
type OpportunityRequirement struct {
	ID                 string   `json:"id"`
	CompanyID          string   `json:"companyId,omitempty"`
	Title              string   `json:"title,omitempty"`
	MinSemester        int      `json:"minSemester"`
	MinGPA             *float64 `json:"minGpa,omitempty"`
	RequiredSkills     []string `json:"requiredSkills"`
	MinExperienceYears int      `json:"minExperienceYears"`
}

// CompatibilityResult pairs an opportunity with its 0-100 compatibility
// score, rounded to two decimals.
type CompatibilityResult struct {
	Opportunity OpportunityRequirement `json:"opportunity"`
	Score       float64                `json:"score"`
}

// Breakdown exposes the signed contribution of every criterion to the final
// score, pre-clamp. Useful for explaining a score to the caller.
type Breakdown struct {
	Semester     float64        `json:"semester"`
	GPA          float64        `json:"gpa"`
	Skills       float64        `json:"skills"`
	Experience   float64        `json:"experience"`
	Projects     float64        `json:"projects"`
	Availability float64        `json:"availability"`
	SkillTier    SimilarityTier `json:"skillTier"`
}
