// internal/workers/matching/score-compatibility/models.go
package scorecompatibility

import "unrc-workers/internal/matching"

type Input struct {
	StudentID   string                          `json:"studentId"`
	Student     *matching.StudentProfile        `json:"studentProfile,omitempty"`
	Opportunity matching.OpportunityRequirement `json:"opportunity"`
}

type Output struct {
	OpportunityID      string             `json:"opportunityId"`
	CompatibilityScore float64            `json:"compatibilityScore"`
	Breakdown          matching.Breakdown `json:"breakdown"`
	FromCache          bool               `json:"fromCache"`
}
