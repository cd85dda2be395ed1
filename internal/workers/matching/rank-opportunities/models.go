// internal/workers/matching/rank-opportunities/models.go
package rankopportunities

import (
	"encoding/json"

	"unrc-workers/internal/matching"
)

type Input struct {
	Student       matching.StudentProfile `json:"studentProfile"`
	Opportunities []json.RawMessage       `json:"opportunities"`
	MaxResults    int                     `json:"maxResults,omitempty"`
}

type RankedOpportunity struct {
	OpportunityID      string  `json:"opportunityId"`
	CompanyID          string  `json:"companyId,omitempty"`
	Title              string  `json:"title,omitempty"`
	CompatibilityScore float64 `json:"compatibilityScore"`
}

type Output struct {
	RankedOpportunities []RankedOpportunity `json:"rankedOpportunities"`
	TotalEvaluated      int                 `json:"totalEvaluated"`
	SkippedRecords      int                 `json:"skippedRecords"`
}
