// internal/workers/data-access/query-postgresql/models.go
package querypostgresql

import "unrc-workers/internal/models"

type Input struct {
	QueryType     string                 `json:"queryType"`
	StudentID     string                 `json:"studentId,omitempty"`
	OpportunityID string                 `json:"opportunityId,omitempty"`
	CompanyID     string                 `json:"companyId,omitempty"`
	Limit         int                    `json:"limit,omitempty"`
	Filters       map[string]interface{} `json:"filters,omitempty"`
}

type Output struct {
	Data               interface{} `json:"data"`
	RowCount           int         `json:"rowCount"`
	QueryExecutionTime int64       `json:"queryExecutionTime"` // milliseconds
}

type QueryType = models.QueryType

// Export constants for external use
var (
	QueryTypeStudentProfile      = models.QueryTypeStudentProfile
	QueryTypeActiveOpportunities = models.QueryTypeActiveOpportunities
	QueryTypeOpportunityDetails  = models.QueryTypeOpportunityDetails
	QueryTypeCompanyProfile      = models.QueryTypeCompanyProfile
)
