// internal/models/query_types.go
package models

type QueryType string

const (
	QueryTypeStudentProfile      QueryType = "student_profile"
	QueryTypeActiveOpportunities QueryType = "active_opportunities"
	QueryTypeOpportunityDetails  QueryType = "opportunity_details"
	QueryTypeCompanyProfile      QueryType = "company_profile"
)
