// internal/workers/data-access/search-opportunities/models.go
package searchopportunities

type Input struct {
	IndexName     string                 `json:"indexName"`
	QueryType     string                 `json:"queryType"`
	Filters       map[string]interface{} `json:"filters"`
	OpportunityID string                 `json:"opportunityId,omitempty"`
	CompanyID     string                 `json:"companyId,omitempty"`
	Pagination    Pagination             `json:"pagination"`
}

type Pagination struct {
	From int `json:"from"`
	Size int `json:"size"`
}

type Output struct {
	Data      []map[string]interface{} `json:"data"`
	TotalHits int64                    `json:"totalHits"`
	MaxScore  float64                  `json:"maxScore"`
	Took      int64                    `json:"took"` // milliseconds
}
