package queries

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"
)

var (
	ErrUnknownQueryType = errors.New("unknown query type")
	ErrMissingIndex     = errors.New("index name is required")
)

// OpportunitySearch defines the structure of a search request
type OpportunitySearch struct {
	Index         string
	QueryType     string
	Filters       map[string]interface{}
	OpportunityID string
	CompanyID     string
	Pagination    struct {
		From int
		Size int
	}
}

// BuildQuery builds an Elasticsearch search request based on query type and filters
func BuildQuery(esClient *elasticsearch.Client, sq OpportunitySearch) (*esapi.SearchRequest, error) {
	if sq.Index == "" {
		return nil, ErrMissingIndex
	}

	var queryBody map[string]interface{}

	switch sq.QueryType {
	case "opportunity_search":
		queryBody = buildOpportunitySearchQuery(sq)
	case "similar_opportunities":
		queryBody = buildSimilarOpportunitiesQuery(sq)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownQueryType, sq.QueryType)
	}

	body, _ := json.Marshal(queryBody)

	req := esapi.SearchRequest{
		Index:  []string{sq.Index},
		Body:   strings.NewReader(string(body)),
		From:   &sq.Pagination.From,
		Size:   &sq.Pagination.Size,
		Pretty: true,
	}

	return &req, nil
}

// buildOpportunitySearchQuery builds the main opportunity search query dynamically
func buildOpportunitySearchQuery(sq OpportunitySearch) map[string]interface{} {
	boolQuery := make(map[string]interface{})
	mustClauses := []interface{}{}
	filterClauses := []interface{}{}

	// Keyword search over title, description and skills
	if keywords, ok := sq.Filters["keywords"].(string); ok && keywords != "" {
		mustClauses = append(mustClauses, map[string]interface{}{
			"multi_match": map[string]interface{}{
				"query":  keywords,
				"fields": []string{"title^3", "description^2", "required_skills"},
				"type":   "best_fields",
			},
		})
	}

	// Only active postings are searchable
	filterClauses = append(filterClauses, map[string]interface{}{
		"term": map[string]interface{}{"active": true},
	})

	// Skill filter
	if skills, ok := sq.Filters["skills"].([]interface{}); ok && len(skills) > 0 {
		terms := make([]string, 0, len(skills))
		for _, s := range skills {
			if v, ok := s.(string); ok {
				terms = append(terms, v)
			}
		}
		if len(terms) > 0 {
			filterClauses = append(filterClauses, map[string]interface{}{
				"terms": map[string]interface{}{"required_skills": terms},
			})
		}
	}

	// Company filter
	if companyID, ok := sq.Filters["companyId"].(string); ok && companyID != "" {
		filterClauses = append(filterClauses, map[string]interface{}{
			"term": map[string]interface{}{"company_id": companyID},
		})
	} else if sq.CompanyID != "" {
		filterClauses = append(filterClauses, map[string]interface{}{
			"term": map[string]interface{}{"company_id": sq.CompanyID},
		})
	}

	// Semester ceiling: only opportunities the student is eligible for
	if maxSemester, ok := numericFilter(sq.Filters["maxSemester"]); ok && maxSemester > 0 {
		filterClauses = append(filterClauses, map[string]interface{}{
			"range": map[string]interface{}{
				"min_semester": map[string]interface{}{"lte": maxSemester},
			},
		})
	}

	// GPA ceiling: exclude postings asking for more than the student has
	if gpa, ok := numericFilter(sq.Filters["maxGpa"]); ok && gpa > 0 {
		filterClauses = append(filterClauses, map[string]interface{}{
			"bool": map[string]interface{}{
				"should": []interface{}{
					map[string]interface{}{
						"range": map[string]interface{}{
							"min_gpa": map[string]interface{}{"lte": gpa},
						},
					},
					map[string]interface{}{
						"bool": map[string]interface{}{
							"must_not": []interface{}{
								map[string]interface{}{
									"exists": map[string]interface{}{"field": "min_gpa"},
								},
							},
						},
					},
				},
				"minimum_should_match": 1,
			},
		})
	}

	// Default match_all if no keyword
	if len(mustClauses) == 0 {
		mustClauses = append(mustClauses, map[string]interface{}{"match_all": map[string]interface{}{}})
	}

	boolQuery["must"] = mustClauses
	if len(filterClauses) > 0 {
		boolQuery["filter"] = filterClauses
	}

	query := map[string]interface{}{
		"query": map[string]interface{}{
			"bool": boolQuery,
		},
	}

	// Sorting logic
	if sortBy, ok := sq.Filters["sortBy"].(string); ok {
		switch sortBy {
		case "newest":
			query["sort"] = []map[string]interface{}{{"created_at": "desc"}}
		case "title":
			query["sort"] = []map[string]interface{}{{"title.keyword": "asc"}}
		}
	}

	return query
}

// buildSimilarOpportunitiesQuery builds a "similar postings" query
func buildSimilarOpportunitiesQuery(sq OpportunitySearch) map[string]interface{} {
	if sq.OpportunityID == "" {
		return map[string]interface{}{
			"query": map[string]interface{}{
				"match_none": map[string]interface{}{},
			},
		}
	}

	return map[string]interface{}{
		"query": map[string]interface{}{
			"more_like_this": map[string]interface{}{
				"fields": []string{"title", "description", "required_skills"},
				"like": []map[string]interface{}{
					{"_index": sq.Index, "_id": sq.OpportunityID},
				},
				"min_term_freq":   1,
				"max_query_terms": 12,
				"min_doc_freq":    1,
				"min_word_length": 3,
			},
		},
	}
}

func numericFilter(raw interface{}) (float64, bool) {
	switch v := raw.(type) {
	case float64:
		return v, true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	}
	return 0, false
}
