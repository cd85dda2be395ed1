package searchopportunities

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"unrc-workers/internal/common/logger"
)

func createTestConfig() *Config {
	return &Config{
		Timeout: 30 * time.Second,
	}
}

func createTestLogger(t *testing.T) logger.Logger {
	return logger.NewZapAdapter(zaptest.NewLogger(t))
}

func createRealElasticsearchClient(t *testing.T) *elasticsearch.Client {
	cfg := elasticsearch.Config{
		Addresses: []string{"http://localhost:9200"},
	}

	esClient, err := elasticsearch.NewClient(cfg)
	if err != nil {
		t.Skipf("Skipping test: Failed to create Elasticsearch client: %v", err)
		return nil
	}

	res, err := esClient.Info()
	if err != nil {
		t.Skipf("Skipping test: Elasticsearch container not responding: %v", err)
		return nil
	}
	defer res.Body.Close()

	if res.IsError() {
		t.Skipf("Skipping test: Elasticsearch error: %s", res.String())
		return nil
	}

	return esClient
}

func setupRealTestData(t *testing.T, esClient *elasticsearch.Client) {
	esClient.Indices.Delete([]string{"opportunities"}, esClient.Indices.Delete.WithIgnoreUnavailable(true))

	time.Sleep(2 * time.Second)

	indexBody := `{
		"mappings": {
			"properties": {
				"title": {"type": "text", "fields": {"keyword": {"type": "keyword"}}},
				"description": {"type": "text"},
				"company_id": {"type": "keyword"},
				"required_skills": {"type": "keyword"},
				"min_semester": {"type": "integer"},
				"min_gpa": {"type": "float"},
				"active": {"type": "boolean"},
				"created_at": {"type": "date"}
			}
		}
	}`

	res, err := esClient.Indices.Create(
		"opportunities",
		esClient.Indices.Create.WithBody(strings.NewReader(indexBody)),
	)
	require.NoError(t, err, "Failed to create index")
	res.Body.Close()

	time.Sleep(1 * time.Second)

	testDocs := []map[string]interface{}{
		{
			"title":           "Backend Intern",
			"description":     "Build internal services in Go and Python",
			"company_id":      "company-1",
			"required_skills": []string{"Python", "SQL"},
			"min_semester":    5,
			"min_gpa":         3.0,
			"active":          true,
			"created_at":      "2024-03-01",
		},
		{
			"title":           "Data Analyst Junior",
			"description":     "Dashboards and reporting over the campus data warehouse",
			"company_id":      "company-2",
			"required_skills": []string{"SQL", "Excel"},
			"min_semester":    3,
			"active":          true,
			"created_at":      "2024-02-15",
		},
		{
			"title":           "DevOps Trainee",
			"description":     "Container platform and deployment pipelines",
			"company_id":      "company-1",
			"required_skills": []string{"Docker", "Kubernetes"},
			"min_semester":    7,
			"min_gpa":         3.5,
			"active":          true,
			"created_at":      "2024-01-20",
		},
		{
			"title":           "Closed Position",
			"description":     "No longer accepting applications",
			"company_id":      "company-3",
			"required_skills": []string{"Python"},
			"min_semester":    1,
			"active":          false,
			"created_at":      "2023-11-05",
		},
	}

	for i, doc := range testDocs {
		docJSON, _ := json.Marshal(doc)
		res, err := esClient.Index(
			"opportunities",
			strings.NewReader(string(docJSON)),
			esClient.Index.WithDocumentID(fmt.Sprintf("opp-%d", i+1)),
			esClient.Index.WithRefresh("true"),
		)
		require.NoError(t, err, "Failed to index document")
		res.Body.Close()
	}

	time.Sleep(1 * time.Second)
}

func TestHandler_Execute_Search_RealElasticsearch(t *testing.T) {
	esClient := createRealElasticsearchClient(t)
	setupRealTestData(t, esClient)

	handler := NewHandler(createTestConfig(), esClient, createTestLogger(t))

	tests := []struct {
		name     string
		input    *Input
		validate func(t *testing.T, output *Output)
	}{
		{
			name: "keyword search matches title and description",
			input: &Input{
				IndexName: "opportunities",
				QueryType: "opportunity_search",
				Filters:   map[string]interface{}{"keywords": "backend services"},
			},
			validate: func(t *testing.T, output *Output) {
				require.GreaterOrEqual(t, output.TotalHits, int64(1))
				assert.Equal(t, "Backend Intern", output.Data[0]["title"])
			},
		},
		{
			name: "inactive postings are excluded",
			input: &Input{
				IndexName: "opportunities",
				QueryType: "opportunity_search",
				Filters:   map[string]interface{}{},
			},
			validate: func(t *testing.T, output *Output) {
				assert.Equal(t, int64(3), output.TotalHits)
				for _, doc := range output.Data {
					assert.NotEqual(t, "Closed Position", doc["title"])
				}
			},
		},
		{
			name: "skill filter narrows results",
			input: &Input{
				IndexName: "opportunities",
				QueryType: "opportunity_search",
				Filters: map[string]interface{}{
					"skills": []interface{}{"Docker"},
				},
			},
			validate: func(t *testing.T, output *Output) {
				require.Equal(t, int64(1), output.TotalHits)
				assert.Equal(t, "DevOps Trainee", output.Data[0]["title"])
			},
		},
		{
			name: "semester ceiling excludes advanced postings",
			input: &Input{
				IndexName: "opportunities",
				QueryType: "opportunity_search",
				Filters: map[string]interface{}{
					"maxSemester": 5,
				},
			},
			validate: func(t *testing.T, output *Output) {
				assert.Equal(t, int64(2), output.TotalHits)
				for _, doc := range output.Data {
					assert.NotEqual(t, "DevOps Trainee", doc["title"])
				}
			},
		},
		{
			name: "company filter",
			input: &Input{
				IndexName: "opportunities",
				QueryType: "opportunity_search",
				Filters:   map[string]interface{}{},
				CompanyID: "company-1",
			},
			validate: func(t *testing.T, output *Output) {
				assert.Equal(t, int64(2), output.TotalHits)
			},
		},
		{
			name: "similar opportunities by document",
			input: &Input{
				IndexName:     "opportunities",
				QueryType:     "similar_opportunities",
				Filters:       map[string]interface{}{},
				OpportunityID: "opp-1",
			},
			validate: func(t *testing.T, output *Output) {
				for _, doc := range output.Data {
					assert.NotEqual(t, "Backend Intern", doc["title"])
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			output, err := handler.Execute(context.Background(), tt.input)

			require.NoError(t, err)
			require.NotNil(t, output)
			assert.GreaterOrEqual(t, output.Took, int64(0))

			if tt.validate != nil {
				tt.validate(t, output)
			}
		})
	}
}

func TestHandler_ErrorMapping(t *testing.T) {
	handler := &Handler{}

	tests := []struct {
		err          error
		expectedCode string
		retries      int32
	}{
		{ErrIndexNotFound, "INDEX_NOT_FOUND", 0},
		{ErrSearchTimeout, "SEARCH_TIMEOUT", 2},
		{ErrSearchQueryFailed, "SEARCH_QUERY_FAILED", 3},
		{ErrElasticsearchConnectionFailed, "ELASTICSEARCH_CONNECTION_FAILED", 3},
		{errors.New("something else"), "UNKNOWN_ERROR", 0},
	}

	for _, tt := range tests {
		t.Run(tt.expectedCode, func(t *testing.T) {
			assert.Equal(t, tt.expectedCode, handler.mapErrorToCode(tt.err))
			assert.Equal(t, tt.retries, handler.getRetryCount(tt.err))
		})
	}
}

func TestHandler_EdgeCases(t *testing.T) {
	esClient, err := elasticsearch.NewClient(elasticsearch.Config{
		Addresses: []string{"http://localhost:9200"},
	})
	require.NoError(t, err)

	handler := NewHandler(createTestConfig(), esClient, createTestLogger(t))

	t.Run("nil input", func(t *testing.T) {
		output, err := handler.Execute(context.Background(), nil)
		assert.Error(t, err)
		assert.Nil(t, output)
	})

	t.Run("missing index name", func(t *testing.T) {
		output, err := handler.Execute(context.Background(), &Input{
			QueryType: "opportunity_search",
			Filters:   map[string]interface{}{},
		})
		assert.ErrorIs(t, err, ErrIndexNotFound)
		assert.Nil(t, output)
	})

	t.Run("unknown query type", func(t *testing.T) {
		output, err := handler.Execute(context.Background(), &Input{
			IndexName: "opportunities",
			QueryType: "bogus_query",
			Filters:   map[string]interface{}{},
		})
		assert.ErrorIs(t, err, ErrSearchQueryFailed)
		assert.Nil(t, output)
	})
}
