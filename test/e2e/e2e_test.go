// test/e2e/e2e_test.go
package e2e

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/camunda/zeebe/clients/go/v8/pkg/zbc"
	"github.com/elastic/go-elasticsearch/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"unrc-workers/internal/common/config"
	"unrc-workers/internal/common/database"
	"unrc-workers/internal/common/logger"
	"unrc-workers/internal/matching"

	querypostgresql "unrc-workers/internal/workers/data-access/query-postgresql"
	searchopportunities "unrc-workers/internal/workers/data-access/search-opportunities"
	rankopportunities "unrc-workers/internal/workers/matching/rank-opportunities"
	scorecompatibility "unrc-workers/internal/workers/matching/score-compatibility"
	notifymatch "unrc-workers/internal/workers/notification/notify-match"
	extractresumeskills "unrc-workers/internal/workers/profile/extract-resume-skills"
)

var (
	zeebeClient zbc.Client
	zapLog      *zap.Logger
)

func TestMain(m *testing.M) {
	if os.Getenv("E2E_TESTS") == "" {
		fmt.Println("E2E_TESTS not set, skipping e2e suite")
		os.Exit(0)
	}

	var err error
	zeebeClient, err = zbc.NewClient(&zbc.ClientConfig{
		GatewayAddress:         "localhost:26500",
		UsePlaintextConnection: true,
	})
	if err != nil {
		panic(fmt.Sprintf("failed to connect to Zeebe: %v", err))
	}

	zapLog, _ = zap.NewProduction()

	code := m.Run()

	zeebeClient.Close()
	os.Exit(code)
}

func TestFullE2E(t *testing.T) {
	_, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	cfg, err := config.Load()
	require.NoError(t, err)
	require.NotNil(t, cfg)

	t.Log("starting full e2e run against real services")

	assertAllServicesConnectivity(t, cfg)
	createDatabaseTables(t, cfg)
	seedOpportunityIndex(t, cfg)
	testAllWorkers(t, cfg)

	t.Log("all e2e checks passed")
}

func assertAllServicesConnectivity(t *testing.T, cfg *config.Config) {
	t.Log("checking service connectivity...")

	// E2E always runs against local containers
	cfg.Database.Postgres.Host = "localhost"
	cfg.Database.Redis.Address = "localhost:6379"
	cfg.Database.Elasticsearch.URL = "http://localhost:9200"

	db, err := database.NewPostgres(cfg.Database.Postgres)
	require.NoError(t, err, "PostgreSQL connection failed")
	assert.NoError(t, db.Ping(context.Background()), "PostgreSQL ping failed")
	db.Close()

	rdb, err := database.NewRedis(cfg.Database.Redis)
	require.NoError(t, err, "Redis client creation failed")
	assert.NoError(t, rdb.Ping(context.Background()), "Redis ping failed")
	rdb.Close()

	es, err := elasticsearch.NewClient(elasticsearch.Config{
		Addresses: []string{cfg.Database.Elasticsearch.GetURL()},
	})
	require.NoError(t, err, "Elasticsearch client creation failed")
	res, err := es.Info()
	require.NoError(t, err, "Elasticsearch info request failed")
	assert.False(t, res.IsError(), "Elasticsearch returned error")
	res.Body.Close()

	_, err = zeebeClient.NewTopologyCommand().Send(context.Background())
	assert.NoError(t, err, "Zeebe topology request failed")
}

func createDatabaseTables(t *testing.T, cfg *config.Config) {
	t.Log("creating database tables and inserting test data...")

	dbClient, err := database.NewPostgres(cfg.Database.Postgres)
	require.NoError(t, err)
	defer dbClient.Close()

	db := dbClient.GetDB()

	queries := []string{
		`CREATE TABLE IF NOT EXISTS students (
			id VARCHAR(255) PRIMARY KEY,
			name VARCHAR(255) NOT NULL,
			email VARCHAR(255) UNIQUE NOT NULL,
			phone VARCHAR(50),
			semester INTEGER NOT NULL DEFAULT 1,
			gpa NUMERIC(4,2) NOT NULL DEFAULT 0,
			technical_skills JSONB NOT NULL DEFAULT '[]',
			available BOOLEAN NOT NULL DEFAULT true,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE TABLE IF NOT EXISTS student_experiences (
			id SERIAL PRIMARY KEY,
			student_id VARCHAR(255) REFERENCES students(id),
			description TEXT,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE TABLE IF NOT EXISTS student_projects (
			id SERIAL PRIMARY KEY,
			student_id VARCHAR(255) REFERENCES students(id),
			description TEXT,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE TABLE IF NOT EXISTS companies (
			id VARCHAR(255) PRIMARY KEY,
			name VARCHAR(255) NOT NULL,
			contact_email VARCHAR(255),
			sector VARCHAR(100),
			verified BOOLEAN DEFAULT false,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE TABLE IF NOT EXISTS opportunities (
			id VARCHAR(255) PRIMARY KEY,
			company_id VARCHAR(255) REFERENCES companies(id),
			title VARCHAR(255) NOT NULL,
			description TEXT,
			min_semester INTEGER NOT NULL DEFAULT 0,
			min_gpa NUMERIC(4,2),
			required_skills JSONB NOT NULL DEFAULT '[]',
			min_experience_years INTEGER NOT NULL DEFAULT 0,
			active BOOLEAN NOT NULL DEFAULT true,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE TABLE IF NOT EXISTS notifications (
			id VARCHAR(255) PRIMARY KEY,
			recipient_id VARCHAR(255) NOT NULL,
			recipient_type VARCHAR(50) NOT NULL,
			type VARCHAR(100) NOT NULL,
			channel VARCHAR(100),
			status VARCHAR(50),
			payload JSONB,
			sent_at TIMESTAMP,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)`,
	}

	for _, q := range queries {
		_, err := db.Exec(q)
		require.NoError(t, err, "failed to create table")
	}

	seed := []string{
		`INSERT INTO students (id, name, email, phone, semester, gpa, technical_skills, available)
		 VALUES ('e2e-student-1', 'Ana Torres', 'e2e-ana@example.edu', '+5493581234567', 7, 3.6, '["Python","SQL"]', true)
		 ON CONFLICT (id) DO NOTHING`,
		`INSERT INTO student_experiences (student_id, description)
		 SELECT 'e2e-student-1', 'Pasantía backend'
		 WHERE NOT EXISTS (SELECT 1 FROM student_experiences WHERE student_id = 'e2e-student-1')`,
		`INSERT INTO student_projects (student_id, description)
		 SELECT 'e2e-student-1', 'Sistema de biblioteca'
		 WHERE NOT EXISTS (SELECT 1 FROM student_projects WHERE student_id = 'e2e-student-1')`,
		`INSERT INTO companies (id, name, contact_email, sector, verified)
		 VALUES ('e2e-company-1', 'Acme Software', 'talent@acme.com', 'technology', true)
		 ON CONFLICT (id) DO NOTHING`,
		`INSERT INTO opportunities (id, company_id, title, description, min_semester, min_gpa, required_skills, min_experience_years, active)
		 VALUES ('e2e-opp-1', 'e2e-company-1', 'Backend Intern', 'Build internal services', 5, 3.0, '["Python","SQL","Docker"]', 1, true)
		 ON CONFLICT (id) DO NOTHING`,
		`INSERT INTO opportunities (id, company_id, title, description, min_semester, min_gpa, required_skills, min_experience_years, active)
		 VALUES ('e2e-opp-2', 'e2e-company-1', 'DevOps Trainee', 'Pipelines and containers', 9, 3.8, '["Kubernetes"]', 3, true)
		 ON CONFLICT (id) DO NOTHING`,
	}

	for _, q := range seed {
		_, err := db.Exec(q)
		require.NoError(t, err, "failed to seed data")
	}
}

func seedOpportunityIndex(t *testing.T, cfg *config.Config) {
	t.Log("seeding opportunity search index...")

	es, err := elasticsearch.NewClient(elasticsearch.Config{
		Addresses: []string{cfg.Database.Elasticsearch.GetURL()},
	})
	require.NoError(t, err)

	doc := map[string]interface{}{
		"title":           "Backend Intern",
		"description":     "Build internal services",
		"company_id":      "e2e-company-1",
		"required_skills": []string{"Python", "SQL", "Docker"},
		"min_semester":    5,
		"min_gpa":         3.0,
		"active":          true,
		"created_at":      time.Now().UTC().Format("2006-01-02"),
	}
	body, _ := json.Marshal(doc)

	res, err := es.Index(
		"opportunities",
		strings.NewReader(string(body)),
		es.Index.WithDocumentID("e2e-opp-1"),
		es.Index.WithRefresh("true"),
	)
	require.NoError(t, err)
	res.Body.Close()
}

func testAllWorkers(t *testing.T, cfg *config.Config) {
	log := logger.NewZapAdapter(zapLog)
	ctx := context.Background()

	pg, err := database.NewPostgres(cfg.Database.Postgres)
	require.NoError(t, err)
	defer pg.Close()

	rdb, err := database.NewRedis(cfg.Database.Redis)
	require.NoError(t, err)
	defer rdb.Close()

	esClient, err := database.NewElasticsearch(cfg.Database.Elasticsearch)
	require.NoError(t, err)

	t.Run("query-postgresql", func(t *testing.T) {
		handler := querypostgresql.NewHandler(
			&querypostgresql.Config{Timeout: 10 * time.Second}, pg.DB, log)

		output, err := handler.Execute(ctx, &querypostgresql.Input{
			QueryType: "student_profile",
			StudentID: "e2e-student-1",
		})
		require.NoError(t, err)
		data := output.Data.(map[string]interface{})
		assert.Equal(t, "Ana Torres", data["name"])
		assert.Equal(t, 7, data["semester"])

		output, err = handler.Execute(ctx, &querypostgresql.Input{
			QueryType: "active_opportunities",
			Limit:     10,
		})
		require.NoError(t, err)
		assert.GreaterOrEqual(t, output.RowCount, 2)
	})

	t.Run("search-opportunities", func(t *testing.T) {
		handler := searchopportunities.NewHandler(
			&searchopportunities.Config{Timeout: 10 * time.Second}, esClient.Client, log)

		output, err := handler.Execute(ctx, &searchopportunities.Input{
			IndexName: "opportunities",
			QueryType: "opportunity_search",
			Filters:   map[string]interface{}{"keywords": "backend"},
		})
		require.NoError(t, err)
		require.GreaterOrEqual(t, output.TotalHits, int64(1))
		assert.Equal(t, "Backend Intern", output.Data[0]["title"])
	})

	t.Run("score-compatibility", func(t *testing.T) {
		handler := scorecompatibility.NewHandler(
			&scorecompatibility.Config{CacheTTL: time.Minute, Timeout: 10 * time.Second},
			pg.DB, rdb.Client, log)

		input := &scorecompatibility.Input{
			StudentID: "e2e-student-1",
			Opportunity: matching.OpportunityRequirement{
				ID:                 "e2e-opp-1",
				Title:              "Backend Intern",
				MinSemester:        5,
				RequiredSkills:     []string{"Python", "SQL", "Docker"},
				MinExperienceYears: 1,
			},
		}

		output, err := handler.Execute(ctx, input)
		require.NoError(t, err)
		assert.Greater(t, output.CompatibilityScore, 50.0)
		assert.False(t, output.FromCache)

		cached, err := handler.Execute(ctx, input)
		require.NoError(t, err)
		assert.True(t, cached.FromCache)
		assert.Equal(t, output.CompatibilityScore, cached.CompatibilityScore)
	})

	t.Run("rank-opportunities", func(t *testing.T) {
		handler := rankopportunities.NewHandler(
			&rankopportunities.Config{MaxItems: 50, Timeout: 10 * time.Second}, log)

		strong, _ := json.Marshal(map[string]interface{}{
			"id": "e2e-opp-1", "title": "Backend Intern",
			"minSemester": 5, "requiredSkills": []string{"Python", "SQL"},
		})
		weak, _ := json.Marshal(map[string]interface{}{
			"id": "e2e-opp-2", "title": "DevOps Trainee",
			"minSemester": 9, "requiredSkills": []string{"Kubernetes"},
			"minExperienceYears": 3,
		})

		output, err := handler.Execute(ctx, &rankopportunities.Input{
			Student: matching.StudentProfile{
				ID:              "e2e-student-1",
				Semester:        7,
				GPA:             3.6,
				TechnicalSkills: []string{"Python", "SQL"},
				ExperienceCount: 2,
				ProjectCount:    3,
				Available:       true,
			},
			Opportunities: []json.RawMessage{strong, weak},
		})
		require.NoError(t, err)
		require.Len(t, output.RankedOpportunities, 2)
		assert.Equal(t, "e2e-opp-1", output.RankedOpportunities[0].OpportunityID)
	})

	t.Run("extract-resume-skills", func(t *testing.T) {
		handler := extractresumeskills.NewHandler(
			&extractresumeskills.Config{Timeout: 10 * time.Second}, log)

		output, err := handler.Execute(ctx, &extractresumeskills.Input{
			StudentID:  "e2e-student-1",
			ResumeText: "Semestre: 7\nPromedio: 8.2\nHabilidades:\nPython, SQL y Docker",
		})
		require.NoError(t, err)
		assert.Contains(t, output.Skills, "Python")
		assert.Equal(t, 7, output.Semester)
	})

	t.Run("notify-match", func(t *testing.T) {
		// Channels disabled: exercises threshold, lookup and audit row
		// without touching AWS
		handler, err := notifymatch.NewHandler(
			&notifymatch.Config{
				EmailEnabled:      false,
				SMSEnabled:        false,
				AWSRegion:         "us-east-1",
				MinNotifyScore:    70.0,
				SMSScoreThreshold: 85.0,
				Timeout:           10 * time.Second,
			},
			pg.DB, log)
		require.NoError(t, err)

		output, err := handler.Execute(ctx, &notifymatch.Input{
			StudentID:          "e2e-student-1",
			OpportunityID:      "e2e-opp-1",
			OpportunityTitle:   "Backend Intern",
			CompanyName:        "Acme Software",
			CompatibilityScore: 90.0,
		})
		require.NoError(t, err)
		assert.Equal(t, notifymatch.StatusDisabled, output.Status)

		var count int
		err = pg.DB.QueryRow(
			`SELECT COUNT(*) FROM notifications WHERE recipient_id = 'e2e-student-1'`).Scan(&count)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, count, 1)
	})
}
