// internal/workers/matching/rank-opportunities/handler_test.go
package rankopportunities

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"unrc-workers/internal/common/logger"
	"unrc-workers/internal/matching"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createTestConfig() *Config {
	return &Config{
		MaxItems: 50,
		Timeout:  10 * time.Second,
	}
}

func createTestStudent() matching.StudentProfile {
	return matching.StudentProfile{
		ID:              "student-1",
		Semester:        7,
		GPA:             3.6,
		TechnicalSkills: []string{"Python", "SQL"},
		ExperienceCount: 2,
		ProjectCount:    3,
		Available:       true,
	}
}

func rawOpportunity(t *testing.T, opp matching.OpportunityRequirement) json.RawMessage {
	data, err := json.Marshal(opp)
	require.NoError(t, err)
	return data
}

func TestHandler_Execute_RanksDescending(t *testing.T) {
	handler := NewHandler(createTestConfig(), logger.NewTestLogger(t))

	strongFit := matching.OpportunityRequirement{
		ID:             "opp-strong",
		MinSemester:    5,
		RequiredSkills: []string{"Python", "SQL"},
	}
	weakFit := matching.OpportunityRequirement{
		ID:             "opp-weak",
		MinSemester:    12,
		RequiredSkills: []string{"Kubernetes", "Terraform", "Rust"},
	}

	input := &Input{
		Student: createTestStudent(),
		Opportunities: []json.RawMessage{
			rawOpportunity(t, weakFit),
			rawOpportunity(t, strongFit),
		},
	}

	output, err := handler.Execute(context.Background(), input)

	require.NoError(t, err)
	require.Len(t, output.RankedOpportunities, 2)
	assert.Equal(t, "opp-strong", output.RankedOpportunities[0].OpportunityID)
	assert.Equal(t, "opp-weak", output.RankedOpportunities[1].OpportunityID)
	assert.Greater(t, output.RankedOpportunities[0].CompatibilityScore, output.RankedOpportunities[1].CompatibilityScore)
	assert.Equal(t, 2, output.TotalEvaluated)
	assert.Equal(t, 0, output.SkippedRecords)
}

func TestHandler_Execute_InvalidRecordScoresZero(t *testing.T) {
	handler := NewHandler(createTestConfig(), logger.NewTestLogger(t))

	input := &Input{
		Student: createTestStudent(),
		Opportunities: []json.RawMessage{
			rawOpportunity(t, matching.OpportunityRequirement{
				ID:             "opp-good",
				MinSemester:    5,
				RequiredSkills: []string{"Python"},
			}),
			json.RawMessage(`{"id": "opp-bad", "minSemester": "not-a-number"}`),
		},
	}

	output, err := handler.Execute(context.Background(), input)

	require.NoError(t, err)
	require.Len(t, output.RankedOpportunities, 2)
	assert.Equal(t, "opp-good", output.RankedOpportunities[0].OpportunityID)
	assert.Equal(t, "opp-bad", output.RankedOpportunities[1].OpportunityID)
	assert.Equal(t, 0.0, output.RankedOpportunities[1].CompatibilityScore)
}

func TestHandler_Execute_MalformedRecordWithoutIDIsDropped(t *testing.T) {
	handler := NewHandler(createTestConfig(), logger.NewTestLogger(t))

	input := &Input{
		Student: createTestStudent(),
		Opportunities: []json.RawMessage{
			json.RawMessage(`not json at all`),
			rawOpportunity(t, matching.OpportunityRequirement{
				ID:             "opp-1",
				RequiredSkills: []string{"Python"},
			}),
		},
	}

	output, err := handler.Execute(context.Background(), input)

	require.NoError(t, err)
	require.Len(t, output.RankedOpportunities, 1)
	assert.Equal(t, "opp-1", output.RankedOpportunities[0].OpportunityID)
	assert.Equal(t, 1, output.SkippedRecords)
}

func TestHandler_Execute_DeduplicatesByID(t *testing.T) {
	handler := NewHandler(createTestConfig(), logger.NewTestLogger(t))

	opp := matching.OpportunityRequirement{
		ID:             "opp-dup",
		RequiredSkills: []string{"Python"},
	}

	input := &Input{
		Student: createTestStudent(),
		Opportunities: []json.RawMessage{
			rawOpportunity(t, opp),
			rawOpportunity(t, opp),
		},
	}

	output, err := handler.Execute(context.Background(), input)

	require.NoError(t, err)
	assert.Len(t, output.RankedOpportunities, 1)
	assert.Equal(t, 1, output.TotalEvaluated)
}

func TestHandler_Execute_MaxResultsTruncation(t *testing.T) {
	handler := NewHandler(createTestConfig(), logger.NewTestLogger(t))

	var raws []json.RawMessage
	for _, id := range []string{"a", "b", "c", "d"} {
		raws = append(raws, rawOpportunity(t, matching.OpportunityRequirement{
			ID:             id,
			RequiredSkills: []string{"Python"},
		}))
	}

	input := &Input{
		Student:       createTestStudent(),
		Opportunities: raws,
		MaxResults:    2,
	}

	output, err := handler.Execute(context.Background(), input)

	require.NoError(t, err)
	assert.Len(t, output.RankedOpportunities, 2)
	assert.Equal(t, 4, output.TotalEvaluated)
}

func TestHandler_Execute_TieOrderIsStable(t *testing.T) {
	handler := NewHandler(createTestConfig(), logger.NewTestLogger(t))

	// Identical requirements produce identical scores; input order must hold.
	mk := func(id string) json.RawMessage {
		return rawOpportunity(t, matching.OpportunityRequirement{
			ID:             id,
			MinSemester:    5,
			RequiredSkills: []string{"Python", "SQL"},
		})
	}

	input := &Input{
		Student:       createTestStudent(),
		Opportunities: []json.RawMessage{mk("first"), mk("second"), mk("third")},
	}

	output, err := handler.Execute(context.Background(), input)

	require.NoError(t, err)
	require.Len(t, output.RankedOpportunities, 3)
	assert.Equal(t, "first", output.RankedOpportunities[0].OpportunityID)
	assert.Equal(t, "second", output.RankedOpportunities[1].OpportunityID)
	assert.Equal(t, "third", output.RankedOpportunities[2].OpportunityID)
}

func TestHandler_Execute_FailedRecordsKeepInputOrderAmongZeroScores(t *testing.T) {
	handler := NewHandler(createTestConfig(), logger.NewTestLogger(t))

	// A student missing every requirement clamps valid records to 0.0, the
	// same score invalid records get.
	student := matching.StudentProfile{
		ID:       "student-1",
		Semester: 1,
		GPA:      0,
	}
	minGPA := 4.0
	mkZero := func(id string) json.RawMessage {
		return rawOpportunity(t, matching.OpportunityRequirement{
			ID:             id,
			MinSemester:    10,
			MinGPA:         &minGPA,
			RequiredSkills: []string{"Kubernetes"},
		})
	}

	input := &Input{
		Student: student,
		Opportunities: []json.RawMessage{
			mkZero("opp-a"),
			json.RawMessage(`{"id": "opp-b", "minSemester": "not-a-number"}`),
			mkZero("opp-c"),
		},
	}

	output, err := handler.Execute(context.Background(), input)

	require.NoError(t, err)
	require.Len(t, output.RankedOpportunities, 3)
	for _, r := range output.RankedOpportunities {
		assert.Equal(t, 0.0, r.CompatibilityScore)
	}
	assert.Equal(t, "opp-a", output.RankedOpportunities[0].OpportunityID)
	assert.Equal(t, "opp-b", output.RankedOpportunities[1].OpportunityID)
	assert.Equal(t, "opp-c", output.RankedOpportunities[2].OpportunityID)
}

func TestHandler_Execute_InputValidation(t *testing.T) {
	handler := NewHandler(createTestConfig(), logger.NewTestLogger(t))

	_, err := handler.Execute(context.Background(), nil)
	assert.ErrorIs(t, err, ErrNilInput)

	_, err = handler.Execute(context.Background(), &Input{})
	assert.Error(t, err)
}

func TestHandler_Execute_EmptyBatch(t *testing.T) {
	handler := NewHandler(createTestConfig(), logger.NewTestLogger(t))

	output, err := handler.Execute(context.Background(), &Input{Student: createTestStudent()})

	require.NoError(t, err)
	assert.Empty(t, output.RankedOpportunities)
	assert.Equal(t, 0, output.TotalEvaluated)
}
