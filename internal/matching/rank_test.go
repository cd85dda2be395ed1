package matching

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func gpaMin(v float64) *float64 { return &v }

func createTestStudent() StudentProfile {
	return StudentProfile{
		ID:              "student-1",
		Semester:        7,
		GPA:             3.6,
		TechnicalSkills: []string{"Python", "SQL"},
		ExperienceCount: 2,
		ProjectCount:    3,
		Available:       true,
	}
}

func TestEngine_Score_EndToEnd(t *testing.T) {
	engine := NewEngine()

	opp := OpportunityRequirement{
		ID:                 "opp-1",
		MinSemester:        5,
		MinGPA:             gpaMin(3.0),
		RequiredSkills:     []string{"Python", "SQL", "Docker"},
		MinExperienceYears: 1,
	}

	score, breakdown := engine.Score(createTestStudent(), opp)

	assert.InDelta(t, 21.0, breakdown.Semester, 1e-9)
	assert.InDelta(t, 18.0, breakdown.GPA, 1e-9)
	assert.InDelta(t, 26.6667, breakdown.Skills, 0.001)
	assert.InDelta(t, 15.0, breakdown.Experience, 1e-9)
	assert.InDelta(t, 10.0, breakdown.Projects, 1e-9)
	assert.InDelta(t, 5.0, breakdown.Availability, 1e-9)
	assert.Equal(t, TierExact, breakdown.SkillTier)

	assert.InDelta(t, 95.67, score, 1e-9)
}

func TestEngine_Score_ClampedToRange(t *testing.T) {
	engine := NewEngine()

	t.Run("severe mismatch clamps to zero", func(t *testing.T) {
		student := StudentProfile{Semester: 0, GPA: 0}
		opp := OpportunityRequirement{
			MinSemester:        10,
			MinGPA:             gpaMin(4.0),
			RequiredSkills:     []string{"rust", "haskell"},
			MinExperienceYears: 5,
		}
		score, _ := engine.Score(student, opp)
		assert.Equal(t, 0.0, score)
	})

	t.Run("maximum bonuses clamp to one hundred", func(t *testing.T) {
		student := StudentProfile{
			Semester:        20,
			GPA:             5.0,
			TechnicalSkills: []string{"python"},
			ExperienceCount: 10,
			ProjectCount:    5,
			Available:       true,
		}
		opp := OpportunityRequirement{
			MinSemester:        1,
			MinGPA:             gpaMin(3.0),
			RequiredSkills:     []string{"python"},
			MinExperienceYears: 1,
		}
		score, _ := engine.Score(student, opp)
		assert.Equal(t, 100.0, score)
	})

	t.Run("always within bounds on synthetic extremes", func(t *testing.T) {
		students := []StudentProfile{
			{},
			{Semester: 1000, GPA: 100, ProjectCount: 1 << 20, ExperienceCount: 1 << 20, Available: true},
			{Semester: -3, GPA: -1},
		}
		opps := []OpportunityRequirement{
			{},
			{MinSemester: 1 << 20, MinGPA: gpaMin(100), RequiredSkills: []string{"x"}},
			{MinSemester: -5, RequiredSkills: []string{"", " "}},
		}
		for _, s := range students {
			for _, o := range opps {
				score, _ := engine.Score(s, o)
				assert.GreaterOrEqual(t, score, 0.0)
				assert.LessOrEqual(t, score, 100.0)
			}
		}
	})
}

func TestEngine_Rank_Ordering(t *testing.T) {
	engine := NewEngine()
	student := createTestStudent()

	strong := OpportunityRequirement{ID: "strong", MinSemester: 5, RequiredSkills: []string{"python", "sql"}}
	weak := OpportunityRequirement{ID: "weak", MinSemester: 12, MinGPA: gpaMin(4.0), RequiredSkills: []string{"cobol"}}

	results := engine.Rank(student, []OpportunityRequirement{weak, strong})

	assert.Len(t, results, 2)
	assert.Equal(t, "strong", results[0].Opportunity.ID)
	assert.Equal(t, "weak", results[1].Opportunity.ID)
	assert.Greater(t, results[0].Score, results[1].Score)
}

func TestEngine_Rank_TiesKeepInputOrder(t *testing.T) {
	engine := NewEngine()
	student := createTestStudent()

	// A and B are identical requirements and therefore tie exactly; C is a
	// clear miss. Expected output order: A, B, C.
	tie := OpportunityRequirement{MinSemester: 5, RequiredSkills: []string{"python"}}
	a, b := tie, tie
	a.ID, b.ID = "A", "B"
	c := OpportunityRequirement{ID: "C", MinSemester: 20, RequiredSkills: []string{"fortran"}}

	results := engine.Rank(student, []OpportunityRequirement{a, b, c})

	assert.Equal(t, []string{"A", "B", "C"}, []string{
		results[0].Opportunity.ID,
		results[1].Opportunity.ID,
		results[2].Opportunity.ID,
	})
	assert.Equal(t, results[0].Score, results[1].Score)
}

func TestEngine_Rank_EmptyBatch(t *testing.T) {
	engine := NewEngine()
	results := engine.Rank(createTestStudent(), nil)
	assert.NotNil(t, results)
	assert.Len(t, results, 0)
}

func TestEngine_Rank_ScoresRoundedToTwoDecimals(t *testing.T) {
	engine := NewEngine()
	student := createTestStudent()
	opp := OpportunityRequirement{ID: "opp", MinSemester: 5, RequiredSkills: []string{"python", "sql", "docker"}}

	results := engine.Rank(student, []OpportunityRequirement{opp})
	score := results[0].Score
	assert.InDelta(t, score, math.Round(score*100)/100, 1e-9)
}
