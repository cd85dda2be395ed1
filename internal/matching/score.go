package matching

import (
	"fmt"
	"math"
)

// Engine is the compatibility scoring engine. It owns the skill matcher and
// its vectorizer, constructed once at process start and read-only afterwards.
// Engines are stateless per request and safe for concurrent use.
type Engine struct {
	skills skillMatcher
}

func NewEngine() *Engine {
	return &Engine{}
}

// Score computes the 0-100 compatibility between a student and one
// opportunity, along with the per-criterion breakdown. The breakdown carries
// the raw signed contributions; only the final score is clamped and rounded.
func (e *Engine) Score(student StudentProfile, opp OpportunityRequirement) (float64, Breakdown) {
	skillScore, tier := e.skills.Score(student.TechnicalSkills, opp.RequiredSkills)

	b := Breakdown{
		Semester:     semesterScore(student.Semester, opp.MinSemester),
		GPA:          gpaScore(student.GPA, opp.MinGPA),
		Skills:       skillScore * (skillsWeight / 100),
		Experience:   experienceScore(student.ExperienceCount, opp.MinExperienceYears),
		Projects:     projectScore(student.ProjectCount),
		Availability: availabilityScore(student.Available),
		SkillTier:    tier,
	}

	total := b.Semester + b.GPA + b.Skills + b.Experience + b.Projects + b.Availability
	return round2(clamp(total, 0, 100)), b
}

// scoreSafe isolates a single scoring call: any panic degrades to a zero
// score instead of aborting the batch.
func (e *Engine) scoreSafe(student StudentProfile, opp OpportunityRequirement) (score float64, err error) {
	defer func() {
		if r := recover(); r != nil {
			score = 0
			err = fmt.Errorf("scoring opportunity %s: %v", opp.ID, r)
		}
	}()
	score, _ = e.Score(student, opp)
	return score, nil
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(v, hi))
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
