package matching

import "sort"

// Rank scores every opportunity against the student and returns the results
// sorted by descending score. The sort is stable, so ties keep their input
// order. A failure while scoring one opportunity records that opportunity
// with a zero score; it never fails the batch.
func (e *Engine) Rank(student StudentProfile, opportunities []OpportunityRequirement) []CompatibilityResult {
	results := make([]CompatibilityResult, 0, len(opportunities))
	for _, opp := range opportunities {
		score, err := e.scoreSafe(student, opp)
		if err != nil {
			score = 0
		}
		results = append(results, CompatibilityResult{
			Opportunity: opp,
			Score:       score,
		})
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})
	return results
}
