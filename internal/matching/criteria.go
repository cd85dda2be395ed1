package matching

import "math"

// Criterion weights. They sum to 100; semester and GPA can additionally earn
// a capped bonus, and both can swing negative on a miss, so the aggregate is
// clamped once at the end.
const (
	semesterWeight     = 20.0
	semesterMaxBonus   = 5.0
	gpaWeight          = 15.0
	gpaMaxBonus        = 5.0
	skillsWeight       = 40.0
	experienceWeight   = 15.0
	projectsWeight     = 10.0
	availabilityWeight = 5.0

	// Two or more projects earns the full projects contribution.
	projectCeiling = 2.0
)

// semesterScore awards the full weight plus half a point per semester beyond
// the minimum (capped), or subtracts a penalty proportional to the deficit.
func semesterScore(semester, minSemester int) float64 {
	if semester >= minSemester {
		bonus := math.Min(float64(semester-minSemester)*0.5, semesterMaxBonus)
		return semesterWeight + bonus
	}
	deficit := float64(minSemester-semester) / math.Max(float64(minSemester), 1)
	return -math.Min(deficit*semesterWeight, semesterWeight)
}

// gpaScore treats a missing minimum as automatically satisfied. Exceeding
// the minimum earns five points per GPA point above it, capped.
func gpaScore(gpa float64, minGPA *float64) float64 {
	if minGPA == nil || gpa >= *minGPA {
		score := gpaWeight
		if minGPA != nil && *minGPA != 0 && gpa > *minGPA {
			score += math.Min((gpa-*minGPA)*5, gpaMaxBonus)
		}
		return score
	}
	deficit := (*minGPA - gpa) / math.Max(*minGPA, 1)
	return -math.Min(deficit*gpaWeight, gpaWeight)
}

// experienceScore compares the number of experience records against the
// required years. A zero requirement degenerates to "any experience at all
// earns the full weight".
func experienceScore(experienceCount, minExperienceYears int) float64 {
	ratio := float64(experienceCount) / math.Max(float64(minExperienceYears), 1)
	return math.Min(ratio, 1.0) * experienceWeight
}

func projectScore(projectCount int) float64 {
	return math.Min(float64(projectCount)/projectCeiling, 1.0) * projectsWeight
}

func availabilityScore(available bool) float64 {
	if available {
		return availabilityWeight
	}
	return 0
}
