// internal/workers/profile/extract-resume-skills/parser.go
package extractresumeskills

import (
	"regexp"
	"sort"
	"strconv"
	"strings"
)

var (
	// Catalog keywords can contain +, # or spaces, so plain \b boundaries
	// do not work for all of them.
	skillPatterns = compileSkillPatterns()

	semesterOrdinalRe = regexp.MustCompile(`(\d{1,2})\s*(?:°|º|er|do|to|mo|vo|no)?\s*semestre`)
	semesterLabelRe   = regexp.MustCompile(`semestre[:\s]+(\d{1,2})`)
	gpaRe             = regexp.MustCompile(`(?:promedio|gpa)[:\s]*([0-9]+(?:[.,][0-9]+)?)`)
)

func compileSkillPatterns() map[string]*regexp.Regexp {
	patterns := make(map[string]*regexp.Regexp, len(skillCatalog))
	for kw := range skillCatalog {
		patterns[kw] = regexp.MustCompile(`(?:^|[^a-z0-9+#])` + regexp.QuoteMeta(kw) + `(?:$|[^a-z0-9+#])`)
	}
	return patterns
}

func parseResume(text string) *Output {
	lines := splitLines(text)
	lowerLines := make([]string, len(lines))
	for i, l := range lines {
		lowerLines[i] = strings.ToLower(l)
	}
	textLower := strings.ToLower(strings.Join(strings.Fields(text), " "))

	out := &Output{
		Skills:      []string{},
		Projects:    []string{},
		Experiences: []string{},
	}

	out.Skills = extractSkills(textLower, lines, lowerLines)
	out.Degree = extractDegree(lines, lowerLines)
	out.Semester = extractSemester(textLower)
	out.GPA = extractGPA(textLower)
	out.Projects = extractSection(lines, lowerLines, projectSectionKeywords,
		concat(skillSectionKeywords, educationSectionKeywords, experienceSectionKeywords))
	out.Experiences = extractSection(lines, lowerLines, experienceSectionKeywords,
		concat(skillSectionKeywords, educationSectionKeywords, projectSectionKeywords))

	return out
}

func splitLines(text string) []string {
	var lines []string
	for _, l := range strings.Split(text, "\n") {
		if trimmed := strings.TrimSpace(l); trimmed != "" {
			lines = append(lines, trimmed)
		}
	}
	return lines
}

func extractSkills(textLower string, lines, lowerLines []string) []string {
	seen := make(map[string]bool)
	var skills []string

	add := func(skill string) {
		skill = strings.TrimSpace(skill)
		if skill == "" || len(skill) >= 100 {
			return
		}
		key := strings.ToLower(skill)
		if canonical, ok := skillCatalog[key]; ok {
			skill = canonical
			key = strings.ToLower(canonical)
		}
		if !seen[key] {
			seen[key] = true
			skills = append(skills, skill)
		}
	}

	// Catalog scan over the whole document, in stable order
	keywords := make([]string, 0, len(skillPatterns))
	for kw := range skillPatterns {
		keywords = append(keywords, kw)
	}
	sort.Strings(keywords)
	for _, kw := range keywords {
		if skillPatterns[kw].MatchString(textLower) {
			add(skillCatalog[kw])
		}
	}

	// Explicit skill lines: "habilidades: python, sql"
	for i, low := range lowerLines {
		for _, prefix := range []string{"skills:", "habilidades:", "habilidad:"} {
			if strings.HasPrefix(low, prefix) {
				tail := lines[i][len(prefix):]
				for _, item := range strings.Split(tail, ",") {
					add(item)
				}
			}
		}
	}

	return skills
}

func extractDegree(lines, lowerLines []string) string {
	// Heading followed by the degree on the next line, or on the same
	// line after a colon.
	for i, low := range lowerLines {
		if !containsAny(low, educationSectionKeywords) {
			continue
		}
		if idx := strings.Index(lines[i], ":"); idx >= 0 {
			if candidate := cleanDegreeLine(lines[i][idx+1:]); candidate != "" {
				return candidate
			}
		}
		if i+1 < len(lines) {
			if candidate := cleanDegreeLine(lines[i+1]); candidate != "" {
				return candidate
			}
		}
	}

	// Fallback: any line naming a degree
	for _, l := range lines {
		if containsAny(strings.ToLower(l), degreeKeywords) {
			if candidate := cleanDegreeLine(l); candidate != "" {
				return candidate
			}
		}
	}

	return ""
}

func cleanDegreeLine(raw string) string {
	candidate := strings.TrimSpace(raw)
	if idx := strings.Index(candidate, ","); idx >= 0 {
		candidate = strings.TrimSpace(candidate[:idx])
	}
	if len(candidate) <= 5 || len(candidate) >= 150 || strings.HasSuffix(candidate, ".") {
		return ""
	}
	// Lines with first-person action verbs are narrative, not a degree name
	lower := strings.ToLower(candidate)
	for _, verb := range []string{"desarrollé", "trabajé", "implementé", "creé", "participé", "dirigí"} {
		if strings.Contains(lower, verb) {
			return ""
		}
	}
	return candidate
}

func extractSemester(textLower string) int {
	if m := semesterLabelRe.FindStringSubmatch(textLower); m != nil {
		if n, err := strconv.Atoi(m[1]); err == nil && n >= 1 && n <= 12 {
			return n
		}
	}
	if m := semesterOrdinalRe.FindStringSubmatch(textLower); m != nil {
		if n, err := strconv.Atoi(m[1]); err == nil && n >= 1 && n <= 12 {
			return n
		}
	}
	return 0
}

func extractGPA(textLower string) float64 {
	m := gpaRe.FindStringSubmatch(textLower)
	if m == nil {
		return 0
	}
	raw := strings.ReplaceAll(m[1], ",", ".")
	gpa, err := strconv.ParseFloat(raw, 64)
	if err != nil || gpa < 0 || gpa > 10 {
		return 0
	}
	return gpa
}

func extractSection(lines, lowerLines []string, startKeywords, stopKeywords []string) []string {
	seen := make(map[string]bool)
	var items []string

	for i, low := range lowerLines {
		if !containsAny(low, startKeywords) {
			continue
		}
		end := i + 16
		if end > len(lines) {
			end = len(lines)
		}
		for _, line := range lines[i+1 : end] {
			if containsAny(strings.ToLower(line), stopKeywords) {
				break
			}
			if len(line) <= 5 || len(line) >= 500 || !hasLetter(line) {
				continue
			}
			if !seen[line] {
				seen[line] = true
				items = append(items, line)
			}
		}
	}

	return items
}

func concat(groups ...[]string) []string {
	var all []string
	for _, g := range groups {
		all = append(all, g...)
	}
	return all
}

func containsAny(s string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(s, kw) {
			return true
		}
	}
	return false
}

func hasLetter(s string) bool {
	for _, r := range s {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || r > 127 {
			return true
		}
	}
	return false
}
