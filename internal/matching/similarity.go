package matching

import "strings"

// SimilarityTier identifies which strategy of the fallback chain produced a
// skill similarity score.
type SimilarityTier int

const (
	// TierNone covers the trivial edge cases: no required skills, or a
	// student with no skills at all.
	TierNone SimilarityTier = iota
	// TierExact means at least one verbatim skill match was found.
	TierExact
	// TierTFIDF means the score came from character-bigram cosine similarity.
	TierTFIDF
	// TierJaccard is the substring/character-set fallback used when the
	// bigram vectorization is degenerate.
	TierJaccard
)

func (t SimilarityTier) String() string {
	switch t {
	case TierExact:
		return "exact"
	case TierTFIDF:
		return "tfidf"
	case TierJaccard:
		return "jaccard"
	default:
		return "none"
	}
}

// skillMatcher computes the 0-100 similarity between a student's skills and
// an opportunity's required skills through an ordered chain of strategies:
// exact matches short-circuit, lexical closeness comes from tf-idf bigram
// cosine, and a substring/Jaccard pass guarantees a numeric answer when the
// vector space degenerates. It never fails; the worst case is a zero.
type skillMatcher struct {
	vectorizer bigramVectorizer
}

// Score returns the similarity in [0,100] and the tier that produced it.
// The trivial-list checks look at the raw inputs: a required list that only
// turns empty after trimming still counts as a requirement and falls through
// the tiers to 0.
func (m *skillMatcher) Score(studentSkills, requiredSkills []string) (float64, SimilarityTier) {
	if len(requiredSkills) == 0 {
		// Nothing required, nothing to fail.
		return 100, TierNone
	}
	if len(studentSkills) == 0 {
		return 0, TierNone
	}

	student := normalizeSkills(studentSkills)
	required := normalizeSkills(requiredSkills)

	if exact := exactMatches(student, required); exact > 0 {
		return float64(exact) / float64(len(required)) * 100, TierExact
	}

	similarity, err := m.vectorizer.CosineSimilarity(
		strings.Join(student, " "),
		strings.Join(required, " "),
	)
	if err == nil {
		return similarity * 100, TierTFIDF
	}

	return substringSimilarity(student, required) * 100, TierJaccard
}

// normalizeSkills lower-cases, trims, and drops empty entries while keeping
// the original order.
func normalizeSkills(skills []string) []string {
	out := make([]string, 0, len(skills))
	for _, s := range skills {
		s = strings.ToLower(strings.TrimSpace(s))
		if s != "" {
			out = append(out, s)
		}
	}
	return out
}

// exactMatches counts distinct student skills present verbatim in the
// required set.
func exactMatches(student, required []string) int {
	requiredSet := make(map[string]struct{}, len(required))
	for _, s := range required {
		requiredSet[s] = struct{}{}
	}
	seen := make(map[string]struct{}, len(student))
	count := 0
	for _, s := range student {
		if _, dup := seen[s]; dup {
			continue
		}
		seen[s] = struct{}{}
		if _, ok := requiredSet[s]; ok {
			count++
		}
	}
	return count
}

// substringSimilarity averages, over the required skills, the best per-skill
// similarity against any student skill: 1.0 on a substring containment in
// either direction, else the Jaccard index of the character sets.
func substringSimilarity(student, required []string) float64 {
	if len(required) == 0 {
		return 0
	}
	var total float64
	for _, req := range required {
		best := 0.0
		for _, st := range student {
			if strings.Contains(st, req) || strings.Contains(req, st) {
				best = 1.0
				break
			}
			if j := jaccardChars(req, st); j > best {
				best = j
			}
		}
		total += best
	}
	return total / float64(len(required))
}

// jaccardChars computes |A∩B| / |A∪B| over the rune sets of two strings.
func jaccardChars(a, b string) float64 {
	setA := runeSet(a)
	setB := runeSet(b)
	if len(setA) == 0 || len(setB) == 0 {
		return 0
	}
	intersection := 0
	for r := range setA {
		if _, ok := setB[r]; ok {
			intersection++
		}
	}
	union := len(setA) + len(setB) - intersection
	if union == 0 {
		return 0
	}
	return float64(intersection) / float64(union)
}

func runeSet(s string) map[rune]struct{} {
	set := make(map[rune]struct{}, len(s))
	for _, r := range s {
		set[r] = struct{}{}
	}
	return set
}
