package matching

import (
	"errors"
	"math"
)

// ErrEmptyVocabulary is returned when neither document yields a single
// character bigram, so no vector space exists to compare in.
var ErrEmptyVocabulary = errors.New("empty bigram vocabulary")

// bigramVectorizer turns two short documents into tf-idf weighted character
// bigram vectors and measures their cosine similarity. The idf is smoothed
// over the two-document corpus (idf = ln((1+n)/(1+df)) + 1) and vectors are
// l2-normalized, so the cosine reduces to a dot product.
//
// The vectorizer is stateless and safe for concurrent use; it is constructed
// once per engine and owned by it.
type bigramVectorizer struct{}

// CosineSimilarity returns a value in [0,1]. A document with fewer than two
// characters produces a zero vector and a similarity of zero rather than an
// error, as long as the other document still populates the vocabulary.
func (bigramVectorizer) CosineSimilarity(docA, docB string) (float64, error) {
	countsA := bigramCounts(docA)
	countsB := bigramCounts(docB)
	if len(countsA) == 0 && len(countsB) == 0 {
		return 0, ErrEmptyVocabulary
	}

	vocab := make(map[string]struct{}, len(countsA)+len(countsB))
	for b := range countsA {
		vocab[b] = struct{}{}
	}
	for b := range countsB {
		vocab[b] = struct{}{}
	}

	const corpusSize = 2.0
	var dot, normA, normB float64
	for bigram := range vocab {
		df := 0.0
		if countsA[bigram] > 0 {
			df++
		}
		if countsB[bigram] > 0 {
			df++
		}
		idf := math.Log((1+corpusSize)/(1+df)) + 1

		wa := float64(countsA[bigram]) * idf
		wb := float64(countsB[bigram]) * idf
		dot += wa * wb
		normA += wa * wa
		normB += wb * wb
	}

	if normA == 0 || normB == 0 {
		return 0, nil
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB)), nil
}

// bigramCounts slides a two-rune window over the document, spaces included,
// mirroring a character-level ngram analyzer.
func bigramCounts(doc string) map[string]int {
	runes := []rune(doc)
	if len(runes) < 2 {
		return nil
	}
	counts := make(map[string]int, len(runes)-1)
	for i := 0; i+1 < len(runes); i++ {
		counts[string(runes[i:i+2])]++
	}
	return counts
}
