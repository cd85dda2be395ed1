package matching

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBigramVectorizer_CosineSimilarity(t *testing.T) {
	var v bigramVectorizer

	t.Run("identical documents", func(t *testing.T) {
		sim, err := v.CosineSimilarity("python sql", "python sql")
		assert.NoError(t, err)
		assert.InDelta(t, 1.0, sim, 1e-9)
	})

	t.Run("near identical skills score high", func(t *testing.T) {
		sim, err := v.CosineSimilarity("python", "python3")
		assert.NoError(t, err)
		assert.Greater(t, sim, 0.8)
		assert.Less(t, sim, 1.0)
	})

	t.Run("no shared bigrams", func(t *testing.T) {
		sim, err := v.CosineSimilarity("ab", "cd")
		assert.NoError(t, err)
		assert.InDelta(t, 0.0, sim, 1e-9)
	})

	t.Run("one degenerate document yields zero not error", func(t *testing.T) {
		sim, err := v.CosineSimilarity("c", "golang")
		assert.NoError(t, err)
		assert.Equal(t, 0.0, sim)
	})

	t.Run("both documents degenerate", func(t *testing.T) {
		_, err := v.CosineSimilarity("c", "r")
		assert.ErrorIs(t, err, ErrEmptyVocabulary)
	})

	t.Run("empty documents", func(t *testing.T) {
		_, err := v.CosineSimilarity("", "")
		assert.ErrorIs(t, err, ErrEmptyVocabulary)
	})

	t.Run("similarity is symmetric", func(t *testing.T) {
		a, errA := v.CosineSimilarity("javascript react", "typescript node")
		b, errB := v.CosineSimilarity("typescript node", "javascript react")
		assert.NoError(t, errA)
		assert.NoError(t, errB)
		assert.InDelta(t, a, b, 1e-12)
	})

	t.Run("bounded to unit interval", func(t *testing.T) {
		docs := []string{"docker kubernetes", "sql", "machine learning", "aa", "a b c"}
		for _, da := range docs {
			for _, db := range docs {
				sim, err := v.CosineSimilarity(da, db)
				if err != nil {
					continue
				}
				assert.GreaterOrEqual(t, sim, 0.0)
				assert.LessOrEqual(t, sim, 1.0+1e-9)
			}
		}
	})
}
