package trivia

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func searchFixture() []Question {
	return []Question{
		{ID: 1, Text: "What is the capital of France?", Answer: "Paris"},
		{ID: 2, Text: "Who painted the Mona Lisa?", Answer: "Da Vinci"},
		{ID: 3, Text: "In which city is the Louvre?", Answer: "Paris"},
	}
}

func TestSearchEmptyTermMatchesAll(t *testing.T) {
	items := searchFixture()
	assert.Equal(t, items, Search(items, ""))
}

func TestSearchIsCaseInsensitive(t *testing.T) {
	items := []Question{{ID: 1, Text: "Paris is the capital of France"}}

	assert.Len(t, Search(items, "paris"), 1)
	assert.Len(t, Search(items, "PARIS"), 1)
	assert.Len(t, Search(items, "PaRiS"), 1)
}

func TestSearchPreservesOrder(t *testing.T) {
	got := Search(searchFixture(), "the")
	if assert.Len(t, got, 3) {
		assert.Equal(t, int64(1), got[0].ID)
		assert.Equal(t, int64(2), got[1].ID)
		assert.Equal(t, int64(3), got[2].ID)
	}
}

func TestSearchMatchesTextNotAnswer(t *testing.T) {
	// "Paris" appears only in answers; the matcher only looks at text.
	assert.Empty(t, Search(searchFixture(), "paris"))
	assert.Empty(t, Search(searchFixture(), "volcano"))
}
