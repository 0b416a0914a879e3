package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"crossborder/internal/model"
)

func TestClassifyWithCategoryHint(t *testing.T) {
	// Keywords "card" and "trading" with the Pokemon hint must rank the
	// trading-card heading first, inside the hinted chapter, well above 50.
	c := NewClassifier(testSnapshot())

	candidates, err := c.Classify("card trading", "Pokemon")
	require.NoError(t, err)
	require.NotEmpty(t, candidates)

	top := candidates[0]
	assert.Equal(t, "9504.40", top.Tariff.Code)
	assert.Equal(t, "95", top.Tariff.ChapterCode)
	assert.Greater(t, top.Confidence, 50)
}

func TestClassifyNoKeywords(t *testing.T) {
	c := NewClassifier(testSnapshot())

	_, err := c.Classify("new rare a", "")
	require.Error(t, err)
	assert.Equal(t, ErrLookupNotFound, KindOf(err))
	assert.NotEmpty(t, err.(*Error).Suggestion)
}

func TestClassifyNoCandidates(t *testing.T) {
	c := NewClassifier(testSnapshot())

	_, err := c.Classify("quantum flux capacitor", "")
	require.Error(t, err)
	assert.Equal(t, ErrLookupNotFound, KindOf(err))
}

func TestClassifyPenalizesGenericHeadings(t *testing.T) {
	// "other" (chapter 95) matches nothing by keyword but is pulled in by the
	// hinted-chapter pass; its short generic description must keep it below a
	// specific heading.
	c := NewClassifier(testSnapshot())

	candidates, err := c.Classify("toys dolls other", "Pokemon")
	require.NoError(t, err)

	var specific, generic int
	for _, cand := range candidates {
		switch cand.Tariff.Code {
		case "9503.00":
			specific = cand.Confidence
		case "9504.90":
			generic = cand.Confidence
		}
	}
	assert.Greater(t, specific, generic)
}

func TestClassifyConfidenceClamped(t *testing.T) {
	c := NewClassifier(testSnapshot())

	candidates, err := c.Classify("playing cards trading card game cards decks", "Pokemon")
	require.NoError(t, err)
	for _, cand := range candidates {
		assert.GreaterOrEqual(t, cand.Confidence, 0)
		assert.LessOrEqual(t, cand.Confidence, maxConfidence)
	}
}

func TestClassifyStableTieBreak(t *testing.T) {
	// Two headings scoring identically keep their tariff-table order.
	snap := &Snapshot{
		TariffCodes: []model.TariffCode{
			tariff("1111.11", "widget assembly of standard construction", "11", "0.01", false, "0"),
			tariff("1111.22", "widget assembly of standard construction", "11", "0.02", false, "0"),
		},
		Policies: testSnapshot().Policies,
	}
	c := NewClassifier(snap)

	candidates, err := c.Classify("widget assembly", "")
	require.NoError(t, err)
	require.Len(t, candidates, 2)
	assert.Equal(t, "1111.11", candidates[0].Tariff.Code)
	assert.Equal(t, "1111.22", candidates[1].Tariff.Code)
	assert.Equal(t, candidates[0].Confidence, candidates[1].Confidence)
}

func TestClassifyCapsCandidates(t *testing.T) {
	snap := &Snapshot{}
	for i := 0; i < 40; i++ {
		snap.TariffCodes = append(snap.TariffCodes,
			tariff(code(i), "articles containing widget material, not elsewhere specified", "20", "0.01", false, "0"))
	}
	c := NewClassifier(snap)

	candidates, err := c.Classify("widget material", "")
	require.NoError(t, err)
	assert.Len(t, candidates, maxCandidates)
}

func TestSearchOpenCapSkipsHintedRows(t *testing.T) {
	// Rows already taken by the hinted pass must not consume the open pass's
	// per-keyword cap, or hinted categories would starve out new candidates.
	snap := &Snapshot{CategoryChapters: map[string][]string{"Widgets": {"20"}}}
	for i := 0; i < 10; i++ {
		snap.TariffCodes = append(snap.TariffCodes,
			tariff(code(i), "widget articles of the hinted chapter", "20", "0.01", false, "0"))
	}
	for i := 10; i < 45; i++ {
		snap.TariffCodes = append(snap.TariffCodes,
			tariff(code(i), "widget articles of another chapter", "30", "0.01", false, "0"))
	}
	c := NewClassifier(snap)

	keywords := []string{"widget"}
	seed := c.searchHinted(keywords, []string{"20"})
	require.Len(t, seed, hintedChapterCap)

	all := c.searchOpen(keywords, seed)
	assert.Len(t, all, hintedChapterCap+openPerKeywordCap)
}

func code(i int) string {
	return string(rune('a'+i/26)) + string(rune('a'+i%26))
}
