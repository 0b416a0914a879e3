package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractKeywords(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{
			name: "lowercases and strips punctuation",
			text: "Pokemon Card: Charizard!!",
			want: []string{"pokemon", "card", "charizard"},
		},
		{
			name: "keeps hyphens",
			text: "T-shirt long-sleeve",
			want: []string{"t-shirt", "long-sleeve"},
		},
		{
			name: "drops short tokens and stop words",
			text: "New RARE figure in MINT condition xy",
			want: []string{"figure"},
		},
		{
			name: "deduplicates preserving first occurrence",
			text: "card game card deck game",
			want: []string{"card", "game", "deck"},
		},
		{
			name: "empty input",
			text: "",
			want: []string{},
		},
		{
			name: "only noise",
			text: "new used rare a b",
			want: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExtractKeywords(tt.text))
		})
	}
}

func TestTitleWordsKeepStopWords(t *testing.T) {
	// The scorer weights leading title words before any filtering, so stop
	// words must survive here.
	assert.Equal(t, []string{"new", "trading", "card"}, titleWords("New Trading Card"))
}
