package pricing

import (
	"sort"
	"strings"

	"crossborder/internal/model"
)

// Classifier search limits and score weights.
const (
	hintedKeywordLimit   = 5  // keywords used in the chapter-restricted pass
	hintedChapterCap     = 10 // candidate rows kept per hinted chapter
	openKeywordLimit     = 8  // keywords used in the unrestricted pass
	openPerKeywordCap    = 30 // candidate rows kept per keyword, unrestricted
	maxCandidates        = 10
	scoreKeywordMatch    = 10
	scoreTitleWordMatch  = 15
	scoreChapterMatch    = 20
	penaltyShortDesc     = 5  // description shorter than 30 chars
	penaltyGenericOther  = 10 // "other"-style residual heading shorter than 50 chars
	shortDescLen         = 30
	genericOtherDescLen  = 50
	leadingTitleWords    = 3
	leadingTitleWordMin  = 5 // leading title words must be longer than 4 chars
	maxConfidence        = 100
)

// Candidate is one ranked tariff classification for an item description.
type Candidate struct {
	Tariff     model.TariffCode `json:"tariff"`
	Confidence int              `json:"confidence"` // 0..100
}

// Classifier maps free-text item descriptions to harmonized tariff codes by
// keyword search over the snapshot's tariff table. All matching is in-memory
// substring containment; the tariff table's row order is the tie-break order.
type Classifier struct {
	snapshot *Snapshot
}

func NewClassifier(snapshot *Snapshot) *Classifier {
	return &Classifier{snapshot: snapshot}
}

// Classify returns up to 10 tariff candidates ranked by confidence. A category
// hint narrows the first search pass to that category's likely chapters.
// Failure to classify is recoverable: the caller flags the item for manual
// review rather than aborting the batch.
func (c *Classifier) Classify(text, categoryHint string) ([]Candidate, error) {
	keywords := ExtractKeywords(text)
	if len(keywords) == 0 {
		return nil, newError(ErrLookupNotFound, "no usable keywords in %q", text).
			withSuggestion("add more descriptive detail to the item title, e.g. material or product type")
	}

	hintChapters := c.hintChapters(categoryHint)
	candidates := c.searchHinted(keywords, hintChapters)
	candidates = c.searchOpen(keywords, candidates)

	if len(candidates) == 0 {
		return nil, newError(ErrLookupNotFound, "no tariff code matches %q", strings.Join(keywords, " ")).
			withSuggestion("try a broader product noun, or set the tariff code override manually")
	}

	scored := c.score(candidates, keywords, titleWords(text), hintChapters)
	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Confidence > scored[j].Confidence
	})
	if len(scored) > maxCandidates {
		scored = scored[:maxCandidates]
	}
	return scored, nil
}

func (c *Classifier) hintChapters(categoryHint string) []string {
	if categoryHint == "" {
		return nil
	}
	chapters := c.snapshot.CategoryChapters[categoryHint]
	if len(chapters) > 3 {
		chapters = chapters[:3]
	}
	return chapters
}

// searchHinted scans the tariff table restricted to the hinted chapters using
// the leading keywords, keeping at most hintedChapterCap rows per chapter.
func (c *Classifier) searchHinted(keywords, chapters []string) []model.TariffCode {
	if len(chapters) == 0 {
		return nil
	}
	chapterSet := toSet(chapters)
	limit := min(len(keywords), hintedKeywordLimit)

	perChapter := make(map[string]int, len(chapters))
	taken := make(map[string]struct{})
	var out []model.TariffCode
	for _, t := range c.snapshot.TariffCodes {
		if _, hinted := chapterSet[t.ChapterCode]; !hinted {
			continue
		}
		if perChapter[t.ChapterCode] >= hintedChapterCap {
			continue
		}
		if _, dup := taken[t.Code]; dup {
			continue
		}
		desc := strings.ToLower(t.Description)
		for _, kw := range keywords[:limit] {
			if strings.Contains(desc, kw) {
				out = append(out, t)
				taken[t.Code] = struct{}{}
				perChapter[t.ChapterCode]++
				break
			}
		}
	}
	return out
}

// searchOpen unions an unrestricted scan across all chapters into the hinted
// results, deduplicated by code, capped per keyword.
func (c *Classifier) searchOpen(keywords []string, seed []model.TariffCode) []model.TariffCode {
	taken := make(map[string]struct{}, len(seed))
	for _, t := range seed {
		taken[t.Code] = struct{}{}
	}
	out := seed

	limit := min(len(keywords), openKeywordLimit)
	for _, kw := range keywords[:limit] {
		found := 0
		for _, t := range c.snapshot.TariffCodes {
			if found >= openPerKeywordCap {
				break
			}
			if !strings.Contains(strings.ToLower(t.Description), kw) {
				continue
			}
			// Rows the hinted pass already took must not consume the cap.
			if _, dup := taken[t.Code]; dup {
				continue
			}
			found++
			taken[t.Code] = struct{}{}
			out = append(out, t)
		}
	}
	return out
}

func (c *Classifier) score(candidates []model.TariffCode, keywords, title, hintChapters []string) []Candidate {
	chapterSet := toSet(hintChapters)

	leading := make([]string, 0, leadingTitleWords)
	for _, w := range title {
		if len(leading) == leadingTitleWords {
			break
		}
		leading = append(leading, w)
	}

	scored := make([]Candidate, 0, len(candidates))
	for _, t := range candidates {
		desc := strings.ToLower(t.Description)
		score := 0
		for _, kw := range keywords {
			if strings.Contains(desc, kw) {
				score += scoreKeywordMatch
			}
		}
		for _, w := range leading {
			if len(w) >= leadingTitleWordMin && strings.Contains(desc, w) {
				score += scoreTitleWordMatch
			}
		}
		if _, hinted := chapterSet[t.ChapterCode]; hinted {
			score += scoreChapterMatch
		}
		if len(desc) < shortDescLen {
			score -= penaltyShortDesc
		}
		if len(desc) < genericOtherDescLen && strings.Contains(desc, "other") {
			score -= penaltyGenericOther
		}
		if score < 0 {
			score = 0
		}
		if score > maxConfidence {
			score = maxConfidence
		}
		scored = append(scored, Candidate{Tariff: t, Confidence: score})
	}
	return scored
}

func toSet(items []string) map[string]struct{} {
	set := make(map[string]struct{}, len(items))
	for _, item := range items {
		set[item] = struct{}{}
	}
	return set
}
