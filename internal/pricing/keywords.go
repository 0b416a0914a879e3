package pricing

import "strings"

// stopWords are generic marketing/condition adjectives that carry no
// classification signal in listing titles.
var stopWords = map[string]struct{}{
	"new": {}, "used": {}, "rare": {}, "vintage": {}, "authentic": {},
	"genuine": {}, "original": {}, "limited": {}, "edition": {}, "mint": {},
	"sealed": {}, "vtg": {}, "japan": {}, "japanese": {}, "free": {},
	"shipping": {}, "item": {}, "lot": {}, "set": {}, "bundle": {},
	"excellent": {}, "good": {}, "great": {}, "condition": {}, "official": {},
	"sale": {}, "with": {}, "from": {}, "for": {}, "and": {}, "the": {},
}

// ExtractKeywords tokenizes a listing title/description for classification:
// lowercase, punctuation stripped (hyphens kept), tokens of 2 characters or
// fewer dropped, stop words dropped, duplicates removed. Order of first
// occurrence is preserved because the search passes cap by position.
func ExtractKeywords(text string) []string {
	tokens := tokenize(text)
	seen := make(map[string]struct{}, len(tokens))
	keywords := make([]string, 0, len(tokens))
	for _, tok := range tokens {
		if len(tok) <= 2 {
			continue
		}
		if _, stop := stopWords[tok]; stop {
			continue
		}
		if _, dup := seen[tok]; dup {
			continue
		}
		seen[tok] = struct{}{}
		keywords = append(keywords, tok)
	}
	return keywords
}

// titleWords returns the raw lowercased tokens in title order, before stop-word
// filtering. The scorer weights the leading title words separately since titles
// front-load the product noun.
func titleWords(text string) []string {
	return tokenize(text)
}

func tokenize(text string) []string {
	lowered := strings.ToLower(text)
	cleaned := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '-':
			return r
		default:
			return ' '
		}
	}, lowered)
	return strings.Fields(cleaned)
}
