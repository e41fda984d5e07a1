package nlp

import (
	"sort"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// KeyTermExtractor ranks repeated noun phrases.
type KeyTermExtractor struct {
	MinLen     int
	MaxLen     int
	Candidates int
	MaxTerms   int
	MinCount   int
}

// DefaultKeyTermExtractor keeps phrases of 4..49 characters seen at least
// twice, ranking the top 15 and returning at most 10.
func DefaultKeyTermExtractor() KeyTermExtractor {
	return KeyTermExtractor{MinLen: 3, MaxLen: 50, Candidates: 15, MaxTerms: 10, MinCount: 2}
}

// ExtractKeyTerms parses text and returns its key terms.
func (e KeyTermExtractor) ExtractKeyTerms(text string) ([]string, error) {
	doc, err := Parse(text)
	if err != nil {
		return nil, err
	}
	return e.Extract(doc), nil
}

// Extract returns title-cased key terms ordered by descending count. Ties
// keep first appearance order. The result may be empty.
func (e KeyTermExtractor) Extract(doc *Document) []string {
	// Casers carry state and must not be shared across goroutines.
	caser := cases.Title(language.English)

	counts := make(map[string]int)
	display := make(map[string]string)
	var order []string
	for _, phrase := range doc.NounPhrases() {
		title := caser.String(phrase)
		n := Length(title)
		if n <= e.MinLen || n >= e.MaxLen || isNumeric(title) {
			continue
		}
		key := strings.ToLower(title)
		if _, seen := counts[key]; !seen {
			order = append(order, key)
			display[key] = title
		}
		counts[key]++
	}

	sort.SliceStable(order, func(a, b int) bool {
		return counts[order[a]] > counts[order[b]]
	})
	if e.Candidates > 0 && len(order) > e.Candidates {
		order = order[:e.Candidates]
	}

	terms := make([]string, 0, len(order))
	for _, key := range order {
		if counts[key] < e.MinCount {
			continue
		}
		terms = append(terms, display[key])
	}
	if e.MaxTerms > 0 && len(terms) > e.MaxTerms {
		terms = terms[:e.MaxTerms]
	}
	return terms
}

func isNumeric(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}
