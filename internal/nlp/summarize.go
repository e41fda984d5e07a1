package nlp

import (
	"sort"
	"strings"
)

// TooShortMessage is returned instead of a summary for inputs below the
// summarizer's minimum length.
const TooShortMessage = "Text is too short to summarize effectively."

// Summarizer picks the most representative sentences by word-frequency
// density.
type Summarizer struct {
	MinChars     int
	MaxSentences int
	Bounds       Bounds
}

// DefaultSummarizer returns the generic-path summarizer: 50 characters
// minimum, three sentences, sentences longer than 10 characters.
func DefaultSummarizer() Summarizer {
	return Summarizer{MinChars: 50, MaxSentences: 3, Bounds: Bounds{Min: 10}}
}

// Summarize returns up to maxSentences sentences of text in their original
// order. A maxSentences of zero or less uses s.MaxSentences.
func (s Summarizer) Summarize(text string, maxSentences int) (string, error) {
	if Length(CleanText(text)) < s.MinChars {
		return TooShortMessage, nil
	}
	doc, err := Parse(text)
	if err != nil {
		return "", err
	}
	return s.SummarizeDocument(doc, maxSentences), nil
}

// SummarizeDocument is Summarize for an already parsed document; it does not
// apply the minimum length check.
func (s Summarizer) SummarizeDocument(doc *Document, maxSentences int) string {
	if maxSentences <= 0 {
		maxSentences = s.MaxSentences
	}
	if maxSentences <= 0 {
		maxSentences = 3
	}

	sentences := doc.SentencesWithin(s.Bounds)
	if len(sentences) <= maxSentences {
		return strings.Join(sentences, " ")
	}

	freq := wordFrequency(doc.Words())
	scores := make([]float64, len(sentences))
	for i, sentence := range sentences {
		scores[i] = scoreSentence(sentence, freq)
	}

	order := make([]int, len(sentences))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return scores[order[a]] > scores[order[b]]
	})
	top := append([]int(nil), order[:maxSentences]...)
	sort.Ints(top)

	picked := make([]string, 0, len(top))
	for _, idx := range top {
		picked = append(picked, sentences[idx])
	}
	return strings.Join(picked, " ")
}

func wordFrequency(words []string) map[string]int {
	freq := make(map[string]int, len(words))
	for _, w := range words {
		if Length(w) > 2 {
			freq[strings.ToLower(w)]++
		}
	}
	return freq
}

// scoreSentence looks up whitespace-separated tokens as they are, so a word
// carrying punctuation ("cell.") scores 0.
func scoreSentence(sentence string, freq map[string]int) float64 {
	fields := strings.Fields(strings.ToLower(sentence))
	if len(fields) == 0 {
		return 0
	}
	total := 0
	for _, f := range fields {
		total += freq[f]
	}
	return float64(total) / float64(len(fields))
}
