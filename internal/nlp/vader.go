package nlp

import (
	"sync"

	"github.com/jonreiter/govader"
)

var (
	vaderOnce     sync.Once
	vaderAnalyzer *govader.SentimentIntensityAnalyzer
)

// VaderScorer scores text with the VADER compound score, which is already
// normalised to [-1, 1].
type VaderScorer struct {
	analyzer *govader.SentimentIntensityAnalyzer
}

// NewVaderScorer returns a scorer over the shared VADER analyzer. The lexicon
// is loaded on first use and only read afterwards.
func NewVaderScorer() VaderScorer {
	vaderOnce.Do(func() {
		vaderAnalyzer = govader.NewSentimentIntensityAnalyzer()
	})
	return VaderScorer{analyzer: vaderAnalyzer}
}

// Polarity returns the compound score of text.
func (v VaderScorer) Polarity(text string) float64 {
	return v.analyzer.PolarityScores(text).Compound
}
