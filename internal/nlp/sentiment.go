package nlp

import (
	"strings"
)

// Label is a coarse sentiment bucket.
type Label string

const (
	Positive Label = "positive"
	Negative Label = "negative"
	Neutral  Label = "neutral"
)

// ParseLabel accepts exactly one of the three label words, ignoring case and
// surrounding space.
func ParseLabel(raw string) (Label, bool) {
	switch Label(strings.ToLower(strings.TrimSpace(raw))) {
	case Positive:
		return Positive, true
	case Negative:
		return Negative, true
	case Neutral:
		return Neutral, true
	}
	return Neutral, false
}

// PolarityScorer maps text to a polarity in [-1, 1].
type PolarityScorer interface {
	Polarity(text string) float64
}

// Classifier buckets lexical polarity after a stress-keyword adjustment.
type Classifier struct {
	Scorer            PolarityScorer
	StressKeywords    []string
	StressPenalty     float64
	PositiveThreshold float64
	NegativeThreshold float64
}

// DefaultClassifier scores with VADER and the standard stress words.
func DefaultClassifier() Classifier {
	return Classifier{
		Scorer:            NewVaderScorer(),
		StressKeywords:    []string{"stress", "anxious", "worried", "overwhelmed", "panic"},
		StressPenalty:     0.3,
		PositiveThreshold: 0.1,
		NegativeThreshold: -0.1,
	}
}

// Score returns the adjusted polarity. The stress penalty is applied once
// when any keyword occurs as a substring and the result is not clamped.
func (c Classifier) Score(text string) float64 {
	polarity := c.Scorer.Polarity(text)
	lower := strings.ToLower(text)
	for _, kw := range c.StressKeywords {
		if kw != "" && strings.Contains(lower, strings.ToLower(kw)) {
			polarity -= c.StressPenalty
			break
		}
	}
	return polarity
}

// Classify never fails: any fault inside scoring yields Neutral.
func (c Classifier) Classify(text string) (label Label) {
	defer func() {
		if rec := recover(); rec != nil {
			label = Neutral
		}
	}()
	if c.Scorer == nil {
		return Neutral
	}

	polarity := c.Score(text)
	switch {
	case polarity > c.PositiveThreshold:
		return Positive
	case polarity < c.NegativeThreshold:
		return Negative
	default:
		return Neutral
	}
}
