package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Heuristics groups the fixed thresholds used by the local fallback
// computations and the model generation parameters. Values are read once at
// startup and passed by value into each component.
type Heuristics struct {
	Summary    SummaryHeuristics    `yaml:"summary"`
	Notes      NotesHeuristics      `yaml:"notes"`
	KeyTerms   KeyTermHeuristics    `yaml:"key_terms"`
	Sentiment  SentimentHeuristics  `yaml:"sentiment"`
	Generation GenerationHeuristics `yaml:"generation"`
}

type SummaryHeuristics struct {
	MinChars     int `yaml:"min_chars"`
	MaxSentences int `yaml:"max_sentences"`
	SentenceMin  int `yaml:"sentence_min"`
}

type NotesHeuristics struct {
	PDFMinChars       int `yaml:"pdf_min_chars"`
	TextMinChars      int `yaml:"text_min_chars"`
	SentenceMin       int `yaml:"sentence_min"`
	SentenceMax       int `yaml:"sentence_max"`
	LeadSentences     int `yaml:"lead_sentences"`
	PDFSummaryCap     int `yaml:"pdf_summary_cap"`
	TextSummaryCap    int `yaml:"text_summary_cap"`
	KeyPoints         int `yaml:"key_points"`
	ShortSummaryChars int `yaml:"short_summary_chars"`
	CharsPerPage      int `yaml:"chars_per_page"`
}

type KeyTermHeuristics struct {
	MinLen     int `yaml:"min_len"`
	MaxLen     int `yaml:"max_len"`
	Candidates int `yaml:"candidates"`
	MaxTerms   int `yaml:"max_terms"`
	MinCount   int `yaml:"min_count"`
}

type SentimentHeuristics struct {
	StressKeywords    []string `yaml:"stress_keywords"`
	StressPenalty     float64  `yaml:"stress_penalty"`
	PositiveThreshold float64  `yaml:"positive_threshold"`
	NegativeThreshold float64  `yaml:"negative_threshold"`
}

type GenerationHeuristics struct {
	Temperature          float32 `yaml:"temperature"`
	TopP                 float32 `yaml:"top_p"`
	TopK                 float32 `yaml:"top_k"`
	MaxOutputTokens      int32   `yaml:"max_output_tokens"`
	SentimentTemperature float32 `yaml:"sentiment_temperature"`
	SentimentMaxTokens   int32   `yaml:"sentiment_max_tokens"`
}

// DefaultHeuristics returns the built-in values.
func DefaultHeuristics() Heuristics {
	return Heuristics{
		Summary: SummaryHeuristics{
			MinChars:     50,
			MaxSentences: 3,
			SentenceMin:  10,
		},
		Notes: NotesHeuristics{
			PDFMinChars:       100,
			TextMinChars:      50,
			SentenceMin:       20,
			SentenceMax:       200,
			LeadSentences:     3,
			PDFSummaryCap:     300,
			TextSummaryCap:    400,
			KeyPoints:         5,
			ShortSummaryChars: 100,
			CharsPerPage:      2000,
		},
		KeyTerms: KeyTermHeuristics{
			MinLen:     3,
			MaxLen:     50,
			Candidates: 15,
			MaxTerms:   10,
			MinCount:   2,
		},
		Sentiment: SentimentHeuristics{
			StressKeywords:    []string{"stress", "anxious", "worried", "overwhelmed", "panic"},
			StressPenalty:     0.3,
			PositiveThreshold: 0.1,
			NegativeThreshold: -0.1,
		},
		Generation: GenerationHeuristics{
			Temperature:          0.7,
			TopP:                 0.8,
			TopK:                 40,
			MaxOutputTokens:      1000,
			SentimentTemperature: 0.1,
			SentimentMaxTokens:   10,
		},
	}
}

// LoadHeuristics returns the defaults overlaid with the YAML file at path.
// An empty path yields the defaults.
func LoadHeuristics(path string) (Heuristics, error) {
	h := DefaultHeuristics()
	if strings.TrimSpace(path) == "" {
		return h, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return h, fmt.Errorf("read heuristics: %w", err)
	}
	if err := yaml.Unmarshal(data, &h); err != nil {
		return DefaultHeuristics(), fmt.Errorf("parse heuristics: %w", err)
	}
	if err := h.Validate(); err != nil {
		return DefaultHeuristics(), err
	}
	return h, nil
}

// Validate rejects values that would break the length and count invariants.
func (h Heuristics) Validate() error {
	if h.Summary.MinChars < 0 || h.Summary.MaxSentences <= 0 {
		return fmt.Errorf("summary.max_sentences must be positive")
	}
	if h.Notes.SentenceMax != 0 && h.Notes.SentenceMax <= h.Notes.SentenceMin {
		return fmt.Errorf("notes.sentence_max must exceed notes.sentence_min")
	}
	if h.Notes.PDFSummaryCap <= 0 || h.Notes.TextSummaryCap <= 0 {
		return fmt.Errorf("notes summary caps must be positive")
	}
	if h.Notes.CharsPerPage <= 0 {
		return fmt.Errorf("notes.chars_per_page must be positive")
	}
	if h.KeyTerms.MaxLen <= h.KeyTerms.MinLen {
		return fmt.Errorf("key_terms.max_len must exceed key_terms.min_len")
	}
	if h.KeyTerms.MaxTerms <= 0 || h.KeyTerms.Candidates < h.KeyTerms.MaxTerms {
		return fmt.Errorf("key_terms.candidates must be at least key_terms.max_terms")
	}
	if h.Sentiment.NegativeThreshold > h.Sentiment.PositiveThreshold {
		return fmt.Errorf("sentiment thresholds are inverted")
	}
	return nil
}
