package notes

import (
	"context"
	"fmt"
	"strings"

	"studybyte-backend/internal/nlp"
)

// Extractor returns the raw text of a document on disk.
type Extractor interface {
	ExtractFile(ctx context.Context, path string) (string, error)
}

// Options are the thresholds and caps of the notes heuristics.
type Options struct {
	PDFMinChars       int
	TextMinChars      int
	LeadSentences     int
	PDFSummaryCap     int
	TextSummaryCap    int
	KeyPoints         int
	ShortSummaryChars int
	CharsPerPage      int
	Sentences         nlp.Bounds
}

// DefaultOptions returns the built-in notes heuristics.
func DefaultOptions() Options {
	return Options{
		PDFMinChars:       100,
		TextMinChars:      50,
		LeadSentences:     3,
		PDFSummaryCap:     300,
		TextSummaryCap:    400,
		KeyPoints:         5,
		ShortSummaryChars: 100,
		CharsPerPage:      2000,
		Sentences:         nlp.Bounds{Min: 20, Max: 200},
	}
}

// DocumentInfo describes the extracted PDF text.
type DocumentInfo struct {
	TotalCharacters int `json:"total_characters"`
	EstimatedPages  int `json:"estimated_pages"`
}

// PDFNotes are smart notes built from a PDF.
type PDFNotes struct {
	SmartNotes   string       `json:"smart_notes"`
	KeyTerms     []string     `json:"key_terms"`
	Pages        int          `json:"pages"`
	DocumentInfo DocumentInfo `json:"document_info"`
	Summary      string       `json:"summary"`
	KeyConcepts  []string     `json:"key_concepts"`
	Definitions  []string     `json:"definitions"`
	KeyPoints    []string     `json:"key_points"`
}

// TextNotes are notes built from submitted text.
type TextNotes struct {
	Summary        string   `json:"summary"`
	KeyConcepts    []string `json:"key_concepts"`
	KeyPoints      []string `json:"key_points"`
	WordCount      int      `json:"word_count"`
	CharacterCount int      `json:"character_count"`
}

// Service builds study notes with local heuristics only.
type Service struct {
	Extractor Extractor
	KeyTerms  nlp.KeyTermExtractor
	Options   Options
}

// ProcessPDF extracts the PDF at path and builds notes from its text.
func (s *Service) ProcessPDF(ctx context.Context, path string) (PDFNotes, error) {
	raw, err := s.Extractor.ExtractFile(ctx, path)
	if err != nil {
		return PDFNotes{}, fmt.Errorf("%w: %v", ErrExtraction, err)
	}
	return s.NotesFromPDFText(raw)
}

// NotesFromPDFText builds PDF notes from already extracted text.
func (s *Service) NotesFromPDFText(raw string) (PDFNotes, error) {
	if nlp.Length(strings.TrimSpace(raw)) < s.Options.PDFMinChars {
		return PDFNotes{}, ErrInsufficientText
	}
	doc, err := nlp.Parse(raw)
	if err != nil {
		return PDFNotes{}, err
	}

	summary := nlp.Truncate(doc.Lead(s.Options.LeadSentences), s.Options.PDFSummaryCap)
	points := s.keyPoints(doc)
	concepts := nonNil(s.KeyTerms.Extract(doc))
	pages := pageEstimate(raw, s.Options.CharsPerPage)

	return PDFNotes{
		SmartNotes:   smartNotes(summary, points),
		KeyTerms:     concepts,
		Pages:        pages,
		DocumentInfo: DocumentInfo{TotalCharacters: nlp.Length(doc.Clean), EstimatedPages: pages},
		Summary:      summary,
		KeyConcepts:  concepts,
		Definitions:  []string{},
		KeyPoints:    points,
	}, nil
}

// ProcessText builds notes from submitted text. A lead summary shorter than
// ShortSummaryChars is replaced by a sentence naming the top key concepts.
func (s *Service) ProcessText(text string) (TextNotes, error) {
	trimmed := strings.TrimSpace(text)
	if nlp.Length(trimmed) < s.Options.TextMinChars {
		return TextNotes{}, ErrTextTooShort
	}
	doc, err := nlp.Parse(trimmed)
	if err != nil {
		return TextNotes{}, err
	}

	concepts := nonNil(s.KeyTerms.Extract(doc))
	summary := nlp.Truncate(doc.Lead(s.Options.LeadSentences), s.Options.TextSummaryCap)
	if nlp.Length(summary) < s.Options.ShortSummaryChars {
		summary = conceptSummary(concepts)
	}

	return TextNotes{
		Summary:        summary,
		KeyConcepts:    concepts,
		KeyPoints:      s.keyPoints(doc),
		WordCount:      doc.WordCount(),
		CharacterCount: nlp.Length(doc.Clean),
	}, nil
}

func (s *Service) keyPoints(doc *nlp.Document) []string {
	points := doc.SentencesWithin(s.Options.Sentences)
	if len(points) > s.Options.KeyPoints {
		points = points[:s.Options.KeyPoints]
	}
	return points
}

func smartNotes(summary string, points []string) string {
	var b strings.Builder
	b.WriteString(summary)
	b.WriteString("\n\nKey Points:\n")
	for i, p := range points {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString("• ")
		b.WriteString(p)
	}
	return b.String()
}

func conceptSummary(concepts []string) string {
	if len(concepts) == 0 {
		return "Text analysis completed."
	}
	if len(concepts) > 3 {
		concepts = concepts[:3]
	}
	return "This text discusses " + strings.Join(concepts, ", ")
}

func pageEstimate(raw string, charsPerPage int) int {
	if charsPerPage <= 0 {
		return 0
	}
	return nlp.Length(raw) / charsPerPage
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
