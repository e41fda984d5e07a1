// Command notesdemo runs the local notes heuristics on a PDF or text file and
// prints the summary, key points and a key-term table. No model is called.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/mattn/go-runewidth"

	"studybyte-backend/internal/extract"
	"studybyte-backend/internal/nlp"
	"studybyte-backend/internal/notes"
	"studybyte-backend/internal/shared/config"
)

func main() {
	heuristicsPath := flag.String("heuristics", "", "optional heuristics YAML file")
	flag.Parse()
	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: notesdemo [-heuristics file.yaml] <file.pdf|file.txt>")
		os.Exit(2)
	}

	h, err := config.LoadHeuristics(*heuristicsPath)
	if err != nil {
		log.Fatalf("heuristics: %v", err)
	}
	svc := &notes.Service{
		Extractor: extract.PDF{},
		KeyTerms: nlp.KeyTermExtractor{
			MinLen:     h.KeyTerms.MinLen,
			MaxLen:     h.KeyTerms.MaxLen,
			Candidates: h.KeyTerms.Candidates,
			MaxTerms:   h.KeyTerms.MaxTerms,
			MinCount:   h.KeyTerms.MinCount,
		},
		Options: notes.Options{
			PDFMinChars:       h.Notes.PDFMinChars,
			TextMinChars:      h.Notes.TextMinChars,
			LeadSentences:     h.Notes.LeadSentences,
			PDFSummaryCap:     h.Notes.PDFSummaryCap,
			TextSummaryCap:    h.Notes.TextSummaryCap,
			KeyPoints:         h.Notes.KeyPoints,
			ShortSummaryChars: h.Notes.ShortSummaryChars,
			CharsPerPage:      h.Notes.CharsPerPage,
			Sentences:         nlp.Bounds{Min: h.Notes.SentenceMin, Max: h.Notes.SentenceMax},
		},
	}

	path := flag.Arg(0)
	var (
		summary string
		points  []string
		terms   []string
		raw     string
	)
	if strings.EqualFold(filepath.Ext(path), ".pdf") {
		raw, err = svc.Extractor.ExtractFile(context.Background(), path)
		if err != nil {
			log.Fatalf("extract: %v", err)
		}
		n, err := svc.NotesFromPDFText(raw)
		if err != nil {
			log.Fatalf("notes: %v", err)
		}
		summary, points, terms = n.Summary, n.KeyPoints, n.KeyTerms
	} else {
		data, err := os.ReadFile(path)
		if err != nil {
			log.Fatalf("read: %v", err)
		}
		raw = string(data)
		n, err := svc.ProcessText(raw)
		if err != nil {
			log.Fatalf("notes: %v", err)
		}
		summary, points, terms = n.Summary, n.KeyPoints, n.KeyConcepts
	}

	fmt.Printf("Summary\n\n%s\n\nKey Points\n\n", summary)
	for _, p := range points {
		fmt.Printf("  • %s\n", p)
	}
	fmt.Println()
	counts := termCounts(raw, terms)
	printTable(os.Stdout, terms, counts)
}

// termCounts counts case-insensitive occurrences of each term in text.
func termCounts(text string, terms []string) []int {
	lower := strings.ToLower(text)
	counts := make([]int, len(terms))
	for i, t := range terms {
		counts[i] = strings.Count(lower, strings.ToLower(t))
	}
	return counts
}

// printTable writes terms aligned by display width, so wide characters line
// up in a terminal.
func printTable(w io.Writer, terms []string, counts []int) {
	const header = "Key Term"
	width := runewidth.StringWidth(header)
	for _, t := range terms {
		if tw := runewidth.StringWidth(t); tw > width {
			width = tw
		}
	}
	fmt.Fprintf(w, "%s  %s\n", runewidth.FillRight(header, width), "Count")
	fmt.Fprintf(w, "%s  %s\n", strings.Repeat("-", width), "-----")
	if len(terms) == 0 {
		fmt.Fprintln(w, "(no repeated key terms)")
		return
	}
	for i, t := range terms {
		fmt.Fprintf(w, "%s  %5d\n", runewidth.FillRight(t, width), counts[i])
	}
}
