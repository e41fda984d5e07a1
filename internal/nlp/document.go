package nlp

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/jdkato/prose/v2"
)

var whitespaceRun = regexp.MustCompile(`\s+`)

// CleanText collapses whitespace runs to a single space and trims the ends.
func CleanText(raw string) string {
	return strings.TrimSpace(whitespaceRun.ReplaceAllString(raw, " "))
}

// Length returns the length of s in characters (runes).
func Length(s string) int {
	return utf8.RuneCountInString(s)
}

// Bounds is an exclusive character-length window. Max of 0 means unbounded.
type Bounds struct {
	Min int
	Max int
}

// Contains reports whether Min < len(s) < Max.
func (b Bounds) Contains(s string) bool {
	n := Length(s)
	if n <= b.Min {
		return false
	}
	if b.Max > 0 && n >= b.Max {
		return false
	}
	return true
}

// Token is a word or punctuation mark with its Penn Treebank tag.
type Token struct {
	Text string
	Tag  string
}

// Document is a single request's text with its derived views.
type Document struct {
	Raw   string
	Clean string

	sentences []string
	tokens    []Token
}

// Parse cleans raw, segments it into sentences and tags its tokens.
func Parse(raw string) (*Document, error) {
	doc := &Document{Raw: raw, Clean: CleanText(raw)}
	if doc.Clean == "" {
		return doc, nil
	}

	parsed, err := prose.NewDocument(doc.Clean, prose.WithExtraction(false))
	if err != nil {
		return nil, fmt.Errorf("parse document: %w", err)
	}
	for _, s := range parsed.Sentences() {
		if text := strings.TrimSpace(s.Text); text != "" {
			doc.sentences = append(doc.sentences, text)
		}
	}
	for _, tok := range parsed.Tokens() {
		doc.tokens = append(doc.tokens, Token{Text: tok.Text, Tag: tok.Tag})
	}
	return doc, nil
}

// Sentences returns every segmented sentence in order.
func (d *Document) Sentences() []string {
	return append([]string(nil), d.sentences...)
}

// Lead returns the first n sentences joined by a space.
func (d *Document) Lead(n int) string {
	if n > len(d.sentences) {
		n = len(d.sentences)
	}
	return strings.Join(d.sentences[:n], " ")
}

// SentencesWithin returns the sentences whose length falls inside b.
func (d *Document) SentencesWithin(b Bounds) []string {
	out := make([]string, 0, len(d.sentences))
	for _, s := range d.sentences {
		if b.Contains(s) {
			out = append(out, s)
		}
	}
	return out
}

// Words returns the word tokens, punctuation excluded.
func (d *Document) Words() []string {
	out := make([]string, 0, len(d.tokens))
	for _, tok := range d.tokens {
		if isWord(tok.Text) {
			out = append(out, tok.Text)
		}
	}
	return out
}

// WordCount counts whitespace-separated fields of the cleaned text.
func (d *Document) WordCount() int {
	return len(strings.Fields(d.Clean))
}

// NounPhrases returns lowercased noun-phrase candidates in order of
// appearance, duplicates included.
func (d *Document) NounPhrases() []string {
	return chunkNounPhrases(d.tokens)
}

// chunkNounPhrases groups runs of adjectives and nouns that end in a noun.
// Multi-word groups are kept, single words only when they are proper nouns.
func chunkNounPhrases(tokens []Token) []string {
	var (
		out []string
		cur []Token
	)
	flush := func() {
		end := len(cur)
		for end > 0 && !isNounTag(cur[end-1].Tag) {
			end--
		}
		chunk := cur[:end]
		keep := len(chunk) > 1 || (len(chunk) == 1 && isProperNounTag(chunk[0].Tag))
		if keep {
			words := make([]string, 0, len(chunk))
			for _, tok := range chunk {
				words = append(words, strings.ToLower(tok.Text))
			}
			out = append(out, strings.Join(words, " "))
		}
		cur = nil
	}

	for _, tok := range tokens {
		if isWord(tok.Text) && (isNounTag(tok.Tag) || isAdjectiveTag(tok.Tag)) {
			cur = append(cur, tok)
			continue
		}
		flush()
	}
	flush()
	return out
}

func isNounTag(tag string) bool {
	switch tag {
	case "NN", "NNS", "NNP", "NNPS":
		return true
	}
	return false
}

func isProperNounTag(tag string) bool {
	return tag == "NNP" || tag == "NNPS"
}

func isAdjectiveTag(tag string) bool {
	switch tag {
	case "JJ", "JJR", "JJS":
		return true
	}
	return false
}

func isWord(s string) bool {
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return true
		}
	}
	return false
}

// Truncate cuts s to limit characters and appends "..." when it was cut.
func Truncate(s string, limit int) string {
	if limit <= 0 || Length(s) <= limit {
		return s
	}
	runes := []rune(s)
	return string(runes[:limit]) + "..."
}
