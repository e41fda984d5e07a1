package nlp

import (
	"reflect"
	"strings"
	"testing"
)

func TestCleanText(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "collapses runs", in: "a  b\n\nc\t d", want: "a b c d"},
		{name: "trims ends", in: "  hello world \n", want: "hello world"},
		{name: "empty", in: " \n\t ", want: ""},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			if got := CleanText(tt.in); got != tt.want {
				t.Fatalf("CleanText(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestBoundsContains(t *testing.T) {
	generic := Bounds{Min: 10}
	notes := Bounds{Min: 20, Max: 200}

	if generic.Contains(strings.Repeat("a", 10)) {
		t.Fatal("10 characters must be outside the generic bound")
	}
	if !generic.Contains(strings.Repeat("a", 11)) {
		t.Fatal("11 characters must be inside the generic bound")
	}
	if !generic.Contains(strings.Repeat("a", 5000)) {
		t.Fatal("generic bound has no upper limit")
	}
	if notes.Contains(strings.Repeat("a", 20)) || notes.Contains(strings.Repeat("a", 200)) {
		t.Fatal("notes bounds are exclusive on both ends")
	}
	if !notes.Contains(strings.Repeat("a", 21)) || !notes.Contains(strings.Repeat("a", 199)) {
		t.Fatal("21 and 199 characters must be inside the notes bound")
	}
	if !notes.Contains(strings.Repeat("é", 21)) {
		t.Fatal("bounds count characters, not bytes")
	}
}

func TestChunkNounPhrases(t *testing.T) {
	tokens := tagged(
		"The/DT neural/JJ network/NN learns/VBZ from/IN large/JJ datasets/NNS ./.",
		"Python/NNP is/VBZ popular/JJ ./.",
		"Students/NNS read/VBD notes/NNS ./.",
	)
	got := chunkNounPhrases(tokens)
	want := []string{"neural network", "large datasets", "python"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("chunkNounPhrases = %v, want %v", got, want)
	}
}

func TestTruncate(t *testing.T) {
	if got := Truncate("abcdef", 3); got != "abc..." {
		t.Fatalf("expected cut with marker, got %q", got)
	}
	if got := Truncate("abc", 3); got != "abc" {
		t.Fatalf("expected untouched text, got %q", got)
	}
	if got := Truncate("ééééé", 2); got != "éé..." {
		t.Fatalf("expected rune-safe cut, got %q", got)
	}
}

func TestParseSegmentsSentences(t *testing.T) {
	doc, err := Parse("Photosynthesis happens in leaves.   Plants need sunlight to grow.\nWater moves through the roots.")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	want := []string{
		"Photosynthesis happens in leaves.",
		"Plants need sunlight to grow.",
		"Water moves through the roots.",
	}
	if got := doc.Sentences(); !reflect.DeepEqual(got, want) {
		t.Fatalf("Sentences = %q, want %q", got, want)
	}
	if doc.WordCount() != 14 {
		t.Fatalf("expected 14 words, got %d", doc.WordCount())
	}
	for _, w := range doc.Words() {
		if w == "." {
			t.Fatal("Words must not include punctuation")
		}
	}
}

func TestParseEmpty(t *testing.T) {
	doc, err := Parse("   ")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(doc.Sentences()) != 0 || doc.Lead(3) != "" {
		t.Fatalf("expected no sentences, got %v", doc.Sentences())
	}
}

// tagged builds tokens from "word/TAG" pairs.
func tagged(parts ...string) []Token {
	var out []Token
	for _, part := range parts {
		for _, field := range strings.Fields(part) {
			idx := strings.LastIndex(field, "/")
			out = append(out, Token{Text: field[:idx], Tag: field[idx+1:]})
		}
	}
	return out
}

func docFrom(sentences []string, tokens []Token) *Document {
	return &Document{
		Clean:     strings.Join(sentences, " "),
		sentences: sentences,
		tokens:    tokens,
	}
}
