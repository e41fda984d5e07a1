package llm

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"studybyte-backend/internal/shared/telemetry"
)

type stubClient struct {
	text   string
	err    error
	prompt string
	params Params
}

func (s *stubClient) Generate(ctx context.Context, prompt string, params Params) (string, error) {
	s.prompt = prompt
	s.params = params
	return s.text, s.err
}

func TestAttempt(t *testing.T) {
	var logs bytes.Buffer
	telemetry.SetOutput(&logs)
	t.Cleanup(func() { telemetry.SetOutput(nil) })

	tests := []struct {
		name   string
		client Client
		want   string
		ok     bool
	}{
		{name: "success trims", client: &stubClient{text: "  hello \n"}, want: "hello", ok: true},
		{name: "provider error", client: &stubClient{err: errors.New("http status 503")}},
		{name: "blank answer", client: &stubClient{text: "   "}},
		{name: "placeholder", client: PlaceholderClient{}},
		{name: "nil client", client: nil},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Attempt(context.Background(), tt.client, "test", "prompt", Params{})
			if got != tt.want || ok != tt.ok {
				t.Fatalf("Attempt = %q,%v want %q,%v", got, ok, tt.want, tt.ok)
			}
		})
	}
	if !strings.Contains(logs.String(), `"msg":"llm.fallback"`) {
		t.Fatalf("expected fallback log line, got %s", logs.String())
	}
}

func TestAttemptPassesParams(t *testing.T) {
	stub := &stubClient{text: "neutral"}
	params := Params{Temperature: 0.1, MaxOutputTokens: 10}
	if _, ok := Attempt(context.Background(), stub, "chat", "p", params); !ok {
		t.Fatal("expected ok")
	}
	if stub.params != params || stub.prompt != "p" {
		t.Fatalf("unexpected call: %+v %q", stub.params, stub.prompt)
	}
}

func TestPlaceholderClient(t *testing.T) {
	text, err := PlaceholderClient{}.Generate(context.Background(), "hello", Params{Temperature: 0.7})
	if text != "" || !errors.Is(err, ErrNotConfigured) {
		t.Fatalf("expected ErrNotConfigured, got %q %v", text, err)
	}
}

func TestAvailable(t *testing.T) {
	if Available(PlaceholderClient{}) || Available(&PlaceholderClient{}) || Available(nil) {
		t.Fatal("placeholder and nil are not available")
	}
	if !Available(&stubClient{}) {
		t.Fatal("stub client should be available")
	}
}

func TestPromptsEmbedInput(t *testing.T) {
	p := Prompts{}
	if got := p.Companion("I failed my quiz"); !strings.Contains(got, `Student says: "I failed my quiz"`) {
		t.Fatalf("companion prompt missing message: %s", got)
	}
	if got := p.Sentiment("ok"); !strings.HasSuffix(got, "positive, negative, or neutral") {
		t.Fatalf("unexpected sentiment prompt: %s", got)
	}
	if got := p.MediaSummary("audio", "details"); !strings.Contains(got, "This is a audio file analysis: details") {
		t.Fatalf("unexpected media prompt: %s", got)
	}
}

func TestPromptsTruncateInput(t *testing.T) {
	p := Prompts{Truncate: RuneTruncator(5)}
	got := p.Summary("abcdefghij")
	if !strings.Contains(got, "abcde\n") || strings.Contains(got, "abcdef") {
		t.Fatalf("expected input capped at 5 characters: %s", got)
	}
}

func TestRuneTruncator(t *testing.T) {
	cut := RuneTruncator(3)
	if cut("héllo") != "hél" || cut("hé") != "hé" {
		t.Fatal("unexpected rune truncation")
	}
	if RuneTruncator(0)("abc") != "abc" {
		t.Fatal("zero limit keeps input")
	}
}
