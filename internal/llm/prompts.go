package llm

import (
	_ "embed"
	"strings"
)

var (
	//go:embed prompts/companion.txt
	companionPrompt string
	//go:embed prompts/sentiment.txt
	sentimentPrompt string
	//go:embed prompts/summary.txt
	summaryPrompt string
)

// TruncateFunc shortens prompt input to what the provider should receive.
type TruncateFunc func(string) string

// Prompts renders the embedded templates. Input is passed through Truncate
// when it is set.
type Prompts struct {
	Truncate TruncateFunc
}

// Companion renders the supportive chat prompt for a student message.
func (p Prompts) Companion(message string) string {
	return render(companionPrompt, "{{MESSAGE}}", p.input(message))
}

// Sentiment renders the one-word sentiment prompt.
func (p Prompts) Sentiment(message string) string {
	return render(sentimentPrompt, "{{MESSAGE}}", p.input(message))
}

// Summary renders the study summary prompt.
func (p Prompts) Summary(text string) string {
	return render(summaryPrompt, "{{TEXT}}", p.input(text))
}

// MediaSummary asks for a summary of a media file analysis.
func (p Prompts) MediaSummary(kind, analysis string) string {
	return p.Summary("This is a " + kind + " file analysis: " + analysis)
}

func (p Prompts) input(s string) string {
	if p.Truncate == nil {
		return s
	}
	return p.Truncate(s)
}

func render(template, placeholder, value string) string {
	return strings.TrimSpace(strings.NewReplacer(placeholder, value).Replace(template))
}
