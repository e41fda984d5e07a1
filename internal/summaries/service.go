package summaries

import (
	"context"
	"fmt"
	"strings"

	"studybyte-backend/internal/llm"
	"studybyte-backend/internal/media"
	"studybyte-backend/internal/nlp"
)

// Feature names used in logs and metrics.
const (
	FeatureText  = "summarize"
	FeatureMedia = "media"
)

// Media processing states.
const (
	StatusProcessed = "processed"
	StatusPartial   = "partial"
)

// TextResult is a summary of submitted text. Lengths are word counts.
type TextResult struct {
	Summary        string
	Source         llm.Source
	OriginalLength int
	SummaryLength  int
}

// MediaResult describes an uploaded audio or video file.
type MediaResult struct {
	Summary       string
	Transcription string
	Source        llm.Source
	FileType      media.Kind
	Duration      string
	FileSizeMB    float64
	Status        string
}

// Service summarizes text and media uploads.
type Service struct {
	LLM        llm.Client
	Prompts    llm.Prompts
	Params     llm.Params
	Summarizer nlp.Summarizer
}

// Summarize asks the model for a study summary and falls back to extractive
// summarization.
func (s *Service) Summarize(ctx context.Context, text string) (TextResult, error) {
	if text == "" {
		return TextResult{}, ErrTextRequired
	}

	res := TextResult{Source: llm.SourceAI, OriginalLength: len(strings.Fields(text))}
	summary, ok := llm.Attempt(ctx, s.LLM, FeatureText, s.Prompts.Summary(text), s.Params)
	if !ok {
		var err error
		summary, err = s.Summarizer.Summarize(text, 0)
		if err != nil {
			return TextResult{}, fmt.Errorf("summarize: %w", err)
		}
		res.Source = llm.SourceFallback
	}
	res.Summary = summary
	res.SummaryLength = len(strings.Fields(summary))
	return res, nil
}

// DescribeMedia builds a description of the media file at path. name is the
// client file name. No speech-to-text is performed: the model only rewrites
// the file analysis. A file that cannot be inspected yields a partial result
// rather than an error.
func (s *Service) DescribeMedia(ctx context.Context, path, name string) (MediaResult, error) {
	desc, err := media.Describe(path, name)
	if err != nil {
		if desc.Kind == media.Unknown {
			return MediaResult{}, err
		}
		return MediaResult{
			Summary:       desc.PartialSummary(),
			Transcription: fmt.Sprintf("Audio processing encountered an issue: %v. The file was received successfully but requires additional audio processing capabilities.", err),
			Source:        llm.SourceFallback,
			FileType:      desc.Kind,
			Duration:      "Unknown",
			Status:        StatusPartial,
		}, nil
	}

	analysis := desc.Analysis()
	res := MediaResult{
		Summary:       analysis,
		Transcription: desc.Transcription(),
		Source:        llm.SourceFallback,
		FileType:      desc.Kind,
		Duration:      desc.Duration,
		FileSizeMB:    desc.SizeMB(),
		Status:        StatusProcessed,
	}
	if summary, ok := llm.Attempt(ctx, s.LLM, FeatureMedia, s.Prompts.MediaSummary(string(desc.Kind), analysis), s.Params); ok {
		res.Summary = summary
		res.Source = llm.SourceAI
	}
	return res, nil
}
