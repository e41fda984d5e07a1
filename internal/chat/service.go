package chat

import (
	"context"
	"strings"
	"time"

	"studybyte-backend/internal/llm"
	"studybyte-backend/internal/nlp"
)

// Feature names the chat feature in logs and metrics.
const Feature = "chat"

const defaultFallback = "I'm here to support you. How are you feeling today?"

// fallbackResponses are used when the model cannot answer.
var fallbackResponses = map[nlp.Label]string{
	nlp.Positive: "That's wonderful! Keep up the positive energy! 🌟",
	nlp.Negative: "I hear you. You're not alone, and it's okay to feel this way. 💙",
	nlp.Neutral:  "I'm here to listen and support you. What's on your mind today? 💚",
}

// Result is one companion reply.
type Result struct {
	Response  string
	Sentiment nlp.Label
	Source    llm.Source
	Timestamp string
}

// Service produces supportive replies with a sentiment label.
type Service struct {
	LLM             llm.Client
	Prompts         llm.Prompts
	Params          llm.Params
	SentimentParams llm.Params
	Classifier      nlp.Classifier
	Now             func() time.Time
}

// Reply answers message. The model writes the reply when it can; otherwise a
// canned response matching the sentiment is used.
func (s *Service) Reply(ctx context.Context, message string) (Result, error) {
	if strings.TrimSpace(message) == "" {
		return Result{}, ErrMessageRequired
	}

	reply, ok := llm.Attempt(ctx, s.LLM, Feature, s.Prompts.Companion(message), s.Params)
	sentiment := s.Sentiment(ctx, message)

	res := Result{
		Response:  reply,
		Sentiment: sentiment,
		Source:    llm.SourceAI,
		Timestamp: s.now().Format("15:04"),
	}
	if !ok {
		res.Source = llm.SourceFallback
		res.Response = fallbackResponse(sentiment)
	}
	return res, nil
}

// Sentiment asks the model for a one-word label. Answers outside the three
// labels count as neutral; a failed call uses the lexical classifier.
func (s *Service) Sentiment(ctx context.Context, message string) nlp.Label {
	if !llm.Available(s.LLM) {
		return s.Classifier.Classify(message)
	}
	answer, ok := llm.Attempt(ctx, s.LLM, Feature+".sentiment", s.Prompts.Sentiment(message), s.SentimentParams)
	if !ok {
		return s.Classifier.Classify(message)
	}
	label, _ := nlp.ParseLabel(answer)
	return label
}

func fallbackResponse(label nlp.Label) string {
	if r, ok := fallbackResponses[label]; ok {
		return r
	}
	return defaultFallback
}

func (s *Service) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}
