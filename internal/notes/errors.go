package notes

import "errors"

var (
	// ErrInsufficientText is returned when a PDF has too little text.
	ErrInsufficientText = errors.New("insufficient text content")
	// ErrTextTooShort is returned for submitted text below the minimum.
	ErrTextTooShort = errors.New("text too short")
	// ErrExtraction wraps document extraction failures.
	ErrExtraction = errors.New("extraction failed")
)

// Client-facing messages.
const (
	msgInsufficientText = "PDF contains insufficient text content"
	msgTextTooShort     = "Text too short for meaningful analysis"
)
