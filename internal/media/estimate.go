package media

import (
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Kind is the broad media type of an upload.
type Kind string

const (
	Audio   Kind = "audio"
	Video   Kind = "video"
	Unknown Kind = "unknown"
)

// SupportedFormats is reported to clients that upload anything else.
const SupportedFormats = "MP4, AVI, MOV, MP3, WAV, M4A, WEBM, MKV"

// ErrUnsupportedFormat marks an extension outside the accepted set.
var ErrUnsupportedFormat = errors.New("unsupported file format")

var kinds = map[string]Kind{
	".mp3":  Audio,
	".wav":  Audio,
	".m4a":  Audio,
	".mp4":  Video,
	".avi":  Video,
	".mov":  Video,
	".webm": Video,
	".mkv":  Video,
}

const bytesPerMB = 1024 * 1024

// KindForExt maps a file extension (with the dot, any case) to its kind.
func KindForExt(ext string) (Kind, bool) {
	k, ok := kinds[strings.ToLower(ext)]
	if !ok {
		return Unknown, false
	}
	return k, true
}

// Ext returns the lowercased extension of name.
func Ext(name string) string {
	return strings.ToLower(filepath.Ext(name))
}

// Title returns the capitalized kind, e.g. "Video".
func (k Kind) Title() string {
	return cases.Title(language.English).String(string(k))
}

// EstimateDuration guesses playback length from file size: about one minute
// per MB for audio and two MB per minute for video. The figure is only a
// rough hint and is always at least one minute.
func EstimateDuration(sizeBytes int64, kind Kind) string {
	if sizeBytes < 0 {
		sizeBytes = 0
	}
	mb := float64(sizeBytes) / bytesPerMB
	if kind != Audio {
		mb /= 2
	}
	minutes := int64(math.Floor(mb))
	if minutes < 1 {
		minutes = 1
	}
	return fmt.Sprintf("~%d minutes (estimated)", minutes)
}

// Descriptor holds what is known about an uploaded media file.
type Descriptor struct {
	Path      string
	Name      string
	Ext       string
	SizeBytes int64
	Kind      Kind
	Duration  string
}

// Describe inspects the file at path. name is the client-facing file name;
// when empty the base of path is used.
func Describe(path, name string) (Descriptor, error) {
	if name == "" {
		name = filepath.Base(path)
	}
	ext := Ext(name)
	kind, ok := KindForExt(ext)
	if !ok {
		return Descriptor{Path: path, Name: name, Ext: ext, Kind: Unknown}, fmt.Errorf("%w: %s", ErrUnsupportedFormat, ext)
	}
	d := Descriptor{Path: path, Name: name, Ext: ext, Kind: kind}

	info, err := os.Stat(path)
	if err != nil {
		return d, fmt.Errorf("stat media: %w", err)
	}
	if info.IsDir() {
		return d, fmt.Errorf("stat media: %s is a directory", path)
	}
	d.SizeBytes = info.Size()
	d.Duration = EstimateDuration(d.SizeBytes, kind)
	return d, nil
}

// SizeMB is the size in MB rounded to two decimals.
func (d Descriptor) SizeMB() float64 {
	return math.Round(float64(d.SizeBytes)/bytesPerMB*100) / 100
}

// Analysis is the descriptive text shown in place of a transcript. MP3
// uploads are treated as music.
func (d Descriptor) Analysis() string {
	if d.Ext == ".mp3" {
		return fmt.Sprintf(`Music File Analysis: %s

File Size: %.2f MB
Type: Audio (MP3)

This appears to be a music file. For educational content analysis, StudyByte would typically:
• Extract any spoken content (lyrics, narration, lectures)
• Identify music vs speech segments
• Generate summaries of verbal content
• Create study notes from educational audio

Note: Pure instrumental music files contain no speech content to transcribe or summarize for study purposes.`,
			d.Name, float64(d.SizeBytes)/bytesPerMB)
	}
	title := d.Kind.Title()
	return fmt.Sprintf(`%s File Analysis: %s

File Size: %.2f MB
Type: %s

StudyByte has successfully received your %s file. For complete processing, the system would:
• Extract audio track from the %s
• Analyze speech patterns and content
• Generate intelligent summaries using AI
• Provide chapter breakdowns and key points

The file has been processed successfully and is ready for advanced audio analysis.`,
		title, d.Name, float64(d.SizeBytes)/bytesPerMB, title, d.Kind, d.Kind)
}

// Transcription is the placeholder transcript note; speech-to-text is not
// performed.
func (d Descriptor) Transcription() string {
	return fmt.Sprintf("Audio content detected in %s file. For full speech-to-text transcription, specialized audio processing libraries would extract and convert spoken content.", d.Kind)
}

// PartialSummary describes a file that was received but could not be
// inspected.
func (d Descriptor) PartialSummary() string {
	return fmt.Sprintf("Successfully received %s file but couldn't process audio content. File appears to be a valid %s file (%.2f MB).", d.Kind, d.Ext, d.SizeMB())
}
