package summaries

import (
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"studybyte-backend/internal/media"
	"studybyte-backend/internal/shared/metrics"
	"studybyte-backend/internal/shared/server/middleware"
	"studybyte-backend/internal/shared/server/respond"
	"studybyte-backend/internal/shared/storage/scratch"
	"studybyte-backend/internal/shared/telemetry"
)

// multipartSlack covers form boundaries and headers around the file part.
const multipartSlack = 64 << 10

// Handler wires HTTP handlers to the service.
type Handler struct {
	Svc            *Service
	Uploads        *scratch.Store
	MaxUploadBytes int64
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service, uploads *scratch.Store, maxUploadBytes int64) *Handler {
	return &Handler{Svc: svc, Uploads: uploads, MaxUploadBytes: maxUploadBytes}
}

// RegisterRoutes attaches summary routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/summarize", h.summarize)
	rg.POST("/process-video", h.processVideo)
}

type summarizeRequest struct {
	Text string `json:"text"`
}

type summarizeResponse struct {
	Summary        string `json:"summary"`
	AIPowered      bool   `json:"ai_powered"`
	OriginalLength int    `json:"original_length"`
	SummaryLength  int    `json:"summary_length"`
}

func (h *Handler) summarize(c *gin.Context) {
	c.Set(middleware.FeatureKey, FeatureText)

	var req summarizeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "Text is required", nil)
		return
	}

	res, err := h.Svc.Summarize(c.Request.Context(), req.Text)
	if err != nil {
		if errors.Is(err, ErrTextRequired) {
			respond.Error(c, http.StatusBadRequest, "validation_error", "Text is required", nil)
			return
		}
		respond.Error(c, http.StatusInternalServerError, "internal", err.Error(), nil)
		return
	}

	c.Set(middleware.SourceKey, string(res.Source))
	metrics.RecordOutcome(FeatureText, string(res.Source))
	respond.OK(c, summarizeResponse{
		Summary:        res.Summary,
		AIPowered:      res.Source.AIPowered(),
		OriginalLength: res.OriginalLength,
		SummaryLength:  res.SummaryLength,
	})
}

type mediaResponse struct {
	Summary       string   `json:"summary"`
	Transcription string   `json:"transcription"`
	AIPowered     bool     `json:"ai_powered"`
	FileType      string   `json:"file_type"`
	Duration      string   `json:"duration"`
	FileSizeMB    *float64 `json:"file_size_mb,omitempty"`
	Status        string   `json:"status"`
}

func (h *Handler) processVideo(c *gin.Context) {
	c.Set(middleware.FeatureKey, FeatureMedia)
	if h.MaxUploadBytes > 0 {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.MaxUploadBytes+multipartSlack)
	}

	fileHeader, err := c.FormFile("video_file")
	if err != nil {
		if isTooLarge(err) {
			h.tooLarge(c)
			return
		}
		respond.Error(c, http.StatusBadRequest, "validation_error", "No file provided", nil)
		return
	}
	if strings.TrimSpace(fileHeader.Filename) == "" {
		respond.Error(c, http.StatusBadRequest, "validation_error", "No file selected", nil)
		return
	}
	ext := media.Ext(fileHeader.Filename)
	if _, ok := media.KindForExt(ext); !ok {
		respond.Error(c, http.StatusBadRequest, "unsupported_format", fmt.Sprintf("Unsupported file format: %s", ext), map[string]any{
			"supported_formats": media.SupportedFormats,
		})
		return
	}
	if h.MaxUploadBytes > 0 && fileHeader.Size > h.MaxUploadBytes {
		h.tooLarge(c)
		return
	}

	saved, err := h.save(c, fileHeader)
	if err != nil {
		if errors.Is(err, scratch.ErrTooLarge) {
			h.tooLarge(c)
			return
		}
		respond.Error(c, http.StatusInternalServerError, "upload_failed", fmt.Sprintf("Processing failed: %v", err), nil)
		return
	}
	defer h.remove(saved.Path)

	res, err := h.Svc.DescribeMedia(c.Request.Context(), saved.Path, fileHeader.Filename)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal", fmt.Sprintf("Failed to process media file: %v", err), nil)
		return
	}

	c.Set(middleware.SourceKey, string(res.Source))
	metrics.RecordOutcome(FeatureMedia, string(res.Source))
	out := mediaResponse{
		Summary:       res.Summary,
		Transcription: res.Transcription,
		AIPowered:     res.Source.AIPowered(),
		FileType:      string(res.FileType),
		Duration:      res.Duration,
		Status:        res.Status,
	}
	// Partial results have no reliable size.
	if res.Status == StatusProcessed {
		size := res.FileSizeMB
		out.FileSizeMB = &size
	}
	respond.OK(c, out)
}

func (h *Handler) save(c *gin.Context, fh *multipart.FileHeader) (scratch.File, error) {
	file, err := fh.Open()
	if err != nil {
		return scratch.File{}, err
	}
	defer file.Close()
	return h.Uploads.Save(c.Request.Context(), fh.Filename, file)
}

func (h *Handler) remove(path string) {
	if err := h.Uploads.Remove(path); err != nil {
		telemetry.Warn("upload.cleanup_failed", map[string]any{"path": path, "error": err.Error()})
	}
}

func (h *Handler) tooLarge(c *gin.Context) {
	respond.Error(c, http.StatusRequestEntityTooLarge, "file_too_large",
		fmt.Sprintf("File too large. Maximum size is %dMB.", h.MaxUploadBytes>>20), nil)
}

func isTooLarge(err error) bool {
	var maxErr *http.MaxBytesError
	if errors.As(err, &maxErr) {
		return true
	}
	return strings.Contains(err.Error(), "request body too large")
}
