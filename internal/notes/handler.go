package notes

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"studybyte-backend/internal/shared/server/middleware"
	"studybyte-backend/internal/shared/server/respond"
	"studybyte-backend/internal/shared/storage/scratch"
	"studybyte-backend/internal/shared/telemetry"
)

// Feature names used in logs.
const (
	FeaturePDF  = "notes.pdf"
	FeatureText = "notes.text"
)

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

// RegisterRoutes attaches notes routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/process-pdf", h.processPDF)
	rg.POST("/process-text", h.processText)
}

func (h *Handler) processPDF(c *gin.Context) {
	c.Set(middleware.FeatureKey, FeaturePDF)
	if h.MaxUploadBytes > 0 {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.MaxUploadBytes+(64<<10))
	}

	fileHeader, err := c.FormFile("pdf_file")
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) || strings.Contains(err.Error(), "request body too large") {
			h.tooLarge(c)
			return
		}
		respond.Error(c, http.StatusBadRequest, "validation_error", "No file provided", nil)
		return
	}
	if fileHeader.Filename == "" || !strings.HasSuffix(strings.ToLower(fileHeader.Filename), ".pdf") {
		respond.Error(c, http.StatusBadRequest, "validation_error", "Please upload a valid PDF file", nil)
		return
	}
	if h.MaxUploadBytes > 0 && fileHeader.Size > h.MaxUploadBytes {
		h.tooLarge(c)
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "unable to read file", nil)
		return
	}
	saved, err := h.Uploads.Save(c.Request.Context(), fileHeader.Filename, file)
	file.Close()
	if errors.Is(err, scratch.ErrTooLarge) {
		h.tooLarge(c)
		return
	}
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "upload_failed", fmt.Sprintf("Failed to process PDF: %v", err), nil)
		return
	}
	defer func() {
		if err := h.Uploads.Remove(saved.Path); err != nil {
			telemetry.Warn("upload.cleanup_failed", map[string]any{"path": saved.Path, "error": err.Error()})
		}
	}()

	notes, err := h.Svc.ProcessPDF(c.Request.Context(), saved.Path)
	if err != nil {
		switch {
		case errors.Is(err, ErrInsufficientText):
			respond.Error(c, http.StatusBadRequest, "insufficient_text", msgInsufficientText, nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "processing_failed", fmt.Sprintf("Failed to process PDF: %v", err), nil)
		}
		return
	}
	c.Set(middleware.SourceKey, "local")
	respond.OK(c, notes)
}

type processTextRequest struct {
	Text *string `json:"text"`
}

func (h *Handler) processText(c *gin.Context) {
	c.Set(middleware.FeatureKey, FeatureText)

	var req processTextRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Text == nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "No text provided", nil)
		return
	}

	notes, err := h.Svc.ProcessText(*req.Text)
	if err != nil {
		if errors.Is(err, ErrTextTooShort) {
			respond.Error(c, http.StatusBadRequest, "validation_error", msgTextTooShort, nil)
			return
		}
		respond.Error(c, http.StatusInternalServerError, "internal", "Internal server error", nil)
		return
	}
	c.Set(middleware.SourceKey, "local")
	respond.OK(c, notes)
}

func (h *Handler) tooLarge(c *gin.Context) {
	respond.Error(c, http.StatusRequestEntityTooLarge, "file_too_large",
		fmt.Sprintf("File too large. Maximum size is %dMB.", h.MaxUploadBytes>>20), nil)
}
