package chat

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"studybyte-backend/internal/shared/metrics"
	"studybyte-backend/internal/shared/server/middleware"
	"studybyte-backend/internal/shared/server/respond"
)

// Handler wires HTTP handlers to the service.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches chat routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/chat", h.chat)
}

type chatRequest struct {
	Message string `json:"message"`
}

type chatResponse struct {
	Response  string `json:"response"`
	Sentiment string `json:"sentiment"`
	AIPowered bool   `json:"ai_powered"`
	Timestamp string `json:"timestamp"`
}

func (h *Handler) chat(c *gin.Context) {
	c.Set(middleware.FeatureKey, Feature)

	var req chatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "Message is required", nil)
		return
	}

	res, err := h.Svc.Reply(c.Request.Context(), req.Message)
	if err != nil {
		if errors.Is(err, ErrMessageRequired) {
			respond.Error(c, http.StatusBadRequest, "validation_error", "Message is required", nil)
			return
		}
		respond.Error(c, http.StatusInternalServerError, "internal", err.Error(), nil)
		return
	}

	c.Set(middleware.SourceKey, string(res.Source))
	metrics.RecordOutcome(Feature, string(res.Source))
	respond.OK(c, chatResponse{
		Response:  res.Response,
		Sentiment: string(res.Sentiment),
		AIPowered: res.Source.AIPowered(),
		Timestamp: res.Timestamp,
	})
}
