package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/paperpress/paperpress/internal/render"
	"github.com/paperpress/paperpress/pkg/metrics"
)

// RenderHandler exposes the rendering service over HTTP.
type RenderHandler struct {
	renderer *render.Renderer
	log      zerolog.Logger
}

func NewRenderHandler(r *render.Renderer, log zerolog.Logger) *RenderHandler {
	return &RenderHandler{renderer: r, log: log}
}

func (h *RenderHandler) Register(r *gin.Engine) {
	r.GET("/healthz", h.Healthz)
	r.POST("/render", h.Render)
	r.POST("/preview", h.Preview)
}

func (h *RenderHandler) Healthz(c *gin.Context) {
	c.Status(http.StatusOK)
}

// Render accepts a document spec and runs the job asynchronously. The caller
// learns the outcome only through the callback URL.
func (h *RenderHandler) Render(c *gin.Context) {
	var spec render.DocumentSpec
	if err := c.ShouldBindJSON(&spec); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := spec.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	metrics.RendersAccepted.Inc()
	go func() {
		// The job outlives the request on purpose; it reports through the
		// callback URL and its own log.
		_ = h.renderer.Render(context.Background(), &spec)
	}()
	c.JSON(http.StatusOK, gin.H{"status": "accepted"})
}

// Preview returns the expanded template text without typesetting.
func (h *RenderHandler) Preview(c *gin.Context) {
	var spec render.DocumentSpec
	if err := c.ShouldBindJSON(&spec); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := spec.ValidatePreview(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	out, err := h.renderer.Preview(c.Request.Context(), &spec)
	if err != nil {
		metrics.PreviewsTotal.WithLabelValues("failed").Inc()
		h.log.Error().Err(err).Msg("preview failed")
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}
	metrics.PreviewsTotal.WithLabelValues("succeeded").Inc()
	c.String(http.StatusOK, out)
}
