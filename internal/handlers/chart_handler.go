package handlers

import (
	"bytes"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/ArowuTest/rsu-vesting/internal/chart"
	"github.com/ArowuTest/rsu-vesting/internal/metrics"
	"github.com/ArowuTest/rsu-vesting/internal/middleware"
	"github.com/ArowuTest/rsu-vesting/internal/services"
)

// ChartHandler renders the session chart as an image
type ChartHandler struct {
	awardService services.AwardService
	metrics      *metrics.Registry
}

// NewChartHandler creates a new ChartHandler
func NewChartHandler(awardService services.AwardService, m *metrics.Registry) *ChartHandler {
	return &ChartHandler{awardService: awardService, metrics: m}
}

// SVG handles GET /chart.svg
func (h *ChartHandler) SVG(c *gin.Context) {
	h.render(c, chart.FormatSVG)
}

// PNG handles GET /chart.png
func (h *ChartHandler) PNG(c *gin.Context) {
	h.render(c, chart.FormatPNG)
}

func (h *ChartHandler) render(c *gin.Context, format string) {
	data, err := h.awardService.Chart(c, middleware.SessionID(c))
	if err != nil {
		respondError(c, "Build chart", err)
		return
	}

	var buf bytes.Buffer
	if err := chart.Render(&buf, data, format); err != nil {
		log.Error().Err(err).Str("format", format).Msg("Failed to render chart")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to render chart"})
		return
	}
	h.metrics.ChartRenders.WithLabelValues(format).Inc()

	c.Header("Cache-Control", "no-store")
	c.Data(http.StatusOK, chart.ContentType(format), buf.Bytes())
}
