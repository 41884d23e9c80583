package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/ArowuTest/rsu-vesting/internal/middleware"
	"github.com/ArowuTest/rsu-vesting/internal/models"
	"github.com/ArowuTest/rsu-vesting/internal/services"
	"github.com/ArowuTest/rsu-vesting/internal/vesting"
)

// AwardHandler handles award and schedule HTTP requests
type AwardHandler struct {
	awardService services.AwardService
}

// NewAwardHandler creates a new AwardHandler
func NewAwardHandler(awardService services.AwardService) *AwardHandler {
	return &AwardHandler{
		awardService: awardService,
	}
}

// SubmitAward handles POST /awards
func (h *AwardHandler) SubmitAward(c *gin.Context) {
	var req models.AwardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}

	summary, err := h.awardService.Submit(c, middleware.SessionID(c), &req)
	if err != nil {
		respondError(c, "Submit award", err)
		return
	}

	c.JSON(http.StatusOK, summary)
}

// ListAwards handles GET /awards
func (h *AwardHandler) ListAwards(c *gin.Context) {
	awards, err := h.awardService.List(c, middleware.SessionID(c))
	if err != nil {
		respondError(c, "List awards", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"awards": awards, "count": len(awards)})
}

// GetAward handles GET /awards/:name
func (h *AwardHandler) GetAward(c *gin.Context) {
	summary, err := h.awardService.Get(c, middleware.SessionID(c), awardName(c))
	if err != nil {
		respondError(c, "Get award", err)
		return
	}

	c.JSON(http.StatusOK, summary)
}

// GetSchedule handles GET /awards/:name/schedule. With changes=true only the
// release days are returned.
func (h *AwardHandler) GetSchedule(c *gin.Context) {
	changesOnly, err := strconv.ParseBool(c.DefaultQuery("changes", "false"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid changes flag"})
		return
	}

	name := awardName(c)
	series, err := h.awardService.Schedule(c, middleware.SessionID(c), name)
	if err != nil {
		respondError(c, "Get schedule", err)
		return
	}

	if changesOnly {
		c.JSON(http.StatusOK, gin.H{"name": name, "releases": releasesOf(series)})
		return
	}
	c.JSON(http.StatusOK, gin.H{"name": name, "points": series})
}

// GetTotal handles GET /schedule/total
func (h *AwardHandler) GetTotal(c *gin.Context) {
	total, err := h.awardService.Total(c, middleware.SessionID(c))
	if err != nil {
		respondError(c, "Get total", err)
		return
	}
	if total == nil {
		total = vesting.Series{}
	}

	c.JSON(http.StatusOK, gin.H{
		"points":     total,
		"finalValue": total.Final(),
		"releases":   releasesOf(total),
	})
}

// PreviewSchedule handles POST /schedule/preview
func (h *AwardHandler) PreviewSchedule(c *gin.Context) {
	var req models.AwardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}

	summary, series, err := h.awardService.Preview(&req)
	if err != nil {
		respondError(c, "Preview schedule", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"summary": summary, "points": series})
}

// awardName reads the :name path parameter, trimmed like stored names
func awardName(c *gin.Context) string {
	return strings.TrimSpace(c.Param("name"))
}

func releasesOf(s vesting.Series) []vesting.Release {
	releases := vesting.Releases(s)
	if releases == nil {
		return []vesting.Release{}
	}
	return releases
}
