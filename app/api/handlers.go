package api

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/tomatolab/ai-daily/app/cfg"
	"github.com/tomatolab/ai-daily/app/database"
	"github.com/tomatolab/ai-daily/app/site"
)

type Handler struct {
	runs       *database.RunRepository
	siteConfig *site.Site
}

func NewHandler(runs *database.RunRepository, siteConfig *site.Site) *Handler {
	return &Handler{
		runs:       runs,
		siteConfig: siteConfig,
	}
}

func (h *Handler) GetHealth(c *gin.Context) {
	health := map[string]interface{}{
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"version":   cfg.GetVersion(),
		"site":      h.siteConfig.Meta.Description,
	}

	if stats, err := h.runs.Stats(); err == nil {
		health["runs"] = stats.Published + stats.Empty + stats.Failed
	}

	c.JSON(http.StatusOK, health)
}

func (h *Handler) ListRuns(c *gin.Context) {
	limit := 20
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 || parsed > 200 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be an integer between 1 and 200"})
			return
		}
		limit = parsed
	}

	runs, err := h.runs.RecentRuns(limit)
	if err != nil {
		slog.Error("Database error", "operation", "list_runs", "error", err)
		c.Status(http.StatusInternalServerError)
		return
	}
	if runs == nil {
		runs = []database.Run{}
	}

	c.JSON(http.StatusOK, gin.H{"runs": runs, "count": len(runs)})
}

func (h *Handler) GetRunByDate(c *gin.Context) {
	date := c.Param("date")
	if err := cfg.ValidateDate(date); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	run, err := h.runs.LastRunForDate(date)
	if err != nil {
		slog.Error("Database error", "operation", "get_run", "date", date, "error", err)
		c.Status(http.StatusInternalServerError)
		return
	}
	if run == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "no run recorded for date"})
		return
	}

	c.JSON(http.StatusOK, run)
}

func (h *Handler) GetStats(c *gin.Context) {
	stats, err := h.runs.Stats()
	if err != nil {
		slog.Error("Database error", "operation", "get_stats", "error", err)
		c.Status(http.StatusInternalServerError)
		return
	}

	c.JSON(http.StatusOK, stats)
}
