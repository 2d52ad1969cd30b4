package handler

import (
	"context"
	"errors"

	"github.com/LoganMichel/logmi-app/internal/domain"
	"github.com/LoganMichel/logmi-app/internal/logger"
	"github.com/LoganMichel/logmi-app/internal/service"
	"github.com/LoganMichel/logmi-app/internal/stats"
	"github.com/LoganMichel/logmi-app/pkg/response"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type StatsProvider interface {
	StatsForShortCode(ctx context.Context, shortCode string, days int) (*stats.Summary, error)
	StatsForLink(ctx context.Context, id uuid.UUID, days int) (*stats.Summary, error)
	DashboardStats(ctx context.Context, variant domain.Variant, days int) (*service.Dashboard, error)
}

// StatsHandler serves per-link click summaries and the per-variant dashboards.
type StatsHandler struct {
	stats StatsProvider
}

func NewStatsHandler(provider StatsProvider) *StatsHandler {
	return &StatsHandler{stats: provider}
}

// ShortCodeStats handles GET /api/tinyurl/urls/:shortCode/stats.
func (h *StatsHandler) ShortCodeStats(c *gin.Context) {
	days := service.NormalizeDays(c.Query("days"))

	summary, err := h.stats.StatsForShortCode(c.Request.Context(), c.Param("shortCode"), days)
	if err != nil {
		if errors.Is(err, domain.ErrLinkNotFound) {
			response.NotFound(c, "short URL not found")
			return
		}
		logger.FromContext(c.Request.Context()).Error("url stats failed", "error", err)
		response.InternalServerError(c, "failed to compute stats")
		return
	}
	response.OK(c, "stats retrieved", summary)
}

// LinkStats handles GET /api/linktree/links/:linkID/stats.
func (h *StatsHandler) LinkStats(c *gin.Context) {
	id, err := uuid.Parse(c.Param("linkID"))
	if err != nil {
		response.NotFound(c, "link not found")
		return
	}
	days := service.NormalizeDays(c.Query("days"))

	summary, err := h.stats.StatsForLink(c.Request.Context(), id, days)
	if err != nil {
		if errors.Is(err, domain.ErrLinkNotFound) {
			response.NotFound(c, "link not found")
			return
		}
		logger.FromContext(c.Request.Context()).Error("link stats failed", "error", err)
		response.InternalServerError(c, "failed to compute stats")
		return
	}
	response.OK(c, "stats retrieved", summary)
}

// TinyURLDashboard handles GET /api/tinyurl/dashboard.
func (h *StatsHandler) TinyURLDashboard(c *gin.Context) {
	h.dashboard(c, domain.VariantTinyURL)
}

// LinktreeDashboard handles GET /api/linktree/dashboard.
func (h *StatsHandler) LinktreeDashboard(c *gin.Context) {
	h.dashboard(c, domain.VariantLinktree)
}

func (h *StatsHandler) dashboard(c *gin.Context, variant domain.Variant) {
	days := service.NormalizeDays(c.Query("days"))

	dash, err := h.stats.DashboardStats(c.Request.Context(), variant, days)
	if err != nil {
		logger.FromContext(c.Request.Context()).Error("dashboard failed", "error", err, "variant", string(variant))
		response.InternalServerError(c, "failed to compute dashboard")
		return
	}
	response.OK(c, "dashboard retrieved", dash)
}
