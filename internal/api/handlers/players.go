package handlers

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/fullcourtvision/backend/internal/engine"
	"github.com/fullcourtvision/backend/internal/services"
	"github.com/fullcourtvision/backend/pkg/utils"
)

type PlayerHandler struct {
	stats    *services.StatsService
	cache    *services.CacheService
	cacheTTL time.Duration
}

func NewPlayerHandler(stats *services.StatsService, cache *services.CacheService, cacheTTL time.Duration) *PlayerHandler {
	return &PlayerHandler{
		stats:    stats,
		cache:    cache,
		cacheTTL: cacheTTL,
	}
}

// ListPlayers returns the paginated player list with career totals.
func (h *PlayerHandler) ListPlayers(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "25"))
	search := c.Query("search")

	// Clamp here too: Meta is built from these values, and limit feeds a
	// division below.
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 25
	}

	players, total, err := h.stats.ListPlayers(c.Request.Context(), search, page, limit)
	if err != nil {
		utils.SendInternalError(c, "Failed to list players")
		return
	}

	totalPages := int(total) / limit
	if int(total)%limit != 0 {
		totalPages++
	}
	utils.SendSuccessWithMeta(c, players, &utils.Meta{
		Page:       page,
		PerPage:    limit,
		Total:      total,
		TotalPages: totalPages,
	})
}

// GetPlayer returns the full profile: identity, per-grade lines, career
// aggregate and archetype.
func (h *PlayerHandler) GetPlayer(c *gin.Context) {
	playerID := c.Param("id")

	cacheKey := services.PlayerProfileCacheKey(playerID)
	var cached services.PlayerProfile
	if err := h.cache.Get(c.Request.Context(), cacheKey, &cached); err == nil {
		utils.SendSuccess(c, cached)
		return
	}

	profile, err := h.stats.GetPlayerProfile(c.Request.Context(), playerID)
	if err != nil {
		if services.IsNotFound(err) {
			utils.SendNotFound(c, "Player not found")
			return
		}
		utils.SendInternalError(c, "Failed to load player")
		return
	}

	h.cache.SetWithRetry(c.Request.Context(), cacheKey, profile, h.cacheTTL, 3)
	utils.SendSuccess(c, profile)
}

// GetPlayerAnomalies returns the badge list for one player.
func (h *PlayerHandler) GetPlayerAnomalies(c *gin.Context) {
	playerID := c.Param("id")

	cacheKey := services.PlayerAnomaliesCacheKey(playerID)
	var cached []engine.Anomaly
	if err := h.cache.Get(c.Request.Context(), cacheKey, &cached); err == nil {
		utils.SendSuccess(c, cached)
		return
	}

	anomalies, err := h.stats.GetPlayerAnomalies(c.Request.Context(), playerID)
	if err != nil {
		if services.IsNotFound(err) {
			utils.SendNotFound(c, "Player not found")
			return
		}
		utils.SendInternalError(c, "Failed to detect anomalies")
		return
	}

	h.cache.SetWithRetry(c.Request.Context(), cacheKey, anomalies, h.cacheTTL, 3)
	utils.SendSuccess(c, anomalies)
}

// GetPlayerAvailability returns the availability record and its per-entry
// breakdown.
func (h *PlayerHandler) GetPlayerAvailability(c *gin.Context) {
	playerID := c.Param("id")

	availability, err := h.stats.GetPlayerAvailability(c.Request.Context(), playerID)
	if err != nil {
		if services.IsNotFound(err) {
			utils.SendNotFound(c, "Player not found")
			return
		}
		utils.SendInternalError(c, "Failed to compute availability")
		return
	}

	utils.SendSuccess(c, availability)
}

// GetScoutingReport returns percentiles, grade, strengths, weaknesses and
// statistical comparables for one player.
func (h *PlayerHandler) GetScoutingReport(c *gin.Context) {
	playerID := c.Param("id")

	cacheKey := services.ScoutingReportCacheKey(playerID)
	var cached engine.ScoutingReport
	if err := h.cache.Get(c.Request.Context(), cacheKey, &cached); err == nil {
		utils.SendSuccess(c, cached)
		return
	}

	report, err := h.stats.GetScoutingReport(c.Request.Context(), playerID)
	if err != nil {
		if services.IsNotFound(err) {
			utils.SendNotFound(c, "Player not found")
			return
		}
		utils.SendInternalError(c, "Failed to build scouting report")
		return
	}

	h.cache.SetWithRetry(c.Request.Context(), cacheKey, report, h.cacheTTL, 3)
	utils.SendSuccess(c, report)
}
