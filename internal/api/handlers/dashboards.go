package handlers

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/fullcourtvision/backend/internal/engine"
	"github.com/fullcourtvision/backend/internal/services"
	"github.com/fullcourtvision/backend/pkg/utils"
)

// DashboardHandler serves the league-wide computed views. Every endpoint
// follows the same shape: try cache, compute through the stats service,
// cache the payload.
type DashboardHandler struct {
	stats    *services.StatsService
	cache    *services.CacheService
	cacheTTL time.Duration
}

func NewDashboardHandler(stats *services.StatsService, cache *services.CacheService, cacheTTL time.Duration) *DashboardHandler {
	return &DashboardHandler{
		stats:    stats,
		cache:    cache,
		cacheTTL: cacheTTL,
	}
}

// GetLeaderboards returns the stat boards, optionally scoped by ?season=.
func (h *DashboardHandler) GetLeaderboards(c *gin.Context) {
	seasonID := c.Query("season")

	cacheKey := services.LeaderboardCacheKey("standard", seasonID)
	var cached services.Leaderboards
	if err := h.cache.Get(c.Request.Context(), cacheKey, &cached); err == nil {
		utils.SendSuccess(c, cached)
		return
	}

	boards, err := h.stats.GetLeaderboards(c.Request.Context(), seasonID)
	if err != nil {
		utils.SendInternalError(c, "Failed to build leaderboards")
		return
	}

	h.cache.SetWithRetry(c.Request.Context(), cacheKey, boards, h.cacheTTL, 3)
	utils.SendSuccess(c, boards)
}

// GetPERDashboard returns normalized efficiency ratings with rank and
// percentile, optionally scoped by ?season=.
func (h *DashboardHandler) GetPERDashboard(c *gin.Context) {
	seasonID := c.Query("season")

	cacheKey := services.LeaderboardCacheKey("per", seasonID)
	var cached []services.PEREntry
	if err := h.cache.Get(c.Request.Context(), cacheKey, &cached); err == nil {
		utils.SendSuccess(c, cached)
		return
	}

	entries, err := h.stats.GetPERDashboard(c.Request.Context(), seasonID)
	if err != nil {
		utils.SendInternalError(c, "Failed to compute efficiency ratings")
		return
	}

	h.cache.SetWithRetry(c.Request.Context(), cacheKey, entries, h.cacheTTL, 3)
	utils.SendSuccess(c, entries)
}

// GetAllStars returns the selected five and honorable mentions, optionally
// scoped by ?season=.
func (h *DashboardHandler) GetAllStars(c *gin.Context) {
	seasonID := c.Query("season")

	cacheKey := services.LeaderboardCacheKey("all-stars", seasonID)
	var cached engine.AllStarSelection
	if err := h.cache.Get(c.Request.Context(), cacheKey, &cached); err == nil {
		utils.SendSuccess(c, cached)
		return
	}

	selection, err := h.stats.GetAllStars(c.Request.Context(), seasonID)
	if err != nil {
		utils.SendInternalError(c, "Failed to select all-stars")
		return
	}

	h.cache.SetWithRetry(c.Request.Context(), cacheKey, selection, h.cacheTTL, 3)
	utils.SendSuccess(c, selection)
}

// GetClutch returns the clutch leaderboard plus close-game summary.
func (h *DashboardHandler) GetClutch(c *gin.Context) {
	cacheKey := services.DashboardCacheKey("clutch")
	var cached services.ClutchDashboard
	if err := h.cache.Get(c.Request.Context(), cacheKey, &cached); err == nil {
		utils.SendSuccess(c, cached)
		return
	}

	dashboard, err := h.stats.GetClutchDashboard(c.Request.Context())
	if err != nil {
		utils.SendInternalError(c, "Failed to compute clutch ratings")
		return
	}

	h.cache.SetWithRetry(c.Request.Context(), cacheKey, dashboard, h.cacheTTL, 3)
	utils.SendSuccess(c, dashboard)
}

// GetRisingStars returns the top season-over-season improvers.
func (h *DashboardHandler) GetRisingStars(c *gin.Context) {
	cacheKey := services.DashboardCacheKey("rising-stars")
	var cached []engine.ImprovementRecord
	if err := h.cache.Get(c.Request.Context(), cacheKey, &cached); err == nil {
		utils.SendSuccess(c, cached)
		return
	}

	records, err := h.stats.GetRisingStars(c.Request.Context())
	if err != nil {
		utils.SendInternalError(c, "Failed to find rising stars")
		return
	}

	h.cache.SetWithRetry(c.Request.Context(), cacheKey, records, h.cacheTTL, 3)
	utils.SendSuccess(c, records)
}

// GetAvailability returns the league availability boards.
func (h *DashboardHandler) GetAvailability(c *gin.Context) {
	cacheKey := services.DashboardCacheKey("availability")
	var cached services.AvailabilityBoards
	if err := h.cache.Get(c.Request.Context(), cacheKey, &cached); err == nil {
		utils.SendSuccess(c, cached)
		return
	}

	boards, err := h.stats.GetAvailabilityBoards(c.Request.Context())
	if err != nil {
		utils.SendInternalError(c, "Failed to compute availability boards")
		return
	}

	h.cache.SetWithRetry(c.Request.Context(), cacheKey, boards, h.cacheTTL, 3)
	utils.SendSuccess(c, boards)
}

// GetPowerRankings returns the team power ratings.
func (h *DashboardHandler) GetPowerRankings(c *gin.Context) {
	cacheKey := services.DashboardCacheKey("power-rankings")
	var cached []engine.PowerRanking
	if err := h.cache.Get(c.Request.Context(), cacheKey, &cached); err == nil {
		utils.SendSuccess(c, cached)
		return
	}

	rankings, err := h.stats.GetPowerRankings(c.Request.Context())
	if err != nil {
		utils.SendInternalError(c, "Failed to compute power rankings")
		return
	}

	h.cache.SetWithRetry(c.Request.Context(), cacheKey, rankings, h.cacheTTL, 3)
	utils.SendSuccess(c, rankings)
}

// GetPrediction predicts a matchup between ?team1= and ?team2=.
func (h *DashboardHandler) GetPrediction(c *gin.Context) {
	teamOne := c.Query("team1")
	teamTwo := c.Query("team2")
	if teamOne == "" || teamTwo == "" {
		utils.SendValidationError(c, "Both team1 and team2 are required", "")
		return
	}
	if teamOne == teamTwo {
		utils.SendValidationError(c, "team1 and team2 must differ", "")
		return
	}

	cacheKey := services.MatchupCacheKey(teamOne, teamTwo)
	var cached engine.MatchupPrediction
	if err := h.cache.Get(c.Request.Context(), cacheKey, &cached); err == nil {
		utils.SendSuccess(c, cached)
		return
	}

	prediction, err := h.stats.GetMatchupPrediction(c.Request.Context(), teamOne, teamTwo)
	if err != nil {
		if services.IsNotFound(err) {
			utils.SendNotFound(c, "Team not found")
			return
		}
		utils.SendInternalError(c, "Failed to predict matchup")
		return
	}

	h.cache.SetWithRetry(c.Request.Context(), cacheKey, prediction, h.cacheTTL, 3)
	utils.SendSuccess(c, prediction)
}
