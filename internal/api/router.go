package api

import (
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/fullcourtvision/backend/internal/api/handlers"
	"github.com/fullcourtvision/backend/internal/services"
	"github.com/fullcourtvision/backend/pkg/config"
	"github.com/fullcourtvision/backend/pkg/database"
)

// Dependencies carries everything the route tree needs. Handlers receive
// their collaborators explicitly; nothing reaches for globals.
type Dependencies struct {
	Config    *config.Config
	DB        *database.DB
	Redis     *redis.Client
	Cache     *services.CacheService
	Stats     *services.StatsService
	Publisher *services.PublisherService
	Refresher *services.RefresherService
	Logger    *logrus.Logger
}

// SetupRoutes configures all API routes on the given router group
func SetupRoutes(group *gin.RouterGroup, deps Dependencies) {
	cacheTTL := deps.Config.DashboardCacheTTL

	playerHandler := handlers.NewPlayerHandler(deps.Stats, deps.Cache, cacheTTL)
	dashboardHandler := handlers.NewDashboardHandler(deps.Stats, deps.Cache, cacheTTL)
	healthHandler := handlers.NewHealthHandler(deps.DB, deps.Redis, deps.Refresher)
	publishHandler := handlers.NewPublishHandler(deps.Publisher, deps.Refresher)
	subscriptionHandler := handlers.NewSubscriptionHandler(deps.DB)

	// Player endpoints
	group.GET("/players", playerHandler.ListPlayers)
	group.GET("/players/:id", playerHandler.GetPlayer)
	group.GET("/players/:id/anomalies", playerHandler.GetPlayerAnomalies)
	group.GET("/players/:id/availability", playerHandler.GetPlayerAvailability)
	group.GET("/players/:id/scouting", playerHandler.GetScoutingReport)

	// League dashboards
	group.GET("/leaderboards", dashboardHandler.GetLeaderboards)
	group.GET("/analytics/per", dashboardHandler.GetPERDashboard)
	group.GET("/all-stars", dashboardHandler.GetAllStars)
	group.GET("/clutch", dashboardHandler.GetClutch)
	group.GET("/rising-stars", dashboardHandler.GetRisingStars)
	group.GET("/availability", dashboardHandler.GetAvailability)
	group.GET("/rankings/power", dashboardHandler.GetPowerRankings)
	group.GET("/predictions", dashboardHandler.GetPrediction)

	// Publish pipeline
	group.GET("/publish/status", publishHandler.GetPublishStatus)
	group.POST("/publish", publishHandler.TriggerPublish)

	// Digest subscriptions (storage only; delivery is external)
	group.GET("/digest/subscriptions", subscriptionHandler.GetSubscription)
	group.POST("/digest/subscriptions", subscriptionHandler.Subscribe)
	group.DELETE("/digest/subscriptions", subscriptionHandler.Unsubscribe)

	// Health
	group.GET("/health", healthHandler.GetHealth)
}
