package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/fullcourtvision/backend/internal/services"
	"github.com/fullcourtvision/backend/pkg/database"
)

type HealthHandler struct {
	db        *database.DB
	redis     *redis.Client
	refresher *services.RefresherService
}

func NewHealthHandler(db *database.DB, redisClient *redis.Client, refresher *services.RefresherService) *HealthHandler {
	return &HealthHandler{
		db:        db,
		redis:     redisClient,
		refresher: refresher,
	}
}

// GetHealth checks the serving store and cache. Degraded dependencies
// return 503 with per-check detail so probes and humans see the same thing.
func (h *HealthHandler) GetHealth(c *gin.Context) {
	checks := gin.H{}
	healthy := true

	if err := h.db.HealthCheck(); err != nil {
		checks["database"] = err.Error()
		healthy = false
	} else {
		checks["database"] = "ok"
	}

	if err := h.redis.Ping(c.Request.Context()).Err(); err != nil {
		checks["redis"] = err.Error()
		healthy = false
	} else {
		checks["redis"] = "ok"
	}

	status := "ok"
	code := http.StatusOK
	if !healthy {
		status = "degraded"
		code = http.StatusServiceUnavailable
	}

	body := gin.H{
		"status":    status,
		"timestamp": time.Now().UTC(),
		"service":   "fullcourtvision",
		"checks":    checks,
	}
	if h.refresher != nil {
		body["refresher"] = h.refresher.Status()
	}

	c.JSON(code, body)
}
