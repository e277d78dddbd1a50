package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/fullcourtvision/backend/internal/services"
	"github.com/fullcourtvision/backend/pkg/utils"
)

type PublishHandler struct {
	publisher *services.PublisherService
	refresher *services.RefresherService
}

func NewPublishHandler(publisher *services.PublisherService, refresher *services.RefresherService) *PublishHandler {
	return &PublishHandler{
		publisher: publisher,
		refresher: refresher,
	}
}

// GetPublishStatus reports the most recent publish run and the scheduler
// state, the data-freshness view for the dashboard footer.
func (h *PublishHandler) GetPublishStatus(c *gin.Context) {
	lastRun, err := h.publisher.LastRun(c.Request.Context())
	if err != nil {
		utils.SendInternalError(c, "Failed to load publish status")
		return
	}

	utils.SendSuccess(c, gin.H{
		"last_run":  lastRun,
		"breaker":   h.publisher.BreakerState().String(),
		"scheduler": h.refresher.Status(),
	})
}

// TriggerPublish queues an immediate out-of-schedule publish. The run
// executes in the background; callers poll GetPublishStatus for outcome.
func (h *PublishHandler) TriggerPublish(c *gin.Context) {
	h.refresher.PublishNow()
	utils.SendSuccess(c, gin.H{"queued": true})
}
