package handlers

import (
	"encoding/json"
	"regexp"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm/clause"

	"github.com/fullcourtvision/backend/internal/models"
	"github.com/fullcourtvision/backend/internal/services"
	"github.com/fullcourtvision/backend/pkg/database"
	"github.com/fullcourtvision/backend/pkg/utils"
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// SubscriptionHandler maintains digest subscription records. Sending the
// digests happens elsewhere; this is storage only.
type SubscriptionHandler struct {
	db *database.DB
}

func NewSubscriptionHandler(db *database.DB) *SubscriptionHandler {
	return &SubscriptionHandler{db: db}
}

// GetSubscription reports whether ?email= is subscribed.
func (h *SubscriptionHandler) GetSubscription(c *gin.Context) {
	email := normalizeEmail(c.Query("email"))
	if email == "" {
		utils.SendValidationError(c, "Email required", "")
		return
	}

	var sub models.Subscriber
	err := h.db.WithContext(c.Request.Context()).First(&sub, "email = ?", email).Error
	if err != nil {
		if services.IsNotFound(err) {
			utils.SendSuccess(c, gin.H{"subscribed": false})
			return
		}
		utils.SendInternalError(c, "Failed to load subscription")
		return
	}

	utils.SendSuccess(c, gin.H{"subscribed": true, "subscription": sub})
}

type subscribeRequest struct {
	Email     string   `json:"email" binding:"required"`
	PlayerIDs []string `json:"player_ids"`
	TeamIDs   []string `json:"team_ids"`
}

// Subscribe creates or updates a subscription keyed by email.
func (h *SubscriptionHandler) Subscribe(c *gin.Context) {
	var req subscribeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendValidationError(c, "Invalid request body", err.Error())
		return
	}

	email := normalizeEmail(req.Email)
	if !emailPattern.MatchString(email) {
		utils.SendValidationError(c, "Invalid email format", "")
		return
	}

	playerIDs, _ := json.Marshal(req.PlayerIDs)
	teamIDs, _ := json.Marshal(req.TeamIDs)

	sub := models.Subscriber{
		ID:        uuid.NewString(),
		Email:     email,
		PlayerIDs: playerIDs,
		TeamIDs:   teamIDs,
		Frequency: "weekly",
		Verified:  true,
		UpdatedAt: time.Now().UTC(),
	}

	err := h.db.WithContext(c.Request.Context()).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "email"}},
			DoUpdates: clause.AssignmentColumns([]string{"player_ids", "team_ids", "updated_at"}),
		}).
		Create(&sub).Error
	if err != nil {
		utils.SendInternalError(c, "Failed to save subscription")
		return
	}

	utils.SendSuccess(c, gin.H{"subscription": sub})
}

// Unsubscribe removes the subscription for ?email=.
func (h *SubscriptionHandler) Unsubscribe(c *gin.Context) {
	email := normalizeEmail(c.Query("email"))
	if email == "" {
		utils.SendValidationError(c, "Email required", "")
		return
	}

	err := h.db.WithContext(c.Request.Context()).
		Where("email = ?", email).
		Delete(&models.Subscriber{}).Error
	if err != nil {
		utils.SendInternalError(c, "Failed to remove subscription")
		return
	}

	utils.SendSuccess(c, gin.H{"unsubscribed": true})
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
