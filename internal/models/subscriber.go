package models

import (
	"time"

	"gorm.io/datatypes"
)

// Subscriber is a stored digest subscription. Delivery is handled outside
// this service; the API only maintains the subscription records.
type Subscriber struct {
	ID        string         `gorm:"primaryKey;type:uuid" json:"id"`
	Email     string         `gorm:"uniqueIndex;not null" json:"email"`
	PlayerIDs datatypes.JSON `json:"player_ids,omitempty"`
	TeamIDs   datatypes.JSON `json:"team_ids,omitempty"`
	Frequency string         `gorm:"default:weekly" json:"frequency"`
	Verified  bool           `gorm:"default:true" json:"verified"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
}

func (Subscriber) TableName() string {
	return "email_subscriptions"
}
