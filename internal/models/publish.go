package models

import (
	"time"

	"gorm.io/datatypes"
)

// PublishRun records one staging-to-hosted republish, including per-table
// row counts in the summary payload.
type PublishRun struct {
	ID         string         `gorm:"primaryKey;type:uuid" json:"id"`
	StartedAt  time.Time      `json:"started_at"`
	FinishedAt *time.Time     `json:"finished_at,omitempty"`
	Status     string         `gorm:"default:running" json:"status"` // "running", "succeeded", "failed"
	Error      string         `json:"error,omitempty"`
	Summary    datatypes.JSON `json:"summary,omitempty"`
}

func (PublishRun) TableName() string {
	return "publish_runs"
}
