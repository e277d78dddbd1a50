package models

import (
	"time"

	"gorm.io/datatypes"
)

type Competition struct {
	ID             string `gorm:"primaryKey;type:uuid" json:"id"`
	Name           string `gorm:"not null" json:"name"`
	OrganisationID string `gorm:"type:uuid;index" json:"organisation_id"`

	Organisation *Organisation `gorm:"foreignKey:OrganisationID" json:"organisation,omitempty"`
}

func (Competition) TableName() string {
	return "competitions"
}

type Organisation struct {
	ID   string `gorm:"primaryKey;type:uuid" json:"id"`
	Name string `gorm:"not null" json:"name"`
}

func (Organisation) TableName() string {
	return "organisations"
}

// Season groups grades within a competition. StartDate is nullable in the
// scraped data; recency-dependent computations skip seasons without one.
type Season struct {
	ID            string          `gorm:"primaryKey;type:uuid" json:"id"`
	Name          string          `gorm:"not null" json:"name"`
	StartDate     *datatypes.Date `json:"start_date,omitempty"`
	CompetitionID string          `gorm:"type:uuid;index" json:"competition_id"`

	Competition *Competition `gorm:"foreignKey:CompetitionID" json:"competition,omitempty"`
}

func (Season) TableName() string {
	return "seasons"
}

// Grade is a division/skill tier within a season, e.g. "U16 Boys Division 2".
type Grade struct {
	ID       string  `gorm:"primaryKey;type:uuid" json:"id"`
	Name     string  `gorm:"not null" json:"name"`
	Type     *string `json:"type,omitempty"`
	SeasonID string  `gorm:"type:uuid;index" json:"season_id"`

	Season *Season `gorm:"foreignKey:SeasonID" json:"season,omitempty"`
}

func (Grade) TableName() string {
	return "grades"
}

// Game is a fixture. Scores stay null until the game has been played.
type Game struct {
	ID         string         `gorm:"primaryKey;type:uuid" json:"id"`
	GradeID    string         `gorm:"type:uuid;index" json:"grade_id"`
	Round      int            `json:"round"`
	HomeTeamID string         `gorm:"type:uuid;index" json:"home_team_id"`
	AwayTeamID string         `gorm:"type:uuid;index" json:"away_team_id"`
	HomeScore  *int           `json:"home_score,omitempty"`
	AwayScore  *int           `json:"away_score,omitempty"`
	Date       datatypes.Date `json:"date"`
	Status     string         `gorm:"default:SCHEDULED" json:"status"` // "SCHEDULED" or "FINAL"
	CreatedAt  time.Time      `json:"created_at"`
}

func (Game) TableName() string {
	return "games"
}

// IsCompleted reports whether both scores have been recorded.
func (g *Game) IsCompleted() bool {
	return g.HomeScore != nil && g.AwayScore != nil
}
