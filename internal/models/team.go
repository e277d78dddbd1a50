package models

import "time"

type Team struct {
	ID        string    `gorm:"primaryKey;type:uuid" json:"id"`
	Name      string    `gorm:"index;not null" json:"name"`
	GradeID   string    `gorm:"type:uuid;index" json:"grade_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Team) TableName() string {
	return "teams"
}

// TeamAggregate is a precomputed season record per team, rebuilt by the
// refresher job after each publish.
type TeamAggregate struct {
	ID               uint      `gorm:"primaryKey" json:"id"`
	TeamID           string    `gorm:"type:uuid;uniqueIndex" json:"team_id"`
	Name             string    `json:"name"`
	OrganisationID   string    `gorm:"type:uuid" json:"organisation_id"`
	OrganisationName string    `json:"organisation_name"`
	SeasonID         string    `gorm:"type:uuid;index" json:"season_id"`
	SeasonName       string    `json:"season_name"`
	Wins             int       `gorm:"default:0" json:"wins"`
	Losses           int       `gorm:"default:0" json:"losses"`
	Draws            int       `gorm:"default:0" json:"draws"`
	GamesPlayed      int       `gorm:"column:gp;default:0" json:"gp"`
	PointsFor        int       `gorm:"default:0" json:"points_for"`
	PointsAgainst    int       `gorm:"default:0" json:"points_against"`
	UpdatedAt        time.Time `json:"updated_at"`
}

func (TeamAggregate) TableName() string {
	return "team_aggregates"
}
