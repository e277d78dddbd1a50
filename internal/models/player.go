package models

import "time"

// Player is a scraped player identity. IDs come from the upstream
// competition platform and are stable across seasons.
type Player struct {
	ID        string    `gorm:"primaryKey;type:uuid" json:"id"`
	FirstName string    `gorm:"not null" json:"first_name"`
	LastName  string    `gorm:"not null" json:"last_name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Stats []PlayerStat `gorm:"foreignKey:PlayerID" json:"stats,omitempty"`
}

func (Player) TableName() string {
	return "players"
}

// PlayerStat is one player's accumulated line within one grade entry.
// Totals are made-basket counts, not attempts; total_points is trusted as
// stored and never re-derived from the per-bucket counts.
type PlayerStat struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	PlayerID    string `gorm:"type:uuid;index;not null" json:"player_id"`
	GradeID     string `gorm:"type:uuid;index;not null" json:"grade_id"`
	TeamName    string `json:"team_name"`
	GamesPlayed int    `gorm:"default:0" json:"games_played"`
	TotalPoints int    `gorm:"default:0" json:"total_points"`
	OnePoint    int    `gorm:"default:0" json:"one_point"`
	TwoPoint    int    `gorm:"default:0" json:"two_point"`
	ThreePoint  int    `gorm:"default:0" json:"three_point"`
	TotalFouls  int    `gorm:"default:0" json:"total_fouls"`
	Ranking     *int   `json:"ranking,omitempty"`

	Player *Player `gorm:"foreignKey:PlayerID" json:"player,omitempty"`
	Grade  *Grade  `gorm:"foreignKey:GradeID" json:"grade,omitempty"`
}

func (PlayerStat) TableName() string {
	return "player_stats"
}
