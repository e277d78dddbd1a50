package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/fullcourtvision/backend/internal/engine"
	"github.com/fullcourtvision/backend/internal/models"
	"github.com/fullcourtvision/backend/pkg/database"
)

// StatsService answers the player-facing queries: it loads rows from the
// hosted store, hands them to the engine, and shapes the response DTOs.
// All derived numbers come from the engine; nothing is computed inline here.
type StatsService struct {
	db     *database.DB
	logger *logrus.Logger
}

func NewStatsService(db *database.DB, logger *logrus.Logger) *StatsService {
	return &StatsService{
		db:     db,
		logger: logger,
	}
}

// PlayerSummary is one row of the player list.
type PlayerSummary struct {
	ID          string           `json:"id"`
	FirstName   string           `json:"first_name"`
	LastName    string           `json:"last_name"`
	GamesPlayed int              `json:"games_played"`
	TotalPoints int              `json:"total_points"`
	PPG         float64          `json:"ppg"`
	Archetype   engine.Archetype `json:"archetype"`
}

// ListPlayers returns a paginated, optionally name-filtered player list with
// career totals attached.
func (s *StatsService) ListPlayers(ctx context.Context, search string, page, limit int) ([]PlayerSummary, int64, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 25
	}

	query := s.db.WithContext(ctx).Model(&models.Player{})
	if search != "" {
		pattern := "%" + strings.TrimSpace(search) + "%"
		query = query.Where("first_name ILIKE ? OR last_name ILIKE ?", pattern, pattern)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count players: %w", err)
	}

	var players []models.Player
	err := query.Preload("Stats").
		Order("last_name, first_name").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&players).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list players: %w", err)
	}

	summaries := make([]PlayerSummary, 0, len(players))
	for _, p := range players {
		agg := engine.Aggregate(statLinesFromStats(p.Stats, nil))
		summaries = append(summaries, PlayerSummary{
			ID:          p.ID,
			FirstName:   p.FirstName,
			LastName:    p.LastName,
			GamesPlayed: agg.GamesPlayed,
			TotalPoints: agg.TotalPoints,
			PPG:         engine.Round1(agg.PPG),
			Archetype:   engine.ClassifyArchetype(agg.PPG, agg.ThreePtPerGame, agg.TwoPtPerGame, agg.FoulsPerGame),
		})
	}

	return summaries, total, nil
}

// GradeStatLine is one per-grade row on the player profile, with names
// resolved for display.
type GradeStatLine struct {
	GradeID     string `json:"grade_id"`
	GradeName   string `json:"grade_name"`
	SeasonName  string `json:"season_name"`
	TeamName    string `json:"team_name"`
	GamesPlayed int    `json:"games_played"`
	TotalPoints int    `json:"total_points"`
	OnePoint    int    `json:"one_point"`
	TwoPoint    int    `json:"two_point"`
	ThreePoint  int    `json:"three_point"`
	TotalFouls  int    `json:"total_fouls"`
	Ranking     *int   `json:"ranking,omitempty"`
}

// PlayerProfile is the full player page payload.
type PlayerProfile struct {
	Player    models.Player          `json:"player"`
	Totals    engine.AggregateTotals `json:"totals"`
	Archetype engine.Archetype       `json:"archetype"`
	Grades    []GradeStatLine        `json:"grades"`
}

// GetPlayerProfile loads a player with their per-grade lines and career
// aggregate. Returns gorm.ErrRecordNotFound for unknown ids.
func (s *StatsService) GetPlayerProfile(ctx context.Context, playerID string) (*PlayerProfile, error) {
	player, stats, err := s.loadPlayerWithStats(ctx, playerID)
	if err != nil {
		return nil, err
	}

	lines := statLinesFromStats(stats, nil)
	agg := engine.Aggregate(lines)

	grades := make([]GradeStatLine, 0, len(lines))
	for _, line := range lines {
		grades = append(grades, GradeStatLine{
			GradeID:     line.GradeID,
			GradeName:   line.GradeName,
			SeasonName:  line.SeasonName,
			TeamName:    line.TeamName,
			GamesPlayed: line.GamesPlayed,
			TotalPoints: line.TotalPoints,
			OnePoint:    line.OnePoint,
			TwoPoint:    line.TwoPoint,
			ThreePoint:  line.ThreePoint,
			TotalFouls:  line.TotalFouls,
			Ranking:     line.Ranking,
		})
	}

	return &PlayerProfile{
		Player:    *player,
		Totals:    agg,
		Archetype: engine.ClassifyArchetype(agg.PPG, agg.ThreePtPerGame, agg.TwoPtPerGame, agg.FoulsPerGame),
		Grades:    grades,
	}, nil
}

// GetPlayerAnomalies runs the badge detectors over a player's career rows.
func (s *StatsService) GetPlayerAnomalies(ctx context.Context, playerID string) ([]engine.Anomaly, error) {
	player, stats, err := s.loadPlayerWithStats(ctx, playerID)
	if err != nil {
		return nil, err
	}

	identity := engine.PlayerIdentity{ID: player.ID, FirstName: player.FirstName, LastName: player.LastName}
	return engine.DetectAnomalies(statLinesFromStats(stats, nil), identity), nil
}

// PlayerAvailability is the profile availability payload: the overall record
// plus the per-entry breakdown behind it.
type PlayerAvailability struct {
	Record  engine.AvailabilityRecord `json:"record"`
	Entries []AvailabilityEntryDetail `json:"entries"`
}

type AvailabilityEntryDetail struct {
	GradeName     string `json:"grade_name"`
	SeasonName    string `json:"season_name"`
	TeamName      string `json:"team_name"`
	GamesPlayed   int    `json:"games_played"`
	PossibleGames int    `json:"possible_games"`
}

// GetPlayerAvailability estimates per-entry possible games as the most
// games any teammate recorded in the same grade entry, then folds the
// entries through the engine.
func (s *StatsService) GetPlayerAvailability(ctx context.Context, playerID string) (*PlayerAvailability, error) {
	_, stats, err := s.loadPlayerWithStats(ctx, playerID)
	if err != nil {
		return nil, err
	}
	if len(stats) == 0 {
		return &PlayerAvailability{Record: engine.AvailabilityRecord{}, Entries: []AvailabilityEntryDetail{}}, nil
	}

	gradeIDs := make([]string, 0, len(stats))
	for _, st := range stats {
		gradeIDs = append(gradeIDs, st.GradeID)
	}

	maxByEntry, err := s.teamMaxGames(ctx, gradeIDs)
	if err != nil {
		return nil, err
	}

	entries := make([]engine.AvailabilityEntry, 0, len(stats))
	details := make([]AvailabilityEntryDetail, 0, len(stats))
	for _, st := range stats {
		possible := maxByEntry[entryKey(st.GradeID, st.TeamName)]
		if possible < st.GamesPlayed {
			possible = st.GamesPlayed
		}
		entries = append(entries, engine.AvailabilityEntry{
			GamesPlayed:   st.GamesPlayed,
			PossibleGames: possible,
			Participation: syntheticParticipation(st.GamesPlayed),
		})

		detail := AvailabilityEntryDetail{
			TeamName:      st.TeamName,
			GamesPlayed:   st.GamesPlayed,
			PossibleGames: possible,
		}
		if st.Grade != nil {
			detail.GradeName = st.Grade.Name
			if st.Grade.Season != nil {
				detail.SeasonName = st.Grade.Season.Name
			}
		}
		details = append(details, detail)
	}

	return &PlayerAvailability{
		Record:  engine.ComputeAvailability(entries),
		Entries: details,
	}, nil
}

// GetScoutingReport compares a player against every other player with a
// meaningful sample.
func (s *StatsService) GetScoutingReport(ctx context.Context, playerID string) (*engine.ScoutingReport, error) {
	player, stats, err := s.loadPlayerWithStats(ctx, playerID)
	if err != nil {
		return nil, err
	}

	subjectAgg := engine.Aggregate(statLinesFromStats(stats, nil))
	identity := engine.PlayerIdentity{ID: player.ID, FirstName: player.FirstName, LastName: player.LastName}
	subject := engine.ProfileFromTotals(identity, subjectAgg)

	population, err := s.scoutingPopulation(ctx, playerID)
	if err != nil {
		return nil, err
	}

	report := engine.BuildScoutingReport(subject, population)
	return &report, nil
}

// scoutingPopulation aggregates every other player with 2+ career games
// into comparison profiles.
func (s *StatsService) scoutingPopulation(ctx context.Context, excludeID string) ([]engine.StatProfile, error) {
	players, err := s.loadAllPlayersWithStats(ctx)
	if err != nil {
		return nil, err
	}

	population := make([]engine.StatProfile, 0, len(players))
	for _, p := range players {
		if p.ID == excludeID {
			continue
		}
		agg := engine.Aggregate(statLinesFromStats(p.Stats, nil))
		if agg.GamesPlayed < 2 {
			continue
		}
		identity := engine.PlayerIdentity{ID: p.ID, FirstName: p.FirstName, LastName: p.LastName}
		population = append(population, engine.ProfileFromTotals(identity, agg))
	}
	return population, nil
}

func (s *StatsService) loadPlayerWithStats(ctx context.Context, playerID string) (*models.Player, []models.PlayerStat, error) {
	var player models.Player
	err := s.db.WithContext(ctx).
		Preload("Stats.Grade.Season").
		First(&player, "id = ?", playerID).Error
	if err != nil {
		return nil, nil, err
	}
	return &player, player.Stats, nil
}

func (s *StatsService) loadAllPlayersWithStats(ctx context.Context) ([]models.Player, error) {
	var players []models.Player
	err := s.db.WithContext(ctx).
		Preload("Stats.Grade.Season").
		Find(&players).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load players: %w", err)
	}
	return players, nil
}

// teamMaxGames returns, per grade entry and team, the most games any single
// player recorded. Used as the possible-games estimate.
func (s *StatsService) teamMaxGames(ctx context.Context, gradeIDs []string) (map[string]int, error) {
	type row struct {
		GradeID  string
		TeamName string
		MaxGames int
	}

	var rows []row
	query := s.db.WithContext(ctx).
		Model(&models.PlayerStat{}).
		Select("grade_id, team_name, MAX(games_played) AS max_games").
		Group("grade_id, team_name")
	if len(gradeIDs) > 0 {
		query = query.Where("grade_id IN ?", gradeIDs)
	}
	if err := query.Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to compute team game counts: %w", err)
	}

	out := make(map[string]int, len(rows))
	for _, r := range rows {
		out[entryKey(r.GradeID, r.TeamName)] = r.MaxGames
	}
	return out, nil
}

func entryKey(gradeID, teamName string) string {
	return gradeID + "|" + strings.ToLower(teamName)
}

// syntheticParticipation stands in when no per-round appearance data is
// stored: an entry's games are treated as one contiguous run, so the streak
// equals the entry's games played. Real participation rows replace this
// once game-level rosters are scraped.
func syntheticParticipation(gamesPlayed int) []engine.RoundParticipation {
	if gamesPlayed <= 0 {
		return nil
	}
	participation := make([]engine.RoundParticipation, gamesPlayed)
	for i := range participation {
		participation[i] = engine.RoundParticipation{Round: i + 1, Played: true}
	}
	return participation
}

// statLinesFromStats converts stored rows to engine input. A non-nil filter
// keeps only rows whose season passes it.
func statLinesFromStats(stats []models.PlayerStat, seasonFilter func(*models.Season) bool) []engine.StatLine {
	lines := make([]engine.StatLine, 0, len(stats))
	for _, st := range stats {
		var season *models.Season
		gradeName := ""
		if st.Grade != nil {
			gradeName = st.Grade.Name
			season = st.Grade.Season
		}
		if seasonFilter != nil && !seasonFilter(season) {
			continue
		}
		seasonName := ""
		if season != nil {
			seasonName = season.Name
		}
		lines = append(lines, engine.StatLine{
			PlayerID:    st.PlayerID,
			GradeID:     st.GradeID,
			GradeName:   gradeName,
			SeasonName:  seasonName,
			TeamName:    st.TeamName,
			GamesPlayed: st.GamesPlayed,
			TotalPoints: st.TotalPoints,
			OnePoint:    st.OnePoint,
			TwoPoint:    st.TwoPoint,
			ThreePoint:  st.ThreePoint,
			TotalFouls:  st.TotalFouls,
			Ranking:     st.Ranking,
		})
	}
	return lines
}

// IsNotFound reports whether err is the store's missing-record error.
func IsNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}
