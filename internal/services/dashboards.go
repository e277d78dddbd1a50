package services

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/fullcourtvision/backend/internal/engine"
	"github.com/fullcourtvision/backend/internal/models"
)

const boardLimit = 50

// LeaderboardEntry is one row on a stat leaderboard.
type LeaderboardEntry struct {
	PlayerID    string  `json:"player_id"`
	PlayerName  string  `json:"player_name"`
	GamesPlayed int     `json:"games_played"`
	TotalPoints int     `json:"total_points"`
	PPG         float64 `json:"ppg"`
	ThreePoint  int     `json:"three_point"`
	TotalFouls  int     `json:"total_fouls"`
}

// Leaderboards is the standard set of boards, optionally scoped to a season.
type Leaderboards struct {
	PPG         []LeaderboardEntry `json:"ppg"`
	TotalPoints []LeaderboardEntry `json:"total_points"`
	ThreePoint  []LeaderboardEntry `json:"three_point"`
	GamesPlayed []LeaderboardEntry `json:"games_played"`
}

// GetLeaderboards aggregates every player within the scope and sorts the
// boards. The PPG board requires 5+ games so two hot games cannot top it;
// the counting boards have no minimum.
func (s *StatsService) GetLeaderboards(ctx context.Context, seasonID string) (*Leaderboards, error) {
	entries, err := s.aggregatePlayers(ctx, seasonID)
	if err != nil {
		return nil, err
	}

	rows := make([]LeaderboardEntry, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, LeaderboardEntry{
			PlayerID:    e.player.ID,
			PlayerName:  e.identity().Name(),
			GamesPlayed: e.totals.GamesPlayed,
			TotalPoints: e.totals.TotalPoints,
			PPG:         engine.Round1(e.totals.PPG),
			ThreePoint:  e.totals.ThreePoint,
			TotalFouls:  e.totals.TotalFouls,
		})
	}

	boards := &Leaderboards{}
	boards.PPG = topRows(rows, func(r LeaderboardEntry) bool { return r.GamesPlayed >= 5 },
		func(a, b LeaderboardEntry) bool { return a.PPG > b.PPG })
	boards.TotalPoints = topRows(rows, nil,
		func(a, b LeaderboardEntry) bool { return a.TotalPoints > b.TotalPoints })
	boards.ThreePoint = topRows(rows, nil,
		func(a, b LeaderboardEntry) bool { return a.ThreePoint > b.ThreePoint })
	boards.GamesPlayed = topRows(rows, nil,
		func(a, b LeaderboardEntry) bool { return a.GamesPlayed > b.GamesPlayed })
	return boards, nil
}

func topRows(rows []LeaderboardEntry, keep func(LeaderboardEntry) bool, less func(a, b LeaderboardEntry) bool) []LeaderboardEntry {
	filtered := make([]LeaderboardEntry, 0, len(rows))
	for _, r := range rows {
		if keep == nil || keep(r) {
			filtered = append(filtered, r)
		}
	}
	sort.SliceStable(filtered, func(i, j int) bool { return less(filtered[i], filtered[j]) })
	if len(filtered) > boardLimit {
		filtered = filtered[:boardLimit]
	}
	return filtered
}

// PEREntry is one row of the efficiency dashboard.
type PEREntry struct {
	PlayerID    string   `json:"player_id"`
	PlayerName  string   `json:"player_name"`
	GamesPlayed int      `json:"games_played"`
	PPG         float64  `json:"ppg"`
	PER         float64  `json:"per"`
	Rank        int      `json:"rank"`
	Percentile  *float64 `json:"percentile"`
}

// GetPERDashboard computes normalized PER for every player with 3+ games in
// the scope, then ranks each within that same population. Scope is explicit:
// a season filter changes both the ratings and the population they rank
// against, never one without the other.
func (s *StatsService) GetPERDashboard(ctx context.Context, seasonID string) ([]PEREntry, error) {
	aggregated, err := s.aggregatePlayers(ctx, seasonID)
	if err != nil {
		return nil, err
	}

	type rated struct {
		agg aggregatedPlayer
		raw float64
	}
	pool := make([]rated, 0, len(aggregated))
	raws := make([]float64, 0, len(aggregated))
	for _, e := range aggregated {
		if e.totals.GamesPlayed < 3 {
			continue
		}
		raw := engine.RawPER(e.totals)
		pool = append(pool, rated{agg: e, raw: raw})
		raws = append(raws, raw)
	}

	factor := engine.PERNormFactor(raws)
	normalized := make([]float64, len(pool))
	for i, r := range pool {
		normalized[i] = r.raw * factor
	}

	entries := make([]PEREntry, 0, len(pool))
	for i, r := range pool {
		placed := engine.RankWithin(normalized[i], normalized)
		entries = append(entries, PEREntry{
			PlayerID:    r.agg.player.ID,
			PlayerName:  r.agg.identity().Name(),
			GamesPlayed: r.agg.totals.GamesPlayed,
			PPG:         engine.Round1(r.agg.totals.PPG),
			PER:         engine.Round1(normalized[i]),
			Rank:        placed.Rank,
			Percentile:  placed.Percentile,
		})
	}

	sort.SliceStable(entries, func(i, j int) bool { return entries[i].Rank < entries[j].Rank })
	return entries, nil
}

// GetAllStars scores the qualifying pool and runs the diversity-constrained
// selection.
func (s *StatsService) GetAllStars(ctx context.Context, seasonID string) (*engine.AllStarSelection, error) {
	aggregated, err := s.aggregatePlayers(ctx, seasonID)
	if err != nil {
		return nil, err
	}

	candidates := make([]engine.ScoredPlayer, 0, len(aggregated))
	for _, e := range aggregated {
		candidate := engine.ScoredPlayer{
			PlayerID:    e.player.ID,
			PlayerName:  e.identity().Name(),
			TeamName:    e.lastTeamName,
			GradeName:   e.lastGradeName,
			Score:       engine.EfficiencyScore(e.totals),
			PPG:         engine.Round1(e.totals.PPG),
			GamesPlayed: e.totals.GamesPlayed,
			Archetype:   engine.ClassifyArchetype(e.totals.PPG, e.totals.ThreePtPerGame, e.totals.TwoPtPerGame, e.totals.FoulsPerGame),
		}
		if !candidate.Qualifies() {
			continue
		}
		candidates = append(candidates, candidate)
	}

	sort.SliceStable(candidates, func(i, j int) bool { return candidates[i].Score > candidates[j].Score })

	selection := engine.SelectAllStars(candidates)
	return &selection, nil
}

// ClutchEntry is one ranked row of the clutch leaderboard.
type ClutchEntry struct {
	PlayerID   string `json:"player_id"`
	PlayerName string `json:"player_name"`
	engine.ClutchRecord
}

// ClutchDashboard is the leaderboard plus the close-game header stats.
type ClutchDashboard struct {
	Leaderboard     []ClutchEntry `json:"leaderboard"`
	TotalCloseGames int           `json:"total_close_games"`
	AvgMargin       float64       `json:"avg_margin"`
	MostClutchTeam  string        `json:"most_clutch_team,omitempty"`
}

// GetClutchDashboard builds the per-team close-game ledger from completed
// games, matches players to their teams by entry team name, and rates every
// player. Only records with a qualifying sample reach the leaderboard.
func (s *StatsService) GetClutchDashboard(ctx context.Context) (*ClutchDashboard, error) {
	games, err := s.loadGameResults(ctx)
	if err != nil {
		return nil, err
	}
	ledger := engine.BuildCloseGameLedger(games)

	teamIDsByEntry, teamNames, err := s.teamIndex(ctx)
	if err != nil {
		return nil, err
	}

	players, err := s.loadAllPlayersWithStats(ctx)
	if err != nil {
		return nil, err
	}

	var entries []ClutchEntry
	for _, p := range players {
		totals := engine.Aggregate(statLinesFromStats(p.Stats, nil))
		if totals.GamesPlayed == 0 {
			continue
		}

		var closeRecord engine.CloseRecord
		seen := map[string]bool{}
		for _, st := range p.Stats {
			for _, teamID := range teamIDsByEntry[entryKey(st.GradeID, st.TeamName)] {
				if seen[teamID] {
					continue
				}
				seen[teamID] = true
				rec := ledger[teamID]
				closeRecord.Wins += rec.Wins
				closeRecord.Losses += rec.Losses
				closeRecord.Draws += rec.Draws
			}
		}

		record := engine.RateClutch(totals, closeRecord)
		if !record.QualifiesForRank {
			continue
		}
		entries = append(entries, ClutchEntry{
			PlayerID:     p.ID,
			PlayerName:   engine.PlayerIdentity{ID: p.ID, FirstName: p.FirstName, LastName: p.LastName}.Name(),
			ClutchRecord: record,
		})
	}

	sort.SliceStable(entries, func(i, j int) bool { return entries[i].Rating > entries[j].Rating })
	if len(entries) > boardLimit {
		entries = entries[:boardLimit]
	}

	summary := engine.SummarizeCloseGames(games)
	dashboard := &ClutchDashboard{
		Leaderboard:     entries,
		TotalCloseGames: summary.TotalCloseGames,
		AvgMargin:       summary.AvgMargin,
	}

	// Most clutch team: best close-game win rate with at least 3 close games.
	bestRate := -1.0
	for teamID, rec := range ledger {
		total := rec.Total()
		if total < 3 {
			continue
		}
		rate := float64(rec.Wins) / float64(total)
		if rate > bestRate {
			bestRate = rate
			dashboard.MostClutchTeam = teamNames[teamID]
		}
	}

	return dashboard, nil
}

// GetRisingStars compares each player's two most recent dated seasons and
// ranks the positive PPG jumps.
func (s *StatsService) GetRisingStars(ctx context.Context) ([]engine.ImprovementRecord, error) {
	players, err := s.loadAllPlayersWithStats(ctx)
	if err != nil {
		return nil, err
	}

	var records []engine.ImprovementRecord
	for _, p := range players {
		seasons := qualifyingSeasons(seasonTotalsFor(p.Stats))
		if len(seasons) < 2 {
			continue
		}
		identity := engine.PlayerIdentity{ID: p.ID, FirstName: p.FirstName, LastName: p.LastName}
		// seasons[0] is most recent; the finder wants previous first.
		if rec := engine.FindImprovement(identity, seasons[1], seasons[0]); rec != nil {
			records = append(records, *rec)
		}
	}

	return engine.RisingStars(records, boardLimit), nil
}

// qualifyingSeasons keeps only seasons with an improvement-worthy sample,
// preserving order. A short cameo season drops out rather than blocking the
// comparison of the two full seasons behind it.
func qualifyingSeasons(seasons []engine.SeasonStat) []engine.SeasonStat {
	kept := make([]engine.SeasonStat, 0, len(seasons))
	for _, s := range seasons {
		if s.Qualifies() {
			kept = append(kept, s)
		}
	}
	return kept
}

type datedSeasonStat struct {
	engine.SeasonStat
	startDate time.Time
}

// seasonTotalsFor groups a player's rows by season, drops undated seasons,
// and returns totals ordered most recent first. Ties on start date break on
// season id descending so the ordering is stable across runs.
func seasonTotalsFor(stats []models.PlayerStat) []engine.SeasonStat {
	bySeason := map[string]*datedSeasonStat{}
	for _, st := range stats {
		if st.Grade == nil || st.Grade.Season == nil || st.Grade.Season.StartDate == nil {
			continue
		}
		season := st.Grade.Season
		entry, ok := bySeason[season.ID]
		if !ok {
			entry = &datedSeasonStat{
				SeasonStat: engine.SeasonStat{SeasonID: season.ID, SeasonName: season.Name},
				startDate:  time.Time(*season.StartDate),
			}
			bySeason[season.ID] = entry
		}
		entry.GamesPlayed += st.GamesPlayed
		entry.TotalPoints += st.TotalPoints
	}

	ordered := make([]*datedSeasonStat, 0, len(bySeason))
	for _, entry := range bySeason {
		ordered = append(ordered, entry)
	}
	sort.Slice(ordered, func(i, j int) bool {
		if !ordered[i].startDate.Equal(ordered[j].startDate) {
			return ordered[i].startDate.After(ordered[j].startDate)
		}
		return ordered[i].SeasonID > ordered[j].SeasonID
	})

	out := make([]engine.SeasonStat, len(ordered))
	for i, entry := range ordered {
		out[i] = entry.SeasonStat
	}
	return out
}

// AvailabilityBoardRow is one row on the league availability boards.
type AvailabilityBoardRow struct {
	PlayerID   string `json:"player_id"`
	PlayerName string `json:"player_name"`
	engine.AvailabilityRecord
}

// AvailabilityBoards are the three league-wide cuts of the same rows.
type AvailabilityBoards struct {
	MostAvailable []AvailabilityBoardRow `json:"most_available"`
	IronMan       []AvailabilityBoardRow `json:"iron_man"`
	MostMissed    []AvailabilityBoardRow `json:"most_missed"`
}

// GetAvailabilityBoards computes every player's availability record (5+
// total games) and sorts the three boards.
func (s *StatsService) GetAvailabilityBoards(ctx context.Context) (*AvailabilityBoards, error) {
	maxByEntry, err := s.teamMaxGames(ctx, nil)
	if err != nil {
		return nil, err
	}

	players, err := s.loadAllPlayersWithStats(ctx)
	if err != nil {
		return nil, err
	}

	rows := make([]AvailabilityBoardRow, 0, len(players))
	for _, p := range players {
		entries := make([]engine.AvailabilityEntry, 0, len(p.Stats))
		for _, st := range p.Stats {
			possible := maxByEntry[entryKey(st.GradeID, st.TeamName)]
			if possible < st.GamesPlayed {
				possible = st.GamesPlayed
			}
			entries = append(entries, engine.AvailabilityEntry{
				GamesPlayed:   st.GamesPlayed,
				PossibleGames: possible,
				Participation: syntheticParticipation(st.GamesPlayed),
			})
		}

		record := engine.ComputeAvailability(entries)
		if record.TotalGames < 5 {
			continue
		}
		rows = append(rows, AvailabilityBoardRow{
			PlayerID:           p.ID,
			PlayerName:         engine.PlayerIdentity{ID: p.ID, FirstName: p.FirstName, LastName: p.LastName}.Name(),
			AvailabilityRecord: record,
		})
	}

	boards := &AvailabilityBoards{}
	boards.MostAvailable = topAvailability(rows, func(a, b AvailabilityBoardRow) bool {
		if a.AvailabilityPct != b.AvailabilityPct {
			return a.AvailabilityPct > b.AvailabilityPct
		}
		return a.TotalGames > b.TotalGames
	})
	boards.IronMan = topAvailability(rows, func(a, b AvailabilityBoardRow) bool {
		if a.LongestStreak != b.LongestStreak {
			return a.LongestStreak > b.LongestStreak
		}
		return a.TotalGames > b.TotalGames
	})
	boards.MostMissed = topAvailability(rows, func(a, b AvailabilityBoardRow) bool {
		return a.GamesMissed > b.GamesMissed
	})
	return boards, nil
}

func topAvailability(rows []AvailabilityBoardRow, less func(a, b AvailabilityBoardRow) bool) []AvailabilityBoardRow {
	sorted := make([]AvailabilityBoardRow, len(rows))
	copy(sorted, rows)
	sort.SliceStable(sorted, func(i, j int) bool { return less(sorted[i], sorted[j]) })
	if len(sorted) > boardLimit {
		sorted = sorted[:boardLimit]
	}
	return sorted
}

// GetPowerRankings rates every team aggregate with its roster's scoring.
func (s *StatsService) GetPowerRankings(ctx context.Context) ([]engine.PowerRanking, error) {
	var aggregates []models.TeamAggregate
	if err := s.db.WithContext(ctx).Find(&aggregates).Error; err != nil {
		return nil, fmt.Errorf("failed to load team aggregates: %w", err)
	}

	rosters, err := s.rosterPPGs(ctx)
	if err != nil {
		return nil, err
	}

	teams := make([]engine.TeamSeason, 0, len(aggregates))
	for _, agg := range aggregates {
		teams = append(teams, engine.TeamSeason{
			TeamID:        agg.TeamID,
			TeamName:      agg.Name,
			SeasonName:    agg.SeasonName,
			Wins:          agg.Wins,
			Losses:        agg.Losses,
			Draws:         agg.Draws,
			PointsFor:     agg.PointsFor,
			PointsAgainst: agg.PointsAgainst,
			RosterPPGs:    rosters[agg.TeamID],
		})
	}

	return engine.RankTeamPower(teams), nil
}

// GetMatchupPrediction predicts a hypothetical game between two teams.
func (s *StatsService) GetMatchupPrediction(ctx context.Context, teamOneID, teamTwoID string) (*engine.MatchupPrediction, error) {
	one, err := s.predictionInput(ctx, teamOneID)
	if err != nil {
		return nil, err
	}
	two, err := s.predictionInput(ctx, teamTwoID)
	if err != nil {
		return nil, err
	}

	h2h, err := s.headToHead(ctx, teamOneID, teamTwoID)
	if err != nil {
		return nil, err
	}

	prediction := engine.PredictMatchup(*one, *two, h2h)
	return &prediction, nil
}

func (s *StatsService) predictionInput(ctx context.Context, teamID string) (*engine.PredictionInput, error) {
	var agg models.TeamAggregate
	if err := s.db.WithContext(ctx).First(&agg, "team_id = ?", teamID).Error; err != nil {
		return nil, err
	}

	rosters, err := s.rosterPPGs(ctx)
	if err != nil {
		return nil, err
	}

	return &engine.PredictionInput{
		TeamID:     agg.TeamID,
		TeamName:   agg.Name,
		Wins:       agg.Wins,
		Losses:     agg.Losses,
		Draws:      agg.Draws,
		RosterPPGs: rosters[agg.TeamID],
	}, nil
}

// headToHead counts completed prior meetings from team one's perspective.
func (s *StatsService) headToHead(ctx context.Context, teamOneID, teamTwoID string) (engine.HeadToHead, error) {
	var games []models.Game
	err := s.db.WithContext(ctx).
		Where("status = ?", "FINAL").
		Where("(home_team_id = ? AND away_team_id = ?) OR (home_team_id = ? AND away_team_id = ?)",
			teamOneID, teamTwoID, teamTwoID, teamOneID).
		Find(&games).Error
	if err != nil {
		return engine.HeadToHead{}, fmt.Errorf("failed to load head to head games: %w", err)
	}

	var h2h engine.HeadToHead
	for _, g := range games {
		if !g.IsCompleted() {
			continue
		}
		oneScore, twoScore := *g.HomeScore, *g.AwayScore
		if g.HomeTeamID == teamTwoID {
			oneScore, twoScore = twoScore, oneScore
		}
		switch {
		case oneScore > twoScore:
			h2h.TeamOneWins++
		case oneScore < twoScore:
			h2h.TeamTwoWins++
		default:
			h2h.Draws++
		}
	}
	return h2h, nil
}

// rosterPPGs maps team id to each rostered player's career PPG, matching
// player stat entries to teams by grade and team name.
func (s *StatsService) rosterPPGs(ctx context.Context) (map[string][]float64, error) {
	teamIDsByEntry, _, err := s.teamIndex(ctx)
	if err != nil {
		return nil, err
	}

	var stats []models.PlayerStat
	if err := s.db.WithContext(ctx).Find(&stats).Error; err != nil {
		return nil, fmt.Errorf("failed to load player stats: %w", err)
	}

	out := make(map[string][]float64)
	for _, st := range stats {
		if st.GamesPlayed <= 0 {
			continue
		}
		ppg := float64(st.TotalPoints) / float64(st.GamesPlayed)
		for _, teamID := range teamIDsByEntry[entryKey(st.GradeID, st.TeamName)] {
			out[teamID] = append(out[teamID], ppg)
		}
	}
	return out, nil
}

// teamIndex maps grade plus lowercased team name to team ids, and team id
// to display name. Entry team names are free text from the scraper, so the
// same name can legitimately map to teams in different grades.
func (s *StatsService) teamIndex(ctx context.Context) (map[string][]string, map[string]string, error) {
	var teams []models.Team
	if err := s.db.WithContext(ctx).Find(&teams).Error; err != nil {
		return nil, nil, fmt.Errorf("failed to load teams: %w", err)
	}

	byEntry := make(map[string][]string, len(teams))
	names := make(map[string]string, len(teams))
	for _, t := range teams {
		key := entryKey(t.GradeID, t.Name)
		byEntry[key] = append(byEntry[key], t.ID)
		names[t.ID] = t.Name
	}
	return byEntry, names, nil
}

func (s *StatsService) loadGameResults(ctx context.Context) ([]engine.GameResult, error) {
	var games []models.Game
	if err := s.db.WithContext(ctx).Where("status = ?", "FINAL").Find(&games).Error; err != nil {
		return nil, fmt.Errorf("failed to load games: %w", err)
	}

	results := make([]engine.GameResult, 0, len(games))
	for _, g := range games {
		result := engine.GameResult{
			GradeID:    g.GradeID,
			HomeTeamID: g.HomeTeamID,
			AwayTeamID: g.AwayTeamID,
			Completed:  g.IsCompleted(),
		}
		if result.Completed {
			result.HomeScore = *g.HomeScore
			result.AwayScore = *g.AwayScore
		}
		results = append(results, result)
	}
	return results, nil
}

// aggregatedPlayer pairs a player with their scoped totals plus the names
// of the most recent entry for display.
type aggregatedPlayer struct {
	player        models.Player
	totals        engine.AggregateTotals
	lastTeamName  string
	lastGradeName string
}

func (a aggregatedPlayer) identity() engine.PlayerIdentity {
	return engine.PlayerIdentity{ID: a.player.ID, FirstName: a.player.FirstName, LastName: a.player.LastName}
}

// aggregatePlayers folds each player's rows, optionally restricted to one
// season, and drops players with no rows in scope.
func (s *StatsService) aggregatePlayers(ctx context.Context, seasonID string) ([]aggregatedPlayer, error) {
	players, err := s.loadAllPlayersWithStats(ctx)
	if err != nil {
		return nil, err
	}

	var filter func(*models.Season) bool
	if seasonID != "" {
		filter = func(season *models.Season) bool {
			return season != nil && season.ID == seasonID
		}
	}

	out := make([]aggregatedPlayer, 0, len(players))
	for _, p := range players {
		lines := statLinesFromStats(p.Stats, filter)
		if len(lines) == 0 {
			continue
		}
		totals := engine.Aggregate(lines)
		if totals.GamesPlayed == 0 {
			continue
		}
		entry := aggregatedPlayer{player: p, totals: totals}
		last := lines[len(lines)-1]
		entry.lastTeamName = last.TeamName
		entry.lastGradeName = last.GradeName
		out = append(out, entry)
	}
	return out, nil
}
