// Package analysis coordinates the upstream fetches and feeds the
// optimizer, waiver, trade and streaming engines from one consistent
// league snapshot.
package analysis

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/nweber28/espn-fantasy-baseball-tools/internal/config"
	"github.com/nweber28/espn-fantasy-baseball-tools/internal/optimizer"
	"github.com/nweber28/espn-fantasy-baseball-tools/internal/providers"
	"github.com/nweber28/espn-fantasy-baseball-tools/internal/records"
	"github.com/nweber28/espn-fantasy-baseball-tools/internal/streaming"
	"github.com/nweber28/espn-fantasy-baseball-tools/internal/trades"
	"github.com/nweber28/espn-fantasy-baseball-tools/internal/waivers"
	"github.com/nweber28/espn-fantasy-baseball-tools/pkg/logger"
	"github.com/nweber28/espn-fantasy-baseball-tools/pkg/types"
)

// snapshotMaxAge controls how stale a league snapshot may get before an
// operation forces a refresh.
const snapshotMaxAge = time.Hour

// Snapshot is one consistent view of the league: team rosters and the
// free-agent pool, already merged with projections.
type Snapshot struct {
	FetchedAt   time.Time
	Teams       []providers.LeagueTeam
	Rosters     map[int][]types.PlayerRecord
	FreeAgents  []types.PlayerRecord
	Projections map[string]types.PlayerRecord
}

// leagueClient is the league-platform surface the service needs. Rosters
// come from the roster view; the player pool supplies free agents.
type leagueClient interface {
	FetchTeams(ctx context.Context) ([]providers.LeagueTeam, error)
	FetchRosters(ctx context.Context) (map[int][]records.RosterEntryInput, error)
	FetchPlayerPool(ctx context.Context) (map[int][]records.RosterEntryInput, []records.RosterEntryInput, error)
}

// projectionsClient fetches point projections by player class.
type projectionsClient interface {
	FetchProjections(ctx context.Context, class providers.PlayerClass, streamerPoints bool) ([]types.PlayerRecord, error)
}

// scheduleClient supplies probable starters and recent lineups.
type scheduleClient interface {
	FetchProbableStarts(ctx context.Context, date string) ([]streaming.ProbableStart, error)
	FetchAllLineups(ctx context.Context) map[string][]string
}

// Service runs league analyses. Safe for concurrent use; the snapshot is
// guarded by a read-write lock and refreshed at most once at a time.
type Service struct {
	cfg       *config.Config
	espn      leagueClient
	fangraphs projectionsClient
	mlb       scheduleClient
	log       *logrus.Entry

	mu       sync.RWMutex
	snapshot *Snapshot
}

func NewService(cfg *config.Config, espn leagueClient, fangraphs projectionsClient, mlb scheduleClient) *Service {
	return &Service{
		cfg:       cfg,
		espn:      espn,
		fangraphs: fangraphs,
		mlb:       mlb,
		log:       logger.WithService("analysis"),
	}
}

// Refresh fetches all league data concurrently and swaps in a new
// snapshot. Projection failures degrade to empty sets; a league fetch
// failure aborts the refresh since nothing useful can be computed.
func (s *Service) Refresh(ctx context.Context) error {
	var (
		wg          sync.WaitGroup
		batters     []types.PlayerRecord
		pitchers    []types.PlayerRecord
		teams       []providers.LeagueTeam
		rosterPool  map[int][]records.RosterEntryInput
		freeAgents  []records.RosterEntryInput
		teamsErr    error
		rostersErr  error
		playersErr  error
		battersErr  error
		pitchersErr error
	)

	wg.Add(5)
	go func() {
		defer wg.Done()
		batters, battersErr = s.fangraphs.FetchProjections(ctx, providers.ClassBatter, false)
	}()
	go func() {
		defer wg.Done()
		pitchers, pitchersErr = s.fangraphs.FetchProjections(ctx, providers.ClassPitcher, false)
	}()
	go func() {
		defer wg.Done()
		teams, teamsErr = s.espn.FetchTeams(ctx)
	}()
	go func() {
		defer wg.Done()
		rosterPool, rostersErr = s.espn.FetchRosters(ctx)
	}()
	go func() {
		defer wg.Done()
		_, freeAgents, playersErr = s.espn.FetchPlayerPool(ctx)
	}()
	wg.Wait()

	if teamsErr != nil {
		return fmt.Errorf("league teams fetch failed: %w", teamsErr)
	}
	if rostersErr != nil {
		return fmt.Errorf("roster fetch failed: %w", rostersErr)
	}
	if playersErr != nil {
		s.log.WithError(playersErr).Warn("Player pool unavailable, waiver pool will be empty")
	}
	if battersErr != nil {
		s.log.WithError(battersErr).Warn("Batter projections unavailable, using empty set")
	}
	if pitchersErr != nil {
		s.log.WithError(pitchersErr).Warn("Pitcher projections unavailable, using empty set")
	}

	projections := records.Index(append(batters, pitchers...))

	snapshot := &Snapshot{
		FetchedAt:   time.Now(),
		Teams:       teams,
		Rosters:     make(map[int][]types.PlayerRecord, len(rosterPool)),
		Projections: projections,
	}
	for teamID, entries := range rosterPool {
		for _, entry := range entries {
			snapshot.Rosters[teamID] = append(snapshot.Rosters[teamID], records.FromRosterEntry(entry, projections))
		}
	}
	for _, entry := range freeAgents {
		rec := records.FromRosterEntry(entry, projections)
		if rec.ProjectedPoints <= 0 {
			continue
		}
		snapshot.FreeAgents = append(snapshot.FreeAgents, rec)
	}
	sort.SliceStable(snapshot.FreeAgents, func(i, j int) bool {
		return snapshot.FreeAgents[i].ProjectedPoints > snapshot.FreeAgents[j].ProjectedPoints
	})

	s.mu.Lock()
	s.snapshot = snapshot
	s.mu.Unlock()

	s.log.WithFields(logrus.Fields{
		"teams":       len(teams),
		"free_agents": len(snapshot.FreeAgents),
		"projections": len(projections),
	}).Info("League snapshot refreshed")
	return nil
}

func (s *Service) currentSnapshot(ctx context.Context) (*Snapshot, error) {
	s.mu.RLock()
	snap := s.snapshot
	s.mu.RUnlock()

	if snap != nil && time.Since(snap.FetchedAt) < snapshotMaxAge {
		return snap, nil
	}
	if err := s.Refresh(ctx); err != nil {
		if snap != nil {
			s.log.WithError(err).Warn("Refresh failed, serving stale snapshot")
			return snap, nil
		}
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshot, nil
}

// Teams lists the fantasy teams in the league.
func (s *Service) Teams(ctx context.Context) ([]providers.LeagueTeam, error) {
	snap, err := s.currentSnapshot(ctx)
	if err != nil {
		return nil, err
	}
	return snap.Teams, nil
}

func (s *Service) teamRoster(snap *Snapshot, teamID int) ([]types.PlayerRecord, error) {
	roster, ok := snap.Rosters[teamID]
	if !ok {
		return nil, fmt.Errorf("team %d not found in league", teamID)
	}
	return roster, nil
}

func (s *Service) teamName(snap *Snapshot, teamID int) string {
	for _, t := range snap.Teams {
		if t.ID == teamID {
			return t.Name
		}
	}
	return fmt.Sprintf("Team %d", teamID)
}

// OptimizeTeam returns the optimal lineup for one team.
func (s *Service) OptimizeTeam(ctx context.Context, teamID int) (types.RosterAssignment, error) {
	analysisID := uuid.New().String()
	snap, err := s.currentSnapshot(ctx)
	if err != nil {
		return types.RosterAssignment{}, err
	}
	roster, err := s.teamRoster(snap, teamID)
	if err != nil {
		return types.RosterAssignment{}, err
	}

	result := optimizer.Optimize(roster, s.cfg.RosterSlots)
	logger.WithAnalysisContext(analysisID, s.cfg.LeagueID, "optimize").WithFields(logrus.Fields{
		"team_id":     teamID,
		"total_value": result.TotalValue,
	}).Info("Lineup optimized")
	return result, nil
}

// AnalyzeWaivers runs the waiver scan for one team.
func (s *Service) AnalyzeWaivers(ctx context.Context, teamID int) (waivers.Analysis, error) {
	analysisID := uuid.New().String()
	snap, err := s.currentSnapshot(ctx)
	if err != nil {
		return waivers.Analysis{}, err
	}
	roster, err := s.teamRoster(snap, teamID)
	if err != nil {
		return waivers.Analysis{}, err
	}

	result := waivers.Analyze(roster, snap.FreeAgents, s.cfg.RosterSlots)
	logger.WithAnalysisContext(analysisID, s.cfg.LeagueID, "waivers").WithFields(logrus.Fields{
		"team_id":         teamID,
		"recommendations": len(result.Recommendations),
	}).Info("Waiver analysis finished")
	return result, nil
}

// EvaluateTrade scores a proposed trade between two league teams.
func (s *Service) EvaluateTrade(ctx context.Context, team1ID, team2ID int, team1Sends, team2Sends []string) (types.TradeAnalysis, error) {
	analysisID := uuid.New().String()
	snap, err := s.currentSnapshot(ctx)
	if err != nil {
		return types.TradeAnalysis{}, err
	}
	roster1, err := s.teamRoster(snap, team1ID)
	if err != nil {
		return types.TradeAnalysis{}, err
	}
	roster2, err := s.teamRoster(snap, team2ID)
	if err != nil {
		return types.TradeAnalysis{}, err
	}

	result := trades.Evaluate(
		trades.Side{Team: s.teamName(snap, team1ID), Roster: roster1, Sends: team1Sends},
		trades.Side{Team: s.teamName(snap, team2ID), Roster: roster2, Sends: team2Sends},
		snap.FreeAgents,
		s.cfg.RosterSlots,
	)
	logger.WithAnalysisContext(analysisID, s.cfg.LeagueID, "trade").WithFields(logrus.Fields{
		"team1":    team1ID,
		"team2":    team2ID,
		"balanced": result.Verdict.Balanced,
	}).Info("Trade evaluated")
	return result, nil
}

// StreamingMatchups ranks probable starters for the given dates against
// opposing lineups. Dates with no schedule contribute nothing.
func (s *Service) StreamingMatchups(ctx context.Context, dates []string) ([]types.StreamingMatchup, error) {
	analysisID := uuid.New().String()

	var (
		wg          sync.WaitGroup
		batters     []types.PlayerRecord
		pitchers    []types.PlayerRecord
		battersErr  error
		pitchersErr error
		lineups     map[string][]string
	)
	wg.Add(3)
	go func() {
		defer wg.Done()
		batters, battersErr = s.fangraphs.FetchProjections(ctx, providers.ClassBatter, true)
	}()
	go func() {
		defer wg.Done()
		pitchers, pitchersErr = s.fangraphs.FetchProjections(ctx, providers.ClassPitcher, false)
	}()
	go func() {
		defer wg.Done()
		lineups = s.mlb.FetchAllLineups(ctx)
	}()
	wg.Wait()

	if battersErr != nil {
		return nil, fmt.Errorf("batter projections fetch failed: %w", battersErr)
	}
	if pitchersErr != nil {
		return nil, fmt.Errorf("pitcher projections fetch failed: %w", pitchersErr)
	}

	strengths := streaming.TeamStrengths(lineups, records.Index(batters))
	pitcherIndex := records.Index(pitchers)

	var starts []streaming.ProbableStart
	for _, date := range dates {
		dayStarts, err := s.mlb.FetchProbableStarts(ctx, date)
		if err != nil {
			s.log.WithError(err).WithField("date", date).Warn("Skipping schedule date")
			continue
		}
		starts = append(starts, dayStarts...)
	}

	matchups := streaming.Rank(starts, pitcherIndex, strengths)
	logger.WithAnalysisContext(analysisID, s.cfg.LeagueID, "streaming").WithFields(logrus.Fields{
		"dates":    len(dates),
		"matchups": len(matchups),
	}).Info("Streaming matchups ranked")
	return matchups, nil
}

// ProjectionPool returns the merged projection set sorted by projected
// points, used to seed a draft board.
func (s *Service) ProjectionPool(ctx context.Context) ([]types.PlayerRecord, error) {
	snap, err := s.currentSnapshot(ctx)
	if err != nil {
		return nil, err
	}
	pool := make([]types.PlayerRecord, 0, len(snap.Projections))
	for _, rec := range snap.Projections {
		pool = append(pool, rec)
	}
	sort.SliceStable(pool, func(i, j int) bool {
		return pool[i].ProjectedPoints > pool[j].ProjectedPoints
	})
	return pool, nil
}

// SnapshotAge reports how old the current snapshot is, for health checks.
// Returns false when no snapshot has been loaded yet.
func (s *Service) SnapshotAge() (time.Duration, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.snapshot == nil {
		return 0, false
	}
	return time.Since(s.snapshot.FetchedAt), true
}
