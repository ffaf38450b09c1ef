package analysis

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nweber28/espn-fantasy-baseball-tools/internal/config"
	"github.com/nweber28/espn-fantasy-baseball-tools/internal/providers"
	"github.com/nweber28/espn-fantasy-baseball-tools/internal/records"
	"github.com/nweber28/espn-fantasy-baseball-tools/internal/streaming"
	"github.com/nweber28/espn-fantasy-baseball-tools/pkg/types"
)

type fakeLeague struct {
	teams      []providers.LeagueTeam
	rostered   map[int][]records.RosterEntryInput
	freeAgents []records.RosterEntryInput
	err        error
}

func (f *fakeLeague) FetchTeams(context.Context) ([]providers.LeagueTeam, error) {
	return f.teams, f.err
}

func (f *fakeLeague) FetchRosters(context.Context) (map[int][]records.RosterEntryInput, error) {
	return f.rostered, f.err
}

func (f *fakeLeague) FetchPlayerPool(context.Context) (map[int][]records.RosterEntryInput, []records.RosterEntryInput, error) {
	return f.rostered, f.freeAgents, f.err
}

type fakeProjections struct {
	batters  []types.PlayerRecord
	pitchers []types.PlayerRecord
	err      error
}

func (f *fakeProjections) FetchProjections(_ context.Context, class providers.PlayerClass, _ bool) ([]types.PlayerRecord, error) {
	if f.err != nil {
		return nil, f.err
	}
	if class == providers.ClassPitcher {
		return f.pitchers, nil
	}
	return f.batters, nil
}

type fakeSchedule struct {
	starts  []streaming.ProbableStart
	lineups map[string][]string
}

func (f *fakeSchedule) FetchProbableStarts(context.Context, string) ([]streaming.ProbableStart, error) {
	return f.starts, nil
}

func (f *fakeSchedule) FetchAllLineups(context.Context) map[string][]string {
	return f.lineups
}

func testConfig() *config.Config {
	return &config.Config{
		LeagueID:    "12345",
		RosterSlots: types.RosterSlots{"1B": 1, "OF": 1, "BN": 1},
	}
}

func projection(name, team string, points, pa float64, positions ...string) types.PlayerRecord {
	return records.FromProjection(records.ProjectionInput{
		Name:             name,
		Team:             team,
		Positions:        positions,
		Points:           points,
		PlateAppearances: pa,
	})
}

func newTestService() *Service {
	league := &fakeLeague{
		teams: []providers.LeagueTeam{{ID: 1, Name: "Dingers"}, {ID: 2, Name: "Whiffs"}},
		rostered: map[int][]records.RosterEntryInput{
			1: {
				{Name: "Star Bat", SlotIDs: []int{1, 16}},
				{Name: "Extra OF", SlotIDs: []int{5, 16}},
			},
			2: {
				{Name: "Other Bat", SlotIDs: []int{1, 16}},
			},
		},
		freeAgents: []records.RosterEntryInput{
			{Name: "Hot FA", SlotIDs: []int{5, 16}, PercentOwned: 12},
			{Name: "Unprojected FA", SlotIDs: []int{0, 16}},
		},
	}
	proj := &fakeProjections{
		batters: []types.PlayerRecord{
			projection("Star Bat", "NYY", 400, 600, "1B"),
			projection("Extra OF", "BOS", 250, 500, "OF"),
			projection("Other Bat", "TOR", 300, 550, "1B"),
			projection("Hot FA", "SEA", 320, 520, "OF"),
		},
	}
	return NewService(testConfig(), league, proj, &fakeSchedule{})
}

func TestRefreshBuildsSnapshot(t *testing.T) {
	svc := newTestService()
	require.NoError(t, svc.Refresh(context.Background()))

	teams, err := svc.Teams(context.Background())
	require.NoError(t, err)
	assert.Len(t, teams, 2)

	age, ok := svc.SnapshotAge()
	require.True(t, ok)
	assert.GreaterOrEqual(t, age.Seconds(), 0.0)
}

func TestRefreshDropsUnprojectedFreeAgents(t *testing.T) {
	svc := newTestService()
	require.NoError(t, svc.Refresh(context.Background()))

	result, err := svc.AnalyzeWaivers(context.Background(), 1)
	require.NoError(t, err)

	// "Hot FA" (320 OF) beats the rostered "Extra OF" (250); the FA with
	// no projection never surfaces.
	require.Len(t, result.Recommendations, 1)
	assert.Equal(t, "Hot FA", result.Recommendations[0].Add)
	for _, rec := range result.Recommendations {
		assert.NotEqual(t, "Unprojected FA", rec.Add)
	}
}

func TestOptimizeTeamMergesProjections(t *testing.T) {
	svc := newTestService()

	result, err := svc.OptimizeTeam(context.Background(), 1)
	require.NoError(t, err)
	// 400 at 1B plus 250 in OF.
	assert.Equal(t, 650.0, result.TotalValue)
}

func TestOptimizeTeamUnknownTeam(t *testing.T) {
	svc := newTestService()
	_, err := svc.OptimizeTeam(context.Background(), 99)
	assert.Error(t, err)
}

func TestRefreshFailsWithoutLeagueData(t *testing.T) {
	svc := NewService(testConfig(), &fakeLeague{err: errors.New("boom")}, &fakeProjections{}, &fakeSchedule{})
	assert.Error(t, svc.Refresh(context.Background()))
}

func TestRefreshToleratesProjectionFailure(t *testing.T) {
	league := &fakeLeague{
		teams:    []providers.LeagueTeam{{ID: 1, Name: "Dingers"}},
		rostered: map[int][]records.RosterEntryInput{1: {{Name: "Star Bat", SlotIDs: []int{1, 16}}}},
	}
	svc := NewService(testConfig(), league, &fakeProjections{err: errors.New("fangraphs down")}, &fakeSchedule{})

	require.NoError(t, svc.Refresh(context.Background()))
	result, err := svc.OptimizeTeam(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, 0.0, result.TotalValue)
}

func TestEvaluateTradeUsesTeamNames(t *testing.T) {
	svc := newTestService()

	result, err := svc.EvaluateTrade(context.Background(), 1, 2, []string{"Extra OF"}, []string{"Other Bat"})
	require.NoError(t, err)
	assert.Equal(t, "Dingers", result.Team1.Team)
	assert.Equal(t, "Whiffs", result.Team2.Team)
}

func TestStreamingMatchupsEndToEnd(t *testing.T) {
	proj := &fakeProjections{
		batters: []types.PlayerRecord{
			projection("Masher One", "LAD", 500, 500, "OF"),
		},
		pitchers: []types.PlayerRecord{
			{Name: "Soft Tosser", JoinKey: "soft-tosser", PointsPerIP: 2.0, IsPitcher: true},
		},
	}
	schedule := &fakeSchedule{
		starts: []streaming.ProbableStart{
			{GameDate: "2026-08-24", Team: "SDP", Opponent: "LAD", PitcherName: "Soft Tosser"},
		},
		lineups: map[string][]string{"LAD": {"Masher One"}},
	}
	svc := NewService(testConfig(), &fakeLeague{teams: []providers.LeagueTeam{{ID: 1}}, rostered: map[int][]records.RosterEntryInput{}}, proj, schedule)

	matchups, err := svc.StreamingMatchups(context.Background(), []string{"2026-08-24"})
	require.NoError(t, err)
	require.Len(t, matchups, 1)

	// Pitcher projects 2.0*5.5=11 against 1.0 pts/PA * 5.5 * 4.2 = 23.1.
	assert.InDelta(t, 11.0, matchups[0].PitcherProjection, 1e-9)
	assert.InDelta(t, 23.1, matchups[0].OpponentExpected, 1e-9)
	assert.InDelta(t, -12.1, matchups[0].StrengthDiff, 1e-9)
}
