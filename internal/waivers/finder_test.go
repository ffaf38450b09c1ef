package waivers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nweber28/espn-fantasy-baseball-tools/internal/optimizer"
	"github.com/nweber28/espn-fantasy-baseball-tools/internal/positions"
	"github.com/nweber28/espn-fantasy-baseball-tools/pkg/types"
)

func player(name string, points float64, eligible ...string) types.PlayerRecord {
	return types.PlayerRecord{
		Name:              name,
		ProjectedPoints:   points,
		EligiblePositions: eligible,
		IsPitcher:         positions.IsPitcher(eligible),
		IsHitter:          positions.IsHitter(eligible),
		InjuryStatus:      types.InjuryActive,
	}
}

func TestAnalyzeRecommendsStarterUpgrade(t *testing.T) {
	roster := []types.PlayerRecord{player("Incumbent", 60, "1B")}
	freeAgents := []types.PlayerRecord{player("Stud", 80, "1B")}
	slots := types.RosterSlots{"1B": 1, "BN": 1}

	result := Analyze(roster, freeAgents, slots)

	require.Len(t, result.Recommendations, 1)
	rec := result.Recommendations[0]
	assert.Equal(t, "Stud", rec.Add)
	assert.Equal(t, "1B", rec.Slot)
	assert.Equal(t, "Incumbent", rec.Drop)
	assert.Equal(t, 20.0, rec.Improvement)

	assert.Equal(t, 60.0, result.Current.TotalValue)
	assert.Equal(t, 80.0, result.Projected.TotalValue)
}

func TestAnalyzeNoRecommendationWhenFreeAgentsWeaker(t *testing.T) {
	roster := []types.PlayerRecord{player("Incumbent", 60, "1B")}
	freeAgents := []types.PlayerRecord{player("Scrub", 50, "1B")}
	slots := types.RosterSlots{"1B": 1}

	result := Analyze(roster, freeAgents, slots)

	assert.Empty(t, result.Recommendations)
	assert.Equal(t, result.Current.TotalValue, result.Projected.TotalValue)
}

func TestAnalyzeBenchUpgradeMatchesPlayerClass(t *testing.T) {
	roster := []types.PlayerRecord{
		player("StarHitter", 100, "1B"),
		player("StarArm", 90, "SP"),
		player("BenchHitter", 45, "OF"),
		player("BenchArm", 40, "RP"),
	}
	freeAgents := []types.PlayerRecord{player("NewBat", 65, "OF")}
	slots := types.RosterSlots{"1B": 1, "P": 1, "BN": 2}

	result := Analyze(roster, freeAgents, slots)

	// The weakest droppable player overall is a pitcher, but a hitter
	// pickup must drop a hitter.
	require.Len(t, result.Recommendations, 1)
	rec := result.Recommendations[0]
	assert.Equal(t, "NewBat", rec.Add)
	assert.Equal(t, "Bench", rec.Slot)
	assert.Equal(t, "BenchHitter", rec.Drop)
	assert.Equal(t, 20.0, rec.Improvement)
}

func TestAnalyzeBenchPitcherUpgradeSlotLabel(t *testing.T) {
	roster := []types.PlayerRecord{
		player("StarArm", 90, "SP"),
		player("BenchArm", 30, "RP"),
	}
	freeAgents := []types.PlayerRecord{player("NewArm", 55, "SP")}
	slots := types.RosterSlots{"P": 1, "BN": 1}

	result := Analyze(roster, freeAgents, slots)

	require.Len(t, result.Recommendations, 1)
	rec := result.Recommendations[0]
	assert.Equal(t, "P (Bench)", rec.Slot)
	assert.Equal(t, "BenchArm", rec.Drop)
	assert.Equal(t, 25.0, rec.Improvement)
}

func TestFindReplacementsNeverDropsDisabledListPlayer(t *testing.T) {
	hurt := player("HurtBat", 20, "1B")
	hurt.InjuryStatus = types.InjuryTenDayDL
	roster := []types.PlayerRecord{
		player("Incumbent", 60, "1B"),
		hurt,
	}
	freeAgents := []types.PlayerRecord{player("Stud", 80, "1B")}
	slots := types.RosterSlots{"1B": 1, "BN": 1}

	result := Analyze(roster, freeAgents, slots)

	for _, rec := range result.Recommendations {
		assert.NotEqual(t, "HurtBat", rec.Drop)
	}
}

func TestAnalyzeSortsByImprovementAndCaps(t *testing.T) {
	roster := []types.PlayerRecord{
		player("Weak1B", 40, "1B"),
		player("Weak2B", 50, "2B"),
		player("Weak3B", 55, "3B"),
		player("WeakSS", 58, "SS"),
	}
	freeAgents := []types.PlayerRecord{
		player("Big1B", 100, "1B"),
		player("Big2B", 90, "2B"),
		player("Big3B", 80, "3B"),
		player("BigSS", 70, "SS"),
	}
	slots := types.RosterSlots{"1B": 1, "2B": 1, "3B": 1, "SS": 1, "BN": 4}

	result := Analyze(roster, freeAgents, slots)

	// Four positive upgrades exist; only the top three survive the cap.
	require.Len(t, result.Recommendations, 3)
	assert.Equal(t, "Big1B", result.Recommendations[0].Add)
	assert.Equal(t, 60.0, result.Recommendations[0].Improvement)
	assert.True(t, result.Recommendations[0].Improvement >= result.Recommendations[1].Improvement)
	assert.True(t, result.Recommendations[1].Improvement >= result.Recommendations[2].Improvement)
}

func TestFindReplacementsDedupesAddedPlayer(t *testing.T) {
	roster := []types.PlayerRecord{
		player("WeakOF1", 30, "OF"),
		player("WeakOF2", 35, "OF"),
	}
	freeAgents := []types.PlayerRecord{player("Flex", 80, "OF", "1B")}
	slots := types.RosterSlots{"OF": 2, "1B": 1, "BN": 1}

	current := optimizer.Optimize(roster, slots)
	pool := append(append([]types.PlayerRecord{}, roster...), freeAgents...)
	combined := optimizer.Optimize(pool, slots)

	recs := FindReplacements(roster, freeAgents, current, combined)

	seen := make(map[string]int)
	for _, rec := range recs {
		seen[rec.Add]++
	}
	for add, count := range seen {
		assert.Equal(t, 1, count, "player %s recommended more than once", add)
	}
}

func TestAnalyzeEmptyFreeAgentPool(t *testing.T) {
	roster := []types.PlayerRecord{player("Incumbent", 60, "1B")}
	result := Analyze(roster, nil, types.RosterSlots{"1B": 1})

	assert.Empty(t, result.Recommendations)
	assert.Equal(t, 60.0, result.Current.TotalValue)
	assert.Equal(t, 60.0, result.Projected.TotalValue)
}
