// Package streaming ranks upcoming probable starters against the opposing
// lineup's expected scoring, surfacing pitchers worth a short-term add.
package streaming

import (
	"sort"

	"gonum.org/v1/gonum/stat"

	"github.com/nweber28/espn-fantasy-baseball-tools/internal/names"
	"github.com/nweber28/espn-fantasy-baseball-tools/pkg/logger"
	"github.com/nweber28/espn-fantasy-baseball-tools/pkg/types"
	"github.com/sirupsen/logrus"
)

const (
	// avgStarterInnings is the assumed length of a streaming start.
	avgStarterInnings = 5.5
	// avgPlateAppearancesPerInning converts innings to batters faced.
	avgPlateAppearancesPerInning = 4.2
	// defaultPitcherPoints stands in when a probable starter has no
	// per-inning projection, including unannounced (TBD) starters.
	defaultPitcherPoints = 6.0
)

// ProbableStart is one scheduled game from the pitcher's point of view.
type ProbableStart struct {
	GameDate    string
	Team        string
	Opponent    string
	PitcherName string
}

// TeamStrengths derives each team's expected output over a streaming start
// from the players recently appearing in its lineup. Batters without a
// per-PA projection are skipped; a team with no projectable batters gets a
// zero-strength entry rather than being dropped.
func TeamStrengths(lineups map[string][]string, projections map[string]types.PlayerRecord) map[string]types.TeamBattingStrength {
	strengths := make(map[string]types.TeamBattingStrength, len(lineups))
	for team, batters := range lineups {
		var rates []float64
		for _, batter := range batters {
			rec, ok := projections[names.Stem(batter)]
			if !ok || rec.PointsPerPA <= 0 {
				continue
			}
			rates = append(rates, rec.PointsPerPA)
		}
		entry := types.TeamBattingStrength{Team: team, BattersCounted: len(rates)}
		if len(rates) > 0 {
			entry.AvgPointsPerPA = stat.Mean(rates, nil)
			entry.ExpectedPoints = entry.AvgPointsPerPA * avgStarterInnings * avgPlateAppearancesPerInning
		}
		strengths[team] = entry
	}
	return strengths
}

// Rank scores each probable start and orders the results by strength
// difference descending, best streaming targets first. Starters currently
// on the disabled list are excluded.
func Rank(starts []ProbableStart, projections map[string]types.PlayerRecord, strengths map[string]types.TeamBattingStrength) []types.StreamingMatchup {
	var matchups []types.StreamingMatchup
	for _, start := range starts {
		projection := defaultPitcherPoints
		percentOwned := 0.0

		rec, found := projections[names.Stem(start.PitcherName)]
		if found {
			if rec.InjuryStatus.OnDisabledList() {
				continue
			}
			if rec.PointsPerIP > 0 {
				projection = rec.PointsPerIP * avgStarterInnings
			}
			percentOwned = rec.PercentOwned
		}

		matchups = append(matchups, types.StreamingMatchup{
			Pitcher:           start.PitcherName,
			PitcherTeam:       start.Team,
			Opponent:          start.Opponent,
			GameDate:          start.GameDate,
			PitcherProjection: projection,
			OpponentExpected:  strengths[start.Opponent].ExpectedPoints,
			StrengthDiff:      projection - strengths[start.Opponent].ExpectedPoints,
			PercentOwned:      percentOwned,
		})
	}

	sort.SliceStable(matchups, func(i, j int) bool {
		return matchups[i].StrengthDiff > matchups[j].StrengthDiff
	})

	logger.GetLogger().WithFields(logrus.Fields{
		"starts":   len(starts),
		"matchups": len(matchups),
	}).Debug("Streaming matchups ranked")

	return matchups
}
