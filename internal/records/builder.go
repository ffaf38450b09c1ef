// Package records builds the uniform PlayerRecord representation from the
// two upstream shapes: projection rows from the points source and roster
// entries from the league platform. All joins between the two happen here,
// keyed on the stemmed player name.
package records

import (
	"strconv"
	"strings"

	"github.com/nweber28/espn-fantasy-baseball-tools/internal/names"
	"github.com/nweber28/espn-fantasy-baseball-tools/internal/positions"
	"github.com/nweber28/espn-fantasy-baseball-tools/pkg/types"
)

// Float parses a numeric field tolerantly. Upstream payloads mix numbers,
// numeric strings and empty placeholders; anything unparseable reads as 0.
func Float(raw string) float64 {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0
	}
	return v
}

// ProjectionInput is one row from the projections source.
type ProjectionInput struct {
	Name             string
	Team             string
	Positions        []string
	Points           float64
	PlateAppearances float64
	InningsPitched   float64
}

// FromProjection builds a PlayerRecord from a projection row. Per-unit
// rates are derived here so downstream consumers never divide by zero.
func FromProjection(in ProjectionInput) types.PlayerRecord {
	rec := types.PlayerRecord{
		Name:              in.Name,
		JoinKey:           names.Stem(in.Name),
		Team:              positions.NormalizeTeam(in.Team),
		EligiblePositions: in.Positions,
		ProjectedPoints:   in.Points,
		IsPitcher:         positions.IsPitcher(in.Positions),
		IsHitter:          positions.IsHitter(in.Positions),
		InjuryStatus:      types.InjuryActive,
	}
	if in.PlateAppearances > 0 {
		rec.PointsPerPA = in.Points / in.PlateAppearances
	}
	if in.InningsPitched > 0 {
		rec.PointsPerIP = in.Points / in.InningsPitched
	}
	return rec
}

// SplitPositions parses the projection source's slash-separated position
// field ("1B/3B/OF") into normalized display positions.
func SplitPositions(field string) []string {
	var result []string
	seen := make(map[string]bool)
	for _, raw := range strings.Split(field, "/") {
		pos := strings.TrimSpace(strings.ToUpper(raw))
		switch pos {
		case "LF", "CF", "RF":
			pos = "OF"
		case "P":
			// The projections source uses a bare P for some relievers.
			pos = "RP"
		}
		if pos == "" || seen[pos] {
			continue
		}
		seen[pos] = true
		result = append(result, pos)
	}
	return result
}

// RosterEntryInput is one player entry from the league platform, either a
// rostered player or a free agent.
type RosterEntryInput struct {
	Name         string
	SlotIDs      []int
	Team         string
	InjuryStatus string
	PercentOwned float64
}

// FromRosterEntry builds a PlayerRecord from a league platform entry,
// merging projected points and rates from the projections index when the
// stemmed name matches. Players with no matching projection carry zero
// points rather than being dropped, so the roster stays complete.
func FromRosterEntry(in RosterEntryInput, projections map[string]types.PlayerRecord) types.PlayerRecord {
	eligible := positions.Convert(in.SlotIDs)
	rec := types.PlayerRecord{
		Name:              in.Name,
		JoinKey:           names.Stem(in.Name),
		Team:              positions.NormalizeTeam(in.Team),
		EligiblePositions: eligible,
		IsPitcher:         positions.IsPitcher(eligible),
		IsHitter:          positions.IsHitter(eligible),
		InjuryStatus:      normalizeInjuryStatus(in.InjuryStatus),
		PercentOwned:      in.PercentOwned,
	}
	if proj, ok := projections[rec.JoinKey]; ok {
		rec.ProjectedPoints = proj.ProjectedPoints
		rec.PointsPerPA = proj.PointsPerPA
		rec.PointsPerIP = proj.PointsPerIP
		if rec.Team == "" {
			rec.Team = proj.Team
		}
	}
	return rec
}

// Index keys a projection set by join key for merging with roster entries.
// When the source repeats a name the higher-point row wins.
func Index(records []types.PlayerRecord) map[string]types.PlayerRecord {
	index := make(map[string]types.PlayerRecord, len(records))
	for _, rec := range records {
		if existing, ok := index[rec.JoinKey]; ok && existing.ProjectedPoints >= rec.ProjectedPoints {
			continue
		}
		index[rec.JoinKey] = rec
	}
	return index
}

func normalizeInjuryStatus(raw string) types.InjuryStatus {
	status := types.InjuryStatus(strings.ToUpper(strings.TrimSpace(raw)))
	switch status {
	case types.InjuryDayToDay, types.InjuryTenDayDL, types.InjuryFifteenDayDL,
		types.InjurySixtyDayDL, types.InjuryOut, types.InjurySuspension:
		return status
	}
	return types.InjuryActive
}
