// Package waivers recommends free-agent pickups by comparing the optimal
// lineup built from the roster alone against the optimal lineup when the
// top free agents are allowed to compete for slots.
package waivers

import (
	"sort"

	"github.com/nweber28/espn-fantasy-baseball-tools/internal/optimizer"
	"github.com/nweber28/espn-fantasy-baseball-tools/pkg/logger"
	"github.com/nweber28/espn-fantasy-baseball-tools/pkg/types"
	"github.com/sirupsen/logrus"
)

const (
	// maxCandidates bounds how many free agents enter the combined solve.
	maxCandidates = 50
	// maxRecommendations caps the add/drop suggestions returned.
	maxRecommendations = 3
)

// Bench recommendation slot labels. Bench pickups do not displace a
// scoring slot so they carry a descriptive tag instead of a position.
const (
	benchHitterSlot  = "Bench"
	benchPitcherSlot = "P (Bench)"
)

// Analysis is the full result of a waiver scan: the lineup as-is, the
// suggested moves, and the lineup after making only those moves.
type Analysis struct {
	Current         types.RosterAssignment `json:"current"`
	Recommendations []types.Recommendation `json:"recommendations"`
	Projected       types.RosterAssignment `json:"projected"`
}

// Analyze runs the waiver scan for one roster against the free-agent pool.
func Analyze(roster, freeAgents []types.PlayerRecord, slots types.RosterSlots) Analysis {
	current := optimizer.Optimize(roster, slots)

	candidates := topCandidates(freeAgents, maxCandidates)
	combined := optimizer.Optimize(append(append([]types.PlayerRecord{}, roster...), candidates...), slots)

	recs := FindReplacements(roster, candidates, current, combined)
	if len(recs) > maxRecommendations {
		recs = recs[:maxRecommendations]
	}

	// Re-solve with only the recommended adds so the projected lineup
	// reflects moves the user can actually make.
	projectedPool := append([]types.PlayerRecord{}, roster...)
	recommended := make(map[string]bool, len(recs))
	for _, r := range recs {
		recommended[r.Add] = true
	}
	for _, fa := range candidates {
		if recommended[fa.Name] {
			projectedPool = append(projectedPool, fa)
		}
	}
	projected := optimizer.Optimize(projectedPool, slots)

	logger.GetLogger().WithFields(logrus.Fields{
		"roster_size":     len(roster),
		"free_agents":     len(freeAgents),
		"recommendations": len(recs),
		"current_value":   current.TotalValue,
		"projected_value": projected.TotalValue,
	}).Debug("Waiver analysis complete")

	return Analysis{Current: current, Recommendations: recs, Projected: projected}
}

// FindReplacements diffs the roster-only lineup against the combined
// lineup and names a drop for every free agent that forced its way in.
// Free agents that cracked a scoring slot are paired with the strongest
// droppable roster player eligible for that slot; free agents that only
// made the bench are paired with the weakest droppable roster player of
// the same class (hitter or pitcher). Only strictly positive improvements
// are kept, sorted by improvement descending.
func FindReplacements(roster, freeAgents []types.PlayerRecord, current, combined types.RosterAssignment) []types.Recommendation {
	faByName := make(map[string]types.PlayerRecord, len(freeAgents))
	for _, fa := range freeAgents {
		faByName[fa.Name] = fa
	}
	currentStarters := current.StarterNames()
	combinedStarters := combined.StarterNames()

	var recs []types.Recommendation

	for tag, assigned := range combined.Slots {
		if tag == types.SlotBench || tag == types.SlotInjured {
			continue
		}
		for _, p := range assigned {
			fa, isFA := faByName[p.Name]
			if !isFA || currentStarters[p.Name] {
				continue
			}
			drop, ok := bestDroppable(roster, combinedStarters, func(r types.PlayerRecord) bool {
				return r.EligibleFor(tag)
			}, true)
			if !ok {
				continue
			}
			if improvement := fa.ProjectedPoints - drop.ProjectedPoints; improvement > 0 {
				recs = append(recs, types.Recommendation{
					Add:          fa.Name,
					Slot:         tag,
					Drop:         drop.Name,
					Improvement:  improvement,
					PercentOwned: fa.PercentOwned,
					InjuryStatus: fa.InjuryStatus,
				})
			}
		}
	}

	// Bench pickups compare against the weakest roster player of the same
	// class; a hitter never bumps a pitcher off the roster.
	for _, p := range combined.Slots[types.SlotBench] {
		fa, isFA := faByName[p.Name]
		if !isFA {
			continue
		}
		slot := benchHitterSlot
		sameClass := func(r types.PlayerRecord) bool { return r.IsHitter }
		if fa.IsPitcher {
			slot = benchPitcherSlot
			sameClass = func(r types.PlayerRecord) bool { return r.IsPitcher }
		}
		drop, ok := bestDroppable(roster, combinedStarters, sameClass, false)
		if !ok {
			continue
		}
		if improvement := fa.ProjectedPoints - drop.ProjectedPoints; improvement > 0 {
			recs = append(recs, types.Recommendation{
				Add:          fa.Name,
				Slot:         slot,
				Drop:         drop.Name,
				Improvement:  improvement,
				PercentOwned: fa.PercentOwned,
				InjuryStatus: fa.InjuryStatus,
			})
		}
	}

	return dedupeAndSort(recs)
}

// bestDroppable scans the roster for players who are not starters in the
// combined lineup and not on the disabled list, returning the strongest
// match when strongest is true and the weakest otherwise.
func bestDroppable(roster []types.PlayerRecord, starters map[string]bool, match func(types.PlayerRecord) bool, strongest bool) (types.PlayerRecord, bool) {
	var best types.PlayerRecord
	found := false
	for _, r := range roster {
		if starters[r.Name] || r.InjuryStatus.OnDisabledList() || !match(r) {
			continue
		}
		if !found {
			best, found = r, true
			continue
		}
		if strongest == (r.ProjectedPoints > best.ProjectedPoints) && r.ProjectedPoints != best.ProjectedPoints {
			best = r
		}
	}
	return best, found
}

func topCandidates(freeAgents []types.PlayerRecord, limit int) []types.PlayerRecord {
	sorted := append([]types.PlayerRecord{}, freeAgents...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].ProjectedPoints > sorted[j].ProjectedPoints
	})
	if len(sorted) > limit {
		sorted = sorted[:limit]
	}
	return sorted
}

// dedupeAndSort keeps the best suggestion per added player and orders the
// result by improvement descending.
func dedupeAndSort(recs []types.Recommendation) []types.Recommendation {
	sort.SliceStable(recs, func(i, j int) bool {
		return recs[i].Improvement > recs[j].Improvement
	})
	seen := make(map[string]bool, len(recs))
	result := recs[:0]
	for _, r := range recs {
		if seen[r.Add] {
			continue
		}
		seen[r.Add] = true
		result = append(result, r)
	}
	return result
}
