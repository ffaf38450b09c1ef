// Package trades evaluates a proposed two-team trade by re-optimizing both
// rosters before and after the swap, then layering on the waiver pickups
// each side could make to patch the holes the trade opens.
package trades

import (
	"math"

	"github.com/nweber28/espn-fantasy-baseball-tools/internal/optimizer"
	"github.com/nweber28/espn-fantasy-baseball-tools/internal/waivers"
	"github.com/nweber28/espn-fantasy-baseball-tools/pkg/logger"
	"github.com/nweber28/espn-fantasy-baseball-tools/pkg/types"
	"github.com/sirupsen/logrus"
)

// balanceThreshold is the maximum gap between the two sides' lineup-value
// deltas for a trade to still read as balanced.
const balanceThreshold = 3.0

// Side is one team's half of a proposed trade.
type Side struct {
	Team   string
	Roster []types.PlayerRecord
	Sends  []string
}

// Evaluate scores the trade for both sides. Each side gets a trade-only
// delta and a with-waivers delta; the verdicts compare the two sides'
// deltas against the balance threshold.
func Evaluate(side1, side2 Side, freeAgents []types.PlayerRecord, slots types.RosterSlots) types.TradeAnalysis {
	post1 := applyTrade(side1, side2)
	post2 := applyTrade(side2, side1)

	outcome1 := evaluateSide(side1, post1, freeAgents, slots)
	outcome2 := evaluateSide(side2, post2, freeAgents, slots)

	analysis := types.TradeAnalysis{
		Team1:            outcome1,
		Team2:            outcome2,
		Verdict:          verdict(outcome1, outcome2, outcome1.TotalDiff, outcome2.TotalDiff),
		TradeOnlyVerdict: verdict(outcome1, outcome2, outcome1.StrengthDiff, outcome2.StrengthDiff),
	}

	logger.GetLogger().WithFields(logrus.Fields{
		"team1":      side1.Team,
		"team2":      side2.Team,
		"team1_diff": outcome1.TotalDiff,
		"team2_diff": outcome2.TotalDiff,
		"balanced":   analysis.Verdict.Balanced,
	}).Debug("Trade evaluation complete")

	return analysis
}

// applyTrade builds the receiving side's post-trade roster: its sends
// removed, the other side's sends added.
func applyTrade(receiver, sender Side) []types.PlayerRecord {
	sent := make(map[string]bool, len(receiver.Sends))
	for _, name := range receiver.Sends {
		sent[name] = true
	}

	var roster []types.PlayerRecord
	for _, p := range receiver.Roster {
		if !sent[p.Name] {
			roster = append(roster, p)
		}
	}
	incoming := make(map[string]bool, len(sender.Sends))
	for _, name := range sender.Sends {
		incoming[name] = true
	}
	for _, p := range sender.Roster {
		if incoming[p.Name] {
			roster = append(roster, p)
		}
	}
	return roster
}

func evaluateSide(side Side, postRoster []types.PlayerRecord, freeAgents []types.PlayerRecord, slots types.RosterSlots) types.TeamTradeOutcome {
	current := optimizer.Optimize(side.Roster, slots)
	post := optimizer.Optimize(postRoster, slots)
	followUp := waivers.Analyze(postRoster, freeAgents, slots)

	outcome := types.TeamTradeOutcome{
		Team:                side.Team,
		CurrentStrength:     current.TotalValue,
		PostTradeStrength:   post.TotalValue,
		WithWaiversStrength: followUp.Projected.TotalValue,
		Pickups:             followUp.Recommendations,
	}
	outcome.StrengthDiff = outcome.PostTradeStrength - outcome.CurrentStrength
	outcome.WaiverDiff = outcome.WithWaiversStrength - outcome.PostTradeStrength
	outcome.TotalDiff = outcome.WithWaiversStrength - outcome.CurrentStrength
	return outcome
}

func verdict(outcome1, outcome2 types.TeamTradeOutcome, diff1, diff2 float64) types.TradeVerdict {
	if math.Abs(diff1-diff2) < balanceThreshold {
		return types.TradeVerdict{Balanced: true}
	}
	winner := outcome1.Team
	if diff2 > diff1 {
		winner = outcome2.Team
	}
	return types.TradeVerdict{Winner: winner}
}
