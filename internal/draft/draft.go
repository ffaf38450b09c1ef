// Package draft tracks a live snake draft: pick order, per-team rosters,
// best-available players and a strength leaderboard built from optimized
// lineups.
package draft

import (
	"fmt"
	"sort"
	"strings"

	"gonum.org/v1/gonum/stat"

	"github.com/nweber28/espn-fantasy-baseball-tools/internal/names"
	"github.com/nweber28/espn-fantasy-baseball-tools/internal/optimizer"
	"github.com/nweber28/espn-fantasy-baseball-tools/pkg/types"
)

// Pick is one completed selection.
type Pick struct {
	Overall     int                `json:"overall"`
	Round       int                `json:"round"`
	PickInRound int                `json:"pick_in_round"`
	Team        string             `json:"team"`
	Player      types.PlayerRecord `json:"player"`
}

// Standing is one row of the draft leaderboard.
type Standing struct {
	Team     string  `json:"team"`
	Strength float64 `json:"strength"`
	// RelativeStrength is the percent distance from the league average.
	RelativeStrength float64 `json:"relative_strength"`
	Picks            int     `json:"picks"`
}

// Board is the mutable draft state. Boards are not safe for concurrent
// use; callers serialize access.
type Board struct {
	teams     []string
	slots     types.RosterSlots
	available map[string]types.PlayerRecord
	picks     []Pick
	rosters   map[string][]types.PlayerRecord
}

// NewBoard starts a draft with the given team order and player pool.
func NewBoard(teams []string, pool []types.PlayerRecord, slots types.RosterSlots) (*Board, error) {
	if len(teams) == 0 {
		return nil, fmt.Errorf("draft requires at least one team")
	}
	available := make(map[string]types.PlayerRecord, len(pool))
	for _, p := range pool {
		available[p.JoinKey] = p
	}
	return &Board{
		teams:     append([]string{}, teams...),
		slots:     slots,
		available: available,
		rosters:   make(map[string][]types.PlayerRecord),
	}, nil
}

// OnClock returns the team holding the next pick and its round position.
func (b *Board) OnClock() (team string, round, pickInRound int) {
	overall := len(b.picks)
	round = overall/len(b.teams) + 1
	pickInRound = overall%len(b.teams) + 1

	// Snake order: even rounds run the team list backwards.
	idx := pickInRound - 1
	if round%2 == 0 {
		idx = len(b.teams) - pickInRound
	}
	return b.teams[idx], round, pickInRound
}

// RecordPick assigns the named player to the team on the clock. The name
// is matched through the same stemming used for provider joins, so draft
// entry tolerates the usual punctuation and accent differences.
func (b *Board) RecordPick(playerName string) (Pick, error) {
	key := names.Stem(playerName)
	player, ok := b.available[key]
	if !ok {
		return Pick{}, fmt.Errorf("player %q is not available", playerName)
	}

	team, round, pickInRound := b.OnClock()
	pick := Pick{
		Overall:     len(b.picks) + 1,
		Round:       round,
		PickInRound: pickInRound,
		Team:        team,
		Player:      player,
	}
	delete(b.available, key)
	b.picks = append(b.picks, pick)
	b.rosters[team] = append(b.rosters[team], player)
	return pick, nil
}

// UndoLast reverts the most recent pick, returning it to the pool.
func (b *Board) UndoLast() (Pick, bool) {
	if len(b.picks) == 0 {
		return Pick{}, false
	}
	last := b.picks[len(b.picks)-1]
	b.picks = b.picks[:len(b.picks)-1]
	b.available[last.Player.JoinKey] = last.Player

	roster := b.rosters[last.Team]
	b.rosters[last.Team] = roster[:len(roster)-1]
	return last, true
}

// Picks returns the completed picks in draft order.
func (b *Board) Picks() []Pick {
	return append([]Pick{}, b.picks...)
}

// TeamRoster returns a team's drafted players.
func (b *Board) TeamRoster(team string) []types.PlayerRecord {
	return append([]types.PlayerRecord{}, b.rosters[team]...)
}

// BestAvailable returns undrafted players by projected points descending,
// optionally filtered to those eligible at the given position.
func (b *Board) BestAvailable(position string, limit int) []types.PlayerRecord {
	var pool []types.PlayerRecord
	for _, p := range b.available {
		if position != "" && !p.EligibleFor(strings.ToUpper(position)) {
			continue
		}
		pool = append(pool, p)
	}
	sort.SliceStable(pool, func(i, j int) bool {
		return pool[i].ProjectedPoints > pool[j].ProjectedPoints
	})
	if limit > 0 && len(pool) > limit {
		pool = pool[:limit]
	}
	return pool
}

// Leaderboard optimizes every team's drafted roster and ranks teams by
// lineup strength, expressed both in points and relative to the league
// average.
func (b *Board) Leaderboard() []Standing {
	standings := make([]Standing, 0, len(b.teams))
	strengths := make([]float64, 0, len(b.teams))
	for _, team := range b.teams {
		lineup := optimizer.Optimize(b.rosters[team], b.slots)
		standings = append(standings, Standing{
			Team:     team,
			Strength: lineup.TotalValue,
			Picks:    len(b.rosters[team]),
		})
		strengths = append(strengths, lineup.TotalValue)
	}

	avg := stat.Mean(strengths, nil)
	if avg > 0 {
		for i := range standings {
			standings[i].RelativeStrength = (standings[i].Strength - avg) / avg * 100
		}
	}

	sort.SliceStable(standings, func(i, j int) bool {
		return standings[i].Strength > standings[j].Strength
	})
	return standings
}
