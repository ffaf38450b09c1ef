// Package optimizer assigns players to roster slots so that total projected
// points across scoring slots is maximized. The assignment is solved as a
// min-cost max-flow problem over the player/slot eligibility graph, so the
// result is a true optimum rather than a greedy approximation.
package optimizer

import (
	"sort"

	"github.com/nweber28/espn-fantasy-baseball-tools/pkg/logger"
	"github.com/nweber28/espn-fantasy-baseball-tools/pkg/types"
	"github.com/sirupsen/logrus"
)

// ilLimit caps how many disabled-list players are parked on IL before the
// remainder competes for active slots.
const ilLimit = 3

// Optimize produces the best legal lineup for the given players and slot
// configuration. Disabled-list players are carved out first (top ilLimit by
// projected points go to IL), scoring slots are solved globally, and the
// bench takes the best leftovers. Players beyond total capacity are
// excluded without error; slots short on eligible players stay partially
// filled.
func Optimize(players []types.PlayerRecord, slots types.RosterSlots) types.RosterAssignment {
	injured, active := carveOutInjured(players)

	assignment := types.RosterAssignment{Slots: make(map[string][]types.PlayerRecord)}
	if len(injured) > 0 {
		assignment.Slots[types.SlotInjured] = injured
	}

	tags := slots.ActiveTags()
	sort.Strings(tags)

	placed := solveScoringSlots(active, tags, slots, &assignment)

	// Bench takes the highest-projected unplaced players; anyone beyond
	// bench capacity is simply left off.
	var leftovers []types.PlayerRecord
	for _, p := range active {
		if !placed[p.Name] {
			leftovers = append(leftovers, p)
		}
	}
	sortByPoints(leftovers)
	if bench := slots.BenchCount(); bench > 0 && len(leftovers) > 0 {
		if len(leftovers) > bench {
			leftovers = leftovers[:bench]
		}
		assignment.Slots[types.SlotBench] = leftovers
	}

	for tag := range assignment.Slots {
		sortByPoints(assignment.Slots[tag])
	}

	logger.GetLogger().WithFields(logrus.Fields{
		"players":     len(players),
		"total_value": assignment.TotalValue,
	}).Debug("Roster optimization complete")

	return assignment
}

// carveOutInjured returns the top disabled-list players for IL and the
// remaining pool. Disabled-list players beyond the IL limit rejoin the
// active pool and compete for regular slots.
func carveOutInjured(players []types.PlayerRecord) (injured, active []types.PlayerRecord) {
	var dl []types.PlayerRecord
	for _, p := range players {
		if p.InjuryStatus.OnDisabledList() {
			dl = append(dl, p)
		} else {
			active = append(active, p)
		}
	}
	sortByPoints(dl)
	if len(dl) > ilLimit {
		active = append(active, dl[ilLimit:]...)
		dl = dl[:ilLimit]
	}
	return dl, active
}

// solveScoringSlots runs the flow solve and writes scoring-slot contents
// and TotalValue into the assignment. Returns the set of placed names.
func solveScoringSlots(active []types.PlayerRecord, tags []string, slots types.RosterSlots, out *types.RosterAssignment) map[string]bool {
	placed := make(map[string]bool)
	if len(active) == 0 || len(tags) == 0 {
		return placed
	}

	// Node layout: source, one node per player, one node per slot tag, sink.
	source := 0
	playerBase := 1
	tagBase := playerBase + len(active)
	sink := tagBase + len(tags)
	net := newFlowNetwork(sink + 1)

	for i, p := range active {
		net.addEdge(source, playerBase+i, 1, 0)
		for j, tag := range tags {
			if p.EligibleFor(tag) {
				// Negated points so the min-cost solve maximizes value.
				net.addEdge(playerBase+i, tagBase+j, 1, -p.ProjectedPoints)
			}
		}
	}
	for j, tag := range tags {
		net.addEdge(tagBase+j, sink, slots[tag], 0)
	}

	net.solve(source, sink)

	for i, p := range active {
		for _, e := range net.graph[playerBase+i] {
			if e.to >= tagBase && e.to < sink && e.cap == 0 {
				tag := tags[e.to-tagBase]
				out.Slots[tag] = append(out.Slots[tag], p)
				out.TotalValue += p.ProjectedPoints
				placed[p.Name] = true
				break
			}
		}
	}
	return placed
}

func sortByPoints(players []types.PlayerRecord) {
	sort.SliceStable(players, func(i, j int) bool {
		return players[i].ProjectedPoints > players[j].ProjectedPoints
	})
}

type flowEdge struct {
	to   int
	rev  int
	cap  int
	cost float64
}

type flowNetwork struct {
	graph [][]flowEdge
}

func newFlowNetwork(n int) *flowNetwork {
	return &flowNetwork{graph: make([][]flowEdge, n)}
}

func (f *flowNetwork) addEdge(from, to, cap int, cost float64) {
	f.graph[from] = append(f.graph[from], flowEdge{to: to, rev: len(f.graph[to]), cap: cap, cost: cost})
	f.graph[to] = append(f.graph[to], flowEdge{to: from, rev: len(f.graph[from]) - 1, cap: 0, cost: -cost})
}

// solve runs successive shortest augmenting paths (SPFA, which tolerates
// the negative arc costs) until no augmenting path remains. The result is
// a maximum flow of minimum total cost.
func (f *flowNetwork) solve(source, sink int) {
	n := len(f.graph)
	const unreachable = 1e18

	for {
		dist := make([]float64, n)
		inQueue := make([]bool, n)
		prevNode := make([]int, n)
		prevEdge := make([]int, n)
		for i := range dist {
			dist[i] = unreachable
			prevNode[i] = -1
		}
		dist[source] = 0

		queue := []int{source}
		inQueue[source] = true
		for len(queue) > 0 {
			u := queue[0]
			queue = queue[1:]
			inQueue[u] = false
			for ei, e := range f.graph[u] {
				if e.cap <= 0 || dist[u]+e.cost >= dist[e.to] {
					continue
				}
				dist[e.to] = dist[u] + e.cost
				prevNode[e.to] = u
				prevEdge[e.to] = ei
				if !inQueue[e.to] {
					queue = append(queue, e.to)
					inQueue[e.to] = true
				}
			}
		}

		if prevNode[sink] == -1 {
			return
		}

		// Bottleneck along the path, then push.
		flow := int(1 << 30)
		for v := sink; v != source; v = prevNode[v] {
			e := f.graph[prevNode[v]][prevEdge[v]]
			if e.cap < flow {
				flow = e.cap
			}
		}
		for v := sink; v != source; v = prevNode[v] {
			e := &f.graph[prevNode[v]][prevEdge[v]]
			e.cap -= flow
			f.graph[v][e.rev].cap += flow
		}
	}
}
