package types

import (
	"context"
	"time"
)

// InjuryStatus is the roster status reported by the league platform.
type InjuryStatus string

const (
	InjuryActive       InjuryStatus = "ACTIVE"
	InjuryDayToDay     InjuryStatus = "DAY_TO_DAY"
	InjuryTenDayDL     InjuryStatus = "TEN_DAY_DL"
	InjuryFifteenDayDL InjuryStatus = "FIFTEEN_DAY_DL"
	InjurySixtyDayDL   InjuryStatus = "SIXTY_DAY_DL"
	InjuryOut          InjuryStatus = "OUT"
	InjurySuspension   InjuryStatus = "SUSPENSION"
)

// disabledListStatuses are the statuses that make a player eligible for an
// IL slot and protect them from being recommended as a drop.
var disabledListStatuses = map[InjuryStatus]bool{
	InjuryTenDayDL:     true,
	InjuryFifteenDayDL: true,
	InjurySixtyDayDL:   true,
	InjuryOut:          true,
	InjurySuspension:   true,
}

// OnDisabledList reports whether the status qualifies for an IL slot.
func (s InjuryStatus) OnDisabledList() bool {
	return disabledListStatuses[s]
}

// Reserved slot tags. UTIL and P are generic slots with class-based
// eligibility; BN and IL are overflow pools with no positional filter.
const (
	SlotUtility = "UTIL"
	SlotPitcher = "P"
	SlotBench   = "BN"
	SlotInjured = "IL"
)

// PlayerRecord is the uniform in-memory player representation consumed by
// the optimizer, the waiver finder and the trade analyzer. Records are
// built once at the provider boundary and never mutated afterwards.
type PlayerRecord struct {
	Name              string       `json:"name"`
	JoinKey           string       `json:"join_key"`
	Team              string       `json:"team"`
	EligiblePositions []string     `json:"eligible_positions"`
	ProjectedPoints   float64      `json:"projected_points"`
	IsPitcher         bool         `json:"is_pitcher"`
	IsHitter          bool         `json:"is_hitter"`
	InjuryStatus      InjuryStatus `json:"injury_status,omitempty"`
	PercentOwned      float64      `json:"percent_owned,omitempty"`

	// Per-unit rates used by the streaming analyzer; zero when the
	// projection source had no PA/IP for the player.
	PointsPerPA float64 `json:"points_per_pa,omitempty"`
	PointsPerIP float64 `json:"points_per_ip,omitempty"`
}

// EligibleFor reports whether the player may occupy a slot with the given
// tag. BN accepts anyone; IL requires a disabled-list status; UTIL and P
// accept any hitter or pitcher respectively; every other tag requires an
// explicit position match.
func (p PlayerRecord) EligibleFor(tag string) bool {
	switch tag {
	case SlotBench:
		return true
	case SlotInjured:
		return p.InjuryStatus.OnDisabledList()
	case SlotUtility:
		return p.IsHitter
	case SlotPitcher:
		return p.IsPitcher
	}
	for _, pos := range p.EligiblePositions {
		if pos == tag {
			return true
		}
	}
	return false
}

// RosterSlots maps a slot tag to its required count.
type RosterSlots map[string]int

// ActiveTags returns the scoring slot tags (everything except BN and IL)
// with a positive count.
func (rs RosterSlots) ActiveTags() []string {
	tags := make([]string, 0, len(rs))
	for tag, count := range rs {
		if tag == SlotBench || tag == SlotInjured || count <= 0 {
			continue
		}
		tags = append(tags, tag)
	}
	return tags
}

// BenchCount returns the configured bench capacity, zero when absent.
func (rs RosterSlots) BenchCount() int {
	return rs[SlotBench]
}

// TotalCapacity returns the total number of players the roster can hold,
// bench included, IL excluded.
func (rs RosterSlots) TotalCapacity() int {
	total := 0
	for tag, count := range rs {
		if tag == SlotInjured {
			continue
		}
		total += count
	}
	return total
}

// RosterAssignment is the optimizer's output: each slot tag mapped to the
// players filling it, ordered by projected points descending. TotalValue
// sums projected points over non-bench, non-IL slots only.
type RosterAssignment struct {
	Slots      map[string][]PlayerRecord `json:"slots"`
	TotalValue float64                   `json:"total_value"`
}

// StarterNames returns the set of player names occupying scoring slots.
func (ra RosterAssignment) StarterNames() map[string]bool {
	starters := make(map[string]bool)
	for tag, players := range ra.Slots {
		if tag == SlotBench || tag == SlotInjured {
			continue
		}
		for _, p := range players {
			starters[p.Name] = true
		}
	}
	return starters
}

// Recommendation is a single add/drop suggestion from the waiver finder.
type Recommendation struct {
	Add          string       `json:"add"`
	Slot         string       `json:"slot"`
	Drop         string       `json:"drop"`
	Improvement  float64      `json:"improvement"`
	PercentOwned float64      `json:"percent_owned"`
	InjuryStatus InjuryStatus `json:"injury_status,omitempty"`
}

// TeamTradeOutcome captures one side of a trade evaluation.
type TeamTradeOutcome struct {
	Team                string           `json:"team"`
	CurrentStrength     float64          `json:"current_strength"`
	PostTradeStrength   float64          `json:"post_trade_strength"`
	WithWaiversStrength float64          `json:"with_waivers_strength"`
	StrengthDiff        float64          `json:"strength_diff"`
	WaiverDiff          float64          `json:"waiver_diff"`
	TotalDiff           float64          `json:"total_diff"`
	Pickups             []Recommendation `json:"pickups,omitempty"`
}

// TradeVerdict is the display heuristic for a trade: balanced when the two
// diffs are within 3 points of each other, otherwise the team with the
// larger diff is the net winner.
type TradeVerdict struct {
	Balanced bool   `json:"balanced"`
	Winner   string `json:"winner,omitempty"`
}

// TradeAnalysis is the full result of a trade evaluation.
type TradeAnalysis struct {
	Team1            TeamTradeOutcome `json:"team1"`
	Team2            TeamTradeOutcome `json:"team2"`
	Verdict          TradeVerdict     `json:"verdict"`
	TradeOnlyVerdict TradeVerdict     `json:"trade_only_verdict"`
}

// TeamBattingStrength is a team-level expected-points figure derived from
// recent lineup appearances.
type TeamBattingStrength struct {
	Team           string  `json:"team"`
	AvgPointsPerPA float64 `json:"avg_points_per_pa"`
	ExpectedPoints float64 `json:"expected_points"`
	BattersCounted int     `json:"batters_counted"`
}

// StreamingMatchup ranks a probable pitcher against the opposing lineup.
type StreamingMatchup struct {
	Pitcher           string  `json:"pitcher"`
	PitcherTeam       string  `json:"pitcher_team"`
	Opponent          string  `json:"opponent"`
	GameDate          string  `json:"game_date"`
	PitcherProjection float64 `json:"pitcher_projection"`
	OpponentExpected  float64 `json:"opponent_expected"`
	StrengthDiff      float64 `json:"strength_diff"`
	PercentOwned      float64 `json:"percent_owned"`
}

// CacheProvider defines the interface for caching services.
type CacheProvider interface {
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error
	Get(ctx context.Context, key string, dest interface{}) error
	Delete(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) bool
}

// HealthStatus represents the health status of the service.
type HealthStatus struct {
	Status    string            `json:"status"`
	Service   string            `json:"service"`
	Timestamp time.Time         `json:"timestamp"`
	Checks    map[string]string `json:"checks,omitempty"`
}

// ErrorResponse represents a standard error response.
type ErrorResponse struct {
	Error   string            `json:"error"`
	Code    string            `json:"code,omitempty"`
	Details map[string]string `json:"details,omitempty"`
}

// SuccessResponse is the standard success envelope for API endpoints.
type SuccessResponse struct {
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}
