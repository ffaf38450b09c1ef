// Package positions is the canonical catalog of roster-slot identifiers:
// the league platform's numeric slot codes, the display subset, and the
// pitcher/hitter classification used by the generic UTIL and P slots.
package positions

// slotNames maps the league platform's eligible-slot IDs to slot names.
var slotNames = map[int]string{
	0:  "C",
	1:  "1B",
	2:  "2B",
	3:  "3B",
	4:  "SS",
	5:  "OF",
	6:  "MI",
	7:  "CI",
	8:  "LF",
	9:  "CF",
	10: "RF",
	11: "DH",
	12: "UTIL",
	13: "P",
	14: "SP",
	15: "RP",
	16: "BN",
	17: "IL",
	18: "NA",
	19: "IF",
}

// displayPositions is the subset of positions carried onto PlayerRecords;
// generic and derived slots (UTIL, MI, CI, BN, ...) are dropped.
var displayPositions = map[string]bool{
	"C": true, "1B": true, "2B": true, "3B": true, "SS": true,
	"OF": true, "SP": true, "RP": true, "DH": true,
}

var pitcherPositions = map[string]bool{"SP": true, "RP": true, "P": true}

var hitterPositions = map[string]bool{
	"C": true, "1B": true, "2B": true, "3B": true, "SS": true,
	"OF": true, "DH": true,
}

// teamAbbrevs normalizes provider team abbreviations to the canonical form
// used for cross-source joins.
var teamAbbrevs = map[string]string{
	"CWS": "CHW", "SF": "SFG", "SD": "SDP", "WSH": "WSN", "WAS": "WSN",
	"TB": "TBR", "KC": "KCR", "ANA": "LAA", "FLA": "MIA", "NYN": "NYM",
	"SLN": "STL", "LAN": "LAD", "SFN": "SFG", "AZ": "ARI",
}

// TeamIDs maps canonical team abbreviations to MLB stats API team IDs.
var TeamIDs = map[string]int{
	"LAA": 1, "BAL": 2, "BOS": 3, "CHW": 4, "CLE": 5, "DET": 6, "KCR": 7,
	"MIN": 8, "NYY": 9, "ATH": 10, "SEA": 11, "TBR": 12, "TEX": 13,
	"TOR": 14, "ARI": 15, "ATL": 16, "CHC": 17, "CIN": 18, "COL": 19,
	"MIA": 20, "HOU": 21, "LAD": 22, "MIL": 23, "WSN": 24, "NYM": 25,
	"PHI": 26, "PIT": 27, "STL": 28, "SDP": 29, "SFG": 30,
}

// SlotName resolves a numeric slot ID; unknown IDs resolve to "".
func SlotName(id int) string {
	return slotNames[id]
}

// Convert maps a list of numeric slot IDs to the display positions a
// player is eligible at. Outfield sub-positions (LF, CF, RF) collapse into
// OF, and anything outside the display subset is filtered out. Order
// follows the input, de-duplicated.
func Convert(slotIDs []int) []string {
	var result []string
	seen := make(map[string]bool)
	for _, id := range slotIDs {
		name, ok := slotNames[id]
		if !ok {
			continue
		}
		if name == "LF" || name == "CF" || name == "RF" {
			name = "OF"
		}
		if !displayPositions[name] || seen[name] {
			continue
		}
		seen[name] = true
		result = append(result, name)
	}
	return result
}

// IsPitcher reports whether any position in the list is a pitching one.
func IsPitcher(positions []string) bool {
	for _, pos := range positions {
		if pitcherPositions[pos] {
			return true
		}
	}
	return false
}

// IsHitter reports whether any position in the list is a hitting one.
func IsHitter(positions []string) bool {
	for _, pos := range positions {
		if hitterPositions[pos] {
			return true
		}
	}
	return false
}

// NormalizeTeam standardizes a provider team abbreviation.
func NormalizeTeam(abbr string) string {
	if canonical, ok := teamAbbrevs[abbr]; ok {
		return canonical
	}
	return abbr
}
