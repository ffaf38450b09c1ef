package providers

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/nweber28/espn-fantasy-baseball-tools/internal/positions"
	"github.com/nweber28/espn-fantasy-baseball-tools/internal/streaming"
	"github.com/nweber28/espn-fantasy-baseball-tools/pkg/types"
)

const (
	mlbBaseURL          = "https://statsapi.mlb.com/api/v1"
	pastLineupsURL      = "https://www.fangraphs.com/api/depth-charts/past-lineups"
	mlbScheduleLeagueID = "103,104"
)

type scheduleResponse struct {
	Dates []struct {
		Date  string `json:"date"`
		Games []struct {
			GamePk int `json:"gamePk"`
			Teams  struct {
				Away scheduleSide `json:"away"`
				Home scheduleSide `json:"home"`
			} `json:"teams"`
		} `json:"games"`
	} `json:"dates"`
}

type scheduleSide struct {
	Team struct {
		Abbreviation string `json:"abbreviation"`
	} `json:"team"`
	ProbablePitcher struct {
		FullName string `json:"fullName"`
	} `json:"probablePitcher"`
}

type pastLineup struct {
	DataPlayers []struct {
		PlayerName    string `json:"playerName"`
		ValueOverride string `json:"valueOverride"`
	} `json:"dataPlayers"`
}

// MLBClient reads the public MLB stats API schedule and the recent-lineup
// feed used for opponent strength.
type MLBClient struct {
	http        *httpClient
	lineupsHTTP *httpClient
	baseURL     string
	lineupsURL  string
}

func NewMLBClient(timeout time.Duration, cacheProvider types.CacheProvider) *MLBClient {
	return &MLBClient{
		http:        newHTTPClient("mlb", timeout, cacheProvider),
		lineupsHTTP: newHTTPClient("lineups", timeout, cacheProvider),
		baseURL:     mlbBaseURL,
		lineupsURL:  pastLineupsURL,
	}
}

// FetchProbableStarts returns both probable starters for every game on the
// given date (YYYY-MM-DD). Unannounced starters come back as "TBD".
func (c *MLBClient) FetchProbableStarts(ctx context.Context, date string) ([]streaming.ProbableStart, error) {
	params := url.Values{
		"sportId":        {"1"},
		"date":           {date},
		"leagueId":       {mlbScheduleLeagueID},
		"hydrate":        {"team,probablePitcher,linescore"},
		"useLatestGames": {"false"},
		"language":       {"en"},
	}

	var resp scheduleResponse
	err := c.http.getJSON(ctx, fetchRequest{
		url:     c.baseURL + "/schedule",
		params:  params,
		headers: map[string]string{"Referer": "https://www.mlb.com/probable-pitchers/" + date},
		cacheParams: map[string]string{
			"endpoint": "schedule",
			"date":     date,
		},
	}, &resp)
	if err != nil {
		return nil, err
	}

	var starts []streaming.ProbableStart
	for _, day := range resp.Dates {
		for _, game := range day.Games {
			away := positions.NormalizeTeam(game.Teams.Away.Team.Abbreviation)
			home := positions.NormalizeTeam(game.Teams.Home.Team.Abbreviation)
			starts = append(starts,
				streaming.ProbableStart{
					GameDate:    day.Date,
					Team:        away,
					Opponent:    home,
					PitcherName: pitcherOrTBD(game.Teams.Away.ProbablePitcher.FullName),
				},
				streaming.ProbableStart{
					GameDate:    day.Date,
					Team:        home,
					Opponent:    away,
					PitcherName: pitcherOrTBD(game.Teams.Home.ProbablePitcher.FullName),
				},
			)
		}
	}
	c.http.log.WithField("starts", len(starts)).Info("Fetched probable starts")
	return starts, nil
}

// FetchTeamLineup returns the batters from a team's recent lineups, one
// entry per appearance so frequent starters weigh more in the averages.
// Injured and minor-league placeholders are filtered out.
func (c *MLBClient) FetchTeamLineup(ctx context.Context, teamID int) ([]string, error) {
	params := url.Values{
		"teamid":   {fmt.Sprintf("%d", teamID)},
		"loaddate": {fmt.Sprintf("%d", time.Now().Unix())},
	}

	var lineups []pastLineup
	err := c.lineupsHTTP.getJSON(ctx, fetchRequest{
		url:     c.lineupsURL,
		params:  params,
		headers: map[string]string{"Referer": fmt.Sprintf("https://www.fangraphs.com/roster-resource/depth-charts/%d", teamID)},
		cacheParams: map[string]string{
			"endpoint": "past-lineups",
			"team":     fmt.Sprintf("%d", teamID),
		},
	}, &lineups)
	if err != nil {
		return nil, err
	}

	var batters []string
	for _, lineup := range lineups {
		for _, p := range lineup.DataPlayers {
			if p.PlayerName == "" || p.ValueOverride == "INJ" || p.ValueOverride == "AAA" {
				continue
			}
			batters = append(batters, p.PlayerName)
		}
	}
	return batters, nil
}

// FetchAllLineups gathers recent lineups for every MLB team, keyed by the
// canonical abbreviation. Teams whose fetch fails are skipped so one bad
// feed does not sink the whole streaming analysis.
func (c *MLBClient) FetchAllLineups(ctx context.Context) map[string][]string {
	lineups := make(map[string][]string, len(positions.TeamIDs))
	for abbr, id := range positions.TeamIDs {
		batters, err := c.FetchTeamLineup(ctx, id)
		if err != nil {
			c.lineupsHTTP.log.WithError(err).WithField("team", abbr).Warn("Skipping team lineup")
			continue
		}
		lineups[abbr] = batters
	}
	return lineups
}

func pitcherOrTBD(name string) string {
	if name == "" {
		return "TBD"
	}
	return name
}
