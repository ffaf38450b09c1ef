package providers

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/nweber28/espn-fantasy-baseball-tools/internal/records"
	"github.com/nweber28/espn-fantasy-baseball-tools/pkg/types"
)

const espnBaseURL = "https://lm-api-reads.fantasy.espn.com/apis/v3/games/flb"

var espnHeaders = map[string]string{
	"Referer":            "https://fantasy.espn.com/",
	"X-Fantasy-Platform": "kona-PROD-ea1dac81fac83846270c371702992d3a2f69aa70",
	"X-Fantasy-Source":   "kona",
	"Accept":             "application/json",
}

// LeagueTeam is one fantasy team in the league.
type LeagueTeam struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

type espnPlayer struct {
	FullName      string `json:"fullName"`
	EligibleSlots []int  `json:"eligibleSlots"`
	InjuryStatus  string `json:"injuryStatus"`
	Ownership     struct {
		PercentOwned float64 `json:"percentOwned"`
	} `json:"ownership"`
}

type espnLeagueResponse struct {
	Teams []struct {
		ID     int    `json:"id"`
		Name   string `json:"name"`
		Roster struct {
			Entries []struct {
				PlayerPoolEntry struct {
					Player espnPlayer `json:"player"`
				} `json:"playerPoolEntry"`
			} `json:"entries"`
		} `json:"roster"`
	} `json:"teams"`
}

type espnPlayersResponse struct {
	Players []struct {
		OnTeamID int        `json:"onTeamId"`
		Player   espnPlayer `json:"player"`
	} `json:"players"`
}

// ESPNClient reads league, roster and player-pool data from the league
// platform. All requests carry the user's session cookies.
type ESPNClient struct {
	http     *httpClient
	baseURL  string
	leagueID string
	seasonID int
	swid     string
	espnS2   string
}

func NewESPNClient(leagueID string, seasonID int, swid, espnS2 string, timeout time.Duration, cacheProvider types.CacheProvider) *ESPNClient {
	return &ESPNClient{
		http:     newHTTPClient("espn", timeout, cacheProvider),
		baseURL:  espnBaseURL,
		leagueID: leagueID,
		seasonID: seasonID,
		swid:     swid,
		espnS2:   espnS2,
	}
}

func (c *ESPNClient) cookies() []*http.Cookie {
	if c.swid == "" && c.espnS2 == "" {
		return nil
	}
	return []*http.Cookie{
		{Name: "SWID", Value: c.swid},
		{Name: "espn_s2", Value: c.espnS2},
	}
}

// FetchTeams returns the fantasy teams in the configured league.
func (c *ESPNClient) FetchTeams(ctx context.Context) ([]LeagueTeam, error) {
	var resp espnLeagueResponse
	err := c.http.getJSON(ctx, fetchRequest{
		url:         fmt.Sprintf("%s/seasons/%d/segments/0/leagues/%s", c.baseURL, c.seasonID, c.leagueID),
		headers:     espnHeaders,
		cookies:     c.cookies(),
		cacheParams: map[string]string{"league": c.leagueID, "view": "teams"},
	}, &resp)
	if err != nil {
		return nil, err
	}

	teams := make([]LeagueTeam, 0, len(resp.Teams))
	for _, t := range resp.Teams {
		teams = append(teams, LeagueTeam{ID: t.ID, Name: t.Name})
	}
	c.http.log.WithField("teams", len(teams)).Info("Fetched league teams")
	return teams, nil
}

// FetchRosters returns every team's roster entries keyed by team ID.
func (c *ESPNClient) FetchRosters(ctx context.Context) (map[int][]records.RosterEntryInput, error) {
	var resp espnLeagueResponse
	err := c.http.getJSON(ctx, fetchRequest{
		url:         fmt.Sprintf("%s/seasons/%d/segments/0/leagues/%s?view=mRoster", c.baseURL, c.seasonID, c.leagueID),
		headers:     espnHeaders,
		cookies:     c.cookies(),
		cacheParams: map[string]string{"league": c.leagueID, "view": "mRoster"},
	}, &resp)
	if err != nil {
		return nil, err
	}

	rosters := make(map[int][]records.RosterEntryInput, len(resp.Teams))
	for _, team := range resp.Teams {
		for _, entry := range team.Roster.Entries {
			rosters[team.ID] = append(rosters[team.ID], rosterEntryInput(entry.PlayerPoolEntry.Player))
		}
	}
	c.http.log.WithField("teams", len(rosters)).Info("Fetched team rosters")
	return rosters, nil
}

// FetchPlayerPool returns the active player universe with ownership data.
// Players already on a team carry their owning team's ID; free agents
// report zero.
func (c *ESPNClient) FetchPlayerPool(ctx context.Context) (rostered map[int][]records.RosterEntryInput, freeAgents []records.RosterEntryInput, err error) {
	var resp espnPlayersResponse
	headers := make(map[string]string, len(espnHeaders)+1)
	for k, v := range espnHeaders {
		headers[k] = v
	}
	headers["X-Fantasy-Filter"] = `{"filterActive":{"value":true}}`

	err = c.http.getJSON(ctx, fetchRequest{
		url:         fmt.Sprintf("%s/seasons/%d/players?scoringPeriodId=0&view=players_wl&view=kona_player_info", c.baseURL, c.seasonID),
		headers:     headers,
		cookies:     c.cookies(),
		cacheParams: map[string]string{"season": fmt.Sprintf("%d", c.seasonID), "view": "players"},
	}, &resp)
	if err != nil {
		return nil, nil, err
	}

	rostered = make(map[int][]records.RosterEntryInput)
	for _, entry := range resp.Players {
		input := rosterEntryInput(entry.Player)
		if entry.OnTeamID > 0 {
			rostered[entry.OnTeamID] = append(rostered[entry.OnTeamID], input)
		} else {
			freeAgents = append(freeAgents, input)
		}
	}
	c.http.log.WithField("players", len(resp.Players)).Info("Fetched player pool")
	return rostered, freeAgents, nil
}

func rosterEntryInput(p espnPlayer) records.RosterEntryInput {
	return records.RosterEntryInput{
		Name:         p.FullName,
		SlotIDs:      p.EligibleSlots,
		InjuryStatus: p.InjuryStatus,
		PercentOwned: p.Ownership.PercentOwned,
	}
}
