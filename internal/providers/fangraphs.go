package providers

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/nweber28/espn-fantasy-baseball-tools/internal/records"
	"github.com/nweber28/espn-fantasy-baseball-tools/pkg/types"
)

const fangraphsBaseURL = "https://www.fangraphs.com/api/fantasy/auction-calculator/data"

// Points configurations for the auction-calculator endpoint. The regular
// setup scores 1B=1, 2B=2, 3B=3, HR=4, BB=1, R=1, RBI=1, SB=1, CS=-1; the
// streamer setup bumps RBI to 2 for evaluating opposing lineups.
const (
	batterPointsConfig   = "p|0,0,0,1,2,3,4,1,0,1,1,1,-1,0,0,0|3,2,-2,5,1,-2,0,-1,0,-1,2"
	streamerPointsConfig = "p|0,0,1,0,0,0,0,0,0,1,2,1,-1,0,0,0|3,2,-2,5,1,-2,0,-1,0,-1,2"
)

// PlayerClass selects which projection set to fetch.
type PlayerClass string

const (
	ClassBatter  PlayerClass = "batter"
	ClassPitcher PlayerClass = "pitcher"
)

// flexFloat decodes numeric fields that arrive as numbers, strings or
// null; anything unparseable reads as zero.
type flexFloat float64

func (f *flexFloat) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	if s == "null" {
		*f = 0
		return nil
	}
	*f = flexFloat(records.Float(s))
	return nil
}

type auctionRow struct {
	PlayerName string    `json:"PlayerName"`
	Team       string    `json:"Team"`
	Position   string    `json:"POS"`
	Points     flexFloat `json:"rPTS"`
	PA         flexFloat `json:"PA"`
	IP         flexFloat `json:"IP"`
}

type auctionResponse struct {
	Data []auctionRow `json:"data"`
}

// FanGraphsClient fetches rest-of-season point projections.
type FanGraphsClient struct {
	http    *httpClient
	baseURL string
}

func NewFanGraphsClient(timeout time.Duration, cacheProvider types.CacheProvider) *FanGraphsClient {
	return &FanGraphsClient{
		http:    newHTTPClient("fangraphs", timeout, cacheProvider),
		baseURL: fangraphsBaseURL,
	}
}

// FetchProjections returns projections for one player class. When
// streamerPoints is set and the class is batter, the streamer points
// configuration is used instead of the regular one.
func (c *FanGraphsClient) FetchProjections(ctx context.Context, class PlayerClass, streamerPoints bool) ([]types.PlayerRecord, error) {
	projParam := "rthebatx"
	typeParam := "bat"
	if class == ClassPitcher {
		projParam = "ratcdc"
		typeParam = "pit"
	}
	pointsConfig := batterPointsConfig
	if class == ClassBatter && streamerPoints {
		pointsConfig = streamerPointsConfig
	}

	params := url.Values{
		"teams":   {"10"},
		"lg":      {"MLB"},
		"dollars": {"260"},
		"mb":      {"1"},
		"mp":      {"12"},
		"msp":     {"5"},
		"mrp":     {"2"},
		"type":    {typeParam},
		"players": {""},
		"proj":    {projParam},
		"split":   {""},
		"points":  {pointsConfig},
		"rep":     {"0"},
		"drp":     {"0"},
		"pp":      {"C,SS,2B,3B,OF,1B"},
		"pos":     {"1,1,1,1,3,1,0,0,0,1,5,2,0,3,0"},
		"sort":    {""},
		"view":    {"0"},
	}

	var resp auctionResponse
	err := c.http.getJSON(ctx, fetchRequest{
		url:    c.baseURL,
		params: params,
		headers: map[string]string{
			"Referer": "https://www.fangraphs.com/fantasy-tools/auction-calculator",
		},
		cacheParams: map[string]string{
			"type":     typeParam,
			"proj":     projParam,
			"streamer": fmt.Sprintf("%t", streamerPoints),
		},
	}, &resp)
	if err != nil {
		return nil, err
	}

	projections := make([]types.PlayerRecord, 0, len(resp.Data))
	for _, row := range resp.Data {
		if row.PlayerName == "" {
			continue
		}
		projections = append(projections, records.FromProjection(records.ProjectionInput{
			Name:             row.PlayerName,
			Team:             row.Team,
			Positions:        records.SplitPositions(row.Position),
			Points:           float64(row.Points),
			PlateAppearances: float64(row.PA),
			InningsPitched:   float64(row.IP),
		}))
	}

	c.http.log.WithField("players", len(projections)).Info("Fetched projections")
	return projections, nil
}
