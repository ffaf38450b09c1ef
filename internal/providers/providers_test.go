package providers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nweber28/espn-fantasy-baseball-tools/pkg/types"
)

func TestFanGraphsFetchProjectionsParsesRows(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "bat", r.URL.Query().Get("type"))
		assert.Equal(t, "rthebatx", r.URL.Query().Get("proj"))
		w.Header().Set("Content-Type", "application/json")
		// rPTS arrives as a string for one row and is garbage for another.
		_, _ = w.Write([]byte(`{"data":[
			{"PlayerName":"José Ramírez","Team":"CLE","POS":"3B","rPTS":600,"PA":600},
			{"PlayerName":"String Points","Team":"SD","POS":"1B/LF","rPTS":"123.5","PA":"400"},
			{"PlayerName":"Bad Numbers","Team":"TB","POS":"OF","rPTS":"N/A","PA":null},
			{"PlayerName":"","Team":"","POS":"C","rPTS":10}
		]}`))
	}))
	defer server.Close()

	client := NewFanGraphsClient(time.Second, nil)
	client.baseURL = server.URL

	projections, err := client.FetchProjections(context.Background(), ClassBatter, false)
	require.NoError(t, err)
	require.Len(t, projections, 3)

	assert.Equal(t, "jose-ramirez", projections[0].JoinKey)
	assert.Equal(t, 600.0, projections[0].ProjectedPoints)
	assert.Equal(t, 1.0, projections[0].PointsPerPA)

	assert.Equal(t, 123.5, projections[1].ProjectedPoints)
	assert.Equal(t, "SDP", projections[1].Team)
	assert.Equal(t, []string{"1B", "OF"}, projections[1].EligiblePositions)

	assert.Equal(t, 0.0, projections[2].ProjectedPoints)
	assert.Equal(t, 0.0, projections[2].PointsPerPA)
}

func TestFanGraphsPitcherParams(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "pit", r.URL.Query().Get("type"))
		assert.Equal(t, "ratcdc", r.URL.Query().Get("proj"))
		_, _ = w.Write([]byte(`{"data":[{"PlayerName":"Ace Arm","Team":"NYY","POS":"SP","rPTS":550,"IP":180}]}`))
	}))
	defer server.Close()

	client := NewFanGraphsClient(time.Second, noopCache{})
	client.baseURL = server.URL

	projections, err := client.FetchProjections(context.Background(), ClassPitcher, false)
	require.NoError(t, err)
	require.Len(t, projections, 1)
	assert.True(t, projections[0].IsPitcher)
	assert.InDelta(t, 550.0/180.0, projections[0].PointsPerIP, 1e-9)
}

func TestESPNFetchRostersSendsCookies(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		swid, err := r.Cookie("SWID")
		require.NoError(t, err)
		assert.Equal(t, "{swid}", swid.Value)
		s2, err := r.Cookie("espn_s2")
		require.NoError(t, err)
		assert.Equal(t, "secret", s2.Value)

		_, _ = w.Write([]byte(`{"teams":[{"id":7,"name":"Dingers","roster":{"entries":[
			{"playerPoolEntry":{"player":{"fullName":"CJ Abrams","eligibleSlots":[4,12,16],"injuryStatus":"ACTIVE","ownership":{"percentOwned":98.2}}}},
			{"playerPoolEntry":{"player":{"fullName":"Hurt Arm","eligibleSlots":[13,14],"injuryStatus":"FIFTEEN_DAY_DL"}}}
		]}}]}`))
	}))
	defer server.Close()

	client := NewESPNClient("12345", 2026, "{swid}", "secret", time.Second, nil)
	client.baseURL = server.URL

	rosters, err := client.FetchRosters(context.Background())
	require.NoError(t, err)
	require.Len(t, rosters[7], 2)
	assert.Equal(t, "CJ Abrams", rosters[7][0].Name)
	assert.Equal(t, []int{4, 12, 16}, rosters[7][0].SlotIDs)
	assert.Equal(t, 98.2, rosters[7][0].PercentOwned)
	assert.Equal(t, "FIFTEEN_DAY_DL", rosters[7][1].InjuryStatus)
}

func TestESPNFetchPlayerPoolSplitsFreeAgents(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.NotEmpty(t, r.Header.Get("X-Fantasy-Filter"))
		_, _ = w.Write([]byte(`{"players":[
			{"onTeamId":3,"player":{"fullName":"Owned Guy","eligibleSlots":[5,16]}},
			{"onTeamId":0,"player":{"fullName":"Free Guy","eligibleSlots":[0,16],"ownership":{"percentOwned":4.5}}}
		]}`))
	}))
	defer server.Close()

	client := NewESPNClient("12345", 2026, "", "", time.Second, nil)
	client.baseURL = server.URL

	rostered, freeAgents, err := client.FetchPlayerPool(context.Background())
	require.NoError(t, err)
	require.Len(t, rostered[3], 1)
	require.Len(t, freeAgents, 1)
	assert.Equal(t, "Free Guy", freeAgents[0].Name)
	assert.Equal(t, 4.5, freeAgents[0].PercentOwned)
}

func TestMLBFetchProbableStartsBothSides(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "2026-08-24", r.URL.Query().Get("date"))
		_, _ = w.Write([]byte(`{"dates":[{"date":"2026-08-24","games":[{"gamePk":1,
			"teams":{
				"away":{"team":{"abbreviation":"SD"},"probablePitcher":{"fullName":"Road Ace"}},
				"home":{"team":{"abbreviation":"LAD"}}
			}}]}]}`))
	}))
	defer server.Close()

	client := NewMLBClient(time.Second, nil)
	client.baseURL = server.URL

	starts, err := client.FetchProbableStarts(context.Background(), "2026-08-24")
	require.NoError(t, err)
	require.Len(t, starts, 2)

	assert.Equal(t, "SDP", starts[0].Team)
	assert.Equal(t, "LAD", starts[0].Opponent)
	assert.Equal(t, "Road Ace", starts[0].PitcherName)
	// The home starter is unannounced.
	assert.Equal(t, "TBD", starts[1].PitcherName)
	assert.Equal(t, "SDP", starts[1].Opponent)
}

func TestMLBFetchTeamLineupFiltersPlaceholders(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[
			{"dataPlayers":[
				{"playerName":"Leadoff Guy"},
				{"playerName":"Hurt Guy","valueOverride":"INJ"},
				{"playerName":"Farm Guy","valueOverride":"AAA"},
				{"playerName":""}
			]},
			{"dataPlayers":[{"playerName":"Leadoff Guy"}]}
		]`))
	}))
	defer server.Close()

	client := NewMLBClient(time.Second, nil)
	client.lineupsURL = server.URL

	batters, err := client.FetchTeamLineup(context.Background(), 22)
	require.NoError(t, err)
	// One entry per appearance, so the everyday player shows up twice.
	assert.Equal(t, []string{"Leadoff Guy", "Leadoff Guy"}, batters)
}

func TestBreakerOpensAfterRepeatedFailures(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := newHTTPClient("flaky", time.Second, nil)
	var dest map[string]interface{}
	for i := 0; i < 5; i++ {
		err := client.getJSON(context.Background(), fetchRequest{url: server.URL}, &dest)
		require.Error(t, err)
	}

	// Circuit is open now; the request fails without reaching the server.
	err := client.getJSON(context.Background(), fetchRequest{url: server.URL}, &dest)
	assert.Error(t, err)
}

var _ types.CacheProvider = (*noopCache)(nil)

type noopCache struct{}

func (noopCache) Set(context.Context, string, interface{}, time.Duration) error { return nil }
func (noopCache) Get(context.Context, string, interface{}) error {
	return context.Canceled
}
func (noopCache) Delete(context.Context, string) error { return nil }
func (noopCache) Exists(context.Context, string) bool  { return false }
