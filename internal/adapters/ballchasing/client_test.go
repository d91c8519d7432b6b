package ballchasing

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jose-valero/match-scoreboard/internal/adapters/ballchasing/bctest"
)

func seasonServer(t *testing.T) *bctest.Server {
	t.Helper()
	srv := bctest.NewServer(t)
	srv.AddGroup("", "season-1", "Season 1", "2021-03-01T10:00:00Z",
		bctest.Player(76561198000000001, "OLPiX", "Blue", 6, 4, 2400, 9, 20, 3, 7, 5),
		bctest.Player(76561198000000002, "Kaydop", "Orange", 6, 2, 1800, 5, 12, 4, 9, 2),
	)
	srv.AddGroup("season-1", "day-1", "Day 1", "2021-03-01T12:00:00Z",
		bctest.Player(76561198000000001, "OLPiX", "Blue", 3, 2, 1200, 5, 10, 1, 3, 2),
	)
	srv.AddGroup("season-1", "day-2", "Day 2", "2021-03-08T12:00:00Z",
		bctest.Player(76561198000000001, "OLPiX", "Blue", 3, 2, 1200, 4, 10, 2, 4, 3),
	)
	return srv
}

func TestClient_Group_SendsAPIKey(t *testing.T) {
	srv := seasonServer(t)
	c := New(bctest.APIKey, WithBaseURL(srv.URL+"/"))

	g, err := c.Group(context.Background(), "season-1")
	require.NoError(t, err)

	assert.Equal(t, "Season 1", g.Name)
	assert.Equal(t, time.Date(2021, 3, 1, 10, 0, 0, 0, time.UTC), g.Created.UTC())
	require.Len(t, g.Players, 2)
	assert.Equal(t, flexID("76561198000000001"), g.Players[0].ID)
	assert.Equal(t, 9.0, g.Players[0].Cumulative.Core.Goals)
	assert.Equal(t, 5.0, g.Players[0].Cumulative.Demo.Taken)
}

func TestClient_GroupChildren_SortedByCreated(t *testing.T) {
	srv := seasonServer(t)
	c := New(bctest.APIKey, WithBaseURL(srv.URL))

	children, err := c.GroupChildren(context.Background(), "season-1")
	require.NoError(t, err)

	require.Len(t, children, 2)
	assert.Equal(t, "Day 1", children[0].Name)
	assert.Equal(t, "Day 2", children[1].Name)
	assert.Contains(t, srv.Requests(), "/groups?group=season-1&sort-by=created&sort-dir=asc")
}

func TestClient_ReplayGroups_RootThenChildren(t *testing.T) {
	srv := seasonServer(t)
	c := New(bctest.APIKey, WithBaseURL(srv.URL))

	groups, err := c.ReplayGroups(context.Background(), "season-1")
	require.NoError(t, err)

	require.Len(t, groups, 3)
	assert.Empty(t, groups[0].ParentID)
	assert.Equal(t, "season-1", groups[1].ParentID)
	assert.Equal(t, "season-1", groups[2].ParentID)

	p := groups[0].Players[0]
	assert.Equal(t, "steam:76561198000000001", p.PlatformID)
	assert.Equal(t, "Blue", p.ReplayTeam)
	assert.Equal(t, 2400.0, p.Score)
	assert.Equal(t, 45.0, p.ShootingPercentage)
}

func TestClient_WrongKey_IsAPIError(t *testing.T) {
	srv := seasonServer(t)
	c := New("nope", WithBaseURL(srv.URL))

	_, err := c.Group(context.Background(), "season-1")

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusUnauthorized, apiErr.Status)
	assert.Contains(t, apiErr.Body, "invalid api key")
}

func TestClient_MissingKey(t *testing.T) {
	c := New("", WithBaseURL("http://127.0.0.1:1"))

	_, err := c.Group(context.Background(), "season-1")
	assert.ErrorIs(t, err, ErrMissingAPIKey)
}

func TestClient_ChildFailureNamesGroup(t *testing.T) {
	h := http.NewServeMux()
	h.HandleFunc("/groups", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"list":[{"id":"gone"}]}`))
	})
	h.HandleFunc("/groups/gone", func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	})
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)

	_, err := New("k", WithBaseURL(srv.URL)).GroupChildren(context.Background(), "root")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "group gone")
}

func TestFlexID_NumberOrString(t *testing.T) {
	cases := map[string]flexID{
		`76561198000000001`: "76561198000000001",
		`"abc-123"`:         "abc-123",
		`null`:              "",
	}
	for in, want := range cases {
		var got flexID
		require.NoError(t, got.UnmarshalJSON([]byte(in)), in)
		assert.Equal(t, want, got, in)
	}
}

func TestGroup_Domain_SkipsPlayersWithoutCumulative(t *testing.T) {
	g := Group{ID: "g", Players: []Player{{Name: "ghost"}, {Name: "real", Cumulative: &Cumulative{Wins: 1}}}}

	out := g.Domain("p")
	require.Len(t, out.Players, 1)
	assert.Equal(t, "real", out.Players[0].Name)
	assert.Equal(t, "p", out.ParentID)
}
