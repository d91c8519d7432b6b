package toornament

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jose-valero/match-scoreboard/internal/domain"
)

var testCreds = Credentials{APIKey: "api-key", ClientID: "cid", ClientSecret: "secret"}

func fakeToornament(t *testing.T, tokens *int32) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/oauth/v2/token", func(w http.ResponseWriter, r *http.Request) {
		assert.NoError(t, r.ParseForm())
		assert.Equal(t, "client_credentials", r.PostForm.Get("grant_type"))
		assert.Equal(t, "cid", r.PostForm.Get("client_id"))
		assert.Equal(t, "organizer:view organizer:admin organizer:participant organizer:result", r.PostForm.Get("scope"))
		atomic.AddInt32(tokens, 1)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"access_token":"tok","token_type":"Bearer","expires_in":3600}`))
	})
	api := func(rangeHeader, body string) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			if r.Header.Get("Authorization") != "Bearer tok" || r.Header.Get("X-Api-Key") != "api-key" {
				http.Error(w, "unauthorized", http.StatusUnauthorized)
				return
			}
			assert.Equal(t, rangeHeader, r.Header.Get("Range"))
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(body))
		}
	}
	mux.HandleFunc("/organizer/v2/tournaments/77/participants", api("participants=0-49",
		`[{"id":"10","name":"Orange","custom_user_identifier":"ORANGE ESPORTS"},{"id":"20","name":"Blue"}]`))
	mux.HandleFunc("/organizer/v2/tournaments/77/matches", api("matches=0-99",
		`[{"id":"m1","status":"completed","stage_id":"s","group_id":"g","round_id":"r","number":1,
		  "scheduled_datetime":"2021-03-01T18:00:00+00:00",
		  "opponents":[{"number":1,"position":1,"result":"win","forfeit":false,"score":3,"participant":{"id":"10","name":"Orange"}},
		               {"number":2,"position":2,"result":"loss","forfeit":false,"score":1,"participant":{"id":"20","name":"Blue"}}]},
		 {"id":"m2","status":"pending","stage_id":"s","group_id":"g","round_id":null,"number":2,"scheduled_datetime":null,
		  "opponents":[{"number":1,"position":1,"result":null,"forfeit":false,"score":null,"participant":null}]}]`))
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestClient_Tournament(t *testing.T) {
	var tokens int32
	srv := fakeToornament(t, &tokens)
	c := New(testCreds, WithBaseURL(srv.URL+"/organizer/v2/"), WithTokenURL(srv.URL+"/oauth/v2/token"))

	teams, matches, err := c.Tournament(context.Background(), "77")
	require.NoError(t, err)

	assert.Equal(t, []domain.TournamentTeam{
		{ID: "10", Name: "Orange", ReplayTeam: "ORANGE ESPORTS"},
		{ID: "20", Name: "Blue", ReplayTeam: "Blue"},
	}, teams)

	require.Len(t, matches, 2)
	assert.Equal(t, "completed", matches[0].Status)
	require.NotNil(t, matches[0].ScheduledAt)
	require.Len(t, matches[0].Opponents, 2)
	assert.Equal(t, domain.TeamID("20"), matches[0].Opponents[1].TeamID)
	assert.Equal(t, 3.0, *matches[0].Opponents[0].Score)

	assert.Nil(t, matches[1].ScheduledAt)
	assert.Empty(t, matches[1].Opponents[0].TeamID)
	assert.Nil(t, matches[1].Opponents[0].Score)

	assert.Equal(t, int32(1), atomic.LoadInt32(&tokens), "token reused across requests")
}

func TestClient_APIError(t *testing.T) {
	var tokens int32
	srv := fakeToornament(t, &tokens)
	c := New(Credentials{APIKey: "wrong", ClientID: "cid", ClientSecret: "secret"},
		WithBaseURL(srv.URL+"/organizer/v2"), WithTokenURL(srv.URL+"/oauth/v2/token"))

	_, err := c.Participants(context.Background(), "77")

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusUnauthorized, apiErr.Status)
}
