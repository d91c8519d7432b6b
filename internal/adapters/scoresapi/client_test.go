package scoresapi

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jose-valero/match-scoreboard/internal/domain"
)

func newTestClient(t *testing.T, h http.HandlerFunc, opts ...Option) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return New(srv.URL+"/", opts...)
}

func TestClient_Get_AppendsQuery(t *testing.T) {
	var gotPath, gotQuery, gotReqID string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.RawQuery
		gotReqID = r.Header.Get("X-Request-ID")
		_, _ = w.Write([]byte(`{"ok":true}`))
	})

	var out struct {
		OK bool `json:"ok"`
	}
	err := c.Get(context.Background(), "/teams", url.Values{"season": {"2"}}, &out)
	require.NoError(t, err)

	assert.True(t, out.OK)
	assert.Equal(t, "/teams", gotPath)
	assert.Equal(t, "season=2", gotQuery)
	assert.NotEmpty(t, gotReqID)
}

func TestClient_Get_NoParamsNoQuestionMark(t *testing.T) {
	var rawURI string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		rawURI = r.RequestURI
		_, _ = w.Write([]byte(`{}`))
	})

	require.NoError(t, c.Get(context.Background(), "/scores_all", nil, &struct{}{}))
	assert.Equal(t, "/scores_all", rawURI)
}

func TestClient_Post_SendsJSON(t *testing.T) {
	var (
		gotMethod, gotCT string
		gotBody          []byte
	)
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotCT = r.Header.Get("Content-Type")
		gotBody, _ = io.ReadAll(r.Body)
		_, _ = w.Write([]byte(`{"status":"success"}`))
	})

	res, err := c.SaveStreamingMatch(context.Background(), domain.NewAssignments("5", "9"))
	require.NoError(t, err)

	assert.True(t, res.Succeeded())
	assert.Equal(t, http.MethodPost, gotMethod)
	assert.Equal(t, "application/json", gotCT)
	assert.JSONEq(t, `[{"position":1,"id":"5"},{"position":2,"id":"9"}]`, string(gotBody))
}

func TestClient_RequestIDFromContext(t *testing.T) {
	type key struct{}
	var got string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Get("X-Request-ID")
		_, _ = w.Write([]byte(`{"teams":[]}`))
	}, WithRequestIDFunc(func(ctx context.Context) string {
		s, _ := ctx.Value(key{}).(string)
		return s
	}))

	ctx := context.WithValue(context.Background(), key{}, "req-123")
	_, err := c.ListTeams(ctx)
	require.NoError(t, err)
	assert.Equal(t, "req-123", got)
}

func TestClient_NonSuccessStatus(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusBadGateway)
	})

	_, err := c.ListScores(context.Background())

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr), "got %v", err)
	assert.Equal(t, http.StatusBadGateway, apiErr.Status)
	assert.Equal(t, "boom", apiErr.Body)
}

func TestClient_MalformedBody(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`<html>not json</html>`))
	})

	_, err := c.GetStreamingMatch(context.Background())
	assert.Error(t, err)
}

func TestClient_TypedEndpoints(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/teams", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"teams":[{"id":1,"name":"Blue"},{"id":"2","name":"Orange"}]}`))
	})
	mux.HandleFunc("/streaming_match", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"teams":[{"position":1,"team_id":2,"team_name":"Orange"}]}`))
	})
	mux.HandleFunc("/scores_all", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{}`))
	})
	c := newTestClient(t, mux.ServeHTTP)
	ctx := context.Background()

	teams, err := c.ListTeams(ctx)
	require.NoError(t, err)
	assert.True(t, teams.HasTeams())
	assert.Equal(t, []domain.Team{{ID: "1", Name: "Blue"}, {ID: "2", Name: "Orange"}}, teams.Teams)

	match, err := c.GetStreamingMatch(ctx)
	require.NoError(t, err)
	require.Len(t, match.Teams, 1)
	assert.Equal(t, domain.PositionHome, match.Teams[0].Position)
	assert.Equal(t, domain.TeamID("2"), match.Teams[0].TeamID)

	scores, err := c.ListScores(ctx)
	require.NoError(t, err)
	assert.False(t, scores.HasScores())
}

func TestResponses_PresenceVsEmpty(t *testing.T) {
	var empty, absent, null TeamsResponse
	require.NoError(t, json.Unmarshal([]byte(`{"teams":[]}`), &empty))
	require.NoError(t, json.Unmarshal([]byte(`{}`), &absent))
	require.NoError(t, json.Unmarshal([]byte(`{"teams":null}`), &null))

	assert.True(t, empty.HasTeams())
	assert.False(t, absent.HasTeams())
	assert.False(t, null.HasTeams())
}

func TestSaveResponse_Succeeded(t *testing.T) {
	assert.True(t, SaveResponse{Status: "success"}.Succeeded())
	assert.False(t, SaveResponse{Status: "error"}.Succeeded())
	assert.False(t, SaveResponse{Status: "Success"}.Succeeded())
	assert.False(t, SaveResponse{}.Succeeded())
}

func TestAPIError_HasJSONBody(t *testing.T) {
	assert.True(t, (&APIError{Status: 500, Body: ` {"detail":"x"} `}).HasJSONBody())
	assert.False(t, (&APIError{Status: 500, Body: `boom`}).HasJSONBody())
	assert.False(t, (&APIError{Status: 500, Body: `{"detail":`}).HasJSONBody())
	assert.False(t, (&APIError{Status: 500, Body: `[]`}).HasJSONBody())
}

func TestClient_StartImport_Paths(t *testing.T) {
	var paths []string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		paths = append(paths, r.URL.Path)
		w.WriteHeader(http.StatusAccepted)
		_, _ = w.Write([]byte(`{"init_db":"started","task_id":"t-1"}`))
	})

	res, err := c.StartImport(context.Background(), "", "season-1")
	require.NoError(t, err)
	assert.Equal(t, "t-1", res.TaskID)

	_, err = c.StartImport(context.Background(), "77", "season-1")
	require.NoError(t, err)

	assert.Equal(t, []string{"/init_db/season-1", "/init_db/77/season-1"}, paths)
}

func TestImportStatusResponse_DoneAndFailed(t *testing.T) {
	st := func(s ...string) ImportStatusResponse {
		r := ImportStatusResponse{}
		for _, x := range s {
			r.Statuses = append(r.Statuses, domain.ImportTask{Status: x})
		}
		return r
	}

	assert.False(t, st().Done())
	assert.False(t, st("toornament init_db started", "toornament init_db ended").Done())
	assert.True(t, st("ballchasing init_db started", "ballchasing init_db ended").Done())
	assert.False(t, st("ballchasing init_db started", "ballchasing init_db ended").Failed())

	failed := st("toornament init_db started", "toornament init_db error: boom")
	assert.True(t, failed.Done())
	assert.True(t, failed.Failed())
}

func TestClient_ScoresByDays(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/scores_by_days", r.URL.Path)
		_, _ = w.Write([]byte(`{"scores":[{"group_name":"Day 1","player_name":"OLPiX","wins":2,"score":1200,"group_created":"2021-03-01T12:00:00Z"}]}`))
	})

	res, err := c.ScoresByDays(context.Background())
	require.NoError(t, err)
	require.Len(t, res.Scores, 1)
	assert.Equal(t, "Day 1", res.Scores[0].GroupName)
	assert.Equal(t, 1200.0, res.Scores[0].Score)
}
