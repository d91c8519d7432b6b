package scoresapi

import (
	"context"
	"net/url"

	"github.com/jose-valero/match-scoreboard/internal/domain"
)

const (
	pathTeams          = "/teams"
	pathStreamingMatch = "/streaming_match"
	pathScoresAll      = "/scores_all"
)

func (c *Client) ListTeams(ctx context.Context) (TeamsResponse, error) {
	var dto TeamsResponse
	err := c.Get(ctx, pathTeams, nil, &dto)
	return dto, err
}

func (c *Client) GetStreamingMatch(ctx context.Context) (StreamingMatchResponse, error) {
	var dto StreamingMatchResponse
	err := c.Get(ctx, pathStreamingMatch, nil, &dto)
	return dto, err
}

// SaveStreamingMatch manda [{position, id}, ...] tal cual.
func (c *Client) SaveStreamingMatch(ctx context.Context, slots []domain.SlotAssignment) (SaveResponse, error) {
	var dto SaveResponse
	err := c.Post(ctx, pathStreamingMatch, slots, &dto)
	return dto, err
}

func (c *Client) ListScores(ctx context.Context) (ScoresResponse, error) {
	var dto ScoresResponse
	err := c.Get(ctx, pathScoresAll, nil, &dto)
	return dto, err
}

const pathScores = "/scores"

// UpsertTeam y UpsertPlayerStats sólo existen en el backend de referencia (cmd/scoreapi).
func (c *Client) UpsertTeam(ctx context.Context, t domain.Team) (SaveResponse, error) {
	var dto SaveResponse
	err := c.Post(ctx, pathTeams, t, &dto)
	return dto, err
}

func (c *Client) UpsertPlayerStats(ctx context.Context, st domain.PlayerStats) (SaveResponse, error) {
	var dto SaveResponse
	err := c.Post(ctx, pathScores, st, &dto)
	return dto, err
}

const (
	pathScoresByDays = "/scores_by_days"
	pathInitDB       = "/init_db/"
	pathImportTasks  = "/import_tasks/"
)

func (c *Client) ScoresByDays(ctx context.Context) (DayScoresResponse, error) {
	var dto DayScoresResponse
	err := c.Get(ctx, pathScoresByDays, nil, &dto)
	return dto, err
}

// StartImport pide /init_db/{group} o /init_db/{tournament}/{group} si hay torneo.
func (c *Client) StartImport(ctx context.Context, tournamentID, groupID string) (ImportStartedResponse, error) {
	path := pathInitDB + url.PathEscape(groupID)
	if tournamentID != "" {
		path = pathInitDB + url.PathEscape(tournamentID) + "/" + url.PathEscape(groupID)
	}
	var dto ImportStartedResponse
	err := c.Post(ctx, path, nil, &dto)
	return dto, err
}

func (c *Client) ImportStatus(ctx context.Context, taskID string) (ImportStatusResponse, error) {
	var dto ImportStatusResponse
	err := c.Get(ctx, pathImportTasks+url.PathEscape(taskID), nil, &dto)
	return dto, err
}
