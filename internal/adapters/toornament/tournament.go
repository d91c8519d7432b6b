package toornament

import (
	"context"
	"strings"
	"time"

	"github.com/jose-valero/match-scoreboard/internal/domain"
)

type Participant struct {
	ID                   string `json:"id"`
	Name                 string `json:"name"`
	CustomUserIdentifier string `json:"custom_user_identifier"`
}

type Opponent struct {
	Number      int          `json:"number"`
	Position    int          `json:"position"`
	Result      string       `json:"result"`
	Rank        *int         `json:"rank"`
	Forfeit     bool         `json:"forfeit"`
	Score       *float64     `json:"score"`
	Participant *Participant `json:"participant"`
}

type Match struct {
	ID                string     `json:"id"`
	Status            string     `json:"status"`
	StageID           string     `json:"stage_id"`
	GroupID           string     `json:"group_id"`
	RoundID           string     `json:"round_id"`
	Number            int        `json:"number"`
	ScheduledDatetime *time.Time `json:"scheduled_datetime"`
	Opponents         []Opponent `json:"opponents"`
}

func (c *Client) Participants(ctx context.Context, tournamentID string) ([]Participant, error) {
	var out []Participant
	err := c.getJSON(ctx, tournamentPath(tournamentID, "/participants"), "participants=0-49", &out)
	return out, err
}

func (c *Client) Matches(ctx context.Context, tournamentID string) ([]Match, error) {
	var out []Match
	err := c.getJSON(ctx, tournamentPath(tournamentID, "/matches"), "matches=0-99", &out)
	return out, err
}

// Tournament junta participantes y partidos en tipos del dominio.
// custom_user_identifier, si viene, es el nombre del equipo en los replays.
func (c *Client) Tournament(ctx context.Context, tournamentID string) ([]domain.TournamentTeam, []domain.TournamentMatch, error) {
	parts, err := c.Participants(ctx, tournamentID)
	if err != nil {
		return nil, nil, err
	}
	matches, err := c.Matches(ctx, tournamentID)
	if err != nil {
		return nil, nil, err
	}

	teams := make([]domain.TournamentTeam, 0, len(parts))
	for _, p := range parts {
		replay := strings.TrimSpace(p.CustomUserIdentifier)
		if replay == "" {
			replay = p.Name
		}
		teams = append(teams, domain.TournamentTeam{ID: domain.TeamID(p.ID), Name: p.Name, ReplayTeam: replay})
	}

	out := make([]domain.TournamentMatch, 0, len(matches))
	for _, m := range matches {
		dm := domain.TournamentMatch{
			ID:          m.ID,
			StageID:     m.StageID,
			GroupID:     m.GroupID,
			RoundID:     m.RoundID,
			Number:      m.Number,
			Status:      m.Status,
			ScheduledAt: m.ScheduledDatetime,
		}
		for _, op := range m.Opponents {
			mo := domain.MatchOpponent{Number: op.Number, Result: op.Result, Score: op.Score, Forfeit: op.Forfeit}
			if op.Participant != nil {
				mo.TeamID = domain.TeamID(op.Participant.ID)
			}
			dm.Opponents = append(dm.Opponents, mo)
		}
		out = append(out, dm)
	}
	return teams, out, nil
}

func trimRight(u string) string { return strings.TrimRight(u, "/") }
