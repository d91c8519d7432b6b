package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/jose-valero/match-scoreboard/internal/domain"
)

// ErrNoRootGroup: el import de replays necesita el grupo raíz (el de la temporada).
var ErrNoRootGroup = errors.New("replay import sin grupo raíz")

type ImportRepo struct {
	db     *sqlx.DB
	scores *ScoreRepo
}

func NewImportRepo(db *sqlx.DB) *ImportRepo { return &ImportRepo{db: db, scores: NewScoreRepo(db)} }

// ReplaceTournament: upsert de equipos (conserva los slots y scores que los referencian)
// y reemplazo completo de partidos y oponentes.
func (r *ImportRepo) ReplaceTournament(ctx context.Context, teams []domain.TournamentTeam, matches []domain.TournamentMatch) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	upsert := tx.Rebind(`
INSERT INTO teams (id, name, replay_team) VALUES (?, ?, ?)
ON CONFLICT (id) DO UPDATE SET name = excluded.name, replay_team = excluded.replay_team
`)
	for _, t := range teams {
		if _, err := tx.ExecContext(ctx, upsert, string(t.ID), t.Name, nullString(t.ReplayTeam)); err != nil {
			return fmt.Errorf("team %s: %w", t.ID, err)
		}
	}

	for _, q := range []string{`DELETE FROM match_opponents`, `DELETE FROM tournament_matches`} {
		if _, err := tx.ExecContext(ctx, q); err != nil {
			return err
		}
	}

	insMatch := tx.Rebind(`
INSERT INTO tournament_matches (id, stage_id, group_id, round_id, number, status, scheduled_at)
VALUES (?, ?, ?, ?, ?, ?, ?)
`)
	insOpp := tx.Rebind(`
INSERT INTO match_opponents (match_id, number, team_id, result, score, forfeit)
VALUES (?, ?, ?, ?, ?, ?)
`)
	for _, m := range matches {
		var at any
		if m.ScheduledAt != nil {
			at = m.ScheduledAt.UTC()
		}
		if _, err := tx.ExecContext(ctx, insMatch, m.ID, m.StageID, m.GroupID, m.RoundID, m.Number, m.Status, at); err != nil {
			return fmt.Errorf("match %s: %w", m.ID, err)
		}
		for _, op := range m.Opponents {
			var score any
			if op.Score != nil {
				score = *op.Score
			}
			if _, err := tx.ExecContext(ctx, insOpp, m.ID, op.Number, nullString(string(op.TeamID)), op.Result, score, op.Forfeit); err != nil {
				return fmt.Errorf("match %s opponent %d: %w", m.ID, op.Number, err)
			}
		}
	}
	return tx.Commit()
}

type matchRow struct {
	ID          string     `db:"id"`
	StageID     string     `db:"stage_id"`
	GroupID     string     `db:"group_id"`
	RoundID     string     `db:"round_id"`
	Number      int        `db:"number"`
	Status      string     `db:"status"`
	ScheduledAt *time.Time `db:"scheduled_at"`
}

type opponentRow struct {
	MatchID string   `db:"match_id"`
	Number  int      `db:"number"`
	TeamID  *string  `db:"team_id"`
	Result  string   `db:"result"`
	Score   *float64 `db:"score"`
	Forfeit bool     `db:"forfeit"`
}

// TournamentMatches en orden de número de partido.
func (r *ImportRepo) TournamentMatches(ctx context.Context) ([]domain.TournamentMatch, error) {
	var ms []matchRow
	if err := r.db.SelectContext(ctx, &ms, `
SELECT id, stage_id, group_id, round_id, number, status, scheduled_at
  FROM tournament_matches
 ORDER BY number, id
`); err != nil {
		return nil, err
	}
	var ops []opponentRow
	if err := r.db.SelectContext(ctx, &ops, `
SELECT match_id, number, team_id, result, score, forfeit
  FROM match_opponents
 ORDER BY match_id, number
`); err != nil {
		return nil, err
	}

	byMatch := map[string][]domain.MatchOpponent{}
	for _, o := range ops {
		mo := domain.MatchOpponent{Number: o.Number, Result: o.Result, Score: o.Score, Forfeit: o.Forfeit}
		if o.TeamID != nil {
			mo.TeamID = domain.TeamID(*o.TeamID)
		}
		byMatch[o.MatchID] = append(byMatch[o.MatchID], mo)
	}

	out := make([]domain.TournamentMatch, 0, len(ms))
	for _, m := range ms {
		out = append(out, domain.TournamentMatch{
			ID:          m.ID,
			StageID:     m.StageID,
			GroupID:     m.GroupID,
			RoundID:     m.RoundID,
			Number:      m.Number,
			Status:      m.Status,
			ScheduledAt: m.ScheduledAt,
			Opponents:   byMatch[m.ID],
		})
	}
	return out, nil
}

type replayTeamRow struct {
	ID         string  `db:"id"`
	Name       string  `db:"name"`
	ReplayTeam *string `db:"replay_team"`
}

// ReplaceReplayStats reemplaza grupos y acumulados en una sola transacción y
// vuelve a llenar player_scores con los jugadores del grupo raíz.
// Un jugador se asigna al equipo cuyo replay_team (o nombre) coincide con su equipo en el replay.
func (r *ImportRepo) ReplaceReplayStats(ctx context.Context, groups []domain.ReplayGroup) (domain.ReplayImportResult, error) {
	var res domain.ReplayImportResult
	root := -1
	for i, g := range groups {
		if g.ParentID == "" {
			root = i
			break
		}
	}
	if root < 0 {
		return res, ErrNoRootGroup
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return res, err
	}
	defer func() { _ = tx.Rollback() }()

	for _, q := range []string{`DELETE FROM replay_player_stats`, `DELETE FROM replay_groups`} {
		if _, err := tx.ExecContext(ctx, q); err != nil {
			return res, err
		}
	}

	insGroup := tx.Rebind(`INSERT INTO replay_groups (id, name, parent_id, created) VALUES (?, ?, ?, ?)`)
	insStats := tx.Rebind(`
INSERT INTO replay_player_stats (
  group_id, player_id, player_name, replay_team, games, wins, win_percentage, score,
  goals, shots, shooting_percentage, assists, saves, mvp, demos_inflicted, demos_taken
) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
`)
	for _, g := range groups {
		if _, err := tx.ExecContext(ctx, insGroup, g.ID, g.Name, nullString(g.ParentID), g.Created.UTC()); err != nil {
			return res, fmt.Errorf("group %s: %w", g.ID, err)
		}
		for _, p := range g.Players {
			if _, err := tx.ExecContext(ctx, insStats,
				g.ID, p.PlatformID, p.Name, p.ReplayTeam, p.Games, p.Wins, p.WinPercentage, p.Score,
				p.Goals, p.Shots, p.ShootingPercentage, p.Assists, p.Saves, p.MVP, p.DemosInflicted, p.DemosTaken,
			); err != nil {
				return res, fmt.Errorf("group %s player %s: %w", g.ID, p.Name, err)
			}
			res.Players++
		}
		res.Groups++
	}

	teams, err := replayTeamIndex(ctx, tx)
	if err != nil {
		return res, err
	}
	stats := make([]domain.PlayerStats, 0, len(groups[root].Players))
	for _, p := range groups[root].Players {
		teamID, ok := teams[teamKey(p.ReplayTeam)]
		if !ok {
			res.Unmatched = append(res.Unmatched, p.Name+" ("+p.ReplayTeam+")")
			continue
		}
		// demos = demos recibidas, como en el ranking de la liga
		stats = append(stats, domain.PlayerStats{
			TeamID:     domain.TeamID(teamID),
			PlayerName: p.Name,
			Goals:      p.Goals,
			Shots:      p.Shots,
			Assists:    p.Assists,
			Saves:      p.Saves,
			Demos:      p.DemosTaken,
			Score:      p.Score,
		})
	}
	if err := r.scores.ReplaceAllTx(ctx, tx, stats); err != nil {
		return res, err
	}
	res.Scored = len(stats)
	return res, tx.Commit()
}

// replayTeamIndex: replay_team gana sobre el nombre si los dos coinciden con equipos distintos.
func replayTeamIndex(ctx context.Context, tx *sqlx.Tx) (map[string]string, error) {
	var rows []replayTeamRow
	if err := tx.SelectContext(ctx, &rows, `SELECT id, name, replay_team FROM teams`); err != nil {
		return nil, err
	}
	idx := make(map[string]string, len(rows)*2)
	for _, row := range rows {
		if _, taken := idx[teamKey(row.Name)]; !taken {
			idx[teamKey(row.Name)] = row.ID
		}
	}
	for _, row := range rows {
		if row.ReplayTeam != nil && *row.ReplayTeam != "" {
			idx[teamKey(*row.ReplayTeam)] = row.ID
		}
	}
	return idx, nil
}

func teamKey(s string) string { return strings.ToLower(strings.TrimSpace(s)) }

type dayScoreRow struct {
	GroupName          string    `db:"group_name"`
	PlayerName         string    `db:"player_name"`
	Wins               float64   `db:"wins"`
	Score              float64   `db:"score"`
	Goals              float64   `db:"goals"`
	Shots              float64   `db:"shots"`
	ShootingPercentage float64   `db:"shooting_percentage"`
	Assists            float64   `db:"assists"`
	Saves              float64   `db:"saves"`
	GroupCreated       time.Time `db:"group_created"`
}

// ScoresByDays: acumulados de los grupos hijos (un grupo por día), por fecha y después score desc.
func (r *ImportRepo) ScoresByDays(ctx context.Context) ([]domain.DayScore, error) {
	var rows []dayScoreRow
	err := r.db.SelectContext(ctx, &rows, `
SELECT g.name AS group_name, s.player_name, s.wins, s.score, s.goals, s.shots,
       s.shooting_percentage, s.assists, s.saves, g.created AS group_created
  FROM replay_player_stats s
  JOIN replay_groups g ON g.id = s.group_id
 WHERE g.parent_id IS NOT NULL
 ORDER BY g.created, s.score DESC, s.player_name
`)
	if err != nil {
		return nil, err
	}
	out := make([]domain.DayScore, 0, len(rows))
	for _, row := range rows {
		out = append(out, domain.DayScore(row))
	}
	return out, nil
}

// AppendTaskStatus agrega un estado al historial de la tarea.
func (r *ImportRepo) AppendTaskStatus(ctx context.Context, taskID, status string) error {
	_, err := r.db.ExecContext(ctx, r.db.Rebind(`
INSERT INTO import_tasks (task_id, seq, status, created_at)
VALUES (?, (SELECT COALESCE(MAX(seq), 0) + 1 FROM import_tasks WHERE task_id = ?), ?, ?)
`), taskID, taskID, status, time.Now().UTC())
	return err
}

type taskRow struct {
	TaskID    string    `db:"task_id"`
	Status    string    `db:"status"`
	CreatedAt time.Time `db:"created_at"`
}

func (r *ImportRepo) TaskStatuses(ctx context.Context, taskID string) ([]domain.ImportTask, error) {
	var rows []taskRow
	err := r.db.SelectContext(ctx, &rows, r.db.Rebind(`
SELECT task_id, status, created_at FROM import_tasks WHERE task_id = ? ORDER BY seq
`), taskID)
	if err != nil {
		return nil, err
	}
	out := make([]domain.ImportTask, 0, len(rows))
	for _, row := range rows {
		out = append(out, domain.ImportTask(row))
	}
	return out, nil
}

func nullString(s string) any {
	if s == "" {
		return nil
	}
	return s
}
