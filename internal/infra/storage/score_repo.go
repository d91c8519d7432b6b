package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/jose-valero/match-scoreboard/internal/domain"
)

type statsRow struct {
	TeamID     string  `db:"team_id"`
	TeamName   string  `db:"team_name"`
	PlayerName string  `db:"player_name"`
	Goals      float64 `db:"goals"`
	Shots      float64 `db:"shots"`
	Assists    float64 `db:"assists"`
	Saves      float64 `db:"saves"`
	Demos      float64 `db:"demos"`
	Score      float64 `db:"score"`
}

type ScoreRepo struct{ db *sqlx.DB }

func NewScoreRepo(db *sqlx.DB) *ScoreRepo { return &ScoreRepo{db: db} }

// PlayerStats: acumulados crudos, ordenados por score desc.
func (r *ScoreRepo) PlayerStats(ctx context.Context) ([]domain.PlayerStats, error) {
	var rows []statsRow
	err := r.db.SelectContext(ctx, &rows, `
SELECT p.team_id, t.name AS team_name, p.player_name,
       p.goals, p.shots, p.assists, p.saves, p.demos, p.score
  FROM player_scores p
  JOIN teams t ON t.id = p.team_id
 ORDER BY p.score DESC, p.player_name
`)
	if err != nil {
		return nil, err
	}
	out := make([]domain.PlayerStats, 0, len(rows))
	for _, row := range rows {
		out = append(out, domain.PlayerStats{
			TeamID:     domain.TeamID(row.TeamID),
			TeamName:   row.TeamName,
			PlayerName: row.PlayerName,
			Goals:      row.Goals,
			Shots:      row.Shots,
			Assists:    row.Assists,
			Saves:      row.Saves,
			Demos:      row.Demos,
			Score:      row.Score,
		})
	}
	return out, nil
}

// PlayerScores = PlayerStats normalizados a parámetros 0..100.
func (r *ScoreRepo) PlayerScores(ctx context.Context) ([]domain.PlayerScore, error) {
	stats, err := r.PlayerStats(ctx)
	if err != nil {
		return nil, err
	}
	return domain.ScoreParameters(stats), nil
}

// UpsertPlayerStats por (team_id, player_name).
func (r *ScoreRepo) UpsertPlayerStats(ctx context.Context, st domain.PlayerStats) error {
	var one int
	err := r.db.GetContext(ctx, &one, r.db.Rebind(`SELECT 1 FROM teams WHERE id = ?`), string(st.TeamID))
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%w: %s", ErrUnknownTeam, st.TeamID)
	}
	if err != nil {
		return err
	}

	_, err = r.db.ExecContext(ctx, r.db.Rebind(upsertStatsSQL), statsArgs(st)...)
	return err
}

const upsertStatsSQL = `
INSERT INTO player_scores (team_id, player_name, goals, shots, assists, saves, demos, score, updated_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, CURRENT_TIMESTAMP)
ON CONFLICT (team_id, player_name) DO UPDATE SET
  goals      = excluded.goals,
  shots      = excluded.shots,
  assists    = excluded.assists,
  saves      = excluded.saves,
  demos      = excluded.demos,
  score      = excluded.score,
  updated_at = CURRENT_TIMESTAMP
`

func statsArgs(st domain.PlayerStats) []any {
	return []any{string(st.TeamID), st.PlayerName, st.Goals, st.Shots, st.Assists, st.Saves, st.Demos, st.Score}
}

// ReplaceAllTx vacía player_scores y carga stats dentro de tx (import de replays).
func (r *ScoreRepo) ReplaceAllTx(ctx context.Context, tx *sqlx.Tx, stats []domain.PlayerStats) error {
	if _, err := tx.ExecContext(ctx, `DELETE FROM player_scores`); err != nil {
		return err
	}
	q := tx.Rebind(upsertStatsSQL)
	for _, st := range stats {
		if _, err := tx.ExecContext(ctx, q, statsArgs(st)...); err != nil {
			return fmt.Errorf("score %s: %w", st.PlayerName, err)
		}
	}
	return nil
}

// PruneStale borra los acumulados que no se tocan desde before (fin de temporada).
func (r *ScoreRepo) PruneStale(ctx context.Context, before time.Time) (int64, error) {
	res, err := r.db.ExecContext(ctx, r.db.Rebind(`DELETE FROM player_scores WHERE updated_at < ?`), before.UTC())
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
