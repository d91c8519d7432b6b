package storage

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/jose-valero/match-scoreboard/internal/domain"
)

type teamRow struct {
	ID   string `db:"id"`
	Name string `db:"name"`
}

type TeamRepo struct{ db *sqlx.DB }

func NewTeamRepo(db *sqlx.DB) *TeamRepo { return &TeamRepo{db: db} }

func (r *TeamRepo) ListTeams(ctx context.Context) ([]domain.Team, error) {
	var rows []teamRow
	if err := r.db.SelectContext(ctx, &rows, `SELECT id, name FROM teams ORDER BY name, id`); err != nil {
		return nil, err
	}
	out := make([]domain.Team, 0, len(rows))
	for _, row := range rows {
		out = append(out, domain.Team{ID: domain.TeamID(row.ID), Name: row.Name})
	}
	return out, nil
}

// UpsertTeam por id; actualiza el nombre si ya existe.
func (r *TeamRepo) UpsertTeam(ctx context.Context, t domain.Team) error {
	_, err := r.db.ExecContext(ctx, r.db.Rebind(`
INSERT INTO teams (id, name) VALUES (?, ?)
ON CONFLICT (id) DO UPDATE SET name = excluded.name
`), string(t.ID), t.Name)
	return err
}
