package storage

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/jose-valero/match-scoreboard/internal/domain"
)

type slotRow struct {
	Position int    `db:"position"`
	TeamID   string `db:"team_id"`
	TeamName string `db:"team_name"`
}

type MatchRepo struct{ db *sqlx.DB }

func NewMatchRepo(db *sqlx.DB) *MatchRepo { return &MatchRepo{db: db} }

func (r *MatchRepo) MatchSlots(ctx context.Context) ([]domain.MatchTeamSlot, error) {
	var rows []slotRow
	err := r.db.SelectContext(ctx, &rows, `
SELECT s.position, s.team_id, t.name AS team_name
  FROM streaming_match_slots s
  JOIN teams t ON t.id = s.team_id
 ORDER BY s.position
`)
	if err != nil {
		return nil, err
	}
	out := make([]domain.MatchTeamSlot, 0, len(rows))
	for _, row := range rows {
		out = append(out, domain.MatchTeamSlot{
			Position: domain.Position(row.Position),
			TeamID:   domain.TeamID(row.TeamID),
			TeamName: row.TeamName,
		})
	}
	return out, nil
}

// ReplaceMatchSlots escribe todos los slots en una sola transacción: o se guardan todos o ninguno.
func (r *MatchRepo) ReplaceMatchSlots(ctx context.Context, as []domain.SlotAssignment) error {
	if err := domain.ValidateAssignments(as); err != nil {
		return err
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if err := teamsExist(ctx, tx, as); err != nil {
		return err
	}

	upsert := tx.Rebind(`
INSERT INTO streaming_match_slots (position, team_id, updated_at)
VALUES (?, ?, CURRENT_TIMESTAMP)
ON CONFLICT (position) DO UPDATE SET
  team_id    = excluded.team_id,
  updated_at = CURRENT_TIMESTAMP
`)
	for _, a := range as {
		if _, err := tx.ExecContext(ctx, upsert, int(a.Position), string(a.ID)); err != nil {
			return fmt.Errorf("slot %d: %w", a.Position, err)
		}
	}
	return tx.Commit()
}

func teamsExist(ctx context.Context, tx *sqlx.Tx, as []domain.SlotAssignment) error {
	want := map[string]bool{}
	ids := make([]string, 0, len(as))
	for _, a := range as {
		if !want[string(a.ID)] {
			want[string(a.ID)] = true
			ids = append(ids, string(a.ID))
		}
	}

	q, args, err := sqlx.In(`SELECT id FROM teams WHERE id IN (?)`, ids)
	if err != nil {
		return err
	}
	var found []string
	if err := tx.SelectContext(ctx, &found, tx.Rebind(q), args...); err != nil {
		return err
	}
	for _, id := range found {
		delete(want, id)
	}
	for id := range want {
		return fmt.Errorf("%w: %s", ErrUnknownTeam, id)
	}
	return nil
}
