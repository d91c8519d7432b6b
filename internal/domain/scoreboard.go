package domain

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
)

// TeamID viaja como string ("5") o como número (5) según quién lo mande;
// siempre lo serializamos como string.
type TeamID string

func (id TeamID) String() string { return string(id) }

func (id *TeamID) UnmarshalJSON(b []byte) error {
	s, err := looseScalar(b)
	if err != nil {
		return fmt.Errorf("team id: %w", err)
	}
	*id = TeamID(s)
	return nil
}

// Position: 1 = Team A (home), 2 = Team B (away).
type Position int

const (
	PositionHome Position = 1
	PositionAway Position = 2
)

func (p Position) Valid() bool { return p == PositionHome || p == PositionAway }

func (p *Position) UnmarshalJSON(b []byte) error {
	s, err := looseScalar(b)
	if err != nil {
		return fmt.Errorf("position: %w", err)
	}
	if s == "" {
		*p = 0
		return nil
	}
	// 1, "1", 1.0 y "1.0" valen lo mismo; 1.5 no es una posición
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return fmt.Errorf("position %q: %w", s, err)
	}
	if f != math.Trunc(f) || math.IsInf(f, 0) {
		return fmt.Errorf("position %q: no es entero", s)
	}
	*p = Position(int(f))
	return nil
}

type Team struct {
	ID   TeamID `json:"id"`
	Name string `json:"name"`
}

// MatchTeamSlot es lo que devuelve GET /streaming_match.
type MatchTeamSlot struct {
	Position Position `json:"position"`
	TeamID   TeamID   `json:"team_id"`
	TeamName string   `json:"team_name"`
}

// SlotAssignment es el cuerpo de POST /streaming_match (un item por posición).
type SlotAssignment struct {
	Position Position `json:"position"`
	ID       TeamID   `json:"id"`
}

var ErrInvalidSlots = errors.New("invalid match slots")

// SlotAt devuelve el primer slot con esa posición.
func SlotAt(slots []MatchTeamSlot, p Position) (MatchTeamSlot, bool) {
	for _, s := range slots {
		if s.Position == p {
			return s, true
		}
	}
	return MatchTeamSlot{}, false
}

// NewAssignments arma el body de guardado: posición 1 <- team1, posición 2 <- team2.
func NewAssignments(team1, team2 TeamID) []SlotAssignment {
	return []SlotAssignment{
		{Position: PositionHome, ID: team1},
		{Position: PositionAway, ID: team2},
	}
}

// ValidateAssignments chequea posiciones en {1,2}, sin repetir, con id no vacío.
func ValidateAssignments(as []SlotAssignment) error {
	if len(as) == 0 {
		return fmt.Errorf("%w: empty", ErrInvalidSlots)
	}
	seen := map[Position]bool{}
	for _, a := range as {
		if !a.Position.Valid() {
			return fmt.Errorf("%w: position %d", ErrInvalidSlots, a.Position)
		}
		if seen[a.Position] {
			return fmt.Errorf("%w: duplicated position %d", ErrInvalidSlots, a.Position)
		}
		if a.ID == "" {
			return fmt.Errorf("%w: position %d without team", ErrInvalidSlots, a.Position)
		}
		seen[a.Position] = true
	}
	return nil
}

// looseScalar acepta "abc", 123 o null y devuelve el texto.
func looseScalar(b []byte) (string, error) {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		return "", nil
	}
	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return "", err
		}
		return s, nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return "", err
	}
	return n.String(), nil
}
