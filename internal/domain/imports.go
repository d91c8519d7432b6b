package domain

import "time"

// ReplayGroup: un grupo de replays con los acumulados por jugador.
// ParentID vacío = grupo raíz (la temporada); los hijos son los días.
type ReplayGroup struct {
	ID       string
	Name     string
	ParentID string
	Created  time.Time
	Players  []ReplayPlayer
}

// ReplayPlayer: acumulados de un jugador dentro de un grupo.
// ReplayTeam es el nombre del equipo tal como figura en los replays.
type ReplayPlayer struct {
	PlatformID         string
	Name               string
	ReplayTeam         string
	Games              float64
	Wins               float64
	WinPercentage      float64
	Score              float64
	Goals              float64
	Shots              float64
	ShootingPercentage float64
	Assists            float64
	Saves              float64
	MVP                float64
	DemosInflicted     float64
	DemosTaken         float64
}

// ReplayImportResult resume lo que quedó en player_scores después de un import.
// Unmatched: jugadores del grupo raíz cuyo equipo no se pudo asociar.
type ReplayImportResult struct {
	Groups    int      `json:"groups"`
	Players   int      `json:"players"`
	Scored    int      `json:"scored"`
	Unmatched []string `json:"unmatched,omitempty"`
}

// DayScore: una fila de GET /scores_by_days.
type DayScore struct {
	GroupName          string    `json:"group_name"`
	PlayerName         string    `json:"player_name"`
	Wins               float64   `json:"wins"`
	Score              float64   `json:"score"`
	Goals              float64   `json:"goals"`
	Shots              float64   `json:"shots"`
	ShootingPercentage float64   `json:"shooting_percentage"`
	Assists            float64   `json:"assists"`
	Saves              float64   `json:"saves"`
	GroupCreated       time.Time `json:"group_created"`
}

// TournamentTeam: participante del torneo. ReplayTeam lo liga con los replays.
type TournamentTeam struct {
	ID         TeamID
	Name       string
	ReplayTeam string
}

type MatchOpponent struct {
	Number  int
	TeamID  TeamID
	Result  string
	Score   *float64
	Forfeit bool
}

type TournamentMatch struct {
	ID          string
	StageID     string
	GroupID     string
	RoundID     string
	Number      int
	Status      string
	ScheduledAt *time.Time
	Opponents   []MatchOpponent
}

// ImportTask: cada cambio de estado de un import en background queda como fila.
type ImportTask struct {
	TaskID    string    `json:"task_id"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}
