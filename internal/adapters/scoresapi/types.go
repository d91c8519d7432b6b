package scoresapi

import (
	"strings"

	"github.com/jose-valero/match-scoreboard/internal/domain"
)

// Los slices quedan en nil si el campo no vino (o vino null); [] vacío es "presente".

// --- GET /teams ---
type TeamsResponse struct {
	Teams []domain.Team `json:"teams"`
}

func (r TeamsResponse) HasTeams() bool { return r.Teams != nil }

// --- GET /streaming_match ---
type StreamingMatchResponse struct {
	Teams []domain.MatchTeamSlot `json:"teams"`
}

func (r StreamingMatchResponse) HasTeams() bool { return r.Teams != nil }

// --- POST /streaming_match ---
type SaveResponse struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}

const StatusSuccess = "success"

func (r SaveResponse) Succeeded() bool { return r.Status == StatusSuccess }

// --- GET /scores_all ---
type ScoresResponse struct {
	Scores []domain.PlayerScore `json:"scores"`
}

func (r ScoresResponse) HasScores() bool { return r.Scores != nil }

// --- GET /scores_by_days ---
type DayScoresResponse struct {
	Scores []domain.DayScore `json:"scores"`
}

// --- /init_db, GET /import_tasks/{id} ---

// ImportStartedResponse: respuesta 202 de /init_db.
type ImportStartedResponse struct {
	InitDB string `json:"init_db"`
	TaskID string `json:"task_id"`
}

type ImportStatusResponse struct {
	TaskID   string              `json:"task_id"`
	Statuses []domain.ImportTask `json:"statuses"`
}

// Done: el último estado es "ended" o "error" del último paso.
func (r ImportStatusResponse) Done() bool {
	if len(r.Statuses) == 0 {
		return false
	}
	last := r.Statuses[len(r.Statuses)-1].Status
	return strings.Contains(last, "init_db error") || strings.HasPrefix(last, "ballchasing init_db ended")
}

func (r ImportStatusResponse) Failed() bool {
	return len(r.Statuses) > 0 && strings.Contains(r.Statuses[len(r.Statuses)-1].Status, "init_db error")
}
