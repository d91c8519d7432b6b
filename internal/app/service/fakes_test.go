package service

import (
	"context"
	"sync"

	"github.com/jose-valero/match-scoreboard/internal/adapters/scoresapi"
	"github.com/jose-valero/match-scoreboard/internal/domain"
)

// fakeScoresAPI: ScoresAPI en memoria para los tests de servicios
type fakeScoresAPI struct {
	mu sync.Mutex

	teams  scoresapi.TeamsResponse
	match  scoresapi.StreamingMatchResponse
	scores scoresapi.ScoresResponse
	save   scoresapi.SaveResponse

	errOnTeams  error
	errOnMatch  error
	errOnScores error
	errOnSave   error

	// para verificar llamadas
	matchCalls int
	lastSaved  []domain.SlotAssignment
}

func (f *fakeScoresAPI) ListTeams(ctx context.Context) (scoresapi.TeamsResponse, error) {
	return f.teams, f.errOnTeams
}

func (f *fakeScoresAPI) GetStreamingMatch(ctx context.Context) (scoresapi.StreamingMatchResponse, error) {
	f.mu.Lock()
	f.matchCalls++
	f.mu.Unlock()
	return f.match, f.errOnMatch
}

func (f *fakeScoresAPI) SaveStreamingMatch(ctx context.Context, slots []domain.SlotAssignment) (scoresapi.SaveResponse, error) {
	f.mu.Lock()
	f.lastSaved = append([]domain.SlotAssignment(nil), slots...)
	f.mu.Unlock()
	return f.save, f.errOnSave
}

func (f *fakeScoresAPI) ListScores(ctx context.Context) (scoresapi.ScoresResponse, error) {
	return f.scores, f.errOnScores
}

type fakeAnnouncer struct {
	calls      int
	home, away domain.Team
	err        error
}

func (a *fakeAnnouncer) AnnounceMatch(ctx context.Context, home, away domain.Team) error {
	a.calls++
	a.home, a.away = home, away
	return a.err
}
