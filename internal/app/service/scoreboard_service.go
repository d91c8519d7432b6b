package service

import (
	"context"
	"errors"
	"fmt"
	"log"

	"golang.org/x/sync/errgroup"

	"github.com/jose-valero/match-scoreboard/internal/adapters/scoresapi"
	"github.com/jose-valero/match-scoreboard/internal/domain"
)

type ScoreboardService struct {
	api ScoresAPI
}

func NewScoreboardService(api ScoresAPI) *ScoreboardService {
	return &ScoreboardService{api: api}
}

// Build pide streaming_match y scores_all en paralelo (todo o nada).
// Devuelve (nil, nil) si falta algún campo esperado o alguno de los dos slots.
func (s *ScoreboardService) Build(ctx context.Context) (*domain.ChartViewModel, error) {
	var (
		match  scoresapi.StreamingMatchResponse
		scores scoresapi.ScoresResponse
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		match, err = s.api.GetStreamingMatch(gctx)
		if err != nil && !answeredWithoutData("streaming match", err) {
			return fmt.Errorf("streaming match: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		scores, err = s.api.ListScores(gctx)
		if err != nil && !answeredWithoutData("scores", err) {
			return fmt.Errorf("scores: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	if !match.HasTeams() || !scores.HasScores() {
		return nil, nil
	}

	team1, ok1 := domain.SlotAt(match.Teams, domain.PositionHome)
	team2, ok2 := domain.SlotAt(match.Teams, domain.PositionAway)
	if !ok1 || !ok2 {
		log.Printf("[board] streaming match incompleto (pos1=%v pos2=%v)", ok1, ok2)
		return nil, nil
	}

	return &domain.ChartViewModel{
		Team1: domain.TeamScores{
			Name:   team1.TeamName,
			Scores: domain.FilterScoresByTeam(scores.Scores, team1.TeamID),
		},
		Team2: domain.TeamScores{
			Name:   team2.TeamName,
			Scores: domain.FilterScoresByTeam(scores.Scores, team2.TeamID),
		},
	}, nil
}

// answeredWithoutData: un status de error con cuerpo JSON cuenta como "campo ausente"
// (el scoreboard se abandona sin mostrar error); sin cuerpo legible es una falla real.
func answeredWithoutData(what string, err error) bool {
	var apiErr *scoresapi.APIError
	if errors.As(err, &apiErr) && apiErr.HasJSONBody() {
		log.Printf("[board] %s respondió %d sin datos: %s", what, apiErr.Status, apiErr.Body)
		return true
	}
	return false
}

// Charts = Build + un radar por equipo. nil si no hay nada que dibujar.
func (s *ScoreboardService) Charts(ctx context.Context) (*ChartPair, error) {
	vm, err := s.Build(ctx)
	if err != nil || vm == nil {
		return nil, err
	}
	return &ChartPair{
		Team1: RadarChart(vm.Team1),
		Team2: RadarChart(vm.Team2),
	}, nil
}
