package service

import (
	"context"
	"fmt"
	"log"

	"github.com/jose-valero/match-scoreboard/internal/domain"
)

// Option es una entrada de los <select> team1/team2.
type Option struct {
	Value domain.TeamID
	Label string
}

// SetupForm: las mismas opciones alimentan ambos selects. Team1/Team2 vacíos = default.
type SetupForm struct {
	Options []Option
	Team1   domain.TeamID
	Team2   domain.TeamID
}

// SaveResult es cerrado: SaveSucceeded o SaveFailed.
type SaveResult interface{ isSaveResult() }

type SaveSucceeded struct{}

// SaveFailed: Status es lo que respondió el backend ("" si no hubo respuesta válida).
type SaveFailed struct {
	Status string
	Err    error
}

func (SaveSucceeded) isSaveResult() {}
func (SaveFailed) isSaveResult()    {}

func (f SaveFailed) Error() string {
	if f.Err != nil {
		return f.Err.Error()
	}
	return fmt.Sprintf("save rejected (status=%q)", f.Status)
}

type MatchSetupService struct {
	api      ScoresAPI
	announce Announcer
}

// NewMatchSetupService: announcer puede ser nil.
func NewMatchSetupService(api ScoresAPI, announce Announcer) *MatchSetupService {
	return &MatchSetupService{api: api, announce: announce}
}

// Load: teams -> opciones; después preselecciona según el streaming match actual.
func (s *MatchSetupService) Load(ctx context.Context) (SetupForm, error) {
	var form SetupForm

	teams, err := s.api.ListTeams(ctx)
	if err != nil {
		return form, fmt.Errorf("list teams: %w", err)
	}
	if !teams.HasTeams() {
		// sin "teams" no hay nada que preseleccionar
		return form, nil
	}
	form.Options = make([]Option, 0, len(teams.Teams))
	for _, t := range teams.Teams {
		form.Options = append(form.Options, Option{Value: t.ID, Label: t.Name})
	}

	match, err := s.api.GetStreamingMatch(ctx)
	if err != nil {
		return form, fmt.Errorf("streaming match: %w", err)
	}
	if !match.HasTeams() {
		return form, nil
	}
	if slot, ok := domain.SlotAt(match.Teams, domain.PositionHome); ok {
		form.Team1 = slot.TeamID
	}
	if slot, ok := domain.SlotAt(match.Teams, domain.PositionAway); ok {
		form.Team2 = slot.TeamID
	}
	return form, nil
}

// Save manda [{1, team1}, {2, team2}]. Sólo status == "success" cuenta como guardado.
func (s *MatchSetupService) Save(ctx context.Context, team1, team2 domain.TeamID) SaveResult {
	res, err := s.api.SaveStreamingMatch(ctx, domain.NewAssignments(team1, team2))
	if err != nil {
		log.Printf("[setup] save team1=%s team2=%s: %v", team1, team2, err)
		return SaveFailed{Err: err}
	}
	if !res.Succeeded() {
		log.Printf("[setup] save rejected status=%q msg=%q", res.Status, res.Message)
		return SaveFailed{Status: res.Status}
	}
	log.Printf("[setup] streaming match saved team1=%s team2=%s", team1, team2)

	if s.announce != nil {
		s.announceMatch(ctx, team1, team2)
	}
	return SaveSucceeded{}
}

// announceMatch resuelve los nombres (best effort) y avisa; los errores sólo se loguean.
func (s *MatchSetupService) announceMatch(ctx context.Context, team1, team2 domain.TeamID) {
	home := domain.Team{ID: team1, Name: team1.String()}
	away := domain.Team{ID: team2, Name: team2.String()}
	if teams, err := s.api.ListTeams(ctx); err == nil {
		for _, t := range teams.Teams {
			if t.ID == team1 {
				home.Name = t.Name
			}
			if t.ID == team2 {
				away.Name = t.Name
			}
		}
	}
	if err := s.announce.AnnounceMatch(ctx, home, away); err != nil {
		log.Printf("[setup] announce: %v", err)
	}
}
