package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/jose-valero/match-scoreboard/internal/domain"
)

var (
	ErrNoGroupID             = errors.New("group id obligatorio")
	ErrTournamentUnavailable = errors.New("import de torneo sin credenciales de toornament")
	ErrUnknownTask           = errors.New("tarea de import desconocida")
)

// ImportRequest: TournamentID vacío = sólo replays.
type ImportRequest struct {
	TournamentID string
	GroupID      string
}

type ImportService struct {
	store       ImportStore
	replays     ReplaySource
	tournaments TournamentSource
	timeout     time.Duration
	newID       func() string

	wg sync.WaitGroup
}

// NewImportService: tournaments puede ser nil (sólo se importan replays).
func NewImportService(store ImportStore, replays ReplaySource, tournaments TournamentSource) *ImportService {
	return &ImportService{
		store:       store,
		replays:     replays,
		tournaments: tournaments,
		timeout:     5 * time.Minute,
		newID:       uuid.NewString,
	}
}

func (s *ImportService) validate(req ImportRequest) error {
	if strings.TrimSpace(req.GroupID) == "" {
		return ErrNoGroupID
	}
	if req.TournamentID != "" && s.tournaments == nil {
		return ErrTournamentUnavailable
	}
	return nil
}

// Run importa en el momento: primero el torneo (equipos), después los replays,
// así los jugadores se asocian con los equipos recién cargados.
func (s *ImportService) Run(ctx context.Context, req ImportRequest) (domain.ReplayImportResult, error) {
	if err := s.validate(req); err != nil {
		return domain.ReplayImportResult{}, err
	}
	if req.TournamentID != "" {
		if err := s.importTournament(ctx, req.TournamentID); err != nil {
			return domain.ReplayImportResult{}, err
		}
	}
	return s.importReplays(ctx, req.GroupID)
}

// Start lanza el import en background y devuelve el id de la tarea.
// El primer "started" se escribe antes de volver, así Status ya conoce la tarea.
func (s *ImportService) Start(req ImportRequest) (string, error) {
	if err := s.validate(req); err != nil {
		return "", err
	}
	taskID := s.newID()
	first := "ballchasing"
	if req.TournamentID != "" {
		first = "toornament"
	}
	s.record(context.Background(), taskID, first+" init_db started")

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
		defer cancel()

		if req.TournamentID != "" {
			if !s.finish(ctx, taskID, "toornament", s.importTournament(ctx, req.TournamentID)) {
				return
			}
			s.record(ctx, taskID, "ballchasing init_db started")
		}
		_, err := s.importReplays(ctx, req.GroupID)
		s.finish(ctx, taskID, "ballchasing", err)
	}()
	log.Printf("[import] tarea %s lanzada (tournament=%q group=%q)", taskID, req.TournamentID, req.GroupID)
	return taskID, nil
}

// finish registra ended o error del paso; false si falló.
func (s *ImportService) finish(ctx context.Context, taskID, source string, err error) bool {
	if err != nil {
		log.Printf("[import] ❌ %s %s: %v", taskID, source, err)
		s.record(ctx, taskID, fmt.Sprintf("%s init_db error: %v", source, err))
		return false
	}
	s.record(ctx, taskID, source+" init_db ended")
	return true
}

func (s *ImportService) record(ctx context.Context, taskID, status string) {
	// el historial se escribe aunque el import se haya pasado de tiempo
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
	defer cancel()
	if err := s.store.AppendTaskStatus(ctx, taskID, status); err != nil {
		log.Printf("[import] no se pudo guardar estado de %s (%q): %v", taskID, status, err)
	}
}

// Wait bloquea hasta que terminan los imports lanzados con Start (shutdown y tests).
func (s *ImportService) Wait() { s.wg.Wait() }

func (s *ImportService) Status(ctx context.Context, taskID string) ([]domain.ImportTask, error) {
	tasks, err := s.store.TaskStatuses(ctx, taskID)
	if err != nil {
		return nil, err
	}
	if len(tasks) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrUnknownTask, taskID)
	}
	return tasks, nil
}

func (s *ImportService) importTournament(ctx context.Context, id string) error {
	teams, matches, err := s.tournaments.Tournament(ctx, id)
	if err != nil {
		return fmt.Errorf("toornament %s: %w", id, err)
	}
	if err := s.store.ReplaceTournament(ctx, teams, matches); err != nil {
		return fmt.Errorf("guardar torneo %s: %w", id, err)
	}
	log.Printf("[import] torneo %s: %d equipos, %d partidos", id, len(teams), len(matches))
	return nil
}

func (s *ImportService) importReplays(ctx context.Context, groupID string) (domain.ReplayImportResult, error) {
	groups, err := s.replays.ReplayGroups(ctx, groupID)
	if err != nil {
		return domain.ReplayImportResult{}, fmt.Errorf("ballchasing %s: %w", groupID, err)
	}
	res, err := s.store.ReplaceReplayStats(ctx, groups)
	if err != nil {
		return res, fmt.Errorf("guardar replays %s: %w", groupID, err)
	}
	log.Printf("[import] grupo %s: %d grupos, %d jugadores con score", groupID, res.Groups, res.Scored)
	if len(res.Unmatched) > 0 {
		log.Printf("[import] ⚠️ jugadores sin equipo: %s", strings.Join(res.Unmatched, ", "))
	}
	return res, nil
}
