package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/jose-valero/match-scoreboard/internal/app/service"
	"github.com/jose-valero/match-scoreboard/internal/domain"
	"github.com/jose-valero/match-scoreboard/internal/infra/storage"
)

// Store es lo que el backend necesita de la base (storage.Store lo cumple).
type Store interface {
	ListTeams(ctx context.Context) ([]domain.Team, error)
	UpsertTeam(ctx context.Context, t domain.Team) error
	MatchSlots(ctx context.Context) ([]domain.MatchTeamSlot, error)
	ReplaceMatchSlots(ctx context.Context, as []domain.SlotAssignment) error
	PlayerScores(ctx context.Context) ([]domain.PlayerScore, error)
	UpsertPlayerStats(ctx context.Context, st domain.PlayerStats) error
	ScoresByDays(ctx context.Context) ([]domain.DayScore, error)
	TournamentMatches(ctx context.Context) ([]domain.TournamentMatch, error)
}

// Importer: lo implementa service.ImportService. Sin importer, /init_db responde 503.
type Importer interface {
	Start(req service.ImportRequest) (string, error)
	Status(ctx context.Context, taskID string) ([]domain.ImportTask, error)
}

type Option func(*Server)

func WithImporter(imp Importer) Option {
	return func(s *Server) { s.importer = imp }
}

const maxBody = 1 << 20

type Server struct {
	store    Store
	importer Importer
	mux      *http.ServeMux
}

func New(store Store, opts ...Option) *Server {
	s := &Server{store: store, mux: http.NewServeMux()}
	for _, o := range opts {
		o(s)
	}
	s.routes()
	return s
}

func (s *Server) routes() {
	s.mux.HandleFunc("/teams", s.handleTeams)
	s.mux.HandleFunc("/streaming_match", s.handleStreamingMatch)
	s.mux.HandleFunc("/scores_all", s.handleScoresAll)
	s.mux.HandleFunc("/scores", s.handleScores)
	s.mux.HandleFunc("/scores_by_days", s.handleScoresByDays)
	s.mux.HandleFunc("/matches", s.handleMatches)
	s.mux.HandleFunc("/init_db/{group_id}", s.handleInitDB)
	s.mux.HandleFunc("/init_db/{tournament_id}/{group_id}", s.handleInitDB)
	s.mux.HandleFunc("/import_tasks/{task_id}", s.handleImportTask)
	s.mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, "ok")
	})
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}
	s.mux.ServeHTTP(sw, r)
	log.Printf("[http] %s %s -> %d (%s) rid=%s", r.Method, r.URL.Path, sw.status, time.Since(start).Round(time.Millisecond), r.Header.Get("X-Request-ID"))
}

// Start bloquea hasta que el server cae.
func (s *Server) Start(addr string) {
	log.Printf("🌐 scores api escuchando en %s", addr)
	srv := &http.Server{Addr: addr, Handler: s, ReadHeaderTimeout: 10 * time.Second}
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatalf("http server: %v", err)
	}
}

type saveStatus struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}

func (s *Server) handleTeams(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		teams, err := s.store.ListTeams(r.Context())
		if err != nil {
			internalError(w, "list teams", err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"teams": teams})

	case http.MethodPost:
		var t domain.Team
		if !decodeBody(w, r, &t) {
			return
		}
		t.Name = strings.TrimSpace(t.Name)
		if t.ID == "" || t.Name == "" {
			writeError(w, http.StatusBadRequest, "id y name son obligatorios")
			return
		}
		if err := s.store.UpsertTeam(r.Context(), t); err != nil {
			internalError(w, "upsert team", err)
			return
		}
		writeJSON(w, http.StatusOK, saveStatus{Status: "success"})

	default:
		methodNotAllowed(w, http.MethodGet, http.MethodPost)
	}
}

func (s *Server) handleStreamingMatch(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		slots, err := s.store.MatchSlots(r.Context())
		if err != nil {
			internalError(w, "match slots", err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"teams": slots})

	case http.MethodPost:
		var as []domain.SlotAssignment
		if !decodeBody(w, r, &as) {
			return
		}
		err := s.store.ReplaceMatchSlots(r.Context(), as)
		switch {
		case errors.Is(err, domain.ErrInvalidSlots), errors.Is(err, storage.ErrUnknownTeam):
			writeError(w, http.StatusBadRequest, err.Error())
			return
		case err != nil:
			internalError(w, "replace slots", err)
			return
		}
		log.Printf("[http] streaming match actualizado: %v", as)
		writeJSON(w, http.StatusOK, saveStatus{Status: "success"})

	default:
		methodNotAllowed(w, http.MethodGet, http.MethodPost)
	}
}

func (s *Server) handleScoresAll(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, http.MethodGet)
		return
	}
	scores, err := s.store.PlayerScores(r.Context())
	if err != nil {
		internalError(w, "player scores", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"scores": scores})
}

func (s *Server) handleScores(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w, http.MethodPost)
		return
	}
	var st domain.PlayerStats
	if !decodeBody(w, r, &st) {
		return
	}
	if st.TeamID == "" || strings.TrimSpace(st.PlayerName) == "" {
		writeError(w, http.StatusBadRequest, "team_id y player_name son obligatorios")
		return
	}
	err := s.store.UpsertPlayerStats(r.Context(), st)
	if errors.Is(err, storage.ErrUnknownTeam) {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err != nil {
		internalError(w, "upsert stats", err)
		return
	}
	writeJSON(w, http.StatusOK, saveStatus{Status: "success"})
}

func (s *Server) handleScoresByDays(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, http.MethodGet)
		return
	}
	days, err := s.store.ScoresByDays(r.Context())
	if err != nil {
		internalError(w, "scores by days", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"scores": days})
}

type matchOpponentJSON struct {
	Number  int           `json:"number"`
	TeamID  domain.TeamID `json:"team_id,omitempty"`
	Result  string        `json:"result,omitempty"`
	Score   *float64      `json:"score"`
	Forfeit bool          `json:"forfeit"`
}

type matchJSON struct {
	ID          string              `json:"id"`
	StageID     string              `json:"stage_id"`
	GroupID     string              `json:"group_id"`
	RoundID     string              `json:"round_id,omitempty"`
	Number      int                 `json:"number"`
	Status      string              `json:"status"`
	ScheduledAt *time.Time          `json:"scheduled_datetime"`
	Opponents   []matchOpponentJSON `json:"opponents"`
}

func (s *Server) handleMatches(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, http.MethodGet)
		return
	}
	matches, err := s.store.TournamentMatches(r.Context())
	if err != nil {
		internalError(w, "tournament matches", err)
		return
	}
	out := make([]matchJSON, 0, len(matches))
	for _, m := range matches {
		mj := matchJSON{
			ID: m.ID, StageID: m.StageID, GroupID: m.GroupID, RoundID: m.RoundID,
			Number: m.Number, Status: m.Status, ScheduledAt: m.ScheduledAt,
			Opponents: make([]matchOpponentJSON, 0, len(m.Opponents)),
		}
		for _, op := range m.Opponents {
			mj.Opponents = append(mj.Opponents, matchOpponentJSON(op))
		}
		out = append(out, mj)
	}
	writeJSON(w, http.StatusOK, map[string]any{"matches": out})
}

// handleInitDB lanza el import en background y responde 202 con el id de la tarea.
func (s *Server) handleInitDB(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodPost {
		methodNotAllowed(w, http.MethodGet, http.MethodPost)
		return
	}
	if s.importer == nil {
		writeError(w, http.StatusServiceUnavailable, "import no configurado")
		return
	}
	req := service.ImportRequest{TournamentID: r.PathValue("tournament_id"), GroupID: r.PathValue("group_id")}
	taskID, err := s.importer.Start(req)
	switch {
	case errors.Is(err, service.ErrNoGroupID), errors.Is(err, service.ErrTournamentUnavailable):
		writeError(w, http.StatusBadRequest, err.Error())
		return
	case err != nil:
		internalError(w, "start import", err)
		return
	}
	writeJSON(w, http.StatusAccepted, map[string]string{"init_db": "started", "task_id": taskID})
}

func (s *Server) handleImportTask(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, http.MethodGet)
		return
	}
	if s.importer == nil {
		writeError(w, http.StatusServiceUnavailable, "import no configurado")
		return
	}
	taskID := r.PathValue("task_id")
	tasks, err := s.importer.Status(r.Context(), taskID)
	if errors.Is(err, service.ErrUnknownTask) {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}
	if err != nil {
		internalError(w, "import status", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"task_id": taskID, "statuses": tasks})
}

// ---------- helpers ----------

func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBody))
	if err := dec.Decode(v); err != nil {
		writeError(w, http.StatusBadRequest, "json inválido: "+err.Error())
		return false
	}
	return true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, saveStatus{Status: "error", Message: msg})
}

func internalError(w http.ResponseWriter, op string, err error) {
	log.Printf("[store] %s: %v", op, err)
	writeError(w, http.StatusInternalServerError, "error interno")
}

func methodNotAllowed(w http.ResponseWriter, allowed ...string) {
	w.Header().Set("Allow", strings.Join(allowed, ", "))
	http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
}

type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}
