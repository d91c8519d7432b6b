package web

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/a-h/templ"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/jose-valero/match-scoreboard/internal/app/service"
	"github.com/jose-valero/match-scoreboard/internal/domain"
)

type Board interface {
	Charts(ctx context.Context) (*service.ChartPair, error)
}

type Setup interface {
	Load(ctx context.Context) (service.SetupForm, error)
	Save(ctx context.Context, team1, team2 domain.TeamID) service.SaveResult
}

type Server struct {
	board  Board
	setup  Setup
	router chi.Router
}

func New(board Board, setup Setup) *Server {
	s := &Server{board: board, setup: setup, router: chi.NewRouter()}
	s.routes()
	return s
}

func (s *Server) routes() {
	r := s.router
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Get("/", s.handleScoreboard)
	r.Get("/api/charts", s.handleCharts)
	r.Get("/setup", s.handleSetupForm)
	r.Post("/setup", s.handleSetupSave)
	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("ok"))
	})
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// Run sirve hasta que ctx se cancela y después hace shutdown ordenado.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{Addr: addr, Handler: s, ReadHeaderTimeout: 10 * time.Second}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("🌐 dashboard escuchando en %s", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) handleScoreboard(w http.ResponseWriter, r *http.Request) {
	charts, err := s.board.Charts(r.Context())
	if err != nil {
		log.Printf("[board] build falló rid=%s: %v", middleware.GetReqID(r.Context()), err)
		http.Error(w, "scores backend unavailable", http.StatusBadGateway)
		return
	}
	templ.Handler(ScoreboardPage(charts)).ServeHTTP(w, r)
}

func (s *Server) handleCharts(w http.ResponseWriter, r *http.Request) {
	charts, err := s.board.Charts(r.Context())
	if err != nil {
		log.Printf("[board] build falló rid=%s: %v", middleware.GetReqID(r.Context()), err)
		http.Error(w, "scores backend unavailable", http.StatusBadGateway)
		return
	}
	if charts == nil {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	writeJSON(w, charts)
}

func (s *Server) handleSetupForm(w http.ResponseWriter, r *http.Request) {
	form, err := s.setup.Load(r.Context())
	if err != nil {
		// se muestra igual lo que se pudo cargar (las opciones llegan aunque falle el match)
		log.Printf("[setup] load falló rid=%s: %v", middleware.GetReqID(r.Context()), err)
	}

	var notice string
	failed := false
	switch r.URL.Query().Get("saved") {
	case "1":
		notice = noticeSaved
	case "0":
		notice, failed = noticeFailed, true
	}
	templ.Handler(SetupPage(form, notice, failed)).ServeHTTP(w, r)
}

func (s *Server) handleSetupSave(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad form", http.StatusBadRequest)
		return
	}
	team1 := domain.TeamID(r.PostForm.Get("team1"))
	team2 := domain.TeamID(r.PostForm.Get("team2"))

	switch res := s.setup.Save(r.Context(), team1, team2).(type) {
	case service.SaveSucceeded:
		http.Redirect(w, r, "/setup?saved=1", http.StatusSeeOther)
	case service.SaveFailed:
		form, err := s.setup.Load(r.Context())
		if err != nil {
			log.Printf("[setup] reload falló: %v", err)
		}
		// lo que eligió el operador, no lo que quedó guardado
		form.Team1, form.Team2 = team1, team2
		if err := SetupPage(form, noticeFailed+": "+res.Error(), true).Render(r.Context(), w); err != nil {
			log.Printf("[setup] render: %v", err)
		}
	}
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}
