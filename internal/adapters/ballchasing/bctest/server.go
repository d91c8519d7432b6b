// Package bctest levanta un ballchasing falso con httptest para los tests de import.
package bctest

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
)

const APIKey = "bc-test-key"

// Server sirve /groups/{id} y /groups?group=<id> desde memoria.
type Server struct {
	*httptest.Server

	mu       sync.Mutex
	groups   map[string]map[string]any
	children map[string][]string
	requests []string
}

func NewServer(t testing.TB) *Server {
	t.Helper()
	s := &Server{groups: map[string]map[string]any{}, children: map[string][]string{}}
	s.Server = httptest.NewServer(http.HandlerFunc(s.handle))
	t.Cleanup(s.Close)
	return s
}

// AddGroup registra un grupo; parent vacío = raíz.
func (s *Server) AddGroup(parent, id, name, created string, players ...map[string]any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if players == nil {
		players = []map[string]any{}
	}
	s.groups[id] = map[string]any{"id": id, "name": name, "created": created, "status": "ok", "players": players}
	if parent != "" {
		s.children[parent] = append(s.children[parent], id)
	}
}

// Player arma un jugador con acumulados; id va como número, igual que steam.
func Player(id int64, name, team string, games, wins, score, goals, shots, assists, saves, demosTaken float64) map[string]any {
	return map[string]any{
		"platform": "steam",
		"id":       id,
		"name":     name,
		"team":     team,
		"cumulative": map[string]any{
			"games": games,
			"wins":  wins,
			"core": map[string]any{
				"score":               score,
				"goals":               goals,
				"shots":               shots,
				"assists":             assists,
				"saves":               saves,
				"shooting_percentage": pct(goals, shots),
			},
			"demo": map[string]any{"inflicted": 0, "taken": demosTaken},
		},
	}
}

func (s *Server) Requests() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.requests...)
}

func (s *Server) handle(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.requests = append(s.requests, r.URL.RequestURI())

	if r.Header.Get("Authorization") != APIKey {
		http.Error(w, `{"error":"invalid api key"}`, http.StatusUnauthorized)
		return
	}

	switch {
	case r.URL.Path == "/groups":
		parent := r.URL.Query().Get("group")
		list := []map[string]any{}
		for _, id := range s.children[parent] {
			list = append(list, map[string]any{"id": id, "name": s.groups[id]["name"]})
		}
		writeJSON(w, map[string]any{"list": list})
	case strings.HasPrefix(r.URL.Path, "/groups/"):
		g, ok := s.groups[strings.TrimPrefix(r.URL.Path, "/groups/")]
		if !ok {
			http.Error(w, `{"error":"not found"}`, http.StatusNotFound)
			return
		}
		writeJSON(w, g)
	default:
		http.NotFound(w, r)
	}
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}

func pct(goals, shots float64) float64 {
	if shots == 0 {
		return 0
	}
	return goals / shots * 100
}
