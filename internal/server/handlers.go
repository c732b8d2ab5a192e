package server

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/catpaladin/inkwell/internal/content"
)

type searchResponse struct {
	Query   string          `json:"query"`
	Results []content.Entry `json:"results"`
}

type themeResponse struct {
	Theme string `json:"theme"`
}

// handleSearch answers /api/search?q=. The first request opens the engine;
// reopening is a no-op so the index is fetched at most once per process.
func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("q")

	s.engine.Open()
	results := s.engine.Query(q)
	if results == nil {
		results = []content.Entry{}
	}

	writeJSON(w, http.StatusOK, searchResponse{Query: q, Results: results})
}

func (s *Server) handleThemeGet(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, themeResponse{Theme: string(s.themes.Current())})
}

func (s *Server) handleThemeToggle(w http.ResponseWriter, r *http.Request) {
	mode := s.themes.Toggle()
	writeJSON(w, http.StatusOK, themeResponse{Theme: string(mode)})
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("server: encoding response: %v", err)
	}
}
