// Package server serves the built site plus the search, theme, and live
// reload APIs.
package server

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/catpaladin/inkwell/internal/config"
	"github.com/catpaladin/inkwell/internal/search"
	"github.com/catpaladin/inkwell/internal/theme"
)

// Server hosts the static site and its enhancement APIs.
type Server struct {
	cfg        config.ServerConfig
	siteDir    string
	engine     *search.Engine
	themes     *theme.Controller
	reload     *Hub
	router     chi.Router
	httpServer *http.Server
}

// New wires the router. reload may be nil for production serving without
// live reload.
func New(cfg config.ServerConfig, siteDir string, engine *search.Engine, themes *theme.Controller, reload *Hub) *Server {
	s := &Server{
		cfg:     cfg,
		siteDir: siteDir,
		engine:  engine,
		themes:  themes,
		reload:  reload,
	}
	s.router = s.buildRouter()
	return s
}

func (s *Server) buildRouter() chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))

	corsOpts := cors.Options{
		AllowedOrigins: []string{"http://localhost:*", "http://127.0.0.1:*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}
	if s.cfg.AllowAll {
		corsOpts.AllowedOrigins = []string{"*"}
	}
	r.Use(cors.Handler(corsOpts))

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	})

	r.Get("/api/search", s.handleSearch)
	r.Get("/api/theme", s.handleThemeGet)
	r.Post("/api/theme", s.handleThemeToggle)

	if s.reload != nil {
		r.Get("/livereload", s.reload.Handle)
	}

	r.Handle("/*", http.FileServer(http.Dir(s.siteDir)))

	return r
}

// Router exposes the handler, mostly for tests.
func (s *Server) Router() chi.Router { return s.router }

// Start listens on the configured port until Shutdown.
func (s *Server) Start() error {
	addr := fmt.Sprintf(":%d", s.cfg.Port)
	s.httpServer = &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	log.Printf("inkwell serving %s on %s", s.siteDir, addr)
	return s.httpServer.ListenAndServe()
}

// Shutdown stops the server gracefully.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.reload != nil {
		s.reload.Close()
	}
	if s.httpServer != nil {
		return s.httpServer.Shutdown(ctx)
	}
	return nil
}
