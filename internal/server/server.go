// Package server exposes the menu pipeline over HTTP.
//
// Routes:
//
//	GET /healthz            liveness
//	GET /v1/substitutions   graded candidate list
//	GET /v1/menu            laid-out menu (JSON)
//	GET /v1/menu.svg        rendered menu
//
// All /v1 routes take the same query parameters: chord (required), key,
// scale, ranking, passing, filter, layout, exhaustive, complexity,
// threshold, width, height and seed. Bad input is answered with 400 and a
// {"code", "error"} body.
package server

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/parkerchace/MusicTheory-sub000/pkg/errors"
	"github.com/parkerchace/MusicTheory-sub000/pkg/pipeline"
	"github.com/parkerchace/MusicTheory-sub000/pkg/render"
	"github.com/parkerchace/MusicTheory-sub000/pkg/substitution"
)

// Server serves the HTTP API.
type Server struct {
	runner     *pipeline.Runner
	base       pipeline.Options
	corsOrigin string
	logger     *log.Logger
}

// New returns a server. base supplies defaults (layout parameters, weights,
// complexity) that query parameters override.
func New(runner *pipeline.Runner, base pipeline.Options, corsOrigin string, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.Default()
	}
	return &Server{runner: runner, base: base, corsOrigin: corsOrigin, logger: logger}
}

// Handler returns the routed handler with middleware applied.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(requestID)
	r.Use(s.observe)
	r.Use(middleware.Recoverer)
	r.Use(s.cors)

	r.Get("/healthz", s.handleHealth)
	r.Route("/v1", func(r chi.Router) {
		r.Get("/substitutions", s.handleSubstitutions)
		r.Get("/menu", s.handleMenu)
		r.Get("/menu.svg", s.handleMenuSVG)
	})
	r.Options("/*", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
	return r
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err == http.ErrServerClosed {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	s.logger.Info("shutting down")
	return srv.Shutdown(shutdownCtx)
}

// =============================================================================
// Handlers
// =============================================================================

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"ok": true})
}

type substitutionsResponse struct {
	Chord      string                   `json:"chord"`
	Passing    string                   `json:"passing,omitempty"`
	Key        string                   `json:"key"`
	Scale      string                   `json:"scale"`
	Ranking    string                   `json:"ranking"`
	Count      int                      `json:"count"`
	Candidates []substitution.Candidate `json:"candidates"`
}

func (s *Server) handleSubstitutions(w http.ResponseWriter, r *http.Request) {
	opts, err := s.options(r)
	if err != nil {
		s.writeErr(w, r, err)
		return
	}
	cands, err := s.runner.Substitutions(r.Context(), opts)
	if err != nil {
		s.writeErr(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, substitutionsResponse{
		Chord:      opts.Chord,
		Passing:    opts.Passing,
		Key:        opts.Key,
		Scale:      opts.Scale,
		Ranking:    opts.Ranking,
		Count:      len(cands),
		Candidates: cands,
	})
}

func (s *Server) handleMenu(w http.ResponseWriter, r *http.Request) {
	opts, err := s.options(r)
	if err != nil {
		s.writeErr(w, r, err)
		return
	}
	m, err := s.runner.Menu(r.Context(), opts)
	if err != nil {
		s.writeErr(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, m)
}

func (s *Server) handleMenuSVG(w http.ResponseWriter, r *http.Request) {
	opts, err := s.options(r)
	if err != nil {
		s.writeErr(w, r, err)
		return
	}
	opts.Formats = []string{render.FormatSVG}
	m, err := s.runner.Menu(r.Context(), opts)
	if err != nil {
		s.writeErr(w, r, err)
		return
	}
	artifacts, err := s.runner.Render(r.Context(), m, opts)
	if err != nil {
		s.writeErr(w, r, err)
		return
	}
	w.Header().Set("Content-Type", render.ContentType(render.FormatSVG))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(artifacts[render.FormatSVG])
}

// options validates the query on top of the server defaults.
func (s *Server) options(r *http.Request) (pipeline.Options, error) {
	opts, err := parseQuery(r.URL.Query(), s.base)
	if err != nil {
		return pipeline.Options{}, err
	}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return pipeline.Options{}, err
	}
	return opts, nil
}

// =============================================================================
// Responses
// =============================================================================

// writeJSON encodes payload before committing the status, so an encoding
// failure still reaches the client as a 500.
func writeJSON(w http.ResponseWriter, status int, payload any) {
	body, err := json.Marshal(payload)
	if err != nil {
		status = http.StatusInternalServerError
		body, _ = json.Marshal(map[string]any{
			"code":  errors.ErrCodeInternal,
			"error": "encode response",
		})
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(append(body, '\n'))
}

func writeError(w http.ResponseWriter, status int, code errors.Code, message string) {
	writeJSON(w, status, map[string]any{
		"code":  code,
		"error": message,
	})
}

func (s *Server) writeErr(w http.ResponseWriter, r *http.Request, err error) {
	if errors.IsInvalid(err) {
		writeError(w, http.StatusBadRequest, errors.GetCode(err), errors.UserMessage(err))
		return
	}
	s.logger.Error("request failed", "path", r.URL.Path, "request_id", RequestID(r.Context()), "error", err)
	writeError(w, http.StatusInternalServerError, errors.ErrCodeInternal, "internal error")
}
