// internal/httpserver/server.go
//
// HTTP server wiring for the Anagram Manager.
// Responsibilities:
//   - Router + middleware (request IDs, real IP, access log, panic recovery, timeouts).
//   - Page endpoints: "/" renders the current round, POST /jumble submits a word.
//   - Box endpoints: POST /boxes/{index} and /boxes/{index}/select (JSON).
//   - Diagnostics: /health, GET /round.
//   - Embedded static files under /static/.
//
// Notes:
//   - Each browser gets a session, located through a signed cookie.
//   - All session mutation goes through store.Update, so one event is handled
//     at a time per store.

package httpserver

import (
	"context"
	"encoding/json"
	"errors"
	"html/template"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/anagram-manager/assets"
	"github.com/robalobadob/anagram-manager/internal/game"
	"github.com/robalobadob/anagram-manager/internal/store"
)

// Options configures the session cookie.
type Options struct {
	Secret       string        // HMAC key for the cookie token
	TTL          time.Duration // token and cookie lifetime
	CookieName   string
	CookieSecure bool
}

// Server bundles router, session store, event dispatcher and templates.
type Server struct {
	r        *chi.Mux
	store    store.Store
	dispatch *game.Dispatcher
	tmpl     *template.Template
	opts     Options
}

// New constructs a Server, installs middleware, and registers routes.
func New(st store.Store, d *game.Dispatcher, opts Options) (*Server, error) {
	tmpl, err := assets.Templates()
	if err != nil {
		return nil, err
	}
	static, err := assets.Static()
	if err != nil {
		return nil, err
	}
	if opts.CookieName == "" {
		opts.CookieName = "anagram_session"
	}
	if opts.TTL <= 0 {
		opts.TTL = 12 * time.Hour
	}
	s := &Server{r: chi.NewRouter(), store: st, dispatch: d, tmpl: tmpl, opts: opts}

	// --- middleware ---
	s.r.Use(chimw.RequestID)                 // add X-Request-ID
	s.r.Use(chimw.RealIP)                    // set RemoteAddr from X-Forwarded-For etc.
	s.r.Use(requestLogger)                   // zerolog access log
	s.r.Use(chimw.Recoverer)                 // recover from panics
	s.r.Use(chimw.Timeout(10 * time.Second)) // bound handler time

	// --- diagnostics ---
	s.r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
	})

	// --- page ---
	s.r.Get("/", s.handleIndex)
	s.r.Post("/jumble", s.handleJumble)
	s.r.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.FS(static))))

	// --- round state ---
	s.r.Get("/round", s.handleRound)
	s.r.Route("/boxes/{index}", func(r chi.Router) {
		r.Post("/", s.handleBoxInput)
		r.Post("/select", s.handleBoxSelect)
	})

	// JSON 404 for easier debugging
	s.r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "not_found", "path": r.URL.Path})
	})

	return s, nil
}

// Start serves HTTP on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) Start(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.r,
		ReadHeaderTimeout: 5 * time.Second,
	}
	errc := make(chan error, 1)
	go func() { errc <- srv.ListenAndServe() }()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}
	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errc; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Router exposes the internal router (useful for tests).
func (s *Server) Router() chi.Router { return s.r }

// writeJSON encodes v with the given status.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Msg("encode response")
	}
}

// writeError writes a JSON {"error": code} body.
func writeError(w http.ResponseWriter, status int, code string) {
	writeJSON(w, status, map[string]string{"error": code})
}
