// internal/httpserver/routes_round.go
//
// Routes that drive a round:
//   - GET  /                      → render the page for the caller's session
//   - POST /jumble                → submit a word (form field "word"), then 303 to /
//   - GET  /round                 → JSON snapshot of the current round
//   - POST /boxes/{index}         → box content changed ({"value":"a"}; "" deletes)
//   - POST /boxes/{index}/select  → box clicked; returns the text to highlight
//
// Every handler turns the request into a game.Event and dispatches it inside
// store.Update.

package httpserver

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/anagram-manager/internal/game"
	"github.com/robalobadob/anagram-manager/internal/store"
)

// pageData is what templates/index.html renders.
type pageData struct {
	Alert string
	Rows  [][]game.TileView
	Boxes []game.BoxView
}

func newPageData(sess *game.Session) pageData {
	d := pageData{Alert: sess.Alert}
	if sess.Round != nil {
		snap := sess.Round.Snapshot()
		d.Rows, d.Boxes = snap.Rows, snap.Boxes
	}
	return d
}

// boxRes is returned by the box endpoints.
type boxRes struct {
	Box      game.BoxView  `json:"box"`
	Selected *string       `json:"selected,omitempty"`
	Round    game.Snapshot `json:"round"`
}

// handleIndex renders the page for the caller's current round and alert.
func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	id, err := s.sessionID(w, r)
	if err != nil {
		log.Error().Err(err).Msg("session")
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	var data pageData
	if err := s.store.Update(r.Context(), id, func(sess *game.Session) error {
		data = newPageData(sess)
		return nil
	}); err != nil {
		log.Error().Err(err).Str("session", id).Msg("load session")
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	var buf bytes.Buffer
	if err := s.tmpl.ExecuteTemplate(&buf, "index.html", data); err != nil {
		log.Error().Err(err).Msg("render index")
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	_, _ = buf.WriteTo(w)
}

// handleJumble starts a new round from the submitted word.
// A word without letters is not an error: the page shows the alert instead.
func (s *Server) handleJumble(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad form", http.StatusBadRequest)
		return
	}
	id, err := s.sessionID(w, r)
	if err != nil {
		log.Error().Err(err).Msg("session")
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	ev := game.Event{Kind: game.EventSubmit, Word: r.PostForm.Get("word")}
	err = s.store.Update(r.Context(), id, func(sess *game.Session) error {
		res, err := s.dispatch.Dispatch(sess, ev)
		if err != nil {
			return err
		}
		evt := log.Debug().Str("session", id).Stringer("event", ev.Kind)
		if res.Alert != "" {
			evt.Str("alert", res.Alert).Msg("submit rejected")
		} else {
			evt.Int("letters", sess.Round.Len()).Msg("round started")
		}
		return nil
	})
	if err != nil {
		log.Error().Err(err).Str("session", id).Msg("submit")
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// handleRound returns the current round as JSON.
func (s *Server) handleRound(w http.ResponseWriter, r *http.Request) {
	id, err := s.sessionID(w, r)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "session_failed")
		return
	}
	var snap *game.Snapshot
	err = s.store.Update(r.Context(), id, func(sess *game.Session) error {
		if sess.Round != nil {
			v := sess.Round.Snapshot()
			snap = &v
		}
		return nil
	})
	switch {
	case errors.Is(err, store.ErrNotFound):
		writeError(w, http.StatusConflict, "session_expired")
		return
	case err != nil:
		log.Error().Err(err).Str("session", id).Msg("load round")
		writeError(w, http.StatusInternalServerError, "internal")
		return
	}
	if snap == nil {
		writeError(w, http.StatusNotFound, "no_round")
		return
	}
	writeJSON(w, http.StatusOK, snap)
}

// handleBoxInput applies a box edit. An empty value is a delete.
func (s *Server) handleBoxInput(w http.ResponseWriter, r *http.Request) {
	idx, ok := boxIndex(w, r)
	if !ok {
		return
	}
	var body struct {
		Value string `json:"value"`
	}
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<10)).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "bad_json")
		return
	}
	ev := game.Event{Kind: game.EventBoxInput, Box: idx, Value: body.Value}
	if body.Value == "" {
		ev.Kind = game.EventBoxDelete
	}
	s.dispatchBox(w, r, ev)
}

// handleBoxSelect reports what a click on the box should highlight.
func (s *Server) handleBoxSelect(w http.ResponseWriter, r *http.Request) {
	idx, ok := boxIndex(w, r)
	if !ok {
		return
	}
	s.dispatchBox(w, r, game.Event{Kind: game.EventBoxClick, Box: idx})
}

// dispatchBox runs a box event and writes the box plus the round snapshot.
func (s *Server) dispatchBox(w http.ResponseWriter, r *http.Request, ev game.Event) {
	id, err := s.sessionID(w, r)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "session_failed")
		return
	}
	var out boxRes
	err = s.store.Update(r.Context(), id, func(sess *game.Session) error {
		res, err := s.dispatch.Dispatch(sess, ev)
		if err != nil {
			return err
		}
		out.Box = res.Box
		out.Round = sess.Round.Snapshot()
		if ev.Kind == game.EventBoxClick {
			out.Selected = &res.Selected
		}
		return nil
	})
	switch {
	case errors.Is(err, game.ErrNoRound):
		writeError(w, http.StatusConflict, "no_round")
	case errors.Is(err, game.ErrNoSuchBox):
		writeError(w, http.StatusNotFound, "no_such_box")
	case errors.Is(err, store.ErrNotFound):
		writeError(w, http.StatusConflict, "session_expired")
	case err != nil:
		log.Error().Err(err).Str("session", id).Stringer("event", ev.Kind).Msg("box event")
		writeError(w, http.StatusInternalServerError, "internal")
	default:
		log.Debug().Str("session", id).Stringer("event", ev.Kind).Int("box", ev.Box).
			Bool("incorrect", out.Box.Incorrect).Int("used", out.Round.Used).Msg("box updated")
		writeJSON(w, http.StatusOK, out)
	}
}

// boxIndex parses {index}, writing a 400 on failure.
func boxIndex(w http.ResponseWriter, r *http.Request) (int, bool) {
	idx, err := strconv.Atoi(chi.URLParam(r, "index"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_index")
		return 0, false
	}
	return idx, true
}
