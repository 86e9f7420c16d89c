// internal/game/events.go
//
// Event dispatch for front-ends.
// A Session holds the current round and alert for one player; front-ends
// translate their UI events into Event values and hand them to a Dispatcher,
// which runs exactly one handler to completion.
//
// Event kinds:
//   - EventSubmit:    new word; replaces the round or sets the no-letters alert.
//   - EventBoxInput:  box content changed.
//   - EventBoxClick:  box focused; reports its content for selection.
//   - EventBoxDelete: box emptied.

package game

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/robalobadob/anagram-manager/internal/words"
)

var (
	// ErrNoRound is returned for box events before any word was submitted.
	ErrNoRound = errors.New("no active round")
	// ErrUnknownEvent is returned when no handler is registered for a kind.
	ErrUnknownEvent = errors.New("unknown event")
)

// EventKind enumerates the UI events the game reacts to.
type EventKind int

const (
	EventSubmit EventKind = iota
	EventBoxInput
	EventBoxClick
	EventBoxDelete
)

func (k EventKind) String() string {
	switch k {
	case EventSubmit:
		return "submit"
	case EventBoxInput:
		return "box_input"
	case EventBoxClick:
		return "box_click"
	case EventBoxDelete:
		return "box_delete"
	}
	return fmt.Sprintf("event(%d)", int(k))
}

// Event is one UI action. Word is used by EventSubmit; Box and Value by box events.
type Event struct {
	Kind  EventKind
	Word  string
	Box   int
	Value string
}

// Result carries what a front-end needs to repaint after an event.
type Result struct {
	Box      BoxView // box state after BoxInput/BoxDelete/BoxClick
	Selected string  // text to highlight after BoxClick
	Alert    string  // alert text after Submit, empty on success
}

// Session is one player's view state: the current round and alert.
type Session struct {
	ID        string
	Round     *Round // nil before the first word or after a no-letters submit
	Alert     string
	UpdatedAt time.Time
}

// NewSession returns an empty session.
func NewSession(id string) *Session {
	return &Session{ID: id, UpdatedAt: time.Now()}
}

// HandlerFunc reacts to one event against a session.
type HandlerFunc func(s *Session, ev Event) (Result, error)

// Dispatcher routes events to handlers by kind.
type Dispatcher struct {
	rng      *rand.Rand
	handlers map[EventKind]HandlerFunc
}

// NewDispatcher returns a Dispatcher with the default handlers registered.
// rng drives shuffling; nil uses the process-wide source.
func NewDispatcher(rng *rand.Rand) *Dispatcher {
	d := &Dispatcher{rng: rng, handlers: make(map[EventKind]HandlerFunc)}
	d.Handle(EventSubmit, d.submit)
	d.Handle(EventBoxInput, boxInput)
	d.Handle(EventBoxDelete, boxDelete)
	d.Handle(EventBoxClick, boxClick)
	return d
}

// Handle registers h for kind, replacing any earlier handler.
func (d *Dispatcher) Handle(kind EventKind, h HandlerFunc) {
	d.handlers[kind] = h
}

// Dispatch runs the handler registered for ev.Kind.
func (d *Dispatcher) Dispatch(s *Session, ev Event) (Result, error) {
	h, ok := d.handlers[ev.Kind]
	if !ok {
		return Result{}, fmt.Errorf("%w: %s", ErrUnknownEvent, ev.Kind)
	}
	res, err := h(s, ev)
	if err == nil {
		s.UpdatedAt = time.Now()
	}
	return res, err
}

// submit builds a fresh round. An input with no letters drops the round and
// sets the alert instead; that is a game state, not an error.
func (d *Dispatcher) submit(s *Session, ev Event) (Result, error) {
	s.Alert = ""
	p, err := words.Prepare(ev.Word, d.rng)
	if errors.Is(err, words.ErrNoLetters) {
		s.Round = nil
		s.Alert = words.NoLettersMessage
		return Result{Alert: s.Alert}, nil
	}
	if err != nil {
		return Result{}, err
	}
	s.Round = NewRound(p)
	return Result{}, nil
}

func boxInput(s *Session, ev Event) (Result, error) {
	if s.Round == nil {
		return Result{}, ErrNoRound
	}
	b, err := s.Round.Input(ev.Box, ev.Value)
	return Result{Box: b}, err
}

func boxDelete(s *Session, ev Event) (Result, error) {
	ev.Value = ""
	return boxInput(s, ev)
}

func boxClick(s *Session, ev Event) (Result, error) {
	if s.Round == nil {
		return Result{}, ErrNoRound
	}
	sel, err := s.Round.Select(ev.Box)
	if err != nil {
		return Result{}, err
	}
	b, _ := s.Round.Box(ev.Box)
	return Result{Box: b.view(), Selected: sel}, nil
}
