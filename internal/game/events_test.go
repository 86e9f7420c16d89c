package game

import (
	"errors"
	"math/rand/v2"
	"slices"
	"testing"

	"github.com/robalobadob/anagram-manager/internal/words"
)

func newTestDispatcher() *Dispatcher {
	return NewDispatcher(rand.New(rand.NewPCG(42, 1024)))
}

func mustDispatch(t *testing.T, d *Dispatcher, s *Session, ev Event) Result {
	t.Helper()
	res, err := d.Dispatch(s, ev)
	if err != nil {
		t.Fatalf("Dispatch(%s): %v", ev.Kind, err)
	}
	return res
}

func TestSubmitBuildsRound(t *testing.T) {
	d := newTestDispatcher()
	s := NewSession("s1")

	res, err := d.Dispatch(s, Event{Kind: EventSubmit, Word: "someword"})
	if err != nil {
		t.Fatalf("Dispatch: %v", err)
	}
	if res.Alert != "" || s.Alert != "" {
		t.Errorf("unexpected alert %q", s.Alert)
	}
	if s.Round == nil || s.Round.Len() != 8 {
		t.Fatalf("round not built: %+v", s.Round)
	}
	if got := len(s.Round.Snapshot().Rows); got != 3 {
		t.Errorf("rows = %d, want 3", got)
	}

	var letters []rune
	for _, tile := range s.Round.Tiles() {
		letters = append(letters, tile.Letter)
	}
	slices.Sort(letters)
	if string(letters) != "DEMOORSW" {
		t.Errorf("sorted tiles = %q", string(letters))
	}
}

func TestSubmitNoLettersSetsAlertAndClearsRound(t *testing.T) {
	d := newTestDispatcher()
	s := NewSession("s1")
	if _, err := d.Dispatch(s, Event{Kind: EventSubmit, Word: "someword"}); err != nil {
		t.Fatal(err)
	}

	res, err := d.Dispatch(s, Event{Kind: EventSubmit, Word: "________"})
	if err != nil {
		t.Fatalf("no-letters submit should not error: %v", err)
	}
	if res.Alert != words.NoLettersMessage || s.Alert != words.NoLettersMessage {
		t.Errorf("alert = %q", s.Alert)
	}
	if s.Round != nil {
		t.Errorf("round should be dropped")
	}

	if _, err := d.Dispatch(s, Event{Kind: EventSubmit, Word: "hello"}); err != nil {
		t.Fatal(err)
	}
	if s.Alert != "" {
		t.Errorf("alert not cleared: %q", s.Alert)
	}
	if s.Round == nil || s.Round.Len() != 5 {
		t.Errorf("round not rebuilt")
	}
}

func TestSubmitDiscardsBoxState(t *testing.T) {
	d := newTestDispatcher()
	s := NewSession("s1")
	mustDispatch(t, d, s, Event{Kind: EventSubmit, Word: "aaaa"})
	mustDispatch(t, d, s, Event{Kind: EventBoxInput, Box: 0, Value: "a"})
	if s.Round.UsedCount() != 1 {
		t.Fatalf("UsedCount = %d", s.Round.UsedCount())
	}

	mustDispatch(t, d, s, Event{Kind: EventSubmit, Word: "aaaa"})
	if s.Round.UsedCount() != 0 {
		t.Errorf("new round inherited claims")
	}
}

func TestBoxEvents(t *testing.T) {
	d := newTestDispatcher()
	s := NewSession("s1")
	mustDispatch(t, d, s, Event{Kind: EventSubmit, Word: "ab"})

	res, err := d.Dispatch(s, Event{Kind: EventBoxInput, Box: 0, Value: "b"})
	if err != nil || res.Box.Value != "B" || res.Box.Incorrect {
		t.Fatalf("input: %+v, %v", res, err)
	}

	res, err = d.Dispatch(s, Event{Kind: EventBoxClick, Box: 0})
	if err != nil || res.Selected != "B" {
		t.Errorf("click: %+v, %v", res, err)
	}

	res, err = d.Dispatch(s, Event{Kind: EventBoxDelete, Box: 0, Value: "ignored"})
	if err != nil || res.Box.Value != "" {
		t.Errorf("delete: %+v, %v", res, err)
	}
	if s.Round.UsedCount() != 0 {
		t.Errorf("UsedCount = %d after delete", s.Round.UsedCount())
	}

	// An empty BoxInput is a delete.
	mustDispatch(t, d, s, Event{Kind: EventBoxInput, Box: 1, Value: "a"})
	mustDispatch(t, d, s, Event{Kind: EventBoxInput, Box: 1, Value: ""})
	if s.Round.UsedCount() != 0 {
		t.Errorf("empty input left a claim")
	}
}

func TestBoxEventsWithoutRound(t *testing.T) {
	d := newTestDispatcher()
	s := NewSession("s1")
	for _, k := range []EventKind{EventBoxInput, EventBoxClick, EventBoxDelete} {
		if _, err := d.Dispatch(s, Event{Kind: k, Box: 0, Value: "a"}); !errors.Is(err, ErrNoRound) {
			t.Errorf("%s: err = %v, want ErrNoRound", k, err)
		}
	}
}

func TestDispatchUnknownAndOverride(t *testing.T) {
	d := newTestDispatcher()
	s := NewSession("s1")
	if _, err := d.Dispatch(s, Event{Kind: EventKind(42)}); !errors.Is(err, ErrUnknownEvent) {
		t.Errorf("err = %v, want ErrUnknownEvent", err)
	}

	called := false
	d.Handle(EventBoxClick, func(*Session, Event) (Result, error) {
		called = true
		return Result{Selected: "X"}, nil
	})
	res, err := d.Dispatch(s, Event{Kind: EventBoxClick})
	if err != nil || !called || res.Selected != "X" {
		t.Errorf("override not used: %+v, %v", res, err)
	}
}
