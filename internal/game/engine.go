// internal/game/engine.go
//
// Letter box matcher for a single round.
// Responsibilities:
//   - Lay out tiles from a prepared word and create one box per tile.
//   - Apply box edits: release the previous claim, claim the first unused
//     tile bearing the new letter, or flag the box incorrect.
//   - Expose snapshots for renderers.
//
// Notes:
//   - Matching is first-unclaimed-wins in display order, never by position.
//   - Box input is reduced to at most one A–Z letter; anything else is empty.
package game

import (
	"errors"

	"github.com/robalobadob/anagram-manager/internal/words"
)

// ErrNoSuchBox is returned for a box index outside the round.
var ErrNoSuchBox = errors.New("no such box")

// NewRound lays out tiles row by row and creates a matching box for each.
func NewRound(p words.Prepared) *Round {
	n := len(p.Letters)
	r := &Round{
		tiles:    make([]Tile, 0, n),
		boxes:    make([]Box, n),
		rows:     make([][]int, len(p.Rows)),
		byLetter: make(map[rune][]int),
	}
	for row, letters := range p.Rows {
		for _, l := range letters {
			id := len(r.tiles)
			r.tiles = append(r.tiles, Tile{ID: id, Letter: l, Row: row, ClaimedBy: -1})
			r.rows[row] = append(r.rows[row], id)
			r.byLetter[l] = append(r.byLetter[l], id)
		}
	}
	for i := range r.boxes {
		r.boxes[i] = Box{Index: i, Tile: -1}
	}
	return r
}

// Input applies a box content change and returns the box's new state.
//
// Transition from previous letter p to new letter v:
//   - v == p: nothing changes.
//   - p set: the tile claimed by this box is released, Incorrect cleared.
//   - v empty: the box is cleared.
//   - otherwise: the first unused tile bearing v is claimed, or the box is
//     flagged Incorrect and nothing is claimed.
func (r *Round) Input(box int, value string) (BoxView, error) {
	b, err := r.box(box)
	if err != nil {
		return BoxView{}, err
	}
	v := normalize(value)
	if v == b.Letter {
		return b.view(), nil
	}
	r.rev++
	if b.Letter != 0 {
		r.release(b)
	}
	b.Letter = v
	if v == 0 {
		return b.view(), nil
	}
	if id, ok := r.firstUnused(v); ok {
		r.tiles[id].Used = true
		r.tiles[id].ClaimedBy = b.Index
		b.Tile = id
	} else {
		b.Incorrect = true
	}
	return b.view(), nil
}

// Select returns a box's content for highlighting. It never changes state.
func (r *Round) Select(box int) (string, error) {
	b, err := r.box(box)
	if err != nil {
		return "", err
	}
	return b.view().Value, nil
}

// Len reports the number of tiles (and boxes).
func (r *Round) Len() int { return len(r.tiles) }

// UsedCount reports how many tiles are currently claimed.
func (r *Round) UsedCount() int {
	n := 0
	for _, t := range r.tiles {
		if t.Used {
			n++
		}
	}
	return n
}

// Tiles returns a copy of the tiles in display order.
func (r *Round) Tiles() []Tile { return append([]Tile(nil), r.tiles...) }

// Box returns a copy of box i.
func (r *Round) Box(i int) (Box, error) {
	b, err := r.box(i)
	if err != nil {
		return Box{}, err
	}
	return *b, nil
}

// Snapshot copies the round into render-ready views.
func (r *Round) Snapshot() Snapshot {
	s := Snapshot{
		Rev:   r.rev,
		Rows:  make([][]TileView, len(r.rows)),
		Boxes: make([]BoxView, len(r.boxes)),
	}
	for i, ids := range r.rows {
		s.Rows[i] = make([]TileView, len(ids))
		for j, id := range ids {
			t := r.tiles[id]
			s.Rows[i][j] = TileView{ID: t.ID, Letter: string(t.Letter), Used: t.Used}
			if t.Used {
				s.Used++
			}
		}
	}
	for i := range r.boxes {
		s.Boxes[i] = r.boxes[i].view()
	}
	return s
}

// box bounds-checks i and returns a pointer into the round.
func (r *Round) box(i int) (*Box, error) {
	if i < 0 || i >= len(r.boxes) {
		return nil, ErrNoSuchBox
	}
	return &r.boxes[i], nil
}

// release frees the tile claimed by b, if any, and clears its flag.
func (r *Round) release(b *Box) {
	if b.Tile >= 0 {
		t := &r.tiles[b.Tile]
		t.Used = false
		t.ClaimedBy = -1
		b.Tile = -1
	}
	b.Incorrect = false
}

// firstUnused finds the first tile bearing l that no box claims.
func (r *Round) firstUnused(l rune) (int, bool) {
	for _, id := range r.byLetter[l] {
		if !r.tiles[id].Used {
			return id, true
		}
	}
	return 0, false
}

// normalize reduces raw box input to its first letter, uppercased, or 0.
func normalize(value string) rune {
	for _, c := range value {
		if c >= 'a' && c <= 'z' {
			c -= 'a' - 'A'
		}
		if words.IsLetter(c) {
			return c
		}
		return 0
	}
	return 0
}

func (b *Box) view() BoxView {
	v := BoxView{Index: b.Index, Incorrect: b.Incorrect}
	if b.Letter != 0 {
		v.Value = string(b.Letter)
	}
	return v
}
