// internal/game/types.go
//
// Core type definitions for the letter box matcher.
// Defines:
//   - Tile: one jumbled letter on the board.
//   - Box: one single-letter input under the board.
//   - Round: tiles, boxes and the letter index for one submission.
//   - Snapshot and its views: render-ready copies for front-ends.

package game

// Tile is a displayed letter. A tile is Used iff some box claims it.
type Tile struct {
	ID        int  // Position in display order (row-major).
	Letter    rune // 'A'..'Z'.
	Row       int  // Display row.
	Used      bool // True while a box claims this tile.
	ClaimedBy int  // Claiming box index, or -1.
}

// Box is an interactive single-letter input, created 1:1 with tiles.
type Box struct {
	Index     int  // Matches tile creation order.
	Letter    rune // Current content, or 0 when empty.
	Incorrect bool // Letter had no unclaimed tile when typed.
	Tile      int  // Claimed tile ID, or -1.
}

// Round holds all matcher state for one submitted word.
// It is discarded wholesale on the next submission.
type Round struct {
	rev      int // bumped on every state-changing edit
	tiles    []Tile
	boxes    []Box
	rows     [][]int        // tile IDs per display row
	byLetter map[rune][]int // letter → tile IDs in display order
}

// TileView is a render-ready copy of a Tile.
type TileView struct {
	ID     int    `json:"id"`
	Letter string `json:"letter"`
	Used   bool   `json:"used"`
}

// BoxView is a render-ready copy of a Box.
type BoxView struct {
	Index     int    `json:"index"`
	Value     string `json:"value"`
	Incorrect bool   `json:"incorrect"`
}

// Snapshot is the full visible state of a round. Rev counts state-changing
// edits, so clients can drop a snapshot older than the last one applied.
type Snapshot struct {
	Rev   int          `json:"rev"`
	Rows  [][]TileView `json:"rows"`
	Boxes []BoxView    `json:"boxes"`
	Used  int          `json:"used"`
}
