// internal/words/words.go
//
// Word preparation for a jumble round.
//
// Responsibilities:
//   - Sanitize raw input down to uppercase ASCII letters.
//   - Pick a row count from the sanitized length.
//   - Shuffle the letters (Fisher–Yates) and split them into display rows.
//
// Row thresholds (sanitized length → rows):
//   1–2 → 1,  3–6 → 2,  7–12 → 3,  13–16 → 4,  ≥17 → 5
//
// Constraints:
//   • Only A–Z survive sanitizing; accented and other non-ASCII letters are dropped.
//   • Nothing here does I/O; a nil *rand.Rand uses the process-wide source.

package words

import (
	"errors"
	"math/rand/v2"
	"strings"
)

// NoLettersMessage is the exact text shown when a submission has no letters.
const NoLettersMessage = "No alphabetical characters entered"

// ErrNoLetters is returned by Prepare when sanitizing leaves nothing.
var ErrNoLetters = errors.New(NoLettersMessage)

// Prepared is the output of Prepare: one round's worth of letters.
type Prepared struct {
	Original string   // sanitized input, before shuffling
	Letters  []rune   // shuffled letters, display order
	Rows     [][]rune // Letters split into display rows
}

// Prepare sanitizes raw, shuffles the letters and partitions them into rows.
// Returns ErrNoLetters if raw contains no A–Z characters.
func Prepare(raw string, rng *rand.Rand) (Prepared, error) {
	clean := Sanitize(raw)
	if clean == "" {
		return Prepared{}, ErrNoLetters
	}
	letters := []rune(clean)
	Shuffle(letters, rng)
	return Prepared{
		Original: clean,
		Letters:  letters,
		Rows:     Partition(letters, RowCount(len(letters))),
	}, nil
}

// Sanitize keeps ASCII letters only and uppercases them.
func Sanitize(raw string) string {
	var b strings.Builder
	b.Grow(len(raw))
	for _, r := range raw {
		if r >= 'a' && r <= 'z' {
			r -= 'a' - 'A'
		}
		if IsLetter(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// IsLetter reports whether r is an uppercase ASCII letter.
func IsLetter(r rune) bool { return r >= 'A' && r <= 'Z' }

// RowCount maps a sanitized length to the number of display rows.
func RowCount(n int) int {
	switch {
	case n <= 0:
		return 0
	case n <= 2:
		return 1
	case n <= 6:
		return 2
	case n <= 12:
		return 3
	case n <= 16:
		return 4
	default:
		return 5
	}
}

// Shuffle permutes letters in place with an unbiased Fisher–Yates pass.
func Shuffle(letters []rune, rng *rand.Rand) {
	intN := rand.IntN
	if rng != nil {
		intN = rng.IntN
	}
	for i := len(letters) - 1; i > 0; i-- {
		j := intN(i + 1)
		letters[i], letters[j] = letters[j], letters[i]
	}
}

// Partition splits letters into chunks of ceil(n/rows), keeping order.
// The last chunk may be shorter. rows <= 0 yields nil.
func Partition(letters []rune, rows int) [][]rune {
	n := len(letters)
	if n == 0 || rows <= 0 {
		return nil
	}
	size := (n + rows - 1) / rows
	out := make([][]rune, 0, rows)
	for start := 0; start < n; start += size {
		end := start + size
		if end > n {
			end = n
		}
		out = append(out, letters[start:end:end])
	}
	return out
}
