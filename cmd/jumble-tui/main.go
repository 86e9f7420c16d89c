// Command jumble-tui plays the anagram game in a terminal.
//
// Usage:
//
//	jumble-tui [-seed N]
//
// Set JUMBLE_LOG=/path/to/file to write debug logs; the terminal itself is
// owned by the UI, so nothing is logged otherwise.
package main

import (
	"flag"
	"fmt"
	"math/rand/v2"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/anagram-manager/internal/game"
)

func main() {
	seed := flag.Uint64("seed", 0, "Shuffle seed for reproducible rounds (0 = random)")
	flag.Parse()

	_ = godotenv.Load()

	closeLog, err := setupLogging(os.Getenv("JUMBLE_LOG"))
	if err != nil {
		fmt.Fprintln(os.Stderr, "log file:", err)
		os.Exit(1)
	}
	defer closeLog()

	var rng *rand.Rand
	if *seed != 0 {
		rng = rand.New(rand.NewPCG(*seed, *seed))
	}

	p := tea.NewProgram(newModel(game.NewDispatcher(rng)), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		log.Error().Err(err).Msg("program exited")
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// setupLogging points the global zerolog logger at path, or disables it.
func setupLogging(path string) (func(), error) {
	if path == "" {
		zerolog.SetGlobalLevel(zerolog.Disabled)
		return func() {}, nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, err
	}
	zerolog.SetGlobalLevel(zerolog.DebugLevel)
	log.Logger = zerolog.New(f).With().Timestamp().Logger()
	return func() { _ = f.Close() }, nil
}
