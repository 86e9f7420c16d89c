// cmd/jumble-tui/model.go
//
// Bubbletea model for the terminal front-end.
// Two phases: a word prompt, then the board of tiles and boxes. Every key
// press on the board becomes a game.Event sent through the Dispatcher.

package main

import (
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/anagram-manager/internal/game"
)

var (
	colorText      = lipgloss.Color("#ffffff")
	colorMuted     = lipgloss.Color("#626262")
	colorFocus     = lipgloss.Color("#f368e0")
	colorIncorrect = lipgloss.Color("#ff5f5f")

	styleTitle    = lipgloss.NewStyle().Bold(true).MarginBottom(1)
	styleAlert    = lipgloss.NewStyle().Foreground(colorIncorrect)
	styleTile     = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1).Foreground(colorText).BorderForeground(colorText)
	styleTileUsed = styleTile.Foreground(colorMuted).BorderForeground(colorMuted)
	styleBox      = lipgloss.NewStyle().Border(lipgloss.NormalBorder(), false, false, true, false).Padding(0, 1).BorderForeground(colorText)
	styleBoxFocus = styleBox.BorderForeground(colorFocus).Foreground(colorFocus)
)

type phase int

const (
	phaseWord phase = iota
	phaseBoard
)

type keymap struct {
	submit  key.Binding
	left    key.Binding
	right   key.Binding
	erase   key.Binding
	sel     key.Binding
	newWord key.Binding
	quit    key.Binding
}

func newKeymap() keymap {
	return keymap{
		submit:  key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "jumble!")),
		left:    key.NewBinding(key.WithKeys("left", "shift+tab"), key.WithHelp("←", "prev box")),
		right:   key.NewBinding(key.WithKeys("right", "tab"), key.WithHelp("→", "next box")),
		erase:   key.NewBinding(key.WithKeys("backspace", "delete"), key.WithHelp("⌫", "clear box")),
		sel:     key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "select")),
		newWord: key.NewBinding(key.WithKeys("ctrl+n"), key.WithHelp("ctrl+n", "new word")),
		quit:    key.NewBinding(key.WithKeys("esc", "ctrl+c"), key.WithHelp("esc", "quit")),
	}
}

// model is the bubbletea model. All game state lives in sess and is only
// changed through dispatch.
type model struct {
	dispatch *game.Dispatcher
	sess     *game.Session

	phase    phase
	input    textinput.Model
	cursor   int
	selected string

	keymap keymap
	help   help.Model
}

func newModel(d *game.Dispatcher) *model {
	in := textinput.New()
	in.Placeholder = "type a word"
	in.CharLimit = 64
	in.Focus()
	return &model{
		dispatch: d,
		sess:     game.NewSession("tui"),
		input:    in,
		keymap:   newKeymap(),
		help:     help.New(),
	}
}

func (m *model) Init() tea.Cmd { return textinput.Blink }

func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
	if key.Matches(keyMsg, m.keymap.quit) {
		return m, tea.Quit
	}
	if m.phase == phaseWord {
		return m.updateWord(keyMsg)
	}
	return m.updateBoard(keyMsg)
}

func (m *model) updateWord(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keymap.submit) {
		m.send(game.Event{Kind: game.EventSubmit, Word: m.input.Value()})
		if m.sess.Round != nil {
			m.phase = phaseBoard
			m.cursor = 0
			m.selected = ""
			m.input.Reset()
			m.input.Blur()
		}
		return m, nil
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *model) updateBoard(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	last := m.sess.Round.Len() - 1
	m.selected = ""
	switch {
	case key.Matches(msg, m.keymap.newWord):
		m.phase = phaseWord
		return m, m.input.Focus()
	case key.Matches(msg, m.keymap.left):
		m.cursor = max(m.cursor-1, 0)
	case key.Matches(msg, m.keymap.right):
		m.cursor = min(m.cursor+1, last)
	case key.Matches(msg, m.keymap.erase):
		m.send(game.Event{Kind: game.EventBoxDelete, Box: m.cursor})
	case key.Matches(msg, m.keymap.sel):
		res := m.send(game.Event{Kind: game.EventBoxClick, Box: m.cursor})
		m.selected = res.Selected
	case msg.Type == tea.KeyRunes && len(msg.Runes) > 0:
		res := m.send(game.Event{Kind: game.EventBoxInput, Box: m.cursor, Value: string(msg.Runes[0])})
		if res.Box.Value != "" {
			m.cursor = min(m.cursor+1, last)
		}
	}
	return m, nil
}

// send dispatches ev against the session. Errors here mean a programming
// mistake (cursor out of range, box event without a round), so they are
// logged and otherwise ignored.
func (m *model) send(ev game.Event) game.Result {
	res, err := m.dispatch.Dispatch(m.sess, ev)
	if err != nil {
		log.Error().Err(err).Stringer("event", ev.Kind).Int("box", ev.Box).Msg("dispatch")
		return res
	}
	log.Debug().Stringer("event", ev.Kind).Int("box", ev.Box).Str("value", ev.Value).Msg("dispatch")
	return res
}

func (m *model) View() string {
	var b strings.Builder
	b.WriteString(styleTitle.Render("Anagram Manager"))
	b.WriteString("\n")

	if m.phase == phaseWord {
		b.WriteString("What's the word? ")
		b.WriteString(m.input.View())
		b.WriteString("\n")
		if m.sess.Alert != "" {
			b.WriteString(styleAlert.Render(m.sess.Alert))
			b.WriteString("\n")
		}
		b.WriteString("\n")
		b.WriteString(m.help.ShortHelpView([]key.Binding{m.keymap.submit, m.keymap.quit}))
		return b.String()
	}

	snap := m.sess.Round.Snapshot()
	b.WriteString(renderTiles(snap))
	b.WriteString("\n\n")
	b.WriteString(renderBoxes(snap, m.cursor))
	b.WriteString("\n")
	if m.selected != "" {
		b.WriteString("selected: " + m.selected + "\n")
	}
	b.WriteString("\n")
	b.WriteString(m.help.ShortHelpView([]key.Binding{
		m.keymap.left, m.keymap.right, m.keymap.erase, m.keymap.sel, m.keymap.newWord, m.keymap.quit,
	}))
	return b.String()
}

func renderTiles(snap game.Snapshot) string {
	rows := make([]string, 0, len(snap.Rows))
	for _, row := range snap.Rows {
		cells := make([]string, 0, len(row))
		for _, t := range row {
			style := styleTile
			if t.Used {
				style = styleTileUsed
			}
			cells = append(cells, style.Render(t.Letter))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cells...))
	}
	return lipgloss.JoinVertical(lipgloss.Center, rows...)
}

func renderBoxes(snap game.Snapshot, cursor int) string {
	cells := make([]string, 0, len(snap.Boxes))
	for _, bx := range snap.Boxes {
		v := bx.Value
		if v == "" {
			v = " "
		}
		style := styleBox
		if bx.Index == cursor {
			style = styleBoxFocus
		}
		if bx.Incorrect {
			style = style.Foreground(colorIncorrect).BorderForeground(colorIncorrect)
		}
		cells = append(cells, style.Render(v))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, cells...)
}
