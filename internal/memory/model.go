package memory

import (
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"pou/internal/pet"
)

const tickInterval = 100 * time.Millisecond

var styles = struct {
	title     lipgloss.Style
	banner    lipgloss.Style
	slot      lipgloss.Style
	revealed  lipgloss.Style
	status    lipgloss.Style
	help      lipgloss.Style
	countdown lipgloss.Style
}{
	title: lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#FF75B5")).
		Padding(0, 1),
	banner: lipgloss.NewStyle().
		Foreground(lipgloss.Color("#FF75B5")).
		Width(40),
	slot: lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("#626262")).
		Padding(0, 1),
	revealed: lipgloss.NewStyle().
		Border(lipgloss.ThickBorder()).
		BorderForeground(lipgloss.Color("#FF75B5")).
		Bold(true).
		Padding(0, 1),
	status: lipgloss.NewStyle().
		Foreground(lipgloss.Color("#FF75B5")).
		Width(40),
	help: lipgloss.NewStyle().
		Foreground(lipgloss.Color("#626262")),
	countdown: lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#FFD700")).
		Padding(1, 4),
}

// Recorder stores a finished game's score.
type Recorder interface {
	RecordScore(score, round int) error
}

// ExitMsg is sent when the player leaves the minigame.
type ExitMsg struct{}

// TickMsg advances the game clock in standalone mode.
type TickMsg time.Time

// Model is the Bubble Tea model for the memory minigame.
type Model struct {
	Game *Game
	// Submit delivers a symbol chosen by the player. Defaults to Game.Deliver; the
	// creature screen routes it through the creature's item use instead.
	Submit     func(symbol int) error
	Standalone bool
	TermWidth  int
	TermHeight int

	lastTick time.Time
	feed     *feed
}

// feed turns game events into the banner line and records finished games.
type feed struct {
	banner   string
	recorder Recorder
	best     int
}

func (f *feed) handle(e Event) {
	switch e.Kind {
	case EventRoundStarted:
		f.banner = fmt.Sprintf("Round %d: watch closely!", e.Round)
	case EventTurnOpened:
		f.banner = "Your turn! Repeat the sequence."
	case EventCorrect:
		f.banner = fmt.Sprintf("Correct! %s", symbolLabel(e.Symbol))
	case EventRoundComplete:
		f.banner = fmt.Sprintf("Round %d complete!", e.Round)
	case EventWrong:
		f.banner = fmt.Sprintf("Wrong! Expected %s, got %s.", symbolLabel(e.Expected), symbolLabel(e.Symbol))
	case EventGameOver:
		if e.Score > f.best {
			f.best = e.Score
		}
		f.banner += fmt.Sprintf(" Game over, score %d.", e.Score)
		if f.recorder != nil {
			if err := f.recorder.RecordScore(e.Score, e.Round); err != nil {
				log.Printf("Failed to record score: %v", err)
			}
		}
	case EventStopped:
		f.banner = "Game stopped."
	}
}

// NewModel wraps g in a model. rec may be nil.
func NewModel(g *Game, rec Recorder) Model {
	f := &feed{recorder: rec, banner: "Press enter to start"}
	g.Subscribe(f.handle)
	return Model{Game: g, feed: f}
}

// Run plays the minigame on its own screen.
func Run(g *Game, rec Recorder) error {
	model := NewModel(g, rec)
	model.Standalone = true

	program := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("memory game: %w", err)
	}
	return nil
}

func tick() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

// Init implements tea.Model
func (m Model) Init() tea.Cmd {
	m.Game.Start()
	return tick()
}

// Step advances the game by the wall time since the previous step.
func (m Model) Step(now time.Time) Model {
	if !m.lastTick.IsZero() && now.After(m.lastTick) {
		m.Game.Advance(now.Sub(m.lastTick))
	}
	m.lastTick = now
	return m
}

// Best returns the best score seen by this model.
func (m Model) Best() int {
	if m.feed == nil {
		return 0
	}
	return m.feed.best
}

// Banner returns the latest game message.
func (m Model) Banner() string {
	if m.feed == nil {
		return ""
	}
	return m.feed.banner
}

// Update implements tea.Model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.TermWidth = msg.Width
		m.TermHeight = msg.Height
		return m, nil

	case TickMsg:
		m = m.Step(time.Time(msg))
		return m, tick()
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch key := msg.String(); key {
	case "ctrl+c", "q":
		if m.Standalone {
			m.Game.Stop()
			return m, tea.Quit
		}
	case "esc":
		m.Game.Stop()
		if m.Standalone {
			return m, tea.Quit
		}
		return m, func() tea.Msg { return ExitMsg{} }
	case "r", "enter":
		m.Game.Reset()
		m.lastTick = time.Time{}
	case "1", "2", "3", "4", "5", "6", "7", "8", "9":
		symbol := int(key[0] - '1')
		if symbol >= m.Game.Config().AlphabetSize {
			return m, nil
		}
		submit := m.Submit
		if submit == nil {
			submit = m.Game.Deliver
		}
		if err := submit(symbol); err != nil {
			log.Printf("Memory input %d failed: %v", symbol, err)
			if errors.Is(err, ErrSymbolOutOfRange) && m.feed != nil {
				m.feed.banner = "That item is not part of the game."
			}
		}
	}
	return m, nil
}

// View implements tea.Model
func (m Model) View() string {
	g := m.Game
	title := styles.title.Render("🧠 Memory Game")
	info := styles.status.Render(fmt.Sprintf("Round %d • Score %d • Best %d", g.Round(), g.Score(), m.Best()))

	sections := []string{title, "", info, ""}

	if v, ok := g.Countdown(); ok {
		label := "GO!"
		if v > 0 {
			label = fmt.Sprintf("%d", v)
		}
		sections = append(sections, styles.countdown.Render(label))
	} else {
		sections = append(sections, m.renderSlots())
	}

	sections = append(sections,
		"",
		styles.status.Render(m.renderProgress()),
		styles.banner.Render(m.Banner()),
		"",
		styles.help.Render(m.helpText()),
	)
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m Model) renderSlots() string {
	_, revealed, shown := m.Game.Revealed()
	defs := pet.GetItemDefinitions()

	var slots []string
	for i := 0; i < m.Game.Config().AlphabetSize; i++ {
		label := fmt.Sprintf("%d", i+1)
		if i < len(defs) {
			label = fmt.Sprintf("%d %s", i+1, defs[i].Emoji)
		}
		style := styles.slot
		if shown && i == revealed {
			style = styles.revealed
		}
		slots = append(slots, style.Render(label))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, slots...)
}

func (m Model) renderProgress() string {
	g := m.Game
	switch g.Phase() {
	case PhaseIdle:
		return "Not playing"
	case PhaseRevealing:
		return "Watch the sequence..."
	case PhaseGameOver:
		return fmt.Sprintf("Final score: %d", g.Score())
	}

	input := g.PlayerInput()
	marks := make([]string, len(g.Sequence()))
	for i := range marks {
		if i < len(input) {
			marks[i] = symbolEmoji(input[i])
		} else {
			marks[i] = "·"
		}
	}
	return "Your answer: " + strings.Join(marks, " ")
}

func (m Model) helpText() string {
	keys := fmt.Sprintf("1-%d", m.Game.Config().AlphabetSize)
	if m.Standalone {
		return keys + " choose item • enter/r restart • esc/q quit"
	}
	return keys + " give item • r restart • esc back"
}

func symbolEmoji(symbol int) string {
	if def := pet.GetItemDefinition(pet.Item(symbol)); def != nil {
		return def.Emoji
	}
	return fmt.Sprintf("%d", symbol+1)
}

func symbolLabel(symbol int) string {
	if def := pet.GetItemDefinition(pet.Item(symbol)); def != nil {
		return def.Emoji + " " + def.Name
	}
	return fmt.Sprintf("#%d", symbol+1)
}

// ConfigFromItems returns cfg with the alphabet sized to the creature's item kinds.
func ConfigFromItems(cfg Config) Config {
	cfg.AlphabetSize = pet.ItemCount()
	return cfg
}

