package ui

import (
	"fmt"
	"log"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"pou/internal/memory"
	"pou/internal/pet"
	"pou/internal/weather"
)

// FrameInterval is how often vitals and the minigame clock advance.
const FrameInterval = 100 * time.Millisecond

var menuChoices = []string{"Feed", "Rest", "Clean", "Heal", "Memory game", "Quit"}

const (
	choiceMemory = 4
	choiceQuit   = 5
)

// Options wires the model's collaborators.
type Options struct {
	Pet      *pet.Pet
	Game     *memory.Game
	Recorder memory.Recorder // may be nil
	Weather  weather.Source  // nil means clock only
	Save     func(*pet.Pet) error

	AutosaveInterval    time.Duration // zero disables autosave
	WeatherPollInterval time.Duration
}

// Model represents the game state
type Model struct {
	Pet            *pet.Pet
	Game           *memory.Game
	Memory         memory.Model
	InMemory       bool
	Choice         int
	Quitting       bool
	Message        string
	MessageExpires time.Time

	anim        *Animator
	broadcaster *weather.Broadcaster
	weatherSrc  weather.Source
	save        func(*pet.Pet) error

	autosave  time.Duration
	pollEvery time.Duration
	lastFrame time.Time
	lastSave  time.Time
	lastPoll  time.Time
}

type frameMsg time.Time
type animTickMsg struct {
	started time.Time
}

// NewModel creates a new game model
func NewModel(opts Options) Model {
	if opts.Game == nil {
		// the default config always validates
		opts.Game, _ = memory.New(memory.ConfigFromItems(memory.DefaultConfig()), nil)
	}

	anim := &Animator{}
	p := opts.Pet
	p.SetAnimator(anim)
	p.SetDelivery(opts.Game)

	src := opts.Weather
	if src == nil {
		src = weather.Clock{}
	}
	save := opts.Save
	if save == nil {
		save = func(p *pet.Pet) error { return pet.SaveState(p, "") }
	}

	mem := memory.NewModel(opts.Game, opts.Recorder)
	mem.Submit = func(symbol int) error {
		_, err := p.Use(pet.Item(symbol))
		return err
	}

	b := weather.NewBroadcaster()
	b.Subscribe(p.ApplyWeather)

	m := Model{
		Pet:         p,
		Game:        opts.Game,
		Memory:      mem,
		anim:        anim,
		broadcaster: b,
		weatherSrc:  src,
		save:        save,
		autosave:    opts.AutosaveInterval,
		pollEvery:   opts.WeatherPollInterval,
	}
	now := pet.TimeNow()
	b.Poll(src, now)
	m.lastPoll = now
	m.lastSave = now
	return m
}

// Init implements tea.Model
func (m Model) Init() tea.Cmd {
	return frame()
}

func frame() tea.Cmd {
	return tea.Tick(FrameInterval, func(t time.Time) tea.Msg {
		return frameMsg(t)
	})
}

func animTick(start time.Time) tea.Cmd {
	return tea.Tick(AnimationFrameDuration, func(t time.Time) tea.Msg {
		return animTickMsg{started: start}
	})
}

// Animation returns the reaction currently playing.
func (m Model) Animation() Animation {
	return m.anim.Current
}

// Update implements tea.Model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m.quit()
		}
		if m.InMemory {
			updated, cmd := m.Memory.Update(msg)
			m.Memory = updated.(memory.Model)
			return m, cmd
		}
		return m.handleMenuKey(msg)

	case memory.ExitMsg:
		m.leaveMemory()
		return m, nil

	case frameMsg:
		m.step(time.Time(msg))
		return m, frame()

	case animTickMsg:
		// Drop ticks that belong to an older animation (e.g., if a new action started)
		if m.anim.Advance(msg.started) {
			return m, animTick(msg.started)
		}
		return m, nil
	}

	return m, nil
}

func (m Model) handleMenuKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// While an animation is playing, ignore inputs except quit keys
	if m.anim.Playing() {
		if msg.String() == "q" {
			return m.quit()
		}
		return m, nil
	}

	switch msg.String() {
	case "q":
		return m.quit()
	case "up", "k":
		if m.Choice > 0 {
			m.Choice--
		}
	case "down", "j":
		if m.Choice < len(menuChoices)-1 {
			m.Choice++
		}
	case "1", "2", "3", "4":
		m.Choice = int(msg.String()[0] - '1')
		return m.selectChoice()
	case "m":
		m.Choice = choiceMemory
		return m.selectChoice()
	case "enter", " ":
		return m.selectChoice()
	}
	return m, nil
}

func (m Model) selectChoice() (tea.Model, tea.Cmd) {
	switch m.Choice {
	case choiceMemory:
		m.InMemory = true
		m.Game.Start()
		return m, nil
	case choiceQuit:
		return m.quit()
	default:
		return m.useItem(pet.Item(m.Choice))
	}
}

func (m Model) useItem(item pet.Item) (tea.Model, tea.Cmd) {
	result, err := m.Pet.Use(item)
	if err != nil {
		log.Printf("Use %s failed: %v", item, err)
		m.setMessage("Something went wrong.")
		return m, nil
	}
	if result.Delivered {
		return m, nil
	}

	def := pet.GetItemDefinition(item)
	m.setMessage(fmt.Sprintf("%s %s %s the %s (%s %.0f%%)", def.Emoji, m.Pet.Name, def.Message, def.Name, def.Need, result.After))
	if m.anim.Playing() {
		return m, animTick(m.anim.Current.StartTime)
	}
	return m, nil
}

// step advances the creature and the minigame to now, saving and polling the weather when due.
func (m *Model) step(now time.Time) {
	if !m.lastFrame.IsZero() && now.After(m.lastFrame) {
		m.Pet.Update(now.Sub(m.lastFrame).Seconds())
	}
	m.lastFrame = now
	m.Memory = m.Memory.Step(now)
	// the game stops itself after a held game over
	if m.InMemory && !m.Game.Active() {
		m.leaveMemory()
	}

	if m.pollEvery > 0 && now.Sub(m.lastPoll) >= m.pollEvery {
		m.broadcaster.Poll(m.weatherSrc, now)
		m.lastPoll = now
	}
	if m.autosave > 0 && now.Sub(m.lastSave) >= m.autosave {
		m.saveNow()
		m.lastSave = now
	}
}

func (m *Model) leaveMemory() {
	m.InMemory = false
	m.setMessage(fmt.Sprintf("🧠 Best this session: %d", m.Memory.Best()))
}

func (m *Model) saveNow() {
	if err := m.save(m.Pet); err != nil {
		log.Printf("Failed to save state: %v", err)
	}
}

func (m Model) quit() (tea.Model, tea.Cmd) {
	m.Game.Stop()
	m.saveNow()
	m.Quitting = true
	return m, tea.Quit
}

func (m *Model) setMessage(msg string) {
	m.Message = msg
	m.MessageExpires = pet.TimeNow().Add(3 * time.Second)
}

// Run starts the interactive creature screen.
func Run(opts Options) error {
	program := tea.NewProgram(NewModel(opts), tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("run ui: %w", err)
	}
	return nil
}
