package ui

import (
	"math"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"pou/internal/memory"
	"pou/internal/pet"
	"pou/internal/weather"
)

type fixedSource struct{ v int }

func (f fixedSource) Intn(n int) int { return f.v % n }

type testHarness struct {
	model Model
	saves int
}

func newHarness(t *testing.T, cond weather.Conditions) *testHarness {
	t.Helper()
	original := pet.TimeNow
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	pet.TimeNow = func() time.Time { return now }
	t.Cleanup(func() { pet.TimeNow = original })

	g, err := memory.New(memory.Config{AlphabetSize: pet.ItemCount()}, fixedSource{v: int(pet.ItemSoap)})
	if err != nil {
		t.Fatal(err)
	}

	h := &testHarness{}
	h.model = NewModel(Options{
		Pet:                 pet.New("Test", pet.DefaultConfig(), pet.DefaultAmounts()),
		Game:                g,
		Weather:             weather.Forced{Fixed: cond},
		Save:                func(*pet.Pet) error { h.saves++; return nil },
		AutosaveInterval:    30 * time.Second,
		WeatherPollInterval: time.Minute,
	})
	return h
}

func (h *testHarness) send(msg tea.Msg) tea.Cmd {
	updated, cmd := h.model.Update(msg)
	h.model = updated.(Model)
	return cmd
}

func key(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestNewModelAppliesWeather(t *testing.T) {
	h := newHarness(t, weather.Conditions{Snowing: true, Night: true})

	if h.model.Pet.Outfit != weather.OutfitBeanie {
		t.Errorf("Outfit = %q, want beanie", h.model.Pet.Outfit)
	}
	if !h.model.Pet.Vitals.Night {
		t.Error("Expected night applied to vitals")
	}
}

func TestMenuFeedStartsAnimation(t *testing.T) {
	h := newHarness(t, weather.Conditions{})
	h.model.Pet.Vitals.Set(pet.NeedHunger, 50)

	cmd := h.send(key("enter")) // Feed is the first choice
	if h.model.Pet.Vitals.Hunger != 70 {
		t.Errorf("Expected hunger 70 after feeding, got %f", h.model.Pet.Vitals.Hunger)
	}
	if h.model.Animation().Type != AnimFeed {
		t.Errorf("Expected feed animation, got %d", h.model.Animation().Type)
	}
	if cmd == nil {
		t.Error("Expected an animation tick command")
	}

	// inputs are ignored while the animation plays
	h.send(key("2"))
	if h.model.Pet.Vitals.Energy != pet.MaxStat || h.model.Animation().Type != AnimFeed {
		t.Error("Menu input should be ignored during an animation")
	}

	started := h.model.Animation().StartTime
	for i := 0; i < len(AnimationFrames[AnimFeed]); i++ {
		h.send(animTickMsg{started: started})
	}
	if h.model.Animation().Type != AnimNone {
		t.Error("Animation should finish after all frames")
	}
}

func TestNumberKeysUseItems(t *testing.T) {
	h := newHarness(t, weather.Conditions{})
	h.model.Pet.Vitals.Set(pet.NeedCleanliness, 10)

	h.send(key("3"))
	if h.model.Pet.Vitals.Cleanliness != 30 {
		t.Errorf("Expected cleanliness 30, got %f", h.model.Pet.Vitals.Cleanliness)
	}
	if !strings.Contains(h.model.Message, "Soap") {
		t.Errorf("Expected a soap message, got %q", h.model.Message)
	}
}

func TestMemoryModeRoutesItemsToGame(t *testing.T) {
	h := newHarness(t, weather.Conditions{})
	h.model.Pet.Vitals.Set(pet.NeedCleanliness, 10)

	h.send(key("m"))
	if !h.model.InMemory || !h.model.Game.IsPlayerTurn() {
		t.Fatalf("Expected memory mode at the player's turn, in memory %t phase %s", h.model.InMemory, h.model.Game.Phase())
	}

	// the sequence is [Soap]; key 3 gives the soap to the game, not the creature
	h.send(key("3"))
	if h.model.Game.Round() != 2 {
		t.Errorf("Expected round 2 after delivering soap, got %d", h.model.Game.Round())
	}
	if h.model.Pet.Vitals.Cleanliness != 10 {
		t.Errorf("Delivered soap must not clean the creature, cleanliness = %f", h.model.Pet.Vitals.Cleanliness)
	}

	cmd := h.send(key("esc"))
	if cmd == nil {
		t.Fatal("Esc should return the exit command")
	}
	h.send(cmd())
	if h.model.InMemory || h.model.Game.Active() {
		t.Error("Esc should leave memory mode and stop the game")
	}

	// back on the menu the soap cleans again
	h.send(key("3"))
	if h.model.Pet.Vitals.Cleanliness != 30 {
		t.Errorf("Expected cleanliness 30 after leaving the game, got %f", h.model.Pet.Vitals.Cleanliness)
	}
}

func TestFrameTickDecaysAndAutosaves(t *testing.T) {
	h := newHarness(t, weather.Conditions{})
	base := pet.TimeNow()

	h.send(frameMsg(base))
	h.send(frameMsg(base.Add(10 * time.Second)))
	if math.Abs(h.model.Pet.Vitals.Hunger-90) > 1e-9 {
		t.Errorf("Expected hunger 90 after 10s of frames, got %f", h.model.Pet.Vitals.Hunger)
	}
	if h.saves != 0 {
		t.Errorf("Saved too early: %d", h.saves)
	}

	h.send(frameMsg(base.Add(30 * time.Second)))
	if h.saves != 1 {
		t.Errorf("Expected one autosave after 30s, got %d", h.saves)
	}
}

func TestQuitSaves(t *testing.T) {
	h := newHarness(t, weather.Conditions{})

	cmd := h.send(key("q"))
	if cmd == nil || !h.model.Quitting {
		t.Fatal("q should quit")
	}
	if h.saves != 1 {
		t.Errorf("Expected save on quit, got %d", h.saves)
	}
	if got := h.model.View(); !strings.Contains(got, "Thanks for playing") {
		t.Errorf("Unexpected quit view %q", got)
	}
}

func TestMenuNavigation(t *testing.T) {
	h := newHarness(t, weather.Conditions{})
	for i := 0; i < 10; i++ {
		h.send(key("down"))
	}
	if h.model.Choice != len(menuChoices)-1 {
		t.Errorf("Choice = %d, want %d", h.model.Choice, len(menuChoices)-1)
	}
	h.send(key("k"))
	if h.model.Choice != choiceMemory {
		t.Errorf("Choice = %d, want %d", h.model.Choice, choiceMemory)
	}
}

func TestViewShowsVitals(t *testing.T) {
	h := newHarness(t, weather.Conditions{Sunny: true})
	view := h.model.View()

	for _, want := range []string{"Test", "Hunger", "Energy", "Clean", "Health", "Memory game", "sunglasses"} {
		if !strings.Contains(view, want) {
			t.Errorf("Expected %q in view:\n%s", want, view)
		}
	}
}

func TestRenderStats(t *testing.T) {
	p := pet.New("Box", pet.DefaultConfig(), pet.DefaultAmounts())
	p.Vitals.Set(pet.NeedHunger, 30)

	out := RenderStats(p, 7)
	for _, want := range []string{"Box", "Hunger", "30%", "Memory best: 7", "Sick:        Yes"} {
		if !strings.Contains(out, want) {
			t.Errorf("Expected %q in stats:\n%s", want, out)
		}
	}
	if out := RenderStats(p, -1); !strings.Contains(out, "Memory best: -") {
		t.Errorf("Expected unknown best score marker:\n%s", out)
	}
}

func TestMemoryModeReturnsToMenuAfterGameOverHold(t *testing.T) {
	h := newHarness(t, weather.Conditions{})
	cfg := h.model.Game.Config()
	cfg.GameOverHold = 5 * time.Second
	g, err := memory.New(cfg, fixedSource{v: int(pet.ItemSoap)})
	if err != nil {
		t.Fatal(err)
	}
	h.model = NewModel(Options{
		Pet:  h.model.Pet,
		Game: g,
		Save: func(*pet.Pet) error { return nil },
	})

	base := pet.TimeNow()
	h.send(key("m"))
	h.send(frameMsg(base))
	h.send(key("1")) // the sequence is [Soap]
	if !h.model.Game.IsGameOver() {
		t.Fatalf("Expected game over, got %s", h.model.Game.Phase())
	}

	h.send(frameMsg(base.Add(4 * time.Second)))
	if !h.model.InMemory {
		t.Fatal("Game over screen should stay up during the hold")
	}
	h.send(frameMsg(base.Add(5 * time.Second)))
	if h.model.InMemory || h.model.Game.Active() {
		t.Error("Expected the menu once the held game over ends")
	}
	if !strings.Contains(h.model.Message, "Best this session: 0") {
		t.Errorf("Unexpected message %q", h.model.Message)
	}
}
