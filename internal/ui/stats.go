package ui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"pou/internal/pet"
)

// StatsModel is a simple Bubble Tea model for displaying stats
type StatsModel struct {
	Pet  *pet.Pet
	Best int // best memory game score, -1 when unknown
}

// Init implements tea.Model
func (m StatsModel) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model
func (m StatsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m, tea.Quit
	case tea.MouseMsg:
		if msg.Action == tea.MouseActionPress {
			return m, tea.Quit
		}
	}
	return m, nil
}

// View implements tea.Model
func (m StatsModel) View() string {
	return RenderStats(m.Pet, m.Best) + "\nPress ESC, click, or any key to close..."
}

// RenderStats draws the boxed stats card.
func RenderStats(p *pet.Pet, best int) string {
	v := p.Vitals
	sick := "No"
	if p.IsSick() {
		sick = "Yes"
	}
	night := "No"
	if v.Night {
		night = "Yes"
	}
	bestDisplay := "-"
	if best >= 0 {
		bestDisplay = fmt.Sprintf("%d", best)
	}

	var s strings.Builder
	s.WriteString("╔════════════════════════════════════╗\n")
	s.WriteString(fmt.Sprintf("║  🟤 %-31s║\n", p.Name))
	s.WriteString("╠════════════════════════════════════╣\n")
	s.WriteString(fmt.Sprintf("║  Mood:    %-25s║\n", p.Mood()))
	s.WriteString(fmt.Sprintf("║  Status:  %-25s║\n", pet.GetStatus(p)))
	s.WriteString(fmt.Sprintf("║  Outfit:  %-25s║\n", p.Outfit))
	s.WriteString(fmt.Sprintf("║  Night:   %-25s║\n", night))
	s.WriteString("║                                    ║\n")
	s.WriteString(fmt.Sprintf("║  Hunger:      [%s] %3.0f%%      ║\n", makeBar(v.Hunger, 5), v.Hunger))
	s.WriteString(fmt.Sprintf("║  Energy:      [%s] %3.0f%%      ║\n", makeBar(v.Energy, 5), v.Energy))
	s.WriteString(fmt.Sprintf("║  Cleanliness: [%s] %3.0f%%      ║\n", makeBar(v.Cleanliness, 5), v.Cleanliness))
	s.WriteString(fmt.Sprintf("║  Health:      [%s] %3.0f%%      ║\n", makeBar(v.Health, 5), v.Health))
	s.WriteString("║                                    ║\n")
	s.WriteString(fmt.Sprintf("║  Sick:        %-21s║\n", sick))
	s.WriteString(fmt.Sprintf("║  Memory best: %-21s║\n", bestDisplay))
	s.WriteString("╚════════════════════════════════════╝\n")
	return s.String()
}

// DisplayStats shows the stats display
func DisplayStats(p *pet.Pet, best int) error {
	program := tea.NewProgram(StatsModel{Pet: p, Best: best}, tea.WithAltScreen(), tea.WithMouseAllMotion())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("stats display: %w", err)
	}
	return nil
}
