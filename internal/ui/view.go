package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"pou/internal/pet"
)

var gameStyles = struct {
	title   lipgloss.Style
	status  lipgloss.Style
	menuBox lipgloss.Style
	stats   lipgloss.Style
	low     lipgloss.Style
}{
	title: lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#FF75B5")).
		Padding(0, 1),

	status: lipgloss.NewStyle().
		Foreground(lipgloss.Color("#FF75B5")).
		Width(40),

	stats: lipgloss.NewStyle().
		Foreground(lipgloss.Color("#FF75B5")).
		Width(40),

	menuBox: lipgloss.NewStyle().
		Padding(0, 2),

	low: lipgloss.NewStyle().
		Foreground(lipgloss.Color("#FF5555")),
}

// View implements tea.Model
func (m Model) View() string {
	if m.Quitting {
		return "Thanks for playing!\n"
	}

	if m.InMemory {
		return lipgloss.JoinVertical(lipgloss.Left,
			m.renderTitle(),
			gameStyles.status.Render(pet.GetStatusWithLabel(m.Pet)),
			"",
			m.Memory.View(),
		)
	}

	// Show animation if one is active
	if m.anim.Playing() {
		return m.renderAnimation()
	}

	sections := []string{
		m.renderTitle(),
		"",
		m.renderStats(),
		"",
		m.renderStatus(),
	}

	if m.Message != "" && pet.TimeNow().Before(m.MessageExpires) {
		sections = append(sections, "", gameStyles.status.Render(m.Message))
	}

	sections = append(sections,
		"",
		m.renderMenu(),
		"",
		gameStyles.status.Render("Use arrows to move • enter to select • 1-4 items • m memory • q to quit"),
	)

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m Model) renderTitle() string {
	title := "🟤 " + m.Pet.Name
	if outfit := m.Pet.Outfit.Emoji(); outfit != "" {
		title += " " + outfit
	}
	return gameStyles.title.Render(title)
}

func makeBar(value float64, width int) string {
	filled := int(value / pet.MaxStat * float64(width))
	if filled > width {
		filled = width
	}
	if filled < 0 {
		filled = 0
	}
	return strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
}

func (m Model) renderStats() string {
	v := m.Pet.Vitals
	stats := []struct {
		name  string
		value float64
	}{
		{"Hunger", v.Hunger},
		{"Energy", v.Energy},
		{"Clean", v.Cleanliness},
		{"Health", v.Health},
	}

	var lines []string
	for _, stat := range stats {
		line := fmt.Sprintf("%-8s [%s] %3.0f%%", stat.name+":", makeBar(stat.value, 10), stat.value)
		if stat.value < pet.WantThreshold {
			line = gameStyles.low.Render(line)
		}
		lines = append(lines, line)
	}
	lines = append(lines, fmt.Sprintf("%-8s %s", "Outfit:", m.Pet.Outfit))

	return gameStyles.stats.Render(strings.Join(lines, "\n"))
}

func (m Model) renderStatus() string {
	return gameStyles.status.Render(fmt.Sprintf("Status: %s", pet.GetStatusWithLabel(m.Pet)))
}

func (m Model) renderMenu() string {
	var menuItems []string
	defs := pet.GetItemDefinitions()

	for i, choice := range menuChoices {
		cursor := " "
		if m.Choice == i {
			cursor = ">"
		}
		label := choice
		if i < len(defs) {
			label = fmt.Sprintf("%s %s", defs[i].Emoji, choice)
		}
		menuItems = append(menuItems, fmt.Sprintf("%s %s", cursor, label))
	}

	return gameStyles.menuBox.Render(strings.Join(menuItems, "\n"))
}

func (m Model) renderAnimation() string {
	animStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#FFD700")).
		Bold(true).
		Padding(1, 2)

	sections := []string{
		m.renderTitle(),
		"",
		animStyle.Render(GetAnimationFrame(m.anim.Current)),
	}

	if m.Message != "" && pet.TimeNow().Before(m.MessageExpires) {
		sections = append(sections, "", gameStyles.status.Render(m.Message))
	}

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}
