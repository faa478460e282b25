package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vanderheijden86/playbook/pkg/content"
)

// ScenarioPickerModel represents the "¿Qué está pasando?" overlay
type ScenarioPickerModel struct {
	scenarios     []content.Scenario
	titles        map[content.Topic]string
	selectedIndex int
	width         int
	height        int
	theme         Theme
}

// NewScenarioPickerModel creates a new scenario picker. titles maps each
// topic to its display name for the hint line under every scenario.
func NewScenarioPickerModel(scenarios []content.Scenario, titles map[content.Topic]string, theme Theme) ScenarioPickerModel {
	return ScenarioPickerModel{
		scenarios:     scenarios,
		titles:        titles,
		selectedIndex: 0,
		theme:         theme,
	}
}

// SetSize updates the picker dimensions
func (m *ScenarioPickerModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// MoveUp moves selection up
func (m *ScenarioPickerModel) MoveUp() {
	if m.selectedIndex > 0 {
		m.selectedIndex--
	}
}

// MoveDown moves selection down
func (m *ScenarioPickerModel) MoveDown() {
	if m.selectedIndex < len(m.scenarios)-1 {
		m.selectedIndex++
	}
}

// SelectedScenario returns the currently selected scenario
func (m *ScenarioPickerModel) SelectedScenario() *content.Scenario {
	if len(m.scenarios) == 0 || m.selectedIndex >= len(m.scenarios) {
		return nil
	}
	return &m.scenarios[m.selectedIndex]
}

// SelectedIndex returns the current selection index
func (m *ScenarioPickerModel) SelectedIndex() int {
	return m.selectedIndex
}

// ScenarioCount returns the number of scenarios
func (m *ScenarioPickerModel) ScenarioCount() int {
	return len(m.scenarios)
}

// View renders the scenario picker overlay
func (m *ScenarioPickerModel) View() string {
	if m.width == 0 {
		m.width = 60
	}
	if m.height == 0 {
		m.height = 20
	}

	t := m.theme

	boxWidth := 50
	if m.width < 60 {
		boxWidth = m.width - 10
	}
	if boxWidth < 30 {
		boxWidth = 30
	}

	var lines []string

	titleStyle := t.Renderer.NewStyle().
		Foreground(t.Primary).
		Bold(true).
		MarginBottom(1)
	lines = append(lines, titleStyle.Render("¿Qué está pasando?"))
	lines = append(lines, "")

	for i, sc := range m.scenarios {
		isSelected := i == m.selectedIndex

		nameStyle := t.Renderer.NewStyle()
		if isSelected {
			nameStyle = nameStyle.Foreground(t.Primary).Bold(true)
		} else {
			nameStyle = nameStyle.Foreground(t.Base.GetForeground())
		}

		prefix := "  "
		if isSelected {
			prefix = "▸ "
		}
		lines = append(lines, nameStyle.Render(prefix+sc.Label))

		hintStyle := t.Renderer.NewStyle().
			Foreground(t.Secondary).
			Italic(true)
		lines = append(lines, hintStyle.Render("    "+truncateRunesHelper(m.hint(sc), boxWidth-8, "…")))

		if i < len(m.scenarios)-1 {
			lines = append(lines, "")
		}
	}

	lines = append(lines, "")
	footerStyle := t.Renderer.NewStyle().
		Foreground(t.Secondary).
		Italic(true)
	lines = append(lines, footerStyle.Render("j/k: navegar • enter: aplicar • esc: cancelar"))

	body := strings.Join(lines, "\n")

	boxStyle := t.Renderer.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.Primary).
		Padding(1, 2).
		Width(boxWidth)

	return lipgloss.Place(
		m.width,
		m.height,
		lipgloss.Center,
		lipgloss.Center,
		boxStyle.Render(body),
	)
}

func (m *ScenarioPickerModel) hint(sc content.Scenario) string {
	title := m.titles[sc.Topic]
	if title == "" {
		title = string(sc.Topic)
	}
	hint := fmt.Sprintf("→ %s, %d puntos clave", title, len(sc.Highlights))
	if sc.Objection != "" {
		hint += " + objeción"
	}
	return hint
}

// FormatScenarioInfo returns the status-line text after a scenario ran.
func FormatScenarioInfo(sc *content.Scenario) string {
	if sc == nil {
		return ""
	}
	return fmt.Sprintf("Escenario: %s", sc.Label)
}
