package ui

import (
	"fmt"
	"strings"
)

// RenderProgressBar renders done/total as a mini bar followed by the count.
// The bar turns green once every item of the topic is checked.
func RenderProgressBar(done, total, width int, t Theme) string {
	if width <= 0 || total <= 0 {
		return ""
	}
	done = max(0, min(done, total))
	filled := done * width / total

	color := t.Secondary
	switch {
	case done == total:
		color = t.Done
	case done > 0:
		color = t.Primary
	}

	bar := strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
	return t.Renderer.NewStyle().Foreground(color).Render(bar) +
		t.MutedText.Render(fmt.Sprintf(" %d/%d", done, total))
}

// RenderDivider separates the stacked checklist and objection panels.
func RenderDivider(width int, t Theme) string {
	if width <= 0 {
		return ""
	}
	return t.Renderer.NewStyle().Foreground(t.Border).Render(strings.Repeat("─", width))
}
