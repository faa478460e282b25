package export

import (
	"fmt"

	"github.com/charmbracelet/glamour"
)

// RenderTerminal styles a Markdown document for a terminal of the given
// width. With auto false the plain "notty" style is used so output stays
// readable when piped.
func RenderTerminal(doc string, width int, auto bool) (string, error) {
	if width <= 0 {
		width = 80
	}
	style := glamour.WithStandardStyle("notty")
	if auto {
		style = glamour.WithAutoStyle()
	}
	r, err := glamour.NewTermRenderer(style, glamour.WithWordWrap(width))
	if err != nil {
		return "", fmt.Errorf("creating markdown renderer: %w", err)
	}
	out, err := r.Render(doc)
	if err != nil {
		return "", fmt.Errorf("rendering markdown: %w", err)
	}
	return out, nil
}
