package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/huh"
	"golang.org/x/term"

	"github.com/vanderheijden86/playbook/pkg/content"
)

// isTerminal checks if stdin is connected to a terminal
func isTerminal() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}

// outputTerminal reports whether w is a terminal and, if so, its width.
func outputTerminal(w io.Writer) (bool, int) {
	f, ok := w.(*os.File)
	if !ok || !term.IsTerminal(int(f.Fd())) {
		return false, 0
	}
	width, _, err := term.GetSize(int(f.Fd()))
	if err != nil {
		return true, 80
	}
	return true, width
}

// newForm creates a form with appropriate settings based on TTY detection
func newForm(groups ...*huh.Group) *huh.Form {
	form := huh.NewForm(groups...).WithTheme(huh.ThemeDracula())
	if !isTerminal() {
		form = form.WithAccessible(true)
	}
	return form
}

// promptScenario asks which symptom the store is seeing.
func promptScenario(scenarios []content.Scenario) (string, error) {
	if len(scenarios) == 0 {
		return "", fmt.Errorf("no scenarios in playbook")
	}
	opts := make([]huh.Option[string], 0, len(scenarios))
	for _, sc := range scenarios {
		opts = append(opts, huh.NewOption(sc.Label, sc.ID))
	}

	choice := scenarios[0].ID
	form := newForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("¿Qué está pasando?").
				Options(opts...).
				Value(&choice),
		),
	)
	if err := form.Run(); err != nil {
		return "", err
	}
	return choice, nil
}
