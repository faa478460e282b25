package main

import (
	"errors"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vanderheijden86/playbook/pkg/ui"
)

// autoCloseEnv makes the TUI quit by itself after N milliseconds. Used by
// smoke tests that only need to see the program start and exit cleanly.
const autoCloseEnv = "PB_TUI_AUTOCLOSE_MS"

func runTUIProgram(m ui.Model) error {
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithoutSignalHandler())

	done := make(chan struct{})
	defer close(done)

	sigCh := make(chan os.Signal, 2)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigCh)
	go shutdownOn[os.Signal](p, done, sigCh, 5*time.Second)

	if ms, err := strconv.Atoi(os.Getenv(autoCloseEnv)); err == nil && ms > 0 {
		timer := time.NewTimer(time.Duration(ms) * time.Millisecond)
		defer timer.Stop()
		go shutdownOn(p, done, timer.C, 2*time.Second)
	}

	_, err := p.Run()
	if errors.Is(err, tea.ErrProgramKilled) || errors.Is(err, tea.ErrInterrupted) {
		return nil
	}
	return err
}

// shutdownOn asks p to quit when trigger fires and kills it if it has not
// exited after grace. A second value on trigger kills immediately.
func shutdownOn[T any](p *tea.Program, done <-chan struct{}, trigger <-chan T, grace time.Duration) {
	select {
	case <-done:
		return
	case <-trigger:
	}
	p.Quit()

	select {
	case <-done:
		return
	case <-trigger:
	case <-time.After(grace):
	}
	p.Kill()
}
