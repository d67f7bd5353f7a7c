package ui

import (
	"log/slog"
	"os"
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

const (
	envNoInteraction = "VENDING_NO_INTERACTION"
	envCI            = "CI"
	envTerm          = "TERM"
)

var interaction struct {
	mu          sync.RWMutex
	configured  bool
	interactive bool
}

// ConfigureInteraction decides whether prompts, pickers and colour are
// allowed for the rest of the process. A non-interactive session renders
// plain ASCII.
func ConfigureInteraction(noInteraction bool) {
	reason := nonInteractiveReason(noInteraction)
	interactive := reason == ""
	if !interactive {
		slog.Debug("Interaction disabled.", "reason", reason)
	}

	interaction.mu.Lock()
	interaction.configured = true
	interaction.interactive = interactive
	interaction.mu.Unlock()

	profile := termenv.Ascii
	if interactive {
		profile = termenv.ColorProfile()
	}
	lipgloss.SetColorProfile(profile)
}

// IsInteractive reports the configured mode, detecting it on first use if
// ConfigureInteraction was never called.
func IsInteractive() bool {
	interaction.mu.RLock()
	configured, interactive := interaction.configured, interaction.interactive
	interaction.mu.RUnlock()
	if configured {
		return interactive
	}

	ConfigureInteraction(false)
	return IsInteractive()
}

func IsNoInteraction() bool {
	return !IsInteractive()
}

func detectInteractiveMode(noInteraction bool) bool {
	return nonInteractiveReason(noInteraction) == ""
}

// nonInteractiveReason names the first thing ruling out interaction, or ""
// when the session can prompt.
func nonInteractiveReason(noInteraction bool) string {
	switch {
	case noInteraction:
		return "--no-interaction"
	case envTruthy(envNoInteraction):
		return envNoInteraction
	case envTruthy(envCI):
		return envCI
	case strings.EqualFold(strings.TrimSpace(os.Getenv(envTerm)), "dumb"):
		return "dumb terminal"
	case !isTerminal(os.Stdin):
		return "stdin is not a terminal"
	case !isTerminal(os.Stderr):
		return "stderr is not a terminal"
	}
	return ""
}

func isTerminal(f *os.File) bool {
	info, err := f.Stat()
	if err != nil {
		return false
	}
	return info.Mode()&os.ModeCharDevice != 0
}

func envTruthy(key string) bool {
	switch strings.ToLower(strings.TrimSpace(os.Getenv(key))) {
	case "1", "true", "yes", "on":
		return true
	}
	return false
}
