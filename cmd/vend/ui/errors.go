package ui

import (
	"errors"
	"strings"
)

// ErrCancelled is returned when the user backs out of a prompt.
var ErrCancelled = errors.New("cancelled")

// ErrNoInteraction is returned when input is needed but the session cannot
// prompt for it.
type ErrNoInteraction struct {
	Hint string
}

func (e *ErrNoInteraction) Error() string {
	if e.Hint == "" {
		return "interactive input is not available"
	}
	return "interactive input is not available; " + e.Hint
}

// RequireInteraction returns *ErrNoInteraction unless the session is
// interactive.
func RequireInteraction(bypassHint string) error {
	if IsInteractive() {
		return nil
	}
	return &ErrNoInteraction{Hint: strings.TrimSpace(bypassHint)}
}
