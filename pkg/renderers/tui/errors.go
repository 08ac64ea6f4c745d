package tui

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	// ErrAborted signals the user aborted input (e.g., Ctrl+C).
	ErrAborted = errors.New("tui: aborted")
	// ErrTooManyAttempts is returned when a field stays invalid after the
	// configured number of prompts.
	ErrTooManyAttempts = errors.New("tui: too many invalid attempts")
)

// SubmitError reports the field errors left when the final submit attempt
// was blocked.
type SubmitError struct {
	Errors map[string]string
}

func (e *SubmitError) Error() string {
	names := make([]string, 0, len(e.Errors))
	for name := range e.Errors {
		names = append(names, name)
	}
	sort.Strings(names)
	parts := make([]string, 0, len(names))
	for _, name := range names {
		parts = append(parts, fmt.Sprintf("%s: %s", name, e.Errors[name]))
	}
	return "tui: submit blocked (" + strings.Join(parts, "; ") + ")"
}
