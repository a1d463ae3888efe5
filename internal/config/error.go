package config

import (
	"fmt"
	"strings"
)

// Error aggregates configuration problems so the user sees them all at
// once instead of fixing them one by one.
type Error struct {
	Path   string   // Config file path
	Errors []string // Validation errors
}

func (e *Error) Error() string {
	if len(e.Errors) == 0 {
		return ""
	}

	parts := []string{fmt.Sprintf("%s: validation failed:", e.Path)}
	for _, err := range e.Errors {
		parts = append(parts, fmt.Sprintf("  - %s", err))
	}
	return strings.Join(parts, "\n")
}

// HasErrors returns true if there are any errors.
func (e *Error) HasErrors() bool {
	return len(e.Errors) > 0
}
