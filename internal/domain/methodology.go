package domain

import (
	"fmt"
	"strings"

	"github.com/sahilm/fuzzy"
)

// Methodology names a preset family of session durations.
type Methodology string

const (
	MethodologyPomodoro Methodology = "pomodoro"
	MethodologyDeepWork Methodology = "deepwork"
	MethodologyMakeTime Methodology = "maketime"
)

// ValidMethodologies lists all supported methodology values.
var ValidMethodologies = []Methodology{
	MethodologyPomodoro,
	MethodologyDeepWork,
	MethodologyMakeTime,
}

// ValidateMethodology checks if a string is exactly a valid methodology.
func ValidateMethodology(s string) (Methodology, error) {
	m := Methodology(s)
	for _, valid := range ValidMethodologies {
		if m == valid {
			return m, nil
		}
	}
	return "", fmt.Errorf("invalid methodology %q: must be one of pomodoro, deepwork, maketime", s)
}

// ResolveMethodology accepts an exact name or an abbreviation such as "deep"
// or "mt" and returns the best fuzzy match.
func ResolveMethodology(s string) (Methodology, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return MethodologyPomodoro, nil
	}
	if m, err := ValidateMethodology(s); err == nil {
		return m, nil
	}

	names := make([]string, len(ValidMethodologies))
	for i, m := range ValidMethodologies {
		names[i] = string(m)
	}
	matches := fuzzy.Find(s, names)
	if len(matches) == 0 {
		return ValidateMethodology(s)
	}
	return ValidMethodologies[matches[0].Index], nil
}

// Label returns a human-readable label.
func (m Methodology) Label() string {
	switch m {
	case MethodologyPomodoro:
		return "Pomodoro"
	case MethodologyDeepWork:
		return "Deep Work"
	case MethodologyMakeTime:
		return "Make Time"
	default:
		return "Unknown"
	}
}
