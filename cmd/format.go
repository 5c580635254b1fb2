package cmd

import (
	"fmt"
	"time"
)

// formatMinutes formats a duration as a human-friendly string like "25m" or "1h30m".
// Durations that are not whole minutes fall back to time.Duration formatting.
func formatMinutes(d time.Duration) string {
	if d%time.Minute != 0 {
		return d.String()
	}
	if d >= time.Hour {
		h := int(d.Hours())
		m := int(d.Minutes()) % 60
		if m == 0 {
			return fmt.Sprintf("%dh", h)
		}
		return fmt.Sprintf("%dh%dm", h, m)
	}
	return fmt.Sprintf("%dm", int(d.Minutes()))
}
