// Package display provides the plain line-oriented display sink used when
// no full terminal UI is wanted or stdout is not a terminal.
package display

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/xvierd/pomodoro-cli/internal/config"
	"github.com/xvierd/pomodoro-cli/internal/domain"
	"github.com/xvierd/pomodoro-cli/internal/ports"
)

// LineSink renders the countdown as a single carriage-return overwritten
// line per interval, followed by a completion line.
type LineSink struct {
	w     io.Writer
	theme config.ThemeConfig

	focus  lipgloss.Style
	brk    lipgloss.Style
	banner lipgloss.Style
	done   lipgloss.Style
}

// NewLineSink creates a sink writing to w. Colors are only emitted when
// w is a terminal that supports them.
func NewLineSink(w io.Writer, theme config.ThemeConfig) *LineSink {
	r := lipgloss.NewRenderer(w)
	return &LineSink{
		w:      w,
		theme:  theme,
		focus:  r.NewStyle().Bold(true).Foreground(lipgloss.Color(theme.ColorFocus)),
		brk:    r.NewStyle().Bold(true).Foreground(lipgloss.Color(theme.ColorBreak)),
		banner: r.NewStyle().Foreground(lipgloss.Color(theme.ColorTitle)),
		done:   r.NewStyle().Bold(true),
	}
}

// Announce prints the effective configuration before the first interval.
func (s *LineSink) Announce(cfg domain.Configuration) {
	fmt.Fprintf(s.w, "Run with focus=%s, break=%s, long-break=%s, long-every=%d, cycles=%d\n",
		formatMinutes(cfg.FocusDuration),
		formatMinutes(cfg.ShortBreakDuration),
		formatMinutes(cfg.LongBreakDuration),
		cfg.CyclesBeforeLongBreak,
		cfg.TotalCycles)
}

// OnIntervalStart prints the cycle banner before each focus interval.
func (s *LineSink) OnIntervalStart(interval domain.Interval, session domain.Session) {
	if !interval.IsFocus() {
		return
	}
	banner := fmt.Sprintf("=== Session %d/%d ===", interval.Cycle, session.Config.TotalCycles)
	fmt.Fprintf(s.w, "\n%s\n", s.banner.Render(banner))
}

// OnTick overwrites the countdown line.
func (s *LineSink) OnTick(interval domain.Interval, remaining time.Duration) {
	fmt.Fprintf(s.w, "\r%s: %s", s.label(interval), formatClock(remaining))
}

// OnIntervalComplete shows the zero reading and the completion line.
func (s *LineSink) OnIntervalComplete(interval domain.Interval) {
	fmt.Fprintf(s.w, "\r%s: %s\n", s.label(interval), formatClock(0))
	if interval.IsFocus() {
		fmt.Fprintf(s.w, "%s Focus done\n", s.theme.IconFocusDone)
		return
	}
	fmt.Fprintf(s.w, "%s Break over\n", s.theme.IconBreakDone)
}

// OnSessionComplete prints the closing line.
func (s *LineSink) OnSessionComplete() {
	fmt.Fprintf(s.w, "\n%s\n", s.done.Render(s.theme.IconSessionDone+" All sessions done. Nice work."))
}

// Interrupted terminates the partial countdown line after a cancelled run.
func (s *LineSink) Interrupted() {
	fmt.Fprintln(s.w)
	fmt.Fprintln(s.w, "Interrupted.")
}

func (s *LineSink) label(interval domain.Interval) string {
	if interval.IsBreak() {
		return s.brk.Render(interval.Kind.Label())
	}
	return s.focus.Render(interval.Kind.Label())
}

// formatClock renders d as m:ss, rounding partial seconds up so the reading
// never shows 0:00 while time is left.
func formatClock(d time.Duration) string {
	secs := int64((d + time.Second - 1) / time.Second)
	if secs < 0 {
		secs = 0
	}
	return fmt.Sprintf("%d:%02d", secs/60, secs%60)
}

func formatMinutes(d time.Duration) string {
	if d%time.Minute == 0 {
		return fmt.Sprintf("%dm", int64(d/time.Minute))
	}
	return d.String()
}

var (
	_ ports.DisplaySink     = (*LineSink)(nil)
	_ ports.IntervalStarter = (*LineSink)(nil)
)
