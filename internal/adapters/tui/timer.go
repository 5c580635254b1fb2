package tui

import (
	"errors"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/xvierd/pomodoro-cli/internal/config"
	"github.com/xvierd/pomodoro-cli/internal/domain"
	"github.com/xvierd/pomodoro-cli/internal/log"
	"github.com/xvierd/pomodoro-cli/internal/methodology"
	"github.com/xvierd/pomodoro-cli/internal/ports"
)

// Display implements ports.DisplaySink on top of a bubbletea program.
// Engine events are forwarded with Program.Send; the program runs on its
// own goroutine between Start and Stop.
type Display struct {
	program *tea.Program
	logger  *log.Logger
	onExit  func()
	done    chan struct{}
	final   tea.Model
	err     error
}

// NewDisplay wraps model in a program. Signals are left to the caller,
// which owns the run context. onExit is called if the program fails while
// the session is still running; once the program is gone its events are
// dropped, so the caller should stop counting down.
func NewDisplay(model tea.Model, onExit func(), logger *log.Logger, opts ...tea.ProgramOption) *Display {
	opts = append([]tea.ProgramOption{tea.WithoutSignalHandler()}, opts...)
	return &Display{
		program: tea.NewProgram(model, opts...),
		logger:  logger,
		onExit:  onExit,
		done:    make(chan struct{}),
	}
}

// NewFullscreen creates a display using the alternate screen.
func NewFullscreen(mode methodology.Mode, theme *config.ThemeConfig, onQuit func(), logger *log.Logger) *Display {
	return NewDisplay(NewModel(mode, theme, onQuit), onQuit, logger, tea.WithAltScreen())
}

// NewInline creates a compact display drawn in place below the prompt.
func NewInline(theme *config.ThemeConfig, onQuit func(), logger *log.Logger) *Display {
	return NewDisplay(NewInlineModel(theme, onQuit), onQuit, logger)
}

// Start runs the program in the background.
func (d *Display) Start() {
	d.logger.Debug(log.CatUI, "display starting")
	go func() {
		defer close(d.done)
		d.final, d.err = d.program.Run()
		if d.err != nil {
			d.logger.ErrorErr(log.CatUI, "display exited early", d.err)
			if d.onExit != nil {
				d.onExit()
			}
		}
	}()
}

// Stop quits the program if it is still running and waits for it to exit.
func (d *Display) Stop() error {
	d.program.Quit()
	<-d.done
	d.logger.Debug(log.CatUI, "display stopped")

	if d.err != nil && !errors.Is(d.err, tea.ErrProgramKilled) {
		return fmt.Errorf("failed to run TUI: %w", d.err)
	}
	return nil
}

// Interrupted reports whether the user quit from the display. Only
// meaningful after Stop.
func (d *Display) Interrupted() bool {
	type interrupter interface{ Interrupted() bool }
	if m, ok := d.final.(interrupter); ok {
		return m.Interrupted()
	}
	return false
}

// OnIntervalStart forwards the start of an interval.
func (d *Display) OnIntervalStart(interval domain.Interval, session domain.Session) {
	d.program.Send(intervalStartMsg{interval: interval, session: session})
}

// OnTick forwards the remaining time.
func (d *Display) OnTick(interval domain.Interval, remaining time.Duration) {
	d.program.Send(tickMsg{interval: interval, remaining: remaining})
}

// OnIntervalComplete forwards an interval reaching zero.
func (d *Display) OnIntervalComplete(interval domain.Interval) {
	d.program.Send(intervalDoneMsg{interval: interval})
}

// OnSessionComplete tells the program to show the final screen and exit.
func (d *Display) OnSessionComplete() {
	d.program.Send(sessionDoneMsg{})
}

// Ensure Display implements the sink ports.
var (
	_ ports.DisplaySink     = (*Display)(nil)
	_ ports.IntervalStarter = (*Display)(nil)
)
