// Package tui provides the terminal user interface implementation
// using the Bubbletea framework.
package tui

import (
	"fmt"
	"reflect"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/xvierd/pomodoro-cli/internal/config"
	"github.com/xvierd/pomodoro-cli/internal/domain"
	"github.com/xvierd/pomodoro-cli/internal/methodology"
)

// resolveTheme fills any empty string fields in the given ThemeConfig with defaults.
// If theme is nil, returns the full default theme.
func resolveTheme(theme *config.ThemeConfig) config.ThemeConfig {
	defaults := config.DefaultThemeConfig()
	if theme == nil {
		return defaults
	}
	resolved := *theme
	rv := reflect.ValueOf(&resolved).Elem()
	dv := reflect.ValueOf(defaults)
	for i := 0; i < rv.NumField(); i++ {
		f := rv.Field(i)
		if f.Kind() == reflect.String && f.String() == "" {
			f.SetString(dv.Field(i).String())
		}
	}
	return resolved
}

// Engine events, delivered through tea.Program.Send.
type (
	intervalStartMsg struct {
		interval domain.Interval
		session  domain.Session
	}
	tickMsg struct {
		interval  domain.Interval
		remaining time.Duration
	}
	intervalDoneMsg struct {
		interval domain.Interval
	}
	sessionDoneMsg struct{}
)

// countdown is the display state shared by Model and InlineModel.
type countdown struct {
	session     domain.Session
	interval    domain.Interval
	remaining   time.Duration
	running     bool
	lastDone    *domain.Interval
	done        bool
	interrupted bool
	onQuit      func()
}

// apply folds an engine event into the state. It reports whether the
// program should exit.
func (c *countdown) apply(msg tea.Msg) (handled, quit bool) {
	switch msg := msg.(type) {
	case intervalStartMsg:
		c.session = msg.session
		c.interval = msg.interval
		c.remaining = msg.interval.Duration
		c.running = true
	case tickMsg:
		c.interval = msg.interval
		c.remaining = msg.remaining
		c.running = true
	case intervalDoneMsg:
		iv := msg.interval
		c.lastDone = &iv
		c.remaining = 0
		c.running = false
	case sessionDoneMsg:
		c.done = true
		c.running = false
		return true, true
	default:
		return false, false
	}
	return true, false
}

// handleKey cancels the run on a quit key.
func (c *countdown) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "ctrl+c", "q", "esc":
		c.interrupted = true
		if c.onQuit != nil {
			c.onQuit()
		}
		return tea.Quit
	}
	return nil
}

// progress returns the elapsed fraction of the current interval.
func (c countdown) progress() float64 {
	if c.interval.Duration <= 0 {
		return 0
	}
	p := 1 - float64(c.remaining)/float64(c.interval.Duration)
	if p < 0 {
		return 0
	}
	if p > 1 {
		return 1
	}
	return p
}

// cycleLabel returns e.g. "Cycle 2/4".
func (c countdown) cycleLabel() string {
	return fmt.Sprintf("Cycle %d/%d", c.interval.Cycle, c.session.Config.TotalCycles)
}

// lastDoneText returns the completion line for the last finished interval.
func (c countdown) lastDoneText(theme config.ThemeConfig) string {
	if c.lastDone == nil {
		return ""
	}
	if c.lastDone.IsFocus() {
		return theme.IconFocusDone + " Focus done"
	}
	return theme.IconBreakDone + " Break over"
}

func (c countdown) accent(theme config.ThemeConfig) lipgloss.Color {
	if c.interval.IsBreak() {
		return lipgloss.Color(theme.ColorBreak)
	}
	return lipgloss.Color(theme.ColorFocus)
}

func (c countdown) progressBar(theme config.ThemeConfig, width int) progress.Model {
	var pbar progress.Model
	if c.interval.IsBreak() {
		pbar = progress.New(progress.WithGradient(theme.BreakGradientStart, theme.BreakGradientEnd))
	} else {
		pbar = progress.New(progress.WithGradient(theme.FocusGradientStart, theme.FocusGradientEnd))
	}
	pbar.Width = width
	return pbar
}

// Model is the fullscreen countdown view.
type Model struct {
	countdown
	width  int
	height int
	theme  config.ThemeConfig
	mode   methodology.Mode
}

// NewModel creates a fullscreen model. onQuit is called when the user
// presses a quit key and should cancel the running session.
func NewModel(mode methodology.Mode, theme *config.ThemeConfig, onQuit func()) Model {
	return Model{
		countdown: countdown{onQuit: onQuit},
		theme:     resolveTheme(theme),
		mode:      mode,
	}
}

// Init initializes the TUI.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if handled, quit := m.apply(msg); handled {
		if quit {
			return m, tea.Quit
		}
		return m, nil
	}

	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m, m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	}
	return m, nil
}

// Interrupted reports whether the user quit before the session completed.
func (m Model) Interrupted() bool {
	return m.interrupted
}

// View renders the TUI.
func (m Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	var sections []string

	// Title, subdued so it does not compete with the timer
	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(m.theme.ColorTitle)).MarginBottom(1)
	title := "Pomodoro"
	if m.mode != nil {
		title = m.mode.Title()
	}
	sections = append(sections, titleStyle.Render(fmt.Sprintf("%s %s", m.theme.IconApp, title)))

	helpStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(m.theme.ColorHelp))

	switch {
	case m.done:
		doneStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(m.theme.ColorFocus))
		sections = append(sections, doneStyle.Render(m.theme.IconSessionDone+" All sessions done. Nice work."))
	case m.session.Len() == 0:
		sections = append(sections, helpStyle.Render("Starting..."))
	default:
		sections = m.viewActive(sections, helpStyle)
	}

	content := lipgloss.JoinVertical(lipgloss.Center, sections...)
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
}

func (m Model) viewActive(sections []string, helpStyle lipgloss.Style) []string {
	color := m.accent(m.theme)
	statusStyle := lipgloss.NewStyle().Foreground(color)

	statusText := fmt.Sprintf("%s · %s · Interval %d/%d",
		m.interval.Kind.Label(), m.cycleLabel(), m.interval.Index, m.session.Len())
	sections = append(sections, statusStyle.Render(statusText))

	// Big ASCII timer
	sections = append(sections, "")
	sections = append(sections, renderBigTime(formatDuration(m.remaining), color, m.width))

	sections = append(sections, "")
	sections = append(sections, m.progressBar(m.theme, m.width-4).ViewAs(m.progress()))

	if text := m.lastDoneText(m.theme); text != "" {
		sections = append(sections, "")
		sections = append(sections, helpStyle.Render(text))
	}

	sections = append(sections, "")
	sections = append(sections, helpStyle.Render("[q]uit"))
	return sections
}

// formatDuration formats a duration as MM:SS, rounding partial seconds up.
func formatDuration(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	secs := int((d + time.Second - 1) / time.Second)
	return fmt.Sprintf("%02d:%02d", secs/60, secs%60)
}
