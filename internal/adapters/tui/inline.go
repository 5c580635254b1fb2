package tui

import (
	"fmt"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/term"

	"github.com/xvierd/pomodoro-cli/internal/config"
)

// InlineModel is a compact timer rendered below the prompt without the
// alternate screen.
type InlineModel struct {
	countdown
	width int
	theme config.ThemeConfig
}

// getTerminalWidth returns the current terminal width, defaulting to 80.
func getTerminalWidth() int {
	w, _, err := term.GetSize(os.Stdout.Fd())
	if err != nil || w < 40 {
		return 80
	}
	return w
}

// NewInlineModel creates an inline model. onQuit is called when the user
// presses a quit key.
func NewInlineModel(theme *config.ThemeConfig, onQuit func()) InlineModel {
	return InlineModel{
		countdown: countdown{onQuit: onQuit},
		width:     getTerminalWidth(),
		theme:     resolveTheme(theme),
	}
}

func (m InlineModel) Init() tea.Cmd {
	return nil
}

func (m InlineModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
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
	}
	return m, nil
}

// Interrupted reports whether the user quit before the session completed.
func (m InlineModel) Interrupted() bool {
	return m.interrupted
}

func (m InlineModel) View() string {
	accent := lipgloss.NewStyle().Foreground(m.accent(m.theme)).Bold(true)
	dim := lipgloss.NewStyle().Foreground(lipgloss.Color(m.theme.ColorHelp))

	if m.done {
		return accent.Render(fmt.Sprintf("  %s All sessions done. Nice work.", m.theme.IconSessionDone)) + "\n"
	}
	if m.session.Len() == 0 {
		return dim.Render("  Starting...") + "\n"
	}

	var b strings.Builder

	// Line 1: icon + kind + time + cycle
	b.WriteString(accent.Render(fmt.Sprintf("  %s %s  %s", m.theme.IconApp, m.interval.Kind.Label(), formatDuration(m.remaining))))
	b.WriteString(dim.Render("  " + m.cycleLabel()))
	if text := m.lastDoneText(m.theme); text != "" {
		b.WriteString(dim.Render("  " + text))
	}
	b.WriteString("\n")

	// Line 2: progress bar
	barWidth := m.width - 16
	if barWidth < 20 {
		barWidth = 20
	}
	prog := m.progress()
	b.WriteString("  " + m.progressBar(m.theme, barWidth).ViewAs(prog))
	b.WriteString(dim.Render(fmt.Sprintf("  %d%%", int(prog*100))))
	b.WriteString("\n")

	// Line 3: help
	b.WriteString(dim.Render("  [q]uit"))
	b.WriteString("\n")

	return b.String()
}
