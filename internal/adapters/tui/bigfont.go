package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const (
	glyphHeight = 5
	// minBigWidth is the narrowest terminal that still fits "MM:SS" in glyphs.
	minBigWidth = 40
)

// digitMap holds the block glyph rows for each clock character.
var digitMap = map[rune][glyphHeight]string{
	'0': {
		"████",
		"█  █",
		"█  █",
		"█  █",
		"████",
	},
	'1': {
		" █ ",
		"██ ",
		" █ ",
		" █ ",
		"███",
	},
	'2': {
		"████",
		"   █",
		"████",
		"█   ",
		"████",
	},
	'3': {
		"████",
		"   █",
		"████",
		"   █",
		"████",
	},
	'4': {
		"█  █",
		"█  █",
		"████",
		"   █",
		"   █",
	},
	'5': {
		"████",
		"█   ",
		"████",
		"   █",
		"████",
	},
	'6': {
		"████",
		"█   ",
		"████",
		"█  █",
		"████",
	},
	'7': {
		"████",
		"   █",
		"  █ ",
		" █  ",
		" █  ",
	},
	'8': {
		"████",
		"█  █",
		"████",
		"█  █",
		"████",
	},
	'9': {
		"████",
		"█  █",
		"████",
		"   █",
		"████",
	},
	':': {
		" ",
		"█",
		" ",
		"█",
		" ",
	},
}

// renderBigTime renders a clock string such as "24:59" in block glyphs.
// Narrow terminals get a single bold line instead.
func renderBigTime(timeStr string, color lipgloss.Color, width int) string {
	style := lipgloss.NewStyle().Bold(true).Foreground(color)
	if width < minBigWidth {
		return style.Render(timeStr)
	}

	var rows [glyphHeight]strings.Builder
	first := true
	for _, ch := range timeStr {
		glyph, ok := digitMap[ch]
		if !ok {
			continue
		}
		for i := range rows {
			if !first {
				rows[i].WriteByte(' ')
			}
			rows[i].WriteString(glyph[i])
		}
		first = false
	}

	styled := make([]string, glyphHeight)
	for i := range rows {
		styled[i] = style.Render(rows[i].String())
	}
	return strings.Join(styled, "\n")
}
