package tui

import (
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Colors are adaptive; applyTheme picks the variant from the persisted theme
// instead of probing the terminal background.

func ac(light, dark string) lipgloss.AdaptiveColor {
	return lipgloss.AdaptiveColor{Light: light, Dark: dark}
}

var (
	colorMuted      lipgloss.TerminalColor = ac("240", "243")
	colorAccent     lipgloss.TerminalColor = ac("27", "62")
	colorAccentFg   lipgloss.TerminalColor = ac("255", "235")
	colorSelectedBg lipgloss.TerminalColor = ac("#e9e9e9", "#262626")
	colorSelectedFg lipgloss.TerminalColor = ac("235", "255")
	colorEditBg     lipgloss.TerminalColor = ac("230", "58")
	colorError      lipgloss.TerminalColor = ac("160", "203")
)

func applyTheme(dark bool) {
	lipgloss.SetHasDarkBackground(dark)
}

func faintIfDark(st lipgloss.Style) lipgloss.Style {
	if lipgloss.HasDarkBackground() {
		return st.Faint(true)
	}
	return st
}

func styleMuted() lipgloss.Style {
	return faintIfDark(lipgloss.NewStyle().Foreground(colorMuted))
}

func styleTitle() lipgloss.Style {
	return lipgloss.NewStyle().Bold(true).Foreground(colorAccent)
}

func styleTab(active bool) lipgloss.Style {
	if active {
		return lipgloss.NewStyle().Bold(true).Underline(true).Foreground(colorAccent)
	}
	return styleMuted()
}

func styleRow(selected, editing, completed bool) lipgloss.Style {
	st := lipgloss.NewStyle()
	switch {
	case editing:
		st = st.Background(colorEditBg)
	case selected:
		st = st.Background(colorSelectedBg).Foreground(colorSelectedFg)
	}
	if completed {
		st = st.Strikethrough(true).Foreground(colorMuted)
	}
	return st
}

func styleLabel() lipgloss.Style {
	return lipgloss.NewStyle().Bold(true).Padding(0, 1).Background(colorAccent).Foreground(colorAccentFg)
}

func styleError() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(colorError)
}

// applyColorProfilePreference honors NO_COLOR and otherwise trusts termenv,
// bumped up when TERM/COLORTERM advertise more than the detector reports.
func applyColorProfilePreference() {
	if strings.TrimSpace(os.Getenv("NO_COLOR")) != "" {
		lipgloss.SetColorProfile(termenv.Ascii)
		return
	}

	profile := termenv.ColorProfile()
	term := strings.ToLower(strings.TrimSpace(os.Getenv("TERM")))
	colorterm := strings.ToLower(strings.TrimSpace(os.Getenv("COLORTERM")))
	if strings.Contains(colorterm, "truecolor") || strings.Contains(colorterm, "24bit") {
		if profile != termenv.Ascii {
			profile = termenv.TrueColor
		}
	} else if strings.Contains(term, "256color") {
		if profile == termenv.Ascii || profile == termenv.ANSI {
			profile = termenv.ANSI256
		}
	}
	lipgloss.SetColorProfile(profile)
}
