package theme

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

type Theme struct {
	Dark bool

	Title      lipgloss.Style
	ModePill   lipgloss.Style
	Section    lipgloss.Style
	Count      lipgloss.Style
	ActiveLine lipgloss.Style
	MetaLabel  lipgloss.Style
	MetaValue  lipgloss.Style
	StateIdle  lipgloss.Style
	StateWarn  lipgloss.Style
	StateLoad  lipgloss.Style

	Name  lipgloss.Style
	Liked lipgloss.Style
	Muted lipgloss.Style

	StatusAlive   lipgloss.Style
	StatusDead    lipgloss.Style
	StatusUnknown lipgloss.Style
}

type palette struct {
	accent, accent2, text, subtext, overlay, surface lipgloss.Color
	red, peach, yellow, green, teal, pink           lipgloss.Color
}

// Catppuccin Mocha.
var mocha = palette{
	accent:  "#cba6f7",
	accent2: "#b4befe",
	text:    "#cdd6f4",
	subtext: "#bac2de",
	overlay: "#7f849c",
	surface: "#313244",
	red:     "#f38ba8",
	peach:   "#fab387",
	yellow:  "#f9e2af",
	green:   "#a6e3a1",
	teal:    "#94e2d5",
	pink:    "#f5c2e7",
}

// Catppuccin Latte.
var latte = palette{
	accent:  "#8839ef",
	accent2: "#7287fd",
	text:    "#4c4f69",
	subtext: "#5c5f77",
	overlay: "#8c8fa1",
	surface: "#ccd0da",
	red:     "#d20f39",
	peach:   "#fe640b",
	yellow:  "#df8e1d",
	green:   "#40a02b",
	teal:    "#179299",
	pink:    "#ea76cb",
}

func build(p palette, dark bool) Theme {
	return Theme{
		Dark:       dark,
		Title:      lipgloss.NewStyle().Bold(true).Foreground(p.accent),
		ModePill:   lipgloss.NewStyle().Foreground(p.accent2).Background(p.surface).Padding(0, 1),
		Section:    lipgloss.NewStyle().Bold(true).Foreground(p.teal),
		Count:      lipgloss.NewStyle().Foreground(p.yellow).Bold(true),
		ActiveLine: lipgloss.NewStyle().Background(p.surface).Foreground(p.text),
		MetaLabel:  lipgloss.NewStyle().Foreground(p.overlay),
		MetaValue:  lipgloss.NewStyle().Foreground(p.subtext),
		StateIdle:  lipgloss.NewStyle().Foreground(p.green),
		StateWarn:  lipgloss.NewStyle().Foreground(p.red),
		StateLoad:  lipgloss.NewStyle().Foreground(p.peach),

		Name:  lipgloss.NewStyle().Bold(true).Foreground(p.text),
		Liked: lipgloss.NewStyle().Foreground(p.pink),
		Muted: lipgloss.NewStyle().Foreground(p.overlay),

		StatusAlive:   lipgloss.NewStyle().Foreground(p.green),
		StatusDead:    lipgloss.NewStyle().Foreground(p.red),
		StatusUnknown: lipgloss.NewStyle().Foreground(p.yellow),
	}
}

func Dark() Theme  { return build(mocha, true) }
func Light() Theme { return build(latte, false) }

// For returns the theme matching the dark-mode preference.
func For(dark bool) Theme {
	if dark {
		return Dark()
	}
	return Light()
}

func (t Theme) statusStyle(status string) lipgloss.Style {
	switch strings.ToLower(strings.TrimSpace(status)) {
	case "alive":
		return t.StatusAlive
	case "dead":
		return t.StatusDead
	default:
		return t.StatusUnknown
	}
}

// StatusDot is the colored bullet drawn before a character's status.
func (t Theme) StatusDot(status string) string {
	return t.statusStyle(status).Render("●")
}

func (t Theme) LikeMarker(liked bool) string {
	if !liked {
		return t.Muted.Render("♡")
	}
	return t.Liked.Render("♥")
}

func (t Theme) RenderActiveLine(active bool, line string) string {
	if !active {
		return line
	}
	return t.ActiveLine.Render(line)
}
