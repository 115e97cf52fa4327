package main

import "github.com/charmbracelet/lipgloss"

// Layout constants
const (
	cellW        = 11 // width of each step column in characters
	labelVisualW = 7  // visual width of wire label area
	gateNameW    = 5  // width of gate name inside box
	gateBoxW     = 7  // ┤ + gateNameW + ├ = 1 + 5 + 1
)

// palette names the explorer's colors by role. Amplitude panels are cool,
// synthesis output is warm.
type palette struct {
	Frame   lipgloss.Color
	Output  lipgloss.Color
	Target  lipgloss.Color
	Metrics lipgloss.Color
	Help    lipgloss.Color
	Accent  lipgloss.Color
	Gate    lipgloss.Color
	Wire    lipgloss.Color
	Muted   lipgloss.Color
	Text    lipgloss.Color
	Error   lipgloss.Color
}

// Gruvbox dark.
var colors = palette{
	Frame:   lipgloss.Color("#83a598"),
	Output:  lipgloss.Color("#d3869b"),
	Target:  lipgloss.Color("#fabd2f"),
	Metrics: lipgloss.Color("#8ec07c"),
	Help:    lipgloss.Color("#928374"),
	Accent:  lipgloss.Color("#fe8019"),
	Gate:    lipgloss.Color("#b8bb26"),
	Wire:    lipgloss.Color("#83a598"),
	Muted:   lipgloss.Color("#665c54"),
	Text:    lipgloss.Color("#ebdbb2"),
	Error:   lipgloss.Color("#fb4934"),
}

// panel is a bordered box. Every border style used here is one cell wide,
// so the frame arithmetic in resize holds for all of them.
func panel(border lipgloss.Border, color lipgloss.Color) lipgloss.Style {
	return lipgloss.NewStyle().Border(border).BorderForeground(color)
}

var (
	circuitStyle  = panel(lipgloss.ThickBorder(), colors.Frame).Padding(1)
	qasmStyle     = panel(lipgloss.NormalBorder(), colors.Output).Padding(1)
	inputStyle    = panel(lipgloss.ThickBorder(), colors.Target).Padding(0, 1)
	statsStyle    = panel(lipgloss.NormalBorder(), colors.Metrics).Padding(0, 1)
	controlsStyle = panel(lipgloss.HiddenBorder(), colors.Help).Padding(0, 1)

	menuBorderStyle = panel(lipgloss.DoubleBorder(), colors.Accent).Padding(0, 1)

	titleStyle        = lipgloss.NewStyle().Bold(true).Underline(true).Foreground(colors.Accent)
	cursorBoxStyle    = lipgloss.NewStyle().Bold(true).Reverse(true).Foreground(colors.Accent)
	activeGateStyle   = lipgloss.NewStyle().Foreground(colors.Target)
	qubitLabelStyle   = lipgloss.NewStyle().Italic(true).Foreground(colors.Wire)
	gateStyle         = lipgloss.NewStyle().Bold(true).Foreground(colors.Gate)
	dimStyle          = lipgloss.NewStyle().Foreground(colors.Muted)
	errorStyle        = lipgloss.NewStyle().Bold(true).Foreground(colors.Error)
	menuSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colors.Accent)
	menuNormalStyle   = lipgloss.NewStyle().Foreground(colors.Text)
)
