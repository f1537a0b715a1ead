package tui

import "github.com/charmbracelet/lipgloss"

// Catppuccin Mocha palette. A kiosk reads best on a dark base.
const (
	colorRed      lipgloss.Color = "#f38ba8"
	colorPeach    lipgloss.Color = "#fab387"
	colorYellow   lipgloss.Color = "#f9e2af"
	colorGreen    lipgloss.Color = "#a6e3a1"
	colorTeal     lipgloss.Color = "#94e2d5"
	colorSky      lipgloss.Color = "#89dceb"
	colorBlue     lipgloss.Color = "#89b4fa"
	colorLavender lipgloss.Color = "#b4befe"

	colorText     lipgloss.Color = "#cdd6f4"
	colorSubtext1 lipgloss.Color = "#bac2de"
	colorSubtext0 lipgloss.Color = "#a6adc8"
	colorOverlay1 lipgloss.Color = "#7f849c"
	colorSurface1 lipgloss.Color = "#45475a"
	colorSurface0 lipgloss.Color = "#313244"
	colorMantle   lipgloss.Color = "#181825"
)

const (
	colorAccent  = colorPeach
	colorBrand   = colorBlue
	colorSuccess = colorGreen
	colorError   = colorRed
	colorWarning = colorYellow
	colorInfo    = colorTeal
)

var (
	headerTitleStyle = lipgloss.NewStyle().Foreground(colorBrand).Bold(true)
	headerSubStyle   = lipgloss.NewStyle().Foreground(colorSubtext0)
	clockStyle       = lipgloss.NewStyle().Foreground(colorText).Bold(true)
	dateStyle        = lipgloss.NewStyle().Foreground(colorSubtext1)

	sectionTitleStyle = lipgloss.NewStyle().Foreground(colorLavender).Bold(true)
	mutedStyle        = lipgloss.NewStyle().Foreground(colorSubtext0)
	accentStyle       = lipgloss.NewStyle().Foreground(colorAccent).Bold(true)

	statValueStyle = lipgloss.NewStyle().Foreground(colorText).Bold(true)
	statLabelStyle = lipgloss.NewStyle().Foreground(colorSky)

	availableStyle = lipgloss.NewStyle().Foreground(colorMantle).Background(colorSuccess).Padding(0, 1)
	occupiedStyle  = lipgloss.NewStyle().Foreground(colorMantle).Background(colorError).Padding(0, 1)

	dotActiveStyle   = lipgloss.NewStyle().Foreground(colorText)
	dotInactiveStyle = lipgloss.NewStyle().Foreground(colorOverlay1)

	footerStyle = lipgloss.NewStyle().Foreground(colorSubtext0)

	errorBadgeStyle = lipgloss.NewStyle().
			Foreground(colorMantle).
			Background(colorWarning).
			Bold(true).
			Padding(0, 1)

	loadingStyle = lipgloss.NewStyle().Foreground(colorInfo).Bold(true)
)
