package tui

import "github.com/charmbracelet/lipgloss"

// ---------------------------------------------------------------------------
// Catppuccin Mocha palette, true-color hex values.
// https://catppuccin.com/palette
// ---------------------------------------------------------------------------

const (
	colorPink     lipgloss.Color = "#f5c2e7"
	colorMauve    lipgloss.Color = "#cba6f7"
	colorRed      lipgloss.Color = "#f38ba8"
	colorPeach    lipgloss.Color = "#fab387"
	colorYellow   lipgloss.Color = "#f9e2af"
	colorGreen    lipgloss.Color = "#a6e3a1"
	colorTeal     lipgloss.Color = "#94e2d5"
	colorBlue     lipgloss.Color = "#89b4fa"
	colorLavender lipgloss.Color = "#b4befe"

	colorText     lipgloss.Color = "#cdd6f4"
	colorSubtext1 lipgloss.Color = "#bac2de"
	colorSubtext0 lipgloss.Color = "#a6adc8"
	colorOverlay1 lipgloss.Color = "#7f849c"
	colorOverlay0 lipgloss.Color = "#6c7086"
	colorSurface1 lipgloss.Color = "#45475a"
	colorSurface0 lipgloss.Color = "#313244"
	colorMantle   lipgloss.Color = "#181825"
)

// Semantic aliases.
const (
	colorAccent  = colorPink
	colorBrand   = colorPink
	colorFocus   = colorLavender
	colorSuccess = colorGreen
	colorError   = colorRed
	colorWarning = colorYellow
	colorExotic  = colorYellow
	colorInfo    = colorTeal
)

var (
	titleStyle = lipgloss.NewStyle().Foreground(colorBrand).Bold(true)

	headerBarStyle = lipgloss.NewStyle().
			Foreground(colorText).
			Background(colorMantle).
			Padding(0, 2)

	headerAppStyle = lipgloss.NewStyle().
			Foreground(colorBrand).
			Bold(true)

	activeStoreStyle = lipgloss.NewStyle().
				Foreground(colorAccent).
				Background(colorSurface0).
				Bold(true).
				Padding(0, 1)

	inactiveStoreStyle = lipgloss.NewStyle().
				Foreground(colorOverlay1).
				Background(colorMantle).
				Padding(0, 1)

	statusStyle = lipgloss.NewStyle().Foreground(colorSubtext0)

	footerStyle = lipgloss.NewStyle().
			Foreground(colorSubtext0).
			Background(colorMantle).
			Padding(0, 2)

	statusBarStyle = lipgloss.NewStyle().
			Foreground(colorSubtext1).
			Background(colorSurface0).
			Padding(0, 2)

	statusErrStyle = statusBarStyle.Foreground(colorError)

	paneStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorSurface1).
			Padding(0, 1)

	focusedPaneStyle = paneStyle.BorderForeground(colorFocus)

	modalStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorAccent).
			Padding(0, 1)

	helpKeyStyle = lipgloss.NewStyle().
			Foreground(colorAccent).
			Bold(true)

	helpDescStyle = lipgloss.NewStyle().
			Foreground(colorSubtext0)

	labelStyle      = lipgloss.NewStyle().Foreground(colorSubtext0)
	valueStyle      = lipgloss.NewStyle().Foreground(colorText)
	dimStyle        = lipgloss.NewStyle().Foreground(colorOverlay0)
	exoticStyle     = lipgloss.NewStyle().Foreground(colorExotic)
	pinnedMarkStyle = lipgloss.NewStyle().Foreground(colorSuccess).Bold(true)
	excludeStyle    = lipgloss.NewStyle().Foreground(colorError).Bold(true)
	modStyle        = lipgloss.NewStyle().Foreground(colorMauve)
	tierStyle       = lipgloss.NewStyle().Foreground(colorBlue)
	sectionStyle    = lipgloss.NewStyle().Foreground(colorPeach).Bold(true)
	searchStyle     = lipgloss.NewStyle().Foreground(colorInfo)
	warnStyle       = lipgloss.NewStyle().Foreground(colorWarning)
	cursorRowStyle  = lipgloss.NewStyle().Background(colorSurface0).Bold(true)
)
