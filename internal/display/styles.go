package display

import "github.com/charmbracelet/lipgloss"

// Zinc greys for chrome, pastel accents for state.
const (
	colMuted  = lipgloss.Color("#71717a")
	colDim    = lipgloss.Color("#a1a1aa")
	colText   = lipgloss.Color("#d4d4d8")
	colSlate  = lipgloss.Color("#94a3b8")
	colGreen  = lipgloss.Color("#bbf7d0")
	colSky    = lipgloss.Color("#bae6fd")
	colAmber  = lipgloss.Color("#fde68a")
	colRose   = lipgloss.Color("#fca5a5")
	colBarBg  = lipgloss.Color("#27272a")
	colBorder = lipgloss.Color("#52525b")
	colInk    = lipgloss.Color("#18181b")
)

var (
	primaryStyle   = lipgloss.NewStyle().Foreground(colText)
	secondaryStyle = lipgloss.NewStyle().Foreground(colMuted)
	headerStyle    = lipgloss.NewStyle().Foreground(colGreen)
	chatStyle      = lipgloss.NewStyle().Foreground(colSky)
	urgentStyle    = lipgloss.NewStyle().Foreground(colRose)
	echoStyle      = lipgloss.NewStyle().Foreground(colDim)
	promptStyle    = lipgloss.NewStyle().Foreground(colSlate)

	// BannerStyle colours the startup banner and greeting.
	BannerStyle = lipgloss.NewStyle().Foreground(colSlate)

	barStyle      = lipgloss.NewStyle().Background(colBarBg).Foreground(colDim)
	runningStyle  = lipgloss.NewStyle().Foreground(colAmber)
	readyStyle    = lipgloss.NewStyle().Foreground(colRose)
	disabledStyle = lipgloss.NewStyle().Foreground(colMuted).Italic(true)
)
