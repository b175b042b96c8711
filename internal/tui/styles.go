package tui

import "github.com/charmbracelet/lipgloss"

// Terminal theme colors (ANSI 0-15)
// These adapt to the user's terminal color scheme
var (
	colorBlack       = lipgloss.Color("0")
	colorRed         = lipgloss.Color("1")
	colorGreen       = lipgloss.Color("2")
	colorYellow      = lipgloss.Color("3")
	colorBlue        = lipgloss.Color("4")
	colorMagenta     = lipgloss.Color("5")
	colorCyan        = lipgloss.Color("6")
	colorWhite       = lipgloss.Color("7")
	colorBrightBlack = lipgloss.Color("8")

	// Semantic aliases
	primaryColor   = colorYellow
	successColor   = colorGreen
	dangerColor    = colorRed
	highlightColor = colorMagenta
	mutedColor     = colorBrightBlack
	fgColor        = colorWhite

	headerStyle = lipgloss.NewStyle().
			Background(primaryColor).
			Foreground(colorBlack).
			Bold(true).
			Padding(0, 1)

	headerPathStyle = lipgloss.NewStyle().
			Foreground(mutedColor).
			Padding(0, 1)

	headerUserStyle = lipgloss.NewStyle().
			Foreground(colorCyan).
			Padding(0, 1)

	statusBarStyle = lipgloss.NewStyle().
			Foreground(fgColor)

	titleStyle = lipgloss.NewStyle().
			Foreground(primaryColor).
			Bold(true)

	sectionStyle = lipgloss.NewStyle().
			Foreground(colorBlue).
			Bold(true)

	// Selection uses bright black background
	selectionBg = colorBrightBlack

	selectedRowStyle = lipgloss.NewStyle().
				Background(selectionBg)

	venueNameStyle = lipgloss.NewStyle().
			Bold(true)

	priceStyle = lipgloss.NewStyle().
			Foreground(successColor)

	ratingStyle = lipgloss.NewStyle().
			Foreground(primaryColor)

	idStyle = lipgloss.NewStyle().
		Foreground(highlightColor)

	skeletonStyle = lipgloss.NewStyle().
			Foreground(mutedColor)

	pendingStyle = lipgloss.NewStyle().
			Foreground(primaryColor)

	confirmedStyle = lipgloss.NewStyle().
			Foreground(successColor)

	// Carousel controls
	activeDotStyle = lipgloss.NewStyle().
			Foreground(primaryColor)

	arrowStyle = lipgloss.NewStyle().
			Foreground(fgColor).
			Bold(true)

	// Price track
	trackStyle = lipgloss.NewStyle().
			Foreground(mutedColor)

	trackRangeStyle = lipgloss.NewStyle().
			Foreground(primaryColor)

	handleStyle = lipgloss.NewStyle().
			Foreground(fgColor).
			Bold(true)

	activeHandleStyle = lipgloss.NewStyle().
				Foreground(primaryColor).
				Bold(true)

	// Code input cells
	cellStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(mutedColor).
			Width(3).
			Align(lipgloss.Center)

	focusedCellStyle = cellStyle.
				BorderForeground(primaryColor)

	dialogStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(primaryColor).
			Padding(1, 2)

	dialogTitleStyle = lipgloss.NewStyle().
				Foreground(primaryColor).
				Bold(true)

	inputStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(mutedColor).
			Padding(0, 1)

	focusedInputStyle = inputStyle.
				BorderForeground(primaryColor)

	errorStyle = lipgloss.NewStyle().
			Foreground(dangerColor).
			Bold(true)

	successStyle = lipgloss.NewStyle().
			Foreground(successColor).
			Bold(true)

	mutedStyle = lipgloss.NewStyle().
			Foreground(mutedColor)

	helpKeyStyle = lipgloss.NewStyle().
			Foreground(primaryColor)

	helpDescStyle = lipgloss.NewStyle().
			Foreground(fgColor)
)
