package tui

import "github.com/charmbracelet/lipgloss"

// ANSI 256 palette
var (
	colorPhotoMesh   = lipgloss.Color("12")
	colorRealityMesh = lipgloss.Color("13")
	colorGood        = lipgloss.Color("10")
	colorBad         = lipgloss.Color("9")
	colorCursor      = lipgloss.Color("11")
	colorDim         = lipgloss.Color("240")
	colorFrame       = lipgloss.Color("238")
)

var (
	styleInputPrompt = lipgloss.NewStyle().Foreground(colorPhotoMesh).Bold(true)
	styleInput       = lipgloss.NewStyle().Bold(true)

	styleListSelected    = lipgloss.NewStyle().Foreground(colorCursor).Bold(true)
	styleToolPhotoMesh   = lipgloss.NewStyle().Foreground(colorPhotoMesh)
	styleToolRealityMesh = lipgloss.NewStyle().Foreground(colorRealityMesh)

	// same colours as the workbook Success highlight
	styleSuccess = lipgloss.NewStyle().Foreground(colorGood)
	styleFailure = lipgloss.NewStyle().Foreground(colorBad).Bold(true)

	stylePanelBorder  = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(colorFrame)
	styleActiveBorder = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(colorPhotoMesh)
	styleStatusBar    = lipgloss.NewStyle().Foreground(colorDim).Padding(0, 1)
)
