package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/Zuo-Peng/meshlog/internal/record"
)

// linesPerItem is the number of terminal lines each run occupies.
const linesPerItem = 2

// renderList renders the left panel: the filtered runs with scrolling.
func (m model) renderList(width, height int) string {
	if len(m.results) == 0 {
		return lipgloss.NewStyle().
			Foreground(colorDim).
			Width(width).
			Height(height).
			Align(lipgloss.Center, lipgloss.Center).
			Render("No runs")
	}

	var lines []string
	for i, r := range m.results {
		if i < m.listOffset {
			continue
		}
		if len(lines)+linesPerItem > height {
			break
		}
		lines = append(lines, formatRunLine(r, width, i == m.cursor)...)
	}

	for len(lines) < height {
		lines = append(lines, strings.Repeat(" ", width))
	}
	return strings.Join(lines, "\n")
}

// formatRunLine formats a single ledger row as two lines:
//
//	line 1: [>] tool  date  project  status
//	line 2:    log path (dimmed)
func formatRunLine(r record.Unified, width int, selected bool) []string {
	var tool string
	switch r.Tool {
	case "PhotoMesh":
		tool = styleToolPhotoMesh.Render("PM")
	case "RealityMesh":
		tool = styleToolRealityMesh.Render("RM")
	default:
		tool = "??"
	}

	date := r.RunDate
	if date == "" {
		date = "----------"
	}

	var status string
	switch r.Success {
	case "True":
		status = styleSuccess.Render("ok")
	case "False":
		status = styleFailure.Render("FAIL")
	default:
		status = "?"
	}

	projectMax := width - 2 - 3 - 11 - 6 // prefix + tool + date + status
	if projectMax < 0 {
		projectMax = 0
	}
	project := r.ProjectName
	if runewidth.StringWidth(project) > projectMax {
		project = runewidth.Truncate(project, projectMax, "…")
	}

	line1 := fmt.Sprintf("%s %s %s %s", tool, date, project, status)
	if selected {
		line1 = styleListSelected.Render("> ") + line1
	} else {
		line1 = "  " + line1
	}

	pathMax := width - 4
	if pathMax < 0 {
		pathMax = 0
	}
	path := r.LogPath
	if runewidth.StringWidth(path) > pathMax {
		// keep the file name end of long paths
		path = runewidth.TruncateLeft(path, runewidth.StringWidth(path)-pathMax+1, "…")
	}
	line2 := "    " + lipgloss.NewStyle().Foreground(colorDim).Render(path)

	return []string{line1, line2}
}

// adjustListScroll keeps the cursor visible within the list viewport.
func (m *model) adjustListScroll(listHeight int) {
	visibleItems := listHeight / linesPerItem
	if visibleItems < 1 {
		visibleItems = 1
	}
	if m.cursor < m.listOffset {
		m.listOffset = m.cursor
	}
	if m.cursor >= m.listOffset+visibleItems {
		m.listOffset = m.cursor - visibleItems + 1
	}
}
