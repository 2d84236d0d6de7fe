package tui

import (
	"github.com/charmbracelet/bubbles/viewport"

	"github.com/Zuo-Peng/meshlog/internal/render"
)

// loadCurrentPreview renders the selected run into the preview pane.
func (m *model) loadCurrentPreview() {
	if len(m.results) == 0 || m.cursor >= len(m.results) {
		return
	}
	r := m.results[m.cursor]
	if r.LogPath == m.previewKey {
		return
	}
	m.preview.SetContent(render.RenderRecord(r, render.Options{Width: m.previewWidth(), Color: true}))
	m.preview.GotoTop()
	m.previewKey = r.LogPath
}

// newViewport creates a new viewport model with the given dimensions.
func newViewport(width, height int) viewport.Model {
	vp := viewport.New(width, height)
	vp.Style = stylePanelBorder
	return vp
}
