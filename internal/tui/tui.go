package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/Zuo-Peng/meshlog/internal/query"
	"github.com/Zuo-Peng/meshlog/internal/record"
)

const debounceDelay = 150 * time.Millisecond

// message types

type filterResultMsg struct {
	filter  string
	results []record.Unified
}

type debounceTickMsg struct {
	filter string
}

// model

type model struct {
	records     []record.Unified
	opts        query.Options
	filter      string
	results     []record.Unified
	cursor      int
	listOffset  int
	filterInput textinput.Model
	preview     viewport.Model
	previewKey  string // LogPath currently rendered
	width       int
	height      int
	ready       bool
	quitting    bool
	selected    *record.Unified
}

func initialModel(records []record.Unified, opts query.Options) model {
	ti := textinput.New()
	ti.Placeholder = "Filter..."
	ti.Focus()
	ti.SetValue(opts.Text)
	ti.Prompt = "> "
	ti.PromptStyle = styleInputPrompt
	ti.TextStyle = styleInput
	ti.CharLimit = 256

	return model{
		records:     records,
		opts:        opts,
		filter:      opts.Text,
		filterInput: ti,
		preview:     viewport.New(0, 0),
	}
}

// Run starts the ledger browser and blocks until it exits. If the user
// picks a row, its LogPath is copied to the clipboard.
func Run(records []record.Unified, opts query.Options) error {
	m := initialModel(records, opts)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion())
	finalModel, err := p.Run()
	if err != nil {
		return fmt.Errorf("tui: %w", err)
	}

	fm := finalModel.(model)
	if fm.selected != nil {
		copyLogPath(fm.selected.LogPath)
	}
	return nil
}

// copyLogPath puts path on the clipboard, or prints it when no clipboard
// is available.
func copyLogPath(path string) {
	if err := clipboard.WriteAll(path); err != nil {
		fmt.Printf("%s\n", path)
		return
	}
	fmt.Printf("Copied to clipboard: %s\n", path)
}

// Init triggers the initial filter.
func (m model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.doFilter(m.filter))
}

// Update handles messages.
func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.preview = newViewport(m.previewWidth(), m.panelHeight())
		m.previewKey = ""
		m.loadCurrentPreview()
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, keys.CopyPath):
			if len(m.results) > 0 && m.cursor < len(m.results) {
				r := m.results[m.cursor]
				m.selected = &r
				m.quitting = true
				return m, tea.Quit
			}

		case key.Matches(msg, keys.Prev):
			m.moveCursor(m.cursor - 1)
			return m, nil

		case key.Matches(msg, keys.Next):
			m.moveCursor(m.cursor + 1)
			return m, nil

		case key.Matches(msg, keys.First):
			m.moveCursor(0)
			return m, nil

		case key.Matches(msg, keys.Last):
			m.moveCursor(len(m.results) - 1)
			return m, nil

		case key.Matches(msg, keys.HalfUp):
			m.preview.LineUp(m.panelHeight() / 2)
			return m, nil

		case key.Matches(msg, keys.HalfDown):
			m.preview.LineDown(m.panelHeight() / 2)
			return m, nil

		case key.Matches(msg, keys.FullUp):
			m.preview.LineUp(m.panelHeight())
			return m, nil

		case key.Matches(msg, keys.FullDown):
			m.preview.LineDown(m.panelHeight())
			return m, nil
		}

		// Pass remaining keys to text input
		var tiCmd tea.Cmd
		m.filterInput, tiCmd = m.filterInput.Update(msg)
		cmds = append(cmds, tiCmd)

		newFilter := m.filterInput.Value()
		if newFilter != m.filter {
			m.filter = newFilter
			cmds = append(cmds, scheduleDebouncedFilter(newFilter))
		}
		return m, tea.Batch(cmds...)

	case tea.MouseMsg:
		if !m.ready || len(m.results) == 0 {
			return m, nil
		}

		region, itemIdx := m.hitTest(msg.X, msg.Y)

		switch {
		case region == regionList && msg.Button == tea.MouseButtonWheelUp:
			if m.listOffset > 0 {
				m.listOffset--
			}
			return m, nil

		case region == regionList && msg.Button == tea.MouseButtonWheelDown:
			maxOffset := len(m.results) - m.panelHeight()/linesPerItem
			if maxOffset < 0 {
				maxOffset = 0
			}
			if m.listOffset < maxOffset {
				m.listOffset++
			}
			return m, nil

		case region == regionList && msg.Button == tea.MouseButtonLeft && msg.Action == tea.MouseActionPress:
			if itemIdx >= 0 && itemIdx < len(m.results) && m.cursor != itemIdx {
				m.cursor = itemIdx
				m.adjustListScroll(m.panelHeight())
				m.loadCurrentPreview()
			}
			return m, nil

		case region == regionPreview && (msg.Button == tea.MouseButtonWheelUp || msg.Button == tea.MouseButtonWheelDown):
			var vpCmd tea.Cmd
			m.preview, vpCmd = m.preview.Update(msg)
			return m, vpCmd
		}

		return m, nil

	case debounceTickMsg:
		// only filter if the input hasn't changed since the tick was scheduled
		if msg.filter == m.filter {
			return m, m.doFilter(msg.filter)
		}
		return m, nil

	case filterResultMsg:
		if msg.filter != m.filter {
			return m, nil
		}
		m.results = msg.results
		m.cursor = 0
		m.listOffset = 0
		m.previewKey = ""
		if len(m.results) == 0 {
			m.preview.SetContent("")
		} else {
			m.loadCurrentPreview()
		}
		return m, nil
	}

	return m, tea.Batch(cmds...)
}

// View renders the full TUI.
func (m model) View() string {
	if m.quitting || !m.ready {
		return ""
	}

	listW := m.listWidth()
	previewW := m.previewWidth()
	panelH := m.panelHeight()

	inputRow := m.filterInput.View()

	listPanel := stylePanelBorder.
		Width(listW).
		Height(panelH).
		Render(m.renderList(listW, panelH))

	m.preview.Width = previewW
	m.preview.Height = panelH
	previewPanel := styleActiveBorder.
		Width(previewW).
		Height(panelH).
		Render(m.preview.View())

	panels := lipgloss.JoinHorizontal(lipgloss.Top, listPanel, previewPanel)

	return lipgloss.JoinVertical(lipgloss.Left, inputRow, panels, m.statusBar())
}

// helper methods

func (m model) listWidth() int {
	if m.width <= 0 {
		return 40
	}
	// 40% for list, minus border padding
	w := m.width*40/100 - 4
	if w < 20 {
		w = 20
	}
	return w
}

func (m model) previewWidth() int {
	if m.width <= 0 {
		return 60
	}
	w := m.width*60/100 - 4
	if w < 20 {
		w = 20
	}
	return w
}

func (m model) panelHeight() int {
	if m.height <= 0 {
		return 20
	}
	// Subtract input row (1) + status bar (1) + borders (4)
	h := m.height - 6
	if h < 5 {
		h = 5
	}
	return h
}

// moveCursor selects run i, clamped to the list, and refreshes the preview.
func (m *model) moveCursor(i int) {
	if i >= len(m.results) {
		i = len(m.results) - 1
	}
	if i < 0 {
		i = 0
	}
	if i == m.cursor {
		return
	}
	m.cursor = i
	m.adjustListScroll(m.panelHeight())
	m.loadCurrentPreview()
}

type mouseRegion int

const (
	regionNone mouseRegion = iota
	regionList
	regionPreview
)

// hitTest maps terminal coordinates to a panel region and list item index.
func (m model) hitTest(x, y int) (mouseRegion, int) {
	pH := m.panelHeight()
	contentYStart := 2 // input row (1) + top border (1)
	contentYEnd := contentYStart + pH - 1

	if y < contentYStart || y > contentYEnd {
		return regionNone, -1
	}
	relY := y - contentYStart

	lw := m.listWidth()
	listBoxRight := lw + 1 // col 0=border, 1..lw=content, lw+1=border

	if x >= 1 && x <= lw {
		return regionList, m.listOffset + relY/linesPerItem
	}
	if x > listBoxRight+1 {
		return regionPreview, -1
	}
	return regionNone, -1
}

func (m model) statusBar() string {
	parts := []string{
		fmt.Sprintf("%d/%d runs", len(m.results), len(m.records)),
		"click/up/dn/home/end runs",
		"scroll/C-u/C-d fields",
	}
	for _, b := range []key.Binding{keys.CopyPath, keys.Quit} {
		parts = append(parts, b.Help().Key+" "+b.Help().Desc)
	}
	return styleStatusBar.Render(strings.Join(parts, " | "))
}

func (m model) doFilter(filter string) tea.Cmd {
	records := m.records
	opts := m.opts
	opts.Text = filter
	return func() tea.Msg {
		return filterResultMsg{filter: filter, results: query.Filter(records, opts)}
	}
}

func scheduleDebouncedFilter(filter string) tea.Cmd {
	return tea.Tick(debounceDelay, func(time.Time) tea.Msg {
		return debounceTickMsg{filter: filter}
	})
}
