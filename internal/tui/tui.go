// Package tui holds the interactive report viewer and the history browser.
package tui

import (
	"fmt"
	"strings"

	"github.com/Zuo-Peng/wa-chat-analyzer/internal/analyze"
	"github.com/Zuo-Peng/wa-chat-analyzer/internal/render"
	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// layout splits the terminal into a header row, two bordered panels and a
// status bar.
type layout struct {
	width  int
	height int
}

func (l layout) listWidth() int {
	if l.width <= 0 {
		return 30
	}
	// 30% for list, minus border padding
	return max(l.width*30/100-4, 16)
}

func (l layout) previewWidth() int {
	if l.width <= 0 {
		return 70
	}
	// 70% for preview, minus border padding
	return max(l.width*70/100-4, 20)
}

func (l layout) panelHeight() int {
	if l.height <= 0 {
		return 20
	}
	// Subtract header row (1) + status bar (1) + borders (4)
	return max(l.height-6, 5)
}

type mouseRegion int

const (
	regionNone mouseRegion = iota
	regionList
	regionPreview
)

// hitTest maps terminal coordinates to a panel region and list row.
func (l layout) hitTest(x, y int) (mouseRegion, int) {
	contentYStart := 2 // header row (1) + top border (1)
	contentYEnd := contentYStart + l.panelHeight() - 1
	if y < contentYStart || y > contentYEnd {
		return regionNone, -1
	}
	lw := l.listWidth()
	if x >= 1 && x <= lw {
		return regionList, y - contentYStart
	}
	if x > lw+2 {
		return regionPreview, -1
	}
	return regionNone, -1
}

func (l layout) panels(list, preview, title string) string {
	listPanel := stylePanelBorder.
		Width(l.listWidth()).
		Height(l.panelHeight()).
		Render(list)
	previewPanel := styleActiveBorder.
		Width(l.previewWidth()).
		Height(l.panelHeight()).
		Render(preview)
	header := styleTitle.Render(title)
	return lipgloss.JoinVertical(lipgloss.Left, header, lipgloss.JoinHorizontal(lipgloss.Top, listPanel, previewPanel))
}

// viewer shows one analysis: sections on the left, the selected section on
// the right.
type viewer struct {
	layout
	title      string
	stats      *analyze.ChatStats
	sections   []render.Section
	cursor     int
	listOffset int
	preview    viewport.Model
	status     string
	ready      bool
	quitting   bool
}

func newViewer(stats *analyze.ChatStats, title string) viewer {
	return viewer{
		title:    title,
		stats:    stats,
		sections: render.Sections(stats, render.Options{Color: true}),
		preview:  viewport.New(0, 0),
	}
}

// Run opens the viewer for stats and blocks until the user quits.
func Run(stats *analyze.ChatStats, title string) error {
	p := tea.NewProgram(newViewer(stats, title), tea.WithAltScreen(), tea.WithMouseCellMotion())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("tui: %w", err)
	}
	return nil
}

func (m viewer) Init() tea.Cmd { return nil }

func (m viewer) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.sections = render.Sections(m.stats, render.Options{Width: m.previewWidth(), Color: true})
		m.preview = newViewport(m.previewWidth(), m.panelHeight())
		m.showSection()
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Quit), key.Matches(msg, keys.Close):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, keys.Up):
			if m.cursor > 0 {
				m.cursor--
				m.listOffset = scrollOffset(m.cursor, m.listOffset, m.panelHeight(), 1)
				m.showSection()
			}

		case key.Matches(msg, keys.Down):
			if m.cursor < len(m.sections)-1 {
				m.cursor++
				m.listOffset = scrollOffset(m.cursor, m.listOffset, m.panelHeight(), 1)
				m.showSection()
			}

		case key.Matches(msg, keys.Copy):
			m.status = m.copySection()

		case key.Matches(msg, keys.PreviewUp):
			m.preview.LineUp(m.panelHeight() / 2)

		case key.Matches(msg, keys.PreviewDn):
			m.preview.LineDown(m.panelHeight() / 2)

		case key.Matches(msg, keys.PageUp):
			m.preview.LineUp(m.panelHeight())

		case key.Matches(msg, keys.PageDown):
			m.preview.LineDown(m.panelHeight())
		}
		return m, nil

	case tea.MouseMsg:
		if !m.ready {
			return m, nil
		}
		region, row := m.hitTest(msg.X, msg.Y)
		switch {
		case region == regionList && msg.Button == tea.MouseButtonLeft && msg.Action == tea.MouseActionPress:
			if idx := m.listOffset + row; idx < len(m.sections) && idx != m.cursor {
				m.cursor = idx
				m.showSection()
			}
		case region == regionPreview && (msg.Button == tea.MouseButtonWheelUp || msg.Button == tea.MouseButtonWheelDown):
			var cmd tea.Cmd
			m.preview, cmd = m.preview.Update(msg)
			return m, cmd
		}
	}
	return m, nil
}

func (m *viewer) showSection() {
	if m.cursor >= len(m.sections) {
		return
	}
	m.preview.SetContent(m.sections[m.cursor].Body)
	m.preview.GotoTop()
	m.status = ""
}

// copySection puts the plain text of the current section on the clipboard.
func (m viewer) copySection() string {
	plain := render.Sections(m.stats, render.Options{})
	if m.cursor >= len(plain) {
		return ""
	}
	s := plain[m.cursor]
	if err := clipboard.WriteAll(s.Title + "\n" + s.Body); err != nil {
		return "clipboard unavailable: " + err.Error()
	}
	return "copied " + s.Title
}

func (m viewer) View() string {
	if m.quitting || !m.ready {
		return ""
	}
	m.preview.Width = m.previewWidth()
	m.preview.Height = m.panelHeight()
	list := renderSections(m.sections, m.cursor, m.listOffset, m.listWidth(), m.panelHeight())
	return lipgloss.JoinVertical(lipgloss.Left,
		m.panels(list, m.preview.View(), m.title),
		m.statusBar(),
	)
}

func (m viewer) statusBar() string {
	parts := []string{
		fmt.Sprintf("%d messages", m.stats.TotalMessages),
		"up/dn section",
		"scroll/C-u/C-d preview",
		"c copy",
		"q quit",
	}
	if m.status != "" {
		parts = append(parts, m.status)
	}
	return styleStatusBar.Render(strings.Join(parts, " | "))
}
