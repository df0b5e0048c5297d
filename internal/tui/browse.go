package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/Zuo-Peng/wa-chat-analyzer/internal/history"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const debounceDelay = 200 * time.Millisecond

type entriesMsg struct {
	query   string
	results []history.Result
	err     error
}

type debounceTickMsg struct {
	query string
}

// browser lists saved analyses with a search box; Enter opens one in the
// viewer.
type browser struct {
	layout
	db          *history.DB
	query       string
	results     []history.Result
	cursor      int
	listOffset  int
	filterInput textinput.Model
	preview     viewport.Model
	previewID   int64
	ready       bool
	quitting    bool
	selected    *history.Result
}

func newBrowser(db *history.DB) browser {
	ti := textinput.New()
	ti.Placeholder = "Filter by title or participant..."
	ti.Focus()
	ti.Prompt = "> "
	ti.PromptStyle = styleInputPrompt
	ti.TextStyle = styleInput
	ti.CharLimit = 256

	return browser{
		db:          db,
		filterInput: ti,
		preview:     viewport.New(0, 0),
	}
}

// Browse runs the history browser. Choosing an entry opens it in the viewer
// once the browser has exited.
func Browse(db *history.DB) error {
	p := tea.NewProgram(newBrowser(db), tea.WithAltScreen(), tea.WithMouseCellMotion())
	finalModel, err := p.Run()
	if err != nil {
		return fmt.Errorf("tui: %w", err)
	}

	fm := finalModel.(browser)
	if fm.selected == nil {
		return nil
	}
	e, err := db.Get(fm.selected.ID)
	if err != nil {
		return err
	}
	return Run(e.Stats, e.Title)
}

func (m browser) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.doList(""))
}

func (m browser) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.preview = newViewport(m.previewWidth(), m.panelHeight())
		m.previewID = 0
		return m, m.loadCurrentPreview()

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, keys.Enter):
			if m.cursor < len(m.results) {
				r := m.results[m.cursor]
				m.selected = &r
				m.quitting = true
				return m, tea.Quit
			}
			return m, nil

		case key.Matches(msg, keys.Up):
			if m.cursor > 0 {
				m.cursor--
				m.listOffset = scrollOffset(m.cursor, m.listOffset, m.panelHeight(), entryLines)
			}
			return m, m.loadCurrentPreview()

		case key.Matches(msg, keys.Down):
			if m.cursor < len(m.results)-1 {
				m.cursor++
				m.listOffset = scrollOffset(m.cursor, m.listOffset, m.panelHeight(), entryLines)
			}
			return m, m.loadCurrentPreview()

		case key.Matches(msg, keys.PreviewUp):
			m.preview.LineUp(m.panelHeight() / 2)
			return m, nil

		case key.Matches(msg, keys.PreviewDn):
			m.preview.LineDown(m.panelHeight() / 2)
			return m, nil

		case key.Matches(msg, keys.PageUp):
			m.preview.LineUp(m.panelHeight())
			return m, nil

		case key.Matches(msg, keys.PageDown):
			m.preview.LineDown(m.panelHeight())
			return m, nil
		}

		// Pass remaining keys to text input
		var tiCmd tea.Cmd
		m.filterInput, tiCmd = m.filterInput.Update(msg)
		cmds = append(cmds, tiCmd)

		if q := m.filterInput.Value(); q != m.query {
			m.query = q
			cmds = append(cmds, tea.Tick(debounceDelay, func(time.Time) tea.Msg {
				return debounceTickMsg{query: q}
			}))
		}
		return m, tea.Batch(cmds...)

	case tea.MouseMsg:
		if !m.ready || len(m.results) == 0 {
			return m, nil
		}
		region, row := m.hitTest(msg.X, msg.Y)
		switch {
		case region == regionList && msg.Button == tea.MouseButtonLeft && msg.Action == tea.MouseActionPress:
			if idx := m.listOffset + row/entryLines; idx < len(m.results) && idx != m.cursor {
				m.cursor = idx
				return m, m.loadCurrentPreview()
			}
		case region == regionPreview && (msg.Button == tea.MouseButtonWheelUp || msg.Button == tea.MouseButtonWheelDown):
			var cmd tea.Cmd
			m.preview, cmd = m.preview.Update(msg)
			return m, cmd
		}
		return m, nil

	case debounceTickMsg:
		// Only fire if the query hasn't changed since the tick was scheduled
		if msg.query == m.query {
			return m, m.doList(msg.query)
		}
		return m, nil

	case entriesMsg:
		if msg.query != m.query {
			return m, nil
		}
		m.cursor = 0
		m.listOffset = 0
		m.previewID = 0
		if msg.err != nil {
			m.results = nil
			m.preview.SetContent("Error: " + msg.err.Error())
			return m, nil
		}
		m.results = msg.results
		if len(m.results) == 0 {
			m.preview.SetContent("")
			return m, nil
		}
		return m, m.loadCurrentPreview()

	case entryRenderedMsg:
		if m.cursor >= len(m.results) || m.results[m.cursor].ID != msg.id {
			return m, nil // stale preview
		}
		if msg.err != nil {
			m.preview.SetContent("Preview error: " + msg.err.Error())
		} else {
			m.preview.SetContent(msg.content)
			m.preview.GotoTop()
		}
		m.previewID = msg.id
		return m, nil
	}

	return m, tea.Batch(cmds...)
}

func (m browser) View() string {
	if m.quitting || !m.ready {
		return ""
	}
	m.preview.Width = m.previewWidth()
	m.preview.Height = m.panelHeight()
	list := renderEntries(m.results, m.cursor, m.listOffset, m.listWidth(), m.panelHeight())
	return lipgloss.JoinVertical(lipgloss.Left,
		m.panels(list, m.preview.View(), m.filterInput.View()),
		m.statusBar(),
	)
}

func (m browser) statusBar() string {
	parts := []string{
		fmt.Sprintf("%d analyses", len(m.results)),
		"click/up/dn navigate",
		"scroll/C-u/C-d preview",
		"Enter open",
		"Esc quit",
	}
	return styleStatusBar.Render(strings.Join(parts, " | "))
}

func (m browser) doList(query string) tea.Cmd {
	db := m.db
	return func() tea.Msg {
		if query == "" {
			entries, err := db.List(history.Options{})
			results := make([]history.Result, len(entries))
			for i, e := range entries {
				results[i] = history.Result{Entry: e}
			}
			return entriesMsg{query: query, results: results, err: err}
		}
		results, err := db.Search(query, 0)
		return entriesMsg{query: query, results: results, err: err}
	}
}

func (m browser) loadCurrentPreview() tea.Cmd {
	if !m.ready || m.cursor >= len(m.results) {
		return nil
	}
	id := m.results[m.cursor].ID
	if id == m.previewID {
		return nil // already showing this preview
	}
	return loadEntryCmd(m.db, id, m.previewWidth())
}
