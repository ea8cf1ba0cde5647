package browser

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/mattsolo1/grove-browse/pkg/browse"
	"github.com/mattsolo1/grove-browse/pkg/wrap"
)

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.showHelp {
		// Any key leaves the help screen.
		m.showHelp = false
		return m, nil
	}

	m.statusMessage = ""

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.showHelp = true

	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
			m.scrollIntoView()
		}

	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(m.items)-1 {
			m.cursor++
			m.scrollIntoView()
		}

	case key.Matches(msg, m.keys.PageUp):
		m.cursor -= m.viewportHeight()
		if m.cursor < 0 {
			m.cursor = 0
		}
		m.scrollIntoView()

	case key.Matches(msg, m.keys.PageDown):
		m.cursor += m.viewportHeight()
		if m.cursor > len(m.items)-1 {
			m.cursor = len(m.items) - 1
		}
		if m.cursor < 0 {
			m.cursor = 0
		}
		m.scrollIntoView()

	case key.Matches(msg, m.keys.GoToTop):
		m.cursor = 0
		m.scrollIntoView()

	case key.Matches(msg, m.keys.GoToBottom):
		m.cursor = len(m.items) - 1
		if m.cursor < 0 {
			m.cursor = 0
		}
		m.scrollIntoView()

	case key.Matches(msg, m.keys.Enter):
		m.activate()

	case key.Matches(msg, m.keys.Back):
		m.navigate(m.trail.Back, "already at the oldest entry")

	case key.Matches(msg, m.keys.Forward):
		m.navigate(m.trail.Forward, "already at the newest entry")

	case key.Matches(msg, m.keys.Home):
		m.navigate(m.trail.JumpHome, "")

	case key.Matches(msg, m.keys.ToggleLock):
		m.trail.SetLocked(!m.trail.Locked())
		if m.trail.Locked() {
			m.statusMessage = "navigation locked"
		} else {
			m.statusMessage = "navigation unlocked"
		}

	case key.Matches(msg, m.keys.ToggleAll):
		m.trail.SetShowAll(!m.trail.ShowAll())
		m.reload()

	case key.Matches(msg, m.keys.ToggleFiles):
		m.trail.SetShowFiles(!m.trail.ShowFiles())
		m.reload()

	case key.Matches(msg, m.keys.ClearSelect):
		m.trail.ResetSelection()
		m.selected = nil

	case key.Matches(msg, m.keys.Refresh):
		m.reload()
	}

	return m, nil
}

// activate acts on the item under the cursor: groups are entered, nodes and
// files are selected (toggling off on repeat) so their content shows in the
// detail pane.
func (m *Model) activate() {
	item, ok := m.currentItem()
	if !ok {
		return
	}
	switch item.kind {
	case groupItem:
		if err := m.trail.EnterGroup(item.name); err != nil {
			m.log.WithError(err).WithField("group", item.name).Debug("enter rejected")
			m.statusMessage = navError(err, item.name)
			return
		}
		m.selected = nil
		m.cursor = 0
		m.reload()

	case nodeItem, fileItem:
		out, err := m.trail.SelectNode(item.name)
		if err != nil {
			m.selected = nil
			m.statusMessage = fmt.Sprintf("cannot read %q: %v", item.name, err)
			return
		}
		if out == nil {
			// Toggled off.
			m.selected = nil
			return
		}
		if w, ok := out.(*wrap.Wrapper); ok {
			m.selected = w
		} else {
			m.selected = wrap.Resolve(out, m.trail.Current(), item.name)
		}
	}
}

func (m *Model) navigate(move func() error, atBoundary string) {
	if err := move(); err != nil {
		switch {
		case errors.Is(err, browse.ErrLocked):
			m.statusMessage = "navigation is locked"
		case errors.Is(err, browse.ErrAtStart), errors.Is(err, browse.ErrAtEnd):
			if atBoundary != "" {
				m.statusMessage = atBoundary
			}
		default:
			m.statusMessage = err.Error()
		}
		return
	}
	m.selected = nil
	m.cursor = 0
	m.reload()
}

func navError(err error, name string) string {
	switch {
	case errors.Is(err, browse.ErrLocked):
		return "navigation is locked"
	case errors.Is(err, browse.ErrNotFound):
		return fmt.Sprintf("%q no longer exists", name)
	case errors.Is(err, browse.ErrWrapFailed):
		return fmt.Sprintf("%q cannot be opened as a group", name)
	case errors.Is(err, browse.ErrBusy):
		return "still working on the previous action"
	default:
		return err.Error()
	}
}
