package browser

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus"

	"github.com/mattsolo1/grove-browse/pkg/browse"
	"github.com/mattsolo1/grove-browse/pkg/wrap"
)

type itemKind int

const (
	groupItem itemKind = iota
	nodeItem
	fileItem
)

// displayItem is a single line in the listing pane.
type displayItem struct {
	kind itemKind
	name string
}

// Model is the bubbletea model for the data browser TUI. All navigation state
// lives in the Trail; the model only holds presentation state (cursor,
// viewport, the resolved descriptor for the detail pane).
type Model struct {
	trail *browse.Trail
	keys  KeyMap
	log   logrus.FieldLogger

	items        []displayItem
	cursor       int
	scrollOffset int
	width        int
	height       int

	// Detail pane state: the adapter descriptor for the selected node.
	selected *wrap.Wrapper

	statusMessage string
	showHelp      bool
}

// New creates a browser model over an already-positioned trail.
func New(trail *browse.Trail, log logrus.FieldLogger) Model {
	m := Model{
		trail: trail,
		keys:  keys,
		log:   log,
	}
	m.reload()
	return m
}

// Init implements tea.Model. The listing is built synchronously from the
// trail, so there is nothing to kick off.
func (m Model) Init() tea.Cmd {
	return nil
}

// reload rebuilds the listing from the trail's current position and clamps
// the cursor into range.
func (m *Model) reload() {
	m.items = m.items[:0]
	for _, g := range m.trail.ListGroups() {
		m.items = append(m.items, displayItem{kind: groupItem, name: g})
	}
	for _, n := range m.trail.ListNodes() {
		m.items = append(m.items, displayItem{kind: nodeItem, name: n})
	}
	for _, f := range m.trail.ListFiles() {
		m.items = append(m.items, displayItem{kind: fileItem, name: f})
	}
	if m.cursor >= len(m.items) {
		m.cursor = len(m.items) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
	m.scrollOffset = 0
}

func (m *Model) currentItem() (displayItem, bool) {
	if len(m.items) == 0 || m.cursor >= len(m.items) {
		return displayItem{}, false
	}
	return m.items[m.cursor], true
}

func (m *Model) viewportHeight() int {
	// Header, breadcrumb, blank line, footer, status line.
	h := m.height - 6
	if h < 1 {
		h = 10
	}
	return h
}

func (m *Model) scrollIntoView() {
	vp := m.viewportHeight()
	if m.cursor < m.scrollOffset {
		m.scrollOffset = m.cursor
	}
	if m.cursor >= m.scrollOffset+vp {
		m.scrollOffset = m.cursor - vp + 1
	}
}
