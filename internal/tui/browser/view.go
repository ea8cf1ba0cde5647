package browser

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/mattsolo1/grove-browse/pkg/wrap"
)

var (
	headerStyle     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	breadcrumbStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	lockedStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
	highlightStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	selectedStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("10"))
	groupStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("4"))
	fileStyle       = lipgloss.NewStyle().Faint(true)
	mutedStyle      = lipgloss.NewStyle().Faint(true)
	errorStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	detailStyle     = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("8")).
			Padding(0, 1)
)

func (m Model) View() string {
	if m.showHelp {
		return m.renderHelp()
	}

	header := headerStyle.Render("Data Browser")
	if m.trail.Locked() {
		header += "  " + lockedStyle.Render("[locked]")
	}
	if m.trail.ShowAll() {
		header += "  " + mutedStyle.Render("[show-all]")
	}

	breadcrumb := breadcrumbStyle.Render(strings.Join(m.trail.Segments(), " / "))

	listing := m.renderListing()
	if detail := m.renderDetail(); detail != "" {
		listing = lipgloss.JoinHorizontal(lipgloss.Top, listing, "  ", detail)
	}

	status := ""
	if m.statusMessage != "" {
		status = errorStyle.Render(m.statusMessage)
	}
	footer := mutedStyle.Render("enter: open/select • backspace: back • ctrl+f: forward • ?: help • q: quit")

	return "\n" + lipgloss.JoinVertical(lipgloss.Left,
		header,
		breadcrumb,
		"",
		listing,
		status,
		footer,
	)
}

func (m Model) renderListing() string {
	if len(m.items) == 0 {
		return mutedStyle.Render("  (empty)")
	}

	var b strings.Builder
	vp := m.viewportHeight()
	start := m.scrollOffset
	end := start + vp
	if end > len(m.items) {
		end = len(m.items)
	}

	selectedName, hasSelection := m.trail.Selected()
	for i := start; i < end; i++ {
		item := m.items[i]
		cursor := "  "
		if i == m.cursor {
			cursor = highlightStyle.Render("▶ ")
		}

		var line string
		switch item.kind {
		case groupItem:
			line = groupStyle.Render("▸ " + item.name + "/")
		case nodeItem:
			line = "• " + item.name
		case fileItem:
			line = fileStyle.Render("· " + item.name)
		}
		if hasSelection && item.kind != groupItem && item.name == selectedName {
			line = selectedStyle.Render(line)
		}
		b.WriteString(cursor + line + "\n")
	}

	if len(m.items) > vp {
		b.WriteString(mutedStyle.Render(fmt.Sprintf(" (%d-%d of %d)", start+1, end, len(m.items))))
	}
	return b.String()
}

// renderDetail shows the resolved descriptor for the selected node.
func (m Model) renderDetail() string {
	if m.selected == nil {
		return ""
	}

	var b strings.Builder
	b.WriteString(headerStyle.Render(m.selected.RelPath))
	b.WriteString(mutedStyle.Render("  " + string(m.selected.Kind)))
	b.WriteString("\n\n")

	switch p := m.selected.Payload.(type) {
	case *wrap.ArrayView:
		b.WriteString(renderArray(p))
	case *wrap.RecordView:
		b.WriteString(renderRecord(p))
	case *wrap.StructureView:
		b.WriteString(renderStructure(p))
	case *wrap.CurveView:
		b.WriteString(renderCurve(p))
	default:
		b.WriteString(renderPlain(p))
	}

	return detailStyle.Render(b.String())
}

func renderPlain(v any) string {
	s := fmt.Sprintf("%v", v)
	if len(s) > 600 {
		s = s[:600] + "…"
	}
	return s
}

func renderArray(v *wrap.ArrayView) string {
	var b strings.Builder
	fmt.Fprintf(&b, "shape %v\n", v.Array().Shape())
	rows, err := v.Slice()
	if err != nil {
		return b.String() + errorStyle.Render(err.Error())
	}
	for i, row := range rows {
		if i >= 10 {
			b.WriteString(mutedStyle.Render("…"))
			break
		}
		for j, x := range row {
			if j >= 8 {
				b.WriteString("…")
				break
			}
			fmt.Fprintf(&b, "%10.4g", x)
		}
		b.WriteString("\n")
	}
	return b.String()
}

func renderRecord(v *wrap.RecordView) string {
	var b strings.Builder
	meta := v.Metadata()
	keys := make([]string, 0, len(meta))
	for k := range meta {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(&b, "%-10s %v\n", k, meta[k])
	}
	if !v.Loaded() {
		b.WriteString(mutedStyle.Render("(content not loaded)"))
		return b.String()
	}
	data, err := v.Data()
	if err != nil {
		return b.String() + errorStyle.Render(err.Error())
	}
	b.WriteString("\n" + renderPlain(data))
	return b.String()
}

func renderStructure(v *wrap.StructureView) string {
	scene, err := v.Render()
	if err != nil {
		return errorStyle.Render(err.Error())
	}
	var b strings.Builder
	fmt.Fprintf(&b, "camera     %s\n", scene.Camera)
	fmt.Fprintf(&b, "particles  %.2f\n", scene.ParticleSize)
	fmt.Fprintf(&b, "cell %v  axes %v\n", scene.Cell, scene.Axes)
	return b.String()
}

func renderCurve(v *wrap.CurveView) string {
	fig, err := v.Render()
	if err != nil {
		return errorStyle.Render(err.Error())
	}
	var b strings.Builder
	fmt.Fprintf(&b, "fit   %s\n", v.FitType)
	if v.FitType == "polynomial" {
		fmt.Fprintf(&b, "order %d\n", v.FitOrder)
	}
	fmt.Fprintf(&b, "points %d\n", len(fig.X))
	return b.String()
}

func (m Model) renderHelp() string {
	var b strings.Builder
	b.WriteString(headerStyle.Render("Data Browser - Help"))
	b.WriteString("\n\n")
	for _, group := range m.keys.FullHelp() {
		for _, binding := range group {
			h := binding.Help()
			fmt.Fprintf(&b, "  %-12s %s\n", h.Key, h.Desc)
		}
		b.WriteString("\n")
	}
	b.WriteString(mutedStyle.Render("press any key to return"))
	return "\n" + b.String()
}
