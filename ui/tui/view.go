package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"

	"github.com/ftl/signalatlas/core"
)

const instructions = "Scroll or press +/- to zoom, drag or press ←/→ to pan. Click a band for its details. " +
	"Press / to search for a frequency like 145.500 MHz or a band like 2m, 1-8 to jump to a band, ? for all keys."

func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}
	frame := m.panorama.Data()

	sections := []string{m.header(frame), m.searchLine()}
	if m.suggestionsVisible() {
		sections = append(sections, m.suggestions.View())
	}
	for _, l := range spectrum(frame, m.width) {
		sections = append(sections, l.render())
	}
	sections = append(sections, m.readout(frame), m.quickBands())

	switch {
	case frame.Selection != nil:
		sections = append(sections, m.detail(frame.Selection))
	case m.showInstructions:
		sections = append(sections, boxStyle.Width(min(m.width-2, 100)).Render(instructions))
	}

	sections = append(sections, dimStyle.Render(" "+m.status), m.helpView())
	return appStyle.Width(m.width).Render(lipgloss.JoinVertical(lipgloss.Left, sections...))
}

func (m Model) header(frame core.Panorama) string {
	flags := []string{frame.Region.Label()}
	if frame.ShowAllocations {
		flags = append(flags, "allocations")
	}
	if frame.ShowBands {
		flags = append(flags, "bands")
	}
	text := titleStyle.Render(" signalatlas ") +
		fmt.Sprintf(" %s – %s ", core.FormatFrequency(frame.VisibleRange.From), core.FormatFrequency(frame.VisibleRange.To)) +
		dimStyle.Render(strings.Join(flags, " · "))
	return lipgloss.NewStyle().MaxWidth(m.width).Render(text)
}

func (m Model) searchLine() string {
	if m.search.Focused() {
		return m.search.View()
	}
	if m.search.Value() != "" {
		return dimStyle.Render("/ " + m.search.Value())
	}
	return dimStyle.Render("/ search")
}

func (m Model) readout(frame core.Panorama) string {
	h := frame.Hover
	if !h.Visible {
		return ""
	}
	text := core.FormatFrequency(h.Frequency)
	if h.Tooltip != "" {
		text += "  " + h.Tooltip
	}
	return lipgloss.NewStyle().MaxWidth(m.width).Render(" " + text)
}

func (m Model) detail(selection *core.Selection) string {
	lines := []string{
		titleStyle.Render(selection.Name) + "  " + core.FormatMHzRange(selection.Range),
	}
	if selection.Description != "" {
		lines = append(lines, selection.Description)
	}
	if len(selection.Strip.Bars) > 0 {
		lines = append(lines, stripLine(selection.Strip, m.width-4).render(), legend(selection.Strip))
	}
	if len(selection.Subbands) > 0 {
		lines = append(lines, subbandTable(selection.Subbands).View())
	}
	return boxStyle.Width(m.width - 2).Render(strings.Join(lines, "\n"))
}

// stripLine draws the bars of the strip, its width is given in columns.
func stripLine(strip core.Strip, width int) line {
	l := newLine(max(1, width))
	c := columns{count: len(l), left: 0, width: max(1, strip.Width)}
	for _, bar := range strip.Bars {
		l.fill(c, bar.X, bar.Color)
	}
	return l
}

func legend(strip core.Strip) string {
	entries := make([]string, len(strip.Legend))
	for i, e := range strip.Legend {
		block := lipgloss.NewStyle().Foreground(lipgloss.Color(string(e.Color))).Render("■")
		entries[i] = block + " " + e.Mode
	}
	return strings.Join(entries, "  ")
}

func subbandTable(subbands []core.SubbandRow) table.Model {
	tableRows := make([]table.Row, len(subbands))
	for i, sb := range subbands {
		tableRows[i] = table.Row{core.FormatMHz(sb.Range.From) + " – " + core.FormatMHz(sb.Range.To), sb.Label, sb.Mode}
	}
	return table.New(
		table.WithColumns([]table.Column{
			{Title: "Range (MHz)", Width: 22},
			{Title: "Label", Width: 36},
			{Title: "Mode", Width: 14},
		}),
		table.WithRows(tableRows),
		table.WithWidth(78),
		table.WithHeight(min(len(tableRows)+1, 12)),
	)
}

func (m Model) quickBands() string {
	bands := m.panorama.QuickBands()
	entries := make([]string, len(bands))
	for i, b := range bands {
		entries[i] = fmt.Sprintf("%d %s", i+1, b.Title())
	}
	return lipgloss.NewStyle().MaxWidth(m.width).Render(dimStyle.Render(" " + strings.Join(entries, "  ")))
}

func (m Model) helpView() string {
	if m.search.Focused() {
		return m.help.View(searchKeys)
	}
	return m.help.View(keys)
}
