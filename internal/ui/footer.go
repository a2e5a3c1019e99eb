package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"adminui/internal/pager"
)

func (m *Model) footer() pager.Footer {
	return pager.Footer{
		Current:     m.state.Page(),
		Total:       m.state.TotalPages(),
		TotalRows:   len(m.state.Filtered()),
		CheckedRows: m.state.CheckedCount(),
	}
}

// renderFooter draws the selection summary and, when there is at least one
// page, the label and the button row. Disabled buttons are rendered faint.
func (m *Model) renderFooter() string {
	f := m.footer()
	summary := m.styles.Status.Render(f.Summary())
	if !f.HasControls() {
		return summary
	}
	nav := f.Nav()
	button := func(label string, b pager.Button) string {
		if !nav.Enabled(b) {
			return m.styles.NavDisabled.Render(label)
		}
		return m.styles.PageButton.Render(label)
	}
	parts := []string{button("«", pager.First), button("‹", pager.Prev)}
	for _, it := range f.Items() {
		switch {
		case it.Ellipsis:
			parts = append(parts, m.styles.NavDisabled.Render(it.String()))
		case it.Active:
			parts = append(parts, m.styles.PageActive.Render(" "+it.String()+" "))
		default:
			parts = append(parts, m.styles.PageButton.Render(it.String()))
		}
	}
	parts = append(parts, button("›", pager.Next), button("»", pager.Last))
	controls := m.styles.Base.Render(f.Label()) + "  " + strings.Join(parts, " ")

	w := m.termWidth
	gap := w - lipgloss.Width(summary) - lipgloss.Width(controls)
	if w <= 0 || gap < 2 {
		return lipgloss.JoinVertical(lipgloss.Left, summary, controls)
	}
	return summary + strings.Repeat(" ", gap) + controls
}
