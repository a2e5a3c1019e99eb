package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	"github.com/charmbracelet/lipgloss"

	"adminui/internal/model"
	"adminui/internal/util/logx"
)

func (m *Model) View() string {
	var v string
	switch {
	case m.loading:
		v = m.renderLoading()
	case m.loadErr != nil:
		v = m.renderLoadError()
	default:
		v = m.renderTable()
	}
	if m.modalActive {
		// Dim the background content while keeping it visible
		dimmed := lipgloss.NewStyle().Faint(true).Render(v)
		v = overlay(dimmed, m.renderModal())
	}
	return v
}

func (m *Model) renderLoading() string {
	src := m.source
	if src == "" {
		src = m.cfg.Source()
	}
	return fmt.Sprintf("%s Loading members (%s)...", m.spin.View(), src)
}

func (m *Model) renderLoadError() string {
	return lipgloss.JoinVertical(lipgloss.Left,
		m.styles.Error.Render("failed to load members: "+m.loadErr.Error()),
		"",
		m.styles.Help.Render("[L]=logs [q]=quit"),
	)
}

func (m *Model) renderTable() string {
	var body string
	if len(m.state.Filtered()) == 0 {
		msg := "No members."
		if m.state.Len() > 0 {
			msg = "No members match the current search."
		}
		body = m.styles.Help.Render(msg)
	} else {
		body = m.tbl.View()
	}

	// Inline input line above status bar (or active search/filter summary)
	var bottom string
	crit := m.state.Criteria()
	switch m.inlineMode {
	case inlineSearch:
		bottom = m.search.View() + "    [enter]=search [esc]=close"
		if m.debounce.Pending() {
			bottom += "  " + m.spin.View()
		}
	case inlineFilter:
		bottom = "Filter " + m.input.View() + "    [enter]=apply [esc]=cancel"
	case inlineJump:
		bottom = m.input.View() + "    [enter]=go [esc]=cancel"
	case inlineEdit:
		bottom = m.styles.Editing.Render(fmt.Sprintf("%s  %s", m.editInputs[editName].View(), m.editInputs[editRole].View())) +
			"    [tab]=next field [enter]=save [esc]=cancel"
	default:
		var parts []string
		if crit.Query != "" {
			parts = append(parts, fmt.Sprintf("search: %q", crit.Query))
		}
		if crit.Expr != "" {
			parts = append(parts, "filter: "+crit.Expr+"  [F]=clear filter")
		}
		bottom = strings.Join(parts, "  ")
	}
	// Always render a sub status bar to keep layout stable
	if bottom == "" && m.termWidth > 0 {
		bottom = strings.Repeat(" ", m.termWidth)
	}

	busy := ""
	if m.netBusy {
		busy = m.spin.View() + " "
	}
	status := fmt.Sprintf("%s%d members | source: %s | [?]=help | %s", busy, m.state.Len(), m.source, m.lastMsg)
	return lipgloss.JoinVertical(lipgloss.Left, body, m.renderFooter(), bottom, m.styles.Status.Render(status))
}

func (m *Model) renderHelp() string {
	if len(m.helpItems) == 0 {
		m.helpItems = m.buildHelpItems()
	}
	if m.helpSel < 0 {
		m.helpSel = 0
	}
	if m.helpSel >= len(m.helpItems) {
		m.helpSel = len(m.helpItems) - 1
	}
	lines := []string{"Shortcuts:"}
	currentGroup := ""
	lineIndexOfSel := 0
	for i, it := range m.helpItems {
		if it.group != currentGroup {
			currentGroup = it.group
			lines = append(lines, "")
			lines = append(lines, currentGroup+":")
		}
		prefix := "  "
		if i == m.helpSel {
			prefix = "> "
			lineIndexOfSel = len(lines)
		}
		lines = append(lines, fmt.Sprintf("%s[%s] %s", prefix, keyLabel(it.key), it.text))
	}
	// Keep selection visible
	if m.modalVP.Height > 0 {
		top := m.modalVP.YOffset
		bottom := top + m.modalVP.Height - 1
		if lineIndexOfSel <= top {
			m.modalVP.YOffset = max(lineIndexOfSel-1, 0)
		} else if lineIndexOfSel >= bottom {
			m.modalVP.YOffset = max(lineIndexOfSel-m.modalVP.Height+2, 0)
		}
	}
	return m.styles.Help.Render(strings.Join(lines, "\n"))
}

func (m *Model) openHelpModal() {
	m.modalActive = true
	m.modalKind = modalHelp
	m.modalTitle = "Help"
	m.helpItems = m.buildHelpItems()
	m.helpSel = 0
	m.modalBody = m.renderHelp()
	m.resizeModal()
}

func (m *Model) openStatsModal() {
	m.modalActive = true
	m.modalKind = modalStats
	m.modalTitle = "Roles"
	m.modalBody = m.renderRoleStats()
	m.resizeModal()
}

func (m *Model) renderRoleStats() string {
	ms := m.state.Filtered()
	head := fmt.Sprintf("%d members in view, %d selected\n\n", len(ms), m.state.CheckedCount())
	return head + categoricalStats("role", model.RoleCounts(ms))
}

func (m *Model) openInspectorModal() {
	cur, ok := m.currentMember()
	if !ok {
		return
	}
	m.modalActive = true
	m.modalKind = modalInspector
	m.modalTitle = "Member " + cur.ID
	m.modalBody = colorizeJSONRoot(cur.Fields(), m.styles)
	m.resizeModal()
}

func (m *Model) openAppLogsModal() {
	m.modalActive = true
	m.modalKind = modalLogs
	m.modalTitle = "Application Logs"
	m.modalBody = logx.Dump()
	m.resizeModal()
}

func (m *Model) openSummaryModal(text string) {
	m.modalActive = true
	m.modalKind = modalSummary
	m.modalTitle = "Summary"
	m.modalBody = text
	m.resizeModal()
}

func (m *Model) resizeModal() {
	w := m.termWidth - 6
	h := m.termHeight - 6
	if w < 20 {
		w = 20
	}
	if h < 5 {
		h = 5
	}
	m.modalVP = viewport.New(w-4, h-4)
	switch m.modalKind {
	case modalStats:
		m.modalBody = m.renderRoleStats()
	case modalSummary:
		m.modalBody = lipgloss.NewStyle().Width(w - 4).Render(m.modalBody)
	}
	m.modalVP.SetContent(m.modalBody)
	if m.modalKind == modalLogs {
		m.modalVP.GotoBottom()
	}
}

func (m *Model) renderModal() string {
	content := ""
	switch m.modalKind {
	case modalHelp:
		m.modalVP.SetContent(m.renderHelp())
		content = m.modalVP.View() + "\n[esc]=close  [enter]=run"
	case modalLogs:
		// Fixed status header above the application log viewport
		crit := m.state.Criteria()
		header := []string{
			"Status:",
			fmt.Sprintf("source: %s", m.source),
			fmt.Sprintf("members: %d  in view: %d  selected: %d", m.state.Len(), len(m.state.Filtered()), m.state.CheckedCount()),
			fmt.Sprintf("page: %d/%d  search: %q  filter: %q", m.state.Page(), m.state.TotalPages(), crit.Query, crit.Expr),
		}
		content = m.styles.Help.Render(strings.Join(header, "\n")) + "\n" + m.modalVP.View() + "\n[esc/enter]=close  [c]=copy"
	default:
		content = m.modalVP.View() + "\n[esc/enter]=close  [c]=copy"
	}
	boxW := m.termWidth - 6
	if boxW < 20 {
		boxW = 20
	}
	title := m.styles.PopupTitle.Render(m.modalTitle)
	body := m.styles.PopupBox.Width(boxW).Render(title + "\n" + content)
	return lipgloss.Place(m.termWidth, m.termHeight, lipgloss.Center, lipgloss.Center, body)
}
