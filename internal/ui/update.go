package ui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"adminui/internal/pager"
	"adminui/internal/table"
	"adminui/internal/util"
	"adminui/internal/util/logx"
)

func (m *Model) buildHelpItems() []helpItem {
	km := m.keymap
	return []helpItem{
		{group: "Navigation", text: "Previous row", key: km.Up},
		{group: "Navigation", text: "Next row", key: km.Down},
		{group: "Navigation", text: "Previous page", key: km.PrevPage},
		{group: "Navigation", text: "Next page", key: km.NextPage},
		{group: "Navigation", text: "First page", key: km.FirstPage},
		{group: "Navigation", text: "Last page", key: km.LastPage},
		{group: "Navigation", text: "Go to page", key: km.JumpPage},

		{group: "Search", text: "Search by name", key: km.Search},
		{group: "Search", text: "Filter expression", key: km.Filter},
		{group: "Search", text: "Clear filter", key: km.ClearFilter},

		{group: "Selection", text: "Toggle row", key: km.Toggle},
		{group: "Selection", text: "Select/unselect page", key: km.SelectPage},
		{group: "Selection", text: "Delete selected", key: km.DeleteMarked},

		{group: "Row", text: "Edit row", key: km.Edit},
		{group: "Row", text: "Delete row", key: km.DeleteRow},
		{group: "Row", text: "Inspect row", key: km.Inspect},
		{group: "Row", text: "Copy email", key: km.CopyEmail},

		{group: "Views", text: "Role stats", key: km.Stats},
		{group: "Views", text: "Application logs", key: km.AppLogs},
		{group: "Views", text: "Summarize (OpenAI)", key: km.Summarize},

		{group: "Control", text: "Export view", key: km.Export},
		{group: "Control", text: "Help", key: km.Help},
		{group: "Control", text: "Quit", key: km.Quit},
	}
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.termWidth, m.termHeight = msg.Width, msg.Height
		// Fit table height: header plus one page, leaving room for footer, inline line and status
		h := m.state.PageSize() + 1
		if maxH := msg.Height - 4; h > maxH {
			h = maxH
		}
		if h < 2 {
			h = 2
		}
		m.tbl.SetHeight(h)
		m.tbl.SetWidth(msg.Width)
		m.refreshRows()
		if m.modalActive {
			m.resizeModal()
		}
		return m, nil
	case membersLoadedMsg:
		m.loading = false
		if msg.err != nil {
			m.loadErr = msg.err
			m.lastMsg = "load failed"
			return m, nil
		}
		m.source = msg.res.Source
		m.state = table.Load(msg.res.Members, m.cfg.PageSize)
		m.lastMsg = fmt.Sprintf("loaded %d members", m.state.Len())
		m.tbl.SetCursor(0)
		m.refreshRows()
		return m, nil
	case searchFireMsg:
		if !m.debounce.Accept(msg) {
			return m, nil
		}
		m.state = m.state.Search(msg.term)
		logx.Debugf("search: %q matched %d of %d", msg.term, len(m.state.Filtered()), m.state.Len())
		m.tbl.SetCursor(0)
		m.refreshRows()
		return m, nil
	case exportDoneMsg:
		if msg.err != nil {
			m.lastMsg = "export failed: " + msg.err.Error()
			logx.Errorf("export: %v", msg.err)
		} else {
			m.lastMsg = fmt.Sprintf("exported %d members to %s", msg.n, msg.path)
		}
		return m, nil
	case summaryDoneMsg:
		m.netBusy = false
		if msg.err != nil {
			m.lastMsg = "summary failed: " + msg.err.Error()
			logx.Warnf("ai: summary failed: %v", msg.err)
			return m, nil
		}
		m.lastMsg = ""
		m.openSummaryModal(msg.text)
		return m, nil
	case spinner.TickMsg:
		if m.loading || m.netBusy {
			var cmd tea.Cmd
			m.spin, cmd = m.spin.Update(msg)
			return m, cmd
		}
		return m, nil
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}
		if m.modalActive {
			return m.updateModal(msg)
		}
		if m.inlineMode != inlineNone {
			if cmd, handled := m.updateInline(msg); handled {
				return m, cmd
			}
		}
		return m.updateKeys(msg)
	}
	return m, nil
}

func (m *Model) updateModal(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.modalKind == modalHelp {
		switch {
		case msg.Type == tea.KeyUp:
			if m.helpSel > 0 {
				m.helpSel--
			}
			return m, nil
		case msg.Type == tea.KeyDown:
			if m.helpSel+1 < len(m.helpItems) {
				m.helpSel++
			}
			return m, nil
		case msg.Type == tea.KeyEnter:
			m.modalActive = false
			if len(m.helpItems) > 0 {
				return m, keyCmd(m.helpItems[m.helpSel].key)
			}
			return m, nil
		case msg.Type == tea.KeyEsc || keyMatches(msg, m.keymap.Quit) || keyMatches(msg, m.keymap.Help):
			m.modalActive = false
			return m, nil
		}
		// ignore other keys in help modal
		return m, nil
	}
	if msg.Type == tea.KeyEsc || msg.Type == tea.KeyEnter || keyMatches(msg, m.keymap.Quit) {
		m.modalActive = false
		return m, nil
	}
	if keyMatches(msg, m.keymap.CopyEmail) {
		copyToClipboard(m.modalBody)
		m.lastMsg = "copied to clipboard"
		return m, nil
	}
	var cmd tea.Cmd
	m.modalVP, cmd = m.modalVP.Update(msg)
	return m, cmd
}

// updateInline handles keys for the bottom-line inputs. Keys it does not
// claim fall through to the normal shortcuts.
func (m *Model) updateInline(msg tea.KeyMsg) (tea.Cmd, bool) {
	switch m.inlineMode {
	case inlineSearch:
		switch msg.Type {
		case tea.KeyEnter:
			// input stays open; repeated Enter restarts the debounce
			return m.debounce.Trigger(m.search.Value()), true
		case tea.KeyEsc:
			m.inlineMode = inlineNone
			m.search.Blur()
			if !m.debounce.Pending() {
				m.search.SetValue(m.state.SearchTerm())
			}
			return nil, true
		case tea.KeyRunes, tea.KeySpace, tea.KeyBackspace, tea.KeyDelete, tea.KeyLeft, tea.KeyRight, tea.KeyHome, tea.KeyEnd, tea.KeyCtrlU, tea.KeyCtrlW:
			before := m.search.Value()
			var cmd tea.Cmd
			m.search, cmd = m.search.Update(msg)
			// editing the term supersedes a commit still waiting to fire
			if m.debounce.Pending() && m.search.Value() != before {
				m.debounce.Cancel()
			}
			return cmd, true
		}
		return nil, false
	case inlineFilter:
		switch msg.Type {
		case tea.KeyEnter:
			expr := strings.TrimSpace(m.input.Value())
			st, err := m.state.SetFilter(expr)
			if err != nil {
				m.lastMsg = err.Error()
				return nil, true
			}
			m.state = st
			m.inlineMode = inlineNone
			m.input.Blur()
			logx.Infof("filter: %q matched %d of %d", expr, len(m.state.Filtered()), m.state.Len())
			m.tbl.SetCursor(0)
			m.refreshRows()
			return nil, true
		case tea.KeyEsc:
			m.inlineMode = inlineNone
			m.input.Blur()
			return nil, true
		}
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return cmd, true
	case inlineJump:
		switch msg.Type {
		case tea.KeyEnter:
			q := strings.TrimSpace(m.input.Value())
			if n, err := strconv.Atoi(q); err == nil {
				m.changePage(n)
			} else if q != "" {
				m.lastMsg = "invalid page number"
			}
			m.inlineMode = inlineNone
			m.input.Blur()
			return nil, true
		case tea.KeyEsc:
			m.inlineMode = inlineNone
			m.input.Blur()
			return nil, true
		}
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return cmd, true
	case inlineEdit:
		switch msg.Type {
		case tea.KeyEnter:
			m.syncDraft()
			d, _ := m.state.Draft()
			m.state = m.state.SaveEdit()
			m.endEdit()
			m.lastMsg = "saved"
			logx.Infof("table: edited member %s (name=%q role=%q)", d.ID, d.Name, d.Role)
			m.refreshRows()
			return nil, true
		case tea.KeyEsc:
			m.state = m.state.CancelEdit()
			m.endEdit()
			m.refreshRows()
			return nil, true
		case tea.KeyTab, tea.KeyShiftTab, tea.KeyUp, tea.KeyDown:
			m.editInputs[m.editFocus].Blur()
			m.editFocus = (m.editFocus + 1) % len(m.editInputs)
			m.editInputs[m.editFocus].Focus()
			return nil, true
		}
		var cmd tea.Cmd
		m.editInputs[m.editFocus], cmd = m.editInputs[m.editFocus].Update(msg)
		m.syncDraft()
		m.refreshRows()
		return cmd, true
	}
	return nil, false
}

func (m *Model) syncDraft() {
	m.state = m.state.SetDraft(m.editInputs[editName].Value(), m.editInputs[editRole].Value())
}

func (m *Model) beginEdit(id string) {
	m.state = m.state.BeginEdit(id)
	d, ok := m.state.Draft()
	if !ok {
		return
	}
	m.editInputs[editName].SetValue(d.Name)
	m.editInputs[editRole].SetValue(d.Role)
	m.editInputs[editRole].Blur()
	m.editFocus = editName
	m.editInputs[editName].Focus()
	m.inlineMode = inlineEdit
	m.refreshRows()
}

func (m *Model) endEdit() {
	for i := range m.editInputs {
		m.editInputs[i].Blur()
	}
	m.inlineMode = inlineNone
}

// navigate applies a footer button if it is enabled.
func (m *Model) navigate(b pager.Button) {
	f := m.footer()
	if !f.Nav().Enabled(b) {
		return
	}
	m.changePage(f.Target(b))
}

func (m *Model) changePage(p int) {
	before := m.state.Page()
	m.state = m.state.GoToPage(p)
	if m.state.Page() != before {
		m.tbl.SetCursor(0)
	}
	m.refreshRows()
}

func (m *Model) updateKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	km := m.keymap
	switch {
	case keyMatches(msg, km.Quit):
		return m, tea.Quit
	case keyMatches(msg, km.Help):
		m.openHelpModal()
		return m, nil
	case keyMatches(msg, km.AppLogs):
		m.openAppLogsModal()
		return m, nil
	case keyMatches(msg, km.Up):
		m.tbl.MoveUp(1)
		return m, nil
	case keyMatches(msg, km.Down):
		m.tbl.MoveDown(1)
		return m, nil
	case keyMatches(msg, km.PrevPage):
		m.navigate(pager.Prev)
		return m, nil
	case keyMatches(msg, km.NextPage):
		m.navigate(pager.Next)
		return m, nil
	case keyMatches(msg, km.FirstPage):
		m.navigate(pager.First)
		return m, nil
	case keyMatches(msg, km.LastPage):
		m.navigate(pager.Last)
		return m, nil
	case keyMatches(msg, km.JumpPage):
		if m.state.TotalPages() == 0 {
			return m, nil
		}
		m.inlineMode = inlineJump
		m.input.Prompt = "page: "
		m.input.SetValue("")
		m.input.Focus()
		return m, nil
	case keyMatches(msg, km.Search):
		m.inlineMode = inlineSearch
		m.search.Focus()
		return m, nil
	case keyMatches(msg, km.Filter):
		m.inlineMode = inlineFilter
		m.input.Prompt = "expr: "
		m.input.SetValue(m.state.Criteria().Expr)
		m.input.Focus()
		return m, nil
	case keyMatches(msg, km.ClearFilter):
		if st, err := m.state.SetFilter(""); err == nil {
			m.state = st
			m.lastMsg = "filter cleared"
			m.refreshRows()
		}
		return m, nil
	case keyMatches(msg, km.Toggle):
		if cur, ok := m.currentMember(); ok {
			m.state = m.state.Toggle(cur.ID)
			m.refreshRows()
		}
		return m, nil
	case keyMatches(msg, km.SelectPage):
		m.state = m.state.SelectPage(!m.state.PageAllChecked())
		m.refreshRows()
		return m, nil
	case keyMatches(msg, km.DeleteRow):
		if cur, ok := m.currentMember(); ok {
			m.state = m.state.Delete(cur.ID)
			m.lastMsg = "deleted " + cur.Name
			logx.Infof("table: deleted member %s (%s)", cur.ID, util.RedactPII(cur.Email))
			m.refreshRows()
		}
		return m, nil
	case keyMatches(msg, km.DeleteMarked):
		before := m.state.Len()
		m.state = m.state.DeleteSelected()
		n := before - m.state.Len()
		if n > 0 {
			m.lastMsg = fmt.Sprintf("deleted %d selected", n)
			logx.Infof("table: bulk deleted %d members", n)
		}
		m.tbl.SetCursor(0)
		m.refreshRows()
		return m, nil
	case keyMatches(msg, km.Edit):
		if cur, ok := m.currentMember(); ok {
			m.beginEdit(cur.ID)
		}
		return m, nil
	case keyMatches(msg, km.Inspect):
		m.openInspectorModal()
		return m, nil
	case keyMatches(msg, km.CopyEmail):
		if cur, ok := m.currentMember(); ok {
			copyToClipboard(cur.Email)
			m.lastMsg = "copied " + cur.Email
		}
		return m, nil
	case keyMatches(msg, km.Export):
		if m.cfg.ExportFormat == "" || m.cfg.ExportOut == "" {
			m.lastMsg = "export needs --export and --out"
			return m, nil
		}
		return m, exportCmd(m.cfg.ExportFormat, m.cfg.ExportOut, m.state.Filtered())
	case keyMatches(msg, km.Stats):
		m.openStatsModal()
		return m, nil
	case keyMatches(msg, km.Summarize):
		return m, m.summarizeCmd()
	case msg.Type == tea.KeyEsc:
		if m.state.SearchTerm() != "" {
			m.search.SetValue("")
			return m, m.debounce.Trigger("")
		}
		return m, nil
	}
	return m, nil
}
