package ui

import (
	bt "github.com/charmbracelet/bubbles/table"

	"adminui/internal/model"
)

const checkboxWidth = 3

func checkbox(on bool) string {
	if on {
		return "[x]"
	}
	return "[ ]"
}

// applyColumns sizes the name/email/role columns to the terminal width. The
// header of the checkbox column mirrors the select-all state of the page.
func (m *Model) applyColumns() {
	width := m.termWidth
	if width <= 0 {
		width = 80
	}
	// each cell carries one column of right padding
	avail := width - checkboxWidth - 4
	name := avail * 35 / 100
	email := avail * 45 / 100
	role := avail - name - email
	if name < 10 {
		name = 10
	}
	if email < 12 {
		email = 12
	}
	if role < 6 {
		role = 6
	}
	m.tbl.SetColumns([]bt.Column{
		{Title: checkbox(m.state.PageAllChecked()), Width: checkboxWidth},
		{Title: "Name", Width: name},
		{Title: "Email", Width: email},
		{Title: "Role", Width: role},
	})
}

// refreshRows rebuilds the table from the current page slice.
func (m *Model) refreshRows() {
	m.applyColumns()
	slice := m.state.PageSlice()
	draft, editing := m.state.Draft()
	rows := make([]bt.Row, 0, len(slice))
	for _, mem := range slice {
		name, role := mem.Name, mem.Role
		if editing && draft.ID == mem.ID {
			name, role = draft.Name+" ✎", draft.Role
		}
		rows = append(rows, bt.Row{checkbox(mem.Checked), name, mem.Email, role})
	}
	m.tbl.SetRows(rows)
	if c := m.tbl.Cursor(); c >= len(rows) {
		m.tbl.SetCursor(len(rows) - 1)
	}
	if m.tbl.Cursor() < 0 && len(rows) > 0 {
		m.tbl.SetCursor(0)
	}
}

// currentMember is the member under the table cursor.
func (m *Model) currentMember() (model.Member, bool) {
	slice := m.state.PageSlice()
	c := m.tbl.Cursor()
	if c < 0 || c >= len(slice) {
		return model.Member{}, false
	}
	return slice[c], true
}
