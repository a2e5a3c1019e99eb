package ui

import (
	"context"
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"adminui/internal/config"
	"adminui/internal/ingest"
)

func newTestModel(t *testing.T, n int) *Model {
	t.Helper()
	cfg := &config.Config{PageSize: 10, DebounceMS: 0, Theme: config.ThemeDark, Offline: true, Demo: true}
	m := initialModel(context.Background(), cfg)
	m.Update(membersLoadedMsg{res: ingest.Result{Members: ingest.DemoMembers(n, 1), Source: "demo"}})
	return m
}

func runes(s string) tea.KeyMsg { return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)} }

// press sends msg. For Enter it also delivers the debounced search firing,
// which fires immediately with a zero delay.
func press(m *Model, msg tea.KeyMsg) {
	_, cmd := m.Update(msg)
	if cmd == nil || msg.Type != tea.KeyEnter {
		return
	}
	if out, ok := cmd().(searchFireMsg); ok {
		m.Update(out)
	}
}

func TestLoadedMessagePopulatesRows(t *testing.T) {
	m := newTestModel(t, 23)
	if m.loading || m.loadErr != nil {
		t.Fatalf("unexpected state loading=%v err=%v", m.loading, m.loadErr)
	}
	if got := len(m.tbl.Rows()); got != 10 {
		t.Fatalf("expected 10 rows, got %d", got)
	}
	v := m.View()
	if !strings.Contains(v, "0 of 23 row(s) selected.") || !strings.Contains(v, "Page 1 of 3") {
		t.Fatalf("footer missing from view:\n%s", v)
	}
}

func TestLoadErrorRendersState(t *testing.T) {
	cfg := &config.Config{PageSize: 10, Theme: config.ThemeDark, Offline: true}
	m := initialModel(context.Background(), cfg)
	m.Update(membersLoadedMsg{err: errors.New("boom")})
	if v := m.View(); !strings.Contains(v, "failed to load members: boom") {
		t.Fatalf("error view: %q", v)
	}
}

func TestSearchCommitsOnEnter(t *testing.T) {
	m := newTestModel(t, 23)
	press(m, runes("/"))
	if m.inlineMode != inlineSearch {
		t.Fatal("search input not opened")
	}
	press(m, runes("zoe"))
	if m.state.SearchTerm() != "" {
		t.Fatal("search applied before enter")
	}
	press(m, tea.KeyMsg{Type: tea.KeyEnter})
	if m.state.SearchTerm() != "zoe" {
		t.Fatalf("term: %q", m.state.SearchTerm())
	}
	for _, mem := range m.state.Filtered() {
		if !strings.Contains(strings.ToLower(mem.Name), "zoe") {
			t.Fatalf("unexpected match %q", mem.Name)
		}
	}
	if m.state.Page() != 1 {
		t.Fatalf("page: %d", m.state.Page())
	}
}

func TestStaleSearchIgnored(t *testing.T) {
	m := newTestModel(t, 23)
	first := m.debounce.Trigger("a")()
	second := m.debounce.Trigger("ab")()
	m.Update(first)
	if m.state.SearchTerm() != "" {
		t.Fatalf("stale firing applied: %q", m.state.SearchTerm())
	}
	m.Update(second)
	if m.state.SearchTerm() != "ab" {
		t.Fatalf("term: %q", m.state.SearchTerm())
	}
}

func TestToggleAndSelectPage(t *testing.T) {
	m := newTestModel(t, 23)
	press(m, tea.KeyMsg{Type: tea.KeySpace})
	if m.state.CheckedCount() != 1 {
		t.Fatalf("checked: %d", m.state.CheckedCount())
	}
	if m.tbl.Rows()[0][0] != "[x]" {
		t.Fatalf("row checkbox: %q", m.tbl.Rows()[0][0])
	}
	press(m, runes("a"))
	if !m.state.PageAllChecked() || m.state.CheckedCount() != 10 {
		t.Fatalf("select page: all=%v n=%d", m.state.PageAllChecked(), m.state.CheckedCount())
	}
	press(m, runes("a"))
	if m.state.CheckedCount() != 0 {
		t.Fatalf("unselect page: %d", m.state.CheckedCount())
	}
}

func TestPageNavigation(t *testing.T) {
	m := newTestModel(t, 23)
	press(m, tea.KeyMsg{Type: tea.KeyLeft})
	if m.state.Page() != 1 {
		t.Fatal("prev on first page must be ignored")
	}
	press(m, tea.KeyMsg{Type: tea.KeyRight})
	if m.state.Page() != 2 {
		t.Fatalf("page: %d", m.state.Page())
	}
	press(m, runes("G"))
	if m.state.Page() != 3 || len(m.tbl.Rows()) != 3 {
		t.Fatalf("last page: %d rows=%d", m.state.Page(), len(m.tbl.Rows()))
	}
	press(m, tea.KeyMsg{Type: tea.KeyRight})
	if m.state.Page() != 3 {
		t.Fatal("next on last page must be ignored")
	}
	press(m, runes(":"))
	press(m, runes("2"))
	press(m, tea.KeyMsg{Type: tea.KeyEnter})
	if m.state.Page() != 2 {
		t.Fatalf("jump: %d", m.state.Page())
	}
	press(m, runes("g"))
	if m.state.Page() != 1 {
		t.Fatalf("first: %d", m.state.Page())
	}
}

func TestEditFlow(t *testing.T) {
	m := newTestModel(t, 23)
	cur, ok := m.currentMember()
	if !ok {
		t.Fatal("no current member")
	}
	press(m, runes("e"))
	if m.inlineMode != inlineEdit || !m.state.Editing(cur.ID) {
		t.Fatal("edit not started")
	}
	m.editInputs[editName].SetValue("Ada")
	m.editInputs[editName].CursorEnd()
	press(m, runes("m"))
	press(m, tea.KeyMsg{Type: tea.KeyTab})
	m.editInputs[editRole].SetValue("owne")
	m.editInputs[editRole].CursorEnd()
	press(m, runes("r"))
	press(m, tea.KeyMsg{Type: tea.KeyEnter})
	if m.inlineMode != inlineNone {
		t.Fatal("edit mode not closed")
	}
	for _, mem := range m.state.Members() {
		if mem.ID == cur.ID {
			if mem.Name != "Adam" || mem.Role != "owner" || mem.Email != cur.Email {
				t.Fatalf("saved: %+v", mem)
			}
			return
		}
	}
	t.Fatal("edited member missing")
}

func TestEditCancel(t *testing.T) {
	m := newTestModel(t, 23)
	cur, _ := m.currentMember()
	press(m, runes("e"))
	press(m, runes("zzz"))
	press(m, tea.KeyMsg{Type: tea.KeyEsc})
	if _, editing := m.state.Draft(); editing {
		t.Fatal("draft kept after cancel")
	}
	after, _ := m.currentMember()
	if after.Name != cur.Name {
		t.Fatalf("name changed to %q", after.Name)
	}
}

func TestDeleteClampsPage(t *testing.T) {
	m := newTestModel(t, 21)
	press(m, runes("G"))
	if m.state.Page() != 3 || len(m.tbl.Rows()) != 1 {
		t.Fatalf("setup: page=%d rows=%d", m.state.Page(), len(m.tbl.Rows()))
	}
	press(m, runes("d"))
	if m.state.Len() != 20 || m.state.Page() != 2 {
		t.Fatalf("after delete: len=%d page=%d", m.state.Len(), m.state.Page())
	}
}

func TestBulkDelete(t *testing.T) {
	m := newTestModel(t, 23)
	press(m, runes("a"))
	press(m, runes("D"))
	if m.state.Len() != 13 || m.state.CheckedCount() != 0 || m.state.Page() != 1 {
		t.Fatalf("len=%d checked=%d page=%d", m.state.Len(), m.state.CheckedCount(), m.state.Page())
	}
}

func TestSummaryDisabledOffline(t *testing.T) {
	m := newTestModel(t, 3)
	press(m, runes("i"))
	if !strings.Contains(m.lastMsg, "disabled") || m.netBusy {
		t.Fatalf("lastMsg=%q busy=%v", m.lastMsg, m.netBusy)
	}
}

func TestModalsOpenAndClose(t *testing.T) {
	m := newTestModel(t, 5)
	press(m, runes("s"))
	if !m.modalActive || m.modalKind != modalStats || !strings.Contains(m.modalBody, "Stats for role") {
		t.Fatalf("stats modal: %v %q", m.modalActive, m.modalBody)
	}
	press(m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.modalActive {
		t.Fatal("modal not closed")
	}
	press(m, tea.KeyMsg{Type: tea.KeyEnter})
	if m.modalKind != modalInspector || !strings.Contains(stripANSI(m.modalBody), `"email"`) {
		t.Fatalf("inspector: %q", m.modalBody)
	}
}

func TestTypingSupersedesPendingSearch(t *testing.T) {
	m := newTestModel(t, 23)
	press(m, runes("/"))
	press(m, runes("abc"))
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	fired, ok := cmd().(searchFireMsg)
	if !ok || !m.debounce.Pending() {
		t.Fatal("enter did not schedule a search")
	}
	press(m, runes("d"))
	if m.debounce.Pending() {
		t.Fatal("typing left the old commit pending")
	}
	m.Update(fired)
	if m.state.SearchTerm() != "" {
		t.Fatalf("superseded term committed: %q", m.state.SearchTerm())
	}
	press(m, tea.KeyMsg{Type: tea.KeyEnter})
	if m.state.SearchTerm() != "abcd" {
		t.Fatalf("term: %q", m.state.SearchTerm())
	}
}
