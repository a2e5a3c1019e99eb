// Package table holds the view state of the member table: the canonical
// list, the search and filter criteria, the page index, per-row selection
// and the single inline edit draft.
//
// State is a value. Every operation returns a new State and leaves the
// receiver untouched, so a controller can keep older snapshots around.
package table

import (
	"adminui/internal/filter"
	"adminui/internal/model"
)

const DefaultPageSize = 10

// EditDraft is the in-progress inline edit of one member. Email is not part
// of the draft; it is read-only while editing.
type EditDraft struct {
	ID   string
	Name string
	Role string
}

type State struct {
	members  []model.Member
	eval     *filter.Evaluator
	pageSize int
	page     int
	draft    EditDraft
	editing  bool
}

// New returns an empty state with the given page size.
func New(pageSize int) State {
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}
	ev, _ := filter.NewEvaluator(filter.Criteria{})
	return State{pageSize: pageSize, page: 1, eval: ev}
}

// Load builds the canonical list: members are copied, sorted by name and
// unchecked.
func Load(ms []model.Member, pageSize int) State {
	s := New(pageSize)
	s.members = make([]model.Member, len(ms))
	copy(s.members, ms)
	for i := range s.members {
		s.members[i].Checked = false
	}
	model.SortByName(s.members)
	return s
}

func (s State) clone() State {
	out := s
	out.members = make([]model.Member, len(s.members))
	copy(out.members, s.members)
	return out
}

func (s State) size() int {
	if s.pageSize < 1 {
		return DefaultPageSize
	}
	return s.pageSize
}

// Members returns a copy of the canonical list.
func (s State) Members() []model.Member {
	out := make([]model.Member, len(s.members))
	copy(out, s.members)
	return out
}

func (s State) Len() int      { return len(s.members) }
func (s State) PageSize() int { return s.size() }

func (s State) Page() int {
	if s.page < 1 {
		return 1
	}
	return s.page
}

func (s State) Criteria() filter.Criteria {
	if s.eval == nil {
		return filter.Criteria{}
	}
	return s.eval.Criteria()
}

func (s State) SearchTerm() string { return s.Criteria().Query }

// Filtered is the search and filter view of the canonical list, in
// canonical order.
func (s State) Filtered() []model.Member {
	return s.eval.Apply(s.members)
}

func (s State) TotalPages() int {
	n := len(s.Filtered())
	return (n + s.size() - 1) / s.size()
}

// Bounds returns the half-open index range of the current page within the
// filtered view.
func (s State) Bounds() (first, last int) {
	first = (s.Page() - 1) * s.size()
	last = first + s.size()
	return first, last
}

func (s State) PageSlice() []model.Member {
	f := s.Filtered()
	first, last := s.Bounds()
	if first >= len(f) {
		return nil
	}
	if last > len(f) {
		last = len(f)
	}
	return f[first:last]
}

func (s State) clampPage(p int) int {
	maxPage := s.TotalPages()
	if maxPage < 1 {
		maxPage = 1
	}
	if p > maxPage {
		p = maxPage
	}
	if p < 1 {
		p = 1
	}
	return p
}

// GoToPage moves to page p, clamped to the valid range.
func (s State) GoToPage(p int) State {
	s.page = s.clampPage(p)
	return s
}

// Search commits a search term and returns to the first page.
func (s State) Search(term string) State {
	c := s.Criteria()
	c.Query = term
	// the expression part was already compiled once, so this cannot fail
	if ev, err := filter.NewEvaluator(c); err == nil {
		s.eval = ev
	}
	s.page = 1
	return s
}

// SetFilter replaces the filter expression. On a compile error the state is
// returned unchanged together with the error.
func (s State) SetFilter(expr string) (State, error) {
	c := s.Criteria()
	c.Expr = expr
	ev, err := filter.NewEvaluator(c)
	if err != nil {
		return s, err
	}
	s.eval = ev
	s.page = 1
	return s, nil
}

// Toggle flips the selection of the member with the given id. Selection
// can move members in or out of a filter expression, so the page is
// clamped afterwards.
func (s State) Toggle(id string) State {
	if model.IndexOf(s.members, id) < 0 {
		return s
	}
	s = s.clone()
	for i := range s.members {
		if s.members[i].ID == id {
			s.members[i].Checked = !s.members[i].Checked
		}
	}
	s.page = s.clampPage(s.page)
	return s
}

// SelectPage sets the selection of every member on the current page slice.
// Members outside the slice keep their selection.
func (s State) SelectPage(checked bool) State {
	slice := s.PageSlice()
	if len(slice) == 0 {
		return s
	}
	s = s.clone()
	on := make(map[string]bool, len(slice))
	for _, m := range slice {
		on[m.ID] = true
	}
	for i := range s.members {
		if on[s.members[i].ID] {
			s.members[i].Checked = checked
		}
	}
	s.page = s.clampPage(s.page)
	return s
}

// PageAllChecked reports the value of the header checkbox: true when the
// page slice is non-empty and fully selected.
func (s State) PageAllChecked() bool {
	slice := s.PageSlice()
	if len(slice) == 0 {
		return false
	}
	for _, m := range slice {
		if !m.Checked {
			return false
		}
	}
	return true
}

// CheckedCount counts selected members within the filtered view.
func (s State) CheckedCount() int {
	n := 0
	for _, m := range s.Filtered() {
		if m.Checked {
			n++
		}
	}
	return n
}

// DeleteSelected removes every selected member, including selected members
// hidden by the current search, and returns to the first page.
func (s State) DeleteSelected() State {
	kept := make([]model.Member, 0, len(s.members))
	for _, m := range s.members {
		if m.Checked {
			if s.editing && s.draft.ID == m.ID {
				s.editing = false
				s.draft = EditDraft{}
			}
			continue
		}
		kept = append(kept, m)
	}
	s.members = kept
	s.page = 1
	return s
}

// Delete removes the member with the given id, every copy of it if the
// source repeated the id. The page index is kept but clamped so the view
// never points past the last page.
func (s State) Delete(id string) State {
	if model.IndexOf(s.members, id) < 0 {
		return s
	}
	kept := make([]model.Member, 0, len(s.members))
	for _, m := range s.members {
		if m.ID != id {
			kept = append(kept, m)
		}
	}
	s.members = kept
	if s.editing && s.draft.ID == id {
		s.editing = false
		s.draft = EditDraft{}
	}
	s.page = s.clampPage(s.page)
	return s
}

// BeginEdit puts one member in edit mode, dropping any other pending draft.
func (s State) BeginEdit(id string) State {
	i := model.IndexOf(s.members, id)
	if i < 0 {
		return s
	}
	m := s.members[i]
	s.draft = EditDraft{ID: m.ID, Name: m.Name, Role: m.Role}
	s.editing = true
	return s
}

func (s State) Draft() (EditDraft, bool) { return s.draft, s.editing }

func (s State) Editing(id string) bool { return s.editing && s.draft.ID == id }

func (s State) SetDraft(name, role string) State {
	if !s.editing {
		return s
	}
	s.draft.Name = name
	s.draft.Role = role
	return s
}

// SaveEdit writes the draft into its member and leaves edit mode. Empty
// values are accepted. A renamed member may drop out of the search, so the
// page is clamped afterwards.
func (s State) SaveEdit() State {
	if !s.editing {
		return s
	}
	d := s.draft
	s.editing = false
	s.draft = EditDraft{}
	if model.IndexOf(s.members, d.ID) < 0 {
		return s
	}
	s = s.clone()
	for i := range s.members {
		if s.members[i].ID == d.ID {
			s.members[i].Name = d.Name
			s.members[i].Role = d.Role
		}
	}
	s.page = s.clampPage(s.page)
	return s
}

func (s State) CancelEdit() State {
	s.editing = false
	s.draft = EditDraft{}
	return s
}
