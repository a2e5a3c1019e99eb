// Package pager computes the pagination footer: the selection summary, the
// first/prev/next/last enablement and the windowed list of page buttons.
// It holds no state; the caller applies the page numbers it hands back.
package pager

import "fmt"

// maxFlat is the largest page count rendered without elision.
const maxFlat = 5

// Item is one element of the page button row: either a page number or an
// ellipsis.
type Item struct {
	Page     int
	Ellipsis bool
	Active   bool
}

func (it Item) String() string {
	if it.Ellipsis {
		return "..."
	}
	return fmt.Sprint(it.Page)
}

type Footer struct {
	Current     int
	Total       int
	TotalRows   int
	CheckedRows int
}

func (f Footer) Summary() string {
	return fmt.Sprintf("%d of %d row(s) selected.", f.CheckedRows, f.TotalRows)
}

// Label is the "Page X of Y" caption shown next to the controls.
func (f Footer) Label() string {
	return fmt.Sprintf("Page %d of %d", f.Current, f.Total)
}

// HasControls is false when there is nothing to page through.
func (f Footer) HasControls() bool { return f.Total >= 1 }

type Nav struct {
	First, Prev, Next, Last bool
}

// Nav reports which of the first/prev/next/last buttons are enabled.
func (f Footer) Nav() Nav {
	if !f.HasControls() {
		return Nav{}
	}
	atFirst := f.Current <= 1
	atLast := f.Current >= f.Total
	return Nav{First: !atFirst, Prev: !atFirst, Next: !atLast, Last: !atLast}
}

// Enabled reports whether button b can be pressed.
func (n Nav) Enabled(b Button) bool {
	switch b {
	case First:
		return n.First
	case Prev:
		return n.Prev
	case Next:
		return n.Next
	case Last:
		return n.Last
	}
	return false
}

// Target resolves a navigation button to the page it requests.
func (f Footer) Target(b Button) int {
	switch b {
	case First:
		return 1
	case Prev:
		return f.Current - 1
	case Next:
		return f.Current + 1
	case Last:
		return f.Total
	}
	return f.Current
}

type Button int

const (
	First Button = iota
	Prev
	Next
	Last
)

func (f Footer) Items() []Item { return Window(f.Current, f.Total) }

// Window lays out the page buttons. Up to five pages are listed in full.
// Beyond that the row always starts with page 1 and ends with the last page,
// shows current-2..current+2 in between, and marks a gap with an ellipsis
// when current > 3 (left) or current < total-2 (right).
func Window(current, total int) []Item {
	if total < 1 {
		return nil
	}
	items := make([]Item, 0, 9)
	page := func(p int) Item { return Item{Page: p, Active: p == current} }
	if total <= maxFlat {
		for p := 1; p <= total; p++ {
			items = append(items, page(p))
		}
		return items
	}
	left := max(1, current-2)
	right := min(total, current+2)
	if left > 1 {
		items = append(items, page(1))
	}
	if current > 3 {
		items = append(items, Item{Ellipsis: true})
	}
	for p := left; p <= right; p++ {
		items = append(items, page(p))
	}
	if current < total-2 {
		items = append(items, Item{Ellipsis: true})
	}
	if right < total {
		items = append(items, page(total))
	}
	return items
}
