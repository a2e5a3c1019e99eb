package model

import (
	"sort"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// Member is one row of the admin table. Checked is view state and never
// travels on the wire.
type Member struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	Role    string `json:"role"`
	Checked bool   `json:"-"`
}

// Columns is the display and export order of member fields.
var Columns = []string{"name", "email", "role"}

func (m Member) Field(name string) string {
	switch name {
	case "id":
		return m.ID
	case "name":
		return m.Name
	case "email":
		return m.Email
	case "role":
		return m.Role
	}
	return ""
}

// Fields exposes the member as a generic map, used by filter expressions and
// the inspector.
func (m Member) Fields() map[string]any {
	return map[string]any{
		"id":      m.ID,
		"name":    m.Name,
		"email":   m.Email,
		"role":    m.Role,
		"checked": m.Checked,
	}
}

// SortByName orders members by name using a case-insensitive collator.
// Equal names keep a stable order by ID.
func SortByName(ms []Member) {
	c := collate.New(language.English, collate.IgnoreCase)
	sort.SliceStable(ms, func(i, j int) bool {
		if r := c.CompareString(ms[i].Name, ms[j].Name); r != 0 {
			return r < 0
		}
		return ms[i].ID < ms[j].ID
	})
}

// IndexOf returns the position of id in ms, or -1.
func IndexOf(ms []Member, id string) int {
	for i := range ms {
		if ms[i].ID == id {
			return i
		}
	}
	return -1
}

// RoleCounts tallies members per role. Members without a role count as
// "(none)".
func RoleCounts(ms []Member) map[string]int {
	out := map[string]int{}
	for _, m := range ms {
		r := strings.TrimSpace(m.Role)
		if r == "" {
			r = "(none)"
		}
		out[r]++
	}
	return out
}
