package ui

import (
	"fmt"
	"sort"
	"strings"
)

// colorizeJSONRoot renders v as indented JSON with keys sorted.
func colorizeJSONRoot(v any, st Styles) string {
	var b strings.Builder
	renderJSON(&b, v, st, 0)
	return b.String()
}

func renderJSON(b *strings.Builder, v any, st Styles, indent int) {
	ind := strings.Repeat("  ", indent)
	switch t := v.(type) {
	case map[string]any:
		keys := make([]string, 0, len(t))
		for k := range t {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		b.WriteString(st.JSONPunct.Render("{"))
		if len(keys) > 0 {
			b.WriteString("\n")
		}
		for i, k := range keys {
			b.WriteString(ind + "  ")
			b.WriteString(st.JSONKey.Render(quote(k)))
			b.WriteString(st.JSONPunct.Render(": "))
			renderJSON(b, t[k], st, indent+1)
			if i < len(keys)-1 {
				b.WriteString(st.JSONPunct.Render(","))
			}
			b.WriteString("\n")
		}
		b.WriteString(ind)
		b.WriteString(st.JSONPunct.Render("}"))
	case []any:
		b.WriteString(st.JSONPunct.Render("["))
		for i, it := range t {
			if i > 0 {
				b.WriteString(st.JSONPunct.Render(", "))
			}
			renderJSON(b, it, st, indent+1)
		}
		b.WriteString(st.JSONPunct.Render("]"))
	case string:
		b.WriteString(st.JSONString.Render(quote(t)))
	case float64, int, int64:
		b.WriteString(st.JSONNumber.Render(fmt.Sprint(t)))
	case bool:
		b.WriteString(st.JSONBool.Render(fmt.Sprint(t)))
	case nil:
		b.WriteString(st.JSONNull.Render("null"))
	default:
		b.WriteString(st.JSONString.Render(quote(fmt.Sprint(t))))
	}
}

func quote(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `"`, `\"`)
	return `"` + s + `"`
}
