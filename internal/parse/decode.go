package parse

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"adminui/internal/model"
)

// aliases maps alternative source keys onto member fields. The first key of
// each list is the canonical one.
var aliases = map[string][]string{
	"id":    {"id", "_id", "uid", "user_id"},
	"name":  {"name", "full_name", "fullName", "display_name", "username"},
	"email": {"email", "mail", "email_address", "emailAddress"},
	"role":  {"role", "type", "group"},
}

// Members decodes either a JSON array of objects or newline-delimited JSON
// objects. Records without an id get a random UUID so they can still be
// selected and edited.
func Members(data []byte) ([]model.Member, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return []model.Member{}, nil
	}
	if trimmed[0] == '[' {
		var raw []map[string]any
		if err := json.Unmarshal(trimmed, &raw); err != nil {
			return nil, fmt.Errorf("decode members: %w", err)
		}
		out := make([]model.Member, 0, len(raw))
		for _, r := range raw {
			out = append(out, FromMap(r))
		}
		return out, nil
	}
	var out []model.Member
	sc := bufio.NewScanner(bytes.NewReader(trimmed))
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	n := 0
	for sc.Scan() {
		n++
		m, ok, err := Line(sc.Text())
		if err != nil {
			return nil, fmt.Errorf("decode members: line %d: %w", n, err)
		}
		if ok {
			out = append(out, m)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("decode members: %w", err)
	}
	return out, nil
}

// Line decodes one NDJSON line. Blank lines report ok=false.
func Line(s string) (model.Member, bool, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return model.Member{}, false, nil
	}
	var r map[string]any
	if err := json.Unmarshal([]byte(s), &r); err != nil {
		return model.Member{}, false, err
	}
	return FromMap(r), true, nil
}

func FromMap(r map[string]any) model.Member {
	m := model.Member{
		ID:    lookup(r, "id"),
		Name:  lookup(r, "name"),
		Email: lookup(r, "email"),
		Role:  lookup(r, "role"),
	}
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	return m
}

func lookup(r map[string]any, field string) string {
	for _, k := range aliases[field] {
		if v, ok := r[k]; ok && v != nil {
			return scalar(v)
		}
	}
	return ""
}

func scalar(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(t)
	default:
		b, _ := json.Marshal(t)
		return string(b)
	}
}
