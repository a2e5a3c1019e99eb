package filter

import (
	"strings"
	"testing"

	"adminui/internal/model"
)

var members = []model.Member{
	{ID: "1", Name: "Aaron Miles", Email: "aaron@mailinator.com", Role: "member"},
	{ID: "2", Name: "Aishwarya Naik", Email: "aishwarya@mailinator.com", Role: "member"},
	{ID: "3", Name: "Arvind Kumar", Email: "arvind@mailinator.com", Role: "admin"},
	{ID: "4", Name: "Caterina Binotto", Email: "caterina@mailinator.com", Role: "member", Checked: true},
}

func TestQueryIsCaseInsensitiveSubstringOfName(t *testing.T) {
	for _, term := range []string{"", "a", "AR", "miles", "zzz", "mailinator"} {
		ev, err := NewEvaluator(Criteria{Query: term})
		if err != nil {
			t.Fatal(err)
		}
		got := ev.Apply(members)
		in := map[string]bool{}
		for _, m := range got {
			in[m.ID] = true
			if !strings.Contains(strings.ToLower(m.Name), strings.ToLower(term)) {
				t.Fatalf("%q: %s does not match", term, m.Name)
			}
		}
		for _, m := range members {
			if !in[m.ID] && strings.Contains(strings.ToLower(m.Name), strings.ToLower(term)) {
				t.Fatalf("%q: %s should match", term, m.Name)
			}
		}
	}
}

func TestApplyKeepsOrder(t *testing.T) {
	ev, _ := NewEvaluator(Criteria{Query: "ar"})
	got := ev.Apply(members)
	if len(got) != 3 || got[0].ID != "1" || got[1].ID != "2" || got[2].ID != "3" {
		t.Fatalf("got %+v", got)
	}
}

func TestExpression(t *testing.T) {
	ev, err := NewEvaluator(Criteria{Expr: `role == "admin" || checked`})
	if err != nil {
		t.Fatal(err)
	}
	got := ev.Apply(members)
	if len(got) != 2 || got[0].ID != "3" || got[1].ID != "4" {
		t.Fatalf("got %+v", got)
	}
	ev, err = NewEvaluator(Criteria{Query: "a", Expr: `contains(email, "AISH")`})
	if err != nil {
		t.Fatal(err)
	}
	if got := ev.Apply(members); len(got) != 1 || got[0].ID != "2" {
		t.Fatalf("got %+v", got)
	}
}

func TestBadExpression(t *testing.T) {
	if _, err := NewEvaluator(Criteria{Expr: "role =="}); err == nil {
		t.Fatal("expected compile error")
	}
	var ev *Evaluator
	if !ev.Match(members[0]) {
		t.Fatal("nil evaluator matches everything")
	}
}
