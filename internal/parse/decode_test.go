package parse

import (
	"testing"

	"github.com/google/uuid"
)

func TestJSONArray(t *testing.T) {
	ms, err := Members([]byte(`[
	  {"id":"1","name":"Aaron Miles","email":"aaron@mailinator.com","role":"member"},
	  {"id":2,"name":"Aishwarya Naik","email":"aishwarya@mailinator.com","role":"admin","extra":true}
	]`))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(ms) != 2 {
		t.Fatalf("len: %d", len(ms))
	}
	if ms[1].ID != "2" || ms[1].Role != "admin" {
		t.Fatalf("numeric id: %+v", ms[1])
	}
	if ms[0].Checked || ms[1].Checked {
		t.Fatal("checked must not come from the source")
	}
}

func TestNDJSONWithAliases(t *testing.T) {
	ms, err := Members([]byte("{\"uid\":10,\"full_name\":\"Ann\",\"mail\":\"ann@x.io\",\"role\":\"member\"}\n\n{\"name\":\"NoID\"}\n"))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(ms) != 2 {
		t.Fatalf("len: %d", len(ms))
	}
	if ms[0].ID != "10" || ms[0].Name != "Ann" || ms[0].Email != "ann@x.io" {
		t.Fatalf("aliases: %+v", ms[0])
	}
	if _, err := uuid.Parse(ms[1].ID); err != nil {
		t.Fatalf("generated id %q: %v", ms[1].ID, err)
	}
}

func TestMalformed(t *testing.T) {
	if _, err := Members([]byte(`[{"id":1}`)); err == nil {
		t.Fatal("expected error for truncated array")
	}
	if _, err := Members([]byte("{\"id\":1}\nnot json\n")); err == nil {
		t.Fatal("expected error for bad line")
	}
	ms, err := Members([]byte("   "))
	if err != nil || len(ms) != 0 {
		t.Fatalf("empty input: %v %v", ms, err)
	}
}
