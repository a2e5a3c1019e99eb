package main

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"adminui/internal/ingest"
	"adminui/internal/parse"
)

func TestWriteFormatsRoundTripThroughDecoder(t *testing.T) {
	members := ingest.DemoMembers(5, 7)
	for _, format := range []string{formatJSON, formatNDJSON} {
		var buf bytes.Buffer
		if err := write(&buf, format, members); err != nil {
			t.Fatalf("%s: %v", format, err)
		}
		got, err := parse.Members(buf.Bytes())
		if err != nil {
			t.Fatalf("%s: decode: %v", format, err)
		}
		if len(got) != 5 || got[0].ID != members[0].ID || got[4].Email != members[4].Email {
			t.Fatalf("%s: got %+v", format, got)
		}
	}
}

func TestWriteNDJSONOneObjectPerLine(t *testing.T) {
	var buf bytes.Buffer
	if err := write(&buf, formatNDJSON, ingest.DemoMembers(3, 1)); err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %d", len(lines))
	}
	var obj map[string]any
	if err := json.Unmarshal([]byte(lines[0]), &obj); err != nil {
		t.Fatal(err)
	}
	if _, ok := obj["checked"]; ok {
		t.Fatal("checked must not be serialized")
	}
}

func TestWriteUnknownFormat(t *testing.T) {
	if err := write(&bytes.Buffer{}, "yaml", nil); err == nil {
		t.Fatal("expected error")
	}
}
