package export

import (
	"bufio"
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/xuri/excelize/v2"

	"adminui/internal/model"
)

var members = []model.Member{
	{ID: "1", Name: "Aaron Miles", Email: "aaron@mailinator.com", Role: "member", Checked: true},
	{ID: "3", Name: "Arvind, Kumar", Email: "arvind@mailinator.com", Role: "admin"},
}

func TestCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.csv")
	if err := Write("csv", path, members); err != nil {
		t.Fatal(err)
	}
	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 3 || rows[0][1] != "name" || rows[2][1] != "Arvind, Kumar" {
		t.Fatalf("rows: %v", rows)
	}
	if err := ToCSV(path, nil); err == nil {
		t.Fatal("expected error for empty export")
	}
}

func TestNDJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.ndjson")
	if err := Write("json", path, members); err != nil {
		t.Fatal(err)
	}
	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	sc := bufio.NewScanner(f)
	n := 0
	for sc.Scan() {
		var m map[string]any
		if err := json.Unmarshal(sc.Bytes(), &m); err != nil {
			t.Fatal(err)
		}
		if _, ok := m["checked"]; ok {
			t.Fatal("view state exported")
		}
		n++
	}
	if n != 2 {
		t.Fatalf("lines: %d", n)
	}
}

func TestXLSX(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.xlsx")
	if err := Write("xlsx", path, members); err != nil {
		t.Fatal(err)
	}
	f, err := excelize.OpenFile(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	v, err := f.GetCellValue("Members", "B3")
	if err != nil {
		t.Fatal(err)
	}
	if v != "Arvind, Kumar" {
		t.Fatalf("B3 = %q", v)
	}
	if err := Write("pdf", path, members); err == nil {
		t.Fatal("expected error for unknown format")
	}
}
