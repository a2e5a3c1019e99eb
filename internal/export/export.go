package export

import (
	"bufio"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/xuri/excelize/v2"

	"adminui/internal/model"
)

var header = []string{"id", "name", "email", "role"}

// Write exports members in the given format (csv, json or xlsx).
func Write(format, path string, members []model.Member) error {
	switch format {
	case "csv":
		return ToCSV(path, members)
	case "json":
		return ToNDJSON(path, members)
	case "xlsx":
		return ToXLSX(path, members)
	}
	return fmt.Errorf("unknown export format %q", format)
}

func ToCSV(path string, members []model.Member) error {
	if len(members) == 0 {
		return errors.New("no members")
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	w := csv.NewWriter(f)
	if err := w.Write(header); err != nil {
		return err
	}
	for _, m := range members {
		if err := w.Write(row(m)); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

func ToNDJSON(path string, members []model.Member) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	bw := bufio.NewWriter(f)
	for _, m := range members {
		b, _ := json.Marshal(m)
		if _, err := bw.Write(append(b, '\n')); err != nil {
			return err
		}
	}
	return bw.Flush()
}

func ToXLSX(path string, members []model.Member) error {
	if len(members) == 0 {
		return errors.New("no members")
	}
	f := excelize.NewFile()
	defer f.Close()
	const sheet = "Members"
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return err
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return err
	}
	for i, m := range members {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		r := row(m)
		if err := f.SetSheetRow(sheet, cell, &r); err != nil {
			return err
		}
	}
	return f.SaveAs(path)
}

func row(m model.Member) []string {
	out := make([]string, len(header))
	for i, c := range header {
		out[i] = m.Field(c)
	}
	return out
}
