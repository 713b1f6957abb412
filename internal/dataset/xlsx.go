package dataset

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"
)

type xlsxLoader struct{}

func (xlsxLoader) CanLoad(path string) bool {
	return strings.HasSuffix(strings.ToLower(path), ".xlsx")
}

// Load reads every row of the selected sheet. excelize trims trailing empty
// cells, so rows are padded back to the widest row to keep blank cells as
// empty fields.
func (xlsxLoader) Load(path string, opt LoadOptions) (Rows, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open xlsx: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("xlsx %s: %w", path, ErrNoSheet)
	}
	sheet := sheets[0]
	if opt.Sheet != "" {
		sheet = ""
		for _, s := range sheets {
			if strings.EqualFold(s, opt.Sheet) {
				sheet = s
				break
			}
		}
		if sheet == "" {
			return nil, fmt.Errorf("xlsx %s: %w: %q (available: %s)", path, ErrNoSheet, opt.Sheet, strings.Join(sheets, ", "))
		}
	}
	raw, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("read sheet %s: %w", sheet, err)
	}
	width := 0
	for _, r := range raw {
		if len(r) > width {
			width = len(r)
		}
	}
	rows := make(Rows, len(raw))
	for i, r := range raw {
		row := make(Row, width)
		copy(row, r)
		rows[i] = row
	}
	return rows, nil
}
