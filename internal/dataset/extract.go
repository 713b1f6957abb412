package dataset

import (
	"fmt"
	"strconv"
	"strings"

	"go.uber.org/zap"
)

// Column is the numeric sequence extracted from one field position.
// Values keeps the order of the rows that parsed; skipped rows are absent.
type Column struct {
	Index   int
	Header  string
	Values  []float64
	Skipped []Skip
}

// Skip records a data row whose field could not be parsed as a number.
type Skip struct {
	Row    int // index into Rows, so the first data row is 1
	Column int
	Raw    string
	Err    error
}

// ColumnRangeError reports a data row too narrow for the requested column.
type ColumnRangeError struct {
	Row    int
	Column int
	Width  int
}

func (e *ColumnRangeError) Error() string {
	if e.Column < 0 {
		return fmt.Sprintf("column %d out of range: index must be >= 0", e.Column)
	}
	return fmt.Sprintf("column %d out of range in row %d (row has %d fields)", e.Column, e.Row, e.Width)
}

// Extract parses the field at index of every data row (row 0 is the header)
// as a float64. Unparsable fields are recorded as skips. A row without a field
// at index aborts the extraction with a *ColumnRangeError.
func Extract(rows Rows, index int) (*Column, error) {
	col := &Column{Index: index}
	if index < 0 {
		return nil, &ColumnRangeError{Row: 0, Column: index}
	}
	if len(rows) > 0 && index < len(rows[0]) {
		col.Header = strings.TrimSpace(rows[0][index])
	}
	for i := 1; i < len(rows); i++ {
		row := rows[i]
		if index >= len(row) {
			return nil, &ColumnRangeError{Row: i, Column: index, Width: len(row)}
		}
		v, err := parseField(row[index])
		if err != nil {
			col.Skipped = append(col.Skipped, Skip{Row: i, Column: index, Raw: row[index], Err: err})
			continue
		}
		col.Values = append(col.Values, v)
	}
	return col, nil
}

func parseField(s string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, err
	}
	return v, nil
}

// LogSkips writes one warning per skipped row.
func (c *Column) LogSkips(log *zap.Logger) {
	for _, s := range c.Skipped {
		log.Warn("error parsing value",
			zap.Int("row", s.Row),
			zap.Int("column", s.Column),
			zap.String("value", s.Raw),
			zap.Error(s.Err))
	}
}

// Len is the number of parsed values.
func (c *Column) Len() int { return len(c.Values) }
