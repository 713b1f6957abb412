// Package dataset reads tabular files into raw string rows and extracts
// numeric columns from them.
package dataset

import (
	"errors"
	"fmt"
	"os"
)

// Row is one line of a dataset split into raw fields.
type Row []string

// Rows is a whole dataset. Rows[0] is the header when present.
type Rows []Row

// LoadOptions controls how a file is turned into Rows.
type LoadOptions struct {
	// Delimiter for text files. If 0, ',' is used.
	Delimiter rune
	// Sheet selects a worksheet for spreadsheet files. Empty means the first sheet.
	Sheet string
}

// Loader reads a file format into Rows.
type Loader interface {
	CanLoad(path string) bool
	Load(path string, opt LoadOptions) (Rows, error)
}

var registry []Loader

// Register adds a loader implementation to the registry.
func Register(l Loader) {
	registry = append(registry, l)
}

// Load selects a loader based on the file name and reads the whole file.
// Files no registered loader claims are read as delimited text.
func Load(path string, opt LoadOptions) (Rows, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("open dataset: %w", err)
	}
	for _, l := range registry {
		if l.CanLoad(path) {
			return l.Load(path, opt)
		}
	}
	return textLoader{}.Load(path, opt)
}

// Headers returns the header row, or nil when the dataset is empty.
func Headers(rows Rows) Row {
	if len(rows) == 0 {
		return nil
	}
	return rows[0]
}

func init() {
	Register(xlsxLoader{})
	Register(textLoader{})
}

// ErrNoSheet indicates the requested worksheet does not exist.
var ErrNoSheet = errors.New("sheet not found")
