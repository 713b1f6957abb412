package dataset

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

type textLoader struct{}

func (textLoader) CanLoad(path string) bool {
	name := strings.ToLower(path)
	return strings.HasSuffix(name, ".csv") || strings.HasSuffix(name, ".tsv") || strings.HasSuffix(name, ".txt")
}

func (textLoader) Load(path string, opt LoadOptions) (Rows, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open dataset: %w", err)
	}
	defer f.Close()
	delim := opt.Delimiter
	if delim == 0 && strings.HasSuffix(strings.ToLower(path), ".tsv") {
		delim = '\t'
	}
	rows, err := LoadReader(f, delim)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return rows, nil
}

// LoadReader splits every line of r on the literal delimiter. Quotes are not
// interpreted and empty fields are kept, so "a,,b" yields three fields.
func LoadReader(r io.Reader, delim rune) (Rows, error) {
	if delim == 0 {
		delim = ','
	}
	sep := string(delim)
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 16<<20)
	var rows Rows
	for sc.Scan() {
		rows = append(rows, Row(strings.Split(sc.Text(), sep)))
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return rows, nil
}
