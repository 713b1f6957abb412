package cmd

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"
)

func TestAnalyzeBatch_CollisionSuffix(t *testing.T) {
	home := isolate(t)

	// Two files with the same basename in different directories
	writeFile(t, filepath.Join(home, "d1", "players.csv"), playersCSV)
	writeFile(t, filepath.Join(home, "d2", "players.csv"), playersCSV)
	charts := filepath.Join(home, "charts")

	out := mustRun(t, "analyze-batch", filepath.Join(home, "d*", "players.csv"),
		"--x-col", "3", "--y-col", "2", "--charts-dir", charts)

	if !strings.Contains(out, "[1/2] Processing players.csv") || !strings.Contains(out, "✓ Analyzed 2 file(s)") {
		t.Fatalf("unexpected progress output:\n%s", out)
	}
	if !strings.Contains(out, "writing to players__2") {
		t.Fatalf("expected collision notice:\n%s", out)
	}
	for _, dir := range []string{"players", "players__2"} {
		pngs, _ := filepath.Glob(filepath.Join(charts, dir, "*.png"))
		if len(pngs) != 4 {
			t.Fatalf("expected 4 charts in %s, got %v", dir, pngs)
		}
	}
}

func TestAnalyzeBatch_KeepGoing(t *testing.T) {
	home := isolate(t)
	good := filepath.Join(home, "good.csv")
	short := filepath.Join(home, "short.csv")
	writeFile(t, good, playersCSV)
	writeFile(t, short, "a,b\n1,2\n")

	// Column 3 does not exist in short.csv
	if _, err := runCmd(t, "analyze-batch", good, short, "--x-col", "3", "--y-col", "2", "--no-charts", "--quiet"); err == nil {
		t.Fatalf("expected failure without --keep-going")
	}

	out, err := runCmd(t, "analyze-batch", good, short, "--x-col", "3", "--y-col", "2", "--no-charts", "--quiet", "--keep-going")
	if err == nil || !strings.Contains(err.Error(), "1 of 2 files failed") {
		t.Fatalf("expected summary error, got %v", err)
	}
	if !strings.Contains(out, "File: good.csv") {
		t.Fatalf("good file should still be reported:\n%s", out)
	}
	if strings.Contains(out, "Processing") {
		t.Fatalf("--quiet should suppress progress:\n%s", out)
	}
}

func TestAnalyzeBatch_NoMatches(t *testing.T) {
	home := isolate(t)
	if _, err := runCmd(t, "analyze-batch", filepath.Join(home, "*.csv")); err == nil {
		t.Fatalf("expected no input files error")
	}
	if _, err := os.Stat(filepath.Join(home, "charts")); !os.IsNotExist(err) {
		t.Fatalf("nothing should be written")
	}
}

func TestAnalyzeBatch_YAMLStream(t *testing.T) {
	home := isolate(t)
	writeFile(t, filepath.Join(home, "d1", "players.csv"), playersCSV)
	writeFile(t, filepath.Join(home, "d2", "players.csv"), playersCSV)
	charts := filepath.Join(home, "charts")

	out, errOut, err := runCmdSplit(t, "analyze-batch", filepath.Join(home, "d*", "players.csv"),
		"--x-col", "3", "--y-col", "2", "--charts-dir", charts, "--format", "yaml")
	if err != nil {
		t.Fatalf("analyze-batch: %v", err)
	}

	dec := yaml.NewDecoder(strings.NewReader(out))
	var files []string
	for {
		var doc struct {
			RunID  string   `yaml:"run_id"`
			File   string   `yaml:"file"`
			Rows   int      `yaml:"rows"`
			Charts []string `yaml:"charts"`
		}
		err := dec.Decode(&doc)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			t.Fatalf("decode document %d: %v\n%s", len(files)+1, err, out)
		}
		if doc.RunID == "" || doc.Rows != 5 || len(doc.Charts) != 4 {
			t.Fatalf("unexpected document: %+v", doc)
		}
		files = append(files, doc.File)
	}
	if len(files) != 2 {
		t.Fatalf("expected 2 documents, got %d:\n%s", len(files), out)
	}
	if !strings.Contains(errOut, "[2/2] Processing players.csv") ||
		!strings.Contains(errOut, "writing to players__2") ||
		!strings.Contains(errOut, "✓ Analyzed 2 file(s)") {
		t.Fatalf("progress should go to stderr, got:\n%s", errOut)
	}
}

func TestAnalyzeBatch_FailedFileLeavesNoChartDir(t *testing.T) {
	home := isolate(t)
	short := filepath.Join(home, "short.csv")
	writeFile(t, short, "a,b\n1,2\n")
	charts := filepath.Join(home, "charts")

	for i := 0; i < 2; i++ {
		_, err := runCmd(t, "analyze-batch", short, "--x-col", "3", "--y-col", "2",
			"--charts-dir", charts, "--quiet", "--keep-going")
		if err == nil {
			t.Fatalf("run %d: expected failure", i+1)
		}
	}
	for _, dir := range []string{"short", "short__2"} {
		if _, err := os.Stat(filepath.Join(charts, dir)); !os.IsNotExist(err) {
			t.Fatalf("%s should not exist, stat err=%v", dir, err)
		}
	}
}
