package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestReportSink_WritesOneLinePerFrame(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.txt")

	report, err := OpenReport(path)
	if err != nil {
		t.Fatal(err)
	}

	if err := report.Write(1500 * time.Millisecond); err != nil {
		t.Fatal(err)
	}
	if err := report.Write(250 * time.Millisecond); err != nil {
		t.Fatal(err)
	}
	if err := report.Close(); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}

	lines := strings.Split(strings.TrimRight(string(data), "\n"), "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d lines, want 2", len(lines))
	}
	if lines[0] != "Interpolated frame in: 1500 milliseconds" {
		t.Errorf("line = %q", lines[0])
	}
	if lines[1] != "Interpolated frame in: 250 milliseconds" {
		t.Errorf("line = %q", lines[1])
	}
}

func TestOpenReport_Appends(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.txt")

	first, err := OpenReport(path)
	if err != nil {
		t.Fatal(err)
	}
	first.Write(10 * time.Millisecond)
	first.Close()

	second, err := OpenReport(path)
	if err != nil {
		t.Fatal(err)
	}
	second.Write(20 * time.Millisecond)
	second.Close()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if got := strings.Count(string(data), "milliseconds"); got != 2 {
		t.Errorf("got %d report lines, want 2", got)
	}
}
