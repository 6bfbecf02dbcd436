package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"smartrubbish/internal/services"
	"smartrubbish/internal/storage"
)

func TestExportFormats(t *testing.T) {
	tests := []struct {
		in      string
		want    []string
		wantErr bool
	}{
		{"json", []string{"json"}, false},
		{"csv", []string{"csv"}, false},
		{"both", []string{"json", "csv"}, false},
		{"xml", nil, true},
	}
	for _, tt := range tests {
		got, err := exportFormats(tt.in)
		if (err != nil) != tt.wantErr || strings.Join(got, ",") != strings.Join(tt.want, ",") {
			t.Errorf("exportFormats(%q) = %v, %v", tt.in, got, err)
		}
	}
}

func TestWriteWeeklyReport(t *testing.T) {
	store := storage.NewAdapter(storage.NewMemoryKV(0), "")
	accounts := services.NewAccountService(store, nil)
	weekly := services.NewWeeklyReportGenerator(services.NewReportService(store, accounts, nil), accounts, nil)

	dir := filepath.Join(t.TempDir(), "exports")
	paths, err := writeWeeklyReport(weekly, weekly.Generate(), []string{"json", "csv"}, dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(paths) != 2 {
		t.Fatalf("paths = %v", paths)
	}
	for _, p := range paths {
		if !strings.HasPrefix(filepath.Base(p), "Sydney_Weekly_Rubbish_Report_") {
			t.Errorf("file name = %s", p)
		}
		data, err := os.ReadFile(p)
		if err != nil || len(data) == 0 {
			t.Errorf("read %s: %v (%d bytes)", p, err, len(data))
		}
	}
	if !strings.HasSuffix(paths[1], ".csv") {
		t.Errorf("second file = %s", paths[1])
	}
}
