package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("GIN_MODE", "release")
	t.Setenv("RUBBISH_PORT", "9090")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Port != 9090 {
		t.Errorf("Port = %d, want 9090", cfg.Port)
	}
	if cfg.StorageNamespace != "smart_rubbish" {
		t.Errorf("StorageNamespace = %q", cfg.StorageNamespace)
	}
	if cfg.Timezone != "Australia/Sydney" {
		t.Errorf("Timezone = %q", cfg.Timezone)
	}
	if cfg.GeocoderEnabled {
		t.Error("geocoder should be disabled by default")
	}
}

func TestLocationFallback(t *testing.T) {
	cfg := &Config{Timezone: "Nowhere/Invalid"}
	if loc := cfg.Location(); loc.String() != "UTC" {
		t.Errorf("Location() = %s, want UTC", loc)
	}
}

func TestLoadAdminsDefault(t *testing.T) {
	admins, err := LoadAdmins("")
	if err != nil {
		t.Fatalf("LoadAdmins: %v", err)
	}
	if len(admins) != 4 {
		t.Fatalf("got %d admins, want 4", len(admins))
	}
	if admins[0].Email != "admin1@sydney.gov.au" || admins[0].Password != "admin1pass" {
		t.Errorf("unexpected first admin: %+v", admins[0])
	}
}

func TestLoadAdminsFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "admins.yaml")
	content := "admins:\n  - email: \"  Ops@Council.NSW.gov.au \"\n    password: opspass\n    name: Ops Desk\n"
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}

	admins, err := LoadAdmins(path)
	if err != nil {
		t.Fatalf("LoadAdmins: %v", err)
	}
	if len(admins) != 1 {
		t.Fatalf("got %d admins, want 1", len(admins))
	}
	if admins[0].Email != "ops@council.nsw.gov.au" {
		t.Errorf("email not normalized: %q", admins[0].Email)
	}
}

func TestLoadAdminsEmptyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "admins.yaml")
	if err := os.WriteFile(path, []byte("admins: []\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadAdmins(path); err == nil {
		t.Error("expected error for empty admin table")
	}
}

func TestLoadAdminsMissingFile(t *testing.T) {
	if _, err := LoadAdmins(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}
