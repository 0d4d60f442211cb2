package config

import (
	"os"
	"path/filepath"
	"testing"
)

func useTempConfigDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	return filepath.Join(dir, "upsell")
}

func TestLoad_MissingFileReturnsDefaults(t *testing.T) {
	useTempConfigDir(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Defaults.Timeframe != 12 || cfg.Appearance.Currency != "INR" {
		t.Fatalf("Load = %+v, want defaults", cfg)
	}
	if cfg.Email.SimulateDelayMS != 1500 {
		t.Fatalf("SimulateDelayMS = %d, want 1500", cfg.Email.SimulateDelayMS)
	}
}

func TestSaveLoad_RoundTripsPartialFile(t *testing.T) {
	dir := useTempConfigDir(t)

	cfg := DefaultConfig()
	cfg.Defaults.GrowthRate = 7.5
	cfg.Report.CompanyName = "Acme Cloud"
	if err := Save(cfg); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if !Exists() {
		t.Fatal("Exists() = false after Save")
	}
	if ConfigPath() != filepath.Join(dir, "config.toml") {
		t.Fatalf("ConfigPath = %s", ConfigPath())
	}

	got, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got.Defaults.GrowthRate != 7.5 || got.Report.CompanyName != "Acme Cloud" {
		t.Fatalf("Load = %+v", got)
	}
}

func TestLoad_PartialTOMLKeepsOtherDefaults(t *testing.T) {
	dir := useTempConfigDir(t)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	data := "[server]\naddr = \"0.0.0.0:9000\"\n"
	if err := os.WriteFile(filepath.Join(dir, "config.toml"), []byte(data), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server.Addr != "0.0.0.0:9000" {
		t.Fatalf("Server.Addr = %q", cfg.Server.Addr)
	}
	if cfg.Defaults.CurrentCustomers != 1000 {
		t.Fatalf("Defaults.CurrentCustomers = %d, want 1000", cfg.Defaults.CurrentCustomers)
	}
}

func TestLoad_InvalidTOML(t *testing.T) {
	dir := useTempConfigDir(t)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "config.toml"), []byte("[server\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(); err == nil {
		t.Fatal("Load accepted malformed TOML")
	}
}

func TestApplyEnv_Overrides(t *testing.T) {
	t.Setenv("UPSELL_SERVER_ADDR", ":7000")
	t.Setenv("UPSELL_CURRENCY", "USD")
	t.Setenv("UPSELL_ALLOWED_ORIGINS", "http://a.test,http://b.test")
	t.Setenv("UPSELL_EMAIL_DELAY_MS", "0")

	cfg := DefaultConfig()
	if err := ApplyEnv(&cfg); err != nil {
		t.Fatalf("ApplyEnv: %v", err)
	}
	if cfg.Server.Addr != ":7000" || cfg.Appearance.Currency != "USD" {
		t.Fatalf("ApplyEnv = %+v", cfg)
	}
	if len(cfg.Server.AllowedOrigins) != 2 || cfg.Server.AllowedOrigins[1] != "http://b.test" {
		t.Fatalf("AllowedOrigins = %v", cfg.Server.AllowedOrigins)
	}
	if cfg.Email.SimulateDelayMS != 0 {
		t.Fatalf("SimulateDelayMS = %d, want 0", cfg.Email.SimulateDelayMS)
	}
	if cfg.Appearance.Locale != "en-IN" {
		t.Fatalf("unset variable changed Locale to %q", cfg.Appearance.Locale)
	}
}

func TestApplyEnv_BadNumber(t *testing.T) {
	t.Setenv("UPSELL_EMAIL_DELAY_MS", "soon")
	cfg := DefaultConfig()
	if err := ApplyEnv(&cfg); err == nil {
		t.Fatal("ApplyEnv accepted a non-numeric delay")
	}
}

func TestLoadDotEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	if err := os.WriteFile(path, []byte("UPSELL_COMPANY_NAME=Dotenv Co\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("UPSELL_COMPANY_NAME", "")
	os.Unsetenv("UPSELL_COMPANY_NAME")

	if err := LoadDotEnv(filepath.Join(dir, "missing.env"), path); err != nil {
		t.Fatalf("LoadDotEnv: %v", err)
	}
	if got := os.Getenv("UPSELL_COMPANY_NAME"); got != "Dotenv Co" {
		t.Fatalf("UPSELL_COMPANY_NAME = %q", got)
	}
}

func TestStateDir_UsesXDGStateHome(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_STATE_HOME", dir)

	if got, want := StateDir(), filepath.Join(dir, "upsell"); got != want {
		t.Fatalf("StateDir() = %q, want %q", got, want)
	}
}
