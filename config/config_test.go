package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.ListenAddr != ":5000" {
		t.Errorf("ListenAddr = %q", cfg.ListenAddr)
	}
	if cfg.LogLevel != "info" || cfg.LogFormat != "text" {
		t.Errorf("logging defaults = %q/%q", cfg.LogLevel, cfg.LogFormat)
	}
	if cfg.CompanyTitle != "Cost Reports" {
		t.Errorf("CompanyTitle = %q", cfg.CompanyTitle)
	}
	if cfg.SessionTTL() != 2*time.Hour {
		t.Errorf("SessionTTL = %v, want 2h", cfg.SessionTTL())
	}
	if cfg.MaxUploadMB != 32 {
		t.Errorf("MaxUploadMB = %d", cfg.MaxUploadMB)
	}
}

func TestLoad_EnvOverride(t *testing.T) {
	t.Setenv("COSTREPORTS_LISTEN_ADDR", ":8080")
	t.Setenv("COSTREPORTS_COMPANY_TITLE", "Acme Contracting")
	t.Setenv("COSTREPORTS_LOG_FORMAT", "json")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.ListenAddr != ":8080" {
		t.Errorf("ListenAddr = %q, want :8080", cfg.ListenAddr)
	}
	if cfg.CompanyTitle != "Acme Contracting" {
		t.Errorf("CompanyTitle = %q", cfg.CompanyTitle)
	}
	if cfg.LogFormat != "json" {
		t.Errorf("LogFormat = %q, want json", cfg.LogFormat)
	}
}

func TestLoad_ConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	body := "listen_addr: \":9000\"\nsession_ttl_minutes: 30\n"
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.ListenAddr != ":9000" {
		t.Errorf("ListenAddr = %q, want :9000", cfg.ListenAddr)
	}
	if cfg.SessionTTL() != 30*time.Minute {
		t.Errorf("SessionTTL = %v, want 30m", cfg.SessionTTL())
	}
}

func TestLoad_RejectsBadValues(t *testing.T) {
	t.Setenv("COSTREPORTS_LOG_FORMAT", "xml")
	if _, err := Load(""); err == nil {
		t.Error("expected error for unsupported log format")
	}
}

func TestLoad_MissingConfigFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("expected error for missing config file")
	}
}
