package config

import (
	"testing"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig(t.TempDir())
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	if cfg.Addr() != "localhost:8000" {
		t.Errorf("Addr = %q, want localhost:8000", cfg.Addr())
	}
	if cfg.Logging.Level != "info" || cfg.Logging.Format != "human" {
		t.Errorf("Logging defaults = %+v", cfg.Logging)
	}
	if len(cfg.Server.CORSOrigins) != 1 || cfg.Server.CORSOrigins[0] != "*" {
		t.Errorf("CORSOrigins = %v", cfg.Server.CORSOrigins)
	}
}

func TestConfigSaveAndLoad(t *testing.T) {
	root := t.TempDir()

	cfg := DefaultConfig()
	cfg.Server.Port = "9999"
	cfg.Database.Path = "data/custom.db"
	cfg.Logging.Level = "debug"
	if err := cfg.Save(root); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	loaded, err := LoadConfig(root)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if loaded.Server.Port != "9999" {
		t.Errorf("Port = %q, want 9999", loaded.Server.Port)
	}
	if loaded.Database.Path != "data/custom.db" {
		t.Errorf("Database path = %q", loaded.Database.Path)
	}
	if loaded.Logging.Level != "debug" {
		t.Errorf("Level = %q, want debug", loaded.Logging.Level)
	}
	// Unset fields keep their defaults.
	if loaded.Server.Host != "localhost" {
		t.Errorf("Host = %q, want localhost", loaded.Server.Host)
	}
}

func TestLoadConfigEnvOverride(t *testing.T) {
	t.Setenv("MICMAC_SERVER_PORT", "7777")

	cfg, err := LoadConfig(t.TempDir())
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if cfg.Server.Port != "7777" {
		t.Errorf("Port = %q, want the environment override 7777", cfg.Server.Port)
	}
}
