package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Port != "8084" {
		t.Errorf("port = %q", cfg.Port)
	}
	if cfg.Backend != BackendFile {
		t.Errorf("backend = %q", cfg.Backend)
	}
	if cfg.ReadTimeout != 10*time.Second {
		t.Errorf("read timeout = %v", cfg.ReadTimeout)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("KHARCHA_PORT", "9000")
	t.Setenv("KHARCHA_BACKEND", "sqlite")
	t.Setenv("KHARCHA_READ_TIMEOUT", "5s")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Port != "9000" || cfg.Backend != BackendSQLite || cfg.ReadTimeout != 5*time.Second {
		t.Errorf("env overrides not applied: %+v", cfg)
	}
}

func TestLoadYAMLFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	body := "port: \"8100\"\nbackend: file\ndata_dir: /tmp/kharcha\n"
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Port != "8100" || cfg.DataDir != "/tmp/kharcha" {
		t.Errorf("file values not applied: %+v", cfg)
	}
}

func TestEnvWinsOverFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("port: \"8100\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("KHARCHA_PORT", "9000")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Port != "9000" {
		t.Errorf("port = %q, want env value", cfg.Port)
	}
}

func TestValidateRejectsBadValues(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Config)
	}{
		{"bad port", func(c *Config) { c.Port = "http" }},
		{"port out of range", func(c *Config) { c.Port = "70000" }},
		{"unknown backend", func(c *Config) { c.Backend = "redis" }},
		{"empty data dir", func(c *Config) { c.DataDir = "" }},
		{"zero timeout", func(c *Config) { c.ReadTimeout = 0 }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := defaults()
			tc.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Fatal("expected validation error")
			}
		})
	}
}
